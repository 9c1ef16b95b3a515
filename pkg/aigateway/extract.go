// Copyright 2024 PrepInsight Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package aigateway

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// ExtractJSON locates the first balanced JSON array or object embedded in
// raw assistant text and decodes it into out. The assistant often wraps its
// JSON in prose or markdown fences, so the full text rarely parses as-is.
// Failure is always ErrResponseParse, never a silent zero value.
func ExtractJSON(text string, out any) error {
	var json = jsoniter.ConfigCompatibleWithStandardLibrary

	block, ok := firstBalancedBlock(text)
	if !ok {
		return fmt.Errorf("%w: no JSON block in response", ErrResponseParse)
	}
	if err := json.Unmarshal([]byte(block), out); err != nil {
		return fmt.Errorf("%w: %s", ErrResponseParse, err)
	}
	return nil
}

// firstBalancedBlock scans for the first '[' or '{' and returns the
// substring up to its balancing close bracket, skipping brackets inside
// string literals.
func firstBalancedBlock(text string) (string, bool) {
	start := strings.IndexAny(text, "[{")
	if start < 0 {
		return "", false
	}

	open := text[start]
	var close byte = ']'
	if open == '{' {
		close = '}'
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}

	return "", false
}
