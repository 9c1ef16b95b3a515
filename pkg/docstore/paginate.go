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

package docstore

import "sort"

// SortSpec orders records by a single field. Comparison is a strict
// greater-than on the field value; ties keep their stored order.
type SortSpec struct {
	Field      string
	Descending bool
}

// Page is one slice of a filtered collection plus paging metadata. Total is
// the match count before slicing.
type Page struct {
	Items      []Record `json:"items"`
	Page       int      `json:"page"`
	Limit      int      `json:"limit"`
	Total      int      `json:"total"`
	TotalPages int      `json:"totalPages"`
}

// Paginate filters the collection, optionally sorts it, and returns page
// number `page` of size `limit`. Page numbers out of range yield an empty or
// partial final page, never an error.
func (s *Store) Paginate(collection string, match Predicate, page int, limit int, sortSpec *SortSpec) Page {
	if limit < 1 {
		limit = 10
	}

	matches := s.FindMany(collection, match)

	if sortSpec != nil && sortSpec.Field != "" {
		field := sortSpec.Field
		if sortSpec.Descending {
			sort.SliceStable(matches, func(i, j int) bool {
				return fieldGreater(matches[i][field], matches[j][field])
			})
		} else {
			sort.SliceStable(matches, func(i, j int) bool {
				return fieldGreater(matches[j][field], matches[i][field])
			})
		}
	}

	total := len(matches)
	totalPages := (total + limit - 1) / limit

	start := (page - 1) * limit
	end := start + limit
	if start < 0 || start >= total {
		return Page{Items: []Record{}, Page: page, Limit: limit, Total: total, TotalPages: totalPages}
	}
	if end > total {
		end = total
	}

	items := make([]Record, end-start)
	copy(items, matches[start:end])

	return Page{Items: items, Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

// fieldGreater reports a > b for the value types JSON decoding produces.
// Numbers compare numerically, strings lexically, booleans true > false.
// Mixed or unordered types compare as equal, keeping stored order.
func fieldGreater(a any, b any) bool {
	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		return ok && av > bv
	case string:
		bv, ok := b.(string)
		return ok && av > bv
	case bool:
		bv, ok := b.(bool)
		return ok && av && !bv
	default:
		return false
	}
}
