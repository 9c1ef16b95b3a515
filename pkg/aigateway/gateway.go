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

// Package aigateway is the stateless adapter between the server and the
// external text-generation API. One call in, one HTTP request out; all
// failures are typed so the routes can map them to a generic 500 while the
// detail stays in the server log.
package aigateway

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/united-manufacturing-hub/umh-utils/env"
	"go.uber.org/zap"

	"github.com/prepinsight/prepinsight/internal/cache"
	"github.com/prepinsight/prepinsight/internal/metrics"
)

var (
	// ErrUnknownModel means the model key is not in the known-model table.
	// It is returned before any network call is attempted.
	ErrUnknownModel = errors.New("unknown model")
	// ErrMissingCredential means no API key was configured.
	ErrMissingCredential = errors.New("missing API credential")
	// ErrTimeout means the request exceeded the five-minute bound.
	ErrTimeout = errors.New("request timeout")
	// ErrTransport covers lower-level connection faults.
	ErrTransport = errors.New("transport error")
	// ErrInvalidResponse means the response lacked the expected completion shape.
	ErrInvalidResponse = errors.New("invalid response format")
	// ErrResponseParse means no parsable JSON was found in the raw assistant text.
	ErrResponseParse = errors.New("response parse error")
)

// knownModels maps the model keys the routes are allowed to use onto
// provider model identifiers.
var knownModels = map[string]string{
	"default":   "gpt-4o-mini",
	"fast":      "gpt-4o-mini",
	"reasoning": "gpt-4o",
}

const (
	requestTimeout = 5 * time.Minute
	maxTokens      = 4096
	temperature    = 0.7
)

// Message is one turn of a conversation sent to the API.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Gateway issues requests to the configured text-generation endpoint.
type Gateway struct {
	apiURL    string
	apiKey    string
	client    *http.Client
	responses *cache.Cache
}

// New returns a gateway against the given endpoint.
func New(apiURL string, apiKey string) *Gateway {
	return &Gateway{
		apiURL:    apiURL,
		apiKey:    apiKey,
		client:    &http.Client{Timeout: requestTimeout},
		responses: cache.New(10 * time.Minute),
	}
}

// NewFromEnv reads AI_API_URL and AI_API_KEY from the environment.
// A missing credential is not fatal here; Chat fails with
// ErrMissingCredential so the server can still serve non-AI routes.
func NewFromEnv() (*Gateway, error) {
	apiURL, err := env.GetAsString("AI_API_URL", false, "https://api.openai.com/v1/chat/completions")
	if err != nil {
		return nil, err
	}
	apiKey, _ := env.GetAsString("AI_API_KEY", false, "") //nolint:errcheck
	if apiKey == "" {
		zap.S().Warnf("AI_API_KEY is not set, generation routes will fail")
	}
	return New(apiURL, apiKey), nil
}

// Chat resolves the model key, issues one POST and returns the first
// completion's message content. Successful responses are cached by
// (model, conversation) hash, best-effort only.
func (g *Gateway) Chat(modelKey string, messages []Message) (string, error) {
	var json = jsoniter.ConfigCompatibleWithStandardLibrary

	model, ok := knownModels[modelKey]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownModel, modelKey)
	}
	if g.apiKey == "" {
		return "", ErrMissingCredential
	}

	body, err := json.Marshal(chatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrTransport, err)
	}

	if content, cached := g.responses.Get([]byte(model), body); cached {
		if text, ok := content.(string); ok {
			zap.S().Debugf("AI response served from cache for model %s", model)
			return text, nil
		}
	}

	req, err := http.NewRequest(http.MethodPost, g.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	metrics.AICalls.WithLabelValues(model).Inc()

	resp, err := g.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			metrics.AICallErrors.WithLabelValues("timeout").Inc()
			return "", fmt.Errorf("%w after %s: %s", ErrTimeout, requestTimeout, err)
		}
		metrics.AICallErrors.WithLabelValues("transport").Inc()
		return "", fmt.Errorf("%w: %s", ErrTransport, err)
	}

	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			zap.S().Warnf("Failed to close response body: %s", err)
		}
	}(resp.Body)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.AICallErrors.WithLabelValues("transport").Inc()
		return "", fmt.Errorf("%w: %s", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.AICallErrors.WithLabelValues("status").Inc()
		var remote apiError
		if err := json.Unmarshal(raw, &remote); err == nil && remote.Error.Message != "" {
			return "", fmt.Errorf("text-generation API: %s", remote.Error.Message)
		}
		return "", fmt.Errorf("text-generation API: HTTP status incorrect: %d", resp.StatusCode)
	}

	var completion chatResponse
	if err := json.Unmarshal(raw, &completion); err != nil {
		metrics.AICallErrors.WithLabelValues("format").Inc()
		return "", fmt.Errorf("%w: %s", ErrInvalidResponse, err)
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		metrics.AICallErrors.WithLabelValues("format").Inc()
		return "", fmt.Errorf("%w: no completion content", ErrInvalidResponse)
	}

	content := completion.Choices[0].Message.Content
	g.responses.Set(content, []byte(model), body)

	return content, nil
}

func isTimeout(err error) bool {
	var timeoutErr interface{ Timeout() bool }
	if errors.As(err, &timeoutErr) && timeoutErr.Timeout() {
		return true
	}
	return os.IsTimeout(err)
}
