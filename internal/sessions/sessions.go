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

// Package sessions holds the server-side session registry. A session is an
// opaque bearer token mapped to a user id; the token is the sole tenancy
// boundary for every per-user route.
package sessions

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// UserIDKey is the gin context key under which the middleware stores the
// authenticated user id.
const UserIDKey = "userId"

const sessionTTL = 7 * 24 * time.Hour

// Registry maps bearer tokens to user ids with a sliding expiration.
type Registry struct {
	tokens *cache.Cache
}

// NewRegistry returns an empty session registry.
func NewRegistry() *Registry {
	return &Registry{tokens: cache.New(sessionTTL, time.Hour)}
}

// Create mints a new session token for the user.
func (r *Registry) Create(userID string) string {
	token := uuid.NewString()
	r.tokens.SetDefault(token, userID)
	return token
}

// Resolve returns the user id for a token and refreshes its expiration.
func (r *Registry) Resolve(token string) (string, bool) {
	value, found := r.tokens.Get(token)
	if !found {
		return "", false
	}
	userID, ok := value.(string)
	if !ok {
		return "", false
	}
	r.tokens.SetDefault(token, userID) // sliding TTL
	return userID, true
}

// Destroy removes a token. Destroying an unknown token is a no-op.
func (r *Registry) Destroy(token string) {
	r.tokens.Delete(token)
}

// TokenFromHeader extracts the bearer token from an Authorization header.
func TokenFromHeader(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

// Middleware authenticates each request against the registry. Requests
// without a valid session are aborted with 401; otherwise the user id is
// stored in the gin context under UserIDKey.
func Middleware(registry *Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromHeader(c.GetHeader("Authorization"))
		if token == "" {
			abortUnauthorized(c)
			return
		}

		userID, ok := registry.Resolve(token)
		if !ok {
			abortUnauthorized(c)
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(401, gin.H{
		"success": false,
		"data":    gin.H{},
		"message": "Authentication required.",
		"errors":  []string{"missing or invalid session"},
	})
}
