// Package ratelimit implements a fixed-window request limiter backed by an
// expiring in-memory counter. State is process-local; multiple server
// processes each enforce their own window.
package ratelimit

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"github.com/prepinsight/prepinsight/internal/sessions"
)

// Limiter counts requests per client key within a fixed window.
type Limiter struct {
	counters *cache.Cache
	limit    int
}

// New returns a limiter allowing `limit` requests per `window` per client.
func New(limit int, window time.Duration) *Limiter {
	return &Limiter{
		counters: cache.New(window, 2*window),
		limit:    limit,
	}
}

// Allow records one request for the key and reports whether it is within
// the window's budget.
func (l *Limiter) Allow(key string) bool {
	count, err := l.counters.IncrementInt(key, 1)
	if err != nil {
		// first request in this window
		l.counters.SetDefault(key, 1)
		return l.limit >= 1
	}
	return count <= l.limit
}

// Middleware rejects requests over budget with 429. The client key is the
// authenticated user id when present, else the client IP.
func Middleware(l *Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetString(sessions.UserIDKey)
		if key == "" {
			key = c.ClientIP()
		}

		if !l.Allow(key) {
			c.AbortWithStatusJSON(429, gin.H{
				"success": false,
				"data":    gin.H{},
				"message": "Too many requests. Please slow down.",
				"errors":  []string{"rate limit exceeded"},
			})
			return
		}

		c.Next()
	}
}
