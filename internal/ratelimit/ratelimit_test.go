package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/prepinsight/prepinsight/internal/sessions"
)

func TestAllow(t *testing.T) {
	t.Run("within-budget", func(t *testing.T) {
		limiter := New(3, time.Minute)
		assert.True(t, limiter.Allow("a"))
		assert.True(t, limiter.Allow("a"))
		assert.True(t, limiter.Allow("a"))
		assert.False(t, limiter.Allow("a"))
	})
	t.Run("keys-are-independent", func(t *testing.T) {
		limiter := New(1, time.Minute)
		assert.True(t, limiter.Allow("a"))
		assert.True(t, limiter.Allow("b"))
		assert.False(t, limiter.Allow("a"))
	})
	t.Run("window-expires", func(t *testing.T) {
		limiter := New(1, 50*time.Millisecond)
		assert.True(t, limiter.Allow("a"))
		assert.False(t, limiter.Allow("a"))
		time.Sleep(80 * time.Millisecond)
		assert.True(t, limiter.Allow("a"))
	})
	t.Run("zero-limit-blocks-everything", func(t *testing.T) {
		limiter := New(0, time.Minute)
		assert.False(t, limiter.Allow("a"))
	})
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := New(2, time.Minute)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(sessions.UserIDKey, "user-1")
	})
	router.Use(Middleware(limiter))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	get := func() int {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		return w.Code
	}

	assert.Equal(t, http.StatusOK, get())
	assert.Equal(t, http.StatusOK, get())
	assert.Equal(t, http.StatusTooManyRequests, get())
}
