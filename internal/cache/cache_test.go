package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache(t *testing.T) {
	t.Run("set-and-get", func(t *testing.T) {
		c := New(time.Minute)
		c.Set("value", []byte("model"), []byte("body"))

		value, cached := c.Get([]byte("model"), []byte("body"))
		assert.True(t, cached)
		assert.Equal(t, "value", value)
	})
	t.Run("miss", func(t *testing.T) {
		c := New(time.Minute)
		_, cached := c.Get([]byte("nothing"))
		assert.False(t, cached)
	})
	t.Run("expires", func(t *testing.T) {
		c := New(30 * time.Millisecond)
		c.Set("value", []byte("k"))
		time.Sleep(60 * time.Millisecond)

		_, cached := c.Get([]byte("k"))
		assert.False(t, cached)
	})
}

func TestKey(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, Key([]byte("a"), []byte("b")), Key([]byte("a"), []byte("b")))
	})
	t.Run("part-order-matters", func(t *testing.T) {
		assert.NotEqual(t, Key([]byte("a"), []byte("b")), Key([]byte("b"), []byte("a")))
	})
	t.Run("hex-encoded", func(t *testing.T) {
		assert.Len(t, Key([]byte("a")), 32)
	})
}
