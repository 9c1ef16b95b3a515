package cache

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/zeebo/xxh3"
)

// Cache is a process-local memory cache with hashed keys. It is best-effort
// only; a miss is never an error.
type Cache struct {
	mem *cache.Cache
}

// New returns a cache whose entries expire after the given duration.
func New(expiration time.Duration) *Cache {
	return &Cache{mem: cache.New(expiration, 2*expiration)}
}

// Get returns the cached value for the hashed key parts, if present.
func (c *Cache) Get(parts ...[]byte) (value any, cached bool) {
	return c.mem.Get(Key(parts...))
}

// Set stores the value under the hashed key parts with the default expiration.
func (c *Cache) Set(value any, parts ...[]byte) {
	c.mem.SetDefault(Key(parts...), value)
}

// Key returns the XXHash128 of the given key parts as a hex string.
// This hash is extremely fast and reasonable for use as a cache key.
// https://cyan4973.github.io/xxHash/
func Key(parts ...[]byte) string {
	h := xxh3.New()
	for _, part := range parts {
		// Write on xxh3 cannot fail
		_, _ = h.Write(part)
	}
	return fmt.Sprintf("%x", uint128ToBytes(h.Sum128()))
}

func uint128ToBytes(a xxh3.Uint128) (b []byte) {
	b = make([]byte, 16)
	binary.LittleEndian.PutUint64(b[0:8], a.Lo)
	binary.LittleEndian.PutUint64(b[8:16], a.Hi)
	return
}
