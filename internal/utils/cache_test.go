package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGlobalCacheSetGetDelete(t *testing.T) {
	cache := GetCache()
	cache.Purge()

	cache.Set("count:1", int64(3), time.Minute)
	assert.Equal(t, int64(3), cache.Get("count:1"))

	cache.Delete("count:1")
	assert.Nil(t, cache.Get("count:1"))
}

func TestGlobalCacheExpiry(t *testing.T) {
	cache := GetCache()
	cache.Purge()

	// Already expired on insert
	cache.Set("count:1", int64(3), -time.Second)
	assert.Nil(t, cache.Get("count:1"))
}

func TestGlobalCachePurge(t *testing.T) {
	cache := GetCache()

	cache.Set("count:1", int64(3), time.Minute)
	cache.Set("count:2", int64(5), time.Minute)

	cache.Purge()
	assert.Nil(t, cache.Get("count:1"))
	assert.Nil(t, cache.Get("count:2"))
}
