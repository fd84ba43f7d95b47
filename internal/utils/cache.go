package utils

import (
	"log"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CacheItem wraps cached data with its expiry
type CacheItem struct {
	Data      interface{}
	ExpiresAt time.Time
}

// GlobalCache is a process-local TTL cache over an LRU, used for derived
// read-side values such as per-user unseen notification counts
type GlobalCache struct {
	lruCache *lru.Cache[string, CacheItem]
}

var cacheInstance *GlobalCache

// GetCache returns the singleton cache instance
func GetCache() *GlobalCache {
	if cacheInstance == nil {
		l, err := lru.New[string, CacheItem](500)
		if err != nil {
			log.Fatalf("Failed to create LRU cache: %v", err)
		}
		cacheInstance = &GlobalCache{
			lruCache: l,
		}
	}
	return cacheInstance
}

// Set stores a value with the given TTL
func (c *GlobalCache) Set(key string, data interface{}, ttl time.Duration) {
	c.lruCache.Add(key, CacheItem{
		Data:      data,
		ExpiresAt: time.Now().Add(ttl),
	})
}

// Get returns the cached value, or nil when missing or expired
func (c *GlobalCache) Get(key string) interface{} {
	val, ok := c.lruCache.Get(key)
	if !ok {
		return nil
	}

	if time.Now().After(val.ExpiresAt) {
		c.lruCache.Remove(key)
		return nil
	}

	return val.Data
}

// Delete removes a key
func (c *GlobalCache) Delete(key string) {
	c.lruCache.Remove(key)
}

// Purge drops every entry. Tests reset the process-wide cache with it so
// entries keyed by recycled IDs never outlive the database they came from.
func (c *GlobalCache) Purge() {
	c.lruCache.Purge()
}
