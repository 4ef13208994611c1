package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache is a process-lifetime, string-keyed LRU. It backs the
// contributor-profile cache: profiles never change within a run, so
// entries have no expiry and the size cap only bounds memory on very
// large scans.
type Cache[V any] struct {
	lru *lru.Cache[string, V]
}

func New[V any](size int) (*Cache[V], error) {
	l, err := lru.New[string, V](size)
	if err != nil {
		return nil, err
	}
	return &Cache[V]{lru: l}, nil
}

func (c *Cache[V]) Get(key string) (V, bool) {
	return c.lru.Get(key)
}

func (c *Cache[V]) Set(key string, val V) {
	c.lru.Add(key, val)
}

func (c *Cache[V]) Len() int {
	return c.lru.Len()
}
