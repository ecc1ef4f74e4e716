// Package cache provides an in-process CacheStorage.
package cache

import (
	"context"
	"encoding/json"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
)

var ErrCacheMiss = errors.New("cache: miss")

// LRU stores JSON-encoded values, so callers get their own copy on Get the
// same way they would from an external cache.
type LRU struct {
	c *lru.Cache
}

func NewLRU(size int) (*LRU, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, errors.Wrap(err, "cache couldn't create LRU")
	}
	return &LRU{c: c}, nil
}

func (l *LRU) Get(ctx context.Context, key string, v interface{}) error {
	raw, ok := l.c.Get(key)
	if !ok {
		return ErrCacheMiss
	}
	return json.Unmarshal(raw.([]byte), v)
}

func (l *LRU) Set(ctx context.Context, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "cache couldn't encode value")
	}
	l.c.Add(key, raw)
	return nil
}

func (l *LRU) Len() int {
	return l.c.Len()
}

// Purge drops every entry.
func (l *LRU) Purge(ctx context.Context) error {
	l.c.Purge()
	return nil
}
