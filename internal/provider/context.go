package provider

import (
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	ferrors "github.com/rahulagarwal0605/feedrestore/internal/errors"
)

const memoSize = 4096

// memoEntry is a remembered remote lookup. Found=false entries are negative results.
type memoEntry struct {
	Value string
	Found bool
}

// CacheContext governs caching of remote metadata for one restore session.
// It must be closed when the session ends; closing drops everything remembered.
type CacheContext struct {
	SessionID           uuid.UUID
	NoCache             bool // Bypass remembered lookups
	IgnoreFailedSources bool // Treat unreachable sources as warnings

	mu     sync.RWMutex
	memo   *lru.Cache[string, memoEntry]
	closed bool
}

// NewCacheContext creates an open cache context with a fresh session id.
func NewCacheContext() *CacheContext {
	memo, err := lru.New[string, memoEntry](memoSize)
	if err != nil {
		// Only returned for a non-positive size
		panic(err)
	}
	return &CacheContext{
		SessionID: uuid.New(),
		memo:      memo,
	}
}

// Recall returns a remembered lookup. It always misses when NoCache is set or the
// context is closed.
func (c *CacheContext) Recall(key string) (value string, found bool, ok bool) {
	if c == nil || c.NoCache {
		return "", false, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return "", false, false
	}
	entry, ok := c.memo.Get(key)
	if !ok {
		return "", false, false
	}
	return entry.Value, entry.Found, true
}

// Remember stores a lookup result. Negative results are stored with found=false.
func (c *CacheContext) Remember(key, value string, found bool) {
	if c == nil {
		return
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return
	}
	c.memo.Add(key, memoEntry{Value: value, Found: found})
}

// Len returns the number of remembered lookups.
func (c *CacheContext) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return 0
	}
	return c.memo.Len()
}

// Closed reports whether Close was called.
func (c *CacheContext) Closed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// Err returns errors.ErrCacheContextClosed once the context was closed.
func (c *CacheContext) Err() error {
	if c.Closed() {
		return ferrors.ErrCacheContextClosed
	}
	return nil
}

// Close releases the context and invalidates remembered remote state. It is idempotent.
func (c *CacheContext) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		c.memo.Purge()
	}
	return nil
}
