package provider

import (
	"sync"

	"github.com/rahulagarwal0605/feedrestore/internal/feed"
)

// SharedCache is the provider state shared by every request with the same global
// packages folder, fallback folders and sources.
type SharedCache struct {
	key CacheKey

	GlobalPackagesFolder string
	FallbackFolders      []string
	Sources              []feed.PackageSource
	CacheContext         *CacheContext

	mu    sync.RWMutex
	feeds []Feed // Append-only, one per source in order
}

// Key returns the identity of this entry.
func (s *SharedCache) Key() CacheKey { return s.key }

// Feeds returns the feed adapters in source order.
func (s *SharedCache) Feeds() []Feed {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Feed, len(s.feeds))
	copy(out, s.feeds)
	return out
}

func (s *SharedCache) addFeed(f Feed) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feeds = append(s.feeds, f)
}

// usableWith reports whether the entry belongs to cacheCtx and that context is still open.
func (s *SharedCache) usableWith(cacheCtx *CacheContext) bool {
	if s.CacheContext != cacheCtx {
		return false
	}
	return cacheCtx == nil || !cacheCtx.Closed()
}
