package provider

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/rahulagarwal0605/feedrestore/internal/feed"
	"github.com/rahulagarwal0605/feedrestore/internal/metrics"
)

// Cache hands out one SharedCache per distinct (global folder, fallback folders,
// sources) combination for the lifetime of a session.
type Cache struct {
	// Lowercase lower-cases folder paths in keys, for case-insensitive file systems.
	Lowercase bool
	// NewFeed builds feed adapters for new entries.
	NewFeed FeedFactory

	mu      sync.Mutex
	entries map[string]*SharedCache
	group   singleflight.Group
}

// NewCache creates an empty provider cache using client for remote feeds.
func NewCache(client *http.Client, lowercase bool) *Cache {
	return &Cache{
		Lowercase: lowercase,
		NewFeed:   DefaultFeedFactory(client),
		entries:   make(map[string]*SharedCache),
	}
}

// GetOrCreate returns the entry for the given folders and sources, creating it on
// first use. Concurrent callers with equal inputs and the same cache context always
// receive the same entry. An entry bound to another or a closed context is rebuilt.
func (c *Cache) GetOrCreate(globalFolder string, fallbackFolders []string, sources []feed.PackageSource, cacheCtx *CacheContext, log *zerolog.Logger) (*SharedCache, error) {
	key, err := NewCacheKey(globalFolder, fallbackFolders, sources, c.Lowercase)
	if err != nil {
		return nil, fmt.Errorf("build provider cache key: %w", err)
	}
	keyStr := key.String()

	if entry, ok := c.lookup(keyStr, cacheCtx); ok {
		metrics.RecordProviderCacheLookup(true)
		return entry, nil
	}
	metrics.RecordProviderCacheLookup(false)

	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}

	v, err, _ := c.group.Do(keyStr+"\x00"+sessionOf(cacheCtx), func() (interface{}, error) {
		if entry, ok := c.lookup(keyStr, cacheCtx); ok {
			return entry, nil
		}
		built, err := c.build(key, globalFolder, fallbackFolders, sources, cacheCtx, log)
		if err != nil {
			return nil, err
		}
		return c.install(keyStr, built), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*SharedCache), nil
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) lookup(key string, cacheCtx *CacheContext) (*SharedCache, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok || !entry.usableWith(cacheCtx) {
		return nil, false
	}
	return entry, true
}

// install stores entry unless a usable one won the race, and returns the stored entry.
// Entries bound to a stale context are replaced.
func (c *Cache) install(key string, entry *SharedCache) *SharedCache {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil {
		c.entries = make(map[string]*SharedCache)
	}
	if existing, ok := c.entries[key]; ok && existing.usableWith(entry.CacheContext) {
		return existing
	}
	c.entries[key] = entry
	return entry
}

// build creates a new entry. Its folders keep their case even when the key is lower-cased.
func (c *Cache) build(key CacheKey, globalFolder string, fallbackFolders []string, sources []feed.PackageSource, cacheCtx *CacheContext, log *zerolog.Logger) (*SharedCache, error) {
	global, err := normalizeFolder(globalFolder, false)
	if err != nil {
		return nil, err
	}
	fallback := make([]string, 0, len(fallbackFolders))
	for _, folder := range fallbackFolders {
		f, err := normalizeFolder(folder, false)
		if err != nil {
			return nil, err
		}
		fallback = append(fallback, f)
	}

	entry := &SharedCache{
		key:                  key,
		GlobalPackagesFolder: global,
		FallbackFolders:      fallback,
		Sources:              append([]feed.PackageSource(nil), sources...),
		CacheContext:         cacheCtx,
	}

	newFeed := c.NewFeed
	if newFeed == nil {
		newFeed = DefaultFeedFactory(nil)
	}

	for _, source := range sources {
		feedType := feed.Classify(source)
		metrics.RecordClassification(feedType.String())
		log.Debug().Str("source", source.Source()).Stringer("type", feedType).Msg("Classified feed")
		entry.addFeed(newFeed(source, feedType, cacheCtx, log))
	}
	return entry, nil
}

func sessionOf(cacheCtx *CacheContext) string {
	if cacheCtx == nil {
		return ""
	}
	return cacheCtx.SessionID.String()
}
