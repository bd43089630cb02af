// Package provider caches per-source-set feed adapters shared across restore requests.
package provider

import (
	"context"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rahulagarwal0605/feedrestore/internal/feed"
)

// Feed is a protocol adapter for one package source.
type Feed interface {
	// Source returns the package source served by this adapter.
	Source() feed.PackageSource
	// Type returns the source's feed type. Local adapters classify again while
	// the type is still unknown.
	Type() feed.FeedType
	// FindPackage reports whether the source has the package.
	FindPackage(ctx context.Context, id, version string) (bool, error)
	// OpenPackage opens the package archive. Returns errors.ErrPackageNotFound when absent.
	OpenPackage(ctx context.Context, id, version string) (io.ReadCloser, error)
}

// FeedFactory builds the adapter for a classified source.
type FeedFactory func(source feed.PackageSource, feedType feed.FeedType, cacheCtx *CacheContext, log *zerolog.Logger) Feed

// DefaultFeedFactory picks the HTTP or local adapter for the classified type.
func DefaultFeedFactory(client *http.Client) FeedFactory {
	if client == nil {
		client = http.DefaultClient
	}
	return func(source feed.PackageSource, feedType feed.FeedType, cacheCtx *CacheContext, log *zerolog.Logger) Feed {
		if feedType.IsHTTP() {
			return newHTTPFeed(source, feedType, client, cacheCtx, log)
		}
		return newLocalFeed(source, feedType, log)
	}
}
