package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rahulagarwal0605/feedrestore/internal/constants"
	ferrors "github.com/rahulagarwal0605/feedrestore/internal/errors"
	"github.com/rahulagarwal0605/feedrestore/internal/feed"
)

// serviceIndex is the subset of a V3 service index document used to find resources.
type serviceIndex struct {
	Resources []struct {
		ID   string `json:"@id"`
		Type string `json:"@type"`
	} `json:"resources"`
}

// httpFeed serves packages from a remote V2 or V3 feed.
type httpFeed struct {
	source   feed.PackageSource
	feedType feed.FeedType
	client   *http.Client
	cacheCtx *CacheContext
	log      *zerolog.Logger
}

func newHTTPFeed(source feed.PackageSource, feedType feed.FeedType, client *http.Client, cacheCtx *CacheContext, log *zerolog.Logger) *httpFeed {
	return &httpFeed{
		source:   source,
		feedType: feedType,
		client:   client,
		cacheCtx: cacheCtx,
		log:      log,
	}
}

func (f *httpFeed) Source() feed.PackageSource { return f.source }

func (f *httpFeed) Type() feed.FeedType { return f.feedType }

func (f *httpFeed) FindPackage(ctx context.Context, id, version string) (bool, error) {
	target, err := f.packageURL(ctx, id, version)
	if err != nil {
		return false, err
	}

	memoKey := "exists:" + target
	if _, found, ok := f.cacheCtx.Recall(memoKey); ok {
		return found, nil
	}

	resp, err := f.do(ctx, http.MethodHead, target)
	if err != nil {
		return false, err
	}
	resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		f.cacheCtx.Remember(memoKey, target, true)
		return true, nil
	case http.StatusNotFound:
		f.cacheCtx.Remember(memoKey, target, false)
		return false, nil
	default:
		return false, fmt.Errorf("HEAD %s: status %d: %w", target, resp.StatusCode, ferrors.ErrSourceUnavailable)
	}
}

func (f *httpFeed) OpenPackage(ctx context.Context, id, version string) (io.ReadCloser, error) {
	target, err := f.packageURL(ctx, id, version)
	if err != nil {
		return nil, err
	}

	resp, err := f.do(ctx, http.MethodGet, target)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return resp.Body, nil
	case http.StatusNotFound:
		resp.Body.Close()
		return nil, fmt.Errorf("%s %s in %s: %w", id, version, f.source, ferrors.ErrPackageNotFound)
	default:
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: status %d: %w", target, resp.StatusCode, ferrors.ErrSourceUnavailable)
	}
}

// packageURL returns the archive URL for a package on this feed.
func (f *httpFeed) packageURL(ctx context.Context, id, version string) (string, error) {
	if f.feedType == feed.HTTPV3 {
		base, err := f.packageBaseAddress(ctx)
		if err != nil {
			return "", err
		}
		lowerID, lowerVersion := strings.ToLower(id), strings.ToLower(version)
		return base + url.PathEscape(lowerID) + "/" + url.PathEscape(lowerVersion) + "/" + url.PathEscape(feed.ArchiveName(id, version)), nil
	}
	return strings.TrimRight(f.source.Source(), "/") + "/package/" + url.PathEscape(id) + "/" + url.PathEscape(version), nil
}

// packageBaseAddress reads the service index and returns the flat container URL
// with a trailing slash.
func (f *httpFeed) packageBaseAddress(ctx context.Context) (string, error) {
	memoKey := "index:" + f.source.Key()
	if base, found, ok := f.cacheCtx.Recall(memoKey); ok && found {
		return base, nil
	}

	resp, err := f.do(ctx, http.MethodGet, f.source.Source())
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GET %s: status %d: %w", f.source, resp.StatusCode, ferrors.ErrSourceUnavailable)
	}

	var index serviceIndex
	if err := json.NewDecoder(resp.Body).Decode(&index); err != nil {
		return "", fmt.Errorf("decode service index %s: %w", f.source, err)
	}

	for _, res := range index.Resources {
		if res.Type == constants.PackageBaseAddressType && res.ID != "" {
			base := strings.TrimRight(res.ID, "/") + "/"
			f.cacheCtx.Remember(memoKey, base, true)
			return base, nil
		}
	}
	return "", fmt.Errorf("service index %s has no %s resource: %w", f.source, constants.PackageBaseAddressType, ferrors.ErrSourceUnavailable)
}

func (f *httpFeed) do(ctx context.Context, method, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if f.cacheCtx != nil {
		req.Header.Set(constants.SessionIDHeader, f.cacheCtx.SessionID.String())
	}

	f.log.Debug().Str("method", method).Str("url", target).Msg("Feed request")
	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s %s: %v: %w", method, target, err, ferrors.ErrSourceUnavailable)
	}
	return resp, nil
}
