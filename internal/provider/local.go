package provider

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	ferrors "github.com/rahulagarwal0605/feedrestore/internal/errors"
	"github.com/rahulagarwal0605/feedrestore/internal/feed"
	"github.com/rahulagarwal0605/feedrestore/internal/utils"
)

// localFeed serves packages from a folder in either flat or V3 layout.
type localFeed struct {
	source feed.PackageSource
	log    *zerolog.Logger

	mu       sync.Mutex
	feedType feed.FeedType
}

func newLocalFeed(source feed.PackageSource, feedType feed.FeedType, log *zerolog.Logger) *localFeed {
	return &localFeed{source: source, feedType: feedType, log: log}
}

func (f *localFeed) Source() feed.PackageSource { return f.source }

func (f *localFeed) Type() feed.FeedType {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.feedType == feed.FileSystemUnknown {
		// The folder may have been created or populated since the last check
		f.feedType = feed.Classify(f.source)
		if f.feedType != feed.FileSystemUnknown {
			f.log.Debug().Str("source", f.source.Source()).Stringer("type", f.feedType).Msg("Classified local feed")
		}
	}
	return f.feedType
}

func (f *localFeed) FindPackage(ctx context.Context, id, version string) (bool, error) {
	p, err := f.locate(ctx, id, version)
	if err != nil {
		return false, err
	}
	return p != "", nil
}

func (f *localFeed) OpenPackage(ctx context.Context, id, version string) (io.ReadCloser, error) {
	p, err := f.locate(ctx, id, version)
	if err != nil {
		return nil, err
	}
	if p == "" {
		return nil, fmt.Errorf("%s %s in %s: %w", id, version, f.source, ferrors.ErrPackageNotFound)
	}
	return os.Open(p)
}

// locate returns the archive path or "" when the package is absent.
func (f *localFeed) locate(ctx context.Context, id, version string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	root := f.source.Source()
	if !utils.DirExists(root) {
		return "", fmt.Errorf("local source %s does not exist: %w", root, ferrors.ErrSourceUnavailable)
	}

	switch f.Type() {
	case feed.FileSystemV3:
		if p := feed.V3PackagePath(root, id, version); utils.FileExists(p) {
			return p, nil
		}
	case feed.FileSystemV2:
		if p := feed.FlatPackagePath(root, id, version); utils.FileExists(p) {
			return p, nil
		}
		if p := f.findFlatIgnoreCase(root, id, version); p != "" {
			return p, nil
		}
		// Nested V2 folders group archives as {id}/{version}/
		if p := feed.V3PackagePath(root, id, version); utils.FileExists(p) {
			return p, nil
		}
	}
	return "", nil
}

func (f *localFeed) findFlatIgnoreCase(root, id, version string) string {
	files, err := utils.GlobFiles(root, "*.[nN][uU][pP][kK][gG]")
	if err != nil {
		f.log.Debug().Err(err).Str("source", root).Msg("Failed to list flat feed")
		return ""
	}
	want := feed.ArchiveName(id, version)
	for _, name := range files {
		if strings.ToLower(path.Base(name)) == want {
			return filepath.Join(root, filepath.FromSlash(name))
		}
	}
	return ""
}
