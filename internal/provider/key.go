package provider

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rahulagarwal0605/feedrestore/internal/feed"
	"github.com/rahulagarwal0605/feedrestore/internal/utils"
)

// CacheKey identifies a shared cache entry by its folders and sources.
// Keys built from equal values compare equal regardless of slice identity.
type CacheKey struct {
	GlobalPackagesFolder string
	FallbackFolders      []string
	Sources              []string
}

// NewCacheKey builds a normalized key. Folders are made absolute and cleaned;
// with lowercase set, folder paths and local source paths are also lower-cased.
func NewCacheKey(globalFolder string, fallbackFolders []string, sources []feed.PackageSource, lowercase bool) (CacheKey, error) {
	if strings.TrimSpace(globalFolder) == "" {
		return CacheKey{}, fmt.Errorf("global packages folder is required")
	}

	global, err := normalizeFolder(globalFolder, lowercase)
	if err != nil {
		return CacheKey{}, fmt.Errorf("global packages folder: %w", err)
	}

	fallback := make([]string, 0, len(fallbackFolders))
	for _, folder := range fallbackFolders {
		f, err := normalizeFolder(folder, lowercase)
		if err != nil {
			return CacheKey{}, fmt.Errorf("fallback folder %s: %w", folder, err)
		}
		fallback = append(fallback, f)
	}

	return CacheKey{
		GlobalPackagesFolder: global,
		FallbackFolders:      fallback,
		Sources:              utils.ConvertSlice(sources, func(s feed.PackageSource) string { return sourceKey(s, lowercase) }),
	}, nil
}

func sourceKey(source feed.PackageSource, lowercase bool) string {
	if source.IsRemote() {
		return source.Key()
	}
	return utils.NormalizePath(source.Key(), lowercase)
}

func normalizeFolder(folder string, lowercase bool) (string, error) {
	abs, err := filepath.Abs(utils.LocalPath(folder))
	if err != nil {
		return "", err
	}
	return utils.NormalizePath(abs, lowercase), nil
}

// Equal reports component-wise equality.
func (k CacheKey) Equal(other CacheKey) bool {
	return k.GlobalPackagesFolder == other.GlobalPackagesFolder &&
		utils.EqualSlices(k.FallbackFolders, other.FallbackFolders) &&
		utils.EqualSlices(k.Sources, other.Sources)
}

// String returns an unambiguous encoding usable as a map key.
func (k CacheKey) String() string {
	var b strings.Builder
	b.WriteString(k.GlobalPackagesFolder)
	b.WriteString("\x00")
	b.WriteString(strings.Join(k.FallbackFolders, "\x1f"))
	b.WriteString("\x00")
	b.WriteString(strings.Join(k.Sources, "\x1f"))
	return b.String()
}
