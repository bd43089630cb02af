// Package feed classifies package sources into protocol and layout variants.
package feed

import (
	"strconv"
	"strings"

	"github.com/rahulagarwal0605/feedrestore/internal/utils"
)

// FeedType identifies the protocol or on-disk layout of a package source.
// It is never persisted: local layouts can change between checks.
type FeedType int

const (
	// FileSystemUnknown is a local source whose layout could not be determined yet.
	FileSystemUnknown FeedType = iota
	// HTTPV2 is a remote OData-style feed.
	HTTPV2
	// HTTPV3 is a remote feed described by a JSON service index.
	HTTPV3
	// FileSystemV2 is a local folder of archives, flat or nested.
	FileSystemV2
	// FileSystemV3 is a local {id}/{version}/{id}.{version}.nupkg folder.
	FileSystemV3
)

var feedTypeNames = map[FeedType]string{
	FileSystemUnknown: "FileSystemUnknown",
	HTTPV2:            "HttpV2",
	HTTPV3:            "HttpV3",
	FileSystemV2:      "FileSystemV2",
	FileSystemV3:      "FileSystemV3",
}

// String returns the feed type name.
func (t FeedType) String() string {
	if name, ok := feedTypeNames[t]; ok {
		return name
	}
	return "FeedType(" + strconv.Itoa(int(t)) + ")"
}

// IsHTTP reports whether t is a remote feed type.
func (t FeedType) IsHTTP() bool {
	return t == HTTPV2 || t == HTTPV3
}

// PackageSource is a configured feed location: a URL or a filesystem path.
// It is immutable; compare with Equal or by Key.
type PackageSource struct {
	name   string
	source string
	remote bool
}

// NewPackageSource creates a source from a URL or path. Surrounding whitespace is trimmed.
func NewPackageSource(source string) PackageSource {
	return NewNamedPackageSource("", source)
}

// NewNamedPackageSource creates a source with a display name.
func NewNamedPackageSource(name, source string) PackageSource {
	source = strings.TrimSpace(source)
	remote := utils.IsHTTPURL(source)
	if !remote && source != "" {
		source = utils.LocalPath(source)
	}
	if name == "" {
		name = source
	}
	return PackageSource{name: name, source: source, remote: remote}
}

// Name returns the display name, defaulting to the source itself.
func (s PackageSource) Name() string { return s.name }

// Source returns the normalized identifier.
func (s PackageSource) Source() string { return s.source }

// IsRemote reports whether the source is an http(s) URL.
func (s PackageSource) IsRemote() bool { return s.remote }

// IsLocal reports whether the source is a filesystem location.
func (s PackageSource) IsLocal() bool { return !s.remote && s.source != "" }

// String returns the source identifier.
func (s PackageSource) String() string { return s.source }

// Key returns the value used for equality. Trailing slashes are ignored on URLs;
// local paths are already cleaned.
func (s PackageSource) Key() string {
	if s.remote {
		return strings.TrimRight(s.source, "/")
	}
	return s.source
}

// Equal reports value equality on the normalized identifier.
func (s PackageSource) Equal(other PackageSource) bool {
	return s.Key() == other.Key()
}
