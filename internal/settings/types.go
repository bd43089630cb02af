// Package settings resolves effective restore settings from feedrestore.yaml files.
package settings

import (
	"context"

	"github.com/rahulagarwal0605/feedrestore/internal/feed"
)

// File represents one feedrestore.yaml settings file.
type File struct {
	GlobalPackagesFolder string         `yaml:"globalPackagesFolder,omitempty"`
	FallbackFolders      []string       `yaml:"fallbackFolders,omitempty"`
	Sources              []SourceConfig `yaml:"sources,omitempty"`
	Clear                bool           `yaml:"clear,omitempty"` // Drop sources inherited from outer files
}

// SourceConfig is a package source entry in a settings file.
type SourceConfig struct {
	Name    string `yaml:"name,omitempty"`
	URL     string `yaml:"url"`
	Enabled *bool  `yaml:"enabled,omitempty"` // Defaults to true
}

// IsEnabled reports whether the source is enabled.
func (s SourceConfig) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// Settings are the merged effective settings for a directory.
type Settings struct {
	GlobalPackagesFolder string
	FallbackFolders      []string
	Sources              []feed.PackageSource
	Files                []string // Settings files that contributed, outermost first
}

// Resolver resolves effective settings starting from a directory.
type Resolver interface {
	ResolveSettings(ctx context.Context, startDir string) (*Settings, error)
}
