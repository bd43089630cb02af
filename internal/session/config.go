// Package session holds the options shared by every restore request of one run.
package session

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/rahulagarwal0605/feedrestore/internal/feed"
	"github.com/rahulagarwal0605/feedrestore/internal/provider"
	"github.com/rahulagarwal0605/feedrestore/internal/settings"
	"github.com/rahulagarwal0605/feedrestore/internal/utils"
)

// Config contains session-wide restore options.
type Config struct {
	// Sources replace the configured sources when non-empty.
	Sources []string
	// FallbackSources are appended after the effective sources.
	FallbackSources []string
	// GlobalPackagesFolder overrides the configured folder when set.
	GlobalPackagesFolder string
	// Settings, when set, is used for every project instead of resolving per directory.
	Settings *settings.Settings

	DisableParallel bool
	// Throttle gates remote feed operations. Prepare creates a binary one when
	// DisableParallel is set and none was supplied.
	Throttle *semaphore.Weighted

	// LowercaseGlobalPackagesFolder lower-cases folder paths in provider cache keys.
	LowercaseGlobalPackagesFolder bool

	NoCache             bool
	IgnoreFailedSources bool
	// CacheContext is created per run when nil and closed when the run ends.
	CacheContext *provider.CacheContext

	ProviderCache    *provider.Cache
	SettingsResolver settings.Resolver
	Log              *zerolog.Logger

	mu            sync.Mutex
	settingsByDir map[string]*settings.Settings
}

// Effective is the folder and source configuration resolved for one project.
type Effective struct {
	GlobalPackagesFolder string
	FallbackFolders      []string
	Sources              []feed.PackageSource
}

// Prepare fills unset collaborators with their defaults.
func (c *Config) Prepare() {
	if c.Log == nil {
		nop := zerolog.Nop()
		c.Log = &nop
	}
	if c.SettingsResolver == nil {
		c.SettingsResolver = settings.NewFileResolver(c.Log)
	}
	if c.ProviderCache == nil {
		c.ProviderCache = provider.NewCache(nil, c.LowercaseGlobalPackagesFolder)
	}
	if c.DisableParallel && c.Throttle == nil {
		c.Throttle = semaphore.NewWeighted(1)
	}
}

// Logger returns the session logger, or a disabled one.
func (c *Config) Logger() *zerolog.Logger {
	if c.Log == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return c.Log
}

// ResolveSettings returns the settings that apply to the project whose manifest is at
// manifestPath. Results are reused for projects in the same directory.
func (c *Config) ResolveSettings(ctx context.Context, manifestPath string) (*settings.Settings, error) {
	if c.Settings != nil {
		return c.Settings, nil
	}
	if c.SettingsResolver == nil {
		return nil, fmt.Errorf("settings resolver not configured")
	}

	dir := filepath.Dir(manifestPath)

	c.mu.Lock()
	if s, ok := c.settingsByDir[dir]; ok {
		c.mu.Unlock()
		return s, nil
	}
	c.mu.Unlock()

	s, err := c.SettingsResolver.ResolveSettings(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("resolve settings for %s: %w", dir, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.settingsByDir == nil {
		c.settingsByDir = make(map[string]*settings.Settings)
	}
	c.settingsByDir[dir] = s
	return s, nil
}

// Effective applies the session overrides to s.
func (c *Config) Effective(s *settings.Settings) Effective {
	eff := Effective{
		GlobalPackagesFolder: s.GlobalPackagesFolder,
		FallbackFolders:      append([]string(nil), s.FallbackFolders...),
		Sources:              append([]feed.PackageSource(nil), s.Sources...),
	}

	if c.GlobalPackagesFolder != "" {
		eff.GlobalPackagesFolder = c.GlobalPackagesFolder
	}
	if len(c.Sources) > 0 {
		eff.Sources = utils.ConvertSlice(c.Sources, feed.NewPackageSource)
	}
	for _, src := range c.FallbackSources {
		eff.Sources = append(eff.Sources, feed.NewPackageSource(src))
	}

	eff.Sources = utils.Deduplicate(eff.Sources, feed.PackageSource.Key)
	return eff
}
