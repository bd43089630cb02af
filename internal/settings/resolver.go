package settings

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rahulagarwal0605/feedrestore/internal/constants"
	"github.com/rahulagarwal0605/feedrestore/internal/feed"
	"github.com/rahulagarwal0605/feedrestore/internal/utils"
)

// FileResolver reads settings files along the directory tree.
//
// Files are merged outermost first: the user-level file, then every directory from
// the filesystem root down to the start directory. Later files override the global
// packages folder, append fallback folders and sources, and may clear inherited
// sources or disable them by name.
type FileResolver struct {
	UserFile      string // User-level settings file; empty disables it
	DefaultFolder string // Global packages folder when no file sets one
	ConfigFile    string // When set, only this file is read and directories are not searched
	log           *zerolog.Logger
}

// NewFileResolver creates a resolver with user-level defaults taken from the environment.
func NewFileResolver(log *zerolog.Logger) *FileResolver {
	return &FileResolver{
		UserFile:      DefaultUserFile(),
		DefaultFolder: DefaultGlobalPackagesFolder(),
		ConfigFile:    os.Getenv(constants.EnvConfigFile),
		log:           log,
	}
}

// DefaultUserFile returns $XDG_CONFIG_HOME/feedrestore/feedrestore.yaml, falling back
// to ~/.config.
func DefaultUserFile() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, constants.AppDirName, constants.SettingsFileName)
}

// DefaultGlobalPackagesFolder returns $FEEDRESTORE_PACKAGES or ~/.feedrestore/packages.
func DefaultGlobalPackagesFolder() string {
	if dir := os.Getenv(constants.EnvPackagesFolder); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), constants.AppDirName, "packages")
	}
	return filepath.Join(home, "."+constants.AppDirName, "packages")
}

// ResolveSettings merges the settings files that apply to startDir.
func (r *FileResolver) ResolveSettings(ctx context.Context, startDir string) (*Settings, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var paths []string
	if r.ConfigFile != "" {
		if !utils.FileExists(r.ConfigFile) {
			return nil, fmt.Errorf("settings file %s: %w", r.ConfigFile, os.ErrNotExist)
		}
		paths = []string{r.ConfigFile}
	} else {
		if r.UserFile != "" {
			paths = append(paths, r.UserFile)
		}
		absStart, err := filepath.Abs(startDir)
		if err != nil {
			return nil, fmt.Errorf("resolve start dir: %w", err)
		}
		for _, dir := range utils.AncestorDirs(absStart) {
			paths = append(paths, filepath.Join(dir, constants.SettingsFileName))
		}
	}

	m := newMerger(r.DefaultFolder)
	for _, path := range paths {
		file, err := utils.ReadYAMLFileIfExists[File](path)
		if err != nil {
			return nil, fmt.Errorf("read settings %s: %w", path, err)
		}
		if file == nil {
			continue
		}
		if r.log != nil {
			r.log.Debug().Str("path", path).Msg("Applying settings file")
		}
		m.apply(path, file)
	}

	return m.result(), nil
}

// merger accumulates settings files in precedence order.
type merger struct {
	settings Settings
	sources  []SourceConfig
}

func newMerger(defaultFolder string) *merger {
	return &merger{settings: Settings{GlobalPackagesFolder: defaultFolder}}
}

func (m *merger) apply(path string, file *File) {
	base := filepath.Dir(path)
	m.settings.Files = append(m.settings.Files, path)

	if file.GlobalPackagesFolder != "" {
		m.settings.GlobalPackagesFolder = utils.ResolvePath(base, file.GlobalPackagesFolder)
	}
	for _, folder := range file.FallbackFolders {
		m.settings.FallbackFolders = append(m.settings.FallbackFolders, utils.ResolvePath(base, folder))
	}

	if file.Clear {
		m.sources = nil
	}
	for _, src := range file.Sources {
		if src.URL == "" {
			// A bare name toggles an inherited source
			m.toggle(src)
			continue
		}
		if !utils.IsHTTPURL(src.URL) {
			src.URL = utils.ResolvePath(base, utils.LocalPath(src.URL))
		}
		m.sources = append(m.sources, src)
	}
}

func (m *merger) toggle(src SourceConfig) {
	for i := range m.sources {
		if strings.EqualFold(m.sources[i].Name, src.Name) {
			m.sources[i].Enabled = src.Enabled
		}
	}
}

func (m *merger) result() *Settings {
	out := m.settings
	var sources []feed.PackageSource
	for _, src := range m.sources {
		if !src.IsEnabled() {
			continue
		}
		sources = append(sources, feed.NewNamedPackageSource(src.Name, src.URL))
	}
	out.Sources = utils.Deduplicate(sources, feed.PackageSource.Key)
	out.FallbackFolders = utils.Deduplicate(out.FallbackFolders, func(s string) string { return s })
	return &out
}
