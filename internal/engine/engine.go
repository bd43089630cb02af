// Package engine is the default restore executor: it installs each manifest
// dependency into the global packages folder from fallback folders or feeds.
package engine

import (
	"context"
	"crypto/sha512"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	ferrors "github.com/rahulagarwal0605/feedrestore/internal/errors"
	"github.com/rahulagarwal0605/feedrestore/internal/feed"
	"github.com/rahulagarwal0605/feedrestore/internal/logger"
	"github.com/rahulagarwal0605/feedrestore/internal/manifest"
	"github.com/rahulagarwal0605/feedrestore/internal/metrics"
	"github.com/rahulagarwal0605/feedrestore/internal/provider"
	"github.com/rahulagarwal0605/feedrestore/internal/request"
	"github.com/rahulagarwal0605/feedrestore/internal/restore"
	"github.com/rahulagarwal0605/feedrestore/internal/session"
	"github.com/rahulagarwal0605/feedrestore/internal/utils"
)

// Engine installs pinned dependencies. It holds no state and is safe for concurrent use.
type Engine struct{}

// New creates an engine.
func New() *Engine {
	return &Engine{}
}

// install is the state of one Execute call.
type install struct {
	req            *request.Request
	cfg            *session.Config
	log            zerolog.Logger
	ignoreFailures bool
}

// Execute restores the request's dependencies. Warnings and errors logged while doing
// so become the result's diagnostics; the result fails if any error was logged.
func (e *Engine) Execute(ctx context.Context, req *request.Request, cfg *session.Config) *restore.Result {
	start := time.Now()

	var collector logger.Collector
	log := collector.Attach(cfg.Logger()).With().Str("project", req.ProjectName()).Logger()

	in := &install{req: req, cfg: cfg, log: log, ignoreFailures: cfg.IgnoreFailedSources}
	in.run(ctx)

	return &restore.Result{
		ProjectPath: req.ProjectPath(),
		ProjectName: req.ProjectName(),
		Success:     !collector.HasErrors(),
		Diagnostics: collector.Diagnostics(),
		Duration:    time.Since(start),
	}
}

func (in *install) run(ctx context.Context) {
	req := in.req
	if req.Err != nil {
		in.log.Error().Msgf("Restore request is incomplete: %v", req.Err)
		return
	}
	if req.Cache == nil || req.Manifest == nil {
		in.log.Error().Msg("Restore request has no provider cache or manifest")
		return
	}
	if cacheCtx := req.Cache.CacheContext; cacheCtx != nil {
		if err := cacheCtx.Err(); err != nil {
			in.log.Error().Msgf("Cannot restore: %v", err)
			return
		}
		in.ignoreFailures = in.ignoreFailures || cacheCtx.IgnoreFailedSources
	}

	for _, ref := range req.References {
		in.log.Debug().Str("reference", ref.DisplayName()).Msg("Project reference")
	}

	if err := utils.CreateDir(req.Cache.GlobalPackagesFolder, "global packages"); err != nil {
		in.log.Error().Msgf("Cannot prepare global packages folder: %v", err)
		return
	}

	for _, dep := range req.Manifest.Dependencies {
		if err := ctx.Err(); err != nil {
			in.log.Error().Err(err).Msg("Restore cancelled")
			return
		}
		in.installDependency(ctx, dep)
	}
}

func (in *install) installDependency(ctx context.Context, dep manifest.Dependency) {
	cache := in.req.Cache
	log := in.log.With().Str("package", dep.String()).Logger()

	if err := dep.Validate(); err != nil {
		log.Error().Msgf("Invalid dependency: %v", err)
		return
	}

	if utils.FileExists(feed.V3PackagePath(cache.GlobalPackagesFolder, dep.ID, dep.Version)) {
		log.Debug().Msg("Already installed")
		return
	}
	for _, folder := range cache.FallbackFolders {
		if utils.FileExists(feed.V3PackagePath(folder, dep.ID, dep.Version)) {
			log.Debug().Str("folder", folder).Msg("Found in fallback folder")
			return
		}
	}

	for _, f := range cache.Feeds() {
		done, err := in.tryFeed(ctx, f, dep)
		if err != nil {
			if ctx.Err() != nil {
				log.Error().Err(ctx.Err()).Msg("Restore cancelled")
				return
			}
			if in.ignoreFailures && errors.Is(err, ferrors.ErrSourceUnavailable) {
				log.Warn().Msgf("Ignoring failed source %s: %v", f.Source().Name(), err)
				continue
			}
			log.Error().Msgf("Failed to retrieve %s from %s: %v", dep, f.Source().Name(), err)
			continue
		}
		if done {
			metrics.RecordPackageInstalled()
			log.Info().Str("source", f.Source().Name()).Msg("Installed package")
			return
		}
	}

	log.Error().Msgf("Unable to find package %s", dep)
}

// tryFeed installs dep from f when f has it. Remote feeds are accessed under the
// session throttle when one is set.
func (in *install) tryFeed(ctx context.Context, f provider.Feed, dep manifest.Dependency) (bool, error) {
	if throttle := in.cfg.Throttle; throttle != nil && f.Source().IsRemote() {
		if err := throttle.Acquire(ctx, 1); err != nil {
			return false, err
		}
		defer throttle.Release(1)
	}

	found, err := f.FindPackage(ctx, dep.ID, dep.Version)
	if err != nil || !found {
		return false, err
	}

	rc, err := f.OpenPackage(ctx, dep.ID, dep.Version)
	if err != nil {
		if errors.Is(err, ferrors.ErrPackageNotFound) {
			return false, nil
		}
		return false, err
	}
	defer rc.Close()

	if err := writePackage(in.req.Cache.GlobalPackagesFolder, dep, rc); err != nil {
		return false, err
	}
	return true, nil
}

// writePackage stores the archive in V3 layout with its base64 SHA-512 next to it.
func writePackage(globalFolder string, dep manifest.Dependency, r io.Reader) error {
	archivePath := feed.V3PackagePath(globalFolder, dep.ID, dep.Version)
	if !utils.WithinDir(globalFolder, archivePath) {
		return fmt.Errorf("install %s: path %s is outside %s", dep, archivePath, globalFolder)
	}
	hash := sha512.New()

	if err := utils.WriteFileAtomic(archivePath, io.TeeReader(r, hash)); err != nil {
		return fmt.Errorf("install %s: %w", dep, err)
	}

	hashPath := filepath.Join(filepath.Dir(archivePath), feed.HashFileName(dep.ID, dep.Version))
	encoded := base64.StdEncoding.EncodeToString(hash.Sum(nil))
	if err := utils.WriteFileAtomic(hashPath, strings.NewReader(encoded)); err != nil {
		return fmt.Errorf("write hash for %s: %w", dep, err)
	}
	return nil
}
