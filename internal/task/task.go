// Package task is the host build boundary: graph lines in, a single success flag out.
package task

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rahulagarwal0605/feedrestore/internal/engine"
	"github.com/rahulagarwal0605/feedrestore/internal/provider"
	"github.com/rahulagarwal0605/feedrestore/internal/request"
	"github.com/rahulagarwal0605/feedrestore/internal/restore"
	"github.com/rahulagarwal0605/feedrestore/internal/session"
)

// RestoreTask restores every entry point of a dependency graph supplied as lines.
type RestoreTask struct {
	GraphLines []string
	// BaseDir resolves relative paths in the graph; the working directory when empty.
	BaseDir string
	// Config overrides the default session options. Inputs are ignored. Fields set
	// for the run are restored afterwards, so the same Config can run again.
	Config *session.Config
	// Executor defaults to the package-installing engine.
	Executor restore.Executor
}

// Execute runs the restore and reports whether every project succeeded.
// Details are logged to log.
func (t *RestoreTask) Execute(ctx context.Context, log *zerolog.Logger) bool {
	log.Debug().Int("lines", len(t.GraphLines)).Msg("Graph size")

	cfg := t.Config
	if cfg == nil {
		cfg = &session.Config{}
	}
	prevLog, prevCacheCtx, prevProviders := cfg.Log, cfg.CacheContext, cfg.ProviderCache
	cfg.Log = log

	cacheCtx := provider.NewCacheContext()
	cacheCtx.NoCache = cfg.NoCache
	cacheCtx.IgnoreFailedSources = cfg.IgnoreFailedSources
	cfg.CacheContext = cacheCtx
	defer func() {
		cacheCtx.Close()
		cfg.Log, cfg.CacheContext, cfg.ProviderCache = prevLog, prevCacheCtx, prevProviders
	}()

	if cfg.ProviderCache == nil {
		cfg.ProviderCache = provider.NewCache(nil, cfg.LowercaseGlobalPackagesFolder)
	}

	executor := t.Executor
	if executor == nil {
		executor = engine.New()
	}

	graphProvider := request.NewPreloadedGraphProvider(t.GraphLines)
	graphProvider.BaseDir = t.BaseDir

	runner := &restore.Runner{
		Config:    cfg,
		Preloaded: []request.PreloadedProvider{graphProvider},
		Executor:  executor,
	}

	results, err := runner.Run(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Restore failed")
		return false
	}

	restore.LogSummary(log, results)
	return restore.Success(results, log)
}
