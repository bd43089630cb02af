package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rahulagarwal0605/feedrestore/internal/engine"
	"github.com/rahulagarwal0605/feedrestore/internal/request"
	"github.com/rahulagarwal0605/feedrestore/internal/restore"
)

// RestoreCmd restores the projects of one or more dependency graph files.
type RestoreCmd struct {
	Inputs              []string `arg:"" help:"Dependency graph files (.dg)" type:"path"`
	Source              []string `short:"s" help:"Package source to use instead of the configured sources (repeatable)"`
	FallbackSource      []string `help:"Package source tried after the configured sources (repeatable)"`
	DisableParallel     bool     `help:"Access remote sources one request at a time"`
	NoCache             bool     `help:"Do not reuse remote lookups within this run"`
	IgnoreFailedSources bool     `help:"Treat unreachable sources as warnings"`
	LowercasePackages   bool     `help:"Compare package folder paths case-insensitively"`
}

// Run executes the restore command.
func (c *RestoreCmd) Run(globals *GlobalOptions, log *zerolog.Logger, ctx context.Context) error {
	defer WriteMetrics(globals.MetricsFile, log)

	sources, err := AbsSources(c.Source)
	if err != nil {
		return err
	}
	fallback, err := AbsSources(c.FallbackSource)
	if err != nil {
		return err
	}

	cfg := NewSessionConfig(globals, log)
	cfg.Sources = sources
	cfg.FallbackSources = fallback
	cfg.DisableParallel = c.DisableParallel
	cfg.NoCache = c.NoCache
	cfg.IgnoreFailedSources = c.IgnoreFailedSources
	cfg.LowercaseGlobalPackagesFolder = c.LowercasePackages

	runner := &restore.Runner{
		Config:    cfg,
		Providers: []request.Provider{request.NewGraphFileProvider()},
		Inputs:    c.Inputs,
		Executor:  engine.New(),
	}

	log.Info().Int("inputs", len(c.Inputs)).Msg("Restoring")
	results, err := runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("restore: %w", err)
	}

	restore.LogSummary(log, results)
	if !restore.Success(results, log) {
		return fmt.Errorf("restore failed for %d of %d projects", countFailed(results), len(results))
	}
	return nil
}

func countFailed(results []*restore.Result) int {
	n := 0
	for _, r := range results {
		if !r.Success {
			n++
		}
	}
	return n
}
