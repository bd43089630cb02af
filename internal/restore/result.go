// Package restore runs restore sessions: it turns inputs into requests through the
// registered providers, executes them and aggregates the results.
package restore

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/rahulagarwal0605/feedrestore/internal/logger"
	"github.com/rahulagarwal0605/feedrestore/internal/request"
	"github.com/rahulagarwal0605/feedrestore/internal/session"
)

// Result is the outcome of one restore request.
type Result struct {
	ProjectPath string
	ProjectName string
	Success     bool
	Diagnostics []logger.Diagnostic
	Duration    time.Duration
}

// Errors returns the error diagnostics.
func (r *Result) Errors() []logger.Diagnostic {
	var errs []logger.Diagnostic
	for _, d := range r.Diagnostics {
		if d.IsError() {
			errs = append(errs, d)
		}
	}
	return errs
}

// Executor runs a single restore request.
type Executor interface {
	// Execute never returns nil; failures are reported through the result.
	Execute(ctx context.Context, req *request.Request, cfg *session.Config) *Result
}

// FailedResult returns a result for a project that could not be restored.
func FailedResult(projectPath, projectName string, err error) *Result {
	return &Result{
		ProjectPath: projectPath,
		ProjectName: projectName,
		Success:     false,
		Diagnostics: []logger.Diagnostic{{Level: zerolog.ErrorLevel, Message: err.Error()}},
	}
}

// Success reports whether every result succeeded. An empty result list is
// vacuously successful; a warning is logged because it usually means the
// inputs contained no restorable projects.
func Success(results []*Result, log *zerolog.Logger) bool {
	if len(results) == 0 {
		if log != nil {
			log.Warn().Msg("No restore requests were created")
		}
		return true
	}
	for _, r := range results {
		if r == nil || !r.Success {
			return false
		}
	}
	return true
}

// LogSummary logs one line per result followed by the failed projects' diagnostics.
func LogSummary(log *zerolog.Logger, results []*Result) {
	failed := 0
	for _, r := range results {
		if r.Success {
			log.Info().
				Str("project", r.ProjectName).
				Dur("duration", r.Duration).
				Msg("Restored")
			continue
		}

		failed++
		log.Error().
			Str("project", r.ProjectName).
			Str("path", r.ProjectPath).
			Msg("Restore failed")
		for _, d := range r.Errors() {
			log.Error().Str("project", r.ProjectName).Msg("  " + d.Message)
		}
	}

	log.Info().
		Int("projects", len(results)).
		Int("failed", failed).
		Msg("Restore summary")
}
