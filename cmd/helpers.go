package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/rahulagarwal0605/feedrestore/internal/graph"
	"github.com/rahulagarwal0605/feedrestore/internal/logger"
	"github.com/rahulagarwal0605/feedrestore/internal/metrics"
	"github.com/rahulagarwal0605/feedrestore/internal/session"
	"github.com/rahulagarwal0605/feedrestore/internal/settings"
	"github.com/rahulagarwal0605/feedrestore/internal/utils"
)

// NewSessionConfig creates session options from the global flags.
func NewSessionConfig(globals *GlobalOptions, log *zerolog.Logger) *session.Config {
	resolver := settings.NewFileResolver(log)
	if globals.ConfigFile != "" {
		resolver.ConfigFile = globals.ConfigFile
	}

	return &session.Config{
		GlobalPackagesFolder: globals.PackagesDir,
		SettingsResolver:     resolver,
		Log:                  log,
	}
}

// AbsSources makes local sources absolute against the working directory.
// URLs are returned unchanged.
func AbsSources(sources []string) ([]string, error) {
	out := make([]string, 0, len(sources))
	for _, src := range sources {
		if utils.IsHTTPURL(src) {
			out = append(out, src)
			continue
		}
		abs, err := filepath.Abs(utils.LocalPath(src))
		if err != nil {
			return nil, fmt.Errorf("resolve source %s: %w", src, err)
		}
		out = append(out, abs)
	}
	return out, nil
}

// ReadGraphLines reads graph lines from path, or from stdin when path is empty.
// It also returns the directory relative paths in the graph are resolved against.
func ReadGraphLines(ctx context.Context, path string) ([]string, string, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, "", fmt.Errorf("get cwd: %w", err)
		}
		lines, err := utils.ReadLines(ctx, os.Stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read graph from stdin: %w", err)
		}
		return lines, wd, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open graph file: %w", err)
	}
	defer f.Close()

	lines, err := utils.ReadLines(ctx, f)
	if err != nil {
		return nil, "", fmt.Errorf("read graph file %s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, "", fmt.Errorf("resolve graph file %s: %w", path, err)
	}
	logger.Log(ctx).Debug().Str("file", abs).Int("lines", len(lines)).Msg("Read graph file")
	return lines, filepath.Dir(abs), nil
}

// WriteMetrics exports the collected metrics when path is set.
func WriteMetrics(path string, log *zerolog.Logger) {
	if path == "" {
		return
	}
	if err := metrics.WriteTextfile(path); err != nil {
		log.Warn().Err(err).Str("file", path).Msg("Failed to write metrics")
		return
	}
	log.Debug().Str("file", path).Msg("Wrote metrics")
}

// printGraph prints each entry point followed by its transitive references.
func printGraph(w io.Writer, reader *graph.Reader) {
	entryPoints := reader.GetEntryPoints()
	if len(entryPoints) == 0 {
		fmt.Fprintln(w, "No restorable projects found")
		return
	}

	for _, node := range entryPoints {
		printProject(w, reader, node)
	}
}

func printProject(w io.Writer, reader *graph.Reader, node *graph.ProjectNode) {
	fmt.Fprintf(w, "%s (%s)\n", node.DisplayName(), node.BuildPath)
	if node.ManifestPath != "" {
		fmt.Fprintf(w, "  manifest: %s\n", node.ManifestPath)
	}
	for _, ref := range reader.GetReferences(node.BuildPath) {
		fmt.Fprintf(w, "  -> %s\n", ref.DisplayName())
	}
}
