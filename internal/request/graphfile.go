package request

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rahulagarwal0605/feedrestore/internal/constants"
	ferrors "github.com/rahulagarwal0605/feedrestore/internal/errors"
	"github.com/rahulagarwal0605/feedrestore/internal/graph"
	"github.com/rahulagarwal0605/feedrestore/internal/session"
	"github.com/rahulagarwal0605/feedrestore/internal/utils"
)

// GraphFileProvider handles dependency graph files ending in .dg.
type GraphFileProvider struct{}

// NewGraphFileProvider creates a graph file provider.
func NewGraphFileProvider() *GraphFileProvider {
	return &GraphFileProvider{}
}

// Supports reports whether input is an existing .dg file.
func (p *GraphFileProvider) Supports(ctx context.Context, input string) (bool, error) {
	if strings.TrimSpace(input) == "" {
		return false, ferrors.ErrInputPathRequired
	}
	return utils.HasSuffixFold(input, constants.GraphFileExt) && utils.FileExists(input), nil
}

// CreateRequests reads the graph file and builds a request per entry point.
// Relative paths in the file are resolved against its directory.
func (p *GraphFileProvider) CreateRequests(ctx context.Context, input string, cfg *session.Config) ([]*Request, error) {
	path, err := filepath.Abs(input)
	if err != nil {
		return nil, fmt.Errorf("resolve graph file %s: %w", input, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open graph file: %w", err)
	}
	defer f.Close()

	lines, err := utils.ReadLines(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("read graph file %s: %w", path, err)
	}

	reader := graph.NewReader(lines, cfg.Logger())
	cfg.Logger().Debug().Str("file", path).Int("projects", reader.Len()).Msg("Read dependency graph")

	return Build(ctx, reader, filepath.Dir(path), cfg)
}

// PreloadedGraphProvider builds requests from graph lines held in memory.
type PreloadedGraphProvider struct {
	Lines   []string
	BaseDir string // Base for relative paths; the working directory when empty
}

// NewPreloadedGraphProvider creates a provider over lines.
func NewPreloadedGraphProvider(lines []string) *PreloadedGraphProvider {
	return &PreloadedGraphProvider{Lines: lines}
}

// CreateRequests builds a request per entry point of the held graph.
func (p *PreloadedGraphProvider) CreateRequests(ctx context.Context, cfg *session.Config) ([]*Request, error) {
	baseDir := p.BaseDir
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get cwd: %w", err)
		}
		baseDir = wd
	}

	reader := graph.NewReader(p.Lines, cfg.Logger())
	return Build(ctx, reader, baseDir, cfg)
}
