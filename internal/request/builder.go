package request

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rahulagarwal0605/feedrestore/internal/graph"
	"github.com/rahulagarwal0605/feedrestore/internal/manifest"
	"github.com/rahulagarwal0605/feedrestore/internal/session"
	"github.com/rahulagarwal0605/feedrestore/internal/utils"
)

// Build creates one request per entry point of reader. Relative manifest and build
// paths are resolved against baseDir.
//
// Per-project problems (settings, manifest, provider cache) are recorded on the
// request and never fail the whole build; only a cancelled context does.
func Build(ctx context.Context, reader *graph.Reader, baseDir string, cfg *session.Config) ([]*Request, error) {
	entryPoints := reader.GetEntryPoints()
	requests := make([]*Request, len(entryPoints))

	g, gctx := errgroup.WithContext(ctx)
	for i, node := range entryPoints {
		i, node := i, node
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			requests[i] = buildOne(gctx, reader, node, baseDir, cfg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return requests, nil
}

func buildOne(ctx context.Context, reader *graph.Reader, node *graph.ProjectNode, baseDir string, cfg *session.Config) *Request {
	log := cfg.Logger()
	req := &Request{
		Project:      node,
		ManifestPath: utils.ResolvePath(baseDir, node.ManifestPath),
		BuildPath:    utils.ResolvePath(baseDir, node.BuildPath),
	}

	s, err := cfg.ResolveSettings(ctx, req.ManifestPath)
	if err != nil {
		req.Err = err
		return req
	}
	req.Settings = s

	eff := cfg.Effective(s)
	req.Sources = eff.Sources

	if cfg.ProviderCache == nil {
		req.Err = fmt.Errorf("provider cache not configured")
		return req
	}
	req.Cache, err = cfg.ProviderCache.GetOrCreate(eff.GlobalPackagesFolder, eff.FallbackFolders, eff.Sources, cfg.CacheContext, log)
	if err != nil {
		req.Err = err
		return req
	}

	req.References = reader.GetReferences(node.BuildPath)

	req.Manifest, err = manifest.Load(req.ManifestPath)
	if err != nil {
		req.Err = err
		return req
	}

	log.Debug().
		Str("project", req.ProjectPath()).
		Int("references", len(req.References)).
		Int("sources", len(req.Sources)).
		Msg("Created restore request")
	return req
}
