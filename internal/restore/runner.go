package restore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	ferrors "github.com/rahulagarwal0605/feedrestore/internal/errors"
	"github.com/rahulagarwal0605/feedrestore/internal/metrics"
	"github.com/rahulagarwal0605/feedrestore/internal/provider"
	"github.com/rahulagarwal0605/feedrestore/internal/request"
	"github.com/rahulagarwal0605/feedrestore/internal/session"
)

// PreloadedSource names results for pre-loaded providers that failed before
// producing any request.
const PreloadedSource = "<preloaded graph>"

// Runner drives one restore session.
type Runner struct {
	Config *session.Config
	// Providers are consulted in order; the first one supporting an input handles it.
	Providers []request.Provider
	// Preloaded providers run before any input.
	Preloaded []request.PreloadedProvider
	Inputs    []string
	Executor  Executor
}

// pending is a request or the reason no request could be created.
type pending struct {
	req    *request.Request
	result *Result
}

// Run creates and executes every request and returns the results in input order.
// The session cache context is created when unset and always closed before Run
// returns. Only contract violations and cancellation are returned as errors.
func (r *Runner) Run(ctx context.Context) ([]*Result, error) {
	if r.Executor == nil {
		return nil, ferrors.ErrNoExecutor
	}

	cfg := r.Config
	if cfg == nil {
		cfg = &session.Config{}
		r.Config = cfg
	}

	// Session-scoped state created here is dropped on return so the config can be reused.
	ownsProviders := cfg.ProviderCache == nil
	ownsCacheCtx := cfg.CacheContext == nil

	cfg.Prepare()
	log := cfg.Logger()

	if ownsCacheCtx {
		cacheCtx := provider.NewCacheContext()
		cacheCtx.NoCache = cfg.NoCache
		cacheCtx.IgnoreFailedSources = cfg.IgnoreFailedSources
		cfg.CacheContext = cacheCtx
	}
	cacheCtx := cfg.CacheContext
	defer func() {
		cacheCtx.Close()
		log.Debug().Str("session", cacheCtx.SessionID.String()).Msg("Released cache context")
		if ownsCacheCtx {
			cfg.CacheContext = nil
		}
		if ownsProviders {
			cfg.ProviderCache = nil
		}
	}()

	work, err := r.collect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	results := make([]*Result, len(work))
	g, gctx := errgroup.WithContext(ctx)
	for i, item := range work {
		i, item := i, item
		if item.result != nil {
			results[i] = item.result
			continue
		}
		g.Go(func() error {
			results[i] = r.execute(gctx, item.req, cfg)
			return nil
		})
	}
	_ = g.Wait()

	for _, res := range results {
		metrics.RecordRestore(res.Success, res.Duration.Seconds())
	}

	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

// collect gathers requests from the pre-loaded providers, then from each input.
func (r *Runner) collect(ctx context.Context, cfg *session.Config) ([]pending, error) {
	log := cfg.Logger()
	var work []pending

	for _, p := range r.Preloaded {
		reqs, err := p.CreateRequests(ctx, cfg)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Error().Err(err).Msg("Failed to create restore requests")
			work = append(work, pending{result: FailedResult(PreloadedSource, PreloadedSource, err)})
			continue
		}
		work = appendRequests(work, reqs)
	}

	for _, input := range r.Inputs {
		p, err := r.providerFor(ctx, input)
		if err != nil {
			if errors.Is(err, ferrors.ErrNoProvider) {
				log.Error().Str("input", input).Msg("No request provider supports input")
				work = append(work, pending{result: FailedResult(input, input, err)})
				continue
			}
			return nil, err
		}

		reqs, err := p.CreateRequests(ctx, input, cfg)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Error().Err(err).Str("input", input).Msg("Failed to create restore requests")
			work = append(work, pending{result: FailedResult(input, input, err)})
			continue
		}
		work = appendRequests(work, reqs)
	}

	return work, nil
}

func appendRequests(work []pending, reqs []*request.Request) []pending {
	for _, req := range reqs {
		if req.Err != nil {
			work = append(work, pending{result: FailedResult(req.ProjectPath(), req.ProjectName(), req.Err)})
			continue
		}
		work = append(work, pending{req: req})
	}
	return work
}

// providerFor returns the first provider supporting input.
func (r *Runner) providerFor(ctx context.Context, input string) (request.Provider, error) {
	for _, p := range r.Providers {
		ok, err := p.Supports(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("check input %q: %w", input, err)
		}
		if ok {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", input, ferrors.ErrNoProvider)
}

func (r *Runner) execute(ctx context.Context, req *request.Request, cfg *session.Config) *Result {
	start := time.Now()
	res := r.Executor.Execute(ctx, req, cfg)
	if res == nil {
		res = FailedResult(req.ProjectPath(), req.ProjectName(), fmt.Errorf("executor returned no result"))
	}
	if res.ProjectPath == "" {
		res.ProjectPath = req.ProjectPath()
	}
	if res.ProjectName == "" {
		res.ProjectName = req.ProjectName()
	}
	if res.Duration == 0 {
		res.Duration = time.Since(start)
	}
	return res
}
