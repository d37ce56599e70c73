package compose

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/SpecCade/SpecCade-sub007/internal/ctxlog"
	"github.com/SpecCade/SpecCade-sub007/tracker"
)

// ExpandAll expands every pattern of the song on a bounded worker pool and
// returns the grids by pattern name. Patterns share no mutable state, so
// each worker runs its own Expander; dispatch order is the sorted pattern
// names, keeping runs reproducible regardless of map iteration order.
//
// workers <= 0 means one worker per available CPU. The first failing pattern
// cancels the remaining work and its error is returned.
func ExpandAll(ctx context.Context, params *SongParams, seed uint32, workers int) (map[string]*tracker.Pattern, error) {
	logger := ctxlog.FromContext(ctx)
	if params == nil {
		return nil, &Error{Kind: InvalidExpr, Detail: "nil song params"}
	}

	names := make([]string, 0, len(params.Patterns))
	for name := range params.Patterns {
		names = append(names, name)
	}
	sort.Strings(names)

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(names) {
		workers = len(names)
	}
	logger.Debug("Expanding song patterns.", "patterns", len(names), "workers", workers)

	grids := make([]*tracker.Pattern, len(names))
	jobs := make(chan int)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		for i := range names {
			select {
			case jobs <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		workerLogger := logger.With("workerID", w)
		g.Go(func() error {
			for i := range jobs {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				name := names[i]
				workerLogger.Debug("Worker picked up pattern.", "pattern", name)
				grid, err := Expand(gctx, params, name, seed)
				if err != nil {
					workerLogger.Debug("Pattern expansion failed.", "pattern", name, "error", err)
					return err
				}
				grids[i] = grid
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]*tracker.Pattern, len(names))
	for i, name := range names {
		out[name] = grids[i]
	}
	logger.Debug("Song patterns expanded.", "patterns", len(out))
	return out, nil
}
