package cloud

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Ensemble generates independent clouds concurrently. Request i is sampled
// by its own Sampler seeded seedStart+i, so results do not depend on
// scheduling.
type Ensemble struct {
	opts      Options
	seedStart uint64
	limit     int
}

func NewEnsemble(opts Options, seedStart uint64) *Ensemble {
	return &Ensemble{opts: opts, seedStart: seedStart, limit: runtime.GOMAXPROCS(0)}
}

// WithLimit caps the number of clouds generated at once.
func (e *Ensemble) WithLimit(n int) *Ensemble {
	if n > 0 {
		e.limit = n
	}
	return e
}

// Run returns one report per request, in request order. The first error
// cancels the remaining work.
func (e *Ensemble) Run(ctx context.Context, reqs []Request) ([]Report, error) {
	reports := make([]Report, len(reqs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.limit)
	for i, req := range reqs {
		g.Go(func() error {
			s := NewSeeded(e.seedStart+uint64(i), e.opts)
			rep, err := s.GenerateReport(ctx, req)
			if err != nil {
				return err
			}
			reports[i] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// GenerateBatch is Ensemble.Run returning only the points.
func GenerateBatch(ctx context.Context, reqs []Request, seed uint64, opts Options) ([][]Point, error) {
	reports, err := NewEnsemble(opts, seed).Run(ctx, reqs)
	if err != nil {
		return nil, err
	}
	out := make([][]Point, len(reports))
	for i, r := range reports {
		out[i] = r.Points
	}
	return out, nil
}
