// Package sampling evaluates continuous maps over batches of points.
// Evaluation at independent points shares only read-only map and skeletal
// data, so batches fan out across a bounded worker pool with no
// synchronization beyond the result slice.
package sampling

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"cellforge/internal/topology"
)

// EvalBatch evaluates m at every point of pts, preserving order. Domain
// violations surface as errors rather than panics: the map layer asserts
// its invariants by panicking, and this boundary converts those into
// values a caller can handle. workers ≤ 0 selects GOMAXPROCS.
func EvalBatch(ctx context.Context, m topology.Map, pts []topology.Point, workers int) ([]topology.Point, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	out := make([]topology.Point, len(pts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range pts {
		i, p := i, p
		g.Go(func() (err error) {
			if e := ctx.Err(); e != nil {
				return e
			}
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("eval %s at %v: %v", m.Name(), p, r)
				}
			}()
			out[i] = m.At(p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
