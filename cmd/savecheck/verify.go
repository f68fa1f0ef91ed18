package main

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/zelda/internal/savegame"
)

// Result is the outcome of verifying one slot.
type Result struct {
	Slot    savegame.SlotInfo
	Err     error
	Elapsed time.Duration
}

// verifyAll checks every slot with at most workers concurrent loads.
// A broken slot does not stop the others; only cancellation does.
func verifyAll(ctx context.Context, mgr *savegame.Manager, slots []savegame.SlotInfo, workers int) ([]Result, error) {
	results := make([]Result, len(slots))

	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, info := range slots {
		i, info := i, info
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			err := mgr.Verify(gctx, info.Slot)
			results[i] = Result{Slot: info, Err: err, Elapsed: time.Since(start)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
