package experiment

import (
	"context"
	"fmt"
	"log"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/bdragon300/probe-hash/keygen"
	"github.com/bdragon300/probe-hash/table"
)

// Sweep runs the base experiment once per table size. Every run gets its own table and the same key batch, so
// results differ only by the table size. Runs execute concurrently; results are returned in the order of sizes.
//
// Logger may be nil.
func Sweep(ctx context.Context, base Config, sizes []int, logger *log.Logger) ([]Result, error) {
	for _, ts := range sizes {
		cfg := base
		cfg.TableSize = ts
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	if len(sizes) == 0 {
		return nil, nil
	}
	keys, err := keygen.Generate(keygen.NewRand(base.Seed), base.Keys, base.Lengths)
	if err != nil {
		return nil, fmt.Errorf("generate keys: %w", err)
	}

	results := make([]Result, len(sizes))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, ts := range sizes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = Insert(table.NewHashTable(ts, base.Strategy), keys)
			if logger != nil {
				logger.Printf("sweep: %v", results[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Smallest returns the result with the smallest table size whose average comparisons don't exceed target and
// where every key was inserted. Returns false if there is no such result.
func Smallest(results []Result, target float64) (Result, bool) {
	var best Result
	found := false
	for _, r := range results {
		if r.Failed > 0 || r.AverageComparisons > target {
			continue
		}
		if !found || r.TableSize < best.TableSize {
			best, found = r, true
		}
	}
	return best, found
}

// Sizes returns the table sizes from..to inclusive with the given step.
func Sizes(from, to, step int) ([]int, error) {
	if from <= 0 || to < from || step <= 0 {
		return nil, fmt.Errorf("%w: bad size range %d:%d:%d", ErrInvalidConfig, from, to, step)
	}
	var res []int
	for ts := from; ts <= to; ts += step {
		res = append(res, ts)
	}
	return res, nil
}
