// Package worker fans fingerprint acquisition out across a pool of
// goroutines. Hashing is pure and per-file, so frames can be processed in any
// order; the pool re-assembles results into strict capture order by index
// before they reach the classifier, which has no way to detect misordering.
package worker

import (
	"context"
	"runtime"
	"sync"

	"github.com/nkuzmik/slidedistill/internal/classify"
	"github.com/nkuzmik/slidedistill/internal/types"
)

// Hasher computes the fingerprint for a single image file.
type Hasher func(path string) (classify.Fingerprint, error)

// Pool runs fingerprint acquisition over Workers goroutines.
type Pool struct {
	Workers int
	Hash    Hasher

	// OnResult, when set, observes every completed task from the collecting
	// goroutine. Used for progress reporting and per-item warnings.
	OnResult func(types.HashResult)
}

// Run hashes every path and returns one Frame per input, in input order.
// A frame whose acquisition failed keeps a nil fingerprint; failures never
// abort the batch. Run returns early only when ctx is cancelled.
func (p *Pool) Run(ctx context.Context, paths []string) ([]classify.Frame, error) {
	workers := p.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	frames := make([]classify.Frame, len(paths))
	for i, path := range paths {
		frames[i] = classify.Frame{Index: i, Source: path}
	}

	tasks := make(chan types.HashTask)
	results := make(chan types.HashResult, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range tasks {
				hash, err := p.Hash(task.Path)
				res := types.HashResult{Index: task.Index, Path: task.Path, Err: err}
				if err == nil {
					res.Hash = hash
				}
				select {
				case results <- res:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	// Feeder
	go func() {
		defer close(tasks)
		for i, path := range paths {
			select {
			case tasks <- types.HashTask{Index: i, Path: path}:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	// Single consumer: writes land at the result's own index, so completion
	// order never leaks into frame order.
	for res := range results {
		frames[res.Index].Hash = res.Hash
		if p.OnResult != nil {
			p.OnResult(res)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return frames, nil
}
