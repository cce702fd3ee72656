package inspect

import (
	"context"
	"runtime"
	"sync"

	"github.com/jabrailkhalil/photoshutterinspector/internal/record"
)

// BatchResult is the outcome of analyzing a set of files. Records keep
// the input file order regardless of which worker finished first.
type BatchResult struct {
	Records []record.ShutterRecord

	// Incomplete is set when cancellation stopped the batch before every
	// file was processed; Records then holds only the finished files.
	Incomplete bool
}

// ToolFailures counts the files that could not be processed at all.
// An unavailable count alone is a successful-but-inconclusive result
// and does not count here.
func (b BatchResult) ToolFailures() int {
	n := 0
	for i := range b.Records {
		if b.Records[i].ToolError {
			n++
		}
	}
	return n
}

// Batch analyzes paths with a bounded worker pool. Per-file pipelines
// share no mutable state, so the only coordination needed is the job
// channel and the per-index result slots. onDone, when non-nil, is
// invoked from worker goroutines as each file finishes and must be safe
// for concurrent use.
//
// Cancelling ctx stops new files from being dispatched; in-flight
// subprocess calls are terminated through the same context. Finished
// records are still returned, marked incomplete.
func (ins *Inspector) Batch(ctx context.Context, paths []string, workers int, onDone func(index int, rec record.ShutterRecord)) BatchResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	jobs := make(chan int)
	results := make([]record.ShutterRecord, len(paths))
	finished := make([]bool, len(paths))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				rec := ins.InspectFile(ctx, paths[i])
				results[i] = rec
				finished[i] = true
				if onDone != nil {
					onDone(i, rec)
				}
			}
		}()
	}

	cancelled := false
dispatch:
	for i := range paths {
		select {
		case <-ctx.Done():
			cancelled = true
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if !cancelled && ctx.Err() != nil {
		cancelled = true
	}
	if !cancelled {
		return BatchResult{Records: results}
	}

	// Keep only the files that actually finished, in input order.
	done := make([]record.ShutterRecord, 0, len(paths))
	for i := range results {
		if finished[i] {
			done = append(done, results[i])
		}
	}
	return BatchResult{Records: done, Incomplete: true}
}
