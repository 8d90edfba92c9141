// Package workerpool implements the parallel worker pool (C4): a set of
// goroutines that build frames out of order from a shared read-only source
// image, submitting (index, Frame) results to an ordered streamer.
//
// The concurrency pattern follows the channel-based worker pool idiom used
// elsewhere in the pack's frame-processing stages: a buffered job channel,
// a fixed number of worker goroutines, and golang.org/x/sync/errgroup to
// collect the first worker failure and cancel the rest.
package workerpool

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/yinshiyionly/scrollcast/internal/frame"
)

// Result is one completed frame, tagged with its index so the streamer can
// reassemble the stream in order.
type Result struct {
	Index int
	Bytes []byte
}

// Pool runs a fixed number of worker goroutines that pull batches of frame
// indices and push completed frames to Results.
type Pool struct {
	builder   *frame.Builder
	workers   int
	batchSize int
	total     int

	Results chan Result

	aborted atomic.Bool
}

// New constructs a Pool. total is N_total, the number of frames to produce.
func New(builder *frame.Builder, workers, batchSize, total int) *Pool {
	if workers < 1 {
		workers = 1
	}
	if batchSize < 1 {
		batchSize = 1
	}
	return &Pool{
		builder:   builder,
		workers:   workers,
		batchSize: batchSize,
		total:     total,
		// Bounded result channel backs the reorder buffer's backpressure:
		// workers block on this push once the streamer falls behind.
		Results: make(chan Result, workers*batchSize*2),
	}
}

// Abort sets the cooperative abort flag. In-flight batches finish the frame
// they're on and then exit without producing further results.
func (p *Pool) Abort() {
	p.aborted.Store(true)
}

// Aborted reports whether Abort has been called.
func (p *Pool) Aborted() bool {
	return p.aborted.Load()
}

// Run partitions [0, total) into contiguous batches, fans them out across
// the worker goroutines, and closes Results once every batch has completed
// or the context is cancelled. It returns the first worker error, if any.
func (p *Pool) Run(ctx context.Context) error {
	batches := make(chan [2]int, p.workers*2)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(batches)
		for start := 0; start < p.total; start += p.batchSize {
			end := start + p.batchSize
			if end > p.total {
				end = p.total
			}
			select {
			case batches <- [2]int{start, end}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < p.workers; w++ {
		g.Go(func() error {
			for {
				select {
				case b, ok := <-batches:
					if !ok {
						return nil
					}
					if err := p.runBatch(ctx, b[0], b[1]); err != nil {
						return err
					}
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		})
	}

	err := g.Wait()
	close(p.Results)
	return err
}

func (p *Pool) runBatch(ctx context.Context, start, end int) error {
	for i := start; i < end; i++ {
		if p.Aborted() {
			return nil
		}
		bytes := p.builder.Build(i)
		select {
		case p.Results <- Result{Index: i, Bytes: bytes}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
