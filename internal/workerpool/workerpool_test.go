package workerpool

import (
	"context"
	"errors"
	"testing"

	"github.com/yinshiyionly/scrollcast/internal/frame"
	"github.com/yinshiyionly/scrollcast/internal/scroll"
	"github.com/yinshiyionly/scrollcast/internal/source"
)

func newTestBuilder(t *testing.T) *frame.Builder {
	t.Helper()
	pix := make([]byte, 10*1000*4)
	img, err := source.New(10, 1000, pix)
	if err != nil {
		t.Fatalf("source.New: %v", err)
	}
	plan, err := scroll.New(1000, 200, 30, 2.0, 0, 0)
	if err != nil {
		t.Fatalf("scroll.New: %v", err)
	}
	return frame.New(frame.Params{Width: 10, Height: 200}, plan, img)
}

func TestPoolProducesEveryIndexExactlyOnce(t *testing.T) {
	builder := newTestBuilder(t)
	total := 37
	pool := New(builder, 4, 5, total)

	seen := make(map[int]bool)
	done := make(chan error, 1)
	go func() { done <- pool.Run(context.Background()) }()

	for r := range pool.Results {
		if seen[r.Index] {
			t.Fatalf("index %d produced twice", r.Index)
		}
		seen[r.Index] = true
	}
	if err := <-done; err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(seen) != total {
		t.Fatalf("produced %d distinct indices, want %d", len(seen), total)
	}
}

func TestPoolAbortStopsProducingResults(t *testing.T) {
	builder := newTestBuilder(t)
	pool := New(builder, 2, 1, 100000)

	done := make(chan error, 1)
	go func() { done <- pool.Run(context.Background()) }()

	count := 0
	for range pool.Results {
		count++
		if count == 5 {
			pool.Abort()
		}
	}
	if err := <-done; err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if count >= 100000 {
		t.Fatalf("received %d results, want production to stop well before all 100000 after Abort", count)
	}
	if !pool.Aborted() {
		t.Fatal("Aborted() = false after Abort()")
	}
}

func TestPoolPropagatesContextCancellation(t *testing.T) {
	builder := newTestBuilder(t)
	pool := New(builder, 2, 1, 100000)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := pool.Run(ctx)
	if err == nil {
		t.Fatal("expected error from Run with pre-cancelled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
}
