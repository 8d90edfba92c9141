// Package stream implements the ordered streamer (C5): reassembling an
// out-of-order stream of (index, frame) results into strict index order and
// writing each frame's bytes to the encoder's sink exactly once,
// contiguously, with no gaps or duplicates.
package stream

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/yinshiyionly/scrollcast/internal/workerpool"
)

// Streamer holds frames that arrive ahead of next_expected in a pending map
// until their turn comes.
type Streamer struct {
	sink         io.Writer
	nextExpected int
	pending      map[int][]byte
	written      atomic.Int64
}

// New constructs a Streamer writing to sink.
func New(sink io.Writer) *Streamer {
	return &Streamer{sink: sink, pending: make(map[int][]byte)}
}

// Written returns how many frames have been written so far. Safe to call
// from the watchdog and progress-reporting goroutines concurrently with
// Drain running on its own goroutine.
func (s *Streamer) Written() int {
	return int(s.written.Load())
}

// Drain consumes results from ch until it closes or a write fails, writing
// each frame to the sink in index order. It returns the first error
// encountered, which the caller should treat as a PipeError and use to set
// the shared abort flag.
func (s *Streamer) Drain(ch <-chan workerpool.Result) error {
	for r := range ch {
		if err := s.accept(r.Index, r.Bytes); err != nil {
			return err
		}
	}
	return nil
}

func (s *Streamer) accept(index int, bytes []byte) error {
	if index < s.nextExpected {
		return fmt.Errorf("stream: duplicate or late frame %d, already wrote through %d", index, s.nextExpected-1)
	}
	if index != s.nextExpected {
		s.pending[index] = bytes
		return nil
	}

	if err := s.write(bytes); err != nil {
		return err
	}
	s.nextExpected++

	for {
		next, ok := s.pending[s.nextExpected]
		if !ok {
			break
		}
		delete(s.pending, s.nextExpected)
		if err := s.write(next); err != nil {
			return err
		}
		s.nextExpected++
	}
	return nil
}

// write performs a blocking write of one full frame, retrying short writes
// without ever committing a partial frame as two logical frames.
func (s *Streamer) write(frame []byte) error {
	total := 0
	for total < len(frame) {
		n, err := s.sink.Write(frame[total:])
		if err != nil {
			return fmt.Errorf("stream: broken pipe after %d/%d bytes of frame %d: %w", total+n, len(frame), s.written.Load(), err)
		}
		total += n
	}
	s.written.Add(1)
	return nil
}
