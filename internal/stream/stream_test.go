package stream

import (
	"bytes"
	"testing"

	"github.com/yinshiyionly/scrollcast/internal/workerpool"
)

func TestDrainReordersOutOfOrderArrivals(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)

	ch := make(chan workerpool.Result, 4)
	ch <- workerpool.Result{Index: 2, Bytes: []byte("C")}
	ch <- workerpool.Result{Index: 0, Bytes: []byte("A")}
	ch <- workerpool.Result{Index: 1, Bytes: []byte("B")}
	ch <- workerpool.Result{Index: 3, Bytes: []byte("D")}
	close(ch)

	if err := s.Drain(ch); err != nil {
		t.Fatalf("Drain: %v", err)
	}

	if got, want := buf.String(), "ABCD"; got != want {
		t.Fatalf("written bytes = %q, want %q (must match serial-baseline order)", got, want)
	}
	if got := s.Written(); got != 4 {
		t.Fatalf("Written() = %d, want 4", got)
	}
}

func TestDrainIdenticalToSerialOrderRegardlessOfArrivalPermutation(t *testing.T) {
	frames := [][]byte{[]byte("one"), []byte("two"), []byte("three"), []byte("four"), []byte("five")}
	permutation := []int{3, 1, 4, 0, 2}

	var buf bytes.Buffer
	s := New(&buf)
	ch := make(chan workerpool.Result, len(frames))
	for _, idx := range permutation {
		ch <- workerpool.Result{Index: idx, Bytes: frames[idx]}
	}
	close(ch)

	if err := s.Drain(ch); err != nil {
		t.Fatalf("Drain: %v", err)
	}

	want := bytes.Join(frames, nil)
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("written bytes = %q, want %q", buf.Bytes(), want)
	}
}

func TestDrainRejectsDuplicateFrame(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)
	ch := make(chan workerpool.Result, 2)
	ch <- workerpool.Result{Index: 0, Bytes: []byte("A")}
	ch <- workerpool.Result{Index: 0, Bytes: []byte("A-again")}
	close(ch)

	if err := s.Drain(ch); err == nil {
		t.Fatal("expected error for duplicate/late frame index")
	}
}

type shortWriter struct {
	buf   bytes.Buffer
	limit int
}

func (w *shortWriter) Write(p []byte) (int, error) {
	n := len(p)
	if n > w.limit {
		n = w.limit
	}
	w.buf.Write(p[:n])
	return n, nil
}

func TestWriteRetriesShortWritesWithoutSplittingFrame(t *testing.T) {
	w := &shortWriter{limit: 2}
	s := New(w)

	ch := make(chan workerpool.Result, 1)
	ch <- workerpool.Result{Index: 0, Bytes: []byte("abcdefgh")}
	close(ch)

	if err := s.Drain(ch); err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if got, want := w.buf.String(), "abcdefgh"; got != want {
		t.Fatalf("buf = %q, want %q", got, want)
	}
	if got := s.Written(); got != 1 {
		t.Fatalf("Written() = %d, want 1 (one logical frame, not split)", got)
	}
}
