package reporter

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogReporterBucketsProgressUpdates(t *testing.T) {
	var buf bytes.Buffer
	r := NewLogReporter(&buf)
	r.EncodingStarted(100)

	// Two updates within the same 5% bucket should only log once.
	r.Progress(ProgressSnapshot{Percent: 1, FramesDone: 1, FramesTotal: 100})
	r.Progress(ProgressSnapshot{Percent: 2, FramesDone: 2, FramesTotal: 100})

	out := buf.String()
	count := strings.Count(out, "Progress:")
	if count != 1 {
		t.Fatalf("expected exactly one Progress line for the first bucket, got %d:\n%s", count, out)
	}

	// Crossing into the next 5% bucket must log again.
	r.Progress(ProgressSnapshot{Percent: 6, FramesDone: 6, FramesTotal: 100})
	count = strings.Count(buf.String(), "Progress:")
	if count != 2 {
		t.Fatalf("expected a second Progress line after crossing into the next bucket, got %d", count)
	}
}

func TestLogReporterResetsBucketOnNewEncodingRun(t *testing.T) {
	var buf bytes.Buffer
	r := NewLogReporter(&buf)

	r.EncodingStarted(100)
	r.Progress(ProgressSnapshot{Percent: 10, FramesDone: 10, FramesTotal: 100})

	r.EncodingStarted(100) // fallback retry: bucket must reset
	r.Progress(ProgressSnapshot{Percent: 10, FramesDone: 10, FramesTotal: 100})

	count := strings.Count(buf.String(), "Progress:")
	if count != 2 {
		t.Fatalf("expected one Progress line per encoding run, got %d", count)
	}
}

func TestLogReporterCompleteWritesOutputPath(t *testing.T) {
	var buf bytes.Buffer
	r := NewLogReporter(&buf)
	r.Complete(Outcome{OutputFile: "out.mp4", FramesWritten: 10, OutputPath: "/final/out.mp4"})

	if !strings.Contains(buf.String(), "/final/out.mp4") {
		t.Fatalf("Complete output missing output path: %s", buf.String())
	}
}
