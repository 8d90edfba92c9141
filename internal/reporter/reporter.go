// Package reporter implements progress & metrics (C7): phase timestamps,
// frame throughput, ETA, and a completion summary, surfaced through a small
// Reporter interface with terminal, log-file, composite, and null
// implementations.
package reporter

import "time"

// Reporter receives events as a render progresses. Implementations must be
// safe for concurrent use: the pipeline calls Progress from a dedicated
// progress goroutine started for each encoding attempt, separate from the
// goroutine that makes the other calls.
type Reporter interface {
	Init(InitSummary)
	StageProgress(StageProgress)
	EncodingStarted(totalFrames int)
	Progress(ProgressSnapshot)
	ValidationComplete(ValidationSummary)
	Complete(Outcome)
	Warning(message string)
	Error(ReporterError)
	Verbose(message string)
}

// InitSummary describes the render about to start.
type InitSummary struct {
	SourceText   string
	OutputFile   string
	Resolution   string
	FPS          uint32
	ScrollSpeed  float64
	Transparent  bool
	HasAudio     bool
}

// StageProgress is a generic single-line update within a named stage
// ("rasterize", "schedule", "render", "encode").
type StageProgress struct {
	Stage   string
	Message string
}

// ProgressSnapshot is emitted at up to 2 Hz while frames are being written
// to the encoder.
type ProgressSnapshot struct {
	FramesDone  int
	FramesTotal int
	Percent     float32
	FPS         float32 // mean frame emission rate since encoding started; no instantaneous rate is reported
	Speed       float32 // FPS / target FPS
	ETA         time.Duration
}

// ValidationSummary reports the post-encode best-effort validation pass.
type ValidationSummary struct {
	Passed bool
	Steps  []ValidationStep
}

// ValidationStep is a single named check.
type ValidationStep struct {
	Name    string
	Passed  bool
	Details string
}

// Outcome is the final result of a successful render.
type Outcome struct {
	OutputFile    string
	FramesWritten int
	TotalTime     time.Duration
	AverageSpeed  float32
	OutputPath    string
}

// ReporterError carries a categorized failure for display.
type ReporterError struct {
	Title      string
	Message    string
	Context    string
	Suggestion string
}
