package reporter

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/yinshiyionly/scrollcast/internal/config"
	"github.com/yinshiyionly/scrollcast/internal/util"
)

// LogReporter writes render events to a log file, bucketing progress
// updates to one line per ProgressLogIntervalPercent instead of every tick.
type LogReporter struct {
	w                  io.Writer
	mu                 sync.Mutex
	lastProgressBucket int
}

// NewLogReporter creates a log reporter writing to w.
func NewLogReporter(w io.Writer) *LogReporter {
	return &LogReporter{w: w, lastProgressBucket: -1}
}

func (r *LogReporter) log(level, format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	msg := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintf(r.w, "%s [%s] %s\n", timestamp, level, msg)
}

func (r *LogReporter) Init(s InitSummary) {
	r.log("INFO", "=== RENDER ===")
	r.log("INFO", "Output: %s", s.OutputFile)
	r.log("INFO", "Resolution: %s", s.Resolution)
	r.log("INFO", "FPS: %d", s.FPS)
	r.log("INFO", "Scroll speed: %g px/frame", s.ScrollSpeed)
	r.log("INFO", "Transparent: %v", s.Transparent)
}

func (r *LogReporter) StageProgress(update StageProgress) {
	r.log("INFO", "[%s] %s", strings.ToUpper(update.Stage), update.Message)
}

func (r *LogReporter) EncodingStarted(total int) {
	r.mu.Lock()
	r.lastProgressBucket = -1
	r.mu.Unlock()
	r.log("INFO", "=== RENDERING STARTED === (total frames: %d)", total)
}

func (r *LogReporter) Progress(p ProgressSnapshot) {
	bucket := int(p.Percent / float32(config.ProgressLogIntervalPercent))
	r.mu.Lock()
	if bucket > r.lastProgressBucket && bucket <= 100/int(config.ProgressLogIntervalPercent) {
		r.lastProgressBucket = bucket
		r.mu.Unlock()
		r.log("INFO", "Progress: %.0f%% (%d/%d frames, speed %.1fx, eta %s)",
			p.Percent, p.FramesDone, p.FramesTotal, p.Speed,
			util.FormatDurationFromSecs(int64(p.ETA.Seconds())))
	} else {
		r.mu.Unlock()
	}
}

func (r *LogReporter) ValidationComplete(s ValidationSummary) {
	r.log("INFO", "=== VALIDATION ===")
	if s.Passed {
		r.log("INFO", "Result: PASSED")
	} else {
		r.log("WARN", "Result: incomplete")
	}
	for _, step := range s.Steps {
		status := "ok"
		if !step.Passed {
			status = "FAILED"
		}
		r.log("INFO", "  - %s: %s (%s)", step.Name, status, step.Details)
	}
}

func (r *LogReporter) Complete(o Outcome) {
	r.log("INFO", "=== RESULT ===")
	r.log("INFO", "Output: %s", o.OutputFile)
	r.log("INFO", "Frames: %d", o.FramesWritten)
	r.log("INFO", "Time: %s (avg speed %.1fx)",
		util.FormatDurationFromSecs(int64(o.TotalTime.Seconds())), o.AverageSpeed)
	r.log("INFO", "Saved to: %s", o.OutputPath)
}

func (r *LogReporter) Warning(message string) {
	r.log("WARN", "%s", message)
}

func (r *LogReporter) Error(e ReporterError) {
	r.log("ERROR", "%s: %s", e.Title, e.Message)
	if e.Context != "" {
		r.log("ERROR", "  Context: %s", e.Context)
	}
	if e.Suggestion != "" {
		r.log("ERROR", "  Suggestion: %s", e.Suggestion)
	}
}

func (r *LogReporter) Verbose(message string) {
	r.log("DEBUG", "%s", message)
}
