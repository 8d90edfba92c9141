// Package scrollcast renders scrolling-text videos.
//
// This file re-exports the internal Reporter interface and associated types
// so callers can receive every render event directly, bypassing the
// EventHandler abstraction.
package scrollcast

import "github.com/yinshiyionly/scrollcast/internal/reporter"

// Reporter defines the interface for progress reporting during a render.
type Reporter = reporter.Reporter

// NullReporter is a no-op reporter that discards all updates.
type NullReporter = reporter.NullReporter

// InitSummary describes the render about to start.
type InitSummary = reporter.InitSummary

// StageProgress represents a generic stage update.
type StageProgress = reporter.StageProgress

// ProgressSnapshot contains frame-emission progress information.
type ProgressSnapshot = reporter.ProgressSnapshot

// ValidationSummary contains validation results.
type ValidationSummary = reporter.ValidationSummary

// ReporterValidationStep represents a single validation check from the
// reporter. Distinct from the ValidationStep type in events.go, which is
// used for JSON serialization.
type ReporterValidationStep = reporter.ValidationStep

// Outcome contains final render results.
type Outcome = reporter.Outcome

// ReporterError contains error information.
type ReporterError = reporter.ReporterError

// eventReporter adapts an EventHandler to the Reporter interface.
type eventReporter struct {
	handler EventHandler
}

func newEventReporter(handler EventHandler) *eventReporter {
	return &eventReporter{handler: handler}
}

func (r *eventReporter) Init(reporter.InitSummary) {}

func (r *eventReporter) StageProgress(s reporter.StageProgress) {
	_ = r.handler(StageProgressEvent{
		BaseEvent: BaseEvent{EventType: EventTypeStageProgress, Time: NewTimestamp()},
		Stage:     s.Stage,
		Message:   s.Message,
	})
}

func (r *eventReporter) EncodingStarted(total int) {
	_ = r.handler(StageProgressEvent{
		BaseEvent: BaseEvent{EventType: EventTypeEncodingStarted, Time: NewTimestamp()},
		Stage:     "encode",
		Message:   "encoding started",
	})
}

func (r *eventReporter) Progress(p reporter.ProgressSnapshot) {
	_ = r.handler(EncodingProgressEvent{
		BaseEvent:   BaseEvent{EventType: EventTypeEncodingProgress, Time: NewTimestamp()},
		FramesDone:  p.FramesDone,
		FramesTotal: p.FramesTotal,
		Percent:     p.Percent,
		Speed:       p.Speed,
		FPS:         p.FPS,
		ETASeconds:  int64(p.ETA.Seconds()),
	})
}

func (r *eventReporter) ValidationComplete(s reporter.ValidationSummary) {
	steps := make([]ValidationStep, len(s.Steps))
	for i, step := range s.Steps {
		steps[i] = ValidationStep{Step: step.Name, Passed: step.Passed, Details: step.Details}
	}
	_ = r.handler(ValidationCompleteEvent{
		BaseEvent:        BaseEvent{EventType: EventTypeValidationComplete, Time: NewTimestamp()},
		ValidationPassed: s.Passed,
		ValidationSteps:  steps,
	})
}

func (r *eventReporter) Complete(o reporter.Outcome) {
	_ = r.handler(RenderCompleteEvent{
		BaseEvent:     BaseEvent{EventType: EventTypeRenderComplete, Time: NewTimestamp()},
		OutputFile:    o.OutputFile,
		FramesWritten: o.FramesWritten,
		AverageSpeed:  o.AverageSpeed,
	})
}

func (r *eventReporter) Warning(message string) {
	_ = r.handler(WarningEvent{
		BaseEvent: BaseEvent{EventType: EventTypeWarning, Time: NewTimestamp()},
		Message:   message,
	})
}

func (r *eventReporter) Error(e reporter.ReporterError) {
	_ = r.handler(ErrorEvent{
		BaseEvent:  BaseEvent{EventType: EventTypeError, Time: NewTimestamp()},
		Title:      e.Title,
		Message:    e.Message,
		Context:    e.Context,
		Suggestion: e.Suggestion,
	})
}

func (r *eventReporter) Verbose(string) {}
