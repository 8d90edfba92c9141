package reporter

import "testing"

type recordingReporter struct {
	NullReporter
	warnings []string
	complete bool
}

func (r *recordingReporter) Warning(message string) {
	r.warnings = append(r.warnings, message)
}

func (r *recordingReporter) Complete(Outcome) {
	r.complete = true
}

func TestCompositeReporterFansOutToEveryMember(t *testing.T) {
	a := &recordingReporter{}
	b := &recordingReporter{}
	c := NewCompositeReporter(a, b)

	c.Warning("disk almost full")
	c.Complete(Outcome{OutputFile: "out.mp4"})

	for _, r := range []*recordingReporter{a, b} {
		if len(r.warnings) != 1 || r.warnings[0] != "disk almost full" {
			t.Errorf("warnings = %v, want one entry", r.warnings)
		}
		if !r.complete {
			t.Error("Complete was not fanned out")
		}
	}
}

func TestCompositeReporterSkipsNilEntries(t *testing.T) {
	a := &recordingReporter{}
	c := NewCompositeReporter(a, nil)

	c.Warning("hello")

	if len(a.warnings) != 1 {
		t.Fatalf("warnings = %v, want one entry", a.warnings)
	}
}

func TestNullReporterIsANoOp(t *testing.T) {
	var r NullReporter
	r.Init(InitSummary{})
	r.StageProgress(StageProgress{})
	r.EncodingStarted(10)
	r.Progress(ProgressSnapshot{})
	r.ValidationComplete(ValidationSummary{})
	r.Complete(Outcome{})
	r.Warning("ignored")
	r.Error(ReporterError{})
	r.Verbose("ignored")
}
