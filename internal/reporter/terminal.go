package reporter

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/yinshiyionly/scrollcast/internal/util"
)

// TerminalReporter writes human-friendly colored output to the terminal.
type TerminalReporter struct {
	mu         sync.Mutex
	progress   *progressbar.ProgressBar
	maxPercent float32
	lastStage  string
	verbose    bool
	cyan       *color.Color
	green      *color.Color
	yellow     *color.Color
	red        *color.Color
	magenta    *color.Color
	bold       *color.Color
	dim        *color.Color
}

// NewTerminalReporter creates a terminal reporter with verbose mode disabled.
func NewTerminalReporter() *TerminalReporter {
	return NewTerminalReporterVerbose(false)
}

// NewTerminalReporterVerbose creates a terminal reporter with configurable
// verbose mode.
func NewTerminalReporterVerbose(verbose bool) *TerminalReporter {
	return &TerminalReporter{
		verbose: verbose,
		cyan:    color.New(color.FgCyan, color.Bold),
		green:   color.New(color.FgGreen),
		yellow:  color.New(color.FgYellow, color.Bold),
		red:     color.New(color.FgRed, color.Bold),
		magenta: color.New(color.FgMagenta),
		bold:    color.New(color.Bold),
		dim:     color.New(color.Faint),
	}
}

const labelWidth = 14

func (r *TerminalReporter) printLabel(label, value string) {
	padded := fmt.Sprintf("%-*s", labelWidth, label)
	fmt.Printf("  %s %s\n", r.bold.Sprint(padded), value)
}

func (r *TerminalReporter) finishProgress() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.progress != nil {
		_ = r.progress.Finish()
		r.progress = nil
	}
	r.maxPercent = 0
}

func (r *TerminalReporter) Init(s InitSummary) {
	fmt.Println()
	_, _ = r.cyan.Println("RENDER")
	r.printLabel("Output:", s.OutputFile)
	r.printLabel("Resolution:", s.Resolution)
	r.printLabel("FPS:", fmt.Sprintf("%d", s.FPS))
	r.printLabel("Scroll speed:", fmt.Sprintf("%g px/frame", s.ScrollSpeed))
	transparency := "opaque"
	if s.Transparent {
		transparency = "transparent"
	}
	r.printLabel("Background:", transparency)
	if s.HasAudio {
		r.printLabel("Audio:", "yes")
	}
}

func (r *TerminalReporter) StageProgress(update StageProgress) {
	r.mu.Lock()
	if r.lastStage != update.Stage {
		r.mu.Unlock()
		fmt.Println()
		_, _ = r.cyan.Println(strings.ToUpper(update.Stage))
		r.mu.Lock()
		r.lastStage = update.Stage
	}
	r.mu.Unlock()
	fmt.Printf("  %s %s\n", r.magenta.Sprint("›"), update.Message)
}

func (r *TerminalReporter) EncodingStarted(total int) {
	r.finishProgress()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.progress = progressbar.NewOptions64(
		100,
		progressbar.OptionSetDescription(""),
		progressbar.OptionSetWidth(40),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionShowDescriptionAtLineEnd(),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "Rendering [",
			BarEnd:        "]",
		}),
	)
	_ = total
}

func (r *TerminalReporter) Progress(p ProgressSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.progress == nil {
		return
	}

	clamped := p.Percent
	if clamped > 100 {
		clamped = 100
	}
	if clamped < 0 {
		clamped = 0
	}
	if clamped >= r.maxPercent {
		r.maxPercent = clamped
		_ = r.progress.Set64(int64(clamped))
	}

	desc := fmt.Sprintf("%d/%d frames, speed %.1fx, eta %s",
		p.FramesDone, p.FramesTotal, p.Speed,
		util.FormatDurationFromSecs(int64(p.ETA.Seconds())))
	r.progress.Describe(desc)
}

func (r *TerminalReporter) ValidationComplete(s ValidationSummary) {
	fmt.Println()
	_, _ = r.cyan.Println("VALIDATION")
	if s.Passed {
		r.printLabel("Status:", fmt.Sprintf("%s %s", r.green.Sprint("✓"), r.green.Add(color.Bold).Sprint("passed")))
	} else {
		r.printLabel("Status:", fmt.Sprintf("%s %s", r.yellow.Sprint("!"), r.yellow.Sprint("best-effort checks incomplete")))
	}
	for _, step := range s.Steps {
		status := r.green.Sprint("✓")
		if !step.Passed {
			status = r.red.Sprint("✗")
		}
		r.printLabel(step.Name+":", fmt.Sprintf("%s %s", status, step.Details))
	}
}

func (r *TerminalReporter) Complete(o Outcome) {
	r.finishProgress()

	fmt.Println()
	_, _ = r.cyan.Println("RESULT")
	r.printLabel("Output:", o.OutputFile)
	r.printLabel("Frames:", fmt.Sprintf("%d", o.FramesWritten))
	r.printLabel("Time:", fmt.Sprintf("%s (avg speed %.1fx)",
		util.FormatDurationFromSecs(int64(o.TotalTime.Seconds())), o.AverageSpeed))
	r.printLabel("Saved to:", r.green.Sprint(o.OutputPath))
}

func (r *TerminalReporter) Warning(message string) {
	fmt.Println()
	_, _ = r.yellow.Printf("WARN: %s\n", message)
}

func (r *TerminalReporter) Error(e ReporterError) {
	_, _ = fmt.Fprintln(os.Stderr)
	_, _ = r.red.Fprintf(os.Stderr, "ERROR %s\n", e.Title)
	_, _ = fmt.Fprintf(os.Stderr, "  %s\n", e.Message)
	if e.Context != "" {
		_, _ = fmt.Fprintf(os.Stderr, "  Context: %s\n", e.Context)
	}
	if e.Suggestion != "" {
		_, _ = fmt.Fprintf(os.Stderr, "  Suggestion: %s\n", e.Suggestion)
	}
}

func (r *TerminalReporter) Verbose(message string) {
	if !r.verbose {
		return
	}
	fmt.Printf("  %s %s\n", r.dim.Sprint("›"), r.dim.Sprint(message))
}
