package pipeline

import (
	"math"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/yinshiyionly/scrollcast/internal/reporter"
)

// durationToleranceFrames bounds how far the output's reported duration may
// drift from the frame-count-derived expectation before the duration check
// is reported as failed. Expressed in frame periods, not seconds, since the
// expectation is exact: N_total/fps.
const durationToleranceFrames = 1.0

// ValidateOutput runs a best-effort post-encode validation pass: the output
// file exists and is non-empty, and, when ffprobe is on PATH, its reported
// duration is within one frame period of framesWritten/fps. It never fails
// Render; a problem here is reported as a ValidationSummary with Passed
// false, never as an error.
func ValidateOutput(outputPath string, framesWritten int, fps uint32) reporter.ValidationSummary {
	var steps []reporter.ValidationStep
	passed := true

	info, err := os.Stat(outputPath)
	switch {
	case err != nil:
		steps = append(steps, reporter.ValidationStep{Name: "output exists", Passed: false, Details: err.Error()})
		passed = false
	case info.Size() == 0:
		steps = append(steps, reporter.ValidationStep{Name: "output exists", Passed: false, Details: "output file is empty"})
		passed = false
	default:
		steps = append(steps, reporter.ValidationStep{Name: "output exists", Passed: true, Details: "non-empty file written"})
	}

	if passed {
		if dur, ok := probeDuration(outputPath); ok {
			expected := float64(framesWritten) / float64(fps)
			tolerance := durationToleranceFrames / float64(fps)
			diff := math.Abs(dur - expected)
			if diff <= tolerance {
				steps = append(steps, reporter.ValidationStep{
					Name: "duration", Passed: true,
					Details: formatSecs(dur) + " matches expected " + formatSecs(expected),
				})
			} else {
				steps = append(steps, reporter.ValidationStep{
					Name: "duration", Passed: false,
					Details: formatSecs(dur) + " vs expected " + formatSecs(expected),
				})
				passed = false
			}
		} else {
			steps = append(steps, reporter.ValidationStep{Name: "duration", Passed: true, Details: "ffprobe unavailable, skipped"})
		}
	}

	return reporter.ValidationSummary{Passed: passed, Steps: steps}
}

func probeDuration(path string) (float64, bool) {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return 0, false
	}
	out, err := exec.Command("ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	).Output()
	if err != nil {
		return 0, false
	}
	dur, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, false
	}
	return dur, true
}

func formatSecs(s float64) string {
	return strconv.FormatFloat(s, 'f', 2, 64) + "s"
}
