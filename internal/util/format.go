package util

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// EnsureDirectory creates dir (and any parents) if it does not already exist.
func EnsureDirectory(dir string) error {
	if dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}

// ResolveOutputPath builds the output video path for an input text source,
// honoring an explicit override if non-empty.
func ResolveOutputPath(input, outputDir, override string) string {
	if override != "" {
		return override
	}
	base := filepath.Base(input)
	ext := filepath.Ext(base)
	name := base[:len(base)-len(ext)] + ".mp4"
	return filepath.Join(outputDir, name)
}

// CalculateSizeReduction returns the percentage an output size is smaller
// than an input size. Returns 0 when the input size is 0.
func CalculateSizeReduction(inputSize, outputSize uint64) float64 {
	if inputSize == 0 {
		return 0
	}
	return (1 - float64(outputSize)/float64(inputSize)) * 100
}

// FormatBytesReadable renders a byte count with the largest fitting binary unit.
func FormatBytesReadable(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	units := "KMGTPE"
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), units[exp])
}

// FormatDurationFromSecs renders a whole number of seconds as H:MM:SS or M:SS.
func FormatDurationFromSecs(secs int64) string {
	if secs < 0 {
		secs = 0
	}
	d := time.Duration(secs) * time.Second
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
