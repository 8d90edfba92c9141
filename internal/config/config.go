// Package config provides configuration types and defaults for scrollcast.
package config

import (
	"fmt"
	"os"
	"runtime"
)

// Default constants.
const (
	// MinScrollSpeed is the minimum permitted scroll speed, in pixels per frame.
	MinScrollSpeed float64 = 0.5

	// DefaultFPS is the frame rate used when none is supplied.
	DefaultFPS uint32 = 30

	// DefaultWatchdogStallSecs is how long frame emission may stall before
	// the watchdog terminates the encoder.
	DefaultWatchdogStallSecs uint32 = 30

	// DefaultEncodeWaitSecs is how long the wrapper waits for clean encoder
	// exit once the frame stream has been closed.
	DefaultEncodeWaitSecs uint32 = 120

	// DefaultDrainJoinSecs bounds how long the stdout/stderr drain goroutines
	// are given to finish once the encoder has exited.
	DefaultDrainJoinSecs uint32 = 2

	// DefaultBatchSize is the number of frame indices handed to a worker at once.
	DefaultBatchSize int = 8

	// DefaultCRF is the libx264 quality setting used for opaque CPU encodes.
	DefaultCRF uint8 = 20

	// ProgressLogIntervalPercent is the bucket width used by the log reporter.
	ProgressLogIntervalPercent uint8 = 5
)

// TailMode controls how the scroll scheduler's tail region behaves once the
// source image has scrolled fully past the viewport.
type TailMode string

const (
	// TailFreeze holds the last scroll position for the configured tail duration.
	TailFreeze TailMode = "freeze"
	// TailCut ends the frame stream as soon as the scroll phase completes.
	TailCut TailMode = "cut"
)

// AutoWorkerCount returns the default worker pool size: between 2 and 8,
// leaving one CPU free for the main goroutine and the I/O drain goroutines.
func AutoWorkerCount() int {
	n := runtime.NumCPU() - 1
	if n < 2 {
		return 2
	}
	if n > 8 {
		return 8
	}
	return n
}

// Config holds all parameters for a single render.
type Config struct {
	// Output geometry and timing.
	Width   uint32
	Height  uint32
	FPS     uint32
	ScrollSpeed float64 // pixels per frame, canonical unit

	// Padding (the "Padded" convention from the scroll scheduler).
	HeadStaticSecs float64
	TailStaticSecs float64
	TailMode       TailMode

	// Compositing.
	Background  [4]byte // RGBA
	Transparent bool

	// Optional supplemented features.
	ScaleFactor      float64 // 0 or 1.0 means no scaling
	MinScrollSeconds float64 // 0 disables the floor

	// Text rasterization.
	FontPath string
	FontSize float64

	// Audio.
	AudioPath string

	// Encoder selection.
	HardwareEncoder bool // prefer h264_nvenc, falling back to libx264
	CRF             uint8

	// Paths.
	OutputPath string
	TempDir    string
	LogDir     string

	// Concurrency.
	Workers   int
	BatchSize int

	// Timeouts, exposed for tests; production callers leave these at the defaults.
	WatchdogStallSecs uint32
	EncodeWaitSecs    uint32

	Verbose bool
}

// NewConfig returns a Config seeded with documented defaults. Callers apply
// Options on top before calling Validate.
func NewConfig() *Config {
	return &Config{
		Width:             1080,
		Height:            1920,
		FPS:               DefaultFPS,
		ScrollSpeed:       2.0,
		TailMode:          TailFreeze,
		Background:        [4]byte{0, 0, 0, 255},
		CRF:               DefaultCRF,
		Workers:           AutoWorkerCount(),
		BatchSize:         DefaultBatchSize,
		WatchdogStallSecs: DefaultWatchdogStallSecs,
		EncodeWaitSecs:    DefaultEncodeWaitSecs,
	}
}

// Validate checks the configuration for the ConfigError conditions named in
// the scroll scheduler and data model contracts. It never touches the
// filesystem for anything other than the optional audio path, and it never
// spawns a child process.
func (c *Config) Validate() error {
	if c.Width == 0 || c.Height == 0 {
		return fmt.Errorf("width and height must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.FPS == 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.ScrollSpeed < MinScrollSpeed {
		return fmt.Errorf("scroll_speed must be >= %g px/frame, got %g", MinScrollSpeed, c.ScrollSpeed)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("batch_size must be at least 1, got %d", c.BatchSize)
	}
	if c.HeadStaticSecs < 0 || c.TailStaticSecs < 0 {
		return fmt.Errorf("head/tail static durations must be non-negative")
	}
	if c.TailMode != TailFreeze && c.TailMode != TailCut {
		return fmt.Errorf("tail_mode must be %q or %q, got %q", TailFreeze, TailCut, c.TailMode)
	}
	if c.AudioPath != "" {
		if _, err := os.Stat(c.AudioPath); err != nil {
			return fmt.Errorf("audio_path is not readable: %w", err)
		}
	}
	if c.OutputPath == "" {
		return fmt.Errorf("output_path must be set")
	}
	return nil
}

// GetTempDir returns the temp directory, falling back to the current
// directory (".") if not set.
func (c *Config) GetTempDir() string {
	if c.TempDir != "" {
		return c.TempDir
	}
	return "."
}
