// Package scrollcast renders a block of text as a vertically scrolling
// video: the text is rasterized onto a tall bitmap, windowed at a
// precisely advancing vertical offset, composited against an opaque or
// transparent background, and streamed frame-by-frame to an FFmpeg child
// process that produces the final container.
//
// Basic usage:
//
//	renderer, err := scrollcast.New(
//	    scrollcast.WithResolution(1080, 1920),
//	    scrollcast.WithScrollSpeed(2.0),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := renderer.Render(ctx, "Hello, world!", "output.mp4", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Rendered %d frames to %s\n", result.FramesWritten, result.OutputFile)
package scrollcast

import (
	"context"
	"fmt"

	"github.com/yinshiyionly/scrollcast/internal/config"
	"github.com/yinshiyionly/scrollcast/internal/pipeline"
	"github.com/yinshiyionly/scrollcast/internal/raster"
	"github.com/yinshiyionly/scrollcast/internal/reporter"
	"github.com/yinshiyionly/scrollcast/internal/source"
	"github.com/yinshiyionly/scrollcast/internal/util"
)

// Renderer is the main entry point for rendering scrolling-text videos.
type Renderer struct {
	config *config.Config
}

// Result contains the result of a render.
type Result struct {
	OutputFile    string
	FramesWritten int
	AverageSpeed  float32
}

// Option configures the Renderer.
type Option func(*config.Config)

// New creates a new Renderer with the given options.
func New(opts ...Option) (*Renderer, error) {
	cfg := config.NewConfig()

	for _, opt := range opts {
		opt(cfg)
	}

	return &Renderer{config: cfg}, nil
}

// WithResolution sets the output viewport dimensions.
func WithResolution(width, height uint32) Option {
	return func(c *config.Config) {
		c.Width = width
		c.Height = height
	}
}

// WithFPS sets the output frame rate.
func WithFPS(fps uint32) Option {
	return func(c *config.Config) {
		c.FPS = fps
	}
}

// WithScrollSpeed sets the scroll speed in pixels per frame. Values below
// 0.5 are rejected by Render's validation step. When a scale factor is set,
// validation sees the scaled speed, raised to 0.5 if it falls below that.
func WithScrollSpeed(v float64) Option {
	return func(c *config.Config) {
		c.ScrollSpeed = v
	}
}

// WithPadding sets the head and tail static durations, in seconds, enabling
// the "Padded" scroll convention. Pass 0, 0 for pure scroll.
func WithPadding(headSecs, tailSecs float64) Option {
	return func(c *config.Config) {
		c.HeadStaticSecs = headSecs
		c.TailStaticSecs = tailSecs
	}
}

// WithTailMode selects whether the tail region freezes on the final scroll
// position or cuts the stream as soon as scrolling completes.
func WithTailMode(mode config.TailMode) Option {
	return func(c *config.Config) {
		c.TailMode = mode
	}
}

// WithBackground sets the RGBA background color.
func WithBackground(r, g, b, a byte) Option {
	return func(c *config.Config) {
		c.Background = [4]byte{r, g, b, a}
	}
}

// WithTransparent enables the transparent ProRes 4444 output path.
func WithTransparent(transparent bool) Option {
	return func(c *config.Config) {
		c.Transparent = transparent
	}
}

// WithAudioPath attaches an audio track; the output duration is clamped to
// the shorter of video and audio.
func WithAudioPath(path string) Option {
	return func(c *config.Config) {
		c.AudioPath = path
	}
}

// WithWorkers sets the parallel worker pool size.
func WithWorkers(workers int) Option {
	return func(c *config.Config) {
		c.Workers = workers
	}
}

// WithBatchSize sets the worker pool's batch size.
func WithBatchSize(size int) Option {
	return func(c *config.Config) {
		c.BatchSize = size
	}
}

// WithHardwareEncoder prefers h264_nvenc, falling back to libx264 once on
// failure. Ignored when the NO_GPU environment convention is in effect or
// when Transparent is set.
func WithHardwareEncoder(hardware bool) Option {
	return func(c *config.Config) {
		c.HardwareEncoder = hardware
	}
}

// WithScaleFactor renders at a reduced resolution for fast previews,
// scaling font size and scroll speed to match.
func WithScaleFactor(scale float64) Option {
	return func(c *config.Config) {
		c.ScaleFactor = scale
	}
}

// WithMinScrollDuration lengthens the scroll for very short texts so they
// remain on screen for at least the given number of seconds.
func WithMinScrollDuration(seconds float64) Option {
	return func(c *config.Config) {
		c.MinScrollSeconds = seconds
	}
}

// WithFont sets the font path and point size used to rasterize the source
// text. An empty path falls back through the chain documented on
// internal/raster.ResolveFont.
func WithFont(path string, size float64) Option {
	return func(c *config.Config) {
		c.FontPath = path
		c.FontSize = size
	}
}

// RenderWithReporter renders text to a video file using a custom Reporter,
// giving direct access to every render event.
func (r *Renderer) RenderWithReporter(ctx context.Context, text, outputPath string, rep Reporter) (*Result, error) {
	cfg := *r.config
	cfg.OutputPath = outputPath

	if rep == nil {
		rep = reporter.NullReporter{}
	}

	res, err := r.renderText(ctx, &cfg, text, rep)
	if err != nil {
		return nil, err
	}
	return &Result{OutputFile: res.OutputFile, FramesWritten: res.FramesWritten, AverageSpeed: res.AverageSpeed}, nil
}

// Render renders text to a video file, delivering events through an
// EventHandler.
func (r *Renderer) Render(ctx context.Context, text, outputPath string, handler EventHandler) (*Result, error) {
	cfg := *r.config
	cfg.OutputPath = outputPath

	var rep reporter.Reporter = reporter.NullReporter{}
	if handler != nil {
		rep = newEventReporter(handler)
	}

	res, err := r.renderText(ctx, &cfg, text, rep)
	if err != nil {
		return nil, err
	}
	return &Result{OutputFile: res.OutputFile, FramesWritten: res.FramesWritten, AverageSpeed: res.AverageSpeed}, nil
}

func (r *Renderer) renderText(ctx context.Context, cfg *config.Config, text string, rep reporter.Reporter) (*pipeline.Result, error) {
	if err := util.EnsureDirectory(parentDir(cfg.OutputPath)); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	fontPath := cfg.FontPath
	fontSize := cfg.FontSize
	if fontSize <= 0 {
		fontSize = 48
	}

	width := cfg.Width
	height := cfg.Height
	if cfg.ScaleFactor > 0 && cfg.ScaleFactor != 1.0 {
		width = uint32(float64(width) * cfg.ScaleFactor)
		height = uint32(float64(height) * cfg.ScaleFactor)
		fontSize *= cfg.ScaleFactor
		cfg.ScrollSpeed *= cfg.ScaleFactor
		if cfg.ScrollSpeed < config.MinScrollSpeed {
			cfg.ScrollSpeed = config.MinScrollSpeed
		}
	}

	if cfg.MinScrollSeconds > 0 {
		minFrames := cfg.MinScrollSeconds * float64(cfg.FPS)
		if minFrames > 0 {
			maxSpeed := float64(height) / minFrames
			if maxSpeed < cfg.ScrollSpeed && maxSpeed >= config.MinScrollSpeed {
				cfg.ScrollSpeed = maxSpeed
			}
		}
	}

	rep.StageProgress(reporter.StageProgress{Stage: "rasterize", Message: "laying out text"})
	img, _, err := raster.Render(raster.Params{
		Text:           text,
		Width:          int(width),
		ViewportHeight: int(height),
		FontPath:       fontPath,
		FontSize:       fontSize,
		Color:          [4]byte{255, 255, 255, 255},
		Background:     cfg.Background,
	})
	if err != nil {
		return nil, &pipeline.SourceError{Cause: err}
	}

	cfg.Width = width
	cfg.Height = height

	return pipeline.Render(ctx, cfg, img, rep, nil)
}

func parentDir(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return "."
}

// RenderImage renders a pre-built RGBA source image directly, skipping the
// raster stage entirely. Exposed for callers that already have a rasterized
// bitmap and want only the scrolling frame pipeline (the spec's core).
func (r *Renderer) RenderImage(ctx context.Context, img *source.Image, outputPath string, handler EventHandler) (*Result, error) {
	cfg := *r.config
	cfg.OutputPath = outputPath

	var rep reporter.Reporter = reporter.NullReporter{}
	if handler != nil {
		rep = newEventReporter(handler)
	}

	res, err := pipeline.Render(ctx, &cfg, img, rep, nil)
	if err != nil {
		return nil, err
	}
	return &Result{OutputFile: res.OutputFile, FramesWritten: res.FramesWritten, AverageSpeed: res.AverageSpeed}, nil
}
