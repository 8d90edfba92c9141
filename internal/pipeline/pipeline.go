package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/yinshiyionly/scrollcast/internal/config"
	"github.com/yinshiyionly/scrollcast/internal/ffmpeg"
	"github.com/yinshiyionly/scrollcast/internal/frame"
	"github.com/yinshiyionly/scrollcast/internal/reporter"
	"github.com/yinshiyionly/scrollcast/internal/scroll"
	"github.com/yinshiyionly/scrollcast/internal/source"
	"github.com/yinshiyionly/scrollcast/internal/stream"
	"github.com/yinshiyionly/scrollcast/internal/util"
	"github.com/yinshiyionly/scrollcast/internal/workerpool"
)

// Result is the outcome of a successful Render.
type Result struct {
	OutputFile    string
	FramesWritten int
	TotalTime     time.Duration
	AverageSpeed  float32
}

// Render runs the full C3->C4->C5->C6->C7 control flow described in the
// system overview: ask the scroll scheduler for the total frame count,
// spawn the encoder, run the worker pool producing frames the streamer
// writes to the encoder's stdin in order, then wait for clean encoder exit.
func Render(ctx context.Context, cfg *config.Config, src *source.Image, rep reporter.Reporter, logf func(format string, args ...any)) (*Result, error) {
	if rep == nil {
		rep = reporter.NullReporter{}
	}
	if logf == nil {
		logf = func(string, ...any) {}
	}

	if err := cfg.Validate(); err != nil {
		return nil, &ConfigError{Cause: err}
	}
	if err := src.EnsureMinHeight(int(cfg.Height)); err != nil {
		return nil, &SourceError{Cause: err}
	}

	plan, err := scroll.New(src.Height(), int(cfg.Height), cfg.FPS, cfg.ScrollSpeed, cfg.HeadStaticSecs, effectiveTailSecs(cfg))
	if err != nil {
		return nil, &ConfigError{Cause: err}
	}
	total := plan.Total()

	outputPath := ffmpeg.OutputPathFor(ffmpeg.Params{Transparent: cfg.Transparent, OutputPath: cfg.OutputPath})

	if !util.CheckDiskSpace(filepath.Dir(outputPath), logf) {
		rep.Warning("low disk space near output path, encoding may fail partway through")
	}

	rep.Init(reporter.InitSummary{
		OutputFile:  outputPath,
		Resolution:  fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		FPS:         cfg.FPS,
		ScrollSpeed: cfg.ScrollSpeed,
		Transparent: cfg.Transparent,
		HasAudio:    cfg.AudioPath != "",
	})

	fparams := frame.Params{
		Width:       int(cfg.Width),
		Height:      int(cfg.Height),
		Background:  cfg.Background,
		Transparent: cfg.Transparent,
	}
	builder := frame.New(fparams, plan, src)

	start := time.Now()
	result, err := runEncode(ctx, cfg, builder, total, false, rep, logf)
	if err != nil {
		var exitErr *EncoderExitError
		if cfg.HardwareEncoder && errorsAsExit(err, &exitErr) {
			logf("hardware encoder failed, retrying with software encoder: %v", exitErr)
			rep.Warning("hardware encoder failed, falling back to software encoder")
			result, err = runEncode(ctx, cfg, builder, total, true, rep, logf)
		}
	}
	if err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	speed := float32(0)
	if elapsed > 0 {
		speed = float32(result.FramesWritten) / float32(cfg.FPS) / float32(elapsed.Seconds())
	}

	rep.ValidationComplete(ValidateOutput(outputPath, result.FramesWritten, cfg.FPS))

	outcome := reporter.Outcome{
		OutputFile:    outputPath,
		FramesWritten: result.FramesWritten,
		TotalTime:     elapsed,
		AverageSpeed:  speed,
		OutputPath:    outputPath,
	}
	rep.Complete(outcome)

	result.TotalTime = elapsed
	result.AverageSpeed = speed
	return result, nil
}

// effectiveTailSecs resolves the tail-static duration scroll.New should use,
// honoring config.TailCut by dropping the configured tail rather than
// letting the scheduler freeze on the last scroll position.
func effectiveTailSecs(cfg *config.Config) float64 {
	if cfg.TailMode == config.TailCut {
		return 0
	}
	return cfg.TailStaticSecs
}

func errorsAsExit(err error, target **EncoderExitError) bool {
	e, ok := err.(*EncoderExitError)
	if !ok {
		return false
	}
	*target = e
	return true
}

// runEncode spawns one encoder attempt and drives C4/C5/C7 against it.
func runEncode(ctx context.Context, cfg *config.Config, builder *frame.Builder, total int, software bool, rep reporter.Reporter, logf func(format string, args ...any)) (*Result, error) {
	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pixFmt := ffmpeg.PixFmtRGB24
	if cfg.Transparent {
		pixFmt = ffmpeg.PixFmtRGBA
	}
	_, noGPU := os.LookupEnv("NO_GPU")
	fp := ffmpeg.Params{
		Width:       int(cfg.Width),
		Height:      int(cfg.Height),
		FPS:         cfg.FPS,
		PixFmt:      pixFmt,
		Transparent: cfg.Transparent,
		CRF:         cfg.CRF,
		Hardware:    cfg.HardwareEncoder && !software,
		AudioPath:   cfg.AudioPath,
		OutputPath:  ffmpeg.OutputPathFor(ffmpeg.Params{Transparent: cfg.Transparent, OutputPath: cfg.OutputPath}),
		NoGPU:       noGPU,
	}

	driver, err := ffmpeg.New(fp, software, logf)
	if err != nil {
		return nil, &EncoderSpawnError{Cause: err}
	}

	pool := workerpool.New(builder, cfg.Workers, cfg.BatchSize, total)
	streamer := stream.New(driver.Stdin)

	rep.EncodingStarted(total)

	var poolErr, streamErr atomic.Pointer[error]

	progressDone := make(chan struct{})
	watchdogFired := make(chan struct{})

	watchdogCtx, stopWatchdog := context.WithCancel(ctx)
	defer stopWatchdog()
	go driver.Watchdog(watchdogCtx, time.Duration(cfg.WatchdogStallSecs)*time.Second, streamer.Written, watchdogFired)

	go func() {
		defer close(progressDone)
		start := time.Now()
		for {
			select {
			case <-ctx.Done():
				return
			case <-time.After(500 * time.Millisecond):
				written := streamer.Written()
				pct := float32(0)
				if total > 0 {
					pct = float32(written) * 100 / float32(total)
				}
				elapsedSecs := time.Since(start).Seconds()
				fps := float32(0)
				eta := time.Duration(0)
				if elapsedSecs > 0 {
					fps = float32(float64(written) / elapsedSecs)
					if fps > 0 {
						remaining := total - written
						eta = time.Duration(float64(remaining)/float64(fps)) * time.Second
					}
				}
				rep.Progress(reporter.ProgressSnapshot{
					FramesDone:  written,
					FramesTotal: total,
					Percent:     pct,
					FPS:         fps,
					Speed:       fps / float32(cfg.FPS),
					ETA:         eta,
				})
				if written >= total {
					return
				}
			}
		}
	}()

	go func() {
		err := pool.Run(ctx)
		if err != nil {
			we := &WorkerError{Cause: err}
			var e error = we
			poolErr.Store(&e)
			pool.Abort()
			cancel()
		}
	}()

	err = streamer.Drain(pool.Results)
	if err != nil {
		pe := &PipeError{Cause: err}
		var e error = pe
		streamErr.Store(&e)
		pool.Abort()
		cancel()
	}

	<-progressDone
	stopWatchdog()

	_ = driver.CloseStdin()

	waitErr, escalated := driver.Wait(parent, time.Duration(cfg.EncodeWaitSecs)*time.Second)

	select {
	case <-watchdogFired:
		escalated = true
	default:
	}

	if escalated {
		return nil, &TimeoutError{Cause: fmt.Errorf("watchdog or encode-wait timeout fired")}
	}
	if p := streamErr.Load(); p != nil {
		if waitErr != nil {
			return nil, &EncoderExitError{Cause: waitErr, StderrTail: driver.StderrTail()}
		}
		return nil, *p
	}
	if p := poolErr.Load(); p != nil {
		return nil, *p
	}
	if waitErr != nil {
		return nil, &EncoderExitError{Cause: waitErr, StderrTail: driver.StderrTail()}
	}

	return &Result{OutputFile: fp.OutputPath, FramesWritten: streamer.Written()}, nil
}
