// Command scrollcast renders scrolling-text videos from the CLI.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/yinshiyionly/scrollcast"
	"github.com/yinshiyionly/scrollcast/internal/config"
	"github.com/yinshiyionly/scrollcast/internal/discovery"
	"github.com/yinshiyionly/scrollcast/internal/logging"
	"github.com/yinshiyionly/scrollcast/internal/reporter"
	"github.com/yinshiyionly/scrollcast/internal/util"
)

const (
	appName    = "scrollcast"
	appVersion = "0.1.0"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "render":
		if err := runRender(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "batch":
		if err := runBatch(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version", "--version", "-v":
		fmt.Printf("%s version %s\n", appName, appVersion)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`%s - scrolling-text video renderer

Usage:
  %s <command> [options]

Commands:
  render    Render a single text source to a video file
  batch     Render every text file in a directory
  version   Print version information
  help      Show this help message

Run '%s render --help' for render command options.
`, appName, appName, appName)
}

// renderArgs holds the parsed arguments shared by render and batch.
type renderArgs struct {
	inputPath   string
	outputPath  string
	logDir      string
	verbose     bool
	noLog       bool
	width       uint
	height      uint
	fps         uint
	scrollSpeed float64
	headSecs    float64
	tailSecs    float64
	tailCut     bool
	transparent bool
	audioPath   string
	fontPath    string
	fontSize    float64
	workers     int
	batchSize   int
	hardware    bool
	scale       float64
	minScroll   float64
}

func bindRenderFlags(fs *flag.FlagSet, ra *renderArgs) {
	fs.StringVar(&ra.outputPath, "o", "", "Output video path (or directory for batch)")
	fs.StringVar(&ra.outputPath, "output", "", "Output video path (or directory for batch)")
	fs.StringVar(&ra.logDir, "l", "", "Log directory")
	fs.StringVar(&ra.logDir, "log-dir", "", "Log directory")
	fs.BoolVar(&ra.verbose, "v", false, "Enable verbose output")
	fs.BoolVar(&ra.verbose, "verbose", false, "Enable verbose output")
	fs.BoolVar(&ra.noLog, "no-log", false, "Disable log file creation")

	fs.UintVar(&ra.width, "width", 1080, "Output width in pixels")
	fs.UintVar(&ra.height, "height", 1920, "Output height in pixels")
	fs.UintVar(&ra.fps, "fps", uint(config.DefaultFPS), "Output frame rate")
	fs.Float64Var(&ra.scrollSpeed, "scroll-speed", 2.0, "Scroll speed in pixels per frame")
	fs.Float64Var(&ra.headSecs, "head-seconds", 0, "Static head duration before scrolling starts")
	fs.Float64Var(&ra.tailSecs, "tail-seconds", 0, "Static tail duration after scrolling ends")
	fs.BoolVar(&ra.tailCut, "tail-cut", false, "Cut the stream as soon as scrolling completes, instead of freezing")
	fs.BoolVar(&ra.transparent, "transparent", false, "Render a transparent ProRes 4444 output instead of an opaque background")
	fs.StringVar(&ra.audioPath, "audio", "", "Audio track to mux against the video")
	fs.StringVar(&ra.fontPath, "font", "", "TTF font path (falls back to a bundled font when unset)")
	fs.Float64Var(&ra.fontSize, "font-size", 48, "Font point size")
	fs.IntVar(&ra.workers, "workers", config.AutoWorkerCount(), "Number of parallel frame workers")
	fs.IntVar(&ra.batchSize, "batch-size", config.DefaultBatchSize, "Frame indices handed to a worker at once")
	fs.BoolVar(&ra.hardware, "hardware-encoder", false, "Prefer h264_nvenc, falling back to libx264 on failure")
	fs.Float64Var(&ra.scale, "scale", 1.0, "Render at a reduced resolution for fast previews")
	fs.Float64Var(&ra.minScroll, "min-scroll-seconds", 0, "Lengthen short texts so scrolling lasts at least this long")
}

func runRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Render a single text source to a video file.

Usage:
  %s render [options] <input.txt>

Required:
  -o, --output <PATH>    Output video path

`, appName)
		fs.PrintDefaults()
	}

	var ra renderArgs
	bindRenderFlags(fs, &ra)

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("input text file is required")
	}
	ra.inputPath = fs.Arg(0)

	if ra.outputPath == "" {
		return fmt.Errorf("output path is required (-o/--output)")
	}

	return executeRender(ra)
}

func runBatch(args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Render every text file in a directory.

Usage:
  %s batch [options] <input-dir>

Required:
  -o, --output <DIR>    Output directory

`, appName)
		fs.PrintDefaults()
	}

	var ra renderArgs
	bindRenderFlags(fs, &ra)

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("input directory is required")
	}
	ra.inputPath = fs.Arg(0)

	if ra.outputPath == "" {
		return fmt.Errorf("output directory is required (-o/--output)")
	}

	inputs, err := discovery.FindTextFiles(ra.inputPath)
	if err != nil {
		return err
	}

	if err := util.EnsureDirectory(ra.outputPath); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	logger, closeLog, rep, err := buildLogging(ra)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	notifyOnSignal(cancel)

	renderer, err := buildRenderer(ra)
	if err != nil {
		return err
	}

	for i, in := range inputs {
		text, err := os.ReadFile(in)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", in, err)
		}
		outPath := filepath.Join(ra.outputPath, withoutExt(filepath.Base(in))+".mp4")
		if logger != nil {
			logger.Info("batch %d/%d: %s -> %s", i+1, len(inputs), in, outPath)
		}
		if _, err := renderer.RenderWithReporter(ctx, string(text), outPath, rep); err != nil {
			return fmt.Errorf("failed to render %s: %w", in, err)
		}
	}

	return nil
}

func executeRender(ra renderArgs) error {
	text, err := os.ReadFile(ra.inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	if err := util.EnsureDirectory(filepath.Dir(ra.outputPath)); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	logger, closeLog, rep, err := buildLogging(ra)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	notifyOnSignal(cancel)

	renderer, err := buildRenderer(ra)
	if err != nil {
		return err
	}

	if logger != nil {
		logger.Info("rendering %s -> %s", ra.inputPath, ra.outputPath)
	}

	result, err := renderer.RenderWithReporter(ctx, string(text), ra.outputPath, rep)
	if err != nil {
		return err
	}
	if logger != nil {
		logger.Info("wrote %d frames to %s (%.2fx realtime)", result.FramesWritten, result.OutputFile, result.AverageSpeed)
	}
	return nil
}

func buildLogging(ra renderArgs) (*logging.Logger, func(), reporter.Reporter, error) {
	logDir := ra.logDir
	if logDir == "" {
		logDir = logging.DefaultLogDir()
	}

	logger, err := logging.Setup(logDir, ra.verbose, ra.noLog, os.Args)
	if err != nil {
		return nil, func() {}, nil, fmt.Errorf("failed to setup logging: %w", err)
	}

	termRep := reporter.NewTerminalReporterVerbose(ra.verbose)
	var rep reporter.Reporter = termRep
	if logger != nil {
		logRep := reporter.NewLogReporter(logger.Writer())
		rep = reporter.NewCompositeReporter(termRep, logRep)
	}

	closeLog := func() {
		if logger != nil {
			_ = logger.Close()
		}
	}
	return logger, closeLog, rep, nil
}

func buildRenderer(ra renderArgs) (*scrollcast.Renderer, error) {
	tailMode := config.TailFreeze
	if ra.tailCut {
		tailMode = config.TailCut
	}

	opts := []scrollcast.Option{
		scrollcast.WithResolution(uint32(ra.width), uint32(ra.height)),
		scrollcast.WithFPS(uint32(ra.fps)),
		scrollcast.WithScrollSpeed(ra.scrollSpeed),
		scrollcast.WithPadding(ra.headSecs, ra.tailSecs),
		scrollcast.WithTailMode(tailMode),
		scrollcast.WithTransparent(ra.transparent),
		scrollcast.WithWorkers(ra.workers),
		scrollcast.WithBatchSize(ra.batchSize),
		scrollcast.WithHardwareEncoder(ra.hardware),
		scrollcast.WithFont(ra.fontPath, ra.fontSize),
	}
	if ra.audioPath != "" {
		opts = append(opts, scrollcast.WithAudioPath(ra.audioPath))
	}
	if ra.scale > 0 && ra.scale != 1.0 {
		opts = append(opts, scrollcast.WithScaleFactor(ra.scale))
	}
	if ra.minScroll > 0 {
		opts = append(opts, scrollcast.WithMinScrollDuration(ra.minScroll))
	}

	return scrollcast.New(opts...)
}

func notifyOnSignal(cancel context.CancelFunc) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()
}

func withoutExt(name string) string {
	ext := filepath.Ext(name)
	return name[:len(name)-len(ext)]
}
