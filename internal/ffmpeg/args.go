// Package ffmpeg implements the encoder driver wrapper (C6): constructing
// the FFmpeg argument vector from video parameters, spawning the child
// process, draining its diagnostic stream, and enforcing the
// watchdog/timeout/fallback policy from the external interfaces contract.
package ffmpeg

import (
	"fmt"
)

// PixelFormat is the raw pixel layout declared to FFmpeg's rawvideo demuxer.
type PixelFormat string

const (
	PixFmtRGB24 PixelFormat = "rgb24"
	PixFmtRGBA  PixelFormat = "rgba"
)

// Params describes one encode invocation.
type Params struct {
	Width       int
	Height      int
	FPS         uint32
	PixFmt      PixelFormat
	Transparent bool
	CRF         uint8
	Hardware    bool // request h264_nvenc; the wrapper falls back to libx264 once on failure
	AudioPath   string
	OutputPath  string
	NoGPU       bool // mirrors the NO_GPU environment convention
}

// minProbeSize and minThreadQueueSize are the I/O-tuning floors named in the
// external interfaces table, large enough that FFmpeg never stalls waiting
// to probe a stdin stream it's been told the exact geometry of.
const (
	minProbeSize       = 16 * 1024 * 1024
	minThreadQueueSize = 4096
)

// BuildArgs constructs the full FFmpeg argument vector for p. software
// selects libx264 even if p.Hardware is set, used by the one-shot fallback.
func BuildArgs(p Params, software bool) []string {
	args := []string{
		"-hide_banner",
		"-loglevel", "warning",
		"-probesize", fmt.Sprintf("%d", minProbeSize),
		"-analyzeduration", fmt.Sprintf("%d", minProbeSize),
		"-thread_queue_size", fmt.Sprintf("%d", minThreadQueueSize),
		"-f", "rawvideo",
		"-vcodec", "rawvideo",
		"-s", fmt.Sprintf("%dx%d", p.Width, p.Height),
		"-pix_fmt", string(p.PixFmt),
		"-r", fmt.Sprintf("%d", p.FPS),
		"-i", "-",
	}

	if p.AudioPath != "" {
		args = append(args,
			"-thread_queue_size", fmt.Sprintf("%d", minThreadQueueSize),
			"-i", p.AudioPath,
		)
	}

	args = append(args, "-vsync", "1")

	switch {
	case p.Transparent:
		args = append(args,
			"-c:v", "prores_ks",
			"-profile:v", "4",
			"-pix_fmt", "yuva444p10le",
			"-alpha_bits", "16",
			"-vendor", "ap10",
		)
	case p.Hardware && !software && !p.NoGPU:
		args = append(args,
			"-c:v", "h264_nvenc",
			"-preset", "p4",
			"-rc", "vbr",
			"-cq", "28",
			"-b:v", "6M",
			"-pix_fmt", "yuv420p",
		)
	default:
		args = append(args,
			"-c:v", "libx264",
			"-preset", "veryfast",
			"-crf", fmt.Sprintf("%d", p.CRF),
			"-pix_fmt", "yuv420p",
			"-movflags", "+faststart",
		)
	}

	if p.AudioPath != "" {
		args = append(args,
			"-c:a", "aac",
			"-b:a", "192k",
			"-map", "0:v:0",
			"-map", "1:a:0",
			"-shortest",
		)
	}

	args = append(args, "-y", p.OutputPath)
	return args
}

// OutputPathFor forces a .mov extension for the transparent ProRes path, as
// named in the external interfaces table.
func OutputPathFor(p Params) string {
	if !p.Transparent {
		return p.OutputPath
	}
	n := len(p.OutputPath)
	for i := n - 1; i >= 0 && i > n-6; i-- {
		if p.OutputPath[i] == '.' {
			return p.OutputPath[:i] + ".mov"
		}
	}
	return p.OutputPath + ".mov"
}
