package ffmpeg

import (
	"strings"
	"testing"
)

func containsArg(args []string, want string) bool {
	for _, a := range args {
		if a == want {
			return true
		}
	}
	return false
}

func TestBuildArgsOpaquePath(t *testing.T) {
	p := Params{Width: 1080, Height: 1920, FPS: 30, PixFmt: PixFmtRGB24, CRF: 20, OutputPath: "out.mp4"}
	args := BuildArgs(p, false)

	if !containsArg(args, "libx264") {
		t.Fatal("opaque path must select libx264")
	}
	if containsArg(args, "prores_ks") {
		t.Fatal("opaque path must not select prores_ks")
	}
	if !containsArg(args, "1080x1920") {
		t.Fatal("must declare the exact frame geometry")
	}
}

func TestBuildArgsTransparentPathUsesProResOverHardware(t *testing.T) {
	p := Params{Width: 100, Height: 100, FPS: 30, PixFmt: PixFmtRGBA, Transparent: true, Hardware: true, OutputPath: "out.mov"}
	args := BuildArgs(p, false)

	if !containsArg(args, "prores_ks") {
		t.Fatal("transparent path must select prores_ks regardless of Hardware")
	}
	if containsArg(args, "h264_nvenc") {
		t.Fatal("transparent path must not select a hardware H.264 encoder")
	}
}

func TestBuildArgsHardwarePath(t *testing.T) {
	p := Params{Width: 100, Height: 100, FPS: 30, PixFmt: PixFmtRGB24, Hardware: true, OutputPath: "out.mp4"}
	args := BuildArgs(p, false)
	if !containsArg(args, "h264_nvenc") {
		t.Fatal("expected h264_nvenc when Hardware is set and software fallback not requested")
	}
}

func TestBuildArgsSoftwareFallbackOverridesHardware(t *testing.T) {
	p := Params{Width: 100, Height: 100, FPS: 30, PixFmt: PixFmtRGB24, Hardware: true, OutputPath: "out.mp4"}
	args := BuildArgs(p, true)
	if containsArg(args, "h264_nvenc") {
		t.Fatal("software=true must override Hardware")
	}
	if !containsArg(args, "libx264") {
		t.Fatal("software=true must select libx264")
	}
}

func TestBuildArgsMuxesAudioWhenPresent(t *testing.T) {
	p := Params{Width: 100, Height: 100, FPS: 30, PixFmt: PixFmtRGB24, AudioPath: "track.wav", OutputPath: "out.mp4"}
	args := BuildArgs(p, false)
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "track.wav") {
		t.Fatal("audio path must appear as an input when set")
	}
	if !containsArg(args, "-shortest") {
		t.Fatal("audio mux must clamp output duration with -shortest")
	}
}

func TestBuildArgsOmitsAudioArgsWhenAbsent(t *testing.T) {
	p := Params{Width: 100, Height: 100, FPS: 30, PixFmt: PixFmtRGB24, OutputPath: "out.mp4"}
	args := BuildArgs(p, false)
	if containsArg(args, "-shortest") {
		t.Fatal("must not emit audio mux args without an AudioPath")
	}
}

func TestOutputPathForForcesMovExtensionWhenTransparent(t *testing.T) {
	got := OutputPathFor(Params{Transparent: true, OutputPath: "render.mp4"})
	if got != "render.mov" {
		t.Fatalf("OutputPathFor = %q, want %q", got, "render.mov")
	}
}

func TestOutputPathForLeavesOpaquePathUnchanged(t *testing.T) {
	got := OutputPathFor(Params{Transparent: false, OutputPath: "render.mp4"})
	if got != "render.mp4" {
		t.Fatalf("OutputPathFor = %q, want %q", got, "render.mp4")
	}
}
