package config

import "testing"

func validConfig() *Config {
	c := NewConfig()
	c.OutputPath = "/tmp/out.mp4"
	return c
}

func TestNewConfigValidatesCleanly(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("default config should validate, got: %v", err)
	}
}

func TestValidateRejectsZeroDimensions(t *testing.T) {
	c := validConfig()
	c.Width = 0
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for zero width")
	}
}

func TestValidateRejectsZeroFPS(t *testing.T) {
	c := validConfig()
	c.FPS = 0
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for zero fps")
	}
}

func TestValidateRejectsSlowScrollSpeed(t *testing.T) {
	c := validConfig()
	c.ScrollSpeed = 0.1
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for scroll speed below MinScrollSpeed")
	}
}

func TestValidateAcceptsScrollSpeedAtFloor(t *testing.T) {
	c := validConfig()
	c.ScrollSpeed = MinScrollSpeed
	if err := c.Validate(); err != nil {
		t.Fatalf("scroll speed at floor should validate, got: %v", err)
	}
}

func TestValidateRejectsZeroWorkers(t *testing.T) {
	c := validConfig()
	c.Workers = 0
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for zero workers")
	}
}

func TestValidateRejectsNegativePadding(t *testing.T) {
	c := validConfig()
	c.HeadStaticSecs = -1
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for negative head static duration")
	}
}

func TestValidateRejectsUnknownTailMode(t *testing.T) {
	c := validConfig()
	c.TailMode = TailMode("bogus")
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for unknown tail mode")
	}
}

func TestValidateRejectsMissingOutputPath(t *testing.T) {
	c := NewConfig()
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for empty output path")
	}
}

func TestValidateRejectsUnreadableAudioPath(t *testing.T) {
	c := validConfig()
	c.AudioPath = "/nonexistent/path/to/audio.wav"
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for unreadable audio path")
	}
}

func TestAutoWorkerCountWithinBounds(t *testing.T) {
	n := AutoWorkerCount()
	if n < 2 || n > 8 {
		t.Fatalf("AutoWorkerCount() = %d, want value in [2, 8]", n)
	}
}

func TestGetTempDirFallsBackToCurrentDir(t *testing.T) {
	c := NewConfig()
	if got := c.GetTempDir(); got != "." {
		t.Fatalf("GetTempDir() = %q, want %q when TempDir unset", got, ".")
	}
}
