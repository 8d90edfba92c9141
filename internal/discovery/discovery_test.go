package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsTextFile(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"script.txt", true},
		{"README.md", true},
		{"video.mp4", false},
		{"noext", false},
	}
	for _, c := range cases {
		if got := IsTextFile(c.path); got != c.want {
			t.Errorf("IsTextFile(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}

func TestFindTextFilesSortsAndSkipsHidden(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.txt", "a.md", ".hidden.txt", "video.mp4"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "subdir.txt"), 0755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}

	files, err := FindTextFiles(dir)
	if err != nil {
		t.Fatalf("FindTextFiles: %v", err)
	}

	want := []string{"a.md", "b.txt"}
	if len(files) != len(want) {
		t.Fatalf("got %d files, want %d: %v", len(files), len(want), files)
	}
	for i, f := range files {
		if filepath.Base(f) != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, filepath.Base(f), want[i])
		}
	}
}

func TestFindTextFilesErrorsOnEmptyDir(t *testing.T) {
	dir := t.TempDir()
	if _, err := FindTextFiles(dir); err == nil {
		t.Fatal("expected error for directory with no text files")
	}
}

func TestFindTextFilesErrorsOnMissingDir(t *testing.T) {
	if _, err := FindTextFiles("/nonexistent/dir/path"); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
