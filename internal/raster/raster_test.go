package raster

import (
	"reflect"
	"testing"
)

func TestSplitLinesRespectsOriginalWhenRequested(t *testing.T) {
	got := splitLines("a\n\nb", true)
	want := []string{"a", "", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("splitLines(respect=true) = %v, want %v", got, want)
	}
}

func TestSplitLinesCollapsesBlankLinesWhenNotRespecting(t *testing.T) {
	got := splitLines("a\n\n  \nb", false)
	want := []string{"a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("splitLines(respect=false) = %v, want %v", got, want)
	}
}

func TestSplitLinesNeverReturnsEmptySlice(t *testing.T) {
	got := splitLines("\n\n  \n", false)
	if len(got) == 0 {
		t.Fatal("splitLines must return at least one line even for all-blank input")
	}
}
