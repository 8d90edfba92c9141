// Package raster implements the text layout / rasterizer collaborator
// named in the system overview: it produces the tall RGBA source bitmap
// the frame pipeline scrolls over, and reports the rendered text height.
//
// This package deliberately does not attempt text shaping, line-breaking
// beyond splitting on literal newlines, or font fallback between runs of
// mixed scripts — those are the spec's stated non-goals. It exists so
// cmd/scrollcast can be a self-contained CLI rather than a library that
// only accepts pre-rendered bitmaps.
package raster

import (
	"fmt"
	"os"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/yinshiyionly/scrollcast/internal/source"
)

// Params controls text layout.
type Params struct {
	Text             string
	Width            int // viewport width; the canvas is this wide
	ViewportHeight   int // used to pad the bottom of the canvas
	FontPath         string
	FontSize         float64
	LineSpacing      float64 // multiple of font size, e.g. 1.4
	Color            [4]byte // RGBA text color
	Background       [4]byte // RGBA canvas background
	RespectNewlines  bool    // if false, a single "\n" in Text still breaks; this only affects blank-line collapsing
}

// ResolveFont loads a font face, following the original renderer's fallback
// chain: an explicit path, then a short list of common system locations,
// finally the bundled Go Regular face so rendering never fails outright for
// want of a font file.
func ResolveFont(path string, size float64) (font.Face, error) {
	candidates := []string{path}
	candidates = append(candidates,
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
		"/System/Library/Fonts/Supplemental/Arial.ttf",
	)

	for _, c := range candidates {
		if c == "" {
			continue
		}
		data, err := os.ReadFile(c)
		if err != nil {
			continue
		}
		f, err := truetype.Parse(data)
		if err != nil {
			continue
		}
		return truetype.NewFace(f, &truetype.Options{Size: size}), nil
	}

	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("raster: failed to parse bundled fallback font: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{Size: size}), nil
}

// Render lays out Params.Text onto a tall canvas and returns it as a
// source.Image. Lines are not wrapped to the canvas width. The canvas
// height is the laid-out text height plus one
// viewport height of background padding at the bottom, matching the data
// model's "conceptually padded" SourceImage contract.
func Render(p Params) (*source.Image, int, error) {
	if p.FontSize <= 0 {
		p.FontSize = 48
	}
	if p.LineSpacing <= 0 {
		p.LineSpacing = 1.4
	}

	face, err := ResolveFont(p.FontPath, p.FontSize)
	if err != nil {
		return nil, 0, err
	}

	lines := splitLines(p.Text, p.RespectNewlines)
	lineHeight := p.FontSize * p.LineSpacing
	textHeight := int(lineHeight*float64(len(lines))) + int(p.FontSize)

	canvasHeight := textHeight + p.ViewportHeight
	if canvasHeight < p.ViewportHeight {
		canvasHeight = p.ViewportHeight
	}

	dc := gg.NewContext(p.Width, canvasHeight)
	dc.SetRGBA255(int(p.Background[0]), int(p.Background[1]), int(p.Background[2]), int(p.Background[3]))
	dc.Clear()
	dc.SetFontFace(face)
	dc.SetRGBA255(int(p.Color[0]), int(p.Color[1]), int(p.Color[2]), int(p.Color[3]))

	y := p.FontSize
	for _, line := range lines {
		dc.DrawStringAnchored(line, float64(p.Width)/2, y, 0.5, 0.5)
		y += lineHeight
	}

	img, err := source.FromImage(dc.Image())
	if err != nil {
		return nil, 0, err
	}
	return img, textHeight, nil
}

func splitLines(text string, respectOriginal bool) []string {
	raw := strings.Split(text, "\n")
	if respectOriginal {
		return raw
	}
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if strings.TrimSpace(l) == "" {
			continue
		}
		lines = append(lines, l)
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}
