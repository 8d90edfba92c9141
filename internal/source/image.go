// Package source holds the immutable tall RGBA bitmap the frame pipeline
// scrolls over.
package source

import (
	"fmt"
	"image"
	"image/draw"
)

// Image is an immutable RGBA raster. It is safe to share across goroutines:
// nothing in this package mutates Pix after construction.
type Image struct {
	width  int
	height int
	// Pix is row-major RGBA, stride == width*4, top-left origin.
	Pix []byte
}

// Width returns the image width in pixels.
func (s *Image) Width() int { return s.width }

// Height returns the image height in pixels.
func (s *Image) Height() int { return s.height }

// Row returns the byte slice for row y (length width*4). The caller must not
// mutate it.
func (s *Image) Row(y int) []byte {
	stride := s.width * 4
	return s.Pix[y*stride : (y+1)*stride]
}

// New wraps a raw RGBA buffer. It validates the SourceError conditions from
// the data model: the buffer must be exactly width*height*4 bytes.
func New(width, height int, pix []byte) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("source: invalid dimensions %dx%d", width, height)
	}
	want := width * height * 4
	if len(pix) != want {
		return nil, fmt.Errorf("source: expected %d bytes for %dx%d RGBA, got %d", want, width, height, len(pix))
	}
	return &Image{width: width, height: height, Pix: pix}, nil
}

// FromImage converts a standard library image.Image into a source.Image,
// copying pixels through an *image.RGBA, whose values are
// alpha-premultiplied. No un-premultiplication is done; the rest of the
// pipeline treats the bytes as straight alpha. Used by internal/raster
// after it rasterizes text onto an *image.RGBA canvas.
func FromImage(img image.Image) (*Image, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return New(w, h, rgba.Pix)
}

// EnsureMinHeight checks that the source is at least as tall as the video
// viewport, as required by the data model (H_img >= H_video). It returns a
// SourceError-shaped error rather than a ConfigError since it concerns the
// bitmap, not the configuration.
func (s *Image) EnsureMinHeight(viewportHeight int) error {
	if s.height < viewportHeight {
		return fmt.Errorf("source: image height %d is shorter than viewport height %d", s.height, viewportHeight)
	}
	return nil
}
