// Package frame implements the frame builder (C2): translating a frame
// index into a windowed slice of the source image and invoking the pixel
// compositor to produce one output frame.
package frame

import (
	"math"

	"github.com/yinshiyionly/scrollcast/internal/compositor"
	"github.com/yinshiyionly/scrollcast/internal/scroll"
	"github.com/yinshiyionly/scrollcast/internal/source"
)

// Params is the subset of video parameters the frame builder needs. It is
// deliberately narrow so this package doesn't depend on internal/config.
type Params struct {
	Width       int
	Height      int
	Background  [4]byte
	Transparent bool
}

// BytesPerPixel returns 3 for opaque frames, 4 for transparent ones.
func (p Params) BytesPerPixel() int {
	if p.Transparent {
		return 4
	}
	return 3
}

// FrameSize returns W*H*C, the exact byte length of every emitted frame.
func (p Params) FrameSize() int {
	return p.Width * p.Height * p.BytesPerPixel()
}

// Builder produces frames. It holds no mutable state of its own beyond a
// reusable background-frame cache, so a single Builder may be shared by
// every worker goroutine.
type Builder struct {
	params Params
	plan   *scroll.Plan
	src    *source.Image

	bgFrame []byte // precomputed, fully-background frame (past-end / fully clipped)
}

// New constructs a Builder bound to a source image and a scroll plan. src
// must outlive every call to Build.
func New(params Params, plan *scroll.Plan, src *source.Image) *Builder {
	b := &Builder{params: params, plan: plan, src: src}
	b.bgFrame = make([]byte, params.FrameSize())
	if params.Transparent {
		compositor.FillTransparent(b.bgFrame, params.Width, params.Height, params.Background)
	} else {
		compositor.FillOpaque(b.bgFrame, params.Width, params.Height, [3]byte{params.Background[0], params.Background[1], params.Background[2]})
	}
	return b
}

// Build renders frame i into a freshly allocated buffer.
func (b *Builder) Build(i int) []byte {
	phase := b.plan.Phase(i)
	if phase == scroll.PhasePastEnd {
		out := make([]byte, len(b.bgFrame))
		copy(out, b.bgFrame)
		return out
	}

	p := b.plan.Position(i)
	y0 := int(math.Floor(p))
	imgH := b.src.Height()

	if y0 >= imgH {
		out := make([]byte, len(b.bgFrame))
		copy(out, b.bgFrame)
		return out
	}

	y1 := y0 + b.params.Height
	if y1 > imgH {
		y1 = imgH
	}
	h := y1 - y0
	if h < 0 {
		h = 0
	}

	out := make([]byte, len(b.bgFrame))
	copy(out, b.bgFrame)

	if h == 0 {
		return out
	}

	stride := b.src.Width() * 4
	srcSlice := b.src.Pix[y0*stride : y1*stride]

	if b.params.Transparent {
		compositor.CopyTransparentRows(out, srcSlice, b.params.Width, h)
	} else {
		compositor.BlendOpaqueRows(out, srcSlice, b.params.Width, h)
	}

	return out
}
