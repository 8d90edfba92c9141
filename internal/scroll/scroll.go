// Package scroll implements the scroll scheduler (C3): mapping a frame
// index to a scroll position and a phase classification. Scroll positions
// are built by running-sum accumulation (acc += v per frame); for speeds
// that are not exactly representable in binary the sum drifts from i*v by
// a rounding error that grows with the frame count.
package scroll

import (
	"fmt"
	"math"
)

// Phase is which region of the timeline a frame index falls in.
type Phase int

const (
	PhaseHeadStatic Phase = iota
	PhaseScrolling
	PhaseTailStatic
	PhasePastEnd
)

func (p Phase) String() string {
	switch p {
	case PhaseHeadStatic:
		return "head-static"
	case PhaseScrolling:
		return "scrolling"
	case PhaseTailStatic:
		return "tail-static"
	default:
		return "past-end"
	}
}

// MinSpeed is the minimum scroll speed the scheduler accepts, in px/frame.
const MinSpeed = 0.5

// Plan is the scroll scheduler's output: total frame count plus pure
// functions mapping a frame index to its phase and scroll position.
//
// Positions for the scrolling phase are served from a precomputed table
// built by exact running-sum accumulation (acc += v per frame, not i*v),
// per the data model's drift-avoidance invariant. The table costs one
// float64 per scrolling frame, which is negligible next to the per-frame
// pixel buffers the rest of the pipeline allocates.
type Plan struct {
	imgHeight    int
	videoHeight  int
	fps          uint32
	v            float64
	nHead        int
	nScroll      int
	nTail        int
	scrollPos    []float64 // scrollPos[k] is p at the k-th scrolling frame
	maxScrollTop float64
}

// New builds a scroll Plan. headStaticSecs and tailStaticSecs of zero
// collapse to the pure-scroll convention (N_total = ceil(imgHeight/v), no
// padding).
func New(imgHeight, videoHeight int, fps uint32, v, headStaticSecs, tailStaticSecs float64) (*Plan, error) {
	if v < MinSpeed {
		return nil, fmt.Errorf("scroll: speed %g is below the minimum of %g px/frame", v, MinSpeed)
	}
	if imgHeight <= 0 || videoHeight <= 0 || fps == 0 {
		return nil, fmt.Errorf("scroll: invalid geometry imgHeight=%d videoHeight=%d fps=%d", imgHeight, videoHeight, fps)
	}

	p := &Plan{imgHeight: imgHeight, videoHeight: videoHeight, fps: fps, v: v}

	scrollRange := float64(imgHeight)
	pure := headStaticSecs == 0 && tailStaticSecs == 0
	if !pure {
		scrollRange = float64(imgHeight - videoHeight)
		if scrollRange < 0 {
			scrollRange = 0
		}
		p.nHead = int(math.Ceil(headStaticSecs * float64(fps)))
		p.nTail = int(math.Ceil(tailStaticSecs * float64(fps)))
	}

	p.nScroll = int(math.Ceil(scrollRange / v))
	if p.nScroll < 0 {
		p.nScroll = 0
	}

	p.scrollPos = make([]float64, p.nScroll)
	acc := 0.0
	for i := 0; i < p.nScroll; i++ {
		p.scrollPos[i] = acc
		acc += v
	}
	p.maxScrollTop = float64(imgHeight - videoHeight)
	if p.maxScrollTop < 0 {
		p.maxScrollTop = 0
	}

	return p, nil
}

// Total returns N_total, the number of frames this plan emits.
func (p *Plan) Total() int {
	return p.nHead + p.nScroll + p.nTail
}

// Phase classifies frame index i.
func (p *Plan) Phase(i int) Phase {
	switch {
	case i < 0 || i >= p.Total():
		return PhasePastEnd
	case i < p.nHead:
		return PhaseHeadStatic
	case i < p.nHead+p.nScroll:
		return PhaseScrolling
	default:
		return PhaseTailStatic
	}
}

// Position returns p_i, the top-edge y-coordinate in the source at frame i.
func (p *Plan) Position(i int) float64 {
	switch p.Phase(i) {
	case PhaseHeadStatic:
		return 0
	case PhaseScrolling:
		return p.scrollPos[i-p.nHead]
	case PhaseTailStatic:
		return p.maxScrollTop
	default:
		return p.maxScrollTop
	}
}
