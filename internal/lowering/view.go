package lowering

import (
	"fmt"

	"github.com/aretw0/gatefold/pkg/domain"
)

// ViewKind tells whether a partial structure exposes one continuous strand or
// an open upper/lower pair.
type ViewKind int

const (
	// ViewOne is a single strand whose loop already joins its two ends.
	ViewOne ViewKind = iota + 1
	// ViewTwo is an upper and a lower strand still open at the join edges.
	ViewTwo
)

func (k ViewKind) String() string {
	switch k {
	case ViewOne:
		return "one"
	case ViewTwo:
		return "two"
	}
	return fmt.Sprintf("ViewKind(%d)", int(k))
}

// View is the open side of a partially folded gate.
type View struct {
	Kind   ViewKind
	Strand domain.Strand // ViewOne
	Upper  domain.Strand // ViewTwo
	Lower  domain.Strand // ViewTwo
}

// One builds a single-strand view.
func One(s domain.Strand) View {
	return View{Kind: ViewOne, Strand: s}
}

// Two builds an upper/lower view.
func Two(upper, lower domain.Strand) View {
	return View{Kind: ViewTwo, Upper: upper, Lower: lower}
}

// mirror swaps the upper and lower strands. Single-strand views are unchanged.
func (v View) mirror() View {
	if v.Kind != ViewTwo {
		return v
	}
	return Two(v.Lower, v.Upper)
}

// Strands lists the strands of a finished view, upper before lower.
func (v View) Strands() []domain.Strand {
	if v.Kind == ViewOne {
		return []domain.Strand{v.Strand}
	}
	return []domain.Strand{v.Upper, v.Lower}
}

// ViewSegment melts the core of a segment and threads its overhangs and loop
// into either one continuous strand (hairpins) or an upper/lower pair.
func ViewSegment(alloc *Allocator, seg domain.Segment) (View, error) {
	switch seg.Kind {
	case domain.SegmentHairpinLeft:
		upper, lower := MeltDouble(alloc, seg.Middle)
		return One(domain.Concat(
			seg.LowerRight.Reverse(),
			lower.Reverse(),
			seg.Loop,
			upper,
			seg.UpperRight,
		)), nil

	case domain.SegmentMiddle:
		upper, lower := MeltDouble(alloc, seg.Middle)
		return Two(
			domain.Concat(seg.UpperLeft, upper, seg.UpperRight),
			domain.Concat(seg.LowerRight.Reverse(), lower, seg.LowerLeft.Reverse()),
		), nil

	case domain.SegmentHairpinRight:
		upper, lower := MeltDouble(alloc, seg.Middle)
		return One(domain.Concat(
			seg.UpperLeft,
			upper,
			seg.Loop.Reverse(),
			lower,
			seg.LowerLeft.Reverse(),
		)), nil
	}
	return View{}, fmt.Errorf("unknown segment kind %q", seg.Kind)
}
