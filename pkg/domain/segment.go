package domain

// SegmentKind tags the structural shape of a segment.
type SegmentKind string

const (
	// SegmentHairpinLeft is a double-stranded core closed by a loop on its left side.
	SegmentHairpinLeft SegmentKind = "hairpin_left"
	// SegmentMiddle is a double-stranded core open on both sides.
	SegmentMiddle SegmentKind = "middle"
	// SegmentHairpinRight is a double-stranded core closed by a loop on its right side.
	SegmentHairpinRight SegmentKind = "hairpin_right"
)

// Segment is one structural unit of a gate.
//
// Middle holds the upper strand of the double-stranded core; its complement is
// synthesized during lowering. Lower overhangs are stored in drawn order
// (left to right), which is 3' to 5'.
//
// Which fields are meaningful depends on Kind:
//
//	hairpin_left:  Loop, Middle, UpperRight, LowerRight
//	middle:        UpperLeft, LowerLeft, Middle, UpperRight, LowerRight
//	hairpin_right: Loop, Middle, UpperLeft, LowerLeft
type Segment struct {
	Kind       SegmentKind `json:"kind"`
	Loop       Strand      `json:"loop,omitempty"`
	UpperLeft  Strand      `json:"upper_left,omitempty"`
	LowerLeft  Strand      `json:"lower_left,omitempty"`
	Middle     Strand      `json:"middle"`
	UpperRight Strand      `json:"upper_right,omitempty"`
	LowerRight Strand      `json:"lower_right,omitempty"`
}

// HairpinLeft builds a left hairpin segment.
func HairpinLeft(loop, middle, upperRight, lowerRight Strand) Segment {
	return Segment{
		Kind:       SegmentHairpinLeft,
		Loop:       loop,
		Middle:     middle,
		UpperRight: upperRight,
		LowerRight: lowerRight,
	}
}

// MiddleSegment builds a segment that is open on both sides.
func MiddleSegment(upperLeft, lowerLeft, middle, upperRight, lowerRight Strand) Segment {
	return Segment{
		Kind:       SegmentMiddle,
		UpperLeft:  upperLeft,
		LowerLeft:  lowerLeft,
		Middle:     middle,
		UpperRight: upperRight,
		LowerRight: lowerRight,
	}
}

// HairpinRight builds a right hairpin segment.
func HairpinRight(loop, middle, upperLeft, lowerLeft Strand) Segment {
	return Segment{
		Kind:      SegmentHairpinRight,
		Loop:      loop,
		Middle:    middle,
		UpperLeft: upperLeft,
		LowerLeft: lowerLeft,
	}
}

// SingleSites counts the sites stored outside the double-stranded core.
func (s Segment) SingleSites() int {
	return len(s.Loop) + len(s.UpperLeft) + len(s.LowerLeft) + len(s.UpperRight) + len(s.LowerRight)
}
