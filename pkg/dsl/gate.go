package dsl

import (
	"fmt"

	"github.com/aretw0/gatefold/pkg/domain"
)

// SegmentBuilder provides a fluent API for configuring a segment.
type SegmentBuilder struct {
	seg domain.Segment
	err error
}

func newSegment(kind domain.SegmentKind, loop []string) *SegmentBuilder {
	sb := &SegmentBuilder{seg: domain.Segment{Kind: kind}}
	sb.seg.Loop = sb.parse(loop)
	return sb
}

// Middle starts a segment open on both sides with the given core sites.
func Middle(core ...string) *SegmentBuilder {
	sb := newSegment(domain.SegmentMiddle, nil)
	return sb.Core(core...)
}

// HairpinLeft starts a segment whose left side is closed by the loop.
func HairpinLeft(loop ...string) *SegmentBuilder {
	return newSegment(domain.SegmentHairpinLeft, loop)
}

// HairpinRight starts a segment whose right side is closed by the loop.
func HairpinRight(loop ...string) *SegmentBuilder {
	return newSegment(domain.SegmentHairpinRight, loop)
}

func (s *SegmentBuilder) parse(sites []string) domain.Strand {
	out, err := strand(sites)
	if err != nil && s.err == nil {
		s.err = err
	}
	return out
}

func (s *SegmentBuilder) requireOpen(side string, closed domain.SegmentKind) bool {
	if s.seg.Kind == closed {
		if s.err == nil {
			s.err = fmt.Errorf("%s segment has no %s overhangs", s.seg.Kind, side)
		}
		return false
	}
	return true
}

// Core sets the upper strand of the double-stranded region.
func (s *SegmentBuilder) Core(sites ...string) *SegmentBuilder {
	s.seg.Middle = s.parse(sites)
	return s
}

// UpperLeft sets the upper overhang left of the core.
func (s *SegmentBuilder) UpperLeft(sites ...string) *SegmentBuilder {
	if s.requireOpen("left", domain.SegmentHairpinLeft) {
		s.seg.UpperLeft = s.parse(sites)
	}
	return s
}

// LowerLeft sets the lower overhang left of the core, in drawn order.
func (s *SegmentBuilder) LowerLeft(sites ...string) *SegmentBuilder {
	if s.requireOpen("left", domain.SegmentHairpinLeft) {
		s.seg.LowerLeft = s.parse(sites)
	}
	return s
}

// UpperRight sets the upper overhang right of the core.
func (s *SegmentBuilder) UpperRight(sites ...string) *SegmentBuilder {
	if s.requireOpen("right", domain.SegmentHairpinRight) {
		s.seg.UpperRight = s.parse(sites)
	}
	return s
}

// LowerRight sets the lower overhang right of the core, in drawn order.
func (s *SegmentBuilder) LowerRight(sites ...string) *SegmentBuilder {
	if s.requireOpen("right", domain.SegmentHairpinRight) {
		s.seg.LowerRight = s.parse(sites)
	}
	return s
}

// GateBuilder chains segments with left-associative joins.
type GateBuilder struct {
	gate *domain.Gate
	err  error
}

// Gate starts a gate from its first segment.
func Gate(first *SegmentBuilder) *GateBuilder {
	return &GateBuilder{gate: domain.Singleton(first.seg), err: first.err}
}

func (g *GateBuilder) join(next *SegmentBuilder, fn func(l, r *domain.Gate) *domain.Gate) *GateBuilder {
	if g.err == nil && next.err != nil {
		g.err = next.err
	}
	g.gate = fn(g.gate, domain.Singleton(next.seg))
	return g
}

// Lower joins the next segment along the lower edge (":").
func (g *GateBuilder) Lower(next *SegmentBuilder) *GateBuilder {
	return g.join(next, domain.JoinLower)
}

// Upper joins the next segment along the upper edge ("::").
func (g *GateBuilder) Upper(next *SegmentBuilder) *GateBuilder {
	return g.join(next, domain.JoinUpper)
}
