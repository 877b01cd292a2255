package lowering

import (
	"errors"
	"fmt"

	"github.com/aretw0/gatefold/pkg/domain"
)

var errMalformedGate = errors.New("malformed gate")

// folded is the result of folding a subtree: its open view and the strands
// that can no longer be extended.
type folded struct {
	view   View
	sealed []domain.Strand
}

// Fold lowers a gate tree into its open view and the ordered list of sealed strands.
//
// Subtrees are visited left before right, so bindings are allocated in reading
// order. The walk uses an explicit stack; deep join chains do not recurse.
func Fold(alloc *Allocator, g *domain.Gate) (View, []domain.Strand, error) {
	if g == nil {
		return View{}, nil, fmt.Errorf("%w: nil gate", errMalformedGate)
	}

	type frame struct {
		gate     *domain.Gate
		expanded bool
	}

	work := []frame{{gate: g}}
	var results []folded

	for len(work) > 0 {
		f := work[len(work)-1]
		work = work[:len(work)-1]

		switch f.gate.Kind {
		case domain.GateSingleton:
			if f.gate.Segment == nil {
				return View{}, nil, fmt.Errorf("%w: singleton without segment", errMalformedGate)
			}
			v, err := ViewSegment(alloc, *f.gate.Segment)
			if err != nil {
				return View{}, nil, err
			}
			results = append(results, folded{view: v})

		case domain.GateJoinLower, domain.GateJoinUpper:
			if f.gate.Left == nil || f.gate.Right == nil {
				return View{}, nil, fmt.Errorf("%w: %s join missing a child", errMalformedGate, f.gate.Edge())
			}
			if !f.expanded {
				work = append(work, frame{gate: f.gate, expanded: true}, frame{gate: f.gate.Right}, frame{gate: f.gate.Left})
				continue
			}
			right := results[len(results)-1]
			left := results[len(results)-2]
			results = results[:len(results)-2]

			joined, err := join(f.gate.Edge(), left, right)
			if err != nil {
				return View{}, nil, err
			}
			results = append(results, joined)

		default:
			return View{}, nil, fmt.Errorf("%w: unknown gate kind %q", errMalformedGate, f.gate.Kind)
		}
	}

	root := results[0]
	return root.view, root.sealed, nil
}

// Melt lowers a gate into its physical strands: sealed strands first, then the
// strands of the remaining open view.
func Melt(alloc *Allocator, g *domain.Gate) ([]domain.Strand, error) {
	view, sealed, err := Fold(alloc, g)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Strand, 0, len(sealed)+2)
	out = append(out, sealed...)
	return append(out, view.Strands()...), nil
}

// join fuses two folded subtrees on the given edge. A newly sealed strand goes
// in front of the left and right sealed lists.
func join(edge domain.Edge, left, right folded) (folded, error) {
	var (
		view      View
		seal      domain.Strand
		hasSealed bool
		err       error
	)

	switch edge {
	case domain.EdgeLower:
		view, seal, hasSealed, err = fuseLower(left.view, right.view)
	case domain.EdgeUpper:
		view, seal, hasSealed, err = fuseLower(left.view.mirror(), right.view.mirror())
		view = view.mirror()
	default:
		return folded{}, fmt.Errorf("%w: unknown edge %q", errMalformedGate, edge)
	}
	if err != nil {
		return folded{}, &domain.CircularStructureError{Edge: edge}
	}

	sealed := make([]domain.Strand, 0, len(left.sealed)+len(right.sealed)+1)
	if hasSealed {
		sealed = append(sealed, seal)
	}
	sealed = append(sealed, left.sealed...)
	sealed = append(sealed, right.sealed...)

	return folded{view: view, sealed: sealed}, nil
}

// fuseLower joins two views along their lower strands.
//
//	One(s),    Two(u,l)   -> Two(u, l++s)
//	Two(u,l),  One(s)     -> One(s++l),     seals u
//	Two(u1,l1),Two(u2,l2) -> Two(u2, l2++l1), seals u1
//	One,       One        -> ring
func fuseLower(left, right View) (View, domain.Strand, bool, error) {
	switch {
	case left.Kind == ViewOne && right.Kind == ViewOne:
		return View{}, nil, false, domain.ErrUnsupportedCircularStructure

	case left.Kind == ViewOne:
		return Two(right.Upper, domain.Concat(right.Lower, left.Strand)), nil, false, nil

	case right.Kind == ViewOne:
		return One(domain.Concat(right.Strand, left.Lower)), left.Upper, true, nil

	default:
		return Two(right.Upper, domain.Concat(right.Lower, left.Lower)), left.Upper, true, nil
	}
}
