package lowering

import (
	"fmt"

	"github.com/aretw0/gatefold/pkg/domain"
)

// LowerSpecies turns one species into plain strands. Strands pass through as-is.
func LowerSpecies(alloc *Allocator, sp domain.Species) ([]domain.Strand, error) {
	switch sp.Kind {
	case domain.SpeciesStrand:
		return []domain.Strand{sp.Strand}, nil
	case domain.SpeciesGate:
		return Melt(alloc, sp.Gate)
	}
	return nil, fmt.Errorf("unknown species kind %q", sp.Kind)
}

// LowerComplexes lowers every complex in order, keeping multiplicities.
// The first failure aborts the whole run.
func LowerComplexes(alloc *Allocator, complexes []domain.SourceComplex) ([]domain.Complex, error) {
	out := make([]domain.Complex, 0, len(complexes))
	for i, c := range complexes {
		var strands []domain.Strand
		for j, sp := range c.Species {
			lowered, err := LowerSpecies(alloc, sp)
			if err != nil {
				return nil, fmt.Errorf("complex %d, species %d: %w", i+1, j+1, err)
			}
			strands = append(strands, lowered...)
		}
		out = append(out, domain.Complex{Multiplicity: c.Multiplicity, Strands: strands})
	}
	return out, nil
}

// Lower runs one complete lowering with its own allocator.
// Toeholds and nicks are carried over unchanged.
func Lower(src *domain.SourceModel) (*domain.Model, error) {
	m, _, err := LowerWith(NewAllocator(), src)
	return m, err
}

// LowerWith lowers src using alloc and also reports how many bindings were issued.
func LowerWith(alloc *Allocator, src *domain.SourceModel) (*domain.Model, int, error) {
	if src == nil {
		return nil, 0, fmt.Errorf("%w: nil source model", errMalformedGate)
	}
	if err := checkReserved(src.Complexes); err != nil {
		return nil, 0, err
	}
	before := alloc.Issued()

	complexes, err := LowerComplexes(alloc, src.Complexes)
	if err != nil {
		return nil, 0, err
	}

	return &domain.Model{
		Toeholds:  src.Toeholds,
		Nicks:     src.Nicks,
		Complexes: complexes,
	}, alloc.Issued() - before, nil
}

// checkReserved rejects input sites that already carry a fresh binding.
func checkReserved(complexes []domain.SourceComplex) error {
	for i, c := range complexes {
		for j, sp := range c.Species {
			var strands []domain.Strand
			switch sp.Kind {
			case domain.SpeciesStrand:
				strands = append(strands, sp.Strand)
			case domain.SpeciesGate:
				if sp.Gate == nil {
					continue
				}
				for _, seg := range sp.Gate.Segments() {
					strands = append(strands, seg.Loop, seg.UpperLeft, seg.LowerLeft,
						seg.Middle, seg.UpperRight, seg.LowerRight)
				}
			}
			for _, st := range strands {
				for _, site := range st {
					if site.Binding.IsFresh() {
						return fmt.Errorf("complex %d, species %d: site %s: %w", i+1, j+1, site, domain.ErrReservedBinding)
					}
				}
			}
		}
	}
	return nil
}
