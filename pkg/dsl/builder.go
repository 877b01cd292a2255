package dsl

import (
	"fmt"

	"github.com/aretw0/gatefold/pkg/domain"
)

// Builder manages the model construction.
// Errors are recorded as they happen and reported by Build.
type Builder struct {
	model domain.SourceModel
	err   error
}

// New creates a new model builder.
func New() *Builder {
	return &Builder{}
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Toehold declares toehold domain names.
func (b *Builder) Toehold(names ...string) *Builder {
	b.model.Toeholds = append(b.model.Toeholds, names...)
	return b
}

// Nick adds an enzyme directive. Domains use source notation ("a", "t^*").
func (b *Builder) Nick(left, right []string) *Builder {
	l, err := domains(left)
	if err != nil {
		b.fail(fmt.Errorf("nick: %w", err))
		return b
	}
	r, err := domains(right)
	if err != nil {
		b.fail(fmt.Errorf("nick: %w", err))
		return b
	}
	b.model.Nicks = append(b.model.Nicks, domain.Nick{Left: l, Right: r})
	return b
}

// Complex starts a new complex with the given multiplicity.
func (b *Builder) Complex(multiplicity int) *ComplexBuilder {
	if multiplicity < 1 {
		b.fail(fmt.Errorf("complex %d: multiplicity must be positive, got %d", len(b.model.Complexes)+1, multiplicity))
	}
	b.model.Complexes = append(b.model.Complexes, domain.SourceComplex{Multiplicity: multiplicity})
	return &ComplexBuilder{builder: b, index: len(b.model.Complexes) - 1}
}

// Build returns the source model, or the first error recorded while building.
func (b *Builder) Build() (*domain.SourceModel, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.model.Complexes) == 0 {
		return nil, fmt.Errorf("model has no complexes")
	}
	for i, c := range b.model.Complexes {
		if len(c.Species) == 0 {
			return nil, fmt.Errorf("complex %d has no species", i+1)
		}
	}
	m := b.model
	return &m, nil
}

// ComplexBuilder adds species to one complex.
type ComplexBuilder struct {
	builder *Builder
	index   int
}

func (c *ComplexBuilder) add(sp domain.Species) {
	cx := &c.builder.model.Complexes[c.index]
	cx.Species = append(cx.Species, sp)
}

// Strand adds a plain strand written 5' to 3', e.g. Strand("t^", "x!1").
func (c *ComplexBuilder) Strand(sites ...string) *ComplexBuilder {
	s, err := strand(sites)
	if err != nil {
		c.builder.fail(fmt.Errorf("complex %d: %w", c.index+1, err))
		return c
	}
	if s == nil {
		s = domain.Strand{}
	}
	c.add(domain.StrandSpecies(s))
	return c
}

// Gate adds a gate species.
func (c *ComplexBuilder) Gate(g *GateBuilder) *ComplexBuilder {
	if g.err != nil {
		c.builder.fail(fmt.Errorf("complex %d: %w", c.index+1, g.err))
		return c
	}
	c.add(domain.GateSpecies(g.gate))
	return c
}

// Complex finishes this complex and starts the next one.
func (c *ComplexBuilder) Complex(multiplicity int) *ComplexBuilder {
	return c.builder.Complex(multiplicity)
}

// Build is a shortcut for the parent builder's Build.
func (c *ComplexBuilder) Build() (*domain.SourceModel, error) {
	return c.builder.Build()
}

func strand(sites []string) (domain.Strand, error) {
	if len(sites) == 0 {
		return nil, nil
	}
	out := make(domain.Strand, 0, len(sites))
	for _, text := range sites {
		s, err := domain.ParseSite(text)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func domains(names []string) ([]domain.Domain, error) {
	var out []domain.Domain
	for _, text := range names {
		s, err := domain.ParseSite(text)
		if err != nil {
			return nil, err
		}
		if s.Binding != "" {
			return nil, fmt.Errorf("domain %q must not carry a binding", text)
		}
		out = append(out, s.Domain)
	}
	return out, nil
}
