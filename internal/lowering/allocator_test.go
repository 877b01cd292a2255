package lowering

import (
	"testing"

	"github.com/aretw0/gatefold/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocator_Fresh(t *testing.T) {
	alloc := NewAllocator()
	seen := map[domain.Binding]bool{}

	for i := 0; i < 100; i++ {
		b := alloc.Fresh()
		assert.False(t, seen[b], "binding %s issued twice", b)
		assert.True(t, b.IsFresh())
		seen[b] = true
	}
	assert.Equal(t, 100, alloc.Issued())
}

func TestAllocator_IndependentRuns(t *testing.T) {
	a, b := NewAllocator(), NewAllocator()
	a.Fresh()
	a.Fresh()

	assert.Equal(t, domain.Binding("#1"), b.Fresh(), "allocators must not share state")
	assert.Equal(t, domain.Binding("#3"), a.Fresh())
}

func TestLowerWith_RejectsReservedBindings(t *testing.T) {
	reserved := domain.NewSite("x").Bind("#1")

	tests := []struct {
		name    string
		species domain.Species
	}{
		{"strand", domain.StrandSpecies(domain.Strand{reserved.Complement()})},
		{"gate overhang", domain.GateSpecies(domain.Singleton(
			domain.MiddleSegment(domain.Strand{reserved}, nil, strand(t, "a"), nil, nil),
		))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alloc := NewAllocator()
			src := &domain.SourceModel{Complexes: []domain.SourceComplex{{
				Multiplicity: 1,
				Species:      []domain.Species{tt.species},
			}}}

			m, n, err := LowerWith(alloc, src)
			assert.Nil(t, m)
			assert.Zero(t, n)
			assert.ErrorIs(t, err, domain.ErrReservedBinding)
			assert.Contains(t, err.Error(), "complex 1, species 1")
			assert.Zero(t, alloc.Issued(), "nothing is allocated for rejected input")
		})
	}
}

func TestLowerWith_AuthoredBindingsSurvive(t *testing.T) {
	src := &domain.SourceModel{Complexes: []domain.SourceComplex{{
		Multiplicity: 1,
		Species: []domain.Species{
			domain.GateSpecies(domain.Singleton(mid(t, "a"))),
			domain.StrandSpecies(strand(t, "y*!1", "z!1")),
		},
	}}}

	m, n, err := LowerWith(NewAllocator(), src)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"a!#1", "a*!#1", "y*!1 z!1"}, render(m.Complexes[0].Strands))
}
