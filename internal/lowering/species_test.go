package lowering

import (
	"testing"

	"github.com/aretw0/gatefold/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLowerComplexes_StrandPassesThrough(t *testing.T) {
	src := []domain.SourceComplex{
		{Multiplicity: 2, Species: []domain.Species{domain.StrandSpecies(strand(t, "x"))}},
	}

	got, err := LowerComplexes(NewAllocator(), src)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Multiplicity)
	assert.Equal(t, []string{"x"}, render(got[0].Strands))
}

func TestLowerComplexes_GateKeepsMultiplicity(t *testing.T) {
	g := domain.JoinLower(domain.Singleton(mid(t, "a")), domain.Singleton(mid(t, "b")))
	src := []domain.SourceComplex{
		{Multiplicity: 7, Species: []domain.Species{domain.GateSpecies(g)}},
	}

	got, err := LowerComplexes(NewAllocator(), src)
	require.NoError(t, err)

	want, err := Melt(NewAllocator(), g)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, 7, got[0].Multiplicity)
	assert.Equal(t, render(want), render(got[0].Strands))
}

func TestLowerComplexes_PreservesOrder(t *testing.T) {
	src := []domain.SourceComplex{
		{Multiplicity: 1, Species: []domain.Species{
			domain.StrandSpecies(strand(t, "p")),
			domain.GateSpecies(domain.Singleton(mid(t, "a"))),
			domain.StrandSpecies(strand(t, "q")),
		}},
		{Multiplicity: 3, Species: []domain.Species{
			domain.GateSpecies(domain.Singleton(mid(t, "b"))),
		}},
	}

	got, err := LowerComplexes(NewAllocator(), src)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, []string{"p", "a!#1", "a*!#1", "q"}, render(got[0].Strands))
	assert.Equal(t, []string{"b!#2", "b*!#2"}, render(got[1].Strands), "bindings stay unique across complexes")
	assert.Equal(t, 3, got[1].Multiplicity)
}

func TestLower_AbortsOnCircularStructure(t *testing.T) {
	ring := domain.JoinUpper(
		domain.Singleton(domain.HairpinLeft(strand(t, "l"), strand(t, "a"), nil, nil)),
		domain.Singleton(domain.HairpinRight(strand(t, "r"), strand(t, "b"), nil, nil)),
	)
	src := &domain.SourceModel{
		Toeholds: []string{"t"},
		Complexes: []domain.SourceComplex{
			{Multiplicity: 1, Species: []domain.Species{domain.StrandSpecies(strand(t, "x"))}},
			{Multiplicity: 1, Species: []domain.Species{domain.GateSpecies(ring)}},
		},
	}

	m, err := Lower(src)
	assert.Nil(t, m)
	assert.ErrorIs(t, err, domain.ErrUnsupportedCircularStructure)
	assert.ErrorContains(t, err, "complex 2, species 1")
}

func TestLower_CarriesToeholdsAndNicks(t *testing.T) {
	nick := domain.Nick{
		Left:  []domain.Domain{{Name: "a"}},
		Right: []domain.Domain{{Name: "b", Toehold: true}},
	}
	src := &domain.SourceModel{
		Toeholds:  []string{"t", "u"},
		Nicks:     []domain.Nick{nick},
		Complexes: []domain.SourceComplex{{Multiplicity: 1, Species: []domain.Species{domain.StrandSpecies(strand(t, "t^"))}}},
	}

	m, bindings, err := LowerWith(NewAllocator(), src)
	require.NoError(t, err)
	assert.Equal(t, []string{"t", "u"}, m.Toeholds)
	assert.Equal(t, []domain.Nick{nick}, m.Nicks)
	assert.Zero(t, bindings)
	assert.Equal(t, 1, m.StrandCount())
}
