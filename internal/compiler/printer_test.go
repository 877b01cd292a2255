package compiler

import (
	"testing"

	"github.com/aretw0/gatefold/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	m := &domain.Model{
		Toeholds: []string{"t", "u"},
		Nicks: []domain.Nick{
			{Left: []domain.Domain{{Name: "a"}}, Right: []domain.Domain{{Name: "b", Toehold: true, Complement: true}}},
		},
		Complexes: []domain.Complex{
			{Multiplicity: 1, Strands: []domain.Strand{sites(t, "t^", "x")}},
			{Multiplicity: 2, Strands: []domain.Strand{{domain.NewSite("a").Bind("#1")}, {domain.NewSite("a").Bind("#1").Complement()}}},
		},
	}

	want := "toehold t u\n" +
		"enzymes [ nick(a, b^*) ]\n" +
		"[ <t^ x> ]\n" +
		"| 2 [ <a!#1> | <a*!#1> ]\n"
	assert.Equal(t, want, Format(m))
}

func TestFormat_RoundTripsWithoutFreshBindings(t *testing.T) {
	m := &domain.Model{
		Toeholds: []string{"t"},
		Complexes: []domain.Complex{
			{Multiplicity: 3, Strands: []domain.Strand{sites(t, "t^", "x!b"), sites(t, "x*!b")}},
		},
	}

	sm, err := Parse(Format(m))
	if assert.NoError(t, err) {
		assert.Equal(t, m.Toeholds, sm.Toeholds)
		assert.Equal(t, 3, sm.Complexes[0].Multiplicity)
		assert.Equal(t, m.Complexes[0].Strands[0], sm.Complexes[0].Species[0].Strand)
		assert.Equal(t, m.Complexes[0].Strands[1], sm.Complexes[0].Species[1].Strand)
	}
}

func TestFormatComplex_Empty(t *testing.T) {
	assert.Equal(t, "[  ]", FormatComplex(domain.Complex{Multiplicity: 1}))
}
