package lowering

import (
	"errors"
	"testing"

	"github.com/aretw0/gatefold/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMelt_WorkedExample(t *testing.T) {
	g := domain.JoinLower(
		domain.Singleton(mid(t, "a")),
		domain.Singleton(mid(t, "b")),
	)

	strands, err := Melt(NewAllocator(), g)
	require.NoError(t, err)

	// a's upper arm is sealed at the junction; b's upper and the fused lower stay open.
	assert.Equal(t, []string{
		"a!#1",
		"b!#2",
		"b*!#2 a*!#1",
	}, renumber(strands))
}

func TestMelt_LowerEdgeCases(t *testing.T) {
	hairpinLeft := func(t *testing.T) *domain.Gate {
		return domain.Singleton(domain.HairpinLeft(strand(t, "l"), strand(t, "a"), nil, nil))
	}
	hairpinRight := func(t *testing.T) *domain.Gate {
		return domain.Singleton(domain.HairpinRight(strand(t, "l"), strand(t, "b"), nil, nil))
	}

	tests := []struct {
		name string
		gate func(t *testing.T) *domain.Gate
		want []string
	}{
		{
			name: "one then two extends the lower strand",
			gate: func(t *testing.T) *domain.Gate {
				return domain.JoinLower(hairpinLeft(t), domain.Singleton(mid(t, "b")))
			},
			want: []string{
				"b!#2",
				"b*!#2 a*!#1 l a!#1",
			},
		},
		{
			name: "two then one seals the left upper",
			gate: func(t *testing.T) *domain.Gate {
				return domain.JoinLower(domain.Singleton(mid(t, "a")), hairpinRight(t))
			},
			want: []string{
				"a!#1",
				"b!#2 l b*!#2 a*!#1",
			},
		},
		{
			name: "sealed strands of a left chain come after the new seal",
			gate: func(t *testing.T) *domain.Gate {
				return domain.JoinLower(
					domain.JoinLower(domain.Singleton(mid(t, "a")), domain.Singleton(mid(t, "b"))),
					domain.Singleton(mid(t, "c")),
				)
			},
			want: []string{
				"b!#2",
				"a!#1",
				"c!#3",
				"c*!#3 b*!#2 a*!#1",
			},
		},
		{
			name: "new seal precedes the right subtree's seals",
			gate: func(t *testing.T) *domain.Gate {
				return domain.JoinLower(
					domain.Singleton(mid(t, "a")),
					domain.JoinLower(domain.Singleton(mid(t, "b")), domain.Singleton(mid(t, "c"))),
				)
			},
			want: []string{
				"a!#1",
				"b!#2",
				"c!#3",
				"c*!#3 b*!#2 a*!#1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strands, err := Melt(NewAllocator(), tt.gate(t))
			require.NoError(t, err)
			assert.Equal(t, tt.want, render(strands))
		})
	}
}

func TestMelt_UpperEdgeMirrorsLower(t *testing.T) {
	g := domain.JoinUpper(
		domain.Singleton(mid(t, "a")),
		domain.Singleton(mid(t, "b")),
	)

	strands, err := Melt(NewAllocator(), g)
	require.NoError(t, err)

	// The left lower arm is sealed; the uppers are fused.
	assert.Equal(t, []string{
		"a*!#1",
		"b!#2 a!#1",
		"b*!#2",
	}, render(strands))
}

func TestMelt_UpperEdgeWithHairpin(t *testing.T) {
	// One(s) on the left grows the right upper strand.
	g := domain.JoinUpper(
		domain.Singleton(domain.HairpinLeft(strand(t, "l"), strand(t, "a"), nil, nil)),
		domain.Singleton(mid(t, "b")),
	)

	strands, err := Melt(NewAllocator(), g)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"b!#2 a*!#1 l a!#1",
		"b*!#2",
	}, render(strands))
}

func TestMelt_CircularStructure(t *testing.T) {
	left := func() *domain.Gate {
		return domain.Singleton(domain.HairpinLeft(strand(t, "l"), strand(t, "a"), nil, nil))
	}
	right := func() *domain.Gate {
		return domain.Singleton(domain.HairpinRight(strand(t, "r"), strand(t, "b"), nil, nil))
	}

	for _, tc := range []struct {
		edge domain.Edge
		gate *domain.Gate
	}{
		{domain.EdgeLower, domain.JoinLower(left(), right())},
		{domain.EdgeUpper, domain.JoinUpper(left(), right())},
	} {
		t.Run(string(tc.edge), func(t *testing.T) {
			strands, err := Melt(NewAllocator(), tc.gate)
			require.Error(t, err)
			assert.Nil(t, strands, "no partial result on failure")
			assert.ErrorIs(t, err, domain.ErrUnsupportedCircularStructure)

			var circ *domain.CircularStructureError
			require.True(t, errors.As(err, &circ))
			assert.Equal(t, tc.edge, circ.Edge)
		})
	}
}

func TestMelt_CircularDeepInTree(t *testing.T) {
	// (M[a] : HR[b]) yields One; joining it with another One fails.
	g := domain.JoinLower(
		domain.JoinLower(
			domain.Singleton(mid(t, "a")),
			domain.Singleton(domain.HairpinRight(strand(t, "l"), strand(t, "b"), nil, nil)),
		),
		domain.Singleton(domain.HairpinRight(strand(t, "r"), strand(t, "c"), nil, nil)),
	)

	_, err := Melt(NewAllocator(), g)
	assert.ErrorIs(t, err, domain.ErrUnsupportedCircularStructure)
}

func TestMelt_MalformedGate(t *testing.T) {
	alloc := NewAllocator()

	_, err := Melt(alloc, nil)
	assert.ErrorIs(t, err, errMalformedGate)

	_, err = Melt(alloc, &domain.Gate{Kind: domain.GateSingleton})
	assert.ErrorIs(t, err, errMalformedGate)

	_, err = Melt(alloc, &domain.Gate{Kind: domain.GateJoinLower, Left: domain.Singleton(mid(t, "a"))})
	assert.ErrorIs(t, err, errMalformedGate)
}

func TestMelt_DeepChainIsIterative(t *testing.T) {
	const depth = 2000

	g := domain.Singleton(mid(t, "a"))
	for i := 1; i < depth; i++ {
		g = domain.JoinLower(g, domain.Singleton(mid(t, "a")))
	}

	strands, err := Melt(NewAllocator(), g)
	require.NoError(t, err)

	// depth-1 sealed uppers, then the last upper and the fused lower.
	require.Len(t, strands, depth+1)
	assert.Len(t, strands[len(strands)-1], depth)
}

func TestMelt_LengthConservation(t *testing.T) {
	g := domain.JoinUpper(
		domain.JoinLower(
			domain.Singleton(domain.HairpinLeft(strand(t, "l1", "l2"), strand(t, "a", "b"), strand(t, "u"), strand(t, "v"))),
			domain.Singleton(domain.MiddleSegment(strand(t, "p"), strand(t, "q"), strand(t, "c", "d", "e"), strand(t, "r"), nil)),
		),
		domain.Singleton(domain.MiddleSegment(nil, nil, strand(t, "f"), strand(t, "s1", "s2"), strand(t, "w"))),
	)

	strands, err := Melt(NewAllocator(), g)
	require.NoError(t, err)

	want := 0
	for _, seg := range g.Segments() {
		want += 2*len(seg.Middle) + seg.SingleSites()
	}
	got := 0
	for _, s := range strands {
		got += len(s)
	}
	assert.Equal(t, want, got)
}

func TestMelt_PairingIntegrity(t *testing.T) {
	g := domain.JoinLower(
		domain.JoinUpper(
			domain.Singleton(mid(t, "a", "b")),
			domain.Singleton(domain.MiddleSegment(strand(t, "x"), nil, strand(t, "c"), nil, strand(t, "y"))),
		),
		domain.Singleton(domain.HairpinRight(strand(t, "l"), strand(t, "d", "e"), nil, nil)),
	)

	strands, err := Melt(NewAllocator(), g)
	require.NoError(t, err)

	type occurrence struct {
		strand, pos int
		site        domain.Site
	}
	seen := map[domain.Binding][]occurrence{}
	for i, s := range strands {
		for j, site := range s {
			if site.Binding.IsFresh() {
				seen[site.Binding] = append(seen[site.Binding], occurrence{i, j, site})
			}
		}
	}

	require.Len(t, seen, 5)
	for b, occ := range seen {
		require.Len(t, occ, 2, "binding %s", b)
		assert.Equal(t, occ[0].site.Domain.Name, occ[1].site.Domain.Name)
		assert.NotEqual(t, occ[0].site.Domain.Complement, occ[1].site.Domain.Complement, "binding %s pairs complementary domains", b)
	}
}

func TestMelt_DeterministicUpToRenaming(t *testing.T) {
	build := func() *domain.Gate {
		return domain.JoinLower(
			domain.Singleton(domain.HairpinLeft(strand(t, "l"), strand(t, "a", "b"), nil, strand(t, "v"))),
			domain.JoinUpper(domain.Singleton(mid(t, "c")), domain.Singleton(mid(t, "d"))),
		)
	}

	alloc := NewAllocator()
	first, err := Melt(alloc, build())
	require.NoError(t, err)
	second, err := Melt(alloc, build())
	require.NoError(t, err)

	assert.NotEqual(t, render(first), render(second), "shared allocator issues new bindings")
	assert.Equal(t, renumber(first), renumber(second))

	fresh, err := Melt(NewAllocator(), build())
	require.NoError(t, err)
	assert.Equal(t, render(first), render(fresh), "independent runs are identical")
}
