package validator

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/gatefold/internal/compiler"
	"github.com/aretw0/gatefold/internal/lowering"
	"github.com/aretw0/gatefold/pkg/adapters/memory"
	"github.com/aretw0/gatefold/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lower(t *testing.T, src string) *domain.Model {
	t.Helper()
	sm, err := compiler.Parse(src)
	require.NoError(t, err)
	m, err := lowering.Lower(sm)
	require.NoError(t, err)
	return m
}

func issues(t *testing.T, err error) []string {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	return verr.Issues
}

func TestValidate_LoweredGatesAreConsistent(t *testing.T) {
	m := lower(t, `
toehold t u
[ {t^*}[x u^]<y> : <l}[a b]<z> :: [c]{u^*} ]
| 2 [ <t^ x> ]
`)
	assert.NoError(t, Validate(m))
}

func TestValidate_DanglingBinding(t *testing.T) {
	m := lower(t, "<x!1> | <x*!1>")

	got := issues(t, Validate(m))
	require.Len(t, got, 2, "bindings are scoped to their complex")
	assert.Contains(t, got[0], `complex 1: binding "1" appears 1 times`)
	assert.Contains(t, got[1], "complex 2")
}

func TestValidate_NotComplementary(t *testing.T) {
	m := lower(t, "[ <x!1> | <y*!1> ] | [ <z!2> | <z!2> ]")

	got := issues(t, Validate(m))
	require.Len(t, got, 2)
	assert.Contains(t, got[0], "pairs x with y*")
	assert.Contains(t, got[1], "pairs z with z")
}

func TestValidate_UndeclaredToeholds(t *testing.T) {
	m := lower(t, "toehold t\n<t^ v^ w^>")

	got := issues(t, Validate(m))
	assert.Equal(t, []string{"toehold domains not declared: v, w"}, got)

	assert.NoError(t, Validate(lower(t, "<v^>")), "without declarations any toehold is accepted")
}

func TestValidate_Multiplicity(t *testing.T) {
	m := &domain.Model{Complexes: []domain.Complex{{Multiplicity: 0}}}
	got := issues(t, Validate(m))
	assert.Contains(t, got[0], "multiplicity 0 is not positive")
}

func TestValidateLibrary(t *testing.T) {
	loader := memory.NewLoader(map[string]string{
		"good":     "[ {t^*}[x]<y> ]",
		"broken":   "<a",
		"ring":     "<l}[a]::[b]{r>",
		"dangling": "<x!1>",
	})

	err := ValidateLibrary(context.Background(), loader)
	got := issues(t, err)
	require.Len(t, got, 3)
	// Loader lists IDs in sorted order.
	assert.Contains(t, got[0], "broken: line 1")
	assert.Contains(t, got[1], `dangling: complex 1: binding "1"`)
	assert.Contains(t, got[2], "ring: ")
	assert.Contains(t, got[2], "circular")

	assert.NoError(t, ValidateLibrary(context.Background(), memory.NewLoader(map[string]string{"good": "<a>"})))
}
