package lowering

import (
	"strconv"
	"strings"
	"testing"

	"github.com/aretw0/gatefold/pkg/domain"
	"github.com/stretchr/testify/require"
)

// strand builds a strand from source-notation sites, e.g. strand(t, "a", "b*!1").
func strand(t *testing.T, sites ...string) domain.Strand {
	t.Helper()
	out := make(domain.Strand, 0, len(sites))
	for _, text := range sites {
		s, err := domain.ParseSite(text)
		require.NoError(t, err)
		out = append(out, s)
	}
	return out
}

func mid(t *testing.T, sites ...string) domain.Segment {
	return domain.MiddleSegment(nil, nil, strand(t, sites...), nil, nil)
}

// renumber renames fresh bindings in order of first appearance so that
// outputs can be compared up to renaming.
func renumber(strands []domain.Strand) []string {
	names := map[domain.Binding]string{}
	out := make([]string, len(strands))
	for i, s := range strands {
		parts := make([]string, len(s))
		for j, site := range s {
			if site.Binding.IsFresh() {
				name, ok := names[site.Binding]
				if !ok {
					name = domain.FreshPrefix + strconv.Itoa(len(names)+1)
					names[site.Binding] = name
				}
				site.Binding = domain.Binding(name)
			}
			parts[j] = site.String()
		}
		out[i] = strings.Join(parts, " ")
	}
	return out
}

func render(strands []domain.Strand) []string {
	out := make([]string, len(strands))
	for i, s := range strands {
		parts := make([]string, len(s))
		for j, site := range s {
			parts[j] = site.String()
		}
		out[i] = strings.Join(parts, " ")
	}
	return out
}
