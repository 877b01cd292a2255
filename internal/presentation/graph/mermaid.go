package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/gatefold/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart of a lowered model.
// Each complex becomes a subgraph and each strand a node. Strands that share
// bindings are linked by one edge labeled with the paired domains:
// - fresh bindings (issued by lowering): solid edge
// - authored bindings: dotted edge
// A binding closed on a single strand draws a self loop.
func GenerateMermaid(m *domain.Model) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for ci, c := range m.Complexes {
		title := fmt.Sprintf("complex %d", ci+1)
		if c.Multiplicity != 1 {
			title = fmt.Sprintf("%d x complex %d", c.Multiplicity, ci+1)
		}
		fmt.Fprintf(&sb, "    subgraph c%d[\"%s\"]\n", ci+1, title)
		for si, s := range c.Strands {
			fmt.Fprintf(&sb, "        %s[\"%s\"]\n", strandID(ci, si), escapeLabel(s.String()))
		}
		for _, e := range edges(c) {
			format := "        %s -- \"%s\" --- %s\n"
			if !e.fresh {
				format = "        %s -. \"%s\" .- %s\n"
			}
			fmt.Fprintf(&sb, format, strandID(ci, e.from), strings.Join(e.labels(), ", "), strandID(ci, e.to))
		}
		sb.WriteString("    end\n")
	}

	return sb.String()
}

type edge struct {
	from, to int
	fresh    bool
	sites    []label
}

type label struct {
	pos  int
	name string
}

// labels lists the paired domains in their order on the first strand.
func (e *edge) labels() []string {
	sort.SliceStable(e.sites, func(i, j int) bool { return e.sites[i].pos < e.sites[j].pos })
	out := make([]string, len(e.sites))
	for i, l := range e.sites {
		out[i] = l.name
	}
	return out
}

// edges groups the bindings of a complex by the strand pair they connect,
// in order of first appearance.
func edges(c domain.Complex) []*edge {
	type key struct {
		from, to int
		fresh    bool
	}
	type opening struct{ strand, pos int }
	first := make(map[domain.Binding]opening)
	index := make(map[key]*edge)
	var out []*edge

	for si, s := range c.Strands {
		for pos, site := range s {
			if site.Binding == "" {
				continue
			}
			open, seen := first[site.Binding]
			if !seen {
				first[site.Binding] = opening{strand: si, pos: pos}
				continue
			}
			k := key{from: open.strand, to: si, fresh: site.Binding.IsFresh()}
			e, ok := index[k]
			if !ok {
				e = &edge{from: open.strand, to: si, fresh: k.fresh}
				index[k] = e
				out = append(out, e)
			}
			e.sites = append(e.sites, label{pos: open.pos, name: site.Domain.Name})
		}
	}
	return out
}

func strandID(ci, si int) string {
	return fmt.Sprintf("c%d_s%d", ci+1, si+1)
}

func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, "\"", "'")
	s = strings.ReplaceAll(s, "<", "#lt;")
	s = strings.ReplaceAll(s, ">", "#gt;")
	return s
}
