package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/gatefold/internal/compiler"
	"github.com/aretw0/gatefold/pkg/domain"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)

	return func(markdown string) (string, error) {
		if err != nil {
			return markdown, err
		}
		return r.Render(markdown)
	}
}

// ModelMarkdown describes a lowered model as markdown: the declared
// toeholds, the nick rules, and one section per complex.
func ModelMarkdown(title string, m *domain.Model) string {
	var sb strings.Builder

	if title == "" {
		title = "Lowered model"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "%d complexes, %d strands.\n\n", len(m.Complexes), m.StrandCount())

	if len(m.Toeholds) > 0 {
		fmt.Fprintf(&sb, "**Toeholds:** `%s`\n\n", strings.Join(m.Toeholds, "`, `"))
	}
	if len(m.Nicks) > 0 {
		sb.WriteString("**Nicks:**\n\n")
		for _, n := range m.Nicks {
			fmt.Fprintf(&sb, "- `%s` / `%s`\n", domainList(n.Left), domainList(n.Right))
		}
		sb.WriteString("\n")
	}

	for i, c := range m.Complexes {
		fmt.Fprintf(&sb, "## Complex %d", i+1)
		if c.Multiplicity != 1 {
			fmt.Fprintf(&sb, " (x%d)", c.Multiplicity)
		}
		sb.WriteString("\n\n```\n")
		for _, s := range c.Strands {
			sb.WriteString(s.String())
			sb.WriteByte('\n')
		}
		sb.WriteString("```\n\n")
	}
	return sb.String()
}

// RenderModel renders a lowered model for the terminal. Without a renderer
// it falls back to the plain source notation.
func RenderModel(render func(string) (string, error), title string, m *domain.Model) (string, error) {
	if render == nil {
		return compiler.Format(m), nil
	}
	return render(ModelMarkdown(title, m))
}

func domainList(ds []domain.Domain) string {
	parts := make([]string, len(ds))
	for i, d := range ds {
		parts[i] = d.String()
	}
	return strings.Join(parts, " ")
}
