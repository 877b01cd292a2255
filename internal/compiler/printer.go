package compiler

import (
	"strconv"
	"strings"

	"github.com/aretw0/gatefold/pkg/domain"
)

// Format renders a lowered model in source notation.
// Fresh bindings keep their '#' prefix, which the lexer rejects, so the
// output is for reading rather than for parsing again.
func Format(m *domain.Model) string {
	var sb strings.Builder

	if len(m.Toeholds) > 0 {
		sb.WriteString("toehold ")
		sb.WriteString(strings.Join(m.Toeholds, " "))
		sb.WriteByte('\n')
	}

	if len(m.Nicks) > 0 {
		nicks := make([]string, len(m.Nicks))
		for i, n := range m.Nicks {
			nicks[i] = "nick(" + joinDomains(n.Left) + ", " + joinDomains(n.Right) + ")"
		}
		sb.WriteString("enzymes [ ")
		sb.WriteString(strings.Join(nicks, "; "))
		sb.WriteString(" ]\n")
	}

	for i, c := range m.Complexes {
		if i > 0 {
			sb.WriteString("| ")
		}
		sb.WriteString(FormatComplex(c))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatComplex renders one lowered complex, e.g. "2 [ <a!#1> | <a*!#1> ]".
func FormatComplex(c domain.Complex) string {
	strands := make([]string, len(c.Strands))
	for i, s := range c.Strands {
		strands[i] = s.String()
	}
	body := "[ " + strings.Join(strands, " | ") + " ]"
	if c.Multiplicity == 1 {
		return body
	}
	return strconv.Itoa(c.Multiplicity) + " " + body
}

func joinDomains(ds []domain.Domain) string {
	parts := make([]string, len(ds))
	for i, d := range ds {
		parts[i] = d.String()
	}
	return strings.Join(parts, " ")
}
