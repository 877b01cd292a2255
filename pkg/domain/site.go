package domain

import (
	"fmt"
	"strings"
)

// FreshPrefix marks bindings issued by the lowering pass.
// Neither the source lexer nor ParseSite accepts it inside a binding, and
// lowering rejects input that carries it.
const FreshPrefix = "#"

// Domain is the identity of a binding position.
type Domain struct {
	Name       string `json:"name"`
	Toehold    bool   `json:"toehold,omitempty"`
	Complement bool   `json:"complement,omitempty"`
}

// Complemented returns the domain with its polarity flipped.
func (d Domain) Complemented() Domain {
	d.Complement = !d.Complement
	return d
}

// String renders the domain in source notation (a, a*, t^, t^*).
func (d Domain) String() string {
	var sb strings.Builder
	sb.WriteString(d.Name)
	if d.Toehold {
		sb.WriteByte('^')
	}
	if d.Complement {
		sb.WriteByte('*')
	}
	return sb.String()
}

// Binding is a pairing identifier shared by two hybridized sites.
// The zero value means the site is unbound.
type Binding string

// IsFresh reports whether the binding was allocated during lowering.
func (b Binding) IsFresh() bool {
	return strings.HasPrefix(string(b), FreshPrefix)
}

// Site is a single position on a strand.
type Site struct {
	Domain  Domain  `json:"domain"`
	Binding Binding `json:"binding,omitempty"`
}

// NewSite creates an unbound site.
func NewSite(name string) Site {
	return Site{Domain: Domain{Name: name}}
}

// Bind returns a copy of the site carrying the given binding.
func (s Site) Bind(b Binding) Site {
	s.Binding = b
	return s
}

// Complement returns a copy of the site with its domain complemented.
// The binding is kept.
func (s Site) Complement() Site {
	s.Domain = s.Domain.Complemented()
	return s
}

func (s Site) String() string {
	if s.Binding == "" {
		return s.Domain.String()
	}
	return s.Domain.String() + "!" + string(s.Binding)
}

// ParseSite reads a single site written in source notation, e.g. "t^*!1".
func ParseSite(text string) (Site, error) {
	raw := strings.TrimSpace(text)
	var site Site

	if i := strings.IndexByte(raw, '!'); i >= 0 {
		site.Binding = Binding(raw[i+1:])
		raw = raw[:i]
		if site.Binding == "" {
			return Site{}, fmt.Errorf("site %q: empty binding", text)
		}
		if site.Binding.IsFresh() {
			return Site{}, fmt.Errorf("site %q: %w", text, ErrReservedBinding)
		}
	}
	if strings.HasSuffix(raw, "*") {
		site.Domain.Complement = true
		raw = strings.TrimSuffix(raw, "*")
	}
	if strings.HasSuffix(raw, "^") {
		site.Domain.Toehold = true
		raw = strings.TrimSuffix(raw, "^")
	}
	if raw == "" {
		return Site{}, fmt.Errorf("site %q: missing domain name", text)
	}
	if strings.ContainsAny(raw, "^*!<>{}[]:|;, \t") {
		return Site{}, fmt.Errorf("site %q: invalid domain name", text)
	}
	site.Domain.Name = raw
	return site, nil
}

// Strand is an ordered sequence of sites read 5' to 3'.
type Strand []Site

// Reverse returns a new strand with the site order reversed.
// Individual sites are not modified.
func (s Strand) Reverse() Strand {
	n := len(s)
	out := make(Strand, n)
	for i := 0; i < n; i++ {
		out[i] = s[n-1-i]
	}
	return out
}

// Complement returns a new strand with every domain complemented, in the same order.
func (s Strand) Complement() Strand {
	out := make(Strand, len(s))
	for i, site := range s {
		out[i] = site.Complement()
	}
	return out
}

// Concat joins strands preserving operand order.
func Concat(parts ...Strand) Strand {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make(Strand, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Equal reports whether both strands carry the same sites in the same order.
func (s Strand) Equal(other Strand) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// String renders the strand as an upper strand, e.g. "<t^ x!#1>".
func (s Strand) String() string {
	parts := make([]string, len(s))
	for i, site := range s {
		parts[i] = site.String()
	}
	return "<" + strings.Join(parts, " ") + ">"
}
