package validator

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/gatefold/internal/compiler"
	"github.com/aretw0/gatefold/internal/lowering"
	"github.com/aretw0/gatefold/pkg/domain"
	"github.com/aretw0/gatefold/pkg/ports"
)

// ValidationError lists every problem found in a model.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("found %d errors:\n- %s", len(e.Issues), strings.Join(e.Issues, "\n- "))
}

type bindingUse struct {
	sites []domain.Site
}

// Validate checks a lowered model:
//   - every multiplicity is positive
//   - within a complex, each binding appears on exactly two sites whose domains are complementary
//   - when toeholds are declared, every toehold-marked domain is among them
func Validate(m *domain.Model) error {
	var issues []string

	declared := make(map[string]bool, len(m.Toeholds))
	for _, t := range m.Toeholds {
		declared[t] = true
	}
	undeclared := make(map[string]bool)

	for ci, c := range m.Complexes {
		if c.Multiplicity < 1 {
			issues = append(issues, fmt.Sprintf("complex %d: multiplicity %d is not positive", ci+1, c.Multiplicity))
		}

		uses := make(map[domain.Binding]*bindingUse)
		var order []domain.Binding
		for _, s := range c.Strands {
			for _, site := range s {
				if site.Domain.Toehold && len(declared) > 0 && !declared[site.Domain.Name] {
					undeclared[site.Domain.Name] = true
				}
				if site.Binding == "" {
					continue
				}
				u, ok := uses[site.Binding]
				if !ok {
					u = &bindingUse{}
					uses[site.Binding] = u
					order = append(order, site.Binding)
				}
				u.sites = append(u.sites, site)
			}
		}

		for _, b := range order {
			u := uses[b]
			if len(u.sites) != 2 {
				issues = append(issues, fmt.Sprintf("complex %d: binding %q appears %d times, want 2", ci+1, b, len(u.sites)))
				continue
			}
			if u.sites[0].Domain != u.sites[1].Domain.Complemented() {
				issues = append(issues, fmt.Sprintf("complex %d: binding %q pairs %s with %s, which are not complementary",
					ci+1, b, u.sites[0].Domain, u.sites[1].Domain))
			}
		}
	}

	if len(undeclared) > 0 {
		names := make([]string, 0, len(undeclared))
		for n := range undeclared {
			names = append(names, n)
		}
		sort.Strings(names)
		issues = append(issues, fmt.Sprintf("toehold domains not declared: %s", strings.Join(names, ", ")))
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// ValidateLibrary parses, lowers and validates every model the loader lists.
// Problems are collected per model rather than stopping at the first one.
func ValidateLibrary(ctx context.Context, loader ports.SourceLoader) error {
	ids, err := loader.ListSources(ctx)
	if err != nil {
		return err
	}

	var issues []string
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}
		src, err := loader.GetSource(ctx, id)
		if err != nil {
			issues = append(issues, fmt.Sprintf("%s: %v", id, err))
			continue
		}
		sm, err := compiler.Parse(string(src))
		if err != nil {
			issues = append(issues, fmt.Sprintf("%s: %v", id, err))
			continue
		}
		m, err := lowering.Lower(sm)
		if err != nil {
			issues = append(issues, fmt.Sprintf("%s: %v", id, err))
			continue
		}
		if err := Validate(m); err != nil {
			for _, issue := range err.(*ValidationError).Issues {
				issues = append(issues, fmt.Sprintf("%s: %s", id, issue))
			}
		}
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}
