package lowering

import (
	"strconv"

	"github.com/aretw0/gatefold/pkg/domain"
)

// Allocator issues fresh bindings for one lowering run.
// It is not safe for concurrent use; every run owns its own allocator.
type Allocator struct {
	next int
}

// NewAllocator creates an allocator whose first binding is "#1".
func NewAllocator() *Allocator {
	return &Allocator{}
}

// Fresh returns a binding never returned before by this allocator.
func (a *Allocator) Fresh() domain.Binding {
	a.next++
	return domain.Binding(domain.FreshPrefix + strconv.Itoa(a.next))
}

// Issued reports how many bindings have been handed out.
func (a *Allocator) Issued() int {
	return a.next
}
