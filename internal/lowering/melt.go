package lowering

import "github.com/aretw0/gatefold/pkg/domain"

// MeltDouble splits a double-stranded region into its upper strand and the
// synthesized lower partner.
//
// Every site of upper gets a fresh binding, in order. lower is upper reversed
// with each domain complemented, so upper[i] and lower[n-1-i] share a binding.
func MeltDouble(alloc *Allocator, s domain.Strand) (upper, lower domain.Strand) {
	upper = make(domain.Strand, len(s))
	for i, site := range s {
		upper[i] = site.Bind(alloc.Fresh())
	}
	lower = upper.Reverse().Complement()
	return upper, lower
}
