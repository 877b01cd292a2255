package domain

import (
	"errors"
	"fmt"
)

// ErrUnsupportedCircularStructure is returned when a join would fuse two sealed
// single-strand ends, closing a topological ring.
var ErrUnsupportedCircularStructure = errors.New("unsupported circular structure")

// ErrReservedBinding is returned when input carries a binding in the namespace
// the lowering pass allocates from.
var ErrReservedBinding = errors.New("binding prefix \"" + FreshPrefix + "\" is reserved")

// ErrModelNotFound is returned when a model ID cannot be found in a loader or store.
var ErrModelNotFound = errors.New("model not found")

// CircularStructureError records which join produced a ring.
type CircularStructureError struct {
	Edge Edge
}

func (e *CircularStructureError) Error() string {
	return fmt.Sprintf("joining two hairpins on the %s edge closes a ring: %s", e.Edge, ErrUnsupportedCircularStructure)
}

func (e *CircularStructureError) Unwrap() error {
	return ErrUnsupportedCircularStructure
}
