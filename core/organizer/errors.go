package organizer

import (
	"fmt"
	"strings"

	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/graph"
)

type OrganizationErrorKind int

const (
	// ErrCircularDependency: the unit or file reference graph is cyclic.
	ErrCircularDependency OrganizationErrorKind = iota
	// ErrUnresolvedReference: a type reference resolves to no known unit
	// or built-in.
	ErrUnresolvedReference
)

func (k OrganizationErrorKind) String() string {
	if k == ErrCircularDependency {
		return "CircularDependency"
	}
	return "UnresolvedReference"
}

// OrganizationError is the typed, fatal failure of the file organizer. No
// file is emitted when one occurs.
type OrganizationError struct {
	Kind      OrganizationErrorKind
	Units     []string      // every unit on every detected cycle
	Cycles    []graph.Cycle // populated for circular dependencies
	Behavior  string        // populated for unresolved references
	Reference string        // the reference that failed to resolve
}

func (e *OrganizationError) Error() string {
	switch e.Kind {
	case ErrCircularDependency:
		return fmt.Sprintf("cannot organize files: circular dependency between %s", strings.Join(e.Units, ", "))
	case ErrUnresolvedReference:
		return fmt.Sprintf("cannot organize files: behaviour '%s' references unknown type '%s'", e.Behavior, e.Reference)
	default:
		return "cannot organize files"
	}
}
