// Package schema implements LQ's closed set of schema type kinds, the
// container that holds a compiled schema graph, and the validation/
// comparison engine that drives a single pass over a wire-encoded value.
//
// A schema is a directed graph of Type nodes held by a Container. Nodes
// reference each other by TypeRef, an index into the container's arena, so
// the graph can contain cycles (needed for recursive structures such as a
// tree node that contains a Seq of itself).
package schema

import "fmt"

// TypeRef identifies a Type node within a Container's arena.
type TypeRef uint32

// Type is implemented by every one of the 18 schema type kinds. Validate
// consumes exactly one value from the context's reader and reports whether
// it conforms to the type. Compare consumes exactly one value from each of
// two readers and reports their relative order; it must read the same
// number of bytes Validate would, even when it can decide the order early,
// since callers rely on the reader being left positioned after the value.
type Type interface {
	Validate(ctx *ValidationContext, ref TypeRef) error
	Compare(ctx *ValidationContext, r1, r2 *Cursor) (int, error)

	// Reference returns the TypeRef held at the given child index, if any.
	// Used to walk the schema graph (resolving cycles, rendering docs)
	// without each type kind needing bespoke traversal code.
	Reference(index int) (TypeRef, bool)

	// SetReference rewrites the TypeRef at the given child index. Used by
	// the container builder to patch forward references after all types in
	// a schema have been added.
	SetReference(index int, ref TypeRef) error
}

// ErrNoSuchReference is returned by SetReference when index is out of range
// for the type kind.
type ErrNoSuchReference struct {
	Kind  string
	Index int
}

func (e *ErrNoSuchReference) Error() string {
	return fmt.Sprintf("liquesco: %s has no reference at index %d", e.Kind, e.Index)
}
