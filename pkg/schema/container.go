package schema

import (
	"errors"
	"fmt"

	"github.com/blockberries/liquesco/pkg/liquesco"
)

// ErrUnresolvedReference is returned when a TypeRef does not name a node in
// the container's arena.
type ErrUnresolvedReference struct {
	Ref TypeRef
}

func (e *ErrUnresolvedReference) Error() string {
	return fmt.Sprintf("liquesco: unresolved type reference %d", e.Ref)
}

// Container is an arena of Type nodes that together form one compiled
// schema. Types reference each other by TypeRef rather than by pointer so
// that cyclic schemas (a struct field whose type is a Seq of itself) can be
// built incrementally: Add a placeholder, add the nodes that reference it,
// then SetReference to patch the placeholder in.
type Container struct {
	nodes []Type
	root  TypeRef
}

// NewContainer creates an empty container.
func NewContainer() *Container {
	return &Container{}
}

// Add appends a type to the arena and returns its TypeRef.
func (c *Container) Add(t Type) TypeRef {
	c.nodes = append(c.nodes, t)
	return TypeRef(len(c.nodes) - 1)
}

// Resolve looks up the type at ref.
func (c *Container) Resolve(ref TypeRef) (Type, error) {
	if int(ref) < 0 || int(ref) >= len(c.nodes) {
		return nil, &ErrUnresolvedReference{Ref: ref}
	}
	return c.nodes[ref], nil
}

// SetRoot marks ref as the container's entry point for Validate/Compare.
func (c *Container) SetRoot(ref TypeRef) { c.root = ref }

// Root returns the container's entry point.
func (c *Container) Root() TypeRef { return c.root }

// Len returns the number of types held in the arena.
func (c *Container) Len() int { return len(c.nodes) }

// ErrTrailingData is returned by Validate when the root value did not
// consume the entire buffer.
var ErrTrailingData = errors.New("liquesco: trailing bytes after the validated value")

// Validate builds a fresh ValidationContext over data rooted at c.Root(),
// validates exactly one value, and requires the reader be fully consumed.
func (c *Container) Validate(data []byte, strict bool) error {
	reader := liquesco.NewReader(data)
	ctx := NewValidationContext(c, reader, strict)
	if err := ctx.Validate(c.root); err != nil {
		return err
	}
	if !reader.EOF() {
		return ErrTrailingData
	}
	return nil
}
