package schema

import (
	"github.com/blockberries/liquesco/pkg/liquesco"
)

// Cursor is an independent read position over a value's wire bytes. Two
// Cursors are used during a Compare pass (one per value); a single Cursor
// (the context's own reader) is used during a Validate pass.
type Cursor = liquesco.Reader

const defaultMaxDepth = 100

// keyRefFrame records how many keys the map currently being validated or
// compared declares, so a nested KeyRef can check its index against it.
type keyRefFrame struct {
	mapLen uint32
}

// ValidationContext drives one top-to-bottom pass over a wire value against
// a Container's schema graph. It owns the single Cursor used for Validate,
// tracks container nesting depth against a limit, and maintains a stack of
// key-reference frames so a KeyRef type nested anywhere inside a Map or
// RootMap can resolve against the nearest enclosing map's key count.
type ValidationContext struct {
	container  *Container
	reader     *liquesco.Reader
	strict     bool
	maxDepth   int
	depth      int
	keyRefs    []keyRefFrame
}

// NewValidationContext creates a context that validates data from reader
// against container. strict enables "no extension" mode: struct fields and
// enum variants beyond what the schema declares are rejected instead of
// being skipped.
func NewValidationContext(container *Container, reader *liquesco.Reader, strict bool) *ValidationContext {
	return &ValidationContext{container: container, reader: reader, strict: strict, maxDepth: defaultMaxDepth}
}

// WithMaxDepth overrides the default nesting depth limit.
func (ctx *ValidationContext) WithMaxDepth(n int) *ValidationContext {
	ctx.maxDepth = n
	return ctx
}

// Reader returns the context's primary cursor.
func (ctx *ValidationContext) Reader() *liquesco.Reader { return ctx.reader }

// Strict reports whether schema-forward-compatible extensions are rejected.
func (ctx *ValidationContext) Strict() bool { return ctx.strict }

// Validate resolves ref in the container and validates one value from the
// context's reader against it.
func (ctx *ValidationContext) Validate(ref TypeRef) error {
	t, err := ctx.container.Resolve(ref)
	if err != nil {
		return err
	}
	if err := ctx.enter(); err != nil {
		return err
	}
	defer ctx.exit()
	return t.Validate(ctx, ref)
}

// Compare resolves ref in the container and compares one value read from
// each of r1 and r2 against it, returning -1, 0 or 1.
func (ctx *ValidationContext) Compare(ref TypeRef, r1, r2 *Cursor) (int, error) {
	t, err := ctx.container.Resolve(ref)
	if err != nil {
		return 0, err
	}
	if err := ctx.enter(); err != nil {
		return 0, err
	}
	defer ctx.exit()
	return t.Compare(ctx, r1, r2)
}

func (ctx *ValidationContext) enter() error {
	if ctx.maxDepth > 0 && ctx.depth >= ctx.maxDepth {
		return NewValidationError(KindLimit, 0, ctx.reader.Pos(), "maximum nesting depth exceeded", nil)
	}
	ctx.depth++
	return nil
}

func (ctx *ValidationContext) exit() {
	if ctx.depth > 0 {
		ctx.depth--
	}
}

// PushKeyRefFrame records the key count of a map being entered, so a nested
// KeyRef type can validate its index against it. Callers must call
// PopKeyRefFrame (typically via defer) once the map's values are done.
func (ctx *ValidationContext) PushKeyRefFrame(mapLen uint32) {
	ctx.keyRefs = append(ctx.keyRefs, keyRefFrame{mapLen: mapLen})
}

// PopKeyRefFrame removes the most recently pushed key-reference frame.
func (ctx *ValidationContext) PopKeyRefFrame() {
	if len(ctx.keyRefs) > 0 {
		ctx.keyRefs = ctx.keyRefs[:len(ctx.keyRefs)-1]
	}
}

// CurrentKeyRefMapLen returns the key count of the nearest enclosing map, if
// any KeyRef-eligible map is currently being processed.
func (ctx *ValidationContext) CurrentKeyRefMapLen() (uint32, bool) {
	if len(ctx.keyRefs) == 0 {
		return 0, false
	}
	return ctx.keyRefs[len(ctx.keyRefs)-1].mapLen, true
}
