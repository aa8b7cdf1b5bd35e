package textvalue

import (
	"errors"
	"fmt"
)

// ErrWrongKind is returned when a TextValue node's Kind does not match what
// the schema type being parsed requires (e.g. a Struct parser given a Text
// node instead of a Seq).
var ErrWrongKind = errors.New("textvalue: value has the wrong kind for this schema type")

// ErrNoSuchVariant is returned when an Enum's textual variant name does not
// match any variant the schema declares.
var ErrNoSuchVariant = errors.New("textvalue: no enum variant with this name")

// ErrMalformedUuid is returned when a Text node does not parse as a UUID.
var ErrMalformedUuid = errors.New("textvalue: text is not a valid uuid")

// ParseError wraps a parsing failure with the source Position of the
// TextValue node that caused it, when one was attached.
type ParseError struct {
	Position *Position
	Cause    error
}

func (e *ParseError) Error() string {
	if e.Position != nil {
		return fmt.Sprintf("textvalue: parse error at line %d, column %d: %v", e.Position.Line, e.Position.Column, e.Cause)
	}
	return fmt.Sprintf("textvalue: parse error: %v", e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }

func wrapErr(v *Value, cause error) error {
	pe := &ParseError{Cause: cause}
	if p, ok := v.Position(); ok {
		pe.Position = &p
	}
	return pe
}
