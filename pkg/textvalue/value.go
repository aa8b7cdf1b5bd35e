// Package textvalue implements LQ's text front-end value tree: a small,
// recursive tagged union that text formats (YAML, JSON, hand-built test
// fixtures) are converted into before being parsed against a schema and
// written to the wire.
package textvalue

import "fmt"

// Kind identifies which alternative of the TextValue union a node holds.
type Kind int

const (
	KindNothing Kind = iota
	KindBool
	KindI64
	KindText
	KindSeq
)

func (k Kind) String() string {
	switch k {
	case KindNothing:
		return "nothing"
	case KindBool:
		return "bool"
	case KindI64:
		return "i64"
	case KindText:
		return "text"
	case KindSeq:
		return "seq"
	default:
		return "unknown"
	}
}

// Position is an optional source location, carried through from whatever
// textual format (YAML, JSON, ...) produced the value, for diagnostics.
type Position struct {
	Line, Column int
}

// Value is a recursive tagged union: Nothing | Bool | I64 | Text |
// Seq(Value*). A map is represented as a Seq of 2-element key/value Seqs,
// matching how the wire format itself has no dedicated map literal.
type Value struct {
	kind Kind
	b    bool
	i    int64
	s    string
	seq  []*Value
	pos  *Position
}

// Nothing builds an absent/null value (feeds an Option's "not present").
func Nothing() *Value { return &Value{kind: KindNothing} }

// Bool builds a boolean value.
func Bool(v bool) *Value { return &Value{kind: KindBool, b: v} }

// I64 builds a signed 64-bit integer value.
func I64(v int64) *Value { return &Value{kind: KindI64, i: v} }

// Text builds a UTF-8 string value.
func Text(s string) *Value { return &Value{kind: KindText, s: s} }

// Seq builds a sequence value from already-constructed elements.
func Seq(elems ...*Value) *Value { return &Value{kind: KindSeq, seq: elems} }

// WithPosition attaches a source position and returns the receiver.
func (v *Value) WithPosition(p Position) *Value {
	v.pos = &p
	return v
}

// Position returns the value's source position, if any.
func (v *Value) Position() (Position, bool) {
	if v.pos == nil {
		return Position{}, false
	}
	return *v.pos, true
}

// Kind reports which alternative this value holds.
func (v *Value) Kind() Kind { return v.kind }

// AsBool returns the boolean payload; ok is false if Kind() != KindBool.
func (v *Value) AsBool() (val bool, ok bool) { return v.b, v.kind == KindBool }

// AsI64 returns the integer payload; ok is false if Kind() != KindI64.
func (v *Value) AsI64() (val int64, ok bool) { return v.i, v.kind == KindI64 }

// AsText returns the string payload; ok is false if Kind() != KindText.
func (v *Value) AsText() (val string, ok bool) { return v.s, v.kind == KindText }

// AsSeq returns the element slice; ok is false if Kind() != KindSeq.
func (v *Value) AsSeq() (val []*Value, ok bool) { return v.seq, v.kind == KindSeq }

func (v *Value) String() string {
	switch v.kind {
	case KindNothing:
		return "nothing"
	case KindBool:
		return fmt.Sprintf("bool(%v)", v.b)
	case KindI64:
		return fmt.Sprintf("i64(%d)", v.i)
	case KindText:
		return fmt.Sprintf("text(%q)", v.s)
	case KindSeq:
		return fmt.Sprintf("seq(len=%d)", len(v.seq))
	default:
		return "invalid"
	}
}
