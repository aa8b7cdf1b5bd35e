package schema

import "math/big"

// LengthRange is an inclusive [Min, Max] bound on a count: bytes, UTF-8
// code units, scalar values, sequence elements, or map entries.
type LengthRange struct {
	Min, Max uint64
}

// Contains reports whether n falls within the range, inclusive.
func (r LengthRange) Contains(n uint64) bool { return n >= r.Min && n <= r.Max }

// IntRange is an inclusive [Min, Max] bound on a UInt/SInt's value domain,
// represented with arbitrary precision since LQ integers are up to 128-bit.
type IntRange struct {
	Min, Max *big.Int
}

// NewIntRange builds a range from int64 bounds, a convenience for the
// overwhelmingly common case of schemas that stay within 64 bits.
func NewIntRange(min, max int64) IntRange {
	return IntRange{Min: big.NewInt(min), Max: big.NewInt(max)}
}

// Contains reports whether v falls within the range, inclusive.
func (r IntRange) Contains(v *big.Int) bool {
	return v.Cmp(r.Min) >= 0 && v.Cmp(r.Max) <= 0
}

// CodeRange is one allowed [Start, End) sub-range of Unicode code points for
// an Ascii schema type; start inclusive, end exclusive.
type CodeRange struct {
	Start, End rune
}
