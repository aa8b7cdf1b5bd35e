package schema

import "math"

// FloatRange bounds the finite, non-NaN value domain of a float schema
// type. NaN, infinities, negative zero and subnormals are gated
// independently by the Allow* flags rather than by this range.
type FloatRange struct {
	Min, Max float64
}

func (r FloatRange) contains(v float64) bool { return v >= r.Min && v <= r.Max }

func isSubnormal32(v float32) bool {
	bits := math.Float32bits(v)
	exponent := bits & 0x7F800000
	mantissa := bits & 0x007FFFFF
	return exponent == 0 && mantissa != 0
}

func isSubnormal64(v float64) bool {
	bits := math.Float64bits(v)
	exponent := bits & 0x7FF0000000000000
	mantissa := bits & 0x000FFFFFFFFFFFFF
	return exponent == 0 && mantissa != 0
}

// compareFloat64 implements LQ's total order over floats: NaN is the
// smallest value and compares equal to any other NaN; otherwise ordering is
// the usual numeric order except -0 sorts strictly before +0.
func compareFloat64(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return -1
	case bNaN:
		return 1
	}
	if a == 0 && b == 0 {
		aNeg, bNeg := math.Signbit(a), math.Signbit(b)
		switch {
		case aNeg == bNeg:
			return 0
		case aNeg:
			return -1
		default:
			return 1
		}
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// TFloat32 validates a 32-bit float against a finite-value range and the
// independent NaN/infinity/negative-zero/subnormal admission flags.
type TFloat32 struct {
	Range             FloatRange
	AllowNaN          bool
	AllowInfinite     bool
	AllowNegativeZero bool
	AllowSubnormal    bool
}

func (t TFloat32) validateValue(v float32) error {
	switch {
	case math.IsNaN(float64(v)):
		if !t.AllowNaN {
			return ErrOutOfRange
		}
		return nil
	case math.IsInf(float64(v), 0):
		if !t.AllowInfinite {
			return ErrOutOfRange
		}
		return nil
	case v == 0 && math.Signbit(float64(v)):
		if !t.AllowNegativeZero {
			return ErrOutOfRange
		}
		return nil
	case isSubnormal32(v):
		if !t.AllowSubnormal {
			return ErrOutOfRange
		}
		return nil
	}
	if !t.Range.contains(float64(v)) {
		return ErrOutOfRange
	}
	return nil
}

func (t TFloat32) Validate(ctx *ValidationContext, ref TypeRef) error {
	r := ctx.Reader()
	offset := r.Pos()
	v := r.ReadFloat32()
	if err := r.Err(); err != nil {
		return NewValidationError(KindStructure, ref, offset, "expected a float32", err)
	}
	if err := t.validateValue(v); err != nil {
		return NewValidationError(KindRange, ref, offset, "float32 rejected by range or admission flags", err)
	}
	return nil
}

func (TFloat32) Compare(_ *ValidationContext, r1, r2 *Cursor) (int, error) {
	v1 := r1.ReadFloat32()
	if err := r1.Err(); err != nil {
		return 0, err
	}
	v2 := r2.ReadFloat32()
	if err := r2.Err(); err != nil {
		return 0, err
	}
	return compareFloat64(float64(v1), float64(v2)), nil
}

func (TFloat32) Reference(int) (TypeRef, bool) { return 0, false }
func (TFloat32) SetReference(index int, _ TypeRef) error {
	return &ErrNoSuchReference{Kind: "float32", Index: index}
}

// TFloat64 validates a 64-bit float against a finite-value range and the
// independent NaN/infinity/negative-zero/subnormal admission flags.
type TFloat64 struct {
	Range             FloatRange
	AllowNaN          bool
	AllowInfinite     bool
	AllowNegativeZero bool
	AllowSubnormal    bool
}

func (t TFloat64) validateValue(v float64) error {
	switch {
	case math.IsNaN(v):
		if !t.AllowNaN {
			return ErrOutOfRange
		}
		return nil
	case math.IsInf(v, 0):
		if !t.AllowInfinite {
			return ErrOutOfRange
		}
		return nil
	case v == 0 && math.Signbit(v):
		if !t.AllowNegativeZero {
			return ErrOutOfRange
		}
		return nil
	case isSubnormal64(v):
		if !t.AllowSubnormal {
			return ErrOutOfRange
		}
		return nil
	}
	if !t.Range.contains(v) {
		return ErrOutOfRange
	}
	return nil
}

func (t TFloat64) Validate(ctx *ValidationContext, ref TypeRef) error {
	r := ctx.Reader()
	offset := r.Pos()
	v := r.ReadFloat64()
	if err := r.Err(); err != nil {
		return NewValidationError(KindStructure, ref, offset, "expected a float64", err)
	}
	if err := t.validateValue(v); err != nil {
		return NewValidationError(KindRange, ref, offset, "float64 rejected by range or admission flags", err)
	}
	return nil
}

func (TFloat64) Compare(_ *ValidationContext, r1, r2 *Cursor) (int, error) {
	v1 := r1.ReadFloat64()
	if err := r1.Err(); err != nil {
		return 0, err
	}
	v2 := r2.ReadFloat64()
	if err := r2.Err(); err != nil {
		return 0, err
	}
	return compareFloat64(v1, v2), nil
}

func (TFloat64) Reference(int) (TypeRef, bool) { return 0, false }
func (TFloat64) SetReference(index int, _ TypeRef) error {
	return &ErrNoSuchReference{Kind: "float64", Index: index}
}
