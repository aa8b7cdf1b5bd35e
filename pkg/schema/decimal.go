package schema

import "math/big"

// TDecimal validates a decimal number represented as a signed 128-bit
// coefficient times 10 raised to a signed 8-bit exponent. On the wire it is
// a 2-element Seq of [coefficient: SInt128, exponent: SInt]; unlike Seq,
// Map or Struct, its two members are fixed primitive scalars rather than
// schema-graph references, so Decimal carries no TypeRef children.
type TDecimal struct {
	CoefficientRange IntRange
	ExponentRange    IntRange
}

func (t TDecimal) Validate(ctx *ValidationContext, ref TypeRef) error {
	r := ctx.Reader()
	offset := r.Pos()
	n := r.ReadSeqHeader()
	if err := r.Err(); err != nil {
		return NewValidationError(KindStructure, ref, offset, "expected a decimal (2-element seq)", err)
	}
	if n != 2 {
		return NewValidationError(KindStructure, ref, offset, "decimal must have exactly 2 elements", ErrWrongLength)
	}
	coeffOffset := r.Pos()
	coeff := r.ReadSInt128()
	if err := r.Err(); err != nil {
		return NewValidationError(KindStructure, ref, coeffOffset, "expected decimal coefficient", err)
	}
	if !t.CoefficientRange.Contains(coeff) {
		return NewValidationError(KindRange, ref, coeffOffset, "decimal coefficient out of declared range", ErrOutOfRange)
	}
	expOffset := r.Pos()
	exp := r.ReadSInt128()
	if err := r.Err(); err != nil {
		return NewValidationError(KindStructure, ref, expOffset, "expected decimal exponent", err)
	}
	if !t.ExponentRange.Contains(exp) {
		return NewValidationError(KindRange, ref, expOffset, "decimal exponent out of declared range", ErrOutOfRange)
	}
	return nil
}

func (TDecimal) Compare(_ *ValidationContext, r1, r2 *Cursor) (int, error) {
	r1.ReadSeqHeader()
	r2.ReadSeqHeader()
	c1 := r1.ReadSInt128()
	c2 := r2.ReadSInt128()
	if err := r1.Err(); err != nil {
		return 0, err
	}
	if err := r2.Err(); err != nil {
		return 0, err
	}
	e1 := r1.ReadSInt128()
	e2 := r2.ReadSInt128()
	if err := r1.Err(); err != nil {
		return 0, err
	}
	if err := r2.Err(); err != nil {
		return 0, err
	}
	return compareScaled(c1, e1, c2, e2), nil
}

// compareScaled orders coefficient*10^exponent pairs by magnitude rather than
// by raw coefficient, so two decimals with different exponents (including
// negative ones, e.g. 125e-2 vs 125e-1) still compare correctly. Both values
// are rescaled to the smaller of the two exponents; since that shift is
// always >= 0, the scaling stays in integer arithmetic with no fractional
// big.Int division.
func compareScaled(c1, e1, c2, e2 *big.Int) int {
	minExp := e1
	if e2.Cmp(e1) < 0 {
		minExp = e2
	}
	shift1 := new(big.Int).Sub(e1, minExp)
	shift2 := new(big.Int).Sub(e2, minExp)
	v1 := new(big.Int).Mul(c1, new(big.Int).Exp(big.NewInt(10), shift1, nil))
	v2 := new(big.Int).Mul(c2, new(big.Int).Exp(big.NewInt(10), shift2, nil))
	return v1.Cmp(v2)
}

func (TDecimal) Reference(int) (TypeRef, bool) { return 0, false }
func (TDecimal) SetReference(index int, _ TypeRef) error {
	return &ErrNoSuchReference{Kind: "decimal", Index: index}
}
