package schema

// TUInt validates an unsigned integer (up to 128 bits) against an inclusive
// range.
type TUInt struct {
	Range IntRange
}

func (t TUInt) Validate(ctx *ValidationContext, ref TypeRef) error {
	r := ctx.Reader()
	offset := r.Pos()
	v := r.ReadUInt128()
	if err := r.Err(); err != nil {
		return NewValidationError(KindStructure, ref, offset, "expected a uint", err)
	}
	if !t.Range.Contains(v) {
		return NewValidationError(KindRange, ref, offset, "uint out of declared range", ErrOutOfRange)
	}
	return nil
}

func (TUInt) Compare(_ *ValidationContext, r1, r2 *Cursor) (int, error) {
	v1 := r1.ReadUInt128()
	if err := r1.Err(); err != nil {
		return 0, err
	}
	v2 := r2.ReadUInt128()
	if err := r2.Err(); err != nil {
		return 0, err
	}
	return v1.Cmp(v2), nil
}

func (TUInt) Reference(int) (TypeRef, bool) { return 0, false }
func (TUInt) SetReference(index int, _ TypeRef) error {
	return &ErrNoSuchReference{Kind: "uint", Index: index}
}

// TSInt validates a signed integer (up to 128 bits) against an inclusive
// range.
type TSInt struct {
	Range IntRange
}

func (t TSInt) Validate(ctx *ValidationContext, ref TypeRef) error {
	r := ctx.Reader()
	offset := r.Pos()
	v := r.ReadSInt128()
	if err := r.Err(); err != nil {
		return NewValidationError(KindStructure, ref, offset, "expected a sint", err)
	}
	if !t.Range.Contains(v) {
		return NewValidationError(KindRange, ref, offset, "sint out of declared range", ErrOutOfRange)
	}
	return nil
}

func (TSInt) Compare(_ *ValidationContext, r1, r2 *Cursor) (int, error) {
	v1 := r1.ReadSInt128()
	if err := r1.Err(); err != nil {
		return 0, err
	}
	v2 := r2.ReadSInt128()
	if err := r2.Err(); err != nil {
		return 0, err
	}
	return v1.Cmp(v2), nil
}

func (TSInt) Reference(int) (TypeRef, bool) { return 0, false }
func (TSInt) SetReference(index int, _ TypeRef) error {
	return &ErrNoSuchReference{Kind: "sint", Index: index}
}
