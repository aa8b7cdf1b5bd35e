package schema

import "bytes"

// TBinary validates a raw byte string against a byte-length range.
type TBinary struct {
	Length LengthRange
}

func (t TBinary) Validate(ctx *ValidationContext, ref TypeRef) error {
	r := ctx.Reader()
	offset := r.Pos()
	b := r.ReadBinary()
	if err := r.Err(); err != nil {
		return NewValidationError(KindStructure, ref, offset, "expected binary", err)
	}
	if !t.Length.Contains(uint64(len(b))) {
		return NewValidationError(KindRange, ref, offset, "binary length out of declared range", ErrOutOfRange)
	}
	return nil
}

func (TBinary) Compare(_ *ValidationContext, r1, r2 *Cursor) (int, error) {
	b1 := r1.ReadBinary()
	if err := r1.Err(); err != nil {
		return 0, err
	}
	b2 := r2.ReadBinary()
	if err := r2.Err(); err != nil {
		return 0, err
	}
	return bytes.Compare(b1, b2), nil
}

func (TBinary) Reference(int) (TypeRef, bool) { return 0, false }
func (TBinary) SetReference(index int, _ TypeRef) error {
	return &ErrNoSuchReference{Kind: "binary", Index: index}
}

// TUuid validates a 16-byte UUID. It carries no parameters: any 16-byte
// value is legal at the wire level, matching the source format's treatment
// of UUID as a plain 16-byte binary with no variant/version checks.
type TUuid struct{}

func (TUuid) Validate(ctx *ValidationContext, ref TypeRef) error {
	r := ctx.Reader()
	offset := r.Pos()
	r.ReadUuid()
	if err := r.Err(); err != nil {
		return NewValidationError(KindStructure, ref, offset, "expected a uuid", err)
	}
	return nil
}

func (TUuid) Compare(_ *ValidationContext, r1, r2 *Cursor) (int, error) {
	v1 := r1.ReadUuid()
	if err := r1.Err(); err != nil {
		return 0, err
	}
	v2 := r2.ReadUuid()
	if err := r2.Err(); err != nil {
		return 0, err
	}
	return bytes.Compare(v1[:], v2[:]), nil
}

func (TUuid) Reference(int) (TypeRef, bool) { return 0, false }
func (TUuid) SetReference(index int, _ TypeRef) error {
	return &ErrNoSuchReference{Kind: "uuid", Index: index}
}
