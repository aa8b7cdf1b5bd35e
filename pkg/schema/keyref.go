package schema

// TKeyRef references a key, by index, of the innermost enclosing Map or
// RootMap that provides anchors. It carries no parameters.
type TKeyRef struct{}

func (TKeyRef) Validate(ctx *ValidationContext, ref TypeRef) error {
	r := ctx.Reader()
	offset := r.Pos()
	idx := r.ReadUInt64()
	if err := r.Err(); err != nil {
		return NewValidationError(KindStructure, ref, offset, "expected a key reference (u32)", err)
	}
	mapLen, ok := ctx.CurrentKeyRefMapLen()
	if !ok {
		return NewValidationError(KindReference, ref, offset, "key reference used outside any map", ErrKeyRefOutsideMap)
	}
	if idx >= uint64(mapLen) {
		return NewValidationError(KindReference, ref, offset, "key reference index exceeds enclosing map's key count", ErrKeyRefOutOfRange)
	}
	return nil
}

func (TKeyRef) Compare(_ *ValidationContext, r1, r2 *Cursor) (int, error) {
	v1 := r1.ReadUInt64()
	if err := r1.Err(); err != nil {
		return 0, err
	}
	v2 := r2.ReadUInt64()
	if err := r2.Err(); err != nil {
		return 0, err
	}
	switch {
	case v1 < v2:
		return -1, nil
	case v1 > v2:
		return 1, nil
	default:
		return 0, nil
	}
}

func (TKeyRef) Reference(int) (TypeRef, bool) { return 0, false }
func (TKeyRef) SetReference(index int, _ TypeRef) error {
	return &ErrNoSuchReference{Kind: "key_ref", Index: index}
}
