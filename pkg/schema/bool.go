package schema

// TBool validates a single boolean value. It carries no parameters.
type TBool struct{}

func (TBool) Validate(ctx *ValidationContext, ref TypeRef) error {
	r := ctx.Reader()
	offset := r.Pos()
	r.ReadBool()
	if err := r.Err(); err != nil {
		return NewValidationError(KindStructure, ref, offset, "expected a bool", err)
	}
	return nil
}

func (TBool) Compare(ctx *ValidationContext, r1, r2 *Cursor) (int, error) {
	v1 := r1.ReadBool()
	if err := r1.Err(); err != nil {
		return 0, err
	}
	v2 := r2.ReadBool()
	if err := r2.Err(); err != nil {
		return 0, err
	}
	switch {
	case v1 == v2:
		return 0, nil
	case !v1 && v2:
		return -1, nil
	default:
		return 1, nil
	}
}

func (TBool) Reference(int) (TypeRef, bool)          { return 0, false }
func (TBool) SetReference(index int, _ TypeRef) error { return &ErrNoSuchReference{Kind: "bool", Index: index} }
