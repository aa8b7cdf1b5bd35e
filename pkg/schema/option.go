package schema

// TOption validates an inner value that may be absent.
type TOption struct {
	Inner TypeRef
}

func (t *TOption) Validate(ctx *ValidationContext, ref TypeRef) error {
	r := ctx.Reader()
	offset := r.Pos()
	present := r.ReadOptionPresence()
	if err := r.Err(); err != nil {
		return NewValidationError(KindStructure, ref, offset, "expected option presence marker", err)
	}
	if !present {
		return nil
	}
	return ctx.Validate(t.Inner)
}

func (t *TOption) Compare(ctx *ValidationContext, r1, r2 *Cursor) (int, error) {
	p1 := r1.ReadOptionPresence()
	if err := r1.Err(); err != nil {
		return 0, err
	}
	p2 := r2.ReadOptionPresence()
	if err := r2.Err(); err != nil {
		return 0, err
	}
	switch {
	case !p1 && !p2:
		return 0, nil
	case !p1 && p2:
		return -1, nil
	case p1 && !p2:
		return 1, nil
	default:
		return ctx.Compare(t.Inner, r1, r2)
	}
}

func (t *TOption) Reference(index int) (TypeRef, bool) {
	if index == 0 {
		return t.Inner, true
	}
	return 0, false
}

func (t *TOption) SetReference(index int, ref TypeRef) error {
	if index == 0 {
		t.Inner = ref
		return nil
	}
	return &ErrNoSuchReference{Kind: "option", Index: index}
}
