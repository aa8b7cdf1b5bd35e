package schema

// SeqOrder describes how a Seq's elements are constrained to be arranged.
type SeqOrder int

const (
	SeqUnordered SeqOrder = iota
	SeqAscending
	SeqDescending
)

// TSeq validates a homogeneous sequence of elements.
type TSeq struct {
	Element    TypeRef
	Length     LengthRange
	Order      SeqOrder
	Unique     bool
	MultipleOf uint64 // 0 means no constraint
}

func (t *TSeq) Validate(ctx *ValidationContext, ref TypeRef) error {
	r := ctx.Reader()
	offset := r.Pos()
	n := r.ReadSeqHeader()
	if err := r.Err(); err != nil {
		return NewValidationError(KindStructure, ref, offset, "expected a seq header", err)
	}
	if !t.Length.Contains(uint64(n)) {
		return NewValidationError(KindRange, ref, offset, "seq length out of declared range", ErrOutOfRange)
	}
	if t.MultipleOf > 0 && uint64(n)%t.MultipleOf != 0 {
		return NewValidationError(KindRange, ref, offset, "seq length is not a multiple of the declared step", ErrNotMultipleOf)
	}

	var prev *Cursor
	for i := 0; i < n; i++ {
		elemStart := r.Clone()
		if err := ctx.Validate(t.Element); err != nil {
			return err
		}
		if t.Order != SeqUnordered {
			if prev != nil {
				cur := elemStart
				cmp, err := ctx.Compare(t.Element, prev, cur)
				if err != nil {
					return err
				}
				ok := false
				switch t.Order {
				case SeqAscending:
					ok = cmp < 0 || (cmp == 0 && !t.Unique)
				case SeqDescending:
					ok = cmp > 0 || (cmp == 0 && !t.Unique)
				}
				if !ok {
					return NewValidationError(KindRange, ref, offset, "seq elements are not correctly ordered", ErrUnsortedSeq)
				}
			}
			prev = elemStart
		}
	}
	return nil
}

func (t *TSeq) Compare(ctx *ValidationContext, r1, r2 *Cursor) (int, error) {
	n1 := r1.ReadSeqHeader()
	if err := r1.Err(); err != nil {
		return 0, err
	}
	n2 := r2.ReadSeqHeader()
	if err := r2.Err(); err != nil {
		return 0, err
	}
	n := n1
	if n2 < n {
		n = n2
	}
	result := 0
	for i := 0; i < n; i++ {
		cmp, err := ctx.Compare(t.Element, r1, r2)
		if err != nil {
			return 0, err
		}
		if result == 0 && cmp != 0 {
			result = cmp
		}
	}
	// Finish consuming the longer sequence's remaining elements so both
	// readers end up fully past the compared value, even once the result
	// is already decided.
	for i := n; i < n1; i++ {
		r1.Skip()
	}
	for i := n; i < n2; i++ {
		r2.Skip()
	}
	if err := r1.Err(); err != nil {
		return 0, err
	}
	if err := r2.Err(); err != nil {
		return 0, err
	}
	if result != 0 {
		return result, nil
	}
	switch {
	case n1 < n2:
		return -1, nil
	case n1 > n2:
		return 1, nil
	default:
		return 0, nil
	}
}

func (t *TSeq) Reference(index int) (TypeRef, bool) {
	if index == 0 {
		return t.Element, true
	}
	return 0, false
}

func (t *TSeq) SetReference(index int, ref TypeRef) error {
	if index == 0 {
		t.Element = ref
		return nil
	}
	return &ErrNoSuchReference{Kind: "seq", Index: index}
}
