package schema

// TMap validates a sequence of (key, value) entries sorted by key, with no
// duplicate keys. If Anchors is set, a key-reference frame is pushed before
// validating entries so KeyRef types inside values can reference this map's
// keys by index.
type TMap struct {
	Key, Value TypeRef
	Length     LengthRange
	Order      SeqOrder // SeqAscending or SeqDescending; SeqUnordered is invalid for Map
	Anchors    bool
}

func (t *TMap) validateEntries(ctx *ValidationContext, ref TypeRef, n int) error {
	r := ctx.Reader()
	var prevKey *Cursor
	for i := 0; i < n; i++ {
		entryOffset := r.Pos()
		entryLen := r.ReadSeqHeader()
		if err := r.Err(); err != nil {
			return NewValidationError(KindStructure, ref, entryOffset, "expected a 2-element map entry", err)
		}
		if entryLen != 2 {
			return NewValidationError(KindStructure, ref, entryOffset, "map entry must have exactly 2 elements", ErrWrongLength)
		}
		keyStart := r.Clone()
		if err := ctx.Validate(t.Key); err != nil {
			return err
		}
		if prevKey != nil {
			cmp, err := ctx.Compare(t.Key, prevKey, keyStart)
			if err != nil {
				return err
			}
			ok := (t.Order == SeqAscending && cmp < 0) || (t.Order == SeqDescending && cmp > 0)
			if !ok {
				return NewValidationError(KindRange, ref, entryOffset, "map keys are unsorted or contain a duplicate", ErrDuplicateMapKey)
			}
		}
		prevKey = keyStart
		if err := ctx.Validate(t.Value); err != nil {
			return err
		}
	}
	return nil
}

func (t *TMap) Validate(ctx *ValidationContext, ref TypeRef) error {
	r := ctx.Reader()
	offset := r.Pos()
	n := r.ReadSeqHeader()
	if err := r.Err(); err != nil {
		return NewValidationError(KindStructure, ref, offset, "expected a map (seq header)", err)
	}
	if !t.Length.Contains(uint64(n)) {
		return NewValidationError(KindRange, ref, offset, "map length out of declared range", ErrOutOfRange)
	}
	if t.Anchors {
		ctx.PushKeyRefFrame(uint32(n))
		defer ctx.PopKeyRefFrame()
	}
	return t.validateEntries(ctx, ref, n)
}

func (t *TMap) Compare(ctx *ValidationContext, r1, r2 *Cursor) (int, error) {
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
		r1.ReadSeqHeader()
		if err := r1.Err(); err != nil {
			return 0, err
		}
		r2.ReadSeqHeader()
		if err := r2.Err(); err != nil {
			return 0, err
		}
		cmpKey, err := ctx.Compare(t.Key, r1, r2)
		if err != nil {
			return 0, err
		}
		cmpVal, err := ctx.Compare(t.Value, r1, r2)
		if err != nil {
			return 0, err
		}
		if result == 0 {
			if cmpKey != 0 {
				result = cmpKey
			} else if cmpVal != 0 {
				result = cmpVal
			}
		}
	}
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

func (t *TMap) Reference(index int) (TypeRef, bool) {
	switch index {
	case 0:
		return t.Key, true
	case 1:
		return t.Value, true
	default:
		return 0, false
	}
}

func (t *TMap) SetReference(index int, ref TypeRef) error {
	switch index {
	case 0:
		t.Key = ref
	case 1:
		t.Value = ref
	default:
		return &ErrNoSuchReference{Kind: "map", Index: index}
	}
	return nil
}

// TRootMap is like TMap, but the payload is a 2-element Seq [root, entries]:
// root is validated against Root and is never referenceable; entries
// always provide anchors, regardless of a configurable flag.
type TRootMap struct {
	Root       TypeRef
	Key, Value TypeRef
	Length     LengthRange
	Order      SeqOrder
}

func (t *TRootMap) asMap() *TMap {
	return &TMap{Key: t.Key, Value: t.Value, Length: t.Length, Order: t.Order, Anchors: true}
}

func (t *TRootMap) Validate(ctx *ValidationContext, ref TypeRef) error {
	r := ctx.Reader()
	offset := r.Pos()
	n := r.ReadSeqHeader()
	if err := r.Err(); err != nil {
		return NewValidationError(KindStructure, ref, offset, "expected a root map (2-element seq)", err)
	}
	if n != 2 {
		return NewValidationError(KindStructure, ref, offset, "root map must have exactly 2 elements (root, entries)", ErrWrongLength)
	}
	if err := ctx.Validate(t.Root); err != nil {
		return err
	}
	entriesOffset := r.Pos()
	entryCount := r.ReadSeqHeader()
	if err := r.Err(); err != nil {
		return NewValidationError(KindStructure, ref, entriesOffset, "expected map entries (seq header)", err)
	}
	m := t.asMap()
	if !m.Length.Contains(uint64(entryCount)) {
		return NewValidationError(KindRange, ref, entriesOffset, "root map entries out of declared length range", ErrOutOfRange)
	}
	ctx.PushKeyRefFrame(uint32(entryCount))
	defer ctx.PopKeyRefFrame()
	return m.validateEntries(ctx, ref, entryCount)
}

func (t *TRootMap) Compare(ctx *ValidationContext, r1, r2 *Cursor) (int, error) {
	r1.ReadSeqHeader()
	r2.ReadSeqHeader()
	cmpRoot, err := ctx.Compare(t.Root, r1, r2)
	if err != nil {
		return 0, err
	}
	m := t.asMap()
	cmpEntries, err := m.Compare(ctx, r1, r2)
	if err != nil {
		return 0, err
	}
	if cmpRoot != 0 {
		return cmpRoot, nil
	}
	return cmpEntries, nil
}

func (t *TRootMap) Reference(index int) (TypeRef, bool) {
	switch index {
	case 0:
		return t.Root, true
	case 1:
		return t.Key, true
	case 2:
		return t.Value, true
	default:
		return 0, false
	}
}

func (t *TRootMap) SetReference(index int, ref TypeRef) error {
	switch index {
	case 0:
		t.Root = ref
	case 1:
		t.Key = ref
	case 2:
		t.Value = ref
	default:
		return &ErrNoSuchReference{Kind: "root_map", Index: index}
	}
	return nil
}
