package schema

import "github.com/blockberries/liquesco/pkg/identifier"

// Variant is one named alternative of a TEnum, carrying zero or more value
// type refs in declaration order.
type Variant struct {
	Name   identifier.Identifier
	Values []TypeRef
}

// TEnum validates a tagged union: an ordinal selecting a declared variant,
// followed by that variant's values.
type TEnum struct {
	Variants []Variant
}

func (t *TEnum) variantFor(ref TypeRef, offset int, ordinal uint64) (*Variant, error) {
	if ordinal >= uint64(len(t.Variants)) {
		return nil, NewValidationError(KindReference, ref, offset, "enum ordinal has no corresponding variant", ErrOrdinalOutOfRange)
	}
	return &t.Variants[ordinal], nil
}

func (t *TEnum) Validate(ctx *ValidationContext, ref TypeRef) error {
	r := ctx.Reader()
	offset := r.Pos()
	hdr := r.ReadEnumHeader()
	if err := r.Err(); err != nil {
		return NewValidationError(KindStructure, ref, offset, "expected an enum header", err)
	}
	variant, verr := t.variantFor(ref, offset, hdr.Ordinal)
	if verr != nil {
		return verr
	}
	declared := len(variant.Values)
	if ctx.Strict() && hdr.ValueCount != declared {
		return NewValidationError(KindStrictMode, ref, offset, "strict mode requires the variant's exact declared value count", ErrWrongLength)
	}
	if hdr.ValueCount < declared {
		return NewValidationError(KindStructure, ref, offset, "enum carries fewer values than the variant declares", ErrWrongLength)
	}
	for _, vt := range variant.Values {
		if err := ctx.Validate(vt); err != nil {
			return err
		}
	}
	for i := declared; i < hdr.ValueCount; i++ {
		r.Skip()
	}
	if err := r.Err(); err != nil {
		return NewValidationError(KindStructure, ref, offset, "failed skipping extension values", err)
	}
	return nil
}

func (t *TEnum) Compare(ctx *ValidationContext, r1, r2 *Cursor) (int, error) {
	h1 := r1.ReadEnumHeader()
	if err := r1.Err(); err != nil {
		return 0, err
	}
	h2 := r2.ReadEnumHeader()
	if err := r2.Err(); err != nil {
		return 0, err
	}
	if h1.Ordinal != h2.Ordinal {
		if h1.Ordinal < h2.Ordinal {
			return -1, nil
		}
		return 1, nil
	}

	variant, err := t.variantFor(0, r1.Pos(), h1.Ordinal)
	if err != nil {
		return 0, err
	}

	result := 0
	numRead := 0
	for _, vt := range variant.Values {
		cmp, cerr := ctx.Compare(vt, r1, r2)
		if cerr != nil {
			return 0, cerr
		}
		numRead++
		if result == 0 && cmp != 0 {
			result = cmp
		}
	}
	for i := numRead; i < h1.ValueCount; i++ {
		r1.Skip()
	}
	for i := numRead; i < h2.ValueCount; i++ {
		r2.Skip()
	}
	if err := r1.Err(); err != nil {
		return 0, err
	}
	if err := r2.Err(); err != nil {
		return 0, err
	}
	return result, nil
}

func (t *TEnum) Reference(index int) (TypeRef, bool) {
	i, j := 0, 0
	for _, v := range t.Variants {
		for range v.Values {
			if i == index {
				return v.Values[j], true
			}
			i++
			j++
		}
		j = 0
	}
	return 0, false
}

func (t *TEnum) SetReference(index int, ref TypeRef) error {
	i := 0
	for vi := range t.Variants {
		for vj := range t.Variants[vi].Values {
			if i == index {
				t.Variants[vi].Values[vj] = ref
				return nil
			}
			i++
		}
	}
	return &ErrNoSuchReference{Kind: "enum", Index: index}
}

// VariantByName returns the ordinal and Variant with the given name, if any.
func (t *TEnum) VariantByName(name identifier.Identifier) (uint64, *Variant, bool) {
	for i := range t.Variants {
		if t.Variants[i].Name.Equal(name) {
			return uint64(i), &t.Variants[i], true
		}
	}
	return 0, nil, false
}
