package schema

import "github.com/blockberries/liquesco/pkg/identifier"

// Field is one named member of a TStruct, in declaration order.
type Field struct {
	Name identifier.Identifier
	Type TypeRef
}

// TStruct validates an ordered, fixed-arity record. On the wire a struct is
// a Seq header followed by each field's value in declaration order; this
// reuses the generic Seq machinery rather than a dedicated major type (see
// the struct-arity note in the package's design ledger).
type TStruct struct {
	Fields []Field
}

func (t *TStruct) Validate(ctx *ValidationContext, ref TypeRef) error {
	r := ctx.Reader()
	offset := r.Pos()
	n := r.ReadSeqHeader()
	if err := r.Err(); err != nil {
		return NewValidationError(KindStructure, ref, offset, "expected a struct (seq header)", err)
	}
	want := len(t.Fields)
	if n < want {
		return NewValidationError(KindStructure, ref, offset, "fewer values than declared fields", ErrWrongLength)
	}
	if ctx.Strict() && n != want {
		return NewValidationError(KindStrictMode, ref, offset, "strict mode forbids extra struct values", ErrWrongLength)
	}
	for _, f := range t.Fields {
		if err := ctx.Validate(f.Type); err != nil {
			return err
		}
	}
	for i := want; i < n; i++ {
		r.Skip()
	}
	if err := r.Err(); err != nil {
		return NewValidationError(KindStructure, ref, offset, "failed skipping extension values", err)
	}
	return nil
}

func (t *TStruct) Compare(ctx *ValidationContext, r1, r2 *Cursor) (int, error) {
	n1 := r1.ReadSeqHeader()
	if err := r1.Err(); err != nil {
		return 0, err
	}
	n2 := r2.ReadSeqHeader()
	if err := r2.Err(); err != nil {
		return 0, err
	}
	result := 0
	for _, f := range t.Fields {
		cmp, err := ctx.Compare(f.Type, r1, r2)
		if err != nil {
			return 0, err
		}
		if result == 0 && cmp != 0 {
			result = cmp
		}
	}
	for i := len(t.Fields); i < n1; i++ {
		r1.Skip()
	}
	for i := len(t.Fields); i < n2; i++ {
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

func (t *TStruct) Reference(index int) (TypeRef, bool) {
	if index < 0 || index >= len(t.Fields) {
		return 0, false
	}
	return t.Fields[index].Type, true
}

func (t *TStruct) SetReference(index int, ref TypeRef) error {
	if index < 0 || index >= len(t.Fields) {
		return &ErrNoSuchReference{Kind: "struct", Index: index}
	}
	t.Fields[index].Type = ref
	return nil
}
