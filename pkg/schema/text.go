package schema

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/rangetable"
)

// LengthType selects what a Unicode schema type's LengthRange counts.
type LengthType int

const (
	// LengthBytes counts raw bytes (identical to LengthUTF8Bytes on this
	// wire format, since strings are always UTF-8 encoded; kept distinct to
	// mirror the source format's length-type enumeration).
	LengthBytes LengthType = iota
	LengthUTF8Bytes
	LengthScalarValues
)

// TUnicode validates a UTF-8 string against a length range measured in
// bytes or Unicode scalar values.
type TUnicode struct {
	Length     LengthRange
	LengthType LengthType
}

func (t TUnicode) measure(s string) uint64 {
	if t.LengthType == LengthScalarValues {
		return uint64(utf8.RuneCountInString(s))
	}
	return uint64(len(s))
}

func (t TUnicode) Validate(ctx *ValidationContext, ref TypeRef) error {
	r := ctx.Reader()
	offset := r.Pos()
	s := r.ReadUnicode()
	if err := r.Err(); err != nil {
		return NewValidationError(KindStructure, ref, offset, "expected unicode", err)
	}
	if !t.Length.Contains(t.measure(s)) {
		return NewValidationError(KindRange, ref, offset, "unicode length out of declared range", ErrOutOfRange)
	}
	return nil
}

func (TUnicode) Compare(_ *ValidationContext, r1, r2 *Cursor) (int, error) {
	s1 := r1.ReadUnicode()
	if err := r1.Err(); err != nil {
		return 0, err
	}
	s2 := r2.ReadUnicode()
	if err := r2.Err(); err != nil {
		return 0, err
	}
	return strings.Compare(s1, s2), nil
}

func (TUnicode) Reference(int) (TypeRef, bool) { return 0, false }
func (TUnicode) SetReference(index int, _ TypeRef) error {
	return &ErrNoSuchReference{Kind: "unicode", Index: index}
}

// TAscii validates a UTF-8 string whose every code point falls in one of a
// declared set of half-open code-point ranges, and whose character count
// falls in a length range.
//
// The admissible code points are compiled once, at construction, into a
// *unicode.RangeTable via golang.org/x/text/unicode/rangetable so that
// membership testing during validation is a binary search (unicode.Is)
// rather than a linear scan of the declared sub-ranges. This enumerates
// every code point in each declared range up front, which is appropriate
// for the small, ASCII-sized ranges schemas in practice declare (e.g. the
// identifier segment alphabet); a schema declaring ranges spanning large
// swaths of the Unicode table would want a different construction.
type TAscii struct {
	Length LengthRange
	Ranges []CodeRange
	table  *unicode.RangeTable
}

// NewTAscii builds a TAscii, precompiling ranges into a membership table.
func NewTAscii(length LengthRange, ranges []CodeRange) TAscii {
	var runes []rune
	for _, cr := range ranges {
		for r := cr.Start; r < cr.End; r++ {
			runes = append(runes, r)
		}
	}
	return TAscii{Length: length, Ranges: ranges, table: rangetable.New(runes...)}
}

func (t TAscii) Validate(ctx *ValidationContext, ref TypeRef) error {
	r := ctx.Reader()
	offset := r.Pos()
	s := r.ReadUnicode()
	if err := r.Err(); err != nil {
		return NewValidationError(KindStructure, ref, offset, "expected ascii", err)
	}
	count := uint64(0)
	for _, c := range s {
		if !unicode.Is(t.table, c) {
			return NewValidationError(KindRange, ref, offset, "character outside declared ascii code ranges", ErrOutOfRange)
		}
		count++
	}
	if !t.Length.Contains(count) {
		return NewValidationError(KindRange, ref, offset, "ascii length out of declared range", ErrOutOfRange)
	}
	return nil
}

func (TAscii) Compare(_ *ValidationContext, r1, r2 *Cursor) (int, error) {
	s1 := r1.ReadUnicode()
	if err := r1.Err(); err != nil {
		return 0, err
	}
	s2 := r2.ReadUnicode()
	if err := r2.Err(); err != nil {
		return 0, err
	}
	return strings.Compare(s1, s2), nil
}

func (TAscii) Reference(int) (TypeRef, bool) { return 0, false }
func (TAscii) SetReference(index int, _ TypeRef) error {
	return &ErrNoSuchReference{Kind: "ascii", Index: index}
}
