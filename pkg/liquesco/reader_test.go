package liquesco

import (
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/blockberries/liquesco/internal/wire"
)

func TestReaderRoundTripPrimitives(t *testing.T) {
	w := NewWriter()
	w.WriteBool(true)
	w.WriteUInt64(42)
	w.WriteSInt64(-7)
	w.WriteFloat32(1.5)
	w.WriteFloat64(2.25)
	w.WriteBinary([]byte{0xde, 0xad})
	w.WriteUnicode("hello")
	w.WriteUuid([16]byte{1, 2, 3})
	if err := w.Err(); err != nil {
		t.Fatal(err)
	}

	r := NewReader(w.Bytes())
	if got := r.ReadBool(); got != true {
		t.Errorf("ReadBool = %v, want true", got)
	}
	if got := r.ReadUInt64(); got != 42 {
		t.Errorf("ReadUInt64 = %d, want 42", got)
	}
	if got := r.ReadSInt64(); got != -7 {
		t.Errorf("ReadSInt64 = %d, want -7", got)
	}
	if got := r.ReadFloat32(); got != 1.5 {
		t.Errorf("ReadFloat32 = %v, want 1.5", got)
	}
	if got := r.ReadFloat64(); got != 2.25 {
		t.Errorf("ReadFloat64 = %v, want 2.25", got)
	}
	if got := r.ReadBinary(); string(got) != "\xde\xad" {
		t.Errorf("ReadBinary = %x", got)
	}
	if got := r.ReadUnicode(); got != "hello" {
		t.Errorf("ReadUnicode = %q, want hello", got)
	}
	if got := r.ReadUuid(); got != [16]byte{1, 2, 3} {
		t.Errorf("ReadUuid = %v", got)
	}
	if err := r.Err(); err != nil {
		t.Fatal(err)
	}
	if !r.EOF() {
		t.Error("expected reader to be at EOF after consuming every written value")
	}
}

func TestReaderStickyErrorAfterFirstFailure(t *testing.T) {
	w := NewWriter()
	w.WriteBool(true)

	r := NewReader(w.Bytes())
	_ = r.ReadUInt64() // wrong major type
	if r.Err() == nil {
		t.Fatal("expected a major-type mismatch error")
	}
	// Further reads must not panic and must keep reporting the first error.
	firstErr := r.Err()
	_ = r.ReadBool()
	if r.Err() != firstErr {
		t.Error("expected the reader to stay stuck on the first error")
	}
}

func TestReaderCloneIsIndependent(t *testing.T) {
	w := NewWriter()
	w.WriteUInt64(1)
	w.WriteUInt64(2)

	r := NewReader(w.Bytes())
	clone := r.Clone()

	if got := clone.ReadUInt64(); got != 1 {
		t.Fatalf("clone.ReadUInt64 = %d, want 1", got)
	}
	// The original reader's position must be unaffected by the clone's read.
	if got := r.ReadUInt64(); got != 1 {
		t.Fatalf("original reader was advanced by reading the clone: got %d, want 1", got)
	}
	if got := r.ReadUInt64(); got != 2 {
		t.Fatalf("original.ReadUInt64 = %d, want 2", got)
	}
}

func TestReaderUInt128RoundTrip(t *testing.T) {
	big128 := new(big.Int).Lsh(big.NewInt(1), 100)
	w := NewWriter()
	w.WriteUInt128(big128)

	r := NewReader(w.Bytes())
	got := r.ReadUInt128()
	if got.Cmp(big128) != 0 {
		t.Fatalf("ReadUInt128 = %s, want %s", got, big128)
	}
}

func TestReaderSkipConsumesOneValue(t *testing.T) {
	w := NewWriter()
	w.WriteSeqHeader(2)
	w.WriteUInt64(1)
	w.WriteUInt64(2)
	w.WriteBool(true)

	r := NewReader(w.Bytes())
	r.Skip() // skips the whole 2-element seq
	if err := r.Err(); err != nil {
		t.Fatal(err)
	}
	if got := r.ReadBool(); got != true {
		t.Errorf("ReadBool after Skip = %v, want true", got)
	}
	if !r.EOF() {
		t.Error("expected EOF after reading the trailing bool")
	}
}

func TestReaderEnumHeaderRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteEnumHeader(5, 2)
	w.WriteBool(true)
	w.WriteBool(false)

	r := NewReader(w.Bytes())
	hdr := r.ReadEnumHeader()
	if hdr.Ordinal != 5 || hdr.ValueCount != 2 {
		t.Fatalf("ReadEnumHeader = %+v, want {5 2}", hdr)
	}
}

func TestReaderRejectsEmbeddedItemsOnLeafValues(t *testing.T) {
	cases := []struct {
		name string
		buf  []byte
		read func(r *Reader)
	}{
		{"binary", wire.AppendContentDescription(nil, wire.TypeBinary, wire.ContentDescription{SelfLength: 2, NumberOfEmbedded: 1}), func(r *Reader) { r.ReadBinary() }},
		{"unicode", wire.AppendContentDescription(nil, wire.TypeUnicode, wire.ContentDescription{SelfLength: 2, NumberOfEmbedded: 1}), func(r *Reader) { r.ReadUnicode() }},
		{"uint", wire.AppendContentDescription(nil, wire.TypeUInt, wire.ContentDescription{SelfLength: 1, NumberOfEmbedded: 1}), func(r *Reader) { r.ReadUInt128() }},
		{"sint", wire.AppendContentDescription(nil, wire.TypeSInt, wire.ContentDescription{SelfLength: 1, NumberOfEmbedded: 1}), func(r *Reader) { r.ReadSInt128() }},
		{"float32", wire.AppendContentDescription(nil, wire.TypeFloat, wire.ContentDescription{SelfLength: 4, NumberOfEmbedded: 1}), func(r *Reader) { r.ReadFloat32() }},
		{"float64", wire.AppendContentDescription(nil, wire.TypeFloat, wire.ContentDescription{SelfLength: 8, NumberOfEmbedded: 1}), func(r *Reader) { r.ReadFloat64() }},
		{"uuid", wire.AppendContentDescription(nil, wire.TypeUuid, wire.ContentDescription{SelfLength: 16, NumberOfEmbedded: 1}), func(r *Reader) { r.ReadUuid() }},
	}
	for _, c := range cases {
		buf := append(append([]byte{}, c.buf...), make([]byte, 16)...) // pad enough self/embedded bytes
		r := NewReader(buf)
		c.read(r)
		if r.Err() == nil {
			t.Errorf("%s: expected an error for a leaf value carrying embedded items", c.name)
			continue
		}
		if !errors.Is(r.Err(), wire.ErrEmbeddedOnLeaf) {
			t.Errorf("%s: err = %v, want wire.ErrEmbeddedOnLeaf", c.name, r.Err())
		}
	}
}

func TestReaderFloatSpecialValues(t *testing.T) {
	w := NewWriter()
	w.WriteFloat64(math.NaN())
	w.WriteFloat64(math.Inf(1))

	r := NewReader(w.Bytes())
	if got := r.ReadFloat64(); !math.IsNaN(got) {
		t.Errorf("ReadFloat64 = %v, want NaN", got)
	}
	if got := r.ReadFloat64(); !math.IsInf(got, 1) {
		t.Errorf("ReadFloat64 = %v, want +Inf", got)
	}
}
