package schema

import (
	"testing"

	"github.com/blockberries/liquesco/pkg/identifier"
	"github.com/blockberries/liquesco/pkg/liquesco"
)

func mustIdentifier(t *testing.T, s string) identifier.Identifier {
	t.Helper()
	id, err := identifier.Parse(s)
	if err != nil {
		t.Fatalf("parsing identifier %q: %v", s, err)
	}
	return id
}

func TestOptionPresentAndAbsent(t *testing.T) {
	c := NewContainer()
	inner := c.Add(TUInt{Range: NewIntRange(0, 10)})
	opt := c.Add(&TOption{Inner: inner})
	c.SetRoot(opt)

	w := liquesco.NewWriter()
	w.WriteOptionPresence(false)
	if err := c.Validate(w.Bytes(), false); err != nil {
		t.Fatal(err)
	}

	w2 := liquesco.NewWriter()
	w2.WriteOptionPresence(true)
	w2.WriteUInt64(5)
	if err := c.Validate(w2.Bytes(), false); err != nil {
		t.Fatal(err)
	}

	w3 := liquesco.NewWriter()
	w3.WriteOptionPresence(true)
	w3.WriteUInt64(50)
	if err := c.Validate(w3.Bytes(), false); err == nil {
		t.Fatal("expected inner out-of-range error to propagate")
	}
}

func TestOptionCompareAbsentSortsFirst(t *testing.T) {
	c := NewContainer()
	inner := c.Add(TUInt{Range: NewIntRange(0, 1000)})
	optRef := c.Add(&TOption{Inner: inner})
	opt, _ := c.Resolve(optRef)

	wAbsent := liquesco.NewWriter()
	wAbsent.WriteOptionPresence(false)
	wPresent := liquesco.NewWriter()
	wPresent.WriteOptionPresence(true)
	wPresent.WriteUInt64(1)

	ctx := NewValidationContext(c, liquesco.NewReader(nil), false)
	cmp, err := opt.Compare(ctx, liquesco.NewReader(wAbsent.Bytes()), liquesco.NewReader(wPresent.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if cmp >= 0 {
		t.Fatalf("expected absent < present, got %d", cmp)
	}
}

func TestSeqLengthAndUniqueAscending(t *testing.T) {
	c := NewContainer()
	elem := c.Add(TUInt{Range: NewIntRange(0, 1000)})
	seq := c.Add(&TSeq{Element: elem, Length: LengthRange{Min: 1, Max: 5}, Order: SeqAscending, Unique: true})
	c.SetRoot(seq)

	w := liquesco.NewWriter()
	w.WriteSeqHeader(3)
	w.WriteUInt64(1)
	w.WriteUInt64(2)
	w.WriteUInt64(3)
	if err := c.Validate(w.Bytes(), false); err != nil {
		t.Fatal(err)
	}

	wDup := liquesco.NewWriter()
	wDup.WriteSeqHeader(2)
	wDup.WriteUInt64(1)
	wDup.WriteUInt64(1)
	if err := c.Validate(wDup.Bytes(), false); err == nil {
		t.Fatal("expected duplicate rejection under Unique ascending order")
	}

	wUnsorted := liquesco.NewWriter()
	wUnsorted.WriteSeqHeader(2)
	wUnsorted.WriteUInt64(2)
	wUnsorted.WriteUInt64(1)
	if err := c.Validate(wUnsorted.Bytes(), false); err == nil {
		t.Fatal("expected unsorted rejection")
	}
}

func TestSeqMultipleOf(t *testing.T) {
	c := NewContainer()
	elem := c.Add(TBool{})
	seq := c.Add(&TSeq{Element: elem, Length: LengthRange{Min: 0, Max: 10}, MultipleOf: 2})
	c.SetRoot(seq)

	w := liquesco.NewWriter()
	w.WriteSeqHeader(3)
	w.WriteBool(true)
	w.WriteBool(false)
	w.WriteBool(true)
	if err := c.Validate(w.Bytes(), false); err == nil {
		t.Fatal("expected multiple-of-2 violation")
	}
}

func buildPointStruct(c *Container) TypeRef {
	i32 := c.Add(TSInt{Range: NewIntRange(-1000, 1000)})
	fields := []Field{
		{Name: identifier.Identifier{}, Type: i32},
		{Name: identifier.Identifier{}, Type: i32},
	}
	return c.Add(&TStruct{Fields: fields})
}

func TestStructStrictVsLenient(t *testing.T) {
	c := NewContainer()
	root := buildPointStruct(c)
	c.SetRoot(root)

	w := liquesco.NewWriter()
	w.WriteSeqHeader(3)
	w.WriteSInt64(1)
	w.WriteSInt64(2)
	w.WriteSInt64(3)
	data := w.Bytes()

	if err := c.Validate(data, false); err != nil {
		t.Fatalf("lenient mode should accept a trailing extension value: %v", err)
	}
	if err := c.Validate(data, true); err == nil {
		t.Fatal("strict mode should reject a trailing extension value")
	}
}

func TestEnumOrdinalAndValueCount(t *testing.T) {
	c := NewContainer()
	i32 := c.Add(TSInt{Range: NewIntRange(-100, 100)})
	none := mustIdentifier(t, "none")
	some := mustIdentifier(t, "some")
	enumRef := c.Add(&TEnum{Variants: []Variant{
		{Name: none, Values: nil},
		{Name: some, Values: []TypeRef{i32}},
	}})
	c.SetRoot(enumRef)

	w := liquesco.NewWriter()
	w.WriteEnumHeader(0, 0)
	if err := c.Validate(w.Bytes(), false); err != nil {
		t.Fatal(err)
	}

	w2 := liquesco.NewWriter()
	w2.WriteEnumHeader(1, 1)
	w2.WriteSInt64(7)
	if err := c.Validate(w2.Bytes(), false); err != nil {
		t.Fatal(err)
	}

	w3 := liquesco.NewWriter()
	w3.WriteEnumHeader(5, 0)
	if err := c.Validate(w3.Bytes(), false); err == nil {
		t.Fatal("expected ordinal-out-of-range error")
	}
}

func buildStringUintMap(c *Container, order SeqOrder, anchors bool) TypeRef {
	key := c.Add(TUInt{Range: NewIntRange(0, 1000)})
	val := c.Add(TBool{})
	return c.Add(&TMap{Key: key, Value: val, Length: LengthRange{Min: 0, Max: 10}, Order: order, Anchors: anchors})
}

func TestMapSortedKeysAccepted(t *testing.T) {
	c := NewContainer()
	root := buildStringUintMap(c, SeqAscending, false)
	c.SetRoot(root)

	w := liquesco.NewWriter()
	w.WriteSeqHeader(2)
	w.WriteSeqHeader(2)
	w.WriteUInt64(1)
	w.WriteBool(true)
	w.WriteSeqHeader(2)
	w.WriteUInt64(2)
	w.WriteBool(false)
	if err := c.Validate(w.Bytes(), false); err != nil {
		t.Fatal(err)
	}
}

func TestMapUnsortedKeysRejected(t *testing.T) {
	c := NewContainer()
	root := buildStringUintMap(c, SeqAscending, false)
	c.SetRoot(root)

	w := liquesco.NewWriter()
	w.WriteSeqHeader(2)
	w.WriteSeqHeader(2)
	w.WriteUInt64(2)
	w.WriteBool(true)
	w.WriteSeqHeader(2)
	w.WriteUInt64(1)
	w.WriteBool(false)
	if err := c.Validate(w.Bytes(), false); err == nil {
		t.Fatal("expected unsorted map keys to be rejected")
	}
}

func TestMapKeyRefResolvesAgainstAnchors(t *testing.T) {
	c := NewContainer()
	key := c.Add(TUInt{Range: NewIntRange(0, 1000)})
	keyRefType := c.Add(TKeyRef{})
	root := c.Add(&TMap{Key: key, Value: keyRefType, Length: LengthRange{Min: 0, Max: 10}, Order: SeqAscending, Anchors: true})
	c.SetRoot(root)

	w := liquesco.NewWriter()
	w.WriteSeqHeader(2) // two entries
	w.WriteSeqHeader(2)
	w.WriteUInt64(10)
	w.WriteUInt64(0) // references key at index 0 (itself)
	w.WriteSeqHeader(2)
	w.WriteUInt64(20)
	w.WriteUInt64(1)
	if err := c.Validate(w.Bytes(), false); err != nil {
		t.Fatal(err)
	}

	w2 := liquesco.NewWriter()
	w2.WriteSeqHeader(1)
	w2.WriteSeqHeader(2)
	w2.WriteUInt64(10)
	w2.WriteUInt64(5) // out of range: only 1 entry
	if err := c.Validate(w2.Bytes(), false); err == nil {
		t.Fatal("expected key-ref-out-of-range error")
	}
}

func TestKeyRefOutsideMapRejected(t *testing.T) {
	c := NewContainer()
	root := c.Add(TKeyRef{})
	c.SetRoot(root)

	w := liquesco.NewWriter()
	w.WriteUInt64(0)
	if err := c.Validate(w.Bytes(), false); err == nil {
		t.Fatal("expected key reference used outside any map to be rejected")
	}
}

func TestRangeBothInclusiveOrdering(t *testing.T) {
	c := NewContainer()
	elem := c.Add(TUInt{Range: NewIntRange(0, 1000)})
	root := c.Add(&TRange{Element: elem, Inclusion: BothInclusive, AllowEmpty: false})
	c.SetRoot(root)

	w := liquesco.NewWriter()
	w.WriteSeqHeader(2)
	w.WriteUInt64(1)
	w.WriteUInt64(5)
	if err := c.Validate(w.Bytes(), false); err != nil {
		t.Fatal(err)
	}

	wBad := liquesco.NewWriter()
	wBad.WriteSeqHeader(2)
	wBad.WriteUInt64(5)
	wBad.WriteUInt64(1)
	if err := c.Validate(wBad.Bytes(), false); err == nil {
		t.Fatal("expected start > end to be rejected")
	}

	// [3, 3] with both bounds inclusive holds the single point 3, so it is
	// not empty and AllowEmpty=false does not reject it.
	wPoint := liquesco.NewWriter()
	wPoint.WriteSeqHeader(2)
	wPoint.WriteUInt64(3)
	wPoint.WriteUInt64(3)
	if err := c.Validate(wPoint.Bytes(), false); err != nil {
		t.Fatalf("single-point range [3, 3] with both bounds inclusive should be accepted: %v", err)
	}
}

func TestRangeAllowEmpty(t *testing.T) {
	c := NewContainer()
	elem := c.Add(TUInt{Range: NewIntRange(0, 1000)})
	root := c.Add(&TRange{Element: elem, Inclusion: BothInclusive, AllowEmpty: true})
	c.SetRoot(root)

	w := liquesco.NewWriter()
	w.WriteSeqHeader(2)
	w.WriteUInt64(3)
	w.WriteUInt64(3)
	if err := c.Validate(w.Bytes(), false); err != nil {
		t.Fatal(err)
	}
}

func TestRangeSuppliedInclusionFlags(t *testing.T) {
	c := NewContainer()
	elem := c.Add(TUInt{Range: NewIntRange(0, 1000)})
	root := c.Add(&TRange{Element: elem, Inclusion: Supplied, AllowEmpty: false})
	c.SetRoot(root)

	w := liquesco.NewWriter()
	w.WriteSeqHeader(4)
	w.WriteUInt64(3)
	w.WriteUInt64(3)
	w.WriteBool(true)
	w.WriteBool(true)
	if err := c.Validate(w.Bytes(), false); err != nil {
		t.Fatalf("start==end with both inclusion flags true is a single-point range, should be allowed: %v", err)
	}
}

func TestAnyTypeKindOf(t *testing.T) {
	cases := []struct {
		t    Type
		want TypeKind
	}{
		{TBool{}, KindBoolType},
		{TUInt{}, KindUIntType},
		{TSInt{}, KindSIntType},
		{TFloat32{}, KindFloat32Type},
		{TFloat64{}, KindFloat64Type},
		{TBinary{}, KindBinaryType},
		{TUnicode{}, KindUnicodeType},
		{TUuid{}, KindUuidType},
		{TKeyRef{}, KindKeyRefType},
		{TDecimal{}, KindDecimalType},
		{&TOption{}, KindOptionType},
		{&TSeq{}, KindSeqType},
		{&TStruct{}, KindStructType},
		{&TEnum{}, KindEnumType},
		{&TMap{}, KindMapType},
		{&TRootMap{}, KindRootMapType},
		{&TRange{}, KindRangeType},
	}
	for _, tc := range cases {
		if got := KindOf(tc.t); got != tc.want {
			t.Errorf("KindOf(%T) = %v, want %v", tc.t, got, tc.want)
		}
	}
}

func TestContainerTrailingDataRejected(t *testing.T) {
	c := NewContainer()
	ref := c.Add(TBool{})
	c.SetRoot(ref)

	w := liquesco.NewWriter()
	w.WriteBool(true)
	w.WriteBool(false)
	if err := c.Validate(w.Bytes(), false); err == nil {
		t.Fatal("expected trailing data to be rejected")
	}
}

func TestDepthLimitExceeded(t *testing.T) {
	c := NewContainer()
	boolRef := c.Add(TBool{})
	seqRef := c.Add(&TSeq{Element: boolRef, Length: LengthRange{Min: 0, Max: 10}})
	nested := seqRef
	for i := 0; i < 150; i++ {
		nested = c.Add(&TSeq{Element: nested, Length: LengthRange{Min: 0, Max: 10}})
	}
	c.SetRoot(nested)

	w := liquesco.NewWriter()
	for i := 0; i < 151; i++ {
		w.WriteSeqHeader(1)
	}
	w.WriteBool(true)
	if err := c.Validate(w.Bytes(), false); err == nil {
		t.Fatal("expected maximum nesting depth to be exceeded")
	}
}
