package textvalue

import (
	"testing"

	"github.com/blockberries/liquesco/pkg/identifier"
	"github.com/blockberries/liquesco/pkg/schema"
)

func TestParseBoolAndValidate(t *testing.T) {
	c := schema.NewContainer()
	c.SetRoot(c.Add(schema.TBool{}))

	data, err := ParseAndValidate(c, Bool(true), false)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty encoded output")
	}
}

func TestParseUIntRejectsNegative(t *testing.T) {
	c := schema.NewContainer()
	c.SetRoot(c.Add(schema.TUInt{Range: schema.NewIntRange(0, 100)}))

	if _, err := ParseAndValidate(c, I64(-1), false); err == nil {
		t.Fatal("expected negative value to be rejected for an unsigned schema type")
	}
}

func TestParseOptionNothingAndPresent(t *testing.T) {
	c := schema.NewContainer()
	inner := c.Add(schema.TSInt{Range: schema.NewIntRange(-10, 10)})
	c.SetRoot(c.Add(&schema.TOption{Inner: inner}))

	if _, err := ParseAndValidate(c, Nothing(), false); err != nil {
		t.Fatal(err)
	}
	if _, err := ParseAndValidate(c, I64(5), false); err != nil {
		t.Fatalf("expected a bare I64 (not the Nothing marker) to parse as present+value: %v", err)
	}
}

func TestParseSeqOfInts(t *testing.T) {
	c := schema.NewContainer()
	elem := c.Add(schema.TSInt{Range: schema.NewIntRange(-100, 100)})
	c.SetRoot(c.Add(&schema.TSeq{Element: elem, Length: schema.LengthRange{Min: 0, Max: 10}}))

	_, err := ParseAndValidate(c, Seq(I64(1), I64(2), I64(3)), false)
	if err != nil {
		t.Fatal(err)
	}
}

func TestParseStructArityMismatch(t *testing.T) {
	c := schema.NewContainer()
	i := c.Add(schema.TSInt{Range: schema.NewIntRange(-10, 10)})
	c.SetRoot(c.Add(&schema.TStruct{Fields: []schema.Field{{Type: i}, {Type: i}}}))

	if _, err := ParseAndValidate(c, Seq(I64(1)), false); err == nil {
		t.Fatal("expected field-count mismatch to be rejected")
	}
	if _, err := ParseAndValidate(c, Seq(I64(1), I64(2)), false); err != nil {
		t.Fatal(err)
	}
}

func TestParseEnumByVariantName(t *testing.T) {
	c := schema.NewContainer()
	i := c.Add(schema.TSInt{Range: schema.NewIntRange(-100, 100)})
	noneID := mustID(t, "none")
	someID := mustID(t, "some")
	c.SetRoot(c.Add(&schema.TEnum{Variants: []schema.Variant{
		{Name: noneID, Values: nil},
		{Name: someID, Values: []schema.TypeRef{i}},
	}}))

	if _, err := ParseAndValidate(c, Seq(Text("none")), false); err != nil {
		t.Fatal(err)
	}
	if _, err := ParseAndValidate(c, Seq(Text("some"), I64(7)), false); err != nil {
		t.Fatal(err)
	}
	if _, err := ParseAndValidate(c, Seq(Text("missing")), false); err == nil {
		t.Fatal("expected unknown variant name to be rejected")
	}
}

func TestParseMapEntries(t *testing.T) {
	c := schema.NewContainer()
	key := c.Add(schema.TUInt{Range: schema.NewIntRange(0, 100)})
	val := c.Add(schema.TBool{})
	c.SetRoot(c.Add(&schema.TMap{Key: key, Value: val, Length: schema.LengthRange{Min: 0, Max: 10}, Order: schema.SeqAscending}))

	_, err := ParseAndValidate(c, Seq(
		Seq(I64(1), Bool(true)),
		Seq(I64(2), Bool(false)),
	), false)
	if err != nil {
		t.Fatal(err)
	}
}

func TestParseMapEntriesWrongOrderFailsValidation(t *testing.T) {
	c := schema.NewContainer()
	key := c.Add(schema.TUInt{Range: schema.NewIntRange(0, 100)})
	val := c.Add(schema.TBool{})
	c.SetRoot(c.Add(&schema.TMap{Key: key, Value: val, Length: schema.LengthRange{Min: 0, Max: 10}, Order: schema.SeqAscending}))

	_, err := ParseAndValidate(c, Seq(
		Seq(I64(2), Bool(false)),
		Seq(I64(1), Bool(true)),
	), false)
	if err == nil {
		t.Fatal("expected the post-parse schema validation pass to catch the out-of-order keys")
	}
}

func mustID(t *testing.T, s string) identifier.Identifier {
	t.Helper()
	id, err := identifier.Parse(s)
	if err != nil {
		t.Fatalf("parsing identifier %q: %v", s, err)
	}
	return id
}
