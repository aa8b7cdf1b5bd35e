package schema

import (
	"math"
	"math/big"
	"testing"

	"github.com/blockberries/liquesco/pkg/liquesco"
)

func encodeBool(v bool) []byte {
	w := liquesco.NewWriter()
	w.WriteBool(v)
	return w.Bytes()
}

func TestBoolValidate(t *testing.T) {
	c := NewContainer()
	ref := c.Add(TBool{})
	c.SetRoot(ref)
	if err := c.Validate(encodeBool(true), false); err != nil {
		t.Fatal(err)
	}
}

func TestUIntRangeValidate(t *testing.T) {
	c := NewContainer()
	ref := c.Add(TUInt{Range: NewIntRange(0, 100)})
	c.SetRoot(ref)

	w := liquesco.NewWriter()
	w.WriteUInt64(50)
	if err := c.Validate(w.Bytes(), false); err != nil {
		t.Fatal(err)
	}

	w2 := liquesco.NewWriter()
	w2.WriteUInt64(101)
	if err := c.Validate(w2.Bytes(), false); err == nil {
		t.Fatal("expected out-of-range error")
	}
}

func TestSIntRangeValidate(t *testing.T) {
	c := NewContainer()
	ref := c.Add(TSInt{Range: NewIntRange(-10, 10)})
	c.SetRoot(ref)

	w := liquesco.NewWriter()
	w.WriteSInt64(-11)
	if err := c.Validate(w.Bytes(), false); err == nil {
		t.Fatal("expected out-of-range error")
	}
}

func TestFloatTotalOrderCompare(t *testing.T) {
	values := []float64{math.NaN(), math.Inf(-1), -1.5, math.Copysign(0, -1), 0, 1.5, math.Inf(1)}
	for i := 0; i < len(values)-1; i++ {
		cmp := compareFloat64(values[i], values[i+1])
		if cmp >= 0 {
			t.Errorf("expected %v < %v, got cmp=%d", values[i], values[i+1], cmp)
		}
	}
	if compareFloat64(math.NaN(), math.NaN()) != 0 {
		t.Error("expected NaN == NaN under total order")
	}
}

func TestFloat64ValidateFlags(t *testing.T) {
	c := NewContainer()
	ref := c.Add(TFloat64{Range: FloatRange{Min: 0, Max: 100}, AllowNaN: false})
	c.SetRoot(ref)

	w := liquesco.NewWriter()
	w.WriteFloat64(math.NaN())
	if err := c.Validate(w.Bytes(), false); err == nil {
		t.Fatal("expected NaN to be rejected when AllowNaN is false")
	}

	c2 := NewContainer()
	ref2 := c2.Add(TFloat64{Range: FloatRange{Min: 0, Max: 100}, AllowNaN: true})
	c2.SetRoot(ref2)
	if err := c2.Validate(w.Bytes(), false); err != nil {
		t.Fatalf("expected NaN to be accepted when AllowNaN is true: %v", err)
	}
}

func TestFloat64NegativeZeroFlag(t *testing.T) {
	w := liquesco.NewWriter()
	w.WriteFloat64(math.Copysign(0, -1))

	c := NewContainer()
	ref := c.Add(TFloat64{Range: FloatRange{Min: -1, Max: 1}, AllowNegativeZero: false})
	c.SetRoot(ref)
	if err := c.Validate(w.Bytes(), false); err == nil {
		t.Fatal("expected -0 to be rejected when AllowNegativeZero is false")
	}
}

func TestBinaryLengthValidate(t *testing.T) {
	c := NewContainer()
	ref := c.Add(TBinary{Length: LengthRange{Min: 2, Max: 4}})
	c.SetRoot(ref)

	w := liquesco.NewWriter()
	w.WriteBinary([]byte{1})
	if err := c.Validate(w.Bytes(), false); err == nil {
		t.Fatal("expected length-too-short error")
	}

	w2 := liquesco.NewWriter()
	w2.WriteBinary([]byte{1, 2, 3})
	if err := c.Validate(w2.Bytes(), false); err != nil {
		t.Fatal(err)
	}
}

func TestUnicodeScalarLength(t *testing.T) {
	c := NewContainer()
	ref := c.Add(TUnicode{Length: LengthRange{Min: 1, Max: 3}, LengthType: LengthScalarValues})
	c.SetRoot(ref)

	w := liquesco.NewWriter()
	w.WriteUnicode("héllo") // 5 scalar values, exceeds max of 3
	if err := c.Validate(w.Bytes(), false); err == nil {
		t.Fatal("expected scalar-count-too-long error")
	}
}

func TestAsciiCodeRangeValidate(t *testing.T) {
	c := NewContainer()
	ref := c.Add(NewTAscii(LengthRange{Min: 1, Max: 30}, []CodeRange{{Start: 'a', End: 'z' + 1}, {Start: '0', End: '9' + 1}}))
	c.SetRoot(ref)

	w := liquesco.NewWriter()
	w.WriteUnicode("abc123")
	if err := c.Validate(w.Bytes(), false); err != nil {
		t.Fatal(err)
	}

	w2 := liquesco.NewWriter()
	w2.WriteUnicode("ABC")
	if err := c.Validate(w2.Bytes(), false); err == nil {
		t.Fatal("expected uppercase to be rejected by the declared ascii ranges")
	}
}

func TestUuidValidate(t *testing.T) {
	c := NewContainer()
	ref := c.Add(TUuid{})
	c.SetRoot(ref)

	var id [16]byte
	w := liquesco.NewWriter()
	w.WriteUuid(id)
	if err := c.Validate(w.Bytes(), false); err != nil {
		t.Fatal(err)
	}
}

func TestDecimalValidateAndCompare(t *testing.T) {
	c := NewContainer()
	ref := c.Add(TDecimal{
		CoefficientRange: NewIntRange(-1000, 1000),
		ExponentRange:    NewIntRange(-10, 10),
	})
	c.SetRoot(ref)

	w := liquesco.NewWriter()
	w.WriteSeqHeader(2)
	w.WriteSInt128(big.NewInt(125))
	w.WriteSInt128(big.NewInt(-2))
	data := w.Bytes()
	if err := c.Validate(data, false); err != nil {
		t.Fatal(err)
	}

	w2 := liquesco.NewWriter()
	w2.WriteSeqHeader(2)
	w2.WriteSInt128(big.NewInt(2000))
	w2.WriteSInt128(big.NewInt(-2))
	if err := c.Validate(w2.Bytes(), false); err == nil {
		t.Fatal("expected coefficient-out-of-range error")
	}

	// 125 * 10^-2 (1.25) vs 125 * 10^-1 (12.5): same coefficient, different
	// negative exponents, must compare by scaled magnitude, not raw coefficient.
	decimal, err := c.Resolve(ref)
	if err != nil {
		t.Fatal(err)
	}
	ctx := NewValidationContext(c, liquesco.NewReader(nil), false)
	cmp, err := decimal.Compare(ctx, liquesco.NewReader(data), liquesco.NewReader(w.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if cmp != 0 {
		t.Fatalf("125e-2 compared against itself = %d, want 0", cmp)
	}

	wSmaller := liquesco.NewWriter()
	wSmaller.WriteSeqHeader(2)
	wSmaller.WriteSInt128(big.NewInt(125))
	wSmaller.WriteSInt128(big.NewInt(-2)) // 1.25

	wLarger := liquesco.NewWriter()
	wLarger.WriteSeqHeader(2)
	wLarger.WriteSInt128(big.NewInt(125))
	wLarger.WriteSInt128(big.NewInt(-1)) // 12.5

	cmp, err = decimal.Compare(ctx, liquesco.NewReader(wSmaller.Bytes()), liquesco.NewReader(wLarger.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if cmp >= 0 {
		t.Fatalf("1.25 vs 12.5 compared as %d, want < 0", cmp)
	}

	cmp, err = decimal.Compare(ctx, liquesco.NewReader(wLarger.Bytes()), liquesco.NewReader(wSmaller.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if cmp <= 0 {
		t.Fatalf("12.5 vs 1.25 compared as %d, want > 0", cmp)
	}
}
