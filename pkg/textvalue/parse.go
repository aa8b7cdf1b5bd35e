package textvalue

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"

	"github.com/google/uuid"

	"github.com/blockberries/liquesco/pkg/identifier"
	"github.com/blockberries/liquesco/pkg/liquesco"
	"github.com/blockberries/liquesco/pkg/schema"
)

// Context carries the schema container a parse is running against, so a
// composite type's parser can recurse into its element/field/variant types
// by TypeRef.
type Context struct {
	Container *schema.Container
}

// Dispatch resolves ref in ctx's container and appends v's wire encoding
// for that type to w. It is the single recursive entry point every
// composite parser (Option, Seq, Struct, Enum, Map, RootMap, Range) calls
// for its children.
func Dispatch(ctx *Context, w *liquesco.Writer, v *Value, ref schema.TypeRef) error {
	t, err := ctx.Container.Resolve(ref)
	if err != nil {
		return wrapErr(v, err)
	}
	switch schema.KindOf(t) {
	case schema.KindBoolType:
		return parseBool(w, v)
	case schema.KindUIntType:
		return parseUInt(w, v)
	case schema.KindSIntType:
		return parseSInt(w, v)
	case schema.KindFloat32Type:
		return parseFloat32(w, v)
	case schema.KindFloat64Type:
		return parseFloat64(w, v)
	case schema.KindBinaryType:
		return parseBinary(w, v)
	case schema.KindUnicodeType, schema.KindAsciiType:
		return parseText(w, v)
	case schema.KindUuidType:
		return parseUuid(w, v)
	case schema.KindKeyRefType:
		return parseKeyRef(w, v)
	case schema.KindDecimalType:
		return parseDecimal(w, v)
	case schema.KindOptionType:
		return parseOption(ctx, w, v, t.(*schema.TOption))
	case schema.KindSeqType:
		return parseSeq(ctx, w, v, t.(*schema.TSeq))
	case schema.KindStructType:
		return parseStruct(ctx, w, v, t.(*schema.TStruct))
	case schema.KindEnumType:
		return parseEnum(ctx, w, v, t.(*schema.TEnum))
	case schema.KindMapType:
		return parseMap(ctx, w, v, t.(*schema.TMap))
	case schema.KindRootMapType:
		return parseRootMap(ctx, w, v, t.(*schema.TRootMap))
	case schema.KindRangeType:
		return parseRange(ctx, w, v, t.(*schema.TRange))
	default:
		return wrapErr(v, fmt.Errorf("textvalue: no parser registered for schema kind %v", schema.KindOf(t)))
	}
}

// ParseAndValidate runs Dispatch over the container's root type, then
// re-validates the written bytes against the same schema — catching any
// constraint the text front-end itself did not enforce (ordering,
// uniqueness, ranges), per the "parse first, validate after" division of
// labor between this package and pkg/schema.
func ParseAndValidate(c *schema.Container, v *Value, strict bool) ([]byte, error) {
	w := liquesco.NewWriter()
	ctx := &Context{Container: c}
	if err := Dispatch(ctx, w, v, c.Root()); err != nil {
		return nil, err
	}
	if err := w.Err(); err != nil {
		return nil, err
	}
	data := w.BytesCopy()
	if err := c.Validate(data, strict); err != nil {
		return nil, err
	}
	return data, nil
}

func parseBool(w *liquesco.Writer, v *Value) error {
	b, ok := v.AsBool()
	if !ok {
		return wrapErr(v, ErrWrongKind)
	}
	w.WriteBool(b)
	return nil
}

func parseUInt(w *liquesco.Writer, v *Value) error {
	n, ok := v.AsI64()
	if !ok {
		return wrapErr(v, ErrWrongKind)
	}
	if n < 0 {
		return wrapErr(v, fmt.Errorf("textvalue: negative value %d is not a valid uint", n))
	}
	w.WriteUInt64(uint64(n))
	return nil
}

func parseSInt(w *liquesco.Writer, v *Value) error {
	n, ok := v.AsI64()
	if !ok {
		return wrapErr(v, ErrWrongKind)
	}
	w.WriteSInt64(n)
	return nil
}

func parseFloatText(v *Value) (float64, bool) {
	s, ok := v.AsText()
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

func parseFloat32(w *liquesco.Writer, v *Value) error {
	if n, ok := v.AsI64(); ok {
		w.WriteFloat32(float32(n))
		return nil
	}
	if f, ok := parseFloatText(v); ok {
		w.WriteFloat32(float32(f))
		return nil
	}
	return wrapErr(v, ErrWrongKind)
}

func parseFloat64(w *liquesco.Writer, v *Value) error {
	if n, ok := v.AsI64(); ok {
		w.WriteFloat64(float64(n))
		return nil
	}
	if f, ok := parseFloatText(v); ok {
		w.WriteFloat64(f)
		return nil
	}
	return wrapErr(v, ErrWrongKind)
}

func parseBinary(w *liquesco.Writer, v *Value) error {
	s, ok := v.AsText()
	if !ok {
		return wrapErr(v, ErrWrongKind)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return wrapErr(v, fmt.Errorf("textvalue: binary text must be hex-encoded: %w", err))
	}
	w.WriteBinary(b)
	return nil
}

func parseText(w *liquesco.Writer, v *Value) error {
	s, ok := v.AsText()
	if !ok {
		return wrapErr(v, ErrWrongKind)
	}
	w.WriteUnicode(s)
	return nil
}

func parseUuid(w *liquesco.Writer, v *Value) error {
	s, ok := v.AsText()
	if !ok {
		return wrapErr(v, ErrWrongKind)
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return wrapErr(v, fmt.Errorf("%w: %v", ErrMalformedUuid, err))
	}
	var raw [16]byte
	copy(raw[:], id[:])
	w.WriteUuid(raw)
	return nil
}

func parseKeyRef(w *liquesco.Writer, v *Value) error {
	n, ok := v.AsI64()
	if !ok || n < 0 {
		return wrapErr(v, ErrWrongKind)
	}
	w.WriteUInt64(uint64(n))
	return nil
}

func parseDecimal(w *liquesco.Writer, v *Value) error {
	elems, ok := v.AsSeq()
	if !ok || len(elems) != 2 {
		return wrapErr(v, fmt.Errorf("%w: decimal must be a 2-element seq [coefficient, exponent]", ErrWrongKind))
	}
	coeff, ok := elems[0].AsI64()
	if !ok {
		return wrapErr(elems[0], ErrWrongKind)
	}
	exp, ok := elems[1].AsI64()
	if !ok {
		return wrapErr(elems[1], ErrWrongKind)
	}
	w.WriteSeqHeader(2)
	w.WriteSInt128(big.NewInt(coeff))
	w.WriteSInt128(big.NewInt(exp))
	return nil
}

func parseOption(ctx *Context, w *liquesco.Writer, v *Value, t *schema.TOption) error {
	if v.Kind() == KindNothing {
		w.WriteOptionPresence(false)
		return nil
	}
	w.WriteOptionPresence(true)
	return Dispatch(ctx, w, v, t.Inner)
}

func parseSeq(ctx *Context, w *liquesco.Writer, v *Value, t *schema.TSeq) error {
	elems, ok := v.AsSeq()
	if !ok {
		return wrapErr(v, ErrWrongKind)
	}
	w.WriteSeqHeader(len(elems))
	for _, e := range elems {
		if err := Dispatch(ctx, w, e, t.Element); err != nil {
			return err
		}
	}
	return nil
}

func parseStruct(ctx *Context, w *liquesco.Writer, v *Value, t *schema.TStruct) error {
	elems, ok := v.AsSeq()
	if !ok {
		return wrapErr(v, ErrWrongKind)
	}
	if len(elems) != len(t.Fields) {
		return wrapErr(v, fmt.Errorf("textvalue: struct has %d fields, text value supplies %d", len(t.Fields), len(elems)))
	}
	w.WriteSeqHeader(len(elems))
	for i, f := range t.Fields {
		if err := Dispatch(ctx, w, elems[i], f.Type); err != nil {
			return err
		}
	}
	return nil
}

func parseEnum(ctx *Context, w *liquesco.Writer, v *Value, t *schema.TEnum) error {
	elems, ok := v.AsSeq()
	if !ok || len(elems) < 1 {
		return wrapErr(v, fmt.Errorf("%w: enum must be a seq [variant_name, values...]", ErrWrongKind))
	}
	name, ok := elems[0].AsText()
	if !ok {
		return wrapErr(elems[0], fmt.Errorf("%w: enum variant name must be text", ErrWrongKind))
	}
	id, err := identifier.Parse(name)
	if err != nil {
		return wrapErr(elems[0], err)
	}
	ordinal, variant, ok := t.VariantByName(id)
	if !ok {
		return wrapErr(elems[0], fmt.Errorf("%w: %q", ErrNoSuchVariant, name))
	}
	values := elems[1:]
	if len(values) != len(variant.Values) {
		return wrapErr(v, fmt.Errorf("textvalue: variant %q declares %d values, text value supplies %d", name, len(variant.Values), len(values)))
	}
	w.WriteEnumHeader(ordinal, len(values))
	for i, vt := range variant.Values {
		if err := Dispatch(ctx, w, values[i], vt); err != nil {
			return err
		}
	}
	return nil
}

func parseEntry(ctx *Context, w *liquesco.Writer, v *Value, keyType, valueType schema.TypeRef) error {
	pair, ok := v.AsSeq()
	if !ok || len(pair) != 2 {
		return wrapErr(v, fmt.Errorf("%w: map entry must be a 2-element seq [key, value]", ErrWrongKind))
	}
	w.WriteSeqHeader(2)
	if err := Dispatch(ctx, w, pair[0], keyType); err != nil {
		return err
	}
	return Dispatch(ctx, w, pair[1], valueType)
}

func parseMap(ctx *Context, w *liquesco.Writer, v *Value, t *schema.TMap) error {
	entries, ok := v.AsSeq()
	if !ok {
		return wrapErr(v, ErrWrongKind)
	}
	w.WriteSeqHeader(len(entries))
	for _, e := range entries {
		if err := parseEntry(ctx, w, e, t.Key, t.Value); err != nil {
			return err
		}
	}
	return nil
}

func parseRootMap(ctx *Context, w *liquesco.Writer, v *Value, t *schema.TRootMap) error {
	elems, ok := v.AsSeq()
	if !ok || len(elems) != 2 {
		return wrapErr(v, fmt.Errorf("%w: root map must be a 2-element seq [root, entries]", ErrWrongKind))
	}
	entries, ok := elems[1].AsSeq()
	if !ok {
		return wrapErr(elems[1], ErrWrongKind)
	}
	w.WriteSeqHeader(2)
	if err := Dispatch(ctx, w, elems[0], t.Root); err != nil {
		return err
	}
	w.WriteSeqHeader(len(entries))
	for _, e := range entries {
		if err := parseEntry(ctx, w, e, t.Key, t.Value); err != nil {
			return err
		}
	}
	return nil
}

func parseRange(ctx *Context, w *liquesco.Writer, v *Value, t *schema.TRange) error {
	elems, ok := v.AsSeq()
	if !ok {
		return wrapErr(v, ErrWrongKind)
	}
	supplied := t.Inclusion == schema.Supplied
	want := 2
	if supplied {
		want = 4
	}
	if len(elems) != want {
		return wrapErr(v, fmt.Errorf("textvalue: range with this inclusion mode needs %d elements, got %d", want, len(elems)))
	}
	w.WriteSeqHeader(want)
	if err := Dispatch(ctx, w, elems[0], t.Element); err != nil {
		return err
	}
	if err := Dispatch(ctx, w, elems[1], t.Element); err != nil {
		return err
	}
	if supplied {
		startInclusive, ok := elems[2].AsBool()
		if !ok {
			return wrapErr(elems[2], ErrWrongKind)
		}
		endInclusive, ok := elems[3].AsBool()
		if !ok {
			return wrapErr(elems[3], ErrWrongKind)
		}
		w.WriteBool(startInclusive)
		w.WriteBool(endInclusive)
	}
	return nil
}
