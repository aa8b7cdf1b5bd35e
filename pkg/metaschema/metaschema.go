// Package metaschema builds the LQ schema that describes LQ schemas
// themselves: a schema-of-schemas, built with the exact same Container/Type
// construction API ordinary domain schemas use (pkg/schema never exposes a
// privileged "schema language" — a schema for schemas is just another
// schema).
package metaschema

import (
	"github.com/blockberries/liquesco/pkg/identifier"
	"github.com/blockberries/liquesco/pkg/schema"
)

// Kind names mirror schema.TypeKind's String() form and become the variant
// names of the meta-schema's TypeDescriptor enum below.
var kindNames = []string{
	"bool", "option", "seq", "binary", "unicode", "uint", "sint",
	"float32", "float64", "enum", "struct", "map", "root_map",
	"key_ref", "ascii", "uuid", "range", "decimal",
}

func mustName(s string) identifier.Identifier {
	parsed, err := identifier.Parse(s)
	if err != nil {
		panic(err)
	}
	return parsed
}

// BuildSchema constructs the meta-schema: a Container whose root type,
// ContainerDescriptor, describes an LQ schema container as data — a Seq of
// TypeDescriptor entries (one per schema type in the described container)
// plus a root index.
//
// TypeDescriptor only carries parameters for UInt, SInt, Option and Seq; the
// remaining fourteen kinds, Bool among them, are represented as
// parameterless variants. A fully faithful bootstrap would give every kind its own
// parameter struct (mirroring every field of every T* type in pkg/schema),
// but that is a mechanical expansion of this same pattern, not a different
// one — see the design ledger for the explicit scope decision.
func BuildSchema() *schema.Container {
	c := schema.NewContainer()

	uintIndex := c.Add(schema.TUInt{Range: schema.NewIntRange(0, 1<<32-1)})
	sintFull := c.Add(schema.TSInt{Range: schema.NewIntRange(minInt64, maxInt64)})

	uintRangeParams := c.Add(&schema.TStruct{Fields: []schema.Field{
		{Name: mustName("min"), Type: uintIndex},
		{Name: mustName("max"), Type: uintIndex},
	}})
	sintRangeParams := c.Add(&schema.TStruct{Fields: []schema.Field{
		{Name: mustName("min"), Type: sintFull},
		{Name: mustName("max"), Type: sintFull},
	}})
	optionParams := c.Add(&schema.TStruct{Fields: []schema.Field{
		{Name: mustName("inner"), Type: uintIndex},
	}})
	seqParams := c.Add(&schema.TStruct{Fields: []schema.Field{
		{Name: mustName("element"), Type: uintIndex},
		{Name: mustName("min_length"), Type: uintIndex},
		{Name: mustName("max_length"), Type: uintIndex},
	}})

	paramsFor := map[string]schema.TypeRef{
		"uint":   uintRangeParams,
		"sint":   sintRangeParams,
		"option": optionParams,
		"seq":    seqParams,
	}

	variants := make([]schema.Variant, 0, len(kindNames))
	for _, name := range kindNames {
		v := schema.Variant{Name: mustName(name)}
		if ref, ok := paramsFor[name]; ok {
			v.Values = []schema.TypeRef{ref}
		}
		variants = append(variants, v)
	}
	typeDescriptor := c.Add(&schema.TEnum{Variants: variants})

	typeDescriptorList := c.Add(&schema.TSeq{
		Element: typeDescriptor,
		Length:  schema.LengthRange{Min: 1, Max: 1 << 16},
	})

	containerDescriptor := c.Add(&schema.TStruct{Fields: []schema.Field{
		{Name: mustName("types"), Type: typeDescriptorList},
		{Name: mustName("root"), Type: uintIndex},
	}})

	c.SetRoot(containerDescriptor)
	return c
}

const (
	minInt64 = -1 << 63
	maxInt64 = 1<<63 - 1
)
