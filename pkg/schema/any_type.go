package schema

import "fmt"

// TypeKind identifies which of LQ's 18 schema type kinds a Type value is.
// This is the dispatcher's tag: every concrete type in this package already
// satisfies the Type interface directly (Go's dynamic dispatch covers
// validate/compare/reference without a hand-written switch per operation),
// but the schema-of-schemas and any other code that must serialize *which*
// kind a node is — rather than merely invoke it — needs this enumeration,
// matching the closed tagged union the source format dispatches over.
type TypeKind int

const (
	KindBoolType TypeKind = iota
	KindOptionType
	KindSeqType
	KindBinaryType
	KindUnicodeType
	KindUIntType
	KindSIntType
	KindFloat32Type
	KindFloat64Type
	KindEnumType
	KindStructType
	KindMapType
	KindRootMapType
	KindKeyRefType
	KindAsciiType
	KindUuidType
	KindRangeType
	KindDecimalType
)

func (k TypeKind) String() string {
	switch k {
	case KindBoolType:
		return "bool"
	case KindOptionType:
		return "option"
	case KindSeqType:
		return "seq"
	case KindBinaryType:
		return "binary"
	case KindUnicodeType:
		return "unicode"
	case KindUIntType:
		return "uint"
	case KindSIntType:
		return "sint"
	case KindFloat32Type:
		return "float32"
	case KindFloat64Type:
		return "float64"
	case KindEnumType:
		return "enum"
	case KindStructType:
		return "struct"
	case KindMapType:
		return "map"
	case KindRootMapType:
		return "root_map"
	case KindKeyRefType:
		return "key_ref"
	case KindAsciiType:
		return "ascii"
	case KindUuidType:
		return "uuid"
	case KindRangeType:
		return "range"
	case KindDecimalType:
		return "decimal"
	default:
		return "unknown"
	}
}

// KindOf reports which TypeKind a concrete Type value is. It panics on a
// Type implementation outside this package's closed set, since the set of
// schema type kinds is fixed by design.
func KindOf(t Type) TypeKind {
	switch t.(type) {
	case TBool:
		return KindBoolType
	case *TOption:
		return KindOptionType
	case *TSeq:
		return KindSeqType
	case TBinary:
		return KindBinaryType
	case TUnicode:
		return KindUnicodeType
	case TUInt:
		return KindUIntType
	case TSInt:
		return KindSIntType
	case TFloat32:
		return KindFloat32Type
	case TFloat64:
		return KindFloat64Type
	case *TEnum:
		return KindEnumType
	case *TStruct:
		return KindStructType
	case *TMap:
		return KindMapType
	case *TRootMap:
		return KindRootMapType
	case TKeyRef:
		return KindKeyRefType
	case TAscii:
		return KindAsciiType
	case TUuid:
		return KindUuidType
	case *TRange:
		return KindRangeType
	case TDecimal:
		return KindDecimalType
	default:
		panic(fmt.Sprintf("liquesco: %T is not a member of the schema type kind union", t))
	}
}
