package wire

import "errors"

// MajorType is the high-level category of a wire value, packed into every
// header byte. Valid range is [0, 24].
type MajorType uint8

// Stable major-type assignments (spec.md §6).
const (
	TypeBoolFalse MajorType = 0
	TypeBoolTrue  MajorType = 1
	TypeOption    MajorType = 2
	TypeSeq       MajorType = 3
	TypeBinary    MajorType = 4
	TypeUnicode   MajorType = 5
	TypeEnum0     MajorType = 6
	TypeEnum1     MajorType = 7
	TypeEnum2     MajorType = 8
	TypeEnumN     MajorType = 9
	TypeUInt      MajorType = 10
	TypeSInt      MajorType = 11
	TypeFloat     MajorType = 12
	TypeUuid      MajorType = 13

	MaxMajorType MajorType = 24
)

// ContentInfo describes the shape of a value's content descriptor: how many
// self bytes it occupies and how many embedded items follow. Allowed range
// is [0, 12] (13 variants).
type ContentInfo uint8

const (
	// Len0 is an item with no self bytes and no embedded items.
	Len0 ContentInfo = iota
	// Len1 is an item with a 1-byte self length and no embedded items.
	Len1
	// Len2 is an item with a 2-byte self length and no embedded items.
	Len2
	// Len4 is an item with a 4-byte self length and no embedded items.
	Len4
	// Len8 is an item with an 8-byte self length and no embedded items.
	Len8
	// Len16 is an item with a 16-byte self length and no embedded items.
	Len16
	// VarInt is an item whose self length is itself varint-encoded.
	VarInt
	// ContainerOneEmpty has exactly 1 embedded item and 0 self bytes.
	ContainerOneEmpty
	// ContainerTwoEmpty has exactly 2 embedded items and 0 self bytes.
	ContainerTwoEmpty
	// ContainerOneOne has exactly 1 embedded item and 1 self byte.
	ContainerOneOne
	// ContainerVarIntEmpty has a varint-encoded embedded item count and 0 self bytes.
	ContainerVarIntEmpty
	// ContainerVarIntVarInt has a varint-encoded embedded item count and a
	// varint-encoded self length.
	ContainerVarIntVarInt
	// Reserved must never be produced by an encoder; decoding it is an error.
	Reserved
)

// headerFactor is the multiplier used to pack major type and content info
// into a single header byte: H = major*headerFactor + contentInfo.
const headerFactor = 13

// ErrReservedContentInfo indicates the decoder encountered the reserved
// content-info value, which must never appear in valid LQ data.
var ErrReservedContentInfo = errors.New("liquesco: reserved content info encountered")

// ErrMajorTypeOutOfRange indicates a major type greater than MaxMajorType.
var ErrMajorTypeOutOfRange = errors.New("liquesco: major type out of range")

// HeaderByte packs a MajorType and a ContentInfo into the single leading
// byte of every wire value.
type HeaderByte uint8

// NewHeaderByte packs major and info into a HeaderByte.
func NewHeaderByte(major MajorType, info ContentInfo) HeaderByte {
	return HeaderByte(uint8(major)*headerFactor + uint8(info))
}

// HeaderByteFromByte reinterprets a raw byte as a HeaderByte. No validation
// is performed here; MajorType/ContentInfo extraction happens on demand.
func HeaderByteFromByte(b byte) HeaderByte { return HeaderByte(b) }

// Byte returns the raw encoded byte.
func (h HeaderByte) Byte() byte { return byte(h) }

// MajorType extracts the major type.
func (h HeaderByte) MajorType() MajorType { return MajorType(uint8(h) / headerFactor) }

// ContentInfo extracts the content info.
func (h HeaderByte) ContentInfo() ContentInfo { return ContentInfo(uint8(h) % headerFactor) }

// ContentDescription describes how many self bytes and embedded items follow
// a header byte.
type ContentDescription struct {
	SelfLength         uint64
	NumberOfEmbedded   uint32
}

// PickContentInfo selects the smallest content-info bucket that can encode
// the given content description, enforcing wire canonicality (spec.md §4.1).
func PickContentInfo(cd ContentDescription) ContentInfo {
	switch {
	case cd.NumberOfEmbedded == 0:
		switch cd.SelfLength {
		case 0:
			return Len0
		case 1:
			return Len1
		case 2:
			return Len2
		case 4:
			return Len4
		case 8:
			return Len8
		case 16:
			return Len16
		default:
			return VarInt
		}
	case cd.SelfLength == 0 && cd.NumberOfEmbedded == 1:
		return ContainerOneEmpty
	case cd.SelfLength == 0 && cd.NumberOfEmbedded == 2:
		return ContainerTwoEmpty
	case cd.SelfLength == 1 && cd.NumberOfEmbedded == 1:
		return ContainerOneOne
	case cd.SelfLength == 0:
		return ContainerVarIntEmpty
	default:
		return ContainerVarIntVarInt
	}
}
