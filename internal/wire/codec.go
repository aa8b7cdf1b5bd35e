package wire

import "errors"

// ErrTruncated indicates the input ended before a complete value could be read.
var ErrTruncated = errors.New("liquesco: unexpected end of data")

// ErrNonCanonical indicates a value was encoded using a larger content-info
// bucket than its content required. Canonical encoding is mandatory on read:
// two distinct byte strings must never describe the same logical value.
var ErrNonCanonical = errors.New("liquesco: non-canonical encoding")

// ErrEmbeddedOnLeaf indicates a leaf type (binary, unicode, integer, float,
// uuid) carried a non-zero embedded-item count.
var ErrEmbeddedOnLeaf = errors.New("liquesco: leaf type must not have embedded items")

// AppendContentDescription writes the header byte and, depending on the
// selected content-info bucket, a trailing varint self-length and/or
// embedded-item count. Callers must pass the smallest content description
// that fits their major type; this function always selects the minimal
// content-info bucket, which is what makes the encoder canonical.
func AppendContentDescription(buf []byte, major MajorType, cd ContentDescription) []byte {
	info := PickContentInfo(cd)
	buf = append(buf, NewHeaderByte(major, info).Byte())
	switch info {
	case VarInt:
		buf = AppendUvarint(buf, cd.SelfLength)
	case ContainerVarIntEmpty:
		buf = AppendUvarint(buf, uint64(cd.NumberOfEmbedded))
	case ContainerVarIntVarInt:
		buf = AppendUvarint(buf, uint64(cd.NumberOfEmbedded))
		buf = AppendUvarint(buf, cd.SelfLength)
	}
	return buf
}

// ReadHeaderByte reads the single leading byte of a wire value.
func ReadHeaderByte(data []byte) (HeaderByte, int, error) {
	if len(data) < 1 {
		return 0, 0, ErrTruncated
	}
	return HeaderByteFromByte(data[0]), 1, nil
}

// ReadContentDescriptionGivenHeader decodes the content descriptor that
// follows a header byte, given the already-decoded header. Returns the
// description and the number of bytes consumed after the header byte.
func ReadContentDescriptionGivenHeader(data []byte, h HeaderByte) (ContentDescription, int, error) {
	switch h.ContentInfo() {
	case Len0:
		return ContentDescription{}, 0, nil
	case Len1:
		return ContentDescription{SelfLength: 1}, 0, nil
	case Len2:
		return ContentDescription{SelfLength: 2}, 0, nil
	case Len4:
		return ContentDescription{SelfLength: 4}, 0, nil
	case Len8:
		return ContentDescription{SelfLength: 8}, 0, nil
	case Len16:
		return ContentDescription{SelfLength: 16}, 0, nil
	case VarInt:
		v, n, err := DecodeUvarint(data)
		if err != nil {
			return ContentDescription{}, 0, err
		}
		if v <= 16 && (v == 0 || v == 1 || v == 2 || v == 4 || v == 8 || v == 16) {
			return ContentDescription{}, 0, ErrNonCanonical
		}
		return ContentDescription{SelfLength: v}, n, nil
	case ContainerOneEmpty:
		return ContentDescription{NumberOfEmbedded: 1}, 0, nil
	case ContainerTwoEmpty:
		return ContentDescription{NumberOfEmbedded: 2}, 0, nil
	case ContainerOneOne:
		return ContentDescription{NumberOfEmbedded: 1, SelfLength: 1}, 0, nil
	case ContainerVarIntEmpty:
		v, n, err := DecodeUvarint(data)
		if err != nil {
			return ContentDescription{}, 0, err
		}
		if v <= 2 {
			return ContentDescription{}, 0, ErrNonCanonical
		}
		return ContentDescription{NumberOfEmbedded: uint32(v)}, n, nil
	case ContainerVarIntVarInt:
		count, n1, err := DecodeUvarint(data)
		if err != nil {
			return ContentDescription{}, 0, err
		}
		length, n2, err := DecodeUvarint(data[n1:])
		if err != nil {
			return ContentDescription{}, 0, err
		}
		if count == 0 || length == 0 || (count == 1 && length == 1) {
			return ContentDescription{}, 0, ErrNonCanonical
		}
		return ContentDescription{NumberOfEmbedded: uint32(count), SelfLength: length}, n1 + n2, nil
	case Reserved:
		return ContentDescription{}, 0, ErrReservedContentInfo
	default:
		return ContentDescription{}, 0, ErrReservedContentInfo
	}
}

// ReadContentDescription reads a header byte followed by its content
// descriptor. Returns the header, the description, and the total bytes
// consumed.
func ReadContentDescription(data []byte) (HeaderByte, ContentDescription, int, error) {
	h, n0, err := ReadHeaderByte(data)
	if err != nil {
		return 0, ContentDescription{}, 0, err
	}
	cd, n1, err := ReadContentDescriptionGivenHeader(data[n0:], h)
	if err != nil {
		return 0, ContentDescription{}, 0, err
	}
	return h, cd, n0 + n1, nil
}

// Skip advances past one complete wire value (header, content descriptor,
// self bytes, and recursively every embedded item) without any schema
// knowledge. This is the only schema-free traversal primitive: it relies
// solely on the self-describing content descriptor.
func Skip(data []byte) (int, error) {
	_, cd, n, err := ReadContentDescription(data)
	if err != nil {
		return 0, err
	}
	pos := n
	if cd.SelfLength > 0 {
		end := pos + int(cd.SelfLength)
		if end < pos || end > len(data) {
			return 0, ErrTruncated
		}
		pos = end
	}
	for i := uint32(0); i < cd.NumberOfEmbedded; i++ {
		consumed, err := Skip(data[pos:])
		if err != nil {
			return 0, err
		}
		pos += consumed
	}
	return pos, nil
}
