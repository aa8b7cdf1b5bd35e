package wire

import (
	"errors"
	"math/big"
)

// ErrIntegerTooLarge indicates a value needs more than 128 bits to represent,
// which is outside the range this format's UInt/SInt types support.
var ErrIntegerTooLarge = errors.New("liquesco: integer exceeds 128 bits")

// ErrIntegerWidth indicates a decoded integer's self-length was not one of
// the fixed widths {1, 2, 4, 8, 16} bytes that UInt/SInt require.
var ErrIntegerWidth = errors.New("liquesco: integer has invalid encoded width")

// intWidths are the only self-lengths UInt/SInt ever produce or accept
// (spec.md §4.2: "Len1/2/4/8/16").
var intWidths = [5]int{1, 2, 4, 8, 16}

// fixedWidth returns the smallest width in {1, 2, 4, 8, 16} that can hold n
// significant bytes, or -1 if n exceeds 16.
func fixedWidth(n int) int {
	for _, w := range intWidths {
		if n <= w {
			return w
		}
	}
	return -1
}

// minUnsignedBytes returns the number of bytes actually needed to represent
// the little-endian unsigned magnitude in b (trailing, i.e. most
// significant, zero bytes trimmed). Returns at least 1 so zero still needs
// one byte.
func minUnsignedBytes(b []byte) int {
	n := len(b)
	for n > 1 && b[n-1] == 0 {
		n--
	}
	return n
}

// minSignedBytes returns the number of bytes needed to represent the
// little-endian two's-complement value in b, trimming redundant
// sign-extension bytes but keeping at least one.
func minSignedBytes(b []byte) int {
	n := len(b)
	for n > 1 {
		last := b[n-1]
		prev := b[n-2]
		if last == 0x00 && prev&0x80 == 0 {
			n--
			continue
		}
		if last == 0xFF && prev&0x80 != 0 {
			n--
			continue
		}
		break
	}
	return n
}

// AppendUInt appends an unsigned integer (0 <= v < 2^128) using the
// shortest fixed width in {1, 2, 4, 8, 16} bytes that losslessly represents
// it, preceded by its content descriptor (spec.md §4.2).
func AppendUInt(buf []byte, v *big.Int) ([]byte, error) {
	full := make([]byte, 16)
	src := v.Bytes() // big-endian, minimal
	if len(src) > 16 {
		return nil, ErrIntegerTooLarge
	}
	for i, b := range src {
		full[len(src)-1-i] = b
	}
	width := fixedWidth(minUnsignedBytes(full))
	buf = AppendContentDescription(buf, TypeUInt, ContentDescription{SelfLength: uint64(width)})
	return append(buf, full[:width]...), nil
}

// DecodeUIntContent reconstructs an unsigned big.Int from its raw
// little-endian self bytes (already isolated by the content descriptor).
// width must be one of {1, 2, 4, 8, 16}.
func DecodeUIntContent(self []byte) (*big.Int, error) {
	if !isFixedWidth(len(self)) {
		return nil, ErrIntegerWidth
	}
	if fixedWidth(minUnsignedBytes(self)) != len(self) {
		return nil, ErrIntegerWidth
	}
	be := make([]byte, len(self))
	for i, b := range self {
		be[len(self)-1-i] = b
	}
	return new(big.Int).SetBytes(be), nil
}

// AppendSInt appends a signed integer (-2^127 <= v < 2^127) using the
// shortest fixed width in {1, 2, 4, 8, 16} bytes that losslessly represents
// it in two's complement, preceded by its content descriptor.
func AppendSInt(buf []byte, v *big.Int) ([]byte, error) {
	full := make([]byte, 16)
	if v.Sign() < 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), 128)
		u := new(big.Int).Add(v, mod)
		if u.Sign() < 0 {
			return nil, ErrIntegerTooLarge
		}
		src := u.Bytes()
		if len(src) > 16 {
			return nil, ErrIntegerTooLarge
		}
		for i, b := range src {
			full[len(src)-1-i] = b
		}
	} else {
		src := v.Bytes()
		if len(src) > 16 || (len(src) == 16 && src[0]&0x80 != 0) {
			return nil, ErrIntegerTooLarge
		}
		for i, b := range src {
			full[len(src)-1-i] = b
		}
	}
	width := fixedWidth(minSignedBytes(full))
	buf = AppendContentDescription(buf, TypeSInt, ContentDescription{SelfLength: uint64(width)})
	return append(buf, full[:width]...), nil
}

// DecodeSIntContent reconstructs a signed big.Int from its raw
// little-endian two's-complement self bytes.
func DecodeSIntContent(self []byte) (*big.Int, error) {
	if !isFixedWidth(len(self)) {
		return nil, ErrIntegerWidth
	}
	if fixedWidth(minSignedBytes(self)) != len(self) {
		return nil, ErrIntegerWidth
	}
	be := make([]byte, len(self))
	for i, b := range self {
		be[len(self)-1-i] = b
	}
	u := new(big.Int).SetBytes(be)
	if self[len(self)-1]&0x80 != 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(8*len(self)))
		u.Sub(u, mod)
	}
	return u, nil
}

// UnsignedMinimalLE renders v as the minimal little-endian byte string that
// represents it, with no fixed-width constraint (the empty slice represents
// zero). This is used for small auxiliary fields folded into another type's
// content descriptor — such as an Enum header's ordinal — rather than for a
// standalone UInt value, which instead always uses AppendUInt's fixed widths.
func UnsignedMinimalLE(v uint64) []byte {
	var full [8]byte
	for i := 0; i < 8; i++ {
		full[i] = byte(v >> (8 * i))
	}
	n := minUnsignedBytes(full[:])
	if n == 1 && full[0] == 0 {
		return nil
	}
	return full[:n]
}

// DecodeUnsignedMinimalLE parses bytes written by UnsignedMinimalLE.
func DecodeUnsignedMinimalLE(b []byte) uint64 {
	var v uint64
	for i, c := range b {
		v |= uint64(c) << (8 * i)
	}
	return v
}

// isFixedWidth reports whether n is one of the widths {1, 2, 4, 8, 16}.
func isFixedWidth(n int) bool {
	for _, w := range intWidths {
		if n == w {
			return true
		}
	}
	return false
}
