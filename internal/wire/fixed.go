package wire

import (
	"encoding/binary"
	"errors"
	"math"
	"math/big"

	"google.golang.org/protobuf/encoding/protowire"
)

// ErrFixedTruncated indicates a fixed-width read ran past the end of data.
var ErrFixedTruncated = errors.New("liquesco: fixed-width value truncated")

// AppendFixed8 appends a single byte.
func AppendFixed8(buf []byte, v uint8) []byte { return append(buf, v) }

// DecodeFixed8 decodes a single byte.
func DecodeFixed8(data []byte) (uint8, error) {
	if len(data) < 1 {
		return 0, ErrFixedTruncated
	}
	return data[0], nil
}

// AppendFixed16 appends a little-endian 16-bit value.
func AppendFixed16(buf []byte, v uint16) []byte {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	return append(buf, tmp[:]...)
}

// DecodeFixed16 decodes a little-endian 16-bit value.
func DecodeFixed16(data []byte) (uint16, error) {
	if len(data) < 2 {
		return 0, ErrFixedTruncated
	}
	return binary.LittleEndian.Uint16(data), nil
}

// AppendFixed32 appends a little-endian 32-bit value.
func AppendFixed32(buf []byte, v uint32) []byte {
	return protowire.AppendFixed32(buf, v)
}

// DecodeFixed32 decodes a little-endian 32-bit value.
func DecodeFixed32(data []byte) (uint32, error) {
	v, n := protowire.ConsumeFixed32(data)
	if n < 0 {
		return 0, ErrFixedTruncated
	}
	return v, nil
}

// AppendFixed64 appends a little-endian 64-bit value.
func AppendFixed64(buf []byte, v uint64) []byte {
	return protowire.AppendFixed64(buf, v)
}

// DecodeFixed64 decodes a little-endian 64-bit value.
func DecodeFixed64(data []byte) (uint64, error) {
	v, n := protowire.ConsumeFixed64(data)
	if n < 0 {
		return 0, ErrFixedTruncated
	}
	return v, nil
}

// AppendFixed128 appends a little-endian 128-bit value given as two
// little-endian halves (lo first on the wire, matching the lo-to-hi
// ordering of the other fixed widths).
func AppendFixed128(buf []byte, lo, hi uint64) []byte {
	buf = AppendFixed64(buf, lo)
	buf = AppendFixed64(buf, hi)
	return buf
}

// DecodeFixed128 decodes a little-endian 128-bit value into its lo/hi halves.
func DecodeFixed128(data []byte) (lo, hi uint64, err error) {
	if len(data) < 16 {
		return 0, 0, ErrFixedTruncated
	}
	lo, err = DecodeFixed64(data[0:8])
	if err != nil {
		return 0, 0, err
	}
	hi, err = DecodeFixed64(data[8:16])
	if err != nil {
		return 0, 0, err
	}
	return lo, hi, nil
}

// AppendFloat32 appends a float32 in little-endian IEEE-754 format.
//
// No canonicalization is applied: the schema layer, not the wire codec,
// decides whether NaN, infinities, signed zero or subnormals are legal for
// a given Float32 type, so distinct bit patterns must survive the round
// trip unchanged.
func AppendFloat32(buf []byte, v float32) []byte {
	return AppendFixed32(buf, math.Float32bits(v))
}

// DecodeFloat32 decodes a float32 from little-endian IEEE-754 bytes.
func DecodeFloat32(data []byte) (float32, error) {
	bits, err := DecodeFixed32(data)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

// AppendFloat64 appends a float64 in little-endian IEEE-754 format.
func AppendFloat64(buf []byte, v float64) []byte {
	return AppendFixed64(buf, math.Float64bits(v))
}

// DecodeFloat64 decodes a float64 from little-endian IEEE-754 bytes.
func DecodeFloat64(data []byte) (float64, error) {
	bits, err := DecodeFixed64(data)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}

// IsNaN32 reports whether v is any NaN bit pattern (not just the canonical one).
func IsNaN32(v float32) bool {
	bits := math.Float32bits(v)
	return bits&0x7F800000 == 0x7F800000 && bits&0x007FFFFF != 0
}

// IsNaN64 reports whether v is any NaN bit pattern.
func IsNaN64(v float64) bool {
	bits := math.Float64bits(v)
	return bits&0x7FF0000000000000 == 0x7FF0000000000000 && bits&0x000FFFFFFFFFFFFF != 0
}

// IsNegativeZero32 reports whether v is float32 negative zero.
func IsNegativeZero32(v float32) bool { return math.Float32bits(v) == 0x80000000 }

// IsNegativeZero64 reports whether v is float64 negative zero.
func IsNegativeZero64(v float64) bool { return math.Float64bits(v) == 0x8000000000000000 }

// Size constants for fixed-width wire values.
const (
	Fixed8Size   = 1
	Fixed16Size  = 2
	Fixed32Size  = 4
	Fixed64Size  = 8
	Fixed128Size = 16
	Float32Size  = 4
	Float64Size  = 8
)

// bigFromHalves reconstructs a signed 128-bit big.Int from little-endian
// two's-complement lo/hi halves.
func bigFromHalves(lo, hi uint64, signed bool) *big.Int {
	b := new(big.Int).SetUint64(hi)
	b.Lsh(b, 64)
	b.Or(b, new(big.Int).SetUint64(lo))
	if signed && hi&(1<<63) != 0 {
		// two's complement: value - 2^128
		mod := new(big.Int).Lsh(big.NewInt(1), 128)
		b.Sub(b, mod)
	}
	return b
}

// bigToHalves renders a signed big.Int (must fit in 128 bits) as little-endian
// two's-complement lo/hi halves.
func bigToHalves(v *big.Int) (lo, hi uint64) {
	u := new(big.Int).Set(v)
	if v.Sign() < 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), 128)
		u.Add(u, mod)
	}
	mask64 := new(big.Int).SetUint64(^uint64(0))
	loBig := new(big.Int).And(u, mask64)
	hiBig := new(big.Int).Rsh(u, 64)
	hiBig.And(hiBig, mask64)
	return loBig.Uint64(), hiBig.Uint64()
}
