// Package wire provides low-level encoding primitives for the LQ wire format:
// the header byte, the content descriptor, and the fixed/variable-width
// scalar codecs that every schema type builds on.
package wire

import (
	"errors"

	"google.golang.org/protobuf/encoding/protowire"
)

// MaxVarintLen64 is the maximum encoded size of a varint-encoded uint64.
const MaxVarintLen64 = 10

// Errors for varint decoding.
var (
	// ErrVarintTruncated indicates the input data was truncated.
	ErrVarintTruncated = errors.New("liquesco: varint truncated")

	// ErrVarintOverflow indicates the varint overflows a 64-bit integer.
	ErrVarintOverflow = errors.New("liquesco: varint overflows uint64")
)

// AppendUvarint appends the LEB128 encoding of v to buf and returns the
// extended buffer. Bytes are ordered least significant to most significant.
//
// LQ varints are unsigned only: negative values never reach the wire as
// varints, signed scalars use fixed little-endian widths instead.
func AppendUvarint(buf []byte, v uint64) []byte {
	return protowire.AppendVarint(buf, v)
}

// DecodeUvarint decodes a varint from data and returns the value and the
// number of bytes consumed.
func DecodeUvarint(data []byte) (uint64, int, error) {
	v, n := protowire.ConsumeVarint(data)
	if n < 0 {
		if n == protowire.ErrCodeOverflow {
			return 0, 0, ErrVarintOverflow
		}
		return 0, 0, ErrVarintTruncated
	}
	if n == 0 {
		return 0, 0, ErrVarintTruncated
	}
	return v, n, nil
}

// UvarintSize returns the number of bytes required to encode v as a varint.
func UvarintSize(v uint64) int {
	return protowire.SizeVarint(v)
}
