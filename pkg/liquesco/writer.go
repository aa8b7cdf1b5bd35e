package liquesco

import (
	"math/big"

	"github.com/blockberries/liquesco/internal/wire"
)

// Writer encodes LQ primitive wire values into an in-memory buffer.
//
// Writer follows a sticky-error design: once any Write method fails, every
// subsequent Write is a no-op and Err reports the first failure. Callers
// should write an entire value tree and check Err once at the end rather
// than after every call.
type Writer struct {
	buf    []byte
	opts   Options
	err    error
	frozen bool
}

// NewWriter creates a Writer with default options.
func NewWriter() *Writer {
	return &Writer{buf: make([]byte, 0, 256), opts: DefaultOptions}
}

// NewWriterWithOptions creates a Writer with the given options.
func NewWriterWithOptions(opts Options) *Writer {
	return &Writer{buf: make([]byte, 0, 256), opts: opts}
}

// Reset clears the writer for reuse, discarding any buffered bytes.
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
	w.err = nil
	w.frozen = false
}

// Bytes returns the encoded data and freezes the writer: every later Write
// call fails with ErrFrozen until Reset. The returned slice aliases the
// internal buffer and is only valid until the next Reset; use BytesCopy to
// retain it independently.
func (w *Writer) Bytes() []byte {
	w.frozen = true
	return w.buf
}

// BytesCopy returns an independent copy of the encoded data.
func (w *Writer) BytesCopy() []byte {
	out := make([]byte, len(w.buf))
	copy(out, w.buf)
	return out
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

// Err returns the first error encountered while writing, if any.
func (w *Writer) Err() error { return w.err }

// setError records the first error.
func (w *Writer) setError(err error) {
	if w.err == nil {
		w.err = err
	}
}

func (w *Writer) checkWrite() bool {
	if w.frozen {
		w.setError(ErrFrozen)
		return false
	}
	return w.err == nil
}

// WriteBool writes a boolean as its own major type (TypeBoolFalse/True),
// carrying no content.
func (w *Writer) WriteBool(v bool) {
	if !w.checkWrite() {
		return
	}
	major := wire.TypeBoolFalse
	if v {
		major = wire.TypeBoolTrue
	}
	w.buf = wire.AppendContentDescription(w.buf, major, wire.ContentDescription{})
}

// WriteOptionPresence writes the Option presence marker. If present is true,
// the caller must write exactly one embedded value immediately afterward.
func (w *Writer) WriteOptionPresence(present bool) {
	if !w.checkWrite() {
		return
	}
	embedded := uint32(0)
	if present {
		embedded = 1
	}
	w.buf = wire.AppendContentDescription(w.buf, wire.TypeOption, wire.ContentDescription{NumberOfEmbedded: embedded})
}

// WriteSeqHeader writes a Seq header announcing n embedded values. The
// caller must write exactly n values immediately afterward.
func (w *Writer) WriteSeqHeader(n int) {
	if !w.checkWrite() {
		return
	}
	if n < 0 {
		w.setError(NewEncodeError("seq-header", "negative length", nil))
		return
	}
	w.buf = wire.AppendContentDescription(w.buf, wire.TypeSeq, wire.ContentDescription{NumberOfEmbedded: uint32(n)})
}

// WriteBinary writes a raw byte string.
func (w *Writer) WriteBinary(b []byte) {
	if !w.checkWrite() {
		return
	}
	if w.opts.Limits.MaxBinaryLength > 0 && len(b) > w.opts.Limits.MaxBinaryLength {
		w.setError(ErrMaxSizeExceeded)
		return
	}
	w.buf = wire.AppendContentDescription(w.buf, wire.TypeBinary, wire.ContentDescription{SelfLength: uint64(len(b))})
	w.buf = append(w.buf, b...)
}

// WriteUnicode writes a UTF-8 string.
func (w *Writer) WriteUnicode(s string) {
	if !w.checkWrite() {
		return
	}
	if w.opts.Limits.MaxBinaryLength > 0 && len(s) > w.opts.Limits.MaxBinaryLength {
		w.setError(ErrMaxSizeExceeded)
		return
	}
	w.buf = wire.AppendContentDescription(w.buf, wire.TypeUnicode, wire.ContentDescription{SelfLength: uint64(len(s))})
	w.buf = append(w.buf, s...)
}

// enumMajorType picks the Enum major type for a given value arity: 0, 1, 2
// values get their own dedicated major type, 3 or more share TypeEnumN with
// the actual count carried in the content descriptor.
func enumMajorType(valueCount int) wire.MajorType {
	switch {
	case valueCount == 0:
		return wire.TypeEnum0
	case valueCount == 1:
		return wire.TypeEnum1
	case valueCount == 2:
		return wire.TypeEnum2
	default:
		return wire.TypeEnumN
	}
}

// WriteEnumHeader writes an EnumHeader: the variant ordinal followed by a
// declaration of how many value items follow. The caller must write exactly
// valueCount values immediately afterward.
func (w *Writer) WriteEnumHeader(ordinal uint64, valueCount int) {
	if !w.checkWrite() {
		return
	}
	if valueCount < 0 {
		w.setError(NewEncodeError("enum-header", "negative value count", nil))
		return
	}
	ordBytes := wire.UnsignedMinimalLE(ordinal)
	major := enumMajorType(valueCount)
	w.buf = wire.AppendContentDescription(w.buf, major, wire.ContentDescription{
		SelfLength:       uint64(len(ordBytes)),
		NumberOfEmbedded: uint32(valueCount),
	})
	w.buf = append(w.buf, ordBytes...)
}

// WriteUInt64 writes an unsigned integer up to 64 bits.
func (w *Writer) WriteUInt64(v uint64) {
	w.WriteUInt128(new(big.Int).SetUint64(v))
}

// WriteUInt128 writes an unsigned integer up to 128 bits (v must be
// non-negative and fit in 128 bits).
func (w *Writer) WriteUInt128(v *big.Int) {
	if !w.checkWrite() {
		return
	}
	if v.Sign() < 0 {
		w.setError(NewEncodeError("uint", "negative value", nil))
		return
	}
	buf, err := wire.AppendUInt(w.buf, v)
	if err != nil {
		w.setError(NewEncodeError("uint", "value out of range", err))
		return
	}
	w.buf = buf
}

// WriteSInt64 writes a signed integer up to 64 bits.
func (w *Writer) WriteSInt64(v int64) {
	w.WriteSInt128(big.NewInt(v))
}

// WriteSInt128 writes a signed integer up to 128 bits.
func (w *Writer) WriteSInt128(v *big.Int) {
	if !w.checkWrite() {
		return
	}
	buf, err := wire.AppendSInt(w.buf, v)
	if err != nil {
		w.setError(NewEncodeError("sint", "value out of range", err))
		return
	}
	w.buf = buf
}

// WriteFloat32 writes a 32-bit float. No canonicalization of NaN payloads or
// signed zero is performed; callers that need that must reduce values before
// calling this.
func (w *Writer) WriteFloat32(v float32) {
	if !w.checkWrite() {
		return
	}
	w.buf = wire.AppendContentDescription(w.buf, wire.TypeFloat, wire.ContentDescription{SelfLength: wire.Float32Size})
	w.buf = wire.AppendFloat32(w.buf, v)
}

// WriteFloat64 writes a 64-bit float.
func (w *Writer) WriteFloat64(v float64) {
	if !w.checkWrite() {
		return
	}
	w.buf = wire.AppendContentDescription(w.buf, wire.TypeFloat, wire.ContentDescription{SelfLength: wire.Float64Size})
	w.buf = wire.AppendFloat64(w.buf, v)
}

// WriteUuid writes a 16-byte UUID: 16 raw bytes under content info Len16,
// laid out like a 16-byte Binary but under its own major type wire.TypeUuid
// rather than wire.TypeBinary.
func (w *Writer) WriteUuid(id [16]byte) {
	if !w.checkWrite() {
		return
	}
	w.buf = wire.AppendContentDescription(w.buf, wire.TypeUuid, wire.ContentDescription{SelfLength: 16})
	w.buf = append(w.buf, id[:]...)
}
