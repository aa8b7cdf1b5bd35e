package liquesco

import (
	"math/big"

	"github.com/blockberries/liquesco/internal/wire"
)

// Reader decodes LQ primitive wire values from a byte slice.
//
// Like Writer, Reader is sticky-error: once a Read method fails, subsequent
// Read calls return zero values and Err reports the first failure. Clone
// produces an independent cursor over the same backing array, used by the
// schema layer to re-read a value (for sortedness and range comparisons)
// without disturbing the original cursor.
type Reader struct {
	data  []byte
	pos   int
	opts  Options
	depth int
	err   error
}

// NewReader creates a Reader over data with default options.
func NewReader(data []byte) *Reader {
	return &Reader{data: data, opts: DefaultOptions}
}

// NewReaderWithOptions creates a Reader over data with the given options.
func NewReaderWithOptions(data []byte, opts Options) *Reader {
	return &Reader{data: data, opts: opts}
}

// Reset rebinds the reader to new data, clearing position, depth and error.
func (r *Reader) Reset(data []byte) {
	r.data = data
	r.pos = 0
	r.depth = 0
	r.err = nil
}

// Clone returns an independent Reader positioned at the same offset, sharing
// the backing array. Advancing the clone does not affect the original.
func (r *Reader) Clone() *Reader {
	return &Reader{data: r.data, pos: r.pos, opts: r.opts, depth: r.depth}
}

// Pos returns the current read offset.
func (r *Reader) Pos() int { return r.pos }

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	if r.pos >= len(r.data) {
		return 0
	}
	return len(r.data) - r.pos
}

// EOF reports whether all data has been consumed.
func (r *Reader) EOF() bool { return r.pos >= len(r.data) }

// Err returns the first error encountered while reading, if any.
func (r *Reader) Err() error { return r.err }

func (r *Reader) setError(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *Reader) checkRead() bool { return r.err == nil }

func (r *Reader) enterNested() bool {
	if r.opts.Limits.MaxDepth > 0 && r.depth >= r.opts.Limits.MaxDepth {
		r.setError(ErrMaxDepthExceeded)
		return false
	}
	r.depth++
	return true
}

func (r *Reader) exitNested() {
	if r.depth > 0 {
		r.depth--
	}
}

// peekHeader reads the header byte and content descriptor without leaving
// the cursor advanced on failure; on success the cursor sits right after the
// descriptor, at the start of self bytes / first embedded item.
func (r *Reader) peekHeader() (wire.HeaderByte, wire.ContentDescription, bool) {
	if !r.checkRead() {
		return 0, wire.ContentDescription{}, false
	}
	h, cd, n, err := wire.ReadContentDescription(r.data[r.pos:])
	if err != nil {
		r.setError(NewDecodeErrorAt("header", r.pos, "invalid header/content descriptor", err))
		return 0, wire.ContentDescription{}, false
	}
	r.pos += n
	return h, cd, true
}

// expectMajor reads a header/content descriptor and checks the major type.
func (r *Reader) expectMajor(kind string, want wire.MajorType) (wire.ContentDescription, bool) {
	h, cd, ok := r.peekHeader()
	if !ok {
		return cd, false
	}
	if h.MajorType() != want {
		r.setError(NewDecodeErrorAt(kind, r.pos, "unexpected major type", ErrUnexpectedMajorType))
		return cd, false
	}
	return cd, true
}

// expectLeaf is expectMajor plus the leaf invariant that a binary, unicode,
// integer, float or uuid value never carries embedded items.
func (r *Reader) expectLeaf(kind string, want wire.MajorType) (wire.ContentDescription, bool) {
	cd, ok := r.expectMajor(kind, want)
	if !ok {
		return cd, false
	}
	if cd.NumberOfEmbedded != 0 {
		r.setError(NewDecodeErrorAt(kind, r.pos, "leaf value has embedded items", wire.ErrEmbeddedOnLeaf))
		return cd, false
	}
	return cd, true
}

// PeekMajorType reports the major type of the next value without consuming
// any input.
func (r *Reader) PeekMajorType() (wire.MajorType, error) {
	if !r.checkRead() {
		return 0, r.err
	}
	h, _, err := wire.ReadHeaderByte(r.data[r.pos:])
	if err != nil {
		return 0, err
	}
	return h.MajorType(), nil
}

func (r *Reader) takeSelf(kind string, n uint64) []byte {
	if n > uint64(r.Len()) {
		r.setError(NewDecodeErrorAt(kind, r.pos, "truncated", ErrUnexpectedEOF))
		return nil
	}
	b := r.data[r.pos : r.pos+int(n)]
	r.pos += int(n)
	return b
}

// ReadBool reads a boolean value.
func (r *Reader) ReadBool() bool {
	h, _, ok := r.peekHeader()
	if !ok {
		return false
	}
	switch h.MajorType() {
	case wire.TypeBoolFalse:
		return false
	case wire.TypeBoolTrue:
		return true
	default:
		r.setError(NewDecodeErrorAt("bool", r.pos, "unexpected major type", ErrUnexpectedMajorType))
		return false
	}
}

// ReadOptionPresence reads the Option presence marker. If it returns true,
// the caller must read exactly one embedded value next.
func (r *Reader) ReadOptionPresence() bool {
	cd, ok := r.expectMajor("option", wire.TypeOption)
	if !ok {
		return false
	}
	if cd.NumberOfEmbedded > 1 {
		r.setError(NewDecodeErrorAt("option", r.pos, "more than one embedded value", nil))
		return false
	}
	return cd.NumberOfEmbedded == 1
}

// ReadSeqHeader reads a Seq header and returns the declared element count.
// The caller must read exactly that many values next.
func (r *Reader) ReadSeqHeader() int {
	cd, ok := r.expectMajor("seq-header", wire.TypeSeq)
	if !ok {
		return 0
	}
	if r.opts.Limits.MaxSeqLength > 0 && int(cd.NumberOfEmbedded) > r.opts.Limits.MaxSeqLength {
		r.setError(ErrMaxSizeExceeded)
		return 0
	}
	return int(cd.NumberOfEmbedded)
}

// ReadBinary reads a raw byte string. The returned slice aliases the
// reader's backing array and must be copied if retained past further reads.
func (r *Reader) ReadBinary() []byte {
	cd, ok := r.expectLeaf("binary", wire.TypeBinary)
	if !ok {
		return nil
	}
	if r.opts.Limits.MaxBinaryLength > 0 && cd.SelfLength > uint64(r.opts.Limits.MaxBinaryLength) {
		r.setError(ErrMaxSizeExceeded)
		return nil
	}
	return r.takeSelf("binary", cd.SelfLength)
}

// ReadUnicode reads a UTF-8 string.
func (r *Reader) ReadUnicode() string {
	cd, ok := r.expectLeaf("unicode", wire.TypeUnicode)
	if !ok {
		return ""
	}
	if r.opts.Limits.MaxBinaryLength > 0 && cd.SelfLength > uint64(r.opts.Limits.MaxBinaryLength) {
		r.setError(ErrMaxSizeExceeded)
		return ""
	}
	b := r.takeSelf("unicode", cd.SelfLength)
	if b == nil && r.err != nil {
		return ""
	}
	return string(b)
}

// EnumHeader carries a decoded Enum variant ordinal and value arity.
type EnumHeader struct {
	Ordinal    uint64
	ValueCount int
}

// ReadEnumHeader reads an EnumHeader. The caller must read exactly
// ValueCount values next.
func (r *Reader) ReadEnumHeader() EnumHeader {
	if !r.checkRead() {
		return EnumHeader{}
	}
	h, cd, ok := r.peekHeader()
	if !ok {
		return EnumHeader{}
	}
	var implied int
	switch h.MajorType() {
	case wire.TypeEnum0:
		implied = 0
	case wire.TypeEnum1:
		implied = 1
	case wire.TypeEnum2:
		implied = 2
	case wire.TypeEnumN:
		implied = -1 // arbitrary, read from content descriptor
	default:
		r.setError(NewDecodeErrorAt("enum-header", r.pos, "unexpected major type", ErrUnexpectedMajorType))
		return EnumHeader{}
	}
	if implied >= 0 && int(cd.NumberOfEmbedded) != implied {
		r.setError(NewDecodeErrorAt("enum-header", r.pos, "value count does not match major type", nil))
		return EnumHeader{}
	}
	if implied < 0 && cd.NumberOfEmbedded < 3 {
		r.setError(NewDecodeErrorAt("enum-header", r.pos, "enum-N major type with fewer than 3 values", nil))
		return EnumHeader{}
	}
	ordBytes := r.takeSelf("enum-header", cd.SelfLength)
	if r.err != nil {
		return EnumHeader{}
	}
	return EnumHeader{Ordinal: wire.DecodeUnsignedMinimalLE(ordBytes), ValueCount: int(cd.NumberOfEmbedded)}
}

// ReadUInt64 reads an unsigned integer that must fit in 64 bits.
func (r *Reader) ReadUInt64() uint64 {
	v := r.ReadUInt128()
	if r.err != nil {
		return 0
	}
	if !v.IsUint64() {
		r.setError(NewDecodeErrorAt("uint", r.pos, "value overflows uint64", nil))
		return 0
	}
	return v.Uint64()
}

// ReadUInt128 reads an unsigned integer up to 128 bits.
func (r *Reader) ReadUInt128() *big.Int {
	cd, ok := r.expectLeaf("uint", wire.TypeUInt)
	if !ok {
		return new(big.Int)
	}
	self := r.takeSelf("uint", cd.SelfLength)
	if r.err != nil {
		return new(big.Int)
	}
	v, err := wire.DecodeUIntContent(self)
	if err != nil {
		r.setError(NewDecodeErrorAt("uint", r.pos, "invalid width", err))
		return new(big.Int)
	}
	return v
}

// ReadSInt64 reads a signed integer that must fit in 64 bits.
func (r *Reader) ReadSInt64() int64 {
	v := r.ReadSInt128()
	if r.err != nil {
		return 0
	}
	if !v.IsInt64() {
		r.setError(NewDecodeErrorAt("sint", r.pos, "value overflows int64", nil))
		return 0
	}
	return v.Int64()
}

// ReadSInt128 reads a signed integer up to 128 bits.
func (r *Reader) ReadSInt128() *big.Int {
	cd, ok := r.expectLeaf("sint", wire.TypeSInt)
	if !ok {
		return new(big.Int)
	}
	self := r.takeSelf("sint", cd.SelfLength)
	if r.err != nil {
		return new(big.Int)
	}
	v, err := wire.DecodeSIntContent(self)
	if err != nil {
		r.setError(NewDecodeErrorAt("sint", r.pos, "invalid width", err))
		return new(big.Int)
	}
	return v
}

// ReadFloat32 reads a 32-bit float.
func (r *Reader) ReadFloat32() float32 {
	cd, ok := r.expectLeaf("float32", wire.TypeFloat)
	if !ok {
		return 0
	}
	if cd.SelfLength != wire.Float32Size {
		r.setError(NewDecodeErrorAt("float32", r.pos, "not a 32-bit float", nil))
		return 0
	}
	b := r.takeSelf("float32", cd.SelfLength)
	if r.err != nil {
		return 0
	}
	v, err := wire.DecodeFloat32(b)
	if err != nil {
		r.setError(NewDecodeErrorAt("float32", r.pos, "decode failed", err))
		return 0
	}
	return v
}

// ReadFloat64 reads a 64-bit float.
func (r *Reader) ReadFloat64() float64 {
	cd, ok := r.expectLeaf("float64", wire.TypeFloat)
	if !ok {
		return 0
	}
	if cd.SelfLength != wire.Float64Size {
		r.setError(NewDecodeErrorAt("float64", r.pos, "not a 64-bit float", nil))
		return 0
	}
	b := r.takeSelf("float64", cd.SelfLength)
	if r.err != nil {
		return 0
	}
	v, err := wire.DecodeFloat64(b)
	if err != nil {
		r.setError(NewDecodeErrorAt("float64", r.pos, "decode failed", err))
		return 0
	}
	return v
}

// ReadUuid reads a 16-byte UUID: 16 raw bytes laid out like a 16-byte Binary
// but under the major type wire.TypeUuid; a value written with
// wire.TypeBinary is rejected as an unexpected major type.
func (r *Reader) ReadUuid() [16]byte {
	cd, ok := r.expectLeaf("uuid", wire.TypeUuid)
	if !ok {
		return [16]byte{}
	}
	if cd.SelfLength != 16 {
		r.setError(NewDecodeErrorAt("uuid", r.pos, "uuid must be exactly 16 bytes", nil))
		return [16]byte{}
	}
	b := r.takeSelf("uuid", cd.SelfLength)
	var out [16]byte
	copy(out[:], b)
	return out
}

// Skip advances past one complete wire value without any schema knowledge.
func (r *Reader) Skip() {
	if !r.checkRead() {
		return
	}
	n, err := wire.Skip(r.data[r.pos:])
	if err != nil {
		r.setError(NewDecodeErrorAt("skip", r.pos, "skip failed", err))
		return
	}
	r.pos += n
}
