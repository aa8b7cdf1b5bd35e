package liquesco

// Limits defines resource limits applied while reading untrusted data.
type Limits struct {
	// MaxDepth is a nesting depth bound across Seq/Struct/Map/Option
	// containers. Zero means no limit. Reader's Read methods do not track
	// nesting, so they do not apply this bound; schema validation applies its
	// own depth limit (schema.ValidationContext.WithMaxDepth).
	MaxDepth int

	// MaxBinaryLength is the maximum length in bytes of a single Binary or
	// Unicode value. Zero means no limit.
	MaxBinaryLength int

	// MaxSeqLength is the maximum number of embedded items accepted for a
	// Seq/Struct/Map header. Zero means no limit.
	MaxSeqLength int
}

// DefaultLimits are generous limits suitable for trusted, already-validated
// data (e.g. re-reading a value this process just wrote).
var DefaultLimits = Limits{
	MaxDepth:        100,
	MaxBinaryLength: 64 * 1024 * 1024,
	MaxSeqLength:    1_000_000,
}

// SecureLimits are conservative limits appropriate for validating untrusted
// input before it is trusted anywhere else in a system.
var SecureLimits = Limits{
	MaxDepth:        32,
	MaxBinaryLength: 1 * 1024 * 1024,
	MaxSeqLength:    10_000,
}

// NoLimits disables all resource limits. Only use this for input whose
// provenance is already trusted.
var NoLimits = Limits{}

// Options configures Reader/Writer behavior.
type Options struct {
	// Limits bounds resource usage while decoding.
	Limits Limits

	// StrictMode additionally rejects non-canonical encodings that the
	// decoder could otherwise tolerate (reserved for forward compatibility;
	// the base codec always rejects non-canonical encodings, see
	// wire.ErrNonCanonical).
	StrictMode bool
}

// DefaultOptions are the default encode/decode options.
var DefaultOptions = Options{
	Limits:     DefaultLimits,
	StrictMode: false,
}

// SecureOptions apply SecureLimits, appropriate when decoding data from an
// untrusted source.
var SecureOptions = Options{
	Limits:     SecureLimits,
	StrictMode: true,
}
