// Package identifier implements LQ's restricted identifier syntax: names
// used to label schema fields, enum variants and struct members, composed of
// 1-12 underscore-separated segments of 1-30 lowercase-ASCII-or-digit
// characters each. The restriction keeps an identifier trivially convertible
// into identifiers of whatever target language a schema is rendered into.
package identifier

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blockberries/liquesco/pkg/liquesco"
)

const (
	segmentMinLen      = 1
	segmentMaxLen      = 30
	minNumberOfSegments = 1
	maxNumberOfSegments = 12
)

// Sentinel errors for identifier/segment validation failures.
var (
	ErrSegmentTooShort    = errors.New("liquesco: identifier segment is empty")
	ErrSegmentTooLong     = errors.New("liquesco: identifier segment exceeds 30 characters")
	ErrSegmentInvalidChar = errors.New("liquesco: identifier segment contains a character other than a-z or 0-9")
	ErrTooFewSegments     = errors.New("liquesco: identifier has no segments")
	ErrTooManySegments    = errors.New("liquesco: identifier exceeds 12 segments")
)

// Segment is one underscore-delimited component of an Identifier.
type Segment string

// validateSegment checks length and character-class rules for a single
// segment. Only ASCII a-z (97-122) and 0-9 (48-57) are permitted, matching
// the Ascii code-range restriction the schema's own "segment" type declares.
func validateSegment(s string) error {
	n := len(s)
	if n < segmentMinLen {
		return ErrSegmentTooShort
	}
	if n > segmentMaxLen {
		return ErrSegmentTooLong
	}
	for i := 0; i < n; i++ {
		c := s[i]
		if !((c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')) {
			return ErrSegmentInvalidChar
		}
	}
	return nil
}

// NewSegment validates and constructs a Segment.
func NewSegment(s string) (Segment, error) {
	if err := validateSegment(s); err != nil {
		return "", err
	}
	return Segment(s), nil
}

// Identifier is a validated, underscore-joined sequence of Segments.
type Identifier struct {
	segments []Segment
}

// Parse splits value on '_' and validates every segment and the resulting
// segment count. This is the slice-backed representation; for validation or
// equality checks only, prefer ValidateFast, which never allocates a segment
// slice.
func Parse(value string) (Identifier, error) {
	if err := ValidateFast(value); err != nil {
		return Identifier{}, err
	}
	parts := strings.Split(value, "_")
	segments := make([]Segment, len(parts))
	for i, p := range parts {
		segments[i] = Segment(p)
	}
	return Identifier{segments: segments}, nil
}

// Segments returns the identifier's segments.
func (id Identifier) Segments() []Segment { return id.segments }

// String renders the identifier in snake_case.
func (id Identifier) String() string {
	parts := make([]string, len(id.segments))
	for i, s := range id.segments {
		parts[i] = string(s)
	}
	return strings.Join(parts, "_")
}

// ValidateFast validates an identifier's segment rules and segment count
// directly over the joined string, without allocating a slice of segments.
// This mirrors the source format's string-backed fast path, used whenever
// only validation or equality testing is needed, not per-segment access.
func ValidateFast(value string) error {
	count := 0
	start := 0
	for i := 0; i <= len(value); i++ {
		if i == len(value) || value[i] == '_' {
			seg := value[start:i]
			if err := validateSegment(seg); err != nil {
				return err
			}
			count++
			start = i + 1
		}
	}
	return validateSegmentCount(count)
}

func validateSegmentCount(n int) error {
	if n < minNumberOfSegments {
		return ErrTooFewSegments
	}
	if n > maxNumberOfSegments {
		return ErrTooManySegments
	}
	return nil
}

// Equal reports whether two identifiers denote the same name.
func (id Identifier) Equal(other Identifier) bool {
	return id.String() == other.String()
}

// WriteTo encodes the identifier as a Seq header of Unicode segment strings.
func WriteTo(w *liquesco.Writer, id Identifier) {
	w.WriteSeqHeader(len(id.segments))
	for _, s := range id.segments {
		w.WriteUnicode(string(s))
	}
}

// ReadFrom decodes an identifier previously written by WriteTo, validating
// segment and count rules on the way.
func ReadFrom(r *liquesco.Reader) (Identifier, error) {
	n := r.ReadSeqHeader()
	if r.Err() != nil {
		return Identifier{}, r.Err()
	}
	if err := validateSegmentCount(n); err != nil {
		return Identifier{}, err
	}
	segments := make([]Segment, n)
	for i := 0; i < n; i++ {
		s := r.ReadUnicode()
		if r.Err() != nil {
			return Identifier{}, r.Err()
		}
		if err := validateSegment(s); err != nil {
			return Identifier{}, fmt.Errorf("identifier segment %d: %w", i, err)
		}
		segments[i] = Segment(s)
	}
	return Identifier{segments: segments}, nil
}
