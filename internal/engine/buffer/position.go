package buffer

import (
	"fmt"
	"sync/atomic"
)

// Offset is a character position in the buffer.
type Offset = uint64

// Point represents a line and column position. Both are 0-indexed and the
// column counts characters from the start of the line.
type Point struct {
	Line   uint64
	Column uint64
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Point) Compare(other Point) int {
	switch {
	case p.Line < other.Line:
		return -1
	case p.Line > other.Line:
		return 1
	case p.Column < other.Column:
		return -1
	case p.Column > other.Column:
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Point) Before(other Point) bool {
	return p.Compare(other) < 0
}

// Range is a half-open character range [Start, End).
type Range struct {
	Start Offset
	End   Offset
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}

// Len returns the number of characters in the range.
func (r Range) Len() uint64 {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start >= r.End
}

// Overlaps returns true if this range shares a character with other.
func (r Range) Overlaps(other Range) bool {
	return r.Start < other.End && other.Start < r.End
}

// Revision identifies a buffer state. Every mutation produces a larger
// revision than any issued before it.
type Revision uint64

var revisionCounter atomic.Uint64

// NewRevision returns a fresh, process-unique revision.
func NewRevision() Revision {
	return Revision(revisionCounter.Add(1))
}
