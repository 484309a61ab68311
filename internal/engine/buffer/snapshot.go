package buffer

import (
	"io"
	"iter"

	"github.com/dshills/chunkdoc/internal/engine/document"
)

// Snapshot is a read-only copy of a buffer at one revision. It does not
// change when the buffer is modified and is safe for concurrent reads.
type Snapshot struct {
	doc        *document.Document
	id         string
	revision   Revision
	lineEnding LineEnding
}

// BufferID returns the ID of the buffer the snapshot was taken from.
func (s *Snapshot) BufferID() string {
	return s.id
}

// Revision returns the revision the snapshot was taken at.
func (s *Snapshot) Revision() Revision {
	return s.revision
}

// Text returns the full content.
func (s *Snapshot) Text() string {
	return s.doc.String()
}

// Len returns the number of characters.
func (s *Snapshot) Len() Offset {
	return s.doc.Len()
}

// LineCount returns the number of lines.
func (s *Snapshot) LineCount() uint64 {
	return s.doc.LineCount()
}

// LineText returns the text of line without its newline.
func (s *Snapshot) LineText(line uint64) (string, bool) {
	return s.doc.Line(line)
}

// Chunks iterates over the chunk fragments of the snapshot.
func (s *Snapshot) Chunks() *document.FragmentIterator {
	return s.doc.Chunks()
}

// Lines yields every line with its index.
func (s *Snapshot) Lines() iter.Seq2[uint64, string] {
	return func(yield func(uint64, string) bool) {
		for line := uint64(0); line < s.doc.LineCount(); line++ {
			text, _ := s.doc.Line(line)
			if !yield(line, text) {
				return
			}
		}
	}
}

// WriteTo writes the content using the snapshot's line ending.
func (s *Snapshot) WriteTo(w io.Writer) (int64, error) {
	return writeDocument(w, s.doc, s.lineEnding)
}
