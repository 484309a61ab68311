package buffer

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/dshills/chunkdoc/internal/engine/document"
	"github.com/dshills/chunkdoc/internal/logging"
	"github.com/google/uuid"
	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
	ErrLineOutOfRange   = errors.New("line out of range")
	ErrEditsOverlap     = errors.New("edits overlap or are not in reverse order")
)

// Buffer wraps a Document with validation, normalization and locking.
// All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	doc        *document.Document
	docOpts    []document.Option
	id         string
	revision   Revision
	lineEnding LineEnding
	form       norm.Form
	normalize  bool
	logger     *logging.Logger
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		id:         uuid.NewString(),
		revision:   NewRevision(),
		lineEnding: LineEndingLF,
		logger:     logging.Null,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.doc = document.New(b.docOpts...)
	b.logger = b.logger.WithComponent("buffer").WithField("buffer", b.id[:8])
	return b
}

// NewBufferFromString creates a buffer with initial content.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	b.doc.Push(b.prepare(s))
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	// read everything first so a CRLF pair is never split across reads
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read buffer content: %w", err)
	}
	return NewBufferFromString(string(data), opts...), nil
}

// prepare converts incoming text to the stored form.
func (b *Buffer) prepare(s string) string {
	s = toLF(s)
	if b.normalize {
		s = b.form.String(s)
	}
	return s
}

// ID returns the buffer's unique identifier.
func (b *Buffer) ID() string {
	return b.id
}

// Read Operations

// Text returns the full buffer content with "\n" line endings.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.doc.String()
}

// TextRange returns the text in [start, end).
func (b *Buffer) TextRange(start, end Offset) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkRange(start, end); err != nil {
		return "", err
	}
	return b.textRange(start, end), nil
}

func (b *Buffer) textRange(start, end Offset) string {
	it, ok := b.doc.TextAfterCursor(start)
	if !ok {
		return ""
	}
	want := int(end - start)
	var sb strings.Builder
	for want > 0 && it.Next() {
		frag := it.Text()
		if n := utf8.RuneCountInString(frag); n > want {
			frag = frag[:byteIndex(frag, want)]
		}
		want -= utf8.RuneCountInString(frag)
		sb.WriteString(frag)
	}
	return sb.String()
}

// byteIndex returns the byte offset of the n-th rune in s.
func byteIndex(s string, n int) int {
	i := 0
	for pos := range s {
		if i == n {
			return pos
		}
		i++
	}
	return len(s)
}

// Len returns the number of characters in the buffer.
func (b *Buffer) Len() Offset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.doc.Len()
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	return b.Len() == 0
}

// Newlines returns the number of newline characters.
func (b *Buffer) Newlines() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.doc.Newlines()
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.doc.LineCount()
}

// ChunkCount returns the number of chunks in the underlying document.
func (b *Buffer) ChunkCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.doc.ChunkCount()
}

// LineText returns the text of line without its newline.
func (b *Buffer) LineText(line uint64) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	text, ok := b.doc.Line(line)
	if !ok {
		return "", fmt.Errorf("%w: line %d of %d", ErrLineOutOfRange, line, b.doc.LineCount())
	}
	return text, nil
}

// LineWidth returns the display width of line in terminal cells.
func (b *Buffer) LineWidth(line uint64) (int, error) {
	text, err := b.LineText(line)
	if err != nil {
		return 0, err
	}
	return uniseg.StringWidth(text), nil
}

// GraphemeCount returns the number of user-perceived characters.
func (b *Buffer) GraphemeCount() int {
	return uniseg.GraphemeClusterCount(b.Text())
}

// LineForOffset returns the line containing offset.
func (b *Buffer) LineForOffset(offset Offset) (uint64, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	line, ok := b.doc.LineForCursor(offset)
	if !ok {
		return 0, fmt.Errorf("%w: %d > %d", ErrOffsetOutOfRange, offset, b.doc.Len())
	}
	return line, nil
}

// LineStartOffset returns the offset at which line begins.
func (b *Buffer) LineStartOffset(line uint64) (Offset, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	start, ok := b.doc.CursorForLine(line)
	if !ok {
		return 0, fmt.Errorf("%w: line %d of %d", ErrLineOutOfRange, line, b.doc.LineCount())
	}
	return start, nil
}

// LineEndOffset returns the offset at which the following line begins, or
// the buffer length for the last line.
func (b *Buffer) LineEndOffset(line uint64) (Offset, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line >= b.doc.LineCount() {
		return 0, fmt.Errorf("%w: line %d of %d", ErrLineOutOfRange, line, b.doc.LineCount())
	}
	return b.doc.EndCursorForLine(line), nil
}

// LastLineStart returns the offset at which the last line begins.
func (b *Buffer) LastLineStart() Offset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.doc.LastLineBegin()
}

// OffsetToPoint converts an offset to line and column.
func (b *Buffer) OffsetToPoint(offset Offset) (Point, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	line, ok := b.doc.LineForCursor(offset)
	if !ok {
		return Point{}, fmt.Errorf("%w: %d > %d", ErrOffsetOutOfRange, offset, b.doc.Len())
	}
	start, _ := b.doc.CursorForLine(line)
	return Point{Line: line, Column: offset - start}, nil
}

// PointToOffset converts line and column to an offset. The column may point
// at the line's newline but not past it.
func (b *Buffer) PointToOffset(p Point) (Offset, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	start, ok := b.doc.CursorForLine(p.Line)
	if !ok {
		return 0, fmt.Errorf("%w: line %d of %d", ErrLineOutOfRange, p.Line, b.doc.LineCount())
	}
	end := b.doc.Len()
	if next, ok := b.doc.CursorForLine(p.Line + 1); ok {
		end = next - 1
	}
	if start+p.Column > end {
		return 0, fmt.Errorf("%w: column %d past end of line %d", ErrOffsetOutOfRange, p.Column, p.Line)
	}
	return start + p.Column, nil
}

// WriteTo writes the content to w using the buffer's line ending.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return writeDocument(w, b.doc, b.lineEnding)
}

func writeDocument(w io.Writer, doc *document.Document, le LineEnding) (int64, error) {
	var total int64
	seq := le.Sequence()
	for frag := range doc.Chunks().All() {
		if le != LineEndingLF {
			frag = strings.ReplaceAll(frag, "\n", seq)
		}
		n, err := io.WriteString(w, frag)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Write Operations

func (b *Buffer) checkRange(start, end Offset) error {
	if start > end {
		return fmt.Errorf("%w: [%d:%d)", ErrRangeInvalid, start, end)
	}
	if start > b.doc.Len() {
		return fmt.Errorf("%w: %d > %d", ErrOffsetOutOfRange, start, b.doc.Len())
	}
	return nil
}

// Insert inserts text at offset and returns the offset just past it.
func (b *Buffer) Insert(offset Offset, text string) (Offset, error) {
	res, err := b.ApplyEdit(NewInsert(offset, text))
	return res.NewRange.End, err
}

// Delete removes the text in [start, end). An end past the buffer is
// clamped to its length.
func (b *Buffer) Delete(start, end Offset) error {
	_, err := b.ApplyEdit(NewDelete(start, end))
	return err
}

// Replace replaces [start, end) with text and returns the offset just past
// the new text.
func (b *Buffer) Replace(start, end Offset, text string) (Offset, error) {
	res, err := b.ApplyEdit(NewReplace(start, end, text))
	return res.NewRange.End, err
}

// ApplyEdit applies a single edit.
func (b *Buffer) ApplyEdit(edit Edit) (EditResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkRange(edit.Range.Start, edit.Range.End); err != nil {
		return EditResult{}, err
	}
	res := b.apply(edit)
	b.revision = NewRevision()
	res.Revision = b.revision
	b.logger.Debug("%s rev=%d", edit, b.revision)
	return res, nil
}

// ApplyEdits applies edits atomically. Edits must be ordered from the highest
// offset to the lowest and must not overlap.
func (b *Buffer) ApplyEdits(edits []Edit) (Revision, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(edits) == 0 {
		return b.revision, nil
	}
	for i := 1; i < len(edits); i++ {
		if edits[i].Range.End > edits[i-1].Range.Start {
			return b.revision, ErrEditsOverlap
		}
	}
	for _, edit := range edits {
		if err := b.checkRange(edit.Range.Start, edit.Range.End); err != nil {
			return b.revision, err
		}
	}
	for _, edit := range edits {
		b.apply(edit)
	}
	b.revision = NewRevision()
	b.logger.Debug("applied %d edits rev=%d", len(edits), b.revision)
	return b.revision, nil
}

// apply performs a validated edit. The caller holds the write lock.
func (b *Buffer) apply(edit Edit) EditResult {
	start, end := edit.Range.Start, min(edit.Range.End, b.doc.Len())
	old := ""
	if end > start {
		old = b.textRange(start, end)
		b.doc.Delete(start, end)
	}
	text := b.prepare(edit.NewText)
	if !b.doc.Insert(start, text) {
		panic(&document.InvariantError{Op: "apply", Detail: fmt.Sprintf("validated offset %d rejected", start)})
	}
	n := uint64(utf8.RuneCountInString(text))
	return EditResult{
		OldRange: Range{Start: start, End: end},
		NewRange: Range{Start: start, End: start + n},
		OldText:  old,
		Delta:    int64(n) - int64(end-start),
	}
}

// Buffer State

// Revision returns the current revision.
func (b *Buffer) Revision() Revision {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revision
}

// LineEnding returns the buffer's output line ending.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// SetLineEnding sets the output line ending.
func (b *Buffer) SetLineEnding(le LineEnding) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lineEnding = le
}

// Check validates the underlying document.
func (b *Buffer) Check() error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.doc.Check()
}

// Snapshot returns a read-only copy of the current state.
func (b *Buffer) Snapshot() *Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return &Snapshot{
		doc:        b.doc.Clone(),
		id:         b.id,
		revision:   b.revision,
		lineEnding: b.lineEnding,
	}
}
