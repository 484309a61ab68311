package document

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/chunkdoc/internal/engine/sumtree"
)

// Document is a mutable text stored as chunks of at most MaxChunkLen
// characters. It always holds at least one chunk; the only chunk that may be
// empty is the single chunk of an empty document.
type Document struct {
	tree *sumtree.Tree[Chunk, Info]
	opts []sumtree.Option
}

// Option configures a Document.
type Option func(*Document)

// WithFanout sets the fan-out of the underlying tree.
func WithFanout(n int) Option {
	return func(d *Document) {
		d.opts = append(d.opts, sumtree.WithMaxChildren(n))
	}
}

// New creates an empty document.
func New(opts ...Option) *Document {
	d := &Document{}
	for _, opt := range opts {
		opt(d)
	}
	d.tree = sumtree.New[Chunk, Info](d.opts...)
	d.tree.PushBack(Chunk{})
	return d
}

// FromString creates a document holding s.
func FromString(s string, opts ...Option) *Document {
	d := New(opts...)
	d.Push(s)
	return d
}

// Clone returns an independent copy of the document.
func (d *Document) Clone() *Document {
	c := &Document{
		tree: sumtree.New[Chunk, Info](d.opts...),
		opts: d.opts,
	}
	for chunk := range d.tree.All() {
		c.tree.PushBack(chunk)
	}
	return c
}

// Len returns the number of characters.
func (d *Document) Len() uint64 {
	return d.tree.Summary().Chars
}

// Newlines returns the number of newline characters.
func (d *Document) Newlines() uint64 {
	return d.tree.Summary().Newlines
}

// LineCount returns the number of lines, which is one more than the number
// of newlines.
func (d *Document) LineCount() uint64 {
	return d.Newlines() + 1
}

// ChunkCount returns the number of stored chunks.
func (d *Document) ChunkCount() int {
	return d.tree.Len()
}

// String returns the full text.
func (d *Document) String() string {
	var sb strings.Builder
	for chunk := range d.tree.All() {
		sb.WriteString(chunk.text)
	}
	return sb.String()
}

// Push appends text at the end of the document.
func (d *Document) Push(text string) {
	d.Insert(d.Len(), text)
}

// Insert inserts text at character offset. It reports false, leaving the
// document unchanged, when offset is past the end. Invalid UTF-8 sequences
// in text are replaced with U+FFFD.
func (d *Document) Insert(offset uint64, text string) bool {
	h, local, ok := d.tree.SeekLeq(offset, Info.CharCount)
	if !ok {
		return false
	}
	if text == "" {
		return true
	}
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, string(utf8.RuneError))
	}

	at := int(local)
	var (
		overflow string
		tail     Chunk
	)
	d.tree.Modify(h, func(c *Chunk) {
		fit, rest := splitRunes(text, MaxChunkLen-c.chars)
		if rest == "" {
			c.insert(at, fit)
			return
		}
		head, after := c.split(at)
		head.insert(head.chars, fit)
		*c = head
		tail = after
		overflow = rest
	})
	if overflow == "" {
		return true
	}

	pieces := pack(overflow)
	if !tail.IsEmpty() {
		pieces = append(pieces, tail)
	}
	if d.tree.At(h).IsEmpty() {
		first := pieces[0]
		pieces = pieces[1:]
		d.tree.Modify(h, func(c *Chunk) { *c = first })
	}
	for _, piece := range pieces {
		if h, ok = d.tree.InsertAfter(h, piece); !ok {
			invariant("insert", "lost handle while placing overflow at offset %d", offset)
		}
	}
	return true
}

// Delete removes the characters in [begin, end). It is a no-op when
// begin >= end; end is clamped to Len.
func (d *Document) Delete(begin, end uint64) {
	if end > d.Len() {
		end = d.Len()
	}
	if begin >= end {
		return
	}

	remaining := int(end - begin)
	for remaining > 0 {
		h, local, ok := d.tree.Seek(begin, Info.CharCount)
		if !ok {
			invariant("delete", "no chunk at offset %d with %d characters left to delete", begin, remaining)
		}
		at := int(local)
		d.tree.EditOrRemove(h, func(c *Chunk) bool {
			if remaining == 0 {
				return false
			}
			avail := c.chars - at
			if avail > remaining {
				c.remove(at, at+remaining)
				remaining = 0
				return false
			}
			if at > 0 {
				c.remove(at, c.chars)
				remaining -= avail
				return false
			}
			remaining -= avail
			return true
		})
	}

	if d.tree.Len() == 0 {
		d.tree.PushBack(Chunk{})
	}
}

// Check validates the tree and chunk invariants.
func (d *Document) Check() error {
	if err := d.tree.Check(); err != nil {
		return err
	}
	if d.tree.Len() == 0 {
		return &InvariantError{Op: "check", Detail: "document has no chunks"}
	}
	for chunk := range d.tree.All() {
		switch {
		case chunk.chars > MaxChunkLen:
			return &InvariantError{Op: "check", Detail: "chunk over capacity"}
		case chunk.chars == 0 && d.tree.Len() > 1:
			return &InvariantError{Op: "check", Detail: "empty chunk retained"}
		case chunk.chars != utf8.RuneCountInString(chunk.text):
			return &InvariantError{Op: "check", Detail: "stale character count"}
		case chunk.newlines != strings.Count(chunk.text, "\n"):
			return &InvariantError{Op: "check", Detail: "stale newline count"}
		}
	}
	return nil
}
