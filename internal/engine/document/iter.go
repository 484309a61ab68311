package document

import (
	"iter"
	"strings"

	"github.com/dshills/chunkdoc/internal/engine/sumtree"
)

// FragmentIterator yields the text of consecutive chunks as string
// fragments. It is forward-only and cannot be restarted. Empty fragments are
// never yielded.
type FragmentIterator struct {
	chunks *sumtree.Iterator[Chunk, Info]
	skip   int  // characters to skip in the first chunk
	line   bool // stop at the first newline
	done   bool
	text   string
}

// Next advances to the next fragment and reports whether there is one.
func (it *FragmentIterator) Next() bool {
	for !it.done && it.chunks.Next() {
		chunk := it.chunks.Item()
		from := it.skip
		it.skip = 0

		var frag string
		if it.line {
			var eol bool
			frag, eol = chunk.lineFrom(from)
			it.done = eol
		} else {
			frag = chunk.textFrom(from)
		}
		if frag != "" {
			it.text = frag
			return true
		}
	}
	it.done = true
	it.text = ""
	return false
}

// Text returns the current fragment.
func (it *FragmentIterator) Text() string {
	return it.text
}

// All adapts the iterator to a range-over-func sequence.
func (it *FragmentIterator) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		for it.Next() {
			if !yield(it.text) {
				return
			}
		}
	}
}

// Collect drains the iterator and returns the concatenated fragments.
func (it *FragmentIterator) Collect() string {
	var sb strings.Builder
	for it.Next() {
		sb.WriteString(it.text)
	}
	return sb.String()
}

// Chunks iterates over the text of every chunk.
func (d *Document) Chunks() *FragmentIterator {
	return &FragmentIterator{chunks: d.tree.IterFrom(sumtree.Handle{})}
}

// TextAfterCursor iterates over the text from offset to the end of the
// document. It reports false when offset is past the end.
func (d *Document) TextAfterCursor(offset uint64) (*FragmentIterator, bool) {
	h, local, ok := d.tree.SeekLeq(offset, Info.CharCount)
	if !ok {
		return nil, false
	}
	return &FragmentIterator{
		chunks: d.tree.IterFrom(h),
		skip:   int(local),
	}, true
}

// TextForLine iterates over the text of line, excluding its terminating
// newline. It reports false when the document has fewer lines.
func (d *Document) TextForLine(line uint64) (*FragmentIterator, bool) {
	h, local, ok := d.tree.SeekLeq(line, Info.NewlineCount)
	if !ok {
		return nil, false
	}
	return &FragmentIterator{
		chunks: d.tree.IterFrom(h),
		skip:   d.tree.At(h).lineStart(int(local)),
		line:   true,
	}, true
}

// Line returns the text of line without its newline.
func (d *Document) Line(line uint64) (string, bool) {
	it, ok := d.TextForLine(line)
	if !ok {
		return "", false
	}
	return it.Collect(), true
}
