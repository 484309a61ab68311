package document

import (
	"strings"
	"unicode/utf8"
)

// Chunk is a bounded run of text with cached character and newline counts.
// Offsets into a chunk are character offsets; they are translated to byte
// offsets before the underlying string is touched.
type Chunk struct {
	text     string
	chars    int
	newlines int
}

func newChunk(s string) Chunk {
	return Chunk{
		text:     s,
		chars:    utf8.RuneCountInString(s),
		newlines: strings.Count(s, "\n"),
	}
}

// Summary returns the chunk's Info.
func (c Chunk) Summary() Info {
	return Info{Chars: uint64(c.chars), Newlines: uint64(c.newlines)}
}

// String returns the chunk text.
func (c Chunk) String() string {
	return c.text
}

// Len returns the number of characters.
func (c Chunk) Len() int {
	return c.chars
}

// Newlines returns the number of newline characters.
func (c Chunk) Newlines() int {
	return c.newlines
}

// IsEmpty reports whether the chunk holds no text.
func (c Chunk) IsEmpty() bool {
	return c.chars == 0
}

// byteOffset converts a character offset into a byte offset.
func (c Chunk) byteOffset(at int) int {
	if at <= 0 {
		return 0
	}
	if at >= c.chars {
		return len(c.text)
	}
	if len(c.text) == c.chars {
		// ASCII only
		return at
	}
	return runeBytes(c.text, at)
}

// insert places s at character offset at. The caller guarantees the result
// fits in MaxChunkLen.
func (c *Chunk) insert(at int, s string) {
	b := c.byteOffset(at)
	*c = Chunk{
		text:     c.text[:b] + s + c.text[b:],
		chars:    c.chars + utf8.RuneCountInString(s),
		newlines: c.newlines + strings.Count(s, "\n"),
	}
}

// remove deletes characters in [from, to).
func (c *Chunk) remove(from, to int) {
	bf, bt := c.byteOffset(from), c.byteOffset(to)
	removed := c.text[bf:bt]
	*c = Chunk{
		text:     c.text[:bf] + c.text[bt:],
		chars:    c.chars - (to - from),
		newlines: c.newlines - strings.Count(removed, "\n"),
	}
}

// split divides the chunk at character offset at.
func (c Chunk) split(at int) (Chunk, Chunk) {
	b := c.byteOffset(at)
	return newChunk(c.text[:b]), newChunk(c.text[b:])
}

// newlinesBefore counts newlines strictly before character offset at.
func (c Chunk) newlinesBefore(at int) int {
	if at >= c.chars {
		return c.newlines
	}
	return strings.Count(c.text[:c.byteOffset(at)], "\n")
}

// lineStart returns the character offset just past the k-th newline, or 0
// for k == 0. k must not exceed the chunk's newline count.
func (c Chunk) lineStart(k int) int {
	if k <= 0 {
		return 0
	}
	seen, pos := 0, 0
	for _, r := range c.text {
		pos++
		if r == '\n' {
			seen++
			if seen == k {
				return pos
			}
		}
	}
	return c.chars
}

// textFrom returns the text from character offset at to the end.
func (c Chunk) textFrom(at int) string {
	return c.text[c.byteOffset(at):]
}

// lineFrom returns the text from character offset at up to, not including,
// the next newline, and whether a newline ended it.
func (c Chunk) lineFrom(at int) (string, bool) {
	rest := c.textFrom(at)
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		return rest[:i], true
	}
	return rest, false
}

// runeBytes returns the byte length of the first n runes of s, or len(s)
// when s is shorter.
func runeBytes(s string, n int) int {
	if n <= 0 {
		return 0
	}
	count := 0
	for i := range s {
		if count == n {
			return i
		}
		count++
	}
	return len(s)
}

// splitRunes cuts s after n characters.
func splitRunes(s string, n int) (string, string) {
	b := runeBytes(s, n)
	return s[:b], s[b:]
}

// pack cuts s into full chunks; only the last one may be shorter.
func pack(s string) []Chunk {
	var chunks []Chunk
	for s != "" {
		var head string
		head, s = splitRunes(s, MaxChunkLen)
		chunks = append(chunks, newChunk(head))
	}
	return chunks
}
