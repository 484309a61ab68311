package report

import (
	"github.com/dshills/chunkdoc/internal/engine/buffer"
	"github.com/rivo/uniseg"
)

// graphemeStats returns the grapheme cluster count of the whole text and
// the display width of its widest line.
func graphemeStats(s *buffer.Snapshot) (graphemes, maxWidth int) {
	for _, line := range s.Lines() {
		graphemes += uniseg.GraphemeClusterCount(line)
		if w := uniseg.StringWidth(line); w > maxWidth {
			maxWidth = w
		}
	}
	// each newline is a cluster of its own
	graphemes += int(s.LineCount() - 1)
	return graphemes, maxWidth
}
