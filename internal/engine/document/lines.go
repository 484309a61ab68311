package document

// LineForCursor returns the line containing character offset. An offset on
// a chunk's right edge belongs to that chunk, and a newline exactly at the
// offset is not counted. It reports false when offset is past the end.
func (d *Document) LineForCursor(offset uint64) (uint64, bool) {
	h, local, ok := d.tree.SeekLeq(offset, Info.CharCount)
	if !ok {
		return 0, false
	}
	before, _ := d.tree.SumUntil(h, Info.NewlineCount)
	return before + uint64(d.tree.At(h).newlinesBefore(int(local))), true
}

// CursorForLine returns the character offset at which line begins. Line 0
// begins at offset 0. It reports false when the document has fewer lines.
func (d *Document) CursorForLine(line uint64) (uint64, bool) {
	h, local, ok := d.tree.SeekLeq(line, Info.NewlineCount)
	if !ok {
		return 0, false
	}
	before, _ := d.tree.SumUntil(h, Info.CharCount)
	return before + uint64(d.tree.At(h).lineStart(int(local))), true
}

// EndCursorForLine returns the offset at which the line after line begins,
// or the document length for the last line.
func (d *Document) EndCursorForLine(line uint64) uint64 {
	if end, ok := d.CursorForLine(line + 1); ok {
		return end
	}
	return d.Len()
}

// LastLineBegin returns the offset at which the last line begins.
func (d *Document) LastLineBegin() uint64 {
	if n := d.Newlines(); n > 0 {
		if begin, ok := d.CursorForLine(n); ok {
			return begin
		}
	}
	return 0
}
