// Package document stores editable text as a sequence of bounded chunks
// held in a summarized B+ tree.
//
// Every chunk reduces to an Info summary (character count, newline count),
// so both character offsets and line numbers resolve to a chunk in
// logarithmic time:
//
//	d := document.New()
//	d.Push("ab\ncd")
//	start, _ := d.CursorForLine(1) // 3
//	line, _ := d.LineForCursor(4)  // 1
//
// All offsets and line numbers are zero-based and measured in Unicode scalar
// values, not bytes.
//
// A Document is not safe for concurrent use, and it must not be mutated
// while a FragmentIterator obtained from it is still in use.
package document
