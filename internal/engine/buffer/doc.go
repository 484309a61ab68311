// Package buffer provides a thread-safe text buffer built on top of the
// chunked document. It is the host-facing surface of the engine: it validates
// offsets, normalizes incoming text and serializes mutations behind one
// writer lock.
//
// Offsets are character (rune) offsets, matching the document. Line endings
// are stored as "\n"; the buffer's LineEnding is applied when the text is
// written out.
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("Hello, World!")
//	buf.Insert(7, "Beautiful ")  // "Hello, Beautiful World!"
//	buf.Delete(0, 7)             // "Beautiful World!"
//
//	snap := buf.Snapshot()
//	go func() {
//	    text := snap.Text()
//	    // ...
//	}()
//
// Read operations acquire a read lock and write operations an exclusive
// lock. Use Snapshot for several reads without intervening writes.
package buffer
