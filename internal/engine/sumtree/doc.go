// Package sumtree provides an ordered container that keeps an aggregated
// summary for every subtree.
//
// Items are stored in the leaves of a B+ tree. Every item reduces to a
// summary value and every inner node caches the sum of its children's
// summaries, which allows logarithmic-time search by any projection of the
// summary that grows monotonically along the sequence:
//
//	h, rem, ok := t.SeekLeq(42, func(s Info) uint64 { return s.Chars })
//
// Positions are addressed with a Handle. A Handle is valid until the next
// insertion or removal; it must not be kept across structural mutations.
//
// A Tree is not safe for concurrent use. Callers that share a Tree between
// goroutines must serialize all access behind a single writer lock.
package sumtree
