//go:build chunkdebug

package document

// MaxChunkLen is kept tiny under the chunkdebug tag so that tests hit the
// split and removal paths constantly.
const MaxChunkLen = 8
