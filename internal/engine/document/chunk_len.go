//go:build !chunkdebug

package document

// MaxChunkLen is the maximum number of characters stored in one chunk.
const MaxChunkLen = 1024
