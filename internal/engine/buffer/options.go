package buffer

import (
	"github.com/dshills/chunkdoc/internal/engine/document"
	"github.com/dshills/chunkdoc/internal/logging"
	"golang.org/x/text/unicode/norm"
)

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithLineEnding sets the line ending used when the text is written out.
func WithLineEnding(le LineEnding) Option {
	return func(b *Buffer) {
		b.lineEnding = le
	}
}

// WithLF configures the buffer to write Unix line endings (\n).
func WithLF() Option {
	return WithLineEnding(LineEndingLF)
}

// WithCRLF configures the buffer to write Windows line endings (\r\n).
func WithCRLF() Option {
	return WithLineEnding(LineEndingCRLF)
}

// WithNormalization normalizes all incoming text to the given Unicode form.
func WithNormalization(form norm.Form) Option {
	return func(b *Buffer) {
		b.form = form
		b.normalize = true
	}
}

// WithLogger sets the logger that records mutations at debug level.
func WithLogger(l *logging.Logger) Option {
	return func(b *Buffer) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithFanout sets the node fan-out of the underlying document tree.
func WithFanout(n int) Option {
	return func(b *Buffer) {
		b.docOpts = append(b.docOpts, document.WithFanout(n))
	}
}
