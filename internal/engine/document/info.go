package document

// Info summarizes a run of text. It is a monoid under Add with the zero
// value as identity.
type Info struct {
	Chars    uint64 // Unicode scalar values
	Newlines uint64 // '\n' characters
}

// Add combines two summaries.
func (i Info) Add(other Info) Info {
	return Info{
		Chars:    i.Chars + other.Chars,
		Newlines: i.Newlines + other.Newlines,
	}
}

// CharCount projects the character count.
func (i Info) CharCount() uint64 {
	return i.Chars
}

// NewlineCount projects the newline count.
func (i Info) NewlineCount() uint64 {
	return i.Newlines
}
