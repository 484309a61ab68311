// Package report renders buffer statistics and text diffs for the CLI.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dshills/chunkdoc/internal/engine/buffer"
	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/tidwall/sjson"
)

// Stats summarizes a buffer.
type Stats struct {
	Chars     uint64
	Bytes     int
	Newlines  uint64
	Lines     uint64
	Chunks    int
	Graphemes int
	MaxWidth  int // widest line in terminal cells
}

// Collect computes the statistics of a snapshot.
func Collect(s *buffer.Snapshot) Stats {
	text := s.Text()
	st := Stats{
		Chars:    s.Len(),
		Bytes:    len(text),
		Newlines: uint64(strings.Count(text, "\n")),
		Lines:    s.LineCount(),
	}
	for range s.Chunks().All() {
		st.Chunks++
	}
	if st.Chunks == 0 {
		st.Chunks = 1
	}
	st.Graphemes, st.MaxWidth = graphemeStats(s)
	return st
}

// WriteTo writes the statistics as aligned name/value lines.
func (st Stats) WriteTo(w io.Writer) (int64, error) {
	rows := []struct {
		name  string
		value any
	}{
		{"chars", st.Chars},
		{"bytes", st.Bytes},
		{"newlines", st.Newlines},
		{"lines", st.Lines},
		{"chunks", st.Chunks},
		{"graphemes", st.Graphemes},
		{"max width", st.MaxWidth},
	}
	var total int64
	for _, row := range rows {
		n, err := fmt.Fprintf(w, "%-10s %v\n", row.name, row.value)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Diff renders a line diff of before and after. Unchanged lines are
// prefixed with two spaces, removed lines with "- " and added lines with
// "+ ". With colored set, removed and added lines are red and green.
func Diff(before, after string, colored bool) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	del := color.New(color.FgRed)
	ins := color.New(color.FgGreen)
	if colored {
		del.EnableColor()
		ins.EnableColor()
	} else {
		del.DisableColor()
		ins.DisableColor()
	}

	var sb strings.Builder
	for _, d := range diffs {
		for _, line := range splitLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				sb.WriteString(del.Sprint("- " + line))
			case diffmatchpatch.DiffInsert:
				sb.WriteString(ins.Sprint("+ " + line))
			default:
				sb.WriteString("  " + line)
			}
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// splitLines splits s into lines without their newlines. A trailing
// newline does not start another line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

// JSON encodes the statistics as a JSON object.
func (st Stats) JSON() (string, error) {
	fields := []struct {
		path  string
		value any
	}{
		{"chars", st.Chars},
		{"bytes", st.Bytes},
		{"newlines", st.Newlines},
		{"lines", st.Lines},
		{"chunks", st.Chunks},
		{"graphemes", st.Graphemes},
		{"maxWidth", st.MaxWidth},
	}
	doc := "{}"
	for _, f := range fields {
		var err error
		if doc, err = sjson.Set(doc, f.path, f.value); err != nil {
			return "", err
		}
	}
	return doc, nil
}
