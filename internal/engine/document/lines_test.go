package document

import (
	"math/rand"
	"strings"
	"testing"
	"testing/quick"
)

// lineStarts returns the rune offset at which each line of text begins.
func lineStarts(text string) []uint64 {
	starts := []uint64{0}
	var pos uint64
	for _, r := range text {
		pos++
		if r == '\n' {
			starts = append(starts, pos)
		}
	}
	return starts
}

// multiChunkText builds lines of varying length, some longer than a chunk.
func multiChunkText() string {
	var sb strings.Builder
	for i := 0; i < 3*MaxChunkLen/4; i++ {
		switch i % 7 {
		case 0:
			sb.WriteString("\n")
		case 3:
			sb.WriteString(strings.Repeat("長", MaxChunkLen+i%5))
			sb.WriteString("\n")
		default:
			sb.WriteString(strings.Repeat("ab", i%11))
			sb.WriteString("é\n")
		}
	}
	sb.WriteString("tail")
	return sb.String()
}

func TestCursorForLine(t *testing.T) {
	d := FromString("ab\ncd\n\nef")

	tests := []struct {
		line uint64
		want uint64
		ok   bool
	}{
		{0, 0, true},
		{1, 3, true},
		{2, 6, true},
		{3, 7, true},
		{4, 0, false},
	}
	for _, tt := range tests {
		got, ok := d.CursorForLine(tt.line)
		if ok != tt.ok || got != tt.want {
			t.Errorf("CursorForLine(%d) = %d, %v; want %d, %v", tt.line, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLineForCursor(t *testing.T) {
	text := "ab\ncd\n\nef"
	d := FromString(text)

	want := []uint64{0, 0, 0, 1, 1, 1, 2, 3, 3, 3}
	for offset, line := range want {
		got, ok := d.LineForCursor(uint64(offset))
		if !ok || got != line {
			t.Errorf("LineForCursor(%d) = %d, %v; want %d, true", offset, got, ok, line)
		}
	}
	if _, ok := d.LineForCursor(uint64(len(text) + 1)); ok {
		t.Error("LineForCursor past end should report false")
	}
}

func TestTrailingNewline(t *testing.T) {
	d := FromString("ab\n")
	if got, ok := d.CursorForLine(1); !ok || got != 3 {
		t.Errorf("CursorForLine(1) = %d, %v; want 3, true", got, ok)
	}
	if got, ok := d.LineForCursor(3); !ok || got != 1 {
		t.Errorf("LineForCursor(3) = %d, %v; want 1, true", got, ok)
	}
	if got := d.LastLineBegin(); got != 3 {
		t.Errorf("LastLineBegin() = %d, want 3", got)
	}
	if got := d.EndCursorForLine(0); got != 3 {
		t.Errorf("EndCursorForLine(0) = %d, want 3", got)
	}
	if got := d.EndCursorForLine(1); got != 3 {
		t.Errorf("EndCursorForLine(1) = %d, want 3", got)
	}
}

func TestLinesAcrossChunks(t *testing.T) {
	text := multiChunkText()
	d := FromString(text, WithFanout(4))
	starts := lineStarts(text)

	if d.LineCount() != uint64(len(starts)) {
		t.Fatalf("LineCount() = %d, want %d", d.LineCount(), len(starts))
	}
	for line, start := range starts {
		got, ok := d.CursorForLine(uint64(line))
		if !ok || got != start {
			t.Fatalf("CursorForLine(%d) = %d, %v; want %d, true", line, got, ok, start)
		}
	}
	if _, ok := d.CursorForLine(uint64(len(starts))); ok {
		t.Error("CursorForLine past last line should report false")
	}
	if got := d.LastLineBegin(); got != starts[len(starts)-1] {
		t.Errorf("LastLineBegin() = %d, want %d", got, starts[len(starts)-1])
	}

	var line uint64
	var offset uint64
	for _, r := range text + "\x00" {
		got, ok := d.LineForCursor(offset)
		if !ok || got != line {
			t.Fatalf("LineForCursor(%d) = %d, %v; want %d, true", offset, got, ok, line)
		}
		if r == '\n' {
			line++
		}
		offset++
	}
}

func TestInverseLaw(t *testing.T) {
	d := FromString(multiChunkText(), WithFanout(4))
	var prev uint64
	for line := uint64(0); line < d.LineCount(); line++ {
		begin, ok := d.CursorForLine(line)
		if !ok {
			t.Fatalf("CursorForLine(%d) reported false", line)
		}
		if line > 0 && begin <= prev {
			t.Fatalf("CursorForLine(%d) = %d, not after line %d at %d", line, begin, line-1, prev)
		}
		prev = begin
		if got, ok := d.LineForCursor(begin); !ok || got != line {
			t.Fatalf("LineForCursor(CursorForLine(%d)) = %d, %v", line, got, ok)
		}
	}
}

func TestLinesAfterEdits(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	d := New(WithFanout(4))
	var ref []rune

	for step := 0; step < 150; step++ {
		if len(ref) == 0 || rng.Intn(4) != 0 {
			at := rng.Intn(len(ref) + 1)
			text := randomText(rng, MaxChunkLen+MaxChunkLen/2)
			d.Insert(uint64(at), text)
			ref = append(ref[:at], append([]rune(text), ref[at:]...)...)
		} else {
			begin := rng.Intn(len(ref))
			end := begin + 1 + rng.Intn(MaxChunkLen)
			if end > len(ref) {
				end = len(ref)
			}
			d.Delete(uint64(begin), uint64(end))
			ref = append(ref[:begin], ref[end:]...)
		}

		starts := lineStarts(string(ref))
		for line, start := range starts {
			if got, ok := d.CursorForLine(uint64(line)); !ok || got != start {
				t.Fatalf("step %d: CursorForLine(%d) = %d, %v; want %d", step, line, got, ok, start)
			}
		}
	}
}

func TestLineForCursorMonotonic(t *testing.T) {
	f := func(raw []byte) bool {
		text := strings.ToValidUTF8(string(raw), "?")
		d := FromString(text, WithFanout(4))
		var prev uint64
		for offset := uint64(0); offset <= d.Len(); offset++ {
			line, ok := d.LineForCursor(offset)
			if !ok || line < prev {
				return false
			}
			prev = line
		}
		return prev == d.Newlines()
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}
