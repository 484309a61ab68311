package document

import (
	"strings"
	"testing"
)

func TestChunksReconstructText(t *testing.T) {
	text := multiChunkText()
	d := FromString(text, WithFanout(4))

	var sb strings.Builder
	n := 0
	for frag := range d.Chunks().All() {
		if frag == "" {
			t.Fatal("Chunks() yielded an empty fragment")
		}
		sb.WriteString(frag)
		n++
	}
	if sb.String() != text {
		t.Fatal("Chunks() did not reconstruct the document")
	}
	if n != d.ChunkCount() {
		t.Errorf("Chunks() yielded %d fragments, want %d", n, d.ChunkCount())
	}
}

func TestChunksEmptyDocument(t *testing.T) {
	it := New().Chunks()
	if it.Next() {
		t.Errorf("Next() on empty document yielded %q", it.Text())
	}
	if it.Next() {
		t.Error("Next() after exhaustion should stay false")
	}
}

func TestTextAfterCursor(t *testing.T) {
	text := strings.Repeat("ab\n世界🌍\n", MaxChunkLen/4)
	runes := []rune(text)
	d := FromString(text, WithFanout(4))

	for offset := 0; offset <= len(runes); offset += 3 {
		it, ok := d.TextAfterCursor(uint64(offset))
		if !ok {
			t.Fatalf("TextAfterCursor(%d) reported false", offset)
		}
		if got, want := it.Collect(), string(runes[offset:]); got != want {
			t.Fatalf("TextAfterCursor(%d) = %q, want %q", offset, got, want)
		}
	}

	it, ok := d.TextAfterCursor(uint64(len(runes)))
	if !ok || it.Next() {
		t.Error("TextAfterCursor(Len) should succeed and yield nothing")
	}
	if _, ok := d.TextAfterCursor(uint64(len(runes) + 1)); ok {
		t.Error("TextAfterCursor past end should report false")
	}
}

func TestTextForLine(t *testing.T) {
	text := multiChunkText()
	d := FromString(text, WithFanout(4))
	lines := strings.Split(text, "\n")

	for i, want := range lines {
		got, ok := d.Line(uint64(i))
		if !ok {
			t.Fatalf("Line(%d) reported false", i)
		}
		if got != want {
			t.Fatalf("Line(%d) = %q, want %q", i, got, want)
		}
	}
	if _, ok := d.TextForLine(uint64(len(lines))); ok {
		t.Error("TextForLine past last line should report false")
	}
}

func TestTextForLineExcludesNewline(t *testing.T) {
	d := FromString("one\ntwo\n\nthree")

	tests := []struct {
		line uint64
		want []string
	}{
		{0, []string{"one"}},
		{1, []string{"two"}},
		{2, nil},
		{3, []string{"three"}},
	}
	for _, tt := range tests {
		it, ok := d.TextForLine(tt.line)
		if !ok {
			t.Fatalf("TextForLine(%d) reported false", tt.line)
		}
		var got []string
		for frag := range it.All() {
			if strings.Contains(frag, "\n") {
				t.Fatalf("TextForLine(%d) yielded newline in %q", tt.line, frag)
			}
			got = append(got, frag)
		}
		if strings.Join(got, "") != strings.Join(tt.want, "") || len(got) != len(tt.want) {
			t.Errorf("TextForLine(%d) = %q, want %q", tt.line, got, tt.want)
		}
		if it.Next() {
			t.Errorf("TextForLine(%d) continued after the line ended", tt.line)
		}
	}
}

func TestAllStopsEarly(t *testing.T) {
	d := FromString(strings.Repeat("x", 3*MaxChunkLen))
	it := d.Chunks()
	n := 0
	for range it.All() {
		n++
		break
	}
	if n != 1 {
		t.Fatalf("range yielded %d fragments before break, want 1", n)
	}
	if rest := it.Collect(); len(rest) != 2*MaxChunkLen {
		t.Errorf("Collect() after break returned %d characters, want %d", len(rest), 2*MaxChunkLen)
	}
}
