package document

import (
	"math/rand"
	"strings"
	"testing"
	"unicode/utf8"
)

// checkDoc verifies the document against the reference text.
func checkDoc(t *testing.T, d *Document, want string) {
	t.Helper()
	if err := d.Check(); err != nil {
		t.Fatalf("Check() = %v", err)
	}
	if got := d.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
	if got := d.Len(); got != uint64(utf8.RuneCountInString(want)) {
		t.Fatalf("Len() = %d, want %d", got, utf8.RuneCountInString(want))
	}
	if got := d.Newlines(); got != uint64(strings.Count(want, "\n")) {
		t.Fatalf("Newlines() = %d, want %d", got, strings.Count(want, "\n"))
	}
}

func TestNewEmpty(t *testing.T) {
	d := New()
	checkDoc(t, d, "")
	if d.ChunkCount() != 1 {
		t.Errorf("ChunkCount() = %d, want 1", d.ChunkCount())
	}
	if d.LineCount() != 1 {
		t.Errorf("LineCount() = %d, want 1", d.LineCount())
	}
	if got, ok := d.CursorForLine(0); !ok || got != 0 {
		t.Errorf("CursorForLine(0) = %d, %v; want 0, true", got, ok)
	}
	if _, ok := d.CursorForLine(1); ok {
		t.Error("CursorForLine(1) on empty document should report false")
	}
	if got, ok := d.LineForCursor(0); !ok || got != 0 {
		t.Errorf("LineForCursor(0) = %d, %v; want 0, true", got, ok)
	}
	if _, ok := d.LineForCursor(1); ok {
		t.Error("LineForCursor(1) on empty document should report false")
	}
	if d.LastLineBegin() != 0 {
		t.Errorf("LastLineBegin() = %d, want 0", d.LastLineBegin())
	}
}

func TestPushScenario(t *testing.T) {
	d := New()
	d.Push("ab\ncd")
	checkDoc(t, d, "ab\ncd")

	if got, ok := d.CursorForLine(1); !ok || got != 3 {
		t.Errorf("CursorForLine(1) = %d, %v; want 3, true", got, ok)
	}
	if got, ok := d.LineForCursor(4); !ok || got != 1 {
		t.Errorf("LineForCursor(4) = %d, %v; want 1, true", got, ok)
	}
}

func TestInsertThenDeleteScenario(t *testing.T) {
	d := New()
	d.Insert(0, "ab\ncd")
	d.Delete(1, 4)
	checkDoc(t, d, "ad")
}

func TestInsert(t *testing.T) {
	tests := []struct {
		name     string
		initial  string
		offset   uint64
		text     string
		expected string
	}{
		{"insert at start", "world", 0, "hello ", "hello world"},
		{"insert at end", "hello", 5, " world", "hello world"},
		{"insert in middle", "helloworld", 5, " ", "hello world"},
		{"insert into empty", "", 0, "hello", "hello"},
		{"insert empty string", "hello", 3, "", "hello"},
		{"insert unicode", "hello", 5, " 世界", "hello 世界"},
		{"insert between multibyte", "世界", 1, "!", "世!界"},
		{"insert after emoji", "a🌍b", 2, "\n", "a🌍\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := FromString(tt.initial)
			if !d.Insert(tt.offset, tt.text) {
				t.Fatalf("Insert(%d) reported false", tt.offset)
			}
			checkDoc(t, d, tt.expected)
		})
	}
}

func TestInsertPastEnd(t *testing.T) {
	d := FromString("abc")
	if d.Insert(4, "x") {
		t.Error("Insert past end should report false")
	}
	if d.Insert(4, "") {
		t.Error("empty Insert past end should report false")
	}
	checkDoc(t, d, "abc")
}

func TestInsertLongerThanChunk(t *testing.T) {
	var sb strings.Builder
	for sb.Len() < 5*MaxChunkLen+3 {
		sb.WriteString("line é 世界\n")
	}
	text := sb.String()

	d := New(WithFanout(4))
	d.Insert(0, text)
	checkDoc(t, d, text)

	chars := utf8.RuneCountInString(text)
	if min := (chars + MaxChunkLen - 1) / MaxChunkLen; d.ChunkCount() < min {
		t.Errorf("ChunkCount() = %d, want at least %d", d.ChunkCount(), min)
	}
}

func TestInsertIntoFullChunk(t *testing.T) {
	full := strings.Repeat("a", MaxChunkLen)
	for _, offset := range []uint64{0, MaxChunkLen / 2, MaxChunkLen} {
		d := FromString(full)
		if d.ChunkCount() != 1 {
			t.Fatalf("ChunkCount() = %d, want 1", d.ChunkCount())
		}
		d.Insert(offset, "XYZ")
		checkDoc(t, d, full[:offset]+"XYZ"+full[offset:])
	}
}

func TestInsertOverflowKeepsTailOrder(t *testing.T) {
	base := strings.Repeat("0123456789", MaxChunkLen/10+1)[:MaxChunkLen-2]
	insert := strings.Repeat("xy", MaxChunkLen+5)

	d := FromString(base)
	d.Insert(3, insert)
	checkDoc(t, d, base[:3]+insert+base[3:])
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name     string
		initial  string
		begin    uint64
		end      uint64
		expected string
	}{
		{"delete from start", "hello world", 0, 6, "world"},
		{"delete to end", "hello world", 5, 11, "hello"},
		{"delete from middle", "hello world", 5, 6, "helloworld"},
		{"delete all", "hello", 0, 5, ""},
		{"delete nothing", "hello", 3, 3, "hello"},
		{"delete reversed range", "hello", 4, 1, "hello"},
		{"delete beyond end", "hello", 2, 100, "he"},
		{"delete multibyte", "a世界b", 1, 3, "ab"},
		{"delete newline", "ab\ncd", 2, 3, "abcd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := FromString(tt.initial)
			d.Delete(tt.begin, tt.end)
			checkDoc(t, d, tt.expected)
		})
	}
}

func TestDeleteAcrossChunks(t *testing.T) {
	text := strings.Repeat("abcdefghij\n", MaxChunkLen)
	runes := []rune(text)

	tests := []struct {
		name       string
		begin, end int
	}{
		{"first chunk prefix", 0, MaxChunkLen / 2},
		{"exact first chunk", 0, MaxChunkLen},
		{"span three chunks", MaxChunkLen / 2, 2*MaxChunkLen + 3},
		{"start on boundary", MaxChunkLen, 3 * MaxChunkLen},
		{"tail", len(runes) - MaxChunkLen - 1, len(runes)},
		{"everything", 0, len(runes)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := FromString(text, WithFanout(4))
			d.Delete(uint64(tt.begin), uint64(tt.end))
			want := string(runes[:tt.begin]) + string(runes[tt.end:])
			checkDoc(t, d, want)
		})
	}
}

func TestDeleteAllLeavesOneEmptyChunk(t *testing.T) {
	d := FromString(strings.Repeat("x", 4*MaxChunkLen))
	d.Delete(0, d.Len())
	checkDoc(t, d, "")
	if d.ChunkCount() != 1 {
		t.Errorf("ChunkCount() = %d, want 1", d.ChunkCount())
	}
	d.Push("again")
	checkDoc(t, d, "again")
}

func TestDeleteNoOpIsIdempotent(t *testing.T) {
	text := strings.Repeat("ab\n", MaxChunkLen)
	d := FromString(text)
	chunks := d.ChunkCount()
	for _, r := range [][2]uint64{{0, 0}, {5, 5}, {10, 2}, {d.Len(), d.Len()}} {
		d.Delete(r[0], r[1])
	}
	checkDoc(t, d, text)
	if d.ChunkCount() != chunks {
		t.Errorf("ChunkCount() = %d, want %d", d.ChunkCount(), chunks)
	}
}

func TestInsertReplacesInvalidUTF8(t *testing.T) {
	d := New()
	d.Push("a\xffb")
	checkDoc(t, d, "a�b")
}

func TestClone(t *testing.T) {
	d := FromString(strings.Repeat("clone\n", MaxChunkLen))
	c := d.Clone()
	d.Delete(0, 6)
	if c.String() == d.String() {
		t.Fatal("Clone() shares state with the original")
	}
	checkDoc(t, c, strings.Repeat("clone\n", MaxChunkLen))
}

var alphabet = []rune("abc \n\né世🌍")

func randomText(rng *rand.Rand, maxLen int) string {
	n := rng.Intn(maxLen + 1)
	rs := make([]rune, n)
	for i := range rs {
		rs[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return string(rs)
}

func TestRandomEditsMatchReference(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	d := New(WithFanout(4))
	var ref []rune

	for step := 0; step < 400; step++ {
		if len(ref) == 0 || rng.Intn(3) != 0 {
			at := rng.Intn(len(ref) + 1)
			text := randomText(rng, 3*MaxChunkLen)
			if !d.Insert(uint64(at), text) {
				t.Fatalf("step %d: Insert(%d) reported false", step, at)
			}
			ref = append(ref[:at], append([]rune(text), ref[at:]...)...)
		} else {
			begin := rng.Intn(len(ref) + 1)
			end := begin + rng.Intn(2*MaxChunkLen)
			if end > len(ref) {
				end = len(ref)
			}
			d.Delete(uint64(begin), uint64(end))
			ref = append(ref[:begin], ref[end:]...)
		}
		checkDoc(t, d, string(ref))
	}
}
