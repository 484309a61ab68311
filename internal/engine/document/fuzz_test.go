package document

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func FuzzInsertDelete(f *testing.F) {
	f.Add("hello\nworld", uint16(3), "é世\n", uint16(1), uint16(6))
	f.Add("", uint16(0), strings.Repeat("ab\n", 50), uint16(10), uint16(90))
	f.Add("🌍🌍🌍", uint16(2), "x", uint16(0), uint16(4))

	f.Fuzz(func(t *testing.T, initial string, at uint16, text string, begin, end uint16) {
		initial = strings.ToValidUTF8(initial, "?")
		text = strings.ToValidUTF8(text, "?")

		d := FromString(initial, WithFanout(4))
		ref := []rune(initial)

		offset := int(at) % (len(ref) + 1)
		d.Insert(uint64(offset), text)
		ref = append(ref[:offset], append([]rune(text), ref[offset:]...)...)

		b, e := int(begin), int(end)
		d.Delete(uint64(b), uint64(e))
		if e > len(ref) {
			e = len(ref)
		}
		if b < e {
			ref = append(ref[:b], ref[e:]...)
		}

		want := string(ref)
		if err := d.Check(); err != nil {
			t.Fatalf("Check() = %v", err)
		}
		if d.String() != want {
			t.Fatalf("String() = %q, want %q", d.String(), want)
		}
		if d.Len() != uint64(utf8.RuneCountInString(want)) {
			t.Fatalf("Len() = %d, want %d", d.Len(), utf8.RuneCountInString(want))
		}
		if d.Newlines() != uint64(strings.Count(want, "\n")) {
			t.Fatalf("Newlines() = %d, want %d", d.Newlines(), strings.Count(want, "\n"))
		}
	})
}
