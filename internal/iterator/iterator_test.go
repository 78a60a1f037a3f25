package iterator

import (
	"testing"

	"github.com/exeal/ascension/internal/unicode"
)

func TestStringCharacterIteratorWalksSupplementaryCodePoint(t *testing.T) {
	// U+1F600 GRINNING FACE, encoded as a surrogate pair, flanked by 'a'/'b'.
	seq := []unicode.Char{'a', 0xD83D, 0xDE00, 'b'}
	it := NewStringCharacterIterator(seq, 0)

	var got []unicode.CodePoint
	for it.HasNext() {
		got = append(got, it.Current())
		it.Next()
	}

	want := []unicode.CodePoint{'a', 0x1F600, 'b'}
	if len(got) != len(want) {
		t.Fatalf("got %d code points, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("code point %d: got %#x, want %#x", i, got[i], want[i])
		}
	}
}

func TestStringCharacterIteratorPreviousMirrorsNext(t *testing.T) {
	seq := []unicode.Char{'a', 0xD83D, 0xDE00, 'b'}
	it := NewStringCharacterIterator(seq, 0)
	it.Last()
	var got []unicode.CodePoint
	for {
		got = append(got, it.Current())
		if !it.HasPrevious() {
			break
		}
		it.Previous()
	}
	want := []unicode.CodePoint{'b', 0x1F600, 'a'}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("code point %d: got %#x, want %#x", i, got[i], want[i])
		}
	}
}

func TestStringCharacterIteratorEqualsRefusesDifferentKind(t *testing.T) {
	it := NewStringCharacterIterator([]unicode.Char{'a'}, 0)
	if it.Equals(nil) {
		t.Fatalf("Equals(nil) should be false, not panic-prone true")
	}
}
