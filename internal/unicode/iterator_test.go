package unicode

import "testing"

func TestUTF16IteratorOverSurrogatePair(t *testing.T) {
	// "a" + U+1F600 + "b" as UTF-16 code units.
	seq := []Char{'a', 0xD83D, 0xDE00, 'b'}
	it := NewUTF16Iterator(seq, 0)

	if got := it.Current(); got != CodePoint('a') {
		t.Fatalf("Current() = %#x, want 'a'", got)
	}

	if err := it.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if got := it.Current(); got != 0x1F600 {
		t.Fatalf("Current() after Next = %#x, want 1F600", got)
	}
	if it.Position() != 1 {
		t.Fatalf("Position = %d, want 1", it.Position())
	}

	if err := it.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if it.Position() != 3 {
		t.Fatalf("Position after stepping over pair = %d, want 3", it.Position())
	}
	if got := it.Current(); got != CodePoint('b') {
		t.Fatalf("Current() = %#x, want 'b'", got)
	}

	if err := it.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if it.HasNext() {
		t.Fatal("HasNext should be false at end")
	}
	if got := it.Current(); got != Done {
		t.Fatalf("Current() at end = %#x, want Done", got)
	}

	if err := it.Next(); err == nil {
		t.Fatal("Next past end should error on checked iterator")
	}
}

func TestUTF16IteratorPreviousOverSurrogatePair(t *testing.T) {
	seq := []Char{'a', 0xD83D, 0xDE00, 'b'}
	it := NewUTF16Iterator(seq, 4)

	if err := it.Previous(); err != nil {
		t.Fatalf("Previous: %v", err)
	}
	if got := it.Current(); got != CodePoint('b') {
		t.Fatalf("Current() = %#x, want 'b'", got)
	}

	if err := it.Previous(); err != nil {
		t.Fatalf("Previous: %v", err)
	}
	if it.Position() != 1 {
		t.Fatalf("Position = %d, want 1 (start of pair)", it.Position())
	}
	if got := it.Current(); got != 0x1F600 {
		t.Fatalf("Current() = %#x, want 1F600", got)
	}
}

func TestUTF32To16IteratorSurrogatePair(t *testing.T) {
	seq := []CodePoint{'a', 0x1F600, 'b'}
	it := NewUTF32To16Iterator(seq, 1)

	c, ok := it.Current()
	if !ok || c != 0xD83D {
		t.Fatalf("Current() = %#x, %v, want D83D", c, ok)
	}

	it.Next()
	c, ok = it.Current()
	if !ok || c != 0xDE00 {
		t.Fatalf("Current() after Next = %#x, %v, want DE00", c, ok)
	}

	it.Next()
	c, ok = it.Current()
	if !ok || c != 'b' {
		t.Fatalf("Current() = %#x, %v, want 'b'", c, ok)
	}

	it.Previous()
	c, ok = it.Current()
	if !ok || c != 0xDE00 {
		t.Fatalf("Previous() landed on %#x, %v, want DE00 (second half)", c, ok)
	}
}
