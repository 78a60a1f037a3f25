package document

import (
	"reflect"
	"testing"

	"github.com/exeal/ascension/internal/unicode"
)

func chars(s string) []unicode.Char {
	out := make([]unicode.Char, 0, len(s))
	for _, r := range s {
		out = append(out, unicode.Char(r))
	}
	return out
}

func TestMatchNewlinePrefersCRLF(t *testing.T) {
	kind, n, ok := matchNewline(chars("\r\nfoo"), 0)
	if !ok || kind != CRLF || n != 2 {
		t.Errorf("matchNewline = (%v, %d, %v), want (CRLF, 2, true)", kind, n, ok)
	}
}

func TestMatchNewlineNone(t *testing.T) {
	if _, _, ok := matchNewline(chars("abc"), 0); ok {
		t.Error("matchNewline found a newline in plain text")
	}
}

func TestSplitIntoLines(t *testing.T) {
	lines := splitIntoLines(chars("a\r\nb\nc"), LF)
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	want := []struct {
		text string
		nl   Newline
	}{
		{"a", CRLF},
		{"b", LF},
		{"c", LF},
	}
	for i, w := range want {
		if !reflect.DeepEqual(lines[i].Text, chars(w.text)) || lines[i].Newline != w.nl {
			t.Errorf("line %d = %+v, want text %q newline %v", i, lines[i], w.text, w.nl)
		}
	}
}

func TestSplitIntoLinesNoNewline(t *testing.T) {
	lines := splitIntoLines(chars("hello"), RAW)
	if len(lines) != 1 || lines[0].Newline != RAW {
		t.Fatalf("got %+v, want one RAW-terminated line", lines)
	}
}

func TestNewlineByteLength(t *testing.T) {
	if CRLF.ByteLength() != 2 {
		t.Errorf("CRLF.ByteLength() = %d, want 2", CRLF.ByteLength())
	}
	if LF.ByteLength() != 1 {
		t.Errorf("LF.ByteLength() = %d, want 1", LF.ByteLength())
	}
	if RAW.ByteLength() != 0 {
		t.Errorf("RAW.ByteLength() = %d, want 0", RAW.ByteLength())
	}
}

func TestNewlineStringPanicsOnMarker(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("String() on RAW should have panicked")
		}
	}()
	_ = RAW.String()
}
