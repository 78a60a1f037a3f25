package rules

import (
	"regexp"
	"testing"

	"github.com/exeal/ascension/internal/document"
	"github.com/exeal/ascension/internal/unicode"
)

func utf16(s string) []unicode.Char {
	var out []unicode.Char
	for _, r := range s {
		var buf [2]unicode.Char
		n, _ := unicode.Encode(unicode.CodePoint(r), buf[:])
		out = append(out, buf[:n]...)
	}
	return out
}

func TestRegionRuleLineComment(t *testing.T) {
	rule := NewRegionRule(1, utf16("//"), nil, nil, true)
	sc := &Scanner{Position: document.Position{Line: 0, OffsetInLine: 0}}
	tok, ok := rule.Parse(sc, utf16("// a comment"))
	if !ok {
		t.Fatalf("expected match")
	}
	if tok.ID != 1 {
		t.Errorf("ID = %d, want 1", tok.ID)
	}
	if tok.Region.End.OffsetInLine != uint32(len(utf16("// a comment"))) {
		t.Errorf("region end = %v, want end of line", tok.Region.End)
	}
}

func TestRegionRuleWithEscape(t *testing.T) {
	escape := unicode.Char('\\')
	rule := NewRegionRule(2, utf16(`"`), utf16(`"`), &escape, true)
	sc := &Scanner{}
	text := utf16(`"a\"b"c`)
	tok, ok := rule.Parse(sc, text)
	if !ok {
		t.Fatalf("expected match")
	}
	// Should consume `"a\"b"` (6 units), leaving `c` unconsumed.
	if tok.Region.End.OffsetInLine != 6 {
		t.Errorf("end offset = %d, want 6", tok.Region.End.OffsetInLine)
	}
}

func TestNumberRuleDecimalAndHex(t *testing.T) {
	rule := NewNumberRule(3)
	cases := []struct {
		text string
		want uint32
	}{
		{"123 abc", 3},
		{"0xFF zz", 4},
		{"3.14 x", 4},
		{"1e10 x", 4},
		{".5 x", 2},
	}
	for _, c := range cases {
		sc := &Scanner{}
		tok, ok := rule.Parse(sc, utf16(c.text))
		if !ok {
			t.Fatalf("%q: expected match", c.text)
		}
		if tok.Region.End.OffsetInLine != c.want {
			t.Errorf("%q: end offset = %d, want %d", c.text, tok.Region.End.OffsetInLine, c.want)
		}
	}
}

func TestNumberRuleRejectsAfterHexDigit(t *testing.T) {
	rule := NewNumberRule(3)
	sc := &Scanner{Preceding: unicode.CodePoint('F')}
	if _, ok := rule.Parse(sc, utf16("5 x")); ok {
		t.Fatalf("expected rejection when preceded by a hex digit")
	}
}

func TestNumberRuleRejectsIdentifierSuffix(t *testing.T) {
	rule := NewNumberRule(3)
	sc := &Scanner{}
	if _, ok := rule.Parse(sc, utf16("123to456")); ok {
		t.Fatalf("expected rejection: number immediately followed by identifier start")
	}
}

func TestWordRulePrefersLongestMatch(t *testing.T) {
	rule := NewWordRule(4, []string{"end", "endif"}, true)
	sc := &Scanner{}
	tok, ok := rule.Parse(sc, utf16("endif x"))
	if !ok {
		t.Fatalf("expected match")
	}
	if tok.Region.End.OffsetInLine != 5 {
		t.Errorf("end offset = %d, want 5 (endif)", tok.Region.End.OffsetInLine)
	}
}

func TestWordRuleCaseInsensitive(t *testing.T) {
	rule := NewWordRule(4, []string{"if"}, false)
	sc := &Scanner{}
	if _, ok := rule.Parse(sc, utf16("IF x")); !ok {
		t.Fatalf("expected case-insensitive match")
	}
}

func TestRegexRuleMatchesAtStart(t *testing.T) {
	rule := NewRegexRule(5, regexp.MustCompile(`^[A-Z][a-z]+`))
	sc := &Scanner{}
	tok, ok := rule.Parse(sc, utf16("Hello world"))
	if !ok {
		t.Fatalf("expected match")
	}
	if tok.Region.End.OffsetInLine != 5 {
		t.Errorf("end offset = %d, want 5", tok.Region.End.OffsetInLine)
	}
}

func TestURIRuleDetectsHTTPURL(t *testing.T) {
	rule := NewURIRule(6, DefaultIANAInstance())
	sc := &Scanner{}
	text := "http://example.com/path?q=1 now"
	tok, ok := rule.Parse(sc, utf16(text))
	if !ok {
		t.Fatalf("expected match")
	}
	want := uint32(len("http://example.com/path?q=1"))
	if tok.Region.End.OffsetInLine != want {
		t.Errorf("end offset = %d, want %d", tok.Region.End.OffsetInLine, want)
	}
}

func TestURIDetectorSearchFindsEmbeddedURL(t *testing.T) {
	s := "see http://example.com/path?q=1 now"
	span, ok := DefaultIANAInstance().Search(s)
	if !ok {
		t.Fatalf("expected a match")
	}
	if got := s[span.Start:span.End]; got != "http://example.com/path?q=1" {
		t.Errorf("matched %q", got)
	}
}

func TestURIDetectorRejectsUnlistedScheme(t *testing.T) {
	d := NewURIDetector()
	d.SetValidSchemes([]string{"http", "https"}, false, ",")
	if n := d.Detect("ftp://example.com"); n != 0 {
		t.Errorf("expected rejection of unlisted scheme, matched %d bytes", n)
	}
}
