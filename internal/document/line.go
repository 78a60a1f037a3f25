package document

import "github.com/exeal/ascension/internal/unicode"

// Newline identifies a line terminator. LF through PS are literal kinds
// that survive a RAW round trip verbatim; RAW and DocumentInputNewline are
// policy markers that resolve to one of the literal kinds only when a line
// is actually written out (RAW keeps whatever kind the line already has;
// DocumentInputNewline defers to the owning DocumentInput's preferred
// terminator).
type Newline uint8

const (
	LF Newline = iota
	CR
	CRLF
	NEL
	LS
	PS
	RAW
	DocumentInputNewline
)

// IsLiteral reports whether n is one of the six concrete terminator kinds
// rather than a resolve-at-use policy marker.
func (n Newline) IsLiteral() bool { return n <= PS }

// String returns the newline's literal UTF-16 representation. It panics if
// called on a policy marker; resolve those first.
func (n Newline) String() string {
	switch n {
	case LF:
		return "\n"
	case CR:
		return "\r"
	case CRLF:
		return "\r\n"
	case NEL:
		return ""
	case LS:
		return " "
	case PS:
		return " "
	default:
		panic("document: Newline.String called on a non-literal marker")
	}
}

// UTF16 returns the newline's literal UTF-16 code units. It panics if
// called on a policy marker; resolve those first.
func (n Newline) UTF16() []unicode.Char {
	for _, e := range newlineLiterals {
		if e.kind == n {
			return e.units
		}
	}
	panic("document: Newline.UTF16 called on a non-literal marker")
}

// ByteLength returns the UTF-16 code-unit length of the newline's literal
// representation.
func (n Newline) ByteLength() int {
	switch n {
	case CRLF:
		return 2
	case RAW, DocumentInputNewline:
		return 0
	default:
		return 1
	}
}

// newlineLiterals pairs each literal Newline with its UTF-16 encoding, used
// both to recognize terminators while splitting inserted text and to emit
// them on write.
var newlineLiterals = []struct {
	kind Newline
	units []unicode.Char
}{
	{CRLF, []unicode.Char{'\r', '\n'}}, // longest match first
	{LF, []unicode.Char{'\n'}},
	{CR, []unicode.Char{'\r'}},
	{NEL, []unicode.Char{0x0085}},
	{LS, []unicode.Char{0x2028}},
	{PS, []unicode.Char{0x2029}},
}

// matchNewline reports whether text[at:] begins with a literal newline,
// returning its kind and code-unit length.
func matchNewline(text []unicode.Char, at int) (Newline, int, bool) {
	for _, e := range newlineLiterals {
		n := len(e.units)
		if at+n > len(text) {
			continue
		}
		match := true
		for i, u := range e.units {
			if text[at+i] != u {
				match = false
				break
			}
		}
		if match {
			return e.kind, n, true
		}
	}
	return 0, 0, false
}

// Line is one line of document content: its text (without any terminator),
// the kind of terminator that follows it (meaningless for the document's
// last line), and the document revision at which it was last touched.
type Line struct {
	Text     []unicode.Char
	Newline  Newline
	Revision uint64
}

// Length returns the number of UTF-16 code units in the line's text,
// excluding its terminator.
func (l Line) Length() int { return len(l.Text) }

// splitIntoLines splits text at literal newlines, returning one Line per
// segment. The final segment carries defaultNewline as a placeholder (the
// caller is responsible for stitching it to whatever followed in the
// document, since a mid-document insertion's tail segment is not
// necessarily the document's last line).
func splitIntoLines(text []unicode.Char, defaultNewline Newline) []Line {
	var lines []Line
	start := 0
	i := 0
	for i < len(text) {
		if kind, n, ok := matchNewline(text, i); ok {
			lines = append(lines, Line{Text: append([]unicode.Char(nil), text[start:i]...), Newline: kind})
			i += n
			start = i
			continue
		}
		i++
	}
	lines = append(lines, Line{Text: append([]unicode.Char(nil), text[start:]...), Newline: defaultNewline})
	return lines
}
