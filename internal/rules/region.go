package rules

import (
	"github.com/exeal/ascension/internal/document"
	"github.com/exeal/ascension/internal/unicode"
)

// RegionRule recognizes a delimited span: literal Start, then everything
// up to (and including) the first unescaped occurrence of End. An empty
// End means "until the end of the line" (a line comment, for instance).
// Escape, if non-nil, is a single code unit that protects the code unit
// immediately following it from being read as the start of End.
type RegionRule struct {
	id            TokenID
	start, end    []unicode.Char
	escape        *unicode.Char
	caseSensitive bool
}

// NewRegionRule constructs a RegionRule. Passing a nil or empty end makes
// the region run to the end of the line.
func NewRegionRule(id TokenID, start, end []unicode.Char, escape *unicode.Char, caseSensitive bool) *RegionRule {
	return &RegionRule{id: id, start: start, end: end, escape: escape, caseSensitive: caseSensitive}
}

func (r *RegionRule) ID() TokenID { return r.id }

func charsEqual(a, b unicode.Char, caseSensitive bool) bool {
	if caseSensitive {
		return a == b
	}
	return unicode.CaseFold(unicode.CodePoint(a)) == unicode.CaseFold(unicode.CodePoint(b))
}

func hasPrefix(text, prefix []unicode.Char, caseSensitive bool) bool {
	if len(text) < len(prefix) {
		return false
	}
	for i, c := range prefix {
		if !charsEqual(text[i], c, caseSensitive) {
			return false
		}
	}
	return true
}

func (r *RegionRule) Parse(scanner *Scanner, text []unicode.Char) (Token, bool) {
	if len(text) < len(r.start) {
		return Token{}, false
	}
	if !hasPrefix(text, r.start, r.caseSensitive) {
		return Token{}, false
	}
	if len(r.end) == 0 {
		end := advance(scanner.Position, uint32(len(text)))
		return Token{ID: r.id, Region: document.NewRegion(scanner.Position, end)}, true
	}
	i := len(r.start)
	for i < len(text) {
		if r.escape != nil && charsEqual(text[i], *r.escape, r.caseSensitive) {
			i += 2 // skip escape + escaped unit, even past end of text
			continue
		}
		if hasPrefix(text[i:], r.end, r.caseSensitive) {
			i += len(r.end)
			end := advance(scanner.Position, uint32(i))
			return Token{ID: r.id, Region: document.NewRegion(scanner.Position, end)}, true
		}
		i++
	}
	// End not found before the line ran out: the region extends to the
	// end of the available text (a partitioner handling true multi-line
	// regions re-invokes this rule with the continuation on the next
	// line and merges the two tokens).
	end := advance(scanner.Position, uint32(len(text)))
	return Token{ID: r.id, Region: document.NewRegion(scanner.Position, end)}, true
}
