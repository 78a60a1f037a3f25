package rules

import (
	"regexp"

	"github.com/exeal/ascension/internal/document"
	"github.com/exeal/ascension/internal/unicode"
)

// RegexRule recognizes whatever Pattern matches starting exactly at the
// scanner's current position (not merely somewhere within text).
type RegexRule struct {
	id      TokenID
	pattern *regexp.Regexp
}

// NewRegexRule constructs a RegexRule from an already-compiled pattern.
func NewRegexRule(id TokenID, pattern *regexp.Regexp) *RegexRule {
	return &RegexRule{id: id, pattern: pattern}
}

func (r *RegexRule) ID() TokenID { return r.id }

func (r *RegexRule) Parse(scanner *Scanner, text []unicode.Char) (Token, bool) {
	s := charsToString(text)
	loc := r.pattern.FindStringIndex(s)
	if loc == nil || loc[0] != 0 {
		return Token{}, false
	}
	units := uint32(utf16Len(s[:loc[1]]))
	end := advance(scanner.Position, units)
	return Token{ID: r.id, Region: document.NewRegion(scanner.Position, end)}, true
}
