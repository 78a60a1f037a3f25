package rules

import (
	"github.com/exeal/ascension/internal/document"
	"github.com/exeal/ascension/internal/unicode"
)

// URIRule recognizes an IRI at the scanner's current position by
// delegating to a URIDetector.
type URIRule struct {
	id       TokenID
	detector *URIDetector
}

// NewURIRule constructs a URIRule backed by detector.
func NewURIRule(id TokenID, detector *URIDetector) *URIRule {
	return &URIRule{id: id, detector: detector}
}

func (r *URIRule) ID() TokenID { return r.id }

func (r *URIRule) Parse(scanner *Scanner, text []unicode.Char) (Token, bool) {
	s := charsToString(text)
	n := r.detector.Detect(s)
	if n == 0 {
		return Token{}, false
	}
	units := uint32(utf16Len(s[:n]))
	end := advance(scanner.Position, units)
	return Token{ID: r.id, Region: document.NewRegion(scanner.Position, end)}, true
}
