package rules

import (
	"github.com/exeal/ascension/internal/document"
	"github.com/exeal/ascension/internal/unicode"
)

// NumberRule recognizes decimal and hexadecimal integer and floating-point
// literals per ECMAScript 3 §7.8.3, with no octal form. It rejects a match
// immediately preceded by a hex digit (so it never matches a suffix of a
// longer identifier-like token) or immediately followed by an
// identifier-start code point.
type NumberRule struct {
	id TokenID
}

// NewNumberRule constructs a NumberRule.
func NewNumberRule(id TokenID) *NumberRule { return &NumberRule{id: id} }

func (r *NumberRule) ID() TokenID { return r.id }

func isHexDigit(cp unicode.CodePoint) bool {
	return (cp >= '0' && cp <= '9') || (cp >= 'a' && cp <= 'f') || (cp >= 'A' && cp <= 'F')
}

func isDecimalDigit(cp unicode.CodePoint) bool { return cp >= '0' && cp <= '9' }

// isIdentifierStart approximates ECMAScript's IdentifierStart: a letter or
// underscore/dollar. Good enough to reject "1to2" style false matches
// without pulling in a full identifier-syntax table (out of this rule's
// scope; content-type-specific identifier syntax belongs to the
// WORD-whole-match check in the search engine, not here).
func isIdentifierStart(cp unicode.CodePoint) bool {
	return cp == '_' || cp == '$' ||
		(cp >= 'a' && cp <= 'z') || (cp >= 'A' && cp <= 'Z') || cp > 0x7F
}

func (r *NumberRule) Parse(scanner *Scanner, text []unicode.Char) (Token, bool) {
	if len(text) == 0 {
		return Token{}, false
	}
	if isHexDigit(scanner.Preceding) {
		return Token{}, false
	}
	runes := runesOf(text)
	i := 0
	n := len(runes)

	isHex := false
	if n >= 2 && runes[0] == '0' && (runes[1] == 'x' || runes[1] == 'X') {
		isHex = true
		i = 2
		start := i
		for i < n && isHexDigit(runes[i]) {
			i++
		}
		if i == start {
			return Token{}, false
		}
	} else {
		sawDigits := false
		for i < n && isDecimalDigit(runes[i]) {
			i++
			sawDigits = true
		}
		if i < n && runes[i] == '.' {
			i++
			for i < n && isDecimalDigit(runes[i]) {
				i++
				sawDigits = true
			}
		}
		if !sawDigits {
			return Token{}, false
		}
		if i < n && (runes[i] == 'e' || runes[i] == 'E') {
			j := i + 1
			if j < n && (runes[j] == '+' || runes[j] == '-') {
				j++
			}
			if j < n && isDecimalDigit(runes[j]) {
				i = j
				for i < n && isDecimalDigit(runes[i]) {
					i++
				}
			}
		}
	}
	if i == 0 {
		return Token{}, false
	}
	if isHex && i == 2 {
		return Token{}, false
	}
	if i < n && isIdentifierStart(runes[i]) {
		return Token{}, false
	}

	units := uint32(0)
	for _, cp := range runes[:i] {
		units += widthOf(cp)
	}
	end := advance(scanner.Position, units)
	return Token{ID: r.id, Region: document.NewRegion(scanner.Position, end)}, true
}
