package rules

import (
	"strings"

	"github.com/exeal/ascension/internal/document"
	"github.com/exeal/ascension/internal/unicode"
)

// WordRule recognizes any member of a fixed word set appearing as a
// prefix of the remaining text, backed by a hash table so the check costs
// one lookup per candidate length rather than a scan of every word.
type WordRule struct {
	id            TokenID
	caseSensitive bool
	table         map[string]struct{}
	maxWordUnits  int
}

// NewWordRule constructs a WordRule over words. When caseSensitive is
// false, words are folded before insertion and candidate prefixes are
// folded the same way before lookup.
func NewWordRule(id TokenID, words []string, caseSensitive bool) *WordRule {
	r := &WordRule{id: id, caseSensitive: caseSensitive, table: make(map[string]struct{}, len(words))}
	for _, w := range words {
		key := w
		if !caseSensitive {
			key = foldString(w)
		}
		r.table[key] = struct{}{}
		if n := utf16Len(w); n > r.maxWordUnits {
			r.maxWordUnits = n
		}
	}
	return r
}

func (r *WordRule) ID() TokenID { return r.id }

func foldString(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, rn := range s {
		b.WriteRune(rune(unicode.CaseFold(unicode.CodePoint(rn))))
	}
	return b.String()
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += unicode.EncodedLen(unicode.CodePoint(r))
	}
	return n
}

// charsToString renders a UTF-16 slice back to a Go string for hash-table
// lookup, decoding surrogate pairs as it goes.
func charsToString(text []unicode.Char) string {
	cps := runesOf(text)
	var b strings.Builder
	b.Grow(len(cps))
	for _, cp := range cps {
		if unicode.IsScalarValue(cp) {
			b.WriteRune(rune(cp))
		}
	}
	return b.String()
}

func (r *WordRule) Parse(scanner *Scanner, text []unicode.Char) (Token, bool) {
	limit := len(text)
	if r.maxWordUnits < limit {
		limit = r.maxWordUnits
	}
	// Try longest candidate first so "endif" isn't shadowed by a shorter
	// "end" also present in the set.
	for n := limit; n > 0; n-- {
		candidate := charsToString(text[:n])
		if !r.caseSensitive {
			candidate = foldString(candidate)
		}
		if _, ok := r.table[candidate]; ok {
			end := advance(scanner.Position, uint32(n))
			return Token{ID: r.id, Region: document.NewRegion(scanner.Position, end)}, true
		}
	}
	return Token{}, false
}
