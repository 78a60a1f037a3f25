package rules

import (
	"github.com/exeal/ascension/internal/arena"
	"github.com/exeal/ascension/internal/unicode"
)

// ScanLine applies rules against text (one line's worth of code units, per
// Rule's single-line contract) starting at scanner's position, trying each
// rule in order at every position and taking the first match, until the
// line is exhausted. Unmatched code points are skipped one at a time.
// Recognized tokens are allocated from a rather than individually by the
// garbage collector, since a long line under syntax highlighting can
// produce and discard thousands of Tokens per keystroke.
func ScanLine(rules []Rule, scanner *Scanner, text []unicode.Char, a *arena.Arena[Token]) []*Token {
	var tokens []*Token
	offset := uint32(0)
	total := uint32(len(text))

	for offset < total {
		remaining := text[offset:]
		if tok, id, ok := tryRules(rules, scanner, remaining); ok {
			consumed := tok.Region.End.OffsetInLine - scanner.Position.OffsetInLine
			if consumed == 0 {
				// A zero-width match would spin forever; treat it as
				// recognizing nothing and fall through to the skip path.
				_ = id
			} else {
				t := a.Alloc()
				*t = tok
				tokens = append(tokens, t)
				scanner.Preceding = lastCodePoint(remaining[:consumed])
				scanner.Position = advance(scanner.Position, consumed)
				offset += consumed
				continue
			}
		}

		cp, width := firstCodePoint(remaining)
		scanner.Position = advance(scanner.Position, width)
		scanner.Preceding = cp
		offset += width
	}
	return tokens
}

func tryRules(rules []Rule, scanner *Scanner, text []unicode.Char) (Token, TokenID, bool) {
	for _, r := range rules {
		if tok, ok := r.Parse(scanner, text); ok {
			return tok, r.ID(), true
		}
	}
	return Token{}, NoToken, false
}

func firstCodePoint(text []unicode.Char) (unicode.CodePoint, uint32) {
	if len(text) == 0 {
		return unicode.Done, 0
	}
	cp := runesOf(text)[0]
	return cp, widthOf(cp)
}

func lastCodePoint(text []unicode.Char) unicode.CodePoint {
	if len(text) == 0 {
		return unicode.Done
	}
	cps := runesOf(text)
	return cps[len(cps)-1]
}
