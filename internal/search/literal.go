package search

import (
	"github.com/exeal/ascension/internal/document"
	"github.com/exeal/ascension/internal/iterator"
	"github.com/exeal/ascension/internal/unicode"
)

// LiteralPattern performs Boyer-Moore-Horspool search over an abstract
// iterator.CharacterIterator. The alphabet is code points rather than
// UTF-16 code units, so a supplementary-plane character is one symbol for
// matching and shifting purposes, never a split surrogate pair.
//
// Because CharacterIterator exposes only single-step Next/Previous, a
// shift is realized as that many single steps rather than a true O(1)
// jump; a concrete buffer-backed searcher could do better, but this
// generic version trades that for working over any CharacterIterator,
// document-backed or string-backed alike.
type LiteralPattern struct {
	codePoints    []unicode.CodePoint
	caseSensitive bool

	lastOcc   map[unicode.CodePoint]int
	firstOcc  map[unicode.CodePoint]int
	lastBuilt bool
	firstBuilt bool
}

// NewLiteralPattern builds a pattern from a UTF-16 buffer. When
// caseSensitive is false, the pattern (and every comparison against it)
// is compared under simple case folding.
func NewLiteralPattern(pattern []unicode.Char, caseSensitive bool) *LiteralPattern {
	p := &LiteralPattern{caseSensitive: caseSensitive}
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		var cp unicode.CodePoint
		if unicode.IsHighSurrogate(c) && i+1 < len(pattern) && unicode.IsLowSurrogate(pattern[i+1]) {
			cp = unicode.Decode(c, pattern[i+1])
			i++
		} else {
			cp = unicode.CodePoint(c)
		}
		p.codePoints = append(p.codePoints, p.fold(cp))
	}
	return p
}

func (p *LiteralPattern) fold(cp unicode.CodePoint) unicode.CodePoint {
	if p.caseSensitive || cp == unicode.Done {
		return cp
	}
	return unicode.CaseFold(cp)
}

// Len returns the pattern's length in code points.
func (p *LiteralPattern) Len() int { return len(p.codePoints) }

func (p *LiteralPattern) buildForward() {
	if p.lastBuilt {
		return
	}
	p.lastOcc = make(map[unicode.CodePoint]int, len(p.codePoints))
	for i, c := range p.codePoints {
		p.lastOcc[c] = i
	}
	p.lastBuilt = true
}

func (p *LiteralPattern) buildBackward() {
	if p.firstBuilt {
		return
	}
	p.firstOcc = make(map[unicode.CodePoint]int, len(p.codePoints))
	for i := len(p.codePoints) - 1; i >= 0; i-- {
		p.firstOcc[p.codePoints[i]] = i
	}
	p.firstBuilt = true
}

// matchesAt reports whether the pattern matches the text starting at
// cursor's current position, without consuming cursor.
func (p *LiteralPattern) matchesAt(cursor iterator.CharacterIterator) bool {
	c := cursor.Clone()
	for i := 0; i < len(p.codePoints); i++ {
		cur := c.Current()
		if cur == unicode.Done || p.fold(cur) != p.codePoints[i] {
			return false
		}
		if i < len(p.codePoints)-1 {
			if !c.HasNext() {
				return false
			}
			c.Next()
		}
	}
	return true
}

// Search looks for the pattern starting at it's current position and
// scanning in direction, never stepping outside it's own bounds (a
// DocumentCharacterIterator's scope region, or a StringCharacterIterator's
// buffer). On success it returns two clones of it delimiting the match:
// matchedFirst positioned at the match's first code point, matchedLast
// positioned one code point past its last.
func (p *LiteralPattern) Search(it iterator.CharacterIterator, direction document.Direction) (matchedFirst, matchedLast iterator.CharacterIterator, ok bool) {
	if direction == document.Forward {
		return p.searchForward(it)
	}
	return p.searchBackward(it)
}

func (p *LiteralPattern) searchForward(it iterator.CharacterIterator) (iterator.CharacterIterator, iterator.CharacterIterator, bool) {
	m := len(p.codePoints)
	if m == 0 {
		return nil, nil, false
	}
	p.buildForward()
	anchor := it.Clone()
	for {
		last := anchor.Clone()
		for k := 0; k < m-1; k++ {
			if !last.HasNext() {
				return nil, nil, false
			}
			last.Next()
		}
		lastCp := last.Current()
		if lastCp == unicode.Done {
			return nil, nil, false
		}
		foldedLast := p.fold(lastCp)
		if foldedLast == p.codePoints[m-1] && p.matchesAt(anchor) {
			end := last.Clone()
			end.Next()
			return anchor, end, true
		}
		shift := m
		if idx, found := p.lastOcc[foldedLast]; found {
			shift = m - 1 - idx
		}
		if shift < 1 {
			shift = 1
		}
		for s := 0; s < shift; s++ {
			if !anchor.HasNext() {
				return nil, nil, false
			}
			anchor.Next()
		}
	}
}

func (p *LiteralPattern) searchBackward(it iterator.CharacterIterator) (iterator.CharacterIterator, iterator.CharacterIterator, bool) {
	m := len(p.codePoints)
	if m == 0 {
		return nil, nil, false
	}
	p.buildBackward()
	end := it.Clone()
	for {
		start := end.Clone()
		for k := 0; k < m; k++ {
			if !start.HasPrevious() {
				return nil, nil, false
			}
			start.Previous()
		}
		firstCp := start.Current()
		if firstCp == unicode.Done {
			return nil, nil, false
		}
		foldedFirst := p.fold(firstCp)
		if foldedFirst == p.codePoints[0] && p.matchesAt(start) {
			return start, end, true
		}
		shift := m
		if idx, found := p.firstOcc[foldedFirst]; found {
			shift = idx
		}
		if shift < 1 {
			shift = 1
		}
		for s := 0; s < shift; s++ {
			if !end.HasPrevious() {
				return nil, nil, false
			}
			end.Previous()
		}
	}
}
