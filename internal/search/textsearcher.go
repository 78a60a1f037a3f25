package search

import (
	"regexp"
	stdutf16 "unicode/utf16"

	"github.com/exeal/ascension/internal/document"
	"github.com/exeal/ascension/internal/iterator"
	"github.com/exeal/ascension/internal/unicode"
	"github.com/rivo/uniseg"
)

func utf16ToString(chars []unicode.Char) string {
	units := make([]uint16, len(chars))
	for i, c := range chars {
		units[i] = uint16(c)
	}
	return string(stdutf16.Decode(units))
}

func stringToUTF16(s string) []unicode.Char {
	units := stdutf16.Encode([]rune(s))
	out := make([]unicode.Char, len(units))
	for i, u := range units {
		out[i] = unicode.Char(u)
	}
	return out
}

// lastResult caches the outcome of the previous Search call so that
// repeated single-step calls against an unchanged document revision don't
// redo work already done.
type lastResult struct {
	valid     bool
	region    document.Region
	revision  uint64
	direction document.Direction
	from      document.Position
}

// TextSearcher finds and replaces text within a Document using either a
// literal or a regular-expression pattern, with bounded pattern and
// replacement histories and a configurable whole-match boundary check.
type TextSearcher struct {
	kind          PatternKind
	raw           string
	caseSensitive bool
	wholeMatch    WholeMatch

	literal *LiteralPattern
	regex   *regexp.Regexp

	patterns     *stringHistory
	replacements *stringHistory

	last lastResult
}

// NewTextSearcher returns a TextSearcher with default (16-entry) history
// capacity and CodeUnit whole-match mode.
func NewTextSearcher() *TextSearcher {
	return &TextSearcher{
		patterns:     newStringHistory(defaultHistoryCapacity),
		replacements: newStringHistory(defaultHistoryCapacity),
	}
}

// SetHistoryCapacity overrides the default capacity for both the pattern
// and replacement histories; it is clamped to at least 4.
func (ts *TextSearcher) SetHistoryCapacity(n int) {
	ts.patterns = newStringHistory(n)
	ts.replacements = newStringHistory(n)
}

// SetWholeMatch configures the boundary check Search and ReplaceAll apply
// to each candidate match.
func (ts *TextSearcher) SetWholeMatch(w WholeMatch) { ts.wholeMatch = w }

// PatternHistory returns the recorded patterns, most recent first.
func (ts *TextSearcher) PatternHistory() []string { return ts.patterns.Entries() }

// ReplacementHistory returns the recorded replacements, most recent first.
func (ts *TextSearcher) ReplacementHistory() []string { return ts.replacements.Entries() }

// SetPattern installs pattern as the current search pattern, compiling it
// as a regular expression when kind is Regex or Migemo (MIGEMO itself is
// out of scope; a MIGEMO pattern is accepted and treated as an
// already-compiled regular expression, per the resolved open question).
// The pattern is pushed to history immediately; callers that only want to
// preview a pattern (an incremental search keystroke) should use
// setPatternWithoutHistory instead.
func (ts *TextSearcher) SetPattern(pattern string, kind PatternKind, caseSensitive bool) error {
	if err := ts.setPatternWithoutHistory(pattern, kind, caseSensitive); err != nil {
		return err
	}
	ts.patterns.Push(pattern)
	return nil
}

func (ts *TextSearcher) setPatternWithoutHistory(pattern string, kind PatternKind, caseSensitive bool) error {
	ts.kind = kind
	ts.raw = pattern
	ts.caseSensitive = caseSensitive
	ts.literal = nil
	ts.regex = nil
	ts.last = lastResult{}
	switch kind {
	case Literal:
		ts.literal = NewLiteralPattern(stringToUTF16(pattern), caseSensitive)
	case Regex, Migemo:
		flags := ""
		if !caseSensitive {
			flags = "(?i)"
		}
		re, err := regexp.Compile(flags + pattern)
		if err != nil {
			return &BadPatternError{Pattern: pattern, Err: err}
		}
		ts.regex = re
	}
	return nil
}

// SetReplacement records replacement as the current replacement text and
// pushes it to the replacement history.
func (ts *TextSearcher) SetReplacement(replacement string) {
	ts.replacements.Push(replacement)
}

// HasPattern reports whether a pattern has been installed.
func (ts *TextSearcher) HasPattern() bool {
	return ts.literal != nil || ts.regex != nil
}

// Search looks for the current pattern within scope, starting at from and
// scanning in direction, returning the matched region. A cached result is
// reused when from, doc's revision and direction match the previous call's.
func (ts *TextSearcher) Search(doc *document.Document, from document.Position, scope document.Region, direction document.Direction) (document.Region, bool, error) {
	if !ts.HasPattern() {
		return document.Region{}, false, &EmptyPatternError{}
	}
	if ts.last.valid && ts.last.direction == direction && ts.last.revision == doc.Revision() && ts.last.from == from {
		return ts.last.region, true, nil
	}
	var (
		region document.Region
		found  bool
		err    error
	)
	switch ts.kind {
	case Literal:
		region, found, err = ts.searchLiteral(doc, from, scope, direction)
	default:
		region, found, err = ts.searchRegex(doc, from, scope, direction)
	}
	if err != nil {
		return document.Region{}, false, err
	}
	if found {
		ts.last = lastResult{valid: true, region: region, revision: doc.Revision(), direction: direction, from: from}
	}
	return region, found, nil
}

func (ts *TextSearcher) searchLiteral(doc *document.Document, from document.Position, scope document.Region, direction document.Direction) (document.Region, bool, error) {
	for {
		it := iterator.NewDocumentCharacterIteratorAt(doc, scope, from)
		start, end, ok := ts.literal.Search(it, direction)
		if !ok {
			return document.Region{}, false, nil
		}
		s := start.(*iterator.DocumentCharacterIterator)
		e := end.(*iterator.DocumentCharacterIterator)
		region := document.NewRegion(s.Position(), e.Position())
		if ts.wholeMatchOK(doc, scope, region) {
			return region, true, nil
		}
		if direction == document.Forward {
			from = s.Position()
			it2 := iterator.NewDocumentCharacterIteratorAt(doc, scope, from)
			if !it2.HasNext() {
				return document.Region{}, false, nil
			}
			it2.Next()
			from = it2.Position()
		} else {
			from = e.Position()
			it2 := iterator.NewDocumentCharacterIteratorAt(doc, scope, from)
			if !it2.HasPrevious() {
				return document.Region{}, false, nil
			}
			it2.Previous()
			from = it2.Position()
		}
	}
}

func (ts *TextSearcher) searchRegex(doc *document.Document, from document.Position, scope document.Region, direction document.Direction) (document.Region, bool, error) {
	text, err := doc.Text(scope)
	if err != nil {
		return document.Region{}, false, err
	}
	s := utf16ToString(text)
	offset := positionToOffset(doc, scope.Start, from)

	if direction == document.Forward {
		for searchFrom := offset; searchFrom <= len(text); {
			byteOffset := utf16OffsetToByteOffset(s, searchFrom, text)
			loc := ts.regex.FindStringIndex(s[byteOffset:])
			if loc == nil {
				return document.Region{}, false, nil
			}
			startUnits := searchFrom + byteOffsetToUTF16Offset(s[byteOffset:], loc[0])
			endUnits := searchFrom + byteOffsetToUTF16Offset(s[byteOffset:], loc[1])
			region := document.NewRegion(
				offsetToPosition(doc, scope, startUnits),
				offsetToPosition(doc, scope, endUnits),
			)
			if ts.wholeMatchOK(doc, scope, region) {
				return region, true, nil
			}
			searchFrom = startUnits + 1
			if loc[0] == loc[1] {
				searchFrom = endUnits + 1
			}
		}
		return document.Region{}, false, nil
	}

	// Backward: emulate with lookingAt-style anchored matches, scanning
	// candidate start positions leftward from the search origin.
	best := -1
	bestEnd := -1
	for candidate := 0; candidate <= offset; candidate++ {
		byteOffset := utf16OffsetToByteOffset(s, candidate, text)
		loc := ts.regex.FindStringIndex(s[byteOffset:])
		if loc == nil || loc[0] != 0 {
			continue
		}
		endUnits := candidate + byteOffsetToUTF16Offset(s[byteOffset:], loc[1])
		if endUnits > offset {
			continue
		}
		region := document.NewRegion(offsetToPosition(doc, scope, candidate), offsetToPosition(doc, scope, endUnits))
		if ts.wholeMatchOK(doc, scope, region) {
			best = candidate
			bestEnd = endUnits
		}
	}
	if best < 0 {
		return document.Region{}, false, nil
	}
	return document.NewRegion(offsetToPosition(doc, scope, best), offsetToPosition(doc, scope, bestEnd)), true, nil
}

// wholeMatchOK applies ts.wholeMatch's boundary check to region within
// scope. Per the resolved open question, a grapheme/word check succeeds
// only when both endpoints sit strictly on a boundary within scope; a
// zero-width boundary at the very edge of scope does not by itself
// satisfy the check unless the endpoint coincides with scope's own edge.
func (ts *TextSearcher) wholeMatchOK(doc *document.Document, scope document.Region, region document.Region) bool {
	if ts.wholeMatch == CodeUnit {
		return true
	}
	text, err := doc.Text(scope)
	if err != nil {
		return false
	}
	s := utf16ToString(text)
	startUnits := positionToOffset(doc, scope.Start, region.Start)
	endUnits := positionToOffset(doc, scope.Start, region.End)
	startByte := utf16OffsetToByteOffset(s, startUnits, text)
	endByte := utf16OffsetToByteOffset(s, endUnits, text)
	switch ts.wholeMatch {
	case GraphemeCluster:
		return isGraphemeBoundary(s, startByte) && isGraphemeBoundary(s, endByte)
	case Word:
		return isWordBoundary(s, startByte) && isWordBoundary(s, endByte)
	default:
		return true
	}
}

func isGraphemeBoundary(s string, byteOffset int) bool {
	if byteOffset <= 0 || byteOffset >= len(s) {
		return true
	}
	pos := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if pos == byteOffset {
			return true
		}
		if pos > byteOffset {
			return false
		}
		pos += len(cluster)
	}
	return pos == byteOffset
}

func isWordBoundary(s string, byteOffset int) bool {
	if byteOffset <= 0 || byteOffset >= len(s) {
		return true
	}
	pos := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		var word string
		word, rest, state = uniseg.FirstWordInString(rest, state)
		if pos == byteOffset {
			return true
		}
		if pos > byteOffset {
			return false
		}
		pos += len(word)
	}
	return pos == byteOffset
}

// positionToOffset returns the UTF-16 code-unit distance from base to p,
// both expressed in doc's coordinates, counting each line's literal
// terminator at its real width (unlike iterator.DocumentCharacterIterator,
// which counts every terminator as one synthetic unit).
func positionToOffset(doc *document.Document, base, p document.Position) int {
	if p.Line == base.Line {
		return int(p.OffsetInLine) - int(base.OffsetInLine)
	}
	baseLine := doc.Line(base.Line)
	total := baseLine.Length() - int(base.OffsetInLine)
	if baseLine.Newline.IsLiteral() {
		total += len(baseLine.Newline.UTF16())
	}
	for ln := base.Line + 1; ln < p.Line; ln++ {
		l := doc.Line(ln)
		total += l.Length()
		if l.Newline.IsLiteral() {
			total += len(l.Newline.UTF16())
		}
	}
	total += int(p.OffsetInLine)
	return total
}

// offsetToPosition is the inverse of positionToOffset, walking forward
// from scope.Start by n UTF-16 code units.
func offsetToPosition(doc *document.Document, scope document.Region, n int) document.Position {
	line := scope.Start.Line
	offset := int(scope.Start.OffsetInLine)
	remaining := n
	for {
		l := doc.Line(line)
		avail := l.Length() - offset
		if remaining <= avail {
			return document.Position{Line: line, OffsetInLine: uint32(offset + remaining)}
		}
		remaining -= avail
		nlLen := 0
		if line != scope.End.Line && l.Newline.IsLiteral() {
			nlLen = len(l.Newline.UTF16())
		}
		if remaining <= nlLen || line >= scope.End.Line {
			return document.Position{Line: line, OffsetInLine: uint32(l.Length())}
		}
		remaining -= nlLen
		line++
		offset = 0
	}
}

// utf16OffsetToByteOffset converts a UTF-16 code-unit offset within text
// (decoded as s) to a byte offset into s.
func utf16OffsetToByteOffset(s string, units int, text []unicode.Char) int {
	if units <= 0 {
		return 0
	}
	if units >= len(text) {
		return len(s)
	}
	return len(utf16ToString(text[:units]))
}

// byteOffsetToUTF16Offset converts a byte offset within s to the
// corresponding UTF-16 code-unit count.
func byteOffsetToUTF16Offset(s string, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset >= len(s) {
		byteOffset = len(s)
	}
	return len(stringToUTF16(s[:byteOffset]))
}
