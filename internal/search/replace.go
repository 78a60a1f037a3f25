package search

import (
	"github.com/exeal/ascension/internal/document"
	"github.com/exeal/ascension/internal/unicode"
)

// ReplaceAction is the caller's decision about one match found during
// ReplaceAll.
type ReplaceAction uint8

const (
	// Replace substitutes this match and continues.
	Replace ReplaceAction = iota
	// Skip leaves this match untouched and continues.
	Skip
	// ReplaceAllRemaining substitutes this match and every later one
	// without further callbacks.
	ReplaceAllRemaining
	// Exit stops without touching this match.
	Exit
	// ReplaceAndExit substitutes this match, then stops.
	ReplaceAndExit
	// Undo reverts the previous replacement (this call's match is not
	// itself acted on) and continues from before that replacement.
	Undo
)

// ReplaceAllCallback is consulted once per match unless a prior call
// returned ReplaceAllRemaining. matched is the match's current region;
// replacement is the literal text that would be substituted.
type ReplaceAllCallback func(doc *document.Document, matched document.Region, replacement []unicode.Char) ReplaceAction

// ReplaceAll finds every match of ts's current pattern within scope and
// substitutes replacement (taken literally; no backreference expansion),
// consulting callback per match when non-nil. It does not wrap the run in
// a compound change; callers that want the whole run undoable as one step
// must call doc.BeginCompoundChange/EndCompoundChange themselves.
//
// The scope's end is tracked via an adaptive Point so that replacements
// earlier in scope that change its length don't desync later matches.
func (ts *TextSearcher) ReplaceAll(doc *document.Document, scope document.Region, replacement []unicode.Char, callback ReplaceAllCallback) (int, error) {
	if !ts.HasPattern() {
		return 0, &EmptyPatternError{}
	}

	endPoint := document.NewPoint(scope.End)
	endPoint.SetGravity(document.GravityBackward)
	doc.TrackPoint(endPoint)
	defer doc.UntrackPoint(endPoint)

	count := 0
	replaceAllRemaining := false
	var lastMatch document.Region
	var lastReplacementLen int
	hadLast := false

	pos := scope.Start
	for {
		curScope := document.NewRegion(scope.Start, endPoint.Position())
		region, found, err := ts.Search(doc, pos, curScope, document.Forward)
		if err != nil {
			return count, &ReplacementInterrupted[int]{Result: count}
		}
		if !found {
			return count, nil
		}

		action := Replace
		if !replaceAllRemaining && callback != nil {
			action = callback(doc, region, replacement)
		} else if replaceAllRemaining {
			action = Replace
		}

		switch action {
		case Skip:
			pos = advancePastEmpty(region)
			continue
		case Exit:
			return count, nil
		case Undo:
			if !hadLast {
				pos = advancePastEmpty(region)
				continue
			}
			undone := document.NewRegion(lastMatch.Start, document.Position{Line: lastMatch.Start.Line, OffsetInLine: lastMatch.Start.OffsetInLine + uint32(lastReplacementLen)})
			if err := doc.Undo(); err != nil {
				return count, &ReplacementInterrupted[int]{Result: count}
			}
			_ = undone
			count--
			pos = lastMatch.Start
			hadLast = false
			continue
		case ReplaceAllRemaining:
			replaceAllRemaining = true
			fallthrough
		case ReplaceAndExit, Replace:
			if err := doc.Replace(region, replacement); err != nil {
				return count, &ReplacementInterrupted[int]{Result: count}
			}
			count++
			lastMatch = document.NewRegion(region.Start, document.Position{Line: region.Start.Line, OffsetInLine: region.Start.OffsetInLine + uint32(len(replacement))})
			lastReplacementLen = len(replacement)
			hadLast = true
			pos = lastMatch.End
			if action == ReplaceAndExit {
				return count, nil
			}
		}
	}
}

// advancePastEmpty steps one position past region.Start, guaranteeing
// forward progress even for a zero-width match.
func advancePastEmpty(region document.Region) document.Position {
	if !region.IsEmpty() {
		return region.End
	}
	return document.Position{Line: region.Start.Line, OffsetInLine: region.Start.OffsetInLine + 1}
}
