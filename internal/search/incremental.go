package search

import (
	"github.com/exeal/ascension/internal/document"
	"github.com/exeal/ascension/internal/unicode"
)

// IncrementalSearcherState is the running state of an IncrementalSearcher.
type IncrementalSearcherState uint8

const (
	// Idle means no incremental search is in progress.
	Idle IncrementalSearcherState = iota
	// Running means a search is active and accepting input.
	Running
)

// IncrementalEvent is the outcome callback fired after every update.
type IncrementalEvent uint8

const (
	// Found reports a match at the current pattern.
	Found IncrementalEvent = iota
	// NotFound reports no match at the current pattern.
	NotFound
	// PatternEmpty reports the pattern is currently empty.
	PatternEmpty
	// BadRegex reports the pattern failed to compile as a regular
	// expression.
	BadRegex
	// ComplexRegex reports the compiled pattern was rejected as too
	// expensive to evaluate.
	ComplexRegex
)

// IncrementalCallback receives one IncrementalEvent per update, plus a
// wrapped-around flag reserved for a future wraparound-search feature.
type IncrementalCallback func(event IncrementalEvent, wrappedAround bool)

type incrementalOp uint8

const (
	opType incrementalOp = iota
	opJump
)

type statusSnapshot struct {
	matchedRegion document.Region
	hasMatch      bool
	direction     document.Direction
}

// IncrementalSearcher drives a type-as-you-go search session against a
// backing TextSearcher: each keystroke updates the pattern and
// re-searches, without ever recording intermediate patterns into the
// TextSearcher's history (only Start/End commits a final pattern there).
// It aborts automatically if the document or its bookmarks change out
// from under it.
type IncrementalSearcher struct {
	state IncrementalSearcherState

	doc      *document.Document
	searcher *TextSearcher
	kind     PatternKind
	caseSensitive bool

	origin    document.Position
	scope     document.Region
	direction document.Direction

	pattern []rune
	ops     []incrementalOp
	status  []statusSnapshot

	callback IncrementalCallback

	interrupted bool
}

// NewIncrementalSearcher constructs an idle IncrementalSearcher.
func NewIncrementalSearcher() *IncrementalSearcher {
	return &IncrementalSearcher{}
}

// SetCallback installs the event callback.
func (is *IncrementalSearcher) SetCallback(cb IncrementalCallback) { is.callback = cb }

// State reports whether a search is running.
func (is *IncrementalSearcher) State() IncrementalSearcherState { return is.state }

// Start begins a new incremental search over doc, scoped to scope,
// searching forward or backward from from, via searcher (kind and
// caseSensitive select how each keystroke's accumulated pattern is
// interpreted).
func (is *IncrementalSearcher) Start(doc *document.Document, from document.Position, scope document.Region, searcher *TextSearcher, kind PatternKind, caseSensitive bool, direction document.Direction) {
	is.state = Running
	is.doc = doc
	is.searcher = searcher
	is.kind = kind
	is.caseSensitive = caseSensitive
	is.origin = from
	is.scope = scope
	is.direction = direction
	is.pattern = nil
	is.ops = nil
	is.status = []statusSnapshot{{direction: direction}}
	is.interrupted = false

	doc.AddPreNotifiedListener(is)
	doc.Bookmarks().AddListener(is)
}

// DocumentAboutToChange implements document.Listener; incremental search
// never vetoes a change, it only watches for one.
func (is *IncrementalSearcher) DocumentAboutToChange(doc *document.Document, erased, inserted document.Region) bool {
	return true
}

// DocumentChanged implements document.Listener: any edit aborts the
// running search.
func (is *IncrementalSearcher) DocumentChanged(doc *document.Document, erased, inserted document.Region) {
	if is.state == Running {
		is.interrupted = true
		is.Abort()
	}
}

// BookmarkChanged implements bookmarker.Listener: a bookmark edit also
// aborts the running search.
func (is *IncrementalSearcher) BookmarkChanged() {
	if is.state == Running {
		is.interrupted = true
		is.Abort()
	}
}

// AddCharacter appends c to the pattern (a TYPE operation) and updates.
func (is *IncrementalSearcher) AddCharacter(c unicode.CodePoint) {
	if is.state != Running {
		return
	}
	is.pattern = append(is.pattern, rune(c))
	is.ops = append(is.ops, opType)
	is.update()
}

// AddString appends s to the pattern one code point at a time.
func (is *IncrementalSearcher) AddString(s string) {
	for _, r := range s {
		is.AddCharacter(unicode.CodePoint(r))
	}
}

// Next repeats the search in direction from just past the current match
// (a JUMP operation), pushing a new status snapshot.
func (is *IncrementalSearcher) Next(direction document.Direction) {
	if is.state != Running {
		return
	}
	is.direction = direction
	is.ops = append(is.ops, opJump)
	is.status = append(is.status, is.status[len(is.status)-1])
	top := &is.status[len(is.status)-1]
	top.direction = direction
	if top.hasMatch && direction == document.Forward {
		// update searches from the top match's start; move that start past
		// the current match so the same match is not found again.
		top.matchedRegion = document.Region{Start: top.matchedRegion.End, End: top.matchedRegion.End}
	}
	is.update()
}

// Undo reverses the last operation: a TYPE removes the last input code
// point (as one unit, even if it was a surrogate pair in the backing
// UTF-16 representation — here the pattern is stored as code points, so
// this is simply the last rune); a JUMP pops the last status snapshot.
func (is *IncrementalSearcher) Undo() {
	if is.state != Running || len(is.ops) == 0 {
		return
	}
	last := is.ops[len(is.ops)-1]
	is.ops = is.ops[:len(is.ops)-1]
	switch last {
	case opType:
		if len(is.pattern) > 0 {
			is.pattern = is.pattern[:len(is.pattern)-1]
		}
	case opJump:
		if len(is.status) > 1 {
			is.status = is.status[:len(is.status)-1]
		}
	}
	is.update()
}

// Reset clears the accumulated pattern and operation/status stacks
// without leaving the Running state.
func (is *IncrementalSearcher) Reset() {
	if is.state != Running {
		return
	}
	is.pattern = nil
	is.ops = nil
	is.status = []statusSnapshot{{direction: is.direction}}
}

// End commits the current pattern to the backing TextSearcher's history
// and returns to Idle, leaving the document as last matched.
func (is *IncrementalSearcher) End() (document.Region, bool) {
	region, ok := is.currentMatch()
	if is.state == Running {
		if len(is.pattern) > 0 {
			_ = is.searcher.SetPattern(string(is.pattern), is.kind, is.caseSensitive)
		}
		is.detach()
	}
	return region, ok
}

// Abort cancels the running search without touching history.
func (is *IncrementalSearcher) Abort() {
	if is.state == Running {
		is.detach()
	}
}

func (is *IncrementalSearcher) detach() {
	is.doc.RemoveListener(is)
	is.doc.Bookmarks().RemoveListener(is)
	is.state = Idle
}

func (is *IncrementalSearcher) currentMatch() (document.Region, bool) {
	if len(is.status) == 0 {
		return document.Region{}, false
	}
	top := is.status[len(is.status)-1]
	return top.matchedRegion, top.hasMatch
}

// update pushes the current pattern to the backing TextSearcher without
// recording it to history, searches, and fires the appropriate callback
// event; on a find, the matched region replaces the top snapshot's.
func (is *IncrementalSearcher) update() {
	if len(is.pattern) == 0 {
		is.status[len(is.status)-1].hasMatch = false
		is.fire(PatternEmpty)
		return
	}
	if err := is.searcher.setPatternWithoutHistory(string(is.pattern), is.kind, is.caseSensitive); err != nil {
		if _, ok := err.(*BadPatternError); ok {
			is.fire(BadRegex)
			return
		}
		is.fire(ComplexRegex)
		return
	}
	from := is.origin
	if top := is.status[len(is.status)-1]; top.hasMatch {
		from = top.matchedRegion.Start
	}
	region, found, err := is.searcher.Search(is.doc, from, is.scope, is.direction)
	if err != nil {
		is.fire(ComplexRegex)
		return
	}
	top := &is.status[len(is.status)-1]
	top.hasMatch = found
	if found {
		top.matchedRegion = region
		is.fire(Found)
	} else {
		is.fire(NotFound)
	}
}

func (is *IncrementalSearcher) fire(event IncrementalEvent) {
	if is.callback != nil {
		is.callback(event, false)
	}
}
