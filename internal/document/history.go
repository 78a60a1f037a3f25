package document

import (
	"time"

	"github.com/exeal/ascension/internal/unicode"
)

// DocumentChange is the undo unit Document records for a single Replace:
// the region it erased (expressed against content as it stood before the
// change), the lines that region held, and the literal text that was
// spliced in to replace it.
type DocumentChange struct {
	Erased       Region
	ErasedText   []Line
	InsertedText []unicode.Char
	InsertedEnd  Position
	Timestamp    time.Time
}

// changeEntry wraps a DocumentChange, or a named run of them recorded
// between BeginCompoundChange/EndCompoundChange.
type changeEntry struct {
	single *DocumentChange
	group  []DocumentChange
	name   string
}

// history is Document's nestable undo/redo stack. Rather than tracking a
// single grouping flag, compoundDepth counts nested BeginCompoundChange
// calls so that a compound change started from within another compound
// change folds into the outer one instead of prematurely closing it.
type history struct {
	undoStack []*changeEntry
	redoStack []*changeEntry

	compoundDepth int
	compoundName  string
	compoundRuns  []DocumentChange

	maxEntries int

	// onceCleared latches true the first time Clear runs: some callers
	// use it to skip an optimization that assumes history has never
	// been discarded.
	onceCleared bool
}

func newHistory(maxEntries int) *history {
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	return &history{maxEntries: maxEntries}
}

// Record appends a single change to the history, folding it into the
// current compound run if one is open.
func (h *history) Record(c DocumentChange) {
	if h.compoundDepth > 0 {
		h.compoundRuns = append(h.compoundRuns, c)
		return
	}
	h.push(&changeEntry{single: &c})
}

func (h *history) push(e *changeEntry) {
	h.undoStack = append(h.undoStack, e)
	h.redoStack = nil
	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// BeginCompoundChange opens (or extends, if already open) a named run of
// changes that Undo/Redo will treat as a single unit.
func (h *history) BeginCompoundChange(name string) {
	if h.compoundDepth == 0 {
		h.compoundName = name
		h.compoundRuns = nil
	}
	h.compoundDepth++
}

// EndCompoundChange closes one level of compound nesting. Only when the
// depth reaches zero is the accumulated run pushed onto the undo stack.
func (h *history) EndCompoundChange() error {
	if h.compoundDepth == 0 {
		return &IllegalStateError{Message: "EndCompoundChange with no matching BeginCompoundChange"}
	}
	h.compoundDepth--
	if h.compoundDepth > 0 {
		return nil
	}
	if len(h.compoundRuns) == 0 {
		h.compoundRuns = nil
		return nil
	}
	h.push(&changeEntry{group: h.compoundRuns, name: h.compoundName})
	h.compoundRuns = nil
	return nil
}

// IsNestingCompoundChange reports whether a compound run is open.
func (h *history) IsNestingCompoundChange() bool { return h.compoundDepth > 0 }

// CanUndo reports whether an undo entry is available.
func (h *history) CanUndo() bool { return len(h.undoStack) > 0 }

// CanRedo reports whether a redo entry is available.
func (h *history) CanRedo() bool { return len(h.redoStack) > 0 }

// popUndo removes and returns the most recent undo entry, in the order its
// changes must be reverted (last-applied first).
func (h *history) popUndo() (*changeEntry, bool) {
	if len(h.undoStack) == 0 {
		return nil, false
	}
	e := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, e)
	return e, true
}

// popRedo removes and returns the most recently undone entry, in the order
// its changes must be reapplied (first-applied first).
func (h *history) popRedo() (*changeEntry, bool) {
	if len(h.redoStack) == 0 {
		return nil, false
	}
	e := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, e)
	return e, true
}

// Clear discards all undo/redo state and closes any open compound run.
func (h *history) Clear() {
	h.undoStack = nil
	h.redoStack = nil
	h.compoundDepth = 0
	h.compoundRuns = nil
	h.onceCleared = true
}

// changes returns e's changes in forward (applied) order.
func (e *changeEntry) changes() []DocumentChange {
	if e.single != nil {
		return []DocumentChange{*e.single}
	}
	return e.group
}
