package document

import (
	"testing"

	"github.com/exeal/ascension/internal/unicode"
)

func textOf(t *testing.T, d *Document) string {
	t.Helper()
	r := d.AccessibleRegion()
	got, err := d.Text(r)
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	out := make([]rune, len(got))
	for i, c := range got {
		out[i] = rune(c)
	}
	return string(out)
}

func TestNewDocumentIsEmpty(t *testing.T) {
	d := New()
	if d.LineCount() != 1 {
		t.Fatalf("LineCount() = %d, want 1", d.LineCount())
	}
	if textOf(t, d) != "" {
		t.Errorf("new document should have no text")
	}
}

func TestInsertSingleLine(t *testing.T) {
	d := New()
	if err := d.Insert(Position{0, 0}, chars("hello")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if got := textOf(t, d); got != "hello" {
		t.Errorf("text = %q, want %q", got, "hello")
	}
}

func TestInsertTwoLines(t *testing.T) {
	d := New()
	if err := d.Insert(Position{0, 0}, chars("hello\nworld")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if d.LineCount() != 2 {
		t.Fatalf("LineCount() = %d, want 2", d.LineCount())
	}
	if got := textOf(t, d); got != "hello\nworld" {
		t.Errorf("text = %q, want %q", got, "hello\nworld")
	}
	l0 := d.Line(0)
	if string(runesOf(l0.Text)) != "hello" || l0.Newline != LF {
		t.Errorf("line 0 = %+v, want text hello newline LF", l0)
	}
}

func TestEraseAcrossLines(t *testing.T) {
	d := New()
	must(t, d.Insert(Position{0, 0}, chars("aaa\nbbb\nccc")))
	if err := d.Erase(Region{Start: Position{0, 1}, End: Position{2, 1}}); err != nil {
		t.Fatalf("Erase: %v", err)
	}
	if got := textOf(t, d); got != "acc" {
		t.Errorf("text = %q, want %q", got, "acc")
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	d := New()
	must(t, d.Insert(Position{0, 0}, chars("hello")))
	must(t, d.Insert(Position{0, 5}, chars(" world")))
	if got := textOf(t, d); got != "hello world" {
		t.Fatalf("text = %q, want %q", got, "hello world")
	}

	if err := d.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got := textOf(t, d); got != "hello" {
		t.Errorf("after first undo, text = %q, want %q", got, "hello")
	}

	if err := d.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got := textOf(t, d); got != "" {
		t.Errorf("after second undo, text = %q, want empty", got)
	}
	if d.CanUndo() {
		t.Error("CanUndo() = true after undoing everything")
	}

	if err := d.Redo(); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if got := textOf(t, d); got != "hello" {
		t.Errorf("after first redo, text = %q, want %q", got, "hello")
	}
	if err := d.Redo(); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if got := textOf(t, d); got != "hello world" {
		t.Errorf("after second redo, text = %q, want %q", got, "hello world")
	}
}

func TestCompoundChangeUndoesAsOneUnit(t *testing.T) {
	d := New()
	d.BeginCompoundChange("type word")
	must(t, d.Insert(Position{0, 0}, chars("h")))
	must(t, d.Insert(Position{0, 1}, chars("i")))
	if err := d.EndCompoundChange(); err != nil {
		t.Fatalf("EndCompoundChange: %v", err)
	}
	if got := textOf(t, d); got != "hi" {
		t.Fatalf("text = %q, want %q", got, "hi")
	}
	if err := d.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got := textOf(t, d); got != "" {
		t.Errorf("compound change should undo in one step, text = %q, want empty", got)
	}
}

func TestNestedCompoundChangeFoldsIntoOuter(t *testing.T) {
	d := New()
	d.BeginCompoundChange("outer")
	d.BeginCompoundChange("inner")
	must(t, d.Insert(Position{0, 0}, chars("a")))
	if err := d.EndCompoundChange(); err != nil {
		t.Fatalf("inner EndCompoundChange: %v", err)
	}
	if !d.history.IsNestingCompoundChange() {
		t.Fatal("inner EndCompoundChange should not have closed the outer run")
	}
	must(t, d.Insert(Position{0, 1}, chars("b")))
	if err := d.EndCompoundChange(); err != nil {
		t.Fatalf("outer EndCompoundChange: %v", err)
	}
	if err := d.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got := textOf(t, d); got != "" {
		t.Errorf("nested compound change should undo as one unit, text = %q, want empty", got)
	}
}

func TestEndCompoundChangeWithoutBeginIsIllegalState(t *testing.T) {
	d := New()
	err := d.EndCompoundChange()
	if _, ok := err.(*IllegalStateError); !ok {
		t.Fatalf("EndCompoundChange without Begin: got %T, want *IllegalStateError", err)
	}
}

func TestReadOnlyRejectsMutation(t *testing.T) {
	d := New()
	d.SetReadOnly(true)
	err := d.Insert(Position{0, 0}, chars("x"))
	if _, ok := err.(*ReadOnlyDocumentError); !ok {
		t.Fatalf("Insert on read-only document: got %T, want *ReadOnlyDocumentError", err)
	}
}

func TestBadRegionRejected(t *testing.T) {
	d := New()
	err := d.Erase(Region{Start: Position{5, 0}, End: Position{5, 1}})
	if _, ok := err.(*BadRegionError); !ok {
		t.Fatalf("Erase with out-of-range region: got %T, want *BadRegionError", err)
	}
}

func TestNarrowToRegionRejectsOutsideEdits(t *testing.T) {
	d := New()
	must(t, d.Insert(Position{0, 0}, chars("aaa\nbbb\nccc")))
	d.NarrowToRegion(Region{Start: Position{1, 0}, End: Position{1, 3}})

	err := d.Insert(Position{0, 0}, chars("x"))
	if _, ok := err.(*DocumentAccessViolationError); !ok {
		t.Fatalf("edit outside narrowed region: got %T, want *DocumentAccessViolationError", err)
	}

	if err := d.Insert(Position{1, 3}, chars("!")); err != nil {
		t.Fatalf("edit inside narrowed region should succeed: %v", err)
	}
}

func TestTrackedPointMovesWithEdit(t *testing.T) {
	d := New()
	must(t, d.Insert(Position{0, 0}, chars("hello world")))

	pt := NewPoint(Position{0, 6})
	d.TrackPoint(pt)

	must(t, d.Insert(Position{0, 0}, chars("say ")))
	if got := pt.Position(); got != (Position{0, 10}) {
		t.Errorf("tracked point = %+v, want {0 10}", got)
	}
}

func TestBookmarkShiftsWithLineInsertion(t *testing.T) {
	d := New()
	must(t, d.Insert(Position{0, 0}, chars("a\nb\nc")))
	d.Bookmarks().Set(2)

	must(t, d.Insert(Position{0, 0}, chars("x\n")))
	if !d.Bookmarks().IsMarked(3) {
		t.Errorf("bookmark did not shift: marks = %v", d.Bookmarks().Lines())
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func runesOf(cs []unicode.Char) []rune {
	out := make([]rune, len(cs))
	for i, c := range cs {
		out[i] = rune(c)
	}
	return out
}
