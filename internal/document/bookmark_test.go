package document

import (
	"reflect"
	"testing"
)

func TestBookmarkerSetClear(t *testing.T) {
	b := newBookmarker()
	b.Set(3)
	b.Set(1)
	b.Set(5)
	if !reflect.DeepEqual(b.Lines(), []uint32{1, 3, 5}) {
		t.Errorf("Lines() = %v, want [1 3 5]", b.Lines())
	}
	b.Clear(3)
	if !reflect.DeepEqual(b.Lines(), []uint32{1, 5}) {
		t.Errorf("Lines() after Clear = %v, want [1 5]", b.Lines())
	}
	if b.IsMarked(3) {
		t.Error("line 3 should no longer be marked")
	}
	if !b.IsMarked(5) {
		t.Error("line 5 should still be marked")
	}
}

func TestBookmarkerOnLinesInserted(t *testing.T) {
	b := newBookmarker()
	b.Set(0)
	b.Set(2)
	b.Set(5)
	b.onLinesInserted(2, 3, false)
	if !reflect.DeepEqual(b.Lines(), []uint32{0, 5, 8}) {
		t.Errorf("Lines() = %v, want [0 5 8]", b.Lines())
	}
}

func TestBookmarkerOnLinesInsertedAtLineStartKeepsMark(t *testing.T) {
	b := newBookmarker()
	b.Set(2)
	b.onLinesInserted(2, 3, true)
	if !reflect.DeepEqual(b.Lines(), []uint32{2}) {
		t.Errorf("Lines() = %v, want [2] (mark at insertion point with atLineStart stays)", b.Lines())
	}
}

func TestBookmarkerOnLinesErased(t *testing.T) {
	b := newBookmarker()
	b.Set(0)
	b.Set(2)
	b.Set(3)
	b.Set(6)
	b.onLinesErased(2, 2)
	if !reflect.DeepEqual(b.Lines(), []uint32{0, 4}) {
		t.Errorf("Lines() = %v, want [0 4]", b.Lines())
	}
}
