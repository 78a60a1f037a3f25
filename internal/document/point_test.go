package document

import "testing"

func TestAdjustForEraseBefore(t *testing.T) {
	erased := Region{Start: Position{2, 0}, End: Position{2, 5}}
	pos := Position{1, 9}
	if got := adjustForErase(pos, erased); got != pos {
		t.Errorf("position before the erasure moved: got %+v, want %+v", got, pos)
	}
}

func TestAdjustForEraseInside(t *testing.T) {
	erased := Region{Start: Position{2, 2}, End: Position{2, 8}}
	got := adjustForErase(Position{2, 5}, erased)
	want := Position{2, 2}
	if got != want {
		t.Errorf("position inside the erasure = %+v, want %+v (clamped to start)", got, want)
	}
}

func TestAdjustForEraseAfterSameLine(t *testing.T) {
	erased := Region{Start: Position{2, 2}, End: Position{2, 8}}
	got := adjustForErase(Position{2, 10}, erased)
	want := Position{2, 4}
	if got != want {
		t.Errorf("position after the erasure on the same line = %+v, want %+v", got, want)
	}
}

func TestAdjustForEraseAfterAcrossLines(t *testing.T) {
	erased := Region{Start: Position{2, 2}, End: Position{4, 3}}
	got := adjustForErase(Position{5, 1}, erased)
	want := Position{3, 1}
	if got != want {
		t.Errorf("position after a multi-line erasure = %+v, want %+v", got, want)
	}
}

func TestAdjustForInsertBefore(t *testing.T) {
	inserted := Region{Start: Position{2, 5}, End: Position{2, 8}}
	pos := Position{2, 1}
	if got := adjustForInsert(pos, inserted, GravityForward); got != pos {
		t.Errorf("position before the insertion moved: got %+v, want %+v", got, pos)
	}
}

func TestAdjustForInsertAtPointForwardGravityStays(t *testing.T) {
	inserted := Region{Start: Position{2, 5}, End: Position{2, 9}}
	got := adjustForInsert(Position{2, 5}, inserted, GravityForward)
	if got != (Position{2, 5}) {
		t.Errorf("forward-gravity point at insertion = %+v, want unchanged", got)
	}
}

func TestAdjustForInsertAtPointBackwardGravityMoves(t *testing.T) {
	inserted := Region{Start: Position{2, 5}, End: Position{2, 9}}
	got := adjustForInsert(Position{2, 5}, inserted, GravityBackward)
	if got != inserted.End {
		t.Errorf("backward-gravity point at insertion = %+v, want %+v", got, inserted.End)
	}
}

func TestAdjustForInsertAfterSameLine(t *testing.T) {
	inserted := Region{Start: Position{2, 5}, End: Position{2, 9}}
	got := adjustForInsert(Position{2, 10}, inserted, GravityForward)
	want := Position{2, 14}
	if got != want {
		t.Errorf("position after a same-line insertion = %+v, want %+v", got, want)
	}
}

func TestAdjustForInsertAfterMultiLine(t *testing.T) {
	inserted := Region{Start: Position{2, 5}, End: Position{4, 2}}
	got := adjustForInsert(Position{5, 1}, inserted, GravityForward)
	want := Position{7, 1}
	if got != want {
		t.Errorf("position after a multi-line insertion = %+v, want %+v", got, want)
	}
}

func TestPointSetUpdateAllSkipsFrozenPoints(t *testing.T) {
	set := newPointSet()
	p := NewPoint(Position{2, 10})
	p.SetAdaptsToDocument(false)
	set.add(p)

	erased := Region{Start: Position{2, 2}, End: Position{2, 8}}
	set.updateAll(erased, Region{Start: erased.Start, End: erased.Start})

	if p.Position() != (Position{2, 10}) {
		t.Errorf("frozen point moved to %+v, want unchanged", p.Position())
	}
}

func TestPointSetUpdateAllMovesTrackedPoints(t *testing.T) {
	set := newPointSet()
	p := NewPoint(Position{2, 10})
	set.add(p)

	erased := Region{Start: Position{2, 2}, End: Position{2, 8}}
	set.updateAll(erased, Region{Start: erased.Start, End: erased.Start})

	if p.Position() != (Position{2, 4}) {
		t.Errorf("point moved to %+v, want {2 4}", p.Position())
	}
}
