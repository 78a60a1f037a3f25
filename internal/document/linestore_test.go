package document

import "testing"

func TestGapVectorInsertAppend(t *testing.T) {
	g := newGapVector[int]()
	for i := 0; i < 5; i++ {
		g.Insert(g.Len(), i)
	}
	if got := g.All(); !equalInts(got, []int{0, 1, 2, 3, 4}) {
		t.Errorf("All() = %v, want [0 1 2 3 4]", got)
	}
}

func TestGapVectorInsertMiddle(t *testing.T) {
	g := newGapVector(1, 2, 4, 5)
	g.Insert(2, 3)
	if got := g.All(); !equalInts(got, []int{1, 2, 3, 4, 5}) {
		t.Errorf("All() = %v, want [1 2 3 4 5]", got)
	}
}

func TestGapVectorDelete(t *testing.T) {
	g := newGapVector(1, 2, 3, 4, 5)
	g.Delete(1, 2)
	if got := g.All(); !equalInts(got, []int{1, 4, 5}) {
		t.Errorf("All() = %v, want [1 4 5]", got)
	}
}

func TestGapVectorGrowsPastInitialChunk(t *testing.T) {
	g := newGapVector[int]()
	for i := 0; i < 200; i++ {
		g.Insert(g.Len(), i)
	}
	if g.Len() != 200 {
		t.Fatalf("Len() = %d, want 200", g.Len())
	}
	for i := 0; i < 200; i++ {
		if g.At(i) != i {
			t.Errorf("At(%d) = %d, want %d", i, g.At(i), i)
		}
	}
}

func TestGapVectorMovesGapBackAndForth(t *testing.T) {
	g := newGapVector(1, 2, 3, 4, 5)
	g.Insert(0, 0)
	g.Insert(g.Len(), 6)
	g.Insert(3, 99)
	want := []int{0, 1, 2, 99, 3, 4, 5, 6}
	if got := g.All(); !equalInts(got, want) {
		t.Errorf("All() = %v, want %v", got, want)
	}
}

func TestGapVectorReset(t *testing.T) {
	g := newGapVector(1, 2, 3)
	g.Reset(9, 8)
	if got := g.All(); !equalInts(got, []int{9, 8}) {
		t.Errorf("All() after Reset = %v, want [9 8]", got)
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
