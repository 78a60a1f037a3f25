package arena

import "testing"

func TestAllocReturnsDistinctZeroedValues(t *testing.T) {
	a := New[int]()
	p1 := a.Alloc()
	*p1 = 42
	p2 := a.Alloc()
	if *p2 != 0 {
		t.Errorf("*p2 = %d, want 0", *p2)
	}
	if p1 == p2 {
		t.Fatalf("p1 and p2 point to the same slot")
	}
	if a.Len() != 2 {
		t.Errorf("Len() = %d, want 2", a.Len())
	}
}

func TestFreeRecyclesBeforeGrowing(t *testing.T) {
	a := New[int]()
	p1 := a.Alloc()
	a.Free(p1)
	if a.Len() != 0 {
		t.Fatalf("Len() after Free = %d, want 0", a.Len())
	}
	p2 := a.Alloc()
	if p2 != p1 {
		t.Errorf("Alloc() after Free did not reuse the freed slot")
	}
	if a.Len() != 1 {
		t.Errorf("Len() after reuse = %d, want 1", a.Len())
	}
}

func TestAllocGrowsPastOneChunk(t *testing.T) {
	a := New[int]()
	var ptrs []*int
	for i := 0; i < chunkSize+10; i++ {
		p := a.Alloc()
		*p = i
		ptrs = append(ptrs, p)
	}
	if a.Len() != chunkSize+10 {
		t.Fatalf("Len() = %d, want %d", a.Len(), chunkSize+10)
	}
	for i, p := range ptrs {
		if *p != i {
			t.Fatalf("ptrs[%d] = %d, want %d (earlier chunk corrupted by growth)", i, *p, i)
		}
	}
}

func TestResetDropsEverything(t *testing.T) {
	a := New[int]()
	a.Alloc()
	a.Alloc()
	a.Reset()
	if a.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", a.Len())
	}
	p := a.Alloc()
	*p = 7
	if a.Len() != 1 {
		t.Errorf("Len() after post-Reset Alloc = %d, want 1", a.Len())
	}
}
