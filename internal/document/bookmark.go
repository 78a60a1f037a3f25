package document

import "sort"

// BookmarkListener receives notice whenever a Document's bookmark set
// changes, either directly (Set/Clear) or as a side effect of an edit
// shifting marked lines.
type BookmarkListener interface {
	BookmarkChanged()
}

// bookmarker holds a sorted set of marked line numbers in a gap vector.
// It is not safe for concurrent use on its own; Document serializes
// access to it under its own mutex.
type bookmarker struct {
	lines     *gapVector[uint32]
	listeners []BookmarkListener
}

func newBookmarker() *bookmarker {
	return &bookmarker{lines: newGapVector[uint32]()}
}

// AddListener registers l to be notified of future bookmark changes.
func (b *bookmarker) AddListener(l BookmarkListener) {
	b.listeners = append(b.listeners, l)
}

// RemoveListener unregisters l.
func (b *bookmarker) RemoveListener(l BookmarkListener) {
	for i, existing := range b.listeners {
		if existing == l {
			b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
			return
		}
	}
}

func (b *bookmarker) notify() {
	for _, l := range b.listeners {
		l.BookmarkChanged()
	}
}

func (b *bookmarker) indexOf(line uint32) (int, bool) {
	all := b.lines.All()
	i := sort.Search(len(all), func(i int) bool { return all[i] >= line })
	if i < len(all) && all[i] == line {
		return i, true
	}
	return i, false
}

// Set marks line, if not already marked.
func (b *bookmarker) Set(line uint32) {
	if i, found := b.indexOf(line); !found {
		b.lines.Insert(i, line)
		b.notify()
	}
}

// Clear unmarks line.
func (b *bookmarker) Clear(line uint32) {
	if i, found := b.indexOf(line); found {
		b.lines.Delete(i, 1)
		b.notify()
	}
}

// IsMarked reports whether line carries a bookmark.
func (b *bookmarker) IsMarked(line uint32) bool {
	_, found := b.indexOf(line)
	return found
}

// Lines returns every marked line number, in ascending order.
func (b *bookmarker) Lines() []uint32 { return b.lines.All() }

// onLinesInserted shifts marks: marks >= at move down by n, except a mark
// that sits exactly at the insertion line and the insertion begins at
// column 0 of that line (atLineStart), which stays put — the inserted
// lines are considered to precede the mark rather than push it.
func (b *bookmarker) onLinesInserted(at uint32, n uint32, atLineStart bool) {
	all := b.lines.All()
	b.lines.Reset()
	for _, l := range all {
		switch {
		case l < at:
			b.lines.Insert(b.lines.Len(), l)
		case l == at && atLineStart:
			b.lines.Insert(b.lines.Len(), l)
		default:
			b.lines.Insert(b.lines.Len(), l+n)
		}
	}
	if len(all) > 0 {
		b.notify()
	}
}

// onLinesErased removes marks in [at, at+n) and shifts marks >= at+n down
// by n.
func (b *bookmarker) onLinesErased(at uint32, n uint32) {
	all := b.lines.All()
	b.lines.Reset()
	for _, l := range all {
		switch {
		case l < at:
			b.lines.Insert(b.lines.Len(), l)
		case l >= at+n:
			b.lines.Insert(b.lines.Len(), l-n)
		default:
			// in [at, at+n): dropped
		}
	}
	if len(all) > 0 {
		b.notify()
	}
}
