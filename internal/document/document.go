package document

import (
	"math"
	"sync"
	"time"

	"github.com/exeal/ascension/internal/unicode"
)

// Listener receives notification of a Document's changes. AboutToChange
// fires before the mutation is applied and may veto it by returning false;
// Changed fires afterward with positions already expressed in post-change
// coordinates. Listeners registered via AddListener fire after the
// partitioner and after any pre-notified listener (AddPreNotifiedListener);
// this ordering lets a renderer or rule scanner, which is pre-notified,
// react before a plugin-level listener sees the same event.
type Listener interface {
	DocumentAboutToChange(doc *Document, erased, inserted Region) bool
	DocumentChanged(doc *Document, erased, inserted Region)
}

// DocumentInput supplies a Document with the file identity and default
// newline/encoding policy it should use when DocumentInputNewline appears
// on a Line, and receives notice when the document's modification state
// changes.
type DocumentInput interface {
	DefaultNewline() Newline
	DocumentModificationSignChanged(doc *Document, modified bool)

	// IsChangeable is consulted at most once per unmodified-to-modified
	// transition, immediately before the Replace that would cause it
	// takes effect. Returning false aborts that Replace with a
	// ChangeRejectedError (e.g. the backing file changed on disk since
	// it was last read, and the input wants the caller to reload first).
	IsChangeable(doc *Document) bool
}

// Document is the editable text model: a Line-granular gap vector, a
// nestable compound-undo history, change-tracked Points, bookmarks, a
// pluggable Partitioner, and a single Replace primitive every mutation
// funnels through.
type Document struct {
	mu sync.Mutex

	lines *gapVector[Line]

	history     *history
	bookmarks   *bookmarker
	points      *pointSet
	partitioner Partitioner
	input       DocumentInput

	listeners        []Listener
	preNotified      []Listener

	revisionNumber               uint64
	lastUnmodifiedRevisionNumber uint64

	accessibleRegion *Region
	readOnly         bool
	properties       map[string]any
}

// New returns an empty Document: one empty line, no terminator, revision 0.
func New() *Document {
	d := &Document{
		lines:      newGapVector[Line](Line{}),
		history:    newHistory(1000),
		bookmarks:  newBookmarker(),
		points:     newPointSet(),
		properties: make(map[string]any),
	}
	d.partitioner = &NullPartitioner{}
	d.partitioner.install(d)
	return d
}

// LineCount returns the number of lines in the document.
func (d *Document) LineCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lines.Len()
}

// Line returns a copy of the i'th line.
func (d *Document) Line(i uint32) Line {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lines.At(int(i))
}

// Revision returns the current revision number, incremented on every
// Replace.
func (d *Document) Revision() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.revisionNumber
}

// IsModified reports whether the document has changed since the last
// MarkUnmodified call (or since creation).
func (d *Document) IsModified() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.revisionNumber != d.lastUnmodifiedRevisionNumber
}

// MarkUnmodified records the current revision as the unmodified baseline,
// notifying the DocumentInput if one is attached and the sign flipped.
func (d *Document) MarkUnmodified() {
	d.mu.Lock()
	wasModified := d.revisionNumber != d.lastUnmodifiedRevisionNumber
	d.lastUnmodifiedRevisionNumber = d.revisionNumber
	input := d.input
	d.mu.Unlock()
	if wasModified && input != nil {
		input.DocumentModificationSignChanged(d, false)
	}
}

// SetModified unconditionally marks the document modified by setting the
// unmodified baseline to a sentinel revision no real revision will ever
// reach.
func (d *Document) SetModified() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastUnmodifiedRevisionNumber = math.MaxUint64
}

// IsReadOnly reports whether mutations are currently rejected.
func (d *Document) IsReadOnly() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.readOnly
}

// SetReadOnly toggles whether Replace/Insert/Erase/Undo/Redo are rejected.
func (d *Document) SetReadOnly(v bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.readOnly = v
}

// SetInput attaches the DocumentInput used for DocumentInputNewline
// resolution and modification-sign notification.
func (d *Document) SetInput(in DocumentInput) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.input = in
}

// SetPartitioner replaces the active partitioner, installing it against
// this document.
func (d *Document) SetPartitioner(p Partitioner) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if p == nil {
		p = &NullPartitioner{}
	}
	p.install(d)
	d.partitioner = p
}

// ContentTypeAt returns the content type and region the partitioner
// reports for p.
func (d *Document) ContentTypeAt(p Position) (string, Region) {
	d.mu.Lock()
	part := d.partitioner
	d.mu.Unlock()
	return part.Partition(p)
}

// AddListener registers l to be notified after the partitioner and any
// pre-notified listener.
func (d *Document) AddListener(l Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, l)
}

// AddPreNotifiedListener registers l to be notified immediately after the
// partitioner, before ordinary listeners.
func (d *Document) AddPreNotifiedListener(l Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.preNotified = append(d.preNotified, l)
}

// RemoveListener unregisters l from both the ordinary and pre-notified
// lists.
func (d *Document) RemoveListener(l Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = removeListener(d.listeners, l)
	d.preNotified = removeListener(d.preNotified, l)
}

func removeListener(list []Listener, l Listener) []Listener {
	out := list[:0]
	for _, x := range list {
		if x != l {
			out = append(out, x)
		}
	}
	return out
}

// TrackPoint registers pt so its Position is kept current across edits.
func (d *Document) TrackPoint(pt *Point) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.points.add(pt)
}

// UntrackPoint stops tracking pt.
func (d *Document) UntrackPoint(pt *Point) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.points.remove(pt)
}

// Bookmarks exposes the document's bookmark set.
func (d *Document) Bookmarks() *bookmarker {
	return d.bookmarks
}

// Property returns a previously set document-level property.
func (d *Document) Property(key string) (any, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, ok := d.properties[key]
	return v, ok
}

// SetProperty stores a document-level property.
func (d *Document) SetProperty(key string, value any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.properties[key] = value
}

// AccessibleRegion returns the document's currently accessible (narrowed)
// region, or the whole document if it has not been narrowed.
func (d *Document) AccessibleRegion() Region {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.accessibleRegionLocked()
}

func (d *Document) accessibleRegionLocked() Region {
	if d.accessibleRegion != nil {
		return *d.accessibleRegion
	}
	last := d.lines.Len() - 1
	return Region{Start: Position{}, End: Position{Line: uint32(last), OffsetInLine: uint32(d.lines.At(last).Length())}}
}

// IsNarrowed reports whether the document is currently narrowed to less
// than its full content.
func (d *Document) IsNarrowed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.accessibleRegion != nil
}

// NarrowToRegion restricts subsequent BadPositionError/DocumentAccessViolationError
// checks, Replace, and full-document queries to r.
func (d *Document) NarrowToRegion(r Region) {
	d.mu.Lock()
	defer d.mu.Unlock()
	r = r.Normalize()
	d.accessibleRegion = &r
}

// Widen removes any narrowing in effect.
func (d *Document) Widen() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.accessibleRegion = nil
}

// Text returns the document content in r as a single code-unit slice,
// with embedded newlines rendered in their literal form.
func (d *Document) Text(r Region) ([]unicode.Char, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.regionValidLocked(r) {
		return nil, &BadRegionError{Region: r}
	}
	return d.textLocked(r.Normalize()), nil
}

func (d *Document) textLocked(r Region) []unicode.Char {
	var out []unicode.Char
	for ln := r.Start.Line; ln <= r.End.Line; ln++ {
		line := d.lines.At(int(ln))
		from := 0
		to := line.Length()
		if ln == r.Start.Line {
			from = int(r.Start.OffsetInLine)
		}
		if ln == r.End.Line {
			to = int(r.End.OffsetInLine)
		}
		out = append(out, line.Text[from:to]...)
		if ln != r.End.Line && line.Newline.IsLiteral() {
			out = append(out, line.Newline.UTF16()...)
		}
	}
	return out
}

func (d *Document) regionValidLocked(r Region) bool {
	r = r.Normalize()
	if int(r.End.Line) >= d.lines.Len() {
		return false
	}
	if int(r.Start.OffsetInLine) > d.lines.At(int(r.Start.Line)).Length() {
		return false
	}
	if int(r.End.OffsetInLine) > d.lines.At(int(r.End.Line)).Length() {
		return false
	}
	return true
}

func (d *Document) withinAccessibleLocked(r Region) bool {
	acc := d.accessibleRegionLocked()
	return !r.Normalize().Start.Before(acc.Start) && !acc.End.Before(r.Normalize().End)
}

// Replace is the sole mutation primitive: it erases r and splices newText
// in its place. The partitioner, pre-notified listeners, and ordinary
// listeners, in that fixed order, are told before the splice; after it the
// change is recorded in the undo history (unless recordHistory is false,
// used internally by Undo/Redo to avoid recording their own replay), every
// tracked Point is updated and bookmarks are shifted, and only then are the
// same three told, in the same order, that the change happened.
func (d *Document) Replace(r Region, newText []unicode.Char) error {
	return d.replace(r, newText, true)
}

func (d *Document) replace(r Region, newText []unicode.Char, recordHistory bool) error {
	d.mu.Lock()
	if d.readOnly {
		d.mu.Unlock()
		return &ReadOnlyDocumentError{}
	}
	r = r.Normalize()
	if !d.regionValidLocked(r) {
		d.mu.Unlock()
		return &BadRegionError{Region: r}
	}
	if !d.withinAccessibleLocked(r) {
		d.mu.Unlock()
		return &DocumentAccessViolationError{Region: r}
	}
	wasUnmodified := d.revisionNumber == d.lastUnmodifiedRevisionNumber
	input := d.input
	d.mu.Unlock()
	if recordHistory && wasUnmodified && input != nil && !input.IsChangeable(d) {
		return &ChangeRejectedError{Reason: "document input refused the change"}
	}
	d.mu.Lock()

	partitioner := d.partitioner
	preNotified := append([]Listener(nil), d.preNotified...)
	listeners := append([]Listener(nil), d.listeners...)
	d.mu.Unlock()

	// insertedRegion end is not yet known; listeners are told the erased
	// region and the raw text about to be inserted, describing "what's
	// about to happen" rather than precomputed post-change coordinates.
	partitioner.AboutToChangeContent(r, Region{Start: r.Start, End: r.Start})
	for _, l := range preNotified {
		if !l.DocumentAboutToChange(d, r, Region{Start: r.Start, End: r.Start}) {
			return &ChangeRejectedError{}
		}
	}
	for _, l := range listeners {
		if !l.DocumentAboutToChange(d, r, Region{Start: r.Start, End: r.Start}) {
			return &ChangeRejectedError{}
		}
	}

	d.mu.Lock()
	erasedLines, insertedEnd := d.spliceLocked(r, newText)
	d.revisionNumber++
	insertedRegion := Region{Start: r.Start, End: insertedEnd}
	if recordHistory {
		d.history.Record(DocumentChange{
			Erased:       r,
			ErasedText:   erasedLines,
			InsertedText: append([]unicode.Char(nil), newText...),
			InsertedEnd:  insertedEnd,
			Timestamp:    timeNow(),
		})
	}
	d.points.updateAll(r, insertedRegion)
	atLineStart := r.Start.OffsetInLine == 0
	linesAdded := int(insertedEnd.Line) - int(r.Start.Line)
	linesRemoved := int(r.End.Line) - int(r.Start.Line)
	switch {
	case linesAdded > linesRemoved:
		d.bookmarks.onLinesInserted(r.Start.Line, uint32(linesAdded-linesRemoved), atLineStart)
	case linesRemoved > linesAdded:
		d.bookmarks.onLinesErased(r.Start.Line+1, uint32(linesRemoved-linesAdded))
	}
	d.mu.Unlock()

	partitioner.ContentChanged(r, insertedRegion)
	for _, l := range preNotified {
		l.DocumentChanged(d, r, insertedRegion)
	}
	for _, l := range listeners {
		l.DocumentChanged(d, r, insertedRegion)
	}
	return nil
}

// timeNow exists so tests can be confident about call sites without the
// package reaching for time.Now() inline everywhere a timestamp is needed.
func timeNow() time.Time { return time.Now() }

// spliceLocked performs the actual line-store surgery for Replace. It must
// be called with d.mu held.
func (d *Document) spliceLocked(r Region, newText []unicode.Char) ([]Line, Position) {
	startLine := d.lines.At(int(r.Start.Line))
	endLine := d.lines.At(int(r.End.Line))

	prefix := append([]unicode.Char(nil), startLine.Text[:r.Start.OffsetInLine]...)
	suffix := append([]unicode.Char(nil), endLine.Text[r.End.OffsetInLine:]...)
	trailingNewline := endLine.Newline

	combined := append(prefix, newText...)
	combined = append(combined, suffix...)

	segments := splitIntoLines(combined, trailingNewline)
	for i := range segments[:len(segments)-1] {
		segments[i].Revision = d.revisionNumber + 1
	}
	segments[len(segments)-1].Newline = trailingNewline
	segments[len(segments)-1].Revision = d.revisionNumber + 1

	span := int(r.End.Line) - int(r.Start.Line) + 1
	erased := append([]Line(nil), d.lines.Slice(int(r.Start.Line), int(r.Start.Line)+span)...)

	d.lines.Delete(int(r.Start.Line), span)
	d.lines.Insert(int(r.Start.Line), segments...)

	lastIdx := len(segments) - 1
	insertedEnd := Position{
		Line:         r.Start.Line + uint32(lastIdx),
		OffsetInLine: uint32(segments[lastIdx].Length() - len(suffix)),
	}
	return erased, insertedEnd
}

// Insert is sugar for Replace(Region{p, p}, text).
func (d *Document) Insert(p Position, text []unicode.Char) error {
	return d.Replace(Region{Start: p, End: p}, text)
}

// Erase is sugar for Replace(r, nil).
func (d *Document) Erase(r Region) error {
	return d.Replace(r, nil)
}

// BeginCompoundChange opens a named run of changes that Undo/Redo treats
// as one unit. Nested calls extend the same run.
func (d *Document) BeginCompoundChange(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.history.BeginCompoundChange(name)
}

// EndCompoundChange closes one level of nesting opened by
// BeginCompoundChange.
func (d *Document) EndCompoundChange() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.history.EndCompoundChange()
}

// ClearUndoBuffer discards all undo/redo history without touching content.
func (d *Document) ClearUndoBuffer() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.history.Clear()
}

// OnceUndoBufferCleared reports whether ClearUndoBuffer (directly, or via
// ResetContent/SetContent) has ever run against this document.
func (d *Document) OnceUndoBufferCleared() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.history.onceCleared
}

// CanUndo reports whether Undo has something to revert.
func (d *Document) CanUndo() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.history.CanUndo()
}

// CanRedo reports whether Redo has something to reapply.
func (d *Document) CanRedo() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.history.CanRedo()
}

// Undo reverts the most recent undo entry (a single change, or an entire
// compound run), replaying its component changes in reverse order as a
// single externally-visible Replace event per component.
func (d *Document) Undo() error {
	d.mu.Lock()
	if d.readOnly {
		d.mu.Unlock()
		return &ReadOnlyDocumentError{}
	}
	entry, ok := d.history.popUndo()
	d.mu.Unlock()
	if !ok {
		return &IllegalStateError{Message: "nothing to undo"}
	}
	changes := entry.changes()
	for i := len(changes) - 1; i >= 0; i-- {
		c := changes[i]
		inserted := Region{Start: c.Erased.Start, End: c.InsertedEnd}
		original := d.textOfLines(c.ErasedText)
		// ErasedText holds every line the change touched in full; keep only
		// the span the change itself erased.
		if n := len(c.ErasedText); n > 0 {
			tail := len(c.ErasedText[n-1].Text) - int(c.Erased.End.OffsetInLine)
			original = original[c.Erased.Start.OffsetInLine : len(original)-tail]
		}
		if err := d.replace(inserted, original, false); err != nil {
			return err
		}
	}
	return nil
}

// Redo reapplies the most recently undone entry.
func (d *Document) Redo() error {
	d.mu.Lock()
	if d.readOnly {
		d.mu.Unlock()
		return &ReadOnlyDocumentError{}
	}
	entry, ok := d.history.popRedo()
	d.mu.Unlock()
	if !ok {
		return &IllegalStateError{Message: "nothing to redo"}
	}
	for _, c := range entry.changes() {
		// After Undo reverted this change, the original erased text sits
		// back at c.Erased's coordinates; redo replaces exactly that span
		// with the originally inserted text.
		if err := d.replace(c.Erased, c.InsertedText, false); err != nil {
			return err
		}
	}
	return nil
}

// textOfLines reconstructs the literal text (including interior
// terminators) that a slice of erased Lines represented, so Undo can feed
// it back through Replace as the text to reinsert.
func (d *Document) textOfLines(lines []Line) []unicode.Char {
	var out []unicode.Char
	for i, l := range lines {
		out = append(out, l.Text...)
		if i != len(lines)-1 && l.Newline.IsLiteral() {
			out = append(out, l.Newline.UTF16()...)
		}
	}
	return out
}

// ResetContent replaces the entire document with a single, empty,
// unterminated line and clears history, bookmarks, and narrowing. It does
// not notify listeners; callers rebuilding a document from a freshly
// reverted file should call this before splicing in the new content.
func (d *Document) ResetContent() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lines.Reset(Line{})
	d.history.Clear()
	d.bookmarks = newBookmarker()
	d.accessibleRegion = nil
	d.revisionNumber = 0
	d.lastUnmodifiedRevisionNumber = 0
}

// SetContent replaces the document's lines wholesale, for use by
// DocumentInput implementations populating a freshly reverted file. It
// bypasses Replace's event protocol entirely; callers that need listeners
// notified should follow it with their own synthetic change notification.
func (d *Document) SetContent(lines []Line) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(lines) == 0 {
		lines = []Line{{}}
	}
	d.lines.Reset(lines...)
	d.history.Clear()
	d.bookmarks = newBookmarker()
	d.accessibleRegion = nil
	d.revisionNumber++
	d.lastUnmodifiedRevisionNumber = d.revisionNumber
}
