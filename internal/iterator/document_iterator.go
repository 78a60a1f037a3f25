package iterator

import (
	"github.com/exeal/ascension/internal/document"
	"github.com/exeal/ascension/internal/unicode"
)

// LineSeparator is the code point a DocumentCharacterIterator yields in
// place of whatever literal newline terminates a line: callers that walk a
// document character-by-character see one uniform boundary marker
// regardless of whether the underlying line ended in LF, CRLF, NEL, and so
// on.
const LineSeparator unicode.CodePoint = 0x2028

// DocumentCharacterIterator walks the code points of a document.Document
// across a fixed Region, snapshotted at construction time. It does not
// observe subsequent edits to doc; a caller that mutates the document must
// construct a fresh iterator (or re-seat this one via First/Last) before
// continuing to use it.
type DocumentCharacterIterator struct {
	doc    *document.Document
	region document.Region
	pos    document.Position
}

// NewDocumentCharacterIterator returns an iterator over region, initially
// positioned at its start.
func NewDocumentCharacterIterator(doc *document.Document, region document.Region) *DocumentCharacterIterator {
	region = region.Normalize()
	return &DocumentCharacterIterator{doc: doc, region: region, pos: region.Start}
}

// NewDocumentCharacterIteratorAt is like NewDocumentCharacterIterator but
// starts at an arbitrary position within region.
func NewDocumentCharacterIteratorAt(doc *document.Document, region document.Region, at document.Position) *DocumentCharacterIterator {
	region = region.Normalize()
	return &DocumentCharacterIterator{doc: doc, region: region, pos: at}
}

func (d *DocumentCharacterIterator) Kind() Kind { return KindDocument }

// Position returns the iterator's current document position.
func (d *DocumentCharacterIterator) Position() document.Position { return d.pos }

func charWidthAt(line document.Line, offset int) int {
	if offset < 0 || offset >= line.Length() {
		return 1
	}
	c := line.Text[offset]
	if unicode.IsHighSurrogate(c) && offset+1 < line.Length() && unicode.IsLowSurrogate(line.Text[offset+1]) {
		return 2
	}
	return 1
}

func (d *DocumentCharacterIterator) Current() unicode.CodePoint {
	if !d.HasNext() {
		return unicode.Done
	}
	line := d.doc.Line(d.pos.Line)
	offset := int(d.pos.OffsetInLine)
	if offset >= line.Length() {
		return LineSeparator
	}
	c := line.Text[offset]
	if unicode.IsHighSurrogate(c) && offset+1 < line.Length() {
		return unicode.Decode(c, line.Text[offset+1])
	}
	return unicode.CodePoint(c)
}

func (d *DocumentCharacterIterator) HasNext() bool { return d.pos.Before(d.region.End) }

func (d *DocumentCharacterIterator) HasPrevious() bool { return d.region.Start.Before(d.pos) }

func (d *DocumentCharacterIterator) Next() {
	if !d.HasNext() {
		return
	}
	line := d.doc.Line(d.pos.Line)
	offset := int(d.pos.OffsetInLine)
	if offset >= line.Length() {
		d.pos = document.Position{Line: d.pos.Line + 1, OffsetInLine: 0}
		return
	}
	d.pos.OffsetInLine += uint32(charWidthAt(line, offset))
}

func (d *DocumentCharacterIterator) Previous() {
	if !d.HasPrevious() {
		return
	}
	if d.pos.OffsetInLine == 0 {
		prev := d.doc.Line(d.pos.Line - 1)
		d.pos = document.Position{Line: d.pos.Line - 1, OffsetInLine: uint32(prev.Length())}
		return
	}
	line := d.doc.Line(d.pos.Line)
	offset := int(d.pos.OffsetInLine) - 1
	if offset > 0 && unicode.IsLowSurrogate(line.Text[offset]) && unicode.IsHighSurrogate(line.Text[offset-1]) {
		offset--
	}
	d.pos.OffsetInLine = uint32(offset)
}

func (d *DocumentCharacterIterator) First() { d.pos = d.region.Start }

func (d *DocumentCharacterIterator) Last() {
	d.pos = d.region.End
	d.Previous()
}

// Offset returns the UTF-16 code-unit distance (counting each
// LineSeparator as one unit) from the region's start to the iterator's
// current position.
func (d *DocumentCharacterIterator) Offset() int {
	if d.pos.Line == d.region.Start.Line {
		return int(d.pos.OffsetInLine) - int(d.region.Start.OffsetInLine)
	}
	total := d.doc.Line(d.region.Start.Line).Length() - int(d.region.Start.OffsetInLine) + 1
	for ln := d.region.Start.Line + 1; ln < d.pos.Line; ln++ {
		total += d.doc.Line(ln).Length() + 1
	}
	total += int(d.pos.OffsetInLine)
	return total
}

func (d *DocumentCharacterIterator) Clone() CharacterIterator {
	c := *d
	return &c
}

func (d *DocumentCharacterIterator) Equals(other CharacterIterator) bool {
	o, ok := other.(*DocumentCharacterIterator)
	if !ok {
		return false
	}
	return d.doc == o.doc && d.pos == o.pos
}

func (d *DocumentCharacterIterator) Less(other CharacterIterator) bool {
	o, ok := other.(*DocumentCharacterIterator)
	if !ok {
		return false
	}
	return d.pos.Before(o.pos)
}

var (
	_ CharacterIterator = (*StringCharacterIterator)(nil)
	_ CharacterIterator = (*DocumentCharacterIterator)(nil)
)
