package search

import (
	"testing"

	"github.com/exeal/ascension/internal/document"
	"github.com/exeal/ascension/internal/iterator"
)

func newTestDocument(t *testing.T, text string) *document.Document {
	t.Helper()
	doc := document.New()
	if err := doc.Insert(document.Position{}, stringToUTF16(text)); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	return doc
}

func wholeDocumentScope(doc *document.Document) document.Region {
	last := doc.LineCount() - 1
	return document.Region{
		Start: document.Position{},
		End:   document.Position{Line: uint32(last), OffsetInLine: uint32(doc.Line(uint32(last)).Length())},
	}
}

func TestLiteralPatternForwardCaseInsensitive(t *testing.T) {
	doc := newTestDocument(t, "Hello, hello, HELLO")
	scope := wholeDocumentScope(doc)
	pattern := NewLiteralPattern(stringToUTF16("hello"), false)

	it := iterator.NewDocumentCharacterIteratorAt(doc, scope, document.Position{})
	start, end, ok := pattern.Search(it, document.Forward)
	if !ok {
		t.Fatalf("expected a match")
	}
	s := start.(*iterator.DocumentCharacterIterator).Position()
	e := end.(*iterator.DocumentCharacterIterator).Position()
	if s.OffsetInLine != 0 || e.OffsetInLine != 5 {
		t.Errorf("first match = %v..%v, want 0..5", s, e)
	}

	it2 := iterator.NewDocumentCharacterIteratorAt(doc, scope, e)
	start2, end2, ok2 := pattern.Search(it2, document.Forward)
	if !ok2 {
		t.Fatalf("expected a second match")
	}
	s2 := start2.(*iterator.DocumentCharacterIterator).Position()
	e2 := end2.(*iterator.DocumentCharacterIterator).Position()
	if s2.OffsetInLine != 7 || e2.OffsetInLine != 12 {
		t.Errorf("second match = %v..%v, want 7..12", s2, e2)
	}
}

func TestLiteralPatternBackward(t *testing.T) {
	doc := newTestDocument(t, "abcabcabc")
	scope := wholeDocumentScope(doc)
	pattern := NewLiteralPattern(stringToUTF16("abc"), true)

	it := iterator.NewDocumentCharacterIteratorAt(doc, scope, document.Position{OffsetInLine: 9})
	start, end, ok := pattern.Search(it, document.Backward)
	if !ok {
		t.Fatalf("expected a match")
	}
	s := start.(*iterator.DocumentCharacterIterator).Position()
	e := end.(*iterator.DocumentCharacterIterator).Position()
	if s.OffsetInLine != 6 || e.OffsetInLine != 9 {
		t.Errorf("match = %v..%v, want 6..9", s, e)
	}
}

func TestTextSearcherLiteralSearch(t *testing.T) {
	doc := newTestDocument(t, "the quick brown fox")
	scope := wholeDocumentScope(doc)
	ts := NewTextSearcher()
	if err := ts.SetPattern("quick", Literal, true); err != nil {
		t.Fatalf("SetPattern: %v", err)
	}
	region, found, err := ts.Search(doc, document.Position{}, scope, document.Forward)
	if err != nil || !found {
		t.Fatalf("Search: found=%v err=%v", found, err)
	}
	if region.Start.OffsetInLine != 4 || region.End.OffsetInLine != 9 {
		t.Errorf("region = %v, want 4..9", region)
	}
	if got := ts.PatternHistory(); len(got) != 1 || got[0] != "quick" {
		t.Errorf("history = %v", got)
	}
}

func TestTextSearcherRegexSearch(t *testing.T) {
	doc := newTestDocument(t, "foo123bar456")
	scope := wholeDocumentScope(doc)
	ts := NewTextSearcher()
	if err := ts.SetPattern(`[0-9]+`, Regex, true); err != nil {
		t.Fatalf("SetPattern: %v", err)
	}
	region, found, err := ts.Search(doc, document.Position{}, scope, document.Forward)
	if err != nil || !found {
		t.Fatalf("Search: found=%v err=%v", found, err)
	}
	if region.Start.OffsetInLine != 3 || region.End.OffsetInLine != 6 {
		t.Errorf("region = %v, want 3..6", region)
	}
}

func TestTextSearcherReplaceAll(t *testing.T) {
	doc := newTestDocument(t, "cat cat cat")
	scope := wholeDocumentScope(doc)
	ts := NewTextSearcher()
	if err := ts.SetPattern("cat", Literal, true); err != nil {
		t.Fatalf("SetPattern: %v", err)
	}
	count, err := ts.ReplaceAll(doc, scope, stringToUTF16("dog"), nil)
	if err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
	text, err := doc.Text(wholeDocumentScope(doc))
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if got := utf16ToString(text); got != "dog dog dog" {
		t.Errorf("text = %q, want %q", got, "dog dog dog")
	}
}

func TestIncrementalSearcherTypeAndFind(t *testing.T) {
	doc := newTestDocument(t, "alpha beta gamma")
	scope := wholeDocumentScope(doc)
	ts := NewTextSearcher()
	is := NewIncrementalSearcher()
	var events []IncrementalEvent
	is.SetCallback(func(e IncrementalEvent, wrapped bool) { events = append(events, e) })
	is.Start(doc, document.Position{}, scope, ts, Literal, true, document.Forward)
	is.AddString("beta")
	region, ok := is.End()
	if !ok {
		t.Fatalf("expected a match at end")
	}
	if region.Start.OffsetInLine != 6 || region.End.OffsetInLine != 10 {
		t.Errorf("region = %v, want 6..10", region)
	}
	if len(events) == 0 || events[len(events)-1] != Found {
		t.Errorf("events = %v, want last = Found", events)
	}
	if is.State() != Idle {
		t.Errorf("state = %v, want Idle", is.State())
	}
}

func TestIncrementalSearcherAbortsOnDocumentChange(t *testing.T) {
	doc := newTestDocument(t, "alpha beta gamma")
	scope := wholeDocumentScope(doc)
	ts := NewTextSearcher()
	is := NewIncrementalSearcher()
	is.Start(doc, document.Position{}, scope, ts, Literal, true, document.Forward)
	if err := doc.Insert(document.Position{}, stringToUTF16("X")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if is.State() != Idle {
		t.Errorf("state = %v, want Idle after document change", is.State())
	}
}

func TestIncrementalSearcherUndoType(t *testing.T) {
	doc := newTestDocument(t, "alphabet")
	scope := wholeDocumentScope(doc)
	ts := NewTextSearcher()
	is := NewIncrementalSearcher()
	is.Start(doc, document.Position{}, scope, ts, Literal, true, document.Forward)
	is.AddString("alphax")
	is.Undo()
	region, ok := is.End()
	if !ok {
		t.Fatalf("expected a match after undoing the mistyped character")
	}
	if region.Start.OffsetInLine != 0 {
		t.Errorf("region = %v, want start 0", region)
	}
}
