package rules

import (
	"testing"

	"github.com/exeal/ascension/internal/arena"
	"github.com/exeal/ascension/internal/document"
)

func TestScanLineMatchesAndSkips(t *testing.T) {
	word := NewWordRule(1, []string{"if", "end"}, true)
	a := arena.New[Token]()
	scanner := &Scanner{}

	text := []uint16{'i', 'f', ' ', 'x', ' ', 'e', 'n', 'd'}
	tokens := ScanLine([]Rule{word}, scanner, text, a)

	if len(tokens) != 2 {
		t.Fatalf("len(tokens) = %d, want 2", len(tokens))
	}
	if tokens[0].ID != 1 || tokens[0].Region.Start.OffsetInLine != 0 || tokens[0].Region.End.OffsetInLine != 2 {
		t.Errorf("tokens[0] = %+v, want ID 1 over [0,2)", tokens[0])
	}
	if tokens[1].ID != 1 || tokens[1].Region.Start.OffsetInLine != 5 || tokens[1].Region.End.OffsetInLine != 8 {
		t.Errorf("tokens[1] = %+v, want ID 1 over [5,8)", tokens[1])
	}
	if a.Len() != 2 {
		t.Errorf("a.Len() = %d, want 2", a.Len())
	}
}

func TestScanLineEmptyTextReturnsNoTokens(t *testing.T) {
	word := NewWordRule(1, []string{"if"}, true)
	a := arena.New[Token]()
	scanner := &Scanner{Position: document.Position{Line: 3}}

	tokens := ScanLine([]Rule{word}, scanner, nil, a)
	if len(tokens) != 0 {
		t.Fatalf("len(tokens) = %d, want 0", len(tokens))
	}
	if scanner.Position.Line != 3 {
		t.Errorf("scanner line moved unexpectedly: %+v", scanner.Position)
	}
}

func TestScanLineAdvancesScannerPastEnd(t *testing.T) {
	word := NewWordRule(1, []string{"end"}, true)
	a := arena.New[Token]()
	scanner := &Scanner{Position: document.Position{Line: 2}}

	text := []uint16{'e', 'n', 'd'}
	tokens := ScanLine([]Rule{word}, scanner, text, a)
	if len(tokens) != 1 {
		t.Fatalf("len(tokens) = %d, want 1", len(tokens))
	}
	if scanner.Position.OffsetInLine != 3 {
		t.Errorf("scanner ended at offset %d, want 3", scanner.Position.OffsetInLine)
	}
}
