package fileio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/exeal/ascension/internal/document"
	"github.com/exeal/ascension/internal/encoding"
)

func TestTextFileDocumentInputRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.txt")
	want := "first line\nsecond line\nthird"
	if err := os.WriteFile(path, []byte(want), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	in := NewTextFileDocumentInput(path)
	doc := document.New()
	doc.SetInput(in)
	if err := in.Revert(doc); err != nil {
		t.Fatalf("Revert: %v", err)
	}
	if doc.LineCount() != 3 {
		t.Fatalf("LineCount = %d, want 3", doc.LineCount())
	}
	if doc.IsModified() {
		t.Errorf("document reports modified right after Revert")
	}

	last := doc.LineCount() - 1
	scope := document.Region{
		Start: document.Position{},
		End:   document.Position{Line: uint32(last), OffsetInLine: uint32(doc.Line(uint32(last)).Length())},
	}
	text, err := doc.Text(scope)
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if got := charsToUTF8(text); got != want {
		t.Errorf("decoded text = %q, want %q", got, want)
	}

	if err := doc.Insert(document.Position{}, stringToUTF16("X")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := in.Write(doc); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if doc.IsModified() {
		t.Errorf("document reports modified right after Write")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got, want := string(raw), "X"+want; got != want {
		t.Errorf("file contents = %q, want %q", got, want)
	}
}

func TestTextFileDocumentInputIsChangeableDetectsExternalEdit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	in := NewTextFileDocumentInput(path)
	doc := document.New()
	doc.SetInput(in)
	if err := in.Revert(doc); err != nil {
		t.Fatalf("Revert: %v", err)
	}
	if !in.IsChangeable(doc) {
		t.Fatalf("expected IsChangeable true right after Revert")
	}

	if err := os.WriteFile(path, []byte("hello, mutated externally"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if in.IsChangeable(doc) {
		t.Errorf("expected IsChangeable false after an external write changed size/mtime")
	}
}

func TestSidecarStoreSaveLoad(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "sample.txt")
	store := NewSidecarStore(docPath)

	if _, ok, err := store.Load(); err != nil || ok {
		t.Fatalf("Load on missing sidecar: ok=%v err=%v", ok, err)
	}

	want := State{
		Path:     docPath,
		Encoding: "UTF-8",
		BOM:      true,
		Newline:  document.CRLF,
	}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, ok, err := store.Load()
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if got.Path != want.Path || got.Encoding != want.Encoding || got.BOM != want.BOM || got.Newline != want.Newline {
		t.Errorf("Load = %+v, want %+v", got, want)
	}

	if err := store.Remove(); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, ok, _ := store.Load(); ok {
		t.Errorf("sidecar still present after Remove")
	}
}

func TestTextFileStreamBufferBOMRoundTrip(t *testing.T) {
	codec, err := encoding.ForName("UTF-8")
	if err != nil {
		t.Fatalf("ForName: %v", err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "bom.txt")
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("hi there\n")...)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	buf := NewTextFileStreamBuffer(codec, encoding.Abort, true)
	if err := buf.Decode(path, f); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := charsToUTF8(buf.Text()); got != "hi there\n" {
		t.Errorf("decoded text = %q, want %q (BOM must be stripped)", got, "hi there\n")
	}

	doc := document.New()
	if err := doc.Insert(document.Position{}, buf.Text()); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if doc.LineCount() != 2 {
		t.Fatalf("LineCount = %d, want 2", doc.LineCount())
	}
}
