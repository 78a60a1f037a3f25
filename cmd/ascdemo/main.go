// Command ascdemo is a minimal terminal program that exercises the
// document, encoding, file I/O, search, and viewport packages end to end.
// It opens a file, displays it scrolled through a viewport.Viewport, and
// supports basic editing, saving, and literal search, using tcell
// directly rather than a layered renderer/backend abstraction.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/exeal/ascension/internal/document"
	"github.com/exeal/ascension/internal/fileio"
	"github.com/exeal/ascension/internal/search"
	"github.com/exeal/ascension/internal/unicode"
	"github.com/exeal/ascension/internal/viewport"
)

func main() {
	flag.Parse()
	path := flag.Arg(0)
	if path == "" {
		fmt.Fprintln(os.Stderr, "usage: ascdemo <file>")
		os.Exit(1)
	}

	if err := run(path); err != nil {
		fmt.Fprintf(os.Stderr, "ascdemo: %v\n", err)
		os.Exit(1)
	}
}

// mode distinguishes normal navigation/editing from the one-line search
// prompt at the bottom of the screen.
type mode uint8

const (
	modeNormal mode = iota
	modeSearch
)

type app struct {
	doc      *document.Document
	in       *fileio.TextFileDocumentInput
	vp       *viewport.Viewport
	searcher *search.TextSearcher
	cursor   document.Position
	screen   tcell.Screen
	mode     mode
	query    string
	status   string
}

func run(path string) error {
	in := fileio.NewTextFileDocumentInput(path)
	doc := document.New()
	doc.SetInput(in)
	if err := in.Revert(doc); err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer in.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	vp := viewport.New()
	doc.AddListener(viewport.NewDocumentForwarder(vp))

	a := &app{
		doc:      doc,
		in:       in,
		vp:       vp,
		searcher: search.NewTextSearcher(),
		screen:   screen,
		status:   fmt.Sprintf("%s — ctrl-s save, ctrl-f find, ctrl-q quit", path),
	}
	a.syncVisualMetrics()
	a.loop()
	return nil
}

func (a *app) loop() {
	a.draw()
	for {
		ev := a.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			a.syncVisualMetrics()
			a.screen.Sync()
		case *tcell.EventKey:
			if !a.handleKey(ev) {
				return
			}
		}
		a.draw()
	}
}

func (a *app) handleKey(ev *tcell.EventKey) bool {
	if a.mode == modeSearch {
		return a.handleSearchKey(ev)
	}
	switch ev.Key() {
	case tcell.KeyCtrlQ, tcell.KeyEscape:
		return false
	case tcell.KeyCtrlS:
		a.save()
	case tcell.KeyCtrlF:
		a.mode = modeSearch
		a.query = ""
		a.status = "search: "
	case tcell.KeyUp:
		a.moveCursorLine(-1)
	case tcell.KeyDown:
		a.moveCursorLine(1)
	case tcell.KeyLeft:
		a.moveCursorColumn(-1)
	case tcell.KeyRight:
		a.moveCursorColumn(1)
	case tcell.KeyPgUp:
		a.vp.Scroll(viewport.BlockProgression, viewport.Backward, uint32(a.vp.NumberOfVisibleLines()))
	case tcell.KeyPgDn:
		a.vp.Scroll(viewport.BlockProgression, viewport.Forward, uint32(a.vp.NumberOfVisibleLines()))
	case tcell.KeyEnter:
		a.insert([]unicode.Char{'\n'})
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		a.eraseBeforeCursor()
	case tcell.KeyRune:
		a.insert([]unicode.Char{uint16(ev.Rune())})
	}
	return true
}

func (a *app) handleSearchKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		a.mode = modeNormal
		a.status = "search cancelled"
	case tcell.KeyEnter:
		a.runSearch()
		a.mode = modeNormal
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if n := len(a.query); n > 0 {
			a.query = a.query[:n-1]
		}
		a.status = "search: " + a.query
	case tcell.KeyRune:
		a.query += string(ev.Rune())
		a.status = "search: " + a.query
	}
	return true
}

func (a *app) runSearch() {
	if err := a.searcher.SetPattern(a.query, search.Literal, false); err != nil {
		a.status = fmt.Sprintf("search error: %v", err)
		return
	}
	scope := document.Region{End: document.Position{Line: uint32(a.doc.LineCount() - 1)}}
	region, found, err := a.searcher.Search(a.doc, a.cursor, scope, document.Forward)
	if err != nil {
		a.status = fmt.Sprintf("search error: %v", err)
		return
	}
	if !found {
		a.status = fmt.Sprintf("%q not found", a.query)
		return
	}
	a.cursor = region.Start
	a.status = fmt.Sprintf("found %q at line %d", a.query, region.Start.Line)
	a.ensureCursorVisible()
}

func (a *app) insert(text []unicode.Char) {
	if err := a.doc.Insert(a.cursor, text); err != nil {
		a.status = fmt.Sprintf("insert error: %v", err)
		return
	}
	a.cursor.OffsetInLine += uint32(len(text))
	if text[0] == '\n' {
		a.cursor = document.Position{Line: a.cursor.Line + 1}
	}
	a.ensureCursorVisible()
}

func (a *app) eraseBeforeCursor() {
	if a.cursor.OffsetInLine == 0 && a.cursor.Line == 0 {
		return
	}
	start := a.cursor
	if start.OffsetInLine > 0 {
		start.OffsetInLine--
	} else {
		start.Line--
		start.OffsetInLine = uint32(a.doc.Line(start.Line).Length())
	}
	if err := a.doc.Erase(document.Region{Start: start, End: a.cursor}); err != nil {
		a.status = fmt.Sprintf("erase error: %v", err)
		return
	}
	a.cursor = start
	a.ensureCursorVisible()
}

func (a *app) save() {
	if err := a.in.Write(a.doc); err != nil {
		a.status = fmt.Sprintf("save failed: %v", err)
		return
	}
	a.status = "saved"
}

func (a *app) moveCursorLine(delta int) {
	line := int(a.cursor.Line) + delta
	if line < 0 {
		line = 0
	}
	if max := a.doc.LineCount() - 1; line > max {
		line = max
	}
	a.cursor.Line = uint32(line)
	if n := uint32(a.doc.Line(a.cursor.Line).Length()); a.cursor.OffsetInLine > n {
		a.cursor.OffsetInLine = n
	}
	a.ensureCursorVisible()
}

func (a *app) moveCursorColumn(delta int) {
	offset := int(a.cursor.OffsetInLine) + delta
	if offset < 0 {
		offset = 0
	}
	if n := a.doc.Line(a.cursor.Line).Length(); offset > n {
		offset = n
	}
	a.cursor.OffsetInLine = uint32(offset)
	a.ensureCursorVisible()
}

// ensureCursorVisible scrolls the viewport just enough that the cursor's
// line falls within the visible window; a real layout engine would also
// account for wrapped sublines, but this demo treats every logical line
// as exactly one visual line.
func (a *app) ensureCursorVisible() {
	top := a.vp.Position().BPD
	visible := uint32(a.vp.NumberOfVisibleLines())
	if visible == 0 {
		return
	}
	switch {
	case a.cursor.Line < top:
		a.vp.ScrollTo(viewport.Position{BPD: a.cursor.Line})
	case a.cursor.Line >= top+visible:
		a.vp.ScrollTo(viewport.Position{BPD: a.cursor.Line - visible + 1})
	}
}

func (a *app) syncVisualMetrics() {
	_, height := a.screen.Size()
	textRows := height - 1
	if textRows < 1 {
		textRows = 1
	}
	a.vp.SetVisualMetrics(a.vp.FirstVisibleLineInLogicalNumber(), 0, textRows)
}

func (a *app) draw() {
	a.screen.Clear()
	width, height := a.screen.Size()
	top := int(a.vp.Position().BPD)
	for row := 0; row < height-1; row++ {
		lineNum := top + row
		if lineNum >= a.doc.LineCount() {
			break
		}
		line := a.doc.Line(uint32(lineNum))
		drawRunes(a.screen, 0, row, width, line.Text)
	}
	drawString(a.screen, 0, height-1, width, a.status)

	cursorRow := int(a.cursor.Line) - top
	if cursorRow >= 0 && cursorRow < height-1 {
		a.screen.ShowCursor(int(a.cursor.OffsetInLine), cursorRow)
	} else {
		a.screen.HideCursor()
	}
	a.screen.Show()
}

func drawRunes(s tcell.Screen, x, y, width int, text []unicode.Char) {
	col := x
	for _, cp := range runesOf(text) {
		if col >= width {
			return
		}
		s.SetContent(col, y, rune(cp), nil, tcell.StyleDefault)
		col++
	}
}

func drawString(s tcell.Screen, x, y, width int, text string) {
	col := x
	for _, r := range text {
		if col >= width {
			return
		}
		s.SetContent(col, y, r, nil, tcell.StyleDefault.Reverse(true))
		col++
	}
}

// runesOf decodes a UTF-16 line buffer into display runes, surrogate pairs
// included; isolated surrogates render as the replacement character.
func runesOf(text []unicode.Char) []rune {
	out := make([]rune, 0, len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c >= 0xD800 && c <= 0xDBFF && i+1 < len(text) && text[i+1] >= 0xDC00 && text[i+1] <= 0xDFFF {
			r := (rune(c)-0xD800)<<10 + (rune(text[i+1]) - 0xDC00) + 0x10000
			out = append(out, r)
			i++
			continue
		}
		if c >= 0xD800 && c <= 0xDFFF {
			out = append(out, '�')
			continue
		}
		out = append(out, rune(c))
	}
	return out
}
