package viewport

import "github.com/exeal/ascension/internal/document"

// DocumentForwarder adapts a Viewport to document.Listener, so
// doc.AddListener(viewport.NewDocumentForwarder(v)) is all a caller needs
// to keep the layout engine informed of edits. AboutToChange never vetoes;
// this package has no basis on which to refuse a change.
type DocumentForwarder struct {
	v *Viewport
}

// NewDocumentForwarder returns a document.Listener that forwards every
// change on doc to v's registered LineLayoutListeners.
func NewDocumentForwarder(v *Viewport) *DocumentForwarder {
	return &DocumentForwarder{v: v}
}

func (f *DocumentForwarder) DocumentAboutToChange(doc *document.Document, erased, inserted document.Region) bool {
	return true
}

func (f *DocumentForwarder) DocumentChanged(doc *document.Document, erased, inserted document.Region) {
	f.v.NotifyDocumentChanged(erased, inserted)
}

var _ document.Listener = (*DocumentForwarder)(nil)
