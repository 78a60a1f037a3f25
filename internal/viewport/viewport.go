// Package viewport pins the boundary between the text engine and a layout
// engine/renderer it does not itself implement: a scroll position expressed
// in the abstract block-progression/inline-progression axes, visual-line
// query methods a caret or renderer needs, and a change listener slot the
// document forwards its edits through so an external layout engine can
// keep scroll bounds in sync. There is deliberately no animation, margin,
// or pixel-geometry logic here, since those belong to the layout engine
// this package only pins the contract for.
package viewport

import (
	"sync"

	"github.com/exeal/ascension/internal/document"
)

// Position is a scroll position in the abstract two-axis coordinate: BPD
// (block-progression direction, the axis lines stack along) and IPD
// (inline-progression direction, the axis glyphs run along within a line).
// For a conventional horizontal-script layout, BPD is the vertical axis and
// IPD the horizontal one; the names stay axis-neutral for vertical scripts.
type Position struct {
	BPD uint32
	IPD uint32
}

// Rectangle is the pixel-space bounds the viewport currently occupies in
// its host window, supplied by the renderer and otherwise opaque to this
// package.
type Rectangle struct {
	X, Y, Width, Height int
}

// Axis selects which of the two scroll axes an operation targets.
type Axis uint8

const (
	BlockProgression Axis = iota
	InlineProgression
)

// Direction is which way along an Axis a Scroll call moves.
type Direction uint8

const (
	Forward Direction = iota
	Backward
)

// ScrollListener is notified exactly once per ScrollTo or Scroll call that
// changes the position, receiving the position scrolled away from.
type ScrollListener interface {
	Scrolled(v *Viewport, old Position)
}

// LineLayoutListener is the hook an external layout engine installs to
// learn about document edits that may have changed line heights, wraps, or
// counts. Viewport itself performs no layout; AddLineLayoutListener plus
// NotifyDocumentChanged (wired as a document.Listener elsewhere) are the
// whole of its responsibility here, per the contract's closing sentence
// that the core only forwards change events to the layout engine.
type LineLayoutListener interface {
	LineLayoutChanged(erased, inserted document.Region)
}

// Viewport is the stateful scroll-position object the core hands a layout
// engine and caret logic. Numbers of visible lines/sublines are supplied
// by SetVisualMetrics, since only the (external, unimplemented) layout
// engine can compute wraps; Viewport itself just stores and reports them.
type Viewport struct {
	mu sync.Mutex

	position Position
	bounds   Rectangle

	firstVisibleLine    uint32
	firstVisibleSubline uint32
	visibleLineCount    int

	scrollListeners []ScrollListener
	layoutListeners []LineLayoutListener
}

// New returns a Viewport at the origin with an empty bounds rectangle.
func New() *Viewport {
	return &Viewport{visibleLineCount: 1}
}

// Position returns the current scroll position.
func (v *Viewport) Position() Position {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.position
}

// BoundsInView returns the viewport's current pixel rectangle.
func (v *Viewport) BoundsInView() Rectangle {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.bounds
}

// SetBoundsInView updates the pixel rectangle the renderer has assigned
// this viewport; it does not itself trigger a scroll.
func (v *Viewport) SetBoundsInView(r Rectangle) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.bounds = r
}

// AddScrollListener registers l to be notified of future ScrollTo/Scroll
// calls that actually move the position.
func (v *Viewport) AddScrollListener(l ScrollListener) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.scrollListeners = append(v.scrollListeners, l)
}

// RemoveScrollListener unregisters l.
func (v *Viewport) RemoveScrollListener(l ScrollListener) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, existing := range v.scrollListeners {
		if existing == l {
			v.scrollListeners = append(v.scrollListeners[:i], v.scrollListeners[i+1:]...)
			return
		}
	}
}

// AddLineLayoutListener registers l to receive forwarded document change
// events; see NotifyDocumentChanged.
func (v *Viewport) AddLineLayoutListener(l LineLayoutListener) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.layoutListeners = append(v.layoutListeners, l)
}

// RemoveLineLayoutListener unregisters l.
func (v *Viewport) RemoveLineLayoutListener(l LineLayoutListener) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, existing := range v.layoutListeners {
		if existing == l {
			v.layoutListeners = append(v.layoutListeners[:i], v.layoutListeners[i+1:]...)
			return
		}
	}
}

// NotifyDocumentChanged forwards a document edit to every registered
// LineLayoutListener. Wire it as (or from) a document.Listener.DocumentChanged
// callback; Viewport performs no layout computation of its own, it only
// relays the event per the contract's closing sentence.
func (v *Viewport) NotifyDocumentChanged(erased, inserted document.Region) {
	v.mu.Lock()
	listeners := append([]LineLayoutListener(nil), v.layoutListeners...)
	v.mu.Unlock()
	for _, l := range listeners {
		l.LineLayoutChanged(erased, inserted)
	}
}

// ScrollTo moves the scroll position to p, firing Scrolled exactly once on
// every registered ScrollListener if p differs from the current position.
func (v *Viewport) ScrollTo(p Position) {
	v.mu.Lock()
	old := v.position
	if old == p {
		v.mu.Unlock()
		return
	}
	v.position = p
	listeners := append([]ScrollListener(nil), v.scrollListeners...)
	v.mu.Unlock()

	for _, l := range listeners {
		l.Scrolled(v, old)
	}
}

// Scroll moves the scroll position by step units along axis in direction.
// step is a magnitude, never negative (the type system enforces this
// directly: a uint32 step with a separate Direction, rather than a signed
// delta, is the scroll-step-≥-0 constraint). Movement saturates at zero
// rather than wrapping past the origin.
func (v *Viewport) Scroll(axis Axis, direction Direction, step uint32) {
	v.mu.Lock()
	old := v.position
	next := old
	switch axis {
	case BlockProgression:
		next.BPD = applyStep(old.BPD, direction, step)
	case InlineProgression:
		next.IPD = applyStep(old.IPD, direction, step)
	}
	if next == old {
		v.mu.Unlock()
		return
	}
	v.position = next
	listeners := append([]ScrollListener(nil), v.scrollListeners...)
	v.mu.Unlock()

	for _, l := range listeners {
		l.Scrolled(v, old)
	}
}

func applyStep(from uint32, direction Direction, step uint32) uint32 {
	if direction == Forward {
		return from + step
	}
	if step > from {
		return 0
	}
	return from - step
}

// SetVisualMetrics records what the (external) layout engine has computed
// for the current scroll position: which logical line and subline of that
// line is first visible, and how many visual lines fit in the viewport's
// current bounds. Viewport has no way to derive these itself; it is purely
// a place for the layout engine to publish them for FirstVisibleLineInLogicalNumber
// and friends.
func (v *Viewport) SetVisualMetrics(firstLine, firstSubline uint32, visibleLineCount int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.firstVisibleLine = firstLine
	v.firstVisibleSubline = firstSubline
	v.visibleLineCount = visibleLineCount
}

// FirstVisibleLineInLogicalNumber returns the logical (document) line
// number of the first visible visual line.
func (v *Viewport) FirstVisibleLineInLogicalNumber() uint32 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.firstVisibleLine
}

// FirstVisibleSublineInLogicalLine returns which wrapped subline, within
// the first visible logical line, is first visible.
func (v *Viewport) FirstVisibleSublineInLogicalLine() uint32 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.firstVisibleSubline
}

// NumberOfVisibleLines returns how many visual lines currently fit in the
// viewport's bounds.
func (v *Viewport) NumberOfVisibleLines() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.visibleLineCount
}
