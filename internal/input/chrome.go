package input

import "github.com/veloterm/veloterm/internal/geom"

// TabBarHitKind identifies what part of the tab bar a click landed on
// (spec.md §4.8 step 2).
type TabBarHitKind int

const (
	TabBarHitNone TabBarHitKind = iota
	TabBarHitSelect
	TabBarHitClose
	TabBarHitNew
)

// TabBarHit is the result of a tab-bar hit test.
type TabBarHit struct {
	Kind  TabBarHitKind
	Index int
}

// TabRect is one tab's hit-testable geometry within the bar, including
// its close-button sub-rect.
type TabRect struct {
	Rect      geom.Rect
	CloseRect geom.Rect
}

// tabDragMinPx is the minimum horizontal travel before a tab-bar press
// becomes a reorder drag rather than a plain click (spec.md §4.8 step 2).
const tabDragMinPx = 5

// HitTestTabBar resolves a click at point against the tab rects and an
// optional new-tab button rect.
func HitTestTabBar(point geom.Point, tabs []TabRect, newTabRect geom.Rect) TabBarHit {
	if newTabRect.Contains(point) {
		return TabBarHit{Kind: TabBarHitNew}
	}
	for i, tr := range tabs {
		if tr.CloseRect.Contains(point) {
			return TabBarHit{Kind: TabBarHitClose, Index: i}
		}
		if tr.Rect.Contains(point) {
			return TabBarHit{Kind: TabBarHitSelect, Index: i}
		}
	}
	return TabBarHit{Kind: TabBarHitNone}
}

// TabDragState tracks an in-flight tab-bar reorder drag.
type TabDragState struct {
	Active     bool
	StartIndex int
	StartX     float32
	Reordering bool
}

// OnMousePressed begins tracking a potential reorder drag from the tab
// at index.
func (t *TabDragState) OnMousePressed(index int, point geom.Point) {
	t.Active = true
	t.Reordering = false
	t.StartIndex = index
	t.StartX = point.X
}

// OnMouseMoved reports whether the drag has crossed the reorder
// threshold, and if so returns the tab's new candidate index: the
// index of the tab rect whose horizontal span contains the pointer.
func (t *TabDragState) OnMouseMoved(point geom.Point, tabRects []TabRect) (targetIndex int, reordering bool) {
	if !t.Active {
		return t.StartIndex, false
	}
	if !t.Reordering {
		if abs(point.X-t.StartX) < tabDragMinPx {
			return t.StartIndex, false
		}
		t.Reordering = true
	}
	for i, tr := range tabRects {
		if point.X >= tr.Rect.X && point.X < tr.Rect.X+tr.Rect.W {
			return i, true
		}
	}
	return t.StartIndex, true
}

// OnMouseReleased ends the drag.
func (t *TabDragState) OnMouseReleased() {
	t.Active = false
	t.Reordering = false
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
