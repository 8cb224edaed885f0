package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/veloterm/veloterm/internal/geom"
	"github.com/veloterm/veloterm/internal/input"
	"github.com/veloterm/veloterm/internal/layout"
	"github.com/veloterm/veloterm/internal/scroll"
	"github.com/veloterm/veloterm/internal/selection"
)

const tabHeightRows = 1

// handleMouse implements spec.md §4.8's dispatch order for pointer
// events: chrome (tab bar) hit test, scrollbar hit test, divider hit
// test, then pane content (selection / link-click / PTY forwarding).
func (w *Workspace) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	m := w.metrics()
	point := geom.Point{X: float32(msg.X) * m.CellW, Y: float32(msg.Y) * m.CellH}

	if msg.Y < tabHeightRows {
		w.handleTabBarMouse(msg, point)
		return w, nil
	}

	if w.dividerDrag.Phase != layout.Dragging {
		if id, rect, ok := w.paneAt(point); ok && w.panes[id] != nil {
			if w.handleScrollbarMouse(msg, point, id, w.panes[id], rect, m) {
				w.tabsMgr.Active().Tree.Focus(id)
				return w, nil
			}
		}
	}

	w.handleDividerMouse(msg, point, m)
	if w.dividerDrag.Phase == layout.Dragging {
		return w, nil
	}

	id, rect, ok := w.paneAt(point)
	if !ok {
		return w, nil
	}
	w.tabsMgr.Active().Tree.Focus(id)

	ps := w.panes[id]
	if ps == nil {
		return w, nil
	}

	return w, w.handlePaneContentMouse(msg, point, ps, rect, m)
}

// paneAt returns the visible pane whose rect contains point.
func (w *Workspace) paneAt(point geom.Point) (layout.PaneId, geom.Rect, bool) {
	tab := w.tabsMgr.Active()
	rects := tab.Tree.CalculateLayout(w.contentBounds(), w.metrics())
	for _, id := range tab.Tree.VisiblePanes() {
		if r, ok := rects[id]; ok && r.Contains(point) {
			return id, r, true
		}
	}
	return 0, geom.Rect{}, false
}

func (w *Workspace) handleTabBarMouse(msg tea.MouseMsg, point geom.Point) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}
	rects := w.tabBarRects()
	newTabRect := geom.Rect{X: float32(len(w.tabsMgr.Tabs)) * tabWidthPx, Y: 0, W: tabWidthPx, H: w.metrics().CellH}
	hit := input.HitTestTabBar(point, rects, newTabRect)
	switch hit.Kind {
	case input.TabBarHitNew:
		w.applyAction(input.ActionNewTab)
	case input.TabBarHitSelect:
		w.tabsMgr.SelectTab(hit.Index)
		w.tabDrag.OnMousePressed(hit.Index, point)
		w.relayout()
	case input.TabBarHitClose:
		wasActive := hit.Index == w.tabsMgr.ActiveIndex
		_ = wasActive
		w.tabsMgr.SelectTab(hit.Index)
		w.closeActiveTab()
	}
}

const tabWidthPx = 120

// tabBarRects lays tabs out left to right at a fixed width; a real GPU
// backend would measure titles, but the software fallback here only
// needs stable, non-overlapping hit rects.
func (w *Workspace) tabBarRects() []input.TabRect {
	ch := w.metrics().CellH
	out := make([]input.TabRect, len(w.tabsMgr.Tabs))
	for i := range w.tabsMgr.Tabs {
		x := float32(i) * tabWidthPx
		out[i] = input.TabRect{
			Rect:      geom.Rect{X: x, Y: 0, W: tabWidthPx, H: ch},
			CloseRect: geom.Rect{X: x + tabWidthPx - ch, Y: 0, W: ch, H: ch},
		}
	}
	return out
}

// handleDividerMouse drives layout.DragState, the divider
// hover/press/drag/release state machine (spec.md §4.5, §4.8 step 4).
func (w *Workspace) handleDividerMouse(msg tea.MouseMsg, point geom.Point, m layout.Metrics) {
	tab := w.tabsMgr.Active()
	dividers := tab.Tree.CalculateDividers(w.contentBounds(), m)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		w.dividerDrag.OnCursorMoved(point, dividers)
		w.dividerDrag.OnMousePressed(point, dividers)
	case tea.MouseActionMotion:
		if w.dividerDrag.Phase != layout.Dragging {
			return
		}
		effect := w.dividerDrag.OnCursorMoved(point, dividers)
		if effect.Kind == layout.EffectUpdateRatio {
			node := dividers[w.dividerDrag.DividerIndex].Node
			bounds := dividers[w.dividerDrag.DividerIndex].Bounds
			layout.SetRatioOnNode(node, effect.NewRatio, bounds, m)
			w.relayout()
		}
	case tea.MouseActionRelease:
		w.dividerDrag.OnMouseReleased()
	}
}

func (w *Workspace) handleScrollbarMouse(msg tea.MouseMsg, point geom.Point, id layout.PaneId, ps *paneState, rect geom.Rect, m layout.Metrics) bool {
	drag, ok := w.scrollbarDrag[id]
	if !ok {
		drag = &input.ScrollbarDragState{}
		w.scrollbarDrag[id] = drag
	}

	_, visibleRows := ps.leaf.Size()
	track := input.ScrollbarTrack{
		Rect:       geom.Rect{X: rect.X, Y: rect.Y, W: rect.W, H: rect.H},
		HistoryLen: ps.leaf.ScrollbackLen(),
	}
	if thumb, ok := scroll.ScrollbarThumbRect(ps.scroll, rect, scrollbarMarginPx, visibleRows, ps.leaf.ScrollbackLen()); ok {
		track.ThumbY = thumb.Y - rect.Y
		track.ThumbH = thumb.H
	} else {
		return false
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return false
		}
		effect := drag.OnMousePressed(point, track, ps.scroll.TargetOffset, visibleRows)
		if effect.Kind == input.ScrollbarNoEffect && !drag.Dragging {
			return false
		}
		w.applyScrollbarEffect(ps, effect)
		return true
	case tea.MouseActionMotion:
		if !drag.Dragging {
			return false
		}
		w.applyScrollbarEffect(ps, drag.OnMouseMoved(point, track))
		return true
	case tea.MouseActionRelease:
		if drag.Dragging {
			drag.OnMouseReleased()
			return true
		}
	}
	return false
}

func (w *Workspace) applyScrollbarEffect(ps *paneState, effect input.ScrollbarEffect) {
	if effect.Kind == input.ScrollbarNoEffect {
		return
	}
	ps.scroll.TargetOffset = effect.NewOffset
	ps.scroll.CurrentOffset = float64(effect.NewOffset)
	ps.leaf.SetViewportOffset(effect.NewOffset)
}

// handlePaneContentMouse implements the teacher's HandleMouse split
// (Pane.HandleMouse): when the pane hasn't negotiated mouse tracking,
// wheel/left-click drive our own scroll/selection engines; once it has,
// events are translated to an X10 mouse report and written to the
// PTY instead.
func (w *Workspace) handlePaneContentMouse(msg tea.MouseMsg, point geom.Point, ps *paneState, rect geom.Rect, m layout.Metrics) tea.Cmd {
	if ps.leaf.MouseEnabled() {
		ps.leaf.WriteInput(encodeX10MouseReport(msg, point, rect, m))
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		ps.leaf.Selection.Clear()
		ps.scroll.ApplyLineDelta(3, ps.leaf.ScrollbackLen(), w.lastTick)
		return nil
	case tea.MouseButtonWheelDown:
		ps.leaf.Selection.Clear()
		ps.scroll.ApplyLineDelta(-3, ps.leaf.ScrollbackLen(), w.lastTick)
		return nil
	case tea.MouseButtonLeft:
		pos := paneLocalPosition(point, rect, m, ps)
		switch msg.Action {
		case tea.MouseActionPress:
			if msg.Shift {
				termCol, termRow, _ := ps.leaf.Cursor()
				ps.leaf.Selection.ShiftClick(pos, selection.Position{Row: termRow, Col: termCol}, ps.leaf)
			} else {
				_, kind := ps.mouse.RegisterClick([2]float32{point.X, point.Y}, time.Now())
				ps.leaf.Selection.Start(kind, pos, ps.leaf)
			}
		case tea.MouseActionMotion:
			ps.leaf.Selection.Update(pos, ps.leaf)
		case tea.MouseActionRelease:
			ps.leaf.Selection.Finish()
		}
		return nil
	case tea.MouseButtonRight, tea.MouseButtonMiddle:
		ps.leaf.Selection.Clear()
		return nil
	}
	return nil
}

// paneLocalPosition converts a workspace-space point to the pane's
// logical (possibly-scrollback-negative) cell coordinate.
func paneLocalPosition(point geom.Point, rect geom.Rect, m layout.Metrics, ps *paneState) selection.Position {
	col := int((point.X - rect.X) / m.CellW)
	row := int((point.Y - rect.Y) / m.CellH)
	row -= ps.scroll.CurrentLineOffset()
	return selection.Position{Row: row, Col: col}
}

// encodeX10MouseReport mirrors the teacher's colorToANSI-adjacent mouse
// report builder (buildANSI's sibling in Pane.HandleMouse), encoding
// an X10-style button press/release report for the wrapped program.
func encodeX10MouseReport(msg tea.MouseMsg, point geom.Point, rect geom.Rect, m layout.Metrics) []byte {
	col := int((point.X-rect.X)/m.CellW) + 1
	row := int((point.Y-rect.Y)/m.CellH) + 1
	if col > 223 {
		col = 223
	}
	if row > 223 {
		row = 223
	}

	var b byte
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		b = 64 + 32
	case tea.MouseButtonWheelDown:
		b = 65 + 32
	case tea.MouseButtonLeft:
		b = 0 + 32
	case tea.MouseButtonRight:
		b = 2 + 32
	case tea.MouseButtonMiddle:
		b = 1 + 32
	default:
		return nil
	}
	return []byte{'\x1b', '[', 'M', b, byte(col + 32), byte(row + 32)}
}
