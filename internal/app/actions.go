package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/veloterm/veloterm/internal/atlas"
	"github.com/veloterm/veloterm/internal/config"
	"github.com/veloterm/veloterm/internal/input"
	"github.com/veloterm/veloterm/internal/layout"
	"github.com/veloterm/veloterm/internal/selection"
)

const (
	minFontSizePx  = 8
	maxFontSizePx  = 72
	fontStepFactor = 1.1
)

// applyAction dispatches a global keybinding outcome (spec.md §4.8 step
// 6's action list) to the tab/pane/font/clipboard operation it names.
func (w *Workspace) applyAction(action input.Action) tea.Cmd {
	switch action {
	case input.ActionNewTab:
		return w.newTab()
	case input.ActionCloseTab:
		return w.closeActiveTab()
	case input.ActionNextTab:
		w.tabsMgr.NextTab()
		w.relayout()
	case input.ActionPrevTab:
		w.tabsMgr.PrevTab()
		w.relayout()
	case input.ActionMoveTabLeft:
		i := w.tabsMgr.ActiveIndex
		if i > 0 {
			w.tabsMgr.MoveTab(i, i-1)
		}
	case input.ActionMoveTabRight:
		i := w.tabsMgr.ActiveIndex
		if i < len(w.tabsMgr.Tabs)-1 {
			w.tabsMgr.MoveTab(i, i+1)
		}
	case input.ActionSplitVertical:
		return w.split(layout.Vertical)
	case input.ActionSplitHorizontal:
		return w.split(layout.Horizontal)
	case input.ActionClosePane:
		return w.closeFocusedPane()
	case input.ActionFocusUp:
		w.focusDirection(layout.Up)
	case input.ActionFocusDown:
		w.focusDirection(layout.Down)
	case input.ActionFocusLeft:
		w.focusDirection(layout.Left)
	case input.ActionFocusRight:
		w.focusDirection(layout.Right)
	case input.ActionZoomToggle:
		w.tabsMgr.Active().Tree.ZoomToggle()
		w.relayout()
	case input.ActionCopy:
		w.copySelection()
	case input.ActionPaste:
		return w.pasteClipboard()
	case input.ActionSelectAll:
		w.selectAll()
	case input.ActionFontIncrease:
		w.adjustFontSize(int(float64(w.fontSizePx) * fontStepFactor))
	case input.ActionFontDecrease:
		w.adjustFontSize(int(float64(w.fontSizePx) / fontStepFactor))
	case input.ActionFontReset:
		w.adjustFontSize(w.cfg.Font.SizePx)
	case input.ActionEnterSearch:
		ps := w.activePane()
		if ps != nil {
			ps.search.SetQuery("", nil)
		}
	case input.ActionPrevPrompt:
		w.jumpToPrompt(-1)
	case input.ActionNextPrompt:
		w.jumpToPrompt(1)
	}
	return nil
}

func (w *Workspace) newTab() tea.Cmd {
	w.tabsMgr.NewTab()
	tab := w.tabsMgr.Active()
	var cmds []tea.Cmd
	for _, id := range tab.Tree.Leaves() {
		ps := w.newPaneState(id)
		w.panes[id] = ps
		cmds = append(cmds, ps.leaf.Start(defaultShell()))
	}
	w.relayout()
	return tea.Batch(cmds...)
}

func (w *Workspace) closeActiveTab() tea.Cmd {
	ids, ok := w.tabsMgr.CloseTab(w.tabsMgr.ActiveIndex)
	if !ok {
		return nil
	}
	for _, id := range ids {
		w.stopAndForgetPane(id)
	}
	w.relayout()
	return nil
}

// closeFocusedPane closes the focused pane of the active tab, closing
// the whole tab (unless it is the last tab) when it was the tab's last
// pane (spec.md §4.6).
func (w *Workspace) closeFocusedPane() tea.Cmd {
	tab := w.tabsMgr.Active()
	id, ok := tab.Tree.CloseFocused()
	if !ok {
		// CloseFocused refused: this is the tab's only leaf. Close the
		// tab itself instead, unless it is the workspace's last tab.
		return w.closeActiveTab()
	}
	w.stopAndForgetPane(id)
	w.relayout()
	return nil
}

func (w *Workspace) stopAndForgetPane(id layout.PaneId) {
	if ps, ok := w.panes[id]; ok {
		ps.leaf.StopGraceful(shutdownTimeout)
		delete(w.panes, id)
		delete(w.scrollbarDrag, id)
	}
}

func (w *Workspace) split(dir layout.SplitDir) tea.Cmd {
	tab := w.tabsMgr.Active()
	m := w.metrics()
	rects := tab.Tree.CalculateLayout(w.contentBounds(), m)
	r, ok := rects[tab.Tree.Focused]
	if !ok {
		return nil
	}
	newID, err := tab.Tree.SplitFocused(dir, r.W, r.H, m.CellW, m.CellH)
	if err != nil {
		return nil
	}
	ps := w.newPaneState(newID)
	w.panes[newID] = ps
	w.relayout()
	return ps.leaf.Start(defaultShell())
}

func (w *Workspace) focusDirection(dir layout.FocusDir) {
	tab := w.tabsMgr.Active()
	tab.Tree.FocusDirection(dir, w.contentBounds(), w.metrics())
}

func (w *Workspace) copySelection() {
	ps := w.activePane()
	if ps == nil || w.clipboard.Write == nil {
		return
	}
	text := ps.leaf.Selection.SelectedText(ps.leaf)
	if text != "" {
		w.clipboard.Write(text)
	}
}

func (w *Workspace) pasteClipboard() tea.Cmd {
	ps := w.activePane()
	if ps == nil || w.clipboard.Read == nil {
		return nil
	}
	text, err := w.clipboard.Read()
	if err != nil || text == "" {
		return nil
	}
	wrapped := input.WrapBracketedPaste(text, ps.leaf.BracketedPasteEnabled())
	ps.scroll.SnapToBottom()
	ps.leaf.SetViewportOffset(0)
	ps.leaf.WriteInput([]byte(wrapped))
	return nil
}

func (w *Workspace) selectAll() {
	ps := w.activePane()
	if ps == nil || ps.leaf.Selection == nil {
		return
	}
	_, rows := ps.leaf.Size()
	startRow := -ps.leaf.ScrollbackLen()
	ps.leaf.Selection.Start(selection.Range, selection.Position{Row: startRow, Col: 0}, ps.leaf)
	ps.leaf.Selection.Update(selection.Position{Row: rows - 1, Col: 1 << 20}, ps.leaf)
	ps.leaf.Selection.Finish()
}

// adjustFontSize clamps newSize to the configured range and, if it
// actually changed, rebuilds the atlas and forces a full repaint
// (spec.md §6: font size is live-adjustable, geometric step per press).
func (w *Workspace) adjustFontSize(newSize int) {
	if newSize < minFontSizePx {
		newSize = minFontSizePx
	}
	if newSize > maxFontSizePx {
		newSize = maxFontSizePx
	}
	if newSize == w.fontSizePx {
		return
	}
	at, err := atlas.Rebuild(w.fontSource, w.fontFamily, newSize, w.scaleFactor)
	if err != nil {
		return
	}
	w.fontSizePx = newSize
	w.atlas = at
	w.markAllDamage()
	w.relayout()
}

// jumpToPrompt moves the active pane's viewport so the previous
// (dir<0) or next (dir>0) recorded shell prompt is at the top of the
// viewport (spec.md §4.10 Prompts ring).
func (w *Workspace) jumpToPrompt(dir int) {
	ps := w.activePane()
	if ps == nil {
		return
	}
	prompts := ps.leaf.Shell.Prompts
	if len(prompts) == 0 {
		return
	}
	current := ps.leaf.ScrollbackLen() - ps.scroll.CurrentLineOffset()
	target := -1
	if dir < 0 {
		for i := len(prompts) - 1; i >= 0; i-- {
			if prompts[i] < current {
				target = prompts[i]
				break
			}
		}
		if target < 0 {
			target = prompts[0]
		}
	} else {
		for _, p := range prompts {
			if p > current {
				target = p
				break
			}
		}
		if target < 0 {
			target = prompts[len(prompts)-1]
		}
	}
	offset := ps.leaf.ScrollbackLen() - target
	if offset < 0 {
		offset = 0
	}
	ps.scroll.TargetOffset = offset
	ps.scroll.CurrentOffset = float64(offset)
	ps.leaf.SetViewportOffset(offset)
}

// applyConfigDelta reacts to a hot-reloaded config (spec.md §5/§6).
func (w *Workspace) applyConfigDelta(delta config.Delta) {
	w.cfg = delta.Config
	w.theme = delta.Config.ResolvedColors()
	for _, ps := range w.panes {
		ps.leaf.SetNotifyThresholdMs(delta.Config.Shell.LongCommandThresholdMs)
	}
	if delta.KeysChanged {
		w.dispatcher.KeyMap = input.DefaultKeyMap
	}
	if delta.FontChanged {
		w.fontFamily = delta.Config.Font.Family
		at, err := atlas.Rebuild(w.fontSource, w.fontFamily, delta.Config.Font.SizePx, w.scaleFactor)
		if err == nil {
			w.fontSizePx = delta.Config.Font.SizePx
			w.atlas = at
		}
	}
	if delta.FontChanged || delta.ThemeChanged {
		w.markAllDamage()
		w.relayout()
	}
}
