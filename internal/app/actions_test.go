package app

import (
	"testing"

	"github.com/veloterm/veloterm/internal/config"
	"github.com/veloterm/veloterm/internal/input"
)

func TestNewTabAddsTabAndPane(t *testing.T) {
	w := newTestWorkspace(t)
	w.applyAction(input.ActionNewTab)

	if len(w.tabsMgr.Tabs) != 2 {
		t.Fatalf("expected 2 tabs, got %d", len(w.tabsMgr.Tabs))
	}
	if w.tabsMgr.ActiveIndex != 1 {
		t.Fatalf("expected new tab to become active, got index %d", w.tabsMgr.ActiveIndex)
	}
	if len(w.panes) != 2 {
		t.Fatalf("expected 2 panes tracked, got %d", len(w.panes))
	}
}

func TestCloseActiveTabRefusesLastTab(t *testing.T) {
	w := newTestWorkspace(t)
	w.applyAction(input.ActionCloseTab)

	if len(w.tabsMgr.Tabs) != 1 {
		t.Fatalf("expected closing the last tab to be refused, got %d tabs", len(w.tabsMgr.Tabs))
	}
}

func TestCloseActiveTabRemovesPaneState(t *testing.T) {
	w := newTestWorkspace(t)
	w.applyAction(input.ActionNewTab)
	if len(w.tabsMgr.Tabs) != 2 {
		t.Fatalf("setup: expected 2 tabs")
	}

	w.applyAction(input.ActionCloseTab)

	if len(w.tabsMgr.Tabs) != 1 {
		t.Fatalf("expected 1 tab after close, got %d", len(w.tabsMgr.Tabs))
	}
	if len(w.panes) != 1 {
		t.Fatalf("expected closed tab's pane state to be forgotten, got %d panes", len(w.panes))
	}
}

func TestSplitVerticalAddsPaneToFocusedTab(t *testing.T) {
	w := newTestWorkspace(t)
	before := len(w.panes)

	w.applyAction(input.ActionSplitVertical)

	if len(w.panes) != before+1 {
		t.Fatalf("expected a new pane after split, got %d panes (was %d)", len(w.panes), before)
	}
	tab := w.tabsMgr.Active()
	if len(tab.Tree.Leaves()) != 2 {
		t.Fatalf("expected 2 leaves in the tree, got %d", len(tab.Tree.Leaves()))
	}
}

func TestClosePaneClosesTabWhenItWasTheLastPane(t *testing.T) {
	w := newTestWorkspace(t)
	w.applyAction(input.ActionNewTab) // now 2 tabs, each single-pane

	w.applyAction(input.ActionClosePane)

	if len(w.tabsMgr.Tabs) != 1 {
		t.Fatalf("expected closing a tab's only pane to close the tab, got %d tabs", len(w.tabsMgr.Tabs))
	}
}

func TestZoomToggleSetsAndClearsZoomedPane(t *testing.T) {
	w := newTestWorkspace(t)
	w.applyAction(input.ActionSplitVertical)
	tab := w.tabsMgr.Active()

	w.applyAction(input.ActionZoomToggle)
	if tab.Tree.Zoomed == nil {
		t.Fatal("expected zoom toggle to set Zoomed")
	}

	w.applyAction(input.ActionZoomToggle)
	if tab.Tree.Zoomed != nil {
		t.Fatal("expected second zoom toggle to clear Zoomed")
	}
}

func TestFocusDirectionMovesFocusAcrossSplit(t *testing.T) {
	w := newTestWorkspace(t)
	w.applyAction(input.ActionSplitVertical)
	tab := w.tabsMgr.Active()
	rightPane := tab.Tree.Focused

	w.applyAction(input.ActionFocusLeft)

	if tab.Tree.Focused == rightPane {
		t.Fatal("expected focus-left to move focus off the newly split pane")
	}
}

func TestAdjustFontSizeClampsToConfiguredRange(t *testing.T) {
	w := newTestWorkspace(t)

	w.adjustFontSize(1000)
	if w.fontSizePx != maxFontSizePx {
		t.Fatalf("expected clamp to %d, got %d", maxFontSizePx, w.fontSizePx)
	}

	w.adjustFontSize(-5)
	if w.fontSizePx != minFontSizePx {
		t.Fatalf("expected clamp to %d, got %d", minFontSizePx, w.fontSizePx)
	}
}

func TestAdjustFontSizeNoopWhenUnchanged(t *testing.T) {
	w := newTestWorkspace(t)
	before := w.atlas

	w.adjustFontSize(w.fontSizePx)

	if w.atlas != before {
		t.Fatal("expected no atlas rebuild when font size is unchanged")
	}
}

func TestCopySelectionNoopsWithoutSelectionText(t *testing.T) {
	var written string
	w := newTestWorkspace(t)
	w.clipboard = Clipboard{
		Write: func(s string) error { written = s; return nil },
	}

	w.copySelection() // no active selection, no live grid: must not panic

	if written != "" {
		t.Fatalf("expected no clipboard write without a selection, got %q", written)
	}
}

func TestCopySelectionNoopsWithoutClipboard(t *testing.T) {
	w := newTestWorkspace(t)
	w.clipboard = Clipboard{}
	w.copySelection() // must not panic
}

func TestSelectAllSpansFromScrollbackToLastRow(t *testing.T) {
	w := newTestWorkspace(t)
	ps := w.activePane()

	w.selectAll()

	start, end := ps.leaf.Selection.Bounds()
	if start.Row != -ps.leaf.ScrollbackLen() || start.Col != 0 {
		t.Fatalf("expected selection to start at scrollback top, got %+v", start)
	}
	_, rows := ps.leaf.Size()
	if end.Row != rows-1 {
		t.Fatalf("expected selection to end on the last row (%d), got %d", rows-1, end.Row)
	}
}

func TestPasteClipboardWrapsBracketedPasteAndSnapsToBottom(t *testing.T) {
	w := newTestWorkspace(t)
	w.clipboard = Clipboard{
		Read: func() (string, error) { return "pasted text", nil },
	}
	ps := w.activePane()
	ps.scroll.TargetOffset = 5
	ps.scroll.CurrentOffset = 5

	w.pasteClipboard()

	if ps.scroll.CurrentLineOffset() != 0 {
		t.Fatalf("expected paste to snap the viewport to the bottom, got offset %d", ps.scroll.CurrentLineOffset())
	}
}

func TestJumpToPromptMovesViewportToRecordedPrompt(t *testing.T) {
	w := newTestWorkspace(t)
	ps := w.activePane()
	ps.leaf.Shell.OnPromptStart(5)
	ps.leaf.Shell.OnPromptStart(20)
	ps.leaf.Shell.OnPromptStart(40)

	w.jumpToPrompt(-1)
	offsetAfterPrev := ps.scroll.TargetOffset

	w.jumpToPrompt(1)
	if ps.scroll.TargetOffset == offsetAfterPrev {
		t.Fatal("expected next-prompt to move the viewport differently than prev-prompt")
	}
}

func TestApplyConfigDeltaUpdatesKeyMapOnlyWhenFlagged(t *testing.T) {
	w := newTestWorkspace(t)
	custom := input.KeyMap{}
	w.dispatcher.KeyMap = custom

	w.applyConfigDelta(config.Delta{Config: w.cfg})

	if w.dispatcher.KeyMap != custom {
		t.Fatal("expected keymap to be left alone when KeysChanged is false")
	}

	w.applyConfigDelta(config.Delta{Config: w.cfg, KeysChanged: true})
	if w.dispatcher.KeyMap == custom {
		t.Fatal("expected keymap to reset to defaults when KeysChanged is true")
	}
}

func TestApplyConfigDeltaRebuildsAtlasOnFontChange(t *testing.T) {
	w := newTestWorkspace(t)
	newCfg := w.cfg
	newCfg.Font.SizePx = w.fontSizePx + 4

	w.applyConfigDelta(config.Delta{Config: newCfg, FontChanged: true})

	if w.fontSizePx != newCfg.Font.SizePx {
		t.Fatalf("expected font size %d after delta, got %d", newCfg.Font.SizePx, w.fontSizePx)
	}
}
