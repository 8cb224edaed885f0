package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/veloterm/veloterm/internal/input"
	"github.com/veloterm/veloterm/internal/terminal"
)

// handleKey routes a key event through the dispatcher and applies
// whatever side effect it resolves to (spec.md §4.8 dispatch order
// step 1 and step 6 — steps 2-5 are mouse-only, handled in mouse.go).
func (w *Workspace) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ps := w.activePane()
	if ps == nil {
		return w, nil
	}

	// Printable runes in Search mode feed the query directly:
	// dispatchSearchKey only recognizes the control keys (esc/enter/
	// backspace/up/down), so ordinary text is the app's job to route.
	if w.dispatcher.Mode == input.ModeSearch && msg.Type == tea.KeyRunes {
		for _, r := range msg.Runes {
			w.dispatcher.AppendSearchRune(r)
		}
		w.rescanSearch(ps)
		return w, nil
	}

	out := w.dispatcher.DispatchKey(msg, ps.leaf, ps.leaf.ScrollbackLen()+24)

	if out.ExitSearch {
		ps.search.SetQuery("", nil)
		return w, nil
	}
	if out.SearchNext || out.SearchPrev || out.SearchQuery != ps.search.Query {
		w.rescanSearch(ps)
		if out.SearchNext {
			ps.search.NextMatch()
		}
		if out.SearchPrev {
			ps.search.PrevMatch()
		}
		w.snapToSearchMatch(ps)
		return w, nil
	}

	if out.ViResult.Yanked != "" && w.clipboard.Write != nil {
		w.clipboard.Write(out.ViResult.Yanked)
	}

	if out.Action != input.ActionNone {
		return w, w.applyAction(out.Action)
	}

	if len(out.PTYBytes) > 0 {
		ps.scroll.SnapToBottom()
		ps.leaf.SetViewportOffset(0)
		ps.leaf.WriteInput(out.PTYBytes)
	}
	return w, nil
}

func (w *Workspace) rescanSearch(ps *paneState) {
	ps.search.SetQuery(w.dispatcher.SearchQuery, leafLines(ps.leaf))
}

// snapToSearchMatch brings the current match into view when it falls
// outside the viewport (spec.md §4.9 scroll_target).
func (w *Workspace) snapToSearchMatch(ps *paneState) {
	_, rows := ps.leaf.Size()
	top := ps.leaf.ScrollbackLen() - ps.scroll.CurrentLineOffset()
	row, ok := ps.search.ScrollTarget(top, top+rows)
	if !ok {
		return
	}
	offset := ps.leaf.ScrollbackLen() - row
	if offset < 0 {
		offset = 0
	}
	ps.scroll.TargetOffset = offset
	ps.scroll.CurrentOffset = float64(offset)
	ps.scroll.LastActivity = time.Now()
	ps.leaf.SetViewportOffset(offset)
}

// leafLines renders a leaf's visible grid as plain text lines for the
// regex search engine, which (spec.md §4.9) operates over []string
// rather than cells.
func leafLines(l *terminal.Leaf) []string {
	grid := l.Grid()
	lines := make([]string, len(grid))
	for i, row := range grid {
		runes := make([]rune, len(row))
		for j, cell := range row {
			runes[j] = cell.Char
		}
		lines[i] = string(runes)
	}
	return lines
}
