package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/veloterm/veloterm/internal/damage"
	"github.com/veloterm/veloterm/internal/input"
	"github.com/veloterm/veloterm/internal/layout"
	"github.com/veloterm/veloterm/internal/render"
)

var (
	focusedBorderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7aa2f7"))
	unfocusedBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3b4261"))

	tabActiveStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1a1b26")).Background(lipgloss.Color("#7aa2f7")).Padding(0, 1)
	tabInactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a9b1d6")).Padding(0, 1)
	tabBarStyle      = lipgloss.NewStyle().Background(lipgloss.Color("#16161e"))
	statusBarStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#a9b1d6")).Background(lipgloss.Color("#16161e")).Padding(0, 1)
)

// View implements tea.Model. There is no real GPU backend in this repo
// (wgpu stays out of scope per the no-GUI-dependency constraint on a
// headless build), so the composed frame is rendered as ANSI text via
// render.WriteANSI, the same batched-SGR-run approach the teacher uses
// in buildANSI/colorToANSI, with chrome laid out by lipgloss the way
// elvisnm-wt's internal/app/view.go composes its panel stack.
func (w *Workspace) View() string {
	if !w.ready {
		return "veloterm: waiting for terminal size...\n"
	}

	tab := w.tabsMgr.Active()
	var body string
	if tab.Tree.Zoomed != nil {
		body = w.renderPane(*tab.Tree.Zoomed)
	} else {
		body = w.renderNode(tab.Tree.Root)
	}

	return lipgloss.JoinVertical(lipgloss.Left, w.renderTabBar(), body, w.renderStatusBar())
}

// renderNode recursively composes a split subtree, joining children
// side by side (Vertical) or stacked (Horizontal) with a one-cell
// divider, mirroring CalculateLayout's own recursion in internal/layout.
func (w *Workspace) renderNode(n *layout.Node) string {
	if n == nil {
		return ""
	}
	if n.IsLeaf {
		return w.renderPane(n.Leaf)
	}

	first := w.renderNode(n.First)
	second := w.renderNode(n.Second)

	if n.Dir == layout.Vertical {
		rows := make([]string, lipgloss.Height(first))
		for i := range rows {
			rows[i] = "│"
		}
		divider := unfocusedBorderStyle.Render(strings.Join(rows, "\n"))
		return lipgloss.JoinHorizontal(lipgloss.Top, first, divider, second)
	}

	width := lipgloss.Width(first)
	divider := lipgloss.NewStyle().
		Foreground(unfocusedBorderStyle.GetForeground()).
		Render(strings.Repeat("─", width))
	return lipgloss.JoinVertical(lipgloss.Left, first, divider, second)
}

// renderPane overlays cursor/selection/search state onto one leaf's
// grid (spec.md §4.7 step 2) and writes it as ANSI, bordered to show
// focus.
func (w *Workspace) renderPane(id layout.PaneId) string {
	ps, ok := w.panes[id]
	if !ok {
		return ""
	}

	grid := ps.leaf.Grid()
	col, row, visible := ps.leaf.Cursor()
	cursor := render.CursorOverlay{
		Row:     row,
		Col:     col,
		Shape:   render.CursorBlock,
		Visible: visible && ps.scroll.CurrentLineOffset() == 0,
		Hollow:  !w.focused,
	}
	viewportTop := ps.leaf.ScrollbackLen() - ps.scroll.CurrentLineOffset()

	overlaid := render.Overlay(render.FrameInput{
		Grid:        grid,
		Cursor:      cursor,
		Selection:   ps.leaf.Selection,
		SearchState: ps.search,
		ViewportTop: viewportTop,
	})

	// Route the fallback ANSI renderer through the same damage diff a
	// real GPU backend's CellInstance stream would consume (spec.md
	// §4.2, C2): cursor/selection/search overlays mutate cells in
	// place every frame, so only recompute the ANSI text when a row
	// actually changed.
	cells := make([][]damage.Cell, len(overlaid))
	for r, row := range overlaid {
		cells[r] = make([]damage.Cell, len(row))
		for c, cell := range row {
			cells[r][c] = cell
		}
	}
	if dirty := ps.leaf.Damage.Diff(cells); len(dirty) > 0 || ps.lastANSI == "" {
		ps.lastANSI = render.WriteANSI(overlaid)
	}
	body := ps.lastANSI

	style := unfocusedBorderStyle
	if w.tabsMgr.Active().Tree.Focused == id {
		style = focusedBorderStyle
	}
	return style.Render(body)
}

// renderTabBar draws the tab strip at the top of the window (spec.md
// §4.6), one shortcut-numbered segment per tab plus a "+" new-tab
// affordance, styled the way elvisnm-wt's ui.RenderTabsPanel marks the
// active entry.
func (w *Workspace) renderTabBar() string {
	var segs []string
	for i, t := range w.tabsMgr.Tabs {
		label := fmt.Sprintf("%d %s", i+1, t.Title)
		if t.HasNotification {
			label += " ●"
		}
		if i == w.tabsMgr.ActiveIndex {
			segs = append(segs, tabActiveStyle.Render(label))
		} else {
			segs = append(segs, tabInactiveStyle.Render(label))
		}
	}
	segs = append(segs, tabInactiveStyle.Render("+"))
	return tabBarStyle.Width(w.width).Render(lipgloss.JoinHorizontal(lipgloss.Top, segs...))
}

// renderStatusBar draws the bottom status line: active pane's working
// directory and shell-integration exit status, or the live search
// query when Search mode is active (spec.md §4.8's modal short-circuit
// surfaces here as chrome, not just input routing).
func (w *Workspace) renderStatusBar() string {
	ps := w.activePane()
	if ps == nil {
		return statusBarStyle.Width(w.width).Render("")
	}

	if w.dispatcher.Mode == input.ModeSearch {
		matchInfo := ""
		if n := len(ps.search.Matches); n > 0 {
			matchInfo = fmt.Sprintf(" (%d/%d)", ps.search.CurrentIndex+1, n)
		}
		return statusBarStyle.Width(w.width).Render(fmt.Sprintf("/%s%s", w.dispatcher.SearchQuery, matchInfo))
	}

	left := ps.leaf.Shell.CWD
	if left == "" {
		left = ps.leaf.GetWorkdir()
	}
	if left == "" {
		left = "~"
	}
	right := ""
	if cmds := ps.leaf.Shell.Commands; len(cmds) > 0 {
		if last := cmds[len(cmds)-1]; last.ExitStatus != 0 {
			right = fmt.Sprintf("exit %d", last.ExitStatus)
		}
	}

	gap := w.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	line := left + strings.Repeat(" ", gap) + right
	return statusBarStyle.Width(w.width).Render(line)
}
