// Package app wires the layout (C5), tab manager (C6), render composer
// (C7), interaction dispatcher (C8), scroll engine (C3), search (C9),
// link detection (C11) and shell-integration digest (C10) packages
// around per-leaf terminal models (C1) into one Bubbletea root Model,
// per spec.md §5's single-main-thread ordering: drain channels → run
// interaction handlers → advance Scroll.tick → apply display-offset →
// compose frame → submit. No teacher file assembles a root model this
// way (openkanban's Pane is driven by an unincluded board Model), so
// this package follows elvisnm-wt's worktree-dash/internal/app Model
// shape (width/height fields, NewModel, Init returning tea.Batch,
// message-struct-per-event style) generalized to VeloTerm's domain.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/veloterm/veloterm/internal/atlas"
	"github.com/veloterm/veloterm/internal/config"
	"github.com/veloterm/veloterm/internal/geom"
	"github.com/veloterm/veloterm/internal/input"
	"github.com/veloterm/veloterm/internal/layout"
	"github.com/veloterm/veloterm/internal/linkdetect"
	"github.com/veloterm/veloterm/internal/scroll"
	"github.com/veloterm/veloterm/internal/search"
	"github.com/veloterm/veloterm/internal/selection"
	"github.com/veloterm/veloterm/internal/tabs"
	"github.com/veloterm/veloterm/internal/terminal"
)

const (
	scrollbarMarginPx = 2
	dividerMarginPx   = 3
	shutdownTimeout   = 5 * time.Second
	tickInterval      = 16 * time.Millisecond
)

// paneState bundles the per-leaf engines that sit alongside a
// terminal.Leaf but are not owned by it (spec.md §3 ownership: each of
// these is a distinct component, not a Leaf field).
type paneState struct {
	leaf   *terminal.Leaf
	scroll *scroll.State
	search *search.State
	links  *linkdetect.Index
	mouse  *selection.MouseState

	// lastANSI caches the previous frame's rendered text; renderPane
	// only recomputes it when leaf.Damage.Diff reports a dirty row
	// (spec.md §4.2, C2), so the damage tracker gates real rendering
	// work in the ANSI fallback, not just in tests.
	lastANSI string
}

// Workspace is the root Bubbletea model (spec.md §2 data flow: event
// source → C8 dispatcher → C5|C4|C3|C9|modal → side effects → redraw).
type Workspace struct {
	width, height int
	ready         bool

	cfg     config.Config
	theme   config.ResolvedColors
	atlas   *atlas.Atlas
	watcher *config.Watcher

	fontSource  atlas.FontSource
	fontFamily  string
	fontSizePx  int
	scaleFactor float64

	tabsMgr *tabs.Manager
	panes   map[layout.PaneId]*paneState

	dispatcher *input.Dispatcher

	focused bool // window focus, for hollow-cursor rendering

	dividerDrag   layout.DragState
	tabDrag       input.TabDragState
	scrollbarDrag map[layout.PaneId]*input.ScrollbarDragState

	lastTick    time.Time
	clipboard   Clipboard
	configCh    chan config.Delta
	shutdownErr error
}

// Clipboard abstracts system clipboard access so tests don't need a
// real one; cmd/veloterm wires both funcs to atotto/clipboard, the
// same library the teacher's Pane.copySelectionUnlocked uses for
// WriteAll (ReadAll, needed here for paste, is the same dependency's
// sibling function).
type Clipboard struct {
	Write func(string) error
	Read  func() (string, error)
}

// NewWorkspace constructs a Workspace from a loaded config and glyph
// atlas, with one tab containing a single leaf. fontSource and
// scaleFactor are kept so font-size actions and theme-triggered
// re-rasterization can call atlas.Rebuild with the same inputs used to
// build at.
func NewWorkspace(cfg config.Config, at *atlas.Atlas, fontSource atlas.FontSource, scaleFactor float64, clip Clipboard) *Workspace {
	w := &Workspace{
		cfg:           cfg,
		theme:         cfg.ResolvedColors(),
		atlas:         at,
		fontSource:    fontSource,
		fontFamily:    cfg.Font.Family,
		fontSizePx:    cfg.Font.SizePx,
		scaleFactor:   scaleFactor,
		tabsMgr:       tabs.New(),
		panes:         make(map[layout.PaneId]*paneState),
		dispatcher:    input.NewDispatcher(),
		scrollbarDrag: make(map[layout.PaneId]*input.ScrollbarDragState),
		clipboard:     clip,
		focused:       true,
	}
	for _, id := range w.tabsMgr.Active().Tree.Leaves() {
		w.panes[id] = w.newPaneState(id)
	}
	return w
}

// AttachWatcher starts watching the config file at path for hot-reload
// (spec.md §5, §6). Safe to call once; a failure just means the file
// isn't watched and the process falls back to its loaded config.
func (w *Workspace) AttachWatcher(path string) {
	w.configCh = make(chan config.Delta, 8)
	watcher, err := config.NewWatcher(path, w.cfg, func(d config.Delta) {
		w.configCh <- d
	})
	if err != nil {
		w.configCh = nil
		return
	}
	if err := watcher.Start(); err != nil {
		w.configCh = nil
		return
	}
	w.watcher = watcher
}

func (w *Workspace) waitConfigDelta() tea.Cmd {
	if w.configCh == nil {
		return nil
	}
	ch := w.configCh
	return func() tea.Msg {
		return <-ch
	}
}

func (w *Workspace) newPaneState(id layout.PaneId) *paneState {
	leaf := terminal.NewLeaf(id, 80, 24, w.cfg.Scrollback.Lines)
	leaf.SetNotifyThresholdMs(w.cfg.Shell.LongCommandThresholdMs)
	return &paneState{
		leaf:   leaf,
		scroll: scroll.New(),
		search: &search.State{},
		links:  &linkdetect.Index{},
		mouse:  selection.NewMouseState(),
	}
}

// metrics derives layout.Metrics from the atlas cell size and config
// minimums.
func (w *Workspace) metrics() layout.Metrics {
	cw, ch := w.atlas.CellSize()
	return layout.Metrics{CellW: cw, CellH: ch, MinCols: layout.DefaultMinCols, MinRows: layout.DefaultMinRows}
}

func (w *Workspace) bounds() geom.Rect {
	return geom.Rect{X: 0, Y: 0, W: float32(w.width), H: float32(w.height)}
}

// Init starts every existing leaf's shell and a periodic tick driving
// Scroll.Tick per spec.md §5's ordering.
func (w *Workspace) Init() tea.Cmd {
	var cmds []tea.Cmd
	for _, ps := range w.panes {
		cmds = append(cmds, ps.leaf.Start(defaultShell()))
	}
	cmds = append(cmds, tickCmd())
	if cmd := w.waitConfigDelta(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update implements tea.Model, routing messages to the leaf they carry
// a PaneID for, or handling global events (resize, key, mouse, tick,
// config hot-reload).
func (w *Workspace) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width, w.height = msg.Width, msg.Height
		w.ready = true
		w.relayout()
		return w, nil

	case terminal.OutputMsg:
		if ps, ok := w.panes[msg.PaneID]; ok {
			w.syncPaneFocus(msg.PaneID, ps)
			cmd := ps.leaf.Update(msg)
			w.reconcileShellEvents(msg.PaneID, ps)
			return w, cmd
		}
		return w, nil

	case terminal.ExitMsg:
		return w.onLeafExit(msg)

	case terminal.RenderTickMsg:
		if ps, ok := w.panes[msg.PaneID]; ok {
			return w, ps.leaf.Update(msg)
		}
		return w, nil

	case tickMsg:
		now := time.Time(msg)
		dt := now.Sub(w.lastTick)
		w.lastTick = now
		for _, ps := range w.panes {
			ps.scroll.Tick(dt)
			ps.leaf.SetViewportOffset(ps.scroll.CurrentLineOffset())
		}
		return w, tickCmd()

	case config.Delta:
		w.applyConfigDelta(msg)
		return w, w.waitConfigDelta()

	case tea.KeyMsg:
		return w.handleKey(msg)

	case tea.MouseMsg:
		return w.handleMouse(msg)
	}
	return w, nil
}

// onLeafExit closes the exited leaf's pane via the same semantics as a
// user-initiated close (spec.md §3 "ShellExitOrPtyEof (external)").
func (w *Workspace) onLeafExit(msg terminal.ExitMsg) (tea.Model, tea.Cmd) {
	if ps, ok := w.panes[msg.PaneID]; ok {
		ps.leaf.Update(msg)
	}
	return w, w.closeFocusedIfLast(msg.PaneID)
}

func (w *Workspace) closeFocusedIfLast(id layout.PaneId) tea.Cmd {
	tab := w.tabsMgr.Active()
	if tab.Tree.Focused != id {
		return nil
	}
	return w.closeFocusedPane()
}

func (w *Workspace) activePane() *paneState {
	tab := w.tabsMgr.Active()
	return w.panes[tab.Tree.Focused]
}

// tabIndexForPane finds the tab owning id, for routing a per-pane
// shell-event digest (notification, title) to its owning tab.
func (w *Workspace) tabIndexForPane(id layout.PaneId) (int, bool) {
	for i, tab := range w.tabsMgr.Tabs {
		for _, leafID := range tab.Tree.Leaves() {
			if leafID == id {
				return i, true
			}
		}
	}
	return 0, false
}

// syncPaneFocus tells ps.leaf whether it currently holds input focus,
// so ScanShellEvents (run inside leaf.Update) can tell a foreground
// long-running command from a background one (spec.md §4.10).
func (w *Workspace) syncPaneFocus(id layout.PaneId, ps *paneState) {
	tabIdx, ok := w.tabIndexForPane(id)
	focused := ok && tabIdx == w.tabsMgr.ActiveIndex && w.tabsMgr.Tabs[tabIdx].Tree.Focused == id
	ps.leaf.SetFocused(focused)
}

// reconcileShellEvents propagates what ScanShellEvents observed in this
// output chunk up to the owning tab: the long-command notification
// badge (§4.10, §8 scenario S6) and the OSC-derived tab title
// (§4.10's title priority, explicit > cwd basename).
func (w *Workspace) reconcileShellEvents(id layout.PaneId, ps *paneState) {
	tabIdx, ok := w.tabIndexForPane(id)
	if !ok {
		return
	}
	if ps.leaf.ConsumeNotify() {
		w.tabsMgr.Tabs[tabIdx].HasNotification = true
	}
	title := ps.leaf.Shell.DeriveTitle(w.tabsMgr.Tabs[tabIdx].Title)
	w.tabsMgr.SetTitle(tabIdx, title, ps.leaf.Shell.TitleExplicit)
}

func (w *Workspace) relayout() {
	m := w.metrics()
	rects := w.tabsMgr.Active().Tree.CalculateLayout(w.contentBounds(), m)
	for id, r := range rects {
		ps, ok := w.panes[id]
		if !ok {
			continue
		}
		cols := maxInt(1, int(r.W/m.CellW))
		rows := maxInt(1, int(r.H/m.CellH))
		ps.leaf.SetSize(cols, rows)
	}
}

// markAllDamage forces a full repaint of every pane, used after a
// theme, font, or layout change invalidates the previous frame's cache
// (spec.md §5: "config.Delta... may trigger... DamageState.mark_all").
func (w *Workspace) markAllDamage() {
	for _, ps := range w.panes {
		ps.leaf.Damage.MarkAll()
	}
}

// contentBounds excludes the tab bar and status bar rows, per spec.md
// §4.9's chrome layout (tab strip top, status bar bottom), each one
// cell tall.
func (w *Workspace) contentBounds() geom.Rect {
	_, ch := w.atlas.CellSize()
	return w.bounds().Inset(0, ch, 0, ch)
}

// Shutdown stops every pane's shell and the config watcher, bounded by
// shutdownTimeout (spec.md §5 "shutdown timeout is bounded (≈5s)"). The
// panes are stopped concurrently via errgroup so N slow children cost
// one timeout, not N; cmd/veloterm calls this once bubbletea's Run
// returns, after a SIGINT/SIGTERM has told the program to Quit.
func (w *Workspace) Shutdown() error {
	if w.watcher != nil {
		w.watcher.Stop()
	}
	var g errgroup.Group
	for _, ps := range w.panes {
		ps := ps
		g.Go(func() error {
			return ps.leaf.StopGraceful(shutdownTimeout)
		})
	}
	return g.Wait()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
