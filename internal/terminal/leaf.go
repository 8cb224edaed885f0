// Package terminal adapts an external VT state machine (vt10x) and PTY
// into the Leaf described by spec.md §3/§4.1 (C1): each Leaf exclusively
// owns one terminal-model instance and one PTY handle, and exposes the
// read-only views (grid cells, CellSource) the Render Composer and
// Interaction Dispatcher need without reaching into vt10x directly.
// Grounded on the teacher's internal/terminal/pane.go Pane lifecycle,
// generalized from an always-present kanban pane to a PaneTree leaf.
package terminal

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/creack/pty"
	"github.com/hinshun/vt10x"

	"github.com/veloterm/veloterm/internal/damage"
	"github.com/veloterm/veloterm/internal/geom"
	"github.com/veloterm/veloterm/internal/layout"
	"github.com/veloterm/veloterm/internal/render"
	"github.com/veloterm/veloterm/internal/selection"
	"github.com/veloterm/veloterm/internal/shellintegration"
)

const (
	renderInterval    = 50 * time.Millisecond
	readBufferSize    = 65536
	notifyThresholdMs = 10000
)

// Leaf owns one terminal-model instance and one PTY (spec.md §3
// Ownership). It is the PaneId-addressed unit the PaneTree's leaves
// reference.
type Leaf struct {
	id  layout.PaneId
	vt  vt10x.Terminal
	pty *os.File
	cmd *exec.Cmd

	mu      sync.Mutex
	running bool
	exitErr error

	workdir       string
	width, height int

	dirty           bool
	renderScheduled bool
	lastRender      time.Time

	mouseEnabled   bool
	bracketedPaste bool

	scrollback      *ScrollbackBuffer
	altScreenActive bool
	viewportOffset  int
	lastTopRow      []vt10x.Glyph
	scrollbackSize  int

	// Selection replaces the teacher's inline SelectionState with the
	// full click-count automaton (spec.md §4.4, C4).
	Selection *selection.Selection

	// Damage drives partial cell-instance regeneration in the Render
	// Composer (spec.md §4.2, C2).
	Damage *damage.Tracker

	// Shell is this leaf's shell-integration digest, fed by ScanShellEvents
	// as PTY output is written to the terminal model (spec.md §4.10, C10).
	Shell shellintegration.State

	pendingNotify     bool
	notifyThresholdMs int

	Focused bool
}

// NewLeaf constructs a Leaf with the given dimensions and scrollback
// capacity.
func NewLeaf(id layout.PaneId, width, height, scrollbackSize int) *Leaf {
	if scrollbackSize <= 0 {
		scrollbackSize = 10000
	}
	return &Leaf{
		id:                id,
		width:             width,
		height:            height,
		scrollbackSize:    scrollbackSize,
		Damage:            damage.New(width, height),
		Selection:         selection.New(),
		notifyThresholdMs: notifyThresholdMs,
	}
}

// SetNotifyThresholdMs overrides the long-command notification
// threshold (spec.md §4.10), driven by config.Shell.LongCommandThresholdMs.
func (l *Leaf) SetNotifyThresholdMs(ms int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.notifyThresholdMs = ms
}

// SetFocused records whether this pane currently holds input focus
// within its tab, so ScanShellEvents can tell a foreground long-running
// command from a background one.
func (l *Leaf) SetFocused(focused bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Focused = focused
}

// ConsumeNotify returns whether a long command finished in this pane
// while it was unfocused since the last call, clearing the flag.
func (l *Leaf) ConsumeNotify() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := l.pendingNotify
	l.pendingNotify = false
	return n
}

// ID returns the leaf's pane identifier.
func (l *Leaf) ID() layout.PaneId { return l.id }

func (l *Leaf) SetWorkdir(dir string) { l.workdir = dir }
func (l *Leaf) GetWorkdir() string    { return l.workdir }

func (l *Leaf) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

func (l *Leaf) ExitErr() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.exitErr
}

// SetSize resizes the terminal model and the backing PTY, clears any
// in-progress selection (its coordinates are no longer valid), resets
// the viewport to the live view, and forces full damage next frame.
func (l *Leaf) SetSize(width, height int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.width, l.height = width, height
	l.dirty = true

	if l.Selection != nil && l.Selection.Active {
		l.Selection.Clear()
	}
	l.viewportOffset = 0

	if l.vt != nil {
		l.vt.Resize(width, height)
	}
	if l.pty != nil && l.running {
		pty.Setsize(l.pty, &pty.Winsize{Rows: uint16(height), Cols: uint16(width)})
	}
	l.Damage.Resize(width, height)
}

func (l *Leaf) Size() (width, height int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.width, l.height
}

func (l *Leaf) ScrollbackLen() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.scrollback == nil {
		return 0
	}
	return l.scrollback.Len()
}

func (l *Leaf) ViewportOffset() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.viewportOffset
}

// SetViewportOffset clamps offset to [0, ScrollbackLen()] and applies
// it, per scroll.current_line_offset() feeding the terminal model's
// display-offset setter every frame (spec.md §4.3).
func (l *Leaf) SetViewportOffset(offset int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	max := 0
	if l.scrollback != nil {
		max = l.scrollback.Len()
	}
	if offset < 0 {
		offset = 0
	}
	if offset > max {
		offset = max
	}
	l.viewportOffset = offset
}

func (l *Leaf) IsAltScreenActive() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.altScreenActive
}

func (l *Leaf) MouseEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.mouseEnabled
}

// --- Bubbletea messages ---

// OutputMsg carries data read from a leaf's PTY.
type OutputMsg struct {
	PaneID layout.PaneId
	Data   []byte
}

// ExitMsg indicates a leaf's process has exited.
type ExitMsg struct {
	PaneID layout.PaneId
	Err    error
}

// RenderTickMsg throttles redraw scheduling per leaf.
type RenderTickMsg struct {
	PaneID layout.PaneId
}

// --- PTY lifecycle ---

// Start launches command in a PTY sized to the leaf and begins the
// read loop. Unlike the teacher's Pane, no OPENKANBAN_SESSION env
// hygiene is applied. Start does not install the shell-integration
// hooks either: those scripts come from SetupScript
// (internal/shellintegration), and Start runs command as given.
func (l *Leaf) Start(command string, args ...string) tea.Cmd {
	return func() tea.Msg {
		l.mu.Lock()
		defer l.mu.Unlock()

		l.cmd = exec.Command(command, args...)
		if l.workdir != "" {
			l.cmd.Dir = l.workdir
		}

		ptmx, err := pty.Start(l.cmd)
		if err != nil {
			l.exitErr = err
			return ExitMsg{PaneID: l.id, Err: err}
		}
		l.pty = ptmx
		l.running = true
		l.exitErr = nil

		pty.Setsize(l.pty, &pty.Winsize{Rows: uint16(l.height), Cols: uint16(l.width)})

		l.vt = vt10x.New(vt10x.WithSize(l.width, l.height), vt10x.WithWriter(l.pty))
		l.scrollback = NewScrollbackBuffer(l.scrollbackSize)
		l.Selection = selection.New()

		return l.readOutputUnlocked()()
	}
}

func (l *Leaf) Stop() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cmd != nil && l.cmd.Process != nil {
		l.cmd.Process.Kill()
	}
	if l.pty != nil {
		l.pty.Close()
	}
	l.running = false
	return nil
}

// StopGraceful sends an interrupt (os.Interrupt, i.e. SIGINT), waits up
// to timeout, then force-kills.
// Grounded on spec.md §5 "Cancellation & timeout" (~5s bound).
func (l *Leaf) StopGraceful(timeout time.Duration) error {
	l.mu.Lock()
	if !l.running || l.cmd == nil || l.cmd.Process == nil {
		l.mu.Unlock()
		return nil
	}
	proc := l.cmd.Process
	l.mu.Unlock()

	if err := proc.Signal(os.Interrupt); err != nil {
		return l.Stop()
	}

	done := make(chan error, 1)
	go func() {
		_, err := proc.Wait()
		done <- err
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		proc.Kill()
	}

	l.mu.Lock()
	if l.pty != nil {
		l.pty.Close()
	}
	l.running = false
	l.mu.Unlock()
	return nil
}

var ErrLeafNotRunning = fmt.Errorf("leaf is not running")

func (l *Leaf) WriteInput(data []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.running || l.pty == nil {
		return 0, ErrLeafNotRunning
	}
	return l.pty.Write(data)
}

func (l *Leaf) readOutput() tea.Cmd {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.readOutputUnlocked()
}

func (l *Leaf) readOutputUnlocked() tea.Cmd {
	if l.pty == nil {
		return nil
	}
	ptyFile := l.pty
	paneID := l.id
	return func() tea.Msg {
		buf := make([]byte, readBufferSize)
		n, err := ptyFile.Read(buf)
		if err != nil {
			return ExitMsg{PaneID: paneID, Err: err}
		}
		return OutputMsg{PaneID: paneID, Data: buf[:n]}
	}
}

// --- Update handler ---

func (l *Leaf) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case OutputMsg:
		if msg.PaneID != l.id {
			return nil
		}
		l.handleOutput(msg.Data)
		return tea.Batch(l.readOutput(), l.scheduleRenderTick())

	case RenderTickMsg:
		if msg.PaneID != l.id {
			return nil
		}
		l.mu.Lock()
		l.renderScheduled = false
		l.mu.Unlock()
		return nil

	case ExitMsg:
		if msg.PaneID != l.id {
			return nil
		}
		l.mu.Lock()
		l.running = false
		l.exitErr = msg.Err
		if l.pty != nil {
			l.pty.Close()
		}
		l.mu.Unlock()
		return nil
	}
	return nil
}

func (l *Leaf) handleOutput(data []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.vt == nil {
		return
	}

	l.detectMouseModeChanges(data)
	l.detectAltScreenChanges(data)
	l.detectBracketedPasteChanges(data)
	if ScanShellEvents(data, &l.Shell, l.vt.Cursor().Y, l.notifyThresholdMs, !l.Focused) {
		l.pendingNotify = true
	}

	l.captureScrollbackBeforeWrite()
	l.vt.Write(data)
	l.captureScrollbackAfterWrite()

	l.dirty = true
}

// detectMouseModeChanges scans output for mouse-tracking escape
// sequences. Called with mu held. Grounded on the teacher's
// Pane.detectMouseModeChanges.
func (l *Leaf) detectMouseModeChanges(data []byte) {
	enableSeqs := [][]byte{
		[]byte("\x1b[?1000h"), []byte("\x1b[?1002h"),
		[]byte("\x1b[?1003h"), []byte("\x1b[?1006h"),
	}
	disableSeqs := [][]byte{
		[]byte("\x1b[?1000l"), []byte("\x1b[?1002l"),
		[]byte("\x1b[?1003l"), []byte("\x1b[?1006l"),
	}
	for _, seq := range enableSeqs {
		if bytes.Contains(data, seq) {
			l.mouseEnabled = true
			return
		}
	}
	for _, seq := range disableSeqs {
		if bytes.Contains(data, seq) {
			l.mouseEnabled = false
			return
		}
	}
}

// detectBracketedPasteChanges scans output for DECSET 2004 (bracketed
// paste mode), the same byte-scan idiom as detectMouseModeChanges.
func (l *Leaf) detectBracketedPasteChanges(data []byte) {
	if bytes.Contains(data, []byte("\x1b[?2004h")) {
		l.bracketedPaste = true
		return
	}
	if bytes.Contains(data, []byte("\x1b[?2004l")) {
		l.bracketedPaste = false
	}
}

// BracketedPasteEnabled reports whether the running program has
// requested bracketed-paste mode (DECSET 2004).
func (l *Leaf) BracketedPasteEnabled() bool {
	return l.bracketedPaste
}

// detectAltScreenChanges scans output for alternate-screen escape
// sequences. Called with mu held. Grounded on the teacher's
// Pane.detectAltScreenChanges.
func (l *Leaf) detectAltScreenChanges(data []byte) {
	enableSeqs := [][]byte{[]byte("\x1b[?1049h"), []byte("\x1b[?47h")}
	disableSeqs := [][]byte{[]byte("\x1b[?1049l"), []byte("\x1b[?47l")}
	for _, seq := range enableSeqs {
		if bytes.Contains(data, seq) {
			l.altScreenActive = true
			l.viewportOffset = 0
			return
		}
	}
	for _, seq := range disableSeqs {
		if bytes.Contains(data, seq) {
			l.altScreenActive = false
			return
		}
	}
}

// captureScrollbackBeforeWrite snapshots row 0 before vt.Write, so
// captureScrollbackAfterWrite can detect a scrolled-off line. Called
// with mu held. Grounded on the teacher's Pane scrollback capture.
func (l *Leaf) captureScrollbackBeforeWrite() {
	if l.vt == nil || l.altScreenActive {
		l.lastTopRow = nil
		return
	}
	l.vt.Lock()
	cols, _ := l.vt.Size()
	if cols <= 0 {
		l.vt.Unlock()
		l.lastTopRow = nil
		return
	}
	l.lastTopRow = make([]vt10x.Glyph, cols)
	for col := 0; col < cols; col++ {
		l.lastTopRow[col] = l.vt.Cell(col, 0)
	}
	l.vt.Unlock()
}

func (l *Leaf) captureScrollbackAfterWrite() {
	if l.vt == nil || l.altScreenActive || l.lastTopRow == nil {
		return
	}
	l.vt.Lock()
	defer l.vt.Unlock()

	cols, _ := l.vt.Size()
	if cols <= 0 || cols != len(l.lastTopRow) {
		return
	}
	changed := false
	for col := 0; col < cols; col++ {
		if l.vt.Cell(col, 0) != l.lastTopRow[col] {
			changed = true
			break
		}
	}
	if changed && !l.isLineVisible(l.lastTopRow) {
		l.scrollback.Push(l.lastTopRow)
	}
	l.lastTopRow = nil
}

func (l *Leaf) isLineVisible(line []vt10x.Glyph) bool {
	cols, rows := l.vt.Size()
	if len(line) != cols {
		return false
	}
	for row := 0; row < rows; row++ {
		match := true
		for col := 0; col < cols; col++ {
			if l.vt.Cell(col, row) != line[col] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func (l *Leaf) scheduleRenderTick() tea.Cmd {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.renderScheduled {
		return nil
	}
	l.renderScheduled = true

	delay := renderInterval - time.Since(l.lastRender)
	if delay < 0 {
		delay = 0
	}
	paneID := l.id
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return RenderTickMsg{PaneID: paneID}
	})
}

// --- CellSource (selection) / GridCell (render) bridges ---

// Rune implements selection.CellSource. row follows the leaf's logical
// convention: negative addresses scrollback, >= 0 addresses the live
// screen.
func (l *Leaf) Rune(row, col int) rune {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.vt == nil {
		return 0
	}
	if row < 0 {
		if l.scrollback == nil {
			return 0
		}
		line := l.scrollback.Get(l.scrollback.Len() + row)
		if line == nil || col < 0 || col >= len(line) {
			return 0
		}
		return line[col].Char
	}
	l.vt.Lock()
	defer l.vt.Unlock()
	cols, rows := l.vt.Size()
	if col < 0 || col >= cols || row >= rows {
		return 0
	}
	return l.vt.Cell(col, row).Char
}

// LineLen implements selection.CellSource.
func (l *Leaf) LineLen(row int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.vt == nil {
		return -1
	}
	var lineLen = func(get func(int) rune, cols int) int {
		last := -1
		for col := 0; col < cols; col++ {
			if get(col) != 0 && get(col) != ' ' {
				last = col
			}
		}
		return last
	}
	if row < 0 {
		if l.scrollback == nil {
			return -1
		}
		line := l.scrollback.Get(l.scrollback.Len() + row)
		if line == nil {
			return -1
		}
		return lineLen(func(c int) rune { return line[c].Char }, len(line))
	}
	l.vt.Lock()
	defer l.vt.Unlock()
	cols, rows := l.vt.Size()
	if row >= rows {
		return -1
	}
	return lineLen(func(c int) rune { return l.vt.Cell(c, row).Char }, cols)
}

// Grid renders the visible viewport (scrollback + live, per
// viewportOffset) as render.GridCell rows for the Render Composer's
// Overlay/Compose pipeline (spec.md §4.7 step 2a).
func (l *Leaf) Grid() [][]render.GridCell {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.vt == nil {
		return nil
	}
	l.vt.Lock()
	defer l.vt.Unlock()

	cols, rows := l.vt.Size()
	if cols <= 0 || rows <= 0 {
		return nil
	}

	if l.viewportOffset > 0 && l.scrollback != nil {
		return l.gridScrolledLocked(cols, rows)
	}
	return l.gridLiveLocked(cols, rows)
}

func (l *Leaf) gridLiveLocked(cols, rows int) [][]render.GridCell {
	out := make([][]render.GridCell, rows)
	for row := 0; row < rows; row++ {
		out[row] = make([]render.GridCell, cols)
		for col := 0; col < cols; col++ {
			out[row][col] = glyphToCell(l.vt.Cell(col, row))
		}
	}
	return out
}

func (l *Leaf) gridScrolledLocked(cols, rows int) [][]render.GridCell {
	scrollbackLen := l.scrollback.Len()
	offset := l.viewportOffset
	if offset > scrollbackLen {
		offset = scrollbackLen
	}
	scrollbackRowsVisible := offset
	if scrollbackRowsVisible > rows {
		scrollbackRowsVisible = rows
	}
	scrollbackStart := scrollbackLen - offset

	out := make([][]render.GridCell, rows)
	for viewRow := 0; viewRow < rows; viewRow++ {
		row := make([]render.GridCell, cols)
		if viewRow < scrollbackRowsVisible {
			line := l.scrollback.Get(scrollbackStart + viewRow)
			for col := 0; col < cols; col++ {
				if col < len(line) {
					row[col] = glyphToCell(line[col])
				}
			}
		} else {
			liveRow := viewRow - scrollbackRowsVisible
			for col := 0; col < cols; col++ {
				row[col] = glyphToCell(l.vt.Cell(col, liveRow))
			}
		}
		out[viewRow] = row
	}
	return out
}

// glyphToCell converts a vt10x.Glyph into the render package's
// color-independent GridCell, decoding vt10x's packed Color (>=
// 0x01000000 sentinel for "use terminal default", <256 an ANSI
// palette index, else 24-bit RGB packed as r<<16|g<<8|b) the same way
// the teacher's colorToANSI does, adapted to geom.Color's float
// components instead of an ANSI escape string.
func glyphToCell(g vt10x.Glyph) render.GridCell {
	var flags render.CellFlags
	if g.Char != 0 && g.Char != ' ' {
		flags |= render.FlagHasGlyph
	}
	if g.Mode&0x02 != 0 {
		flags |= render.FlagUnderline
	}
	ch := g.Char
	if ch == 0 {
		ch = ' '
	}
	return render.GridCell{
		Char:  ch,
		FG:    vtColorToGeom(g.FG, defaultFG),
		BG:    vtColorToGeom(g.BG, defaultBG),
		Flags: flags,
	}
}

var (
	defaultFG = geom.RGBA(0.85, 0.85, 0.85, 1)
	defaultBG = geom.RGBA(0, 0, 0, 0)
)

func vtColorToGeom(c vt10x.Color, dflt geom.Color) geom.Color {
	if c >= 0x01000000 {
		return dflt
	}
	if c < 256 {
		return ansi256ToGeom(int(c))
	}
	r := float32((c>>16)&0xFF) / 255
	g := float32((c>>8)&0xFF) / 255
	b := float32(c&0xFF) / 255
	return geom.RGBA(r, g, b, 1)
}

// ansi256ToGeom resolves a palette index to an RGB approximation using
// the standard xterm 256-color formula for the 16-231 color cube and
// 232-255 grayscale ramp, with the first 16 mapped to their common
// terminal defaults.
func ansi256ToGeom(idx int) geom.Color {
	basic := [16][3]float32{
		{0, 0, 0}, {0.8, 0, 0}, {0, 0.8, 0}, {0.8, 0.8, 0},
		{0, 0, 0.8}, {0.8, 0, 0.8}, {0, 0.8, 0.8}, {0.8, 0.8, 0.8},
		{0.4, 0.4, 0.4}, {1, 0.3, 0.3}, {0.3, 1, 0.3}, {1, 1, 0.3},
		{0.3, 0.3, 1}, {1, 0.3, 1}, {0.3, 1, 1}, {1, 1, 1},
	}
	if idx < 16 {
		c := basic[idx]
		return geom.RGBA(c[0], c[1], c[2], 1)
	}
	if idx < 232 {
		idx -= 16
		r := idx / 36
		g := (idx / 6) % 6
		b := idx % 6
		step := func(v int) float32 {
			if v == 0 {
				return 0
			}
			return float32(55+v*40) / 255
		}
		return geom.RGBA(step(r), step(g), step(b), 1)
	}
	level := float32(8+(idx-232)*10) / 255
	return geom.RGBA(level, level, level, 1)
}

// Cursor returns the terminal cursor's cell position and visibility.
func (l *Leaf) Cursor() (col, row int, visible bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.vt == nil {
		return 0, 0, false
	}
	l.vt.Lock()
	defer l.vt.Unlock()
	cur := l.vt.Cursor()
	return cur.X, cur.Y, l.vt.CursorVisible()
}

// ScanShellEvents scans freshly-written PTY output for the OSC 7/133/0/2
// sequences VeloTerm's shell-integration scripts emit (spec.md §4.10),
// updating state in place. Parsing the wire bytes is an external
// collaborator's job for general VT/ANSI per spec.md §1, but OSC 133's
// prompt/command boundaries are VeloTerm-specific markers this shell's
// own scripts (internal/shellintegration.SetupScript) emit, so scanning
// them here mirrors the teacher's own detectMouseModeChanges /
// detectAltScreenChanges byte-scan pattern rather than delegating to
// the VT library, which treats unknown OSC codes as no-ops.
func ScanShellEvents(data []byte, state *shellintegration.State, cursorRow int, thresholdMs int, unfocused bool) (notify bool) {
	rest := data
	for {
		idx := bytes.Index(rest, []byte("\x1b]"))
		if idx < 0 {
			return notify
		}
		rest = rest[idx+2:]
		end := oscTerminator(rest)
		if end < 0 {
			return notify
		}
		body := bytes.TrimSuffix(rest[:end], []byte("\x1b\\"))
		rest = rest[end:]

		switch {
		case bytes.HasPrefix(body, []byte("133;A")):
			state.OnPromptStart(cursorRow)
		case bytes.HasPrefix(body, []byte("133;B")):
			state.OnCommandStart(time.Now())
		case bytes.HasPrefix(body, []byte("133;D")):
			status := 0
			if parts := strings.SplitN(string(body), ";", 3); len(parts) == 3 {
				if n, err := strconv.Atoi(parts[2]); err == nil {
					status = n
				}
			}
			if state.OnCommandEnd(time.Now(), status, !unfocused, thresholdMs) {
				notify = true
			}
		case bytes.HasPrefix(body, []byte("7;")):
			state.OnCWDChange(decodeOSC7(string(body[2:])), 0, nil)
		case bytes.HasPrefix(body, []byte("0;")):
			state.OnTitleChange(string(body[2:]))
		case bytes.HasPrefix(body, []byte("2;")):
			state.OnTitleChange(string(body[2:]))
		}
	}
}

// oscTerminator finds where the OSC sequence ends: the index of a BEL
// (\x07) terminator, or the index just past an ST (\x1b\\) terminator,
// or -1 if neither is found within data.
func oscTerminator(data []byte) int {
	if i := bytes.IndexByte(data, 0x07); i >= 0 {
		return i
	}
	if i := bytes.Index(data, []byte("\x1b\\")); i >= 0 {
		return i + 2
	}
	return -1
}

// decodeOSC7 strips the "file://host" prefix an OSC 7 sequence carries,
// leaving the path (matching the shell scripts' printf '...file://%s%s').
func decodeOSC7(payload string) string {
	payload = strings.TrimPrefix(payload, "file://")
	if i := strings.Index(payload, "/"); i >= 0 {
		return payload[i:]
	}
	return payload
}
