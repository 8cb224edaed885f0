// Package input implements the Interaction Dispatcher (spec.md §4.8,
// C8): the dispatch-order chain from modal input down to
// keyboard-to-PTY translation, the Search/Vi input modes, and the
// bracketed-paste wire helper. Keys and mouse events arrive as
// bubbletea messages (tea.KeyMsg/tea.MouseMsg), the same surrogate the
// teacher drives internal/terminal.Pane from.
package input

// Mode is the active pane's input mode (spec.md §4.8 step 1).
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeVi
)

// VisualKind distinguishes the vi visual sub-modes.
type VisualKind int

const (
	VisualNone VisualKind = iota
	VisualChar
	VisualLine
	VisualBlock
)
