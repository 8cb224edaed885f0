package input

import (
	"github.com/veloterm/veloterm/internal/search"
	"github.com/veloterm/veloterm/internal/selection"

	tea "github.com/charmbracelet/bubbletea"
)

// KeyOutcome is the result of dispatching one key event through the
// full chain (spec.md §4.8 step 1 and step 6). Exactly one of the
// non-zero-value fields is meaningful for a given Consumed reason.
type KeyOutcome struct {
	Consumed    bool
	Action      Action  // a global keybinding fired
	PTYBytes    []byte  // bytes to write to the focused pane's PTY
	ViResult    ViResult
	SearchQuery string // the modal Search query after this key, if changed
	SearchDone  bool   // query editing finished (Enter/Escape)
	SearchNext  bool   // Enter without Shift: advance to next match
	SearchPrev  bool   // Shift+Enter or Up: previous match
	ExitSearch  bool
}

// Dispatcher holds the input-mode state machine that spans key events:
// which Mode is active, the live vi sub-state, and the current search
// query text (spec.md §4.8 steps 1-6).
type Dispatcher struct {
	Mode        Mode
	Vi          *ViState
	SearchQuery string
	KeyMap      KeyMap
	ExitViKey   string
}

// NewDispatcher returns a Dispatcher in Normal mode with the default
// keymap.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{Mode: ModeNormal, KeyMap: DefaultKeyMap, ExitViKey: "q"}
}

// DispatchKey runs one key event through the dispatch-order chain's
// keyboard leg: modal input first (step 1), then the global keybind
// intercepts, then raw keyboard-to-PTY translation (step 6). src and
// totalRows are only consulted in Vi mode.
func (d *Dispatcher) DispatchKey(msg tea.KeyMsg, src ViCellSource, totalRows int) KeyOutcome {
	key := msg.String()

	switch d.Mode {
	case ModeSearch:
		return d.dispatchSearchKey(key)
	case ModeVi:
		return d.dispatchViKey(key, src, totalRows)
	}

	if action := ResolveAction(d.KeyMap, key); action != ActionNone {
		switch action {
		case ActionEnterSearch:
			d.Mode = ModeSearch
			d.SearchQuery = ""
		case ActionEnterVi:
			d.Mode = ModeVi
			d.Vi = NewViState(selection.Position{})
		}
		return KeyOutcome{Consumed: true, Action: action}
	}

	return KeyOutcome{Consumed: true, PTYBytes: TranslateKey(msg)}
}

func (d *Dispatcher) dispatchSearchKey(key string) KeyOutcome {
	switch key {
	case "esc", "escape":
		d.Mode = ModeNormal
		return KeyOutcome{Consumed: true, ExitSearch: true}
	case "enter":
		return KeyOutcome{Consumed: true, SearchQuery: d.SearchQuery, SearchNext: true}
	case "shift+enter":
		return KeyOutcome{Consumed: true, SearchQuery: d.SearchQuery, SearchPrev: true}
	case "up":
		return KeyOutcome{Consumed: true, SearchQuery: d.SearchQuery, SearchPrev: true}
	case "down":
		return KeyOutcome{Consumed: true, SearchQuery: d.SearchQuery, SearchNext: true}
	case "backspace":
		if len(d.SearchQuery) > 0 {
			d.SearchQuery = d.SearchQuery[:len(d.SearchQuery)-1]
		}
		return KeyOutcome{Consumed: true, SearchQuery: d.SearchQuery}
	}
	return KeyOutcome{Consumed: true, SearchQuery: d.SearchQuery}
}

// AppendSearchRune feeds one printable rune into the active search
// query (bubbletea delivers printable input as tea.KeyRunes, handled
// by the caller before reaching DispatchKey so the textinput-style
// cursor semantics stay in internal/app).
func (d *Dispatcher) AppendSearchRune(r rune) {
	d.SearchQuery += string(r)
}

func (d *Dispatcher) dispatchViKey(key string, src ViCellSource, totalRows int) KeyOutcome {
	if d.Vi == nil {
		d.Vi = NewViState(selection.Position{})
	}
	result := d.Vi.HandleKey(key, src, totalRows, d.ExitViKey)
	if result.Exited {
		d.Mode = ModeNormal
	}
	if result.EnterSearch {
		d.Mode = ModeSearch
		d.SearchQuery = ""
	}
	return KeyOutcome{Consumed: true, ViResult: result}
}

// RunSearch executes the current query against lines and returns the
// result, the glue between the Dispatcher's modal state and C9.
func RunSearch(query string, lines []string) search.Result {
	return search.Search(query, lines)
}
