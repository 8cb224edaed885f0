package input

import "github.com/veloterm/veloterm/internal/selection"

// ViCellSource supplies line lengths and rune lookups for vi motions,
// the same narrow contract internal/selection uses so a single
// adapter at the terminal.Leaf boundary can satisfy both.
type ViCellSource interface {
	Rune(row, col int) rune
	LineLen(row int) int
}

// ViResult reports what a single key dispatched to the vi state
// machine produced, for the caller (internal/app.Workspace) to act on.
type ViResult struct {
	CursorMoved   bool
	Yanked        string
	EnterSearch   bool // '/' or '?' pressed: hand off to Search mode
	SearchReverse bool
	Exited        bool // vi mode was left (q or the configured exit key)
}

// ViState is the vi sub-state machine (spec.md §4.8 step 1): counts,
// motions, and the Visual/Visual-Line/Visual-Block entry points. Full
// vi command coverage (registers, macros, ex commands) is explicitly
// out of scope; this implements the motion/yank/visual subset §4.8
// names.
type ViState struct {
	Cursor  selection.Position
	Visual  VisualKind
	anchor  selection.Position
	count   int
	hasSeen bool // true after one 'g' of a pending "gg"
}

// NewViState starts vi mode with the cursor at pos.
func NewViState(pos selection.Position) *ViState {
	return &ViState{Cursor: pos}
}

func (v *ViState) pendingCount() int {
	if v.count == 0 {
		return 1
	}
	return v.count
}

func (v *ViState) resetCount() { v.count = 0 }

// HandleKey drives the state machine with one key chord string
// (bubbletea's msg.String() form) and the bounds needed to clamp
// motions. exitKey is the configured key that leaves vi mode (in
// addition to 'q').
func (v *ViState) HandleKey(key string, src ViCellSource, totalRows int, exitKey string) ViResult {
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		v.count = v.count*10 + int(key[0]-'0')
		return ViResult{}
	}
	if v.count > 0 && key == "0" {
		v.count *= 10
		return ViResult{}
	}

	if key == "q" || key == exitKey {
		v.resetCount()
		return ViResult{Exited: true}
	}
	if key == "esc" || key == "escape" {
		v.resetCount()
		if v.Visual != VisualNone {
			v.Visual = VisualNone
			return ViResult{}
		}
		return ViResult{Exited: true}
	}

	if key == "/" || key == "?" {
		v.resetCount()
		return ViResult{EnterSearch: true, SearchReverse: key == "?"}
	}

	switch key {
	case "v":
		v.toggleVisual(VisualChar)
		v.resetCount()
		return ViResult{}
	case "V":
		v.toggleVisual(VisualLine)
		v.resetCount()
		return ViResult{}
	case "ctrl+v":
		v.toggleVisual(VisualBlock)
		v.resetCount()
		return ViResult{}
	case "y":
		text := v.yank(src)
		v.resetCount()
		v.Visual = VisualNone
		return ViResult{Yanked: text}
	}

	n := v.pendingCount()
	moved := v.motion(key, src, totalRows, n)
	v.resetCount()
	return ViResult{CursorMoved: moved}
}

func (v *ViState) toggleVisual(kind VisualKind) {
	if v.Visual == kind {
		v.Visual = VisualNone
		return
	}
	v.Visual = kind
	v.anchor = v.Cursor
}

func (v *ViState) motion(key string, src ViCellSource, totalRows, n int) bool {
	switch key {
	case "h":
		for i := 0; i < n && v.Cursor.Col > 0; i++ {
			v.Cursor.Col--
		}
		return true
	case "l":
		lineLen := src.LineLen(v.Cursor.Row)
		for i := 0; i < n && v.Cursor.Col < lineLen; i++ {
			v.Cursor.Col++
		}
		return true
	case "j":
		for i := 0; i < n && v.Cursor.Row < totalRows-1; i++ {
			v.Cursor.Row++
		}
		return true
	case "k":
		for i := 0; i < n && v.Cursor.Row > 0; i++ {
			v.Cursor.Row--
		}
		return true
	case "0":
		v.Cursor.Col = 0
		return true
	case "$":
		v.Cursor.Col = max0(src.LineLen(v.Cursor.Row) - 1)
		return true
	case "^":
		v.Cursor.Col = firstNonBlank(src, v.Cursor.Row)
		return true
	case "g":
		if v.hasSeen {
			v.hasSeen = false
			v.Cursor.Row = 0
			v.Cursor.Col = 0
			return true
		}
		v.hasSeen = true
		return false
	case "G":
		v.Cursor.Row = totalRows - 1
		return true
	case "w":
		v.Cursor = wordForward(src, v.Cursor, totalRows, n)
		return true
	case "b":
		v.Cursor = wordBackward(src, v.Cursor, n)
		return true
	case "e":
		v.Cursor = wordEnd(src, v.Cursor, totalRows, n)
		return true
	case "H":
		v.Cursor.Col = 0
		return true
	case "M":
		v.Cursor.Row = totalRows / 2
		v.Cursor.Col = 0
		return true
	case "L":
		v.Cursor.Row = totalRows - 1
		v.Cursor.Col = 0
		return true
	case "ctrl+u":
		v.Cursor.Row = max0(v.Cursor.Row - totalRows/2)
		return true
	case "ctrl+d":
		v.Cursor.Row = min(v.Cursor.Row+totalRows/2, totalRows-1)
		return true
	}
	v.hasSeen = false
	return false
}

// yank extracts the visual selection's text (or, with no active
// visual mode, the cursor's current line) via the selection engine's
// extraction logic, matching the teacher's copy-on-select behavior.
func (v *ViState) yank(src ViCellSource) string {
	sel := selection.New()
	adapter := cellSourceAdapter{src}

	switch v.Visual {
	case VisualChar:
		sel.Start(selection.Range, v.anchor, adapter)
		sel.Update(v.Cursor, adapter)
	case VisualLine:
		sel.Start(selection.Line, v.anchor, adapter)
		sel.Update(v.Cursor, adapter)
	case VisualBlock:
		sel.Start(selection.Block, v.anchor, adapter)
		sel.Update(v.Cursor, adapter)
	default:
		sel.Start(selection.Line, v.Cursor, adapter)
	}
	sel.Finish()
	return sel.SelectedText(adapter)
}

type cellSourceAdapter struct{ src ViCellSource }

func (a cellSourceAdapter) Rune(row, col int) rune { return a.src.Rune(row, col) }
func (a cellSourceAdapter) LineLen(row int) int    { return a.src.LineLen(row) }

func max0(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func isWordRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func wordForward(src ViCellSource, pos selection.Position, totalRows, n int) selection.Position {
	for i := 0; i < n; i++ {
		pos = oneWordForward(src, pos, totalRows)
	}
	return pos
}

func oneWordForward(src ViCellSource, pos selection.Position, totalRows int) selection.Position {
	row, col := pos.Row, pos.Col
	lineLen := src.LineLen(row)

	// Skip to the end of the word col currently sits in, if any.
	for col < lineLen && isWordRune(src.Rune(row, col)) {
		col++
	}

	// Skip non-word runs (and blank lines, which count as a stop) until
	// the next word's first rune, or end of buffer.
	for {
		if col >= lineLen {
			if row >= totalRows-1 {
				return selection.Position{Row: row, Col: max0(lineLen - 1)}
			}
			row++
			col = 0
			lineLen = src.LineLen(row)
			if lineLen == 0 {
				return selection.Position{Row: row, Col: 0}
			}
			continue
		}
		if isWordRune(src.Rune(row, col)) {
			return selection.Position{Row: row, Col: col}
		}
		col++
	}
}

func wordBackward(src ViCellSource, pos selection.Position, n int) selection.Position {
	for i := 0; i < n; i++ {
		pos = oneWordBackward(src, pos)
	}
	return pos
}

func oneWordBackward(src ViCellSource, pos selection.Position) selection.Position {
	row, col := pos.Row, pos.Col

	// Step back at least one rune, skipping non-word runs, until
	// landing on a word rune.
	for {
		if col <= 0 {
			if row <= 0 {
				return selection.Position{Row: 0, Col: 0}
			}
			row--
			col = src.LineLen(row)
			if col == 0 {
				return selection.Position{Row: row, Col: 0}
			}
			continue
		}
		col--
		if isWordRune(src.Rune(row, col)) {
			break
		}
	}

	// Walk back to the start of that word.
	for col > 0 && isWordRune(src.Rune(row, col-1)) {
		col--
	}
	return selection.Position{Row: row, Col: col}
}

func wordEnd(src ViCellSource, pos selection.Position, totalRows, n int) selection.Position {
	for i := 0; i < n; i++ {
		pos = oneWordEnd(src, pos, totalRows)
	}
	return pos
}

func oneWordEnd(src ViCellSource, pos selection.Position, totalRows int) selection.Position {
	row, col := pos.Row, pos.Col+1
	for row < totalRows {
		lineLen := src.LineLen(row)
		for col < lineLen && !isWordRune(src.Rune(row, col)) {
			col++
		}
		if col < lineLen {
			for col+1 < lineLen && isWordRune(src.Rune(row, col+1)) {
				col++
			}
			return selection.Position{Row: row, Col: col}
		}
		row++
		col = 0
	}
	return pos
}

func firstNonBlank(src ViCellSource, row int) int {
	lineLen := src.LineLen(row)
	for c := 0; c < lineLen; c++ {
		if src.Rune(row, c) != ' ' {
			return c
		}
	}
	return 0
}
