// Package selection implements the per-pane click-count selection state
// machine (spec.md §4.4, C4): Range/Word/Line/Block selection, drag
// extension, shift-click, and kind-aware text extraction. It is grounded
// on the teacher's internal/terminal/selection.go, generalized from a
// Range-only model to the full click-count automaton.
package selection

import (
	"strings"
)

// Kind is the selection's extent-and-extraction mode.
type Kind int

const (
	Range Kind = iota
	Word
	Line
	Block
)

// Position is a cell coordinate. Row may be negative to address
// scrollback history, per the terminal model's logical-row convention.
type Position struct {
	Row, Col int
}

func (p Position) less(o Position) bool {
	if p.Row != o.Row {
		return p.Row < o.Row
	}
	return p.Col < o.Col
}

// CellSource is the minimal read interface the selection engine needs
// from the terminal model to extend selections to word/line boundaries
// and extract text. Rows may be negative (scrollback) or >= 0 (live
// screen); callers own the mapping.
type CellSource interface {
	// Rune returns the rune at (row, col), or 0 when blank/out of range.
	Rune(row, col int) rune
	// LineLen returns the last non-space column index in row, or -1 if
	// the row is entirely blank.
	LineLen(row int) int
}

// isWordChar classifies alphanumeric + underscore as word characters;
// everything else (including '/', '.', '-') is a delimiter, per
// spec.md §4.4.
func isWordChar(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		return true
	default:
		return false
	}
}

// wordBoundsAt scans left and right from (row, col) over word characters
// and returns the inclusive [start, end] column range of the word
// containing col. If the cell at col is not a word character, the
// single-cell range [col, col] is returned.
func wordBoundsAt(src CellSource, row, col int) (start, end int) {
	start, end = col, col
	if !isWordChar(src.Rune(row, col)) {
		return start, end
	}
	for start > 0 && isWordChar(src.Rune(row, start-1)) {
		start--
	}
	for isWordChar(src.Rune(row, end+1)) {
		end++
	}
	return start, end
}

// Selection is one pane's selection state (spec.md §3 Selection).
type Selection struct {
	Anchor Position
	Cursor Position
	Kind   Kind
	Active bool

	// wordStart/wordEnd cache the word boundaries at the click that
	// started a Word selection, so drag extension can envelope both
	// the initial word and the word under the pointer.
	wordStart, wordEnd Position
}

// New returns an inactive selection.
func New() *Selection {
	return &Selection{}
}

// Start begins a selection of the given kind at pos.
func (s *Selection) Start(kind Kind, pos Position, src CellSource) {
	s.Kind = kind
	s.Active = true

	switch kind {
	case Range:
		s.Anchor = pos
		s.Cursor = pos
	case Word:
		startCol, endCol := wordBoundsAt(src, pos.Row, pos.Col)
		s.wordStart = Position{Row: pos.Row, Col: startCol}
		s.wordEnd = Position{Row: pos.Row, Col: endCol}
		s.Anchor = s.wordStart
		s.Cursor = s.wordEnd
	case Line:
		lastCol := src.LineLen(pos.Row)
		if lastCol < 0 {
			lastCol = 0
		}
		s.Anchor = Position{Row: pos.Row, Col: 0}
		s.Cursor = Position{Row: pos.Row, Col: lastCol}
	case Block:
		s.Anchor = pos
		s.Cursor = pos
	}
}

// Update extends the selection to pos (mouse drag while down).
func (s *Selection) Update(pos Position, src CellSource) {
	if !s.Active {
		return
	}
	switch s.Kind {
	case Range, Block:
		s.Cursor = pos
	case Word:
		startCol, endCol := wordBoundsAt(src, pos.Row, pos.Col)
		dragStart := Position{Row: pos.Row, Col: startCol}
		dragEnd := Position{Row: pos.Row, Col: endCol}
		lo, hi := envelope(s.wordStart, s.wordEnd, dragStart, dragEnd)
		s.Anchor, s.Cursor = lo, hi
	case Line:
		lastCol := src.LineLen(pos.Row)
		if lastCol < 0 {
			lastCol = 0
		}
		anchorRow := s.Anchor.Row
		if pos.Row < anchorRow {
			s.Anchor = Position{Row: anchorRow, Col: 0}
			s.Cursor = Position{Row: pos.Row, Col: 0}
		} else {
			s.Anchor = Position{Row: anchorRow, Col: 0}
			s.Cursor = Position{Row: pos.Row, Col: lastCol}
		}
	}
}

// envelope returns the min/max of four positions by row-major order.
func envelope(a, b, c, d Position) (lo, hi Position) {
	lo = a
	hi = a
	for _, p := range []Position{b, c, d} {
		if p.less(lo) {
			lo = p
		}
		if hi.less(p) {
			hi = p
		}
	}
	return lo, hi
}

// Finish completes the selection (mouse release). A Range selection
// with coincident anchor/cursor collapses to inactive (click without
// drag clears), matching the teacher's pane.go behavior.
func (s *Selection) Finish() {
	if s.Kind == Range && s.Anchor == s.Cursor {
		s.Active = false
	}
}

// Clear cancels any active selection.
func (s *Selection) Clear() {
	*s = Selection{}
}

// ShiftClick applies shift+click semantics (spec.md §4.4): if a
// selection is active, move its cursor to pos, preserving kind; else
// start a Range selection from termCursor (the PTY's own cursor
// position) to pos.
func (s *Selection) ShiftClick(pos Position, termCursor Position, src CellSource) {
	if s.Active {
		s.Cursor = pos
		return
	}
	s.Kind = Range
	s.Active = true
	s.Anchor = termCursor
	s.Cursor = pos
}

// Bounds returns the row/col-normalized selection endpoints (start
// before end in reading order).
func (s *Selection) Bounds() (start, end Position) {
	if s.Cursor.less(s.Anchor) {
		return s.Cursor, s.Anchor
	}
	return s.Anchor, s.Cursor
}

// BlockBounds normalizes rows and columns independently, as Block
// selection treats anchor/cursor as opposite rectangle corners.
func (s *Selection) BlockBounds() (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = s.Anchor.Row, s.Cursor.Row
	if minRow > maxRow {
		minRow, maxRow = maxRow, minRow
	}
	minCol, maxCol = s.Anchor.Col, s.Cursor.Col
	if minCol > maxCol {
		minCol, maxCol = maxCol, minCol
	}
	return
}

// Contains reports whether pos falls within the active selection.
func (s *Selection) Contains(pos Position) bool {
	if !s.Active {
		return false
	}
	switch s.Kind {
	case Block:
		minRow, maxRow, minCol, maxCol := s.BlockBounds()
		return pos.Row >= minRow && pos.Row <= maxRow && pos.Col >= minCol && pos.Col <= maxCol
	default:
		start, end := s.Bounds()
		if pos.Row < start.Row || (pos.Row == start.Row && pos.Col < start.Col) {
			return false
		}
		if pos.Row > end.Row || (pos.Row == end.Row && pos.Col > end.Col) {
			return false
		}
		return true
	}
}

// SelectedText extracts the selection's text per spec.md §4.4:
//   - Range: cells from normalized anchor to cursor, left-to-right then
//     top-to-bottom, '\n' between rows, trailing spaces trimmed per row.
//   - Line: full normalized rows joined by '\n'.
//   - Block: for each row in [min_row, max_row], the [min_col, max_col]
//     slice, joined by '\n'.
func (s *Selection) SelectedText(src CellSource) string {
	if !s.Active {
		return ""
	}
	switch s.Kind {
	case Block:
		return s.extractBlock(src)
	case Line:
		return s.extractLine(src)
	default: // Range, Word (Word extraction follows Range rules)
		return s.extractRange(src)
	}
}

func (s *Selection) extractRange(src CellSource) string {
	start, end := s.Bounds()
	var out strings.Builder
	for row := start.Row; row <= end.Row; row++ {
		startCol := 0
		if row == start.Row {
			startCol = start.Col
		}
		endCol := src.LineLen(row)
		if row == end.Row && end.Col < endCol {
			endCol = end.Col
		}
		out.WriteString(extractRow(src, row, startCol, endCol))
		if row < end.Row {
			out.WriteRune('\n')
		}
	}
	return out.String()
}

func (s *Selection) extractLine(src CellSource) string {
	start, end := s.Bounds()
	var out strings.Builder
	for row := start.Row; row <= end.Row; row++ {
		lastCol := src.LineLen(row)
		out.WriteString(extractRow(src, row, 0, lastCol))
		if row < end.Row {
			out.WriteRune('\n')
		}
	}
	return out.String()
}

func (s *Selection) extractBlock(src CellSource) string {
	minRow, maxRow, minCol, maxCol := s.BlockBounds()
	var out strings.Builder
	for row := minRow; row <= maxRow; row++ {
		out.WriteString(extractRow(src, row, minCol, maxCol))
		if row < maxRow {
			out.WriteRune('\n')
		}
	}
	return out.String()
}

// extractRow renders cells [fromCol, toCol] of row as runes, blanks
// rendered as spaces, with trailing spaces trimmed.
func extractRow(src CellSource, row, fromCol, toCol int) string {
	if toCol < fromCol {
		return ""
	}
	runes := make([]rune, 0, toCol-fromCol+1)
	for col := fromCol; col <= toCol; col++ {
		ch := src.Rune(row, col)
		if ch == 0 {
			ch = ' '
		}
		runes = append(runes, ch)
	}
	end := len(runes)
	for end > 0 && runes[end-1] == ' ' {
		end--
	}
	return string(runes[:end])
}
