package render

import (
	"github.com/veloterm/veloterm/internal/damage"
	"github.com/veloterm/veloterm/internal/linkdetect"
	"github.com/veloterm/veloterm/internal/search"
	"github.com/veloterm/veloterm/internal/selection"
)

// CursorOverlay describes the terminal cursor's position/shape/visibility
// for one frame (spec.md §4.7 step 2b).
type CursorOverlay struct {
	Row, Col int
	Shape    CursorShape
	Visible  bool
	Hollow   bool // true when the window is unfocused
}

// FrameInput bundles everything Compose needs to overlay a pane's raw
// grid for one frame.
type FrameInput struct {
	Grid        [][]GridCell // rows x cols, already populated with char/fg/bg from the external VT model
	Cursor      CursorOverlay
	Selection   *selection.Selection
	SearchState *search.State
	ViewportTop int // first visible row, for the search match ± 5 row band
	HoveredLink *linkdetect.Link
}

const searchViewportBuffer = 5

// Overlay mutates grid in place, applying cursor/selection/search/link
// flags per spec.md §4.7 step 2, and returns it for chaining.
func Overlay(in FrameInput) [][]GridCell {
	grid := in.Grid
	rows := len(grid)

	if in.Cursor.Visible && in.Cursor.Row >= 0 && in.Cursor.Row < rows {
		row := grid[in.Cursor.Row]
		if in.Cursor.Col >= 0 && in.Cursor.Col < len(row) {
			shape := in.Cursor.Shape
			if in.Cursor.Hollow {
				shape = CursorHollow
			}
			row[in.Cursor.Col].Flags |= FlagIsCursor
			row[in.Cursor.Col].Flags = row[in.Cursor.Col].Flags.WithCursorShape(shape)
		}
	}

	if in.Selection != nil && in.Selection.Active {
		for r := range grid {
			for c := range grid[r] {
				if in.Selection.Contains(selection.Position{Row: r, Col: c}) {
					grid[r][c].Flags |= FlagSelected
				}
			}
		}
	}

	if in.SearchState != nil {
		viewportBottom := in.ViewportTop + rows - 1
		visible := search.VisibleMatches(in.SearchState.Matches, in.ViewportTop, viewportBottom, searchViewportBuffer)
		for _, m := range visible {
			if m.Row < 0 || m.Row >= rows {
				continue
			}
			for c := m.Start; c < m.End && c < len(grid[m.Row]); c++ {
				grid[m.Row][c].Flags |= FlagSearchMatch
				if isCurrentMatch(in.SearchState, m) {
					grid[m.Row][c].Flags |= FlagSearchMatchActive
				}
			}
		}
	}

	if in.HoveredLink != nil {
		l := in.HoveredLink
		if l.Start.Row == l.End.Row && l.Start.Row >= 0 && l.Start.Row < rows {
			row := grid[l.Start.Row]
			for c := l.Start.Col; c <= l.End.Col && c < len(row); c++ {
				row[c].Flags |= FlagUnderline
			}
		}
	}

	return grid
}

func isCurrentMatch(s *search.State, m search.Match) bool {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Matches) {
		return false
	}
	return s.Matches[s.CurrentIndex] == m
}

// Compose runs the damage diff against tracker and, for each dirty row,
// generates CellInstances from grid using lookup for atlas UVs. It
// returns the flattened instance buffer (only dirty rows populated;
// callers index by row*cols to splice into a persistent buffer) and the
// list of dirty row indices.
func Compose(grid [][]GridCell, tracker *damage.Tracker, lookup GlyphLookup) (instances []CellInstance, dirtyRows []int) {
	cells := make([][]damage.Cell, len(grid))
	for r, row := range grid {
		cells[r] = make([]damage.Cell, len(row))
		for c, cell := range row {
			cells[r][c] = cell
		}
	}
	dirtyRows = tracker.Diff(cells)

	for _, r := range dirtyRows {
		row := grid[r]
		for c, cell := range row {
			u, v, w, h, _, ok := lookup.UV(cell.Char)
			if !ok {
				u, v, w, h = 0, 0, 0, 0
			}
			instances = append(instances, CellInstance{
				GridCol: uint16(c),
				GridRow: uint16(r),
				AtlasU:  u, AtlasV: v, AtlasW: w, AtlasH: h,
				FG: cell.FG, BG: cell.BG, Flags: cell.Flags,
			})
		}
	}
	return instances, dirtyRows
}
