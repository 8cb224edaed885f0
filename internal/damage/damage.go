// Package damage implements the per-pane damage tracker (spec.md §4.2,
// C2): row-level dirty flags plus a snapshot of the previous frame's
// cells, driving partial vertex-buffer writes in the render composer.
package damage

// Cell is the minimal equality-comparable unit the damage tracker
// diffs against. The render package's GridCell satisfies this directly
// (it is comparable since every field is a value type).
type Cell = any

// Tracker holds per-row dirty flags and the previous frame's grid.
type Tracker struct {
	cols, rows int
	dirty      []bool
	prev       [][]Cell
	generation uint64
	initialized bool
}

// New creates a Tracker for a cols x rows grid. The first Diff call
// against it always reports full damage (empty cache).
func New(cols, rows int) *Tracker {
	t := &Tracker{}
	t.Resize(cols, rows)
	return t
}

// MarkRow marks a single row dirty.
func (t *Tracker) MarkRow(r int) {
	if r < 0 || r >= len(t.dirty) {
		return
	}
	t.dirty[r] = true
}

// MarkAll marks every row dirty (forced full damage: resize, theme
// change, font change, scroll delta per spec.md §3 Lifecycles).
func (t *Tracker) MarkAll() {
	for i := range t.dirty {
		t.dirty[i] = true
	}
}

// Clear resets all dirty flags and drops the cached previous grid,
// forcing the next Diff to report full damage.
func (t *Tracker) Clear() {
	for i := range t.dirty {
		t.dirty[i] = false
	}
	t.prev = nil
	t.initialized = false
	t.generation++
}

// Resize changes the grid dimensions, forcing full damage and
// resetting the cache (spec.md §4.2: "Grids with changed dimensions
// yield full damage and cache reset").
func (t *Tracker) Resize(cols, rows int) {
	t.cols, t.rows = cols, rows
	t.dirty = make([]bool, rows)
	t.prev = nil
	t.initialized = false
	t.generation++
	t.MarkAll()
}

// Generation returns a counter incremented on every Clear/Resize, handy
// for cache invalidation in callers that memoize per-tracker state.
func (t *Tracker) Generation() uint64 { return t.generation }

// Diff compares newCells (row-major, rows x cols) against the cached
// previous grid and returns the sorted list of dirty rows. The cache is
// then updated to newCells for the next call.
func (t *Tracker) Diff(newCells [][]Cell) []int {
	rows := len(newCells)

	if !t.initialized || rows != t.rows || (rows > 0 && len(newCells[0]) != t.cols) {
		cols := 0
		if rows > 0 {
			cols = len(newCells[0])
		}
		t.Resize(cols, rows)
	}

	dirtyRows := make([]int, 0, rows)
	for r := 0; r < rows; r++ {
		rowDirty := t.dirty[r]
		if !rowDirty && t.prev != nil && r < len(t.prev) {
			rowDirty = !rowEqual(t.prev[r], newCells[r])
		} else if !rowDirty && t.prev == nil {
			rowDirty = true // first frame: full damage
		}
		if rowDirty {
			dirtyRows = append(dirtyRows, r)
		}
	}

	t.prev = make([][]Cell, rows)
	for r := 0; r < rows; r++ {
		rowCopy := make([]Cell, len(newCells[r]))
		copy(rowCopy, newCells[r])
		t.prev[r] = rowCopy
	}
	t.initialized = true
	for i := range t.dirty {
		t.dirty[i] = false
	}

	return dirtyRows
}

func rowEqual(a, b []Cell) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
