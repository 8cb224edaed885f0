package damage

import "testing"

func gridOf(rows, cols int, fill func(r, c int) Cell) [][]Cell {
	g := make([][]Cell, rows)
	for r := 0; r < rows; r++ {
		g[r] = make([]Cell, cols)
		for c := 0; c < cols; c++ {
			g[r][c] = fill(r, c)
		}
	}
	return g
}

func TestFirstFrameIsFullDamage(t *testing.T) {
	tr := New(4, 3)
	grid := gridOf(3, 4, func(r, c int) Cell { return r*4 + c })
	dirty := tr.Diff(grid)
	if len(dirty) != 3 {
		t.Fatalf("expected full damage (3 rows) on first frame, got %v", dirty)
	}
}

func TestNoChangeYieldsNoDirtyRows(t *testing.T) {
	tr := New(4, 3)
	grid := gridOf(3, 4, func(r, c int) Cell { return r*4 + c })
	tr.Diff(grid)
	dirty := tr.Diff(grid)
	if len(dirty) != 0 {
		t.Fatalf("expected no dirty rows on identical frame, got %v", dirty)
	}
}

func TestSingleRowChangeYieldsExactlyThatRow(t *testing.T) {
	tr := New(4, 3)
	grid := gridOf(3, 4, func(r, c int) Cell { return r*4 + c })
	tr.Diff(grid)

	grid2 := gridOf(3, 4, func(r, c int) Cell { return r*4 + c })
	grid2[1][2] = 999

	dirty := tr.Diff(grid2)
	if len(dirty) != 1 || dirty[0] != 1 {
		t.Fatalf("expected exactly row 1 dirty, got %v", dirty)
	}
}

func TestResizeForcesFullDamage(t *testing.T) {
	tr := New(4, 3)
	grid := gridOf(3, 4, func(r, c int) Cell { return r*4 + c })
	tr.Diff(grid)

	tr.Resize(5, 3)
	grid2 := gridOf(3, 5, func(r, c int) Cell { return r*5 + c })
	dirty := tr.Diff(grid2)
	if len(dirty) != 3 {
		t.Fatalf("expected full damage after resize, got %v", dirty)
	}
}

func TestDimensionChangeWithoutExplicitResizeForcesFullDamage(t *testing.T) {
	tr := New(4, 3)
	grid := gridOf(3, 4, func(r, c int) Cell { return r*4 + c })
	tr.Diff(grid)

	grid2 := gridOf(5, 4, func(r, c int) Cell { return r*4 + c })
	dirty := tr.Diff(grid2)
	if len(dirty) != 5 {
		t.Fatalf("expected full damage (5 rows) after implicit dimension change, got %v", dirty)
	}
}

func TestMarkAllForcesFullDamageNextDiff(t *testing.T) {
	tr := New(4, 3)
	grid := gridOf(3, 4, func(r, c int) Cell { return r*4 + c })
	tr.Diff(grid)
	tr.MarkAll()
	dirty := tr.Diff(grid)
	if len(dirty) != 3 {
		t.Fatalf("expected full damage after MarkAll, got %v", dirty)
	}
}

func TestClearResetsCacheToFullDamage(t *testing.T) {
	tr := New(4, 3)
	grid := gridOf(3, 4, func(r, c int) Cell { return r*4 + c })
	tr.Diff(grid)
	tr.Clear()
	dirty := tr.Diff(grid)
	if len(dirty) != 3 {
		t.Fatalf("expected full damage after Clear, got %v", dirty)
	}
}
