package layout

import (
	"testing"

	"github.com/veloterm/veloterm/internal/geom"
)

func defaultMetrics() Metrics {
	return Metrics{CellW: 1, CellH: 1, MinCols: DefaultMinCols, MinRows: DefaultMinRows}
}

// S1 from spec.md §8: new tree (leaf id=1); split_focused(V) produces
// Split(V, 0.5, Leaf 1, Leaf 2), focused=2; calculate_layout({0,0,1000,500})
// yields {1:{0,0,500,500}, 2:{500,0,500,500}}; focus_direction(Left) -> focused=1.
func TestSplitAndFocusScenarioS1(t *testing.T) {
	var counter PaneId
	tree := New(&counter)
	if tree.Focused != 1 {
		t.Fatalf("expected initial focused leaf id 1, got %d", tree.Focused)
	}

	newID, err := tree.SplitFocused(Vertical, 1000, 500, 1, 1)
	if err != nil {
		t.Fatalf("SplitFocused: %v", err)
	}
	if newID != 2 {
		t.Fatalf("expected new pane id 2, got %d", newID)
	}
	if tree.Focused != 2 {
		t.Fatalf("expected focus on new pane 2, got %d", tree.Focused)
	}

	bounds := geom.Rect{X: 0, Y: 0, W: 1000, H: 500}
	rects := tree.CalculateLayout(bounds, defaultMetrics())

	want1 := geom.Rect{X: 0, Y: 0, W: 500, H: 500}
	want2 := geom.Rect{X: 500, Y: 0, W: 500, H: 500}
	if rects[1] != want1 {
		t.Fatalf("pane 1: expected %+v, got %+v", want1, rects[1])
	}
	if rects[2] != want2 {
		t.Fatalf("pane 2: expected %+v, got %+v", want2, rects[2])
	}

	tree.FocusDirection(Left, bounds, defaultMetrics())
	if tree.Focused != 1 {
		t.Fatalf("expected focus_direction(Left) to move focus to 1, got %d", tree.Focused)
	}
}

// S2 from spec.md §8: starting from S1's tree, close_focused() returns
// [1] (the other leaf), tree collapses to Leaf 2, focused=2.
func TestCloseCollapsesScenarioS2(t *testing.T) {
	var counter PaneId
	tree := New(&counter)
	tree.SplitFocused(Vertical, 1000, 500, 1, 1)
	tree.Focus(1)

	closed, ok := tree.CloseFocused()
	if !ok {
		t.Fatal("expected CloseFocused to succeed")
	}
	if closed != 1 {
		t.Fatalf("expected closed pane id 1, got %d", closed)
	}
	if !tree.Root.IsLeaf || tree.Root.Leaf != 2 {
		t.Fatalf("expected tree collapsed to Leaf 2, got %+v", tree.Root)
	}
	if tree.Focused != 2 {
		t.Fatalf("expected focus on remaining pane 2, got %d", tree.Focused)
	}
}

func TestCloseFocusedOnSingleLeafReturnsNotOk(t *testing.T) {
	var counter PaneId
	tree := New(&counter)
	_, ok := tree.CloseFocused()
	if ok {
		t.Fatal("expected CloseFocused on a single-leaf tree to report ok=false")
	}
}

func TestSplitFocusedRejectsTooSmallBounds(t *testing.T) {
	var counter PaneId
	tree := New(&counter)
	// cellW=10, min_cols=4 => minW=40; 2*minW=80; bounds width 70 < 80.
	_, err := tree.SplitFocused(Vertical, 70, 500, 10, 10)
	if err != ErrPaneTooSmall {
		t.Fatalf("expected ErrPaneTooSmall, got %v", err)
	}
}

func TestZoomToggle(t *testing.T) {
	var counter PaneId
	tree := New(&counter)
	tree.SplitFocused(Vertical, 1000, 500, 1, 1)

	tree.ZoomToggle()
	if tree.Zoomed == nil || *tree.Zoomed != tree.Focused {
		t.Fatal("expected zoomed to equal focused pane")
	}
	if got := tree.VisiblePanes(); len(got) != 1 || got[0] != tree.Focused {
		t.Fatalf("expected VisiblePanes to return only the zoomed pane, got %v", got)
	}

	tree.ZoomToggle()
	if tree.Zoomed != nil {
		t.Fatal("expected zoomed cleared")
	}
	if got := tree.VisiblePanes(); len(got) != 2 {
		t.Fatalf("expected both panes visible after unzoom, got %v", got)
	}
}

func TestSplitExitsZoom(t *testing.T) {
	var counter PaneId
	tree := New(&counter)
	tree.ZoomToggle()
	tree.SplitFocused(Horizontal, 1000, 500, 1, 1)
	if tree.Zoomed != nil {
		t.Fatal("expected split to exit zoom")
	}
}

// Property 1 from spec.md §8: calculate_layout rects are disjoint and
// union to bounds (modulo rounding), with minimum size honored.
func TestLayoutInvariantDisjointAndCoversBounds(t *testing.T) {
	var counter PaneId
	tree := New(&counter)
	tree.SplitFocused(Vertical, 1000, 500, 1, 1)
	tree.SplitFocused(Horizontal, 500, 500, 1, 1)

	bounds := geom.Rect{X: 0, Y: 0, W: 1000, H: 500}
	rects := tree.CalculateLayout(bounds, defaultMetrics())

	if len(rects) != 3 {
		t.Fatalf("expected 3 leaves, got %d", len(rects))
	}
	var totalArea float32
	for _, r := range rects {
		if r.W < defaultMetrics().minW() || r.H < defaultMetrics().minH() {
			t.Fatalf("rect %+v smaller than minimum size", r)
		}
		totalArea += r.W * r.H
	}
	wantArea := bounds.W * bounds.H
	if diff := totalArea - wantArea; diff > 1 || diff < -1 {
		t.Fatalf("expected total area ~= %v, got %v", wantArea, totalArea)
	}
}

func TestMoveTabStylePanePreservesLeafSet(t *testing.T) {
	var counter PaneId
	tree := New(&counter)
	tree.SplitFocused(Vertical, 1000, 500, 1, 1)
	before := tree.Leaves()
	tree.FocusDirection(Left, geom.Rect{X: 0, Y: 0, W: 1000, H: 500}, defaultMetrics())
	after := tree.Leaves()
	if len(before) != len(after) {
		t.Fatalf("expected leaf count preserved across focus navigation, got %d vs %d", len(before), len(after))
	}
}
