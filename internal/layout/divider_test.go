package layout

import (
	"testing"

	"github.com/veloterm/veloterm/internal/geom"
)

func TestCalculateDividersOnePerSplit(t *testing.T) {
	var counter PaneId
	tree := New(&counter)
	tree.SplitFocused(Vertical, 1000, 500, 1, 1)

	bounds := geom.Rect{X: 0, Y: 0, W: 1000, H: 500}
	dividers := tree.CalculateDividers(bounds, defaultMetrics())
	if len(dividers) != 1 {
		t.Fatalf("expected 1 divider for 1 split, got %d", len(dividers))
	}
	if dividers[0].Dir != Vertical {
		t.Fatalf("expected vertical divider, got %v", dividers[0].Dir)
	}
}

func TestHitTestDividerWithinMargin(t *testing.T) {
	var counter PaneId
	tree := New(&counter)
	tree.SplitFocused(Vertical, 1000, 500, 1, 1)

	bounds := geom.Rect{X: 0, Y: 0, W: 1000, H: 500}
	dividers := tree.CalculateDividers(bounds, defaultMetrics())

	// Divider sits at x=500. A point 3px away is within the 8px margin.
	idx := HitTestDivider(geom.Point{X: 503, Y: 250}, dividers, dividerHitMarginPx)
	if idx != 0 {
		t.Fatalf("expected divider 0 to hit-test within margin, got %d", idx)
	}

	idx = HitTestDivider(geom.Point{X: 100, Y: 250}, dividers, dividerHitMarginPx)
	if idx != -1 {
		t.Fatalf("expected no hit far from divider, got %d", idx)
	}
}

func TestDragStateMachineProducesEffects(t *testing.T) {
	var counter PaneId
	tree := New(&counter)
	tree.SplitFocused(Vertical, 1000, 500, 1, 1)

	bounds := geom.Rect{X: 0, Y: 0, W: 1000, H: 500}
	dividers := tree.CalculateDividers(bounds, defaultMetrics())

	var d DragState
	eff := d.OnCursorMoved(geom.Point{X: 503, Y: 250}, dividers)
	if eff.Kind != EffectSetCursor || d.Phase != Hovering {
		t.Fatalf("expected SetCursor effect and Hovering phase, got %+v / %v", eff, d.Phase)
	}

	eff = d.OnMousePressed(geom.Point{X: 503, Y: 250}, dividers)
	if eff.Kind != EffectStartDrag || d.Phase != Dragging {
		t.Fatalf("expected StartDrag effect and Dragging phase, got %+v / %v", eff, d.Phase)
	}

	eff = d.OnCursorMoved(geom.Point{X: 553, Y: 250}, dividers)
	if eff.Kind != EffectUpdateRatio {
		t.Fatalf("expected UpdateRatio effect while dragging, got %+v", eff)
	}
	if eff.NewRatio <= 0.5 {
		t.Fatalf("expected ratio to increase after dragging divider right, got %v", eff.NewRatio)
	}

	eff = d.OnMouseReleased()
	if d.Phase != Idle {
		t.Fatalf("expected Idle phase after release, got %v", d.Phase)
	}
}
