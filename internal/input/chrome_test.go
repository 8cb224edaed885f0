package input

import (
	"testing"

	"github.com/veloterm/veloterm/internal/geom"
)

func TestHitTestTabBarSelectsTabOverClose(t *testing.T) {
	tabs := []TabRect{
		{Rect: geom.Rect{X: 0, Y: 0, W: 100, H: 30}, CloseRect: geom.Rect{X: 80, Y: 5, W: 15, H: 15}},
	}
	hit := HitTestTabBar(geom.Point{X: 50, Y: 15}, tabs, geom.Rect{})
	if hit.Kind != TabBarHitSelect || hit.Index != 0 {
		t.Fatalf("expected select hit on tab 0, got %+v", hit)
	}
}

func TestHitTestTabBarClose(t *testing.T) {
	tabs := []TabRect{
		{Rect: geom.Rect{X: 0, Y: 0, W: 100, H: 30}, CloseRect: geom.Rect{X: 80, Y: 5, W: 15, H: 15}},
	}
	hit := HitTestTabBar(geom.Point{X: 85, Y: 10}, tabs, geom.Rect{})
	if hit.Kind != TabBarHitClose || hit.Index != 0 {
		t.Fatalf("expected close hit on tab 0, got %+v", hit)
	}
}

func TestHitTestTabBarNewTabButton(t *testing.T) {
	tabs := []TabRect{{Rect: geom.Rect{X: 0, Y: 0, W: 100, H: 30}}}
	newTab := geom.Rect{X: 110, Y: 0, W: 20, H: 30}
	hit := HitTestTabBar(geom.Point{X: 115, Y: 10}, tabs, newTab)
	if hit.Kind != TabBarHitNew {
		t.Fatalf("expected new-tab hit, got %+v", hit)
	}
}

func TestTabDragRequiresMinimumTravelBeforeReorder(t *testing.T) {
	var d TabDragState
	d.OnMousePressed(0, geom.Point{X: 10, Y: 10})

	tabs := []TabRect{
		{Rect: geom.Rect{X: 0, Y: 0, W: 50, H: 30}},
		{Rect: geom.Rect{X: 50, Y: 0, W: 50, H: 30}},
	}
	_, reordering := d.OnMouseMoved(geom.Point{X: 12, Y: 10}, tabs)
	if reordering {
		t.Fatal("expected sub-threshold movement to not trigger a reorder")
	}

	target, reordering := d.OnMouseMoved(geom.Point{X: 60, Y: 10}, tabs)
	if !reordering || target != 1 {
		t.Fatalf("expected reorder to tab 1 past the threshold, got target=%d reordering=%v", target, reordering)
	}
}
