package geom

import "testing"

func TestRectContainsIsHalfOpen(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 20, H: 20}

	if !r.Contains(Point{X: 10, Y: 10}) {
		t.Error("expected the top-left corner to be inside the rect")
	}
	if r.Contains(Point{X: 30, Y: 15}) {
		t.Error("expected the right edge to be exclusive")
	}
	if r.Contains(Point{X: 15, Y: 30}) {
		t.Error("expected the bottom edge to be exclusive")
	}
	if r.Contains(Point{X: 9, Y: 15}) {
		t.Error("expected a point left of the rect to be outside")
	}
}

func TestRectInsetShrinksFromEachEdge(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 100, H: 50}

	got := r.Inset(5, 10, 5, 10)
	want := Rect{X: 5, Y: 10, W: 90, H: 30}
	if got != want {
		t.Errorf("Inset(5,10,5,10) = %+v, want %+v", got, want)
	}
}

func TestRectInsetClampsToZeroAreaRatherThanGoingNegative(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 10, H: 10}

	got := r.Inset(8, 8, 8, 8)
	if got.W != 0 || got.H != 0 {
		t.Errorf("expected an over-inset rect to clamp to zero area, got %+v", got)
	}
}

func TestRectCenterMatchesCenterXAndCenterY(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 30, H: 40}

	center := r.Center()
	if center.X != r.CenterX() || center.Y != r.CenterY() {
		t.Errorf("Center() = %+v, want (%v, %v)", center, r.CenterX(), r.CenterY())
	}
	if center.X != 25 || center.Y != 40 {
		t.Errorf("Center() = %+v, want (25, 40)", center)
	}
}

func TestColorWithAlphaLeavesOtherChannelsUnchanged(t *testing.T) {
	c := RGBA(0.1, 0.2, 0.3, 1.0)

	got := c.WithAlpha(0.5)
	if got.R != c.R || got.G != c.G || got.B != c.B {
		t.Errorf("WithAlpha changed a non-alpha channel: got %+v, from %+v", got, c)
	}
	if got.A != 0.5 {
		t.Errorf("WithAlpha(0.5).A = %v, want 0.5", got.A)
	}
}
