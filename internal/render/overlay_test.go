package render

import (
	"testing"

	"github.com/veloterm/veloterm/internal/geom"
)

func TestSDFCenterIsDeeplyInside(t *testing.T) {
	q := ChromeQuad{Rect: geom.Rect{X: 0, Y: 0, W: 100, H: 40}, CornerRadius: 8}
	d := SDF(q, geom.Point{X: 50, Y: 20})
	if d >= 0 {
		t.Fatalf("expected negative (inside) distance at center, got %f", d)
	}
}

func TestSDFFarOutsideIsPositive(t *testing.T) {
	q := ChromeQuad{Rect: geom.Rect{X: 0, Y: 0, W: 100, H: 40}, CornerRadius: 8}
	d := SDF(q, geom.Point{X: 500, Y: 500})
	if d <= 0 {
		t.Fatalf("expected positive (outside) distance far from quad, got %f", d)
	}
}

func TestCoversMatchesFlatRectAwayFromCorners(t *testing.T) {
	q := ChromeQuad{Rect: geom.Rect{X: 0, Y: 0, W: 100, H: 40}, CornerRadius: 8}
	if !Covers(q, geom.Point{X: 50, Y: 20}) {
		t.Fatal("expected center point covered")
	}
	if Covers(q, geom.Point{X: 1000, Y: 1000}) {
		t.Fatal("expected far point not covered")
	}
}

func TestCoversExcludesSharpCornerRoundedAway(t *testing.T) {
	q := ChromeQuad{Rect: geom.Rect{X: 0, Y: 0, W: 20, H: 20}, CornerRadius: 8}
	// The exact corner of the bounding box falls outside the rounded
	// boundary even though it is within the flat rectangle.
	if Covers(q, geom.Point{X: 0, Y: 0}) {
		t.Fatal("expected the sharp bounding-box corner to be excluded by rounding")
	}
}
