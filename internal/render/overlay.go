package render

import (
	"math"

	"github.com/veloterm/veloterm/internal/geom"
)

// ChromeQuad is a pure-data description of a rounded-rect chrome
// element (tab bar, status bar, scrollbar thumb, search bar, divider
// highlight) consumed by the shader's SDF rounding pass (spec.md §4.7
// step 6). There is no GPU device in this repository, so this struct
// and SDF stand in for the vertex/uniform data a real renderer would
// upload; the ANSI compositor approximates the same quads as flat
// background runs.
type ChromeQuad struct {
	Rect         geom.Rect
	CornerRadius float32
	Fill         geom.Color
	BorderColor  geom.Color
	BorderWidth  float32
}

// SDF evaluates the signed distance from p to the rounded rectangle
// described by q, in the same pixel space as q.Rect. Negative values
// are inside the shape, zero is on the boundary, matching the
// conventional rounded-box SDF formula used by shader implementations.
func SDF(q ChromeQuad, p geom.Point) float32 {
	halfW := q.Rect.W / 2
	halfH := q.Rect.H / 2
	cx := q.Rect.CenterX()
	cy := q.Rect.CenterY()

	qx := abs32(p.X-cx) - halfW + q.CornerRadius
	qy := abs32(p.Y-cy) - halfH + q.CornerRadius

	outsideX := max32(qx, 0)
	outsideY := max32(qy, 0)
	outsideDist := float32(math.Sqrt(float64(outsideX*outsideX + outsideY*outsideY)))
	insideDist := min32(max32(qx, qy), 0)

	return outsideDist + insideDist - q.CornerRadius
}

// Covers reports whether p falls inside q's rounded boundary, the test
// chrome hit-detection uses instead of a plain rectangle contains
// check near the corners.
func Covers(q ChromeQuad, p geom.Point) bool {
	return SDF(q, p) <= 0
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
