// Package geom holds the small value types shared across the render and
// layout packages: colors and pixel rectangles.
package geom

// Color is a four-component RGBA color with each channel in [0, 1].
type Color struct {
	R, G, B, A float32
}

// RGBA constructs a Color from [0,1] components.
func RGBA(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// WithAlpha returns a copy of c with the alpha channel replaced.
func (c Color) WithAlpha(a float32) Color {
	c.A = a
	return c
}

// Point is a pixel coordinate.
type Point struct {
	X, Y float32
}

// Rect is an axis-aligned pixel rectangle with the origin at the top-left.
type Rect struct {
	X, Y, W, H float32
}

// Contains reports whether p lies within r (edges inclusive on the
// top/left, exclusive on the bottom/right, matching typical hit-test
// semantics for adjacent rectangles).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Inset shrinks r by the given per-edge amounts. Negative results clamp
// to a zero width or height anchored at the inset top-left corner
// (r.X+left, r.Y+top) rather than going negative, so callers never have
// to special-case an inverted rect.
func (r Rect) Inset(left, top, right, bottom float32) Rect {
	w := r.W - left - right
	h := r.H - top - bottom
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Rect{X: r.X + left, Y: r.Y + top, W: w, H: h}
}

// CenterX returns the horizontal midpoint of r.
func (r Rect) CenterX() float32 { return r.X + r.W/2 }

// CenterY returns the vertical midpoint of r.
func (r Rect) CenterY() float32 { return r.Y + r.H/2 }

// Center returns the midpoint of r.
func (r Rect) Center() Point { return Point{X: r.CenterX(), Y: r.CenterY()} }
