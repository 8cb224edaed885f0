package render

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/veloterm/veloterm/internal/geom"
)

// TintSelection blends base with the selection highlight color in
// linear RGB space (spec.md §4.7 step 4: "selection/search tint is
// blended in linear space, not sRGB, to avoid the washed-out look flat
// alpha-over produces on dark themes") and returns the tinted color at
// the given opacity in [0, 1].
func TintSelection(base, highlight geom.Color, opacity float32) geom.Color {
	return blendLinear(base, highlight, opacity)
}

// TintSearchMatch blends base with a search-match highlight color,
// using a stronger tint for the currently active match.
func TintSearchMatch(base, highlight geom.Color, active bool) geom.Color {
	opacity := float32(0.35)
	if active {
		opacity = 0.55
	}
	return blendLinear(base, highlight, opacity)
}

func blendLinear(base, tint geom.Color, t float32) geom.Color {
	if t <= 0 {
		return base
	}
	if t >= 1 {
		return tint.WithAlpha(base.A)
	}

	baseC := colorful.Color{R: float64(base.R), G: float64(base.G), B: float64(base.B)}
	tintC := colorful.Color{R: float64(tint.R), G: float64(tint.G), B: float64(tint.B)}

	blended := baseC.BlendLinearRgb(tintC, float64(t))

	return geom.Color{
		R: float32(blended.R),
		G: float32(blended.G),
		B: float32(blended.B),
		A: base.A,
	}
}
