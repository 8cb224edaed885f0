// Package render implements the Render Composer (spec.md §4.7, C7):
// cell-instance generation from a pane's grid plus the C4/C9/C11
// overlays, scissor-rect-as-data, a rounded-rect SDF overlay pass, and
// (since this repository has no real GPU backend — wgpu remains out of
// scope per spec.md §1) a software ANSI compositor that renders the
// same composed data, grounded on the teacher's
// buildANSI/colorToANSI/renderGlyphLine batched-SGR-run approach.
package render

import "github.com/veloterm/veloterm/internal/geom"

// CursorShape is the active cursor's rendering style (spec.md §3).
type CursorShape int

const (
	CursorBlock CursorShape = iota
	CursorBeam
	CursorUnderline
	CursorHollow
)

// CellFlags is the additive bitfield carried by GridCell and
// CellInstance (spec.md §3: "Flags are additive; cursor+selected
// coexist (cursor wins in shader)").
type CellFlags uint32

const (
	FlagHasGlyph CellFlags = 1 << iota
	FlagIsCursor
	// CursorShape occupies 2 bits starting here.
	flagCursorShapeBit0
	flagCursorShapeBit1
	FlagUnderline
	FlagStrikethrough
	FlagSelected
	FlagSearchMatch
	FlagSearchMatchActive
)

const cursorShapeMask = flagCursorShapeBit0 | flagCursorShapeBit1

// WithCursorShape returns flags with the 2-bit cursor-shape field set.
func (f CellFlags) WithCursorShape(shape CursorShape) CellFlags {
	f &^= cursorShapeMask
	f |= CellFlags(shape) << 2 // bit 2 is flagCursorShapeBit0
	return f
}

// CursorShapeOf extracts the 2-bit cursor-shape field.
func (f CellFlags) CursorShapeOf() CursorShape {
	return CursorShape((f & cursorShapeMask) >> 2)
}

// GridCell is the render-independent cell representation the Render
// Composer overlays onto before generating GPU instances (spec.md §3).
type GridCell struct {
	Char  rune
	FG    geom.Color
	BG    geom.Color
	Flags CellFlags
}

// CellInstance is the GPU-facing, layout-stable instance record
// (spec.md §3). Partial writes index by row*cols*stride; Go has no
// direct analog to that byte-offset contract, so the instance buffer
// here is just a flat slice the caller indexes the same way.
type CellInstance struct {
	GridCol, GridRow uint16
	AtlasU, AtlasV   float32
	AtlasW, AtlasH   float32
	FG, BG           geom.Color
	Flags            CellFlags
}

// GlyphLookup resolves a rune to its atlas UV rect and width-in-cells,
// decoupling this package from a concrete atlas.Atlas so tests can
// supply a stub.
type GlyphLookup interface {
	UV(ch rune) (u, v, w, h float32, widthInCells int, ok bool)
}
