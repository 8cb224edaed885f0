// Package atlas implements the glyph atlas (spec.md §4.1, C1): it
// rasterizes a monospace font into a single GPU-ready texture and hands
// back per-glyph UV rects and advance metrics.
//
// Packing is a shelf allocator grounded on
// other_examples/…imgui-font_atlas.go's CustomRect/IsPacked model.
// Rasterization uses golang.org/x/image/font/sfnt + font/opentype when a
// font file is configured; the in-binary fallback is
// golang.org/x/image/font/basicfont.Face7x13, which satisfies "a bundled
// font MUST be embedded" without shipping a font asset of our own.
package atlas

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ErrFontNotFound is returned when every entry in the fallback chain
// fails to resolve.
var ErrFontNotFound = errors.New("atlas: no font in the fallback chain could be resolved")

// ErrSizeOutOfRange is returned for size_px outside [6, 256].
var ErrSizeOutOfRange = errors.New("atlas: size_px out of range [6, 256]")

const (
	minSizePx = 6
	maxSizePx = 256
	glyphPad  = 2 // 2px padding ring per glyph, spec.md §4.1
	minAtlas  = 512
)

// builtinFallbackChain is resolved in order when the requested family
// can't be found. "built-in chain" per spec.md §4.1; since no real font
// assets ship with this repository, every named entry resolves to the
// same in-binary basicfont face, but the chain and its ordering are
// preserved so a real deployment can drop in font files under these
// names without touching call sites.
var builtinFallbackChain = []string{
	"JetBrains Mono",
	"Fira Code",
	"SF Mono",
	"monospace",
}

// GlyphInfo is the per-glyph metrics handed to the render composer.
type GlyphInfo struct {
	U, V, W, H    float32 // UV rect within the atlas texture, normalized [0,1]
	Advance       float32 // pixels
	BearingX      float32
	BearingY      float32
	WidthInCells  int // 1 or 2
}

// FontSource maps a family name to a parsed sfnt font, or reports that
// it has none so resolution can fall through the chain. Implementations
// live in the config loader / embedder layer; a nil FontSource (or one
// that never resolves) makes every request fall through to the
// in-binary bundled fallback.
type FontSource interface {
	Resolve(family string) (*sfnt.Font, bool)
}

// NoFontSource resolves nothing; every Atlas falls back to the bundled
// basicfont face. Useful for headless/test environments.
type NoFontSource struct{}

// Resolve implements FontSource.
func (NoFontSource) Resolve(string) (*sfnt.Font, bool) { return nil, false }

type rect struct {
	x, y, w, h int
}

// Atlas rasterizes a monospace font into one texture addressable by
// character.
type Atlas struct {
	mu sync.RWMutex

	family     string
	sizePx     int
	scale      float64
	usedFamily string // the name that actually resolved (for diagnostics)

	face       font.Face
	subpixel   bool
	cellW      float32
	cellH      float32

	texW, texH int
	pixels     []byte // single-channel coverage, texW*texH bytes
	glyphs     map[rune]GlyphInfo

	shelfY, shelfH, shelfX int // packer state
}

// New resolves family through the fallback chain and rasterizes the
// printable ASCII set plus VeloTerm's chrome glyphs.
func New(src FontSource, family string, sizePx int, scaleFactor float64) (*Atlas, error) {
	if sizePx < minSizePx || sizePx > maxSizePx {
		return nil, fmt.Errorf("%w: got %d", ErrSizeOutOfRange, sizePx)
	}
	if scaleFactor <= 0 {
		scaleFactor = 1
	}

	a := &Atlas{
		family: family,
		sizePx: sizePx,
		scale:  scaleFactor,
		glyphs: make(map[rune]GlyphInfo),
	}

	if err := a.resolveFace(src, family); err != nil {
		return nil, err
	}
	a.computeCellSize()
	a.texW, a.texH = minAtlas, minAtlas
	a.pixels = make([]byte, a.texW*a.texH)
	a.shelfX, a.shelfY, a.shelfH = 0, 0, 0

	if err := a.rasterizeInitialSet(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Atlas) resolveFace(src FontSource, requested string) error {
	names := append([]string{requested}, builtinFallbackChain...)
	if src != nil {
		for _, name := range names {
			if name == "" {
				continue
			}
			if fnt, ok := src.Resolve(name); ok {
				face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
					Size:    float64(a.sizePx) * a.scale,
					DPI:     72,
					Hinting: font.HintingFull,
				})
				if err == nil {
					a.face = face
					a.usedFamily = name
					a.subpixel = false
					return nil
				}
			}
		}
	}

	// Every fallback failed (or no FontSource was given): use the
	// in-binary bundled face. basicfont.Face7x13 is a fixed 7x13 bitmap
	// face used at its native size: computeCellSize derives the cell from
	// its metrics and the scale factor only, so with this face the cell
	// geometry does not follow the configured size_px.
	a.face = basicfont.Face7x13
	a.usedFamily = "veloterm-bundled"
	a.subpixel = false
	return nil
}

func (a *Atlas) computeCellSize() {
	metrics := a.face.Metrics()
	ascent := fixedToFloat(metrics.Ascent)
	descent := fixedToFloat(metrics.Descent)

	adv, ok := a.face.GlyphAdvance('M')
	advPx := float32(7)
	if ok {
		advPx = fixedToFloat(adv)
	}

	lineHeightMul := float32(1.5)
	a.cellW = advPx * float32(a.scale)
	a.cellH = float32(math.Round(float64((ascent+descent)*float32(a.scale)*lineHeightMul)))
	if a.cellH < 1 {
		a.cellH = 1
	}
	if a.cellW < 1 {
		a.cellW = 1
	}
}

func fixedToFloat(f fixed.Int26_6) float32 {
	return float32(f) / 64
}

// printableASCII plus VeloTerm's chrome glyphs (spec.md §4.1).
var initialGlyphSet = buildInitialGlyphSet()

func buildInitialGlyphSet() []rune {
	runes := make([]rune, 0, 96+8)
	for r := rune(0x20); r <= 0x7E; r++ {
		runes = append(runes, r)
	}
	runes = append(runes, '×', '▸', '●', '│', '─', '┌', '┐', '└', '┘')
	return runes
}

func (a *Atlas) rasterizeInitialSet() error {
	for _, r := range initialGlyphSet {
		if _, err := a.rasterizeGlyph(r); err != nil {
			return err
		}
	}
	return nil
}

// rasterizeGlyph packs and rasterizes ch into the texture, recording its
// GlyphInfo. Must be called with a.mu held for writing (callers already
// hold it via New/GlyphInfoFor's lazy path).
func (a *Atlas) rasterizeGlyph(ch rune) (GlyphInfo, error) {
	cw, ch2 := int(math.Ceil(float64(a.cellW))), int(math.Ceil(float64(a.cellH)))
	slotW, slotH := cw+2*glyphPad, ch2+2*glyphPad

	r, err := a.allocSlot(slotW, slotH)
	if err != nil {
		return GlyphInfo{}, err
	}

	dr, mask, maskp, advance, ok := a.face.Glyph(fixed.P(r.x+glyphPad, r.y+glyphPad+int(a.cellH)*3/4), ch)
	width := 1
	if runewidth.RuneWidth(ch) == 2 {
		width = 2
	}
	if ok {
		for y := dr.Min.Y; y < dr.Max.Y && y < a.texH; y++ {
			for x := dr.Min.X; x < dr.Max.X && x < a.texW; x++ {
				if x < 0 || y < 0 {
					continue
				}
				_, _, _, al := mask.At(maskp.X+(x-dr.Min.X), maskp.Y+(y-dr.Min.Y)).RGBA()
				a.pixels[y*a.texW+x] = byte(al >> 8)
			}
		}
	}

	info := GlyphInfo{
		U:            float32(r.x) / float32(a.texW),
		V:            float32(r.y) / float32(a.texH),
		W:            float32(slotW) / float32(a.texW),
		H:            float32(slotH) / float32(a.texH),
		Advance:      fixedToFloat(advance),
		BearingX:     float32(dr.Min.X - r.x),
		BearingY:     float32(dr.Min.Y - r.y),
		WidthInCells: width,
	}
	a.glyphs[ch] = info
	return info, nil
}

// allocSlot is a simple shelf packer: glyphs are placed left-to-right in
// the current shelf; a new, taller shelf starts when the row is full.
// Grounded on other_examples' CustomRect packed/unpacked bookkeeping,
// simplified to a single-pass shelf allocator (no re-pack on overflow —
// growing the atlas is handled by the caller via rebuild with a larger
// texture, matching spec.md's "Additional glyphs may be rasterized
// lazily" contract backed by a bounded set).
func (a *Atlas) allocSlot(w, h int) (rect, error) {
	if a.shelfX+w > a.texW {
		a.shelfX = 0
		a.shelfY += a.shelfH
		a.shelfH = 0
	}
	if a.shelfY+h > a.texH {
		return rect{}, fmt.Errorf("atlas: texture full (%dx%d)", a.texW, a.texH)
	}
	r := rect{x: a.shelfX, y: a.shelfY, w: w, h: h}
	a.shelfX += w
	if h > a.shelfH {
		a.shelfH = h
	}
	return r, nil
}

// GlyphInfo returns the metrics for ch, rasterizing it on demand (and
// caching the result) if it hasn't been seen before. O(1) amortized.
func (a *Atlas) GlyphInfo(ch rune) (GlyphInfo, bool) {
	a.mu.RLock()
	info, ok := a.glyphs[ch]
	a.mu.RUnlock()
	if ok {
		return info, true
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if info, ok := a.glyphs[ch]; ok {
		return info, true
	}
	info, err := a.rasterizeGlyph(ch)
	if err != nil {
		return GlyphInfo{}, false
	}
	return info, true
}

// CellSize returns the fixed-pitch cell geometry in pixels.
func (a *Atlas) CellSize() (float32, float32) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cellW, a.cellH
}

// TextureSize returns the current atlas texture dimensions in pixels.
func (a *Atlas) TextureSize() (int, int) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.texW, a.texH
}

// Pixels returns the single-channel coverage buffer backing the atlas
// texture. Callers must not retain the slice across a Rebuild.
func (a *Atlas) Pixels() []byte {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.pixels
}

// Subpixel reports whether the atlas was built in subpixel (multi-
// channel) mode; consumed by the fragment-stage uniform flag (§4.1).
func (a *Atlas) Subpixel() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.subpixel
}

// UsedFamily returns the font family name that actually resolved
// (which may be a fallback, or the bundled face).
func (a *Atlas) UsedFamily() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.usedFamily
}

// Rebuild produces a new Atlas for the given parameters. Per spec.md
// §4.1, "callers must swap atomically so no frame references a
// destroyed texture" — Rebuild therefore returns a brand-new *Atlas
// rather than mutating in place; the caller swaps its pointer and lets
// the old atlas be garbage collected once the in-flight frame referring
// to it completes.
func Rebuild(src FontSource, family string, sizePx int, scaleFactor float64) (*Atlas, error) {
	return New(src, family, sizePx, scaleFactor)
}

// parseOpentypeBytes is a small helper for FontSource implementations
// that load font files from disk.
func parseOpentypeBytes(b []byte) (*sfnt.Font, error) {
	return sfnt.Parse(b)
}
