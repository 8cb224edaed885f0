// Package scroll implements the per-pane smooth-scroll engine (spec.md
// §4.3, C3): target/current offset with eased interpolation, scrollbar
// geometry, and activity-based fade-out.
package scroll

import (
	"math"
	"time"

	"github.com/veloterm/veloterm/internal/geom"
)

// decayK is chosen so tick's exponential decay reaches ~90% convergence
// in ~80ms: 1 - exp(-k*0.08) = 0.9  =>  k = -ln(0.1)/0.08.
const decayK = 28.78

const (
	minThumbHeightPx = 20
	trackWidthPx     = 6
	fadeHoldSeconds  = 1.5
	fadeOutSeconds   = 0.3
	baseAlpha        = 0.3
)

// State is one pane's scroll state (spec.md §3 ScrollState).
type State struct {
	TargetOffset   int
	CurrentOffset  float64
	LastActivity   time.Time
	Dragging       bool
	DragOriginY    float32
	DragOriginOff  int
}

// New creates a State with no activity recorded yet.
func New() *State {
	return &State{}
}

func (s *State) touch(now time.Time) {
	s.LastActivity = now
}

// ApplyLineDelta nudges TargetOffset by round(d) lines, clamped to
// [0, historySize], and records activity for scrollbar fade timing.
func (s *State) ApplyLineDelta(d float64, historySize int, now time.Time) {
	s.TargetOffset = clampInt(s.TargetOffset+int(math.Round(d)), 0, historySize)
	s.touch(now)
}

// ApplyPixelDelta converts a pixel delta (trackpad) to lines using the
// cell height and applies it immediately to both target and current
// offset (no easing), matching spec.md's "for trackpads" carve-out.
func (s *State) ApplyPixelDelta(dPx float64, cellH float64, historySize int, now time.Time) {
	if cellH <= 0 {
		cellH = 1
	}
	lines := dPx / cellH
	next := clampInt(s.TargetOffset+int(math.Round(lines)), 0, historySize)
	s.TargetOffset = next
	s.CurrentOffset = float64(next)
	s.touch(now)
}

// Tick eases CurrentOffset toward TargetOffset using exponential decay.
// Returns true while animation should continue (the caller should
// schedule another redraw).
func (s *State) Tick(dt time.Duration) bool {
	target := float64(s.TargetOffset)
	diff := target - s.CurrentOffset
	if diff == 0 {
		return false
	}
	factor := 1 - math.Exp(-decayK*dt.Seconds())
	s.CurrentOffset += diff * factor
	if math.Abs(target-s.CurrentOffset) <= 0.5 {
		s.CurrentOffset = target
		return false
	}
	return true
}

// SnapToBottom resets both target and current offset to 0 — called on
// any keyboard input the PTY would receive (spec.md §4.3).
func (s *State) SnapToBottom() {
	s.TargetOffset = 0
	s.CurrentOffset = 0
}

// CurrentLineOffset returns the rounded current offset, fed to the
// terminal model's display-offset setter every frame.
func (s *State) CurrentLineOffset() int {
	return int(math.Round(s.CurrentOffset))
}

// ScrollbarThumbRect computes the scrollbar thumb's rect within
// paneRect, or (Rect{}, false) when there is no history to scroll.
func ScrollbarThumbRect(s *State, paneRect geom.Rect, padding float32, visibleRows, totalRows int) (geom.Rect, bool) {
	if totalRows <= 0 {
		return geom.Rect{}, false
	}
	track := geom.Rect{
		X: paneRect.X + paneRect.W - padding - trackWidthPx,
		Y: paneRect.Y + padding,
		W: trackWidthPx,
		H: paneRect.H - 2*padding,
	}
	if track.H <= 0 {
		return geom.Rect{}, false
	}

	frac := float64(visibleRows) / float64(totalRows)
	if frac > 1 {
		frac = 1
	}
	thumbH := float32(frac) * track.H
	if thumbH < minThumbHeightPx {
		thumbH = minThumbHeightPx
	}
	if thumbH > track.H {
		thumbH = track.H
	}

	// offset 0 -> bottom of track; historySize (TargetOffset max) ->
	// top of track.
	travel := track.H - thumbH
	var posFrac float64
	if totalRows > 0 {
		posFrac = float64(s.CurrentOffset) / float64(totalRows)
	}
	if posFrac < 0 {
		posFrac = 0
	}
	if posFrac > 1 {
		posFrac = 1
	}
	y := track.Y + track.H - thumbH - float32(posFrac)*travel

	return geom.Rect{X: track.X, Y: y, W: trackWidthPx, H: thumbH}, true
}

// ScrollbarAlpha returns the scrollbar's current opacity based on time
// since the last activity: 0.3 for 1.5s, fading linearly to 0.0 over
// the next 0.3s, 0.0 thereafter.
func ScrollbarAlpha(s *State, now time.Time) float32 {
	if s.LastActivity.IsZero() {
		return 0
	}
	elapsed := now.Sub(s.LastActivity).Seconds()
	if elapsed <= fadeHoldSeconds {
		return baseAlpha
	}
	fadeElapsed := elapsed - fadeHoldSeconds
	if fadeElapsed >= fadeOutSeconds {
		return 0
	}
	frac := 1 - fadeElapsed/fadeOutSeconds
	return float32(baseAlpha * frac)
}

// HitResult identifies what part of the scrollbar a point landed on.
type HitResult int

const (
	HitNone HitResult = iota
	HitTrack
	HitThumb
)

// ScrollbarHitTest classifies a point against the pane's scrollbar.
func ScrollbarHitTest(s *State, point geom.Point, paneRect geom.Rect, padding float32, visibleRows, totalRows int) HitResult {
	thumb, ok := ScrollbarThumbRect(s, paneRect, padding, visibleRows, totalRows)
	track := geom.Rect{
		X: paneRect.X + paneRect.W - padding - trackWidthPx,
		Y: paneRect.Y + padding,
		W: trackWidthPx,
		H: paneRect.H - 2*padding,
	}
	if !track.Contains(point) {
		return HitNone
	}
	if ok && thumb.Contains(point) {
		return HitThumb
	}
	return HitTrack
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
