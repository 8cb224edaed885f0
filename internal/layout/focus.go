package layout

import (
	"github.com/veloterm/veloterm/internal/geom"
)

// FocusDir is a spatial focus-navigation direction.
type FocusDir int

const (
	Up FocusDir = iota
	Down
	Left
	Right
)

// FocusDirection moves focus to the visible leaf whose rect center is
// nearest in the requested direction from the currently focused leaf's
// center (spatial nearest neighbor). No-op if no candidate qualifies.
func (t *PaneTree) FocusDirection(dir FocusDir, bounds geom.Rect, m Metrics) {
	rects := t.CalculateLayout(bounds, m)
	focusedRect, ok := rects[t.Focused]
	if !ok {
		return
	}
	fc := focusedRect.Center()
	fx, fy := fc.X, fc.Y

	var best PaneId
	var bestDist float32 = -1
	found := false

	for id, r := range rects {
		if id == t.Focused {
			continue
		}
		c := r.Center()
		cx, cy := c.X, c.Y
		if !inDirection(dir, fx, fy, cx, cy) {
			continue
		}
		d := distance(fx, fy, cx, cy)
		if !found || d < bestDist {
			found = true
			bestDist = d
			best = id
		}
	}

	if found {
		t.Focused = best
		t.Zoomed = nil
	}
}

func inDirection(dir FocusDir, fx, fy, cx, cy float32) bool {
	switch dir {
	case Up:
		return cy < fy
	case Down:
		return cy > fy
	case Left:
		return cx < fx
	case Right:
		return cx > fx
	default:
		return false
	}
}

func distance(ax, ay, bx, by float32) float32 {
	dx := ax - bx
	dy := ay - by
	return dx*dx + dy*dy // squared distance suffices for nearest-neighbor comparison
}
