package layout

import (
	"math"

	"github.com/veloterm/veloterm/internal/geom"
)

// Metrics carries the cell size and minimum pane size (in cells) used
// to clamp split ratios and derive divider geometry.
type Metrics struct {
	CellW, CellH     float32
	MinCols, MinRows int
}

func (m Metrics) minW() float32 {
	cols := m.MinCols
	if cols < 1 {
		cols = 1
	}
	return float32(cols) * m.CellW
}

func (m Metrics) minH() float32 {
	rows := m.MinRows
	if rows < 1 {
		rows = 1
	}
	return float32(rows) * m.CellH
}

// CalculateLayout computes pane rects for every leaf against bounds,
// clamping split ratios so no child falls below the minimum cell size
// (spec.md §4.5). Zero-size bounds clamp to 1x1.
func (t *PaneTree) CalculateLayout(bounds geom.Rect, m Metrics) map[PaneId]geom.Rect {
	if bounds.W <= 0 {
		bounds.W = 1
	}
	if bounds.H <= 0 {
		bounds.H = 1
	}
	out := make(map[PaneId]geom.Rect)
	layoutNode(t.Root, bounds, m, out)
	return out
}

func layoutNode(n *Node, bounds geom.Rect, m Metrics, out map[PaneId]geom.Rect) {
	if n == nil {
		return
	}
	if n.IsLeaf {
		out[n.Leaf] = bounds
		return
	}

	ratio := clampRatio(n.Dir, n.Ratio, bounds, m)

	if n.Dir == Vertical {
		splitX := float32(math.Round(ratio * float64(bounds.W)))
		first := geom.Rect{X: bounds.X, Y: bounds.Y, W: splitX, H: bounds.H}
		second := geom.Rect{X: bounds.X + splitX, Y: bounds.Y, W: bounds.W - splitX, H: bounds.H}
		layoutNode(n.First, first, m, out)
		layoutNode(n.Second, second, m, out)
	} else {
		splitY := float32(math.Round(ratio * float64(bounds.H)))
		first := geom.Rect{X: bounds.X, Y: bounds.Y, W: bounds.W, H: splitY}
		second := geom.Rect{X: bounds.X, Y: bounds.Y + splitY, W: bounds.W, H: bounds.H - splitY}
		layoutNode(n.First, first, m, out)
		layoutNode(n.Second, second, m, out)
	}
}

// clampRatio clamps ratio so neither child falls below the minimum
// size, given the available dimension for dir.
func clampRatio(dir SplitDir, ratio float64, bounds geom.Rect, m Metrics) float64 {
	var dim, minSize float32
	if dir == Vertical {
		dim, minSize = bounds.W, m.minW()
	} else {
		dim, minSize = bounds.H, m.minH()
	}
	if dim <= 0 {
		return 0.5
	}
	minRatio := float64(minSize / dim)
	if minRatio > 0.5 {
		minRatio = 0.5
	}
	if ratio < minRatio {
		ratio = minRatio
	}
	if ratio > 1-minRatio {
		ratio = 1 - minRatio
	}
	return ratio
}

// SetRatioOnNode applies and clamps newRatio on a split node, given the
// rect it currently occupies (from CalculateLayout). Callers locate the
// node via CalculateDividers.
func SetRatioOnNode(n *Node, newRatio float64, bounds geom.Rect, m Metrics) {
	if n == nil || n.IsLeaf {
		return
	}
	n.Ratio = clampRatio(n.Dir, newRatio, bounds, m)
}
