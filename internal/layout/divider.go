package layout

import (
	"github.com/veloterm/veloterm/internal/geom"
)

// Divider describes one hit-testable divider between a Split's two
// children, in the coordinate space of a CalculateLayout call.
type Divider struct {
	Rect  geom.Rect
	Dir   SplitDir
	Node  *Node // the Split node this divider resizes
	Bounds geom.Rect // the Split node's own rect, for SetRatioOnNode
}

const dividerThicknessPx = 1

// CalculateDividers walks the tree alongside CalculateLayout and
// produces one Divider per Split, positioned at the boundary between
// its two children.
func (t *PaneTree) CalculateDividers(bounds geom.Rect, m Metrics) []Divider {
	var out []Divider
	collectDividers(t.Root, bounds, m, &out)
	return out
}

func collectDividers(n *Node, bounds geom.Rect, m Metrics, out *[]Divider) {
	if n == nil || n.IsLeaf {
		return
	}
	ratio := clampRatio(n.Dir, n.Ratio, bounds, m)

	var first, second, dividerRect geom.Rect
	if n.Dir == Vertical {
		splitX := ratio * float64(bounds.W)
		first = geom.Rect{X: bounds.X, Y: bounds.Y, W: float32(splitX), H: bounds.H}
		second = geom.Rect{X: bounds.X + float32(splitX), Y: bounds.Y, W: bounds.W - float32(splitX), H: bounds.H}
		dividerRect = geom.Rect{X: first.X + first.W - dividerThicknessPx/2, Y: bounds.Y, W: dividerThicknessPx, H: bounds.H}
	} else {
		splitY := ratio * float64(bounds.H)
		first = geom.Rect{X: bounds.X, Y: bounds.Y, W: bounds.W, H: float32(splitY)}
		second = geom.Rect{X: bounds.X, Y: bounds.Y + float32(splitY), W: bounds.W, H: bounds.H - float32(splitY)}
		dividerRect = geom.Rect{X: bounds.X, Y: first.Y + first.H - dividerThicknessPx/2, W: bounds.W, H: dividerThicknessPx}
	}

	*out = append(*out, Divider{Rect: dividerRect, Dir: n.Dir, Node: n, Bounds: bounds})
	collectDividers(n.First, first, m, out)
	collectDividers(n.Second, second, m, out)
}

// HitTestDivider returns the index of the divider within margin px of
// point, or -1 if none qualifies. When multiple dividers are within
// margin, the closest one wins.
func HitTestDivider(point geom.Point, dividers []Divider, margin float32) int {
	best := -1
	var bestDist float32
	for i, d := range dividers {
		expanded := d.Rect.Inset(-margin, -margin, -margin, -margin)
		if !expanded.Contains(point) {
			continue
		}
		c := d.Rect.Center()
		dist := distance(point.X, point.Y, c.X, c.Y)
		if best == -1 || dist < bestDist {
			best = i
			bestDist = dist
		}
	}
	return best
}

// DragPhase is the divider interaction state machine's state
// (spec.md §4.5).
type DragPhase int

const (
	Idle DragPhase = iota
	Hovering
	Dragging
)

// DragState tracks the divider-interaction state machine across
// cursor-moved / mouse-pressed / mouse-released events.
type DragState struct {
	Phase        DragPhase
	DividerIndex int
	OriginRatio  float64
	OriginPoint  geom.Point
}

// CursorIcon is the icon the render/compose layer should display.
type CursorIcon int

const (
	IconDefault CursorIcon = iota
	IconResizeH
	IconResizeV
	IconPointer
	IconText
)

// Effect is one outcome of an interaction-dispatch step.
type Effect struct {
	Kind       EffectKind
	Icon       CursorIcon
	NewRatio   float64
	FocusPane  PaneId
}

type EffectKind int

const (
	NoEffect EffectKind = iota
	EffectSetCursor
	EffectStartDrag
	EffectUpdateRatio
	EffectFocusPane
)

const dividerHitMarginPx = 8

// OnCursorMoved handles a mouse-move event against the divider state
// machine, returning the resulting effect.
func (d *DragState) OnCursorMoved(point geom.Point, dividers []Divider) Effect {
	if d.Phase == Dragging {
		div := dividers[d.DividerIndex]
		var delta float64
		if div.Dir == Vertical {
			delta = float64(point.X-d.OriginPoint.X) / float64(div.Bounds.W)
		} else {
			delta = float64(point.Y-d.OriginPoint.Y) / float64(div.Bounds.H)
		}
		return Effect{Kind: EffectUpdateRatio, NewRatio: d.OriginRatio + delta}
	}

	idx := HitTestDivider(point, dividers, dividerHitMarginPx)
	if idx == -1 {
		d.Phase = Idle
		return Effect{Kind: NoEffect}
	}
	d.Phase = Hovering
	d.DividerIndex = idx
	icon := IconResizeV
	if dividers[idx].Dir == Horizontal {
		icon = IconResizeH
	}
	return Effect{Kind: EffectSetCursor, Icon: icon}
}

// OnMousePressed begins a drag if currently hovering a divider.
func (d *DragState) OnMousePressed(point geom.Point, dividers []Divider) Effect {
	if d.Phase != Hovering {
		return Effect{Kind: NoEffect}
	}
	d.Phase = Dragging
	d.OriginPoint = point
	d.OriginRatio = dividers[d.DividerIndex].Node.Ratio
	return Effect{Kind: EffectStartDrag}
}

// OnMouseReleased ends an active drag, returning to Idle.
func (d *DragState) OnMouseReleased() Effect {
	if d.Phase == Dragging {
		d.Phase = Idle
		return Effect{Kind: NoEffect}
	}
	return Effect{Kind: NoEffect}
}
