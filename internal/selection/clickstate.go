package selection

import "time"

const (
	clickTimeWindow     = 300 * time.Millisecond
	clickDistanceLimitX = 5.0
)

// MouseState tracks click-count and drag bookkeeping for a pane
// (spec.md §3 MouseSelectionState).
type MouseState struct {
	ClickCount    int
	LastClickTime time.Time
	LastClickPos  [2]float32 // pixel position, for the 5px click-count radius
	Dragging      bool
	DragOrigin    Position
}

// NewMouseState returns a zeroed MouseState (click_count starts at 0;
// the first click registers as count 1).
func NewMouseState() *MouseState {
	return &MouseState{}
}

// RegisterClick applies the click-count policy (spec.md §4.4): a click
// within 300ms of the previous click AND within 5px of its position
// increments the count (1→2→3); otherwise resets to 1. Counts above 3
// reset to 1. Returns the resulting click count and the Kind it maps
// to (1=Range, 2=Word, 3=Line).
func (m *MouseState) RegisterClick(pos [2]float32, now time.Time) (count int, kind Kind) {
	withinTime := !m.LastClickTime.IsZero() && now.Sub(m.LastClickTime) <= clickTimeWindow
	withinDistance := withinTime && dist(m.LastClickPos, pos) <= clickDistanceLimitX

	if withinTime && withinDistance {
		m.ClickCount++
	} else {
		m.ClickCount = 1
	}
	if m.ClickCount > 3 {
		m.ClickCount = 1
	}

	m.LastClickTime = now
	m.LastClickPos = pos

	return m.ClickCount, kindForCount(m.ClickCount)
}

func kindForCount(count int) Kind {
	switch count {
	case 2:
		return Word
	case 3:
		return Line
	default:
		return Range
	}
}

func dist(a, b [2]float32) float32 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}
