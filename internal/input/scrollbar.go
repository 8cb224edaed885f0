package input

import "github.com/veloterm/veloterm/internal/geom"

// ScrollbarTrack describes one pane's scrollbar geometry for hit
// testing (spec.md §4.8 step 3).
type ScrollbarTrack struct {
	Rect       geom.Rect // the full track
	ThumbY     float32   // thumb top, in the same space as Rect
	ThumbH     float32
	HistoryLen int // total scrollable lines
}

// ScrollbarDragState is the scrollbar drag state machine: mouse-down
// on the thumb starts a drag (capturing start_y/start_offset); drag
// updates the offset by delta_y*history/track_h; click on the track
// above/below the thumb pages; release ends the drag.
type ScrollbarDragState struct {
	Dragging    bool
	StartY      float32
	StartOffset int
}

// ScrollbarEffectKind distinguishes the scrollbar dispatch outcomes.
type ScrollbarEffectKind int

const (
	ScrollbarNoEffect ScrollbarEffectKind = iota
	ScrollbarSetOffset
	ScrollbarPageOffset
)

// ScrollbarEffect is the result of one scrollbar dispatch step.
type ScrollbarEffect struct {
	Kind      ScrollbarEffectKind
	NewOffset int
}

// OnMousePressed starts a thumb drag if point lands on the thumb, or
// returns a page-move effect if it lands elsewhere on the track.
func (s *ScrollbarDragState) OnMousePressed(point geom.Point, track ScrollbarTrack, currentOffset, viewportRows int) ScrollbarEffect {
	thumbTop := track.Rect.Y + track.ThumbY
	thumbBottom := thumbTop + track.ThumbH

	if point.Y >= thumbTop && point.Y < thumbBottom {
		s.Dragging = true
		s.StartY = point.Y
		s.StartOffset = currentOffset
		return ScrollbarEffect{Kind: ScrollbarNoEffect}
	}

	page := viewportRows
	if page <= 0 {
		page = 1
	}
	if point.Y < thumbTop {
		return ScrollbarEffect{Kind: ScrollbarPageOffset, NewOffset: clampOffset(currentOffset+page, track.HistoryLen)}
	}
	return ScrollbarEffect{Kind: ScrollbarPageOffset, NewOffset: clampOffset(currentOffset-page, track.HistoryLen)}
}

// OnMouseMoved updates the offset while dragging the thumb.
func (s *ScrollbarDragState) OnMouseMoved(point geom.Point, track ScrollbarTrack) ScrollbarEffect {
	if !s.Dragging || track.Rect.H <= 0 {
		return ScrollbarEffect{Kind: ScrollbarNoEffect}
	}
	deltaY := point.Y - s.StartY
	deltaOffset := int(deltaY * float32(track.HistoryLen) / track.Rect.H)
	newOffset := clampOffset(s.StartOffset-deltaOffset, track.HistoryLen)
	return ScrollbarEffect{Kind: ScrollbarSetOffset, NewOffset: newOffset}
}

// OnMouseReleased ends the drag.
func (s *ScrollbarDragState) OnMouseReleased() {
	s.Dragging = false
}

func clampOffset(offset, historyLen int) int {
	if offset < 0 {
		return 0
	}
	if offset > historyLen {
		return historyLen
	}
	return offset
}
