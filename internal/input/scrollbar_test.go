package input

import (
	"testing"

	"github.com/veloterm/veloterm/internal/geom"
)

func TestScrollbarThumbPressStartsDrag(t *testing.T) {
	var s ScrollbarDragState
	track := ScrollbarTrack{Rect: geom.Rect{X: 0, Y: 0, W: 10, H: 100}, ThumbY: 40, ThumbH: 20, HistoryLen: 1000}

	eff := s.OnMousePressed(geom.Point{X: 5, Y: 50}, track, 500, 20)
	if eff.Kind != ScrollbarNoEffect || !s.Dragging {
		t.Fatalf("expected thumb press to start a drag with no immediate effect, got %+v dragging=%v", eff, s.Dragging)
	}
}

func TestScrollbarTrackClickAbovePagesUp(t *testing.T) {
	var s ScrollbarDragState
	track := ScrollbarTrack{Rect: geom.Rect{X: 0, Y: 0, W: 10, H: 100}, ThumbY: 40, ThumbH: 20, HistoryLen: 1000}

	eff := s.OnMousePressed(geom.Point{X: 5, Y: 10}, track, 500, 24)
	if eff.Kind != ScrollbarPageOffset || eff.NewOffset != 524 {
		t.Fatalf("expected a page-up move above the thumb, got %+v", eff)
	}
	if s.Dragging {
		t.Fatal("expected track click to not start a drag")
	}
}

func TestScrollbarTrackClickBelowPagesDown(t *testing.T) {
	var s ScrollbarDragState
	track := ScrollbarTrack{Rect: geom.Rect{X: 0, Y: 0, W: 10, H: 100}, ThumbY: 40, ThumbH: 20, HistoryLen: 1000}

	eff := s.OnMousePressed(geom.Point{X: 5, Y: 90}, track, 500, 24)
	if eff.Kind != ScrollbarPageOffset || eff.NewOffset != 476 {
		t.Fatalf("expected a page-down move below the thumb, got %+v", eff)
	}
}

func TestScrollbarDragUpdatesOffsetProportionally(t *testing.T) {
	var s ScrollbarDragState
	track := ScrollbarTrack{Rect: geom.Rect{X: 0, Y: 0, W: 10, H: 100}, ThumbY: 40, ThumbH: 20, HistoryLen: 1000}

	s.OnMousePressed(geom.Point{X: 5, Y: 50}, track, 500, 20)
	eff := s.OnMouseMoved(geom.Point{X: 5, Y: 60}, track)
	if eff.Kind != ScrollbarSetOffset {
		t.Fatalf("expected a set-offset effect while dragging, got %+v", eff)
	}
	// deltaY=10 over a 100px track with 1000 lines => 100 lines;
	// dragging down moves toward the live view, so offset decreases.
	if eff.NewOffset != 400 {
		t.Fatalf("expected offset to decrease by 100 (to 400), got %d", eff.NewOffset)
	}
}

func TestScrollbarOffsetClampsToHistoryBounds(t *testing.T) {
	var s ScrollbarDragState
	track := ScrollbarTrack{Rect: geom.Rect{X: 0, Y: 0, W: 10, H: 100}, ThumbY: 0, ThumbH: 20, HistoryLen: 1000}

	s.OnMousePressed(geom.Point{X: 5, Y: 10}, track, 950, 20)
	eff := s.OnMouseMoved(geom.Point{X: 5, Y: -500}, track)
	if eff.NewOffset != 1000 {
		t.Fatalf("expected offset clamped to HistoryLen=1000, got %d", eff.NewOffset)
	}
}

func TestScrollbarReleaseEndsDrag(t *testing.T) {
	var s ScrollbarDragState
	track := ScrollbarTrack{Rect: geom.Rect{X: 0, Y: 0, W: 10, H: 100}, ThumbY: 40, ThumbH: 20, HistoryLen: 1000}
	s.OnMousePressed(geom.Point{X: 5, Y: 50}, track, 500, 20)
	s.OnMouseReleased()
	if s.Dragging {
		t.Fatal("expected release to clear dragging state")
	}
}
