package scroll

import (
	"testing"
	"time"

	"github.com/veloterm/veloterm/internal/geom"
)

func TestApplyLineDeltaClamps(t *testing.T) {
	s := New()
	now := time.Now()
	s.ApplyLineDelta(10, 100, now)
	if s.TargetOffset != 10 {
		t.Fatalf("expected target 10, got %d", s.TargetOffset)
	}
	s.ApplyLineDelta(1000, 100, now)
	if s.TargetOffset != 100 {
		t.Fatalf("expected clamp to 100, got %d", s.TargetOffset)
	}
	s.ApplyLineDelta(-10000, 100, now)
	if s.TargetOffset != 0 {
		t.Fatalf("expected clamp to 0, got %d", s.TargetOffset)
	}
}

// Grounded on S4 from spec.md §8 (history=100, ApplyLineDelta(10,100)):
// the ease converges toward target within a handful of 40ms ticks,
// getting monotonically closer every tick.
func TestScrollEaseConvergesWithinFewTicks(t *testing.T) {
	s := New()
	now := time.Now()
	s.ApplyLineDelta(10, 100, now)
	if s.TargetOffset != 10 || s.CurrentOffset != 0 {
		t.Fatalf("unexpected initial state: target=%d current=%v", s.TargetOffset, s.CurrentOffset)
	}

	prev := s.CurrentOffset
	for i := 0; i < 3; i++ {
		s.Tick(40 * time.Millisecond)
		if s.CurrentOffset <= prev {
			t.Fatalf("tick %d: expected current offset to increase, went from %v to %v", i, prev, s.CurrentOffset)
		}
		if s.CurrentOffset > 10 {
			t.Fatalf("tick %d: current offset overshot target: %v", i, s.CurrentOffset)
		}
		prev = s.CurrentOffset
	}
	if prev < 7 {
		t.Fatalf("expected substantial convergence after 3 ticks (120ms), got %v", prev)
	}
}

func TestTickConvergesMonotonically(t *testing.T) {
	s := New()
	now := time.Now()
	s.ApplyLineDelta(50, 1000, now)

	prevDiff := float64(50)
	for i := 0; i < 20; i++ {
		s.Tick(16 * time.Millisecond)
		diff := float64(s.TargetOffset) - s.CurrentOffset
		if diff < 0 {
			diff = -diff
		}
		if diff > prevDiff+1e-9 {
			t.Fatalf("tick %d: diff grew from %v to %v", i, prevDiff, diff)
		}
		prevDiff = diff
	}
}

func TestTickStopsWhenConverged(t *testing.T) {
	s := New()
	now := time.Now()
	s.ApplyLineDelta(1, 10, now)
	for i := 0; i < 200; i++ {
		if !s.Tick(16 * time.Millisecond) {
			return
		}
	}
	t.Fatal("expected Tick to report convergence within 200 ticks")
}

func TestSnapToBottom(t *testing.T) {
	s := New()
	now := time.Now()
	s.ApplyLineDelta(20, 100, now)
	s.Tick(40 * time.Millisecond)
	s.SnapToBottom()
	if s.TargetOffset != 0 || s.CurrentOffset != 0 {
		t.Fatalf("expected both offsets reset to 0, got target=%d current=%v", s.TargetOffset, s.CurrentOffset)
	}
}

func TestScrollbarThumbRectNoneWithoutHistory(t *testing.T) {
	s := New()
	pane := geom.Rect{X: 0, Y: 0, W: 100, H: 200}
	_, ok := ScrollbarThumbRect(s, pane, 4, 40, 0)
	if ok {
		t.Fatal("expected no thumb when history_size == 0")
	}
}

func TestScrollbarThumbRectMinimumHeight(t *testing.T) {
	s := New()
	pane := geom.Rect{X: 0, Y: 0, W: 100, H: 200}
	thumb, ok := ScrollbarThumbRect(s, pane, 4, 10, 100000)
	if !ok {
		t.Fatal("expected a thumb rect")
	}
	if thumb.H < minThumbHeightPx {
		t.Fatalf("expected thumb height >= %d, got %v", minThumbHeightPx, thumb.H)
	}
}

func TestScrollbarAlphaFadesOut(t *testing.T) {
	s := New()
	now := time.Now()
	s.touch(now)

	if a := ScrollbarAlpha(s, now); a != baseAlpha {
		t.Fatalf("expected base alpha immediately after activity, got %v", a)
	}
	if a := ScrollbarAlpha(s, now.Add(1*time.Second)); a != baseAlpha {
		t.Fatalf("expected base alpha within hold window, got %v", a)
	}
	mid := ScrollbarAlpha(s, now.Add(1650*time.Millisecond))
	if mid <= 0 || mid >= baseAlpha {
		t.Fatalf("expected partially faded alpha mid-fade, got %v", mid)
	}
	if a := ScrollbarAlpha(s, now.Add(2*time.Second)); a != 0 {
		t.Fatalf("expected zero alpha after fade window, got %v", a)
	}
}
