package app

import (
	"math"
	"testing"
)

// TestSmoothScrollerConverges 位置单调趋近目标并最终停住
func TestSmoothScrollerConverges(t *testing.T) {
	s := NewSmoothScroller(60, 10000)
	s.Nudge(300)

	if s.Target() != 300 {
		t.Fatalf("Target() = %v, want 300", s.Target())
	}

	moves := 0
	for i := 0; i < 600 && !s.Settled(); i++ {
		if _, moved := s.Update(); moved {
			moves++
		}
	}
	if !s.Settled() || s.Position() != 300 {
		t.Errorf("Position() = %v settled=%v, want 300 settled", s.Position(), s.Settled())
	}
	if moves < 2 {
		t.Errorf("moves = %d, want a multi-frame animation", moves)
	}

	if _, moved := s.Update(); moved {
		t.Error("settled scroller should not report movement")
	}
}

// TestSmoothScrollerClamp 目标位置限制在 [0, Max]
func TestSmoothScrollerClamp(t *testing.T) {
	s := NewSmoothScroller(60, 500)

	s.Nudge(-100)
	if s.Target() != 0 {
		t.Errorf("Target() = %v, want 0", s.Target())
	}
	s.Nudge(10000)
	if s.Target() != 500 {
		t.Errorf("Target() = %v, want 500", s.Target())
	}
	s.Nudge(math.NaN())
	if s.Target() != 500 {
		t.Errorf("NaN nudge changed target to %v", s.Target())
	}
	s.ScrollTo(120)
	if s.Target() != 120 {
		t.Errorf("ScrollTo(120): Target() = %v", s.Target())
	}
}
