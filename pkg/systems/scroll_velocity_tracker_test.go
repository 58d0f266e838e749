package systems

import (
	"math"
	"testing"
)

// TestScrollVelocityTracker 速度等于相邻两次位置之差，不做平滑
func TestScrollVelocityTracker(t *testing.T) {
	tracker := NewScrollVelocityTracker(0)

	steps := []struct {
		position float64
		want     float64
	}{
		{100, 100},
		{130, 30},
		{130, 0},
		{90, -40},
		{1000, 910},
	}

	for i, s := range steps {
		got := tracker.OnScroll(s.position)
		if got != s.want {
			t.Errorf("step %d: OnScroll(%v) = %v, want %v", i, s.position, got, s.want)
		}
		if tracker.Velocity() != s.want {
			t.Errorf("step %d: Velocity() = %v, want %v", i, tracker.Velocity(), s.want)
		}
		if tracker.LastPosition() != s.position {
			t.Errorf("step %d: LastPosition() = %v, want %v", i, tracker.LastPosition(), s.position)
		}
	}
}

// TestScrollVelocityTrackerIgnoresNonFinite 非有限位置被忽略，状态不变
func TestScrollVelocityTrackerIgnoresNonFinite(t *testing.T) {
	tracker := NewScrollVelocityTracker(50)
	tracker.OnScroll(80)

	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := tracker.OnScroll(bad); got != 30 {
			t.Errorf("OnScroll(%v) = %v, want previous estimate 30", bad, got)
		}
		if tracker.LastPosition() != 80 {
			t.Errorf("LastPosition() = %v after OnScroll(%v), want 80", tracker.LastPosition(), bad)
		}
	}

	// 差值溢出同样忽略
	tracker = NewScrollVelocityTracker(-math.MaxFloat64)
	if got := tracker.OnScroll(math.MaxFloat64); got != 0 {
		t.Errorf("overflowing delta: OnScroll() = %v, want 0", got)
	}
}

// TestNewScrollVelocityTrackerNonFiniteInitial 非有限初始位置按 0 处理
func TestNewScrollVelocityTrackerNonFiniteInitial(t *testing.T) {
	tracker := NewScrollVelocityTracker(math.NaN())
	if got := tracker.OnScroll(25); got != 25 {
		t.Errorf("OnScroll(25) = %v, want 25", got)
	}
}
