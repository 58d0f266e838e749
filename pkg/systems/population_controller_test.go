package systems

import (
	"math"
	"testing"

	"github.com/koreacryo/icefx/pkg/components"
)

// TestIcePolicyTarget target = min(50, floor(|v| * 5))
func TestIcePolicyTarget(t *testing.T) {
	policy := IcePolicy{Cap: 50, Gain: 5}

	tests := []struct {
		velocity float64
		want     int
	}{
		{0, 0},
		{0.19, 0},
		{0.2, 1},
		{1, 5},
		{-1, 5},
		{3.7, 18},
		{-9.99, 49},
		{10, 50},
		{20, 50},
		{-1e6, 50},
		{math.NaN(), 0},
		{math.Inf(1), 0},
	}

	for _, tt := range tests {
		if got := policy.Target(tt.velocity); got != tt.want {
			t.Errorf("Target(%v) = %d, want %d", tt.velocity, got, tt.want)
		}
	}
}

// TestFixedPolicy 固定策略与速度无关
func TestFixedPolicy(t *testing.T) {
	p := FixedPolicy{Count: 50}
	for _, v := range []float64{0, 100, -3} {
		if got := p.Target(v); got != 50 {
			t.Errorf("Target(%v) = %d, want 50", v, got)
		}
	}
}

// TestActivateFillsFloor 激活时冰晶数量为下限 10
func TestActivateFillsFloor(t *testing.T) {
	field := newTestField(t, components.FamilyIce, 800, 600, 1)
	ctrl := newIceController()

	if n := ctrl.Activate(field); n != 10 {
		t.Errorf("Activate() = %d, want 10", n)
	}
	if ctrl.Floor() != 10 {
		t.Errorf("Floor() = %d, want 10", ctrl.Floor())
	}
}

// TestActivateFixedCount 霜花激活时得到固定数量
func TestActivateFixedCount(t *testing.T) {
	field := newTestField(t, components.FamilyCrystal, 800, 600, 2)
	ctrl := NewPopulationController(FixedPolicy{Count: 50}, 0)

	if n := ctrl.Activate(field); n != 50 {
		t.Errorf("Activate() = %d, want 50", n)
	}
	ctrl.OnSignal(field, 0)
	if field.Len() != 50 {
		t.Errorf("after OnSignal Len() = %d, want 50", field.Len())
	}
}

// TestOnSignalStabilizes 静止时稳定在 10，高速滚动时升到 50 并保持
func TestOnSignalStabilizes(t *testing.T) {
	field := newTestField(t, components.FamilyIce, 800, 600, 3)
	ctrl := newIceController()
	ctrl.Activate(field)

	for i := 0; i < 5; i++ {
		if n := ctrl.OnSignal(field, 0); n != 10 {
			t.Errorf("OnSignal(0) #%d = %d, want 10", i, n)
		}
	}

	for i := 0; i < 5; i++ {
		if n := ctrl.OnSignal(field, 20); n != 50 {
			t.Errorf("OnSignal(20) #%d = %d, want 50", i, n)
		}
	}
	if ctrl.Target() != 50 {
		t.Errorf("Target() = %d, want 50", ctrl.Target())
	}

	if n := ctrl.OnSignal(field, 0); n != 10 {
		t.Errorf("OnSignal(0) after burst = %d, want 10", n)
	}
}

// TestOnSignalBounds 任意信号序列下数量都在 [10, 50] 内
func TestOnSignalBounds(t *testing.T) {
	field := newTestField(t, components.FamilyIce, 800, 600, 4)
	ctrl := newIceController()
	ctrl.Activate(field)

	signals := []float64{0, 3, -7, 100, 2.5, -0.1, 9.8, 0, 55, -55, math.NaN(), 4}
	for _, v := range signals {
		n := ctrl.OnSignal(field, v)
		if n < 10 || n > 50 {
			t.Fatalf("OnSignal(%v) = %d, want within [10, 50]", v, n)
		}
		want := max(10, IcePolicy{Cap: 50, Gain: 5}.Target(v))
		if n != want {
			t.Errorf("OnSignal(%v) = %d, want %d", v, n, want)
		}
	}
}

// TestReconcileTrimsFromEnd 裁剪只移除末尾粒子
func TestReconcileTrimsFromEnd(t *testing.T) {
	field := newTestField(t, components.FamilyIce, 800, 600, 5)
	ctrl := newIceController()
	field.Append(30)
	head := field.Particles()[:12]

	spawned, removed := ctrl.Reconcile(field, 12)
	if spawned != 0 || removed != 18 {
		t.Errorf("Reconcile(12) = (%d, %d), want (0, 18)", spawned, removed)
	}
	got := field.Particles()
	for i := range head {
		if got[i] != head[i] {
			t.Fatalf("particle %d changed by trimming", i)
		}
	}

	// 低于下限的目标只裁到下限
	_, removed = ctrl.Reconcile(field, 3)
	if removed != 2 || field.Len() != 10 {
		t.Errorf("Reconcile(3): removed %d, Len() = %d, want 2 and 10", removed, field.Len())
	}

	spawned, _ = ctrl.Reconcile(field, 25)
	if spawned != 15 || field.Len() != 25 {
		t.Errorf("Reconcile(25): spawned %d, Len() = %d, want 15 and 25", spawned, field.Len())
	}

	if s, r := ctrl.Reconcile(nil, 5); s != 0 || r != 0 {
		t.Errorf("Reconcile(nil) = (%d, %d), want (0, 0)", s, r)
	}
}
