package systems

import "math"

// ScrollVelocityTracker 滚动速度追踪器
//
// 每次滚动信号到达时用当前位置减去上一次位置得到速度估计。
// 速度是"每个滚动信号的位移"而非真正的时间导数，也不做平滑或衰减：
// 两次信号之间速度保持为最近一次的差值。
type ScrollVelocityTracker struct {
	lastPosition float64
	velocity     float64
}

// NewScrollVelocityTracker 以初始滚动位置创建追踪器
func NewScrollVelocityTracker(initialPosition float64) *ScrollVelocityTracker {
	if !isFinite(initialPosition) {
		initialPosition = 0
	}
	return &ScrollVelocityTracker{lastPosition: initialPosition}
}

// OnScroll 处理一次滚动信号，返回新的速度估计
//
// 非有限的位置（或导致差值溢出的位置）被忽略：状态不变，返回当前估计值。
func (t *ScrollVelocityTracker) OnScroll(position float64) float64 {
	if !isFinite(position) {
		return t.velocity
	}

	delta := position - t.lastPosition
	if !isFinite(delta) {
		return t.velocity
	}

	t.velocity = delta
	t.lastPosition = position
	return t.velocity
}

// Velocity 返回最近一次的速度估计
func (t *ScrollVelocityTracker) Velocity() float64 {
	return t.velocity
}

// LastPosition 返回最近一次的滚动位置
func (t *ScrollVelocityTracker) LastPosition() float64 {
	return t.lastPosition
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
