package app

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// 平滑滚动的收敛阈值
const (
	scrollSettleDistance = 0.05
	scrollSettleVelocity = 0.05
)

// SmoothScroller 模拟浏览器的平滑滚动
//
// 滚轮和按键只移动目标位置，实际滚动位置每帧沿阻尼弹簧趋近目标。
// 位置被限制在 [0, Max]。
type SmoothScroller struct {
	Max float64

	spring   harmonica.Spring
	target   float64
	position float64
	velocity float64
}

// NewSmoothScroller 创建滚动器
//
// 参数：
//   - fps: 宿主帧率
//   - maxScroll: 可滚动的最大距离
func NewSmoothScroller(fps int, maxScroll float64) *SmoothScroller {
	return &SmoothScroller{
		Max:    maxScroll,
		spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
	}
}

// Nudge 把目标位置移动 delta
func (s *SmoothScroller) Nudge(delta float64) {
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return
	}
	s.ScrollTo(s.target + delta)
}

// ScrollTo 设置目标位置
func (s *SmoothScroller) ScrollTo(target float64) {
	s.target = math.Max(0, math.Min(s.Max, target))
}

// Target 返回目标位置
func (s *SmoothScroller) Target() float64 {
	return s.target
}

// Position 返回当前滚动位置
func (s *SmoothScroller) Position() float64 {
	return s.position
}

// Settled 是否已停在目标位置
func (s *SmoothScroller) Settled() bool {
	return s.position == s.target && s.velocity == 0
}

// Update 推进一帧，返回新位置以及本帧是否发生了滚动
func (s *SmoothScroller) Update() (float64, bool) {
	if s.Settled() {
		return s.position, false
	}

	prev := s.position
	s.position, s.velocity = s.spring.Update(s.position, s.velocity, s.target)

	if math.Abs(s.target-s.position) < scrollSettleDistance && math.Abs(s.velocity) < scrollSettleVelocity {
		s.position = s.target
		s.velocity = 0
	}

	return s.position, s.position != prev
}
