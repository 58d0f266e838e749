package systems

import (
	"image"
	"log"
	"time"

	"github.com/koreacryo/icefx/pkg/components"
)

// SchedulerState 调度器状态
//
//	Uninitialized → Active ⇄ Paused → Destroyed
type SchedulerState int

const (
	StateUninitialized SchedulerState = iota
	StateActive
	StatePaused
	StateDestroyed
)

// String 返回状态名称
func (s SchedulerState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateActive:
		return "active"
	case StatePaused:
		return "paused"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Layer is anything the scheduler animates once per frame: it owns a
// surface, advances its own state in Update and rasterizes in Draw.
type Layer interface {
	Surface() *SurfaceManager
	Update(ctx components.FrameContext)
	Draw(dst *image.RGBA)
}

// populated 可选接口，用于统计粒子数量
type populated interface {
	Len() int
}

// FrameSample 单帧统计
type FrameSample struct {
	Scheduler  string
	Frame      uint64
	Duration   time.Duration
	Population int
	Dropped    bool
}

// FrameObserver 接收每帧统计（遥测）
type FrameObserver interface {
	ObserveFrame(sample FrameSample)
}

// AnimationScheduler drives the update-then-draw cycle of its layers once per
// displayed frame, using the host's FrameSource.
//
// Pause cancels exactly the one pending frame request; Resume issues a new
// one. There is no time-skip compensation: particle state continues from where
// it stopped regardless of how long the scheduler was paused.
type AnimationScheduler struct {
	name     string
	source   FrameSource
	velocity func() float64
	observer FrameObserver

	layers []Layer
	state  SchedulerState

	handle  FrameHandle
	pending bool

	frames  uint64
	dropped uint64
}

// NewAnimationScheduler 创建调度器
//
// 参数：
//   - name: 名称（日志、遥测）
//   - source: 宿主帧源
//   - velocity: 滚动速度读取函数，nil 表示始终为 0
func NewAnimationScheduler(name string, source FrameSource, velocity func() float64) *AnimationScheduler {
	return &AnimationScheduler{
		name:     name,
		source:   source,
		velocity: velocity,
		state:    StateUninitialized,
	}
}

// Name 返回名称
func (s *AnimationScheduler) Name() string {
	return s.name
}

// SetObserver 设置帧统计观察者，nil 取消
func (s *AnimationScheduler) SetObserver(o FrameObserver) {
	s.observer = o
}

// Attach 添加图层，已销毁的调度器忽略
func (s *AnimationScheduler) Attach(layer Layer) {
	if layer == nil || s.state == StateDestroyed {
		return
	}
	for _, l := range s.layers {
		if l == layer {
			return
		}
	}
	s.layers = append(s.layers, layer)
}

// Detach 移除图层
func (s *AnimationScheduler) Detach(layer Layer) {
	for i, l := range s.layers {
		if l == layer {
			s.layers = append(s.layers[:i], s.layers[i+1:]...)
			return
		}
	}
}

// Layers 返回图层数量
func (s *AnimationScheduler) Layers() int {
	return len(s.layers)
}

// State 当前状态
func (s *AnimationScheduler) State() SchedulerState {
	return s.state
}

// Frames 已执行的帧数
func (s *AnimationScheduler) Frames() uint64 {
	return s.frames
}

// Dropped 因内部错误丢弃绘制的帧数
func (s *AnimationScheduler) Dropped() uint64 {
	return s.dropped
}

// Pending 是否有等待中的帧请求
func (s *AnimationScheduler) Pending() bool {
	return s.pending
}

// Start 从 Uninitialized 进入 Active 并请求第一帧
func (s *AnimationScheduler) Start() bool {
	if s.state != StateUninitialized {
		return false
	}
	s.state = StateActive
	s.request()
	log.Printf("[AnimationScheduler] %s started with %d layers", s.name, len(s.layers))
	return true
}

// Pause 取消等待中的帧请求，保留所有图层状态
func (s *AnimationScheduler) Pause() bool {
	if s.state != StateActive {
		return false
	}
	s.cancel()
	s.state = StatePaused
	log.Printf("[AnimationScheduler] %s paused at frame %d", s.name, s.frames)
	return true
}

// Resume 从下一帧继续，不做补帧
func (s *AnimationScheduler) Resume() bool {
	if s.state != StatePaused {
		return false
	}
	s.state = StateActive
	s.request()
	log.Printf("[AnimationScheduler] %s resumed at frame %d", s.name, s.frames)
	return true
}

// Stop 取消帧请求并解除所有图层，进入 Destroyed（不可再启动）
func (s *AnimationScheduler) Stop() {
	if s.state == StateDestroyed {
		return
	}
	s.cancel()
	s.layers = nil
	s.state = StateDestroyed
	log.Printf("[AnimationScheduler] %s stopped after %d frames (%d dropped)", s.name, s.frames, s.dropped)
}

func (s *AnimationScheduler) request() {
	if s.pending || s.source == nil {
		return
	}
	s.handle = s.source.RequestFrame(s.onFrame)
	s.pending = true
}

func (s *AnimationScheduler) cancel() {
	if !s.pending {
		return
	}
	s.source.CancelFrame(s.handle)
	s.pending = false
	s.handle = 0
}

// onFrame 帧源回调：执行一帧，仍处于 Active 时请求下一帧
func (s *AnimationScheduler) onFrame() {
	s.pending = false
	s.handle = 0
	if s.state != StateActive {
		return
	}

	s.RunFrame()

	if s.state == StateActive {
		s.request()
	}
}

// RunFrame 同步执行一帧：对每个图层清空表面、Update、Draw
//
// 图层内部的 panic 在这里被捕获，本帧绘制被丢弃，调度循环继续。
func (s *AnimationScheduler) RunFrame() {
	ctx := components.FrameContext{
		Frame:          s.frames + 1,
		ScrollVelocity: s.currentVelocity(),
	}

	start := time.Now()
	dropped := s.renderLayers(ctx)
	s.frames++

	if s.observer != nil {
		s.observer.ObserveFrame(FrameSample{
			Scheduler:  s.name,
			Frame:      s.frames,
			Duration:   time.Since(start),
			Population: s.population(),
			Dropped:    dropped,
		})
	}
}

func (s *AnimationScheduler) renderLayers(ctx components.FrameContext) (dropped bool) {
	defer func() {
		if r := recover(); r != nil {
			s.dropped++
			dropped = true
			log.Printf("[AnimationScheduler] %s frame %d dropped: %v", s.name, ctx.Frame, r)
		}
	}()

	for _, layer := range s.layers {
		surface := layer.Surface()
		if surface == nil || surface.Empty() {
			continue
		}
		surface.Clear()
		layer.Update(ctx)
		layer.Draw(surface.Image())
	}
	return false
}

func (s *AnimationScheduler) currentVelocity() float64 {
	if s.velocity == nil {
		return 0
	}
	v := s.velocity()
	if !isFinite(v) {
		return 0
	}
	return v
}

func (s *AnimationScheduler) population() int {
	total := 0
	for _, layer := range s.layers {
		if p, ok := layer.(populated); ok {
			total += p.Len()
		}
	}
	return total
}
