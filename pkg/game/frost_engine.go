package game

import (
	"fmt"
	"image"
	"log"
	"math/rand"

	"github.com/koreacryo/icefx/pkg/components"
	"github.com/koreacryo/icefx/pkg/config"
	"github.com/koreacryo/icefx/pkg/systems"
)

// 图层名称
const (
	LayerIce     = "ice"
	LayerCrystal = "crystal"
	LayerOverlay = "overlay"
)

// RenderLayer 宿主需要合成的一张图层（从下到上排列）
type RenderLayer struct {
	Name  string
	Image *image.RGBA
	Alpha float64 // 图层整体透明度 [0, 1]
}

// EngineStats 引擎运行状态快照
type EngineStats struct {
	Velocity     float64
	IceCount     int
	IceTarget    int
	IceState     systems.SchedulerState
	CrystalCount int
	FreezeActive bool
	FreezeState  systems.SchedulerState
	Frames       uint64
	Dropped      uint64
	Width        int
	Height       int
}

// EngineOption 引擎选项
type EngineOption func(*Engine)

// WithRand 使用指定的随机源（测试、截图工具使用固定种子）
func WithRand(rng *rand.Rand) EngineOption {
	return func(e *Engine) {
		e.rng = rng
	}
}

// WithFrameObserver 为所有调度器设置帧统计观察者
func WithFrameObserver(o systems.FrameObserver) EngineOption {
	return func(e *Engine) {
		e.observer = o
	}
}

// freezeMode 冻结模式下存在的全部资源，停用时整体销毁
type freezeMode struct {
	surface        *systems.SurfaceManager
	field          *systems.ParticleField
	controller     *systems.PopulationController
	overlaySurface *systems.SurfaceManager
	overlay        *systems.FrostOverlay
	loop           *systems.AnimationScheduler
}

// Engine owns every moving part of the ambient effect and is the single
// intake for host signals (scroll, visibility, resize, freeze toggle).
//
// The ice feature is created by Start and lives for the whole session; it is
// paused while the host is hidden. The freeze feature (crystal field plus
// frost overlay) is created on activation and fully destroyed on
// deactivation.
//
// Engine is not safe for concurrent use; hosts deliver signals and frame
// ticks from one goroutine.
type Engine struct {
	cfg      *config.FrostConfig
	frames   systems.FrameSource
	rng      *rand.Rand
	observer systems.FrameObserver

	tracker *systems.ScrollVelocityTracker

	width, height int
	hidden        bool

	iceSurface    *systems.SurfaceManager
	ice           *systems.ParticleField
	iceController *systems.PopulationController
	iceLoop       *systems.AnimationScheduler

	freeze *freezeMode
}

// NewEngine 创建引擎
//
// 参数：
//   - cfg: 特效配置（调用方负责 Validate），nil 使用默认配置
//   - frames: 宿主帧源
//   - opts: 可选项
func NewEngine(cfg *config.FrostConfig, frames systems.FrameSource, opts ...EngineOption) *Engine {
	if cfg == nil {
		cfg = config.DefaultFrostConfig()
	}
	e := &Engine{
		cfg:     cfg,
		frames:  frames,
		tracker: systems.NewScrollVelocityTracker(0),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return e
}

// Start 激活冰晶特效：创建表面、生成下限数量的粒子并启动调度
//
// 表面尺寸为零时返回 ErrEmptySurface，特效不启动。重复调用无副作用。
func (e *Engine) Start(width, height int) error {
	if e.iceLoop != nil {
		return nil
	}
	if width <= 0 || height <= 0 {
		log.Printf("[Engine] ice not started: surface %dx%d", width, height)
		return systems.ErrEmptySurface
	}
	e.width, e.height = width, height

	surface := systems.NewSurfaceManager(LayerIce, width, height)
	field, err := systems.NewParticleField(components.FamilyIce, e.cfg.Ice, surface, e.rng)
	if err != nil {
		return fmt.Errorf("create ice field: %w", err)
	}

	pop := e.cfg.Population
	controller := systems.NewPopulationController(systems.IcePolicy{Cap: pop.Cap, Gain: pop.Gain}, pop.Floor)
	controller.Activate(field)

	loop := systems.NewAnimationScheduler(LayerIce, e.frames, e.tracker.Velocity)
	loop.SetObserver(e.observer)
	loop.Attach(field)
	loop.Start()

	e.iceSurface = surface
	e.ice = field
	e.iceController = controller
	e.iceLoop = loop

	if e.hidden {
		loop.Pause()
	}

	log.Printf("[Engine] started %dx%d with %d ice particles", width, height, field.Len())
	return nil
}

// Started 冰晶特效是否已启动
func (e *Engine) Started() bool {
	return e.iceLoop != nil
}

// OnScroll 处理滚动位置信号
//
// 同步更新速度估计并调和冰晶数量，下一帧即可看到新的粒子数量。
// 返回本次的速度估计。
func (e *Engine) OnScroll(position float64) float64 {
	v := e.tracker.OnScroll(position)
	if e.ice != nil {
		e.iceController.OnSignal(e.ice, v)
	}
	return v
}

// Velocity 返回最近一次滚动速度估计
func (e *Engine) Velocity() float64 {
	return e.tracker.Velocity()
}

// OnVisibilityChange 宿主隐藏时暂停冰晶调度，恢复可见时继续
//
// 霜花没有暂停状态。
func (e *Engine) OnVisibilityChange(hidden bool) {
	if e.hidden == hidden {
		return
	}
	e.hidden = hidden
	if e.iceLoop == nil {
		return
	}
	if hidden {
		e.iceLoop.Pause()
	} else {
		e.iceLoop.Resume()
	}
}

// Hidden 宿主当前是否隐藏
func (e *Engine) Hidden() bool {
	return e.hidden
}

// OnResize 调整所有表面到新的视口尺寸，下一帧的更新即使用新尺寸
func (e *Engine) OnResize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width == e.width && height == e.height {
		return
	}
	e.width, e.height = width, height

	if e.iceSurface != nil {
		e.iceSurface.Resize(width, height)
	}
	if f := e.freeze; f != nil {
		f.surface.Resize(width, height)
		f.overlaySurface.Resize(width, height)
	}
}

// Size 返回当前视口尺寸
func (e *Engine) Size() (width, height int) {
	return e.width, e.height
}

// ActivateFreeze 激活冻结模式：创建霜花场（固定数量）和霜冻覆盖层
//
// 已激活时无操作。视口尺寸为零时返回 ErrEmptySurface。
func (e *Engine) ActivateFreeze() error {
	if e.freeze != nil {
		return nil
	}
	if e.width <= 0 || e.height <= 0 {
		log.Printf("[Engine] freeze not activated: surface %dx%d", e.width, e.height)
		return systems.ErrEmptySurface
	}

	surface := systems.NewSurfaceManager(LayerCrystal, e.width, e.height)
	field, err := systems.NewParticleField(components.FamilyCrystal, e.cfg.Crystal, surface, e.rng)
	if err != nil {
		surface.Destroy()
		return fmt.Errorf("create crystal field: %w", err)
	}

	overlaySurface := systems.NewSurfaceManager(LayerOverlay, e.width, e.height)
	overlay, err := systems.NewFrostOverlay(e.cfg.Overlay, overlaySurface)
	if err != nil {
		surface.Destroy()
		overlaySurface.Destroy()
		return fmt.Errorf("create frost overlay: %w", err)
	}

	controller := systems.NewPopulationController(systems.FixedPolicy{Count: e.cfg.Population.CrystalCount}, 0)
	controller.Activate(field)

	loop := systems.NewAnimationScheduler("frost", e.frames, nil)
	loop.SetObserver(e.observer)
	loop.Attach(field)
	loop.Attach(overlay)
	loop.Start()

	e.freeze = &freezeMode{
		surface:        surface,
		field:          field,
		controller:     controller,
		overlaySurface: overlaySurface,
		overlay:        overlay,
		loop:           loop,
	}
	log.Printf("[Engine] freeze mode on (%d crystals)", field.Len())
	return nil
}

// DeactivateFreeze 停用冻结模式：停止调度，丢弃所有霜花并销毁表面
//
// 下一次激活从空的霜花场开始。
func (e *Engine) DeactivateFreeze() {
	f := e.freeze
	if f == nil {
		return
	}
	f.loop.Stop()
	f.field.Clear()
	f.surface.Destroy()
	f.overlaySurface.Destroy()
	e.freeze = nil
	log.Printf("[Engine] freeze mode off")
}

// ToggleFreeze 切换冻结模式，返回切换后是否处于激活状态
func (e *Engine) ToggleFreeze() (bool, error) {
	if e.freeze != nil {
		e.DeactivateFreeze()
		return false, nil
	}
	if err := e.ActivateFreeze(); err != nil {
		return false, err
	}
	return true, nil
}

// FreezeActive 冻结模式是否激活
func (e *Engine) FreezeActive() bool {
	return e.freeze != nil
}

// Layers 返回需要合成的图层，从下到上：冰晶、霜花、覆盖层
//
// 返回的图像在下一帧会被重绘，宿主应在本帧内完成上传或合成。
func (e *Engine) Layers() []RenderLayer {
	layers := make([]RenderLayer, 0, 3)
	if e.iceSurface != nil && !e.iceSurface.Empty() {
		layers = append(layers, RenderLayer{Name: LayerIce, Image: e.iceSurface.Image(), Alpha: 1})
	}
	if f := e.freeze; f != nil && !f.surface.Empty() {
		layers = append(layers,
			RenderLayer{Name: LayerCrystal, Image: f.surface.Image(), Alpha: f.overlay.CanvasAlpha()},
			RenderLayer{Name: LayerOverlay, Image: f.overlaySurface.Image(), Alpha: 1},
		)
	}
	return layers
}

// Stats 返回运行状态快照
func (e *Engine) Stats() EngineStats {
	s := EngineStats{
		Velocity:     e.tracker.Velocity(),
		IceState:     systems.StateUninitialized,
		FreezeState:  systems.StateUninitialized,
		FreezeActive: e.freeze != nil,
		Width:        e.width,
		Height:       e.height,
	}
	if e.iceLoop != nil {
		s.IceCount = e.ice.Len()
		s.IceTarget = e.iceController.Target()
		s.IceState = e.iceLoop.State()
		s.Frames = e.iceLoop.Frames()
		s.Dropped = e.iceLoop.Dropped()
	}
	if f := e.freeze; f != nil {
		s.CrystalCount = f.field.Len()
		s.FreezeState = f.loop.State()
		s.Dropped += f.loop.Dropped()
	}
	return s
}

// IceParticles 冰晶粒子快照
func (e *Engine) IceParticles() []components.Particle {
	if e.ice == nil {
		return nil
	}
	return e.ice.Particles()
}

// CrystalParticles 霜花粒子快照，未激活时返回 nil
func (e *Engine) CrystalParticles() []components.Particle {
	if e.freeze == nil {
		return nil
	}
	return e.freeze.field.Particles()
}

// Shutdown 停止所有调度并释放表面
func (e *Engine) Shutdown() {
	e.DeactivateFreeze()
	if e.iceLoop != nil {
		e.iceLoop.Stop()
		e.ice.Clear()
		e.iceSurface.Destroy()
	}
	log.Printf("[Engine] shut down")
}
