// Package app 提供桌面宿主
//
// 把 ebiten 的窗口、输入和帧循环翻译成 Engine 的信号：
// 显示刷新驱动帧队列，滚轮和按键驱动平滑滚动，窗口焦点对应页面可见性，
// 窗口尺寸对应视口尺寸。
package app

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"log"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/koreacryo/icefx/pkg/config"
	"github.com/koreacryo/icefx/pkg/game"
	"github.com/koreacryo/icefx/pkg/systems"
	"github.com/koreacryo/icefx/pkg/utils"
)

const (
	// hostFPS 宿主刷新率（平滑滚动弹簧按此步进）
	hostFPS = 60
	// wheelStep 每个滚轮刻度滚动的距离
	wheelStep = 100.0
	// arrowStep 方向键滚动距离
	arrowStep = 40.0
	// pageHeightFactor 虚拟页面高度（视口高度的倍数）
	pageHeightFactor = 8
	// bandHeight 背景内容条带间距，让滚动可见
	bandHeight = 240
)

var (
	backgroundColor = color.RGBA{R: 8, G: 20, B: 38, A: 255}
	bandColor       = color.RGBA{R: 14, G: 32, B: 58, A: 255}
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Frost 特效配置，nil 使用默认配置
	Frost *config.FrostConfig
	// Settings 宿主设置，nil 时使用仅内存的默认设置
	Settings *game.SettingsManager
	// Observer 帧统计观察者（遥测），可为 nil
	Observer systems.FrameObserver
	// Seed 随机种子，0 表示随机
	Seed int64
}

// App 实现 ebiten.Game 接口
type App struct {
	engine   *game.Engine
	frames   *systems.FrameQueue
	trigger  *game.FreezeTrigger
	scroller *SmoothScroller
	settings *game.SettingsManager

	verbose     bool
	startFrozen bool
	frame       uint64

	width, height int

	layerImages map[string]*ebiten.Image
	keys        []ebiten.Key

	pendingWindowSizeReset   bool
	windowSizeResetCountdown int
}

// NewApp 创建并初始化桌面宿主
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	frost := cfg.Frost
	if frost == nil {
		frost = config.DefaultFrostConfig()
	}
	if err := frost.Validate(); err != nil {
		return nil, fmt.Errorf("特效配置无效: %w", err)
	}

	settings := cfg.Settings
	if settings == nil {
		settings = game.NewSettingsManager(nil)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	frames := systems.NewFrameQueue()
	opts := []game.EngineOption{game.WithRand(rand.New(rand.NewSource(seed)))}
	if cfg.Observer != nil {
		opts = append(opts, game.WithFrameObserver(cfg.Observer))
	}

	a := &App{
		engine:      game.NewEngine(frost, frames, opts...),
		frames:      frames,
		trigger:     game.NewFreezeTrigger(),
		scroller:    NewSmoothScroller(hostFPS, 0),
		settings:    settings,
		verbose:     cfg.Verbose,
		startFrozen: settings.GetSettings().StartFrozen,
		layerImages: make(map[string]*ebiten.Image),
	}
	log.Printf("[App] created (seed %d)", seed)
	return a, nil
}

// Engine 返回特效引擎
func (a *App) Engine() *game.Engine {
	return a.engine
}

// Update 每个显示帧调用一次
//
// 顺序：视口与可见性 → 输入（开关、滚动） → 帧队列。
// 滚动信号在本帧的动画之前处理，新的粒子数量在同一帧即被绘制。
func (a *App) Update() error {
	a.frame++
	a.updateWindow()

	if a.width > 0 && a.height > 0 {
		if !a.engine.Started() {
			if err := a.engine.Start(a.width, a.height); err != nil {
				log.Printf("[App] engine start deferred: %v", err)
			}
		} else {
			a.engine.OnResize(a.width, a.height)
		}
		a.scroller.Max = float64(a.height * (pageHeightFactor - 1))

		if a.startFrozen && a.engine.Started() {
			a.startFrozen = false
			a.toggleFreeze()
		}
	}

	a.engine.OnVisibilityChange(!ebiten.IsFocused())

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	a.handleKeys()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && a.trigger.Click(a.frame) {
		a.toggleFreeze()
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		a.scroller.Nudge(-dy * wheelStep)
	}
	if pos, moved := a.scroller.Update(); moved {
		a.engine.OnScroll(pos)
	}

	a.frames.Tick()
	return nil
}

// updateWindow 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
func (a *App) updateWindow() {
	if !a.pendingWindowSizeReset {
		return
	}
	a.windowSizeResetCountdown--
	if a.windowSizeResetCountdown <= 0 {
		s := a.settings.GetSettings()
		ebiten.SetWindowSize(s.WindowWidth, s.WindowHeight)
		a.pendingWindowSizeReset = false
	}
}

// handleKeys 处理本帧新按下的键
func (a *App) handleKeys() {
	a.keys = inpututil.AppendJustPressedKeys(a.keys[:0])
	for _, k := range a.keys {
		if a.trigger.Key(triggerKeyFor(k)) {
			a.toggleFreeze()
		}

		switch k {
		case ebiten.KeyF11:
			a.toggleFullscreen()
		case ebiten.KeyF3:
			a.settings.SetShowStats(!a.settings.GetSettings().ShowStats)
			a.saveSettings()
		case ebiten.KeyArrowDown:
			a.scroller.Nudge(arrowStep)
		case ebiten.KeyArrowUp:
			a.scroller.Nudge(-arrowStep)
		case ebiten.KeyPageDown, ebiten.KeySpace:
			a.scroller.Nudge(float64(a.height) * 0.9)
		case ebiten.KeyPageUp:
			a.scroller.Nudge(-float64(a.height) * 0.9)
		case ebiten.KeyHome:
			a.scroller.ScrollTo(0)
		case ebiten.KeyEnd:
			a.scroller.ScrollTo(a.scroller.Max)
		}
	}
}

func (a *App) toggleFreeze() {
	active, err := a.engine.ToggleFreeze()
	if err != nil {
		if errors.Is(err, systems.ErrEmptySurface) {
			log.Printf("[App] freeze unavailable: window has no size yet")
			return
		}
		log.Printf("[App] freeze toggle failed: %v", err)
		return
	}
	log.Printf("[App] freeze mode active=%v", active)
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		a.settings.SetFullscreen(false)
	} else {
		ebiten.SetFullscreen(true)
		a.settings.SetFullscreen(true)
	}
	a.saveSettings()
}

func (a *App) saveSettings() {
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings: %v", err)
	}
}

// Draw 绘制背景页面和特效图层
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	a.drawPage(screen)

	seen := make(map[string]bool, 3)
	for _, layer := range a.engine.Layers() {
		img := utils.SyncEbitenImage(a.layerImages[layer.Name], layer.Image)
		a.layerImages[layer.Name] = img
		seen[layer.Name] = true
		if img == nil {
			continue
		}

		op := &ebiten.DrawImageOptions{}
		op.ColorScale.ScaleAlpha(float32(layer.Alpha))
		screen.DrawImage(img, op)
	}

	// 释放已销毁图层（例如冻结模式关闭后）的 GPU 图像
	for name, img := range a.layerImages {
		if !seen[name] {
			if img != nil {
				img.Deallocate()
			}
			delete(a.layerImages, name)
		}
	}

	if a.settings.GetSettings().ShowStats {
		a.drawStats(screen)
	}
}

// drawPage 按滚动位置绘制背景条带，模拟被滚动的页面内容
func (a *App) drawPage(screen *ebiten.Image) {
	b := screen.Bounds()
	offset := int(a.scroller.Position()) % (bandHeight * 2)
	for y := -offset; y < b.Dy(); y += bandHeight * 2 {
		band := image.Rect(b.Min.X, b.Min.Y+y, b.Max.X, b.Min.Y+y+bandHeight).Intersect(b)
		if band.Empty() {
			continue
		}
		screen.SubImage(band).(*ebiten.Image).Fill(bandColor)
	}
}

func (a *App) drawStats(screen *ebiten.Image) {
	s := a.engine.Stats()
	msg := fmt.Sprintf(
		"FPS %.0f  TPS %.0f\nscroll %.0f  v %.1f\nice %d/%d (%s)\nfreeze %v  crystals %d (%s)\nframes %d  dropped %d\n[?] freeze  [F3] stats  [F11] fullscreen  [Esc] quit",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		a.scroller.Position(), s.Velocity,
		s.IceCount, s.IceTarget, s.IceState,
		s.FreezeActive, s.CrystalCount, s.FreezeState,
		s.Frames, s.Dropped,
	)
	ebitenutil.DebugPrint(screen, msg)
}

// Layout 逻辑尺寸与窗口尺寸一致，表面按实际视口大小分配
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.width, a.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Close 停止引擎并保存设置
func (a *App) Close() {
	for name, img := range a.layerImages {
		if img != nil {
			img.Deallocate()
		}
		delete(a.layerImages, name)
	}
	a.engine.Shutdown()
	a.saveSettings()
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
