// Package main provides a terminal preview of the frost effects.
//
// Each terminal cell shows two vertically stacked pixels using the upper
// half block glyph, with the foreground as the top pixel and the
// background as the bottom one.
//
// Usage:
//
//	go run cmd/frostterm/main.go [flags]
//
// Flags:
//
//	--scale <n>      Surface pixels per half cell (default 4)
//	--fps <n>        Frame rate (default 30)
//	--config <path>  Effect config YAML (default: built-in defaults)
//	--seed <n>       Random seed, 0 = random (default 0)
//	--verbose        Enable verbose logging (writes to frostterm.log)
//
// Controls:
//
//	Arrows / PgUp / PgDn / Mouse Wheel  - Scroll
//	? or Konami sequence or triple click - Toggle freeze mode
//	q / Esc / Ctrl+C                     - Quit
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/koreacryo/icefx/pkg/config"
	"github.com/koreacryo/icefx/pkg/game"
	"github.com/koreacryo/icefx/pkg/systems"
)

var (
	scaleFlag   = flag.Int("scale", 4, "Surface pixels per half cell")
	fpsFlag     = flag.Int("fps", 30, "Frame rate")
	configFlag  = flag.String("config", "", "Effect config YAML")
	seedFlag    = flag.Int64("seed", 0, "Random seed (0 = random)")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging to frostterm.log")
)

const (
	lineStep  = 60.0
	wheelStep = 180.0
)

var background = color.RGBA{R: 8, G: 20, B: 38, A: 255}

// termHost 终端宿主状态
type termHost struct {
	screen  tcell.Screen
	frames  *systems.FrameQueue
	engine  *game.Engine
	trigger *game.FreezeTrigger

	scale    int
	canvas   *image.RGBA
	position float64
	frame    uint64
	buttons  tcell.ButtonMask
}

func main() {
	flag.Parse()

	if err := setupLogging(); err != nil {
		fmt.Fprintf(os.Stderr, "frostterm: %v\n", err)
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "frostterm: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging 终端被 tcell 占用，日志只能写文件
func setupLogging() error {
	if !*verboseFlag {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile("frostterm.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	log.SetOutput(f)
	return nil
}

func run() error {
	cfg := config.DefaultFrostConfig()
	if *configFlag != "" {
		loaded, err := config.LoadFrostConfig(*configFlag)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	scale := *scaleFlag
	if scale < 1 {
		scale = 1
	}
	fps := *fpsFlag
	if fps < 1 {
		fps = 30
	}
	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	screen.EnableMouse()
	screen.EnableFocus()
	screen.HideCursor()
	screen.Clear()

	frames := systems.NewFrameQueue()
	h := &termHost{
		screen:  screen,
		frames:  frames,
		engine:  game.NewEngine(cfg, frames, game.WithRand(rand.New(rand.NewSource(seed)))),
		trigger: game.NewFreezeTrigger(),
		scale:   scale,
	}
	defer h.engine.Shutdown()

	h.resize()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()
	defer close(quit)

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			if !h.handleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			h.frame++
			h.frames.Tick()
			h.draw()
		}
	}
}

// resize 按终端尺寸调整引擎表面（每个单元格对应上下两个像素）
func (h *termHost) resize() {
	cols, rows := h.screen.Size()
	w, ht := cols*h.scale, rows*2*h.scale

	if !h.engine.Started() {
		if err := h.engine.Start(w, ht); err != nil {
			log.Printf("[frostterm] start deferred: %v", err)
			return
		}
	} else {
		h.engine.OnResize(w, ht)
	}
	if w > 0 && ht > 0 {
		h.canvas = image.NewRGBA(image.Rect(0, 0, w, ht))
	}
}

// handleEvent 处理一个终端事件，返回 false 表示退出
func (h *termHost) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || (ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
		if h.trigger.Key(triggerKeyFor(ev)) {
			h.toggleFreeze()
		}
		_, rows := h.screen.Size()
		page := float64(rows*2*h.scale) * 0.9
		switch ev.Key() {
		case tcell.KeyDown:
			h.scroll(lineStep)
		case tcell.KeyUp:
			h.scroll(-lineStep)
		case tcell.KeyPgDn:
			h.scroll(page)
		case tcell.KeyPgUp:
			h.scroll(-page)
		}

	case *tcell.EventMouse:
		btn := ev.Buttons()
		if btn&tcell.WheelUp != 0 {
			h.scroll(-wheelStep)
		}
		if btn&tcell.WheelDown != 0 {
			h.scroll(wheelStep)
		}
		// 只在按下的瞬间计一次点击
		if btn&tcell.Button1 != 0 && h.buttons&tcell.Button1 == 0 && h.trigger.Click(h.frame) {
			h.toggleFreeze()
		}
		h.buttons = btn

	case *tcell.EventResize:
		h.screen.Sync()
		h.resize()

	case *tcell.EventFocus:
		h.engine.OnVisibilityChange(!ev.Focused)
	}
	return true
}

func (h *termHost) scroll(delta float64) {
	h.position += delta
	if h.position < 0 {
		h.position = 0
	}
	h.engine.OnScroll(h.position)
}

func (h *termHost) toggleFreeze() {
	active, err := h.engine.ToggleFreeze()
	if err != nil {
		log.Printf("[frostterm] freeze toggle failed: %v", err)
		return
	}
	log.Printf("[frostterm] freeze mode active=%v", active)
}

// draw 合成图层并按半块字符输出到终端
func (h *termHost) draw() {
	if h.canvas == nil {
		return
	}
	game.Composite(h.canvas, background, h.engine.Layers())

	cols, rows := h.screen.Size()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := blockColor(h.canvas, x*h.scale, y*2*h.scale, h.scale)
			bottom := blockColor(h.canvas, x*h.scale, (y*2+1)*h.scale, h.scale)
			style := tcell.StyleDefault.Foreground(cellColor(top)).Background(cellColor(bottom))
			h.screen.SetContent(x, y, '▀', nil, style)
		}
	}

	s := h.engine.Stats()
	status := fmt.Sprintf(" scroll %.0f  v %.1f  ice %d/%d  freeze %v  crystals %d ", h.position, s.Velocity, s.IceCount, s.IceTarget, s.FreezeActive, s.CrystalCount)
	statusStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.NewRGBColor(20, 40, 70))
	for i, r := range status {
		if i >= cols {
			break
		}
		h.screen.SetContent(i, 0, r, nil, statusStyle)
	}

	h.screen.Show()
}
