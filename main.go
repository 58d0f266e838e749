// Package main 是 icefx 桌面宿主的入口
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--verbose            输出详细日志
//	--config <path>      使用外部 YAML 特效配置（默认使用内嵌的 data/frost.yaml）
//	--telemetry <dir>    把每秒帧统计写入 <dir>/frames.csv，并保存本次配置
//	--freeze             启动后立即进入冻结模式（写入设置，下次启动保持）
//	--seed <n>           固定随机种子，便于复现
//
// Controls:
//
//	Mouse Wheel / Arrows / PgUp / PgDn  - 滚动页面（驱动冰粒数量）
//	? 或 Konami 序列 或 三连击           - 切换冻结模式
//	F3                                  - 显示/隐藏统计
//	F11                                 - 全屏
//	Esc                                 - 退出
package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata/v2"

	"github.com/koreacryo/icefx/pkg/app"
	"github.com/koreacryo/icefx/pkg/config"
	"github.com/koreacryo/icefx/pkg/game"
	"github.com/koreacryo/icefx/pkg/systems"
	"github.com/koreacryo/icefx/pkg/telemetry"
)

var (
	verboseFlag   = flag.Bool("verbose", false, "Enable verbose logging")
	configFlag    = flag.String("config", "", "Path to an effect config YAML (default: embedded data/frost.yaml)")
	telemetryFlag = flag.String("telemetry", "", "Directory for frame telemetry output (disabled if empty)")
	freezeFlag    = flag.Bool("freeze", false, "Start with freeze mode active")
	seedFlag      = flag.Int64("seed", 0, "Random seed (0 = random)")
)

func main() {
	flag.Parse()

	// 默认静音运行；如需详细调试，传入 --verbose
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	frost, err := loadFrostConfig(*configFlag)
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("Failed to load effect config: %v", err)
	}

	// 存储不可用时降级为仅内存设置
	storage, err := gdata.Open(gdata.Config{AppName: "icefx"})
	if err != nil {
		log.Printf("[Main] Warning: settings storage unavailable: %v", err)
		storage = nil
	}
	settings := game.NewSettingsManager(storage)
	if *freezeFlag {
		settings.SetStartFrozen(true)
	}

	om, err := telemetry.NewOutputManager(*telemetryFlag)
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("Failed to create telemetry output: %v", err)
	}
	defer om.Close()
	if err := om.WriteConfig(frost); err != nil {
		log.Printf("[Main] Warning: failed to save config: %v", err)
	}

	var observer systems.FrameObserver
	var collector *telemetry.PerfCollector
	if om != nil {
		collector = telemetry.NewPerfCollector(60, om)
		observer = collector
	}

	a, err := app.NewApp(app.Config{
		Verbose:  *verboseFlag,
		Frost:    frost,
		Settings: settings,
		Observer: observer,
		Seed:     *seedFlag,
	})
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("Failed to initialize app: %v", err)
	}

	s := settings.GetSettings()
	ebiten.SetWindowSize(s.WindowWidth, s.WindowHeight)
	ebiten.SetWindowTitle("icefx")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	// 失去焦点时仍需要 Update 继续运行，冻结模式在后台保持动画
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetTPS(ebiten.SyncWithFPS)
	if s.Fullscreen {
		ebiten.SetFullscreen(true)
	}

	runErr := ebiten.RunGame(a)
	a.Close()
	if collector != nil {
		collector.Flush()
	}
	if runErr != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(runErr)
	}
	log.Println("[Main] closed")
}

// loadFrostConfig 读取外部配置，未指定时解析内嵌默认配置
func loadFrostConfig(path string) (*config.FrostConfig, error) {
	if path != "" {
		return config.LoadFrostConfig(path)
	}
	return config.ParseFrostConfig(defaultFrostYAML)
}
