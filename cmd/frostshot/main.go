// Package main provides a headless snapshot tool for the frost effects.
//
// It drives the engine with a scripted scroll and writes composited frames
// as PNG files, so effect tuning can be reviewed without a window.
//
// Usage:
//
//	go run cmd/frostshot/main.go [flags]
//
// Flags:
//
//	--width, --height   Viewport size (default 800x600)
//	--frames <n>        Number of frames to simulate (default 180)
//	--every <n>         Write a PNG every n frames, 0 = only the last frame (default 30)
//	--scroll <px>       Scroll distance per frame during the first half (default 40)
//	--freeze-at <n>     Activate freeze mode at frame n, -1 = never (default -1)
//	--config <path>     Effect config YAML (default: built-in defaults)
//	--seed <n>          Random seed (default 1)
//	--out <dir>         Output directory (default frostshot_output)
//	--verbose           Enable verbose logging
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/koreacryo/icefx/pkg/config"
	"github.com/koreacryo/icefx/pkg/game"
	"github.com/koreacryo/icefx/pkg/systems"
)

var (
	widthFlag    = flag.Int("width", 800, "Viewport width")
	heightFlag   = flag.Int("height", 600, "Viewport height")
	framesFlag   = flag.Int("frames", 180, "Number of frames to simulate")
	everyFlag    = flag.Int("every", 30, "Write a PNG every n frames (0 = last frame only)")
	scrollFlag   = flag.Float64("scroll", 40, "Scroll distance per frame during the first half")
	freezeAtFlag = flag.Int("freeze-at", -1, "Activate freeze mode at this frame (-1 = never)")
	configFlag   = flag.String("config", "", "Effect config YAML")
	seedFlag     = flag.Int64("seed", 1, "Random seed")
	outFlag      = flag.String("out", "frostshot_output", "Output directory")
	verboseFlag  = flag.Bool("verbose", false, "Enable verbose logging")
)

var background = color.RGBA{R: 8, G: 20, B: 38, A: 255}

func main() {
	flag.Parse()

	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "frostshot: %v\n", err)
		os.Exit(1)
	}
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

	if err := os.MkdirAll(*outFlag, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	frames := systems.NewFrameQueue()
	engine := game.NewEngine(cfg, frames, game.WithRand(rand.New(rand.NewSource(*seedFlag))))
	defer engine.Shutdown()

	if err := engine.Start(*widthFlag, *heightFlag); err != nil {
		return fmt.Errorf("starting engine: %w", err)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, *widthFlag, *heightFlag))
	position := 0.0
	written := 0

	for frame := 1; frame <= *framesFlag; frame++ {
		if frame == *freezeAtFlag {
			if err := engine.ActivateFreeze(); err != nil {
				return fmt.Errorf("activating freeze: %w", err)
			}
		}
		if frame <= *framesFlag/2 {
			position += *scrollFlag
			engine.OnScroll(position)
		}

		frames.Tick()

		last := frame == *framesFlag
		if (*everyFlag > 0 && frame%*everyFlag == 0) || last {
			game.Composite(canvas, background, engine.Layers())
			path := filepath.Join(*outFlag, fmt.Sprintf("frame_%04d.png", frame))
			if err := writePNG(path, canvas); err != nil {
				return err
			}
			written++
			s := engine.Stats()
			log.Printf("[frostshot] frame %d: v=%.1f ice=%d/%d crystals=%d", frame, s.Velocity, s.IceCount, s.IceTarget, s.CrystalCount)
		}
	}

	s := engine.Stats()
	fmt.Printf("wrote %d frames to %s (ice %d, crystals %d, dropped %d)\n", written, *outFlag, s.IceCount, s.CrystalCount, s.Dropped)
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
