package main

import (
	"image"
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/koreacryo/icefx/pkg/game"
)

func TestTriggerKeyFor(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want game.TriggerKey
	}{
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), game.KeyUp},
		{"down", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), game.KeyDown},
		{"left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), game.KeyLeft},
		{"right", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), game.KeyRight},
		{"a", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), game.KeyA},
		{"B", tcell.NewEventKey(tcell.KeyRune, 'B', tcell.ModNone), game.KeyB},
		{"question", tcell.NewEventKey(tcell.KeyRune, '?', tcell.ModNone), game.KeyQuestion},
		{"slash", tcell.NewEventKey(tcell.KeyRune, '/', tcell.ModNone), game.KeyQuestion},
		{"other rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), game.KeyOther},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), game.KeyOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := triggerKeyFor(tt.ev); got != tt.want {
				t.Errorf("triggerKeyFor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBlockColor(t *testing.T) {
	canvas := image.NewRGBA(image.Rect(0, 0, 4, 4))
	canvas.SetRGBA(0, 0, color.RGBA{R: 200, G: 100, B: 40, A: 255})
	canvas.SetRGBA(1, 0, color.RGBA{R: 0, G: 100, B: 0, A: 255})

	got := blockColor(canvas, 0, 0, 2)
	want := color.RGBA{R: 50, G: 50, B: 10, A: 127}
	if got != want {
		t.Errorf("blockColor() = %v, want %v", got, want)
	}

	// 超出边界的区块只统计重叠部分
	canvas.SetRGBA(3, 3, color.RGBA{R: 255, A: 255})
	if got := blockColor(canvas, 3, 3, 2); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("edge block = %v", got)
	}
	if got := blockColor(canvas, 10, 10, 2); got != (color.RGBA{}) {
		t.Errorf("outside block = %v, want zero", got)
	}
}
