package main

import (
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"

	"github.com/koreacryo/icefx/pkg/game"
)

// triggerKeyFor 把终端按键映射为冻结触发器按键
func triggerKeyFor(ev *tcell.EventKey) game.TriggerKey {
	switch ev.Key() {
	case tcell.KeyUp:
		return game.KeyUp
	case tcell.KeyDown:
		return game.KeyDown
	case tcell.KeyLeft:
		return game.KeyLeft
	case tcell.KeyRight:
		return game.KeyRight
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'A':
			return game.KeyA
		case 'b', 'B':
			return game.KeyB
		case '?', '/':
			return game.KeyQuestion
		}
	}
	return game.KeyOther
}

// blockColor 取 canvas 中 (x0, y0) 起 scale×scale 区块的平均颜色
func blockColor(canvas *image.RGBA, x0, y0, scale int) color.RGBA {
	r := image.Rect(x0, y0, x0+scale, y0+scale).Intersect(canvas.Bounds())
	if r.Empty() {
		return color.RGBA{}
	}

	var sr, sg, sb, sa, n int
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := canvas.RGBAAt(x, y)
			sr += int(c.R)
			sg += int(c.G)
			sb += int(c.B)
			sa += int(c.A)
			n++
		}
	}
	return color.RGBA{R: uint8(sr / n), G: uint8(sg / n), B: uint8(sb / n), A: uint8(sa / n)}
}

func cellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
