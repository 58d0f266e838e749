package app

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/koreacryo/icefx/pkg/game"
)

// triggerKeyFor 把 ebiten 按键映射为冻结开关的按键编码
//
// '?' 和 '/' 在美式键盘上是同一个键，统一映射为 KeyQuestion。
func triggerKeyFor(k ebiten.Key) game.TriggerKey {
	switch k {
	case ebiten.KeyArrowUp:
		return game.KeyUp
	case ebiten.KeyArrowDown:
		return game.KeyDown
	case ebiten.KeyArrowLeft:
		return game.KeyLeft
	case ebiten.KeyArrowRight:
		return game.KeyRight
	case ebiten.KeyA:
		return game.KeyA
	case ebiten.KeyB:
		return game.KeyB
	case ebiten.KeySlash, ebiten.KeyNumpadDivide:
		return game.KeyQuestion
	default:
		return game.KeyOther
	}
}
