package app

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/koreacryo/icefx/pkg/game"
)

// TestTriggerKeyFor 测试按键映射
func TestTriggerKeyFor(t *testing.T) {
	tests := []struct {
		key  ebiten.Key
		want game.TriggerKey
	}{
		{ebiten.KeyArrowUp, game.KeyUp},
		{ebiten.KeyArrowDown, game.KeyDown},
		{ebiten.KeyArrowLeft, game.KeyLeft},
		{ebiten.KeyArrowRight, game.KeyRight},
		{ebiten.KeyA, game.KeyA},
		{ebiten.KeyB, game.KeyB},
		{ebiten.KeySlash, game.KeyQuestion},
		{ebiten.KeyNumpadDivide, game.KeyQuestion},
		{ebiten.KeyC, game.KeyOther},
		{ebiten.KeySpace, game.KeyOther},
	}

	for _, tt := range tests {
		if got := triggerKeyFor(tt.key); got != tt.want {
			t.Errorf("triggerKeyFor(%v) = %v, want %v", tt.key, got, tt.want)
		}
	}
}
