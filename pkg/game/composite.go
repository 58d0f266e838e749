package game

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/koreacryo/icefx/pkg/utils"
)

// Composite 在 dst 上依次叠加图层（无窗口宿主使用）
//
// background 非 nil 时先用它填充 dst。
func Composite(dst *image.RGBA, background color.Color, layers []RenderLayer) {
	if dst == nil {
		return
	}
	if background != nil {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	}
	for _, l := range layers {
		utils.CompositeOver(dst, l.Image, l.Alpha)
	}
}
