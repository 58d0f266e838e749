package utils

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/hajimehoshi/ebiten/v2"
)

// CompositeOver 把图层 src 以整体透明度 alpha 叠加到 dst 上
//
// 两张图左上角对齐，只处理重叠区域。alpha <= 0 时什么都不做。
// 用于无窗口环境（截图工具、终端预览）合成各个粒子表面。
func CompositeOver(dst, src *image.RGBA, alpha float64) {
	if dst == nil || src == nil {
		return
	}
	a := alphaByte(alpha)
	if a == 0 {
		return
	}

	r := src.Bounds().Intersect(dst.Bounds())
	if r.Empty() {
		return
	}

	if a == 255 {
		draw.Draw(dst, r, src, r.Min, draw.Over)
		return
	}
	draw.DrawMask(dst, r, src, r.Min, image.NewUniform(color.Alpha{A: a}), image.Point{}, draw.Over)
}

// SyncEbitenImage 把软件表面的像素上传到 ebiten 图像
//
// 如果 img 为 nil 或尺寸与 src 不一致，会释放旧图像并重新创建。
// 返回可直接用于 DrawImage 的图像；src 为空尺寸时返回 nil。
func SyncEbitenImage(img *ebiten.Image, src *image.RGBA) *ebiten.Image {
	if src == nil || src.Bounds().Empty() {
		if img != nil {
			img.Deallocate()
		}
		return nil
	}

	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	if img == nil || img.Bounds().Dx() != w || img.Bounds().Dy() != h {
		if img != nil {
			img.Deallocate()
		}
		img = ebiten.NewImage(w, h)
	}

	img.WritePixels(src.Pix)
	return img
}
