package utils

import (
	"fmt"
	"image/color"
	"math"

	"github.com/crazy3lf/colorconv"
)

// HSVA 把 HSV + 透明度转换为非预乘 RGBA 颜色
//
// 参数：
//   - hue: 色相 [0, 360)，超出范围会取模
//   - saturation, value, alpha: [0, 1]，超出范围会被截断
func HSVA(hue, saturation, value, alpha float64) (color.NRGBA, error) {
	hue = math.Mod(hue, 360)
	if hue < 0 {
		hue += 360
	}

	r, g, b, err := colorconv.HSVToRGB(hue, Clamp01(saturation), Clamp01(value))
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid HSV (%.1f, %.2f, %.2f): %w", hue, saturation, value, err)
	}

	return color.NRGBA{R: r, G: g, B: b, A: alphaByte(alpha)}, nil
}

// ScaleAlpha 返回透明度乘以 factor 后的颜色（类似 canvas 的 globalAlpha）
func ScaleAlpha(c color.NRGBA, factor float64) color.NRGBA {
	c.A = alphaByte(float64(c.A) / 255 * factor)
	return c
}

func alphaByte(alpha float64) uint8 {
	return uint8(math.Round(Clamp01(alpha) * 255))
}
