package systems

import (
	"image"
	"image/color"
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/koreacryo/icefx/pkg/components"
	"github.com/koreacryo/icefx/pkg/config"
	"github.com/koreacryo/icefx/pkg/utils"
)

// frostStop 径向渐变色标
type frostStop struct {
	at    float64 // 相对半径 [0, 1]
	color color.NRGBA
}

// 角落霜冻渐变：白 → 冰蓝 → 淡蓝 → 透明（70% 处结束）
var cornerStops = []frostStop{
	{0.0, color.NRGBA{255, 255, 255, 230}},
	{0.3, color.NRGBA{220, 240, 255, 153}},
	{0.6, color.NRGBA{200, 230, 255, 77}},
	{0.7, color.NRGBA{200, 230, 255, 0}},
}

// FrostOverlay 冻结模式的覆盖层
//
// 在自己的表面上绘制四个角落的径向霜冻和一圈边缘霜带，淡入采用缓出曲线。
// 同时维护霜花图层的整体透明度：延迟 CanvasDelayFrames 帧后按阻尼弹簧趋近 1。
type FrostOverlay struct {
	cfg     config.OverlayConfig
	surface *SurfaceManager

	frame int

	spring      harmonica.Spring
	canvasAlpha float64
	canvasVel   float64

	edge color.NRGBA
	poly *utils.Polygon
}

// NewFrostOverlay 创建覆盖层
func NewFrostOverlay(cfg config.OverlayConfig, surface *SurfaceManager) (*FrostOverlay, error) {
	if surface == nil {
		return nil, ErrNoSurface
	}
	return &FrostOverlay{
		cfg:     cfg,
		surface: surface,
		spring:  harmonica.NewSpring(harmonica.FPS(60), cfg.SpringFrequency, cfg.SpringDamping),
		edge:    color.NRGBA{R: 230, G: 245, B: 255, A: 90},
		poly:    utils.NewPolygon(),
	}, nil
}

// Surface 返回覆盖层表面
func (o *FrostOverlay) Surface() *SurfaceManager {
	return o.surface
}

// Update 推进淡入进度和霜花图层透明度
func (o *FrostOverlay) Update(components.FrameContext) {
	o.frame++
	if o.frame <= o.cfg.CanvasDelayFrames {
		return
	}

	o.canvasAlpha, o.canvasVel = o.spring.Update(o.canvasAlpha, o.canvasVel, 1)
	o.canvasAlpha = utils.Clamp01(o.canvasAlpha)
}

// Fade 返回覆盖层当前的淡入系数 [0, 1]
func (o *FrostOverlay) Fade() float64 {
	return utils.EaseOutCubic(utils.Progress(o.frame, o.cfg.FadeFrames))
}

// CanvasAlpha 返回霜花图层应使用的整体透明度 [0, 1]
func (o *FrostOverlay) CanvasAlpha() float64 {
	return o.canvasAlpha
}

// Draw 绘制角落霜冻与边缘霜带
func (o *FrostOverlay) Draw(dst *image.RGBA) {
	if dst == nil {
		return
	}
	fade := o.Fade()
	if fade <= 0 {
		return
	}

	b := dst.Bounds()
	o.drawEdges(dst, b, fade)

	radius := o.cfg.CornerRadius
	corners := []utils.Point{
		{X: float64(b.Min.X), Y: float64(b.Min.Y)},
		{X: float64(b.Max.X), Y: float64(b.Min.Y)},
		{X: float64(b.Min.X), Y: float64(b.Max.Y)},
		{X: float64(b.Max.X), Y: float64(b.Max.Y)},
	}
	for _, c := range corners {
		drawRadialFrost(dst, c, radius, fade)
	}
}

// drawEdges 四条边缘霜带
func (o *FrostOverlay) drawEdges(dst *image.RGBA, b image.Rectangle, fade float64) {
	w := o.cfg.EdgeWidth
	if w <= 0 {
		return
	}
	x0, y0 := float64(b.Min.X), float64(b.Min.Y)
	x1, y1 := float64(b.Max.X), float64(b.Max.Y)

	o.poly.AddPolygon(rect(x0, y0, x1, y0+w))
	o.poly.AddPolygon(rect(x0, y1-w, x1, y1))
	o.poly.AddPolygon(rect(x0, y0+w, x0+w, y1-w))
	o.poly.AddPolygon(rect(x1-w, y0+w, x1, y1-w))
	o.poly.Fill(dst, utils.ScaleAlpha(o.edge, fade))
}

func rect(x0, y0, x1, y1 float64) []utils.Point {
	return []utils.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}

// drawRadialFrost 以 center 为圆心逐像素混合径向渐变
func drawRadialFrost(dst *image.RGBA, center utils.Point, radius, fade float64) {
	if radius <= 0 {
		return
	}
	reach := radius * cornerStops[len(cornerStops)-1].at
	area := image.Rect(
		int(math.Floor(center.X-reach)), int(math.Floor(center.Y-reach)),
		int(math.Ceil(center.X+reach)), int(math.Ceil(center.Y+reach)),
	).Intersect(dst.Bounds())

	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			d := math.Hypot(float64(x)+0.5-center.X, float64(y)+0.5-center.Y) / radius
			c := gradientAt(d)
			if c.A == 0 {
				continue
			}
			blendOver(dst, x, y, utils.ScaleAlpha(c, fade))
		}
	}
}

// gradientAt 在色标之间线性插值
func gradientAt(t float64) color.NRGBA {
	if t <= cornerStops[0].at {
		return cornerStops[0].color
	}
	for i := 1; i < len(cornerStops); i++ {
		a, b := cornerStops[i-1], cornerStops[i]
		if t <= b.at {
			k := (t - a.at) / (b.at - a.at)
			return color.NRGBA{
				R: uint8(math.Round(utils.Lerp(float64(a.color.R), float64(b.color.R), k))),
				G: uint8(math.Round(utils.Lerp(float64(a.color.G), float64(b.color.G), k))),
				B: uint8(math.Round(utils.Lerp(float64(a.color.B), float64(b.color.B), k))),
				A: uint8(math.Round(utils.Lerp(float64(a.color.A), float64(b.color.A), k))),
			}
		}
	}
	return color.NRGBA{}
}

// blendOver 把非预乘颜色 c 以 Over 方式混合到预乘的 RGBA 像素上
func blendOver(dst *image.RGBA, x, y int, c color.NRGBA) {
	if c.A == 0 {
		return
	}
	i := dst.PixOffset(x, y)
	pix := dst.Pix[i : i+4 : i+4]

	a := uint32(c.A)
	ia := 255 - a
	pix[0] = uint8((uint32(c.R)*a + uint32(pix[0])*ia) / 255)
	pix[1] = uint8((uint32(c.G)*a + uint32(pix[1])*ia) / 255)
	pix[2] = uint8((uint32(c.B)*a + uint32(pix[2])*ia) / 255)
	pix[3] = uint8((a*255 + uint32(pix[3])*ia) / 255)
}
