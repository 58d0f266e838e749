package utils

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// Point 浮点二维坐标
type Point struct {
	X, Y float64
}

// Polygon 软件多边形光栅化器
//
// 先用 AddPolygon / AddSegment 收集若干闭合子路径，再调用 Fill 一次性填充。
// 光栅化区域只覆盖子路径包围盒与目标图像的交集，避免每个粒子都清空整张表面。
//
// 所有子路径使用非零环绕规则叠加，同向子路径重叠部分不会互相抵消。
type Polygon struct {
	z     *vector.Rasterizer
	paths [][]Point

	minX, minY float64
	maxX, maxY float64
}

// NewPolygon 创建光栅化器
func NewPolygon() *Polygon {
	p := &Polygon{z: vector.NewRasterizer(1, 1)}
	p.Reset()
	return p
}

// Reset 丢弃已收集的子路径
func (p *Polygon) Reset() {
	p.paths = p.paths[:0]
	p.minX, p.minY = math.Inf(1), math.Inf(1)
	p.maxX, p.maxY = math.Inf(-1), math.Inf(-1)
}

// Empty 是否没有可绘制的子路径
func (p *Polygon) Empty() bool {
	return len(p.paths) == 0
}

// AddPolygon 添加一个闭合子路径（至少 3 个顶点）
func (p *Polygon) AddPolygon(points []Point) {
	if len(points) < 3 {
		return
	}
	for _, pt := range points {
		if math.IsNaN(pt.X) || math.IsNaN(pt.Y) || math.IsInf(pt.X, 0) || math.IsInf(pt.Y, 0) {
			return
		}
	}

	path := make([]Point, len(points))
	copy(path, points)
	p.paths = append(p.paths, path)

	for _, pt := range path {
		p.minX = math.Min(p.minX, pt.X)
		p.minY = math.Min(p.minY, pt.Y)
		p.maxX = math.Max(p.maxX, pt.X)
		p.maxY = math.Max(p.maxY, pt.Y)
	}
}

// AddSegment 以宽度 width 的细长四边形描边线段 a→b
//
// 四边形的法线总是方向向量逆时针旋转 90°，因此任意方向的线段环绕方向一致。
func (p *Polygon) AddSegment(a, b Point, width float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 || width <= 0 {
		return
	}

	half := width / 2
	nx, ny := -dy/length*half, dx/length*half

	p.AddPolygon([]Point{
		{a.X + nx, a.Y + ny},
		{b.X + nx, b.Y + ny},
		{b.X - nx, b.Y - ny},
		{a.X - nx, a.Y - ny},
	})
}

// Bounds 返回已收集子路径的整数包围盒（向外取整）
func (p *Polygon) Bounds() image.Rectangle {
	if p.Empty() {
		return image.Rectangle{}
	}
	return image.Rect(
		int(math.Floor(p.minX)), int(math.Floor(p.minY)),
		int(math.Ceil(p.maxX)), int(math.Ceil(p.maxY)),
	)
}

// Fill 用颜色 c 填充所有子路径并清空收集状态
//
// 包围盒完全落在 dst 之外时什么都不画。
func (p *Polygon) Fill(dst *image.RGBA, c color.Color) {
	defer p.Reset()

	if p.Empty() || dst == nil {
		return
	}

	clip := p.Bounds().Intersect(dst.Bounds())
	if clip.Empty() {
		return
	}

	ox, oy := float64(clip.Min.X), float64(clip.Min.Y)
	p.z.Reset(clip.Dx(), clip.Dy())
	p.z.DrawOp = draw.Over

	for _, path := range p.paths {
		p.z.MoveTo(float32(path[0].X-ox), float32(path[0].Y-oy))
		for _, pt := range path[1:] {
			p.z.LineTo(float32(pt.X-ox), float32(pt.Y-oy))
		}
		p.z.ClosePath()
	}

	p.z.Draw(dst, clip, image.NewUniform(c), image.Point{})
}
