package systems

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand"

	"github.com/koreacryo/icefx/pkg/components"
	"github.com/koreacryo/icefx/pkg/config"
	"github.com/koreacryo/icefx/pkg/utils"
)

// growthEpsilon 生长进度距离 1 小于该值时直接视为长成，避免浮点累加误差
const growthEpsilon = 1e-9

// ParticleField owns the particles of one family, applies per-frame
// kinematics to them and rasterizes them onto its surface.
//
// The collection is order-irrelevant; PopulationController appends and trims
// at the end.
type ParticleField struct {
	family  components.Family
	params  config.FamilyConfig
	surface *SurfaceManager
	rng     *rand.Rand

	particles []components.Particle

	fill   color.NRGBA
	stroke color.NRGBA
	poly   *utils.Polygon
	shape  []utils.Point
}

// NewParticleField 创建粒子场
//
// 参数：
//   - family: 粒子族
//   - params: 该族的参数表
//   - surface: 绘制表面（不能为 nil）
//   - rng: 随机源，nil 时使用默认随机源
func NewParticleField(family components.Family, params config.FamilyConfig, surface *SurfaceManager, rng *rand.Rand) (*ParticleField, error) {
	if surface == nil {
		return nil, ErrNoSurface
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	fill, err := utils.HSVA(params.Fill.Hue, params.Fill.Saturation, params.Fill.Value, params.Fill.Alpha)
	if err != nil {
		return nil, fmt.Errorf("%s fill tint: %w", family, err)
	}
	stroke, err := utils.HSVA(params.Stroke.Hue, params.Stroke.Saturation, params.Stroke.Value, params.Stroke.Alpha)
	if err != nil {
		return nil, fmt.Errorf("%s stroke tint: %w", family, err)
	}

	return &ParticleField{
		family:  family,
		params:  params,
		surface: surface,
		rng:     rng,
		fill:    fill,
		stroke:  stroke,
		poly:    utils.NewPolygon(),
		shape:   make([]utils.Point, 0, 12),
	}, nil
}

// Family 返回粒子族
func (f *ParticleField) Family() components.Family {
	return f.family
}

// Surface 返回绘制表面
func (f *ParticleField) Surface() *SurfaceManager {
	return f.surface
}

// Len 返回当前粒子数量
func (f *ParticleField) Len() int {
	return len(f.particles)
}

// Particles 返回粒子快照（拷贝）
func (f *ParticleField) Particles() []components.Particle {
	out := make([]components.Particle, len(f.particles))
	copy(out, f.particles)
	return out
}

// Spawn creates one particle with randomized state inside the family ranges,
// sized against the surface's current dimensions. It does not add the
// particle to the field.
func (f *ParticleField) Spawn() components.Particle {
	w, h := float64(f.surface.Width()), float64(f.surface.Height())
	if f.family == components.FamilyCrystal {
		return spawnCrystal(f.rng, f.params, w, h)
	}
	return spawnIce(f.rng, f.params, w, h)
}

// Append 生成 n 个粒子并追加到末尾
func (f *ParticleField) Append(n int) {
	for i := 0; i < n; i++ {
		f.particles = append(f.particles, f.Spawn())
	}
}

// TrimTo 从末尾移除粒子直到数量不超过 n
func (f *ParticleField) TrimTo(n int) {
	n = max(n, 0)
	if n < len(f.particles) {
		clear(f.particles[n:])
		f.particles = f.particles[:n]
	}
}

// Clear 丢弃全部粒子
func (f *ParticleField) Clear() {
	f.particles = nil
}

// spawnIce 冰晶：默认在可见区域上方生成，逐渐飘入画面
func spawnIce(rng *rand.Rand, params config.FamilyConfig, w, h float64) components.Particle {
	p := spawnCommon(rng, params, w, h)
	p.Family = components.FamilyIce
	p.Growth = 1
	if params.GrowthRate > 0 {
		p.Growth = 0
	}
	return p
}

// spawnCrystal 霜花：生长进度从 0 开始
func spawnCrystal(rng *rand.Rand, params config.FamilyConfig, w, h float64) components.Particle {
	p := spawnCommon(rng, params, w, h)
	p.Family = components.FamilyCrystal
	p.Growth = 0
	if params.GrowthRate == 0 {
		p.Growth = 1
	}
	return p
}

func spawnCommon(rng *rand.Rand, params config.FamilyConfig, w, h float64) components.Particle {
	y := rng.Float64() * h
	if params.SpawnAbove {
		y -= h
	}

	return components.Particle{
		X:             rng.Float64() * w,
		Y:             y,
		Size:          params.Size.Min + rng.Float64()*params.Size.Span(),
		SpeedY:        params.SpeedY.Min + rng.Float64()*params.SpeedY.Span(),
		SpeedX:        (rng.Float64() - 0.5) * params.SpeedXSpread,
		Opacity:       params.Opacity.Min + rng.Float64()*params.Opacity.Span(),
		Rotation:      rng.Float64() * math.Pi * 2,
		RotationSpeed: (rng.Float64() - 0.5) * params.RotationSpeedSpread,
	}
}

// Update 推进所有粒子一帧
//
// 纵向：Y += SpeedY + |v| * ScrollFall
// 横向：X += SpeedX + v * ScrollDrift
// 越过底部的粒子回到顶部 WrapY 处并重新随机横坐标；横向越界时环绕到另一侧。
func (f *ParticleField) Update(ctx components.FrameContext) {
	v := ctx.ScrollVelocity
	if !isFinite(v) {
		v = 0
	}
	w, h := float64(f.surface.Width()), float64(f.surface.Height())

	fall := math.Abs(v) * f.params.ScrollFall
	drift := v * f.params.ScrollDrift

	for i := range f.particles {
		p := &f.particles[i]

		p.Y += p.SpeedY + fall
		p.X += p.SpeedX + drift
		p.Rotation += p.RotationSpeed

		if f.params.GrowthRate > 0 && p.Growth < 1 {
			p.Growth += f.params.GrowthRate
			if p.Growth >= 1-growthEpsilon {
				p.Growth = 1
			}
		}

		if p.Y >= h {
			p.Y = f.params.WrapY
			p.X = f.rng.Float64() * w
		}
		p.X = wrapX(p.X, w)
	}
}

// wrapX 横向环绕：超出右边界回到 0，小于 0 回到右边界
// 对同一位置重复调用结果不变
func wrapX(x, width float64) float64 {
	if x > width {
		return 0
	}
	if x < 0 {
		return width
	}
	return x
}

// Draw 把所有粒子光栅化到 dst，不修改粒子状态
func (f *ParticleField) Draw(dst *image.RGBA) {
	if dst == nil {
		return
	}
	for i := range f.particles {
		p := f.particles[i]
		alpha := p.Alpha()
		if alpha <= 0 {
			continue
		}
		if f.family == components.FamilyCrystal {
			f.drawCrystal(dst, p, alpha)
		} else {
			f.drawIce(dst, p, alpha)
		}
	}
}

// drawIce 六角星形冰晶：外顶点半径 Size，内顶点半径 Size/2，交替连接
func (f *ParticleField) drawIce(dst *image.RGBA, p components.Particle, alpha float64) {
	f.shape = f.shape[:0]
	for i := 0; i < 6; i++ {
		outer := float64(i) * math.Pi / 3
		inner := outer + math.Pi/6
		f.shape = append(f.shape,
			rotatePoint(p, math.Cos(outer)*p.Size, math.Sin(outer)*p.Size),
			rotatePoint(p, math.Cos(inner)*p.Size*0.5, math.Sin(inner)*p.Size*0.5),
		)
	}
	f.poly.AddPolygon(f.shape)
	f.poly.Fill(dst, utils.ScaleAlpha(f.fill, alpha))
}

// drawCrystal 六边形霜花：半透明填充 + 外轮廓 + 6 条内部辐条
// 尺寸随生长进度缩放
func (f *ParticleField) drawCrystal(dst *image.RGBA, p components.Particle, alpha float64) {
	r := p.Extent()
	if r <= 0 {
		return
	}

	f.shape = f.shape[:0]
	for i := 0; i < 6; i++ {
		angle := float64(i) * math.Pi / 3
		f.shape = append(f.shape, rotatePoint(p, math.Cos(angle)*r, math.Sin(angle)*r))
	}
	f.poly.AddPolygon(f.shape)
	f.poly.Fill(dst, utils.ScaleAlpha(f.fill, alpha))

	width := f.params.StrokeWidth
	if width <= 0 {
		return
	}

	center := rotatePoint(p, 0, 0)
	for i := 0; i < 6; i++ {
		f.poly.AddSegment(f.shape[i], f.shape[(i+1)%6], width)

		angle := float64(i) * math.Pi / 3
		spoke := rotatePoint(p, math.Cos(angle)*r*0.5, math.Sin(angle)*r*0.5)
		f.poly.AddSegment(center, spoke, width)
	}
	f.poly.Fill(dst, utils.ScaleAlpha(f.stroke, alpha))
}

// rotatePoint 把粒子局部坐标 (lx, ly) 旋转并平移到表面坐标
func rotatePoint(p components.Particle, lx, ly float64) utils.Point {
	sin, cos := math.Sincos(p.Rotation)
	return utils.Point{
		X: p.X + lx*cos - ly*sin,
		Y: p.Y + lx*sin + ly*cos,
	}
}
