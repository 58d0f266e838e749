package components

// Family 粒子族类型
// 同一个 ParticleField 只持有一种族的粒子
type Family int

const (
	// FamilyIce 漂浮冰晶（页面常驻，随滚动速度增减）
	FamilyIce Family = iota
	// FamilyCrystal 霜花结晶（冻结模式激活时生成，带生长动画）
	FamilyCrystal
)

// String 返回族名称，用于日志和配置
func (f Family) String() string {
	switch f {
	case FamilyIce:
		return "ice"
	case FamilyCrystal:
		return "crystal"
	default:
		return "unknown"
	}
}

// Particle represents one simulated ice flake or frost crystal.
//
// This is a plain value record: ParticleField owns the slice of particles and
// applies the per-frame kinematics, rendering never mutates it.
type Particle struct {
	Family Family

	// 位置（表面局部坐标，Y 可以为负表示尚未进入画面）
	X float64
	Y float64

	// Size 基础尺寸（像素），冰晶 1~4，霜花 10~30
	Size float64

	// 速度（每帧像素）
	SpeedX float64 // 横向漂移，有符号
	SpeedY float64 // 向下漂移，始终为正

	// 装饰性旋转（弧度）
	Rotation      float64
	RotationSpeed float64 // 每帧弧度

	// Opacity 粒子自身透明度 (0, 1]，生成后不变
	Opacity float64

	// Growth 生长进度 [0, 1]
	// 只有霜花使用；冰晶生成时即为 1
	Growth float64
}

// Alpha 返回绘制时使用的最终透明度
// 霜花的透明度同时乘以生长进度
func (p Particle) Alpha() float64 {
	if p.Family == FamilyCrystal {
		return p.Opacity * p.Growth
	}
	return p.Opacity
}

// Extent 返回绘制时使用的半径
func (p Particle) Extent() float64 {
	if p.Family == FamilyCrystal {
		return p.Size * p.Growth
	}
	return p.Size
}
