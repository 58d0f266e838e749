package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// FrostConfig 冰晶粒子特效配置
//
// 描述两种粒子族（漂浮冰晶、霜花结晶）的生成范围、运动参数和颜色，
// 以及冰晶数量策略和冻结模式覆盖层参数。
// 所有速度和增量都以"每帧"为单位，不做时间归一化。
//
// 配置文件位置: data/frost.yaml
type FrostConfig struct {
	// Ice 漂浮冰晶参数
	Ice FamilyConfig `yaml:"ice"`

	// Crystal 霜花结晶参数
	Crystal FamilyConfig `yaml:"crystal"`

	// Population 数量策略
	Population PopulationConfig `yaml:"population"`

	// Overlay 冻结模式覆盖层
	Overlay OverlayConfig `yaml:"overlay"`
}

// Range 浮点范围，生成时在 [Min, Max) 内均匀取值
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Span 返回范围宽度
func (r Range) Span() float64 {
	return r.Max - r.Min
}

// Tint HSV 颜色 + 透明度
//
// Hue 取值 [0, 360)，Saturation / Value / Alpha 取值 [0, 1]。
type Tint struct {
	Hue        float64 `yaml:"hue"`
	Saturation float64 `yaml:"saturation"`
	Value      float64 `yaml:"value"`
	Alpha      float64 `yaml:"alpha"`
}

// FamilyConfig 单个粒子族的参数表
type FamilyConfig struct {
	// 生成范围
	Size    Range `yaml:"size"`
	SpeedY  Range `yaml:"speedY"`
	Opacity Range `yaml:"opacity"`

	// SpeedXSpread 横向速度 = (rand - 0.5) * SpeedXSpread
	SpeedXSpread float64 `yaml:"speedXSpread"`
	// RotationSpeedSpread 旋转速度 = (rand - 0.5) * RotationSpeedSpread
	RotationSpeedSpread float64 `yaml:"rotationSpeedSpread"`

	// SpawnAbove 为 true 时在可见区域上方生成（Y ∈ [-height, 0)），
	// 否则在可见区域内生成（Y ∈ [0, height)）
	SpawnAbove bool `yaml:"spawnAbove"`

	// GrowthRate 每帧生长增量，0 表示生成即完全长成
	GrowthRate float64 `yaml:"growthRate"`

	// 滚动影响系数
	// Y += SpeedY + |v| * ScrollFall
	// X += SpeedX + v * ScrollDrift
	ScrollFall  float64 `yaml:"scrollFall"`
	ScrollDrift float64 `yaml:"scrollDrift"`

	// WrapY 越过底部后重置到的纵坐标
	WrapY float64 `yaml:"wrapY"`

	// 颜色
	Fill        Tint    `yaml:"fill"`
	Stroke      Tint    `yaml:"stroke"`
	StrokeWidth float64 `yaml:"strokeWidth"`
}

// PopulationConfig 数量策略
//
// 冰晶目标数量 = min(Cap, floor(|v| * Gain))，且不低于 Floor。
// 霜花数量在激活时一次性确定为 CrystalCount。
type PopulationConfig struct {
	Floor        int     `yaml:"floor"`
	Cap          int     `yaml:"cap"`
	Gain         float64 `yaml:"gain"`
	CrystalCount int     `yaml:"crystalCount"`
}

// OverlayConfig 冻结模式覆盖层参数（帧为单位）
type OverlayConfig struct {
	// FadeFrames 角落霜冻淡入所需帧数
	FadeFrames int `yaml:"fadeFrames"`
	// CanvasDelayFrames 霜花图层开始淡入前的延迟帧数
	CanvasDelayFrames int `yaml:"canvasDelayFrames"`
	// CornerRadius 角落霜冻半径（像素）
	CornerRadius float64 `yaml:"cornerRadius"`
	// EdgeWidth 边缘霜带宽度（像素）
	EdgeWidth float64 `yaml:"edgeWidth"`

	// 霜花图层淡入弹簧参数
	SpringFrequency float64 `yaml:"springFrequency"`
	SpringDamping   float64 `yaml:"springDamping"`
}

// DefaultFrostConfig 返回默认配置
// 与 data/frost.yaml 保持一致
func DefaultFrostConfig() *FrostConfig {
	return &FrostConfig{
		Ice: FamilyConfig{
			Size:                Range{Min: 1, Max: 4},
			SpeedY:              Range{Min: 1, Max: 3},
			Opacity:             Range{Min: 0.2, Max: 0.7},
			SpeedXSpread:        0.5,
			RotationSpeedSpread: 0.02,
			SpawnAbove:          true,
			GrowthRate:          0,
			ScrollFall:          0.1,
			ScrollDrift:         0.05,
			WrapY:               -10,
			Fill:                Tint{Hue: 0, Saturation: 0, Value: 1, Alpha: 1},
		},
		Crystal: FamilyConfig{
			Size:                Range{Min: 10, Max: 30},
			SpeedY:              Range{Min: 0.05, Max: 0.15},
			Opacity:             Range{Min: 0.1, Max: 0.4},
			SpeedXSpread:        0,
			RotationSpeedSpread: 0.01,
			SpawnAbove:          false,
			GrowthRate:          0.02,
			ScrollFall:          0,
			ScrollDrift:         0,
			WrapY:               -10,
			Fill:                Tint{Hue: 195, Saturation: 0.216, Value: 1, Alpha: 0.3},
			Stroke:              Tint{Hue: 0, Saturation: 0, Value: 1, Alpha: 0.8},
			StrokeWidth:         1,
		},
		Population: PopulationConfig{
			Floor:        10,
			Cap:          50,
			Gain:         5,
			CrystalCount: 50,
		},
		Overlay: OverlayConfig{
			FadeFrames:        90,
			CanvasDelayFrames: 18,
			CornerRadius:      150,
			EdgeWidth:         30,
			SpringFrequency:   4,
			SpringDamping:     1,
		},
	}
}

// LoadFrostConfig 加载冰晶特效配置
//
// 从指定路径加载 YAML 配置，未出现的字段沿用默认值。
//
// 参数:
//   - path: 配置文件路径（如 "data/frost.yaml"）
//
// 返回:
//   - *FrostConfig: 加载并验证后的配置
//   - error: 读取、解析或验证失败时返回错误
func LoadFrostConfig(path string) (*FrostConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read frost config: %w", err)
	}
	return ParseFrostConfig(data)
}

// ParseFrostConfig 解析 YAML 数据（用于嵌入的默认配置）
func ParseFrostConfig(data []byte) (*FrostConfig, error) {
	cfg := DefaultFrostConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse frost config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid frost config: %w", err)
	}

	return cfg, nil
}

// Validate 验证配置有效性
//
// 检查：
//   - 所有范围 Min <= Max，尺寸为正
//   - 冰晶下落速度下限为正（粒子必须持续向下漂移）
//   - 透明度范围在 (0, 1] 内
//   - 数量策略 0 <= Floor <= Cap
func (c *FrostConfig) Validate() error {
	if err := c.Ice.validate("ice"); err != nil {
		return err
	}
	if err := c.Crystal.validate("crystal"); err != nil {
		return err
	}

	p := c.Population
	if p.Floor < 0 || p.Cap < 0 {
		return fmt.Errorf("population floor(%d) and cap(%d) must not be negative", p.Floor, p.Cap)
	}
	if p.Floor > p.Cap {
		return fmt.Errorf("population floor(%d) > cap(%d)", p.Floor, p.Cap)
	}
	if p.Gain < 0 || !isFinite(p.Gain) {
		return fmt.Errorf("population gain must be a non-negative number, got %v", p.Gain)
	}
	if p.CrystalCount < 0 {
		return fmt.Errorf("crystalCount must not be negative, got %d", p.CrystalCount)
	}

	o := c.Overlay
	if o.FadeFrames < 0 || o.CanvasDelayFrames < 0 {
		return fmt.Errorf("overlay frame counts must not be negative")
	}
	if o.SpringFrequency <= 0 {
		return fmt.Errorf("overlay springFrequency must be positive, got %.2f", o.SpringFrequency)
	}

	return nil
}

func (f *FamilyConfig) validate(name string) error {
	ranges := []struct {
		field string
		r     Range
	}{
		{"size", f.Size},
		{"speedY", f.SpeedY},
		{"opacity", f.Opacity},
	}
	for _, item := range ranges {
		if !isFinite(item.r.Min) || !isFinite(item.r.Max) {
			return fmt.Errorf("%s.%s range must be finite", name, item.field)
		}
		if item.r.Min > item.r.Max {
			return fmt.Errorf("%s.%s range invalid: min(%.2f) > max(%.2f)",
				name, item.field, item.r.Min, item.r.Max)
		}
	}

	if f.Size.Min <= 0 {
		return fmt.Errorf("%s.size.min must be positive, got %.2f", name, f.Size.Min)
	}
	if f.SpeedY.Min <= 0 {
		return fmt.Errorf("%s.speedY.min must be positive, got %.2f", name, f.SpeedY.Min)
	}
	if f.Opacity.Min <= 0 || f.Opacity.Max > 1 {
		return fmt.Errorf("%s.opacity must be within (0, 1], got [%.2f, %.2f]",
			name, f.Opacity.Min, f.Opacity.Max)
	}
	if f.GrowthRate < 0 || f.GrowthRate > 1 {
		return fmt.Errorf("%s.growthRate must be within [0, 1], got %.3f", name, f.GrowthRate)
	}

	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// WriteYAML 把配置写入 YAML 文件（遥测输出目录中保存本次运行使用的参数）
func (c *FrostConfig) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal frost config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write frost config: %w", err)
	}
	return nil
}
