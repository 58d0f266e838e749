package systems

import (
	"log"
	"math"
)

// PopulationPolicy 把外部信号映射为目标粒子数量
type PopulationPolicy interface {
	Target(velocity float64) int
}

// IcePolicy 冰晶数量策略：target = min(Cap, floor(|v| * Gain))
type IcePolicy struct {
	Cap  int
	Gain float64
}

// Target 计算目标数量，非有限速度视为 0
func (p IcePolicy) Target(velocity float64) int {
	if !isFinite(velocity) {
		return 0
	}
	t := math.Floor(math.Abs(velocity) * p.Gain)
	if t > float64(p.Cap) {
		return p.Cap
	}
	return int(t)
}

// FixedPolicy 固定数量策略（霜花）
type FixedPolicy struct {
	Count int
}

// Target 始终返回 Count
func (p FixedPolicy) Target(float64) int {
	return p.Count
}

// PopulationController reconciles a ParticleField's size toward the policy
// target. Shrinking never goes below Floor, so an active field always keeps a
// minimum ambient presence.
type PopulationController struct {
	policy PopulationPolicy
	floor  int
	target int
}

// NewPopulationController 创建数量控制器
func NewPopulationController(policy PopulationPolicy, floor int) *PopulationController {
	return &PopulationController{
		policy: policy,
		floor:  max(floor, 0),
	}
}

// Floor 返回数量下限
func (c *PopulationController) Floor() int {
	return c.floor
}

// Target 返回最近一次计算的目标数量
func (c *PopulationController) Target() int {
	return c.target
}

// Activate 激活时填充初始数量：max(Floor, policy.Target(0))
//
// 冰晶得到下限数量，霜花得到固定数量。
func (c *PopulationController) Activate(field *ParticleField) int {
	c.target = max(c.floor, c.policy.Target(0))
	c.Reconcile(field, c.target)
	log.Printf("[PopulationController] %s field activated with %d particles", field.Family(), field.Len())
	return field.Len()
}

// OnSignal 根据新的速度信号重新计算目标并调和
func (c *PopulationController) OnSignal(field *ParticleField, velocity float64) int {
	c.target = c.policy.Target(velocity)
	c.Reconcile(field, c.target)
	return field.Len()
}

// Reconcile 把实际数量调和到 target
//
// 数量不足时在末尾生成新粒子；数量过多且高于 Floor 时从末尾移除，
// 最多移除到 max(target, Floor)。返回生成和移除的数量。
func (c *PopulationController) Reconcile(field *ParticleField, target int) (spawned, removed int) {
	if field == nil {
		return 0, 0
	}

	n := field.Len()
	if n < target {
		spawned = target - n
		field.Append(spawned)
		return spawned, 0
	}

	keep := max(target, c.floor)
	if n > keep {
		removed = n - keep
		field.TrimTo(keep)
	}
	return 0, removed
}
