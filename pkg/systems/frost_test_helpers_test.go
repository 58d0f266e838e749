package systems

import (
	"math/rand"
	"testing"

	"github.com/koreacryo/icefx/pkg/components"
	"github.com/koreacryo/icefx/pkg/config"
)

// newTestField 创建测试用粒子场（固定随机种子）
func newTestField(t *testing.T, family components.Family, width, height int, seed int64) *ParticleField {
	t.Helper()

	cfg := config.DefaultFrostConfig()
	params := cfg.Ice
	if family == components.FamilyCrystal {
		params = cfg.Crystal
	}

	surface := NewSurfaceManager(family.String(), width, height)
	field, err := NewParticleField(family, params, surface, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("NewParticleField() error: %v", err)
	}
	return field
}

// newIceController 使用默认配置的冰晶数量控制器
func newIceController() *PopulationController {
	p := config.DefaultFrostConfig().Population
	return NewPopulationController(IcePolicy{Cap: p.Cap, Gain: p.Gain}, p.Floor)
}
