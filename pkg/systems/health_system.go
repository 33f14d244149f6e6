package systems

import (
	"log"

	"github.com/decker502/platformer/pkg/components"
	"github.com/decker502/platformer/pkg/config"
	"github.com/decker502/platformer/pkg/ecs"
	"github.com/decker502/platformer/pkg/unit"
)

// DefaultKillPlaneY 掉出关卡的高度，低于此高度的单位生命值归零
const DefaultKillPlaneY = -500.0

// HealthSystem 根据生命值变化触发受击和倒下
//
// 攻击只扣减生命值并记录命中信息，是否进入受击动作由这里决定:
//   - 生命值降到 0 以下：开始倒下，倒下结束后移除单位
//   - 生命值减少：开始受击（优先级仲裁可能拒绝）
type HealthSystem struct {
	entityManager *ecs.EntityManager
	KillPlaneY    float64
}

// NewHealthSystem 创建生命值系统
func NewHealthSystem(em *ecs.EntityManager) *HealthSystem {
	return &HealthSystem{entityManager: em, KillPlaneY: DefaultKillPlaneY}
}

// Update 检查所有单位的生命值
func (s *HealthSystem) Update(dt float64) {
	ids := ecs.GetEntitiesWith2[*components.UnitComponent, *components.HealthComponent](s.entityManager)
	for _, id := range ids {
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}
		unitComp, _ := ecs.GetComponent[*components.UnitComponent](s.entityManager, id)
		health, _ := ecs.GetComponent[*components.HealthComponent](s.entityManager, id)
		u := unitComp.Unit

		if health.Dying {
			if !u.IsDoing(config.UnitActionFall) {
				s.remove(id)
			}
			continue
		}

		if u.Position().Y < s.KillPlaneY && u.HP() > 0 {
			u.Properties()[unit.PropertyHP] = 0
		}

		hp := u.HP()
		switch {
		case hp <= 0:
			health.Dying = true
			health.LastHP = hp
			if !u.Start(config.UnitActionFall) {
				log.Printf("[HealthSystem] %s 无法开始倒下，直接移除", u.Name())
				s.remove(id)
				continue
			}
			log.Printf("[HealthSystem] %s 倒下", u.Name())
		case hp < health.LastHP:
			health.LastHP = hp
			u.Start(config.UnitActionHit)
		default:
			health.LastHP = hp
		}
	}
}

func (s *HealthSystem) remove(id ecs.EntityID) {
	if comp, ok := ecs.GetComponent[*components.UnitComponent](s.entityManager, id); ok {
		comp.Unit.Destroy()
		log.Printf("[HealthSystem] 移除单位 %s (实体 %d)", comp.Unit.Name(), id)
	}
	s.entityManager.DestroyEntity(id)
}
