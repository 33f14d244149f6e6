package entities

import (
	"fmt"
	"log"

	"github.com/decker502/platformer/pkg/action"
	"github.com/decker502/platformer/pkg/components"
	"github.com/decker502/platformer/pkg/config"
	"github.com/decker502/platformer/pkg/ecs"
	"github.com/decker502/platformer/pkg/physics"
	"github.com/decker502/platformer/pkg/unit"
)

// UnitSpawn 单位生成参数
type UnitSpawn struct {
	Def       *config.UnitDef
	Position  physics.Vec2
	Group     int
	FaceRight bool
	Player    bool // 由键盘控制，关闭 AI
}

// NewUnitEntity 创建单位实体
//
// 参数:
//   - em: 实体管理器
//   - world: 物理世界
//   - registry: 动作注册表
//   - spawn: 生成参数
//
// 返回:
//   - ecs.EntityID: 创建的实体ID，如果失败返回 0
//   - *unit.Unit: 单位实例
//   - error: 如果创建失败返回错误信息
func NewUnitEntity(em *ecs.EntityManager, world *physics.World, registry *action.Registry, spawn UnitSpawn) (ecs.EntityID, *unit.Unit, error) {
	if em == nil {
		return 0, nil, fmt.Errorf("entity manager cannot be nil")
	}

	u, err := unit.New(world, registry, spawn.Def, spawn.Position, spawn.Group, spawn.FaceRight)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create unit: %w", err)
	}
	u.AIEnabled = !spawn.Player

	entityID := em.CreateEntity()
	ecs.AddComponent(em, entityID, &components.UnitComponent{Unit: u})
	ecs.AddComponent(em, entityID, &components.HealthComponent{
		MaxHP:  spawn.Def.MaxHP,
		LastHP: u.HP(),
	})
	if spawn.Player {
		ecs.AddComponent(em, entityID, &components.PlayerControlComponent{})
	}

	log.Printf("[UnitFactory] 创建单位 %d: %s group=%d at (%.0f, %.0f)",
		entityID, spawn.Def.Name, spawn.Group, spawn.Position.X, spawn.Position.Y)
	return entityID, u, nil
}
