package systems

import (
	"github.com/decker502/platformer/pkg/components"
	"github.com/decker502/platformer/pkg/ecs"
	"github.com/decker502/platformer/pkg/physics"
)

// PhysicsSystem 推进物理世界，并释放被删除实体的刚体
type PhysicsSystem struct {
	em    *ecs.EntityManager
	world *physics.World
}

// NewPhysicsSystem 创建物理系统
//
// 参数:
//   - em: 实体管理器，用于查询子弹和单位实体
//   - world: 物理世界
//
// 返回:
//   - *PhysicsSystem: 物理系统实例
func NewPhysicsSystem(em *ecs.EntityManager, world *physics.World) *PhysicsSystem {
	return &PhysicsSystem{
		em:    em,
		world: world,
	}
}

// World 物理世界
func (ps *PhysicsSystem) World() *physics.World { return ps.world }

// Update 推进物理世界 dt 秒，结束时所有传感器已刷新
func (ps *PhysicsSystem) Update(dt float64) {
	ps.world.Step(dt)
}

// ReleaseMarked 移除已标记删除实体的刚体
// 必须在 EntityManager.RemoveMarkedEntities 之前调用，否则组件已不可查
//
// 返回:
//   - int: 本次移除的刚体数量
func (ps *PhysicsSystem) ReleaseMarked() int {
	released := 0
	for _, id := range ecs.GetEntitiesWith1[*components.BulletComponent](ps.em) {
		if !ps.em.IsMarkedForDestroy(id) {
			continue
		}
		bullet, _ := ecs.GetComponent[*components.BulletComponent](ps.em, id)
		if body := bullet.Body(); body != nil && body.World() != nil {
			ps.world.DestroyBody(body)
			released++
		}
	}
	for _, id := range ecs.GetEntitiesWith1[*components.UnitComponent](ps.em) {
		if !ps.em.IsMarkedForDestroy(id) {
			continue
		}
		comp, _ := ecs.GetComponent[*components.UnitComponent](ps.em, id)
		if body := comp.Unit.Body(); body.World() != nil {
			comp.Unit.Destroy()
			released++
		}
	}
	return released
}
