package systems

import (
	"github.com/decker502/platformer/pkg/components"
	"github.com/decker502/platformer/pkg/ecs"
)

// ActionSystem 每帧推进所有单位的动作
//
// 单位 Update 依次处理排队请求、当前动作和动画。AI 的反应回调发生在动作 Update 内，
// 产生的请求在下一帧处理。
type ActionSystem struct {
	entityManager *ecs.EntityManager
}

// NewActionSystem 创建动作系统
func NewActionSystem(em *ecs.EntityManager) *ActionSystem {
	return &ActionSystem{entityManager: em}
}

// Update 按实体ID顺序更新单位，已标记删除的单位跳过
func (s *ActionSystem) Update(dt float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.UnitComponent](s.entityManager) {
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}
		comp, ok := ecs.GetComponent[*components.UnitComponent](s.entityManager, id)
		if !ok || comp.Unit == nil {
			continue
		}
		comp.Unit.Update(dt)
	}
}
