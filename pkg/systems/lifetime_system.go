package systems

import (
	"log"

	"github.com/decker502/platformer/pkg/components"
	"github.com/decker502/platformer/pkg/ecs"
)

// LifetimeSystem 到期移除子弹和特效
//
// 子弹到期说明它没有命中任何目标，单独计数，便于调试射程和速度配置。
type LifetimeSystem struct {
	entityManager  *ecs.EntityManager
	expiredBullets int
	expiredOthers  int
}

// NewLifetimeSystem 创建生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager) *LifetimeSystem {
	return &LifetimeSystem{entityManager: em}
}

// Update 累加存在时间，到期的实体标记删除
// 已被其他系统标记删除的实体不再计时
func (s *LifetimeSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager) {
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}
		lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		if !lifetime.Advance(deltaTime) {
			continue
		}

		if bullet, ok := ecs.GetComponent[*components.BulletComponent](s.entityManager, id); ok {
			s.expiredBullets++
			if bullet.Def != nil {
				log.Printf("[LifetimeSystem] 子弹 %s 未命中，%.2fs 后移除", bullet.Def.Name, lifetime.CurrentLifetime)
			}
		} else {
			s.expiredOthers++
		}
		s.entityManager.DestroyEntity(id)
	}
}

// Expired 到期移除的子弹数和其他实体数
func (s *LifetimeSystem) Expired() (bullets, others int) {
	return s.expiredBullets, s.expiredOthers
}
