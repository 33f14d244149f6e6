package systems

import (
	"log"

	"github.com/decker502/platformer/pkg/action"
	"github.com/decker502/platformer/pkg/components"
	"github.com/decker502/platformer/pkg/ecs"
	"github.com/decker502/platformer/pkg/physics"
	"github.com/decker502/platformer/pkg/types"
	"github.com/decker502/platformer/pkg/unit"
)

// BulletSystem 处理子弹命中
//
// 物理步进结束后检查每颗子弹传感器感知到的刚体:
//   - 目标许可允许的单位：调用命中回调，回调返回 true 时移除子弹
//   - 静态刚体（地面、墙）：移除子弹
//
// 同一颗子弹在一帧内最多命中一个单位。
type BulletSystem struct {
	em        *ecs.EntityManager
	relations action.RelationTable
	effects   action.EffectSpawner
}

// NewBulletSystem 创建子弹系统
//
// 参数:
//   - em: 实体管理器
//   - relations: 阵营关系表，为 nil 时同阵营为友方，其余为敌方
//   - effects: 命中特效生成器，可为 nil
func NewBulletSystem(em *ecs.EntityManager, relations action.RelationTable, effects action.EffectSpawner) *BulletSystem {
	return &BulletSystem{em: em, relations: relations, effects: effects}
}

// Update 检查所有子弹的命中
func (s *BulletSystem) Update(dt float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.BulletComponent](s.em) {
		if s.em.IsMarkedForDestroy(id) {
			continue
		}
		bullet, _ := ecs.GetComponent[*components.BulletComponent](s.em, id)
		if bullet.Sensor == nil {
			continue
		}
		for _, body := range bullet.Sensor.SensedBodies() {
			if s.handleContact(id, bullet, body) {
				break
			}
		}
	}
}

// handleContact 处理一次接触，返回 true 表示子弹本帧不再处理
func (s *BulletSystem) handleContact(id ecs.EntityID, bullet *components.BulletComponent, body *physics.Body) bool {
	if body.Type() == physics.BodyStatic {
		s.spawnHitEffect(bullet, bullet.Body().Position())
		s.em.DestroyEntity(id)
		return true
	}

	target, ok := body.UserData.(*unit.Unit)
	if !ok || target.HP() <= 0 {
		return false
	}
	if !bullet.Allow.IsAllow(s.relation(bullet.Owner, target)) {
		return false
	}

	remove := true
	if bullet.OnHit != nil {
		remove = bullet.OnHit(bullet, target)
	}
	if remove {
		s.spawnHitEffect(bullet, bullet.Body().Position())
		s.em.DestroyEntity(id)
		log.Printf("[BulletSystem] %s 命中 %s", bullet.Def.Name, target.Name())
	}
	return true
}

func (s *BulletSystem) relation(owner action.Unit, target action.Unit) types.Relation {
	if s.relations != nil {
		return s.relations.Relation(owner, target)
	}
	if owner.Group() == target.Group() {
		return types.RelationFriend
	}
	return types.RelationEnemy
}

func (s *BulletSystem) spawnHitEffect(bullet *components.BulletComponent, at physics.Vec2) {
	if s.effects == nil || bullet.Def == nil || bullet.Def.HitEffect == "" || bullet.Owner == nil {
		return
	}
	s.effects.SpawnEffect(bullet.Def.HitEffect, bullet.Owner, at.Sub(bullet.Owner.Position()))
}
