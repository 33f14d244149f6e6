package entities

import (
	"github.com/decker502/platformer/pkg/action"
	"github.com/decker502/platformer/pkg/components"
	"github.com/decker502/platformer/pkg/ecs"
	"github.com/decker502/platformer/pkg/physics"
)

// DefaultEffectDuration 未配置时长的特效显示时间（秒）
const DefaultEffectDuration = 0.3

// EffectFactory 视觉特效工厂
// 实现 action.EffectSpawner 接口
type EffectFactory struct {
	em        *ecs.EntityManager
	durations map[string]float64
}

// NewEffectFactory 创建特效工厂
//
// 参数:
//   - em: 实体管理器
//   - durations: 特效名 -> 显示时长（秒），可为 nil
func NewEffectFactory(em *ecs.EntityManager, durations map[string]float64) *EffectFactory {
	if durations == nil {
		durations = make(map[string]float64)
	}
	return &EffectFactory{em: em, durations: durations}
}

// SpawnEffect 在所有者位置加局部偏移处生成特效
func (f *EffectFactory) SpawnEffect(name string, owner action.Unit, local physics.Vec2) {
	f.NewEffect(name, owner.Position().Add(local), owner.IsFaceRight())
}

// NewEffect 在世界坐标处生成特效，返回实体ID
func (f *EffectFactory) NewEffect(name string, position physics.Vec2, faceRight bool) ecs.EntityID {
	duration, ok := f.durations[name]
	if !ok || duration <= 0 {
		duration = DefaultEffectDuration
	}

	entityID := f.em.CreateEntity()
	ecs.AddComponent(f.em, entityID, &components.EffectComponent{
		Name:      name,
		Position:  position,
		FaceRight: faceRight,
	})
	ecs.AddComponent(f.em, entityID, &components.LifetimeComponent{MaxLifetime: duration})
	return entityID
}
