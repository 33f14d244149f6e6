package entities

import (
	"log"

	"github.com/decker502/platformer/pkg/action"
	"github.com/decker502/platformer/pkg/components"
	"github.com/decker502/platformer/pkg/config"
	"github.com/decker502/platformer/pkg/ecs"
	"github.com/decker502/platformer/pkg/physics"
	"github.com/decker502/platformer/pkg/types"
)

// SensorBullet 子弹检测传感器标签
const SensorBullet = 3

// BulletFactory 子弹工厂
// 实现 action.BulletSpawner 接口
type BulletFactory struct {
	em    *ecs.EntityManager
	world *physics.World
}

// NewBulletFactory 创建子弹工厂
func NewBulletFactory(em *ecs.EntityManager, world *physics.World) *BulletFactory {
	return &BulletFactory{em: em, world: world}
}

// SpawnBullet 在发射者前方生成子弹
//
// 发射点和水平速度按发射者朝向镜像；重力缩放为 0 的子弹直线飞行。
// 子弹只有传感器没有实体夹具，不会被其他传感器感知；子弹也不会感知发射者。
func (f *BulletFactory) SpawnBullet(owner action.Unit, def *config.BulletDef, allow types.TargetAllow, onHit action.HitTargetFunc) {
	f.NewBullet(owner, def, allow, onHit)
}

// NewBullet 生成子弹并返回实体ID
func (f *BulletFactory) NewBullet(owner action.Unit, def *config.BulletDef, allow types.TargetAllow, onHit action.HitTargetFunc) ecs.EntityID {
	dir := 1.0
	if !owner.IsFaceRight() {
		dir = -1
	}
	offset := physics.Vec2{X: def.Offset.X * dir, Y: def.Offset.Y}

	bodyType := physics.BodyKinematic
	if def.GravityScale != 0 {
		bodyType = physics.BodyDynamic
	}

	body := f.world.CreateBody(physics.BodyDef{
		Type:         bodyType,
		Position:     owner.Position().Add(offset),
		Mass:         1,
		GravityScale: def.GravityScale,
	})
	body.SetVelocity(physics.Vec2{X: def.Speed * dir, Y: def.SpeedY})

	bullet := components.NewBulletComponent(body, physics.NewBox(def.Width/2, def.Height/2))
	bullet.Owner = owner
	bullet.Def = def
	bullet.Allow = allow
	bullet.OnHit = onHit
	body.UserData = bullet

	ownerBody := owner.Body()
	bullet.Sensor = body.AttachSensor(SensorBullet, bullet.Detect)
	bullet.Sensor.Filter = func(b *physics.Body) bool {
		return b != ownerBody
	}

	entityID := f.em.CreateEntity()
	ecs.AddComponent(f.em, entityID, bullet)
	ecs.AddComponent(f.em, entityID, &components.LifetimeComponent{MaxLifetime: def.Lifetime})

	log.Printf("[BulletFactory] %s 发射 %s (实体 %d)", owner.Name(), def.Name, entityID)
	return entityID
}
