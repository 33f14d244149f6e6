package action

import (
	"github.com/decker502/platformer/pkg/config"
	"github.com/decker502/platformer/pkg/model"
	"github.com/decker502/platformer/pkg/physics"
	"github.com/decker502/platformer/pkg/types"
)

// Unit 动作的所有者
// 动作只借用所有者引用，不拥有它
type Unit interface {
	Name() string
	Def() *config.UnitDef
	Model() Model
	Body() *physics.Body

	// GroundSensor 脚下的地面传感器
	GroundSensor() *physics.Sensor
	// AttackSensor 近战攻击范围传感器，可为 nil
	AttackSensor() *physics.Sensor
	// IsOnSurface 是否站在地面上
	IsOnSurface() bool

	IsFaceRight() bool
	SetFaceRight(faceRight bool)
	Position() physics.Vec2
	Velocity() physics.Vec2
	SetVelocityX(x float64)
	SetVelocityY(y float64)
	Width() float64
	Group() int

	// Stats 单位的运行时属性（移动、攻击等）
	Stats() *Stats
	// Properties 数值属性表，伤害直接修改 "hp"
	Properties() map[string]float64
	// Action 按名称查找单位挂载的动作，未挂载时返回 nil
	Action(name string) Action
}

// Model 动作使用的动画接口，由 model.Model 实现
type Model interface {
	Play(name string)
	Resume(name string)
	Pause()
	Stop()
	SetLoop(loop bool)
	SetSpeed(speed float64)
	SetRecovery(recovery float64)
	SetLook(look string)
	CurrentAnimationName() string
	Subscribe(animation string, handler model.EndHandler) model.Token
	Unsubscribe(token model.Token)
	KeyPoint(name string) physics.Vec2
	IsFaceRight() bool
}

// Stats 单位运行时属性
type Stats struct {
	Move         float64
	MoveSpeed    float64
	Jump         float64
	AttackSpeed  float64
	AttackBase   float64
	AttackBonus  float64
	AttackFactor float64
	AttackPower  physics.Vec2
	DamageType   string
	DefenceType  string
	Sensitivity  float64
	TargetAllow  types.TargetAllow
}

// StatsFromDef 根据单位定义生成初始属性
func StatsFromDef(def *config.UnitDef) Stats {
	allow := types.TargetAllow(0)
	for _, name := range def.TargetAllow {
		allow.Allow(types.ParseRelation(name), true)
	}
	allow.AllowTerrain(def.AllowTerrain)
	return Stats{
		Move:         def.Move,
		MoveSpeed:    def.MoveSpeed,
		Jump:         def.Jump,
		AttackSpeed:  def.AttackSpeed,
		AttackBase:   def.AttackBase,
		AttackBonus:  def.AttackBonus,
		AttackFactor: def.AttackFactor,
		AttackPower:  def.AttackPower,
		DamageType:   def.DamageType,
		DefenceType:  def.DefenceType,
		Sensitivity:  def.Sensitivity,
		TargetAllow:  allow,
	}
}

// Reflex AI 条件反射接口
type Reflex interface {
	ConditionedReflex(owner Unit)
}

// Audio 音效播放接口
type Audio interface {
	PlaySound(soundID string) bool
}

// EffectSpawner 视觉特效生成接口
// local 为相对所有者位置的偏移
type EffectSpawner interface {
	SpawnEffect(name string, owner Unit, local physics.Vec2)
}

// Bullet 远程攻击发射的子弹
type Bullet interface {
	Body() *physics.Body
	DetectShape() *physics.Polygon
}

// HitTargetFunc 子弹命中回调，返回 true 表示子弹应被移除
type HitTargetFunc func(bullet Bullet, target Unit) bool

// BulletSpawner 子弹生成接口
type BulletSpawner interface {
	SpawnBullet(owner Unit, def *config.BulletDef, allow types.TargetAllow, onHit HitTargetFunc)
}

// RelationTable 阵营关系查询接口
type RelationTable interface {
	Relation(a, b Unit) types.Relation
}

// DamageTable 伤害类型克制表接口，由 config.DamageTable 实现
type DamageTable interface {
	DamageFactor(damageType, defenceType string) float64
}

// DamagedFunc 伤害回调
type DamagedFunc func(attacker, target Unit, damage float64)

// HitReceiver 可以接收命中信息的动作（受击动作）
type HitReceiver interface {
	SetHitInfo(hitPoint, attackPower physics.Vec2, hitFromRight bool)
}

// Services 动作运行所需的外部协作者
// 任一字段为空表示该功能关闭
type Services struct {
	Setting    *config.ActionSetting
	AI         Reflex
	Audio      Audio
	Effects    EffectSpawner
	Bullets    BulletSpawner
	Relations  RelationTable
	Damage     DamageTable
	PreciseHit bool
	Damaged    DamagedFunc
}

var defaultSetting = config.DefaultActionSetting()

func (s *Services) setting() *config.ActionSetting {
	if s.Setting != nil {
		return s.Setting
	}
	return defaultSetting
}

func (s *Services) playSound(soundID string) {
	if soundID != "" && s.Audio != nil {
		s.Audio.PlaySound(soundID)
	}
}

func (s *Services) spawnEffect(name string, owner Unit, local physics.Vec2) {
	if name != "" && s.Effects != nil {
		s.Effects.SpawnEffect(name, owner, local)
	}
}

// relation 未配置关系表时，同阵营为友方，其余为敌方
func (s *Services) relation(a, b Unit) types.Relation {
	if s.Relations != nil {
		return s.Relations.Relation(a, b)
	}
	if a.Group() == b.Group() {
		return types.RelationFriend
	}
	return types.RelationEnemy
}
