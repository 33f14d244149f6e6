package action

import (
	"log"
	"math"

	"github.com/decker502/platformer/pkg/config"
	"github.com/decker502/platformer/pkg/model"
	"github.com/decker502/platformer/pkg/physics"
)

// attackPerformer 近战和远程攻击在判定时刻的具体行为
type attackPerformer interface {
	onAttack()
}

// Attack 攻击动作的公共部分
//
// 攻击动画开始后，经过 attackDelay 触发一次判定，经过 attackEffectDelay 生成一次攻击特效。
// 两个延迟都会除以攻击速度，并在触发后置为 -1，保证每次激活只触发一次。
// 攻击动画播放结束时动作自动停止。
type Attack struct {
	Base
	performer attackPerformer

	attackDelay       float64
	attackEffectDelay float64
	elapsed           float64

	token model.Token
}

func (a *Attack) initAttack(self Action, performer attackPerformer, name string, owner Unit, services *Services) {
	a.init(self, name, 0, owner, services)
	a.priority = a.services.setting().PriorityOf(config.SettingAttack)
	a.setTimings(config.SettingAttack)
	a.performer = performer
	a.token = owner.Model().Subscribe(config.AnimationAttack, a.onAnimationEnd)
}

// Run 开始攻击
func (a *Attack) Run() {
	def := a.owner.Def()
	attackSpeed := a.owner.Stats().AttackSpeed
	if attackSpeed <= 0 {
		attackSpeed = 1
	}
	a.elapsed = 0
	a.attackDelay = def.AttackDelay / attackSpeed
	a.attackEffectDelay = def.AttackEffectDelay / attackSpeed

	m := a.owner.Model()
	m.SetLoop(false)
	m.SetLook(config.LookFight)
	m.SetRecovery(a.recovery)
	m.SetSpeed(attackSpeed)
	m.Play(config.AnimationAttack)
	a.Base.Run()
}

// Update 推进攻击计时
func (a *Attack) Update(dt float64) {
	a.elapsed += dt
	if a.attackDelay >= 0 && a.elapsed >= a.attackDelay {
		a.attackDelay = -1
		a.services.playSound(a.owner.Def().SndAttack)
		a.performer.onAttack()
	}
	if a.attackEffectDelay >= 0 && a.elapsed >= a.attackEffectDelay {
		a.attackEffectDelay = -1
		a.spawnAttackEffect()
	}
	a.Base.Update(dt)
}

// Stop 结束攻击并停止动画
func (a *Attack) Stop() {
	a.Base.Stop()
	a.owner.Model().Stop()
}

// Destroy 取消动画结束订阅
func (a *Attack) Destroy() {
	a.owner.Model().Unsubscribe(a.token)
}

func (a *Attack) onAnimationEnd(string) {
	if a.isDoing {
		a.self.Stop()
	}
}

// spawnAttackEffect 在模型的攻击关键点生成攻击特效
// 素材朝向与单位朝向相反时关键点 X 取反
func (a *Attack) spawnAttackEffect() {
	name := a.owner.Def().AttackEffect
	if name == "" {
		return
	}
	m := a.owner.Model()
	key := m.KeyPoint(config.KeyPointAttack)
	if m.IsFaceRight() != a.owner.IsFaceRight() {
		key.X = -key.X
	}
	a.services.spawnEffect(name, a.owner, key)
}

// Damage 计算对目标造成的伤害
//
// 伤害 = (attackBase + attackBonus) * (attackFactor + 克制系数)
func (a *Attack) Damage(target Unit) float64 {
	stats := a.owner.Stats()
	factor := 0.0
	if a.services.Damage != nil {
		factor = a.services.Damage.DamageFactor(stats.DamageType, target.Stats().DefenceType)
	}
	return (stats.AttackBase + stats.AttackBonus) * (stats.AttackFactor + factor)
}

// applyDamage 扣除目标 hp 并通知伤害回调
func (a *Attack) applyDamage(target Unit) {
	damage := a.Damage(target)
	props := target.Properties()
	props["hp"] -= damage
	if a.services.Damaged != nil {
		a.services.Damaged(a.owner, target, damage)
	}
}

// HitPoint 计算攻击形状与目标形状之间最近点作为命中点
//
// 参数:
//   - shape: 攻击方形状（近战检测框或子弹检测框）
//   - xf: 攻击方形状的变换
//   - target: 被攻击单位
//
// 返回:
//   - physics.Vec2: 目标所有实体形状中距攻击形状最近的点（世界坐标）
//     目标没有实体形状时返回目标位置
func HitPoint(shape *physics.Polygon, xf physics.Transform, target Unit) physics.Vec2 {
	body := target.Body()
	if body == nil || shape == nil {
		return target.Position()
	}
	if point, ok := closestPoint(shape, xf, body); ok {
		return point
	}
	return target.Position()
}

// closestPoint 在 body 的所有实体形状中查找距 shape 最近的点
// body 没有实体形状时返回 false
func closestPoint(shape *physics.Polygon, xf physics.Transform, body *physics.Body) (physics.Vec2, bool) {
	var point physics.Vec2
	best := math.Inf(1)
	found := false
	for _, f := range body.Fixtures() {
		if f.IsSensor() {
			continue
		}
		out := physics.Distance(shape, xf, f.Shape(), body.Transform())
		if out.Distance < best {
			best = out.Distance
			point = out.PointB
			found = true
		}
	}
	return point, found
}

// solidShape 返回 body 的第一个实体形状
func solidShape(body *physics.Body) *physics.Polygon {
	for _, f := range body.Fixtures() {
		if !f.IsSensor() {
			return f.Shape()
		}
	}
	return nil
}

// hitPointFrom 根据设置选择精确命中点或目标位置
func (a *Attack) hitPointFrom(shape *physics.Polygon, xf physics.Transform, target Unit) physics.Vec2 {
	if a.services.PreciseHit {
		return HitPoint(shape, xf, target)
	}
	return target.Position()
}

// MeleeAttack 近战攻击
// 判定时刻对攻击传感器内所有合法目标造成伤害
type MeleeAttack struct {
	Attack
	detect *physics.Polygon
}

// NewMeleeAttack 创建近战攻击
// 检测形状宽为单位宽度、高度近似为 0 的水平线段
func NewMeleeAttack(owner Unit, services *Services) *MeleeAttack {
	m := &MeleeAttack{}
	m.initAttack(m, m, config.UnitActionMeleeAttack, owner, services)
	m.detect = physics.NewBox(owner.Width()*0.5, 0.0005)
	return m
}

// onAttack 判定近战命中
//
// 目标需满足:
//   - 是单位且不是自己
//   - 位于所有者面朝的一侧
//   - 关系在 targetAllow 内
//   - 挂载了受击动作
func (m *MeleeAttack) onAttack() {
	sensor := m.owner.AttackSensor()
	if sensor == nil {
		return
	}
	stats := m.owner.Stats()
	xf := m.owner.Body().Transform()

	sensed := append([]*physics.Body(nil), sensor.SensedBodies()...)
	for _, body := range sensed {
		target, ok := body.UserData.(Unit)
		if !ok || target == m.owner {
			continue
		}
		attackRight := m.owner.Position().X < target.Position().X
		if attackRight != m.owner.IsFaceRight() {
			continue
		}
		if !stats.TargetAllow.IsAllow(m.services.relation(m.owner, target)) {
			continue
		}
		hit, ok := target.Action(config.UnitActionHit).(HitReceiver)
		if !ok {
			continue
		}
		hit.SetHitInfo(m.hitPointFrom(m.detect, xf, target), stats.AttackPower, !attackRight)
		m.applyDamage(target)
	}
}

// RangeAttack 远程攻击
// 判定时刻发射一颗子弹，子弹命中时结算伤害
type RangeAttack struct {
	Attack
}

// NewRangeAttack 创建远程攻击
func NewRangeAttack(owner Unit, services *Services) *RangeAttack {
	r := &RangeAttack{}
	r.initAttack(r, r, config.UnitActionRangeAttack, owner, services)
	return r
}

func (r *RangeAttack) onAttack() {
	def := r.owner.Def().Bullet
	if def == nil {
		log.Printf("[Action] 单位 %s 没有子弹定义，远程攻击无效", r.owner.Name())
		return
	}
	if r.services.Bullets == nil {
		return
	}
	r.services.Bullets.SpawnBullet(r.owner, def, r.owner.Stats().TargetAllow, r.onHitTarget)
}

// onHitTarget 子弹命中回调
// 子弹水平速度为正时视为从左侧命中
func (r *RangeAttack) onHitTarget(bullet Bullet, target Unit) bool {
	if hit, ok := target.Action(config.UnitActionHit).(HitReceiver); ok {
		body := bullet.Body()
		attackRight := body.Velocity().X > 0
		hitPoint := r.hitPointFrom(bullet.DetectShape(), body.Transform(), target)
		hit.SetHitInfo(hitPoint, r.owner.Stats().AttackPower, !attackRight)
	}
	r.applyDamage(target)
	return true
}
