package action

import (
	"github.com/decker502/platformer/pkg/config"
	"github.com/decker502/platformer/pkg/model"
	"github.com/decker502/platformer/pkg/physics"
)

// Hit 受击
// 命中信息由攻击方在触发前通过 SetHitInfo 写入
type Hit struct {
	Base
	hitPoint     physics.Vec2
	attackPower  physics.Vec2
	hitFromRight bool
	token        model.Token
}

// NewHit 创建受击动作
func NewHit(owner Unit, services *Services) *Hit {
	h := &Hit{hitFromRight: true}
	h.init(h, config.UnitActionHit, 0, owner, services)
	h.priority = h.services.setting().PriorityOf(config.UnitActionHit)
	h.setTimings(config.UnitActionHit)
	h.token = owner.Model().Subscribe(config.AnimationHit, h.onAnimationEnd)
	return h
}

// SetHitInfo 写入命中信息
func (h *Hit) SetHitInfo(hitPoint, attackPower physics.Vec2, hitFromRight bool) {
	h.hitPoint = hitPoint
	h.attackPower = attackPower
	h.hitFromRight = hitFromRight
}

// HitPoint 命中点（世界坐标）
func (h *Hit) HitPoint() physics.Vec2 { return h.hitPoint }

// AttackPower 击退速度
func (h *Hit) AttackPower() physics.Vec2 { return h.attackPower }

// IsHitFromRight 是否从右侧被击中
func (h *Hit) IsHitFromRight() bool { return h.hitFromRight }

// Run 播放受击动画，施加击退并转向攻击来源
func (h *Hit) Run() {
	m := h.owner.Model()
	m.SetLook(config.LookSad)
	m.SetLoop(false)
	m.SetRecovery(h.recovery)
	m.SetSpeed(1)
	m.Play(config.AnimationHit)

	h.services.spawnEffect(h.owner.Def().HitEffect, h.owner, h.hitPoint.Sub(h.owner.Position()))

	knockX := h.attackPower.X
	if h.hitFromRight {
		knockX = -knockX
	}
	h.owner.SetVelocityX(knockX)
	h.owner.SetVelocityY(h.attackPower.Y)
	h.owner.SetFaceRight(h.hitFromRight)
	h.Base.Run()
}

// Update 受击期间不触发条件反射
func (h *Hit) Update(float64) {}

// Stop 结束受击
func (h *Hit) Stop() {
	h.Base.Stop()
	h.owner.Model().Stop()
}

// Destroy 取消动画结束订阅
func (h *Hit) Destroy() {
	h.owner.Model().Unsubscribe(h.token)
}

func (h *Hit) onAnimationEnd(string) {
	if h.isDoing {
		h.self.Stop()
	}
}

// Fall 倒下（死亡）
type Fall struct {
	Base
	token model.Token
}

// NewFall 创建倒下动作
func NewFall(owner Unit, services *Services) *Fall {
	f := &Fall{}
	f.init(f, config.UnitActionFall, 0, owner, services)
	f.priority = f.services.setting().PriorityOf(config.UnitActionFall)
	f.setTimings(config.UnitActionFall)
	f.token = owner.Model().Subscribe(config.AnimationFall, f.onAnimationEnd)
	return f
}

// Run 播放倒下动画、受击特效和死亡音效
func (f *Fall) Run() {
	m := f.owner.Model()
	m.SetLook(config.LookFallen)
	m.SetLoop(false)
	m.SetRecovery(f.recovery)
	m.SetSpeed(1)
	m.Play(config.AnimationFall)

	def := f.owner.Def()
	f.services.spawnEffect(def.HitEffect, f.owner, physics.Vec2{})
	f.services.playSound(def.SndDeath)
	f.Base.Run()
}

// Update 倒下期间不触发条件反射
func (f *Fall) Update(float64) {}

// Stop 结束倒下
func (f *Fall) Stop() {
	f.Base.Stop()
	f.owner.Model().Stop()
}

// Destroy 取消动画结束订阅
func (f *Fall) Destroy() {
	f.owner.Model().Unsubscribe(f.token)
}

func (f *Fall) onAnimationEnd(string) {
	if f.isDoing {
		f.self.Stop()
	}
}
