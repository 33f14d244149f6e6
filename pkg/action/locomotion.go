package action

import (
	"log"
	"math"

	"github.com/decker502/platformer/pkg/config"
)

// Walk 行走
// 速度在 recovery 时间内从 0 线性增加到 move * moveSpeed
type Walk struct {
	Base
	elapsedTime float64
}

// NewWalk 创建行走动作
func NewWalk(owner Unit, services *Services) *Walk {
	w := &Walk{}
	w.init(w, config.UnitActionWalk, 0, owner, services)
	w.priority = w.services.setting().PriorityOf(config.UnitActionWalk)
	w.setTimings(config.UnitActionWalk)
	return w
}

// IsAvailable 只有站在地面上才能行走
func (w *Walk) IsAvailable() bool {
	return w.owner.IsOnSurface()
}

// Run 开始行走
func (w *Walk) Run() {
	m := w.owner.Model()
	m.SetSpeed(w.owner.Stats().MoveSpeed)
	m.SetLoop(true)
	m.SetLook(config.LookNormal)
	m.SetRecovery(w.recovery)
	m.Resume(config.AnimationWalk)
	w.elapsedTime = 0
	w.Base.Run()
}

// Update 推进速度渐变，离开地面时停止
func (w *Walk) Update(dt float64) {
	if w.owner.IsOnSurface() {
		stats := w.owner.Stats()
		move := stats.Move * stats.MoveSpeed
		if w.elapsedTime < w.recovery {
			w.elapsedTime = math.Min(w.elapsedTime+dt, w.recovery)
			move *= w.elapsedTime / w.recovery
		}
		if w.owner.IsFaceRight() {
			w.owner.SetVelocityX(move)
		} else {
			w.owner.SetVelocityX(-move)
		}
	} else {
		w.self.Stop()
	}
	w.Base.Update(dt)
}

// Stop 停止行走并暂停动画
func (w *Walk) Stop() {
	w.Base.Stop()
	w.owner.Model().Pause()
}

// Turn 转身
// 瞬时动作：Run 内完成翻转并立即结束，IsDoing 保持为 false
type Turn struct {
	Base
}

// NewTurn 创建转身动作
func NewTurn(owner Unit, services *Services) *Turn {
	t := &Turn{}
	t.init(t, config.UnitActionTurn, 0, owner, services)
	t.priority = t.services.setting().PriorityOf(config.UnitActionTurn)
	return t
}

// Run 翻转朝向，先后通知开始和结束观察者
func (t *Turn) Run() {
	t.owner.SetFaceRight(!t.owner.IsFaceRight())
	t.notifyStart()
	t.notifyEnd()
}

// Idle 待机
// 不在地面时播放跳跃动画
type Idle struct {
	Base
}

// NewIdle 创建待机动作
func NewIdle(owner Unit, services *Services) *Idle {
	i := &Idle{}
	i.init(i, config.UnitActionIdle, 0, owner, services)
	i.priority = i.services.setting().PriorityOf(config.UnitActionIdle)
	i.setTimings(config.UnitActionIdle)
	return i
}

// Run 开始待机
func (i *Idle) Run() {
	m := i.owner.Model()
	m.SetSpeed(1)
	m.SetLoop(true)
	m.SetLook(config.LookNormal)
	m.SetRecovery(i.recovery)
	if i.owner.IsOnSurface() {
		m.Resume(config.AnimationIdle)
	} else {
		m.Resume(config.AnimationJump)
	}
	i.Base.Run()
}

// Update 根据是否着地切换动画
func (i *Idle) Update(dt float64) {
	m := i.owner.Model()
	if !i.owner.IsOnSurface() {
		m.Resume(config.AnimationJump)
	} else if m.CurrentAnimationName() != config.AnimationIdle {
		m.Resume(config.AnimationIdle)
	}
	i.Base.Update(dt)
}

// Stop 停止待机并暂停动画
func (i *Idle) Stop() {
	i.Base.Stop()
	i.owner.Model().Pause()
}

// Jump 跳跃
//
// 起跳后 JumpGroundIgnoreTime 内不检测地面，也不触发条件反射。
// 之后每个站在地面上的帧切换到 idle 动画，累计到 JumpGroundIgnoreTime + recovery/2 时结束。
type Jump struct {
	Base
	duration float64
}

// NewJump 创建跳跃动作
func NewJump(owner Unit, services *Services) *Jump {
	j := &Jump{}
	j.init(j, config.UnitActionJump, 0, owner, services)
	j.priority = j.services.setting().PriorityOf(config.UnitActionJump)
	j.setTimings(config.UnitActionJump)
	return j
}

// IsAvailable 只有站在地面上才能起跳
func (j *Jump) IsAvailable() bool {
	return j.owner.IsOnSurface()
}

// Run 起跳
//
// 设置垂直速度后，在脚下第一个物体距单位最近的点上施加反作用冲量。
// 地面传感器为空时跳过冲量。
func (j *Jump) Run() {
	m := j.owner.Model()
	m.SetSpeed(1)
	m.SetLoop(true)
	m.SetLook(config.LookNormal)
	m.SetRecovery(j.recovery)
	m.Resume(config.AnimationJump)

	j.owner.SetVelocityY(j.owner.Stats().Jump)
	j.applyReaction()

	j.duration = 0
	j.Base.Run()
}

func (j *Jump) applyReaction() {
	sensor := j.owner.GroundSensor()
	if sensor == nil {
		return
	}
	bodies := sensor.SensedBodies()
	if len(bodies) == 0 {
		log.Printf("[Action] 单位 %s 起跳时地面传感器为空，跳过反作用冲量", j.owner.Name())
		return
	}
	target := bodies[0]
	body := j.owner.Body()
	point := target.Position()
	if shape := solidShape(body); shape != nil {
		if p, ok := closestPoint(shape, body.Transform(), target); ok {
			point = p
		}
	}
	impulse := j.owner.Velocity().Mul(-body.Mass())
	target.ApplyLinearImpulse(impulse, point)
}

// Update 宽限期后在地面上保持 recovery/2 再结束
func (j *Jump) Update(dt float64) {
	if j.duration < config.JumpGroundIgnoreTime {
		j.duration += dt
		return
	}
	if j.owner.IsOnSurface() {
		m := j.owner.Model()
		m.SetRecovery(j.recovery * 0.5)
		m.Resume(config.AnimationIdle)
		if j.duration < config.JumpGroundIgnoreTime+j.recovery*0.5 {
			j.duration += dt
		} else {
			j.self.Stop()
		}
	}
	j.Base.Update(dt)
}

// Stop 结束跳跃
func (j *Jump) Stop() {
	j.Base.Stop()
	j.owner.Model().Pause()
}

// Cancel 取消
// 以最高优先级运行并立即结束，用于打断当前动作
type Cancel struct {
	Base
}

// NewCancel 创建取消动作
func NewCancel(owner Unit, services *Services) *Cancel {
	c := &Cancel{}
	c.init(c, config.UnitActionCancel, config.PriorityCancel, owner, services)
	return c
}

// Run 立即通知开始和结束
func (c *Cancel) Run() {
	c.notifyStart()
	c.notifyEnd()
}

