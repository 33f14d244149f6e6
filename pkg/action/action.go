// Package action 实现单位动作系统
//
// 每个动作是单位的一个离散行为状态（行走、转身、待机、跳跃、取消、攻击、受击、倒下、脚本动作）。
// 动作生命周期：
//  1. Registry.Alloc 创建实例
//  2. Run 激活，IsDoing 变为 true
//  3. 激活期间每个逻辑帧调用 Update(dt)
//  4. Stop 停用（主动停止或由动画结束触发），每个实例只调用一次
//  5. Destroy 释放动画订阅，实例不再复用
//
// 动作之间不互相切换，选择下一个动作由所有者（Unit）按优先级仲裁。
package action

// Observer 动作开始/结束观察者
type Observer func(a Action)

// Action 单位动作接口
type Action interface {
	Name() string
	Priority() int
	Reaction() float64
	Recovery() float64
	IsDoing() bool
	Owner() Unit

	// IsAvailable 无副作用的可用性检查
	IsAvailable() bool
	Run()
	Update(dt float64)
	Stop()

	// Observe 设置开始和结束观察者，可为 nil
	Observe(start, end Observer)
	// Destroy 释放实例持有的订阅
	Destroy()
}

// Base 动作的公共实现
// 具体动作嵌入 Base，并在构造时调用 init 传入自身
type Base struct {
	self     Action
	name     string
	priority int
	owner    Unit
	services *Services

	isDoing     bool
	reflexDelta float64

	reaction float64
	recovery float64

	actionStart Observer
	actionEnd   Observer
}

func (b *Base) init(self Action, name string, priority int, owner Unit, services *Services) {
	if services == nil {
		services = &Services{}
	}
	b.self = self
	b.name = name
	b.priority = priority
	b.owner = owner
	b.services = services
	b.reaction = -1
}

// Name 动作名
func (b *Base) Name() string { return b.name }

// Priority 优先级
func (b *Base) Priority() int { return b.priority }

// Reaction 反应时间（秒），负值表示不触发条件反射
func (b *Base) Reaction() float64 { return b.reaction }

// Recovery 恢复时间（秒）
func (b *Base) Recovery() float64 { return b.recovery }

// IsDoing 是否正在执行
func (b *Base) IsDoing() bool { return b.isDoing }

// Owner 所有者
func (b *Base) Owner() Unit { return b.owner }

// Services 外部协作者
func (b *Base) Services() *Services { return b.services }

// IsAvailable 默认总是可用
func (b *Base) IsAvailable() bool { return true }

// Observe 设置开始和结束观察者
func (b *Base) Observe(start, end Observer) {
	b.actionStart = start
	b.actionEnd = end
}

// Run 激活动作
func (b *Base) Run() {
	b.isDoing = true
	b.reflexDelta = 0
	b.notifyStart()
}

// Update 条件反射检查
// 累计时间达到 sensitivity * reaction 后清零并通知 AI
func (b *Base) Update(dt float64) {
	if b.reaction < 0 {
		return
	}
	reactionTime := b.owner.Stats().Sensitivity * b.reaction
	if reactionTime < 0 {
		return
	}
	b.reflexDelta += dt
	if b.reflexDelta >= reactionTime {
		b.reflexDelta = 0
		if b.services.AI != nil {
			b.services.AI.ConditionedReflex(b.owner)
		}
	}
}

// Stop 停用动作
func (b *Base) Stop() {
	b.isDoing = false
	b.notifyEnd()
}

// Destroy 默认无需释放
func (b *Base) Destroy() {}

func (b *Base) notifyStart() {
	if b.actionStart != nil {
		b.actionStart(b.self)
	}
}

func (b *Base) notifyEnd() {
	if b.actionEnd != nil {
		b.actionEnd(b.self)
	}
}

// setTimings 从动作设置读取反应和恢复时间
func (b *Base) setTimings(settingKey string) {
	s := b.services.setting()
	b.reaction = s.ReactionOf(settingKey)
	b.recovery = s.RecoveryOf(settingKey)
}
