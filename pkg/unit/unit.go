// Package unit 实现动作系统的所有者：平台游戏中的单位
//
// Unit 持有刚体、传感器、模型和动作槽位。
// 每个槽位保存一个动作实例，实例停止后在下一次访问槽位时重新分配（动作实例只使用一次）。
// 外部（玩家输入、AI）通过 Queue 排队动作请求，Update 时按顺序交给 Start 仲裁。
package unit

import (
	"fmt"
	"log"

	"github.com/gammazero/deque"

	"github.com/decker502/platformer/pkg/action"
	"github.com/decker502/platformer/pkg/config"
	"github.com/decker502/platformer/pkg/model"
	"github.com/decker502/platformer/pkg/physics"
)

// 传感器标签
const (
	SensorGround = 1
	SensorAttack = 2
)

// DefaultActions 单位定义未指定动作列表时挂载的动作
var DefaultActions = []string{
	config.UnitActionIdle,
	config.UnitActionWalk,
	config.UnitActionTurn,
	config.UnitActionJump,
	config.UnitActionCancel,
	config.UnitActionMeleeAttack,
	config.UnitActionHit,
	config.UnitActionFall,
}

// PropertyHP 生命值属性名
const PropertyHP = "hp"

// slot 动作槽位
type slot struct {
	action action.Action
	spent  bool
}

// Unit 单位
type Unit struct {
	name      string
	def       *config.UnitDef
	model     *model.Model
	world     *physics.World
	body      *physics.Body
	ground    *physics.Sensor
	attack    *physics.Sensor
	faceRight bool
	group     int
	stats     action.Stats
	props     map[string]float64
	registry  *action.Registry

	slots   map[string]*slot
	order   []string
	current action.Action
	queue   deque.Deque[string]

	// AIEnabled 为 false 时 AI 不接管该单位（玩家控制）
	AIEnabled bool
}

// New 创建单位并在物理世界中生成刚体
//
// 参数:
//   - world: 物理世界
//   - registry: 动作注册表
//   - def: 单位定义
//   - position: 初始位置（刚体中心）
//   - group: 阵营编号
//   - faceRight: 初始朝向
//
// 返回:
//   - *Unit: 单位实例，已挂载 def.Actions 中的动作
//   - error: 参数为空时返回错误
func New(world *physics.World, registry *action.Registry, def *config.UnitDef, position physics.Vec2, group int, faceRight bool) (*Unit, error) {
	if world == nil {
		return nil, fmt.Errorf("physics world cannot be nil")
	}
	if registry == nil {
		return nil, fmt.Errorf("action registry cannot be nil")
	}
	if def == nil {
		return nil, fmt.Errorf("unit def cannot be nil")
	}

	u := &Unit{
		name:      def.Name,
		def:       def,
		model:     model.New(&def.Model),
		world:     world,
		faceRight: faceRight,
		group:     group,
		stats:     action.StatsFromDef(def),
		props:     map[string]float64{PropertyHP: def.MaxHP},
		registry:  registry,
		slots:     make(map[string]*slot),
		AIEnabled: true,
	}

	u.body = world.CreateBody(physics.BodyDef{
		Type:         physics.BodyDynamic,
		Position:     position,
		Mass:         def.Mass,
		GravityScale: 1,
		UserData:     u,
	})
	halfW, halfH := def.Width/2, def.Height/2
	u.body.AttachFixture(physics.NewBox(halfW, halfH))

	// 脚底薄片，略窄于身体，避免贴墙时误判为着地
	u.ground = u.body.AttachSensor(SensorGround, physics.NewBoxAt(halfW*0.9, 1, physics.Vec2{Y: -halfH}))
	u.ground.Filter = func(b *physics.Body) bool {
		_, isUnit := b.UserData.(*Unit)
		return !isUnit
	}

	attackRange := def.AttackRange
	if attackRange < halfW {
		attackRange = halfW
	}
	u.attack = u.body.AttachSensor(SensorAttack, physics.NewBox(attackRange, halfH))
	u.attack.Filter = func(b *physics.Body) bool {
		_, isUnit := b.UserData.(*Unit)
		return isUnit
	}

	names := def.Actions
	if len(names) == 0 {
		names = DefaultActions
	}
	for _, name := range names {
		if !u.AttachAction(name) {
			log.Printf("[Unit] %s 无法挂载未注册的动作 %s", u.name, name)
		}
	}
	return u, nil
}

// AttachAction 挂载动作槽位
// 名称未注册时返回 false，已挂载时返回 true
func (u *Unit) AttachAction(name string) bool {
	if _, exists := u.slots[name]; exists {
		return true
	}
	a := u.alloc(name)
	if a == nil {
		return false
	}
	u.slots[name] = &slot{action: a}
	u.order = append(u.order, name)
	return true
}

// DetachAction 卸载动作槽位，正在执行时先停止
func (u *Unit) DetachAction(name string) {
	s, exists := u.slots[name]
	if !exists {
		return
	}
	if s.action.IsDoing() {
		s.action.Stop()
	}
	s.action.Destroy()
	delete(u.slots, name)
	for i, n := range u.order {
		if n == name {
			u.order = append(u.order[:i], u.order[i+1:]...)
			break
		}
	}
}

// ActionNames 已挂载的动作名（按挂载顺序）
func (u *Unit) ActionNames() []string {
	return append([]string(nil), u.order...)
}

func (u *Unit) alloc(name string) action.Action {
	a := u.registry.Alloc(name, u)
	if a == nil {
		return nil
	}
	a.Observe(u.onActionStart, u.onActionEnd)
	return a
}

func (u *Unit) onActionStart(a action.Action) {
	log.Printf("[Unit] %s 开始动作 %s", u.name, a.Name())
}

// onActionEnd 动作结束后槽位标记为已用完，下次访问时重新分配
func (u *Unit) onActionEnd(a action.Action) {
	if u.current == a {
		u.current = nil
	}
	if s, ok := u.slots[a.Name()]; ok && s.action == a {
		s.spent = true
	}
}

// slot 返回槽位当前可用的实例，已用完的实例在此替换为新实例
func (u *Unit) slot(name string) action.Action {
	s, ok := u.slots[name]
	if !ok {
		return nil
	}
	if s.spent {
		s.action.Destroy()
		if a := u.alloc(name); a != nil {
			s.action = a
		}
		s.spent = false
	}
	return s.action
}

// Action 按名称返回槽位中的动作实例，未挂载时返回 nil
func (u *Unit) Action(name string) action.Action {
	return u.slot(name)
}

// CurrentAction 正在执行的动作，可能为 nil
func (u *Unit) CurrentAction() action.Action {
	return u.current
}

// IsDoing 指定动作是否正在执行
func (u *Unit) IsDoing(name string) bool {
	return u.current != nil && u.current.Name() == name && u.current.IsDoing()
}

// Start 按优先级仲裁并启动动作
//
// 规则:
//   - 动作已在执行：返回 true
//   - 动作不可用：返回 false
//   - 当前动作正在执行且优先级不低于新动作：返回 false
//   - 否则停止当前动作并运行新动作
//
// 瞬时动作（转身、取消）在 Run 内完成，不会成为当前动作。
func (u *Unit) Start(name string) bool {
	a := u.slot(name)
	if a == nil {
		return false
	}
	if a.IsDoing() {
		return true
	}
	if !a.IsAvailable() {
		return false
	}
	if u.current != nil && u.current.IsDoing() {
		if u.current.Priority() >= a.Priority() {
			return false
		}
		u.current.Stop()
	}
	u.current = nil
	a.Run()
	if a.IsDoing() {
		u.current = a
	}
	return true
}

// Stop 停止当前动作
func (u *Unit) Stop() {
	if u.current != nil && u.current.IsDoing() {
		u.current.Stop()
	}
	u.current = nil
}

// Queue 排队一个动作请求，在下一次 Update 时处理
func (u *Unit) Queue(name string) {
	u.queue.PushBack(name)
}

// QueueLen 排队中的请求数量
func (u *Unit) QueueLen() int {
	return u.queue.Len()
}

// Update 推进一个逻辑帧
//
// 顺序:
//  1. 按顺序处理排队的动作请求
//  2. 没有执行中的动作时启动待机
//  3. 更新当前动作
//  4. 推进动画（可能触发动画结束并停止动作）
func (u *Unit) Update(dt float64) {
	for u.queue.Len() > 0 {
		u.Start(u.queue.PopFront())
	}
	if u.current == nil {
		if _, ok := u.slots[config.UnitActionIdle]; ok {
			u.Start(config.UnitActionIdle)
		}
	}
	if u.current != nil && u.current.IsDoing() {
		u.current.Update(dt)
	}
	u.model.Update(dt)
}

// Destroy 停止当前动作，释放所有动作实例并移除刚体
func (u *Unit) Destroy() {
	u.Stop()
	for _, name := range u.order {
		u.slots[name].action.Destroy()
	}
	u.slots = make(map[string]*slot)
	u.order = nil
	u.queue.Clear()
	if u.body.World() != nil {
		u.world.DestroyBody(u.body)
	}
}

// Name 单位名
func (u *Unit) Name() string { return u.name }

// Def 单位定义
func (u *Unit) Def() *config.UnitDef { return u.def }

// Model 动画接口
func (u *Unit) Model() action.Model { return u.model }

// Animation 动画播放器（渲染使用）
func (u *Unit) Animation() *model.Model { return u.model }

// Body 刚体
func (u *Unit) Body() *physics.Body { return u.body }

// GroundSensor 地面传感器
func (u *Unit) GroundSensor() *physics.Sensor { return u.ground }

// AttackSensor 攻击传感器
func (u *Unit) AttackSensor() *physics.Sensor { return u.attack }

// IsOnSurface 地面传感器感知到至少一个物体
func (u *Unit) IsOnSurface() bool { return u.ground.IsSensed() }

// IsFaceRight 是否朝右
func (u *Unit) IsFaceRight() bool { return u.faceRight }

// SetFaceRight 设置朝向
func (u *Unit) SetFaceRight(faceRight bool) { u.faceRight = faceRight }

// Position 刚体中心位置
func (u *Unit) Position() physics.Vec2 { return u.body.Position() }

// Velocity 刚体速度
func (u *Unit) Velocity() physics.Vec2 { return u.body.Velocity() }

// SetVelocityX 设置水平速度
func (u *Unit) SetVelocityX(x float64) { u.body.SetVelocityX(x) }

// SetVelocityY 设置垂直速度
func (u *Unit) SetVelocityY(y float64) { u.body.SetVelocityY(y) }

// Width 宽度
func (u *Unit) Width() float64 { return u.def.Width }

// Height 高度
func (u *Unit) Height() float64 { return u.def.Height }

// Group 阵营编号
func (u *Unit) Group() int { return u.group }

// Stats 运行时属性
func (u *Unit) Stats() *action.Stats { return &u.stats }

// Properties 数值属性表
func (u *Unit) Properties() map[string]float64 { return u.props }

// HP 当前生命值
func (u *Unit) HP() float64 { return u.props[PropertyHP] }
