package action

// AvailableFunc 脚本动作可用性检查
type AvailableFunc func(a Action) bool

// UpdateFunc 脚本动作的逐帧更新，返回 true 表示动作结束
type UpdateFunc func(a Action, dt float64) bool

// CreateFunc 每次激活时调用，返回本次激活使用的更新函数
type CreateFunc func(a Action) UpdateFunc

// StopFunc 脚本动作停止回调
type StopFunc func(a Action)

// Def 运行时注册的动作定义
type Def struct {
	Name      string
	Priority  int
	Reaction  float64
	Recovery  float64
	Available AvailableFunc
	Create    CreateFunc
	Stop      StopFunc
}

// ToAction 根据定义创建动作实例
func (d *Def) ToAction(owner Unit, services *Services) Action {
	return NewScriptAction(d, owner, services)
}

// ScriptAction 由 Def 驱动的动作
type ScriptAction struct {
	Base
	def    *Def
	update UpdateFunc
}

// NewScriptAction 创建脚本动作
func NewScriptAction(def *Def, owner Unit, services *Services) *ScriptAction {
	s := &ScriptAction{def: def}
	s.init(s, def.Name, def.Priority, owner, services)
	s.reaction = def.Reaction
	s.recovery = def.Recovery
	return s
}

// IsAvailable 未提供检查函数时总是可用
func (s *ScriptAction) IsAvailable() bool {
	if s.def.Available == nil {
		return true
	}
	return s.def.Available(s)
}

// Run 获取本次激活的更新函数并立即以 dt=0 调用一次
// 更新函数返回 true 时动作在 Run 内直接结束
func (s *ScriptAction) Run() {
	s.Base.Run()
	s.update = nil
	if s.def.Create != nil {
		s.update = s.def.Create(s)
	}
	if s.update != nil && s.update(s, 0) {
		s.self.Stop()
	}
}

// Update 调用更新函数，返回 true 时结束
// 结束的这一帧仍然推进条件反射计时
func (s *ScriptAction) Update(dt float64) {
	if s.update != nil && s.update(s, dt) {
		s.self.Stop()
	}
	s.Base.Update(dt)
}

// Stop 调用停止回调并结束动作
func (s *ScriptAction) Stop() {
	s.update = nil
	if s.def.Stop != nil {
		s.def.Stop(s)
	}
	s.Base.Stop()
}
