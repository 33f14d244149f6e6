package action

import (
	"log"
	"sort"

	"github.com/decker502/platformer/pkg/config"
)

// Factory 内置动作构造函数
type Factory func(owner Unit, services *Services) Action

// Registry 动作注册表
//
// 维护两个按名称索引的表：
//   - natives: 内置动作构造函数
//   - defs: 运行时注册的动作定义（脚本动作）
//
// Alloc 先查 defs 再查 natives，因此同名的动作定义会遮蔽内置动作。
// 注册表在场景加载时创建，场景卸载时 Clear，所有调用都在逻辑线程内完成。
type Registry struct {
	services *Services
	natives  map[string]Factory
	defs     map[string]*Def
}

// NewRegistry 创建注册表并登记全部内置动作
//
// 参数:
//   - services: 动作使用的外部协作者，可为 nil
func NewRegistry(services *Services) *Registry {
	if services == nil {
		services = &Services{}
	}
	r := &Registry{
		services: services,
		natives:  make(map[string]Factory),
		defs:     make(map[string]*Def),
	}
	r.Register(config.UnitActionWalk, func(u Unit, s *Services) Action { return NewWalk(u, s) })
	r.Register(config.UnitActionTurn, func(u Unit, s *Services) Action { return NewTurn(u, s) })
	r.Register(config.UnitActionMeleeAttack, func(u Unit, s *Services) Action { return NewMeleeAttack(u, s) })
	r.Register(config.UnitActionRangeAttack, func(u Unit, s *Services) Action { return NewRangeAttack(u, s) })
	r.Register(config.UnitActionIdle, func(u Unit, s *Services) Action { return NewIdle(u, s) })
	r.Register(config.UnitActionCancel, func(u Unit, s *Services) Action { return NewCancel(u, s) })
	r.Register(config.UnitActionJump, func(u Unit, s *Services) Action { return NewJump(u, s) })
	r.Register(config.UnitActionHit, func(u Unit, s *Services) Action { return NewHit(u, s) })
	r.Register(config.UnitActionFall, func(u Unit, s *Services) Action { return NewFall(u, s) })
	return r
}

// Services 返回注册表使用的外部协作者
func (r *Registry) Services() *Services { return r.services }

// Register 登记内置动作构造函数，同名时覆盖
func (r *Registry) Register(name string, factory Factory) {
	r.natives[name] = factory
}

// Add 注册脚本动作定义，同名时覆盖之前的定义
func (r *Registry) Add(name string, priority int, reaction, recovery float64, available AvailableFunc, create CreateFunc, stop StopFunc) {
	r.AddDef(&Def{
		Name:      name,
		Priority:  priority,
		Reaction:  reaction,
		Recovery:  recovery,
		Available: available,
		Create:    create,
		Stop:      stop,
	})
}

// AddDef 注册脚本动作定义
func (r *Registry) AddDef(def *Def) {
	if _, exists := r.natives[def.Name]; exists {
		log.Printf("[ActionRegistry] 动作定义 %s 遮蔽内置动作", def.Name)
	}
	r.defs[def.Name] = def
}

// Clear 清除所有脚本动作定义，内置动作保留
func (r *Registry) Clear() {
	r.defs = make(map[string]*Def)
}

// Def 查询脚本动作定义
func (r *Registry) Def(name string) (*Def, bool) {
	def, ok := r.defs[name]
	return def, ok
}

// Has 名称是否已注册（任一表）
func (r *Registry) Has(name string) bool {
	if _, ok := r.defs[name]; ok {
		return true
	}
	_, ok := r.natives[name]
	return ok
}

// Names 返回所有已注册动作名（排序后）
func (r *Registry) Names() []string {
	seen := make(map[string]struct{}, len(r.natives)+len(r.defs))
	for name := range r.natives {
		seen[name] = struct{}{}
	}
	for name := range r.defs {
		seen[name] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Alloc 为单位创建一个新的动作实例
//
// 参数:
//   - name: 动作名
//   - owner: 动作所有者
//
// 返回:
//   - Action: 新实例，名称未注册时返回 nil
func (r *Registry) Alloc(name string, owner Unit) Action {
	if def, ok := r.defs[name]; ok {
		return def.ToAction(owner, r.services)
	}
	if factory, ok := r.natives[name]; ok {
		return factory(owner, r.services)
	}
	return nil
}
