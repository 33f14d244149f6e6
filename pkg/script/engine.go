// Package script 将动作注册表暴露给 Lua 脚本
//
// 脚本通过全局表 UnitAction 注册动作：
//
//	UnitAction.add(name, priority, reaction, recovery, available, create, stop)
//	UnitAction.clear()
//
// available(action) 返回布尔值；create(action) 返回本次激活的 update(action, dt) 函数，
// update 返回 true 时动作结束；stop(action) 在动作停止时调用。三个回调都可以为 nil。
// Lua 函数保存在 Lua 注册表的引用表中，Go 侧只持有整数引用。
package script

import (
	"fmt"
	"log"
	"path"
	"sort"

	"github.com/Shopify/go-lua"

	"github.com/decker502/platformer/pkg/action"
	"github.com/decker502/platformer/pkg/config"
)

// refsKey 引用表在 Lua 注册表中的键
const refsKey = "platformer.unit_action.refs"

// Engine Lua 状态和动作注册表的绑定
// Engine 不是并发安全的，只能在游戏循环所在的 goroutine 中使用
type Engine struct {
	state    *lua.State
	registry *action.Registry

	nextRef  int
	freeRefs []int
	defRefs  map[string][]int
	active   map[action.Action]int
}

// New 创建 Lua 状态并注册 UnitAction 表
func New(registry *action.Registry) *Engine {
	e := &Engine{
		state:    lua.NewState(),
		registry: registry,
		defRefs:  make(map[string][]int),
		active:   make(map[action.Action]int),
	}
	lua.OpenLibraries(e.state)

	e.state.NewTable()
	e.state.SetField(lua.RegistryIndex, refsKey)

	registerActionType(e.state)
	e.state.NewTable()
	lua.SetFunctions(e.state, []lua.RegistryFunction{
		{Name: "add", Function: e.luaAdd},
		{Name: "clear", Function: e.luaClear},
	}, 0)
	e.state.SetGlobal("UnitAction")
	return e
}

// DoString 执行一段 Lua 代码
//
// 参数:
//   - code: Lua 源码
//   - chunkName: 出错时显示的块名
func (e *Engine) DoString(code, chunkName string) error {
	if err := lua.LoadBuffer(e.state, code, chunkName, "text"); err != nil {
		return fmt.Errorf("load %s: %w", chunkName, err)
	}
	if err := e.state.ProtectedCall(0, 0, 0); err != nil {
		return fmt.Errorf("run %s: %w", chunkName, err)
	}
	return nil
}

// LoadFile 加载并执行脚本文件（优先从嵌入资源读取）
func (e *Engine) LoadFile(file string) error {
	data, err := config.ReadDataFile(file)
	if err != nil {
		return fmt.Errorf("failed to read script %s: %w", file, err)
	}
	return e.DoString(string(data), "@"+file)
}

// LoadDir 按文件名顺序执行目录下的所有 .lua 文件
//
// 返回:
//   - int: 成功执行的文件数
//   - error: 任一文件失败时返回错误，后续文件不再执行
func (e *Engine) LoadDir(dir string) (int, error) {
	files, err := config.GlobDataFiles(path.Join(dir, "*.lua"))
	if err != nil {
		return 0, fmt.Errorf("failed to list scripts: %w", err)
	}
	sort.Strings(files)
	for i, file := range files {
		if err := e.LoadFile(file); err != nil {
			return i, err
		}
	}
	log.Printf("[Script] 加载 %d 个动作脚本: %s", len(files), dir)
	return len(files), nil
}

// RefCount 当前持有的 Lua 函数引用数量
func (e *Engine) RefCount() int {
	return e.nextRef - len(e.freeRefs)
}

// ref 将栈顶的函数存入引用表并弹出，返回引用号
func (e *Engine) ref() int {
	var id int
	if n := len(e.freeRefs); n > 0 {
		id = e.freeRefs[n-1]
		e.freeRefs = e.freeRefs[:n-1]
	} else {
		e.nextRef++
		id = e.nextRef
	}
	e.state.Field(lua.RegistryIndex, refsKey)
	e.state.Insert(-2)
	e.state.RawSetInt(-2, id)
	e.state.Pop(1)
	return id
}

func (e *Engine) unref(id int) {
	e.state.Field(lua.RegistryIndex, refsKey)
	e.state.PushNil()
	e.state.RawSetInt(-2, id)
	e.state.Pop(1)
	e.freeRefs = append(e.freeRefs, id)
}

// call 调用引用的函数，参数为动作和可选的 dt，返回第一个返回值是否为真
// 调用后栈顶保留第一个返回值，由调用方弹出
func (e *Engine) call(id int, a action.Action, dt *float64) error {
	top := e.state.Top()
	e.state.Field(lua.RegistryIndex, refsKey)
	e.state.RawGetInt(-1, id)
	e.state.Remove(-2)
	if !e.state.IsFunction(-1) {
		e.state.SetTop(top)
		e.state.PushNil()
		return fmt.Errorf("function reference %d was released", id)
	}
	pushAction(e.state, a)
	nargs := 1
	if dt != nil {
		e.state.PushNumber(*dt)
		nargs++
	}
	if err := e.state.ProtectedCall(nargs, 1, 0); err != nil {
		// 出错时栈上是错误对象，替换为 nil
		e.state.SetTop(top)
		e.state.PushNil()
		return err
	}
	return nil
}

// luaAdd UnitAction.add(name, priority, reaction, recovery, available, create, stop)
func (e *Engine) luaAdd(l *lua.State) int {
	name := lua.CheckString(l, 1)
	priority := lua.CheckInteger(l, 2)
	reaction := lua.OptNumber(l, 3, -1)
	recovery := lua.OptNumber(l, 4, 0)
	for arg := 5; arg <= 7; arg++ {
		if !l.IsNoneOrNil(arg) && !l.IsFunction(arg) {
			lua.ArgumentError(l, arg, "function or nil expected")
		}
	}

	e.releaseDef(name)
	var refs []int
	takeRef := func(arg int) int {
		if l.IsNoneOrNil(arg) {
			return 0
		}
		l.PushValue(arg)
		id := e.ref()
		refs = append(refs, id)
		return id
	}
	availableRef, createRef, stopRef := takeRef(5), takeRef(6), takeRef(7)
	e.defRefs[name] = refs

	def := &action.Def{
		Name:     name,
		Priority: priority,
		Reaction: reaction,
		Recovery: recovery,
	}
	if availableRef != 0 {
		def.Available = e.availableFunc(name, availableRef)
	}
	if createRef != 0 {
		def.Create = e.createFunc(name, createRef)
	}
	def.Stop = e.stopFunc(name, stopRef)
	e.registry.AddDef(def)
	log.Printf("[Script] 注册动作 %s (priority=%d reaction=%.2f recovery=%.2f)", name, priority, reaction, recovery)
	return 0
}

// luaClear UnitAction.clear()
func (e *Engine) luaClear(l *lua.State) int {
	for name := range e.defRefs {
		e.releaseDef(name)
	}
	e.registry.Clear()
	log.Printf("[Script] 清除所有脚本动作")
	return 0
}

func (e *Engine) releaseDef(name string) {
	for _, id := range e.defRefs[name] {
		e.unref(id)
	}
	delete(e.defRefs, name)
}

func (e *Engine) availableFunc(name string, id int) action.AvailableFunc {
	return func(a action.Action) bool {
		err := e.call(id, a, nil)
		defer e.state.Pop(1)
		if err != nil {
			log.Printf("[Script] 动作 %s available 出错: %v", name, err)
			return false
		}
		return e.state.ToBoolean(-1)
	}
}

// createFunc create 返回的 update 函数按动作实例保存引用，动作停止时释放
func (e *Engine) createFunc(name string, id int) action.CreateFunc {
	return func(a action.Action) action.UpdateFunc {
		e.releaseActive(a)
		if err := e.call(id, a, nil); err != nil {
			e.state.Pop(1)
			log.Printf("[Script] 动作 %s create 出错: %v", name, err)
			return func(action.Action, float64) bool { return true }
		}
		if e.state.IsNil(-1) {
			e.state.Pop(1)
			return nil
		}
		if !e.state.IsFunction(-1) {
			e.state.Pop(1)
			log.Printf("[Script] 动作 %s create 应返回函数", name)
			return func(action.Action, float64) bool { return true }
		}
		updateRef := e.ref()
		e.active[a] = updateRef
		return func(a action.Action, dt float64) bool {
			err := e.call(updateRef, a, &dt)
			defer e.state.Pop(1)
			if err != nil {
				log.Printf("[Script] 动作 %s update 出错: %v", name, err)
				return true
			}
			return e.state.ToBoolean(-1)
		}
	}
}

func (e *Engine) stopFunc(name string, id int) action.StopFunc {
	return func(a action.Action) {
		if id != 0 {
			err := e.call(id, a, nil)
			e.state.Pop(1)
			if err != nil {
				log.Printf("[Script] 动作 %s stop 出错: %v", name, err)
			}
		}
		e.releaseActive(a)
	}
}

func (e *Engine) releaseActive(a action.Action) {
	if ref, ok := e.active[a]; ok {
		e.unref(ref)
		delete(e.active, a)
	}
}
