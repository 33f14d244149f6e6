package script

import (
	"github.com/Shopify/go-lua"

	"github.com/decker502/platformer/pkg/action"
)

const actionTypeName = "unit_action"

func registerActionType(state *lua.State) {
	lua.NewMetaTable(state, actionTypeName)
	state.NewTable()
	lua.SetFunctions(state, actionMethods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)
}

func pushAction(state *lua.State, a action.Action) {
	state.PushUserData(a)
	lua.SetMetaTableNamed(state, actionTypeName)
}

func checkAction(state *lua.State) action.Action {
	ud := lua.CheckUserData(state, 1, actionTypeName)
	if a, ok := ud.(action.Action); ok && a != nil {
		return a
	}
	lua.ArgumentError(state, 1, "unit action expected")
	return nil
}

// 脚本中动作对象的方法，action:xxx() 形式调用
var actionMethods = []lua.RegistryFunction{
	{Name: "name", Function: actionName},
	{Name: "priority", Function: actionPriority},
	{Name: "recovery", Function: actionRecovery},
	{Name: "is_doing", Function: actionIsDoing},
	{Name: "unit_name", Function: actionUnitName},
	{Name: "on_surface", Function: actionOnSurface},
	{Name: "face_right", Function: actionFaceRight},
	{Name: "set_face_right", Function: actionSetFaceRight},
	{Name: "position", Function: actionPosition},
	{Name: "velocity", Function: actionVelocity},
	{Name: "set_velocity_x", Function: actionSetVelocityX},
	{Name: "set_velocity_y", Function: actionSetVelocityY},
	{Name: "move_speed", Function: actionMoveSpeed},
	{Name: "property", Function: actionProperty},
	{Name: "set_property", Function: actionSetProperty},
	{Name: "play", Function: actionPlay},
	{Name: "set_look", Function: actionSetLook},
}

func actionName(state *lua.State) int {
	state.PushString(checkAction(state).Name())
	return 1
}

func actionPriority(state *lua.State) int {
	state.PushInteger(checkAction(state).Priority())
	return 1
}

func actionRecovery(state *lua.State) int {
	state.PushNumber(checkAction(state).Recovery())
	return 1
}

func actionIsDoing(state *lua.State) int {
	state.PushBoolean(checkAction(state).IsDoing())
	return 1
}

func actionUnitName(state *lua.State) int {
	state.PushString(checkAction(state).Owner().Name())
	return 1
}

func actionOnSurface(state *lua.State) int {
	state.PushBoolean(checkAction(state).Owner().IsOnSurface())
	return 1
}

func actionFaceRight(state *lua.State) int {
	state.PushBoolean(checkAction(state).Owner().IsFaceRight())
	return 1
}

func actionSetFaceRight(state *lua.State) int {
	a := checkAction(state)
	a.Owner().SetFaceRight(state.ToBoolean(2))
	return 0
}

func actionPosition(state *lua.State) int {
	p := checkAction(state).Owner().Position()
	state.PushNumber(p.X)
	state.PushNumber(p.Y)
	return 2
}

func actionVelocity(state *lua.State) int {
	v := checkAction(state).Owner().Velocity()
	state.PushNumber(v.X)
	state.PushNumber(v.Y)
	return 2
}

func actionSetVelocityX(state *lua.State) int {
	a := checkAction(state)
	a.Owner().SetVelocityX(lua.CheckNumber(state, 2))
	return 0
}

func actionSetVelocityY(state *lua.State) int {
	a := checkAction(state)
	a.Owner().SetVelocityY(lua.CheckNumber(state, 2))
	return 0
}

func actionMoveSpeed(state *lua.State) int {
	stats := checkAction(state).Owner().Stats()
	state.PushNumber(stats.Move * stats.MoveSpeed)
	return 1
}

func actionProperty(state *lua.State) int {
	a := checkAction(state)
	name := lua.CheckString(state, 2)
	value, ok := a.Owner().Properties()[name]
	if !ok {
		state.PushNil()
		return 1
	}
	state.PushNumber(value)
	return 1
}

func actionSetProperty(state *lua.State) int {
	a := checkAction(state)
	name := lua.CheckString(state, 2)
	a.Owner().Properties()[name] = lua.CheckNumber(state, 3)
	return 0
}

// actionPlay action:play(animation, loop, speed)
func actionPlay(state *lua.State) int {
	a := checkAction(state)
	animation := lua.CheckString(state, 2)
	m := a.Owner().Model()
	m.SetLoop(state.ToBoolean(3))
	m.SetSpeed(lua.OptNumber(state, 4, 1))
	m.SetRecovery(a.Recovery())
	m.Play(animation)
	return 0
}

func actionSetLook(state *lua.State) int {
	a := checkAction(state)
	a.Owner().Model().SetLook(lua.CheckString(state, 2))
	return 0
}
