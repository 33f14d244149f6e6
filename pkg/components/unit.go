package components

import "github.com/decker502/platformer/pkg/unit"

// UnitComponent 将单位挂到实体上
type UnitComponent struct {
	Unit *unit.Unit
}

// PlayerControlComponent 标记由键盘控制的单位
type PlayerControlComponent struct {
	// Walking 上一帧是否按住方向键，松开时取消行走
	Walking bool
}
