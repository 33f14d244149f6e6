package action

import (
	"testing"

	"github.com/decker502/platformer/pkg/config"
)

// TestRegistryAllocNatives 测试内置动作的创建
func TestRegistryAllocNatives(t *testing.T) {
	_, u := newWorldWithUnit()
	r := NewRegistry(nil)

	tests := []struct {
		name  string
		check func(a Action) bool
	}{
		{config.UnitActionWalk, func(a Action) bool { _, ok := a.(*Walk); return ok }},
		{config.UnitActionTurn, func(a Action) bool { _, ok := a.(*Turn); return ok }},
		{config.UnitActionMeleeAttack, func(a Action) bool { _, ok := a.(*MeleeAttack); return ok }},
		{config.UnitActionRangeAttack, func(a Action) bool { _, ok := a.(*RangeAttack); return ok }},
		{config.UnitActionIdle, func(a Action) bool { _, ok := a.(*Idle); return ok }},
		{config.UnitActionCancel, func(a Action) bool { _, ok := a.(*Cancel); return ok }},
		{config.UnitActionJump, func(a Action) bool { _, ok := a.(*Jump); return ok }},
		{config.UnitActionHit, func(a Action) bool { _, ok := a.(*Hit); return ok }},
		{config.UnitActionFall, func(a Action) bool { _, ok := a.(*Fall); return ok }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := r.Alloc(tt.name, u)
			if a == nil {
				t.Fatalf("Alloc(%q) returned nil", tt.name)
			}
			if !tt.check(a) {
				t.Errorf("Alloc(%q) returned %T", tt.name, a)
			}
			if a.Name() != tt.name {
				t.Errorf("Name() = %q, want %q", a.Name(), tt.name)
			}
			if a.Owner() != Unit(u) {
				t.Error("Owner() should be the allocating unit")
			}
		})
	}
}

// TestRegistryAllocFreshInstances 每次 Alloc 返回新实例
func TestRegistryAllocFreshInstances(t *testing.T) {
	_, u := newWorldWithUnit()
	r := NewRegistry(nil)
	a := r.Alloc(config.UnitActionWalk, u)
	b := r.Alloc(config.UnitActionWalk, u)
	if a == b {
		t.Error("Alloc should return a new instance each time")
	}
}

// TestRegistryUnknownName 未注册的名称返回 nil
func TestRegistryUnknownName(t *testing.T) {
	_, u := newWorldWithUnit()
	r := NewRegistry(nil)
	if a := r.Alloc("nonexistent", u); a != nil {
		t.Errorf("Alloc(nonexistent) = %T, want nil", a)
	}
	if r.Has("nonexistent") {
		t.Error("Has(nonexistent) should be false")
	}
}

// TestRegistryDynamicShadowsNative 动作定义遮蔽同名内置动作，Clear 后恢复
func TestRegistryDynamicShadowsNative(t *testing.T) {
	_, u := newWorldWithUnit()
	r := NewRegistry(nil)

	// Given: 注册同名的脚本动作
	r.Add(config.UnitActionWalk, 7, -1, 0.3, nil, nil, nil)

	// When
	a := r.Alloc(config.UnitActionWalk, u)

	// Then: 返回脚本动作
	script, ok := a.(*ScriptAction)
	if !ok {
		t.Fatalf("Alloc(walk) = %T, want *ScriptAction", a)
	}
	if script.Priority() != 7 || script.Recovery() != 0.3 || script.Reaction() != -1 {
		t.Errorf("script action params = %d/%.2f/%.2f", script.Priority(), script.Recovery(), script.Reaction())
	}
	if def, ok := r.Def(config.UnitActionWalk); !ok || def.Priority != 7 {
		t.Error("Def(walk) should return the registered definition")
	}

	// When: Clear
	r.Clear()

	// Then: 内置动作恢复
	if _, ok := r.Alloc(config.UnitActionWalk, u).(*Walk); !ok {
		t.Error("after Clear, Alloc(walk) should return the native Walk")
	}
	if _, ok := r.Def(config.UnitActionWalk); ok {
		t.Error("Clear should remove all definitions")
	}
}

// TestRegistryNames 列出所有动作名
func TestRegistryNames(t *testing.T) {
	r := NewRegistry(nil)
	r.Add("dash", 2, -1, 0, nil, nil, nil)
	r.Add(config.UnitActionWalk, 1, -1, 0, nil, nil, nil)

	names := r.Names()
	if len(names) != 10 {
		t.Fatalf("Names() = %v, want 10 unique names", names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("Names() not sorted: %v", names)
		}
	}
}

// TestRegistryRegisterNative 登记新的内置动作
func TestRegistryRegisterNative(t *testing.T) {
	_, u := newWorldWithUnit()
	r := NewRegistry(nil)
	r.Register("taunt", func(owner Unit, s *Services) Action { return NewCancel(owner, s) })
	if a := r.Alloc("taunt", u); a == nil {
		t.Error("registered native should be allocatable")
	}
}
