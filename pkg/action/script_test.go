package action

import "testing"

// TestScriptActionLifecycle 测试脚本动作的回调顺序
func TestScriptActionLifecycle(t *testing.T) {
	// Given: update 在第 3 次调用时返回 true（Run 内的 dt=0 调用算第 1 次）
	_, u := newWorldWithUnit()
	var creates, stops int
	var dts []float64
	def := &Def{
		Name:     "dash",
		Priority: 2,
		Reaction: -1,
		Available: func(a Action) bool {
			return a.Owner().IsOnSurface()
		},
		Create: func(Action) UpdateFunc {
			creates++
			calls := 0
			return func(_ Action, dt float64) bool {
				calls++
				dts = append(dts, dt)
				return calls >= 3
			}
		},
		Stop: func(Action) { stops++ },
	}
	a := def.ToAction(u, nil)

	if !a.IsAvailable() {
		t.Fatal("dash should be available on surface")
	}
	u.onSurface = false
	if a.IsAvailable() {
		t.Fatal("dash should delegate availability")
	}

	// When: Run
	a.Run()

	// Then: create 调用一次，update 以 dt=0 调用一次
	if creates != 1 || len(dts) != 1 || dts[0] != 0 {
		t.Fatalf("after Run: creates=%d dts=%v", creates, dts)
	}

	a.Update(0.1)
	if !a.IsDoing() || stops != 0 {
		t.Fatal("dash should still be doing after the second update")
	}
	a.Update(0.1)
	if a.IsDoing() {
		t.Error("dash should stop when update returns true")
	}
	if stops != 1 {
		t.Errorf("stop callback calls = %d, want 1", stops)
	}
}

// TestScriptActionStopInRun update 在 Run 内返回 true 时立即结束
func TestScriptActionStopInRun(t *testing.T) {
	_, u := newWorldWithUnit()
	counter := &observerCounter{}
	def := &Def{
		Name: "blink",
		Create: func(Action) UpdateFunc {
			return func(Action, float64) bool { return true }
		},
	}
	a := NewScriptAction(def, u, nil)
	counter.observe(a)
	a.Run()

	if a.IsDoing() {
		t.Error("blink should finish inside Run")
	}
	if counter.starts != 1 || counter.ends != 1 {
		t.Errorf("observers: starts=%d ends=%d, want 1/1", counter.starts, counter.ends)
	}
}

// TestScriptActionWithoutCallbacks 无回调时总是可用且不会自行结束
func TestScriptActionWithoutCallbacks(t *testing.T) {
	_, u := newWorldWithUnit()
	ai := &countingAI{}
	a := NewScriptAction(&Def{Name: "guard", Reaction: 1}, u, &Services{AI: ai})
	if !a.IsAvailable() {
		t.Fatal("action without available callback should be available")
	}
	a.Run()
	a.Update(1)
	if !a.IsDoing() {
		t.Error("action without update callback should keep running")
	}
	if ai.calls != 1 {
		t.Errorf("reflex calls = %d, want 1", ai.calls)
	}
}
