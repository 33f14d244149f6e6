package game

import (
	"testing"

	"github.com/decker502/platformer/pkg/action"
	"github.com/decker502/platformer/pkg/config"
	"github.com/decker502/platformer/pkg/physics"
	"github.com/decker502/platformer/pkg/types"
	"github.com/decker502/platformer/pkg/unit"
)

func aiTestDef(name string, actions ...string) *config.UnitDef {
	return &config.UnitDef{
		Name:         name,
		Width:        20,
		Height:       40,
		Mass:         1,
		Move:         100,
		MoveSpeed:    1,
		Jump:         300,
		MaxHP:        100,
		Sensitivity:  1,
		AttackBase:   10,
		AttackFactor: 1,
		AttackSpeed:  1,
		AttackRange:  40,
		TargetAllow:  []string{"enemy"},
		Actions:      actions,
		Bullet:       &config.BulletDef{Name: "arrow", Speed: 200, Lifetime: 1, Width: 8, Height: 2},
	}
}

// aiWorld 地面顶部 y=10 的世界
func aiWorld() *physics.World {
	world := physics.NewWorld(physics.DefaultGravity)
	ground := world.CreateBody(physics.BodyDef{Type: physics.BodyStatic})
	ground.AttachFixture(physics.NewBox(2000, 10))
	return world
}

func spawn(t *testing.T, world *physics.World, def *config.UnitDef, x float64, group int, faceRight bool) *unit.Unit {
	t.Helper()
	u, err := unit.New(world, action.NewRegistry(nil), def, physics.Vec2{X: x, Y: 30}, group, faceRight)
	if err != nil {
		t.Fatalf("unit.New() error = %v", err)
	}
	return u
}

// TestConditionedReflex 测试 AI 决策
func TestConditionedReflex(t *testing.T) {
	tests := []struct {
		name      string
		enemyX    float64
		faceRight bool
		actions   []string
		wantDoing string
		wantRight bool
	}{
		{"enemy in reach attacks", 30, true, nil, config.UnitActionMeleeAttack, true},
		{"enemy behind turns", -30, true, nil, "", false},
		{"enemy ahead walks", 200, true, nil, config.UnitActionWalk, true},
		{"enemy out of sight idles", 1000, true, nil, config.UnitActionIdle, true},
		{"archer shoots from afar", 200, true,
			[]string{config.UnitActionIdle, config.UnitActionWalk, config.UnitActionTurn, config.UnitActionRangeAttack},
			config.UnitActionRangeAttack, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			world := aiWorld()
			u := spawn(t, world, aiTestDef("hero", tt.actions...), 0, 1, tt.faceRight)
			spawn(t, world, aiTestDef("slime"), tt.enemyX, 2, false)
			world.RefreshSensors()

			relations := NewRelations()
			relations.SetRelation(1, 2, types.RelationEnemy)
			ai := NewAI(relations)

			// When
			ai.ConditionedReflex(u)
			u.Update(0.01)

			// Then
			if u.IsFaceRight() != tt.wantRight {
				t.Errorf("faceRight = %v, want %v", u.IsFaceRight(), tt.wantRight)
			}
			if tt.wantDoing != "" && !u.IsDoing(tt.wantDoing) {
				cur := "<nil>"
				if a := u.CurrentAction(); a != nil {
					cur = a.Name()
				}
				t.Errorf("current action = %s, want %s", cur, tt.wantDoing)
			}
		})
	}
}

// TestConditionedReflexIgnoresNonEnemies 中立单位不会被攻击
func TestConditionedReflexIgnoresNonEnemies(t *testing.T) {
	world := aiWorld()
	u := spawn(t, world, aiTestDef("hero"), 0, 1, true)
	spawn(t, world, aiTestDef("villager"), 30, 3, false)
	world.RefreshSensors()

	ai := NewAI(NewRelations())
	ai.ConditionedReflex(u)
	u.Update(0.01)

	if !u.IsDoing(config.UnitActionIdle) {
		t.Error("unit should idle next to a neutral unit")
	}
}

// TestConditionedReflexPlayerControlled 关闭 AI 的单位不排队任何请求
func TestConditionedReflexPlayerControlled(t *testing.T) {
	world := aiWorld()
	u := spawn(t, world, aiTestDef("hero"), 0, 1, true)
	spawn(t, world, aiTestDef("slime"), 30, 2, false)
	world.RefreshSensors()
	u.AIEnabled = false

	NewAI(nil).ConditionedReflex(u)

	if u.QueueLen() != 0 {
		t.Errorf("QueueLen() = %d, want 0", u.QueueLen())
	}
}
