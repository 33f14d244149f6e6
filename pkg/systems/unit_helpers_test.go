package systems

import (
	"testing"

	"github.com/decker502/platformer/pkg/action"
	"github.com/decker502/platformer/pkg/config"
	"github.com/decker502/platformer/pkg/ecs"
	"github.com/decker502/platformer/pkg/entities"
	"github.com/decker502/platformer/pkg/physics"
	"github.com/decker502/platformer/pkg/unit"
)

func systemTestDef(name string, actions ...string) *config.UnitDef {
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
		AttackPower:  physics.Vec2{X: 50, Y: 80},
		TargetAllow:  []string{"enemy"},
		HitEffect:    "spark",
		Actions:      actions,
		Model: config.ModelDef{
			Name:      name,
			FaceRight: true,
			Animations: map[string]float64{
				config.AnimationHit:  0.5,
				config.AnimationFall: 0.5,
			},
		},
	}
}

// systemWorld 地面顶部 y=10 的世界
func systemWorld() *physics.World {
	world := physics.NewWorld(physics.DefaultGravity)
	ground := world.CreateBody(physics.BodyDef{Type: physics.BodyStatic})
	ground.AttachFixture(physics.NewBox(2000, 10))
	return world
}

func spawnUnit(t *testing.T, em *ecs.EntityManager, world *physics.World, registry *action.Registry, def *config.UnitDef, x float64, group int) (ecs.EntityID, *unit.Unit) {
	t.Helper()
	id, u, err := entities.NewUnitEntity(em, world, registry, entities.UnitSpawn{
		Def:       def,
		Position:  physics.Vec2{X: x, Y: 30},
		Group:     group,
		FaceRight: true,
	})
	if err != nil {
		t.Fatalf("NewUnitEntity() error = %v", err)
	}
	return id, u
}

// recordingEffects 记录生成的特效名
type recordingEffects struct {
	names []string
}

func (r *recordingEffects) SpawnEffect(name string, owner action.Unit, local physics.Vec2) {
	r.names = append(r.names, name)
}
