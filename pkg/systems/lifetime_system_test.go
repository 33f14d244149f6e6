package systems

import (
	"testing"

	"github.com/decker502/platformer/pkg/components"
	"github.com/decker502/platformer/pkg/config"
	"github.com/decker502/platformer/pkg/ecs"
)

func newLifetimeEntity(em *ecs.EntityManager, maxLifetime float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.LifetimeComponent{MaxLifetime: maxLifetime})
	return id
}

func TestLifetimeUpdate(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLifetimeSystem(em)
	id := newLifetimeEntity(em, 1.0)

	system.Update(0.5)

	lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](em, id)
	if lifetime.CurrentLifetime != 0.5 {
		t.Errorf("Expected CurrentLifetime=0.5, got %f", lifetime.CurrentLifetime)
	}
	if lifetime.IsExpired {
		t.Error("Entity should not be expired yet")
	}
	if em.IsMarkedForDestroy(id) {
		t.Error("Entity should not be marked for destroy")
	}
}

func TestLifetimeExpiration(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLifetimeSystem(em)
	id := newLifetimeEntity(em, 0.3)

	// 多次小步更新，累积超过上限
	for i := 0; i < 4; i++ {
		system.Update(0.1)
	}

	lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](em, id)
	if !lifetime.IsExpired {
		t.Error("Entity should be expired")
	}

	em.RemoveMarkedEntities()
	if em.IsAlive(id) {
		t.Error("Expired entity should be removed")
	}
}

func TestMultipleEntitiesWithDifferentLifetimes(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLifetimeSystem(em)
	effect := newLifetimeEntity(em, 0.3)
	bullet := newLifetimeEntity(em, 2.0)

	system.Update(1.0)
	em.RemoveMarkedEntities()

	if em.IsAlive(effect) {
		t.Error("effect should be removed (expired)")
	}
	if !em.IsAlive(bullet) {
		t.Error("bullet should still exist")
	}
}

// TestLifetimeSkipsMarkedEntities 已被标记删除的实体不再计时
func TestLifetimeSkipsMarkedEntities(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLifetimeSystem(em)
	id := newLifetimeEntity(em, 1.0)
	em.DestroyEntity(id)

	system.Update(0.5)

	lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](em, id)
	if lifetime.CurrentLifetime != 0 {
		t.Errorf("CurrentLifetime = %f, want 0", lifetime.CurrentLifetime)
	}
}

// TestLifetimeExpiredCounts 到期的子弹单独计数
func TestLifetimeExpiredCounts(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLifetimeSystem(em)
	bullet := newLifetimeEntity(em, 0.5)
	comp := components.NewBulletComponent(nil, nil)
	comp.Def = &config.BulletDef{Name: "arrow", Lifetime: 0.5}
	ecs.AddComponent(em, bullet, comp)
	newLifetimeEntity(em, 0.2)
	newLifetimeEntity(em, 5)

	system.Update(0.6)

	bullets, others := system.Expired()
	if bullets != 1 || others != 1 {
		t.Errorf("Expired() = (%d, %d), want (1, 1)", bullets, others)
	}
}
