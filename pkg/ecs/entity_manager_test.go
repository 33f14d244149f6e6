package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testBodyComponent struct {
	X, Y float64
}

type testHealthComponent struct {
	HP float64
}

type testBulletComponent struct {
	Damage float64
}

var (
	bodyType   = reflect.TypeOf(&testBodyComponent{})
	healthType = reflect.TypeOf(&testHealthComponent{})
)

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// 测试ID从1开始且唯一
	if id1 != 1 || id2 != 2 {
		t.Errorf("entity IDs = %d, %d, want 1, 2", id1, id2)
	}
	if em.EntityCount() != 2 {
		t.Errorf("EntityCount() = %d, want 2", em.EntityCount())
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.AddComponent(id, &testBodyComponent{X: 100, Y: 200})

	comp, found := em.GetComponent(id, bodyType)
	if !found {
		t.Fatal("component should be found")
	}
	body := comp.(*testBodyComponent)
	if body.X != 100 || body.Y != 200 {
		t.Errorf("component data = (%f, %f), want (100, 200)", body.X, body.Y)
	}

	if em.HasComponent(id, healthType) {
		t.Error("should not have a component that was never added")
	}
	em.RemoveComponent(id, bodyType)
	if em.HasComponent(id, bodyType) {
		t.Error("component should be removed")
	}
}

// TestDestroyEntity 标记删除延迟到 RemoveMarkedEntities
func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()
	em.AddComponent(id1, &testBodyComponent{})
	em.AddComponent(id2, &testBodyComponent{})

	// Given: 标记 id1 两次
	em.DestroyEntity(id1)
	em.DestroyEntity(id1)

	// Then: 清理前实体仍存在
	if !em.IsAlive(id1) || !em.IsMarkedForDestroy(id1) {
		t.Fatal("entity should still exist and be marked before cleanup")
	}

	// When: 清理
	removed := em.RemoveMarkedEntities()

	// Then: 只清理一次，id2 保留
	if len(removed) != 1 || removed[0] != id1 {
		t.Errorf("removed = %v, want [%d]", removed, id1)
	}
	if em.IsAlive(id1) || em.HasComponent(id1, bodyType) {
		t.Error("id1 should be removed after cleanup")
	}
	if !em.IsAlive(id2) {
		t.Error("id2 should still exist")
	}
	if em.IsMarkedForDestroy(id1) {
		t.Error("mark list should be cleared")
	}
}

// TestGetEntitiesWithSorted 查询结果按ID升序
func TestGetEntitiesWithSorted(t *testing.T) {
	em := NewEntityManager()
	var want []EntityID
	for i := 0; i < 20; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testBodyComponent{})
		if i%2 == 0 {
			em.AddComponent(id, &testHealthComponent{})
			want = append(want, id)
		}
	}

	got := em.GetEntitiesWith(bodyType, healthType)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GetEntitiesWith = %v, want %v", got, want)
	}
	if n := len(em.GetEntitiesWith(bodyType)); n != 20 {
		t.Errorf("entities with body = %d, want 20", n)
	}
}

func TestGenericAPI(t *testing.T) {
	em := NewEntityManager()
	unit := em.CreateEntity()
	bullet := em.CreateEntity()

	AddComponent(em, unit, &testBodyComponent{X: 1})
	AddComponent(em, unit, &testHealthComponent{HP: 100})
	AddComponent(em, bullet, &testBodyComponent{X: 2})
	AddComponent(em, bullet, &testBulletComponent{Damage: 5})

	t.Run("GetComponent", func(t *testing.T) {
		health, ok := GetComponent[*testHealthComponent](em, unit)
		if !ok || health.HP != 100 {
			t.Fatalf("GetComponent = %v, %v", health, ok)
		}
		if _, ok := GetComponent[*testHealthComponent](em, bullet); ok {
			t.Error("bullet should not have health")
		}
	})

	t.Run("generic and reflect APIs share storage", func(t *testing.T) {
		comp, ok := em.GetComponent(bullet, reflect.TypeOf(&testBulletComponent{}))
		if !ok || comp.(*testBulletComponent).Damage != 5 {
			t.Error("component added by generic API should be visible to reflect API")
		}
	})

	t.Run("GetEntitiesWith", func(t *testing.T) {
		if got := GetEntitiesWith1[*testBodyComponent](em); len(got) != 2 {
			t.Errorf("GetEntitiesWith1 = %v, want 2 entities", got)
		}
		if got := GetEntitiesWith2[*testBodyComponent, *testHealthComponent](em); len(got) != 1 || got[0] != unit {
			t.Errorf("GetEntitiesWith2 = %v, want [%d]", got, unit)
		}
		if got := GetEntitiesWith3[*testBodyComponent, *testHealthComponent, *testBulletComponent](em); len(got) != 0 {
			t.Errorf("GetEntitiesWith3 = %v, want none", got)
		}
	})

	t.Run("RemoveComponent", func(t *testing.T) {
		RemoveComponent[*testHealthComponent](em, unit)
		if HasComponent[*testHealthComponent](em, unit) {
			t.Error("health should be removed")
		}
	})
}
