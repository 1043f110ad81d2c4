package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testTransform struct {
	X, Y float64
}

type testAlpha struct {
	Value float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 != 1 || id2 != 2 {
		t.Errorf("Entity IDs should start at 1, got %d, %d", id1, id2)
	}
	if !em.Exists(id1) || em.Exists(99) {
		t.Error("Exists() mismatch")
	}
	if em.Count() != 2 {
		t.Errorf("Count() = %d, want 2", em.Count())
	}
}

func TestGenericComponentAccess(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testTransform{X: 100, Y: 200})

	tr, ok := GetComponent[*testTransform](em, id)
	if !ok {
		t.Fatal("Component should be found")
	}
	if tr.X != 100 || tr.Y != 200 {
		t.Errorf("Component data mismatch, got (%f, %f)", tr.X, tr.Y)
	}

	// 泛型与反射接口共用同一个键
	if !em.HasComponent(id, reflect.TypeOf(&testTransform{})) {
		t.Error("reflect lookup should see generic component")
	}
	if HasComponent[*testAlpha](em, id) {
		t.Error("Should not have alpha component")
	}

	RemoveComponent[*testTransform](em, id)
	if _, ok := GetComponent[*testTransform](em, id); ok {
		t.Error("Component should be removed")
	}

	// 不存在的实体
	AddComponent(em, 42, &testAlpha{})
	if _, ok := GetComponent[*testAlpha](em, 42); ok {
		t.Error("Adding to a missing entity should be ignored")
	}
}

func TestGetEntitiesWithSorted(t *testing.T) {
	em := NewEntityManager()

	ids := make([]EntityID, 0, 5)
	for i := 0; i < 5; i++ {
		id := em.CreateEntity()
		ids = append(ids, id)
		AddComponent(em, id, &testTransform{})
		if i%2 == 0 {
			AddComponent(em, id, &testAlpha{})
		}
	}

	both := GetEntitiesWith2[*testTransform, *testAlpha](em)
	want := []EntityID{ids[0], ids[2], ids[4]}
	if len(both) != len(want) {
		t.Fatalf("GetEntitiesWith2 = %v, want %v", both, want)
	}
	for i := range want {
		if both[i] != want[i] {
			t.Errorf("GetEntitiesWith2[%d] = %d, want %d (结果应按 ID 升序)", i, both[i], want[i])
		}
	}

	if n := len(GetEntitiesWith1[*testTransform](em)); n != 5 {
		t.Errorf("GetEntitiesWith1 = %d entities, want 5", n)
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &testTransform{})

	destroyed := 0
	em.OnDestroy(func(got EntityID) {
		if got != id {
			t.Errorf("OnDestroy id = %d, want %d", got, id)
		}
		// 回调时组件仍然可以访问
		if !HasComponent[*testTransform](em, got) {
			t.Error("components should still exist inside OnDestroy")
		}
		destroyed++
	})

	em.DestroyEntity(id)
	em.DestroyEntity(id)

	if !em.Exists(id) {
		t.Error("Entity should still exist before cleanup")
	}

	em.RemoveMarkedEntities()
	em.RemoveMarkedEntities()

	if em.Exists(id) {
		t.Error("Entity should be removed after cleanup")
	}
	if destroyed != 1 {
		t.Errorf("OnDestroy called %d times, want 1", destroyed)
	}
}

func TestSetActive(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	deactivated := 0
	em.OnDeactivate(func(EntityID) { deactivated++ })

	if !em.IsActive(id) {
		t.Error("new entities should be active")
	}

	em.SetActive(id, false)
	em.SetActive(id, false)
	if em.IsActive(id) || deactivated != 1 {
		t.Errorf("IsActive=%v deactivated=%d, want false/1", em.IsActive(id), deactivated)
	}

	em.SetActive(id, true)
	if !em.IsActive(id) {
		t.Error("entity should be active again")
	}
	em.SetActive(id, false)
	if deactivated != 2 {
		t.Errorf("each deactivation should fire once, got %d", deactivated)
	}

	em.SetActive(99, false)
	if deactivated != 2 {
		t.Error("missing entity should not fire hooks")
	}
}
