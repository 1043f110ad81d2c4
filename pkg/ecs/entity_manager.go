package ecs

import (
	"reflect"
	"sort"
)

// EntityID 是实体的唯一标识符，0 保留为无效 ID
type EntityID uint64

// LifecycleHook 实体停用或销毁时的回调
type LifecycleHook func(id EntityID)

// EntityManager 管理所有实体和组件
//
// 不加锁：只能在主循环（Update）所在的线程上使用。
type EntityManager struct {
	nextID uint64
	// 实体-组件映射: EntityID -> ComponentType -> Component实例
	components map[EntityID]map[reflect.Type]any
	// 停用的实体（组件保留，系统跳过）
	inactive map[EntityID]bool
	// 待删除的实体ID列表
	entitiesToDestroy []EntityID

	onDeactivate []LifecycleHook
	onDestroy    []LifecycleHook
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:     1,
		components: make(map[EntityID]map[reflect.Type]any),
		inactive:   make(map[EntityID]bool),
	}
}

// CreateEntity 创建新实体并返回唯一ID
func (em *EntityManager) CreateEntity() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.components[id] = make(map[reflect.Type]any)
	return id
}

// Exists 实体是否存在（已标记删除但尚未清理的实体仍然存在）
func (em *EntityManager) Exists(id EntityID) bool {
	_, ok := em.components[id]
	return ok
}

// Count 实体数量
func (em *EntityManager) Count() int { return len(em.components) }

// OnDeactivate 注册停用回调
func (em *EntityManager) OnDeactivate(h LifecycleHook) {
	if h != nil {
		em.onDeactivate = append(em.onDeactivate, h)
	}
}

// OnDestroy 注册销毁回调，在 RemoveMarkedEntities 删除组件之前调用
func (em *EntityManager) OnDestroy(h LifecycleHook) {
	if h != nil {
		em.onDestroy = append(em.onDestroy, h)
	}
}

// SetActive 启用/停用实体，只有状态真正变化时才触发回调
func (em *EntityManager) SetActive(id EntityID, active bool) {
	if !em.Exists(id) {
		return
	}
	wasActive := !em.inactive[id]
	if wasActive == active {
		return
	}
	if active {
		delete(em.inactive, id)
		return
	}
	em.inactive[id] = true
	for _, h := range em.onDeactivate {
		h(id)
	}
}

// IsActive 实体是否存在且处于启用状态
func (em *EntityManager) IsActive(id EntityID) bool {
	return em.Exists(id) && !em.inactive[id]
}

// DestroyEntity 标记实体待删除(不立即删除)
func (em *EntityManager) DestroyEntity(id EntityID) {
	em.entitiesToDestroy = append(em.entitiesToDestroy, id)
}

// RemoveMarkedEntities 清理所有标记删除的实体，同一实体只回调一次
func (em *EntityManager) RemoveMarkedEntities() {
	if len(em.entitiesToDestroy) == 0 {
		return
	}
	marked := em.entitiesToDestroy
	em.entitiesToDestroy = nil

	for _, id := range marked {
		if !em.Exists(id) {
			continue
		}
		for _, h := range em.onDestroy {
			h(id)
		}
		delete(em.components, id)
		delete(em.inactive, id)
	}
}

// AddComponent 为实体添加组件（同类型覆盖）
func (em *EntityManager) AddComponent(id EntityID, component any) {
	if compMap, exists := em.components[id]; exists {
		compMap[reflect.TypeOf(component)] = component
	}
}

// RemoveComponent 从实体移除指定类型的组件
func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	if compMap, exists := em.components[id]; exists {
		delete(compMap, componentType)
	}
}

// GetComponent 获取实体的特定类型组件
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (any, bool) {
	if compMap, exists := em.components[id]; exists {
		comp, found := compMap[componentType]
		return comp, found
	}
	return nil, false
}

// HasComponent 检查实体是否拥有特定类型组件
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	_, found := em.GetComponent(id, componentType)
	return found
}

// GetEntitiesWith 查询拥有指定组件类型组合的所有实体（按 ID 升序，包括停用的实体）
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)
	for id, compMap := range em.components {
		hasAll := true
		for _, ct := range componentTypes {
			if _, found := compMap[ct]; !found {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, id)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}
