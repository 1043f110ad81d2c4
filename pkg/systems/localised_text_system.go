package systems

import (
	"github.com/decker502/uianim/pkg/components"
	"github.com/decker502/uianim/pkg/ecs"
	"github.com/decker502/uianim/pkg/entities"
)

// TextSource 本地化文本来源
type TextSource interface {
	GetText(key string) string
	CurrentLanguage() string
	Subscribe(fn func()) (unsubscribe func())
}

// LocalisedTextSystem 本地化文本系统
//
// 语言切换后、实体重新启用后，把 LocalisedTextComponent.Key 对应的文本写入 TextComponent。
// 停用中的实体不刷新，重新启用后的第一帧刷新。
type LocalisedTextSystem struct {
	entityManager *ecs.EntityManager
	source        TextSource
	unsubscribe   func()
	changed       bool
}

// NewLocalisedTextSystem 创建系统并订阅语言变化
func NewLocalisedTextSystem(em *ecs.EntityManager, source TextSource) *LocalisedTextSystem {
	s := &LocalisedTextSystem{
		entityManager: em,
		source:        source,
		changed:       true,
	}
	s.unsubscribe = source.Subscribe(func() { s.changed = true })
	return s
}

// Close 取消订阅
func (s *LocalisedTextSystem) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// Update 刷新需要更新的文本
func (s *LocalisedTextSystem) Update(deltaTime float64) {
	lang := s.source.CurrentLanguage()
	force := s.changed
	s.changed = false

	ids := ecs.GetEntitiesWith2[*components.LocalisedTextComponent, *components.TextComponent](s.entityManager)
	for _, id := range ids {
		if !entities.ActiveInHierarchy(s.entityManager, id) {
			continue
		}
		lt, _ := ecs.GetComponent[*components.LocalisedTextComponent](s.entityManager, id)
		if !force && lt.AppliedLanguage == lang && lt.AppliedKey == lt.Key {
			continue
		}
		s.Refresh(id)
	}
}

// Refresh 立即刷新一个文本实体
func (s *LocalisedTextSystem) Refresh(id ecs.EntityID) {
	lt, ok := ecs.GetComponent[*components.LocalisedTextComponent](s.entityManager, id)
	if !ok {
		return
	}
	txt, ok := ecs.GetComponent[*components.TextComponent](s.entityManager, id)
	if !ok {
		return
	}
	txt.Text = s.source.GetText(lt.Key)
	lt.AppliedLanguage = s.source.CurrentLanguage()
	lt.AppliedKey = lt.Key
}
