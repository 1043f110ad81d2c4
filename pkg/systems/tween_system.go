package systems

import (
	"github.com/decker502/uianim/pkg/components"
	"github.com/decker502/uianim/pkg/ecs"
	"github.com/decker502/uianim/pkg/entities"
	"github.com/decker502/uianim/pkg/logx"
	"github.com/decker502/uianim/pkg/tween"
)

// TweenSystem 动画系统
//
// 职责：
//   - 每帧以 deltaTime 推进插值引擎
//   - 实体停用或销毁时取消该实体及其子实体上元素的全部动画
type TweenSystem struct {
	entityManager *ecs.EntityManager
	engine        tween.Engine
	log           logx.Logger
}

// NewTweenSystem 创建动画系统并注册实体生命周期回调
func NewTweenSystem(em *ecs.EntityManager, engine tween.Engine, log logx.Logger) *TweenSystem {
	s := &TweenSystem{
		entityManager: em,
		engine:        engine,
		log:           log,
	}
	em.OnDeactivate(s.cancelSubtree)
	em.OnDestroy(s.cancelSubtree)
	return s
}

// Engine 系统驱动的插值引擎（元素工厂用它创建元素）
func (s *TweenSystem) Engine() tween.Engine { return s.engine }

// Update 推进所有插值
func (s *TweenSystem) Update(deltaTime float64) {
	s.engine.Tick(deltaTime)
}

// cancelSubtree 取消 root 及其所有子孙实体上的动画
func (s *TweenSystem) cancelSubtree(root ecs.EntityID) {
	for _, id := range ecs.GetEntitiesWith1[*components.TweenComponent](s.entityManager) {
		if !entities.IsDescendant(s.entityManager, id, root) {
			continue
		}
		el, ok := entities.ElementOf(s.entityManager, id)
		if !ok {
			continue
		}
		if n := len(el.Scheduler().ActiveChannels()); n > 0 {
			s.log.Debug("cancelling tweens of inactive element",
				logx.String("element", el.Name()),
				logx.Int("channels", n))
		}
		el.CancelAll()
	}
}
