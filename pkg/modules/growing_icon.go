package modules

import (
	"context"

	"github.com/decker502/uianim/pkg/components"
	"github.com/decker502/uianim/pkg/ecs"
	"github.com/decker502/uianim/pkg/entities"
	"github.com/decker502/uianim/pkg/logx"
	"github.com/decker502/uianim/pkg/tween"
	"github.com/decker502/uianim/pkg/utils"
)

// GrowingIcon 从 0 长到原始大小的图标（结算星星）
type GrowingIcon struct {
	entityManager *ecs.EntityManager
	icon          ecs.EntityID
	motion        tween.Motion
}

// NewGrowingIcon 创建缩放为 0 的图标
func NewGrowingIcon(em *ecs.EntityManager, engine tween.Engine, spec entities.ElementSpec, motion tween.Motion, log logx.Logger) *GrowingIcon {
	id := entities.NewIconEntity(em, engine, spec, tween.WithLogger(log), tween.WithName(spec.Name))
	g := &GrowingIcon{entityManager: em, icon: id, motion: motion}
	g.Reset()
	return g
}

// Icon 图标实体
func (g *GrowingIcon) Icon() ecs.EntityID { return g.icon }

// Grow 缩放 0 → 1，Future 在长满时完成
func (g *GrowingIcon) Grow(ctx context.Context) (*tween.Future, error) {
	el, _ := entities.ElementOf(g.entityManager, g.icon)
	return el.TweenScaleFrom(ctx, utils.Splat(0), utils.Splat(1), g.motion)
}

// Reset 停止生长并缩回 0
func (g *GrowingIcon) Reset() {
	if el, ok := entities.ElementOf(g.entityManager, g.icon); ok {
		el.Scheduler().Cancel(tween.ChannelScale)
	}
	if tr, ok := ecs.GetComponent[*components.TransformComponent](g.entityManager, g.icon); ok {
		tr.Scale = utils.Splat(0)
	}
}
