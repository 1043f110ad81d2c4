package modules

import (
	"context"

	"github.com/decker502/uianim/pkg/components"
	"github.com/decker502/uianim/pkg/config"
	"github.com/decker502/uianim/pkg/ecs"
	"github.com/decker502/uianim/pkg/entities"
	"github.com/decker502/uianim/pkg/logx"
	"github.com/decker502/uianim/pkg/tween"
	"github.com/decker502/uianim/pkg/utils"
)

// Modal 模态遮罩
// Show 时画布组淡入并拦截下层输入；Hide 时淡出并放开输入
type Modal struct {
	entityManager *ecs.EntityManager
	group         ecs.EntityID
	cfg           config.ModalConfig
	log           logx.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// NewModal 创建初始隐藏的模态遮罩，内容实体以 Group() 为父实体
func NewModal(em *ecs.EntityManager, engine tween.Engine, cfg config.ModalConfig, spec entities.ElementSpec, log logx.Logger) *Modal {
	spec.Hidden = true
	group := entities.NewCanvasGroupEntity(em, engine, spec, tween.WithLogger(log), tween.WithName(spec.Name))
	ecs.AddComponent(em, group, &components.ModalComponent{})

	ctx, cancel := context.WithCancel(context.Background())
	return &Modal{
		entityManager: em,
		group:         group,
		cfg:           cfg,
		log:           log,
		ctx:           ctx,
		cancel:        cancel,
	}
}

// Group 画布组实体
func (m *Modal) Group() ecs.EntityID { return m.group }

// IsVisible 是否处于显示状态（包括淡入中）
func (m *Modal) IsVisible() bool {
	mc, _ := ecs.GetComponent[*components.ModalComponent](m.entityManager, m.group)
	return mc.IsVisible
}

// Show 淡入（0 → 1）并拦截输入
func (m *Modal) Show() *tween.Future {
	return m.fade(true, 0, 1)
}

// Hide 淡出（1 → 0）并放开输入
func (m *Modal) Hide() *tween.Future {
	return m.fade(false, 1, 0)
}

// Toggle 切换显示状态
func (m *Modal) Toggle() *tween.Future {
	if m.IsVisible() {
		return m.Hide()
	}
	return m.Show()
}

func (m *Modal) fade(visible bool, from, to float64) *tween.Future {
	mc, _ := ecs.GetComponent[*components.ModalComponent](m.entityManager, m.group)
	mc.IsVisible = visible
	if g, ok := ecs.GetComponent[*components.CanvasGroupComponent](m.entityManager, m.group); ok {
		g.BlocksInput = visible
		g.Interactable = visible
	}

	el, _ := entities.ElementOf(m.entityManager, m.group)
	f, err := el.TweenCanvasAlpha(m.ctx, from, to, tween.Motion{Duration: m.cfg.FadeDuration, Ease: utils.EaseInBounce})
	if err != nil {
		m.log.Warn("modal fade not started", logx.Bool("visible", visible), logx.Err(err))
		return tween.Resolved()
	}
	return f
}

// Close 取消遮罩动画
func (m *Modal) Close() { m.cancel() }
