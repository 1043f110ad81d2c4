package modules

import (
	"context"
	"image/color"

	"github.com/decker502/uianim/pkg/components"
	"github.com/decker502/uianim/pkg/config"
	"github.com/decker502/uianim/pkg/ecs"
	"github.com/decker502/uianim/pkg/entities"
	"github.com/decker502/uianim/pkg/logx"
	"github.com/decker502/uianim/pkg/tween"
	"github.com/decker502/uianim/pkg/utils"
)

const (
	offerBannerWidth  = 200
	offerBannerHeight = 40
	offerShineWidth   = 12
)

// OfferModal 礼包弹窗
//
// Show：第一行标题从 0 放大，光泽扫过；第二行同样；最后两行一起沿 Y 移动 YOffset。
// Hide：中止流程，标题缩回 0，位置复位。
type OfferModal struct {
	entityManager *ecs.EntityManager
	cfg           config.OfferConfig
	log           logx.Logger

	modal  *Modal
	holder ecs.EntityID
	texts  [2]ecs.EntityID
	shines [2]ecs.EntityID

	initialPositions map[ecs.EntityID]utils.Vec2

	ctx        context.Context
	cancel     context.CancelFunc
	showCancel context.CancelFunc
}

// NewOfferModal 创建初始隐藏的礼包弹窗
func NewOfferModal(em *ecs.EntityManager, engine tween.Engine, cfg config.OfferConfig, modalCfg config.ModalConfig, screenW, screenH float64, log logx.Logger) *OfferModal {
	m := &OfferModal{
		entityManager:    em,
		cfg:              cfg,
		log:              log,
		initialPositions: make(map[ecs.EntityID]utils.Vec2),
	}
	m.modal = NewModal(em, engine, modalCfg, entities.ElementSpec{
		Name: "offer", Width: screenW, Height: screenH, Color: color.RGBA{A: 200}, Layer: 40,
	}, log)
	named := func(name string) []tween.Option {
		return []tween.Option{tween.WithLogger(log), tween.WithName(name)}
	}

	m.holder = entities.NewIconEntity(em, engine, entities.ElementSpec{
		Name: "offer/holder", Parent: m.modal.Group(),
		Position: utils.V2(screenW/2-offerBannerWidth/2, screenH/2-offerBannerHeight),
	}, named("offer/holder")...)
	for i, key := range []string{"offer.text_a", "offer.text_b"} {
		name := "offer/" + key
		m.texts[i] = entities.NewIconEntity(em, engine, entities.ElementSpec{
			Name: name, Parent: m.holder, Position: utils.V2(0, float64(i)*(offerBannerHeight+8)),
			Width: offerBannerWidth, Height: offerBannerHeight,
			Color: color.RGBA{R: 200, G: 60, B: 120, A: 255}, Layer: 41,
		}, named(name)...)
		entities.NewTextEntity(em, engine, entities.ElementSpec{
			Name: name + "/label", Parent: m.texts[i], Width: offerBannerWidth, Height: offerBannerHeight,
			Color: color.RGBA{R: 250, G: 250, B: 250, A: 255}, Layer: 43,
		}, "", key)
		m.shines[i] = entities.NewIconEntity(em, engine, entities.ElementSpec{
			Name: name + "/shine", Parent: m.texts[i], Width: offerShineWidth, Height: offerBannerHeight,
			Color: color.RGBA{R: 120, G: 120, B: 120, A: 120}, Layer: 42,
		}, named(name+"/shine")...)
	}

	// 点击遮罩任意位置关闭
	ecs.AddComponent(em, m.modal.Group(), &components.ClickableComponent{
		Width: screenW, Height: screenH, IsEnabled: true,
		OnClick: func() { m.Hide() },
	})

	for _, id := range []ecs.EntityID{m.holder, m.shines[0], m.shines[1]} {
		tr, _ := ecs.GetComponent[*components.TransformComponent](em, id)
		m.initialPositions[id] = tr.Position
	}

	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.reset()
	return m
}

// Group 弹窗画布组实体
func (m *OfferModal) Group() ecs.EntityID { return m.modal.Group() }

// IsVisible 是否处于显示状态
func (m *OfferModal) IsVisible() bool { return m.modal.IsVisible() }

// Show 淡入弹窗并播放标题动画，返回的 Future 在最后的移动结束时完成
func (m *OfferModal) Show() *tween.Future {
	m.stopShow()
	m.reset()
	m.modal.Show()

	ctx, cancel := context.WithCancel(m.ctx)
	m.showCancel = cancel
	return tween.Sequence(ctx,
		m.popText(ctx, 0),
		m.sweep(ctx, 0),
		m.popText(ctx, 1),
		m.sweep(ctx, 1),
		m.moveHolder(ctx),
	)
}

// Hide 中止动画、复位并淡出
func (m *OfferModal) Hide() *tween.Future {
	m.stopShow()
	m.reset()
	return m.modal.Hide()
}

// Close 取消弹窗上的所有动画
func (m *OfferModal) Close() {
	m.cancel()
	m.modal.Close()
}

func (m *OfferModal) stopShow() {
	if m.showCancel != nil {
		m.showCancel()
		m.showCancel = nil
	}
}

func (m *OfferModal) element(id ecs.EntityID) *tween.Element {
	el, _ := entities.ElementOf(m.entityManager, id)
	return el
}

func (m *OfferModal) popText(ctx context.Context, i int) tween.Step {
	return func() (*tween.Future, error) {
		return m.element(m.texts[i]).TweenScaleFrom(ctx, utils.Splat(0), utils.Splat(1),
			tween.Motion{Duration: m.cfg.ScaleDuration, Ease: utils.EaseOutBack})
	}
}

// sweep 光泽从左边缘扫到 ShineOffset，结束后隐藏
func (m *OfferModal) sweep(ctx context.Context, i int) tween.Step {
	return func() (*tween.Future, error) {
		shine := m.shines[i]
		m.entityManager.SetActive(shine, true)
		from := m.initialPositions[shine]
		f, err := m.element(shine).TweenPositionFrom(ctx, from, utils.V2(m.cfg.ShineOffset, from.Y),
			tween.Motion{Duration: m.cfg.ShineDuration, Ease: utils.EaseInOutSine})
		if err != nil {
			return nil, err
		}
		f.Then(func(err error) {
			if err == nil {
				m.entityManager.SetActive(shine, false)
			}
		})
		return f, nil
	}
}

func (m *OfferModal) moveHolder(ctx context.Context) tween.Step {
	return func() (*tween.Future, error) {
		from := m.initialPositions[m.holder]
		return m.element(m.holder).TweenPositionFrom(ctx, from, from.Add(utils.V2(0, m.cfg.YOffset)),
			tween.Motion{Duration: m.cfg.MoveDuration, Ease: utils.EaseInOutBack})
	}
}

func (m *OfferModal) reset() {
	em := m.entityManager
	for _, id := range []ecs.EntityID{m.holder, m.texts[0], m.texts[1], m.shines[0], m.shines[1]} {
		m.element(id).CancelAll()
	}
	for id, pos := range m.initialPositions {
		if tr, ok := ecs.GetComponent[*components.TransformComponent](em, id); ok {
			tr.Position = pos
		}
	}
	for _, id := range m.texts {
		if tr, ok := ecs.GetComponent[*components.TransformComponent](em, id); ok {
			tr.Scale = utils.Splat(0)
		}
	}
	for _, id := range m.shines {
		em.SetActive(id, false)
	}
}
