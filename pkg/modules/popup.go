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

// popupYOffset 弹出提示底边距离点击点的距离
const popupYOffset = 24

// Popup 弹出提示
//
// 流程：Launch → 画布淡入 + 面板播放果冻片段 → 停留 ScreenTicks 帧（从 Launch 开始计）→ 淡出。
// 淡入或停留期间再次 Launch 会被忽略；淡出期间 Launch 会顶替淡出重新显示。
type Popup struct {
	entityManager *ecs.EntityManager
	clips         *config.ClipLibrary
	cfg           config.PopupConfig
	log           logx.Logger

	group  ecs.EntityID // 画布组（淡入淡出、定位）
	panel  ecs.EntityID // 面板（果冻片段）
	label  ecs.EntityID
	width  float64
	height float64

	ctx    context.Context
	cancel context.CancelFunc
}

// NewPopup 创建初始隐藏的弹出提示
func NewPopup(em *ecs.EntityManager, engine tween.Engine, clips *config.ClipLibrary, cfg config.PopupConfig, width, height float64, log logx.Logger) *Popup {
	group := entities.NewCanvasGroupEntity(em, engine, entities.ElementSpec{
		Name: "popup", Width: width, Height: height, Layer: 20, Hidden: true,
	}, tween.WithLogger(log), tween.WithName("popup"))
	ecs.AddComponent(em, group, &components.PopupComponent{})

	panel := entities.NewIconEntity(em, engine, entities.ElementSpec{
		Name:   "popup/panel",
		Parent: group,
		Width:  width,
		Height: height,
		Color:  color.RGBA{R: 250, G: 200, B: 60, A: 255},
		Layer:  21,
	}, tween.WithLogger(log), tween.WithName("popup/panel"))

	label := entities.NewTextEntity(em, engine, entities.ElementSpec{
		Name:   "popup/label",
		Parent: panel,
		Width:  width,
		Height: height,
		Color:  color.RGBA{R: 30, G: 30, B: 30, A: 255},
		Layer:  22,
	}, "", "popup.message")

	ctx, cancel := context.WithCancel(context.Background())
	return &Popup{
		entityManager: em,
		clips:         clips,
		cfg:           cfg,
		log:           log,
		group:         group,
		panel:         panel,
		label:         label,
		width:         width,
		height:        height,
		ctx:           ctx,
		cancel:        cancel,
	}
}

// Group 画布组实体
func (p *Popup) Group() ecs.EntityID { return p.group }

// Panel 面板实体
func (p *Popup) Panel() ecs.EntityID { return p.panel }

// State 当前阶段
func (p *Popup) State() components.PopupState { return p.state().State }

func (p *Popup) state() *components.PopupComponent {
	pc, _ := ecs.GetComponent[*components.PopupComponent](p.entityManager, p.group)
	return pc
}

// Launch 在 (x, y) 上方显示提示
// 正在显示时返回 false
func (p *Popup) Launch(x, y float64) bool {
	st := p.state()
	if st.State == components.PopupShowing || st.State == components.PopupOnScreen {
		return false
	}

	if tr, ok := ecs.GetComponent[*components.TransformComponent](p.entityManager, p.group); ok {
		tr.Position = utils.V2(x-p.width/2, y-p.height-popupYOffset)
	}
	st.State = components.PopupShowing
	st.RemainingTicks = p.cfg.ScreenTicks

	group, _ := entities.ElementOf(p.entityManager, p.group)
	f, err := group.TweenCanvasAlpha(p.ctx, 0, 1, tween.Motion{Duration: p.cfg.FadeDuration, Ease: utils.EaseInOutCubic})
	if err != nil {
		p.log.Warn("popup fade in not started", logx.Err(err))
		st.State = components.PopupOnScreen
	} else {
		f.Then(func(err error) {
			if err == nil && st.State == components.PopupShowing {
				st.State = components.PopupOnScreen
			}
		})
	}

	p.playShowClip()
	return true
}

func (p *Popup) playShowClip() {
	if p.cfg.ShowClip == "" || p.clips == nil {
		return
	}
	clip, err := p.clips.Get(p.cfg.ShowClip)
	if err != nil {
		p.log.Warn("popup clip missing", logx.String("clip", p.cfg.ShowClip), logx.Err(err))
		return
	}
	panel, _ := entities.ElementOf(p.entityManager, p.panel)
	if _, err := panel.PlayClip(p.ctx, clip); err != nil {
		p.log.Warn("popup clip not played", logx.String("clip", clip.ID), logx.Err(err))
	}
}

// Update 按帧计算停留时间，到时开始淡出
func (p *Popup) Update(deltaTime float64) {
	st := p.state()
	if st.State != components.PopupShowing && st.State != components.PopupOnScreen {
		return
	}
	st.RemainingTicks--
	if st.RemainingTicks > 0 {
		return
	}
	p.hide()
}

func (p *Popup) hide() {
	st := p.state()
	st.State = components.PopupHiding
	st.RemainingTicks = 0

	group, _ := entities.ElementOf(p.entityManager, p.group)
	f, err := group.TweenCanvasAlpha(p.ctx, 1, 0, tween.Motion{Duration: p.cfg.FadeDuration, Ease: utils.EaseInOutCubic})
	if err != nil {
		p.log.Warn("popup fade out not started", logx.Err(err))
		st.State = components.PopupHidden
		return
	}
	f.Then(func(err error) {
		if err == nil && st.State == components.PopupHiding {
			st.State = components.PopupHidden
		}
	})
}

// Close 取消提示动画
func (p *Popup) Close() { p.cancel() }
