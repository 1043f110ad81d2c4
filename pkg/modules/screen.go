package modules

import (
	"context"
	"math"
	"math/rand"

	"github.com/decker502/uianim/pkg/components"
	"github.com/decker502/uianim/pkg/config"
	"github.com/decker502/uianim/pkg/ecs"
	"github.com/decker502/uianim/pkg/entities"
	"github.com/decker502/uianim/pkg/logx"
	"github.com/decker502/uianim/pkg/tween"
	"github.com/decker502/uianim/pkg/utils"
)

// overshootSpread 回弹倍数在 ±33% 内随机
const overshootSpread = 0.33

// Screen 整页界面
// Enter 时画布组淡入，Exit 时淡出；挂了角色的页面同时显示/隐藏角色
type Screen struct {
	entityManager *ecs.EntityManager
	group         ecs.EntityID
	cfg           config.ScreenConfig
	log           logx.Logger
	actor         *ScreenActor
	visible       bool

	ctx    context.Context
	cancel context.CancelFunc
}

// NewScreen 创建初始隐藏的页面，页面内容以 Group() 为父实体
func NewScreen(em *ecs.EntityManager, engine tween.Engine, cfg config.ScreenConfig, spec entities.ElementSpec, log logx.Logger) *Screen {
	spec.Hidden = true
	group := entities.NewCanvasGroupEntity(em, engine, spec, tween.WithLogger(log), tween.WithName(spec.Name))
	ctx, cancel := context.WithCancel(context.Background())
	return &Screen{
		entityManager: em,
		group:         group,
		cfg:           cfg,
		log:           log,
		ctx:           ctx,
		cancel:        cancel,
	}
}

// Group 页面画布组实体
func (s *Screen) Group() ecs.EntityID { return s.group }

// IsVisible 是否处于显示状态（包括淡入中）
func (s *Screen) IsVisible() bool { return s.visible }

// SetActor 挂上页面角色
func (s *Screen) SetActor(a *ScreenActor) { s.actor = a }

// Actor 页面角色，可能为 nil
func (s *Screen) Actor() *ScreenActor { return s.actor }

// Enter 淡入页面并显示角色
func (s *Screen) Enter() *tween.Future {
	f := s.fade(true, 0, 1)
	if s.actor != nil {
		s.actor.Show()
	}
	return f
}

// Exit 淡出页面并隐藏角色
func (s *Screen) Exit() *tween.Future {
	f := s.fade(false, 1, 0)
	if s.actor != nil {
		s.actor.Hide()
	}
	return f
}

func (s *Screen) fade(visible bool, from, to float64) *tween.Future {
	s.visible = visible
	if g, ok := ecs.GetComponent[*components.CanvasGroupComponent](s.entityManager, s.group); ok {
		g.Interactable = visible
	}
	el, _ := entities.ElementOf(s.entityManager, s.group)
	f, err := el.TweenCanvasAlpha(s.ctx, from, to, tween.Motion{Duration: s.cfg.FadeDuration, Ease: utils.EaseOutCubic})
	if err != nil {
		s.log.Warn("screen fade not started", logx.Bool("visible", visible), logx.Err(err))
		return tween.Resolved()
	}
	return f
}

// Close 取消页面与角色的动画
func (s *Screen) Close() {
	s.cancel()
	if s.actor != nil {
		s.actor.Close()
	}
}

// ScreenActor 页面角色
//
// Show：启用实体，做一次挤压回弹，并开始绕竖直轴循环旋转。
// Hide：停用实体，停止旋转并把转角与缩放放回初始值。
type ScreenActor struct {
	entityManager *ecs.EntityManager
	actor         ecs.EntityID
	cfg           config.ScreenConfig
	log           logx.Logger

	initialRotation float64
	// random 返回 [0, 1) 的随机数
	random func() float64

	ctx        context.Context
	cancel     context.CancelFunc
	showCancel context.CancelFunc
}

// NewScreenActor 创建初始停用的角色
func NewScreenActor(em *ecs.EntityManager, engine tween.Engine, cfg config.ScreenConfig, spec entities.ElementSpec, log logx.Logger) *ScreenActor {
	id := entities.NewIconEntity(em, engine, spec, tween.WithLogger(log), tween.WithName(spec.Name))
	em.SetActive(id, false)
	tr, _ := ecs.GetComponent[*components.TransformComponent](em, id)

	ctx, cancel := context.WithCancel(context.Background())
	return &ScreenActor{
		entityManager:   em,
		actor:           id,
		cfg:             cfg,
		log:             log,
		initialRotation: tr.Rotation,
		random:          rand.Float64,
		ctx:             ctx,
		cancel:          cancel,
	}
}

// Entity 角色实体
func (a *ScreenActor) Entity() ecs.EntityID { return a.actor }

// IsSpinning 循环旋转是否在进行
func (a *ScreenActor) IsSpinning() bool {
	el, _ := entities.ElementOf(a.entityManager, a.actor)
	return el.Scheduler().IsRunning(tween.ChannelRotation)
}

// Show 显示角色
func (a *ScreenActor) Show() {
	a.stop()
	a.entityManager.SetActive(a.actor, true)

	ctx, cancel := context.WithCancel(a.ctx)
	a.showCancel = cancel
	a.bounce(ctx)
	a.spin(ctx)
}

// Hide 隐藏角色并停止旋转
func (a *ScreenActor) Hide() {
	a.entityManager.SetActive(a.actor, false)
	a.stop()
	if tr, ok := ecs.GetComponent[*components.TransformComponent](a.entityManager, a.actor); ok {
		tr.Rotation = a.initialRotation
	}
}

// Close 取消角色动画
func (a *ScreenActor) Close() { a.cancel() }

func (a *ScreenActor) stop() {
	if a.showCancel != nil {
		a.showCancel()
		a.showCancel = nil
	}
	if el, ok := entities.ElementOf(a.entityManager, a.actor); ok {
		el.CancelAll()
	}
}

// bounce X 方向按正弦拉伸到 overshoot 倍，Y 方向按余弦压缩，结束或取消时回到初始缩放
func (a *ScreenActor) bounce(ctx context.Context) {
	el, _ := entities.ElementOf(a.entityManager, a.actor)
	tr, _ := ecs.GetComponent[*components.TransformComponent](a.entityManager, a.actor)
	base := el.InitialScale()
	o := a.cfg.OvershootScale
	overshoot := utils.Lerp(o*(1-overshootSpread), o*(1+overshootSpread), a.random())

	restore := func() { tr.Scale = base }
	_, err := el.Scheduler().Start(ctx, tween.ChannelScale, tween.Tween{
		From:     0,
		To:       1,
		Duration: a.cfg.BounceDuration,
		Ease:     utils.EaseLinear,
		OnUpdate: func(t float64) {
			squash := math.Sin(t * math.Pi)
			stretch := math.Cos(t * math.Pi)
			tr.Scale = utils.V2(
				utils.Lerp(base.X, base.X*overshoot, squash),
				utils.Lerp(base.Y, base.Y/overshoot, stretch),
			)
		},
		OnComplete: restore,
		OnCancel:   restore,
	})
	if err != nil {
		a.log.Warn("actor bounce not started", logx.Err(err))
	}
}

// spin 转一整圈，正常结束后从 0 度重新开始
func (a *ScreenActor) spin(ctx context.Context) {
	el, _ := entities.ElementOf(a.entityManager, a.actor)
	f, err := el.TweenRotationFrom(ctx, a.initialRotation, a.initialRotation+360,
		tween.Motion{Duration: a.cfg.SpinDuration, Ease: utils.EaseLinear})
	if err != nil {
		a.log.Warn("actor spin not started", logx.Err(err))
		return
	}
	f.Then(func(err error) {
		if err == nil {
			a.spin(ctx)
		}
	})
}
