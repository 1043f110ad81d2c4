package app

import (
	"image/color"

	"github.com/decker502/uianim/pkg/components"
	"github.com/decker502/uianim/pkg/config"
	"github.com/decker502/uianim/pkg/ecs"
	"github.com/decker502/uianim/pkg/entities"
	"github.com/decker502/uianim/pkg/logx"
	"github.com/decker502/uianim/pkg/modules"
	"github.com/decker502/uianim/pkg/tween"
	"github.com/decker502/uianim/pkg/utils"
)

// 演示界面布局
const (
	buttonWidth   = 180
	buttonHeight  = 28
	buttonSpacing = 36
	clipColumnX   = 20
	actionColumnX = 220
	columnTop     = 60
)

var (
	buttonColor = color.RGBA{R: 70, G: 90, B: 140, A: 255}
	actionColor = color.RGBA{R: 90, G: 130, B: 90, A: 255}
	textColor   = color.RGBA{R: 240, G: 240, B: 240, A: 255}
)

// counterRuns 计数按钮依次使用的结算数字
var counterRuns = []float64{80, 140, 60, 200}

// endGameRuns 结算弹窗两个计数器的数字
var endGameRuns = []modules.CounterRun{
	{From: 0, To: 1250, Record: 1000},
	{From: 0, To: 36, Record: 40},
}

// showcase 演示场景：片段按钮、动作按钮与三个播放目标
type showcase struct {
	app *App

	// 播放目标：图标（缩放/位移/透明度/抖动/果冻）、舞台画布组（画布透明度）、进度条（单轴宽度）
	icon  ecs.EntityID
	stage ecs.EntityID
	bar   ecs.EntityID

	clipButtons []ecs.EntityID
	counterRun  int
	record      float64
	screen      int
}

// buildScene 创建演示界面的所有实体与模块
func (a *App) buildScene() {
	em := a.entityManager
	w, h := float64(a.cfg.Window.Width), float64(a.cfg.Window.Height)

	entities.NewTextEntity(em, a.engine, entities.ElementSpec{
		Name: "title", Position: utils.V2(0, 16), Width: w, Height: 24, Color: textColor,
	}, "", "app.title")

	s := &showcase{app: a}
	s.stage = entities.NewCanvasGroupEntity(em, a.engine, entities.ElementSpec{
		Name: "stage", Position: utils.V2(440, 60), Width: 320, Height: 260,
		Color: color.RGBA{R: 36, G: 40, B: 50, A: 255},
	}, tween.WithLogger(a.log), tween.WithName("stage"))
	s.icon = entities.NewIconEntity(em, a.engine, entities.ElementSpec{
		Name: "target", Parent: s.stage, Position: utils.V2(128, 80), Width: 64, Height: 64,
		Color: color.RGBA{R: 230, G: 120, B: 60, A: 255}, Layer: 1,
	}, tween.WithLogger(a.log), tween.WithName("target"))
	s.bar = entities.NewLayoutEntity(em, a.engine, entities.ElementSpec{
		Name: "bar", Parent: s.stage, Position: utils.V2(40, 200), Width: 120, Height: 16,
		Color: color.RGBA{R: 90, G: 200, B: 220, A: 255}, Layer: 1,
	}, tween.WithLogger(a.log), tween.WithName("bar"))
	a.showcase = s
	s.rebuildClipButtons()

	a.modal = modules.NewModal(em, a.engine, a.cfg.Modal, entities.ElementSpec{
		Name: "modal", Width: w, Height: h, Color: color.RGBA{A: 180}, Layer: 10,
	}, a.log)
	panel := entities.NewIconEntity(em, a.engine, entities.ElementSpec{
		Name: "modal/panel", Parent: a.modal.Group(), Position: utils.V2(w/2-160, h/2-90),
		Width: 320, Height: 180, Color: color.RGBA{R: 60, G: 64, B: 80, A: 255}, Layer: 11,
	})
	entities.NewTextEntity(em, a.engine, entities.ElementSpec{
		Name: "modal/title", Parent: panel, Position: utils.V2(0, 24), Width: 320, Height: 24,
		Color: textColor, Layer: 12,
	}, "", "modal.title")
	s.newButton(panel, utils.V2(70, 120), "modal/close", "", "modal.close", actionColor, 12, func() {
		a.modal.Hide()
	})

	a.popup = modules.NewPopup(em, a.engine, a.clips, a.cfg.Popup, 160, 40, a.log)
	a.counter = modules.NewEndgameCounter(em, a.engine, a.cfg.Counter, utils.V2(440, 360), a.log)
	a.counter.Reset(0)

	a.endGame = modules.NewEndGameModal(em, a.engine, a.cfg.EndGame, a.cfg.Modal, a.cfg.Counter, w, h, len(endGameRuns), a.log)
	a.offer = modules.NewOfferModal(em, a.engine, a.cfg.Offer, a.cfg.Modal, w, h, a.log)
	s.buildScreens()

	actions := []struct {
		key     string
		onClick func()
	}{
		{"button.modal", func() { a.modal.Show() }},
		{"button.popup", func() {
			x, y := a.inputSystem.Pointer()
			a.popup.Launch(float64(x), float64(y))
		}},
		{"button.counter", s.runCounter},
		{"button.language", a.loc.NextLanguage},
		{"button.endgame", func() { a.endGame.Show(endGameRuns...) }},
		{"button.offer", func() { a.offer.Show() }},
		{"button.screen", s.nextScreen},
	}
	for i, act := range actions {
		s.newButton(0, utils.V2(actionColumnX, float64(columnTop+i*buttonSpacing)), act.key, "", act.key, actionColor, 0, act.onClick)
	}

	tabSpecs := []modules.TabSpec{
		{Name: "home", LabelKey: "tab.home", Type: components.TabMain, Color: color.RGBA{R: 200, G: 90, B: 90, A: 255}, Icon: color.RGBA{R: 255, G: 220, B: 120, A: 255}},
		{Name: "shop", LabelKey: "tab.shop", Type: components.TabNormal, Color: color.RGBA{R: 90, G: 160, B: 90, A: 255}, Icon: color.RGBA{R: 180, G: 255, B: 180, A: 255}},
		{Name: "events", LabelKey: "tab.events", Type: components.TabNormal, Color: color.RGBA{R: 90, G: 120, B: 200, A: 255}, Icon: color.RGBA{R: 180, G: 200, B: 255, A: 255}},
		{Name: "vault", LabelKey: "tab.vault", Type: components.TabLocked, Color: color.RGBA{R: 80, G: 80, B: 80, A: 255}, Icon: color.RGBA{R: 120, G: 120, B: 120, A: 255}},
	}
	a.tabs = modules.NewTabGroup(em, a.engine, a.cfg.Tabs, utils.V2(10, h-a.cfg.Tabs.Height-28), tabSpecs, a.log)
	a.tabs.Start()
}

// newButton 创建带文字的可点击按钮，点击时若存在 button_press 片段则在按钮上播放
func (s *showcase) newButton(parent ecs.EntityID, pos utils.Vec2, name, text, key string, c color.RGBA, layer int, onClick func()) ecs.EntityID {
	a := s.app
	em := a.entityManager
	id := entities.NewIconEntity(em, a.engine, entities.ElementSpec{
		Name: name, Parent: parent, Position: pos, Width: buttonWidth, Height: buttonHeight, Color: c, Layer: layer,
	}, tween.WithLogger(a.log), tween.WithName(name))
	entities.NewTextEntity(em, a.engine, entities.ElementSpec{
		Name: name + "/label", Parent: id, Width: buttonWidth, Height: buttonHeight, Color: textColor, Layer: layer + 1,
	}, text, key)

	ecs.AddComponent(em, id, &components.ClickableComponent{
		Width:     buttonWidth,
		Height:    buttonHeight,
		IsEnabled: true,
		OnClick: func() {
			s.play(id, "button_press")
			onClick()
		},
	})
	return id
}

// rebuildClipButtons 为片段库中的每个片段创建一个按钮（热重载后重建）
func (s *showcase) rebuildClipButtons() {
	em := s.app.entityManager
	for _, id := range s.clipButtons {
		em.DestroyEntity(id)
		for _, child := range childrenOf(em, id) {
			em.DestroyEntity(child)
		}
	}
	s.clipButtons = s.clipButtons[:0]

	for i, clipID := range s.app.clips.IDs() {
		pos := utils.V2(clipColumnX, float64(columnTop+i*buttonSpacing))
		btn := s.newButton(0, pos, "clip/"+clipID, clipID, "", buttonColor, 0, func() {
			s.playOnTarget(clipID)
		})
		s.clipButtons = append(s.clipButtons, btn)
	}
}

// targetFor 选择能播放该片段的目标
func (s *showcase) targetFor(clip *config.TweenClip) ecs.EntityID {
	if clip.CanvasAlpha.Enabled {
		return s.stage
	}
	if clip.Scale.Enabled && clip.Scale.SeparateAxis &&
		!clip.Move.Enabled && !clip.Alpha.Enabled && !clip.Shake.Enabled && !clip.Jelly.Enabled {
		return s.bar
	}
	return s.icon
}

func (s *showcase) playOnTarget(clipID string) {
	clip, err := s.app.clips.Get(clipID)
	if err != nil {
		s.app.log.Warn("clip missing", logx.String("clip", clipID), logx.Err(err))
		return
	}
	s.playClip(s.targetFor(clip), clip)
}

// play 按 ID 播放片段，片段不存在时什么都不做
func (s *showcase) play(target ecs.EntityID, clipID string) {
	clip, err := s.app.clips.Get(clipID)
	if err != nil {
		return
	}
	s.playClip(target, clip)
}

func (s *showcase) playClip(target ecs.EntityID, clip *config.TweenClip) {
	el, ok := entities.ElementOf(s.app.entityManager, target)
	if !ok {
		return
	}
	f, err := el.PlayClip(s.app.ctx, clip)
	if err != nil {
		s.app.log.Warn("clip not played", logx.String("clip", clip.ID), logx.String("element", el.Name()), logx.Err(err))
		return
	}
	f.Then(func(err error) {
		s.app.log.Debug("clip finished", logx.String("clip", clip.ID), logx.Bool("cancelled", tween.IsCancelled(err)))
	})
}

func (s *showcase) runCounter() {
	to := counterRuns[s.counterRun%len(counterRuns)]
	s.counterRun++
	record := s.record
	s.app.counter.Enter(0, to, record).Then(func(err error) {
		if err == nil && to > s.record {
			s.record = to
		}
	})
}

// buildScreens 两个轮换的页面，第一个带旋转角色
func (s *showcase) buildScreens() {
	a := s.app
	em := a.entityManager
	colors := []color.RGBA{
		{R: 60, G: 44, B: 70, A: 255},
		{R: 40, G: 64, B: 60, A: 255},
	}
	for i, key := range []string{"screen.a", "screen.b"} {
		scr := modules.NewScreen(em, a.engine, a.cfg.Screen, entities.ElementSpec{
			Name: key, Position: utils.V2(actionColumnX, 340), Width: 200, Height: 140, Color: colors[i], Layer: 2,
		}, a.log)
		entities.NewTextEntity(em, a.engine, entities.ElementSpec{
			Name: key + "/title", Parent: scr.Group(), Position: utils.V2(0, 8), Width: 200, Height: 20,
			Color: textColor, Layer: 3,
		}, "", key)
		if i == 0 {
			scr.SetActor(modules.NewScreenActor(em, a.engine, a.cfg.Screen, entities.ElementSpec{
				Name: key + "/actor", Parent: scr.Group(), Position: utils.V2(76, 52), Width: 48, Height: 48,
				Color: color.RGBA{R: 240, G: 200, B: 80, A: 255}, Layer: 3,
			}, a.log))
		}
		a.screens = append(a.screens, scr)
	}
	a.screens[0].Enter()
}

// nextScreen 当前页面淡出，下一个页面淡入
func (s *showcase) nextScreen() {
	screens := s.app.screens
	screens[s.screen].Exit()
	s.screen = (s.screen + 1) % len(screens)
	screens[s.screen].Enter()
}

// childrenOf 直接子实体
func childrenOf(em *ecs.EntityManager, parent ecs.EntityID) []ecs.EntityID {
	var out []ecs.EntityID
	for _, id := range ecs.GetEntitiesWith1[*components.TransformComponent](em) {
		if tr, _ := ecs.GetComponent[*components.TransformComponent](em, id); tr.Parent == parent {
			out = append(out, id)
		}
	}
	return out
}
