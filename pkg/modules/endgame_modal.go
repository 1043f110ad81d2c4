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

// 结算弹窗布局（相对弹窗中心）
const (
	endGamePanelWidth   = 360
	endGamePanelHeight  = 240
	endGameBannerWidth  = 140
	endGameBannerHeight = 36
	endGameHolderRise   = 120 // 标题整体上移的距离
	endGameTextScale    = 1.4 // 标题进场时的缩放，上移时回到 1
	endGameStarSize     = 40
	endGameStarSpacing  = 70
	endGameNotchWidth   = 120
	endGameNotchHeight  = 26
	endGameButtonWidth  = 120
	endGameButtonHeight = 28
)

// CounterRun 一个结算计数器的数字
type CounterRun struct {
	From, To, Record float64
}

// EndGameModal 结算弹窗
//
// Show 之后依次：两段标题从左右两侧滑入，停顿后标题整体上移并缩回原大小，
// 背景展开，星星组淡入后逐个长出，凹口展开，计数器逐个间隔进场，最后显示按钮。
// 每一段都等上一段结束；Hide 会中止流程并把所有元素放回初始状态。
type EndGameModal struct {
	entityManager *ecs.EntityManager
	engine        tween.Engine
	cfg           config.EndGameConfig
	log           logx.Logger

	modal      *Modal
	holder     ecs.EntityID
	texts      [2]ecs.EntityID
	textFinalX [2]float64
	background ecs.EntityID
	starGroup  ecs.EntityID
	stars      []*GrowingIcon
	notch      ecs.EntityID
	counters   []*EndgameCounter
	button     ecs.EntityID

	initialPositions map[ecs.EntityID]utils.Vec2

	ctx        context.Context
	cancel     context.CancelFunc
	showCancel context.CancelFunc
}

// NewEndGameModal 创建初始隐藏的结算弹窗，counters 个计数器纵向排列
func NewEndGameModal(em *ecs.EntityManager, engine tween.Engine, cfg config.EndGameConfig, modalCfg config.ModalConfig, counterCfg config.CounterConfig, screenW, screenH float64, counters int, log logx.Logger) *EndGameModal {
	m := &EndGameModal{
		entityManager:    em,
		engine:           engine,
		cfg:              cfg,
		log:              log,
		initialPositions: make(map[ecs.EntityID]utils.Vec2),
	}
	m.modal = NewModal(em, engine, modalCfg, entities.ElementSpec{
		Name: "endgame", Width: screenW, Height: screenH, Color: color.RGBA{A: 200}, Layer: 30,
	}, log)
	group := m.modal.Group()
	cx, cy := screenW/2, screenH/2
	named := func(name string) []tween.Option {
		return []tween.Option{tween.WithLogger(log), tween.WithName(name)}
	}

	// 背景与凹口从 0 高度展开
	bgMotions := tween.DefaultMotions()
	bgMotions.Size = tween.Motion{Duration: cfg.BackgroundEnterDuration, Ease: utils.EaseOutBack}
	m.background = entities.NewLayoutEntity(em, engine, entities.ElementSpec{
		Name: "endgame/background", Parent: group,
		Position: utils.V2(cx-endGamePanelWidth/2, cy-endGamePanelHeight/2),
		Width:    endGamePanelWidth, Height: endGamePanelHeight,
		Color: color.RGBA{R: 52, G: 58, B: 84, A: 255}, Layer: 31,
	}, append(named("endgame/background"), tween.WithMotions(bgMotions))...)

	notchMotions := tween.DefaultMotions()
	notchMotions.Size = tween.Motion{Duration: cfg.NotchRevealDuration, Ease: utils.EaseOutBack}
	m.notch = entities.NewLayoutEntity(em, engine, entities.ElementSpec{
		Name: "endgame/notch", Parent: group,
		Position: utils.V2(cx-endGameNotchWidth/2, cy+endGamePanelHeight/2),
		Width:    endGameNotchWidth, Height: endGameNotchHeight,
		Color: color.RGBA{R: 72, G: 80, B: 112, A: 255}, Layer: 31,
	}, append(named("endgame/notch"), tween.WithMotions(notchMotions))...)

	// 标题：A 从左侧屏幕外、B 从右侧屏幕外滑到终点，上移后停在面板上方
	m.holder = entities.NewIconEntity(em, engine, entities.ElementSpec{
		Name: "endgame/holder", Parent: group, Position: utils.V2(0, cy-endGamePanelHeight/2-endGameBannerHeight-8+endGameHolderRise),
	}, named("endgame/holder")...)
	m.textFinalX = [2]float64{cx - endGameBannerWidth - 4, cx + 4}
	starts := [2]float64{-endGameBannerWidth, screenW}
	for i, key := range []string{"endgame.text_a", "endgame.text_b"} {
		name := "endgame/" + key
		m.texts[i] = entities.NewIconEntity(em, engine, entities.ElementSpec{
			Name: name, Parent: m.holder, Position: utils.V2(starts[i], 0),
			Width: endGameBannerWidth, Height: endGameBannerHeight,
			Color: color.RGBA{R: 230, G: 170, B: 50, A: 255}, Layer: 33,
		}, named(name)...)
		entities.NewTextEntity(em, engine, entities.ElementSpec{
			Name: name + "/label", Parent: m.texts[i], Width: endGameBannerWidth, Height: endGameBannerHeight,
			Color: color.RGBA{R: 40, G: 30, B: 20, A: 255}, Layer: 34,
		}, "", key)
	}

	// 星星
	m.starGroup = entities.NewCanvasGroupEntity(em, engine, entities.ElementSpec{
		Name: "endgame/stars", Parent: group, Hidden: true,
		Position: utils.V2(cx-endGameStarSpacing-endGameStarSize/2, cy-endGamePanelHeight/2+24),
	}, named("endgame/stars")...)
	for i := 0; i < config.MaxStars; i++ {
		m.stars = append(m.stars, NewGrowingIcon(em, engine, entities.ElementSpec{
			Name: "endgame/star", Parent: m.starGroup, Position: utils.V2(float64(i*endGameStarSpacing), 0),
			Width: endGameStarSize, Height: endGameStarSize,
			Color: color.RGBA{R: 255, G: 220, B: 60, A: 255}, Layer: 33,
		}, tween.Motion{Duration: cfg.StarGrowDuration, Ease: utils.EaseOutBack}, log))
	}

	for i := 0; i < counters; i++ {
		c := NewEndgameCounter(em, engine, counterCfg, utils.V2(cx-100, cy-10+float64(i)*40), log)
		c.SetParent(group)
		c.Reset(0)
		m.counters = append(m.counters, c)
	}

	m.button = entities.NewIconEntity(em, engine, entities.ElementSpec{
		Name: "endgame/button", Parent: group,
		Position: utils.V2(cx-endGameButtonWidth/2, cy+endGamePanelHeight/2-endGameButtonHeight-12),
		Width:    endGameButtonWidth, Height: endGameButtonHeight,
		Color: color.RGBA{R: 90, G: 130, B: 90, A: 255}, Layer: 35,
	}, named("endgame/button")...)
	entities.NewTextEntity(em, engine, entities.ElementSpec{
		Name: "endgame/button/label", Parent: m.button, Width: endGameButtonWidth, Height: endGameButtonHeight,
		Color: color.RGBA{R: 240, G: 240, B: 240, A: 255}, Layer: 36,
	}, "", "modal.close")
	ecs.AddComponent(em, m.button, &components.ClickableComponent{
		Width: endGameButtonWidth, Height: endGameButtonHeight, IsEnabled: true,
		OnClick: func() { m.Hide() },
	})

	for _, id := range []ecs.EntityID{m.holder, m.texts[0], m.texts[1]} {
		tr, _ := ecs.GetComponent[*components.TransformComponent](em, id)
		m.initialPositions[id] = tr.Position
	}

	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.reset()
	return m
}

// Group 弹窗画布组实体
func (m *EndGameModal) Group() ecs.EntityID { return m.modal.Group() }

// IsVisible 是否处于显示状态
func (m *EndGameModal) IsVisible() bool { return m.modal.IsVisible() }

// Stars 星星（固定 config.MaxStars 个）
func (m *EndGameModal) Stars() []*GrowingIcon { return m.stars }

// Counters 计数器
func (m *EndGameModal) Counters() []*EndgameCounter { return m.counters }

// Button 最后出现的关闭按钮
func (m *EndGameModal) Button() ecs.EntityID { return m.button }

// Show 淡入弹窗并开始进场流程
//
// runs 依次对应计数器，多出的忽略。返回的 Future 在按钮出现时完成，
// 流程被 Hide、再次 Show 或 Close 打断时以 ErrCancelled 结束。
func (m *EndGameModal) Show(runs ...CounterRun) *tween.Future {
	m.stopShow()
	m.reset()
	m.modal.Show()

	ctx, cancel := context.WithCancel(m.ctx)
	m.showCancel = cancel
	cfg := m.cfg
	pause := func(s float64) tween.Step { return tween.Pause(ctx, m.engine, s) }

	steps := []tween.Step{
		pause(cfg.TextEnterDelay),
		m.slideText(ctx, 0),
		m.slideText(ctx, 1),
		pause(cfg.TextTranslateDelay),
		m.raiseTitle(ctx),
		pause(cfg.EffectEnterDelay),
		pause(cfg.BackgroundEnterDelay),
		m.unroll(ctx, m.background, endGamePanelHeight),
		m.fadeInStars(ctx),
	}
	for i := 0; i < min(cfg.ObtainedStars, len(m.stars)); i++ {
		star := m.stars[i]
		steps = append(steps,
			func() (*tween.Future, error) { return star.Grow(ctx) },
			pause(cfg.NextStarDelay))
	}
	steps = append(steps,
		pause(cfg.NotchRevealDelay),
		m.unroll(ctx, m.notch, endGameNotchHeight))
	for i, run := range runs {
		if i >= len(m.counters) {
			break
		}
		c := m.counters[i]
		steps = append(steps,
			pause(cfg.CounterEnterDelay),
			func() (*tween.Future, error) { return c.Enter(run.From, run.To, run.Record), nil })
	}
	steps = append(steps, tween.Do(func() { m.entityManager.SetActive(m.button, true) }))

	f := tween.Sequence(ctx, steps...)
	f.Then(func(err error) {
		if err != nil && !tween.IsCancelled(err) {
			m.log.Warn("end game sequence failed", logx.Err(err))
		}
	})
	return f
}

// Hide 中止进场流程，元素回到初始状态并淡出弹窗
func (m *EndGameModal) Hide() *tween.Future {
	m.stopShow()
	m.reset()
	return m.modal.Hide()
}

// Close 取消弹窗上的所有动画
func (m *EndGameModal) Close() {
	m.cancel()
	m.modal.Close()
	for _, c := range m.counters {
		c.Close()
	}
}

func (m *EndGameModal) stopShow() {
	if m.showCancel != nil {
		m.showCancel()
		m.showCancel = nil
	}
}

func (m *EndGameModal) element(id ecs.EntityID) *tween.Element {
	el, _ := entities.ElementOf(m.entityManager, id)
	return el
}

// slideText 第 i 段标题沿 X 轴滑到终点
func (m *EndGameModal) slideText(ctx context.Context, i int) tween.Step {
	return func() (*tween.Future, error) {
		id := m.texts[i]
		tr, _ := ecs.GetComponent[*components.TransformComponent](m.entityManager, id)
		to := utils.V2(m.textFinalX[i], tr.Position.Y)
		return m.element(id).TweenPositionFrom(ctx, tr.Position, to,
			tween.Motion{Duration: m.cfg.TextEnterDuration, Ease: utils.EaseOutBack})
	}
}

// raiseTitle 标题整体上移，同时两段标题缩回原大小
func (m *EndGameModal) raiseTitle(ctx context.Context) tween.Step {
	return func() (*tween.Future, error) {
		motion := tween.Motion{Duration: m.cfg.TextTranslateDuration, Ease: utils.EaseOutBack}
		group := &startGroup{log: m.log}

		tr, _ := ecs.GetComponent[*components.TransformComponent](m.entityManager, m.holder)
		f, err := m.element(m.holder).TweenPositionFrom(ctx, tr.Position, tr.Position.Add(utils.V2(0, -endGameHolderRise)), motion)
		group.add("title rise", f, err)
		for _, id := range m.texts {
			f, err := m.element(id).TweenScaleFrom(ctx, utils.Splat(endGameTextScale), utils.Splat(1), motion)
			group.add("title scale", f, err)
		}
		return group.all(), nil
	}
}

func (m *EndGameModal) unroll(ctx context.Context, id ecs.EntityID, height float64) tween.Step {
	return func() (*tween.Future, error) {
		return m.element(id).TweenHeight(ctx, height)
	}
}

func (m *EndGameModal) fadeInStars(ctx context.Context) tween.Step {
	return func() (*tween.Future, error) {
		return m.element(m.starGroup).TweenCanvasAlpha(ctx, 0, 1,
			tween.Motion{Duration: m.cfg.StarFadeInDuration, Ease: utils.EaseOutBack})
	}
}

// reset 所有元素回到进场前的状态（不影响弹窗画布组的淡入淡出）
func (m *EndGameModal) reset() {
	em := m.entityManager
	for _, id := range []ecs.EntityID{m.holder, m.texts[0], m.texts[1], m.background, m.notch, m.starGroup} {
		m.element(id).CancelAll()
	}
	for id, pos := range m.initialPositions {
		if tr, ok := ecs.GetComponent[*components.TransformComponent](em, id); ok {
			tr.Position = pos
		}
	}
	for _, id := range m.texts {
		if tr, ok := ecs.GetComponent[*components.TransformComponent](em, id); ok {
			tr.Scale = utils.Splat(endGameTextScale)
		}
	}
	for _, id := range []ecs.EntityID{m.background, m.notch} {
		if l, ok := ecs.GetComponent[*components.LayoutComponent](em, id); ok {
			l.PreferredHeight = 0
		}
	}
	if g, ok := ecs.GetComponent[*components.CanvasGroupComponent](em, m.starGroup); ok {
		g.Alpha = 0
	}
	for _, s := range m.stars {
		s.Reset()
	}
	for _, c := range m.counters {
		c.Reset(0)
	}
	em.SetActive(m.button, false)
}
