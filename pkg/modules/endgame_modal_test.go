package modules

import (
	"testing"

	"github.com/decker502/uianim/pkg/components"
	"github.com/decker502/uianim/pkg/config"
	"github.com/decker502/uianim/pkg/ecs"
	"github.com/decker502/uianim/pkg/logx"
	"github.com/decker502/uianim/pkg/tween"
	"github.com/decker502/uianim/pkg/utils"
)

// 每段都是 4 帧
const endGameStep = 4 * frame

func newTestEndGame(stars int) (*ecs.EntityManager, *tween.TickEngine, *EndGameModal) {
	em := ecs.NewEntityManager()
	engine := tween.NewTickEngine()
	cfg := config.EndGameConfig{
		TextEnterDelay:          endGameStep,
		TextEnterDuration:       endGameStep,
		TextTranslateDelay:      endGameStep,
		TextTranslateDuration:   endGameStep,
		EffectEnterDelay:        endGameStep,
		BackgroundEnterDelay:    endGameStep,
		BackgroundEnterDuration: endGameStep,
		StarFadeInDuration:      endGameStep,
		StarGrowDuration:        endGameStep,
		NextStarDelay:           endGameStep,
		NotchRevealDelay:        endGameStep,
		NotchRevealDuration:     endGameStep,
		CounterEnterDelay:       endGameStep,
		ObtainedStars:           stars,
	}
	m := NewEndGameModal(em, engine, cfg,
		config.ModalConfig{FadeDuration: endGameStep},
		config.CounterConfig{TextFadeDuration: endGameStep, CountDuration: endGameStep},
		800, 600, 2, logx.Nop())
	return em, engine, m
}

func scaleOf(em *ecs.EntityManager, id ecs.EntityID) utils.Vec2 {
	tr, _ := ecs.GetComponent[*components.TransformComponent](em, id)
	return tr.Scale
}

func heightOf(em *ecs.EntityManager, id ecs.EntityID) float64 {
	l, _ := ecs.GetComponent[*components.LayoutComponent](em, id)
	return l.PreferredHeight
}

func TestEndGameModalSequence(t *testing.T) {
	em, engine, m := newTestEndGame(2)
	f := m.Show(CounterRun{To: 50, Record: 10}, CounterRun{To: 7, Record: 100})

	stars := m.Stars()
	for i := 0; i < 600 && !f.IsDone(); i++ {
		run(engine, 1)

		// 前一颗星长满之前，后一颗不能开始
		if s0, s1 := scaleOf(em, stars[0].Icon()), scaleOf(em, stars[1].Icon()); s1.X > 0 && s0 != utils.Splat(1) {
			t.Fatalf("第 %d 帧: 第二颗星 %v 在第一颗 %v 长满前开始", i+1, s1, s0)
		}
		// 凹口展开完成之前计数器不进场
		if c := m.Counters()[0].State(); c.Running && heightOf(em, m.notch) != endGameNotchHeight {
			t.Fatalf("第 %d 帧: 凹口高度 %v 时计数器已经开始", i+1, heightOf(em, m.notch))
		}
		// 第一个计数器结束之前第二个不开始
		if m.Counters()[1].State().Running && m.Counters()[0].State().Running {
			t.Fatalf("第 %d 帧: 两个计数器同时运行", i+1)
		}
		if em.IsActive(m.Button()) && m.Counters()[1].State().Displayed != 7 {
			t.Fatalf("第 %d 帧: 计数器结束前按钮已出现", i+1)
		}
	}

	if f.Status() != tween.StatusCompleted {
		t.Fatalf("Show Future = %v, 期望 completed", f.Status())
	}
	if !em.IsActive(m.Button()) {
		t.Error("流程结束后按钮应该出现")
	}
	if s := scaleOf(em, stars[1].Icon()); s != utils.Splat(1) {
		t.Errorf("第二颗星缩放 = %v, 期望 1", s)
	}
	if s := scaleOf(em, stars[2].Icon()); s != utils.Splat(0) {
		t.Errorf("未获得的星缩放 = %v, 期望 0", s)
	}
	if h := heightOf(em, m.background); h != endGamePanelHeight {
		t.Errorf("背景高度 = %v, 期望 %v", h, endGamePanelHeight)
	}
	for i, id := range m.texts {
		tr, _ := ecs.GetComponent[*components.TransformComponent](em, id)
		if tr.Position.X != m.textFinalX[i] || tr.Scale != utils.Splat(1) {
			t.Errorf("标题 %d: 位置 %v 缩放 %v, 期望 x=%v 缩放 1", i, tr.Position, tr.Scale, m.textFinalX[i])
		}
	}
	holder, _ := ecs.GetComponent[*components.TransformComponent](em, m.holder)
	if want := m.initialPositions[m.holder].Y - endGameHolderRise; holder.Position.Y != want {
		t.Errorf("标题上移后 Y = %v, 期望 %v", holder.Position.Y, want)
	}
	if d := m.Counters()[0].State().Displayed; d != 50 {
		t.Errorf("第一个计数器 = %d, 期望 50", d)
	}
	if d := m.Counters()[1].State().Displayed; d != 7 {
		t.Errorf("第二个计数器 = %d, 期望 7", d)
	}
}

func TestEndGameModalHideResets(t *testing.T) {
	em, engine, m := newTestEndGame(3)
	f := m.Show(CounterRun{To: 30})

	// 停在星星生长阶段
	for i := 0; i < 600 && scaleOf(em, m.Stars()[0].Icon()).X == 0; i++ {
		run(engine, 1)
	}
	m.Hide()
	run(engine, 1)

	if f.Status() != tween.StatusCancelled {
		t.Fatalf("Hide 后 Show Future = %v, 期望 cancelled", f.Status())
	}
	for i, s := range m.Stars() {
		if sc := scaleOf(em, s.Icon()); sc != utils.Splat(0) {
			t.Errorf("星 %d 缩放 = %v, 期望 0", i, sc)
		}
	}
	if h := heightOf(em, m.background); h != 0 {
		t.Errorf("背景高度 = %v, 期望 0", h)
	}
	for _, id := range m.texts {
		tr, _ := ecs.GetComponent[*components.TransformComponent](em, id)
		if tr.Position != m.initialPositions[id] || tr.Scale != utils.Splat(endGameTextScale) {
			t.Errorf("标题没有复位: 位置 %v 缩放 %v", tr.Position, tr.Scale)
		}
	}
	if em.IsActive(m.Button()) {
		t.Error("Hide 后按钮应该隐藏")
	}

	run(engine, 200)
	if m.IsVisible() || engine.Active() != 0 {
		t.Errorf("visible = %v active = %d, 期望淡出结束且没有残留动画", m.IsVisible(), engine.Active())
	}
	if heightOf(em, m.notch) != 0 || m.Counters()[0].State().Running {
		t.Error("Hide 之后流程不应继续")
	}
}

func TestEndGameModalReshowCancelsPrevious(t *testing.T) {
	em, engine, m := newTestEndGame(1)
	first := m.Show()
	run(engine, 10)
	second := m.Show()
	run(engine, 1)

	if first.Status() != tween.StatusCancelled {
		t.Errorf("第一次 Show = %v, 期望 cancelled", first.Status())
	}
	for i := 0; i < 600 && !second.IsDone(); i++ {
		run(engine, 1)
	}
	if second.Status() != tween.StatusCompleted {
		t.Fatalf("第二次 Show = %v, 期望 completed", second.Status())
	}
	if s := scaleOf(em, m.Stars()[0].Icon()); s != utils.Splat(1) {
		t.Errorf("星缩放 = %v, 期望 1", s)
	}
}
