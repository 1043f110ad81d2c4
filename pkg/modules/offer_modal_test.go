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

func newTestOffer() (*ecs.EntityManager, *tween.TickEngine, *OfferModal) {
	em := ecs.NewEntityManager()
	engine := tween.NewTickEngine()
	cfg := config.OfferConfig{ScaleDuration: 4 * frame, MoveDuration: 8 * frame, YOffset: -60, ShineDuration: 4 * frame, ShineOffset: 188}
	return em, engine, NewOfferModal(em, engine, cfg, config.ModalConfig{FadeDuration: 4 * frame}, 800, 600, logx.Nop())
}

func TestOfferModalChain(t *testing.T) {
	em, engine, m := newTestOffer()
	f := m.Show()

	run(engine, 4)
	if s := scaleOf(em, m.texts[0]); s != utils.Splat(1) {
		t.Fatalf("第一行缩放 = %v, 期望 1", s)
	}
	if s := scaleOf(em, m.texts[1]); s != utils.Splat(0) {
		t.Fatalf("第一行光泽扫过之前第二行不应开始: %v", s)
	}
	if !em.IsActive(m.shines[0]) {
		t.Fatal("第一行放大后光泽应开始")
	}

	run(engine, 4)
	if em.IsActive(m.shines[0]) {
		t.Error("光泽扫完后应该隐藏")
	}

	for i := 0; i < 64 && !f.IsDone(); i++ {
		run(engine, 1)
	}
	if f.Status() != tween.StatusCompleted {
		t.Fatalf("Show = %v, 期望 completed", f.Status())
	}
	holder, _ := ecs.GetComponent[*components.TransformComponent](em, m.holder)
	if want := m.initialPositions[m.holder].Add(utils.V2(0, -60)); holder.Position != want {
		t.Errorf("标题组位置 = %v, 期望 %v", holder.Position, want)
	}
}

func TestOfferModalHideResets(t *testing.T) {
	em, engine, m := newTestOffer()
	f := m.Show()
	run(engine, 10)
	m.Hide()

	if f.Status() != tween.StatusCancelled {
		t.Errorf("Hide 后 Show = %v, 期望 cancelled", f.Status())
	}
	for i, id := range m.texts {
		if s := scaleOf(em, id); s != utils.Splat(0) {
			t.Errorf("第 %d 行缩放 = %v, 期望 0", i, s)
		}
	}
	for _, id := range m.shines {
		tr, _ := ecs.GetComponent[*components.TransformComponent](em, id)
		if em.IsActive(id) || tr.Position != m.initialPositions[id] {
			t.Errorf("光泽没有复位: active=%v pos=%v", em.IsActive(id), tr.Position)
		}
	}
	run(engine, 20)
	if engine.Active() != 0 || m.IsVisible() {
		t.Errorf("active = %d visible = %v", engine.Active(), m.IsVisible())
	}
}
