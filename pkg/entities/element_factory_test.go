package entities

import (
	"context"
	"errors"
	"testing"

	"github.com/decker502/uianim/pkg/components"
	"github.com/decker502/uianim/pkg/config"
	"github.com/decker502/uianim/pkg/ecs"
	"github.com/decker502/uianim/pkg/tween"
	"github.com/decker502/uianim/pkg/utils"
)

func tickN(engine *tween.TickEngine, n int) {
	for i := 0; i < n; i++ {
		engine.Tick(1.0 / 64)
	}
}

func TestNewIconEntityBindings(t *testing.T) {
	em := ecs.NewEntityManager()
	engine := tween.NewTickEngine()

	id := NewIconEntity(em, engine, ElementSpec{Name: "icon", Position: utils.V2(10, 20), Width: 32, Height: 32})
	el, ok := ElementOf(em, id)
	if !ok {
		t.Fatal("图标实体应该带有 TweenComponent")
	}
	for _, k := range []tween.TrackKind{tween.TrackScale, tween.TrackMove, tween.TrackAlpha, tween.TrackShake, tween.TrackJelly} {
		if !el.Supports(k) {
			t.Errorf("图标应该支持 %s 轨道", k)
		}
	}

	f, err := el.TweenPositionFrom(context.Background(), utils.V2(10, 20), utils.V2(10, 8), tween.Motion{Duration: 0.125})
	if err != nil {
		t.Fatalf("TweenPositionFrom: %v", err)
	}
	tickN(engine, 8)
	if !f.IsDone() {
		t.Fatal("动画应该已经结束")
	}
	tr, _ := ecs.GetComponent[*components.TransformComponent](em, id)
	if tr.Position != utils.V2(10, 8) {
		t.Errorf("Position = %v, 期望 (10, 8)", tr.Position)
	}
	if el.InitialPosition() != utils.V2(10, 20) {
		t.Errorf("InitialPosition = %v", el.InitialPosition())
	}
}

func TestNewTextEntityUsesTextChannel(t *testing.T) {
	em := ecs.NewEntityManager()
	engine := tween.NewTickEngine()

	id := NewTextEntity(em, engine, ElementSpec{Name: "label", Hidden: true}, "", "tab.shop")
	if _, ok := ecs.GetComponent[*components.LocalisedTextComponent](em, id); !ok {
		t.Error("key 非空时应该添加 LocalisedTextComponent")
	}

	el, _ := ElementOf(em, id)
	if _, err := el.TweenAlpha(context.Background(), 1); err != nil {
		t.Fatalf("TweenAlpha: %v", err)
	}
	if !el.Scheduler().IsRunning(tween.ChannelText) {
		t.Errorf("活动通道 = %v, 期望 text", el.Scheduler().ActiveChannels())
	}

	// 文本元素不支持缩放
	_, err := el.PlayClip(context.Background(), &config.TweenClip{ID: "pop", Scale: config.ScaleTrack{Enabled: true, To: utils.Splat(2)}})
	if !errors.Is(err, tween.ErrUnsupportedTrack) {
		t.Errorf("err = %v, 期望 ErrUnsupportedTrack", err)
	}
}

func TestNewLayoutEntityWidth(t *testing.T) {
	em := ecs.NewEntityManager()
	engine := tween.NewTickEngine()

	id := NewLayoutEntity(em, engine, ElementSpec{Name: "tab", Width: 120, Height: 64},
		tween.WithMotions(tween.Motions{Size: tween.Motion{Duration: 0.125}}))
	el, _ := ElementOf(em, id)

	if _, err := el.TweenWidth(context.Background(), 180); err != nil {
		t.Fatalf("TweenWidth: %v", err)
	}
	tickN(engine, 8)
	layout, _ := ecs.GetComponent[*components.LayoutComponent](em, id)
	if layout.PreferredWidth != 180 || layout.PreferredHeight != 64 {
		t.Errorf("layout = %+v, 期望 180x64", layout)
	}
	if el.Supports(tween.TrackMove) {
		t.Error("布局元素不应支持位移")
	}
}

func TestHierarchyHelpers(t *testing.T) {
	em := ecs.NewEntityManager()
	engine := tween.NewTickEngine()

	group := NewCanvasGroupEntity(em, engine, ElementSpec{Name: "modal", Position: utils.V2(100, 50)})
	icon := NewIconEntity(em, engine, ElementSpec{Name: "icon", Parent: group, Position: utils.V2(5, 5)})

	if got := WorldPosition(em, icon); got != utils.V2(105, 55) {
		t.Errorf("WorldPosition = %v, 期望 (105, 55)", got)
	}

	g, _ := ecs.GetComponent[*components.CanvasGroupComponent](em, group)
	g.Alpha = 0.5
	a, _ := ecs.GetComponent[*components.AlphaComponent](em, icon)
	a.Value = 0.5
	if got := EffectiveAlpha(em, icon); got != 0.25 {
		t.Errorf("EffectiveAlpha = %v, 期望 0.25", got)
	}

	if !ActiveInHierarchy(em, icon) {
		t.Error("新实体应该处于启用状态")
	}
	em.SetActive(group, false)
	if ActiveInHierarchy(em, icon) {
		t.Error("父实体停用后子实体也应视为停用")
	}
}
