package systems

import (
	"image/color"
	"math"
	"testing"

	"github.com/decker502/uianim/pkg/components"
	"github.com/decker502/uianim/pkg/ecs"
	"github.com/decker502/uianim/pkg/entities"
	"github.com/decker502/uianim/pkg/tween"
	"github.com/decker502/uianim/pkg/utils"
)

func TestRenderSystemCollectOrderAndVisibility(t *testing.T) {
	em := ecs.NewEntityManager()
	engine := tween.NewTickEngine()
	red := color.RGBA{R: 255, A: 255}

	top := entities.NewIconEntity(em, engine, entities.ElementSpec{Name: "top", Width: 10, Height: 10, Color: red, Layer: 5})
	bottom := entities.NewIconEntity(em, engine, entities.ElementSpec{Name: "bottom", Width: 10, Height: 10, Color: red, Layer: 1})
	hidden := entities.NewIconEntity(em, engine, entities.ElementSpec{Name: "hidden", Width: 10, Height: 10, Color: red, Hidden: true})
	off := entities.NewIconEntity(em, engine, entities.ElementSpec{Name: "off", Width: 10, Height: 10, Color: red})
	em.SetActive(off, false)

	items := NewRenderSystem(em, nil).Collect()
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, 期望 2 (透明和停用的元素不绘制)", len(items))
	}
	if items[0].ID != bottom || items[1].ID != top {
		t.Errorf("绘制顺序 = [%d %d], 期望 [%d %d]", items[0].ID, items[1].ID, bottom, top)
	}
	_ = hidden
}

func TestRenderSystemCollectGeometry(t *testing.T) {
	em := ecs.NewEntityManager()
	engine := tween.NewTickEngine()

	panel := entities.NewCanvasGroupEntity(em, engine, entities.ElementSpec{Name: "panel", Position: utils.V2(100, 100)})
	icon := entities.NewIconEntity(em, engine, entities.ElementSpec{
		Name: "icon", Parent: panel, Position: utils.V2(10, 10), Width: 20, Height: 20,
		Color: color.RGBA{G: 255, A: 255},
	})
	tr, _ := ecs.GetComponent[*components.TransformComponent](em, icon)
	tr.Scale = utils.Splat(2)
	g, _ := ecs.GetComponent[*components.CanvasGroupComponent](em, panel)
	g.Alpha = 0.5

	var item DrawItem
	for _, it := range NewRenderSystem(em, nil).Collect() {
		if it.ID == icon {
			item = it
		}
	}
	if item.ID != icon {
		t.Fatal("图标应该被收集")
	}
	// 以中心缩放：20x20 放大到 40x40，左上角向左上移动 10
	if item.X != 100 || item.Y != 100 || item.W != 40 || item.H != 40 {
		t.Errorf("rect = (%v, %v, %v, %v), 期望 (100, 100, 40, 40)", item.X, item.Y, item.W, item.H)
	}
	if math.Abs(item.Alpha-0.5) > 1e-9 {
		t.Errorf("Alpha = %v, 期望 0.5", item.Alpha)
	}
}

func TestRenderSystemCollectUsesLayoutSize(t *testing.T) {
	em := ecs.NewEntityManager()
	id := entities.NewLayoutEntity(em, tween.NewTickEngine(), entities.ElementSpec{
		Name: "tab", Width: 120, Height: 64, Color: color.RGBA{B: 255, A: 255},
	})
	layout, _ := ecs.GetComponent[*components.LayoutComponent](em, id)
	layout.PreferredWidth = 180

	items := NewRenderSystem(em, nil).Collect()
	if len(items) != 1 || items[0].W != 180 || items[0].H != 64 {
		t.Errorf("items = %+v, 期望宽 180 高 64", items)
	}
}

func TestRenderSystemCollectNarrowsRotated(t *testing.T) {
	em := ecs.NewEntityManager()
	id := entities.NewIconEntity(em, tween.NewTickEngine(), entities.ElementSpec{
		Name: "actor", Width: 40, Height: 20, Color: color.RGBA{R: 255, A: 255},
	})
	tr, _ := ecs.GetComponent[*components.TransformComponent](em, id)

	tests := []struct {
		rotation float64
		w, x     float64
	}{
		{0, 40, 0},
		{60, 20, 10},
		{180, 40, 0},
		{240, 20, 10},
	}
	for _, tt := range tests {
		tr.Rotation = tt.rotation
		items := NewRenderSystem(em, nil).Collect()
		if len(items) != 1 {
			t.Fatalf("len(items) = %d", len(items))
		}
		it := items[0]
		// 绕竖直中轴转动，只收窄宽度，高度不变
		if math.Abs(it.W-tt.w) > 1e-9 || math.Abs(it.X-tt.x) > 1e-9 || it.H != 20 {
			t.Errorf("rotation %v: rect = (%v, %v, %v), 期望 x=%v w=%v h=20", tt.rotation, it.X, it.W, it.H, tt.x, tt.w)
		}
	}
}

func TestTextSizeDefaultFace(t *testing.T) {
	face := DefaultFace()

	zh, zhH := TextSize(face, "关卡完成")
	if zh <= 0 || zhH <= 0 {
		t.Fatalf("TextSize(关卡完成) = (%v, %v), 中文应有宽度", zh, zhH)
	}
	one, _ := TextSize(face, "关")
	if math.Abs(zh-4*one) > 1e-9 {
		t.Errorf("四个汉字宽 %v, 期望 4×%v", zh, one)
	}

	ab, h1 := TextSize(face, "abcd")
	multi, h2 := TextSize(face, "ab\nabcd")
	if multi != ab {
		t.Errorf("多行宽度 = %v, 期望最长一行 %v", multi, ab)
	}
	if math.Abs(h2-2*h1) > 1e-9 {
		t.Errorf("两行高度 = %v, 期望 2×%v", h2, h1)
	}
}

func TestNewRenderSystemFallsBackToDefaultFace(t *testing.T) {
	s := NewRenderSystem(ecs.NewEntityManager(), nil)
	if s.Face() == nil {
		t.Fatal("未指定字体时应使用内置字体")
	}
	if w, _ := TextSize(s.Face(), "金币不足"); w <= 0 {
		t.Errorf("内置字体测不出中文宽度: %v", w)
	}
}

func TestWithAlpha(t *testing.T) {
	c := withAlpha(color.RGBA{R: 200, G: 100, B: 50, A: 255}, 0.5)
	if c.R != 100 || c.G != 50 || c.B != 25 || c.A != 127 {
		t.Errorf("withAlpha = %+v", c)
	}
	if got := withAlpha(color.RGBA{A: 255}, 2); got.A != 255 {
		t.Errorf("透明度应截断到 1, got A = %d", got.A)
	}
}
