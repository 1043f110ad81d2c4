package entities

import (
	"image/color"

	"github.com/decker502/uianim/pkg/components"
	"github.com/decker502/uianim/pkg/ecs"
	"github.com/decker502/uianim/pkg/tween"
	"github.com/decker502/uianim/pkg/utils"
)

// ElementSpec 创建 UI 元素实体的公共参数
type ElementSpec struct {
	Name     string
	Parent   ecs.EntityID
	Position utils.Vec2 // 相对父实体
	Width    float64
	Height   float64
	Color    color.RGBA
	Layer    int
	// Hidden 为 true 时初始透明度为 0
	Hidden bool
}

func (s ElementSpec) initialAlpha() float64 {
	if s.Hidden {
		return 0
	}
	return 1
}

// newBaseEntity 创建带变换和精灵的实体
func newBaseEntity(em *ecs.EntityManager, spec ElementSpec) (ecs.EntityID, *components.TransformComponent) {
	id := em.CreateEntity()
	tr := components.NewTransform(spec.Position, spec.Parent)
	ecs.AddComponent(em, id, tr)
	ecs.AddComponent(em, id, &components.SpriteComponent{
		Width:  spec.Width,
		Height: spec.Height,
		Color:  spec.Color,
		Layer:  spec.Layer,
	})
	return id, tr
}

func attachElement(em *ecs.EntityManager, id ecs.EntityID, el *tween.Element) {
	ecs.AddComponent(em, id, &components.TweenComponent{Element: el})
}

// NewIconEntity 创建图标元素：支持缩放、位移、透明度以及抖动/果冻轨道
func NewIconEntity(em *ecs.EntityManager, engine tween.Engine, spec ElementSpec, opts ...tween.Option) ecs.EntityID {
	id, tr := newBaseEntity(em, spec)
	alpha := &components.AlphaComponent{Value: spec.initialAlpha()}
	ecs.AddComponent(em, id, alpha)

	el := tween.NewElement(spec.Name, engine, tween.Bindings{
		Scale: &tween.Vec2Binding{
			Get: func() utils.Vec2 { return tr.Scale },
			Set: func(v utils.Vec2) { tr.Scale = v },
		},
		Position: &tween.Vec2Binding{
			Get: func() utils.Vec2 { return tr.Position },
			Set: func(v utils.Vec2) { tr.Position = v },
		},
		Alpha: &tween.ScalarBinding{
			Get: func() float64 { return alpha.Value },
			Set: func(v float64) { alpha.Value = v },
		},
		Rotation: &tween.ScalarBinding{
			Get: func() float64 { return tr.Rotation },
			Set: func(v float64) { tr.Rotation = v },
		},
	}, opts...)
	attachElement(em, id, el)
	return id
}

// NewTextEntity 创建文本元素：只支持透明度（走 text 通道）
// key 非空时文本来自本地化表
func NewTextEntity(em *ecs.EntityManager, engine tween.Engine, spec ElementSpec, text, key string, opts ...tween.Option) ecs.EntityID {
	id, _ := newBaseEntity(em, spec)
	txt := &components.TextComponent{
		Text:  text,
		Color: spec.Color,
		Alpha: spec.initialAlpha(),
		Scale: 1,
	}
	ecs.AddComponent(em, id, txt)
	if key != "" {
		ecs.AddComponent(em, id, &components.LocalisedTextComponent{Key: key})
	}
	// 文本不画背景矩形
	if sp, ok := ecs.GetComponent[*components.SpriteComponent](em, id); ok {
		sp.Color = color.RGBA{}
	}

	el := tween.NewElement(spec.Name, engine, tween.Bindings{
		Alpha: &tween.ScalarBinding{
			Get:     func() float64 { return txt.Alpha },
			Set:     func(v float64) { txt.Alpha = v },
			Channel: tween.ChannelText,
		},
	}, opts...)
	attachElement(em, id, el)
	return id
}

// NewLayoutEntity 创建布局元素：只支持首选宽度/高度（单轴缩放轨道）
func NewLayoutEntity(em *ecs.EntityManager, engine tween.Engine, spec ElementSpec, opts ...tween.Option) ecs.EntityID {
	id, _ := newBaseEntity(em, spec)
	layout := &components.LayoutComponent{PreferredWidth: spec.Width, PreferredHeight: spec.Height}
	ecs.AddComponent(em, id, layout)

	el := tween.NewElement(spec.Name, engine, tween.Bindings{
		Width: &tween.ScalarBinding{
			Get: func() float64 { return layout.PreferredWidth },
			Set: func(v float64) { layout.PreferredWidth = v },
		},
		Height: &tween.ScalarBinding{
			Get: func() float64 { return layout.PreferredHeight },
			Set: func(v float64) { layout.PreferredHeight = v },
		},
	}, opts...)
	attachElement(em, id, el)
	return id
}

// NewCanvasGroupEntity 创建画布组：只支持画布透明度
func NewCanvasGroupEntity(em *ecs.EntityManager, engine tween.Engine, spec ElementSpec, opts ...tween.Option) ecs.EntityID {
	id, _ := newBaseEntity(em, spec)
	group := &components.CanvasGroupComponent{Alpha: spec.initialAlpha(), Interactable: !spec.Hidden}
	ecs.AddComponent(em, id, group)

	el := tween.NewElement(spec.Name, engine, tween.Bindings{
		CanvasAlpha: &tween.ScalarBinding{
			Get: func() float64 { return group.Alpha },
			Set: func(v float64) { group.Alpha = v },
		},
	}, opts...)
	attachElement(em, id, el)
	return id
}

// ElementOf 返回实体上的可动画元素
func ElementOf(em *ecs.EntityManager, id ecs.EntityID) (*tween.Element, bool) {
	tc, ok := ecs.GetComponent[*components.TweenComponent](em, id)
	if !ok || tc.Element == nil {
		return nil, false
	}
	return tc.Element, true
}

// WorldPosition 沿父链累加本地位置
func WorldPosition(em *ecs.EntityManager, id ecs.EntityID) utils.Vec2 {
	var pos utils.Vec2
	seen := 0
	for id != 0 && seen < 64 {
		tr, ok := ecs.GetComponent[*components.TransformComponent](em, id)
		if !ok {
			break
		}
		pos = pos.Add(tr.Position)
		id = tr.Parent
		seen++
	}
	return pos
}

// EffectiveAlpha 元素透明度乘以所有祖先（含自身）画布组的透明度
func EffectiveAlpha(em *ecs.EntityManager, id ecs.EntityID) float64 {
	a := 1.0
	if al, ok := ecs.GetComponent[*components.AlphaComponent](em, id); ok {
		a = al.Value
	}
	if txt, ok := ecs.GetComponent[*components.TextComponent](em, id); ok {
		a *= txt.Alpha
	}
	seen := 0
	for cur := id; cur != 0 && seen < 64; seen++ {
		if g, ok := ecs.GetComponent[*components.CanvasGroupComponent](em, cur); ok {
			a *= g.Alpha
		}
		tr, ok := ecs.GetComponent[*components.TransformComponent](em, cur)
		if !ok {
			break
		}
		cur = tr.Parent
	}
	return utils.Clamp01(a)
}

// ActiveInHierarchy 实体及其所有祖先都处于启用状态
func ActiveInHierarchy(em *ecs.EntityManager, id ecs.EntityID) bool {
	seen := 0
	for cur := id; cur != 0 && seen < 64; seen++ {
		if !em.IsActive(cur) {
			return false
		}
		tr, ok := ecs.GetComponent[*components.TransformComponent](em, cur)
		if !ok {
			break
		}
		cur = tr.Parent
	}
	return true
}

// IsDescendant id 是否为 root 本身或其子孙
func IsDescendant(em *ecs.EntityManager, id, root ecs.EntityID) bool {
	for depth := 0; id != 0 && depth < 64; depth++ {
		if id == root {
			return true
		}
		tr, ok := ecs.GetComponent[*components.TransformComponent](em, id)
		if !ok {
			return false
		}
		id = tr.Parent
	}
	return false
}
