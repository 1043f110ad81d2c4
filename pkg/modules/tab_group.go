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

// tabIconSize 标签图标边长
const tabIconSize = 32

// TabSpec 一个标签的外观与类型
type TabSpec struct {
	Name     string
	LabelKey string // 本地化键
	Type     components.TabType
	Color    color.RGBA // 选中背景颜色
	Icon     color.RGBA
}

// TabGroup 标签栏模块
//
// 职责：
//   - 横向排列标签，宽度随动画变化时重新排布
//   - 选中：背景淡入，图标上移并放大，文字淡入，宽度展开
//   - 取消选中：以上全部反向，图标回到初始位置和大小
//   - 锁定标签不响应点击，也不参与取消选中
//
// 同一时刻最多一个标签被选中；重复选中当前标签不做任何事。
type TabGroup struct {
	entityManager *ecs.EntityManager
	cfg           config.TabsConfig
	log           logx.Logger

	ctx    context.Context
	cancel context.CancelFunc

	origin  utils.Vec2
	tabs    []ecs.EntityID
	anchors []ecs.EntityID // 图标锚点（随宽度重新居中，图标本身相对锚点做动画）
	current int            // -1 表示没有选中
}

// NewTabGroup 创建标签栏
//
// 参数：
//   - em: EntityManager 实例
//   - engine: 驱动标签元素的插值引擎
//   - cfg: 标签尺寸与动画时长
//   - origin: 第一个标签的左上角
//   - specs: 标签列表（从左到右）
func NewTabGroup(em *ecs.EntityManager, engine tween.Engine, cfg config.TabsConfig, origin utils.Vec2, specs []TabSpec, log logx.Logger) *TabGroup {
	ctx, cancel := context.WithCancel(context.Background())
	g := &TabGroup{
		entityManager: em,
		cfg:           cfg,
		log:           log,
		ctx:           ctx,
		cancel:        cancel,
		origin:        origin,
		current:       -1,
	}

	motions := tween.Motions{
		Scale: tween.Motion{Duration: cfg.Duration, Ease: utils.EaseOutBack},
		Move:  tween.Motion{Duration: cfg.Duration, Ease: utils.EaseOutBack},
		Alpha: tween.Motion{Duration: cfg.Duration, Ease: utils.EaseInOutCubic},
		Size:  tween.Motion{Duration: cfg.Duration, Ease: utils.EaseInOutCubic},
	}
	opt := func(name string) []tween.Option {
		return []tween.Option{tween.WithMotions(motions), tween.WithLogger(log), tween.WithName(name)}
	}

	for i, spec := range specs {
		tab := entities.NewLayoutEntity(em, engine, entities.ElementSpec{
			Name:   spec.Name,
			Width:  cfg.CollapsedWidth,
			Height: cfg.Height,
			Color:  color.RGBA{R: 40, G: 44, B: 52, A: 255},
		}, opt(spec.Name+"/layout")...)

		bg := entities.NewIconEntity(em, engine, entities.ElementSpec{
			Name:   spec.Name + "/background",
			Parent: tab,
			Width:  cfg.CollapsedWidth,
			Height: cfg.Height,
			Color:  spec.Color,
			Layer:  1,
			Hidden: true,
		}, opt(spec.Name+"/background")...)

		anchor := em.CreateEntity()
		ecs.AddComponent(em, anchor, components.NewTransform(utils.Vec2{}, tab))

		icon := entities.NewIconEntity(em, engine, entities.ElementSpec{
			Name:   spec.Name + "/icon",
			Parent: anchor,
			Width:  tabIconSize,
			Height: tabIconSize,
			Color:  spec.Icon,
			Layer:  2,
		}, opt(spec.Name+"/icon")...)

		label := entities.NewTextEntity(em, engine, entities.ElementSpec{
			Name:     spec.Name + "/label",
			Parent:   tab,
			Position: utils.V2(0, cfg.Height-18),
			Width:    cfg.CollapsedWidth,
			Height:   16,
			Layer:    3,
			Hidden:   true,
		}, spec.Name, spec.LabelKey, opt(spec.Name+"/label")...)

		index := i
		ecs.AddComponent(em, tab, &components.TabComponent{
			Index:      i,
			Type:       spec.Type,
			Background: bg,
			Icon:       icon,
			Label:      label,
			Layout:     tab,
		})
		ecs.AddComponent(em, tab, &components.ClickableComponent{
			Width:     cfg.CollapsedWidth,
			Height:    cfg.Height,
			IsEnabled: true,
			OnClick:   func() { g.Select(index) },
		})

		g.tabs = append(g.tabs, tab)
		g.anchors = append(g.anchors, anchor)
	}
	g.Relayout()
	return g
}

// Tabs 标签实体（从左到右）
func (g *TabGroup) Tabs() []ecs.EntityID { return append([]ecs.EntityID(nil), g.tabs...) }

// Current 当前选中的标签下标，-1 表示没有
func (g *TabGroup) Current() int { return g.current }

// Start 取消选中所有标签，然后选中主标签（如果有）
func (g *TabGroup) Start() *tween.Future {
	main := -1
	for i, tab := range g.tabs {
		if g.tab(tab).Type == components.TabMain {
			main = i
		}
	}

	// 主标签直接选中，不先取消选中（否则它的取消选中动画会被立即顶替）
	var futures []*tween.Future
	for i, tab := range g.tabs {
		if i == main {
			futures = append(futures, g.selectTab(tab))
		} else {
			futures = append(futures, g.deselect(tab))
		}
	}
	g.current = main
	return tween.WhenAll(futures...)
}

// Select 选中第 index 个标签并取消选中其他标签
// 锁定标签、越界下标和当前已选中的标签直接返回已完成的 Future
func (g *TabGroup) Select(index int) *tween.Future {
	if index < 0 || index >= len(g.tabs) || index == g.current {
		return tween.Resolved()
	}
	tab := g.tabs[index]
	if g.tab(tab).Type == components.TabLocked {
		g.log.Info("tab locked", logx.Int("tab", index))
		return tween.Resolved()
	}

	g.current = index
	var futures []*tween.Future
	for i, other := range g.tabs {
		if i == index {
			futures = append(futures, g.selectTab(other))
		} else {
			futures = append(futures, g.deselect(other))
		}
	}
	return tween.WhenAll(futures...)
}

func (g *TabGroup) tab(id ecs.EntityID) *components.TabComponent {
	tc, _ := ecs.GetComponent[*components.TabComponent](g.entityManager, id)
	return tc
}

func (g *TabGroup) element(id ecs.EntityID) *tween.Element {
	el, _ := entities.ElementOf(g.entityManager, id)
	return el
}

func (g *TabGroup) selectTab(id ecs.EntityID) *tween.Future {
	tc := g.tab(id)
	tc.Selected = true
	group := &startGroup{log: g.log}

	f, err := g.element(tc.Background).TweenAlpha(g.ctx, 1)
	group.add("background alpha", f, err)

	icon := g.element(tc.Icon)
	f, err = icon.TweenPosition(g.ctx, icon.InitialPosition().Add(utils.V2(0, -g.cfg.IconOffset)))
	group.add("icon position", f, err)
	f, err = icon.TweenScale(g.ctx, utils.Splat(g.cfg.IconScale))
	group.add("icon scale", f, err)

	f, err = g.element(tc.Label).TweenAlpha(g.ctx, 1)
	group.add("label alpha", f, err)

	f, err = g.element(tc.Layout).TweenWidth(g.ctx, g.cfg.ExpandedWidth)
	group.add("layout width", f, err)
	return group.all()
}

func (g *TabGroup) deselect(id ecs.EntityID) *tween.Future {
	tc := g.tab(id)
	if tc.Type == components.TabLocked {
		return tween.Resolved()
	}
	tc.Selected = false
	group := &startGroup{log: g.log}

	f, err := g.element(tc.Background).TweenAlpha(g.ctx, 0)
	group.add("background alpha", f, err)

	icon := g.element(tc.Icon)
	f, err = icon.ResetPosition(g.ctx)
	group.add("icon position", f, err)
	f, err = icon.ResetScale(g.ctx)
	group.add("icon scale", f, err)

	f, err = g.element(tc.Label).TweenAlpha(g.ctx, 0)
	group.add("label alpha", f, err)

	f, err = g.element(tc.Layout).TweenWidth(g.ctx, g.cfg.CollapsedWidth)
	group.add("layout width", f, err)
	return group.all()
}

// Relayout 按当前首选宽度从左到右排布标签
func (g *TabGroup) Relayout() {
	x := g.origin.X
	for i, id := range g.tabs {
		layout, _ := ecs.GetComponent[*components.LayoutComponent](g.entityManager, id)
		w := layout.PreferredWidth

		if tr, ok := ecs.GetComponent[*components.TransformComponent](g.entityManager, id); ok {
			tr.Position = utils.V2(x, g.origin.Y)
		}
		if c, ok := ecs.GetComponent[*components.ClickableComponent](g.entityManager, id); ok {
			c.Width = w
		}
		tc := g.tab(id)
		for _, child := range []ecs.EntityID{tc.Background, tc.Label} {
			if sp, ok := ecs.GetComponent[*components.SpriteComponent](g.entityManager, child); ok {
				sp.Width = w
			}
		}
		if tr, ok := ecs.GetComponent[*components.TransformComponent](g.entityManager, g.anchors[i]); ok {
			tr.Position = utils.V2((w-tabIconSize)/2, (layout.PreferredHeight-tabIconSize)/2)
		}
		x += w
	}
}

// Update 每帧重新排布
func (g *TabGroup) Update(deltaTime float64) {
	g.Relayout()
}

// Close 取消所有标签动画
func (g *TabGroup) Close() {
	g.cancel()
}
