package modules

import (
	"context"
	"image/color"
	"math"
	"strconv"

	"github.com/decker502/uianim/pkg/components"
	"github.com/decker502/uianim/pkg/config"
	"github.com/decker502/uianim/pkg/ecs"
	"github.com/decker502/uianim/pkg/entities"
	"github.com/decker502/uianim/pkg/logx"
	"github.com/decker502/uianim/pkg/tween"
	"github.com/decker502/uianim/pkg/utils"
)

// EndgameCounter 结算计数器
//
// Enter：图标淡入，文字淡入，数字从 From 滚动到 To（显示 floor 后的整数），
// 最终数字超过记录时再淡入记录徽章。
type EndgameCounter struct {
	entityManager *ecs.EntityManager
	cfg           config.CounterConfig
	log           logx.Logger

	root  ecs.EntityID
	icon  ecs.EntityID
	text  ecs.EntityID
	badge ecs.EntityID

	// counting 数字滚动没有对应的元素属性，单独一个调度器
	counting *tween.Scheduler

	ctx    context.Context
	cancel context.CancelFunc
}

// NewEndgameCounter 在 origin 处创建计数器（初始全部隐藏）
func NewEndgameCounter(em *ecs.EntityManager, engine tween.Engine, cfg config.CounterConfig, origin utils.Vec2, log logx.Logger) *EndgameCounter {
	root := em.CreateEntity()
	ecs.AddComponent(em, root, components.NewTransform(origin, 0))

	iconMotions := tween.DefaultMotions()
	iconMotions.Alpha = tween.Motion{Duration: 0.18, Ease: utils.EaseOutCubic}
	textMotions := tween.DefaultMotions()
	textMotions.Alpha = tween.Motion{Duration: cfg.TextFadeDuration, Ease: utils.EaseInCubic}

	c := &EndgameCounter{
		entityManager: em,
		cfg:           cfg,
		log:           log,
		root:          root,
		counting:      tween.NewScheduler(engine, tween.WithLogger(log), tween.WithName("counter")),
	}
	c.icon = entities.NewIconEntity(em, engine, entities.ElementSpec{
		Name: "counter/icon", Parent: root, Width: 32, Height: 32,
		Color: color.RGBA{R: 255, G: 215, B: 0, A: 255}, Layer: 5, Hidden: true,
	}, tween.WithMotions(iconMotions))
	c.text = entities.NewTextEntity(em, engine, entities.ElementSpec{
		Name: "counter/text", Parent: root, Position: utils.V2(40, 0), Width: 120, Height: 32,
		Color: color.RGBA{R: 255, G: 255, B: 255, A: 255}, Layer: 5, Hidden: true,
	}, "0", "", tween.WithMotions(textMotions))
	c.badge = entities.NewIconEntity(em, engine, entities.ElementSpec{
		Name: "counter/badge", Parent: root, Position: utils.V2(168, 4), Width: 24, Height: 24,
		Color: color.RGBA{R: 220, G: 60, B: 60, A: 255}, Layer: 5, Hidden: true,
	}, tween.WithMotions(iconMotions))
	ecs.AddComponent(em, c.text, &components.CounterComponent{})

	// 文本实体或它的任一祖先停用、销毁时停止滚动
	em.OnDeactivate(c.stopCounting)
	em.OnDestroy(c.stopCounting)

	c.ctx, c.cancel = context.WithCancel(context.Background())
	return c
}

func (c *EndgameCounter) stopCounting(id ecs.EntityID) {
	if entities.IsDescendant(c.entityManager, c.text, id) {
		c.counting.CancelAll()
	}
}

// Root 根实体
func (c *EndgameCounter) Root() ecs.EntityID { return c.root }

// SetParent 把计数器挂到 parent 下，原点变为相对 parent 的坐标
func (c *EndgameCounter) SetParent(parent ecs.EntityID) {
	if tr, ok := ecs.GetComponent[*components.TransformComponent](c.entityManager, c.root); ok {
		tr.Parent = parent
	}
}

// Text 数字文本实体
func (c *EndgameCounter) Text() ecs.EntityID { return c.text }

// Badge 记录徽章实体
func (c *EndgameCounter) Badge() ecs.EntityID { return c.badge }

// State 计数器状态
func (c *EndgameCounter) State() *components.CounterComponent {
	cc, _ := ecs.GetComponent[*components.CounterComponent](c.entityManager, c.text)
	return cc
}

// Reset 停止所有动画，文字回到 from 并隐藏，图标和徽章隐藏
func (c *EndgameCounter) Reset(from float64) {
	c.counting.CancelAll()
	for _, id := range []ecs.EntityID{c.icon, c.text, c.badge} {
		if el, ok := entities.ElementOf(c.entityManager, id); ok {
			el.CancelAll()
		}
	}

	st := c.State()
	*st = components.CounterComponent{From: from, To: from, Displayed: int64(math.Floor(from))}
	if txt, ok := ecs.GetComponent[*components.TextComponent](c.entityManager, c.text); ok {
		txt.Alpha = 0
		txt.Text = strconv.FormatFloat(from, 'f', -1, 64)
	}
	for _, id := range []ecs.EntityID{c.icon, c.badge} {
		if a, ok := ecs.GetComponent[*components.AlphaComponent](c.entityManager, id); ok {
			a.Value = 0
		}
	}
}

// Enter 播放计数动画
// 返回的 Future 在数字滚动结束时完成（徽章淡入在之后开始）
func (c *EndgameCounter) Enter(from, to, record float64) *tween.Future {
	c.Reset(from)
	st := c.State()
	st.To = to
	st.Record = record
	st.Running = true

	group := &startGroup{log: c.log}
	icon, _ := entities.ElementOf(c.entityManager, c.icon)
	f, err := icon.TweenAlpha(c.ctx, 1)
	group.add("icon alpha", f, err)

	text, _ := entities.ElementOf(c.entityManager, c.text)
	f, err = text.TweenAlpha(c.ctx, 1)
	group.add("text alpha", f, err)

	txt, _ := ecs.GetComponent[*components.TextComponent](c.entityManager, c.text)
	count, err := c.counting.Start(c.ctx, tween.ChannelText, tween.Tween{
		From:     from,
		To:       to,
		Duration: c.cfg.CountDuration,
		Ease:     utils.EaseInCubic,
		OnUpdate: func(v float64) {
			n := int64(math.Floor(v))
			st.Displayed = n
			txt.Text = strconv.FormatInt(n, 10)
		},
	})
	if err != nil {
		c.log.Warn("counter not started", logx.Err(err))
		st.Running = false
		return tween.Resolved()
	}

	count.Then(func(err error) {
		st.Running = false
		if err != nil {
			return
		}
		if float64(st.Displayed) > st.Record {
			st.NewRecord = true
			badge, _ := entities.ElementOf(c.entityManager, c.badge)
			if _, err := badge.TweenAlpha(c.ctx, 1); err != nil {
				c.log.Warn("record badge not shown", logx.Err(err))
			}
		}
	})
	return count
}

// Close 取消计数器动画
func (c *EndgameCounter) Close() { c.cancel() }
