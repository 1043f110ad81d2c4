package tween

import (
	"context"
	"fmt"
	"math"

	"github.com/decker502/uianim/pkg/config"
	"github.com/decker502/uianim/pkg/utils"
)

// ScalarBinding 标量属性的读写闭包
type ScalarBinding struct {
	Get func() float64
	Set func(float64)
	// Channel 覆盖默认通道（如文本元素的透明度走 ChannelText），ChannelNone 表示使用默认
	Channel Channel
}

// Vec2Binding 二维属性的读写闭包
type Vec2Binding struct {
	Get     func() utils.Vec2
	Set     func(utils.Vec2)
	Channel Channel
}

// Bindings 具体元素提供的属性绑定
// 非 nil 的绑定即该元素的能力集合，nil 的轨道会被 PlayClip 明确拒绝
type Bindings struct {
	Scale       *Vec2Binding
	Position    *Vec2Binding
	Alpha       *ScalarBinding
	Width       *ScalarBinding // 布局首选宽度
	Height      *ScalarBinding // 布局首选高度
	CanvasAlpha *ScalarBinding
	Rotation    *ScalarBinding // 度
}

// Motion 一段动画的时长（秒）与曲线
type Motion struct {
	Duration float64
	Ease     utils.EaseFunc
}

// Motions 元素便捷方法的默认参数
type Motions struct {
	Scale Motion
	Move  Motion
	Alpha Motion
	Size  Motion
}

// DefaultMotions 图标元素的默认参数
func DefaultMotions() Motions {
	return Motions{
		Scale: Motion{Duration: 0.3, Ease: utils.EaseInOutCubic},
		Move:  Motion{Duration: 0.3, Ease: utils.EaseOutBack},
		Alpha: Motion{Duration: 0.3, Ease: utils.EaseOutBack},
		Size:  Motion{Duration: 0.18, Ease: utils.EaseInOutCubic},
	}
}

// TrackKind 片段轨道类型
type TrackKind int

const (
	TrackScale TrackKind = iota
	TrackMove
	TrackAlpha
	TrackShake
	TrackJelly
	TrackCanvasAlpha
)

func (k TrackKind) String() string {
	switch k {
	case TrackScale:
		return "scale"
	case TrackMove:
		return "move"
	case TrackAlpha:
		return "alpha"
	case TrackShake:
		return "shake"
	case TrackJelly:
		return "jelly"
	case TrackCanvasAlpha:
		return "canvas_alpha"
	default:
		return fmt.Sprintf("track(%d)", int(k))
	}
}

// Element 通用的可动画 UI 元素
//
// 具体元素（图标、文本、布局、画布组）只提供属性绑定，调度逻辑全部在这里。
type Element struct {
	name        string
	sched       *Scheduler
	b           Bindings
	motions     Motions
	resetToFrom bool

	initialScale    utils.Vec2
	initialPosition utils.Vec2
	initialAlpha    float64
}

// NewElement 创建元素并记录各属性的初始值（用于 Reset*）
func NewElement(name string, engine Engine, b Bindings, opts ...Option) *Element {
	opts = append([]Option{WithName(name)}, opts...)
	o := buildOptions(opts)
	e := &Element{
		name:        name,
		sched:       NewScheduler(engine, opts...),
		b:           b,
		motions:     o.motions,
		resetToFrom: o.resetToFrom,
	}
	if b.Scale != nil && b.Scale.Get != nil {
		e.initialScale = b.Scale.Get()
	}
	if b.Position != nil && b.Position.Get != nil {
		e.initialPosition = b.Position.Get()
	}
	if b.Alpha != nil && b.Alpha.Get != nil {
		e.initialAlpha = b.Alpha.Get()
	}
	return e
}

func (e *Element) Name() string { return e.name }

// Scheduler 元素自己的通道调度器
func (e *Element) Scheduler() *Scheduler { return e.sched }

func (e *Element) Bindings() Bindings { return e.b }

func (e *Element) InitialScale() utils.Vec2 { return e.initialScale }

func (e *Element) InitialPosition() utils.Vec2 { return e.initialPosition }

func (e *Element) InitialAlpha() float64 { return e.initialAlpha }

// CancelAll 取消元素上所有动画
func (e *Element) CancelAll() { e.sched.CancelAll() }

// Supports 元素是否支持某种轨道（缩放轨道按统一缩放判断）
func (e *Element) Supports(kind TrackKind) bool {
	switch kind {
	case TrackScale, TrackJelly:
		return e.b.Scale != nil
	case TrackMove, TrackShake:
		return e.b.Position != nil
	case TrackAlpha:
		return e.b.Alpha != nil
	case TrackCanvasAlpha:
		return e.b.CanvasAlpha != nil
	}
	return false
}

func channelOr(c, def Channel) Channel {
	if c == ChannelNone {
		return def
	}
	return c
}

func (e *Element) unsupported(kind TrackKind, detail string) error {
	if detail != "" {
		return fmt.Errorf("%w: element %q: %s track (%s)", ErrUnsupportedTrack, e.name, kind, detail)
	}
	return fmt.Errorf("%w: element %q: %s track", ErrUnsupportedTrack, e.name, kind)
}

func (e *Element) checkScalar(kind TrackKind, b *ScalarBinding) error {
	if b.Get == nil || b.Set == nil {
		return fmt.Errorf("%w: element %q: %s binding needs Get and Set", ErrMisconfigured, e.name, kind)
	}
	return nil
}

func (e *Element) checkVec2(kind TrackKind, b *Vec2Binding) error {
	if b.Get == nil || b.Set == nil {
		return fmt.Errorf("%w: element %q: %s binding needs Get and Set", ErrMisconfigured, e.name, kind)
	}
	return nil
}

// ---- 标量与向量插值 ----

func (e *Element) tweenScalar(ctx context.Context, ch Channel, set func(float64), from, to float64, m Motion) (*Future, error) {
	return e.sched.Start(ctx, ch, Tween{
		From:        from,
		To:          to,
		Duration:    m.Duration,
		Ease:        m.Ease,
		OnUpdate:    set,
		ResetToFrom: e.resetToFrom,
	})
}

// tweenVec2 以 0→1 的进度驱动向量插值
func (e *Element) tweenVec2(ctx context.Context, ch Channel, set func(utils.Vec2), from, to utils.Vec2, m Motion) (*Future, error) {
	if set == nil {
		return nil, fmt.Errorf("%w: element %q channel %s: setter is required", ErrMisconfigured, e.name, ch)
	}
	return e.sched.Start(ctx, ch, Tween{
		From:     0,
		To:       1,
		Duration: m.Duration,
		Ease:     m.Ease,
		OnUpdate: func(p float64) {
			set(utils.LerpVec2(from, to, p))
		},
		ResetToFrom: e.resetToFrom,
	})
}

// ---- 便捷方法 ----

// TweenScaleFrom 从 from 缩放到 to
func (e *Element) TweenScaleFrom(ctx context.Context, from, to utils.Vec2, m Motion) (*Future, error) {
	if e.b.Scale == nil {
		return nil, e.unsupported(TrackScale, "")
	}
	return e.tweenVec2(ctx, channelOr(e.b.Scale.Channel, ChannelScale), e.b.Scale.Set, from, to, m)
}

// TweenScale 从当前缩放过渡到 to（默认参数）
func (e *Element) TweenScale(ctx context.Context, to utils.Vec2) (*Future, error) {
	if e.b.Scale == nil {
		return nil, e.unsupported(TrackScale, "")
	}
	return e.TweenScaleFrom(ctx, e.b.Scale.Get(), to, e.motions.Scale)
}

// ResetScale 过渡回创建时的缩放
func (e *Element) ResetScale(ctx context.Context) (*Future, error) {
	return e.TweenScale(ctx, e.initialScale)
}

// TweenPositionFrom 从 from 移动到 to（本地坐标）
func (e *Element) TweenPositionFrom(ctx context.Context, from, to utils.Vec2, m Motion) (*Future, error) {
	if e.b.Position == nil {
		return nil, e.unsupported(TrackMove, "")
	}
	return e.tweenVec2(ctx, channelOr(e.b.Position.Channel, ChannelPosition), e.b.Position.Set, from, to, m)
}

// TweenPosition 从当前位置移动到 to（默认参数）
func (e *Element) TweenPosition(ctx context.Context, to utils.Vec2) (*Future, error) {
	if e.b.Position == nil {
		return nil, e.unsupported(TrackMove, "")
	}
	return e.TweenPositionFrom(ctx, e.b.Position.Get(), to, e.motions.Move)
}

// ResetPosition 移动回创建时的位置
func (e *Element) ResetPosition(ctx context.Context) (*Future, error) {
	return e.TweenPosition(ctx, e.initialPosition)
}

// TweenAlphaFrom 透明度从 from 过渡到 to
func (e *Element) TweenAlphaFrom(ctx context.Context, from, to float64, m Motion) (*Future, error) {
	if e.b.Alpha == nil {
		return nil, e.unsupported(TrackAlpha, "")
	}
	return e.tweenScalar(ctx, channelOr(e.b.Alpha.Channel, ChannelAlpha), e.b.Alpha.Set, from, to, m)
}

// TweenAlpha 透明度从当前值过渡到 to（默认参数）
func (e *Element) TweenAlpha(ctx context.Context, to float64) (*Future, error) {
	if e.b.Alpha == nil {
		return nil, e.unsupported(TrackAlpha, "")
	}
	return e.TweenAlphaFrom(ctx, e.b.Alpha.Get(), to, e.motions.Alpha)
}

// ResetAlpha 透明度过渡回创建时的值
func (e *Element) ResetAlpha(ctx context.Context) (*Future, error) {
	return e.TweenAlpha(ctx, e.initialAlpha)
}

// TweenWidth 布局首选宽度过渡到 to
func (e *Element) TweenWidth(ctx context.Context, to float64) (*Future, error) {
	if e.b.Width == nil {
		return nil, e.unsupported(TrackScale, "width")
	}
	return e.tweenScalar(ctx, channelOr(e.b.Width.Channel, ChannelLayoutWidth), e.b.Width.Set, e.b.Width.Get(), to, e.motions.Size)
}

// TweenHeight 布局首选高度过渡到 to
func (e *Element) TweenHeight(ctx context.Context, to float64) (*Future, error) {
	if e.b.Height == nil {
		return nil, e.unsupported(TrackScale, "height")
	}
	return e.tweenScalar(ctx, channelOr(e.b.Height.Channel, ChannelLayoutHeight), e.b.Height.Set, e.b.Height.Get(), to, e.motions.Size)
}

// TweenCanvasAlpha 画布组透明度从 from 过渡到 to
func (e *Element) TweenCanvasAlpha(ctx context.Context, from, to float64, m Motion) (*Future, error) {
	if e.b.CanvasAlpha == nil {
		return nil, e.unsupported(TrackCanvasAlpha, "")
	}
	return e.tweenScalar(ctx, channelOr(e.b.CanvasAlpha.Channel, ChannelCanvasGroup), e.b.CanvasAlpha.Set, from, to, m)
}

// TweenRotationFrom 转角从 from 过渡到 to（度）
func (e *Element) TweenRotationFrom(ctx context.Context, from, to float64, m Motion) (*Future, error) {
	if e.b.Rotation == nil || e.b.Rotation.Set == nil {
		return nil, fmt.Errorf("%w: element %q has no rotation", ErrUnsupportedTrack, e.name)
	}
	return e.tweenScalar(ctx, channelOr(e.b.Rotation.Channel, ChannelRotation), e.b.Rotation.Set, from, to, m)
}

// ---- 片段播放 ----

// plannedTrack 校验通过、等待启动的轨道
type plannedTrack struct {
	ch    Channel
	start func(ctx context.Context) (*Future, error)
}

// PlayClip 播放片段中所有启用的轨道
//
// 先校验全部轨道（配置错误返回 ErrMisconfigured，元素不支持返回 ErrUnsupportedTrack），
// 校验通过后才启动，各轨道在各自通道上运行；返回的 Future 语义见 WhenAll。
// 启动中途失败时，本次已经启动的轨道会被取消，不留下调用方拿不到的动画。
func (e *Element) PlayClip(ctx context.Context, clip *config.TweenClip) (*Future, error) {
	if clip == nil {
		return nil, fmt.Errorf("%w: element %q: clip is nil", ErrMisconfigured, e.name)
	}
	c := *clip
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%w: element %q: %v", ErrMisconfigured, e.name, err)
	}

	var tracks []plannedTrack
	add := func(t plannedTrack, err error) error {
		if err != nil {
			return err
		}
		tracks = append(tracks, t)
		return nil
	}

	if c.Scale.Enabled {
		if err := add(e.planScale(c.Scale)); err != nil {
			return nil, err
		}
	}
	if c.Move.Enabled {
		if err := add(e.planMove(c.Move)); err != nil {
			return nil, err
		}
	}
	if c.Alpha.Enabled {
		if err := add(e.planAlpha(c.Alpha)); err != nil {
			return nil, err
		}
	}
	if c.Shake.Enabled {
		if err := add(e.planShake(c.Shake)); err != nil {
			return nil, err
		}
	}
	if c.Jelly.Enabled {
		if err := add(e.planJelly(c.Jelly)); err != nil {
			return nil, err
		}
	}
	if c.CanvasAlpha.Enabled {
		if err := add(e.planCanvasAlpha(c.CanvasAlpha)); err != nil {
			return nil, err
		}
	}

	futures := make([]*Future, 0, len(tracks))
	for i, t := range tracks {
		f, err := t.start(ctx)
		if err != nil {
			for _, started := range tracks[:i] {
				e.sched.Cancel(started.ch)
			}
			return nil, err
		}
		futures = append(futures, f)
	}
	return WhenAll(futures...), nil
}

// resolveScaleTarget 按模式计算目标值（偏移与倍乘基于已解析的起始值）
func resolveScaleTarget(t config.ScaleTrack, from, absolute, delta float64) float64 {
	switch t.ToMode {
	case config.ScaleByOffset:
		return from + delta
	case config.ScaleMultiplyBy:
		return from * t.Factor()
	default:
		return absolute
	}
}

func (e *Element) planScale(t config.ScaleTrack) (plannedTrack, error) {
	m := Motion{Duration: t.Duration, Ease: config.EaseOf(t.Ease)}

	if t.SeparateAxis {
		axisX := t.Axis == config.AxisX
		var size *ScalarBinding
		var ch Channel
		if axisX {
			size, ch = e.b.Width, ChannelLayoutWidth
		} else {
			size, ch = e.b.Height, ChannelLayoutHeight
		}
		pick := func(v utils.Vec2) float64 {
			if axisX {
				return v.X
			}
			return v.Y
		}

		if size != nil {
			if err := e.checkScalar(TrackScale, size); err != nil {
				return plannedTrack{}, err
			}
			ch = channelOr(size.Channel, ch)
			return plannedTrack{ch: ch, start: func(ctx context.Context) (*Future, error) {
				from := pick(t.Initial)
				if t.From == config.FromCurrent {
					from = size.Get()
				}
				to := resolveScaleTarget(t, from, pick(t.To), pick(t.Delta))
				return e.tweenScalar(ctx, ch, size.Set, from, to, m)
			}}, nil
		}
		if e.b.Scale == nil {
			return plannedTrack{}, e.unsupported(TrackScale, "axis "+string(t.Axis))
		}
		scale := e.b.Scale
		if err := e.checkVec2(TrackScale, scale); err != nil {
			return plannedTrack{}, err
		}
		ch = channelOr(scale.Channel, ChannelScale)
		return plannedTrack{ch: ch, start: func(ctx context.Context) (*Future, error) {
			from := pick(t.Initial)
			if t.From == config.FromCurrent {
				from = pick(scale.Get())
			}
			to := resolveScaleTarget(t, from, pick(t.To), pick(t.Delta))
			set := func(v float64) {
				cur := scale.Get()
				if axisX {
					cur.X = v
				} else {
					cur.Y = v
				}
				scale.Set(cur)
			}
			return e.tweenScalar(ctx, ch, set, from, to, m)
		}}, nil
	}

	if e.b.Scale == nil {
		return plannedTrack{}, e.unsupported(TrackScale, "")
	}
	scale := e.b.Scale
	if err := e.checkVec2(TrackScale, scale); err != nil {
		return plannedTrack{}, err
	}
	ch := channelOr(scale.Channel, ChannelScale)
	return plannedTrack{ch: ch, start: func(ctx context.Context) (*Future, error) {
		from := t.Initial
		if t.From == config.FromCurrent {
			from = scale.Get()
		}
		var to utils.Vec2
		switch t.ToMode {
		case config.ScaleByOffset:
			to = from.Add(t.Delta)
		case config.ScaleMultiplyBy:
			to = from.Scale(t.Factor())
		default:
			to = t.To
		}
		return e.tweenVec2(ctx, ch, scale.Set, from, to, m)
	}}, nil
}

func (e *Element) planMove(t config.MoveTrack) (plannedTrack, error) {
	if e.b.Position == nil {
		return plannedTrack{}, e.unsupported(TrackMove, "")
	}
	pos := e.b.Position
	if err := e.checkVec2(TrackMove, pos); err != nil {
		return plannedTrack{}, err
	}
	m := Motion{Duration: t.Duration, Ease: config.EaseOf(t.Ease)}
	ch := channelOr(pos.Channel, ChannelPosition)
	return plannedTrack{ch: ch, start: func(ctx context.Context) (*Future, error) {
		from := t.Initial
		if t.From == config.FromCurrent {
			from = pos.Get()
		}
		to := t.To
		if t.ToMode == config.MoveByOffset {
			to = from.Add(t.Offset)
		}
		return e.tweenVec2(ctx, ch, pos.Set, from, to, m)
	}}, nil
}

func (e *Element) planAlpha(t config.AlphaTrack) (plannedTrack, error) {
	if e.b.Alpha == nil {
		return plannedTrack{}, e.unsupported(TrackAlpha, "")
	}
	return e.planScalarAlpha(TrackAlpha, t, e.b.Alpha, ChannelAlpha)
}

func (e *Element) planCanvasAlpha(t config.AlphaTrack) (plannedTrack, error) {
	if e.b.CanvasAlpha == nil {
		return plannedTrack{}, e.unsupported(TrackCanvasAlpha, "")
	}
	return e.planScalarAlpha(TrackCanvasAlpha, t, e.b.CanvasAlpha, ChannelCanvasGroup)
}

func (e *Element) planScalarAlpha(kind TrackKind, t config.AlphaTrack, b *ScalarBinding, def Channel) (plannedTrack, error) {
	if err := e.checkScalar(kind, b); err != nil {
		return plannedTrack{}, err
	}
	m := Motion{Duration: t.Duration, Ease: config.EaseOf(t.Ease)}
	ch := channelOr(b.Channel, def)
	return plannedTrack{ch: ch, start: func(ctx context.Context) (*Future, error) {
		from := t.Initial
		if t.From == config.FromCurrent {
			from = b.Get()
		}
		return e.tweenScalar(ctx, ch, b.Set, from, t.To, m)
	}}, nil
}

// planShake 围绕静止位置做衰减正弦偏移，结束或被取消时回到静止位置
//
// 静止位置在先取消进行中的抖动之后读取，重复播放不会把半途的偏移当成新的基准。
func (e *Element) planShake(t config.ShakeTrack) (plannedTrack, error) {
	if e.b.Position == nil {
		return plannedTrack{}, e.unsupported(TrackShake, "")
	}
	pos := e.b.Position
	if err := e.checkVec2(TrackShake, pos); err != nil {
		return plannedTrack{}, err
	}
	return plannedTrack{ch: ChannelShake, start: func(ctx context.Context) (*Future, error) {
		e.sched.Cancel(ChannelShake)
		base := pos.Get()
		return e.sched.Start(ctx, ChannelShake, Tween{
			From:     0,
			To:       1,
			Duration: t.Duration,
			Ease:     config.EaseOf(t.Ease),
			OnUpdate: func(p float64) {
				pos.Set(base.Add(shakeOffset(t, p)))
			},
			OnCancel: func() { pos.Set(base) },
		})
	}}, nil
}

func shakeOffset(t config.ShakeTrack, p float64) utils.Vec2 {
	if p == 1 {
		return utils.Vec2{}
	}
	elapsed := p * t.Duration
	off := t.Magnitude * (1 - p) * math.Sin(2*math.Pi*t.Frequency*elapsed)
	if t.Axis == config.AxisY {
		return utils.V2(0, off)
	}
	return utils.V2(off, 0)
}

// planJelly X 方向拉伸到 base*overshoot、Y 方向压到 base/overshoot，再回到 base
// 被取消时缩放回到 base，重复播放同样先取消再读取 base
func (e *Element) planJelly(t config.JellyTrack) (plannedTrack, error) {
	if e.b.Scale == nil {
		return plannedTrack{}, e.unsupported(TrackJelly, "")
	}
	scale := e.b.Scale
	if err := e.checkVec2(TrackJelly, scale); err != nil {
		return plannedTrack{}, err
	}
	return plannedTrack{ch: ChannelJelly, start: func(ctx context.Context) (*Future, error) {
		e.sched.Cancel(ChannelJelly)
		base := scale.Get()
		return e.sched.Start(ctx, ChannelJelly, Tween{
			From:     0,
			To:       1,
			Duration: t.Duration,
			Ease:     config.EaseOf(t.Ease),
			OnUpdate: func(p float64) {
				scale.Set(jellyScale(base, t.Overshoot, p))
			},
			OnCancel: func() { scale.Set(base) },
		})
	}}, nil
}

func jellyScale(base utils.Vec2, overshoot, p float64) utils.Vec2 {
	if p == 0 || p == 1 {
		return base
	}
	s := math.Sin(p * math.Pi)
	return utils.V2(
		base.X*utils.Lerp(1, overshoot, s),
		base.Y*utils.Lerp(1, 1/overshoot, s),
	)
}
