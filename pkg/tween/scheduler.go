package tween

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/decker502/uianim/pkg/logx"
	"github.com/decker502/uianim/pkg/utils"
)

// Tween 一次 Start 调用的参数
type Tween struct {
	From     float64
	To       float64
	Duration float64 // 秒，必须 >= 0
	Ease     utils.EaseFunc

	// OnUpdate 每次 Tick 以插值结果调用（必填）
	OnUpdate func(value float64)

	// OnComplete 自然完成时调用，此时通道已经清空，可以在回调里在同一通道上启动新动画
	OnComplete func()

	// OnCancel 被取消（顶替、Cancel、CancelAll 或令牌结束）时调用一次，在 Future 结束之前
	OnCancel func()

	// ResetToFrom 为 true 时，Start 在取消旧动画后立刻同步调用 OnUpdate(From)
	ResetToFrom bool
}

func (tw Tween) validate() error {
	if tw.OnUpdate == nil {
		return fmt.Errorf("%w: OnUpdate is required", ErrMisconfigured)
	}
	if math.IsNaN(tw.Duration) || math.IsInf(tw.Duration, 0) || tw.Duration < 0 {
		return fmt.Errorf("%w: duration must be a finite value >= 0, got %v", ErrMisconfigured, tw.Duration)
	}
	if math.IsNaN(tw.From) || math.IsNaN(tw.To) {
		return fmt.Errorf("%w: from/to must not be NaN", ErrMisconfigured)
	}
	return nil
}

type channelEntry struct {
	handle   Handle
	future   *Future
	onCancel func()
}

// Option 调度器与元素的可选配置
type Option func(*options)

type options struct {
	log         logx.Logger
	name        string
	motions     Motions
	resetToFrom bool
}

// WithLogger 注入日志器
func WithLogger(l logx.Logger) Option { return func(o *options) { o.log = l } }

// WithName 设置元素名称（日志与错误信息使用）
func WithName(name string) Option { return func(o *options) { o.name = name } }

// WithMotions 设置元素便捷方法（TweenScale 等）使用的时长与曲线
func WithMotions(m Motions) Option { return func(o *options) { o.motions = m } }

// WithResetToFrom 元素发起的每个动画都先把属性重置到起始值
func WithResetToFrom(v bool) Option { return func(o *options) { o.resetToFrom = v } }

func buildOptions(opts []Option) options {
	o := options{motions: DefaultMotions()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// Scheduler 单个元素的通道调度器
//
// 状态机（每个通道）：Idle -> Running -> {Completed -> Idle, Cancelled -> Idle}。
// Running 上的新请求会先同步走完 Running -> Cancelled -> Idle。
type Scheduler struct {
	engine   Engine
	name     string
	log      logx.Logger
	channels map[Channel]channelEntry
}

// NewScheduler 创建调度器，所有通道初始为 Idle
func NewScheduler(engine Engine, opts ...Option) *Scheduler {
	o := buildOptions(opts)
	return &Scheduler{
		engine:   engine,
		name:     o.name,
		log:      o.log,
		channels: make(map[Channel]channelEntry),
	}
}

// Name 所属元素名称
func (s *Scheduler) Name() string { return s.name }

// Start 在通道 ch 上启动插值
//
// ctx 是取消令牌：ctx 结束后，下一次 Tick 停止该插值并以 ErrCancelled 结束 Future。
// 配置错误时返回 error 且不启动任何东西（也不会取消通道上已有的动画）。
func (s *Scheduler) Start(ctx context.Context, ch Channel, tw Tween) (*Future, error) {
	if s.engine == nil {
		return nil, fmt.Errorf("%w: element %q has no engine", ErrMisconfigured, s.name)
	}
	if ch == ChannelNone {
		return nil, fmt.Errorf("%w: element %q: channel is required", ErrMisconfigured, s.name)
	}
	if err := tw.validate(); err != nil {
		return nil, fmt.Errorf("element %q channel %s: %w", s.name, ch, err)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if prev, ok := s.channels[ch]; ok {
		s.log.Debug("tween superseded",
			logx.String("element", s.name),
			logx.String("channel", ch.String()),
			logx.Uint64("handle", uint64(prev.handle)))
		s.Cancel(ch)
	}

	fut := newFuture()
	if ctx.Err() != nil {
		fut.resolve(StatusCancelled, ErrCancelled)
		return fut, nil
	}

	if tw.ResetToFrom {
		tw.OnUpdate(tw.From)
	}

	var h Handle
	h = s.engine.Start(Interpolation{
		From:     tw.From,
		To:       tw.To,
		Duration: tw.Duration,
		Ease:     tw.Ease,
		OnUpdate: tw.OnUpdate,
		OnComplete: func() {
			s.clear(ch, h)
			if fut.IsDone() {
				return
			}
			if tw.OnComplete != nil {
				tw.OnComplete()
			}
			fut.resolve(StatusCompleted, nil)
		},
		OnCancel: func() {
			s.clear(ch, h)
			cancelled(fut, tw.OnCancel)
		},
		Alive: func() bool {
			return ctx.Err() == nil
		},
	})
	s.channels[ch] = channelEntry{handle: h, future: fut, onCancel: tw.OnCancel}
	return fut, nil
}

func cancelled(fut *Future, onCancel func()) {
	if fut.IsDone() {
		return
	}
	if onCancel != nil {
		onCancel()
	}
	fut.resolve(StatusCancelled, ErrCancelled)
}

// clear 仅当通道仍持有 h 时清空（过期句柄的清理是空操作）
func (s *Scheduler) clear(ch Channel, h Handle) {
	if e, ok := s.channels[ch]; ok && e.handle == h {
		delete(s.channels, ch)
	}
}

// Cancel 取消通道上的动画，通道空闲时是空操作
func (s *Scheduler) Cancel(ch Channel) {
	e, ok := s.channels[ch]
	if !ok {
		return
	}
	if !s.engine.Cancel(e.handle) {
		// 引擎已经不认识这个句柄，仍然保证通道回到 Idle
		s.clear(ch, e.handle)
		cancelled(e.future, e.onCancel)
	}
}

// CancelAll 取消本元素所有通道（元素停用或销毁时调用），可重复调用
func (s *Scheduler) CancelAll() {
	if len(s.channels) == 0 {
		return
	}
	for _, ch := range s.ActiveChannels() {
		s.Cancel(ch)
	}
	s.log.Debug("all tweens cancelled", logx.String("element", s.name))
}

// IsRunning 通道是否处于 Running
func (s *Scheduler) IsRunning(ch Channel) bool {
	_, ok := s.channels[ch]
	return ok
}

// Handle 通道当前句柄，空闲时为 NoHandle
func (s *Scheduler) Handle(ch Channel) Handle {
	return s.channels[ch].handle
}

// ActiveChannels 所有运行中的通道（升序）
func (s *Scheduler) ActiveChannels() []Channel {
	out := make([]Channel, 0, len(s.channels))
	for ch := range s.channels {
		out = append(out, ch)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
