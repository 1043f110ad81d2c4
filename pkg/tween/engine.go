package tween

import (
	"math"

	"github.com/decker502/uianim/pkg/utils"
)

// Handle 插值引擎中一次运行的不透明标识，NoHandle 表示空
type Handle uint64

const NoHandle Handle = 0

// Interpolation 引擎运行的一次数值插值
//
// 回调全部在 Tick 中同步调用（OnCancel 在 Cancel 中同步调用），Start 本身不会触发任何回调。
type Interpolation struct {
	From     float64
	To       float64
	Duration float64 // 秒，0 表示下一次 Tick 直接结束
	Ease     utils.EaseFunc

	// OnUpdate 每次 Tick 调用一次，参数为 Lerp(From, To, Ease(t))，最后一次恰为 To
	OnUpdate func(value float64)

	// OnComplete 在最后一次 OnUpdate 之后调用
	OnComplete func()

	// OnCancel 被 Cancel 停止或 Alive 返回 false 时调用
	OnCancel func()

	// Alive 每次推进前检查，返回 false 时插值被丢弃（不再调用 OnUpdate）
	Alive func() bool
}

// Engine 插值引擎接口
//
// 调度器只依赖这个接口，宿主可以替换为任何能按帧推进的实现。
type Engine interface {
	Start(spec Interpolation) Handle
	Cancel(h Handle) bool
	Tick(dt float64)
	Active() int
}

type runningInterpolation struct {
	spec    Interpolation
	elapsed float64
}

// TickEngine 由宿主每帧驱动的默认引擎
//
// 同一次 Tick 中启动的插值从下一次 Tick 开始推进；多个插值按启动顺序推进。
type TickEngine struct {
	nextID  uint64
	running map[Handle]*runningInterpolation
	order   []Handle
}

// NewTickEngine 创建引擎
func NewTickEngine() *TickEngine {
	return &TickEngine{
		running: make(map[Handle]*runningInterpolation),
	}
}

// Start 注册一个插值并返回其句柄
func (e *TickEngine) Start(spec Interpolation) Handle {
	e.nextID++
	h := Handle(e.nextID)
	if spec.Ease == nil {
		spec.Ease = utils.EaseLinear
	}
	e.running[h] = &runningInterpolation{spec: spec}
	e.order = append(e.order, h)
	return h
}

// Cancel 停止一个插值，句柄不存在（已结束或已取消）时返回 false
func (e *TickEngine) Cancel(h Handle) bool {
	ri, ok := e.running[h]
	if !ok {
		return false
	}
	delete(e.running, h)
	if ri.spec.OnCancel != nil {
		ri.spec.OnCancel()
	}
	return true
}

// Active 正在运行的插值数量
func (e *TickEngine) Active() int { return len(e.running) }

// Tick 推进所有插值 dt 秒
func (e *TickEngine) Tick(dt float64) {
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}

	current := e.order
	e.order = nil
	kept := make([]Handle, 0, len(current))

	for _, h := range current {
		ri, ok := e.running[h]
		if !ok {
			continue
		}

		if ri.spec.Alive != nil && !ri.spec.Alive() {
			// Alive 内可能已经调用过 Cancel
			e.Cancel(h)
			continue
		}

		ri.elapsed += dt
		t := 1.0
		if ri.spec.Duration > 0 {
			t = math.Min(ri.elapsed/ri.spec.Duration, 1)
		}

		if t >= 1 {
			if ri.spec.OnUpdate != nil {
				ri.spec.OnUpdate(ri.spec.To)
			}
			// 最后一次 OnUpdate 中可能取消了自己
			if _, still := e.running[h]; !still {
				continue
			}
			delete(e.running, h)
			if ri.spec.OnComplete != nil {
				ri.spec.OnComplete()
			}
			continue
		}

		if ri.spec.OnUpdate != nil {
			ri.spec.OnUpdate(utils.Lerp(ri.spec.From, ri.spec.To, ri.spec.Ease(t)))
		}
		if _, still := e.running[h]; still {
			kept = append(kept, h)
		}
	}

	// 本次 Tick 中新启动的插值排在后面
	e.order = append(kept, e.order...)
}
