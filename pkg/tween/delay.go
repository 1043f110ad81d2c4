package tween

import (
	"context"
	"fmt"
	"math"
)

// Delay 返回一个在 seconds 秒后完成的 Future
//
// 时间由 engine.Tick 推进（和动画使用同一个时钟），不启动 goroutine。
// ctx 结束后的下一次 Tick 以 ErrCancelled 结束；ctx 已经结束时直接返回已取消的 Future。
func Delay(ctx context.Context, engine Engine, seconds float64) (*Future, error) {
	if engine == nil {
		return nil, fmt.Errorf("%w: delay needs an engine", ErrMisconfigured)
	}
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return nil, fmt.Errorf("%w: delay must be a finite value >= 0, got %v", ErrMisconfigured, seconds)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	fut := newFuture()
	if ctx.Err() != nil {
		fut.resolve(StatusCancelled, ErrCancelled)
		return fut, nil
	}
	engine.Start(Interpolation{
		Duration:   seconds,
		OnComplete: func() { fut.resolve(StatusCompleted, nil) },
		OnCancel:   func() { fut.resolve(StatusCancelled, ErrCancelled) },
		Alive:      func() bool { return ctx.Err() == nil },
	})
	return fut, nil
}

// Step 串行流程中的一步，返回这一步要等待的 Future
type Step func() (*Future, error)

// Sequence 依次执行 steps，每一步在上一步成功完成后才开始
//
//   - 全部完成后成功；空列表立即成功
//   - 某一步被取消时整体以 ErrCancelled 结束，后面的步骤不再执行
//   - 某一步返回 error 时整体以 StatusFailed 结束
//   - 每一步开始前检查 ctx，ctx 结束后不再开始新的步骤
func Sequence(ctx context.Context, steps ...Step) *Future {
	if ctx == nil {
		ctx = context.Background()
	}
	agg := newFuture()

	var next func(i int)
	next = func(i int) {
		if i == len(steps) {
			agg.resolve(StatusCompleted, nil)
			return
		}
		if ctx.Err() != nil {
			agg.resolve(StatusCancelled, ErrCancelled)
			return
		}
		f, err := steps[i]()
		if err != nil {
			agg.resolve(StatusFailed, err)
			return
		}
		if f == nil {
			next(i + 1)
			return
		}
		f.Then(func(err error) {
			if err != nil {
				status := StatusFailed
				if IsCancelled(err) {
					status = StatusCancelled
				}
				agg.resolve(status, err)
				return
			}
			next(i + 1)
		})
	}
	next(0)
	return agg
}

// Pause 把 Delay 包装成 Sequence 的一步
func Pause(ctx context.Context, engine Engine, seconds float64) Step {
	return func() (*Future, error) {
		return Delay(ctx, engine, seconds)
	}
}

// Do 把不需要等待的同步动作包装成 Sequence 的一步
func Do(fn func()) Step {
	return func() (*Future, error) {
		fn()
		return nil, nil
	}
}
