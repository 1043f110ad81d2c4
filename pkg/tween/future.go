package tween

import (
	"context"
)

// Status Future 的状态
type Status int

const (
	StatusPending Status = iota
	StatusCompleted
	StatusCancelled
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Future 一次性完成信号
//
// 只会被结束一次：完成（Err() == nil）或取消（Err() 为 ErrCancelled）。
// Status/Err/Then 只能在 Tick 所在线程调用；其他 goroutine 应使用 Done 或 Wait。
type Future struct {
	done      chan struct{}
	status    Status
	err       error
	callbacks []func(error)
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// Resolved 返回一个已经成功完成的 Future
func Resolved() *Future {
	f := newFuture()
	f.resolve(StatusCompleted, nil)
	return f
}

// resolve 结束 Future，重复调用返回 false 且没有任何副作用
func (f *Future) resolve(status Status, err error) bool {
	if f.status != StatusPending {
		return false
	}
	f.status = status
	f.err = err
	close(f.done)

	cbs := f.callbacks
	f.callbacks = nil
	for _, cb := range cbs {
		cb(err)
	}
	return true
}

// Done 返回在 Future 结束时关闭的 channel
func (f *Future) Done() <-chan struct{} { return f.done }

// Status 当前状态
func (f *Future) Status() Status { return f.status }

// Err 结束原因：nil 表示正常完成；未结束时也返回 nil
func (f *Future) Err() error { return f.err }

// IsDone 是否已经结束
func (f *Future) IsDone() bool { return f.status != StatusPending }

// Then 注册结束回调
// 已结束时立即同步调用；否则在结束它的那次 Tick（或 Cancel 调用）中调用
func (f *Future) Then(cb func(err error)) {
	if cb == nil {
		return
	}
	if f.status != StatusPending {
		cb(f.err)
		return
	}
	f.callbacks = append(f.callbacks, cb)
}

// Wait 阻塞直到 Future 结束或 ctx 结束
// 不能在驱动 Tick 的线程上调用，否则会永远等待
func (f *Future) Wait(ctx context.Context) error {
	select {
	case <-f.done:
		return f.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// WhenAll 聚合多个 Future
//
//   - 全部成功后才成功；空列表立即成功
//   - 任意一个被取消或失败时，聚合 Future 立即以同样的错误结束
//   - 聚合结束不会取消其余仍在运行的 Future，它们各自运行到自己的终点
func WhenAll(futures ...*Future) *Future {
	agg := newFuture()

	pending := 0
	for _, f := range futures {
		if f != nil {
			pending++
		}
	}
	if pending == 0 {
		agg.resolve(StatusCompleted, nil)
		return agg
	}

	for _, f := range futures {
		if f == nil {
			continue
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
			pending--
			if pending == 0 {
				agg.resolve(StatusCompleted, nil)
			}
		})
	}
	return agg
}
