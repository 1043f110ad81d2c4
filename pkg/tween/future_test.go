package tween

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestFutureResolvesOnce(t *testing.T) {
	f := newFuture()
	calls := 0
	f.Then(func(error) { calls++ })

	if !f.resolve(StatusCompleted, nil) {
		t.Fatal("第一次 resolve 应该返回 true")
	}
	if f.resolve(StatusCancelled, ErrCancelled) {
		t.Error("第二次 resolve 应该返回 false")
	}
	if f.Status() != StatusCompleted || f.Err() != nil || calls != 1 {
		t.Errorf("状态 %v err %v 回调 %d 次, 期望 completed/nil/1", f.Status(), f.Err(), calls)
	}

	select {
	case <-f.Done():
	default:
		t.Error("Done channel 应该已经关闭")
	}

	// 结束后注册的回调立即执行
	late := false
	f.Then(func(err error) { late = err == nil })
	if !late {
		t.Error("结束后注册的 Then 应该立即调用")
	}
}

func TestResolved(t *testing.T) {
	f := Resolved()
	if !f.IsDone() || f.Status() != StatusCompleted {
		t.Errorf("Resolved() 状态 = %v", f.Status())
	}
}

func TestWhenAllEmpty(t *testing.T) {
	if f := WhenAll(); f.Status() != StatusCompleted {
		t.Errorf("空列表 = %v, 期望 completed", f.Status())
	}
	if f := WhenAll(nil, nil); f.Status() != StatusCompleted {
		t.Errorf("全 nil 列表 = %v, 期望 completed", f.Status())
	}
}

func TestWhenAllCompletesAfterLast(t *testing.T) {
	a, b, c := newFuture(), newFuture(), newFuture()
	agg := WhenAll(a, nil, b, c)

	a.resolve(StatusCompleted, nil)
	c.resolve(StatusCompleted, nil)
	if agg.IsDone() {
		t.Fatal("还有未结束的 Future 时聚合不应结束")
	}
	b.resolve(StatusCompleted, nil)
	if agg.Status() != StatusCompleted {
		t.Errorf("聚合 = %v, 期望 completed", agg.Status())
	}
}

func TestWhenAllRejectsOnFirstCancellation(t *testing.T) {
	a, b := newFuture(), newFuture()
	agg := WhenAll(a, b)

	b.resolve(StatusCancelled, ErrCancelled)
	if agg.Status() != StatusCancelled || !IsCancelled(agg.Err()) {
		t.Fatalf("聚合 = %v (%v), 期望 cancelled", agg.Status(), agg.Err())
	}
	if a.IsDone() {
		t.Error("聚合结束不应影响其它 Future")
	}

	// 之后的完成不会改变聚合结果
	a.resolve(StatusCompleted, nil)
	if agg.Status() != StatusCancelled {
		t.Errorf("聚合状态被改写为 %v", agg.Status())
	}
}

func TestWhenAllFailure(t *testing.T) {
	boom := errors.New("boom")
	a := newFuture()
	agg := WhenAll(a, newFuture())
	a.resolve(StatusFailed, boom)
	if agg.Status() != StatusFailed || !errors.Is(agg.Err(), boom) {
		t.Errorf("聚合 = %v (%v), 期望 failed/boom", agg.Status(), agg.Err())
	}
}

func TestFutureWait(t *testing.T) {
	f := newFuture()
	go func() {
		time.Sleep(10 * time.Millisecond)
		f.resolve(StatusCancelled, ErrCancelled)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := f.Wait(ctx); !IsCancelled(err) {
		t.Errorf("Wait() = %v, 期望 ErrCancelled", err)
	}

	pending := newFuture()
	short, cancelShort := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancelShort()
	if err := pending.Wait(short); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("超时 Wait() = %v, 期望 DeadlineExceeded", err)
	}
}

func TestStatusString(t *testing.T) {
	tests := map[Status]string{
		StatusPending:   "pending",
		StatusCompleted: "completed",
		StatusCancelled: "cancelled",
		StatusFailed:    "failed",
		Status(42):      "unknown",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("Status(%d).String() = %q, want %q", int(s), got, want)
		}
	}
}
