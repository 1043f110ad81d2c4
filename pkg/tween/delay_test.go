package tween

import (
	"context"
	"errors"
	"math"
	"testing"
)

func TestDelayCompletesOnTicks(t *testing.T) {
	engine := NewTickEngine()
	f, err := Delay(context.Background(), engine, 0.25)
	if err != nil {
		t.Fatalf("Delay: %v", err)
	}
	if f.IsDone() {
		t.Fatal("Delay 不应在 Tick 之前结束")
	}
	if n := tickUntil(t, engine, f, 64); n != 16 {
		t.Errorf("用了 %d 帧, 期望 16 帧 (0.25s / (1/64))", n)
	}
	if f.Status() != StatusCompleted {
		t.Errorf("Status = %v, 期望 completed", f.Status())
	}
	if engine.Active() != 0 {
		t.Errorf("Active = %d, 期望 0", engine.Active())
	}

	zero, _ := Delay(context.Background(), engine, 0)
	if n := tickUntil(t, engine, zero, 2); n != 1 {
		t.Errorf("0 秒延时用了 %d 帧, 期望 1", n)
	}
}

func TestDelayCancelledByContext(t *testing.T) {
	engine := NewTickEngine()
	ctx, cancel := context.WithCancel(context.Background())
	f, _ := Delay(ctx, engine, 1)

	engine.Tick(step)
	cancel()
	if f.IsDone() {
		t.Fatal("令牌结束后要等到下一次 Tick 才生效")
	}
	engine.Tick(step)
	if f.Status() != StatusCancelled || !IsCancelled(f.Err()) {
		t.Errorf("Status = %v err = %v, 期望 cancelled", f.Status(), f.Err())
	}
	if engine.Active() != 0 {
		t.Errorf("Active = %d, 期望 0", engine.Active())
	}

	already, err := Delay(ctx, engine, 1)
	if err != nil || already.Status() != StatusCancelled {
		t.Errorf("已结束的 ctx: status = %v err = %v, 期望直接取消", already.Status(), err)
	}
	if engine.Active() != 0 {
		t.Error("已结束的 ctx 不应注册插值")
	}
}

func TestDelayRejectsBadInput(t *testing.T) {
	engine := NewTickEngine()
	for _, s := range []float64{-1, math.NaN(), math.Inf(1)} {
		if _, err := Delay(context.Background(), engine, s); !errors.Is(err, ErrMisconfigured) {
			t.Errorf("Delay(%v) err = %v, 期望 ErrMisconfigured", s, err)
		}
	}
	if _, err := Delay(context.Background(), nil, 1); !errors.Is(err, ErrMisconfigured) {
		t.Errorf("nil engine err = %v, 期望 ErrMisconfigured", err)
	}
}

func TestSequenceRunsStepsInOrder(t *testing.T) {
	engine := NewTickEngine()
	ctx := context.Background()
	var order []string
	mark := func(name string) Step {
		return Do(func() { order = append(order, name) })
	}

	f := Sequence(ctx,
		mark("a"),
		Pause(ctx, engine, 0.125),
		mark("b"),
		Pause(ctx, engine, 0.125),
		mark("c"),
	)
	if len(order) != 1 || order[0] != "a" {
		t.Fatalf("order = %v, 期望第一步同步执行", order)
	}
	for i := 0; i < 8; i++ {
		engine.Tick(step)
	}
	if len(order) != 2 || order[1] != "b" {
		t.Fatalf("8 帧后 order = %v, 期望 [a b]", order)
	}
	tickUntil(t, engine, f, 16)
	if f.Status() != StatusCompleted || len(order) != 3 {
		t.Errorf("Status = %v order = %v, 期望 completed [a b c]", f.Status(), order)
	}

	if empty := Sequence(ctx); empty.Status() != StatusCompleted {
		t.Errorf("空 Sequence = %v, 期望 completed", empty.Status())
	}
}

func TestSequenceStopsOnCancelAndError(t *testing.T) {
	t.Run("取消", func(t *testing.T) {
		engine := NewTickEngine()
		ctx, cancel := context.WithCancel(context.Background())
		ran := false
		f := Sequence(ctx, Pause(ctx, engine, 1), Do(func() { ran = true }))

		engine.Tick(step)
		cancel()
		engine.Tick(step)
		if f.Status() != StatusCancelled || ran {
			t.Errorf("Status = %v ran = %v, 期望 cancelled 且后续步骤不执行", f.Status(), ran)
		}
	})

	t.Run("错误", func(t *testing.T) {
		boom := errors.New("boom")
		ran := false
		f := Sequence(context.Background(),
			func() (*Future, error) { return nil, boom },
			Do(func() { ran = true }),
		)
		if f.Status() != StatusFailed || !errors.Is(f.Err(), boom) || ran {
			t.Errorf("Status = %v err = %v ran = %v", f.Status(), f.Err(), ran)
		}
	})
}
