package config

import (
	"errors"
	"math"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/decker502/uianim/pkg/utils"
)

func TestTweenClipYAML(t *testing.T) {
	src := `
id: tab_select
description: 选中标签
scale:
  enabled: true
  separate_axis: true
  axis: x
  to_mode: multiply_by
  multiply: 1.5
  duration: 0.18
move:
  enabled: true
  offset: {x: 0, y: -12}
  duration: 0.18
  ease: easeOutBack
canvas_alpha:
  enabled: true
  initial: 0
  to: 1
  duration: 0.25
`
	var c TweenClip
	if err := yaml.Unmarshal([]byte(src), &c); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if c.Scale.ToMode != ScaleMultiplyBy || c.Scale.Factor() != 1.5 || !c.Scale.SeparateAxis {
		t.Errorf("scale track = %+v", c.Scale)
	}
	if c.Move.ToMode != MoveByOffset || c.Move.Offset != utils.V2(0, -12) {
		t.Errorf("move 默认 to_mode 应为 by_offset, got %+v", c.Move)
	}
	if c.CanvasAlpha.From != FromValue {
		t.Errorf("canvas_alpha 默认 from = %q, 期望 value", c.CanvasAlpha.From)
	}
	got := c.EnabledTracks()
	want := []string{"scale", "move", "canvas_alpha"}
	if len(got) != len(want) {
		t.Fatalf("EnabledTracks = %v, 期望 %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("EnabledTracks[%d] = %q, 期望 %q", i, got[i], want[i])
		}
	}
}

func TestTweenClipValidate(t *testing.T) {
	tests := []struct {
		name string
		clip TweenClip
		ok   bool
	}{
		{"全部关闭", TweenClip{ID: "noop"}, true},
		{"缺少 id", TweenClip{}, false},
		{"零时长", TweenClip{ID: "a", Alpha: AlphaTrack{Enabled: true}}, true},
		{"负时长", TweenClip{ID: "a", Alpha: AlphaTrack{Enabled: true, Duration: -0.1}}, false},
		{"NaN 时长", TweenClip{ID: "a", Move: MoveTrack{Enabled: true, Duration: math.NaN()}}, false},
		{"未知曲线", TweenClip{ID: "a", Scale: ScaleTrack{Enabled: true, Ease: "bouncy"}}, false},
		{"关闭的轨道不校验", TweenClip{ID: "a", Scale: ScaleTrack{Duration: -1, Ease: "bouncy"}}, true},
		{"未知 from", TweenClip{ID: "a", Alpha: AlphaTrack{Enabled: true, From: "elsewhere"}}, false},
		{"未知 to_mode", TweenClip{ID: "a", Move: MoveTrack{Enabled: true, ToMode: "relative"}}, false},
		{"未知轴", TweenClip{ID: "a", Shake: ShakeTrack{Enabled: true, Axis: "z"}}, false},
		{"果冻负过冲", TweenClip{ID: "a", Jelly: JellyTrack{Enabled: true, Overshoot: -1}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.clip
			c.ApplyDefaults()
			err := c.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, 期望通过", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidClip) {
				t.Errorf("Validate() = %v, 期望 ErrInvalidClip", err)
			}
		})
	}
}

func TestApplyDefaultsKeepsAuthoredValues(t *testing.T) {
	c := TweenClip{
		ID:    "x",
		Shake: ShakeTrack{Magnitude: 3, Frequency: 10, Ease: "easeOutQuad"},
		Jelly: JellyTrack{Overshoot: 1.5},
	}
	c.ApplyDefaults()
	if c.Shake.Magnitude != 3 || c.Shake.Frequency != 10 || c.Shake.Ease != "easeOutQuad" {
		t.Errorf("shake 被默认值覆盖: %+v", c.Shake)
	}
	if c.Jelly.Overshoot != 1.5 || c.Jelly.Ease != "easeOutElastic" {
		t.Errorf("jelly = %+v", c.Jelly)
	}
	if c.Scale.Multiply != nil || c.Scale.Factor() != 1 || c.Scale.Axis != AxisX {
		t.Errorf("scale 默认值 = %+v", c.Scale)
	}
}

func TestScaleMultiplyZeroIsKept(t *testing.T) {
	src := `
id: vanish
scale:
  enabled: true
  to_mode: multiply_by
  multiply: 0
  duration: 0.2
`
	var c TweenClip
	if err := yaml.Unmarshal([]byte(src), &c); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if c.Scale.Multiply == nil || c.Scale.Factor() != 0 {
		t.Errorf("multiply: 0 应保留为 0, got %v", c.Scale.Multiply)
	}

	c.Scale.Multiply = Float(math.NaN())
	if err := c.Validate(); !errors.Is(err, ErrInvalidClip) {
		t.Errorf("NaN multiply 应校验失败, got %v", err)
	}
}

func TestEaseOf(t *testing.T) {
	if EaseOf("nope")(0.5) != 0.5 {
		t.Error("未知曲线应退化为线性")
	}
	if EaseOf("easeInQuad")(0.5) != 0.25 {
		t.Error("easeInQuad(0.5) 应为 0.25")
	}
}
