package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/decker502/uianim/pkg/utils"
)

// FromMode 起始值来源
type FromMode string

const (
	FromCurrent FromMode = "current" // 使用属性的当前值
	FromValue   FromMode = "value"   // 使用片段里写死的初始值
)

// ScaleToMode 缩放目标值计算方式
type ScaleToMode string

const (
	ScaleAbsolute   ScaleToMode = "absolute"
	ScaleByOffset   ScaleToMode = "by_offset"
	ScaleMultiplyBy ScaleToMode = "multiply_by"
)

// MoveToMode 位移目标值计算方式
type MoveToMode string

const (
	MoveAbsolute MoveToMode = "absolute"
	MoveByOffset MoveToMode = "by_offset"
)

// Axis 单轴效果的作用轴
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
)

// ErrInvalidClip 片段配置无效
var ErrInvalidClip = errors.New("invalid tween clip")

// ScaleTrack 缩放轨道
type ScaleTrack struct {
	Enabled bool `yaml:"enabled"`
	// SeparateAxis 只作用于一个轴（布局元素上驱动首选宽/高）
	SeparateAxis bool        `yaml:"separate_axis"`
	Axis         Axis        `yaml:"axis"`
	From         FromMode    `yaml:"from"`
	Initial      utils.Vec2  `yaml:"initial"`  // From == value 时的起始缩放
	ToMode       ScaleToMode `yaml:"to_mode"`
	To           utils.Vec2  `yaml:"to"`       // absolute
	Delta        utils.Vec2  `yaml:"delta"`    // by_offset
	Multiply     *float64    `yaml:"multiply"` // multiply_by，未填写为 1
	Duration     float64     `yaml:"duration"`
	Ease         string      `yaml:"ease"`
}

// Factor multiply_by 的倍数；写了 0 就是缩到 0
func (t ScaleTrack) Factor() float64 {
	if t.Multiply == nil {
		return 1
	}
	return *t.Multiply
}

// Float 返回 v 的指针，用于在代码里构造 Multiply
func Float(v float64) *float64 { return &v }

// MoveTrack 本地位移轨道
type MoveTrack struct {
	Enabled  bool       `yaml:"enabled"`
	From     FromMode   `yaml:"from"`
	Initial  utils.Vec2 `yaml:"initial"`
	ToMode   MoveToMode `yaml:"to_mode"`
	To       utils.Vec2 `yaml:"to"`
	Offset   utils.Vec2 `yaml:"offset"`
	Duration float64    `yaml:"duration"`
	Ease     string     `yaml:"ease"`
}

// AlphaTrack 透明度轨道（元素透明度与画布组透明度共用）
type AlphaTrack struct {
	Enabled  bool     `yaml:"enabled"`
	From     FromMode `yaml:"from"`
	Initial  float64  `yaml:"initial"`
	To       float64  `yaml:"to"`
	Duration float64  `yaml:"duration"`
	Ease     string   `yaml:"ease"`
}

// ShakeTrack 抖动轨道：围绕起始位置做衰减正弦偏移
type ShakeTrack struct {
	Enabled   bool    `yaml:"enabled"`
	Axis      Axis    `yaml:"axis"`
	Magnitude float64 `yaml:"magnitude"` // 像素
	Frequency float64 `yaml:"frequency"` // Hz
	Duration  float64 `yaml:"duration"`
	Ease      string  `yaml:"ease"`
}

// JellyTrack 果冻弹跳轨道：X 拉伸、Y 压扁后回到起始缩放
type JellyTrack struct {
	Enabled   bool    `yaml:"enabled"`
	Overshoot float64 `yaml:"overshoot"`
	Duration  float64 `yaml:"duration"`
	Ease      string  `yaml:"ease"`
}

// TweenClip 声明式多轨道动画片段
// 片段是只读配置数据：加载一次，可重复播放
type TweenClip struct {
	ID          string     `yaml:"id"`
	Description string     `yaml:"description,omitempty"`
	Scale       ScaleTrack `yaml:"scale"`
	Move        MoveTrack  `yaml:"move"`
	Alpha       AlphaTrack `yaml:"alpha"`
	Shake       ShakeTrack `yaml:"shake"`
	Jelly       JellyTrack `yaml:"jelly"`
	CanvasAlpha AlphaTrack `yaml:"canvas_alpha"`
}

// ApplyDefaults 填充未填写的模式、曲线与参数
func (c *TweenClip) ApplyDefaults() {
	if c.Scale.From == "" {
		c.Scale.From = FromCurrent
	}
	if c.Scale.ToMode == "" {
		c.Scale.ToMode = ScaleAbsolute
	}
	if c.Scale.Axis == "" {
		c.Scale.Axis = AxisX
	}

	if c.Move.From == "" {
		c.Move.From = FromCurrent
	}
	if c.Move.ToMode == "" {
		c.Move.ToMode = MoveByOffset
	}

	if c.Alpha.From == "" {
		c.Alpha.From = FromCurrent
	}
	// 画布组透明度默认从片段里的固定值开始
	if c.CanvasAlpha.From == "" {
		c.CanvasAlpha.From = FromValue
	}

	if c.Shake.Axis == "" {
		c.Shake.Axis = AxisX
	}
	if c.Shake.Magnitude == 0 {
		c.Shake.Magnitude = 8
	}
	if c.Shake.Frequency == 0 {
		c.Shake.Frequency = 25
	}
	if c.Shake.Ease == "" {
		c.Shake.Ease = "linear"
	}

	if c.Jelly.Overshoot == 0 {
		c.Jelly.Overshoot = 1.2
	}
	if c.Jelly.Ease == "" {
		c.Jelly.Ease = "easeOutElastic"
	}
}

// Validate 检查片段配置，返回第一个错误（包装 ErrInvalidClip）
func (c *TweenClip) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("%w: missing 'id'", ErrInvalidClip)
	}
	check := func(track string, enabled bool, duration float64, ease string) error {
		if !enabled {
			return nil
		}
		if math.IsNaN(duration) || math.IsInf(duration, 0) || duration < 0 {
			return fmt.Errorf("%w: clip %q %s: duration must be >= 0, got %v", ErrInvalidClip, c.ID, track, duration)
		}
		if _, ok := utils.EaseByName(ease); !ok {
			return fmt.Errorf("%w: clip %q %s: unknown ease %q", ErrInvalidClip, c.ID, track, ease)
		}
		return nil
	}

	if err := check("scale", c.Scale.Enabled, c.Scale.Duration, c.Scale.Ease); err != nil {
		return err
	}
	if c.Scale.Enabled {
		if err := checkFromMode(c.ID, "scale", c.Scale.From); err != nil {
			return err
		}
		switch c.Scale.ToMode {
		case ScaleAbsolute, ScaleByOffset, ScaleMultiplyBy:
		default:
			return fmt.Errorf("%w: clip %q scale: unknown to_mode %q", ErrInvalidClip, c.ID, c.Scale.ToMode)
		}
		if err := checkAxis(c.ID, "scale", c.Scale.Axis); err != nil {
			return err
		}
		if m := c.Scale.Factor(); math.IsNaN(m) || math.IsInf(m, 0) {
			return fmt.Errorf("%w: clip %q scale: multiply must be finite, got %v", ErrInvalidClip, c.ID, m)
		}
	}

	if err := check("move", c.Move.Enabled, c.Move.Duration, c.Move.Ease); err != nil {
		return err
	}
	if c.Move.Enabled {
		if err := checkFromMode(c.ID, "move", c.Move.From); err != nil {
			return err
		}
		switch c.Move.ToMode {
		case MoveAbsolute, MoveByOffset:
		default:
			return fmt.Errorf("%w: clip %q move: unknown to_mode %q", ErrInvalidClip, c.ID, c.Move.ToMode)
		}
	}

	if err := check("alpha", c.Alpha.Enabled, c.Alpha.Duration, c.Alpha.Ease); err != nil {
		return err
	}
	if c.Alpha.Enabled {
		if err := checkFromMode(c.ID, "alpha", c.Alpha.From); err != nil {
			return err
		}
	}

	if err := check("shake", c.Shake.Enabled, c.Shake.Duration, c.Shake.Ease); err != nil {
		return err
	}
	if c.Shake.Enabled {
		if err := checkAxis(c.ID, "shake", c.Shake.Axis); err != nil {
			return err
		}
	}

	if err := check("jelly", c.Jelly.Enabled, c.Jelly.Duration, c.Jelly.Ease); err != nil {
		return err
	}
	if c.Jelly.Enabled && c.Jelly.Overshoot <= 0 {
		return fmt.Errorf("%w: clip %q jelly: overshoot must be > 0", ErrInvalidClip, c.ID)
	}

	if err := check("canvas_alpha", c.CanvasAlpha.Enabled, c.CanvasAlpha.Duration, c.CanvasAlpha.Ease); err != nil {
		return err
	}
	if c.CanvasAlpha.Enabled {
		if err := checkFromMode(c.ID, "canvas_alpha", c.CanvasAlpha.From); err != nil {
			return err
		}
	}
	return nil
}

// EnabledTracks 返回启用的轨道名（固定顺序）
func (c *TweenClip) EnabledTracks() []string {
	var out []string
	if c.Scale.Enabled {
		out = append(out, "scale")
	}
	if c.Move.Enabled {
		out = append(out, "move")
	}
	if c.Alpha.Enabled {
		out = append(out, "alpha")
	}
	if c.Shake.Enabled {
		out = append(out, "shake")
	}
	if c.Jelly.Enabled {
		out = append(out, "jelly")
	}
	if c.CanvasAlpha.Enabled {
		out = append(out, "canvas_alpha")
	}
	return out
}

// EaseOf 解析曲线名称，未知名称退化为线性（Validate 之后不会发生）
func EaseOf(name string) utils.EaseFunc {
	if fn, ok := utils.EaseByName(name); ok {
		return fn
	}
	return utils.EaseLinear
}

func checkFromMode(id, track string, m FromMode) error {
	switch m {
	case FromCurrent, FromValue:
		return nil
	}
	return fmt.Errorf("%w: clip %q %s: unknown from %q", ErrInvalidClip, id, track, m)
}

func checkAxis(id, track string, a Axis) error {
	switch a {
	case AxisX, AxisY:
		return nil
	}
	return fmt.Errorf("%w: clip %q %s: unknown axis %q", ErrInvalidClip, id, track, a)
}
