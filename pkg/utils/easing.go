// Package utils 提供缓动、向量与输入等通用工具
package utils

import (
	"math"
	"sort"
	"strings"
)

// Easing Functions (缓动函数)
//
// 缓动函数用于控制动画的速度曲线，使动画看起来更自然。
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值（Back/Elastic 会短暂越过 [0, 1]）。
//
// 参考：https://easings.net/

// EaseFunc 缓动函数类型
type EaseFunc func(t float64) float64

// EaseLinear 线性缓动（无缓动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseInQuad 二次方缓入
// 公式：f(t) = t²
func EaseInQuad(t float64) float64 {
	return t * t
}

// EaseOutQuad 二次方缓出
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseInOutQuad 二次方缓入缓出
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

// EaseInCubic 三次方缓入
// 公式：f(t) = t³
func EaseInCubic(t float64) float64 {
	return t * t * t
}

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInOutCubic 三次方缓入缓出（UI 动画的默认曲线）
//
//	t < 0.5: f(t) = 4t³
//	t >= 0.5: f(t) = 1 - (-2t + 2)³ / 2
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseOutExpo 指数缓出
// 公式：f(t) = 1 - 2^(-10t)
func EaseOutExpo(t float64) float64 {
	if t >= 1.0 {
		return 1.0
	}
	return 1 - math.Pow(2, -10*t)
}

const (
	backC1 = 1.70158
	backC3 = backC1 + 1
)

// EaseInBack 回退缓入：先向反方向拉一点再冲向终点
func EaseInBack(t float64) float64 {
	return backC3*t*t*t - backC1*t*t
}

// EaseOutBack 回退缓出：冲过终点后回弹（图标位移常用）
func EaseOutBack(t float64) float64 {
	u := t - 1
	return 1 + backC3*u*u*u + backC1*u*u
}

// EaseInOutBack 两端都带回退
func EaseInOutBack(t float64) float64 {
	const c2 = backC1 * 1.525
	if t < 0.5 {
		return (4 * t * t * ((c2+1)*2*t - c2)) / 2
	}
	u := 2*t - 2
	return (u*u*((c2+1)*u+c2) + 2) / 2
}

// EaseInOutSine 正弦缓入缓出（光泽扫过）
func EaseInOutSine(t float64) float64 {
	return -(math.Cos(math.Pi*t) - 1) / 2
}

// EaseOutElastic 弹性缓出（果冻弹跳常用）
func EaseOutElastic(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	const c4 = (2 * math.Pi) / 3
	return math.Pow(2, -10*t)*math.Sin((t*10-0.75)*c4) + 1
}

// EaseOutBounce 弹跳缓出
func EaseOutBounce(t float64) float64 {
	const n1 = 7.5625
	const d1 = 2.75
	switch {
	case t < 1/d1:
		return n1 * t * t
	case t < 2/d1:
		t -= 1.5 / d1
		return n1*t*t + 0.75
	case t < 2.5/d1:
		t -= 2.25 / d1
		return n1*t*t + 0.9375
	default:
		t -= 2.625 / d1
		return n1*t*t + 0.984375
	}
}

// EaseInBounce 弹跳缓入
func EaseInBounce(t float64) float64 {
	return 1 - EaseOutBounce(1-t)
}

// easeTable 名称 -> 缓动函数（键为小写，名称沿用片段资源中的写法，如 "easeInOutCubic"）
var easeTable = map[string]EaseFunc{
	"linear":         EaseLinear,
	"easeinquad":     EaseInQuad,
	"easeoutquad":    EaseOutQuad,
	"easeinoutquad":  EaseInOutQuad,
	"easeincubic":    EaseInCubic,
	"easeoutcubic":   EaseOutCubic,
	"easeinoutcubic": EaseInOutCubic,
	"easeoutexpo":    EaseOutExpo,
	"easeinback":     EaseInBack,
	"easeoutback":    EaseOutBack,
	"easeinoutback":  EaseInOutBack,
	"easeinoutsine":  EaseInOutSine,
	"easeoutelastic": EaseOutElastic,
	"easeinbounce":   EaseInBounce,
	"easeoutbounce":  EaseOutBounce,
}

// DefaultEaseName 未指定缓动时使用的曲线
const DefaultEaseName = "easeInOutCubic"

// EaseByName 根据名称查找缓动函数（大小写不敏感）
// 空名称返回 DefaultEaseName 对应的函数
func EaseByName(name string) (EaseFunc, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = strings.ToLower(DefaultEaseName)
	}
	fn, ok := easeTable[key]
	return fn, ok
}

// EaseNames 返回所有已注册的缓动名称（小写，已排序）
func EaseNames() []string {
	names := make([]string, 0, len(easeTable))
	for k := range easeTable {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 把 v 限制在 [0, 1]
func Clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
