package utils

import (
	"math"
	"testing"
)

// TestEaseEndpoints 所有注册的缓动函数在端点处必须为 0 和 1
func TestEaseEndpoints(t *testing.T) {
	for _, name := range EaseNames() {
		t.Run(name, func(t *testing.T) {
			fn, ok := EaseByName(name)
			if !ok {
				t.Fatalf("EaseByName(%q) 未找到", name)
			}
			if v := fn(0); math.Abs(v) > 0.001 {
				t.Errorf("%s(0) = %v, 期望 0", name, v)
			}
			if v := fn(1); math.Abs(v-1) > 0.001 {
				t.Errorf("%s(1) = %v, 期望 1", name, v)
			}
		})
	}
}

// TestEaseMidpoints 验证中点处的公式值
func TestEaseMidpoints(t *testing.T) {
	tests := []struct {
		name     string
		fn       EaseFunc
		expected float64
	}{
		{"linear", EaseLinear, 0.5},
		{"inQuad", EaseInQuad, 0.25},
		{"outQuad", EaseOutQuad, 0.75},   // 1 - (1-0.5)^2
		{"inCubic", EaseInCubic, 0.125},  // 0.5^3
		{"outCubic", EaseOutCubic, 0.875}, // 1 - (1-0.5)^3
		{"inOutCubic", EaseInOutCubic, 0.5},
		{"inOutQuad", EaseInOutQuad, 0.5},
		{"outBounce", EaseOutBounce, 0.765625},
		{"inOutBack", EaseInOutBack, 0.5},
		{"inOutSine", EaseInOutSine, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(0.5); math.Abs(got-tt.expected) > 0.001 {
				t.Errorf("%s(0.5) = %v, 期望 %v", tt.name, got, tt.expected)
			}
		})
	}
}

// TestEaseOutBackOvershoot 回弹曲线应该越过终点
func TestEaseOutBackOvershoot(t *testing.T) {
	peak := 0.0
	for p := 0.0; p <= 1.0; p += 0.05 {
		if v := EaseOutBack(p); v > peak {
			peak = v
		}
	}
	if peak <= 1.0 {
		t.Errorf("EaseOutBack 的峰值 %v 应该大于 1（回弹）", peak)
	}
}

// TestEaseOutCubicAheadOfLinear EaseOut 全程位置领先于线性
func TestEaseOutCubicAheadOfLinear(t *testing.T) {
	for p := 0.0; p <= 1.0; p += 0.1 {
		if EaseOutCubic(p) < EaseLinear(p)-0.001 {
			t.Errorf("EaseOutCubic(%v) 不应该落后于线性值", p)
		}
	}
}

func TestEaseByName(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
	}{
		{"easeInOutCubic", true},
		{"EASEOUTELASTIC", true},
		{"  linear ", true},
		{"", true}, // 默认曲线
		{"easeSideways", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, ok := EaseByName(tt.name)
			if ok != tt.ok {
				t.Fatalf("EaseByName(%q) ok = %v, 期望 %v", tt.name, ok, tt.ok)
			}
			if ok && fn == nil {
				t.Errorf("EaseByName(%q) 返回 nil 函数", tt.name)
			}
		})
	}

	def, _ := EaseByName("")
	if math.Abs(def(0.25)-EaseInOutCubic(0.25)) > 1e-9 {
		t.Error("空名称应该使用 easeInOutCubic")
	}
}

// TestLerp 测试线性插值函数
func TestLerp(t *testing.T) {
	tests := []struct {
		name     string
		a, b, t  float64
		expected float64
	}{
		{"起点", 0.0, 100.0, 0.0, 0.0},
		{"中点", 0.0, 100.0, 0.5, 50.0},
		{"终点", 0.0, 100.0, 1.0, 100.0},
		{"负数范围", -50.0, 50.0, 0.5, 0.0},
		{"逆向范围", 100.0, 0.0, 0.5, 50.0},
		{"相同端点", 1.5, 1.5, 0.7, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Lerp(tt.a, tt.b, tt.t)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Lerp(%v, %v, %v) = %v, 期望 %v", tt.a, tt.b, tt.t, result, tt.expected)
			}
		})
	}
}

// TestLerpVec2 缩放从 (1,1) 插值到 (1.2, 0.8)
func TestLerpVec2(t *testing.T) {
	got := LerpVec2(Splat(1), V2(1.2, 0.8), 0.5)
	if math.Abs(got.X-1.1) > 1e-9 || math.Abs(got.Y-0.9) > 1e-9 {
		t.Errorf("LerpVec2 = %+v, 期望 (1.1, 0.9)", got)
	}
	if sum := V2(1, 2).Add(V2(3, 4)).Mul(Splat(2)); sum != V2(8, 12) {
		t.Errorf("Add/Mul = %+v, 期望 (8, 12)", sum)
	}
}
