package utils

// Vec2 二维向量（UI 元素的缩放、本地位置）
type Vec2 struct {
	X, Y float64
}

// V2 构造 Vec2
func V2(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// Splat 构造两个分量相同的 Vec2（均匀缩放）
func Splat(v float64) Vec2 { return Vec2{X: v, Y: v} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

// Scale 数乘
func (v Vec2) Scale(f float64) Vec2 { return Vec2{X: v.X * f, Y: v.Y * f} }

// Mul 分量乘
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{X: v.X * o.X, Y: v.Y * o.Y} }

// LerpVec2 对两个分量分别线性插值
func LerpVec2(a, b Vec2, t float64) Vec2 {
	return Vec2{X: Lerp(a.X, b.X, t), Y: Lerp(a.Y, b.Y, t)}
}
