package components

import (
	"github.com/decker502/uianim/pkg/ecs"
	"github.com/decker502/uianim/pkg/utils"
)

// TransformComponent 元素的本地变换
//
// Position 是相对父实体的偏移（没有父实体时就是屏幕坐标），
// Scale 以元素中心为原点缩放，(1,1) 为原始大小。
type TransformComponent struct {
	Position utils.Vec2
	Scale    utils.Vec2
	// Rotation 绕竖直中轴的转角（度），绘制宽度乘以 |cos|
	Rotation float64
	Parent   ecs.EntityID // 0 表示没有父实体
}

// NewTransform 在 pos 处创建原始大小的变换
func NewTransform(pos utils.Vec2, parent ecs.EntityID) *TransformComponent {
	return &TransformComponent{Position: pos, Scale: utils.Splat(1), Parent: parent}
}

// AlphaComponent 元素自身透明度（0 完全透明，1 不透明）
type AlphaComponent struct {
	Value float64
}

// LayoutComponent 布局元素的首选尺寸
// 标签展开/收起时动画驱动的是首选宽度，而不是缩放
type LayoutComponent struct {
	PreferredWidth  float64
	PreferredHeight float64
}
