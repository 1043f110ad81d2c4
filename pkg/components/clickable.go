package components

// ClickableComponent 标记实体可以被鼠标点击
// 点击区域以 TransformComponent 的世界坐标为左上角
type ClickableComponent struct {
	Width     float64 // 可点击区域的宽度(像素)
	Height    float64 // 可点击区域的高度(像素)
	IsEnabled bool    // 是否可以被点击
	OnClick   func()
}
