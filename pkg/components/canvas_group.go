package components

// CanvasGroupComponent 画布组：整组子元素共享的透明度与输入阻挡
//
// 最终透明度 = 元素 Alpha * 所有祖先画布组 Alpha。
type CanvasGroupComponent struct {
	Alpha float64
	// BlocksInput 为 true 时，组内可点击元素之下的元素收不到点击
	BlocksInput bool
	// Interactable 为 false 时组内元素不响应点击
	Interactable bool
}
