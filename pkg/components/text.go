package components

import "image/color"

// TextComponent 文本元素
type TextComponent struct {
	Text  string
	Color color.RGBA
	// Alpha 文本透明度，独立于元素透明度（动画走 text 通道）
	Alpha float64
	// Scale 字号倍数（调试字体 1 = 6x16 像素每字符）
	Scale float64
}

// LocalisedTextComponent 文本内容来自本地化表
// 语言切换或实体重新启用时由 LocalisedTextSystem 刷新 TextComponent.Text
type LocalisedTextComponent struct {
	Key string
	// AppliedLanguage/AppliedKey 上次写入时的语言与键，任何一个变化都需要刷新
	AppliedLanguage string
	AppliedKey      string
}
