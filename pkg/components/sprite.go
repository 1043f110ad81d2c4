package components

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// SpriteComponent 元素的视觉表现
// Image 为 nil 时按 Width x Height 绘制纯色矩形
type SpriteComponent struct {
	Image  *ebiten.Image
	Width  float64
	Height float64
	Color  color.RGBA
	// Layer 绘制层级，小的先画
	Layer int
}
