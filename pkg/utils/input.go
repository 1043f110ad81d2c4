package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Pointer 统一鼠标与触摸的点击输入
//
// 触摸释放时 ebiten 已经拿不到触点位置，所以每帧记录最后一次触摸位置。
type Pointer struct {
	lastTouchX, lastTouchY int
	touching               bool
}

// Update 每帧调用一次，记录活动触点的位置
func (p *Pointer) Update() {
	touchIDs := ebiten.AppendTouchIDs(nil)
	p.touching = len(touchIDs) > 0
	if p.touching {
		p.lastTouchX, p.lastTouchY = ebiten.TouchPosition(touchIDs[0])
	}
}

// JustReleased 本帧是否有点击结束（触摸优先），返回释放位置
func (p *Pointer) JustReleased() (bool, int, int) {
	if len(inpututil.AppendJustReleasedTouchIDs(nil)) > 0 {
		return true, p.lastTouchX, p.lastTouchY
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}
	return false, 0, 0
}

// Position 当前指针位置：有触摸时为最后触点，否则为鼠标
func (p *Pointer) Position() (int, int) {
	if p.touching {
		return p.lastTouchX, p.lastTouchY
	}
	return ebiten.CursorPosition()
}
