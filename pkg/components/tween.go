package components

import "github.com/decker502/uianim/pkg/tween"

// TweenComponent 把可动画元素挂到实体上
// 实体停用或销毁时 TweenSystem 取消该元素的全部动画
type TweenComponent struct {
	Element *tween.Element
}
