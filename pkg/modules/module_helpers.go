package modules

import (
	"github.com/decker502/uianim/pkg/logx"
	"github.com/decker502/uianim/pkg/tween"
)

// startGroup 收集一组同时开始的动画
// 启动失败（配置错误、元素不支持）只记录警告，不影响其他动画
type startGroup struct {
	log     logx.Logger
	futures []*tween.Future
}

func (g *startGroup) add(what string, f *tween.Future, err error) {
	if err != nil {
		g.log.Warn("tween not started", logx.String("tween", what), logx.Err(err))
		return
	}
	g.futures = append(g.futures, f)
}

// all 所有动画都完成时完成
func (g *startGroup) all() *tween.Future {
	return tween.WhenAll(g.futures...)
}
