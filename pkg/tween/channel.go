// Package tween 提供按通道互斥的 UI 补间动画调度器
//
// 每个 UI 元素拥有一个 Scheduler，Scheduler 维护 Channel -> Handle 映射：
//   - 同一通道同时最多只有一个运行中的插值（新请求会先同步取消旧的）
//   - 取消通过 context.Context 协作式传递，并在宿主下一次 Tick 时生效
//   - 每次 Start 返回一个 Future，正常完成或被取消时恰好结束一次
//
// 所有插值进度都由宿主每帧调用 Engine.Tick(dt) 推进，调度器本身不启动 goroutine，
// 也不加锁：Start/Cancel 必须与 Tick 在同一个线程上调用。
package tween

import "fmt"

// Channel 元素上互斥的动画槽位
type Channel int

const (
	ChannelNone Channel = iota
	ChannelScale
	ChannelPosition
	ChannelAlpha
	ChannelShake
	ChannelJelly
	ChannelLayoutWidth
	ChannelLayoutHeight
	ChannelText
	ChannelCanvasGroup
	ChannelRotation
)

var channelNames = [...]string{
	ChannelNone:         "none",
	ChannelScale:        "scale",
	ChannelPosition:     "position",
	ChannelAlpha:        "alpha",
	ChannelShake:        "shake",
	ChannelJelly:        "jelly",
	ChannelLayoutWidth:  "layout_width",
	ChannelLayoutHeight: "layout_height",
	ChannelText:         "text",
	ChannelCanvasGroup:  "canvas_group",
	ChannelRotation:     "rotation",
}

func (c Channel) String() string {
	if c >= 0 && int(c) < len(channelNames) {
		return channelNames[c]
	}
	return fmt.Sprintf("channel(%d)", int(c))
}
