package tween

import "errors"

var (
	// ErrCancelled 动画被取消（调用方令牌触发、通道被新动画顶替或元素停用）
	// 这是正常的终止状态，不是故障
	ErrCancelled = errors.New("tween: cancelled")

	// ErrMisconfigured 调用参数或片段配置错误（负时长、缺少属性绑定等）
	ErrMisconfigured = errors.New("tween: misconfigured")

	// ErrUnsupportedTrack 元素不支持片段中启用的某个轨道
	ErrUnsupportedTrack = errors.New("tween: track not supported by element")
)

// IsCancelled 判断 err 是否表示取消
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}
