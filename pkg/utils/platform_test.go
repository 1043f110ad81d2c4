//go:build !mobile

package utils

import "testing"

func TestIsMobileEmulation(t *testing.T) {
	t.Setenv("UIANIM_MOBILE_EMULATE", "")
	if IsMobile() {
		t.Error("桌面构建默认不应是移动模式")
	}
	t.Setenv("UIANIM_MOBILE_EMULATE", "1")
	if !IsMobile() {
		t.Error("设置 UIANIM_MOBILE_EMULATE=1 后应进入移动模式")
	}
}
