package game

import (
	"os"
	"testing"

	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/uianim/pkg/logx"
)

// openTestGdata 在临时 HOME 下打开 gdata
func openTestGdata(t *testing.T, app string) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	m, err := gdata.Open(gdata.Config{AppName: app})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return m
}

// TestNewSettingsManager 测试正常初始化
func TestNewSettingsManager(t *testing.T) {
	sm := NewSettingsManager(openTestGdata(t, "test_settings"), logx.Nop())

	if !sm.Persistent() {
		t.Error("Persistent() should be true with gdata")
	}
	if sm.Language() != "" {
		t.Errorf("Initial Language: got %q, want empty", sm.Language())
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm := NewSettingsManager(nil, logx.Logger{})

	if sm.Persistent() {
		t.Error("Persistent() should be false without gdata")
	}
	if err := sm.SetLanguage("fr"); err != nil {
		t.Errorf("SetLanguage() in memory mode: %v", err)
	}
	if sm.Language() != "fr" {
		t.Errorf("Language: got %q, want fr", sm.Language())
	}
	if err := sm.Load(); err != nil {
		t.Errorf("Load() error: %v", err)
	}
	if sm.Language() != "" {
		t.Error("Load() without gdata should reset to defaults")
	}
}

// TestSettingsLoadSave 测试保存后重新加载
func TestSettingsLoadSave(t *testing.T) {
	gm := openTestGdata(t, "test_settings_roundtrip")

	sm := NewSettingsManager(gm, logx.Nop())
	sm.SetFullscreen(true)
	if err := sm.SetLanguage("zh"); err != nil {
		t.Fatalf("SetLanguage() error: %v", err)
	}

	reloaded := NewSettingsManager(gm, logx.Nop())
	got := reloaded.GetSettings()
	if got.Language != "zh" || !got.Fullscreen {
		t.Errorf("reloaded settings = %+v, want {zh true}", *got)
	}
}

// TestSettingsLoadCorrupted 损坏的数据退回默认设置并返回错误
func TestSettingsLoadCorrupted(t *testing.T) {
	gm := openTestGdata(t, "test_settings_corrupted")
	if err := gm.SaveObjectProp(settingsObject, settingsProperty, []byte("language: [\n")); err != nil {
		t.Fatal(err)
	}

	sm := NewSettingsManager(gm, logx.Nop())
	if sm.Language() != "" {
		t.Errorf("Language: got %q, want default", sm.Language())
	}
	if err := sm.Load(); err == nil {
		t.Error("Load() should report unmarshal error")
	}
}
