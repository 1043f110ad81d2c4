package game

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/decker502/uianim/pkg/embedded"
	"github.com/decker502/uianim/pkg/logx"
)

const testLocalisation = `
default: en
languages:
  - code: en
    name: English
    entries:
      tab.shop: Shop
      tab.play: Play
      " popup.saved ": Saved
  - code: zh
    name: 中文
    entries:
      tab.shop: 商店
`

func newTestLocalisation(t *testing.T, settings *SettingsManager) *LocalisationManager {
	t.Helper()
	embedded.Init(fstest.MapFS{"data/localisation.yaml": {Data: []byte(testLocalisation)}})
	t.Cleanup(embedded.Reset)

	m, err := NewLocalisationManager("data/localisation.yaml", "", settings, logx.Nop())
	if err != nil {
		t.Fatalf("NewLocalisationManager: %v", err)
	}
	return m
}

func TestGetText(t *testing.T) {
	m := newTestLocalisation(t, nil)

	tests := []struct {
		key, want string
	}{
		{"tab.shop", "Shop"},
		{"  tab.play\t", "Play"},
		{"popup.saved", "Saved"},
		{"", MissingKeyText},
		{"nope", "#nope#"},
		{" nope ", "#nope#"},
	}
	for _, tt := range tests {
		if got := m.GetText(tt.key); got != tt.want {
			t.Errorf("GetText(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}

	m.SetLanguage("zh")
	if got := m.GetText("tab.shop"); got != "商店" {
		t.Errorf("zh GetText(tab.shop) = %q", got)
	}
	// 当前语言缺少的键不回退到其它语言
	if got := m.GetText("tab.play"); got != "#tab.play#" {
		t.Errorf("zh GetText(tab.play) = %q, want #tab.play#", got)
	}
}

func TestSetLanguageNotifiesAndFallsBack(t *testing.T) {
	m := newTestLocalisation(t, nil)

	calls := 0
	unsubscribe := m.Subscribe(func() { calls++ })

	m.SetLanguage("zh")
	if m.CurrentLanguage() != "zh" || calls != 1 {
		t.Errorf("current=%q calls=%d, want zh/1", m.CurrentLanguage(), calls)
	}

	// 同一语言也会通知
	m.SetLanguage("zh")
	if calls != 2 {
		t.Errorf("calls=%d, want 2", calls)
	}

	m.SetLanguage("klingon")
	if m.CurrentLanguage() != "en" || calls != 3 {
		t.Errorf("unknown language: current=%q calls=%d, want en/3", m.CurrentLanguage(), calls)
	}

	unsubscribe()
	m.NextLanguage()
	if calls != 3 {
		t.Error("unsubscribed callback should not be called")
	}
	if m.CurrentLanguage() != "zh" {
		t.Errorf("NextLanguage: current=%q, want zh", m.CurrentLanguage())
	}
	m.NextLanguage()
	if m.CurrentLanguage() != "en" {
		t.Errorf("NextLanguage should wrap around, got %q", m.CurrentLanguage())
	}
}

func TestLanguagesInFileOrder(t *testing.T) {
	m := newTestLocalisation(t, nil)
	langs := m.Languages()
	if len(langs) != 2 || langs[0] != (Language{"en", "English"}) || langs[1] != (Language{"zh", "中文"}) {
		t.Errorf("Languages() = %v", langs)
	}
	if m.DefaultLanguage() != "en" {
		t.Errorf("DefaultLanguage() = %q", m.DefaultLanguage())
	}
}

func TestLanguagePersistence(t *testing.T) {
	gm := openTestGdata(t, "test_localisation")
	sm := NewSettingsManager(gm, logx.Nop())

	m := newTestLocalisation(t, sm)
	m.SetLanguage("zh")

	restored := newTestLocalisation(t, NewSettingsManager(gm, logx.Nop()))
	if restored.CurrentLanguage() != "zh" {
		t.Errorf("restored language = %q, want zh", restored.CurrentLanguage())
	}
}

func TestParseLocalisationErrors(t *testing.T) {
	if _, err := ParseLocalisation([]byte("languages: []\n"), "", logx.Nop()); !errors.Is(err, ErrNoLanguages) {
		t.Errorf("empty languages err = %v", err)
	}
	if _, err := ParseLocalisation([]byte("languages:\n  - name: x\n"), "", logx.Nop()); err == nil {
		t.Error("missing code should fail")
	}
	if _, err := ParseLocalisation([]byte("languages:\n  - code: en\n  - code: en\n"), "", logx.Nop()); err == nil {
		t.Error("duplicate code should fail")
	}

	m, err := ParseLocalisation([]byte("languages:\n  - code: fr\n  - code: de\n"), "xx", logx.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if m.DefaultLanguage() != "fr" {
		t.Errorf("unknown default should fall back to first language, got %q", m.DefaultLanguage())
	}
}
