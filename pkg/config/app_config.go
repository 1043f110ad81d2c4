package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/decker502/uianim/pkg/embedded"
)

// DefaultAppConfigPath 默认配置文件路径
const DefaultAppConfigPath = "data/app.yaml"

// AppConfig 演示程序配置
type AppConfig struct {
	Window WindowConfig `yaml:"window"`
	// TPS 每秒逻辑帧数，也是动画引擎的推进频率
	TPS int `yaml:"tps"`

	LogLevel string `yaml:"log_level"`

	DefaultLanguage  string `yaml:"default_language"`
	ClipDir          string `yaml:"clip_dir"`
	LocalisationPath string `yaml:"localisation"`

	// SaveName gdata 存档目录名（为空时不持久化设置）
	SaveName string `yaml:"save_name"`

	// Font 为空时使用内置点阵字体
	Font FontConfig `yaml:"font"`

	Tabs    TabsConfig    `yaml:"tabs"`
	Modal   ModalConfig   `yaml:"modal"`
	Popup   PopupConfig   `yaml:"popup"`
	Counter CounterConfig `yaml:"counter"`
	EndGame EndGameConfig `yaml:"end_game"`
	Offer   OfferConfig   `yaml:"offer"`
	Screen  ScreenConfig  `yaml:"screen"`
}

// WindowConfig 窗口参数
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// FontConfig 文本字体
type FontConfig struct {
	Path string  `yaml:"path"`
	Size float64 `yaml:"size"`
}

// TabsConfig 标签栏参数
type TabsConfig struct {
	CollapsedWidth float64 `yaml:"collapsed_width"`
	ExpandedWidth  float64 `yaml:"expanded_width"`
	Height         float64 `yaml:"height"`
	IconOffset     float64 `yaml:"icon_offset"` // 选中时图标上移的距离
	IconScale      float64 `yaml:"icon_scale"`  // 选中时图标的缩放倍数
	Duration       float64 `yaml:"duration"`
}

// ModalConfig 模态遮罩参数
type ModalConfig struct {
	FadeDuration float64 `yaml:"fade_duration"`
}

// PopupConfig 弹出提示参数
type PopupConfig struct {
	FadeDuration float64 `yaml:"fade_duration"`
	// ScreenTicks 完全显示后停留的逻辑帧数
	ScreenTicks int    `yaml:"screen_ticks"`
	ShowClip    string `yaml:"show_clip"`
}

// CounterConfig 结算计数器参数
type CounterConfig struct {
	TextFadeDuration float64 `yaml:"text_fade_duration"`
	CountDuration    float64 `yaml:"count_duration"`
}

// MaxStars 结算弹窗的星星数
const MaxStars = 3

// EndGameConfig 结算弹窗各段的时长与延时（秒）
type EndGameConfig struct {
	TextEnterDelay          float64 `yaml:"text_enter_delay"`
	TextEnterDuration       float64 `yaml:"text_enter_duration"`
	TextTranslateDelay      float64 `yaml:"text_translate_delay"`
	TextTranslateDuration   float64 `yaml:"text_translate_duration"`
	EffectEnterDelay        float64 `yaml:"effect_enter_delay"`
	BackgroundEnterDelay    float64 `yaml:"background_enter_delay"`
	BackgroundEnterDuration float64 `yaml:"background_enter_duration"`
	StarFadeInDuration      float64 `yaml:"star_fade_in_duration"`
	StarGrowDuration        float64 `yaml:"star_grow_duration"`
	NextStarDelay           float64 `yaml:"next_star_delay"`
	NotchRevealDelay        float64 `yaml:"notch_reveal_delay"`
	NotchRevealDuration     float64 `yaml:"notch_reveal_duration"`
	CounterEnterDelay       float64 `yaml:"counter_enter_delay"`
	// ObtainedStars 获得的星星数（0~3）
	ObtainedStars int `yaml:"obtained_stars"`
}

// OfferConfig 礼包弹窗
type OfferConfig struct {
	ScaleDuration float64 `yaml:"scale_duration"`
	MoveDuration  float64 `yaml:"move_duration"`
	YOffset       float64 `yaml:"y_offset"`
	ShineDuration float64 `yaml:"shine_duration"`
	ShineOffset   float64 `yaml:"shine_offset"`
}

// ScreenConfig 页面切换与页面角色
type ScreenConfig struct {
	FadeDuration   float64 `yaml:"fade_duration"`
	BounceDuration float64 `yaml:"bounce_duration"`
	OvershootScale float64 `yaml:"overshoot_scale"`
	// SpinDuration 角色转一圈的秒数
	SpinDuration float64 `yaml:"spin_duration"`
}

// DefaultAppConfig 默认配置
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Window:           WindowConfig{Title: "uianim showcase", Width: 800, Height: 600},
		TPS:              60,
		LogLevel:         "info",
		DefaultLanguage:  "en",
		ClipDir:          DefaultClipDir,
		LocalisationPath: "data/localisation.yaml",
		SaveName:         "uianim",
		Tabs: TabsConfig{
			CollapsedWidth: 120,
			ExpandedWidth:  180,
			Height:         64,
			IconOffset:     12,
			IconScale:      1.2,
			Duration:       0.18,
		},
		Modal: ModalConfig{FadeDuration: 0.25},
		Popup: PopupConfig{FadeDuration: 0.2, ScreenTicks: 90, ShowClip: "popup_jelly"},
		Counter: CounterConfig{
			TextFadeDuration: 0.3,
			CountDuration:    1.5,
		},
		EndGame: EndGameConfig{
			TextEnterDelay:          0.3,
			TextEnterDuration:       0.23,
			TextTranslateDelay:      0.47,
			TextTranslateDuration:   0.4,
			EffectEnterDelay:        0.3,
			BackgroundEnterDelay:    0.3,
			BackgroundEnterDuration: 0.47,
			StarFadeInDuration:      0.3,
			StarGrowDuration:        0.3,
			NextStarDelay:           0.21,
			NotchRevealDelay:        0.2,
			NotchRevealDuration:     0.18,
			CounterEnterDelay:       0.47,
			ObtainedStars:           3,
		},
		Offer: OfferConfig{
			ScaleDuration: 0.6,
			MoveDuration:  1.0,
			YOffset:       -60,
			ShineDuration: 0.47,
			ShineOffset:   188,
		},
		Screen: ScreenConfig{
			FadeDuration:   0.21,
			BounceDuration: 0.18,
			OvershootScale: 1.2,
			SpinDuration:   1.2,
		},
	}
}

// LoadAppConfig 读取配置文件，未填写的字段使用默认值
func LoadAppConfig(path string) (AppConfig, error) {
	if path == "" {
		path = DefaultAppConfigPath
	}
	cfg := DefaultAppConfig()

	data, err := embedded.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("无法读取配置文件 %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("无法解析配置文件 %s: %w", path, err)
	}
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("配置文件 %s 无效: %w", path, err)
	}
	return cfg, nil
}

// fillDefaults 处理被显式写成零值的字段
func (c *AppConfig) fillDefaults() {
	def := DefaultAppConfig()
	if c.TPS <= 0 {
		c.TPS = def.TPS
	}
	if c.Window.Width <= 0 {
		c.Window.Width = def.Window.Width
	}
	if c.Window.Height <= 0 {
		c.Window.Height = def.Window.Height
	}
	if c.ClipDir == "" {
		c.ClipDir = def.ClipDir
	}
	if c.LocalisationPath == "" {
		c.LocalisationPath = def.LocalisationPath
	}
	if c.DefaultLanguage == "" {
		c.DefaultLanguage = def.DefaultLanguage
	}
}

// Validate 检查数值范围
func (c *AppConfig) Validate() error {
	if c.Tabs.ExpandedWidth < c.Tabs.CollapsedWidth {
		return fmt.Errorf("tabs.expanded_width (%v) 不能小于 tabs.collapsed_width (%v)", c.Tabs.ExpandedWidth, c.Tabs.CollapsedWidth)
	}
	if c.Tabs.IconScale <= 0 {
		return fmt.Errorf("tabs.icon_scale 必须大于 0")
	}
	for name, d := range map[string]float64{
		"tabs.duration":              c.Tabs.Duration,
		"modal.fade_duration":        c.Modal.FadeDuration,
		"popup.fade_duration":        c.Popup.FadeDuration,
		"counter.text_fade_duration": c.Counter.TextFadeDuration,
		"counter.count_duration":     c.Counter.CountDuration,

		"end_game.text_enter_delay":          c.EndGame.TextEnterDelay,
		"end_game.text_enter_duration":       c.EndGame.TextEnterDuration,
		"end_game.text_translate_delay":      c.EndGame.TextTranslateDelay,
		"end_game.text_translate_duration":   c.EndGame.TextTranslateDuration,
		"end_game.effect_enter_delay":        c.EndGame.EffectEnterDelay,
		"end_game.background_enter_delay":    c.EndGame.BackgroundEnterDelay,
		"end_game.background_enter_duration": c.EndGame.BackgroundEnterDuration,
		"end_game.star_fade_in_duration":     c.EndGame.StarFadeInDuration,
		"end_game.star_grow_duration":        c.EndGame.StarGrowDuration,
		"end_game.next_star_delay":           c.EndGame.NextStarDelay,
		"end_game.notch_reveal_delay":        c.EndGame.NotchRevealDelay,
		"end_game.notch_reveal_duration":     c.EndGame.NotchRevealDuration,
		"end_game.counter_enter_delay":       c.EndGame.CounterEnterDelay,

		"offer.scale_duration": c.Offer.ScaleDuration,
		"offer.move_duration":  c.Offer.MoveDuration,
		"offer.shine_duration": c.Offer.ShineDuration,

		"screen.fade_duration":   c.Screen.FadeDuration,
		"screen.bounce_duration": c.Screen.BounceDuration,
		"screen.spin_duration":   c.Screen.SpinDuration,
	} {
		if d < 0 {
			return fmt.Errorf("%s 不能为负数", name)
		}
	}
	if c.EndGame.ObtainedStars < 0 || c.EndGame.ObtainedStars > MaxStars {
		return fmt.Errorf("end_game.obtained_stars 必须在 0~%d 之间", MaxStars)
	}
	if c.Screen.OvershootScale <= 0 {
		return fmt.Errorf("screen.overshoot_scale 必须大于 0")
	}
	if c.Font.Path != "" && c.Font.Size <= 0 {
		return fmt.Errorf("font.size 必须大于 0")
	}
	if c.Popup.ScreenTicks < 0 {
		return fmt.Errorf("popup.screen_ticks 不能为负数")
	}
	return nil
}

// TickDuration 一个逻辑帧的秒数
func (c *AppConfig) TickDuration() float64 {
	if c.TPS <= 0 {
		return 1.0 / 60
	}
	return 1.0 / float64(c.TPS)
}
