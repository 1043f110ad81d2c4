// Package app 提供演示程序的核心包装器
//
// 该包把 ECS、动画系统和各个界面模块组装成一个 ebiten.Game，
// main.go 只负责读取参数、初始化资源与日志。
package app

import (
	"context"
	"fmt"
	"image/color"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/decker502/uianim/pkg/config"
	"github.com/decker502/uianim/pkg/ecs"
	"github.com/decker502/uianim/pkg/game"
	"github.com/decker502/uianim/pkg/logx"
	"github.com/decker502/uianim/pkg/modules"
	"github.com/decker502/uianim/pkg/systems"
	"github.com/decker502/uianim/pkg/tween"
	"github.com/decker502/uianim/pkg/utils"
)

// Config 定义应用启动配置
type Config struct {
	App      config.AppConfig
	Settings *game.SettingsManager // 可为 nil（仅内存设置）
	Log      logx.Logger
	// Language 非空时覆盖保存的语言
	Language string
	// Done 关闭时 Update 返回 ebiten.Termination 结束主循环
	Done <-chan struct{}
}

// App 演示程序，实现 ebiten.Game 接口
type App struct {
	cfg  config.AppConfig
	log  logx.Logger
	dt   float64
	done <-chan struct{}

	entityManager *ecs.EntityManager
	engine        *tween.TickEngine
	tweenSystem   *systems.TweenSystem
	textSystem    *systems.LocalisedTextSystem
	renderSystem  *systems.RenderSystem
	inputSystem   *systems.InputSystem

	clips    *config.ClipLibrary
	loc      *game.LocalisationManager
	settings *game.SettingsManager

	tabs    *modules.TabGroup
	modal   *modules.Modal
	popup   *modules.Popup
	counter *modules.EndgameCounter
	endGame *modules.EndGameModal
	offer   *modules.OfferModal
	screens []*modules.Screen

	showcase *showcase

	// clipsChanged 由片段库订阅回调设置（可能在监视 goroutine 上），Update 中处理
	clipsChanged    atomic.Bool
	unsubscribeClip func()

	ctx    context.Context
	cancel context.CancelFunc

	pendingWindowSizeReset   bool
	windowSizeResetCountdown int
}

// NewApp 创建并初始化演示程序
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	log := cfg.Log
	settings := cfg.Settings
	if settings == nil {
		settings = game.NewSettingsManager(nil, log)
	}

	clips, err := config.NewClipLibrary(cfg.App.ClipDir, log)
	if err != nil {
		return nil, fmt.Errorf("片段加载失败: %w", err)
	}
	log.Info("clips loaded", logx.String("dir", clips.Dir()), logx.Int("count", clips.Len()))

	loc, err := game.NewLocalisationManager(cfg.App.LocalisationPath, cfg.App.DefaultLanguage, settings, log)
	if err != nil {
		return nil, fmt.Errorf("本地化表加载失败: %w", err)
	}
	if cfg.Language != "" {
		loc.SetLanguage(cfg.Language)
	}

	var face text.Face
	if cfg.App.Font.Path != "" {
		f, err := game.NewFontLoader().Load(cfg.App.Font.Path, cfg.App.Font.Size)
		if err != nil {
			return nil, fmt.Errorf("字体加载失败: %w", err)
		}
		face = f
	}

	em := ecs.NewEntityManager()
	engine := tween.NewTickEngine()
	ctx, cancel := context.WithCancel(context.Background())

	a := &App{
		cfg:           cfg.App,
		log:           log,
		dt:            cfg.App.TickDuration(),
		done:          cfg.Done,
		entityManager: em,
		engine:        engine,
		tweenSystem:   systems.NewTweenSystem(em, engine, log),
		textSystem:    systems.NewLocalisedTextSystem(em, loc),
		renderSystem:  systems.NewRenderSystem(em, face),
		inputSystem:   systems.NewInputSystem(em, log),
		clips:         clips,
		loc:           loc,
		settings:      settings,
		ctx:           ctx,
		cancel:        cancel,
	}
	a.unsubscribeClip = clips.Subscribe(func() { a.clipsChanged.Store(true) })
	a.buildScene()

	a.inputSystem.OnKey(ebiten.KeyL, a.loc.NextLanguage)
	a.inputSystem.OnKey(ebiten.KeyEscape, func() {
		if a.modal.IsVisible() {
			a.modal.Hide()
		}
		if a.endGame.IsVisible() {
			a.endGame.Hide()
		}
		if a.offer.IsVisible() {
			a.offer.Hide()
		}
	})
	return a, nil
}

// Clips 片段库（main 用于启动热重载）
func (a *App) Clips() *config.ClipLibrary { return a.clips }

// Update 更新逻辑
// 每个 tick 调用一次，动画按固定的 1/TPS 秒推进
func (a *App) Update() error {
	select {
	case <-a.done:
		return ebiten.Termination
	default:
	}

	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.cfg.Window.Width, a.cfg.Window.Height)
			a.pendingWindowSizeReset = false
		}
	}
	// 移动端没有窗口，忽略全屏切换
	if !utils.IsMobile() && inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	if a.clipsChanged.Swap(false) {
		a.log.Info("clip library changed, rebuilding buttons", logx.Int("count", a.clips.Len()))
		a.showcase.rebuildClipButtons()
	}

	a.inputSystem.Update(a.dt)
	a.tweenSystem.Update(a.dt)
	a.popup.Update(a.dt)
	a.tabs.Update(a.dt)
	a.textSystem.Update(a.dt)
	a.entityManager.RemoveMarkedEntities()
	return nil
}

func (a *App) toggleFullscreen() {
	next := !ebiten.IsFullscreen()
	if !next {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 退出全屏后等几帧再恢复窗口大小，让窗口管理器先处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
	} else {
		ebiten.SetFullscreen(true)
	}
	a.settings.SetFullscreen(next)
	if err := a.settings.Save(); err != nil {
		a.log.Warn("failed to save settings", logx.Err(err))
	}
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 24, G: 26, B: 32, A: 255})
	a.renderSystem.Draw(screen)
	op := &text.DrawOptions{}
	op.GeoM.Translate(8, float64(a.cfg.Window.Height-18))
	text.Draw(screen,
		fmt.Sprintf("lang: %s  tweens: %d  tps: %.0f", a.loc.CurrentLanguage(), a.engine.Active(), ebiten.ActualTPS()),
		a.renderSystem.Face(), op)
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.cfg.Window.Width, a.cfg.Window.Height
}

// Close 取消所有动画并保存设置
func (a *App) Close() error {
	a.cancel()
	a.tabs.Close()
	a.modal.Close()
	a.popup.Close()
	a.counter.Close()
	a.endGame.Close()
	a.offer.Close()
	for _, s := range a.screens {
		s.Close()
	}
	a.textSystem.Close()
	if a.unsubscribeClip != nil {
		a.unsubscribeClip()
	}
	return a.settings.Save()
}
