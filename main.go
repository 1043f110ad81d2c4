package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/uianim/pkg/app"
	"github.com/decker502/uianim/pkg/config"
	"github.com/decker502/uianim/pkg/embedded"
	"github.com/decker502/uianim/pkg/game"
	"github.com/decker502/uianim/pkg/logx"
)

func main() {
	var (
		cfgPath  string
		dataDir  string
		lang     string
		logLevel string
	)
	flag.StringVar(&cfgPath, "config", config.DefaultAppConfigPath, "配置文件路径（相对资源根）")
	flag.StringVar(&dataDir, "data", "", "磁盘资源根目录（包含 data/），设置后优先读取磁盘文件并热重载片段")
	flag.StringVar(&lang, "lang", "", "启动语言（覆盖保存的设置）")
	flag.StringVar(&logLevel, "log-level", "", "日志级别（debug/info/warn/error），为空时使用配置文件")
	flag.Parse()

	embedded.Init(dataFS)
	if dataDir != "" {
		if err := embedded.SetOverlay(dataDir); err != nil {
			fmt.Fprintln(os.Stderr, "fatal:", err)
			os.Exit(1)
		}
	}

	cfg, cfgErr := config.LoadAppConfig(cfgPath)
	if logLevel == "" {
		logLevel = cfg.LogLevel
	}
	log := logx.NewConsole(logLevel)
	if cfgErr != nil {
		log.Warn("app config not loaded, using defaults", logx.String("path", cfgPath), logx.Err(cfgErr))
	}

	// gdata 打开失败时降级为仅内存设置
	var store *gdata.Manager
	if cfg.SaveName != "" {
		m, err := gdata.Open(gdata.Config{AppName: cfg.SaveName})
		if err != nil {
			log.Warn("settings storage unavailable", logx.Err(err))
		} else {
			store = m
		}
	}
	settings := game.NewSettingsManager(store, log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	gameApp, err := app.NewApp(app.Config{
		App:      cfg,
		Settings: settings,
		Log:      log,
		Language: lang,
		Done:     ctx.Done(),
	})
	if err != nil {
		log.Error("app init failed", logx.Err(err))
		os.Exit(1)
	}

	if dataDir != "" {
		go func() {
			if err := gameApp.Clips().Watch(ctx, ""); err != nil {
				log.Warn("clip hot reload stopped", logx.Err(err))
			}
		}()
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetFullscreen(settings.GetSettings().Fullscreen)

	runErr := ebiten.RunGame(gameApp)
	if err := gameApp.Close(); err != nil {
		log.Warn("failed to save settings on exit", logx.Err(err))
	}
	if runErr != nil {
		log.Error("game loop failed", logx.Err(runErr))
		os.Exit(1)
	}
}
