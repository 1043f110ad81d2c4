//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此文件仅在使用 -tags mobile 构建时编译，构建前需要把 data/ 复制到本目录：
//
//	cp -r data mobile/
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.uianim -o build/android/uianim.aar ./mobile
package mobile

import (
	"os"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/uianim/pkg/app"
	"github.com/decker502/uianim/pkg/config"
	"github.com/decker502/uianim/pkg/embedded"
	"github.com/decker502/uianim/pkg/game"
	"github.com/decker502/uianim/pkg/logx"
)

func init() {
	embedded.Init(dataFS)

	log := logx.New(os.Stderr, "info")
	cfg, err := config.LoadAppConfig(config.DefaultAppConfigPath)
	if err != nil {
		log.Warn("app config not loaded, using defaults", logx.Err(err))
	}

	// 移动端不做设置持久化
	gameApp, err := app.NewApp(app.Config{
		App:      cfg,
		Settings: game.NewSettingsManager(nil, log),
		Log:      log,
	})
	if err != nil {
		log.Error("app init failed", logx.Err(err))
		os.Exit(1)
	}

	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
