// clipcheck 校验动画片段目录
//
// 用法：
//
//	go run ./cmd/clipcheck                      # 校验 ./data/clips
//	go run ./cmd/clipcheck -root . -dir data/clips -watch
//
// 所有片段有效时列出片段 ID 与启用的轨道；任何文件无效时以非零状态退出。
// -watch 模式下持续监听目录，每次变化后重新校验（无效时只打印警告）。
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/decker502/uianim/pkg/config"
	"github.com/decker502/uianim/pkg/embedded"
	"github.com/decker502/uianim/pkg/logx"
)

func main() {
	root := flag.String("root", ".", "资源根目录（包含 data/）")
	dir := flag.String("dir", config.DefaultClipDir, "片段目录（相对资源根，必须以 data/ 开头）")
	watch := flag.Bool("watch", false, "持续监听目录变化")
	verbose := flag.Bool("v", false, "输出调试日志")
	flag.Parse()

	level := "info"
	if *verbose {
		level = "debug"
	}
	log := logx.NewConsole(level)

	os.Exit(run(*root, *dir, *watch, os.Stdout, log))
}

func run(root, dir string, watch bool, out io.Writer, log logx.Logger) int {
	if err := embedded.SetOverlay(root); err != nil {
		fmt.Fprintf(out, "invalid root: %v\n", err)
		return 1
	}

	lib, err := config.NewClipLibrary(dir, log)
	if err != nil {
		fmt.Fprintf(out, "invalid: %v\n", err)
		return 1
	}
	printClips(out, lib)
	if !watch {
		return 0
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	unsubscribe := lib.Subscribe(func() {
		fmt.Fprintln(out, "--- reloaded ---")
		printClips(out, lib)
	})
	defer unsubscribe()

	log.Info("watching clips", logx.String("dir", filepath.Join(root, filepath.FromSlash(dir))))
	if err := lib.Watch(ctx, ""); err != nil {
		fmt.Fprintf(out, "watch failed: %v\n", err)
		return 1
	}
	return 0
}

func printClips(out io.Writer, lib *config.ClipLibrary) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTRACKS\tDESCRIPTION")
	for _, id := range lib.IDs() {
		clip, err := lib.Get(id)
		if err != nil {
			continue
		}
		tracks := strings.Join(clip.EnabledTracks(), ",")
		if tracks == "" {
			tracks = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", clip.ID, tracks, clip.Description)
	}
	tw.Flush()
	fmt.Fprintf(out, "%d clips OK\n", lib.Len())
}
