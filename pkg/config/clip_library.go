package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/decker502/uianim/pkg/embedded"
	"github.com/decker502/uianim/pkg/logx"
)

// ErrClipNotFound 片段不存在
var ErrClipNotFound = errors.New("tween clip not found")

// DefaultClipDir 默认片段目录
const DefaultClipDir = "data/clips"

// reloadDebounce 文件变化后等待的时间（编辑器保存时常常连续触发多个事件）
const reloadDebounce = 250 * time.Millisecond

// clipFile 单个片段文件的顶层结构
type clipFile struct {
	Clips []TweenClip `yaml:"clips"`
}

// ClipLibrary 动画片段库
// 从目录加载所有 YAML 文件，按 id 索引；支持热重载（Reload/Watch）
type ClipLibrary struct {
	dir string
	log logx.Logger

	mu    sync.RWMutex
	clips map[string]*TweenClip
	ids   []string

	subsMu sync.Mutex
	nextID int
	subs   map[int]func()
}

// ParseClips 解析一个片段文件的内容，补全默认值并校验
func ParseClips(data []byte) ([]TweenClip, error) {
	var f clipFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("无法解析 YAML: %w", err)
	}
	for i := range f.Clips {
		f.Clips[i].ApplyDefaults()
		if err := f.Clips[i].Validate(); err != nil {
			return nil, fmt.Errorf("片段 #%d: %w", i, err)
		}
	}
	return f.Clips, nil
}

// NewClipLibrary 从 dir 加载片段库（dir 通过 embedded 访问，如 "data/clips"）
func NewClipLibrary(dir string, log logx.Logger) (*ClipLibrary, error) {
	if dir == "" {
		dir = DefaultClipDir
	}
	lib := &ClipLibrary{
		dir:  dir,
		log:  log,
		subs: make(map[int]func()),
	}
	clips, err := loadClipDir(dir)
	if err != nil {
		return nil, err
	}
	lib.swap(clips)
	return lib, nil
}

// NewClipLibraryFrom 用已有片段构建（测试与工具使用），会补全默认值并校验
func NewClipLibraryFrom(clips ...TweenClip) (*ClipLibrary, error) {
	byID := make(map[string]*TweenClip, len(clips))
	for i := range clips {
		c := clips[i]
		c.ApplyDefaults()
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if _, dup := byID[c.ID]; dup {
			return nil, fmt.Errorf("%w: 重复的片段 ID: %s", ErrInvalidClip, c.ID)
		}
		byID[c.ID] = &c
	}
	lib := &ClipLibrary{subs: make(map[int]func())}
	lib.swap(byID)
	return lib, nil
}

func loadClipDir(dir string) (map[string]*TweenClip, error) {
	files, err := embedded.Glob(strings.TrimSuffix(dir, "/") + "/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("扫描目录 %s 失败: %w", dir, err)
	}
	sort.Strings(files)

	byID := make(map[string]*TweenClip)
	for _, file := range files {
		data, err := embedded.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("无法读取文件 %s: %w", file, err)
		}
		clips, err := ParseClips(data)
		if err != nil {
			return nil, fmt.Errorf("加载文件 %s 失败: %w", file, err)
		}
		for i := range clips {
			c := clips[i]
			if _, dup := byID[c.ID]; dup {
				return nil, fmt.Errorf("%w: 重复的片段 ID: %s (%s)", ErrInvalidClip, c.ID, file)
			}
			byID[c.ID] = &c
		}
	}
	return byID, nil
}

func (l *ClipLibrary) swap(clips map[string]*TweenClip) {
	ids := make([]string, 0, len(clips))
	for id := range clips {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	l.mu.Lock()
	l.clips = clips
	l.ids = ids
	l.mu.Unlock()
}

// Dir 片段目录
func (l *ClipLibrary) Dir() string { return l.dir }

// Get 返回片段的副本
func (l *ClipLibrary) Get(id string) (*TweenClip, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	c, ok := l.clips[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrClipNotFound, id)
	}
	cp := *c
	return &cp, nil
}

// IDs 所有片段 ID（升序）
func (l *ClipLibrary) IDs() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]string(nil), l.ids...)
}

// Len 片段数量
func (l *ClipLibrary) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.clips)
}

// Reload 重新加载目录
// 失败时保留旧的片段集合并返回错误；成功后通知订阅者
func (l *ClipLibrary) Reload() error {
	if l.dir == "" {
		return fmt.Errorf("片段库没有关联目录")
	}
	clips, err := loadClipDir(l.dir)
	if err != nil {
		l.log.Warn("clip reload failed, keeping previous clips", logx.String("dir", l.dir), logx.Err(err))
		return err
	}
	l.swap(clips)
	l.log.Info("clips reloaded", logx.String("dir", l.dir), logx.Int("count", len(clips)))
	l.publish()
	return nil
}

// Subscribe 注册重载回调，返回取消订阅函数
// 回调在执行 Reload 的 goroutine 上调用（Watch 时是监听 goroutine）
func (l *ClipLibrary) Subscribe(fn func()) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	l.subsMu.Lock()
	id := l.nextID
	l.nextID++
	l.subs[id] = fn
	l.subsMu.Unlock()

	return func() {
		l.subsMu.Lock()
		delete(l.subs, id)
		l.subsMu.Unlock()
	}
}

func (l *ClipLibrary) publish() {
	l.subsMu.Lock()
	fns := make([]func(), 0, len(l.subs))
	for _, fn := range l.subs {
		fns = append(fns, fn)
	}
	l.subsMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Watch 监听磁盘目录 diskDir，YAML 文件变化时（去抖后）调用 Reload
// 阻塞直到 ctx 结束；diskDir 为空时使用 embedded overlay 下的片段目录
func (l *ClipLibrary) Watch(ctx context.Context, diskDir string) error {
	if diskDir == "" {
		p, ok := embedded.DiskPath(l.dir)
		if !ok {
			return fmt.Errorf("没有可监听的磁盘目录（未开启 overlay）")
		}
		diskDir = p
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("创建文件监听失败: %w", err)
	}
	defer w.Close()

	if err := w.Add(diskDir); err != nil {
		return fmt.Errorf("监听目录 %s 失败: %w", diskDir, err)
	}
	l.log.Debug("clip watcher started", logx.String("dir", diskDir))

	var (
		timerMu sync.Mutex
		timer   *time.Timer
	)
	debounce := func() {
		timerMu.Lock()
		defer timerMu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(reloadDebounce, func() {
			if ctx.Err() != nil {
				return
			}
			_ = l.Reload()
		})
	}
	defer func() {
		timerMu.Lock()
		if timer != nil {
			timer.Stop()
		}
		timerMu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !strings.EqualFold(filepath.Ext(ev.Name), ".yaml") {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				l.log.Debug("clip change detected; scheduling reload", logx.String("file", ev.Name))
				debounce()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			l.log.Warn("clip watch error", logx.String("dir", diskDir), logx.Err(err))
		}
	}
}
