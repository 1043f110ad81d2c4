// Package embedded 提供数据文件的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包提供包装函数，让其他包可以访问嵌入的数据。
//
// 开发时可以用 SetOverlay 指定磁盘上的项目根目录，之后所有读取都走磁盘，
// 配合动画片段库的热重载使用。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	mu          sync.RWMutex
	dataFS      fs.FS
	overlayDir  string
	overlayFS   fs.FS
	initialized bool
)

var errNotInitialized = errors.New("embedded package not initialized, call Init() first")

// Init 设置数据文件系统（通常是根目录 embed.go 中的 embed.FS）
// 必须在 main() 开始时、任何配置加载之前调用
func Init(data fs.FS) {
	mu.Lock()
	defer mu.Unlock()
	dataFS = data
	initialized = true
}

// Reset 恢复到未初始化状态（测试用）
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	dataFS = nil
	overlayDir = ""
	overlayFS = nil
	initialized = false
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	mu.RLock()
	defer mu.RUnlock()
	return initialized
}

// SetOverlay 让读取改为走磁盘目录 root（root 下应有 data/ 目录），空字符串表示关闭
func SetOverlay(root string) error {
	mu.Lock()
	defer mu.Unlock()
	if root == "" {
		overlayDir, overlayFS = "", nil
		return nil
	}
	st, err := os.Stat(filepath.Join(root, "data"))
	if err != nil {
		return fmt.Errorf("overlay 目录 %s 无效: %w", root, err)
	}
	if !st.IsDir() {
		return fmt.Errorf("overlay 目录 %s 无效: data 不是目录", root)
	}
	overlayDir, overlayFS = root, os.DirFS(root)
	initialized = true
	return nil
}

// DiskPath 返回资源在 overlay 目录下的磁盘路径，未开启 overlay 时返回 false
func DiskPath(path string) (string, bool) {
	mu.RLock()
	defer mu.RUnlock()
	if overlayFS == nil {
		return "", false
	}
	return filepath.Join(overlayDir, filepath.FromSlash(normalize(path))), true
}

// normalize 标准化路径：正斜杠，去掉 "./" 前缀
func normalize(path string) string {
	path = filepath.ToSlash(path)
	return strings.TrimPrefix(path, "./")
}

// source 选择文件系统，路径必须以 "data/" 开头
func source(path string) (fs.FS, string, error) {
	mu.RLock()
	defer mu.RUnlock()
	if !initialized {
		return nil, "", errNotInitialized
	}
	path = normalize(path)
	if path != "data" && !strings.HasPrefix(path, "data/") {
		return nil, "", fmt.Errorf("unknown resource path prefix: %s (must start with 'data/')", path)
	}
	if overlayFS != nil {
		return overlayFS, path, nil
	}
	if dataFS == nil {
		return nil, "", errNotInitialized
	}
	return dataFS, path, nil
}

// Open 打开文件
func Open(path string) (fs.File, error) {
	fsys, p, err := source(path)
	if err != nil {
		return nil, err
	}
	return fsys.Open(p)
}

// ReadFile 读取文件内容
func ReadFile(path string) ([]byte, error) {
	fsys, p, err := source(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(fsys, p)
}

// Exists 检查文件是否存在
func Exists(path string) bool {
	file, err := Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}

// Glob 匹配文件
func Glob(pattern string) ([]string, error) {
	fsys, p, err := source(pattern)
	if err != nil {
		return nil, err
	}
	return fs.Glob(fsys, p)
}

// ReadDir 读取目录内容
func ReadDir(path string) ([]fs.DirEntry, error) {
	fsys, p, err := source(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadDir(fsys, p)
}

// Sub 返回指定目录的子文件系统
func Sub(dir string) (fs.FS, error) {
	fsys, p, err := source(dir)
	if err != nil {
		return nil, err
	}
	return fs.Sub(fsys, p)
}

// Stat 返回文件信息
func Stat(path string) (fs.FileInfo, error) {
	fsys, p, err := source(path)
	if err != nil {
		return nil, err
	}
	return fs.Stat(fsys, p)
}
