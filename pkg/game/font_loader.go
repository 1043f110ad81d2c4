package game

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/decker502/uianim/pkg/embedded"
)

// FontLoader 加载并缓存 TTF/OTF 字体
//
// 同一字体文件只解析一次，不同字号共享同一个 GoTextFaceSource。
type FontLoader struct {
	sources map[string]*text.GoTextFaceSource
	faces   map[string]*text.GoTextFace
}

// NewFontLoader 创建字体加载器
func NewFontLoader() *FontLoader {
	return &FontLoader{
		sources: make(map[string]*text.GoTextFaceSource),
		faces:   make(map[string]*text.GoTextFace),
	}
}

// Load 读取 path 处的字体并返回 size 字号的 face
func (l *FontLoader) Load(path string, size float64) (*text.GoTextFace, error) {
	if size <= 0 {
		return nil, fmt.Errorf("字体 %s 的字号必须大于 0", path)
	}
	key := fmt.Sprintf("%s:%.1f", path, size)
	if face, ok := l.faces[key]; ok {
		return face, nil
	}

	source, ok := l.sources[path]
	if !ok {
		data, err := embedded.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("无法读取字体文件 %s: %w", path, err)
		}
		source, err = text.NewGoTextFaceSource(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("无法创建字体源 %s: %w", path, err)
		}
		l.sources[path] = source
	}

	face := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	l.faces[key] = face
	return face, nil
}
