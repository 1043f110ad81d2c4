package components

import "github.com/decker502/uianim/pkg/ecs"

// TabType 标签类型
type TabType int

const (
	TabNormal TabType = iota
	TabMain           // 启动时默认选中
	TabLocked         // 不响应选中
)

func (t TabType) String() string {
	switch t {
	case TabMain:
		return "main"
	case TabLocked:
		return "locked"
	default:
		return "normal"
	}
}

// TabComponent 标签栏中的一个标签
type TabComponent struct {
	Index    int
	Type     TabType
	Selected bool

	Background ecs.EntityID // 选中时淡入的背景
	Icon       ecs.EntityID // 选中时上移并放大
	Label      ecs.EntityID // 选中时淡入的文字
	Layout     ecs.EntityID // 选中时展开宽度（通常就是标签实体本身）
}
