package systems

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/uianim/pkg/components"
	"github.com/decker502/uianim/pkg/ecs"
	"github.com/decker502/uianim/pkg/entities"
	"github.com/decker502/uianim/pkg/logx"
	"github.com/decker502/uianim/pkg/utils"
)

// InputSystem 把鼠标点击和触摸分发给可点击元素
//
// 规则：
//   - 只有最上层（Layer 最大，同层 ID 大者优先）的命中元素收到点击
//   - 祖先画布组 Interactable 为 false 时元素不响应
//   - 启用中且 BlocksInput 的画布组覆盖点击点时，层级更低的非组内元素收不到点击
type InputSystem struct {
	entityManager *ecs.EntityManager
	log           logx.Logger
	pointer       utils.Pointer
	// KeyHandlers 按键回调（刚按下时触发）
	keyHandlers map[ebiten.Key]func()
}

// NewInputSystem 创建输入系统
func NewInputSystem(em *ecs.EntityManager, log logx.Logger) *InputSystem {
	return &InputSystem{
		entityManager: em,
		log:           log,
		keyHandlers:   make(map[ebiten.Key]func()),
	}
}

// OnKey 注册按键回调
func (s *InputSystem) OnKey(key ebiten.Key, fn func()) {
	s.keyHandlers[key] = fn
}

// Pointer 当前指针位置（鼠标或最后触点）
func (s *InputSystem) Pointer() (int, int) { return s.pointer.Position() }

// Update 处理指针与键盘输入
func (s *InputSystem) Update(deltaTime float64) {
	for key, fn := range s.keyHandlers {
		if inpututil.IsKeyJustPressed(key) {
			fn()
		}
	}
	s.pointer.Update()
	if released, x, y := s.pointer.JustReleased(); released {
		s.Click(float64(x), float64(y))
	}
}

type clickTarget struct {
	id    ecs.EntityID
	layer int
}

// Click 在 (x, y) 处分发一次点击，返回是否有元素处理
func (s *InputSystem) Click(x, y float64) bool {
	blocker, blockerLayer, blocked := s.topBlocker(x, y)

	var targets []clickTarget
	for _, id := range ecs.GetEntitiesWith2[*components.ClickableComponent, *components.TransformComponent](s.entityManager) {
		c, _ := ecs.GetComponent[*components.ClickableComponent](s.entityManager, id)
		if !c.IsEnabled || c.OnClick == nil {
			continue
		}
		if !entities.ActiveInHierarchy(s.entityManager, id) || !s.interactable(id) {
			continue
		}
		pos := entities.WorldPosition(s.entityManager, id)
		if x < pos.X || x >= pos.X+c.Width || y < pos.Y || y >= pos.Y+c.Height {
			continue
		}
		layer := 0
		if sp, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id); ok {
			layer = sp.Layer
		}
		if blocked && layer < blockerLayer && !entities.IsDescendant(s.entityManager, id, blocker) {
			continue
		}
		targets = append(targets, clickTarget{id: id, layer: layer})
	}
	if len(targets) == 0 {
		return false
	}

	sort.Slice(targets, func(i, j int) bool {
		if targets[i].layer != targets[j].layer {
			return targets[i].layer > targets[j].layer
		}
		return targets[i].id > targets[j].id
	})
	top := targets[0].id
	c, _ := ecs.GetComponent[*components.ClickableComponent](s.entityManager, top)
	s.log.Debug("click", logx.Uint64("entity", uint64(top)), logx.Float64("x", x), logx.Float64("y", y))
	c.OnClick()
	return true
}

// interactable 所有祖先画布组都允许交互
func (s *InputSystem) interactable(id ecs.EntityID) bool {
	for cur, depth := id, 0; cur != 0 && depth < 64; depth++ {
		if g, ok := ecs.GetComponent[*components.CanvasGroupComponent](s.entityManager, cur); ok && !g.Interactable {
			return false
		}
		tr, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, cur)
		if !ok {
			break
		}
		cur = tr.Parent
	}
	return true
}

// topBlocker 覆盖 (x, y) 的最上层阻挡输入画布组
func (s *InputSystem) topBlocker(x, y float64) (ecs.EntityID, int, bool) {
	var (
		found bool
		best  ecs.EntityID
		layer int
	)
	for _, id := range ecs.GetEntitiesWith2[*components.CanvasGroupComponent, *components.SpriteComponent](s.entityManager) {
		g, _ := ecs.GetComponent[*components.CanvasGroupComponent](s.entityManager, id)
		if !g.BlocksInput || !entities.ActiveInHierarchy(s.entityManager, id) {
			continue
		}
		sp, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
		pos := entities.WorldPosition(s.entityManager, id)
		if x < pos.X || x >= pos.X+sp.Width || y < pos.Y || y >= pos.Y+sp.Height {
			continue
		}
		if !found || sp.Layer > layer {
			found, best, layer = true, id, sp.Layer
		}
	}
	return best, layer, found
}
