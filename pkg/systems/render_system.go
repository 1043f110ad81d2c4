package systems

import (
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/bitmapfont/v4"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/uianim/pkg/components"
	"github.com/decker502/uianim/pkg/ecs"
	"github.com/decker502/uianim/pkg/entities"
	"github.com/decker502/uianim/pkg/utils"
)

// DefaultFace 内置的 12px 点阵字体，覆盖拉丁字母与简体中文
func DefaultFace() text.Face {
	return text.NewGoXFace(bitmapfont.FaceSC)
}

// DrawItem 一个待绘制元素（已经解析好世界坐标、尺寸与最终透明度）
type DrawItem struct {
	ID    ecs.EntityID
	Layer int
	// X, Y, W, H 缩放后的世界矩形（以元素中心缩放）
	X, Y, W, H float64
	Alpha      float64
	Color      color.RGBA
	Image      *ebiten.Image
	Text       string
	TextColor  color.RGBA
	TextScale  float64
}

// RenderSystem 绘制所有 UI 元素
//
// 元素按 Layer 升序绘制，同层按实体 ID。
// 停用（含祖先停用）或最终透明度为 0 的元素不绘制。
type RenderSystem struct {
	entityManager *ecs.EntityManager
	face          text.Face
}

// NewRenderSystem 创建渲染系统，face 为 nil 时使用 DefaultFace
func NewRenderSystem(em *ecs.EntityManager, face text.Face) *RenderSystem {
	if face == nil {
		face = DefaultFace()
	}
	return &RenderSystem{
		entityManager: em,
		face:          face,
	}
}

// Face 返回绘制文本用的字体
func (s *RenderSystem) Face() text.Face {
	return s.face
}

// Collect 收集本帧需要绘制的元素（已排序）
func (s *RenderSystem) Collect() []DrawItem {
	ids := ecs.GetEntitiesWith2[*components.TransformComponent, *components.SpriteComponent](s.entityManager)
	items := make([]DrawItem, 0, len(ids))
	for _, id := range ids {
		if !entities.ActiveInHierarchy(s.entityManager, id) {
			continue
		}
		alpha := entities.EffectiveAlpha(s.entityManager, id)
		if alpha <= 0 {
			continue
		}
		tr, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		sp, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)

		w, h := sp.Width, sp.Height
		if layout, ok := ecs.GetComponent[*components.LayoutComponent](s.entityManager, id); ok {
			w, h = layout.PreferredWidth, layout.PreferredHeight
		}
		pos := entities.WorldPosition(s.entityManager, id)
		sw, sh := w*tr.Scale.X, h*tr.Scale.Y
		if tr.Rotation != 0 {
			sw *= math.Abs(math.Cos(tr.Rotation * math.Pi / 180))
		}

		item := DrawItem{
			ID:    id,
			Layer: sp.Layer,
			X:     pos.X + (w-sw)/2,
			Y:     pos.Y + (h-sh)/2,
			W:     sw,
			H:     sh,
			Alpha: alpha,
			Color: sp.Color,
			Image: sp.Image,
		}
		if txt, ok := ecs.GetComponent[*components.TextComponent](s.entityManager, id); ok {
			item.Text = txt.Text
			item.TextColor = txt.Color
			item.TextScale = txt.Scale
			if item.TextScale <= 0 {
				item.TextScale = 1
			}
		}
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Layer != items[j].Layer {
			return items[i].Layer < items[j].Layer
		}
		return items[i].ID < items[j].ID
	})
	return items
}

// Draw 绘制所有元素
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	for _, item := range s.Collect() {
		s.drawItem(screen, item)
	}
}

func (s *RenderSystem) drawItem(screen *ebiten.Image, item DrawItem) {
	switch {
	case item.Image != nil:
		b := item.Image.Bounds()
		if b.Dx() == 0 || b.Dy() == 0 {
			break
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(item.W/float64(b.Dx()), item.H/float64(b.Dy()))
		op.GeoM.Translate(item.X, item.Y)
		op.ColorScale.ScaleAlpha(float32(item.Alpha))
		screen.DrawImage(item.Image, op)
	case item.Color.A > 0 && item.W > 0 && item.H > 0:
		vector.DrawFilledRect(screen,
			float32(item.X), float32(item.Y), float32(item.W), float32(item.H),
			withAlpha(item.Color, item.Alpha), true)
	}

	if item.Text != "" {
		s.drawText(screen, item)
	}
}

// drawText 文本在元素矩形内居中
func (s *RenderSystem) drawText(screen *ebiten.Image, item DrawItem) {
	w, h := TextSize(s.face, item.Text)
	tw := w * item.TextScale
	th := h * item.TextScale

	op := &text.DrawOptions{}
	op.LineSpacing = lineSpacing(s.face)
	op.GeoM.Scale(item.TextScale, item.TextScale)
	op.GeoM.Translate(item.X+(item.W-tw)/2, item.Y+(item.H-th)/2)
	c := item.TextColor
	if c.A == 0 {
		c = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	op.ColorScale.Scale(float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, 1)
	op.ColorScale.ScaleAlpha(float32(item.Alpha))
	text.Draw(screen, item.Text, s.face, op)
}

// TextSize 文本在 face 下的像素尺寸（多行取最长一行）
func TextSize(face text.Face, str string) (w, h float64) {
	return text.Measure(str, face, lineSpacing(face))
}

func lineSpacing(face text.Face) float64 {
	m := face.Metrics()
	return m.HAscent + m.HDescent + m.HLineGap
}

// withAlpha 按透明度缩放预乘颜色
func withAlpha(c color.RGBA, alpha float64) color.RGBA {
	a := utils.Clamp01(alpha)
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}
