package surface

import (
	"image"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// Compositor 把图层树绘制到 ebiten.Image
//
// 绘制顺序：同级图层按 Layer 升序（相同 Layer 保持添加顺序），父图层先于子图层。
// 子图层的变换叠加在父图层之上，透明度逐级相乘。
// 圆角只记录不绘制。
type Compositor struct {
	pixel *ebiten.Image
}

// NewCompositor 创建绘制器
func NewCompositor() *Compositor {
	return &Compositor{}
}

// Draw 绘制 roots 及其子树
func (c *Compositor) Draw(dst *ebiten.Image, roots ...*Control) {
	sorted := sortByLayer(roots)
	for _, r := range sorted {
		c.drawControl(dst, r, ebiten.GeoM{}, 1, image.Rectangle{})
	}
}

func (c *Compositor) drawControl(dst *ebiten.Image, ctl *Control, parentWorld ebiten.GeoM, parentAlpha float64, parentBounds image.Rectangle) {
	if ctl.released || !ctl.visible {
		return
	}

	world := ctl.LocalTransform()
	world.Concat(parentWorld)
	alpha := parentAlpha * ctl.alpha

	var bounds image.Rectangle
	if ctl.colorLayer {
		// 颜色层覆盖父图层内容区域，位于父图层坐标系
		bounds = parentBounds
		c.drawColor(dst, ctl, world, alpha, bounds)
	} else {
		bounds = ctl.contentBounds()
		c.drawContent(dst, ctl, world, alpha, bounds)
	}

	for _, child := range sortByLayer(ctl.children) {
		c.drawControl(dst, child, world, alpha, bounds)
	}
}

func (c *Compositor) drawColor(dst *ebiten.Image, ctl *Control, world ebiten.GeoM, alpha float64, bounds image.Rectangle) {
	if bounds.Empty() || alpha <= 0 {
		return
	}
	if c.pixel == nil {
		c.pixel = ebiten.NewImage(1, 1)
		c.pixel.Fill(color.White)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(bounds.Dx()), float64(bounds.Dy()))
	op.GeoM.Translate(float64(bounds.Min.X), float64(bounds.Min.Y))
	op.GeoM.Concat(world)
	op.ColorScale = ctl.color
	op.ColorScale.ScaleAlpha(float32(alpha))
	dst.DrawImage(c.pixel, op)
}

func (c *Compositor) drawContent(dst *ebiten.Image, ctl *Control, world ebiten.GeoM, alpha float64, bounds image.Rectangle) {
	if ctl.content == nil || bounds.Empty() || alpha <= 0 {
		return
	}
	src, ok := ctl.content.SubImage(bounds).(*ebiten.Image)
	if !ok {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(bounds.Min.X), float64(bounds.Min.Y))
	op.GeoM.Concat(world)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(src, op)
}

func sortByLayer(cs []*Control) []*Control {
	out := make([]*Control, len(cs))
	copy(out, cs)
	sort.SliceStable(out, func(i, j int) bool { return out[i].layer < out[j].layer })
	return out
}
