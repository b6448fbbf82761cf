// Package surface 提供内存中的图层树，用于承接 PiP 动画计算出的变换
//
// 图层模型：
//   - Control: 图层句柄（颜色层或缓冲层），保存变换、透明度、裁剪等状态
//   - Session: 负责创建和释放图层
//   - Transaction: 批量记录图层操作，Apply 时按顺序一次性生效
//   - Compositor: 把图层树绘制到 ebiten.Image 上
//
// 所有操作都在同一个线程（ebiten 的 Update/Draw 线程）上执行，不加锁。
package surface

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/swipepip/pkg/geom"
)

// Control 图层句柄
type Control struct {
	name       string
	colorLayer bool
	width      int
	height     int
	content    *ebiten.Image

	parent       *Control
	children     []*Control
	layer        int
	visible      bool
	color        ebiten.ColorScale
	alpha        float64
	matrix       ebiten.GeoM
	posX, posY   float64
	crop         *geom.Rect
	cornerRadius float64
	released     bool
}

func newControl(name string, colorLayer bool, w, h int) *Control {
	return &Control{
		name:       name,
		colorLayer: colorLayer,
		width:      w,
		height:     h,
		alpha:      1,
	}
}

// Name 图层名称
func (c *Control) Name() string { return c.name }

// IsColorLayer 是否为纯色层
func (c *Control) IsColorLayer() bool { return c.colorLayer }

// Size 缓冲层尺寸，颜色层返回 0
func (c *Control) Size() (int, int) { return c.width, c.height }

// Parent 父图层，根图层返回 nil
func (c *Control) Parent() *Control { return c.parent }

// Children 子图层（按添加顺序）
func (c *Control) Children() []*Control { return c.children }

// Layer 同级图层中的 Z 序，越大越靠上
func (c *Control) Layer() int { return c.layer }

// Visible 是否显示
func (c *Control) Visible() bool { return c.visible }

// Alpha 透明度
func (c *Control) Alpha() float64 { return c.alpha }

// Color 颜色层的颜色（RGB 缩放）
func (c *Control) Color() ebiten.ColorScale { return c.color }

// Matrix 缩放旋转矩阵（不含位置）
func (c *Control) Matrix() ebiten.GeoM { return c.matrix }

// Position 图层位置
func (c *Control) Position() (float64, float64) { return c.posX, c.posY }

// Crop 窗口裁剪区域（图层自身坐标），未设置返回 nil
func (c *Control) Crop() *geom.Rect { return c.crop }

// CornerRadius 圆角半径
func (c *Control) CornerRadius() float64 { return c.cornerRadius }

// Released 是否已被 Session 释放
func (c *Control) Released() bool { return c.released }

// SetContent 设置缓冲层的内容图片
func (c *Control) SetContent(img *ebiten.Image) {
	c.content = img
	if img != nil {
		b := img.Bounds()
		c.width, c.height = b.Dx(), b.Dy()
	}
}

// LocalTransform 图层在父图层坐标系中的变换：先矩阵，再平移到位置
func (c *Control) LocalTransform() ebiten.GeoM {
	m := c.matrix
	m.Translate(c.posX, c.posY)
	return m
}

// contentBounds 图层内容的有效区域（考虑裁剪）
func (c *Control) contentBounds() image.Rectangle {
	r := image.Rect(0, 0, c.width, c.height)
	if c.crop != nil {
		r = r.Intersect(image.Rect(c.crop.Left, c.crop.Top, c.crop.Right, c.crop.Bottom))
	}
	return r
}

func (c *Control) detach() {
	if c.parent == nil {
		return
	}
	siblings := c.parent.children
	for i, s := range siblings {
		if s == c {
			c.parent.children = append(siblings[:i:i], siblings[i+1:]...)
			break
		}
	}
	c.parent = nil
}
