package surface

import (
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/swipepip/pkg/geom"
)

type op struct {
	target *Control
	name   string
	apply  func(c *Control)
}

// Transaction 批量图层操作
//
// 所有 Set 方法只记录操作并返回自身，方便链式调用；
// 调用 Apply 后按记录顺序生效并清空。
type Transaction struct {
	ops []op
	log *log.Logger
}

// NewTransaction 创建空事务，l 可以为 nil（使用 charm 默认日志器）
func NewTransaction(l *log.Logger) *Transaction {
	if l == nil {
		l = log.Default()
	}
	return &Transaction{log: l}
}

func (t *Transaction) add(c *Control, name string, f func(c *Control)) *Transaction {
	t.ops = append(t.ops, op{target: c, name: name, apply: f})
	return t
}

// Show 显示图层
func (t *Transaction) Show(c *Control) *Transaction {
	return t.add(c, "show", func(c *Control) { c.visible = true })
}

// Hide 隐藏图层
func (t *Transaction) Hide(c *Control) *Transaction {
	return t.add(c, "hide", func(c *Control) { c.visible = false })
}

// SetLayer 设置 Z 序
func (t *Transaction) SetLayer(c *Control, layer int) *Transaction {
	return t.add(c, "setLayer", func(c *Control) { c.layer = layer })
}

// SetColor 设置颜色层颜色（忽略 alpha 分量，透明度由 SetAlpha 控制）
func (t *Transaction) SetColor(c *Control, clr color.Color) *Transaction {
	return t.add(c, "setColor", func(c *Control) {
		r, g, b, _ := clr.RGBA()
		c.color.SetR(float32(r) / 0xffff)
		c.color.SetG(float32(g) / 0xffff)
		c.color.SetB(float32(b) / 0xffff)
	})
}

// SetAlpha 设置透明度
func (t *Transaction) SetAlpha(c *Control, alpha float64) *Transaction {
	return t.add(c, "setAlpha", func(c *Control) { c.alpha = alpha })
}

// Reparent 把图层挂到新父图层下，parent 为 nil 时成为根图层
func (t *Transaction) Reparent(c *Control, parent *Control) *Transaction {
	return t.add(c, "reparent", func(c *Control) {
		if parent != nil && parent.released {
			t.log.Warnf("reparent %s onto released surface %s", c.name, parent.name)
			return
		}
		c.detach()
		c.parent = parent
		if parent != nil {
			parent.children = append(parent.children, c)
		}
	})
}

// SetMatrix 设置缩放旋转矩阵
func (t *Transaction) SetMatrix(c *Control, m ebiten.GeoM) *Transaction {
	return t.add(c, "setMatrix", func(c *Control) { c.matrix = m })
}

// SetPosition 设置位置
func (t *Transaction) SetPosition(c *Control, x, y float64) *Transaction {
	return t.add(c, "setPosition", func(c *Control) { c.posX, c.posY = x, y })
}

// SetWindowCrop 设置裁剪区域，crop 为 nil 时取消裁剪
func (t *Transaction) SetWindowCrop(c *Control, crop *geom.Rect) *Transaction {
	var cp *geom.Rect
	if crop != nil {
		v := *crop
		cp = &v
	}
	return t.add(c, "setWindowCrop", func(c *Control) { c.crop = cp })
}

// SetCornerRadius 设置圆角半径
func (t *Transaction) SetCornerRadius(c *Control, r float64) *Transaction {
	return t.add(c, "setCornerRadius", func(c *Control) { c.cornerRadius = r })
}

// Len 尚未生效的操作数
func (t *Transaction) Len() int {
	return len(t.ops)
}

// Apply 按顺序执行全部操作并清空事务
//
// 针对已释放图层的操作会被丢弃并输出警告。
func (t *Transaction) Apply() {
	ops := t.ops
	t.ops = nil
	for _, o := range ops {
		if o.target == nil || o.target.released {
			name := "<nil>"
			if o.target != nil {
				name = o.target.name
			}
			t.log.Warnf("drop %s on released surface name=%s", o.name, name)
			continue
		}
		o.apply(o.target)
	}
}
