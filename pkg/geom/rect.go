// Package geom 提供动画计算使用的矩形类型
//
// # 坐标系统
//
// 所有矩形都使用屏幕坐标：原点在左上角，X 向右，Y 向下。
// Rect 使用整数像素，RectF 用于插值过程中的亚像素计算，
// 最终通过 Round 取整后交给渲染层。
//
// 约定：Left <= Right 且 Top <= Bottom。
package geom

import (
	"fmt"
	"math"
)

// Rect 整数矩形（左上右下四条边）
type Rect struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// NewRect 创建整数矩形
func NewRect(left, top, right, bottom int) Rect {
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// Width 矩形宽度
func (r Rect) Width() int {
	return r.Right - r.Left
}

// Height 矩形高度
func (r Rect) Height() int {
	return r.Bottom - r.Top
}

// IsEmpty 宽或高不为正时返回 true
func (r Rect) IsEmpty() bool {
	return r.Left >= r.Right || r.Top >= r.Bottom
}

// Offset 返回平移后的矩形
func (r Rect) Offset(dx, dy int) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// Inset 按四边内缩量收缩矩形
//
// insets 的四个字段分别表示左、上、右、下边向内移动的距离（可以为负）。
func (r Rect) Inset(insets Rect) Rect {
	return Rect{
		Left:   r.Left + insets.Left,
		Top:    r.Top + insets.Top,
		Right:  r.Right - insets.Right,
		Bottom: r.Bottom - insets.Bottom,
	}
}

// InsetsOf 计算 inner 相对于 outer 的有符号内缩量
//
// 返回值满足 outer.Inset(InsetsOf(outer, inner)) == inner。
func InsetsOf(outer, inner Rect) Rect {
	return Rect{
		Left:   inner.Left - outer.Left,
		Top:    inner.Top - outer.Top,
		Right:  outer.Right - inner.Right,
		Bottom: outer.Bottom - inner.Bottom,
	}
}

// String 以 "Rect(l, t - r, b)" 格式输出，便于日志排查
func (r Rect) String() string {
	return fmt.Sprintf("Rect(%d, %d - %d, %d)", r.Left, r.Top, r.Right, r.Bottom)
}

// RectF 浮点矩形
type RectF struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// NewRectF 创建浮点矩形
func NewRectF(left, top, right, bottom float64) RectF {
	return RectF{Left: left, Top: top, Right: right, Bottom: bottom}
}

// RectFFrom 将整数矩形转换为浮点矩形
func RectFFrom(r Rect) RectF {
	return RectF{
		Left:   float64(r.Left),
		Top:    float64(r.Top),
		Right:  float64(r.Right),
		Bottom: float64(r.Bottom),
	}
}

// Width 矩形宽度
func (r RectF) Width() float64 {
	return r.Right - r.Left
}

// Height 矩形高度
func (r RectF) Height() float64 {
	return r.Bottom - r.Top
}

// Round 四条边分别取整为整数矩形
//
// .5 一律向 +∞ 进位：-0.5 -> 0，-1.5 -> -1。
func (r RectF) Round() Rect {
	return Rect{
		Left:   roundHalfUp(r.Left),
		Top:    roundHalfUp(r.Top),
		Right:  roundHalfUp(r.Right),
		Bottom: roundHalfUp(r.Bottom),
	}
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// String 以 "RectF(l, t - r, b)" 格式输出
func (r RectF) String() string {
	return fmt.Sprintf("RectF(%.1f, %.1f - %.1f, %.1f)", r.Left, r.Top, r.Right, r.Bottom)
}
