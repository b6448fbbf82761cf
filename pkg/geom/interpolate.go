package geom

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// LerpRect 整数矩形逐边线性插值
//
// 每条边计算 from + int((to-from)*t)，小数部分向零截断，
// 因此 t=0 时严格等于 from，t=1 时严格等于 to。
// 用于内缩量（insets）从零过渡到 source hint 内缩量。
func LerpRect(from, to Rect, t float64) Rect {
	return Rect{
		Left:   lerpInt(from.Left, to.Left, t),
		Top:    lerpInt(from.Top, to.Top, t),
		Right:  lerpInt(from.Right, to.Right, t),
		Bottom: lerpInt(from.Bottom, to.Bottom, t),
	}
}

func lerpInt(a, b int, t float64) int {
	return a + int(float64(b-a)*t)
}

// LerpRectF 浮点矩形逐边线性插值
func LerpRectF(from, to RectF, t float64) RectF {
	return RectF{
		Left:   from.Left + (to.Left-from.Left)*t,
		Top:    from.Top + (to.Top-from.Top)*t,
		Right:  from.Right + (to.Right-from.Right)*t,
		Bottom: from.Bottom + (to.Bottom-from.Bottom)*t,
	}
}

// MapRect 用仿射矩阵变换矩形
//
// 变换四个角点后取外接矩形。矩阵包含 90° 旋转时，结果的宽高互换。
func MapRect(m ebiten.GeoM, r RectF) RectF {
	xs := [4]float64{}
	ys := [4]float64{}
	xs[0], ys[0] = m.Apply(r.Left, r.Top)
	xs[1], ys[1] = m.Apply(r.Right, r.Top)
	xs[2], ys[2] = m.Apply(r.Left, r.Bottom)
	xs[3], ys[3] = m.Apply(r.Right, r.Bottom)

	out := RectF{Left: xs[0], Top: ys[0], Right: xs[0], Bottom: ys[0]}
	for i := 1; i < 4; i++ {
		out.Left = math.Min(out.Left, xs[i])
		out.Right = math.Max(out.Right, xs[i])
		out.Top = math.Min(out.Top, ys[i])
		out.Bottom = math.Max(out.Bottom, ys[i])
	}
	return out
}
