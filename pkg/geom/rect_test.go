package geom

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// TestRect_Size 测试宽高计算
func TestRect_Size(t *testing.T) {
	r := NewRect(800, 1800, 1000, 2000)
	if r.Width() != 200 || r.Height() != 200 {
		t.Errorf("size = %dx%d, want 200x200", r.Width(), r.Height())
	}
	if r.IsEmpty() {
		t.Error("非空矩形被判定为空")
	}
	if !NewRect(10, 10, 10, 20).IsEmpty() {
		t.Error("零宽矩形应判定为空")
	}
}

// TestInsetsOf 测试内缩量计算与 Inset 互逆
func TestInsetsOf(t *testing.T) {
	outer := NewRect(0, 0, 1000, 2000)
	inner := NewRect(0, 200, 1000, 800)

	insets := InsetsOf(outer, inner)
	want := NewRect(0, 200, 0, 1200)
	if insets != want {
		t.Fatalf("InsetsOf = %v, want %v", insets, want)
	}
	if got := outer.Inset(insets); got != inner {
		t.Errorf("outer.Inset(insets) = %v, want %v", got, inner)
	}
}

// TestRectF_Round 测试四舍五入
func TestRectF_Round(t *testing.T) {
	tests := []struct {
		name string
		in   RectF
		want Rect
	}{
		{"整数", NewRectF(1, 2, 3, 4), NewRect(1, 2, 3, 4)},
		{"向上", NewRectF(0.5, 1.6, 2.5, 3.51), NewRect(1, 2, 3, 4)},
		{"向下", NewRectF(0.49, 1.2, 2.4, 3.1), NewRect(0, 1, 2, 3)},
		{"负数", NewRectF(-0.4, -1.6, 0, 0), NewRect(0, -2, 0, 0)},
		{"负半数向上", NewRectF(-0.5, -1.5, -2.5, 0.5), NewRect(0, -1, -2, 1)},
		{"平移后的负坐标", NewRectF(-120.5, -60.5, 79.5, 139.5), NewRect(-120, -60, 80, 140)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Round(); got != tt.want {
				t.Errorf("Round(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// TestLerpRect_Endpoints 测试插值端点精确
func TestLerpRect_Endpoints(t *testing.T) {
	zero := Rect{}
	target := NewRect(13, 207, -5, 1199)

	if got := LerpRect(zero, target, 0); got != zero {
		t.Errorf("LerpRect(0) = %v, want %v", got, zero)
	}
	if got := LerpRect(zero, target, 1); got != target {
		t.Errorf("LerpRect(1) = %v, want %v", got, target)
	}
}

// TestLerpRect_Truncates 测试中间值向零截断
func TestLerpRect_Truncates(t *testing.T) {
	got := LerpRect(Rect{}, NewRect(3, -3, 10, 0), 0.5)
	want := NewRect(1, -1, 5, 0)
	if got != want {
		t.Errorf("LerpRect(0.5) = %v, want %v", got, want)
	}
}

// TestLerpRectF 测试浮点插值
func TestLerpRectF(t *testing.T) {
	from := NewRectF(0, 0, 1000, 1000)
	to := NewRectF(800, 1800, 1000, 2000)

	mid := LerpRectF(from, to, 0.5)
	want := NewRectF(400, 900, 1000, 1500)
	if mid != want {
		t.Errorf("LerpRectF(0.5) = %v, want %v", mid, want)
	}
	if mid.Width() != 600 || mid.Height() != 600 {
		t.Errorf("中点尺寸 = %vx%v, want 600x600", mid.Width(), mid.Height())
	}
}

// TestMapRect 测试仿射变换后的外接矩形
func TestMapRect(t *testing.T) {
	t.Run("平移缩放", func(t *testing.T) {
		var m ebiten.GeoM
		m.Scale(2, 3)
		m.Translate(10, 20)

		got := MapRect(m, NewRectF(0, 0, 10, 10))
		want := NewRectF(10, 20, 30, 50)
		if !rectFNear(got, want) {
			t.Errorf("MapRect = %v, want %v", got, want)
		}
	})

	t.Run("旋转90度宽高互换", func(t *testing.T) {
		var m ebiten.GeoM
		m.Rotate(math.Pi / 2)

		got := MapRect(m, NewRectF(0, 0, 40, 10))
		if math.Abs(got.Width()-10) > 1e-9 || math.Abs(got.Height()-40) > 1e-9 {
			t.Errorf("旋转后尺寸 = %vx%v, want 10x40", got.Width(), got.Height())
		}
	})
}

func rectFNear(a, b RectF) bool {
	const eps = 1e-9
	return math.Abs(a.Left-b.Left) < eps && math.Abs(a.Top-b.Top) < eps &&
		math.Abs(a.Right-b.Right) < eps && math.Abs(a.Bottom-b.Bottom) < eps
}
