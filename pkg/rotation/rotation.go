// Package rotation 处理进入 PiP 时应用方向与桌面方向不一致的情况
//
// 应用窗口处于横屏（90° 或 270°）而桌面始终是竖屏时，PiP 动画在窗口空间中进行，
// 但目标位置是在桌面空间中计算的。本包负责：
//   - 把桌面空间的目标矩形映射回窗口空间（Remap）
//   - 按进度计算旋转角度和锚点位置（RotatedPosition）
package rotation

import (
	"errors"
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/swipepip/pkg/geom"
)

// ErrUnsupportedRotation 表示旋转差值不是 90° 或 270°
var ErrUnsupportedRotation = errors.New("not a supported rotation")

// SurfaceRotation 屏幕方向（顺时针）
type SurfaceRotation int

const (
	Rotation0 SurfaceRotation = iota
	Rotation90
	Rotation180
	Rotation270
)

// IsSupportedDelta 只有 90° 和 270° 可以作为起始旋转
func (r SurfaceRotation) IsSupportedDelta() bool {
	return r == Rotation90 || r == Rotation270
}

// Degrees 对应的角度值
func (r SurfaceRotation) Degrees() int {
	return int(r) * 90
}

func (r SurfaceRotation) String() string {
	switch r {
	case Rotation0:
		return "ROTATION_0"
	case Rotation90:
		return "ROTATION_90"
	case Rotation180:
		return "ROTATION_180"
	case Rotation270:
		return "ROTATION_270"
	default:
		return fmt.Sprintf("ROTATION_UNKNOWN(%d)", int(r))
	}
}

// FromDegrees 把角度转换为 SurfaceRotation，只接受 0/90/180/270
func FromDegrees(deg int) (SurfaceRotation, error) {
	switch deg {
	case 0:
		return Rotation0, nil
	case 90:
		return Rotation90, nil
	case 180:
		return Rotation180, nil
	case 270, -90:
		return Rotation270, nil
	default:
		return Rotation0, fmt.Errorf("%w: %d", ErrUnsupportedRotation, deg)
	}
}

// Simulator 提供窗口空间到桌面空间的仿射变换
type Simulator interface {
	// ApplyWindowToHomeRotation 在 m 之后追加窗口→桌面的变换
	ApplyWindowToHomeRotation(m *ebiten.GeoM)
}

// DisplaySimulator 按显示尺寸和窗口方向构造变换的 Simulator
//
// Width、Height 是窗口空间（横屏）的尺寸，桌面始终为竖屏（Height×Width）。
// 桌面内的点经变换后落在窗口 [0,Width]×[0,Height] 内。
type DisplaySimulator struct {
	Width    float64
	Height   float64
	Rotation SurfaceRotation
}

// ApplyWindowToHomeRotation 实现 Simulator
//
//	90°:  (x, y) -> (W - y, x)
//	270°: (x, y) -> (y, H - x)
//
// 其他方向不做变换。
func (s DisplaySimulator) ApplyWindowToHomeRotation(m *ebiten.GeoM) {
	switch s.Rotation {
	case Rotation90:
		m.Rotate(math.Pi / 2)
		m.Translate(s.Width, 0)
	case Rotation270:
		m.Rotate(-math.Pi / 2)
		m.Translate(0, s.Height)
	}
}

// Remap 把目标矩形映射到窗口空间，并计算仅用于尺寸插值的目标矩形
//
// 返回：
//   - inWindow: 目标矩形在窗口空间中的位置，用于计算旋转锚点
//   - forAnimation: 与目标同尺寸、左上角对齐 app 的矩形，
//     缩放和裁剪只按它计算，位置与旋转由锚点单独处理
func Remap(sim Simulator, dest, app geom.Rect) (inWindow, forAnimation geom.Rect) {
	var m ebiten.GeoM
	sim.ApplyWindowToHomeRotation(&m)

	inWindow = geom.MapRect(m, geom.RectFFrom(dest)).Round()
	forAnimation = geom.Rect{
		Left:   app.Left,
		Top:    app.Top,
		Right:  app.Left + dest.Width(),
		Bottom: app.Top + dest.Height(),
	}
	return inWindow, forAnimation
}

// Position 旋转动画在某一进度下的角度与锚点
type Position struct {
	Degree float64
	X      float64
	Y      float64
}

// RotatedPosition 计算进度 p 时的旋转角度和锚点
//
// 锚点从 start 左上角线性移动到窗口空间目标矩形的某个角：
//   - 90°: 角度 0 → -90，锚点移向目标左下角
//   - 270°: 角度 0 → 90，锚点移向目标右上角
//
// 其他方向返回零角度、锚点停在 start 左上角。
func RotatedPosition(rot SurfaceRotation, p float64, start, destInWindow geom.Rect) Position {
	sl, st := float64(start.Left), float64(start.Top)
	switch rot {
	case Rotation90:
		return Position{
			Degree: -90 * p,
			X:      p*(float64(destInWindow.Left)-sl) + sl,
			Y:      p*(float64(destInWindow.Bottom)-st) + st,
		}
	case Rotation270:
		return Position{
			Degree: 90 * p,
			X:      p*(float64(destInWindow.Right)-sl) + sl,
			Y:      p*(float64(destInWindow.Top)-st) + st,
		}
	default:
		return Position{X: sl, Y: st}
	}
}
