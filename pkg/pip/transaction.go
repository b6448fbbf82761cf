package pip

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/swipepip/pkg/geom"
	"github.com/decker502/swipepip/pkg/surface"
)

// SurfaceTransaction 某一时刻 leash 的变换描述
//
// 应用顺序：先按 ScaleX/ScaleY 缩放，再旋转 Rotation 度（顺时针为正），
// 最后平移到 (PositionX, PositionY)。Crop 是 leash 自身坐标下的裁剪区域。
type SurfaceTransaction struct {
	// Bounds 本帧的目标矩形（已取整）
	Bounds geom.Rect

	ScaleX float64
	ScaleY float64

	// Rotation 旋转角度（度）
	Rotation float64

	// PositionX, PositionY 锚点位置
	PositionX float64
	PositionY float64

	// Insets 本帧的裁剪内缩量，未裁剪时为 nil
	Insets *geom.Rect

	// Crop 裁剪区域，未裁剪时为 nil
	Crop *geom.Rect

	CornerRadius float64
}

// Matrix 缩放和旋转部分（不含位置）
func (st SurfaceTransaction) Matrix() ebiten.GeoM {
	var m ebiten.GeoM
	m.Scale(st.ScaleX, st.ScaleY)
	if st.Rotation != 0 {
		m.Rotate(st.Rotation * math.Pi / 180)
	}
	return m
}

// GeoM 完整变换（缩放 → 旋转 → 平移）
func (st SurfaceTransaction) GeoM() ebiten.GeoM {
	m := st.Matrix()
	m.Translate(st.PositionX, st.PositionY)
	return m
}

// ApplyTo 把变换写入事务（不提交）
func (st SurfaceTransaction) ApplyTo(tx *surface.Transaction, leash *surface.Control) *surface.Transaction {
	return tx.SetMatrix(leash, st.Matrix()).
		SetPosition(leash, st.PositionX, st.PositionY).
		SetWindowCrop(leash, st.Crop).
		SetCornerRadius(leash, st.CornerRadius)
}

func (st SurfaceTransaction) String() string {
	crop := "none"
	if st.Crop != nil {
		crop = st.Crop.String()
	}
	return fmt.Sprintf("bounds=%v scale=(%.4f, %.4f) rotation=%.2f position=(%.2f, %.2f) crop=%s",
		st.Bounds, st.ScaleX, st.ScaleY, st.Rotation, st.PositionX, st.PositionY, crop)
}

// RenderTarget 根据源矩形和目标矩形生成变换描述
//
// 四个方法对应四种模式：仅缩放、缩放+旋转、缩放+裁剪、缩放+裁剪+旋转。
type RenderTarget interface {
	Scale(src, dst geom.Rect) SurfaceTransaction
	ScaleAndRotate(src, dst geom.Rect, degree, x, y float64) SurfaceTransaction
	ScaleAndCrop(src, dst, insets geom.Rect) SurfaceTransaction
	ScaleAndCropAndRotate(src, dst, insets geom.Rect, degree, x, y float64) SurfaceTransaction
}

// TransactionHelper 默认的 RenderTarget 实现
type TransactionHelper struct {
	cornerRadius float64
}

// NewTransactionHelper 创建 TransactionHelper
func NewTransactionHelper(cornerRadius float64) *TransactionHelper {
	return &TransactionHelper{cornerRadius: cornerRadius}
}

// Scale 把 src 拉伸到 dst，左上角对齐 dst
func (h *TransactionHelper) Scale(src, dst geom.Rect) SurfaceTransaction {
	sx, sy := fillScale(src, dst)
	return SurfaceTransaction{
		Bounds:       dst,
		ScaleX:       sx,
		ScaleY:       sy,
		PositionX:    float64(dst.Left),
		PositionY:    float64(dst.Top),
		CornerRadius: h.cornerRadius,
	}
}

// ScaleAndRotate 拉伸后旋转 degree 度，锚点放在 (x, y)
func (h *TransactionHelper) ScaleAndRotate(src, dst geom.Rect, degree, x, y float64) SurfaceTransaction {
	sx, sy := fillScale(src, dst)
	return SurfaceTransaction{
		Bounds:       dst,
		ScaleX:       sx,
		ScaleY:       sy,
		Rotation:     degree,
		PositionX:    x,
		PositionY:    y,
		CornerRadius: h.cornerRadius,
	}
}

// ScaleAndCrop 按 insets 裁剪 src 后等比缩放到 dst
//
// 缩放比例由裁剪区域的短边决定，裁剪区域的左上角与 dst 左上角对齐。
func (h *TransactionHelper) ScaleAndCrop(src, dst, insets geom.Rect) SurfaceTransaction {
	crop := src.Inset(insets)
	s := uniformScale(crop, dst)
	in := insets
	return SurfaceTransaction{
		Bounds:       dst,
		ScaleX:       s,
		ScaleY:       s,
		PositionX:    float64(dst.Left) - float64(insets.Left)*s,
		PositionY:    float64(dst.Top) - float64(insets.Top)*s,
		Insets:       &in,
		Crop:         &crop,
		CornerRadius: h.cornerRadius,
	}
}

// ScaleAndCropAndRotate 裁剪、等比缩放并旋转，裁剪区域的左上角落在锚点 (x, y)
func (h *TransactionHelper) ScaleAndCropAndRotate(src, dst, insets geom.Rect, degree, x, y float64) SurfaceTransaction {
	crop := src.Inset(insets)
	s := uniformScale(crop, dst)
	in := insets

	// 内缩偏移随图层一起旋转
	var r ebiten.GeoM
	r.Rotate(degree * math.Pi / 180)
	ox, oy := r.Apply(-float64(insets.Left)*s, -float64(insets.Top)*s)

	return SurfaceTransaction{
		Bounds:       dst,
		ScaleX:       s,
		ScaleY:       s,
		Rotation:     degree,
		PositionX:    x + ox,
		PositionY:    y + oy,
		Insets:       &in,
		Crop:         &crop,
		CornerRadius: h.cornerRadius,
	}
}

func fillScale(src, dst geom.Rect) (float64, float64) {
	sx, sy := 1.0, 1.0
	if src.Width() != 0 {
		sx = float64(dst.Width()) / float64(src.Width())
	}
	if src.Height() != 0 {
		sy = float64(dst.Height()) / float64(src.Height())
	}
	return sx, sy
}

func uniformScale(crop, dst geom.Rect) float64 {
	if crop.Width() <= crop.Height() {
		if crop.Width() == 0 {
			return 1
		}
		return float64(dst.Width()) / float64(crop.Width())
	}
	if crop.Height() == 0 {
		return 1
	}
	return float64(dst.Height()) / float64(crop.Height())
}
