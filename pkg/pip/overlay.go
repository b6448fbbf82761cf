package pip

import (
	"image/color"
	"math"

	"github.com/decker502/swipepip/pkg/surface"
	"github.com/decker502/swipepip/pkg/utils"
)

// ContentOverlayName 遮罩层名称
const ContentOverlayName = "PipContentOverlay"

// OverlayAlpha 遮罩层透明度
//
// 进度小于 0.5 时为 0；之后把 [0.5, 1] 映射到 [0, 1] 并经过 ease。
// ease 为 nil 时使用 FastOutSlowIn。
func OverlayAlpha(progress float64, ease utils.Easing) float64 {
	if progress < 0.5 {
		return 0
	}
	if ease == nil {
		ease = utils.FastOutSlowIn
	}
	return utils.MapToRange(math.Min(progress, 1), 0.5, 1, 0, 1, ease)
}

// FadeFrame 单帧淡入所需的上下文
type FadeFrame struct {
	Progress float64
	// Tx 本帧事务，Fade 只写入不提交
	Tx *surface.Transaction
}

// Overlay 没有 source hint 时覆盖在 leash 上的纯色遮罩层
type Overlay struct {
	control *surface.Control
	ease    utils.Easing
}

// newOverlay 创建遮罩层：显示、置顶、背景色、完全透明、挂到 leash 下，并立即提交
func newOverlay(session *surface.Session, leash *surface.Control, bg color.Color, ease utils.Easing) *Overlay {
	c := session.NewColorLayer(ContentOverlayName)
	surface.NewTransaction(session.Logger()).
		Show(c).
		SetLayer(c, math.MaxInt32).
		SetColor(c, bg).
		SetAlpha(c, 0).
		Reparent(c, leash).
		Apply()
	return &Overlay{control: c, ease: ease}
}

// Control 遮罩层句柄
func (o *Overlay) Control() *surface.Control {
	return o.control
}

// Fade 把本帧透明度写入 frame.Tx，返回写入的透明度
func (o *Overlay) Fade(frame FadeFrame) float64 {
	alpha := OverlayAlpha(frame.Progress, o.ease)
	if frame.Tx != nil {
		frame.Tx.SetAlpha(o.control, alpha)
	}
	return alpha
}
