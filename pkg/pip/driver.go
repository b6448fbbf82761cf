package pip

import (
	"time"

	"github.com/decker502/swipepip/pkg/anim"
	"github.com/decker502/swipepip/pkg/geom"
	"github.com/decker502/swipepip/pkg/utils"
)

// NewDriver 创建从起始矩形到动画目标矩形的补间驱动器，并绑定到 Engine
func NewDriver(e *Engine, duration time.Duration, ease utils.Easing) *anim.RectAnimator {
	a := anim.NewRectAnimator(e.StartBoundsF(), e.AnimationTarget(), duration, ease)
	Bind(a, e)
	return a
}

// Bind 把驱动器的每帧回调和生命周期事件转发给 Engine
//
//	Start   → Engine.Start
//	Success → Engine.Succeed
//	Cancel  → Engine.Cancel
//	End     → Engine.End
func Bind(a *anim.RectAnimator, e *Engine) {
	a.AddLifecycleListener(func(ev anim.Event) {
		switch ev {
		case anim.EventStart:
			e.Start()
		case anim.EventSuccess:
			e.Succeed()
		case anim.EventCancel:
			e.Cancel()
		case anim.EventEnd:
			e.End()
		}
	})
	a.AddUpdateListener(func(progress float64, rect geom.RectF) {
		e.OnAnimationUpdate(progress, rect)
	})
}
