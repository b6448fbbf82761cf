// Package pip 计算上滑回桌面时应用窗口缩小进入画中画（PiP）的逐帧变换
//
// # 工作流程
//
// 外部驱动（弹簧或补间）按帧提供 (progress, currentRect)，Engine 根据三个维度选择变换模式：
//   - 是否有 source hint：有则缩放+裁剪，无则仅缩放并淡入遮罩层
//   - 是否旋转：应用方向与桌面不一致（90°/270°）时叠加旋转和锚点移动
//   - 是否结束：End 之后的更新全部忽略
//
// Engine 对同样的输入总是给出同样的结果，FinishTransaction 直接复用进度 1 的计算。
//
// # 线程模型
//
// 所有方法都在同一个动画线程上调用，内部不加锁。
package pip

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"

	"github.com/decker502/swipepip/internal/logger"
	"github.com/decker502/swipepip/pkg/geom"
	"github.com/decker502/swipepip/pkg/rotation"
	"github.com/decker502/swipepip/pkg/surface"
	"github.com/decker502/swipepip/pkg/utils"
)

// EndProgress 动画结束时的进度
const EndProgress = 1.0

// ErrInvalidOptions 构造参数缺失或无效
var ErrInvalidOptions = errors.New("invalid pip animator options")

// ErrUnsupportedRotation 起始旋转不是 90° 或 270°
var ErrUnsupportedRotation = rotation.ErrUnsupportedRotation

// Options 构造 Engine 的参数
type Options struct {
	TaskID        TaskID
	ComponentName ComponentName

	// Leash 被驱动的图层，借用而非持有，必须在 End 之后才能释放
	Leash *surface.Control

	// SourceRectHint 应用声明的 PiP 内容区域（app 坐标），可为 nil
	SourceRectHint *geom.Rect

	// AppBounds 应用边界，SourceRectHint 基于此边界
	AppBounds geom.Rect

	// StartBounds 动画开始时应用的位置（用户可能已经拖动了一段距离）
	StartBounds geom.RectF

	// DestinationBounds PiP 窗口最终位置
	DestinationBounds geom.Rect

	CornerRadius float64

	// BackgroundColor 遮罩层颜色（主题背景色）
	BackgroundColor color.Color

	// Session 用于创建遮罩层；没有 source hint 时必须提供
	Session *surface.Session

	// RenderTarget 可选，默认 NewTransactionHelper(CornerRadius)
	RenderTarget RenderTarget

	// FadeEasing 可选，遮罩层淡入曲线，默认 FastOutSlowIn
	FadeEasing utils.Easing

	// Jank 可选，默认 NopJankTracker
	Jank JankTracker

	// Logger 可选，默认输出到 stderr
	Logger *log.Logger
}

// Engine PiP 变换计算引擎
type Engine struct {
	taskID    TaskID
	component ComponentName
	leash     *surface.Control
	target    RenderTarget
	jank      JankTracker
	log       *log.Logger

	appBounds         geom.Rect
	startBoundsF      geom.RectF
	startBounds       geom.Rect
	destinationBounds geom.Rect

	// 旋转相关，见 SetFromRotation
	fromRotation                 rotation.SurfaceRotation
	destinationBoundsTransformed geom.Rect
	destinationBoundsAnimation   geom.Rect

	// sourceHintInsets 为 nil 表示仅缩放模式
	sourceHintInsets *geom.Rect
	overlay          *Overlay

	state State
}

// New 创建 Engine
//
// source hint 在任一方向上小于目标尺寸时会被丢弃（需要放大才能填满目标），
// 此时退回仅缩放模式并创建遮罩层。
func New(opts Options) (*Engine, error) {
	if opts.Leash == nil {
		return nil, fmt.Errorf("%w: leash is nil", ErrInvalidOptions)
	}
	if opts.AppBounds.IsEmpty() {
		return nil, fmt.Errorf("%w: empty app bounds %v", ErrInvalidOptions, opts.AppBounds)
	}
	if opts.DestinationBounds.IsEmpty() {
		return nil, fmt.Errorf("%w: empty destination bounds %v", ErrInvalidOptions, opts.DestinationBounds)
	}

	l := opts.Logger
	if l == nil {
		l = logger.Default("SwipePipToHome")
	}

	e := &Engine{
		taskID:                       opts.TaskID,
		component:                    opts.ComponentName,
		leash:                        opts.Leash,
		target:                       opts.RenderTarget,
		jank:                         opts.Jank,
		log:                          l,
		appBounds:                    opts.AppBounds,
		startBoundsF:                 opts.StartBounds,
		startBounds:                  opts.StartBounds.Round(),
		destinationBounds:            opts.DestinationBounds,
		fromRotation:                 rotation.Rotation0,
		destinationBoundsTransformed: opts.DestinationBounds,
		destinationBoundsAnimation:   opts.DestinationBounds,
		state:                        StateRunning,
	}
	if e.target == nil {
		e.target = NewTransactionHelper(opts.CornerRadius)
	}
	if e.jank == nil {
		e.jank = NopJankTracker{}
	}

	hint := opts.SourceRectHint
	if hint != nil && (hint.Width() < opts.DestinationBounds.Width() ||
		hint.Height() < opts.DestinationBounds.Height()) {
		l.Debugf("source hint %v smaller than destination %v, fallback to scale only", *hint, opts.DestinationBounds)
		hint = nil
	}

	if hint == nil {
		if opts.Session == nil {
			return nil, fmt.Errorf("%w: session is required without source hint", ErrInvalidOptions)
		}
		bg := opts.BackgroundColor
		if bg == nil {
			bg = color.Black
		}
		e.overlay = newOverlay(opts.Session, opts.Leash, bg, opts.FadeEasing)
	} else {
		insets := geom.InsetsOf(opts.AppBounds, *hint)
		e.sourceHintInsets = &insets
	}

	return e, nil
}

// SetFromRotation 设置起始旋转（与目标方向不同时调用）
//
// 只接受 90° 和 270°，其他值记录错误并返回 ErrUnsupportedRotation，状态保持不变。
func (e *Engine) SetFromRotation(sim rotation.Simulator, from rotation.SurfaceRotation) error {
	if !from.IsSupportedDelta() {
		e.log.Error("Not a supported rotation", "rotation", from)
		return fmt.Errorf("%w: %v", ErrUnsupportedRotation, from)
	}
	e.fromRotation = from
	e.destinationBoundsTransformed, e.destinationBoundsAnimation =
		rotation.Remap(sim, e.destinationBounds, e.appBounds)
	return nil
}

// OnAnimationUpdate 计算本帧变换并提交到 leash
//
// 已结束时直接返回 ok=false，不访问 leash。
func (e *Engine) OnAnimationUpdate(progress float64, currentRect geom.RectF) (SurfaceTransaction, bool) {
	if e.state == StateEnded {
		return SurfaceTransaction{}, false
	}

	st := e.Compute(progress, currentRect)
	tx := surface.NewTransaction(e.log)
	st.ApplyTo(tx, e.leash)
	if e.overlay != nil {
		e.overlay.Fade(FadeFrame{Progress: progress, Tx: tx})
	}
	tx.Apply()
	return st, true
}

// Compute 计算变换但不提交，结果只取决于参数和构造时的几何信息
func (e *Engine) Compute(progress float64, currentRect geom.RectF) SurfaceTransaction {
	bounds := currentRect.Round()
	if e.sourceHintInsets == nil {
		return e.scale(progress, bounds)
	}
	return e.scaleAndCrop(progress, bounds)
}

// scale 没有 source hint，直接缩放窗口
func (e *Engine) scale(progress float64, bounds geom.Rect) SurfaceTransaction {
	if e.fromRotation.IsSupportedDelta() {
		pos := e.rotatedPosition(progress)
		return e.target.ScaleAndRotate(e.appBounds, bounds, pos.Degree, pos.X, pos.Y)
	}
	return e.target.Scale(e.appBounds, bounds)
}

// scaleAndCrop 按 source hint 缩放并裁剪
func (e *Engine) scaleAndCrop(progress float64, bounds geom.Rect) SurfaceTransaction {
	insets := geom.LerpRect(geom.Rect{}, *e.sourceHintInsets, progress)
	if e.fromRotation.IsSupportedDelta() {
		pos := e.rotatedPosition(progress)
		return e.target.ScaleAndCropAndRotate(e.appBounds, bounds, insets, pos.Degree, pos.X, pos.Y)
	}
	return e.target.ScaleAndCrop(e.appBounds, bounds, insets)
}

func (e *Engine) rotatedPosition(progress float64) rotation.Position {
	return rotation.RotatedPosition(e.fromRotation, progress, e.startBounds, e.destinationBoundsTransformed)
}

// FinishTransaction 最终帧的变换，不提交
//
// 调用方可以把它和其他收尾操作合并到同一个事务里。结束后仍可调用。
func (e *Engine) FinishTransaction() SurfaceTransaction {
	return e.Compute(EndProgress, geom.RectFFrom(e.destinationBounds))
}

// Start 动画开始
func (e *Engine) Start() {
	e.jank.Begin(CujAppCloseToPip)
}

// Cancel 动画被取消
func (e *Engine) Cancel() {
	e.jank.Cancel(CujAppCloseToPip)
}

// Succeed 动画正常完成
func (e *Engine) Succeed() {
	e.jank.End(CujAppCloseToPip)
}

// End 动画结束，只有第一次调用生效并返回 true
//
// 之后 leash 可能已被外部释放，所有更新都会被忽略。
func (e *Engine) End() bool {
	if e.state == StateEnded {
		return false
	}
	e.state = StateEnded
	e.log.Debug("animation ended", "task", e.taskID)
	return true
}

// State 当前状态
func (e *Engine) State() State {
	return e.state
}

// TaskID 任务 ID
func (e *Engine) TaskID() TaskID {
	return e.taskID
}

// ComponentName 组件名
func (e *Engine) ComponentName() ComponentName {
	return e.component
}

// DestinationBounds 目标矩形（桌面空间）
func (e *Engine) DestinationBounds() geom.Rect {
	return e.destinationBounds
}

// DestinationBoundsInWindow 目标矩形在窗口空间的位置，未旋转时等于 DestinationBounds
func (e *Engine) DestinationBoundsInWindow() geom.Rect {
	return e.destinationBoundsTransformed
}

// AnimationTarget 驱动器插值使用的目标矩形
//
// 旋转时为与目标同尺寸、左上角对齐 app 的矩形，位置由锚点单独处理。
func (e *Engine) AnimationTarget() geom.RectF {
	return geom.RectFFrom(e.destinationBoundsAnimation)
}

// StartBoundsF 起始矩形（未取整）
func (e *Engine) StartBoundsF() geom.RectF {
	return e.startBoundsF
}

// StartBounds 起始矩形（已取整）
func (e *Engine) StartBounds() geom.Rect {
	return e.startBounds
}

// FromRotation 起始旋转，未设置时为 Rotation0
func (e *Engine) FromRotation() rotation.SurfaceRotation {
	return e.fromRotation
}

// SourceHintInsets source hint 内缩量，仅缩放模式返回 nil
func (e *Engine) SourceHintInsets() *geom.Rect {
	if e.sourceHintInsets == nil {
		return nil
	}
	v := *e.sourceHintInsets
	return &v
}

// ContentOverlay 遮罩层句柄，有 source hint 时返回 nil
func (e *Engine) ContentOverlay() *surface.Control {
	if e.overlay == nil {
		return nil
	}
	return e.overlay.Control()
}

// Leash 被驱动的图层
func (e *Engine) Leash() *surface.Control {
	return e.leash
}
