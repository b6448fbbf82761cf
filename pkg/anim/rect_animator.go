// Package anim 提供按时间推进的矩形补间驱动器
//
// RectAnimator 每帧根据经过的时间计算 (progress, currentRect)，
// 并通过返回的 Event 告知调用方生命周期变化：
//
//	Start → Update ... → Success → End
//	Start → Update ... → Cancel  → End
//
// End 在每次运行中只会出现一次。
package anim

import (
	"time"

	"github.com/decker502/swipepip/pkg/geom"
	"github.com/decker502/swipepip/pkg/utils"
)

// Event 驱动器事件
type Event int

const (
	EventNone Event = iota
	EventStart
	EventUpdate
	EventSuccess
	EventCancel
	EventEnd
)

func (e Event) String() string {
	switch e {
	case EventStart:
		return "start"
	case EventUpdate:
		return "update"
	case EventSuccess:
		return "success"
	case EventCancel:
		return "cancel"
	case EventEnd:
		return "end"
	default:
		return "none"
	}
}

// UpdateListener 每帧回调
type UpdateListener func(progress float64, currentRect geom.RectF)

// LifecycleListener 生命周期回调（Start/Success/Cancel/End）
type LifecycleListener func(ev Event)

type runState int

const (
	stateIdle runState = iota
	stateRunning
	stateEnded
)

// RectAnimator 矩形补间驱动器
type RectAnimator struct {
	From     geom.RectF
	To       geom.RectF
	Duration time.Duration

	// Ease 作用于位置插值，nil 时线性
	Ease utils.Easing

	elapsed   time.Duration
	state     runState
	progress  float64
	current   geom.RectF
	updates   []UpdateListener
	lifecycle []LifecycleListener
}

// NewRectAnimator 创建驱动器
func NewRectAnimator(from, to geom.RectF, duration time.Duration, ease utils.Easing) *RectAnimator {
	return &RectAnimator{From: from, To: to, Duration: duration, Ease: ease, current: from}
}

// AddUpdateListener 注册每帧回调
func (a *RectAnimator) AddUpdateListener(l UpdateListener) {
	a.updates = append(a.updates, l)
}

// AddLifecycleListener 注册生命周期回调
func (a *RectAnimator) AddLifecycleListener(l LifecycleListener) {
	a.lifecycle = append(a.lifecycle, l)
}

// Start 开始运行（已在运行时无效）
func (a *RectAnimator) Start() []Event {
	if a.state == stateRunning {
		return nil
	}
	a.state = stateRunning
	a.elapsed = 0
	a.progress = 0
	a.current = a.From
	a.emit(EventStart)
	a.notify()
	return []Event{EventStart, EventUpdate}
}

// Update 推进 dt，返回本帧发生的事件
//
// 到达时长后依次产生 Update、Success、End。未运行时返回 nil。
func (a *RectAnimator) Update(dt time.Duration) []Event {
	if a.state != stateRunning {
		return nil
	}
	a.elapsed += dt
	p := 1.0
	if a.Duration > 0 {
		p = utils.Clamp01(float64(a.elapsed) / float64(a.Duration))
	}
	a.setProgress(p)
	a.notify()

	if p < 1 {
		return []Event{EventUpdate}
	}
	a.state = stateEnded
	a.emit(EventSuccess)
	a.emit(EventEnd)
	return []Event{EventUpdate, EventSuccess, EventEnd}
}

// Cancel 中途取消，返回 Cancel 与 End
func (a *RectAnimator) Cancel() []Event {
	if a.state != stateRunning {
		return nil
	}
	a.state = stateEnded
	a.emit(EventCancel)
	a.emit(EventEnd)
	return []Event{EventCancel, EventEnd}
}

// Progress 当前进度
func (a *RectAnimator) Progress() float64 {
	return a.progress
}

// Current 当前矩形
func (a *RectAnimator) Current() geom.RectF {
	return a.current
}

// Running 是否在运行
func (a *RectAnimator) Running() bool {
	return a.state == stateRunning
}

func (a *RectAnimator) setProgress(p float64) {
	a.progress = p
	t := p
	if a.Ease != nil {
		t = a.Ease(p)
	}
	a.current = geom.LerpRectF(a.From, a.To, t)
}

func (a *RectAnimator) notify() {
	for _, l := range a.updates {
		l(a.progress, a.current)
	}
}

func (a *RectAnimator) emit(ev Event) {
	for _, l := range a.lifecycle {
		l(ev)
	}
}
