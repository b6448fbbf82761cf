package anim

import (
	"reflect"
	"testing"
	"time"

	"github.com/decker502/swipepip/pkg/geom"
	"github.com/decker502/swipepip/pkg/utils"
)

func newTestAnimator() *RectAnimator {
	return NewRectAnimator(
		geom.NewRectF(0, 0, 1000, 1000),
		geom.NewRectF(800, 1800, 1000, 2000),
		100*time.Millisecond,
		nil,
	)
}

// TestRectAnimator_RunToSuccess 正常播放到结束
func TestRectAnimator_RunToSuccess(t *testing.T) {
	a := newTestAnimator()
	var events []Event
	var progresses []float64
	a.AddLifecycleListener(func(ev Event) { events = append(events, ev) })
	a.AddUpdateListener(func(p float64, _ geom.RectF) { progresses = append(progresses, p) })

	if got := a.Start(); !reflect.DeepEqual(got, []Event{EventStart, EventUpdate}) {
		t.Errorf("Start() = %v", got)
	}
	if got := a.Update(50 * time.Millisecond); !reflect.DeepEqual(got, []Event{EventUpdate}) {
		t.Errorf("Update(50ms) = %v", got)
	}
	if want := geom.NewRectF(400, 900, 1000, 1500); a.Current() != want {
		t.Errorf("Current = %v, want %v", a.Current(), want)
	}
	if got := a.Update(80 * time.Millisecond); !reflect.DeepEqual(got, []Event{EventUpdate, EventSuccess, EventEnd}) {
		t.Errorf("最后一帧事件 = %v", got)
	}
	if a.Progress() != 1 || a.Current() != a.To {
		t.Errorf("结束时 progress=%v current=%v", a.Progress(), a.Current())
	}
	if a.Running() {
		t.Error("结束后不应处于运行状态")
	}
	if got := a.Update(10 * time.Millisecond); got != nil {
		t.Errorf("结束后 Update 应返回 nil, got %v", got)
	}

	if !reflect.DeepEqual(events, []Event{EventStart, EventSuccess, EventEnd}) {
		t.Errorf("lifecycle = %v", events)
	}
	if !reflect.DeepEqual(progresses, []float64{0, 0.5, 1}) {
		t.Errorf("progresses = %v", progresses)
	}
}

// TestRectAnimator_Cancel 取消只产生一次 End
func TestRectAnimator_Cancel(t *testing.T) {
	a := newTestAnimator()
	var events []Event
	a.AddLifecycleListener(func(ev Event) { events = append(events, ev) })

	a.Start()
	a.Update(10 * time.Millisecond)
	if got := a.Cancel(); !reflect.DeepEqual(got, []Event{EventCancel, EventEnd}) {
		t.Errorf("Cancel() = %v", got)
	}
	if got := a.Cancel(); got != nil {
		t.Errorf("重复 Cancel 应返回 nil, got %v", got)
	}

	want := []Event{EventStart, EventCancel, EventEnd}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("lifecycle = %v, want %v", events, want)
	}
}

// TestRectAnimator_Ease 缓动只影响矩形，不影响进度
func TestRectAnimator_Ease(t *testing.T) {
	a := newTestAnimator()
	a.Ease = utils.EaseOutCubic
	a.Start()
	a.Update(50 * time.Millisecond)

	if a.Progress() != 0.5 {
		t.Errorf("Progress = %v, want 0.5", a.Progress())
	}
	// EaseOutCubic(0.5) = 0.875
	if want := geom.LerpRectF(a.From, a.To, 0.875); a.Current() != want {
		t.Errorf("Current = %v, want %v", a.Current(), want)
	}
}

// TestRectAnimator_ZeroDuration 零时长第一帧即结束
func TestRectAnimator_ZeroDuration(t *testing.T) {
	a := NewRectAnimator(geom.RectF{}, geom.NewRectF(0, 0, 10, 10), 0, nil)
	a.Start()
	got := a.Update(0)
	if !reflect.DeepEqual(got, []Event{EventUpdate, EventSuccess, EventEnd}) {
		t.Errorf("Update(0) = %v", got)
	}
}

// TestEvent_String 事件名称
func TestEvent_String(t *testing.T) {
	names := map[Event]string{
		EventNone: "none", EventStart: "start", EventUpdate: "update",
		EventSuccess: "success", EventCancel: "cancel", EventEnd: "end",
	}
	for ev, want := range names {
		if ev.String() != want {
			t.Errorf("%d.String() = %s, want %s", ev, ev.String(), want)
		}
	}
}
