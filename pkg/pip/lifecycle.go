package pip

import (
	"time"

	"github.com/charmbracelet/log"
)

// State 动画状态，唯一合法迁移为 Running → Ended
type State int

const (
	StateRunning State = iota
	StateEnded
)

func (s State) String() string {
	if s == StateEnded {
		return "ended"
	}
	return "running"
}

// Cuj 卡顿监控的用户场景标识
type Cuj string

// CujAppCloseToPip 上滑把应用关闭为 PiP
const CujAppCloseToPip Cuj = "APP_CLOSE_TO_PIP"

// JankTracker 卡顿监控埋点
type JankTracker interface {
	Begin(cuj Cuj)
	End(cuj Cuj)
	Cancel(cuj Cuj)
}

// NopJankTracker 不做任何事的 JankTracker
type NopJankTracker struct{}

func (NopJankTracker) Begin(Cuj)  {}
func (NopJankTracker) End(Cuj)    {}
func (NopJankTracker) Cancel(Cuj) {}

// LogJankTracker 把埋点区间输出到日志
type LogJankTracker struct {
	log   *log.Logger
	now   func() time.Time
	spans map[Cuj]time.Time
}

// NewLogJankTracker 创建 LogJankTracker
func NewLogJankTracker(l *log.Logger) *LogJankTracker {
	if l == nil {
		l = log.Default()
	}
	return &LogJankTracker{log: l, now: time.Now, spans: make(map[Cuj]time.Time)}
}

// Begin 记录区间开始
func (j *LogJankTracker) Begin(cuj Cuj) {
	j.spans[cuj] = j.now()
	j.log.Debug("jank span begin", "cuj", cuj)
}

// End 输出区间耗时，未开始的区间忽略
func (j *LogJankTracker) End(cuj Cuj) {
	start, ok := j.spans[cuj]
	if !ok {
		return
	}
	delete(j.spans, cuj)
	j.log.Info("jank span end", "cuj", cuj, "duration", j.now().Sub(start).Round(time.Millisecond))
}

// Cancel 丢弃区间
func (j *LogJankTracker) Cancel(cuj Cuj) {
	if _, ok := j.spans[cuj]; !ok {
		return
	}
	delete(j.spans, cuj)
	j.log.Debug("jank span cancel", "cuj", cuj)
}

// Active 区间是否仍在进行
func (j *LogJankTracker) Active(cuj Cuj) bool {
	_, ok := j.spans[cuj]
	return ok
}
