package surface

import (
	"github.com/charmbracelet/log"

	"github.com/decker502/swipepip/internal/logger"
)

// Session 图层工厂，持有其创建的全部图层
type Session struct {
	controls []*Control
	log      *log.Logger
}

// NewSession 创建 Session，l 为 nil 时使用默认日志器
func NewSession(l *log.Logger) *Session {
	if l == nil {
		l = logger.Default("Surface")
	}
	return &Session{log: l}
}

// NewColorLayer 创建纯色层（初始隐藏，颜色为黑色）
//
// 颜色层没有自身尺寸，绘制时覆盖父图层的内容区域。
func (s *Session) NewColorLayer(name string) *Control {
	c := newControl(name, true, 0, 0)
	c.color.SetR(0)
	c.color.SetG(0)
	c.color.SetB(0)
	s.controls = append(s.controls, c)
	s.log.Debugf("create color layer name=%s", name)
	return c
}

// NewBufferLayer 创建指定尺寸的缓冲层（初始显示）
func (s *Session) NewBufferLayer(name string, w, h int) *Control {
	c := newControl(name, false, w, h)
	c.visible = true
	s.controls = append(s.controls, c)
	s.log.Debugf("create buffer layer name=%s size=%dx%d", name, w, h)
	return c
}

// Release 释放图层及其全部子图层
//
// 释放后的图层仍可被读取，但 Transaction 对它的操作会被丢弃。
func (s *Session) Release(c *Control) {
	if c == nil || c.released {
		return
	}
	for len(c.children) > 0 {
		s.Release(c.children[0])
	}
	c.detach()
	c.released = true
	for i, x := range s.controls {
		if x == c {
			s.controls = append(s.controls[:i:i], s.controls[i+1:]...)
			break
		}
	}
	s.log.Debugf("release name=%s", c.name)
}

// Controls 当前存活的图层
func (s *Session) Controls() []*Control {
	return s.controls
}

// Logger Session 使用的日志器
func (s *Session) Logger() *log.Logger {
	return s.log
}
