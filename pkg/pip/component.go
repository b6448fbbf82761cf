package pip

import (
	"fmt"
	"strings"
)

// TaskID 任务 ID，只做透传
type TaskID int

// ComponentName 应用组件名（包名 + 类名），只做透传
type ComponentName struct {
	Package string
	Class   string
}

// ParseComponentName 解析 "pkg/cls" 或 "pkg/.cls" 格式的组件名
func ParseComponentName(s string) (ComponentName, error) {
	pkg, cls, ok := strings.Cut(s, "/")
	if !ok || pkg == "" || cls == "" {
		return ComponentName{}, fmt.Errorf("invalid component name %q", s)
	}
	if strings.HasPrefix(cls, ".") {
		cls = pkg + cls
	}
	return ComponentName{Package: pkg, Class: cls}, nil
}

// String 短格式：类名以包名开头时省略为 ".Class"
func (c ComponentName) String() string {
	cls := c.Class
	if strings.HasPrefix(cls, c.Package+".") {
		cls = cls[len(c.Package):]
	}
	return c.Package + "/" + cls
}
