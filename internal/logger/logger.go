// Package logger 统一创建带组件前缀的 charmbracelet/log 日志器
//
// 各组件日志统一带前缀，例如：
//
//	SwipePipToHome: Not a supported rotation rotation=180
//	Surface: drop op on released surface name=PipContentOverlay
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// New 创建日志器
//
// 参数：
//   - w: 输出目标
//   - level: 最低输出级别
//   - prefix: 组件前缀（如 "SwipePipToHome"）
func New(w io.Writer, level log.Level, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          prefix,
	})
}

// Default 创建输出到 stderr、Info 级别的日志器
func Default(prefix string) *log.Logger {
	return New(os.Stderr, log.InfoLevel, prefix)
}

// ParseLevel 解析配置中的日志级别，空字符串视为 info
func ParseLevel(s string) (log.Level, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return log.InfoLevel, nil
	}
	return log.ParseLevel(s)
}
