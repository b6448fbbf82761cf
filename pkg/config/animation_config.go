package config

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/decker502/swipepip/internal/logger"
	"github.com/decker502/swipepip/pkg/utils"
)

// AnimationConfig PiP 动画配置
type AnimationConfig struct {
	// DurationMs 补间驱动器时长（毫秒）
	DurationMs int `yaml:"duration_ms"`

	// CornerRadius PiP 窗口圆角（像素）
	CornerRadius float64 `yaml:"corner_radius"`

	// OverlayColor 遮罩层颜色，格式 "#RRGGBB"
	OverlayColor string `yaml:"overlay_color"`

	// FadeCurve 遮罩层淡入曲线名称（见 utils.EasingByName）
	FadeCurve string `yaml:"fade_curve,omitempty"`

	// FadeBezier 自定义贝塞尔控制点 [x1, y1, x2, y2]，设置后覆盖 FadeCurve
	FadeBezier []float64 `yaml:"fade_bezier,omitempty"`

	// MotionCurve 矩形插值曲线名称
	MotionCurve string `yaml:"motion_curve,omitempty"`

	// LogLevel 日志级别（debug/info/warn/error）
	LogLevel string `yaml:"log_level,omitempty"`

	// Display 演示窗口尺寸
	Display DisplayConfig `yaml:"display"`
}

// DisplayConfig 显示尺寸
type DisplayConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// DefaultAnimationConfig 返回默认配置
func DefaultAnimationConfig() *AnimationConfig {
	return &AnimationConfig{
		DurationMs:   400,
		CornerRadius: 16,
		OverlayColor: "#202124",
		FadeCurve:    "fast_out_slow_in",
		MotionCurve:  "ease_out_cubic",
		LogLevel:     "info",
		Display:      DisplayConfig{Width: 540, Height: 960},
	}
}

// LoadAnimationConfig 从 YAML 文件加载配置
//
// 文件中未出现的字段保持默认值。
//
// 参数：
//   - path: 配置文件路径
//
// 返回：
//   - *AnimationConfig: 解析后的配置
//   - error: 读取、解析或验证失败
func LoadAnimationConfig(path string) (*AnimationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("无法读取配置文件 %s: %w", path, err)
	}

	cfg, err := ParseAnimationConfig(data)
	if err != nil {
		return nil, fmt.Errorf("配置文件 %s: %w", path, err)
	}
	return cfg, nil
}

// ParseAnimationConfig 解析 YAML 数据，未出现的字段保持默认值
func ParseAnimationConfig(data []byte) (*AnimationConfig, error) {
	cfg := DefaultAnimationConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("无法解析配置: %w", err)
	}
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("配置验证失败: %w", err)
	}
	return cfg, nil
}

// validateConfig 验证配置的完整性和正确性
func validateConfig(cfg *AnimationConfig) error {
	if cfg.DurationMs <= 0 {
		return fmt.Errorf("'duration_ms' 必须为正数，当前 %d", cfg.DurationMs)
	}
	if cfg.CornerRadius < 0 {
		return fmt.Errorf("'corner_radius' 不能为负数，当前 %v", cfg.CornerRadius)
	}
	if _, err := parseHexColor(cfg.OverlayColor); err != nil {
		return fmt.Errorf("'overlay_color' 无效: %w", err)
	}
	if len(cfg.FadeBezier) > 0 {
		if len(cfg.FadeBezier) != 4 {
			return fmt.Errorf("'fade_bezier' 需要 4 个控制点参数，当前 %d 个", len(cfg.FadeBezier))
		}
		if x1, x2 := cfg.FadeBezier[0], cfg.FadeBezier[2]; x1 < 0 || x1 > 1 || x2 < 0 || x2 > 1 {
			return fmt.Errorf("'fade_bezier' 的 x 控制点必须在 [0,1] 内")
		}
	}
	if _, err := utils.EasingByName(cfg.FadeCurve); err != nil {
		return fmt.Errorf("'fade_curve' 无效: %w", err)
	}
	if _, err := utils.EasingByName(cfg.MotionCurve); err != nil {
		return fmt.Errorf("'motion_curve' 无效: %w", err)
	}
	if _, err := logger.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("'log_level' 无效: %w", err)
	}
	if cfg.Display.Width <= 0 || cfg.Display.Height <= 0 {
		return fmt.Errorf("'display' 尺寸必须为正数，当前 %dx%d", cfg.Display.Width, cfg.Display.Height)
	}
	return nil
}

// Duration 驱动器时长
func (c *AnimationConfig) Duration() time.Duration {
	return time.Duration(c.DurationMs) * time.Millisecond
}

// Overlay 遮罩层颜色
func (c *AnimationConfig) Overlay() (color.RGBA, error) {
	return parseHexColor(c.OverlayColor)
}

// FadeEasing 遮罩层淡入曲线
func (c *AnimationConfig) FadeEasing() (utils.Easing, error) {
	if len(c.FadeBezier) == 4 {
		b := c.FadeBezier
		return utils.CubicBezier(b[0], b[1], b[2], b[3]), nil
	}
	return utils.EasingByName(c.FadeCurve)
}

// MotionEasing 矩形插值曲线
func (c *AnimationConfig) MotionEasing() (utils.Easing, error) {
	return utils.EasingByName(c.MotionCurve)
}

// parseHexColor 解析 "#RRGGBB" 或 "#RRGGBBAA"
func parseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("颜色格式应为 #RRGGBB: %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("颜色格式应为 #RRGGBB: %q", s)
	}
	if len(hex) == 6 {
		return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
