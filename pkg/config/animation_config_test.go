package config

import (
	"image/color"
	"math"
	"strings"
	"testing"
	"time"
)

// TestLoadAnimationConfig_ValidFile 测试加载有效的配置文件
func TestLoadAnimationConfig_ValidFile(t *testing.T) {
	cfg, err := LoadAnimationConfig("testdata/valid_animation.yaml")
	if err != nil {
		t.Fatalf("加载有效配置文件失败: %v", err)
	}

	if cfg.Duration() != 600*time.Millisecond {
		t.Errorf("Duration = %v, want 600ms", cfg.Duration())
	}
	if cfg.CornerRadius != 24 {
		t.Errorf("CornerRadius = %v, want 24", cfg.CornerRadius)
	}
	if cfg.Display.Width != 1080 || cfg.Display.Height != 2340 {
		t.Errorf("Display = %+v, want 1080x2340", cfg.Display)
	}

	c, err := cfg.Overlay()
	if err != nil {
		t.Fatalf("Overlay() 失败: %v", err)
	}
	if c != (color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xff}) {
		t.Errorf("Overlay = %v", c)
	}

	motion, err := cfg.MotionEasing()
	if err != nil {
		t.Fatalf("MotionEasing() 失败: %v", err)
	}
	if motion(0.3) != 0.3 {
		t.Errorf("motion_curve=linear 时 f(0.3) = %v", motion(0.3))
	}
}

// TestLoadAnimationConfig_PartialKeepsDefaults 测试未出现的字段保持默认值
func TestLoadAnimationConfig_PartialKeepsDefaults(t *testing.T) {
	cfg, err := LoadAnimationConfig("testdata/partial_animation.yaml")
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}

	def := DefaultAnimationConfig()
	if cfg.DurationMs != 250 {
		t.Errorf("DurationMs = %d, want 250", cfg.DurationMs)
	}
	if cfg.OverlayColor != def.OverlayColor || cfg.CornerRadius != def.CornerRadius {
		t.Errorf("默认值被覆盖: %+v", cfg)
	}
}

// TestLoadAnimationConfig_FileNotFound 测试加载不存在的文件
func TestLoadAnimationConfig_FileNotFound(t *testing.T) {
	if _, err := LoadAnimationConfig("nonexistent.yaml"); err == nil {
		t.Error("期望加载不存在的文件时返回错误，但得到 nil")
	}
}

// TestLoadAnimationConfig_InvalidYAML 测试加载格式错误的 YAML
func TestLoadAnimationConfig_InvalidYAML(t *testing.T) {
	if _, err := LoadAnimationConfig("testdata/invalid_yaml.yaml"); err == nil {
		t.Error("期望加载无效 YAML 时返回错误，但得到 nil")
	}
}

// TestValidateConfig 测试各字段校验
func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *AnimationConfig)
		wantErr string
	}{
		{"默认配置", func(c *AnimationConfig) {}, ""},
		{"时长为零", func(c *AnimationConfig) { c.DurationMs = 0 }, "duration_ms"},
		{"圆角为负", func(c *AnimationConfig) { c.CornerRadius = -1 }, "corner_radius"},
		{"颜色格式错误", func(c *AnimationConfig) { c.OverlayColor = "red" }, "overlay_color"},
		{"颜色非十六进制", func(c *AnimationConfig) { c.OverlayColor = "#GGGGGG" }, "overlay_color"},
		{"贝塞尔参数数量", func(c *AnimationConfig) { c.FadeBezier = []float64{0.4, 0} }, "fade_bezier"},
		{"贝塞尔 x 越界", func(c *AnimationConfig) { c.FadeBezier = []float64{1.5, 0, 0.2, 1} }, "fade_bezier"},
		{"未知淡入曲线", func(c *AnimationConfig) { c.FadeCurve = "bounce" }, "fade_curve"},
		{"未知运动曲线", func(c *AnimationConfig) { c.MotionCurve = "bounce" }, "motion_curve"},
		{"日志级别错误", func(c *AnimationConfig) { c.LogLevel = "loud" }, "log_level"},
		{"显示尺寸为零", func(c *AnimationConfig) { c.Display.Width = 0 }, "display"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultAnimationConfig()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("期望通过校验，得到错误: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, 期望包含 %q", err, tt.wantErr)
			}
		})
	}
}

// TestFadeEasing_Bezier 自定义贝塞尔覆盖曲线名称
func TestFadeEasing_Bezier(t *testing.T) {
	cfg := DefaultAnimationConfig()
	cfg.FadeCurve = "linear"
	cfg.FadeBezier = []float64{1.0 / 3, 1.0 / 3, 2.0 / 3, 2.0 / 3}

	ease, err := cfg.FadeEasing()
	if err != nil {
		t.Fatalf("FadeEasing() 失败: %v", err)
	}
	if got := ease(0.4); math.Abs(got-0.4) > 1e-5 {
		t.Errorf("ease(0.4) = %v, want 0.4", got)
	}
}

// TestParseHexColor_Alpha 测试带透明度的颜色
func TestParseHexColor_Alpha(t *testing.T) {
	c, err := parseHexColor("#11223380")
	if err != nil {
		t.Fatal(err)
	}
	if c != (color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x80}) {
		t.Errorf("color = %v", c)
	}
}
