// Package app 提供 PiP 演示程序的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	_ "embed"
	"fmt"
	"image/color"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/swipepip/internal/logger"
	"github.com/decker502/swipepip/pkg/anim"
	"github.com/decker502/swipepip/pkg/config"
	"github.com/decker502/swipepip/pkg/pip"
	"github.com/decker502/swipepip/pkg/surface"
)

//go:embed default_config.yaml
var defaultConfigYAML []byte

// holdTicks 每个场景结束后停留的帧数
const holdTicks = 45

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用调试日志
	Verbose bool
	// ConfigPath 动画配置文件，为空时使用内置默认配置
	ConfigPath string
	// AppName gdata 存储名，为空时不持久化
	AppName string
	// LogOutput 日志输出，nil 时为 stderr
	LogOutput io.Writer
}

// App 循环播放各个 PiP 场景，实现 ebiten.Game 接口
//
// 按键：
//   - Space: 取消当前动画
//   - →: 跳到下一个场景
//   - ↑/↓: 调整动画时长并保存
//   - F11: 切换全屏
type App struct {
	cfg      *config.AnimationConfig
	settings *config.SettingsStore
	log      *log.Logger

	session    *surface.Session
	compositor *surface.Compositor

	scenes []scenario
	index  int

	engine *pip.Engine
	leash  *surface.Control
	driver *anim.RectAnimator
	hold   int

	pendingWindowSizeReset   bool
	windowSizeResetCountdown int
}

// NewApp 创建演示程序并启动第一个场景
func NewApp(cfg Config) (*App, error) {
	base, err := loadBaseConfig(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}

	out := cfg.LogOutput
	if out == nil {
		out = os.Stderr
	}
	level, err := logger.ParseLevel(base.LogLevel)
	if err != nil {
		return nil, err
	}
	if cfg.Verbose {
		level = log.DebugLevel
	}
	l := logger.New(out, level, "SwipePipToHome")

	// 存储不可用时降级为只在内存中保存
	var settings *config.SettingsStore
	if cfg.AppName == "" {
		settings = config.NewSettingsStore(nil, base, l.WithPrefix("Settings"))
	} else {
		m, err := config.OpenGdata(cfg.AppName)
		if err != nil {
			l.Warnf("[App] Failed to open storage: %v", err)
		}
		settings = config.NewSettingsStore(m, base, l.WithPrefix("Settings"))
	}

	a := &App{
		cfg:        settings.Config(),
		settings:   settings,
		log:        l,
		session:    surface.NewSession(l.WithPrefix("Surface")),
		compositor: surface.NewCompositor(),
	}
	a.scenes = scenarios(a.cfg.Display)
	if err := a.startScene(0); err != nil {
		return nil, err
	}
	return a, nil
}

func loadBaseConfig(path string) (*config.AnimationConfig, error) {
	if path != "" {
		return config.LoadAnimationConfig(path)
	}
	cfg, err := config.ParseAnimationConfig(defaultConfigYAML)
	if err != nil {
		return nil, fmt.Errorf("内置配置无效: %w", err)
	}
	return cfg, nil
}

// startScene 释放上一个场景的 leash 并启动新场景
//
// 上一个 Engine 必须已经结束。
func (a *App) startScene(index int) error {
	if a.leash != nil {
		a.session.Release(a.leash)
		a.leash = nil
	}

	a.index = index % len(a.scenes)
	s := a.scenes[a.index]
	e, leash, err := buildScenario(s, a.session, a.cfg, a.log)
	if err != nil {
		return err
	}
	leash.SetContent(appContent(s))

	motion, err := a.cfg.MotionEasing()
	if err != nil {
		return err
	}

	a.engine, a.leash = e, leash
	a.driver = pip.NewDriver(e, a.cfg.Duration(), motion)
	a.hold = 0
	a.driver.Start()
	a.log.Infof("[App] Scene %q started (%s)", s.name, a.cfg.Duration())
	return nil
}

// Update 推进动画，每个 tick 调用一次
func (a *App) Update() error {
	a.handleWindow()
	a.handleInput()

	if a.driver.Running() {
		a.driver.Update(time.Second / time.Duration(ebiten.TPS()))
		return nil
	}

	a.hold++
	if a.hold >= holdTicks {
		return a.startScene(a.index + 1)
	}
	return nil
}

// handleWindow F11 切换全屏
func (a *App) handleWindow() {
	// 退出全屏后需要等待几帧才能正确设置窗口大小
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.cfg.Display.Width, a.cfg.Display.Height)
			a.pendingWindowSizeReset = false
		}
	}

	if !inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		return
	}
	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		return
	}
	ebiten.SetFullscreen(true)
}

func (a *App) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		a.driver.Cancel()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		a.driver.Cancel()
		a.hold = holdTicks
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		a.adjustDuration(50)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		a.adjustDuration(-50)
	}
}

// adjustDuration 调整动画时长并保存，下一个场景生效
func (a *App) adjustDuration(deltaMs int) {
	next := *a.cfg
	next.DurationMs = min(max(next.DurationMs+deltaMs, 50), 5000)
	if err := a.settings.Save(&next); err != nil {
		a.log.Warnf("[App] Failed to save settings: %v", err)
		return
	}
	a.cfg = a.settings.Config()
}

// Draw 合成图层树，每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 0x3c, G: 0x40, B: 0x43, A: 0xff})
	a.compositor.Draw(screen, a.leash)

	info := fmt.Sprintf("%s  %s  progress=%.2f  duration=%s",
		a.scenes[a.index].name, a.engine.State(), a.driver.Progress(), a.cfg.Duration())
	if c := a.engine.ContentOverlay(); c != nil {
		info += fmt.Sprintf("  overlay=%.2f", c.Alpha())
	}
	ebitenutil.DebugPrintAt(screen, info, 10, 10)
}

// DrawFinalScreen 全屏时用黑色 letterbox，并用线性滤波缩放
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 逻辑屏幕尺寸，独立于实际窗口大小
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.cfg.Display.Width, a.cfg.Display.Height
}

// WindowSize 窗口初始尺寸
func (a *App) WindowSize() (int, int) {
	return a.cfg.Display.Width, a.cfg.Display.Height
}
