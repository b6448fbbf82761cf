// verify_pip 逐帧打印 PiP 动画的变换结果，用于核对几何计算
//
// 用法:
//
//	go run ./cmd/verify_pip --app 0,0,1000,2000 --hint 0,500,1000,1500 --dest 600,1600,1000,2000
//	go run ./cmd/verify_pip --app 0,0,2000,1000 --dest 1600,600,2000,1000 --rotation 90 --display 2000x1000
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/decker502/swipepip/internal/logger"
	"github.com/decker502/swipepip/pkg/config"
	"github.com/decker502/swipepip/pkg/geom"
	"github.com/decker502/swipepip/pkg/pip"
	"github.com/decker502/swipepip/pkg/rotation"
	"github.com/decker502/swipepip/pkg/surface"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type verifyOptions struct {
	configPath string
	component  string
	app        string
	start      string
	dest       string
	hint       string
	display    string
	rotation   int
	steps      int
	verbose    bool
}

func newRootCmd() *cobra.Command {
	var o verifyOptions

	cmd := &cobra.Command{
		Use:          "verify_pip",
		Short:        "逐帧打印滑动进入 PiP 的变换",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd.Context(), cmd.OutOrStdout(), o)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.configPath, "config", "c", "", "动画配置文件（YAML），为空时使用默认配置")
	f.StringVar(&o.component, "component", "com.example.video/.PlayerActivity", "应用组件名 pkg/cls")
	f.StringVar(&o.app, "app", "0,0,1000,2000", "应用边界 left,top,right,bottom")
	f.StringVar(&o.start, "start", "", "起始边界，默认与应用边界相同")
	f.StringVar(&o.dest, "dest", "600,1600,1000,2000", "PiP 目标边界")
	f.StringVar(&o.hint, "hint", "", "source rect hint，为空表示没有 hint")
	f.StringVar(&o.display, "display", "", "旋转模拟的显示尺寸 WxH，默认取应用边界尺寸")
	f.IntVarP(&o.rotation, "rotation", "r", 0, "起始旋转角度 (0/90/180/270)，180 按未旋转处理")
	f.IntVarP(&o.steps, "steps", "n", 10, "采样帧数")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "输出调试日志")

	return cmd
}

func runVerify(ctx context.Context, out io.Writer, o verifyOptions) error {
	cfg := config.DefaultAnimationConfig()
	if o.configPath != "" {
		loaded, err := config.LoadAnimationConfig(o.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if o.verbose {
		level = log.DebugLevel
	}
	l := logger.New(os.Stderr, level, "SwipePipToHome")

	if o.steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", o.steps)
	}

	component, err := pip.ParseComponentName(o.component)
	if err != nil {
		return fmt.Errorf("--component: %w", err)
	}
	app, err := parseRect(o.app)
	if err != nil {
		return fmt.Errorf("--app: %w", err)
	}
	dest, err := parseRect(o.dest)
	if err != nil {
		return fmt.Errorf("--dest: %w", err)
	}
	start := app
	if o.start != "" {
		if start, err = parseRect(o.start); err != nil {
			return fmt.Errorf("--start: %w", err)
		}
	}
	var hint *geom.Rect
	if o.hint != "" {
		h, err := parseRect(o.hint)
		if err != nil {
			return fmt.Errorf("--hint: %w", err)
		}
		hint = &h
	}

	fade, err := cfg.FadeEasing()
	if err != nil {
		return err
	}
	bg, err := cfg.Overlay()
	if err != nil {
		return err
	}

	session := surface.NewSession(l.WithPrefix("Surface"))
	leash := session.NewBufferLayer("PipLeash", app.Width(), app.Height())
	defer session.Release(leash)

	e, err := pip.New(pip.Options{
		TaskID:            1,
		ComponentName:     component,
		Leash:             leash,
		SourceRectHint:    hint,
		AppBounds:         app,
		StartBounds:       geom.RectFFrom(start),
		DestinationBounds: dest,
		CornerRadius:      cfg.CornerRadius,
		BackgroundColor:   bg,
		Session:           session,
		FadeEasing:        fade,
		Logger:            l,
	})
	if err != nil {
		return err
	}

	if o.rotation != 0 {
		rot, err := rotation.FromDegrees(o.rotation)
		if err != nil {
			return err
		}
		sim, err := displaySimulator(o.display, app, rot)
		if err != nil {
			return err
		}
		// 180° 等方向 Engine 只记录日志，按未旋转继续
		if err := e.SetFromRotation(sim, rot); err != nil {
			if !errors.Is(err, pip.ErrUnsupportedRotation) {
				return err
			}
			fmt.Fprintf(out, "忽略旋转: %s 不受支持\n", rot)
		}
	}

	fmt.Fprintf(out, "组件: %s\n", e.ComponentName())
	fmt.Fprintf(out, "起始: %s  目标: %s  动画目标: %s\n", e.StartBounds(), e.DestinationBounds(), e.AnimationTarget())
	if insets := e.SourceHintInsets(); insets != nil {
		fmt.Fprintf(out, "模式: 缩放+裁剪  insets: %s\n", *insets)
	} else {
		fmt.Fprintf(out, "模式: 仅缩放  (遮罩层 %s)\n", pip.ContentOverlayName)
	}
	fmt.Fprintf(out, "起始旋转: %s\n\n", e.FromRotation())

	e.Start()
	for i := 0; i <= o.steps; i++ {
		if err := ctx.Err(); err != nil {
			e.Cancel()
			e.End()
			return err
		}
		p := float64(i) / float64(o.steps)
		rect := geom.LerpRectF(e.StartBoundsF(), e.AnimationTarget(), p)
		st, _ := e.OnAnimationUpdate(p, rect)

		line := fmt.Sprintf("[%5.3f] %s  %s", p, rect.Round(), st)
		if c := e.ContentOverlay(); c != nil {
			line += fmt.Sprintf("  overlay=%.3f", c.Alpha())
		}
		fmt.Fprintln(out, line)
	}
	e.Succeed()
	e.End()

	fmt.Fprintf(out, "\n最终变换: %s\n", e.FinishTransaction())
	return nil
}

// parseRect 解析 "l,t,r,b"
func parseRect(s string) (geom.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return geom.Rect{}, fmt.Errorf("expected l,t,r,b, got %q", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return geom.Rect{}, fmt.Errorf("invalid number %q: %w", p, err)
		}
		v[i] = n
	}
	return geom.NewRect(v[0], v[1], v[2], v[3]), nil
}

// displaySimulator 根据 --display 构造旋转模拟器
func displaySimulator(display string, app geom.Rect, rot rotation.SurfaceRotation) (rotation.DisplaySimulator, error) {
	sim := rotation.DisplaySimulator{Width: float64(app.Width()), Height: float64(app.Height()), Rotation: rot}
	if display == "" {
		return sim, nil
	}
	w, h, ok := strings.Cut(display, "x")
	if !ok {
		return sim, fmt.Errorf("--display: expected WxH, got %q", display)
	}
	var err error
	if sim.Width, err = strconv.ParseFloat(w, 64); err != nil {
		return sim, fmt.Errorf("--display: %w", err)
	}
	if sim.Height, err = strconv.ParseFloat(h, 64); err != nil {
		return sim, fmt.Errorf("--display: %w", err)
	}
	return sim, nil
}
