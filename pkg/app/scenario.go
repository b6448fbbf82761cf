package app

import (
	"fmt"
	"image"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/swipepip/pkg/config"
	"github.com/decker502/swipepip/pkg/geom"
	"github.com/decker502/swipepip/pkg/pip"
	"github.com/decker502/swipepip/pkg/rotation"
	"github.com/decker502/swipepip/pkg/surface"
)

// scenario 一种演示场景
type scenario struct {
	name string
	// app 应用边界（窗口空间）
	app geom.Rect
	// hint source rect hint，nil 表示没有
	hint *geom.Rect
	// dest PiP 目标位置（桌面空间）
	dest geom.Rect
	// from 起始旋转，Rotation0 表示不旋转
	from rotation.SurfaceRotation
}

// scenarios 按显示尺寸生成演示场景
//
// 目标窗口为 16:9，放在右下角，距边缘 20 像素。
func scenarios(display config.DisplayConfig) []scenario {
	w, h := display.Width, display.Height
	pipW := w * 2 / 5
	pipH := pipW * 9 / 16
	dest := geom.NewRect(w-20-pipW, h-20-pipH, w-20, h-20)

	videoH := w * 9 / 16
	videoTop := (h - videoH) / 3
	hint := geom.NewRect(0, videoTop, w, videoTop+videoH)

	landscape := geom.NewRect(0, 0, h, w)
	landscapeHint := landscape

	return []scenario{
		{name: "scale", app: geom.NewRect(0, 0, w, h), dest: dest},
		{name: "crop", app: geom.NewRect(0, 0, w, h), hint: &hint, dest: dest},
		{name: "rotate 90", app: landscape, hint: &landscapeHint, dest: dest, from: rotation.Rotation90},
		{name: "rotate 270", app: landscape, dest: dest, from: rotation.Rotation270},
	}
}

// buildScenario 创建 leash 和 Engine
//
// leash 的内容由调用方设置。失败时 leash 已被释放。
func buildScenario(s scenario, session *surface.Session, cfg *config.AnimationConfig, l *log.Logger) (*pip.Engine, *surface.Control, error) {
	bg, err := cfg.Overlay()
	if err != nil {
		return nil, nil, err
	}
	fade, err := cfg.FadeEasing()
	if err != nil {
		return nil, nil, err
	}

	leash := session.NewBufferLayer("PipLeash", s.app.Width(), s.app.Height())
	e, err := pip.New(pip.Options{
		TaskID:            1,
		ComponentName:     pip.ComponentName{Package: "com.example.video", Class: "com.example.video.PlayerActivity"},
		Leash:             leash,
		SourceRectHint:    s.hint,
		AppBounds:         s.app,
		StartBounds:       geom.RectFFrom(s.app),
		DestinationBounds: s.dest,
		CornerRadius:      cfg.CornerRadius,
		BackgroundColor:   bg,
		Session:           session,
		FadeEasing:        fade,
		Jank:              pip.NewLogJankTracker(l),
		Logger:            l,
	})
	if err != nil {
		session.Release(leash)
		return nil, nil, fmt.Errorf("scenario %q: %w", s.name, err)
	}

	if s.from != rotation.Rotation0 {
		sim := rotation.DisplaySimulator{
			Width:    float64(s.app.Width()),
			Height:   float64(s.app.Height()),
			Rotation: s.from,
		}
		if err := e.SetFromRotation(sim, s.from); err != nil {
			session.Release(leash)
			return nil, nil, fmt.Errorf("scenario %q: %w", s.name, err)
		}
	}
	return e, leash, nil
}

// appContent 绘制模拟应用画面：背景、标题栏、视频区域
func appContent(s scenario) *ebiten.Image {
	w, h := s.app.Width(), s.app.Height()
	img := ebiten.NewImage(w, h)
	img.Fill(color.RGBA{R: 0xf1, G: 0xf3, B: 0xf4, A: 0xff})

	fillRect(img, image.Rect(0, 0, w, h/12), color.RGBA{R: 0x1a, G: 0x73, B: 0xe8, A: 0xff})

	video := image.Rect(0, h/4, w, h/4+w*9/16)
	if s.hint != nil {
		video = image.Rect(s.hint.Left, s.hint.Top, s.hint.Right, s.hint.Bottom)
	}
	fillRect(img, video, color.RGBA{R: 0x20, G: 0x21, B: 0x24, A: 0xff})
	fillRect(img, video.Inset(video.Dy()/4), color.RGBA{R: 0xea, G: 0x43, B: 0x35, A: 0xff})
	return img
}

func fillRect(img *ebiten.Image, r image.Rectangle, c color.Color) {
	img.SubImage(r).(*ebiten.Image).Fill(c)
}
