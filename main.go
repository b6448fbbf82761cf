package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/swipepip/pkg/app"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用调试日志")
	configPath := flag.String("config", "", "动画配置文件（YAML），为空时使用内置配置")
	flag.Parse()

	a, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		AppName:    "swipepip",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}

	w, h := a.WindowSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Swipe to PiP")

	if err := ebiten.RunGame(a); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
