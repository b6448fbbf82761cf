//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包，仅在使用 -tags mobile 构建时编译。
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.swipepip -o build/android/swipepip.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/SwipePip.xcframework -v ./mobile
package mobile

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/swipepip/pkg/app"
)

func init() {
	a, err := app.NewApp(app.Config{
		Verbose: true,
		AppName: "swipepip",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}

	mobile.SetGame(a)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
