package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/decker502/swipepip/pkg/geom"
)

func TestParseRect(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    geom.Rect
		wantErr bool
	}{
		{"正常", "0,500,1000,1500", geom.NewRect(0, 500, 1000, 1500), false},
		{"带空格", " 1, 2 ,3,4", geom.NewRect(1, 2, 3, 4), false},
		{"数量不足", "1,2,3", geom.Rect{}, true},
		{"非数字", "a,2,3,4", geom.Rect{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRect(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRunVerify(t *testing.T) {
	tests := []struct {
		name     string
		opts     verifyOptions
		contains []string
	}{
		{
			name:     "仅缩放",
			opts:     verifyOptions{component: "com.example.video/.PlayerActivity", app: "0,0,1000,1000", dest: "800,1800,1000,2000", steps: 4},
			contains: []string{"com.example.video/.PlayerActivity", "仅缩放", "overlay=1.000", "最终变换"},
		},
		{
			name:     "缩放裁剪",
			opts:     verifyOptions{component: "a/b", app: "0,0,1000,2000", hint: "0,500,1000,1500", dest: "600,1600,1000,2000", steps: 2},
			contains: []string{"缩放+裁剪", "最终变换"},
		},
		{
			name:     "旋转",
			opts:     verifyOptions{component: "a/b", app: "0,0,1000,2000", dest: "600,1600,1000,2000", rotation: 270, steps: 2},
			contains: []string{"ROTATION_270"},
		},
		{
			name:     "不支持的旋转按未旋转继续",
			opts:     verifyOptions{component: "a/b", app: "0,0,1000,2000", dest: "600,1600,1000,2000", rotation: 180, steps: 2},
			contains: []string{"忽略旋转: ROTATION_180", "起始旋转: ROTATION_0", "最终变换"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := runVerify(context.Background(), &out, tt.opts); err != nil {
				t.Fatalf("runVerify error: %v", err)
			}
			for _, s := range tt.contains {
				if !strings.Contains(out.String(), s) {
					t.Errorf("输出缺少 %q:\n%s", s, out.String())
				}
			}
		})
	}
}

func TestRunVerify_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts verifyOptions
	}{
		{"非法角度", verifyOptions{component: "a/b", app: "0,0,1000,2000", dest: "600,1600,1000,2000", rotation: 45, steps: 2}},
		{"帧数为零", verifyOptions{component: "a/b", app: "0,0,1000,2000", dest: "600,1600,1000,2000"}},
		{"配置不存在", verifyOptions{configPath: "missing.yaml", steps: 2}},
		{"组件名无效", verifyOptions{component: "nocls", app: "0,0,1000,2000", dest: "600,1600,1000,2000", steps: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := runVerify(context.Background(), &bytes.Buffer{}, tt.opts); err == nil {
				t.Error("期望返回错误")
			}
		})
	}
}
