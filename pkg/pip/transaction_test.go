package pip

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/decker502/swipepip/pkg/geom"
)

// TestTransactionHelper_Scale 拉伸到目标矩形
func TestTransactionHelper_Scale(t *testing.T) {
	h := NewTransactionHelper(8)
	st := h.Scale(geom.NewRect(0, 0, 1000, 2000), geom.NewRect(100, 200, 600, 700))

	if st.ScaleX != 0.5 || st.ScaleY != 0.25 {
		t.Errorf("Scale = (%v,%v), want (0.5,0.25)", st.ScaleX, st.ScaleY)
	}
	g := st.GeoM()
	x, y := g.Apply(1000, 2000)
	if math.Abs(x-600) > eps || math.Abs(y-700) > eps {
		t.Errorf("右下角映射到 (%v,%v), want (600,700)", x, y)
	}
}

// TestTransactionHelper_ScaleAndCrop_Landscape 横向裁剪区域按高度缩放
func TestTransactionHelper_ScaleAndCrop_Landscape(t *testing.T) {
	h := NewTransactionHelper(0)
	src := geom.NewRect(0, 0, 1000, 2000)
	insets := geom.NewRect(100, 700, 100, 700) // 裁剪后 800x600
	dst := geom.NewRect(0, 0, 400, 300)

	st := h.ScaleAndCrop(src, dst, insets)
	if math.Abs(st.ScaleX-0.5) > eps || st.ScaleX != st.ScaleY {
		t.Errorf("Scale = (%v,%v), want 等比 0.5", st.ScaleX, st.ScaleY)
	}
	if want := geom.NewRect(100, 700, 900, 1300); *st.Crop != want {
		t.Errorf("Crop = %v, want %v", *st.Crop, want)
	}
	// 裁剪区域左上角 (100,700) 落在目标左上角
	g := st.GeoM()
	x, y := g.Apply(100, 700)
	if math.Abs(x) > eps || math.Abs(y) > eps {
		t.Errorf("裁剪左上角映射到 (%v,%v), want (0,0)", x, y)
	}
}

// TestTransactionHelper_ScaleAndCropAndRotate 裁剪左上角落在锚点
func TestTransactionHelper_ScaleAndCropAndRotate(t *testing.T) {
	h := NewTransactionHelper(0)
	src := geom.NewRect(0, 0, 1000, 2000)
	insets := geom.NewRect(0, 500, 0, 500)
	dst := geom.NewRect(0, 0, 500, 500)

	for _, degree := range []float64{0, -45, -90, 90} {
		st := h.ScaleAndCropAndRotate(src, dst, insets, degree, 300, 400)
		g := st.GeoM()
		x, y := g.Apply(0, 500)
		if math.Abs(x-300) > 1e-6 || math.Abs(y-400) > 1e-6 {
			t.Errorf("degree=%v: 裁剪左上角映射到 (%v,%v), want (300,400)", degree, x, y)
		}
		if st.Rotation != degree {
			t.Errorf("Rotation = %v, want %v", st.Rotation, degree)
		}
	}
}

// TestSurfaceTransaction_String 日志格式
func TestSurfaceTransaction_String(t *testing.T) {
	st := NewTransactionHelper(0).Scale(geom.NewRect(0, 0, 10, 10), geom.NewRect(0, 0, 5, 5))
	if s := st.String(); !strings.Contains(s, "crop=none") || !strings.Contains(s, "scale=(0.5000, 0.5000)") {
		t.Errorf("String() = %q", s)
	}
}

// TestParseComponentName 组件名解析
func TestParseComponentName(t *testing.T) {
	tests := []struct {
		in      string
		want    ComponentName
		short   string
		wantErr bool
	}{
		{"com.a/.Main", ComponentName{"com.a", "com.a.Main"}, "com.a/.Main", false},
		{"com.a/org.b.Main", ComponentName{"com.a", "org.b.Main"}, "com.a/org.b.Main", false},
		{"com.a", ComponentName{}, "", true},
		{"/Main", ComponentName{}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseComponentName(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
			if got.String() != tt.short {
				t.Errorf("String() = %s, want %s", got.String(), tt.short)
			}
		})
	}
}

// TestLogJankTracker 区间开始、结束、取消
func TestLogJankTracker(t *testing.T) {
	var buf bytes.Buffer
	j := NewLogJankTracker(log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}))
	now := time.Unix(0, 0)
	j.now = func() time.Time { return now }

	j.Begin(CujAppCloseToPip)
	if !j.Active(CujAppCloseToPip) {
		t.Fatal("Begin 后应处于活动状态")
	}
	now = now.Add(250 * time.Millisecond)
	j.End(CujAppCloseToPip)
	if j.Active(CujAppCloseToPip) {
		t.Error("End 后不应处于活动状态")
	}
	if !strings.Contains(buf.String(), "250ms") {
		t.Errorf("期望输出耗时, got %q", buf.String())
	}

	j.Begin(CujAppCloseToPip)
	j.Cancel(CujAppCloseToPip)
	if j.Active(CujAppCloseToPip) {
		t.Error("Cancel 后不应处于活动状态")
	}

	// 未开始的区间结束时不输出
	buf.Reset()
	j.End(CujAppCloseToPip)
	if buf.Len() != 0 {
		t.Errorf("未开始的区间不应输出: %q", buf.String())
	}
}
