// Package utils 提供动画计算使用的通用工具函数
package utils

import (
	"fmt"
	"math"
)

// Easing Functions (缓动函数)
//
// 缓动函数用于控制动画的速度曲线，使动画看起来更自然。
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]，
// 且满足 f(0) = 0、f(1) = 1。
//
// 参考：https://easings.net/

// Easing 缓动函数类型
type Easing func(t float64) float64

// EaseLinear 线性缓动（无缓动）
// 返回值 = 输入值（匀速运动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInOutCubic 三次方缓入缓出
// 特点：开始慢，中间快，结束慢
// 公式：
//
//	t < 0.5: f(t) = 4t³
//	t >= 0.5: f(t) = 1 - (-2t + 2)³ / 2
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// CubicBezier 根据三次贝塞尔曲线生成缓动函数
//
// 曲线固定起点 (0,0) 与终点 (1,1)，控制点为 (x1,y1)、(x2,y2)。
// 对给定的 x 先用牛顿迭代求参数 t，不收敛时退回二分法，再由 t 求 y。
// x1、x2 必须位于 [0,1]，否则曲线在 x 方向不单调。
func CubicBezier(x1, y1, x2, y2 float64) Easing {
	sample := func(t, p1, p2 float64) float64 {
		d := 1 - t
		return 3*d*d*t*p1 + 3*d*t*t*p2 + t*t*t
	}
	slope := func(t, p1, p2 float64) float64 {
		d := 1 - t
		return 3*d*d*p1 + 6*d*t*(p2-p1) + 3*t*t*(1-p2)
	}

	return func(x float64) float64 {
		if x <= 0 {
			return 0
		}
		if x >= 1 {
			return 1
		}

		// 牛顿迭代
		t := x
		for i := 0; i < 8; i++ {
			dx := sample(t, x1, x2) - x
			if math.Abs(dx) < 1e-7 {
				return sample(t, y1, y2)
			}
			d := slope(t, x1, x2)
			if math.Abs(d) < 1e-6 {
				break
			}
			t = Clamp01(t - dx/d)
		}

		// 二分法兜底
		lo, hi := 0.0, 1.0
		t = x
		for i := 0; i < 64; i++ {
			cx := sample(t, x1, x2)
			if math.Abs(cx-x) < 1e-7 {
				break
			}
			if cx < x {
				lo = t
			} else {
				hi = t
			}
			t = (lo + hi) / 2
		}
		return sample(t, y1, y2)
	}
}

// FastOutSlowIn 标准"快出慢入"曲线 cubic-bezier(0.4, 0, 0.2, 1)
// 用于 PiP 内容遮罩层的淡入
var FastOutSlowIn = CubicBezier(0.4, 0, 0.2, 1)

// EasingByName 根据配置名称获取缓动函数
//
// 支持 "linear"、"ease_out_cubic"、"ease_in_out_cubic"、"fast_out_slow_in"。
func EasingByName(name string) (Easing, error) {
	switch name {
	case "linear":
		return EaseLinear, nil
	case "ease_out_cubic":
		return EaseOutCubic, nil
	case "ease_in_out_cubic":
		return EaseInOutCubic, nil
	case "fast_out_slow_in", "":
		return FastOutSlowIn, nil
	default:
		return nil, fmt.Errorf("unknown easing %q", name)
	}
}

// Lerp 线性插值
// 在 a 和 b 之间根据 t 插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 将值限制在 [0, 1]
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// MapToRange 将 v 从 [fromMin, fromMax] 映射到 [toMin, toMax]
//
// v 先归一化到 [0,1]（超出部分不截断），经 ease 处理后再映射到目标区间。
// ease 为 nil 时按线性处理。
func MapToRange(v, fromMin, fromMax, toMin, toMax float64, ease Easing) float64 {
	if fromMin == fromMax {
		return toMax
	}
	t := (v - fromMin) / (fromMax - fromMin)
	if ease != nil {
		t = ease(t)
	}
	return Lerp(toMin, toMax, t)
}
