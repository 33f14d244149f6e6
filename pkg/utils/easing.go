package utils

import "math"

// EaseOutQuad 二次方缓出，t ∈ [0, 1]
// 开始较快，结束慢，用于镜头追赶目标
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp 将 v 限制在 [lo, hi] 内
// lo > hi 时返回 lo
func Clamp(v, lo, hi float64) float64 {
	if lo > hi {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

// Approach 从 current 向 target 移动不超过 step 的距离
func Approach(current, target, step float64) float64 {
	if step <= 0 {
		return current
	}
	if d := target - current; math.Abs(d) <= step {
		return target
	} else if d > 0 {
		return current + step
	}
	return current - step
}
