package utils

import (
	"math"
	"testing"
)

// TestEaseOutQuad 测试二次方缓出函数
func TestEaseOutQuad(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"中点", 0.5, 0.75},
		{"终点", 1.0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EaseOutQuad(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("EaseOutQuad(%v) = %v, 期望 %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(10, 20, 0.25); got != 12.5 {
		t.Errorf("Lerp(10, 20, 0.25) = %v, 期望 12.5", got)
	}
}

// TestClamp 测试范围限制
func TestClamp(t *testing.T) {
	tests := []struct {
		name          string
		v, lo, hi float64
		expected  float64
	}{
		{"范围内", 5, 0, 10, 5},
		{"低于下限", -3, 0, 10, 0},
		{"高于上限", 12, 0, 10, 10},
		{"范围倒置", 5, 10, 0, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.expected {
				t.Errorf("Clamp(%v, %v, %v) = %v, 期望 %v", tt.v, tt.lo, tt.hi, got, tt.expected)
			}
		})
	}
}

// TestApproach 测试逐步逼近
func TestApproach(t *testing.T) {
	tests := []struct {
		name                  string
		current, target, step float64
		expected              float64
	}{
		{"向右", 0, 10, 3, 3},
		{"向左", 10, 0, 3, 7},
		{"一步到达", 9, 10, 3, 10},
		{"步长为零", 0, 10, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Approach(tt.current, tt.target, tt.step); got != tt.expected {
				t.Errorf("Approach() = %v, 期望 %v", got, tt.expected)
			}
		})
	}
}
