// Package physics 提供平台游戏所需的最小 2D 物理世界
//
// 包含刚体、夹具、传感器、凸多边形形状以及最近点距离查询。
// 单位使用固定旋转，所以变换只包含平移。坐标单位为像素，Y 轴向上。
package physics

import "math"

// Vec2 二维向量
type Vec2 struct {
	X, Y float64
}

// Add 向量相加
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub 向量相减
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Mul 标量乘法
func (v Vec2) Mul(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Neg 取反
func (v Vec2) Neg() Vec2 { return Vec2{-v.X, -v.Y} }

// Dot 点积
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Cross 二维叉积（标量）
func (v Vec2) Cross(o Vec2) float64 { return v.X*o.Y - v.Y*o.X }

// LengthSquared 长度平方
func (v Vec2) LengthSquared() float64 { return v.X*v.X + v.Y*v.Y }

// Length 长度
func (v Vec2) Length() float64 { return math.Sqrt(v.LengthSquared()) }

// Transform 刚体变换（仅平移）
type Transform struct {
	P Vec2
}

// Apply 将局部坐标变换为世界坐标
func (t Transform) Apply(v Vec2) Vec2 { return v.Add(t.P) }

// AABB 轴对齐包围盒
type AABB struct {
	Min, Max Vec2
}

// Overlaps 两个包围盒是否相交（边界接触也算相交）
func (a AABB) Overlaps(b AABB) bool {
	return a.Min.X <= b.Max.X && b.Min.X <= a.Max.X &&
		a.Min.Y <= b.Max.Y && b.Min.Y <= a.Max.Y
}

// Center 包围盒中心
func (a AABB) Center() Vec2 {
	return Vec2{(a.Min.X + a.Max.X) * 0.5, (a.Min.Y + a.Max.Y) * 0.5}
}
