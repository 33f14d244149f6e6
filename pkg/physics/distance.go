package physics

import "math"

// DistanceOutput 最近点查询结果
type DistanceOutput struct {
	PointA   Vec2    // 形状 A 上的最近点（世界坐标）
	PointB   Vec2    // 形状 B 上的最近点（世界坐标）
	Distance float64 // 两点距离，重叠时为 0
}

// Distance 计算两个凸多边形之间的最近点
//
// 不相交时，最近点对一定出现在某个顶点与对方某条边之间，逐一比较即可。
// 相交时距离为 0，两个最近点取为重叠区域包围盒的中心。
//
// 参数:
//   - shapeA, xfA: 形状 A 及其变换
//   - shapeB, xfB: 形状 B 及其变换
func Distance(shapeA *Polygon, xfA Transform, shapeB *Polygon, xfB Transform) DistanceOutput {
	va := shapeA.WorldVertices(xfA)
	vb := shapeB.WorldVertices(xfB)
	if len(va) == 0 || len(vb) == 0 {
		return DistanceOutput{PointA: xfA.P, PointB: xfB.P, Distance: xfB.P.Sub(xfA.P).Length()}
	}

	if polygonsOverlap(va, vb) {
		p := overlapCenter(shapeA.ComputeAABB(xfA), shapeB.ComputeAABB(xfB))
		return DistanceOutput{PointA: p, PointB: p}
	}

	best := math.Inf(1)
	var out DistanceOutput
	for _, a := range va {
		for i := range vb {
			q := closestOnSegment(a, vb[i], vb[(i+1)%len(vb)])
			if d := a.Sub(q).LengthSquared(); d < best {
				best = d
				out.PointA, out.PointB = a, q
			}
		}
	}
	for _, b := range vb {
		for i := range va {
			q := closestOnSegment(b, va[i], va[(i+1)%len(va)])
			if d := b.Sub(q).LengthSquared(); d < best {
				best = d
				out.PointA, out.PointB = q, b
			}
		}
	}
	out.Distance = math.Sqrt(best)
	return out
}

// closestOnSegment 线段 ab 上离 p 最近的点
func closestOnSegment(p, a, b Vec2) Vec2 {
	ab := b.Sub(a)
	lenSq := ab.LengthSquared()
	if lenSq == 0 {
		return a
	}
	t := p.Sub(a).Dot(ab) / lenSq
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return a.Add(ab.Mul(t))
}

// polygonsOverlap 分离轴检测，边界接触视为重叠
func polygonsOverlap(a, b []Vec2) bool {
	return !hasSeparatingAxis(a, b) && !hasSeparatingAxis(b, a)
}

func hasSeparatingAxis(edges, other []Vec2) bool {
	n := len(edges)
	if n < 2 {
		return false
	}
	for i := 0; i < n; i++ {
		e := edges[(i+1)%n].Sub(edges[i])
		axis := Vec2{-e.Y, e.X}
		if axis.LengthSquared() == 0 {
			continue
		}
		minA, maxA := project(edges, axis)
		minB, maxB := project(other, axis)
		if maxA < minB || maxB < minA {
			return true
		}
	}
	return false
}

func project(vs []Vec2, axis Vec2) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range vs {
		d := v.Dot(axis)
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return lo, hi
}

func overlapCenter(a, b AABB) Vec2 {
	box := AABB{
		Min: Vec2{math.Max(a.Min.X, b.Min.X), math.Max(a.Min.Y, b.Min.Y)},
		Max: Vec2{math.Min(a.Max.X, b.Max.X), math.Min(a.Max.Y, b.Max.Y)},
	}
	return box.Center()
}
