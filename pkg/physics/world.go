package physics

import "math"

// DefaultGravity 默认重力加速度（像素/秒²，Y 轴向上）
var DefaultGravity = Vec2{0, -980}

// World 物理世界
//
// 每个 Step:
//  1. 动态刚体受重力积分速度，所有非静态刚体按速度积分位置
//  2. 动态刚体与静态刚体做包围盒穿透修正（沿最小穿透轴推出并清零该轴速度）
//  3. 刷新所有传感器的感知结果
//
// 动态刚体之间不做碰撞响应，单位可以互相穿过，交互通过传感器完成。
type World struct {
	gravity Vec2
	bodies  []*Body
}

// NewWorld 创建物理世界
func NewWorld(gravity Vec2) *World {
	return &World{gravity: gravity}
}

// Gravity 重力
func (w *World) Gravity() Vec2 { return w.gravity }

// Bodies 所有刚体（按创建顺序）
func (w *World) Bodies() []*Body { return w.bodies }

// CreateBody 创建刚体并加入世界
func (w *World) CreateBody(def BodyDef) *Body {
	mass := def.Mass
	if def.Type == BodyDynamic && mass <= 0 {
		mass = 1
	}
	b := &Body{
		typ:          def.Type,
		position:     def.Position,
		mass:         mass,
		gravityScale: def.GravityScale,
		world:        w,
		UserData:     def.UserData,
	}
	w.bodies = append(w.bodies, b)
	return b
}

// DestroyBody 从世界中移除刚体，并从其他传感器的感知结果中剔除
func (w *World) DestroyBody(b *Body) {
	for i, other := range w.bodies {
		if other == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
	for _, other := range w.bodies {
		for _, s := range other.sensors {
			for i, sb := range s.sensed {
				if sb == b {
					s.sensed = append(s.sensed[:i], s.sensed[i+1:]...)
					break
				}
			}
		}
	}
	b.world = nil
}

// Step 推进物理世界 dt 秒
func (w *World) Step(dt float64) {
	for _, b := range w.bodies {
		switch b.typ {
		case BodyDynamic:
			b.velocity = b.velocity.Add(w.gravity.Mul(b.gravityScale * dt))
			b.position = b.position.Add(b.velocity.Mul(dt))
		case BodyKinematic:
			b.position = b.position.Add(b.velocity.Mul(dt))
		}
	}
	for _, b := range w.bodies {
		if b.typ == BodyDynamic {
			w.resolve(b)
		}
	}
	w.RefreshSensors()
}

// RefreshSensors 立即刷新所有传感器（用于刚创建场景后的首帧查询）
func (w *World) RefreshSensors() {
	for _, b := range w.bodies {
		for _, s := range b.sensors {
			s.refresh(w.bodies)
		}
	}
}

// resolve 将动态刚体推出静态刚体
func (w *World) resolve(b *Body) {
	for _, other := range w.bodies {
		if other.typ != BodyStatic {
			continue
		}
		box, ok := b.solidAABB()
		if !ok {
			return
		}
		obstacle, ok := other.solidAABB()
		if !ok || !box.Overlaps(obstacle) {
			continue
		}

		overlapX := math.Min(box.Max.X, obstacle.Max.X) - math.Max(box.Min.X, obstacle.Min.X)
		overlapY := math.Min(box.Max.Y, obstacle.Max.Y) - math.Max(box.Min.Y, obstacle.Min.Y)
		if overlapX <= 0 || overlapY <= 0 {
			continue
		}

		center, obstacleCenter := box.Center(), obstacle.Center()
		if overlapY <= overlapX {
			if center.Y >= obstacleCenter.Y {
				b.position.Y += overlapY
				if b.velocity.Y < 0 {
					b.velocity.Y = 0
				}
			} else {
				b.position.Y -= overlapY
				if b.velocity.Y > 0 {
					b.velocity.Y = 0
				}
			}
		} else {
			if center.X >= obstacleCenter.X {
				b.position.X += overlapX
				if b.velocity.X < 0 {
					b.velocity.X = 0
				}
			} else {
				b.position.X -= overlapX
				if b.velocity.X > 0 {
					b.velocity.X = 0
				}
			}
		}
	}
}
