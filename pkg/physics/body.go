package physics

// BodyType 刚体类型
type BodyType int

const (
	// BodyStatic 静态刚体（地面、平台），不受力也不移动
	BodyStatic BodyType = iota
	// BodyDynamic 动态刚体，受重力和冲量影响
	BodyDynamic
	// BodyKinematic 运动学刚体，按速度移动但不受力（子弹）
	BodyKinematic
)

// BodyDef 刚体创建参数
type BodyDef struct {
	Type         BodyType
	Position     Vec2
	Mass         float64 // 质量，动态刚体必须大于 0，否则按 1 处理
	GravityScale float64 // 重力缩放，0 表示不受重力
	UserData     any     // 刚体所有者（如单位），命中检测时用于反查
}

// Body 刚体
type Body struct {
	typ          BodyType
	position     Vec2
	velocity     Vec2
	mass         float64
	gravityScale float64
	fixtures     []*Fixture
	sensors      []*Sensor
	world        *World

	// UserData 刚体所有者
	UserData any
}

// Type 刚体类型
func (b *Body) Type() BodyType { return b.typ }

// Position 世界坐标位置
func (b *Body) Position() Vec2 { return b.position }

// SetPosition 设置位置
func (b *Body) SetPosition(p Vec2) { b.position = p }

// Transform 返回刚体变换
func (b *Body) Transform() Transform { return Transform{P: b.position} }

// Velocity 线速度
func (b *Body) Velocity() Vec2 { return b.velocity }

// SetVelocity 设置线速度
func (b *Body) SetVelocity(v Vec2) { b.velocity = v }

// SetVelocityX 设置水平速度
func (b *Body) SetVelocityX(x float64) { b.velocity.X = x }

// SetVelocityY 设置垂直速度
func (b *Body) SetVelocityY(y float64) { b.velocity.Y = y }

// Mass 质量，静态刚体返回 0
func (b *Body) Mass() float64 {
	if b.typ == BodyStatic {
		return 0
	}
	return b.mass
}

// World 所属物理世界
func (b *Body) World() *World { return b.world }

// Fixtures 返回刚体的所有夹具（按附加顺序）
func (b *Body) Fixtures() []*Fixture { return b.fixtures }

// Sensors 返回刚体的所有传感器
func (b *Body) Sensors() []*Sensor { return b.sensors }

// AttachFixture 附加一个实体夹具
func (b *Body) AttachFixture(shape *Polygon) *Fixture {
	f := &Fixture{shape: shape, body: b}
	b.fixtures = append(b.fixtures, f)
	return f
}

// AttachSensor 附加一个传感器
//
// 参数:
//   - tag: 传感器标签，用于区分同一刚体上的多个传感器
//   - shape: 传感器形状（局部坐标）
func (b *Body) AttachSensor(tag int, shape *Polygon) *Sensor {
	f := &Fixture{shape: shape, sensor: true, body: b}
	b.fixtures = append(b.fixtures, f)
	s := &Sensor{tag: tag, fixture: f, enabled: true}
	b.sensors = append(b.sensors, s)
	return s
}

// Sensor 按标签查找传感器
func (b *Body) Sensor(tag int) *Sensor {
	for _, s := range b.sensors {
		if s.tag == tag {
			return s
		}
	}
	return nil
}

// ApplyLinearImpulse 在世界坐标点 point 施加冲量
// 刚体不旋转，作用点只影响语义不影响结果；静态和运动学刚体忽略冲量
func (b *Body) ApplyLinearImpulse(impulse, point Vec2) {
	if b.typ != BodyDynamic || b.mass <= 0 {
		return
	}
	b.velocity = b.velocity.Add(impulse.Mul(1 / b.mass))
}

// solidAABB 返回所有非传感器夹具的合并包围盒
func (b *Body) solidAABB() (AABB, bool) {
	var box AABB
	found := false
	for _, f := range b.fixtures {
		if f.sensor {
			continue
		}
		fb := f.AABB()
		if !found {
			box = fb
			found = true
			continue
		}
		if fb.Min.X < box.Min.X {
			box.Min.X = fb.Min.X
		}
		if fb.Min.Y < box.Min.Y {
			box.Min.Y = fb.Min.Y
		}
		if fb.Max.X > box.Max.X {
			box.Max.X = fb.Max.X
		}
		if fb.Max.Y > box.Max.Y {
			box.Max.Y = fb.Max.Y
		}
	}
	return box, found
}
