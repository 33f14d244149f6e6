package physics

// Sensor 传感器：记录当前与传感器形状重叠的刚体
// 感知结果在每次 World.Step 结束时刷新
type Sensor struct {
	tag     int
	fixture *Fixture
	enabled bool
	sensed  []*Body

	// Filter 可选过滤函数，返回 false 的刚体不会被感知
	Filter func(*Body) bool
}

// Tag 传感器标签
func (s *Sensor) Tag() int { return s.tag }

// Fixture 传感器夹具
func (s *Sensor) Fixture() *Fixture { return s.fixture }

// SetEnabled 启用或禁用传感器，禁用时清空感知结果
func (s *Sensor) SetEnabled(enabled bool) {
	s.enabled = enabled
	if !enabled {
		s.sensed = s.sensed[:0]
	}
}

// IsEnabled 是否启用
func (s *Sensor) IsEnabled() bool { return s.enabled }

// SensedBodies 当前感知到的刚体（按刚体创建顺序）
// 返回的切片在下一次 Step 前有效
func (s *Sensor) SensedBodies() []*Body { return s.sensed }

// IsSensed 是否感知到任何刚体
func (s *Sensor) IsSensed() bool { return len(s.sensed) > 0 }

// Contains 是否感知到指定刚体
func (s *Sensor) Contains(b *Body) bool {
	for _, sb := range s.sensed {
		if sb == b {
			return true
		}
	}
	return false
}

// refresh 重新计算感知结果
func (s *Sensor) refresh(bodies []*Body) {
	s.sensed = s.sensed[:0]
	if !s.enabled {
		return
	}
	owner := s.fixture.body
	box := s.fixture.AABB()
	for _, b := range bodies {
		if b == owner {
			continue
		}
		other, ok := b.solidAABB()
		if !ok || !box.Overlaps(other) {
			continue
		}
		if s.Filter != nil && !s.Filter(b) {
			continue
		}
		s.sensed = append(s.sensed, b)
	}
}
