package physics

// Polygon 凸多边形形状，顶点为局部坐标，逆时针顺序
type Polygon struct {
	Vertices []Vec2
}

// NewBox 创建以原点为中心的矩形
//
// 参数:
//   - hw: 半宽
//   - hh: 半高
func NewBox(hw, hh float64) *Polygon {
	p := &Polygon{}
	p.SetAsBox(hw, hh)
	return p
}

// NewBoxAt 创建以 center 为中心的矩形
func NewBoxAt(hw, hh float64, center Vec2) *Polygon {
	p := NewBox(hw, hh)
	for i := range p.Vertices {
		p.Vertices[i] = p.Vertices[i].Add(center)
	}
	return p
}

// SetAsBox 将多边形设置为以原点为中心的矩形
func (p *Polygon) SetAsBox(hw, hh float64) {
	p.Vertices = []Vec2{
		{-hw, -hh},
		{hw, -hh},
		{hw, hh},
		{-hw, hh},
	}
}

// WorldVertices 返回变换后的世界坐标顶点
func (p *Polygon) WorldVertices(xf Transform) []Vec2 {
	out := make([]Vec2, len(p.Vertices))
	for i, v := range p.Vertices {
		out[i] = xf.Apply(v)
	}
	return out
}

// ComputeAABB 计算变换后的包围盒
func (p *Polygon) ComputeAABB(xf Transform) AABB {
	if len(p.Vertices) == 0 {
		return AABB{Min: xf.P, Max: xf.P}
	}
	first := xf.Apply(p.Vertices[0])
	box := AABB{Min: first, Max: first}
	for _, v := range p.Vertices[1:] {
		w := xf.Apply(v)
		if w.X < box.Min.X {
			box.Min.X = w.X
		}
		if w.Y < box.Min.Y {
			box.Min.Y = w.Y
		}
		if w.X > box.Max.X {
			box.Max.X = w.X
		}
		if w.Y > box.Max.Y {
			box.Max.Y = w.Y
		}
	}
	return box
}

// Fixture 夹具：将形状附着到刚体上
// 传感器夹具只参与检测，不参与碰撞响应和命中点计算
type Fixture struct {
	shape  *Polygon
	sensor bool
	body   *Body
}

// Shape 返回夹具形状
func (f *Fixture) Shape() *Polygon { return f.shape }

// IsSensor 是否为传感器夹具
func (f *Fixture) IsSensor() bool { return f.sensor }

// Body 返回所属刚体
func (f *Fixture) Body() *Body { return f.body }

// AABB 返回夹具的世界包围盒
func (f *Fixture) AABB() AABB { return f.shape.ComputeAABB(f.body.Transform()) }
