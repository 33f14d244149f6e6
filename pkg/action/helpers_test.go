package action

import (
	"github.com/decker502/platformer/pkg/config"
	"github.com/decker502/platformer/pkg/model"
	"github.com/decker502/platformer/pkg/physics"
)

const (
	sensorGround = 1
	sensorAttack = 2
)

// testUnit 测试用单位，物理状态来自真实的 physics.Body
type testUnit struct {
	name      string
	def       *config.UnitDef
	model     *model.Model
	body      *physics.Body
	ground    *physics.Sensor
	attack    *physics.Sensor
	onSurface bool
	faceRight bool
	group     int
	stats     Stats
	props     map[string]float64
	actions   map[string]Action
}

func newTestDef(name string) *config.UnitDef {
	return &config.UnitDef{
		Name:         name,
		Width:        20,
		Height:       40,
		Mass:         1,
		Move:         100,
		MoveSpeed:    1,
		Jump:         300,
		MaxHP:        100,
		Sensitivity:  1,
		AttackBase:   10,
		AttackFactor: 1,
		AttackSpeed:  1,
		AttackPower:  physics.Vec2{X: 50, Y: 80},
		TargetAllow:  []string{"enemy"},
		Model: config.ModelDef{
			Name:      name,
			FaceRight: true,
			Animations: map[string]float64{
				config.AnimationAttack: 10,
				config.AnimationHit:    0.5,
				config.AnimationFall:   0.5,
			},
			KeyPoints: map[string]physics.Vec2{
				config.KeyPointAttack: {X: 15, Y: 5},
			},
		},
	}
}

// newTestUnit 在世界中创建一个单位，附带地面和攻击传感器
func newTestUnit(world *physics.World, def *config.UnitDef, pos physics.Vec2, group int) *testUnit {
	u := &testUnit{
		name:      def.Name,
		def:       def,
		model:     model.New(&def.Model),
		onSurface: true,
		faceRight: true,
		group:     group,
		stats:     StatsFromDef(def),
		props:     map[string]float64{"hp": def.MaxHP},
		actions:   make(map[string]Action),
	}
	u.body = world.CreateBody(physics.BodyDef{
		Type:     physics.BodyDynamic,
		Position: pos,
		Mass:     def.Mass,
		UserData: u,
	})
	u.body.AttachFixture(physics.NewBox(def.Width/2, def.Height/2))
	u.ground = u.body.AttachSensor(sensorGround, physics.NewBoxAt(def.Width/2-1, 1, physics.Vec2{Y: -def.Height / 2}))
	u.attack = u.body.AttachSensor(sensorAttack, physics.NewBox(50, def.Height/2))
	return u
}

func (u *testUnit) Name() string                   { return u.name }
func (u *testUnit) Def() *config.UnitDef           { return u.def }
func (u *testUnit) Model() Model                   { return u.model }
func (u *testUnit) Body() *physics.Body            { return u.body }
func (u *testUnit) GroundSensor() *physics.Sensor  { return u.ground }
func (u *testUnit) AttackSensor() *physics.Sensor  { return u.attack }
func (u *testUnit) IsOnSurface() bool              { return u.onSurface }
func (u *testUnit) IsFaceRight() bool              { return u.faceRight }
func (u *testUnit) SetFaceRight(faceRight bool)    { u.faceRight = faceRight }
func (u *testUnit) Position() physics.Vec2         { return u.body.Position() }
func (u *testUnit) Velocity() physics.Vec2         { return u.body.Velocity() }
func (u *testUnit) SetVelocityX(x float64)         { u.body.SetVelocityX(x) }
func (u *testUnit) SetVelocityY(y float64)         { u.body.SetVelocityY(y) }
func (u *testUnit) Width() float64                 { return u.def.Width }
func (u *testUnit) Group() int                     { return u.group }
func (u *testUnit) Stats() *Stats                  { return &u.stats }
func (u *testUnit) Properties() map[string]float64 { return u.props }
func (u *testUnit) Action(name string) Action      { return u.actions[name] }

// countingAI 记录条件反射次数
type countingAI struct {
	calls int
}

func (a *countingAI) ConditionedReflex(Unit) { a.calls++ }

// recordingAudio 记录播放的音效
type recordingAudio struct {
	played []string
}

func (a *recordingAudio) PlaySound(id string) bool {
	a.played = append(a.played, id)
	return true
}

type spawnedEffect struct {
	name  string
	local physics.Vec2
}

// recordingEffects 记录生成的特效
type recordingEffects struct {
	spawned []spawnedEffect
}

func (e *recordingEffects) SpawnEffect(name string, _ Unit, local physics.Vec2) {
	e.spawned = append(e.spawned, spawnedEffect{name: name, local: local})
}

// timeline 按发生顺序记录攻击音效和特效
type timeline struct {
	events []string
}

func (tl *timeline) PlaySound(id string) bool {
	tl.events = append(tl.events, "sound:"+id)
	return true
}

func (tl *timeline) SpawnEffect(name string, _ Unit, _ physics.Vec2) {
	tl.events = append(tl.events, "effect:"+name)
}

// observerCounter 统计观察者调用次数
type observerCounter struct {
	starts, ends int
}

func (c *observerCounter) observe(a Action) {
	a.Observe(func(Action) { c.starts++ }, func(Action) { c.ends++ })
}
