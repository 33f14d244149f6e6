package systems

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/platformer/pkg/components"
	"github.com/decker502/platformer/pkg/config"
	"github.com/decker502/platformer/pkg/ecs"
)

// KeySource 键盘状态
type KeySource interface {
	IsKeyPressed(key ebiten.Key) bool
	IsKeyJustPressed(key ebiten.Key) bool
}

// ebitenKeys 从 ebiten 读取键盘状态
type ebitenKeys struct{}

func (ebitenKeys) IsKeyPressed(key ebiten.Key) bool     { return ebiten.IsKeyPressed(key) }
func (ebitenKeys) IsKeyJustPressed(key ebiten.Key) bool { return inpututil.IsKeyJustPressed(key) }

// NoKeys 没有任何按键按下，用于无头运行
type NoKeys struct{}

func (NoKeys) IsKeyPressed(ebiten.Key) bool     { return false }
func (NoKeys) IsKeyJustPressed(ebiten.Key) bool { return false }

// KeyBindings 玩家按键
type KeyBindings struct {
	Left, Right ebiten.Key
	Jump        ebiten.Key
	MeleeAttack ebiten.Key
	RangeAttack ebiten.Key
	// Extra 其他按键 -> 动作名，用于脚本注册的动作
	Extra map[ebiten.Key]string
}

// DefaultKeyBindings 方向键移动，上键跳跃，Z 近战，X 远程，C 冲刺
var DefaultKeyBindings = KeyBindings{
	Left:        ebiten.KeyArrowLeft,
	Right:       ebiten.KeyArrowRight,
	Jump:        ebiten.KeyArrowUp,
	MeleeAttack: ebiten.KeyZ,
	RangeAttack: ebiten.KeyX,
	Extra:       map[ebiten.Key]string{ebiten.KeyC: "dash"},
}

// InputSystem 把键盘输入转换成玩家单位的动作请求
//
// 输入只排队请求，与 AI 一样经过优先级仲裁:
//   - 按住方向键：需要时先转身，再行走
//   - 松开方向键：正在行走时取消
//   - 跳跃、近战、远程在按下的那一帧请求一次
type InputSystem struct {
	entityManager *ecs.EntityManager
	keys          KeySource
	bindings      KeyBindings
}

// NewInputSystem 创建输入系统
//
// 参数:
//   - em: 实体管理器
//   - keys: 键盘状态，为 nil 时读取 ebiten 输入
func NewInputSystem(em *ecs.EntityManager, keys KeySource) *InputSystem {
	if keys == nil {
		keys = ebitenKeys{}
	}
	return &InputSystem{
		entityManager: em,
		keys:          keys,
		bindings:      DefaultKeyBindings,
	}
}

// SetBindings 替换按键设置
func (s *InputSystem) SetBindings(bindings KeyBindings) {
	s.bindings = bindings
}

// Update 处理所有玩家单位的输入
func (s *InputSystem) Update(deltaTime float64) {
	ids := ecs.GetEntitiesWith2[*components.PlayerControlComponent, *components.UnitComponent](s.entityManager)
	for _, id := range ids {
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}
		ctrl, _ := ecs.GetComponent[*components.PlayerControlComponent](s.entityManager, id)
		unitComp, _ := ecs.GetComponent[*components.UnitComponent](s.entityManager, id)
		u := unitComp.Unit

		left := s.keys.IsKeyPressed(s.bindings.Left)
		right := s.keys.IsKeyPressed(s.bindings.Right)
		switch {
		case left != right:
			if u.IsFaceRight() != right {
				u.Queue(config.UnitActionTurn)
			}
			u.Queue(config.UnitActionWalk)
			ctrl.Walking = true
		case ctrl.Walking:
			if u.IsDoing(config.UnitActionWalk) {
				u.Queue(config.UnitActionCancel)
			}
			ctrl.Walking = false
		}

		if s.keys.IsKeyJustPressed(s.bindings.Jump) {
			u.Queue(config.UnitActionJump)
		}
		if s.keys.IsKeyJustPressed(s.bindings.MeleeAttack) {
			u.Queue(config.UnitActionMeleeAttack)
		}
		if s.keys.IsKeyJustPressed(s.bindings.RangeAttack) {
			u.Queue(config.UnitActionRangeAttack)
		}
		for key, name := range s.bindings.Extra {
			if s.keys.IsKeyJustPressed(key) && u.Action(name) != nil {
				u.Queue(name)
			}
		}
	}
}
