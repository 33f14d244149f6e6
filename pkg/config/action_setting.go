package config

import (
	"fmt"
	"math"
)

// 动画名称
const (
	AnimationWalk   = "walk"
	AnimationAttack = "attack"
	AnimationIdle   = "idle"
	AnimationJump   = "jump"
	AnimationHit    = "hit"
	AnimationFall   = "fall"
)

// 单位动作名称
// 这些名称同时是 ActionRegistry 中内置动作的注册名
const (
	UnitActionWalk        = "walk"
	UnitActionTurn        = "turn"
	UnitActionMeleeAttack = "meleeAttack"
	UnitActionRangeAttack = "rangeAttack"
	UnitActionIdle        = "idle"
	UnitActionCancel      = "cancel"
	UnitActionJump        = "jump"
	UnitActionHit         = "hit"
	UnitActionFall        = "fall"
)

// SettingAttack 近战和远程攻击共用的设置键
const SettingAttack = "attack"

// 模型表情
const (
	LookNormal = "normal"
	LookFight  = "fight"
	LookSad    = "sad"
	LookFallen = "fallen"
)

// UnitDef 中关键点名称
const (
	// KeyPointAttack 攻击特效挂点
	KeyPointAttack = "attack"
)

// JumpGroundIgnoreTime 起跳后忽略地面检测的时间（秒）
// 起跳后单位不会立刻离开地面，这段时间内不判断落地
const JumpGroundIgnoreTime = 0.2

// PriorityCancel 取消动作的优先级，高于任何动作
const PriorityCancel = math.MaxInt

// ActionSetting 动作优先级、反应时间和恢复时间
//
// 配置文件位置: data/action_setting.yaml
// 键为动作设置名（walk、idle、attack 等），未配置的键使用默认值。
type ActionSetting struct {
	// Priority 动作优先级，数值大的动作可以打断数值小的动作
	Priority map[string]int `yaml:"priority"`

	// Reaction 反应时间（秒），动作运行期间每隔该时间触发一次 AI 条件反射
	// 负值表示该动作不触发条件反射
	Reaction map[string]float64 `yaml:"reaction"`

	// Recovery 恢复时间（秒），用于速度渐变和动画过渡
	Recovery map[string]float64 `yaml:"recovery"`
}

// DefaultActionSetting 返回默认动作设置
func DefaultActionSetting() *ActionSetting {
	return &ActionSetting{
		Priority: map[string]int{
			UnitActionIdle:   0,
			UnitActionWalk:   1,
			UnitActionTurn:   2,
			UnitActionJump:   2,
			SettingAttack:    3,
			UnitActionCancel: PriorityCancel,
			UnitActionHit:    4,
			UnitActionFall:   5,
		},
		Reaction: map[string]float64{
			UnitActionWalk: 1.5,
			UnitActionIdle: 2.0,
			UnitActionJump: 1.5,
		},
		Recovery: map[string]float64{
			UnitActionWalk: 0.1,
			SettingAttack:  0.2,
			UnitActionIdle: 0.1,
			UnitActionJump: 0.2,
			UnitActionHit:  0.05,
			UnitActionFall: 0.05,
		},
	}
}

// LoadActionSetting 加载动作设置
//
// 文件中的值覆盖默认值，文件未提及的键保持默认。
//
// 参数:
//   - path: 配置文件路径（如 "data/action_setting.yaml"）
//
// 返回:
//   - *ActionSetting: 合并后的设置
//   - error: 读取、解析或验证失败时返回错误
func LoadActionSetting(path string) (*ActionSetting, error) {
	var loaded ActionSetting
	if err := decodeYAML(path, "action setting", &loaded); err != nil {
		return nil, err
	}

	setting := DefaultActionSetting()
	for k, v := range loaded.Priority {
		setting.Priority[k] = v
	}
	for k, v := range loaded.Reaction {
		setting.Reaction[k] = v
	}
	for k, v := range loaded.Recovery {
		setting.Recovery[k] = v
	}

	if err := setting.Validate(); err != nil {
		return nil, fmt.Errorf("invalid action setting: %w", err)
	}
	return setting, nil
}

// Validate 验证设置有效性
// 恢复时间不能为负值
func (s *ActionSetting) Validate() error {
	for name, v := range s.Recovery {
		if v < 0 {
			return fmt.Errorf("recovery for '%s' should be >= 0, got %.3f", name, v)
		}
	}
	return nil
}

// PriorityOf 返回动作优先级，未配置时返回 0
func (s *ActionSetting) PriorityOf(name string) int {
	return s.Priority[name]
}

// ReactionOf 返回动作反应时间，未配置时返回 -1（不触发条件反射）
func (s *ActionSetting) ReactionOf(name string) float64 {
	if v, ok := s.Reaction[name]; ok {
		return v
	}
	return -1
}

// RecoveryOf 返回动作恢复时间，未配置时返回 0
func (s *ActionSetting) RecoveryOf(name string) float64 {
	return s.Recovery[name]
}
