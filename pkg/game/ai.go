package game

import (
	"math"

	"github.com/decker502/platformer/pkg/action"
	"github.com/decker502/platformer/pkg/config"
	"github.com/decker502/platformer/pkg/types"
	"github.com/decker502/platformer/pkg/unit"
)

// DefaultSightRange AI 发现敌人的水平距离（像素）
const DefaultSightRange = 400.0

// AI 简单的条件反射 AI
//
// 动作运行期间按反应时间回调 ConditionedReflex，AI 只排队动作请求，
// 请求在单位下一次 Update 时经过优先级仲裁。
//
// 决策顺序:
//  1. 攻击传感器内、朝向一侧有敌人：攻击
//  2. 最近的敌人在身后：转身
//  3. 视野内有敌人：只有远程攻击的单位射击，其余单位走向敌人
//  4. 否则待机
type AI struct {
	relations  action.RelationTable
	SightRange float64
}

// NewAI 创建 AI
//
// 参数:
//   - relations: 阵营关系表，为 nil 时同阵营为友方，其余为敌方
func NewAI(relations action.RelationTable) *AI {
	return &AI{relations: relations, SightRange: DefaultSightRange}
}

// ConditionedReflex 实现 action.Reflex
func (ai *AI) ConditionedReflex(owner action.Unit) {
	u, ok := owner.(*unit.Unit)
	if !ok || !u.AIEnabled {
		return
	}

	if ai.enemyInReach(u) {
		ai.queueAttack(u)
		return
	}

	enemy, distance := ai.nearestEnemy(u)
	if enemy == nil || distance > ai.SightRange {
		u.Queue(config.UnitActionIdle)
		return
	}

	enemyOnRight := enemy.Position().X > u.Position().X
	if enemyOnRight != u.IsFaceRight() {
		u.Queue(config.UnitActionTurn)
		return
	}

	if u.Action(config.UnitActionMeleeAttack) == nil && u.Action(config.UnitActionRangeAttack) != nil {
		u.Queue(config.UnitActionRangeAttack)
		return
	}
	u.Queue(config.UnitActionWalk)
}

func (ai *AI) queueAttack(u *unit.Unit) {
	if u.Action(config.UnitActionMeleeAttack) != nil {
		u.Queue(config.UnitActionMeleeAttack)
	} else {
		u.Queue(config.UnitActionRangeAttack)
	}
}

func (ai *AI) relation(a, b *unit.Unit) types.Relation {
	if ai.relations != nil {
		return ai.relations.Relation(a, b)
	}
	if a.Group() == b.Group() {
		return types.RelationFriend
	}
	return types.RelationEnemy
}

// enemyInReach 攻击传感器内朝向一侧是否有敌人
func (ai *AI) enemyInReach(u *unit.Unit) bool {
	sensor := u.AttackSensor()
	if sensor == nil {
		return false
	}
	for _, body := range sensor.SensedBodies() {
		target, ok := body.UserData.(*unit.Unit)
		if !ok || target == u || ai.relation(u, target) != types.RelationEnemy {
			continue
		}
		if (target.Position().X > u.Position().X) == u.IsFaceRight() {
			return true
		}
	}
	return false
}

// nearestEnemy 同一物理世界中水平距离最近的敌人
func (ai *AI) nearestEnemy(u *unit.Unit) (*unit.Unit, float64) {
	world := u.Body().World()
	if world == nil {
		return nil, 0
	}
	var nearest *unit.Unit
	best := math.Inf(1)
	for _, body := range world.Bodies() {
		target, ok := body.UserData.(*unit.Unit)
		if !ok || target == u || ai.relation(u, target) != types.RelationEnemy {
			continue
		}
		if d := math.Abs(target.Position().X - u.Position().X); d < best {
			nearest, best = target, d
		}
	}
	return nearest, best
}
