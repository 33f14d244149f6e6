// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

// Relation 定义两个单位阵营之间的关系
type Relation int

const (
	// RelationUnknown 未知关系（如地形、非单位物体）
	RelationUnknown Relation = iota
	// RelationFriend 友方（同一阵营或结盟）
	RelationFriend
	// RelationNeutral 中立
	RelationNeutral
	// RelationEnemy 敌对
	RelationEnemy
)

// String 返回关系的字符串表示
func (r Relation) String() string {
	switch r {
	case RelationFriend:
		return "Friend"
	case RelationNeutral:
		return "Neutral"
	case RelationEnemy:
		return "Enemy"
	default:
		return "Unknown"
	}
}

// ParseRelation 将配置中的字符串转换为 Relation
// 无法识别的字符串返回 RelationUnknown
func ParseRelation(s string) Relation {
	switch s {
	case "friend", "Friend":
		return RelationFriend
	case "neutral", "Neutral":
		return RelationNeutral
	case "enemy", "Enemy":
		return RelationEnemy
	default:
		return RelationUnknown
	}
}

// TargetAllow 攻击目标许可位掩码
// 每个 Relation 占一位，另有一位控制是否允许攻击地形
type TargetAllow uint32

const terrainBit TargetAllow = 1 << 31

// NewTargetAllow 使用给定的关系列表构造许可掩码
func NewTargetAllow(relations ...Relation) TargetAllow {
	var t TargetAllow
	for _, r := range relations {
		t.Allow(r, true)
	}
	return t
}

// Allow 打开或关闭对某种关系的攻击许可
func (t *TargetAllow) Allow(r Relation, allow bool) {
	if allow {
		*t |= 1 << uint(r)
	} else {
		*t &^= 1 << uint(r)
	}
}

// IsAllow 检查是否允许攻击该关系的目标
func (t TargetAllow) IsAllow(r Relation) bool {
	return t&(1<<uint(r)) != 0
}

// AllowTerrain 设置是否允许攻击地形
func (t *TargetAllow) AllowTerrain(allow bool) {
	if allow {
		*t |= terrainBit
	} else {
		*t &^= terrainBit
	}
}

// IsTerrainAllowed 是否允许攻击地形
func (t TargetAllow) IsTerrainAllowed() bool {
	return t&terrainBit != 0
}
