package config

import "fmt"

// DamageTable 伤害类型克制表
//
// 配置文件位置: data/damage_table.yaml
//
//	factors:
//	  slash:
//	    armor: -0.5
//	    flesh: 0.5
//
// 伤害 = (attackBase + attackBonus) * (attackFactor + factor)
type DamageTable struct {
	// Factors 攻击方伤害类型 -> 防御方防御类型 -> 修正系数
	Factors map[string]map[string]float64 `yaml:"factors"`
}

// LoadDamageTable 加载伤害类型克制表
func LoadDamageTable(path string) (*DamageTable, error) {
	var table DamageTable
	if err := decodeYAML(path, "damage table", &table); err != nil {
		return nil, err
	}
	if table.Factors == nil {
		table.Factors = make(map[string]map[string]float64)
	}
	return &table, nil
}

// DamageFactor 查询克制修正系数，未配置时返回 0
func (t *DamageTable) DamageFactor(damageType, defenceType string) float64 {
	if t == nil {
		return 0
	}
	return t.Factors[damageType][defenceType]
}

// SetDamageFactor 设置克制修正系数
func (t *DamageTable) SetDamageFactor(damageType, defenceType string, factor float64) {
	if t.Factors == nil {
		t.Factors = make(map[string]map[string]float64)
	}
	row, ok := t.Factors[damageType]
	if !ok {
		row = make(map[string]float64)
		t.Factors[damageType] = row
	}
	row[defenceType] = factor
}

// RelationEntry 阵营关系配置项
type RelationEntry struct {
	A        int    `yaml:"a"`
	B        int    `yaml:"b"`
	Relation string `yaml:"relation"` // friend / neutral / enemy
}

// RelationsConfig 阵营关系配置
//
// 配置文件位置: data/relations.yaml
type RelationsConfig struct {
	Groups    []int           `yaml:"groups"`
	Relations []RelationEntry `yaml:"relations"`
}

// LoadRelationsConfig 加载阵营关系配置
func LoadRelationsConfig(path string) (*RelationsConfig, error) {
	var cfg RelationsConfig
	if err := decodeYAML(path, "relations config", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid relations config: %w", err)
	}
	return &cfg, nil
}

// Validate 验证关系配置
func (c *RelationsConfig) Validate() error {
	for _, r := range c.Relations {
		switch r.Relation {
		case "friend", "neutral", "enemy":
		default:
			return fmt.Errorf("unknown relation '%s' between %d and %d", r.Relation, r.A, r.B)
		}
		if r.A == r.B {
			return fmt.Errorf("group %d cannot have a relation with itself", r.A)
		}
	}
	return nil
}
