package config

import "testing"

// TestLoadDamageTable 测试伤害系数表
func TestLoadDamageTable(t *testing.T) {
	table, err := LoadDamageTable(writeTempYAML(t, "damage.yaml", `factors:
  slash:
    flesh: 0.5
    gel: 1.0
`))
	if err != nil {
		t.Fatalf("LoadDamageTable() failed: %v", err)
	}

	tests := []struct {
		damage, defence string
		want            float64
	}{
		{"slash", "flesh", 0.5},
		{"slash", "gel", 1.0},
		{"slash", "stone", 0},
		{"blunt", "flesh", 0},
	}
	for _, tt := range tests {
		if got := table.DamageFactor(tt.damage, tt.defence); got != tt.want {
			t.Errorf("DamageFactor(%s, %s) = %.2f, want %.2f", tt.damage, tt.defence, got, tt.want)
		}
	}

	table.SetDamageFactor("blunt", "gel", -0.5)
	if got := table.DamageFactor("blunt", "gel"); got != -0.5 {
		t.Errorf("after SetDamageFactor = %.2f, want -0.5", got)
	}

	var nilTable *DamageTable
	if nilTable.DamageFactor("slash", "flesh") != 0 {
		t.Error("nil table should return 0")
	}
}

func TestSetDamageFactorOnEmptyTable(t *testing.T) {
	table := &DamageTable{}
	table.SetDamageFactor("pierce", "flesh", 0.25)
	if got := table.DamageFactor("pierce", "flesh"); got != 0.25 {
		t.Errorf("DamageFactor = %.2f, want 0.25", got)
	}
}

// TestLoadRelationsConfig 测试阵营关系配置
func TestLoadRelationsConfig(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cfg, err := LoadRelationsConfig(writeTempYAML(t, "relations.yaml", `groups: [1, 2]
relations:
  - {a: 1, b: 2, relation: enemy}
`))
		if err != nil {
			t.Fatalf("LoadRelationsConfig() failed: %v", err)
		}
		if len(cfg.Groups) != 2 || len(cfg.Relations) != 1 || cfg.Relations[0].Relation != "enemy" {
			t.Errorf("cfg = %+v", cfg)
		}
	})

	tests := []struct {
		name string
		yaml string
	}{
		{"unknown relation", "relations:\n  - {a: 1, b: 2, relation: rival}\n"},
		{"self relation", "relations:\n  - {a: 1, b: 1, relation: enemy}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadRelationsConfig(writeTempYAML(t, "relations.yaml", tt.yaml)); err == nil {
				t.Error("Expected error")
			}
		})
	}
}
