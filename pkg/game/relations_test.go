package game

import (
	"testing"

	"github.com/decker502/platformer/pkg/config"
	"github.com/decker502/platformer/pkg/types"
)

// TestGroupRelation 测试阵营关系查询
func TestGroupRelation(t *testing.T) {
	r := NewRelations()
	if err := r.SetRelation(1, 2, types.RelationEnemy); err != nil {
		t.Fatalf("SetRelation() error = %v", err)
	}
	if err := r.SetRelation(1, 3, types.RelationFriend); err != nil {
		t.Fatalf("SetRelation() error = %v", err)
	}

	tests := []struct {
		name string
		a, b int
		want types.Relation
	}{
		{"same group", 2, 2, types.RelationFriend},
		{"enemy edge", 1, 2, types.RelationEnemy},
		{"undirected", 2, 1, types.RelationEnemy},
		{"friend edge", 3, 1, types.RelationFriend},
		{"no edge is neutral", 2, 3, types.RelationNeutral},
		{"unknown group is neutral", 1, 9, types.RelationNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.GroupRelation(tt.a, tt.b); got != tt.want {
				t.Errorf("GroupRelation(%d, %d) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

// TestSetRelationOverwrite 重复设置覆盖原关系，删除后为中立
func TestSetRelationOverwrite(t *testing.T) {
	r := NewRelations()
	r.SetRelation(1, 2, types.RelationEnemy)

	// When: 改为友方
	if err := r.SetRelation(2, 1, types.RelationFriend); err != nil {
		t.Fatalf("SetRelation() error = %v", err)
	}

	// Then
	if got := r.GroupRelation(1, 2); got != types.RelationFriend {
		t.Errorf("after overwrite = %v, want Friend", got)
	}

	r.RemoveRelation(1, 2)
	if got := r.GroupRelation(1, 2); got != types.RelationNeutral {
		t.Errorf("after remove = %v, want Neutral", got)
	}
}

func TestSetRelationInvalid(t *testing.T) {
	r := NewRelations()
	if err := r.SetRelation(1, 1, types.RelationEnemy); err == nil {
		t.Error("relation with itself should fail")
	}
	if err := r.SetRelation(1, 2, types.RelationUnknown); err == nil {
		t.Error("unknown relation should fail")
	}
}

// TestLoadRelations 从配置创建关系表
func TestLoadRelations(t *testing.T) {
	cfg := &config.RelationsConfig{
		Groups: []int{4, 1, 2},
		Relations: []config.RelationEntry{
			{A: 1, B: 2, Relation: "enemy"},
			{A: 1, B: 3, Relation: "neutral"},
		},
	}
	r, err := LoadRelations(cfg)
	if err != nil {
		t.Fatalf("LoadRelations() error = %v", err)
	}

	groups := r.Groups()
	want := []int{1, 2, 3, 4}
	if len(groups) != len(want) {
		t.Fatalf("Groups() = %v, want %v", groups, want)
	}
	for i := range want {
		if groups[i] != want[i] {
			t.Fatalf("Groups() = %v, want %v", groups, want)
		}
	}
	if r.GroupRelation(1, 2) != types.RelationEnemy {
		t.Error("1-2 should be enemies")
	}

	if _, err := LoadRelations(nil); err == nil {
		t.Error("nil config should fail")
	}
	bad := &config.RelationsConfig{Relations: []config.RelationEntry{{A: 1, B: 2, Relation: "rival"}}}
	if _, err := LoadRelations(bad); err == nil {
		t.Error("unknown relation name should fail")
	}
}
