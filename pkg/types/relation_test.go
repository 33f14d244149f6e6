package types

import "testing"

func TestTargetAllow(t *testing.T) {
	allow := NewTargetAllow(RelationEnemy)

	if !allow.IsAllow(RelationEnemy) {
		t.Error("Enemy should be allowed")
	}
	if allow.IsAllow(RelationFriend) {
		t.Error("Friend should not be allowed")
	}

	allow.Allow(RelationNeutral, true)
	if !allow.IsAllow(RelationNeutral) {
		t.Error("Neutral should be allowed after Allow(true)")
	}

	allow.Allow(RelationEnemy, false)
	if allow.IsAllow(RelationEnemy) {
		t.Error("Enemy should be disallowed after Allow(false)")
	}

	if allow.IsTerrainAllowed() {
		t.Error("Terrain should be disallowed by default")
	}
	allow.AllowTerrain(true)
	if !allow.IsTerrainAllowed() || !allow.IsAllow(RelationNeutral) {
		t.Error("AllowTerrain should not clobber relation bits")
	}
}

func TestParseRelation(t *testing.T) {
	tests := []struct {
		in   string
		want Relation
	}{
		{"friend", RelationFriend},
		{"Enemy", RelationEnemy},
		{"neutral", RelationNeutral},
		{"", RelationUnknown},
		{"ally", RelationUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseRelation(tt.in); got != tt.want {
				t.Errorf("ParseRelation(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
