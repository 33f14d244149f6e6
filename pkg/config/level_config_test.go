package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTempYAML 写入临时 YAML 文件并返回路径
func writeTempYAML(t *testing.T, name, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	return file
}

// TestLoadLevelConfig 测试关卡配置文件加载
func TestLoadLevelConfig(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		file := writeTempYAML(t, "arena.yaml", `id: arena
name: "Test Arena"
width: 1200
platforms:
  - {x: 0, y: 0, width: 1200, height: 20}
  - {x: 300, y: 100, width: 120, height: 10}
spawns:
  - {unit: hero, x: 100, y: 20, group: 1, faceRight: true, player: true}
  - {unit: slime, x: 900, y: 20, group: 2}
`)

		level, err := LoadLevelConfig(file)
		if err != nil {
			t.Fatalf("LoadLevelConfig() failed: %v", err)
		}

		if level.ID != "arena" || level.Name != "Test Arena" || level.Width != 1200 {
			t.Errorf("level = %+v", level)
		}
		if len(level.Platforms) != 2 {
			t.Fatalf("Expected 2 platforms, got %d", len(level.Platforms))
		}
		if p := level.Platforms[1]; p.X != 300 || p.Y != 100 || p.Width != 120 || p.Height != 10 {
			t.Errorf("platform[1] = %+v", p)
		}
		if len(level.Spawns) != 2 {
			t.Fatalf("Expected 2 spawns, got %d", len(level.Spawns))
		}
		hero := level.Spawns[0]
		if hero.Unit != "hero" || !hero.Player || !hero.FaceRight || hero.Group != 1 {
			t.Errorf("spawn[0] = %+v", hero)
		}
		if level.Spawns[1].Player || level.Spawns[1].FaceRight {
			t.Errorf("spawn[1] flags should default to false: %+v", level.Spawns[1])
		}
	})

	t.Run("defaults", func(t *testing.T) {
		file := writeTempYAML(t, "min.yaml", `id: min
platforms:
  - {x: 0, y: 0, width: 100, height: 10}
`)
		level, err := LoadLevelConfig(file)
		if err != nil {
			t.Fatalf("LoadLevelConfig() failed: %v", err)
		}
		if level.Width != DefaultLevelWidth {
			t.Errorf("Width = %.0f, want %.0f", level.Width, DefaultLevelWidth)
		}
		if level.Name != "min" {
			t.Errorf("Name should default to ID, got %q", level.Name)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadLevelConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
			t.Error("Expected error for missing file")
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		file := writeTempYAML(t, "bad.yaml", "id: [unclosed")
		if _, err := LoadLevelConfig(file); err == nil {
			t.Error("Expected error for invalid YAML")
		}
	})
}

// TestValidateLevelConfig 测试关卡配置验证
func TestValidateLevelConfig(t *testing.T) {
	ground := "platforms:\n  - {x: 0, y: 0, width: 500, height: 10}\n"
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"missing id", ground, "ID is required"},
		{"no platforms", "id: a\n", "at least one platform"},
		{"zero size platform", "id: a\nplatforms:\n  - {x: 0, y: 0, width: 0, height: 10}\n", "must be positive"},
		{"spawn without unit", "id: a\nwidth: 500\n" + ground + "spawns:\n  - {x: 10}\n", "unit is required"},
		{"spawn outside", "id: a\nwidth: 500\n" + ground + "spawns:\n  - {unit: hero, x: 600}\n", "outside the level"},
		{"two players", "id: a\nwidth: 500\n" + ground + "spawns:\n  - {unit: hero, x: 10, player: true}\n  - {unit: hero, x: 20, player: true}\n", "at most one player"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := writeTempYAML(t, "level.yaml", tt.yaml)
			_, err := LoadLevelConfig(file)
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
