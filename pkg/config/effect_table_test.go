package config

import (
	"image/color"
	"testing"
)

// TestLoadEffectTable 测试特效表加载
func TestLoadEffectTable(t *testing.T) {
	file := writeTempYAML(t, "effects.yaml", `effects:
  slash: {duration: 0.2, radius: 18, color: "#ffe080"}
  dust: {radius: 12}
`)

	table, err := LoadEffectTable(file)
	if err != nil {
		t.Fatalf("LoadEffectTable() failed: %v", err)
	}

	durations := table.Durations()
	if durations["slash"] != 0.2 {
		t.Errorf("slash duration = %.2f, want 0.2", durations["slash"])
	}
	if _, ok := durations["dust"]; ok {
		t.Error("effects without duration should use the spawner default")
	}
	if def, ok := table.Lookup("slash"); !ok || def.Radius != 18 {
		t.Errorf("Lookup(slash) = %+v, %v", def, ok)
	}
	if _, ok := table.Lookup("missing"); ok {
		t.Error("Lookup(missing) should fail")
	}

	var nilTable *EffectTable
	if _, ok := nilTable.Lookup("slash"); ok {
		t.Error("nil table lookup should fail")
	}
}

// TestLoadEffectTableErrors 测试特效表验证
func TestLoadEffectTableErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"negative duration", "effects:\n  a: {duration: -1}\n"},
		{"negative radius", "effects:\n  a: {radius: -3}\n"},
		{"bad color", "effects:\n  a: {color: \"#12\"}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadEffectTable(writeTempYAML(t, "effects.yaml", tt.yaml)); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

// TestParseColor 测试颜色解析
func TestParseColor(t *testing.T) {
	tests := []struct {
		input   string
		want    color.RGBA
		wantErr bool
	}{
		{"", DefaultEffectColor, false},
		{"#ff8000", color.RGBA{R: 255, G: 128, B: 0, A: 255}, false},
		{"#10203040", color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}, false},
		{"ff8000", color.RGBA{R: 255, G: 128, B: 0, A: 255}, false},
		{"#zzzzzz", color.RGBA{}, true},
		{"#fff", color.RGBA{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
