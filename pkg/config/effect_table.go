package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// DefaultEffectColor 未配置颜色的特效
var DefaultEffectColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// EffectDef 特效外观
type EffectDef struct {
	Duration float64 `yaml:"duration"` // 显示时长（秒），0 表示使用默认值
	Radius   float64 `yaml:"radius"`   // 初始半径（像素）
	Color    string  `yaml:"color"`    // #rrggbb 或 #rrggbbaa
}

// EffectTable 特效表
//
// 配置文件位置: data/effects.yaml
//
//	effects:
//	  slash: {duration: 0.2, radius: 18, color: "#ffe080"}
//
// 单位定义中的 attackEffect / hitEffect 和子弹的 hitEffect 引用这里的名称。
type EffectTable struct {
	Effects map[string]EffectDef `yaml:"effects"`
}

// LoadEffectTable 加载特效表
func LoadEffectTable(path string) (*EffectTable, error) {
	var table EffectTable
	if err := decodeYAML(path, "effect table", &table); err != nil {
		return nil, err
	}
	if table.Effects == nil {
		table.Effects = make(map[string]EffectDef)
	}
	for name, def := range table.Effects {
		if def.Duration < 0 || def.Radius < 0 {
			return nil, fmt.Errorf("effect '%s' has negative duration or radius", name)
		}
		if _, err := ParseColor(def.Color); err != nil {
			return nil, fmt.Errorf("effect '%s': %w", name, err)
		}
	}
	return &table, nil
}

// Durations 特效名 -> 显示时长
func (t *EffectTable) Durations() map[string]float64 {
	durations := make(map[string]float64, len(t.Effects))
	for name, def := range t.Effects {
		if def.Duration > 0 {
			durations[name] = def.Duration
		}
	}
	return durations
}

// Lookup 查询特效外观，未配置时返回 false
func (t *EffectTable) Lookup(name string) (EffectDef, bool) {
	if t == nil {
		return EffectDef{}, false
	}
	def, ok := t.Effects[name]
	return def, ok
}

// ParseColor 解析 #rrggbb / #rrggbbaa，空字符串返回 DefaultEffectColor
func ParseColor(s string) (color.RGBA, error) {
	if s == "" {
		return DefaultEffectColor, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
