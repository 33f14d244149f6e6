package config

import "fmt"

// DefaultLevelWidth 未配置宽度时的关卡宽度（像素）
const DefaultLevelWidth = 1920.0

// LevelConfig 关卡配置
// 定义地形平台和开场生成的单位
//
// 配置文件位置: data/levels/<id>.yaml
type LevelConfig struct {
	ID        string            `yaml:"id"`        // 关卡ID，如 "arena"
	Name      string            `yaml:"name"`      // 关卡名称
	Width     float64           `yaml:"width"`     // 关卡宽度（像素），镜头不会超出
	Platforms []PlatformConfig  `yaml:"platforms"` // 静态地形
	Spawns    []UnitSpawnConfig `yaml:"spawns"`    // 开场生成的单位
}

// PlatformConfig 矩形平台
// X、Y 为左下角的世界坐标（Y 轴向上）
type PlatformConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// UnitSpawnConfig 单位生成配置
// X 为单位中心，Y 为脚底高度
type UnitSpawnConfig struct {
	Unit      string  `yaml:"unit"`      // 单位定义名（data/units/<unit>.yaml 中的 name）
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Group     int     `yaml:"group"`     // 阵营编号
	FaceRight bool    `yaml:"faceRight"`
	Player    bool    `yaml:"player"`    // 由键盘控制，每个关卡最多一个
}

// LoadLevelConfig 从YAML文件加载关卡配置
//
// 参数:
//   - path: 关卡配置文件的路径（如 "data/levels/arena.yaml"）
//
// 返回:
//   - *LevelConfig: 解析后的关卡配置对象
//   - error: 如果文件读取、解析或验证失败，返回错误信息
func LoadLevelConfig(path string) (*LevelConfig, error) {
	var level LevelConfig
	if err := decodeYAML(path, "level config", &level); err != nil {
		return nil, err
	}

	applyLevelDefaults(&level)

	if err := validateLevelConfig(&level); err != nil {
		return nil, fmt.Errorf("invalid level config in %s: %w", path, err)
	}
	return &level, nil
}

// applyLevelDefaults 为缺失的可选字段设置默认值
func applyLevelDefaults(level *LevelConfig) {
	if level.Width <= 0 {
		level.Width = DefaultLevelWidth
	}
	if level.Name == "" {
		level.Name = level.ID
	}
}

// validateLevelConfig 验证关卡配置的完整性和合法性
func validateLevelConfig(level *LevelConfig) error {
	if level.ID == "" {
		return fmt.Errorf("level ID is required")
	}
	if len(level.Platforms) == 0 {
		return fmt.Errorf("at least one platform is required")
	}
	for i, p := range level.Platforms {
		if p.Width <= 0 || p.Height <= 0 {
			return fmt.Errorf("platform %d: width and height must be positive", i)
		}
	}

	players := 0
	for i, s := range level.Spawns {
		if s.Unit == "" {
			return fmt.Errorf("spawn %d: unit is required", i)
		}
		if s.X < 0 || s.X > level.Width {
			return fmt.Errorf("spawn %d: x=%.0f is outside the level (0-%.0f)", i, s.X, level.Width)
		}
		if s.Player {
			players++
		}
	}
	if players > 1 {
		return fmt.Errorf("at most one player spawn is allowed, got %d", players)
	}
	return nil
}
