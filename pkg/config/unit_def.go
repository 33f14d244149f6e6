package config

import (
	"fmt"
	"log"
	"path"

	"github.com/decker502/platformer/pkg/physics"
)

// DefaultAnimationDuration 未配置时长的动画默认时长（秒）
const DefaultAnimationDuration = 1.0

// ModelDef 模型定义
// 描述动画时长、关键点以及素材默认朝向
type ModelDef struct {
	// Name 模型名
	Name string `yaml:"name"`

	// FaceRight 素材默认是否朝右
	// 单位朝向与素材朝向不一致时，关键点的 X 需要取反
	FaceRight bool `yaml:"faceRight"`

	// Animations 动画名 -> 时长（秒，速度为 1 时）
	Animations map[string]float64 `yaml:"animations"`

	// KeyPoints 关键点名 -> 局部坐标
	KeyPoints map[string]physics.Vec2 `yaml:"keyPoints"`
}

// Duration 返回动画时长，未配置或非正数时返回 DefaultAnimationDuration
func (d *ModelDef) Duration(animation string) float64 {
	if v, ok := d.Animations[animation]; ok && v > 0 {
		return v
	}
	return DefaultAnimationDuration
}

// KeyPoint 返回关键点，未配置时返回原点
func (d *ModelDef) KeyPoint(name string) physics.Vec2 {
	return d.KeyPoints[name]
}

// BulletDef 子弹定义
type BulletDef struct {
	Name         string       `yaml:"name"`
	Speed        float64      `yaml:"speed"`        // 水平速度（像素/秒），按发射者朝向取符号
	SpeedY       float64      `yaml:"speedY"`       // 初始垂直速度
	GravityScale float64      `yaml:"gravityScale"` // 重力缩放，0 为直线飞行
	Lifetime     float64      `yaml:"lifetime"`     // 最长存在时间（秒）
	Width        float64      `yaml:"width"`        // 检测框宽度
	Height       float64      `yaml:"height"`       // 检测框高度
	Offset       physics.Vec2 `yaml:"offset"`       // 相对发射者的发射点（朝右时）
	HitEffect    string       `yaml:"hitEffect"`    // 命中特效名
}

// UnitDef 单位定义
//
// 配置文件位置: data/units/*.yaml
type UnitDef struct {
	Name   string   `yaml:"name"`
	Model  ModelDef `yaml:"model"`
	Width  float64  `yaml:"width"`
	Height float64  `yaml:"height"`
	Mass   float64  `yaml:"mass"`

	// 移动
	Move      float64 `yaml:"move"`      // 基础移动速度（像素/秒）
	MoveSpeed float64 `yaml:"moveSpeed"` // 移动倍率，也是行走动画的播放速度，默认 1
	Jump      float64 `yaml:"jump"`      // 起跳速度（像素/秒）

	// 属性
	MaxHP       float64 `yaml:"maxHp"`
	Sensitivity float64 `yaml:"sensitivity"` // 反应灵敏度，反应时间 = sensitivity * reaction，默认 1

	// 攻击
	AttackBase        float64      `yaml:"attackBase"`
	AttackBonus       float64      `yaml:"attackBonus"`
	AttackFactor      float64      `yaml:"attackFactor"`
	AttackSpeed       float64      `yaml:"attackSpeed"`       // 默认 1
	AttackDelay       float64      `yaml:"attackDelay"`       // 攻击动画开始到判定的延迟（秒）
	AttackEffectDelay float64      `yaml:"attackEffectDelay"` // 攻击动画开始到攻击特效的延迟（秒）
	AttackPower       physics.Vec2 `yaml:"attackPower"`       // 击退速度
	AttackRange       float64      `yaml:"attackRange"`       // 攻击传感器宽度
	DamageType        string       `yaml:"damageType"`
	DefenceType       string       `yaml:"defenceType"`
	TargetAllow       []string     `yaml:"targetAllow"` // 允许攻击的关系（friend/neutral/enemy）
	AllowTerrain      bool         `yaml:"allowTerrain"`

	// 表现
	AttackEffect string `yaml:"attackEffect"`
	HitEffect    string `yaml:"hitEffect"`
	SndAttack    string `yaml:"sndAttack"`
	SndDeath     string `yaml:"sndDeath"`

	// Actions 单位挂载的动作名列表
	Actions []string `yaml:"actions"`

	// Bullet 远程攻击的子弹定义，可为空
	Bullet *BulletDef `yaml:"bullet"`
}

// applyDefaults 填充未配置字段的默认值
func (d *UnitDef) applyDefaults() {
	if d.MoveSpeed == 0 {
		d.MoveSpeed = 1
	}
	if d.AttackSpeed == 0 {
		d.AttackSpeed = 1
	}
	if d.Sensitivity == 0 {
		d.Sensitivity = 1
	}
	if d.Mass == 0 {
		d.Mass = 1
	}
	if d.Model.Name == "" {
		d.Model.Name = d.Name
	}
}

// Validate 验证单位定义
func (d *UnitDef) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("unit name is empty")
	}
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("unit '%s' size must be positive, got %.1fx%.1f", d.Name, d.Width, d.Height)
	}
	if d.AttackSpeed <= 0 {
		return fmt.Errorf("unit '%s' attackSpeed must be positive, got %.2f", d.Name, d.AttackSpeed)
	}
	if d.AttackDelay < 0 || d.AttackEffectDelay < 0 {
		return fmt.Errorf("unit '%s' attack delays must be >= 0", d.Name)
	}
	if d.Mass < 0 {
		return fmt.Errorf("unit '%s' mass must be >= 0, got %.2f", d.Name, d.Mass)
	}
	if d.Bullet != nil && d.Bullet.Lifetime <= 0 {
		return fmt.Errorf("unit '%s' bullet lifetime must be positive", d.Name)
	}
	return nil
}

// LoadUnitDef 加载单个单位定义
func LoadUnitDef(path string) (*UnitDef, error) {
	var def UnitDef
	if err := decodeYAML(path, "unit def", &def); err != nil {
		return nil, err
	}
	def.applyDefaults()
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("invalid unit def %s: %w", path, err)
	}
	return &def, nil
}

// LoadUnitDefs 加载目录下的所有单位定义
//
// 参数:
//   - dir: 目录路径（如 "data/units"）
//
// 返回:
//   - map[string]*UnitDef: 单位名 -> 定义
//   - error: 任一文件加载失败或单位名重复时返回错误
func LoadUnitDefs(dir string) (map[string]*UnitDef, error) {
	files, err := GlobDataFiles(path.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list unit defs: %w", err)
	}

	defs := make(map[string]*UnitDef, len(files))
	for _, file := range files {
		def, err := LoadUnitDef(file)
		if err != nil {
			return nil, err
		}
		if _, exists := defs[def.Name]; exists {
			return nil, fmt.Errorf("duplicate unit def '%s' in %s", def.Name, file)
		}
		defs[def.Name] = def
	}
	log.Printf("[Config] 加载 %d 个单位定义: %s", len(defs), dir)
	return defs, nil
}
