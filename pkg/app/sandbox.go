package app

import (
	"fmt"
	"log"
	"sort"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/decker502/platformer/pkg/action"
	"github.com/decker502/platformer/pkg/components"
	"github.com/decker502/platformer/pkg/config"
	"github.com/decker502/platformer/pkg/ecs"
	"github.com/decker502/platformer/pkg/entities"
	"github.com/decker502/platformer/pkg/game"
	"github.com/decker502/platformer/pkg/physics"
	"github.com/decker502/platformer/pkg/script"
	"github.com/decker502/platformer/pkg/systems"
	"github.com/decker502/platformer/pkg/unit"
)

// 数据文件路径
const (
	ActionSettingFile = "data/action_setting.yaml"
	DamageTableFile   = "data/damage_table.yaml"
	RelationsFile     = "data/relations.yaml"
	EffectsFile       = "data/effects.yaml"
	SoundsFile        = "data/sounds.yaml"
	UnitDir           = "data/units"
	ScriptDir         = "data/scripts"
	DefaultLevelFile  = "data/levels/arena.yaml"
)

// LogOutputFrameInterval 状态日志输出间隔（每N帧输出一次）
const LogOutputFrameInterval = 300

// SandboxOptions 沙盒创建参数
type SandboxOptions struct {
	LevelFile    string
	AudioContext *audio.Context        // 为 nil 时不播放声音
	Settings     *game.SettingsManager // 为 nil 时使用默认设置
	Keys         systems.KeySource     // 为 nil 时读取 ebiten 键盘
	ViewWidth    float64               // 画面宽度，决定镜头范围
}

// DamageRecord 一次伤害
type DamageRecord struct {
	Frame    int
	Attacker string
	Target   string
	Damage   float64
}

// Sandbox 单位动作沙盒
//
// 负责加载数据、组装动作服务和注册表、按关卡生成单位，并按固定顺序驱动各系统。
// App 在其上加窗口和渲染，cmd/verify_actions 直接无头运行。
type Sandbox struct {
	em        *ecs.EntityManager
	world     *physics.World
	registry  *action.Registry
	services  *action.Services
	scripts   *script.Engine
	relations *game.Relations
	audio     *game.AudioManager
	effects   *config.EffectTable
	unitDefs  map[string]*config.UnitDef
	level     *config.LevelConfig
	levelFile string
	settings  *game.SettingsManager

	input    *systems.InputSystem
	actions  *systems.ActionSystem
	health   *systems.HealthSystem
	physics  *systems.PhysicsSystem
	bullets  *systems.BulletSystem
	lifetime *systems.LifetimeSystem
	camera   *systems.CameraSystem

	player  ecs.EntityID
	frame   int
	elapsed float64
	damages []DamageRecord
}

// NewSandbox 加载数据并生成关卡
//
// 参数:
//   - opts: 创建参数，LevelFile 为空时使用 DefaultLevelFile
//
// 返回:
//   - *Sandbox: 沙盒实例，传感器已刷新，可以直接 Step
//   - error: 任一数据文件加载失败、脚本出错或关卡引用了未定义的单位时返回错误
func NewSandbox(opts SandboxOptions) (*Sandbox, error) {
	if opts.LevelFile == "" {
		opts.LevelFile = DefaultLevelFile
	}
	if opts.ViewWidth <= 0 {
		opts.ViewWidth = ScreenWidth
	}
	settings := opts.Settings
	if settings == nil {
		settings, _ = game.NewSettingsManager(nil)
	}

	setting, err := config.LoadActionSetting(ActionSettingFile)
	if err != nil {
		return nil, fmt.Errorf("动作设置加载失败: %w", err)
	}
	damage, err := config.LoadDamageTable(DamageTableFile)
	if err != nil {
		return nil, fmt.Errorf("伤害表加载失败: %w", err)
	}
	relationsConfig, err := config.LoadRelationsConfig(RelationsFile)
	if err != nil {
		return nil, fmt.Errorf("阵营关系加载失败: %w", err)
	}
	relations, err := game.LoadRelations(relationsConfig)
	if err != nil {
		return nil, fmt.Errorf("阵营关系无效: %w", err)
	}
	effects, err := config.LoadEffectTable(EffectsFile)
	if err != nil {
		return nil, fmt.Errorf("特效表加载失败: %w", err)
	}
	sounds, err := config.LoadSoundTable(SoundsFile)
	if err != nil {
		return nil, fmt.Errorf("音效表加载失败: %w", err)
	}
	unitDefs, err := config.LoadUnitDefs(UnitDir)
	if err != nil {
		return nil, fmt.Errorf("单位定义加载失败: %w", err)
	}
	level, err := config.LoadLevelConfig(opts.LevelFile)
	if err != nil {
		return nil, fmt.Errorf("关卡加载失败: %w", err)
	}

	s := &Sandbox{
		em:        ecs.NewEntityManager(),
		world:     physics.NewWorld(physics.DefaultGravity),
		relations: relations,
		effects:   effects,
		unitDefs:  unitDefs,
		level:     level,
		levelFile: opts.LevelFile,
		settings:  settings,
	}
	s.audio = game.NewAudioManager(opts.AudioContext, sounds, settings)
	s.audio.PreloadSounds(soundIDs(sounds))

	s.services = &action.Services{
		Setting:    setting,
		AI:         game.NewAI(relations),
		Audio:      s.audio,
		Effects:    entities.NewEffectFactory(s.em, effects.Durations()),
		Bullets:    entities.NewBulletFactory(s.em, s.world),
		Relations:  relations,
		Damage:     damage,
		PreciseHit: settings.GetSettings().PreciseHit,
		Damaged:    s.onDamaged,
	}
	s.registry = action.NewRegistry(s.services)
	s.scripts = script.New(s.registry)
	if _, err := s.scripts.LoadDir(ScriptDir); err != nil {
		return nil, fmt.Errorf("动作脚本加载失败: %w", err)
	}

	if err := s.buildLevel(); err != nil {
		return nil, err
	}

	s.input = systems.NewInputSystem(s.em, opts.Keys)
	s.actions = systems.NewActionSystem(s.em)
	s.health = systems.NewHealthSystem(s.em)
	s.physics = systems.NewPhysicsSystem(s.em, s.world)
	s.bullets = systems.NewBulletSystem(s.em, relations, s.services.Effects)
	s.lifetime = systems.NewLifetimeSystem(s.em)
	s.camera = systems.NewCameraSystem(s.em, opts.ViewWidth, 0, level.Width-opts.ViewWidth)
	if s.player != 0 {
		s.camera.Follow(s.player)
		s.camera.Snap()
	}

	s.world.RefreshSensors()
	log.Printf("[Sandbox] 关卡 %s 就绪: %d 个单位, %d 个动作定义", level.ID, len(s.Units()), len(s.registry.Names()))
	return s, nil
}

// buildLevel 生成地形和单位
func (s *Sandbox) buildLevel() error {
	for _, p := range s.level.Platforms {
		body := s.world.CreateBody(physics.BodyDef{
			Type:     physics.BodyStatic,
			Position: physics.Vec2{X: p.X + p.Width/2, Y: p.Y + p.Height/2},
		})
		body.AttachFixture(physics.NewBox(p.Width/2, p.Height/2))
	}

	for i, spawn := range s.level.Spawns {
		def, ok := s.unitDefs[spawn.Unit]
		if !ok {
			return fmt.Errorf("spawn %d: unknown unit '%s'", i, spawn.Unit)
		}
		id, _, err := entities.NewUnitEntity(s.em, s.world, s.registry, entities.UnitSpawn{
			Def:       def,
			Position:  physics.Vec2{X: spawn.X, Y: spawn.Y + def.Height/2},
			Group:     spawn.Group,
			FaceRight: spawn.FaceRight,
			Player:    spawn.Player,
		})
		if err != nil {
			return fmt.Errorf("spawn %d: %w", i, err)
		}
		if spawn.Player {
			s.player = id
		}
	}
	return nil
}

// Step 推进一个逻辑帧
//
// 顺序: 输入 → 动作 → 生命值 → 物理 → 子弹 → 生命周期 → 镜头 → 清理
func (s *Sandbox) Step(dt float64) {
	s.input.Update(dt)
	s.actions.Update(dt)
	s.health.Update(dt)
	s.physics.Update(dt)
	s.bullets.Update(dt)
	s.lifetime.Update(dt)
	s.camera.Update(dt)

	s.physics.ReleaseMarked()
	s.em.RemoveMarkedEntities()

	s.frame++
	s.elapsed += dt
	if s.frame%LogOutputFrameInterval == 0 {
		log.Printf("[Sandbox] 第 %d 帧 (%.1fs): %d 个单位, %d 个实体", s.frame, s.elapsed, len(s.Units()), s.em.EntityCount())
	}
}

func (s *Sandbox) onDamaged(attacker, target action.Unit, damage float64) {
	s.damages = append(s.damages, DamageRecord{
		Frame:    s.frame,
		Attacker: attacker.Name(),
		Target:   target.Name(),
		Damage:   damage,
	})
	log.Printf("[Sandbox] %s 对 %s 造成 %.1f 伤害", attacker.Name(), target.Name(), damage)
}

// SetPreciseHit 切换精确命中点
func (s *Sandbox) SetPreciseHit(enabled bool) {
	s.services.PreciseHit = enabled
	s.settings.SetPreciseHit(enabled)
}

// ReloadScripts 清除脚本动作并重新加载脚本目录
// 已挂载在单位上的脚本动作实例保持旧定义
func (s *Sandbox) ReloadScripts() error {
	if err := s.scripts.DoString("UnitAction.clear()", "reload"); err != nil {
		return err
	}
	_, err := s.scripts.LoadDir(ScriptDir)
	return err
}

// Units 存活的单位，按实体ID排序
func (s *Sandbox) Units() []*unit.Unit {
	ids := ecs.GetEntitiesWith1[*components.UnitComponent](s.em)
	units := make([]*unit.Unit, 0, len(ids))
	for _, id := range ids {
		comp, _ := ecs.GetComponent[*components.UnitComponent](s.em, id)
		units = append(units, comp.Unit)
	}
	return units
}

// Player 玩家单位，没有或已被移除时返回 nil
func (s *Sandbox) Player() *unit.Unit {
	comp, ok := ecs.GetComponent[*components.UnitComponent](s.em, s.player)
	if !ok {
		return nil
	}
	return comp.Unit
}

// AliveGroups 仍有单位存活的阵营，升序
func (s *Sandbox) AliveGroups() []int {
	seen := make(map[int]bool)
	var groups []int
	for _, u := range s.Units() {
		if u.HP() > 0 && !seen[u.Group()] {
			seen[u.Group()] = true
			groups = append(groups, u.Group())
		}
	}
	sort.Ints(groups)
	return groups
}

// Damages 所有伤害记录
func (s *Sandbox) Damages() []DamageRecord { return s.damages }

// MissedBullets 未命中任何目标、到期移除的子弹数
func (s *Sandbox) MissedBullets() int {
	bullets, _ := s.lifetime.Expired()
	return bullets
}

// Frame 已推进的帧数
func (s *Sandbox) Frame() int { return s.frame }

// Elapsed 已推进的时间（秒）
func (s *Sandbox) Elapsed() float64 { return s.elapsed }

// CameraX 镜头左边缘的世界坐标
func (s *Sandbox) CameraX() float64 { return s.camera.X() }

// EntityManager 实体管理器
func (s *Sandbox) EntityManager() *ecs.EntityManager { return s.em }

// World 物理世界
func (s *Sandbox) World() *physics.World { return s.world }

// Effects 特效外观表
func (s *Sandbox) Effects() *config.EffectTable { return s.effects }

// Level 当前关卡
func (s *Sandbox) Level() *config.LevelConfig { return s.level }

// LevelFile 关卡文件路径
func (s *Sandbox) LevelFile() string { return s.levelFile }

// Registry 动作注册表
func (s *Sandbox) Registry() *action.Registry { return s.registry }

func soundIDs(sounds *config.SoundTable) []string {
	ids := make([]string, 0, len(sounds.Sounds))
	for id := range sounds.Sounds {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
