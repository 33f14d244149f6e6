package systems

import (
	"bytes"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/decker502/platformer/pkg/components"
	"github.com/decker502/platformer/pkg/config"
	"github.com/decker502/platformer/pkg/ecs"
	"github.com/decker502/platformer/pkg/physics"
	"github.com/decker502/platformer/pkg/utils"
)

var (
	backgroundColor = color.RGBA{R: 32, G: 36, B: 48, A: 255}
	terrainColor    = color.RGBA{R: 92, G: 76, B: 60, A: 255}
	bulletColor     = color.RGBA{R: 240, G: 240, B: 200, A: 255}
	hpBackColor     = color.RGBA{R: 60, G: 0, B: 0, A: 255}
	hpColor         = color.RGBA{R: 40, G: 200, B: 60, A: 255}
	groundSensorClr = color.RGBA{R: 80, G: 160, B: 255, A: 255}
	attackSensorClr = color.RGBA{R: 255, G: 200, B: 0, A: 255}

	// 阵营颜色，按阵营编号循环使用
	groupColors = []color.RGBA{
		{R: 90, G: 160, B: 255, A: 255},
		{R: 230, G: 80, B: 70, A: 255},
		{R: 120, G: 200, B: 120, A: 255},
		{R: 200, G: 140, B: 220, A: 255},
	}
)

// RenderSystem 用矢量图形绘制游戏世界
//
// 绘制顺序：地形、单位（身体、朝向、血条、动作名）、子弹、特效。
// 开启调试形状时额外绘制单位的地面和攻击传感器。
type RenderSystem struct {
	entityManager *ecs.EntityManager
	world         *physics.World
	effects       *config.EffectTable

	// GroundMargin 世界 y=0 到画面底部的距离（像素）
	GroundMargin float64
	// ShowDebugShapes 绘制传感器
	ShowDebugShapes bool
	// ShowActionNames 在单位头顶显示当前动作名
	ShowActionNames bool

	hudFont *text.GoTextFace // 首次绘制 HUD 时加载，加载失败时为 nil
	hudInit bool
}

// HUDFontSize HUD 文字大小
const HUDFontSize = 14

// NewRenderSystem 创建渲染系统
//
// 参数:
//   - em: 实体管理器
//   - world: 物理世界（绘制地形）
//   - effects: 特效外观表，可为 nil
func NewRenderSystem(em *ecs.EntityManager, world *physics.World, effects *config.EffectTable) *RenderSystem {
	return &RenderSystem{
		entityManager:   em,
		world:           world,
		effects:         effects,
		GroundMargin:    40,
		ShowActionNames: true,
	}
}

// Draw 绘制一帧
//
// 参数:
//   - screen: 目标图像
//   - cameraX: 镜头左边缘的世界坐标
func (s *RenderSystem) Draw(screen *ebiten.Image, cameraX float64) {
	view := utils.Viewport{
		CameraX:      cameraX,
		Height:       float64(screen.Bounds().Dy()),
		GroundMargin: s.GroundMargin,
	}
	screen.Fill(backgroundColor)
	s.drawTerrain(screen, view)
	s.drawUnits(screen, view)
	s.drawBullets(screen, view)
	s.drawEffects(screen, view)
}

func (s *RenderSystem) drawTerrain(screen *ebiten.Image, view utils.Viewport) {
	if s.world == nil {
		return
	}
	for _, body := range s.world.Bodies() {
		if body.Type() != physics.BodyStatic {
			continue
		}
		for _, f := range body.Fixtures() {
			if !f.IsSensor() {
				fillAABB(screen, view, f.AABB(), terrainColor)
			}
		}
	}
}

func (s *RenderSystem) drawUnits(screen *ebiten.Image, view utils.Viewport) {
	ids := ecs.GetEntitiesWith2[*components.UnitComponent, *components.HealthComponent](s.entityManager)
	for _, id := range ids {
		unitComp, _ := ecs.GetComponent[*components.UnitComponent](s.entityManager, id)
		health, _ := ecs.GetComponent[*components.HealthComponent](s.entityManager, id)
		u := unitComp.Unit
		body := u.Body()
		if body.World() == nil {
			continue
		}

		clr := GroupColor(u.Group())
		if health.Dying {
			clr.A = 96
		}
		for _, f := range body.Fixtures() {
			if !f.IsSensor() {
				fillAABB(screen, view, f.AABB(), clr)
			}
		}

		// 朝向：从身体中心指向面朝的一侧
		pos := u.Position()
		cx, cy := view.WorldToScreen(pos.X, pos.Y+u.Height()/4)
		dir := u.Width() / 2
		if !u.IsFaceRight() {
			dir = -dir
		}
		vector.StrokeLine(screen, float32(cx), float32(cy), float32(cx+dir), float32(cy), 2, color.White, false)

		// 血条
		barW := u.Width() + 10
		bx, by := view.WorldToScreen(pos.X-barW/2, pos.Y+u.Height()/2+8)
		vector.DrawFilledRect(screen, float32(bx), float32(by), float32(barW), 4, hpBackColor, false)
		vector.DrawFilledRect(screen, float32(bx), float32(by), float32(barW*HPRatio(u.HP(), health.MaxHP)), 4, hpColor, false)

		if s.ShowActionNames {
			if a := u.CurrentAction(); a != nil {
				ebitenutil.DebugPrintAt(screen, a.Name(), int(bx), int(by)-16)
			}
		}

		if s.ShowDebugShapes {
			strokeAABB(screen, view, u.GroundSensor().Fixture().AABB(), groundSensorClr)
			strokeAABB(screen, view, u.AttackSensor().Fixture().AABB(), attackSensorClr)
		}
	}
}

func (s *RenderSystem) drawBullets(screen *ebiten.Image, view utils.Viewport) {
	for _, id := range ecs.GetEntitiesWith1[*components.BulletComponent](s.entityManager) {
		bullet, _ := ecs.GetComponent[*components.BulletComponent](s.entityManager, id)
		if bullet.Sensor == nil {
			continue
		}
		fillAABB(screen, view, bullet.Sensor.Fixture().AABB(), bulletColor)
	}
}

func (s *RenderSystem) drawEffects(screen *ebiten.Image, view utils.Viewport) {
	ids := ecs.GetEntitiesWith2[*components.EffectComponent, *components.LifetimeComponent](s.entityManager)
	for _, id := range ids {
		effect, _ := ecs.GetComponent[*components.EffectComponent](s.entityManager, id)
		lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)

		def, _ := s.effects.Lookup(effect.Name)
		radius := def.Radius
		if radius <= 0 {
			radius = 12
		}
		clr, err := config.ParseColor(def.Color)
		if err != nil {
			clr = config.DefaultEffectColor
		}

		progress := EffectProgress(lifetime)
		clr.A = uint8(float64(clr.A) * (1 - progress))
		r := radius * utils.Lerp(0.6, 1.2, utils.EaseOutQuad(progress))
		x, y := view.WorldToScreen(effect.Position.X, effect.Position.Y)
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(r), clr, true)
	}
}

// DrawHUD 左上角显示统计信息
// 字体加载失败时退回调试字体
func (s *RenderSystem) DrawHUD(screen *ebiten.Image, lines ...string) {
	face := s.hudFace()
	for i, line := range lines {
		y := 8 + float64(i)*(HUDFontSize+4)
		if face == nil {
			ebitenutil.DebugPrintAt(screen, line, 8, int(y))
			continue
		}

		shadowOp := &text.DrawOptions{}
		shadowOp.GeoM.Translate(9, y+1)
		shadowOp.ColorScale.ScaleWithColor(color.RGBA{0, 0, 0, 180})
		text.Draw(screen, line, face, shadowOp)

		op := &text.DrawOptions{}
		op.GeoM.Translate(8, y)
		op.ColorScale.ScaleWithColor(color.RGBA{230, 230, 240, 255})
		text.Draw(screen, line, face, op)
	}
}

func (s *RenderSystem) hudFace() *text.GoTextFace {
	if s.hudInit {
		return s.hudFont
	}
	s.hudInit = true
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Printf("[RenderSystem] HUD font unavailable: %v", err)
		return nil
	}
	s.hudFont = &text.GoTextFace{Source: source, Size: HUDFontSize}
	return s.hudFont
}

// GroupColor 阵营颜色
func GroupColor(group int) color.RGBA {
	if group < 0 {
		group = -group
	}
	return groupColors[group%len(groupColors)]
}

// HPRatio 血条比例，限制在 [0, 1]
func HPRatio(hp, maxHP float64) float64 {
	if maxHP <= 0 {
		return 0
	}
	return utils.Clamp(hp/maxHP, 0, 1)
}

// EffectProgress 特效已播放的比例，限制在 [0, 1]
func EffectProgress(lifetime *components.LifetimeComponent) float64 {
	if lifetime == nil {
		return 1
	}
	return lifetime.Progress()
}

// fillAABB 填充世界坐标包围盒
func fillAABB(screen *ebiten.Image, view utils.Viewport, box physics.AABB, clr color.Color) {
	x, y := view.WorldToScreen(box.Min.X, box.Max.Y)
	vector.DrawFilledRect(screen, float32(x), float32(y),
		float32(box.Max.X-box.Min.X), float32(box.Max.Y-box.Min.Y), clr, false)
}

func strokeAABB(screen *ebiten.Image, view utils.Viewport, box physics.AABB, clr color.Color) {
	x, y := view.WorldToScreen(box.Min.X, box.Max.Y)
	vector.StrokeRect(screen, float32(x), float32(y),
		float32(box.Max.X-box.Min.X), float32(box.Max.Y-box.Min.Y), 1, clr, false)
}
