package components

import "github.com/decker502/platformer/pkg/physics"

// EffectComponent 视觉特效
// 特效在生成位置静止显示，到期由 LifetimeSystem 移除
type EffectComponent struct {
	Name      string       // 特效名（如 "slash"、"blood"）
	Position  physics.Vec2 // 世界坐标
	FaceRight bool         // 生成时所有者的朝向
}
