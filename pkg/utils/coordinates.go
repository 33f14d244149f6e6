package utils

// Viewport 画面参数
//
// 世界坐标 Y 轴向上，屏幕坐标 Y 轴向下。地面线（世界 y=0）画在距离画面底部
// GroundMargin 像素处，镜头只做水平移动。
type Viewport struct {
	CameraX      float64 // 画面左边缘对应的世界 x
	Height       float64 // 画面高度（像素）
	GroundMargin float64 // 世界 y=0 到画面底部的距离（像素）
}

// WorldToScreen 世界坐标转屏幕坐标
//
//	screenX = worldX - CameraX
//	screenY = Height - GroundMargin - worldY
func (v Viewport) WorldToScreen(worldX, worldY float64) (screenX, screenY float64) {
	return worldX - v.CameraX, v.Height - v.GroundMargin - worldY
}

// ScreenToWorld 屏幕坐标转世界坐标，WorldToScreen 的逆变换
func (v Viewport) ScreenToWorld(screenX, screenY float64) (worldX, worldY float64) {
	return screenX + v.CameraX, v.Height - v.GroundMargin - screenY
}
