package components

import "github.com/decker502/platformer/pkg/ecs"

// CameraComponent 跟随目标实体的水平镜头
type CameraComponent struct {
	// X 镜头左边缘的世界坐标
	X float64

	// Target 跟随的实体，为 0 时镜头不动
	Target ecs.EntityID

	// ViewWidth 可视区域宽度（像素）
	ViewWidth float64

	// DeadZone 目标距离画面中心小于该值时镜头不动
	DeadZone float64

	// FollowSpeed 跟随速度（像素/秒）
	FollowSpeed float64

	// MinX, MaxX 镜头左边缘的范围
	MinX, MaxX float64
}
