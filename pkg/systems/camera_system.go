package systems

import (
	"math"

	"github.com/decker502/platformer/pkg/components"
	"github.com/decker502/platformer/pkg/ecs"
	"github.com/decker502/platformer/pkg/utils"
)

const (
	// DefaultCameraDeadZone 目标偏离画面中心的容忍距离（像素）
	DefaultCameraDeadZone = 80.0
	// DefaultCameraFollowSpeed 镜头最大跟随速度（像素/秒）
	DefaultCameraFollowSpeed = 600.0
)

// CameraSystem 水平跟随目标单位的镜头
//
// 目标离开画面中心的死区后镜头开始追赶，距离越远追得越快（二次缓出），
// 速度不超过 FollowSpeed。镜头左边缘限制在 [MinX, MaxX]。
type CameraSystem struct {
	entityManager *ecs.EntityManager
	cameraEntity  ecs.EntityID
}

// NewCameraSystem 创建镜头系统并生成镜头实体
//
// 参数:
//   - em: 实体管理器
//   - viewWidth: 画面宽度（像素）
//   - minX, maxX: 镜头左边缘的范围
func NewCameraSystem(em *ecs.EntityManager, viewWidth, minX, maxX float64) *CameraSystem {
	cs := &CameraSystem{entityManager: em}
	cs.cameraEntity = em.CreateEntity()
	ecs.AddComponent(em, cs.cameraEntity, &components.CameraComponent{
		X:           minX,
		ViewWidth:   viewWidth,
		DeadZone:    DefaultCameraDeadZone,
		FollowSpeed: DefaultCameraFollowSpeed,
		MinX:        minX,
		MaxX:        maxX,
	})
	return cs
}

// Camera 镜头组件
func (cs *CameraSystem) Camera() *components.CameraComponent {
	cam, _ := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	return cam
}

// X 镜头左边缘的世界坐标
func (cs *CameraSystem) X() float64 {
	if cam := cs.Camera(); cam != nil {
		return cam.X
	}
	return 0
}

// Follow 设置跟随目标
func (cs *CameraSystem) Follow(target ecs.EntityID) {
	if cam := cs.Camera(); cam != nil {
		cam.Target = target
	}
}

// Snap 立即将目标放到画面中心
func (cs *CameraSystem) Snap() {
	cam := cs.Camera()
	if cam == nil {
		return
	}
	if x, ok := cs.targetX(cam); ok {
		cam.X = utils.Clamp(x-cam.ViewWidth/2, cam.MinX, cam.MaxX)
	}
}

// Update 追赶目标，目标不存在时镜头不动
func (cs *CameraSystem) Update(dt float64) {
	cam := cs.Camera()
	if cam == nil {
		return
	}
	x, ok := cs.targetX(cam)
	if !ok {
		return
	}

	offset := x - (cam.X + cam.ViewWidth/2)
	excess := math.Abs(offset) - cam.DeadZone
	if excess <= 0 {
		return
	}
	desired := cam.X + math.Copysign(excess, offset)

	// 超出死区半个画面宽度时全速追赶
	t := 1.0
	if half := cam.ViewWidth / 2; half > 0 {
		t = math.Min(1, excess/half)
	}
	step := cam.FollowSpeed * utils.EaseOutQuad(t) * dt
	if cam.FollowSpeed <= 0 {
		step = excess
	}
	cam.X = utils.Clamp(utils.Approach(cam.X, desired, step), cam.MinX, cam.MaxX)
}

func (cs *CameraSystem) targetX(cam *components.CameraComponent) (float64, bool) {
	if cam.Target == 0 || cs.entityManager.IsMarkedForDestroy(cam.Target) {
		return 0, false
	}
	comp, ok := ecs.GetComponent[*components.UnitComponent](cs.entityManager, cam.Target)
	if !ok || comp.Unit == nil {
		return 0, false
	}
	return comp.Unit.Position().X, true
}
