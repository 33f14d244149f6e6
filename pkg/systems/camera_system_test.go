package systems

import (
	"testing"

	"github.com/decker502/platformer/pkg/action"
	"github.com/decker502/platformer/pkg/ecs"
)

// TestCameraSystem_NewCameraSystem 测试镜头系统的创建
func TestCameraSystem_NewCameraSystem(t *testing.T) {
	em := ecs.NewEntityManager()
	cs := NewCameraSystem(em, 640, 0, 1000)

	cam := cs.Camera()
	if cam == nil {
		t.Fatal("CameraComponent not added to camera entity")
	}
	if cam.ViewWidth != 640 || cam.MinX != 0 || cam.MaxX != 1000 {
		t.Errorf("camera = %+v", cam)
	}
	if cam.DeadZone != DefaultCameraDeadZone || cam.FollowSpeed != DefaultCameraFollowSpeed {
		t.Error("default dead zone and follow speed not applied")
	}
}

// TestCameraSystem_Follow 测试镜头跟随
func TestCameraSystem_Follow(t *testing.T) {
	tests := []struct {
		name     string
		targetX  float64
		startX   float64
		wantMove int // -1 向左, 0 不动, 1 向右
	}{
		{"目标在死区内", 350, 0, 0},
		{"目标在右侧", 600, 0, 1},
		{"目标在左侧", 100, 300, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			em := ecs.NewEntityManager()
			world := systemWorld()
			id, _ := spawnUnit(t, em, world, action.NewRegistry(nil), systemTestDef("hero"), tt.targetX, 1)
			cs := NewCameraSystem(em, 640, 0, 1000)
			cs.Follow(id)
			cs.Camera().X = tt.startX

			// When
			cs.Update(0.1)

			// Then
			got := cs.X()
			switch {
			case tt.wantMove == 0 && got != tt.startX:
				t.Errorf("camera moved to %.1f, want %.1f", got, tt.startX)
			case tt.wantMove > 0 && got <= tt.startX:
				t.Errorf("camera x = %.1f, want > %.1f", got, tt.startX)
			case tt.wantMove < 0 && got >= tt.startX:
				t.Errorf("camera x = %.1f, want < %.1f", got, tt.startX)
			}
			if step := got - tt.startX; step > DefaultCameraFollowSpeed*0.1 || -step > DefaultCameraFollowSpeed*0.1 {
				t.Errorf("camera step %.1f exceeds follow speed", step)
			}
		})
	}
}

// TestCameraSystem_Clamp 镜头不超出范围
func TestCameraSystem_Clamp(t *testing.T) {
	em := ecs.NewEntityManager()
	world := systemWorld()
	id, _ := spawnUnit(t, em, world, action.NewRegistry(nil), systemTestDef("hero"), -500, 1)
	cs := NewCameraSystem(em, 640, 0, 1000)
	cs.Follow(id)

	cs.Snap()
	if cs.X() != 0 {
		t.Errorf("camera x = %.1f, want clamped to 0", cs.X())
	}
}

// TestCameraSystem_NoTarget 没有目标或目标已删除时镜头不动
func TestCameraSystem_NoTarget(t *testing.T) {
	em := ecs.NewEntityManager()
	world := systemWorld()
	id, _ := spawnUnit(t, em, world, action.NewRegistry(nil), systemTestDef("hero"), 900, 1)
	cs := NewCameraSystem(em, 640, 0, 1000)

	cs.Update(0.1)
	if cs.X() != 0 {
		t.Error("camera without target should not move")
	}

	cs.Follow(id)
	em.DestroyEntity(id)
	cs.Update(0.1)
	if cs.X() != 0 {
		t.Error("camera should ignore a removed target")
	}
}
