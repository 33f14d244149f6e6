package components

import (
	"github.com/decker502/platformer/pkg/action"
	"github.com/decker502/platformer/pkg/config"
	"github.com/decker502/platformer/pkg/physics"
	"github.com/decker502/platformer/pkg/types"
)

// BulletComponent 远程攻击发射的子弹
// 实现 action.Bullet 接口
type BulletComponent struct {
	Owner  action.Unit
	Def    *config.BulletDef
	Allow  types.TargetAllow    // 发射时复制的目标许可
	OnHit  action.HitTargetFunc // 命中回调，返回 true 时移除子弹
	Detect *physics.Polygon     // 检测形状（以刚体为中心）
	Sensor *physics.Sensor      // 检测传感器

	body *physics.Body
}

// NewBulletComponent 创建子弹组件
func NewBulletComponent(body *physics.Body, detect *physics.Polygon) *BulletComponent {
	return &BulletComponent{body: body, Detect: detect}
}

// Body 子弹刚体
func (b *BulletComponent) Body() *physics.Body { return b.body }

// DetectShape 子弹检测形状
func (b *BulletComponent) DetectShape() *physics.Polygon { return b.Detect }
