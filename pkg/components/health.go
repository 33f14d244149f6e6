package components

// HealthComponent 跟踪单位生命值变化
// 生命值本身保存在单位属性表中（"hp"），这里只记录上一帧的值用于判断受伤
type HealthComponent struct {
	MaxHP  float64 // 最大生命值
	LastHP float64 // 上一次检查时的生命值
	Dying  bool    // 已开始倒下，倒下动作结束后移除实体
}
