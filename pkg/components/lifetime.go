package components

// LifetimeComponent 限时实体的存在时间
// 子弹和特效生成时挂载，到期后由 LifetimeSystem 标记删除
type LifetimeComponent struct {
	MaxLifetime     float64 // 最长存在时间（秒）
	CurrentLifetime float64 // 已存在时间（秒）
	IsExpired       bool
}

// Advance 累加存在时间，返回是否已到期
func (l *LifetimeComponent) Advance(dt float64) bool {
	l.CurrentLifetime += dt
	if l.CurrentLifetime >= l.MaxLifetime {
		l.IsExpired = true
	}
	return l.IsExpired
}

// Progress 已存在时间的占比 0 ~ 1，MaxLifetime 不为正时视为已结束
func (l *LifetimeComponent) Progress() float64 {
	if l.MaxLifetime <= 0 {
		return 1
	}
	p := l.CurrentLifetime / l.MaxLifetime
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}
