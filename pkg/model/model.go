// Package model 实现单位的动画播放器
//
// Model 只负责动画时间轴：当前动画名、播放进度、循环、速度、过渡时长和表情（look）。
// 非循环动画播放完毕时，通知订阅了该动画名的结束处理器。
// 订阅返回 Token，取消订阅使用 Token，不依赖处理器的对象身份。
package model

import (
	"log"
	"sort"

	"github.com/decker502/platformer/pkg/config"
	"github.com/decker502/platformer/pkg/physics"
)

// Token 动画结束订阅凭证，0 为无效值
type Token uint64

// EndHandler 动画结束处理器，参数为结束的动画名
type EndHandler func(animation string)

type subscription struct {
	animation string
	handler   EndHandler
}

// Model 动画播放器
type Model struct {
	def *config.ModelDef

	current  string
	elapsed  float64
	playing  bool
	loop     bool
	speed    float64
	recovery float64
	look     string

	nextToken     Token
	subscriptions map[Token]subscription
}

// New 创建动画播放器
// def 为 nil 时使用空定义（所有动画按默认时长播放）
func New(def *config.ModelDef) *Model {
	if def == nil {
		def = &config.ModelDef{}
	}
	return &Model{
		def:           def,
		speed:         1,
		nextToken:     1,
		subscriptions: make(map[Token]subscription),
	}
}

// Def 返回模型定义
func (m *Model) Def() *config.ModelDef { return m.def }

// Play 从头播放指定动画
func (m *Model) Play(name string) {
	m.current = name
	m.elapsed = 0
	m.playing = true
}

// Resume 继续播放指定动画
// 如果当前动画就是 name，从暂停处继续；否则从头播放 name
func (m *Model) Resume(name string) {
	if m.current == name {
		m.playing = true
		return
	}
	m.Play(name)
}

// Pause 暂停当前动画，保留进度
func (m *Model) Pause() {
	m.playing = false
}

// Stop 停止当前动画并回到起始帧，不触发结束处理器
func (m *Model) Stop() {
	m.playing = false
	m.elapsed = 0
}

// SetLoop 设置是否循环
func (m *Model) SetLoop(loop bool) { m.loop = loop }

// IsLoop 是否循环
func (m *Model) IsLoop() bool { return m.loop }

// SetSpeed 设置播放速度倍率
func (m *Model) SetSpeed(speed float64) { m.speed = speed }

// Speed 播放速度倍率
func (m *Model) Speed() float64 { return m.speed }

// SetRecovery 设置动画切换的过渡时长（秒）
func (m *Model) SetRecovery(recovery float64) { m.recovery = recovery }

// Recovery 过渡时长
func (m *Model) Recovery() float64 { return m.recovery }

// SetLook 设置表情
func (m *Model) SetLook(look string) { m.look = look }

// Look 当前表情
func (m *Model) Look() string { return m.look }

// CurrentAnimationName 当前动画名
func (m *Model) CurrentAnimationName() string { return m.current }

// IsPlaying 是否正在播放
func (m *Model) IsPlaying() bool { return m.playing }

// Elapsed 当前动画已播放时长（秒，已乘速度）
func (m *Model) Elapsed() float64 { return m.elapsed }

// KeyPoint 返回模型定义中的关键点
func (m *Model) KeyPoint(name string) physics.Vec2 { return m.def.KeyPoint(name) }

// IsFaceRight 模型素材默认是否朝右
func (m *Model) IsFaceRight() bool { return m.def.FaceRight }

// Subscribe 订阅指定动画的结束事件
func (m *Model) Subscribe(animation string, handler EndHandler) Token {
	token := m.nextToken
	m.nextToken++
	m.subscriptions[token] = subscription{animation: animation, handler: handler}
	return token
}

// Unsubscribe 取消订阅，未知 Token 忽略
func (m *Model) Unsubscribe(token Token) {
	delete(m.subscriptions, token)
}

// HandlerCount 返回指定动画的订阅数量
func (m *Model) HandlerCount(animation string) int {
	n := 0
	for _, s := range m.subscriptions {
		if s.animation == animation {
			n++
		}
	}
	return n
}

// Update 推进动画时间轴
func (m *Model) Update(dt float64) {
	if !m.playing || m.current == "" {
		return
	}
	m.elapsed += dt * m.speed
	duration := m.def.Duration(m.current)
	if m.elapsed < duration {
		return
	}
	if m.loop {
		if duration > 0 {
			for m.elapsed >= duration {
				m.elapsed -= duration
			}
		} else {
			m.elapsed = 0
		}
		return
	}
	m.elapsed = duration
	m.playing = false
	m.notifyEnd(m.current)
}

// notifyEnd 按订阅顺序调用处理器
// 处理器中可能取消订阅或重新播放动画，所以先复制处理器列表
func (m *Model) notifyEnd(animation string) {
	tokens := make([]Token, 0, len(m.subscriptions))
	for token, s := range m.subscriptions {
		if s.animation == animation {
			tokens = append(tokens, token)
		}
	}
	sort.Slice(tokens, func(i, j int) bool { return tokens[i] < tokens[j] })
	for _, token := range tokens {
		s, ok := m.subscriptions[token]
		if !ok {
			continue
		}
		s.handler(animation)
	}
	if len(tokens) == 0 {
		log.Printf("[Model] animation %q ended with no handlers", animation)
	}
}
