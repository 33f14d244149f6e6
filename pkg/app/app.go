// Package app 提供沙盒应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/platformer/pkg/game"
	"github.com/decker502/platformer/pkg/systems"
)

// 逻辑屏幕尺寸
const (
	ScreenWidth  = 960
	ScreenHeight = 540
)

// FixedDeltaTime 每个 tick 的逻辑时间步长（秒）
const FixedDeltaTime = 1.0 / 60.0

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Level 关卡文件路径，为空时使用 DefaultLevelFile
	Level string
	// Mute 不创建音频上下文
	Mute bool
}

// App 是沙盒应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sandbox  *Sandbox
	render   *systems.RenderSystem
	settings *game.SettingsManager
	verbose  bool
	paused   bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化沙盒应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	// 设置存储，打开失败时降级为仅内存设置
	var storage *gdata.Manager
	if m, err := gdata.Open(gdata.Config{AppName: "platformer_sandbox"}); err != nil {
		log.Printf("[App] gdata unavailable: %v (settings will not persist)", err)
	} else {
		storage = m
	}
	settings, err := game.NewSettingsManager(storage)
	if err != nil {
		return nil, fmt.Errorf("设置加载失败: %w", err)
	}

	var audioContext *audio.Context
	if !cfg.Mute {
		audioContext = audio.NewContext(48000)
	}

	levelFile := cfg.Level
	if levelFile == "" {
		levelFile = settings.GetSettings().LastLevel
	}
	sandbox, err := NewSandbox(SandboxOptions{
		LevelFile:    levelFile,
		AudioContext: audioContext,
		Settings:     settings,
		ViewWidth:    ScreenWidth,
	})
	if err != nil && levelFile != cfg.Level {
		// 记录的关卡可能已被删除，退回默认关卡
		log.Printf("[App] Last level %s unavailable: %v", levelFile, err)
		sandbox, err = NewSandbox(SandboxOptions{
			AudioContext: audioContext,
			Settings:     settings,
			ViewWidth:    ScreenWidth,
		})
	}
	if err != nil {
		return nil, err
	}
	settings.SetLastLevel(sandbox.LevelFile())

	render := systems.NewRenderSystem(sandbox.EntityManager(), sandbox.World(), sandbox.Effects())
	render.ShowDebugShapes = settings.GetSettings().ShowDebugShapes
	if settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}
	log.Printf("[App] Sandbox started: level %s", sandbox.Level().ID)

	return &App{
		sandbox:  sandbox,
		render:   render,
		settings: settings,
		verbose:  cfg.Verbose,
	}, nil
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", ScreenWidth, ScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
		a.saveSettings(func(s *game.GameSettings) { s.Fullscreen = ebiten.IsFullscreen() })
	}

	// F3 切换调试轮廓
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		a.render.ShowDebugShapes = !a.render.ShowDebugShapes
		a.saveSettings(func(s *game.GameSettings) { s.ShowDebugShapes = a.render.ShowDebugShapes })
	}

	// F4 切换精确命中点
	if inpututil.IsKeyJustPressed(ebiten.KeyF4) {
		a.sandbox.SetPreciseHit(!a.settings.GetSettings().PreciseHit)
		a.saveSettings(func(*game.GameSettings) {})
	}

	// F5 重新加载动作脚本
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		if err := a.sandbox.ReloadScripts(); err != nil {
			log.Printf("[App] Script reload failed: %v", err)
		}
	}

	// Esc 暂停
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.paused = !a.paused
	}
	if a.paused {
		return nil
	}

	a.sandbox.Step(FixedDeltaTime)
	return nil
}

func (a *App) saveSettings(mutate func(s *game.GameSettings)) {
	if err := a.settings.Update(mutate); err != nil {
		log.Printf("[App] Failed to save settings: %v", err)
	}
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.render.Draw(screen, a.sandbox.CameraX())
	a.render.DrawHUD(screen, a.hudLines()...)
}

func (a *App) hudLines() []string {
	lines := []string{
		fmt.Sprintf("FPS %.0f  level %s  t=%.1fs", ebiten.ActualFPS(), a.sandbox.Level().ID, a.sandbox.Elapsed()),
	}
	if p := a.sandbox.Player(); p != nil {
		name := "-"
		if current := p.CurrentAction(); current != nil {
			name = current.Name()
		}
		lines = append(lines, fmt.Sprintf("%s hp %.0f  action %s  queued %d", p.Name(), p.HP(), name, p.QueueLen()))
	}
	lines = append(lines, fmt.Sprintf("precise hit %v  [F3] shapes [F4] hit [F5] scripts [Esc] pause",
		a.settings.GetSettings().PreciseHit))
	if a.paused {
		lines = append(lines, "PAUSED")
	}
	return lines
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Sandbox 返回沙盒
func (a *App) Sandbox() *Sandbox {
	return a.sandbox
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
