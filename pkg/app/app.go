// Package app 提供游戏应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/gonewx/tankarena/pkg/config"
	"github.com/gonewx/tankarena/pkg/game"
	"github.com/gonewx/tankarena/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// AppName gdata 存储使用的应用名
const AppName = "tankarena"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Seed 非 0 时每局使用固定随机种子
	Seed int64
	// TuningPath 外部数值配置文件，为空时使用嵌入的 data/tuning.yaml
	TuningPath string
	// SkipMenu 跳过主菜单直接开始对局
	SkipMenu bool
	// TouchControls 强制使用触屏双摇杆（移动端）
	TouchControls bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	services     *scenes.Services
	verbose      bool
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	tuning, err := loadTuning(cfg.TuningPath)
	if err != nil {
		return nil, fmt.Errorf("数值配置加载失败: %w", err)
	}
	log.Printf("[Config] 竞技场 %.0fx%.0f, Boss 波次 %d 个", tuning.Arena.Width, tuning.Arena.Height, len(tuning.Bosses))

	// gdata 不可用时降级为仅内存存储
	gdataManager, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable: %v (scores and settings will not persist)", err)
		gdataManager = nil
	}

	settings := game.NewSettingsManager(gdataManager)
	if cfg.TouchControls {
		settings.SetControlMode(game.ControlVector)
	}
	sceneManager := game.NewSceneManager()
	services := &scenes.Services{
		Manager:  sceneManager,
		Tuning:   tuning,
		Scores:   game.NewBestScoreManager(gdataManager),
		Settings: settings,
		Seed:     cfg.Seed,
	}

	if settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	if cfg.SkipMenu {
		log.Printf("[App] SkipMenu enabled, starting match directly")
		services.StartMatch()
	}
	if sceneManager.GetCurrentScene() == nil {
		services.ShowMenu()
	}

	return &App{
		sceneManager: sceneManager,
		services:     services,
		verbose:      cfg.Verbose,
	}, nil
}

func loadTuning(path string) (*config.Tuning, error) {
	if path == "" {
		return config.LoadTuning(config.DefaultTuningPath)
	}
	return config.LoadTuningFile(path)
}

// Update 更新游戏逻辑
// 每个 tick 调用一次，deltaTime 取配置的 TPS
func (a *App) Update() error {
	// F11 切换全屏并记住选择
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		fullscreen := !ebiten.IsFullscreen()
		ebiten.SetFullscreen(fullscreen)
		a.services.Settings.SetFullscreen(fullscreen)
		if err := a.services.Settings.Save(); err != nil {
			log.Printf("[App] Warning: Failed to save settings: %v", err)
		}
	}
	// F3 切换帧率显示
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		a.services.Settings.SetShowFPS(!a.services.Settings.GetSettings().ShowFPS)
	}

	a.sceneManager.Update(1.0 / float64(a.services.Tuning.Simulation.TicksPerSecond))
	return nil
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时两侧填充黑边，并用线性滤波缩放
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 逻辑屏幕尺寸等于竞技场尺寸，屏幕坐标即竞技场坐标
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.WindowSize()
}

// WindowSize 竞技场尺寸（像素）
func (a *App) WindowSize() (int, int) {
	return int(a.services.Tuning.Arena.Width), int(a.services.Tuning.Arena.Height)
}

// TicksPerSecond 配置的模拟频率
func (a *App) TicksPerSecond() int {
	return a.services.Tuning.Simulation.TicksPerSecond
}

// Close 关闭当前场景，程序退出时调用
func (a *App) Close() {
	a.sceneManager.Close()
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
