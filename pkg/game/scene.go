package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 场景（菜单、对局、结算等）
// 每个场景拥有独立的更新与绘制逻辑
type Scene interface {
	// Update 按本帧时长（秒）更新场景
	Update(deltaTime float64)

	// Draw 将场景绘制到 screen
	Draw(screen *ebiten.Image)
}

// Closer 可选接口：场景被切换或程序退出前需要释放资源时实现
type Closer interface {
	Close()
}
