// Package scenes 坦克竞技场的 ebiten 场景：菜单、对局与结算
//
// 场景只负责读取输入和绘制 Simulation 的快照，所有游戏规则都在 pkg/simulation 中。
package scenes

import (
	"log"
	"time"

	"github.com/gonewx/tankarena/pkg/config"
	"github.com/gonewx/tankarena/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Services 场景间共享的依赖
type Services struct {
	Manager  *game.SceneManager
	Tuning   *config.Tuning
	Scores   *game.BestScoreManager
	Settings *game.SettingsManager

	// Seed 非 0 时每局使用固定种子（便于复现），否则按时间取种子
	Seed int64
}

// NextSeed 返回下一局的随机种子
func (s *Services) NextSeed() int64 {
	if s.Seed != 0 {
		return s.Seed
	}
	return time.Now().UnixNano()
}

// ControlMode 当前设置中的操控方式
func (s *Services) ControlMode() game.ControlMode {
	if s.Settings == nil {
		return game.ControlDirect
	}
	return s.Settings.GetSettings().ControlMode
}

// StartMatch 开始新对局，失败时留在当前场景
func (s *Services) StartMatch() {
	scene, err := NewGameScene(s)
	if err != nil {
		log.Printf("[Scenes] 无法开始对局: %v", err)
		return
	}
	s.Manager.SwitchTo(scene)
}

// ShowMenu 返回主菜单
func (s *Services) ShowMenu() {
	s.Manager.SwitchTo(NewMenuScene(s))
}

// confirmPressed 回车、空格、鼠标左键或触屏点击
func confirmPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
		len(inpututil.AppendJustPressedTouchIDs(nil)) > 0
}
