package scenes

import (
	"fmt"
	"log"

	"github.com/gonewx/tankarena/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// MenuScene 主菜单：显示最高分与操控方式，确认后开始对局
type MenuScene struct {
	services *Services
}

// NewMenuScene 创建主菜单
func NewMenuScene(services *Services) *MenuScene {
	return &MenuScene{services: services}
}

// Update 处理菜单输入
func (m *MenuScene) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		m.toggleControlMode()
		return
	}
	if confirmPressed() {
		m.services.StartMatch()
	}
}

func (m *MenuScene) toggleControlMode() {
	settings := m.services.Settings
	if settings == nil {
		return
	}
	mode := settings.ToggleControlMode()
	if err := settings.Save(); err != nil {
		log.Printf("[MenuScene] Warning: Failed to save settings: %v", err)
	}
	log.Printf("[MenuScene] 操控方式: %s", mode)
}

// Draw 绘制菜单
func (m *MenuScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	w := m.services.Tuning.Arena.Width
	h := m.services.Tuning.Arena.Height

	best := 0
	if m.services.Scores != nil {
		best = m.services.Scores.LoadBestScore()
	}

	controls := "WASD / arrows to drive, mouse to aim, click to fire"
	if m.services.ControlMode() == game.ControlVector {
		controls = "left stick to drive, right stick to aim (push past 60% to fire)"
	}

	printCentered(screen, "T A N K   A R E N A", w/2, h/3)
	printCentered(screen, fmt.Sprintf("BEST SCORE %d", best), w/2, h/3+40)
	printCentered(screen, fmt.Sprintf("controls: %s  [Tab to switch]", m.services.ControlMode()), w/2, h/2)
	printCentered(screen, controls, w/2, h/2+20)
	printCentered(screen, "press Enter or click to start", w/2, h*2/3)
}
