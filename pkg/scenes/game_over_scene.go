package scenes

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// inputGrace 结算界面出现后忽略确认输入的时间，避免开火键直接跳过结算
const inputGrace = 0.5

// GameOverResult 结算数据
type GameOverResult struct {
	Score     int
	BestScore int
	NewRecord bool
	Wave      int
	Stats     MatchStats
}

// GameOverScene 结算界面
type GameOverScene struct {
	services *Services
	result   GameOverResult
	elapsed  float64
}

// NewGameOverScene 创建结算界面
func NewGameOverScene(services *Services, result GameOverResult) *GameOverScene {
	return &GameOverScene{services: services, result: result}
}

// Update 确认后重开，Esc 返回菜单
func (s *GameOverScene) Update(deltaTime float64) {
	s.elapsed += deltaTime
	if s.elapsed < inputGrace {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.services.ShowMenu()
		return
	}
	if confirmPressed() {
		s.services.StartMatch()
	}
}

// Draw 绘制结算信息
func (s *GameOverScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	w := s.services.Tuning.Arena.Width
	h := s.services.Tuning.Arena.Height
	r := s.result

	printCentered(screen, "G A M E   O V E R", w/2, h/4)
	printCentered(screen, fmt.Sprintf("SCORE %d", r.Score), w/2, h/4+50)
	if r.NewRecord {
		printCentered(screen, "NEW BEST!", w/2, h/4+70)
	} else {
		printCentered(screen, fmt.Sprintf("BEST %d", r.BestScore), w/2, h/4+70)
	}
	printCentered(screen, fmt.Sprintf("reached wave %d", r.Wave), w/2, h/2)
	printCentered(screen, fmt.Sprintf("kills %d (bosses %d)   power-ups %d   shots %d",
		r.Stats.Kills, r.Stats.BossKills, r.Stats.PowerUps, r.Stats.ShotsFired), w/2, h/2+20)
	printCentered(screen, "Enter to play again, Esc for menu", w/2, h*3/4)
}
