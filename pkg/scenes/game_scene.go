package scenes

import (
	"log"

	"github.com/gonewx/tankarena/pkg/ecs"
	"github.com/gonewx/tankarena/pkg/game"
	"github.com/gonewx/tankarena/pkg/simulation"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// gameOverDelay 玩家阵亡后继续播放爆炸的时间，之后进入结算
const gameOverDelay = 2.0

// MatchStats 对局统计，由事件累计
type MatchStats struct {
	Kills      int
	BossKills  int
	PowerUps   int
	ShotsFired int
}

// GameScene 对局场景
type GameScene struct {
	services *Services
	sim      *simulation.Simulation
	input    *InputController
	mode     game.ControlMode
	snapshot game.Snapshot

	stats       MatchStats
	bestAtStart int
	overTimer   float64
}

// NewGameScene 创建新对局
func NewGameScene(services *Services) (*GameScene, error) {
	best := 0
	var scores game.ScoreStore
	if services.Scores != nil {
		scores = services.Scores
		best = services.Scores.LoadBestScore()
	}

	sim, err := simulation.New(simulation.Options{
		Tuning: services.Tuning,
		Seed:   services.NextSeed(),
		Scores: scores,
	})
	if err != nil {
		return nil, err
	}

	g := &GameScene{
		services:    services,
		sim:         sim,
		input:       NewInputController(services.Tuning.Arena.Width),
		mode:        services.ControlMode(),
		bestAtStart: best,
	}
	g.snapshot = sim.Snapshot()
	sim.Subscribe(g.onEvent)
	return g, nil
}

func (g *GameScene) onEvent(e game.Event) {
	switch e.Type {
	case game.EventTankDestroyed:
		g.stats.Kills++
		if g.wasBoss(e.EntityID) {
			g.stats.BossKills++
		}
	case game.EventPowerUpCollected:
		g.stats.PowerUps++
	case game.EventProjectileFired:
		if e.EntityID == g.snapshot.Player.ID {
			g.stats.ShotsFired++
		}
	case game.EventWaveStarted:
		log.Printf("[GameScene] 第 %d 波开始，敌人 %d", e.Wave, e.Value)
	case game.EventGameOver:
		log.Printf("[GameScene] 对局结束: 得分 %d, 第 %d 波", e.Value, e.Wave)
	}
}

// wasBoss 根据上一帧快照判断被击毁的坦克是否为 Boss
func (g *GameScene) wasBoss(id ecs.EntityID) bool {
	for _, e := range g.snapshot.Enemies {
		if e.ID == id {
			return e.IsBoss
		}
	}
	return false
}

// Update 读取输入并推进模拟
func (g *GameScene) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.services.ShowMenu()
		return
	}

	p := g.snapshot.Player
	in := g.input.Read(g.mode, p.X, p.Y)
	g.sim.Update(deltaTime, in)
	g.snapshot = g.sim.Snapshot()

	if !g.sim.GameOver() {
		return
	}
	g.overTimer += deltaTime
	if g.overTimer >= gameOverDelay {
		g.services.Manager.SwitchTo(NewGameOverScene(g.services, GameOverResult{
			Score:     g.snapshot.Score,
			BestScore: g.snapshot.BestScore,
			NewRecord: g.snapshot.Score > g.bestAtStart,
			Wave:      g.snapshot.Wave,
			Stats:     g.stats,
		}))
	}
}

// Draw 绘制竞技场与 HUD
func (g *GameScene) Draw(screen *ebiten.Image) {
	drawWorld(screen, &g.snapshot)

	showFPS := false
	if g.services.Settings != nil {
		showFPS = g.services.Settings.GetSettings().ShowFPS
	}
	drawHUD(screen, &g.snapshot, showFPS)

	if g.mode == game.ControlVector {
		move, aim := g.input.Sticks()
		drawSticks(screen, move, aim)
	}
	if g.snapshot.GameOver {
		printCentered(screen, "DESTROYED", g.snapshot.ArenaWidth/2, g.snapshot.ArenaHeight/2)
	}
}
