// Package simulation 坦克竞技场的主循环
//
// Simulation 拥有一局比赛的全部实体与状态，宿主每帧调用一次 Update，
// 随后通过 Snapshot 读取画面数据、通过 Subscribe 接收离散事件。
// Simulation 不是并发安全的，应只在一个 goroutine 中使用。
package simulation

import (
	"fmt"
	"log"

	"github.com/gonewx/tankarena/pkg/components"
	"github.com/gonewx/tankarena/pkg/config"
	"github.com/gonewx/tankarena/pkg/ecs"
	"github.com/gonewx/tankarena/pkg/entities"
	"github.com/gonewx/tankarena/pkg/game"
	"github.com/gonewx/tankarena/pkg/systems"
	"github.com/gonewx/tankarena/pkg/utils"
)

// Options 创建对局的参数
type Options struct {
	Tuning *config.Tuning  // 为 nil 时使用 config.DefaultTuning()
	Seed   int64           // 随机种子
	Scores game.ScoreStore // 最高分存储，为 nil 时仅保存在内存
}

// Simulation 单局比赛
type Simulation struct {
	tuning   *config.Tuning
	em       *ecs.EntityManager
	state    *game.GameState
	scores   game.ScoreStore
	handlers []game.EventHandler

	playerControl *systems.PlayerControlSystem
	enemyAI       *systems.EnemyAISystem
	lifetime      *systems.LifetimeSystem
	projectiles   *systems.ProjectileSystem
	powerUps      *systems.PowerUpSystem
	particles     *systems.ParticleSystem
	bossPowerUps  *systems.BossPowerUpSystem
	cleanup       *systems.CleanupSystem
	waves         *systems.WaveSystem
}

// New 创建新对局：生成玩家坦克（位于竞技场中心）与障碍物
func New(opts Options) (*Simulation, error) {
	tuning := opts.Tuning
	if tuning == nil {
		tuning = config.DefaultTuning()
	}
	if err := tuning.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tuning: %w", err)
	}

	scores := opts.Scores
	if scores == nil {
		scores = &game.MemoryScoreStore{}
	}

	em := ecs.NewEntityManager()
	state := game.NewGameState(opts.Seed, scores.LoadBestScore())
	state.PlayerID = entities.NewPlayerTank(em, tuning, tuning.Arena.Width/2, tuning.Arena.Height/2)
	obstacles := entities.GenerateObstacles(em, state.Rand, tuning.Arena)

	emitter := systems.NewParticleEmitter(tuning)
	sim := &Simulation{
		tuning:        tuning,
		em:            em,
		state:         state,
		scores:        scores,
		playerControl: systems.NewPlayerControlSystem(tuning, emitter),
		enemyAI:       systems.NewEnemyAISystem(tuning),
		lifetime:      systems.NewLifetimeSystem(),
		projectiles:   systems.NewProjectileSystem(tuning, emitter),
		powerUps:      systems.NewPowerUpSystem(tuning),
		particles:     systems.NewParticleSystem(tuning),
		bossPowerUps:  systems.NewBossPowerUpSystem(tuning),
		cleanup:       systems.NewCleanupSystem(),
		waves:         systems.NewWaveSystem(tuning, systems.NewDifficultyEngine(tuning)),
	}

	log.Printf("[Simulation] 新对局 %s (seed=%d, 障碍物 %d 个, 最高分 %d)", state.MatchID, opts.Seed, len(obstacles), state.BestScore)
	return sim, nil
}

// Subscribe 注册事件回调
// 回调在 Update 返回前按事件产生顺序同步调用
func (s *Simulation) Subscribe(handler game.EventHandler) {
	if handler != nil {
		s.handlers = append(s.handlers, handler)
	}
}

// Update 推进一帧
//
// deltaTime 为距上一帧的秒数：非有限值或负值按 0 处理，超过 MaxFrameTime 时截断。
// 阶段顺序：玩家 → 敌人 → 炮弹 → 道具 → 粒子 → Boss 道具 → 清理 → 波次。
// 对局结束后只推进粒子，让最后的爆炸播放完。
func (s *Simulation) Update(deltaTime float64, input game.Input) {
	dt := deltaTime
	if !utils.IsFinite(dt) || dt < 0 {
		dt = 0
	}
	if dt > s.tuning.Simulation.MaxFrameTime {
		dt = s.tuning.Simulation.MaxFrameTime
	}
	s.state.Now += dt

	ctx := &systems.TickContext{
		EM:        s.em,
		State:     s.state,
		Before:    systems.CaptureWorldView(s.em, s.state.PlayerID),
		Input:     input.Sanitize(),
		DeltaTime: dt,
	}

	if s.state.GameOver {
		s.particles.Update(ctx)
		s.em.RemoveMarkedEntities()
		s.dispatch()
		return
	}

	s.playerControl.Update(ctx)
	s.enemyAI.Update(ctx)
	s.lifetime.Update(ctx)
	s.projectiles.Update(ctx)
	s.powerUps.Update(ctx)
	s.particles.Update(ctx)
	s.bossPowerUps.Update(ctx)
	s.cleanup.Update(ctx)
	if !s.state.GameOver {
		s.waves.Update(ctx)
	}

	s.persistBestScore()
	s.dispatch()
}

// persistBestScore 得分超过最高分时写回存储，失败只记录日志
func (s *Simulation) persistBestScore() {
	if s.state.Score <= s.state.BestScore {
		return
	}
	s.state.BestScore = s.state.Score
	if err := s.scores.SaveBestScore(s.state.Score); err != nil {
		log.Printf("[Simulation] Warning: Failed to save best score: %v", err)
	}
}

func (s *Simulation) dispatch() {
	events := s.state.DrainEvents()
	for _, e := range events {
		for _, h := range s.handlers {
			h(e)
		}
	}
}

// Tuning 返回本局使用的数值配置
func (s *Simulation) Tuning() *config.Tuning { return s.tuning }

// MatchID 本局唯一标识
func (s *Simulation) MatchID() string { return s.state.MatchID }

// Now 对局内累计时间（秒）
func (s *Simulation) Now() float64 { return s.state.Now }

// Score 当前得分
func (s *Simulation) Score() int { return s.state.Score }

// Wave 当前波次
func (s *Simulation) Wave() int { return s.state.Wave }

// GameOver 对局是否已结束
func (s *Simulation) GameOver() bool { return s.state.GameOver }

// Snapshot 返回当前帧的只读视图
func (s *Simulation) Snapshot() game.Snapshot {
	em := s.em
	now := s.state.Now
	snap := game.Snapshot{
		MatchID:     s.state.MatchID,
		Time:        now,
		ArenaWidth:  s.tuning.Arena.Width,
		ArenaHeight: s.tuning.Arena.Height,
		Wave:        s.state.Wave,
		WavePhase:   s.state.WavePhase,
		WaveMessage: s.state.WaveMessage,
		Score:       s.state.Score,
		BestScore:   s.state.BestScore,
		GameOver:    s.state.GameOver,
	}

	if player, ok := tankState(em, s.state.PlayerID); ok {
		snap.Player = player
	}
	if buff, ok := ecs.GetComponent[*components.BuffComponent](em, s.state.PlayerID); ok {
		snap.ActiveBuff = buff.ActiveAt(now)
		snap.BuffRemaining = buff.Remaining(now)
	}

	for _, id := range ecs.GetEntitiesWith1[*components.EnemyComponent](em) {
		if t, ok := tankState(em, id); ok && t.Health > 0 {
			snap.Enemies = append(snap.Enemies, t)
		}
	}

	for _, id := range ecs.GetEntitiesWith2[*components.ProjectileComponent, *components.PositionComponent](em) {
		proj, _ := ecs.GetComponent[*components.ProjectileComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		size := s.tuning.Projectile.Size
		if col, ok := ecs.GetComponent[*components.CollisionComponent](em, id); ok {
			size = col.Size
		}
		snap.Projectiles = append(snap.Projectiles, game.ProjectileState{
			ID: id, X: pos.X, Y: pos.Y, Size: size, Rotation: proj.Rotation, OwnerID: proj.OwnerID,
		})
	}

	for _, id := range ecs.GetEntitiesWith3[*components.ObstacleComponent, *components.PositionComponent, *components.CollisionComponent](em) {
		obs, _ := ecs.GetComponent[*components.ObstacleComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		col, _ := ecs.GetComponent[*components.CollisionComponent](em, id)
		snap.Obstacles = append(snap.Obstacles, game.ObstacleState{
			ID: id, X: pos.X, Y: pos.Y, Size: col.Size, Rotation: obs.Rotation, Type: obs.Type,
		})
	}

	for _, id := range ecs.GetEntitiesWith3[*components.PowerUpComponent, *components.PositionComponent, *components.CollisionComponent](em) {
		pu, _ := ecs.GetComponent[*components.PowerUpComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		col, _ := ecs.GetComponent[*components.CollisionComponent](em, id)
		snap.PowerUps = append(snap.PowerUps, game.PowerUpState{
			ID: id, X: pos.X, Y: pos.Y, Size: col.Size, Type: pu.Type,
		})
	}

	for _, id := range ecs.GetEntitiesWith2[*components.ParticleComponent, *components.PositionComponent](em) {
		p, _ := ecs.GetComponent[*components.ParticleComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		alpha := 1.0
		if p.InitialLifespan > 0 {
			alpha = utils.Clamp(p.Lifespan/p.InitialLifespan, 0, 1)
		}
		snap.Particles = append(snap.Particles, game.ParticleState{
			X: pos.X, Y: pos.Y, Size: p.Size, Alpha: alpha, Color: p.Color,
		})
	}

	return snap
}

func tankState(em *ecs.EntityManager, id ecs.EntityID) (game.TankState, bool) {
	tank, ok := ecs.GetComponent[*components.TankComponent](em, id)
	if !ok {
		return game.TankState{}, false
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	col, _ := ecs.GetComponent[*components.CollisionComponent](em, id)
	health, _ := ecs.GetComponent[*components.HealthComponent](em, id)
	if pos == nil || col == nil || health == nil {
		return game.TankState{}, false
	}
	return game.TankState{
		ID:             id,
		X:              pos.X,
		Y:              pos.Y,
		Size:           col.Size,
		Rotation:       tank.Rotation,
		TurretRotation: tank.TurretRotation,
		Health:         health.CurrentHealth,
		MaxHealth:      health.MaxHealth,
		Shield:         tank.Shield,
		IsPlayer:       tank.IsPlayer,
		IsBoss:         tank.IsBoss,
		LastHitTime:    tank.LastHitTime,
	}, true
}
