package systems

import (
	"log"
	"math"

	"github.com/gonewx/tankarena/pkg/components"
	"github.com/gonewx/tankarena/pkg/config"
	"github.com/gonewx/tankarena/pkg/ecs"
	"github.com/gonewx/tankarena/pkg/entities"
	"github.com/gonewx/tankarena/pkg/game"
	"github.com/gonewx/tankarena/pkg/utils"
)

// WaveSystem 波次状态机
//
//	Idle ──首帧──▶ Announcing ──倒计时结束──▶ Active ──敌人清空──▶ Announcing ...
//
// 进入 Announcing 时波次加一、玩家回满血（护盾保留）并开始倒计时；
// 倒计时期间状态本身阻止重复进入，无需额外标志。
type WaveSystem struct {
	tuning     *config.Tuning
	difficulty *DifficultyEngine
}

// NewWaveSystem 创建波次系统
func NewWaveSystem(tuning *config.Tuning, difficulty *DifficultyEngine) *WaveSystem {
	return &WaveSystem{tuning: tuning, difficulty: difficulty}
}

// Update 推进波次状态机，应在清理阶段之后调用
func (s *WaveSystem) Update(ctx *TickContext) {
	state := ctx.State
	switch state.WavePhase {
	case game.WaveIdle:
		s.announce(ctx)
	case game.WaveAnnouncing:
		if state.Now >= state.WaveDeadline {
			s.start(ctx)
		}
	case game.WaveActive:
		if LiveEnemyCount(ctx.EM) == 0 {
			s.announce(ctx)
		}
	}
}

// LiveEnemyCount 返回场上存活敌人数量
func LiveEnemyCount(em *ecs.EntityManager) int {
	n := 0
	for _, id := range ecs.GetEntitiesWith1[*components.EnemyComponent](em) {
		if isAlive(em, id) {
			n++
		}
	}
	return n
}

func (s *WaveSystem) announce(ctx *TickContext) {
	state := ctx.State
	state.Wave++
	state.WavePhase = game.WaveAnnouncing
	state.WaveDeadline = state.Now + s.tuning.Waves.StartDelay
	state.WaveMessage = s.difficulty.WaveMessage(state.Wave)

	if health, ok := ecs.GetComponent[*components.HealthComponent](ctx.EM, state.PlayerID); ok {
		health.CurrentHealth = health.MaxHealth
	}

	log.Printf("[WaveSystem] %s", state.WaveMessage)
	state.Emit(game.Event{Type: game.EventWaveAnnounced, Wave: state.Wave})
}

func (s *WaveSystem) start(ctx *TickContext) {
	state := ctx.State
	state.WaveMessage = ""
	state.WavePhase = game.WaveActive

	spawned := 0
	if boss, ok := s.difficulty.Boss(state.Wave); ok {
		entities.NewBossTank(ctx.EM, s.tuning, boss, s.tuning.Arena.Width/2, boss.Size)
		spawned = 1
		log.Printf("[WaveSystem] 第 %d 波 Boss 出场: %s", state.Wave, boss.Name)
	} else {
		want := s.difficulty.EnemyCount(state.Wave)
		spawned = s.spawnEnemies(ctx, want)
		if spawned < want {
			log.Printf("[WaveSystem] 第 %d 波仅生成 %d/%d 个敌人（出生点重试耗尽）", state.Wave, spawned, want)
		}
	}

	state.Emit(game.Event{Type: game.EventWaveStarted, Wave: state.Wave, Value: spawned})
}

// spawnEnemies 在竞技场四边随机位置生成敌人
// 出生点不得与障碍物或已生成的敌人重叠，每个敌人最多尝试 SpawnAttempts 次
func (s *WaveSystem) spawnEnemies(ctx *TickContext, count int) int {
	size := s.tuning.Enemy.Size
	margin := size * s.tuning.Waves.SpawnMarginFactor
	w, h := s.tuning.Arena.Width, s.tuning.Arena.Height
	rng := ctx.State.Rand

	occupied := make([]utils.Circle, 0, count)
	for _, e := range ctx.Before.Enemies {
		if isAlive(ctx.EM, e.ID) {
			occupied = append(occupied, e.Circle())
		}
	}

	spawned := 0
	for i := 0; i < count; i++ {
		for attempt := 0; attempt < s.tuning.Waves.SpawnAttempts; attempt++ {
			var x, y float64
			switch rng.Intn(4) {
			case 0: // 上
				x, y = rng.Float64()*(w-2*margin)+margin, margin
			case 1: // 下
				x, y = rng.Float64()*(w-2*margin)+margin, h-margin
			case 2: // 左
				x, y = margin, rng.Float64()*(h-2*margin)+margin
			default: // 右
				x, y = w-margin, rng.Float64()*(h-2*margin)+margin
			}

			c := utils.Circle{X: x, Y: y, Size: size}
			if overlapsAny(c, ctx.Before.Obstacles) || overlapsAny(c, occupied) {
				continue
			}

			entities.NewEnemyTank(ctx.EM, s.tuning, x, y, rng.Float64()*2*math.Pi)
			occupied = append(occupied, c)
			spawned++
			break
		}
	}
	return spawned
}
