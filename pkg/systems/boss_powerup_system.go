package systems

import (
	"log"

	"github.com/gonewx/tankarena/pkg/components"
	"github.com/gonewx/tankarena/pkg/config"
	"github.com/gonewx/tankarena/pkg/ecs"
	"github.com/gonewx/tankarena/pkg/entities"
	"github.com/gonewx/tankarena/pkg/utils"
)

// BossPowerUpSystem Boss 波次中定时刷新道具
//
// 计时器在首次发现存活 Boss 时启动，每隔 BossSpawnInterval 秒在随机空地刷新一个随机道具，
// 刷新成功后重新计时。场上没有 Boss 时计时器解除。
type BossPowerUpSystem struct {
	tuning *config.Tuning
}

// NewBossPowerUpSystem 创建 Boss 道具系统
func NewBossPowerUpSystem(tuning *config.Tuning) *BossPowerUpSystem {
	return &BossPowerUpSystem{tuning: tuning}
}

// Update 推进 Boss 道具计时器
func (s *BossPowerUpSystem) Update(ctx *TickContext) {
	state := ctx.State
	if !s.tuning.IsBossWave(state.Wave) || !s.bossPresent(ctx.EM) {
		state.BossTimerArmed = false
		return
	}

	if !state.BossTimerArmed {
		state.BossTimerArmed = true
		state.BossTimerStart = state.Now
		return
	}

	if state.Now-state.BossTimerStart <= s.tuning.PowerUps.BossSpawnInterval {
		return
	}

	if x, y, ok := s.findSpot(ctx); ok {
		typ := entities.RandomPowerUpType(state.Rand)
		entities.NewPowerUp(ctx.EM, typ, s.tuning.PowerUps.Size, x, y)
		state.BossTimerStart = state.Now
		log.Printf("[BossPowerUpSystem] 刷新道具 %s (%.0f, %.0f)", typ, x, y)
	} else {
		log.Printf("[BossPowerUpSystem] 未找到空位，下一帧重试")
	}
}

func (s *BossPowerUpSystem) bossPresent(em *ecs.EntityManager) bool {
	for _, id := range ecs.GetEntitiesWith2[*components.EnemyComponent, *components.TankComponent](em) {
		tank, _ := ecs.GetComponent[*components.TankComponent](em, id)
		if tank.IsBoss && isAlive(em, id) {
			return true
		}
	}
	return false
}

// findSpot 随机寻找不与障碍物、坦克重叠的位置
func (s *BossPowerUpSystem) findSpot(ctx *TickContext) (float64, float64, bool) {
	cfg := s.tuning.PowerUps
	w, h := s.tuning.Arena.Width, s.tuning.Arena.Height
	rng := ctx.State.Rand

	tanks := ecs.GetEntitiesWith3[*components.TankComponent, *components.PositionComponent, *components.CollisionComponent](ctx.EM)

	for attempt := 0; attempt < cfg.BossSpawnAttempts; attempt++ {
		c := utils.Circle{
			X:    rng.Float64()*(w-2*cfg.BossSpawnMargin) + cfg.BossSpawnMargin,
			Y:    rng.Float64()*(h-2*cfg.BossSpawnMargin) + cfg.BossSpawnMargin,
			Size: cfg.Size,
		}
		if overlapsAny(c, ctx.Before.Obstacles) {
			continue
		}
		free := true
		for _, id := range tanks {
			if ctx.EM.IsMarkedForDestroy(id) {
				continue
			}
			pos, _ := ecs.GetComponent[*components.PositionComponent](ctx.EM, id)
			col, _ := ecs.GetComponent[*components.CollisionComponent](ctx.EM, id)
			if c.Overlaps(utils.Circle{X: pos.X, Y: pos.Y, Size: col.Size}) {
				free = false
				break
			}
		}
		if free {
			return c.X, c.Y, true
		}
	}
	return 0, 0, false
}
