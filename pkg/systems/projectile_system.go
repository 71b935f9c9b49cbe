package systems

import (
	"github.com/gonewx/tankarena/pkg/components"
	"github.com/gonewx/tankarena/pkg/config"
	"github.com/gonewx/tankarena/pkg/ecs"
	"github.com/gonewx/tankarena/pkg/entities"
	"github.com/gonewx/tankarena/pkg/game"
	"github.com/gonewx/tankarena/pkg/utils"
)

// ProjectileSystem 炮弹飞行与伤害结算
//
// 按创建顺序处理每枚炮弹：前进一步，出界即销毁；否则依次检测障碍物、
// 以及按 [玩家, 敌人...] 顺序检测第一个非发射者的存活坦克。
// 每枚炮弹最多命中一个目标。
type ProjectileSystem struct {
	tuning  *config.Tuning
	emitter *ParticleEmitter
}

// NewProjectileSystem 创建炮弹系统
func NewProjectileSystem(tuning *config.Tuning, emitter *ParticleEmitter) *ProjectileSystem {
	return &ProjectileSystem{tuning: tuning, emitter: emitter}
}

// Update 推进并结算本帧所有炮弹
func (s *ProjectileSystem) Update(ctx *TickContext) {
	em := ctx.EM
	targets := s.targetOrder(ctx)

	for _, id := range ecs.GetEntitiesWith3[*components.ProjectileComponent, *components.PositionComponent, *components.VelocityComponent](em) {
		if em.IsMarkedForDestroy(id) {
			continue
		}
		proj, _ := ecs.GetComponent[*components.ProjectileComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](em, id)
		size := s.tuning.Projectile.Size
		if col, ok := ecs.GetComponent[*components.CollisionComponent](em, id); ok {
			size = col.Size
		}

		pos.X += vel.VX
		pos.Y += vel.VY

		if pos.X < 0 || pos.X > s.tuning.Arena.Width || pos.Y < 0 || pos.Y > s.tuning.Arena.Height {
			em.DestroyEntity(id)
			continue
		}

		shell := utils.Circle{X: pos.X, Y: pos.Y, Size: size}
		if overlapsAny(shell, ctx.Before.Obstacles) {
			s.emitter.EmitExplosion(ctx, pos.X, pos.Y, s.tuning.Particles.ObstacleHitCount, false)
			em.DestroyEntity(id)
			continue
		}

		for _, target := range targets {
			if target.ID == proj.OwnerID || !isAlive(em, target.ID) {
				continue
			}
			if !shell.Overlaps(target.Circle()) {
				continue
			}
			s.emitter.EmitExplosion(ctx, pos.X, pos.Y, s.tuning.Particles.TankHitCount, false)
			em.DestroyEntity(id)
			s.applyDamage(ctx, target.ID, proj.Damage)
			break
		}
	}
}

// targetOrder 命中检测顺序：玩家优先，其后为敌人（创建顺序）
func (s *ProjectileSystem) targetOrder(ctx *TickContext) []TankView {
	targets := make([]TankView, 0, len(ctx.Before.Enemies)+1)
	if ctx.Before.HasPlayer {
		targets = append(targets, ctx.Before.Player)
	}
	return append(targets, ctx.Before.Enemies...)
}

// ApplyDamage 对坦克结算一次伤害
// 护盾大于 0 时只扣护盾且不溢出到生命值；生命值扣减后钳制到 0。
func ApplyDamage(tank *components.TankComponent, health *components.HealthComponent, damage int, now float64) {
	tank.LastHitTime = now
	if tank.Shield > 0 {
		tank.Shield = max(0, tank.Shield-damage)
		return
	}
	health.CurrentHealth = max(0, health.CurrentHealth-damage)
}

func (s *ProjectileSystem) applyDamage(ctx *TickContext, targetID ecs.EntityID, damage int) {
	em := ctx.EM
	tank, ok := ecs.GetComponent[*components.TankComponent](em, targetID)
	if !ok {
		return
	}
	health, ok := ecs.GetComponent[*components.HealthComponent](em, targetID)
	if !ok {
		return
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, targetID)

	ApplyDamage(tank, health, damage, ctx.State.Now)

	if tank.IsPlayer {
		ctx.State.Emit(game.Event{
			Type:     game.EventPlayerDamaged,
			EntityID: targetID,
			X:        pos.X,
			Y:        pos.Y,
			Value:    damage,
		})
		if health.IsDead() && !ctx.State.GameOver {
			ctx.State.GameOver = true
			s.emitter.EmitExplosion(ctx, pos.X, pos.Y, s.tuning.Particles.PlayerDeathCount, true)
			ctx.State.Emit(game.Event{
				Type:     game.EventGameOver,
				EntityID: targetID,
				X:        pos.X,
				Y:        pos.Y,
				Value:    ctx.State.Score,
				Wave:     ctx.State.Wave,
			})
		}
		return
	}

	if !health.IsDead() {
		return
	}

	killScore := 0
	if ai, ok := ecs.GetComponent[*components.EnemyComponent](em, targetID); ok {
		killScore = ai.KillScore
	}
	ctx.State.AddScore(killScore)
	ctx.State.Emit(game.Event{
		Type:     game.EventTankDestroyed,
		EntityID: targetID,
		X:        pos.X,
		Y:        pos.Y,
		Value:    killScore,
		Wave:     ctx.State.Wave,
	})

	count := s.tuning.Particles.EnemyDeathCount
	if tank.IsBoss {
		count = s.tuning.Particles.BossDeathCount
	}
	s.emitter.EmitExplosion(ctx, pos.X, pos.Y, count, true)

	if !tank.IsBoss && ctx.State.Rand.Float64() < s.tuning.PowerUps.DropChance {
		typ := entities.RandomPowerUpType(ctx.State.Rand)
		entities.NewPowerUp(em, typ, s.tuning.PowerUps.Size, pos.X, pos.Y)
	}
}
