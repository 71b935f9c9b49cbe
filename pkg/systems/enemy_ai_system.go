package systems

import (
	"math"

	"github.com/gonewx/tankarena/pkg/components"
	"github.com/gonewx/tankarena/pkg/config"
	"github.com/gonewx/tankarena/pkg/ecs"
	"github.com/gonewx/tankarena/pkg/utils"
)

// EnemyAISystem 敌方坦克与 Boss 的寻路与射击
//
// 每个存活敌人沿当前车头方向试探一步：越界或与玩家、障碍物、其他存活敌人重叠即视为受阻，
// 受阻时原地加速转向脱困，否则前进并向玩家转向。炮塔每帧对准玩家，
// 冷却结束且视线未被障碍物遮挡时开火。
type EnemyAISystem struct {
	tuning *config.Tuning
}

// NewEnemyAISystem 创建敌方 AI 系统
func NewEnemyAISystem(tuning *config.Tuning) *EnemyAISystem {
	return &EnemyAISystem{tuning: tuning}
}

// Update 更新所有存活敌人
func (s *EnemyAISystem) Update(ctx *TickContext) {
	if !ctx.Before.HasPlayer {
		return
	}
	player := ctx.Before.Player

	for _, id := range ecs.GetEntitiesWith3[*components.EnemyComponent, *components.TankComponent, *components.PositionComponent](ctx.EM) {
		if !isAlive(ctx.EM, id) {
			continue
		}
		s.updateEnemy(ctx, id, player)
	}
}

func (s *EnemyAISystem) updateEnemy(ctx *TickContext, id ecs.EntityID, player TankView) {
	em := ctx.EM
	tank, _ := ecs.GetComponent[*components.TankComponent](em, id)
	ai, _ := ecs.GetComponent[*components.EnemyComponent](em, id)
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	col, okCol := ecs.GetComponent[*components.CollisionComponent](em, id)
	mob, okMob := ecs.GetComponent[*components.MobilityComponent](em, id)
	if !okCol || !okMob {
		return
	}

	// 瞄准与视线判定都基于帧开始时的位置
	startX, startY := pos.X, pos.Y
	angleToPlayer := utils.AngleTo(startX, startY, player.X, player.Y)

	candidate := utils.Circle{
		X:    pos.X + math.Cos(tank.Rotation)*mob.Speed,
		Y:    pos.Y + math.Sin(tank.Rotation)*mob.Speed,
		Size: col.Size,
	}
	if s.blocked(ctx, id, candidate, player) {
		tank.Rotation += mob.TurnSpeed * ai.StuckTurnMultiplier
	} else {
		pos.X, pos.Y = candidate.X, candidate.Y
		tank.Rotation = utils.TurnToward(tank.Rotation, angleToPlayer, mob.TurnSpeed)
	}
	tank.TurretRotation = angleToPlayer

	weapon, ok := ecs.GetComponent[*components.WeaponComponent](em, id)
	if !ok || !offCooldown(ctx.State.Now, tank.LastShotTime, weapon.FireRate) {
		return
	}
	if utils.SegmentOccluded(startX, startY, player.X, player.Y, ctx.Before.Obstacles) {
		return
	}

	var angles []float64
	if weapon.SpreadCount > 1 {
		angles = utils.SpreadAngles(angleToPlayer, weapon.SpreadAngle, weapon.SpreadCount)
	} else {
		jitter := (ctx.State.Rand.Float64() - 0.5) * weapon.AimInaccuracy
		angles = []float64{angleToPlayer + jitter}
	}
	fireVolley(ctx, s.tuning.Projectile, id, startX, startY, col.Size, angles, weapon.Damage)
	tank.LastShotTime = ctx.State.Now
}

// blocked 候选位置是否越界或与玩家、障碍物、其他存活敌人重叠
func (s *EnemyAISystem) blocked(ctx *TickContext, self ecs.EntityID, c utils.Circle, player TankView) bool {
	half := c.Size / 2
	if c.X < half || c.X > s.tuning.Arena.Width-half || c.Y < half || c.Y > s.tuning.Arena.Height-half {
		return true
	}
	if c.Overlaps(player.Circle()) {
		return true
	}
	if overlapsAny(c, ctx.Before.Obstacles) {
		return true
	}
	return overlapsLiveTank(ctx.EM, c, ctx.Before.Enemies, self)
}
