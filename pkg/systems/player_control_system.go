package systems

import (
	"math"

	"github.com/gonewx/tankarena/pkg/components"
	"github.com/gonewx/tankarena/pkg/config"
	"github.com/gonewx/tankarena/pkg/ecs"
	"github.com/gonewx/tankarena/pkg/game"
	"github.com/gonewx/tankarena/pkg/types"
	"github.com/gonewx/tankarena/pkg/utils"
)

// PlayerControlSystem 将抽象输入转换为玩家坦克的移动、炮塔朝向与开火
type PlayerControlSystem struct {
	tuning  *config.Tuning
	emitter *ParticleEmitter
}

// NewPlayerControlSystem 创建玩家控制系统
func NewPlayerControlSystem(tuning *config.Tuning, emitter *ParticleEmitter) *PlayerControlSystem {
	return &PlayerControlSystem{tuning: tuning, emitter: emitter}
}

// Update 处理本帧玩家输入
// 玩家已阵亡时不做任何处理
func (s *PlayerControlSystem) Update(ctx *TickContext) {
	em := ctx.EM
	id := ctx.State.PlayerID

	tank, ok := ecs.GetComponent[*components.TankComponent](em, id)
	if !ok {
		return
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	col, _ := ecs.GetComponent[*components.CollisionComponent](em, id)
	mob, _ := ecs.GetComponent[*components.MobilityComponent](em, id)
	if pos == nil || col == nil || mob == nil || !isAlive(em, id) {
		return
	}

	in := ctx.Input
	step := 0.0
	switch in.Mode {
	case game.ControlVector:
		if in.Magnitude > 0 {
			tank.Rotation = utils.TurnToward(tank.Rotation, in.Heading, mob.TurnSpeed)
			step = mob.Speed * in.Magnitude
		}
	default:
		tank.Rotation += in.Turn * mob.TurnSpeed
		step = in.Throttle * mob.Speed
		if in.Throttle < 0 {
			step *= s.tuning.Player.ReverseFactor
		}
	}

	if step != 0 {
		candidate := utils.Circle{
			X:    pos.X + math.Cos(tank.Rotation)*step,
			Y:    pos.Y + math.Sin(tank.Rotation)*step,
			Size: col.Size,
		}
		if !overlapsAny(candidate, ctx.Before.Obstacles) &&
			!overlapsLiveTank(em, candidate, ctx.Before.Enemies, id) {
			pos.X, pos.Y = candidate.X, candidate.Y
		}
	}

	half := col.Size / 2
	pos.X = utils.Clamp(pos.X, half, s.tuning.Arena.Width-half)
	pos.Y = utils.Clamp(pos.Y, half, s.tuning.Arena.Height-half)

	if in.HasAim() {
		tank.TurretRotation = in.AimAngle
	}

	if in.Fire {
		s.tryFire(ctx, id, tank, pos, col)
	}
}

// tryFire 冷却结束时开火
// 急速射击缩短开火间隔，散射改为扇形多发
func (s *PlayerControlSystem) tryFire(ctx *TickContext, id ecs.EntityID, tank *components.TankComponent, pos *components.PositionComponent, col *components.CollisionComponent) {
	weapon, ok := ecs.GetComponent[*components.WeaponComponent](ctx.EM, id)
	if !ok {
		return
	}

	active := types.PowerUpNone
	if buff, ok := ecs.GetComponent[*components.BuffComponent](ctx.EM, id); ok {
		active = buff.ActiveAt(ctx.State.Now)
	}

	fireRate := weapon.FireRate
	if active == types.PowerUpRapidFire {
		fireRate *= s.tuning.PowerUps.RapidFireMultiplier
	}
	if !offCooldown(ctx.State.Now, tank.LastShotTime, fireRate) {
		return
	}

	angles := []float64{tank.TurretRotation}
	if active == types.PowerUpMultiShot {
		angles = utils.SpreadAngles(tank.TurretRotation, s.tuning.PowerUps.MultiShotSpread, s.tuning.PowerUps.MultiShotCount)
	}

	fireVolley(ctx, s.tuning.Projectile, id, pos.X, pos.Y, col.Size, angles, weapon.Damage)
	tank.LastShotTime = ctx.State.Now
	s.emitter.EmitMuzzleFlash(ctx, pos.X, pos.Y, col.Size, tank.TurretRotation)
}
