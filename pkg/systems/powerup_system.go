package systems

import (
	"github.com/gonewx/tankarena/pkg/components"
	"github.com/gonewx/tankarena/pkg/config"
	"github.com/gonewx/tankarena/pkg/ecs"
	"github.com/gonewx/tankarena/pkg/game"
	"github.com/gonewx/tankarena/pkg/types"
	"github.com/gonewx/tankarena/pkg/utils"
)

// PowerUpSystem 道具拾取与限时增益到期
type PowerUpSystem struct {
	tuning *config.Tuning
}

// NewPowerUpSystem 创建道具系统
func NewPowerUpSystem(tuning *config.Tuning) *PowerUpSystem {
	return &PowerUpSystem{tuning: tuning}
}

// Update 先结算到期的增益，再处理本帧拾取
func (s *PowerUpSystem) Update(ctx *TickContext) {
	id := ctx.State.PlayerID
	buff, ok := ecs.GetComponent[*components.BuffComponent](ctx.EM, id)
	if !ok {
		return
	}

	if buff.Type != types.PowerUpNone && ctx.State.Now >= buff.ExpiresAt {
		expired := buff.Type
		buff.Type = types.PowerUpNone
		buff.ExpiresAt = 0
		ctx.State.Emit(game.Event{Type: game.EventBuffExpired, EntityID: id, PowerUp: expired})
	}

	if !ctx.Before.HasPlayer || !isAlive(ctx.EM, id) {
		return
	}
	player := ctx.Before.Player.Circle()

	for _, puID := range ecs.GetEntitiesWith3[*components.PowerUpComponent, *components.PositionComponent, *components.CollisionComponent](ctx.EM) {
		if ctx.EM.IsMarkedForDestroy(puID) {
			continue
		}
		pu, _ := ecs.GetComponent[*components.PowerUpComponent](ctx.EM, puID)
		pos, _ := ecs.GetComponent[*components.PositionComponent](ctx.EM, puID)
		col, _ := ecs.GetComponent[*components.CollisionComponent](ctx.EM, puID)

		if !player.Overlaps(utils.Circle{X: pos.X, Y: pos.Y, Size: col.Size}) {
			continue
		}

		ctx.EM.DestroyEntity(puID)
		s.Apply(ctx, id, pu.Type)
		ctx.State.Emit(game.Event{
			Type:     game.EventPowerUpCollected,
			EntityID: id,
			X:        pos.X,
			Y:        pos.Y,
			PowerUp:  pu.Type,
		})
	}
}

// Apply 对玩家应用道具效果
//
// 回血与护盾为瞬时效果，不影响正在生效的限时增益；
// 限时增益直接覆盖当前增益及其截止时间。
func (s *PowerUpSystem) Apply(ctx *TickContext, playerID ecs.EntityID, typ types.PowerUpType) {
	em := ctx.EM
	switch typ {
	case types.PowerUpHealth:
		if health, ok := ecs.GetComponent[*components.HealthComponent](em, playerID); ok {
			health.CurrentHealth = min(health.MaxHealth, health.CurrentHealth+s.tuning.PowerUps.HealthRestore)
		}
	case types.PowerUpShield:
		if tank, ok := ecs.GetComponent[*components.TankComponent](em, playerID); ok {
			tank.Shield = s.tuning.PowerUps.ShieldCharge
		}
	case types.PowerUpRapidFire, types.PowerUpMultiShot:
		buff, ok := ecs.GetComponent[*components.BuffComponent](em, playerID)
		if !ok {
			return
		}
		duration := s.tuning.PowerUps.RapidFireDuration
		if typ == types.PowerUpMultiShot {
			duration = s.tuning.PowerUps.MultiShotDuration
		}
		buff.Type = typ
		buff.ExpiresAt = ctx.State.Now + duration
	}
}
