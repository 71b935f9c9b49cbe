package systems

import (
	"github.com/gonewx/tankarena/pkg/config"
	"github.com/gonewx/tankarena/pkg/ecs"
	"github.com/gonewx/tankarena/pkg/entities"
	"github.com/gonewx/tankarena/pkg/game"
)

// offCooldown 距上次开火是否已超过 fireRate
func offCooldown(now, lastShot, fireRate float64) bool {
	return now-lastShot > fireRate
}

// fireVolley 从坦克 (x, y) 沿 angles 各发射一枚炮弹，返回炮弹ID
func fireVolley(ctx *TickContext, cfg config.ProjectileConfig, shooter ecs.EntityID, x, y, size float64, angles []float64, damage int) []ecs.EntityID {
	ids := make([]ecs.EntityID, 0, len(angles))
	for _, angle := range angles {
		mx, my := entities.MuzzlePosition(x, y, size, angle)
		ids = append(ids, entities.NewProjectile(ctx.EM, cfg, shooter, mx, my, angle, damage))
	}
	ctx.State.Emit(game.Event{
		Type:     game.EventProjectileFired,
		EntityID: shooter,
		X:        x,
		Y:        y,
		Value:    len(ids),
	})
	return ids
}
