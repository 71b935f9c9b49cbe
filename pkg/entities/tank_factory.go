package entities

import (
	"math"

	"github.com/gonewx/tankarena/pkg/components"
	"github.com/gonewx/tankarena/pkg/config"
	"github.com/gonewx/tankarena/pkg/ecs"
)

// NewPlayerTank 创建玩家坦克
// 玩家坦克在对局开始时创建且只创建一次，朝上出生，满血无护盾。
func NewPlayerTank(em *ecs.EntityManager, t *config.Tuning, x, y float64) ecs.EntityID {
	id := em.CreateEntity()

	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.CollisionComponent{Size: t.Player.Size})
	ecs.AddComponent(em, id, &components.TankComponent{
		Rotation:       -math.Pi / 2,
		TurretRotation: -math.Pi / 2,
		IsPlayer:       true,
		LastShotTime:   components.NeverFired,
		LastHitTime:    components.NeverFired,
	})
	ecs.AddComponent(em, id, &components.HealthComponent{
		CurrentHealth: t.Player.MaxHealth,
		MaxHealth:     t.Player.MaxHealth,
	})
	ecs.AddComponent(em, id, &components.MobilityComponent{
		Speed:     t.Player.Speed,
		TurnSpeed: t.Player.TurnSpeed,
	})
	ecs.AddComponent(em, id, &components.WeaponComponent{
		FireRate:    t.Player.FireRate,
		SpreadCount: 1,
		Damage:      t.Projectile.Damage,
	})
	ecs.AddComponent(em, id, &components.PlayerComponent{})
	ecs.AddComponent(em, id, &components.BuffComponent{})

	return id
}

// NewEnemyTank 按敌方配置创建普通敌方坦克
func NewEnemyTank(em *ecs.EntityManager, t *config.Tuning, x, y, rotation float64) ecs.EntityID {
	return newAITank(em, t.Enemy, t.Projectile.Damage, false, x, y, rotation, 0)
}

// NewBossTank 在指定位置创建 Boss，车身与炮塔均朝下
func NewBossTank(em *ecs.EntityManager, t *config.Tuning, boss *config.BossProfile, x, y float64) ecs.EntityID {
	return newAITank(em, boss.TankProfile, t.Projectile.Damage, true, x, y, math.Pi/2, math.Pi/2)
}

func newAITank(em *ecs.EntityManager, p config.TankProfile, damage int, isBoss bool, x, y, rotation, turret float64) ecs.EntityID {
	id := em.CreateEntity()

	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.CollisionComponent{Size: p.Size})
	ecs.AddComponent(em, id, &components.TankComponent{
		Rotation:       rotation,
		TurretRotation: turret,
		IsBoss:         isBoss,
		LastShotTime:   components.NeverFired,
		LastHitTime:    components.NeverFired,
	})
	ecs.AddComponent(em, id, &components.HealthComponent{
		CurrentHealth: p.MaxHealth,
		MaxHealth:     p.MaxHealth,
	})
	ecs.AddComponent(em, id, &components.MobilityComponent{
		Speed:     p.Speed,
		TurnSpeed: p.TurnSpeed,
	})
	ecs.AddComponent(em, id, &components.WeaponComponent{
		FireRate:      p.FireRate,
		SpreadCount:   p.SpreadCount,
		SpreadAngle:   p.SpreadAngle,
		AimInaccuracy: p.AimInaccuracy,
		Damage:        damage,
	})
	ecs.AddComponent(em, id, &components.EnemyComponent{
		KillScore:           p.KillScore,
		StuckTurnMultiplier: p.StuckTurnMultiplier,
	})

	return id
}
