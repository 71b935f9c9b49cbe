package entities

import (
	"math"

	"github.com/gonewx/tankarena/pkg/components"
	"github.com/gonewx/tankarena/pkg/config"
	"github.com/gonewx/tankarena/pkg/ecs"
)

// MuzzlePosition 返回炮弹的出膛位置：坦克中心沿射击方向偏移半个车身
func MuzzlePosition(x, y, tankSize, angle float64) (float64, float64) {
	return x + math.Cos(angle)*tankSize*0.5, y + math.Sin(angle)*tankSize*0.5
}

// NewProjectile 创建炮弹实体
// 炮弹以 cfg.Speed 沿 angle 匀速直线飞行，存活超过 cfg.MaxLifetime 后由 LifetimeSystem 回收。
func NewProjectile(em *ecs.EntityManager, cfg config.ProjectileConfig, owner ecs.EntityID, x, y, angle float64, damage int) ecs.EntityID {
	id := em.CreateEntity()

	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.VelocityComponent{
		VX: math.Cos(angle) * cfg.Speed,
		VY: math.Sin(angle) * cfg.Speed,
	})
	ecs.AddComponent(em, id, &components.CollisionComponent{Size: cfg.Size})
	ecs.AddComponent(em, id, &components.ProjectileComponent{
		OwnerID:  owner,
		Damage:   damage,
		Rotation: angle,
	})
	if cfg.MaxLifetime > 0 {
		ecs.AddComponent(em, id, &components.LifetimeComponent{MaxLifetime: cfg.MaxLifetime})
	}

	return id
}
