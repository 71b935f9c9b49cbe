package entities

import (
	"image/color"

	"github.com/gonewx/tankarena/pkg/components"
	"github.com/gonewx/tankarena/pkg/ecs"
)

// NewParticle 创建单个视觉粒子
// lifespan 以帧为单位
func NewParticle(em *ecs.EntityManager, x, y, vx, vy, size, lifespan float64, clr color.RGBA) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.VelocityComponent{VX: vx, VY: vy})
	ecs.AddComponent(em, id, &components.ParticleComponent{
		Size:            size,
		Lifespan:        lifespan,
		InitialLifespan: lifespan,
		Color:           clr,
	})
	return id
}
