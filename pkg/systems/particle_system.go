package systems

import (
	"github.com/gonewx/tankarena/pkg/components"
	"github.com/gonewx/tankarena/pkg/config"
	"github.com/gonewx/tankarena/pkg/ecs"
)

// ParticleSystem 推进所有粒子：位移、速度衰减、寿命递减
// 寿命按帧计算，与 deltaTime 无关
type ParticleSystem struct {
	tuning *config.Tuning
}

// NewParticleSystem 创建粒子系统
func NewParticleSystem(tuning *config.Tuning) *ParticleSystem {
	return &ParticleSystem{tuning: tuning}
}

// Update 推进一帧
func (s *ParticleSystem) Update(ctx *TickContext) {
	damping := s.tuning.Particles.Damping
	for _, id := range ecs.GetEntitiesWith3[*components.ParticleComponent, *components.PositionComponent, *components.VelocityComponent](ctx.EM) {
		p, _ := ecs.GetComponent[*components.ParticleComponent](ctx.EM, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](ctx.EM, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](ctx.EM, id)

		pos.X += vel.VX
		pos.Y += vel.VY
		vel.VX *= damping
		vel.VY *= damping
		p.Lifespan--

		if p.Lifespan <= 0 {
			ctx.EM.DestroyEntity(id)
		}
	}
}
