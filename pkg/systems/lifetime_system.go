package systems

import (
	"github.com/gonewx/tankarena/pkg/components"
	"github.com/gonewx/tankarena/pkg/ecs"
)

// LifetimeSystem 管理实体的生命周期
// 目前用于炮弹射程：存活超过 MaxLifetime 的炮弹在飞行前被回收
type LifetimeSystem struct{}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem() *LifetimeSystem {
	return &LifetimeSystem{}
}

// Update 更新所有拥有生命周期组件的实体
func (s *LifetimeSystem) Update(ctx *TickContext) {
	for _, id := range ecs.GetEntitiesWith1[*components.LifetimeComponent](ctx.EM) {
		if ctx.EM.IsMarkedForDestroy(id) {
			continue
		}
		lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](ctx.EM, id)
		if !ok || lifetime.MaxLifetime <= 0 {
			continue
		}

		lifetime.CurrentLifetime += ctx.DeltaTime
		if lifetime.CurrentLifetime >= lifetime.MaxLifetime {
			lifetime.IsExpired = true
		}

		// 如果已过期，标记实体待删除
		if lifetime.IsExpired {
			ctx.EM.DestroyEntity(id)
		}
	}
}
