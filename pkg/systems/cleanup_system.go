package systems

import (
	"github.com/gonewx/tankarena/pkg/components"
	"github.com/gonewx/tankarena/pkg/ecs"
)

// CleanupSystem 帧末清理：移除阵亡敌人并真正删除所有已标记实体
// 玩家坦克永远不会被移除
type CleanupSystem struct{}

// NewCleanupSystem 创建清理系统
func NewCleanupSystem() *CleanupSystem {
	return &CleanupSystem{}
}

// Update 返回本帧删除的实体数量
func (s *CleanupSystem) Update(ctx *TickContext) int {
	for _, id := range ecs.GetEntitiesWith2[*components.EnemyComponent, *components.HealthComponent](ctx.EM) {
		health, _ := ecs.GetComponent[*components.HealthComponent](ctx.EM, id)
		if health.IsDead() {
			ctx.EM.DestroyEntity(id)
		}
	}
	return ctx.EM.RemoveMarkedEntities()
}
