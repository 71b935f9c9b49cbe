package components

import "github.com/gonewx/tankarena/pkg/ecs"

// ProjectileComponent 炮弹数据
// 炮弹不会击中发射者自身
type ProjectileComponent struct {
	OwnerID  ecs.EntityID // 发射者实体ID
	Damage   int          // 伤害
	Rotation float64      // 飞行朝向（弧度）
}
