package systems

import (
	"github.com/gonewx/tankarena/pkg/components"
	"github.com/gonewx/tankarena/pkg/ecs"
	"github.com/gonewx/tankarena/pkg/game"
	"github.com/gonewx/tankarena/pkg/utils"
)

// TickContext 单帧上下文
// 由 Simulation 在每帧开始时构造并依次传给各系统，系统本身只持有配置。
type TickContext struct {
	EM        *ecs.EntityManager
	State     *game.GameState
	Before    *WorldView // 本帧开始时的坦克与障碍物位置
	Input     game.Input // 已清洗的玩家输入
	DeltaTime float64    // 本帧时长（秒），已截断到 MaxFrameTime
}

// TankView 坦克在帧开始时的位置
type TankView struct {
	ID   ecs.EntityID
	X, Y float64
	Size float64
}

// Circle 转换为碰撞圆
func (t TankView) Circle() utils.Circle {
	return utils.Circle{X: t.X, Y: t.Y, Size: t.Size}
}

// WorldView 帧开始时的世界快照
//
// 跨实体读取位置（移动阻挡、瞄准、命中判定）统一使用该快照，
// 结果因此与实体迭代顺序无关。生命值则始终读取实时值：本帧内被击毁的坦克立即失去碰撞。
type WorldView struct {
	Player    TankView
	HasPlayer bool
	Enemies   []TankView // 帧开始时存活的敌方坦克，按创建顺序
	Obstacles []utils.Circle
}

// CaptureWorldView 记录当前帧开始时的世界快照
func CaptureWorldView(em *ecs.EntityManager, playerID ecs.EntityID) *WorldView {
	w := &WorldView{}

	if view, ok := tankView(em, playerID); ok {
		w.Player = view
		w.HasPlayer = true
	}

	for _, id := range ecs.GetEntitiesWith2[*components.EnemyComponent, *components.TankComponent](em) {
		if !isAlive(em, id) {
			continue
		}
		if view, ok := tankView(em, id); ok {
			w.Enemies = append(w.Enemies, view)
		}
	}

	for _, id := range ecs.GetEntitiesWith3[*components.ObstacleComponent, *components.PositionComponent, *components.CollisionComponent](em) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		col, _ := ecs.GetComponent[*components.CollisionComponent](em, id)
		w.Obstacles = append(w.Obstacles, utils.Circle{X: pos.X, Y: pos.Y, Size: col.Size})
	}

	return w
}

func tankView(em *ecs.EntityManager, id ecs.EntityID) (TankView, bool) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		return TankView{}, false
	}
	col, ok := ecs.GetComponent[*components.CollisionComponent](em, id)
	if !ok {
		return TankView{}, false
	}
	return TankView{ID: id, X: pos.X, Y: pos.Y, Size: col.Size}, true
}

// isAlive 坦克当前是否存活（实时生命值 > 0 且未被标记删除）
func isAlive(em *ecs.EntityManager, id ecs.EntityID) bool {
	if em.IsMarkedForDestroy(id) {
		return false
	}
	health, ok := ecs.GetComponent[*components.HealthComponent](em, id)
	return ok && !health.IsDead()
}

// overlapsAny 候选圆是否与任一障碍物相交
func overlapsAny(c utils.Circle, obstacles []utils.Circle) bool {
	for _, o := range obstacles {
		if c.Overlaps(o) {
			return true
		}
	}
	return false
}

// overlapsLiveTank 候选圆是否与除 self 外任一存活坦克（帧开始位置）相交
func overlapsLiveTank(em *ecs.EntityManager, c utils.Circle, tanks []TankView, self ecs.EntityID) bool {
	for _, t := range tanks {
		if t.ID == self || !isAlive(em, t.ID) {
			continue
		}
		if c.Overlaps(t.Circle()) {
			return true
		}
	}
	return false
}
