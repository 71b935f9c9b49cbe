package components

import "github.com/gonewx/tankarena/pkg/types"

// ObstacleComponent 静态障碍物
// 竞技场生成后不再修改
type ObstacleComponent struct {
	Rotation float64            // 仅用于渲染
	Type     types.ObstacleType // 障碍物类型
}
