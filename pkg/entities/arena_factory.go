package entities

import (
	"log"
	"math"
	"math/rand"

	"github.com/gonewx/tankarena/pkg/components"
	"github.com/gonewx/tankarena/pkg/config"
	"github.com/gonewx/tankarena/pkg/ecs"
	"github.com/gonewx/tankarena/pkg/types"
	"github.com/gonewx/tankarena/pkg/utils"
)

// NewObstacle 创建岩石障碍物
func NewObstacle(em *ecs.EntityManager, x, y, size, rotation float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.CollisionComponent{Size: size})
	ecs.AddComponent(em, id, &components.ObstacleComponent{Rotation: rotation, Type: types.ObstacleRock})
	return id
}

// GenerateObstacles 在竞技场内随机布置障碍物
//
// 采样区域为 [margin, size-margin]，拒绝距中心小于 CenterClearance 或与已放置障碍物重叠的候选点。
// 每个障碍物最多采样 MaxPlacementAttempts 次，耗尽后放弃剩余障碍物并记录日志，返回实际放置的列表。
func GenerateObstacles(em *ecs.EntityManager, rng *rand.Rand, arena config.ArenaConfig) []ecs.EntityID {
	placed := make([]utils.Circle, 0, arena.ObstacleCount)
	ids := make([]ecs.EntityID, 0, arena.ObstacleCount)
	cx, cy := arena.Width/2, arena.Height/2

	for len(ids) < arena.ObstacleCount {
		candidate, ok := sampleObstacle(rng, arena, cx, cy, placed)
		if !ok {
			log.Printf("[ArenaGenerator] 障碍物放置重试耗尽，仅放置 %d/%d 个", len(ids), arena.ObstacleCount)
			break
		}
		placed = append(placed, candidate)
		ids = append(ids, NewObstacle(em, candidate.X, candidate.Y, candidate.Size, rng.Float64()*2*math.Pi))
	}

	return ids
}

func sampleObstacle(rng *rand.Rand, arena config.ArenaConfig, cx, cy float64, placed []utils.Circle) (utils.Circle, bool) {
	for attempt := 0; attempt < arena.MaxPlacementAttempts; attempt++ {
		c := utils.Circle{
			X:    rng.Float64()*(arena.Width-2*arena.ObstacleMargin) + arena.ObstacleMargin,
			Y:    rng.Float64()*(arena.Height-2*arena.ObstacleMargin) + arena.ObstacleMargin,
			Size: arena.ObstacleSizeMin + rng.Float64()*(arena.ObstacleSizeMax-arena.ObstacleSizeMin),
		}
		if math.Hypot(c.X-cx, c.Y-cy) < arena.CenterClearance {
			continue
		}
		free := true
		for _, o := range placed {
			if c.Overlaps(o) {
				free = false
				break
			}
		}
		if free {
			return c, true
		}
	}
	return utils.Circle{}, false
}
