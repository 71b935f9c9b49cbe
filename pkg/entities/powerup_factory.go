package entities

import (
	"math/rand"

	"github.com/gonewx/tankarena/pkg/components"
	"github.com/gonewx/tankarena/pkg/ecs"
	"github.com/gonewx/tankarena/pkg/types"
)

// NewPowerUp 在指定位置创建可拾取道具
func NewPowerUp(em *ecs.EntityManager, typ types.PowerUpType, size, x, y float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.CollisionComponent{Size: size})
	ecs.AddComponent(em, id, &components.PowerUpComponent{Type: typ})
	return id
}

// RandomPowerUpType 从全部道具类型中等概率抽取一种
func RandomPowerUpType(rng *rand.Rand) types.PowerUpType {
	return types.AllPowerUpTypes[rng.Intn(len(types.AllPowerUpTypes))]
}
