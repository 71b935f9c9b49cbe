package components

// CollisionComponent 圆形碰撞体
// 所有实体都用圆形近似，Size 为直径（像素）
type CollisionComponent struct {
	Size float64
}

// Radius 返回碰撞圆半径
func (c *CollisionComponent) Radius() float64 {
	return c.Size / 2
}
