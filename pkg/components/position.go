package components

// PositionComponent 实体在竞技场中的中心坐标（像素，世界坐标）
type PositionComponent struct {
	X float64
	Y float64
}

// VelocityComponent 实体速度（像素/帧）
// 用于子弹与粒子；坦克由控制系统直接计算位移，不使用该组件
type VelocityComponent struct {
	VX float64
	VY float64
}
