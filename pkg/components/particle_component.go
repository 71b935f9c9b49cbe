package components

import "image/color"

// ParticleComponent 纯视觉粒子
// 位置与速度分别由 PositionComponent、VelocityComponent 保存，
// 粒子不参与任何碰撞与玩法计算。
type ParticleComponent struct {
	Size            float64    // 直径（像素）
	Lifespan        float64    // 剩余寿命（帧）
	InitialLifespan float64    // 初始寿命（帧），用于渲染时计算透明度
	Color           color.RGBA // 颜色
}
