package utils

import "math"

// Circle 圆形碰撞体（中心 + 直径）
// 竞技场内所有实体都用圆形近似，Size 为直径
type Circle struct {
	X, Y float64
	Size float64
}

// Radius 返回半径
func (c Circle) Radius() float64 {
	return c.Size / 2
}

// CirclesOverlap 判断两个圆是否相交
// 当且仅当圆心距离严格小于两半径之和时返回 true（相切不算相交）
//
// 参数:
//   - ax, ay, asize: 第一个圆的圆心与直径
//   - bx, by, bsize: 第二个圆的圆心与直径
func CirclesOverlap(ax, ay, asize, bx, by, bsize float64) bool {
	dist := math.Hypot(ax-bx, ay-by)
	return dist < (asize+bsize)/2
}

// Overlaps 判断两个 Circle 是否相交
func (c Circle) Overlaps(o Circle) bool {
	return CirclesOverlap(c.X, c.Y, c.Size, o.X, o.Y, o.Size)
}

// SegmentOccluded 判断线段 from→to 是否被任一障碍物遮挡
//
// 将障碍物圆心投影到线段上，投影参数 t 只有落在 (0, 1) 开区间内才计入，
// 即障碍物必须位于两点之间，而不是在任一端点的背后。
// 投影点到圆心距离小于障碍物半径则视为遮挡。
// 起点与终点重合时不存在遮挡。
func SegmentOccluded(fromX, fromY, toX, toY float64, obstacles []Circle) bool {
	dx := toX - fromX
	dy := toY - fromY
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return false
	}

	for _, obs := range obstacles {
		t := ((obs.X-fromX)*dx + (obs.Y-fromY)*dy) / lenSq
		if t <= 0 || t >= 1 {
			continue
		}
		closestX := fromX + t*dx
		closestY := fromY + t*dy
		if math.Hypot(closestX-obs.X, closestY-obs.Y) < obs.Radius() {
			return true
		}
	}
	return false
}

// NormalizeAngle 将角度归一化到 (-π, π]
func NormalizeAngle(a float64) float64 {
	n := math.Atan2(math.Sin(a), math.Cos(a))
	if n == -math.Pi {
		return math.Pi
	}
	return n
}

// TurnToward 以不超过 maxStep 的角速度从 current 转向 target
// 选择角度差最小的方向；若剩余差值不超过 maxStep 则直接对准 target
func TurnToward(current, target, maxStep float64) float64 {
	diff := NormalizeAngle(target - current)
	if math.Abs(diff) > maxStep {
		if diff > 0 {
			return current + maxStep
		}
		return current - maxStep
	}
	return target
}

// AngleTo 返回从 (fromX, fromY) 指向 (toX, toY) 的角度
func AngleTo(fromX, fromY, toX, toY float64) float64 {
	return math.Atan2(toY-fromY, toX-fromX)
}

// Clamp 将 v 限制在 [lo, hi] 区间
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// IsFinite 判断浮点数既不是 NaN 也不是 ±Inf
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// SpreadAngles 返回以 center 为中心、总张角为 arc 的 count 个等间距角度
// count <= 1 时只返回 center
func SpreadAngles(center, arc float64, count int) []float64 {
	if count <= 1 {
		return []float64{center}
	}
	angles := make([]float64, count)
	step := arc / float64(count-1)
	start := center - arc/2
	for i := 0; i < count; i++ {
		angles[i] = start + float64(i)*step
	}
	return angles
}
