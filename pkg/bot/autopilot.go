// Package bot 无人值守的玩家控制器
//
// Autopilot 只读取快照并输出 game.Input，与真人玩家走完全相同的输入通道，
// 用于观战服务器和长时间的稳定性测试。
package bot

import (
	"math"
	"math/rand"

	"github.com/gonewx/tankarena/pkg/game"
	"github.com/gonewx/tankarena/pkg/utils"
)

// 行为参数
const (
	preferredRange  = 300.0 // 与目标保持的距离
	tooClose        = 180.0 // 小于该距离时后撤
	powerUpDetour   = 220.0 // 该距离内的道具优先拾取
	wallMargin      = 70.0  // 距边界小于该值时反向绕行
	obstacleLook    = 70.0  // 前方障碍物探测距离
	strafeMinPeriod = 2.0   // 绕行方向切换间隔（秒）
	strafeJitter    = 2.0
)

// Autopilot 矢量模式的自动驾驶：瞄准最近的敌人射击，保持距离并绕圈移动
type Autopilot struct {
	rng       *rand.Rand
	strafeDir float64 // +1 逆时针绕行，-1 顺时针
	switchAt  float64
}

// NewAutopilot 创建自动驾驶，seed 决定绕行方向的切换节奏
func NewAutopilot(seed int64) *Autopilot {
	return &Autopilot{
		rng:       rand.New(rand.NewSource(seed)),
		strafeDir: 1,
		switchAt:  math.Inf(-1),
	}
}

// Input 根据当前快照生成本帧输入
func (a *Autopilot) Input(snap *game.Snapshot) game.Input {
	in := game.Input{Mode: game.ControlVector, AimAngle: math.NaN()}
	p := snap.Player
	if snap.GameOver || p.Health <= 0 {
		return in
	}

	if snap.Time >= a.switchAt {
		if !math.IsInf(a.switchAt, -1) {
			a.strafeDir = -a.strafeDir
		}
		a.switchAt = snap.Time + strafeMinPeriod + a.rng.Float64()*strafeJitter
	}

	target, hasTarget := nearestEnemy(snap)
	if hasTarget {
		in.AimAngle = utils.AngleTo(p.X, p.Y, target.X, target.Y)
		in.Fire = true
	}

	heading, magnitude := a.steer(snap, target, hasTarget)
	if magnitude > 0 {
		heading = a.avoid(snap, heading)
		in.Heading = heading
		in.Magnitude = magnitude
	}
	return in
}

// steer 选择移动方向：近处道具 > 与目标保持距离 > 回到场地中央
func (a *Autopilot) steer(snap *game.Snapshot, target game.TankState, hasTarget bool) (float64, float64) {
	p := snap.Player

	if pu, ok := nearestPowerUp(snap); ok {
		d := math.Hypot(pu.X-p.X, pu.Y-p.Y)
		if !hasTarget || d < powerUpDetour {
			return utils.AngleTo(p.X, p.Y, pu.X, pu.Y), 1
		}
	}

	if !hasTarget {
		cx, cy := snap.ArenaWidth/2, snap.ArenaHeight/2
		if math.Hypot(cx-p.X, cy-p.Y) < 100 {
			return 0, 0
		}
		return utils.AngleTo(p.X, p.Y, cx, cy), 0.6
	}

	toTarget := utils.AngleTo(p.X, p.Y, target.X, target.Y)
	dist := math.Hypot(target.X-p.X, target.Y-p.Y)
	switch {
	case dist < tooClose:
		return toTarget + math.Pi, 1
	case dist > preferredRange*1.3:
		return toTarget + a.strafeDir*math.Pi/6, 1
	default:
		return toTarget + a.strafeDir*math.Pi/2, 0.8
	}
}

// avoid 贴墙时反转绕行方向，前方有障碍物时偏转
func (a *Autopilot) avoid(snap *game.Snapshot, heading float64) float64 {
	p := snap.Player
	ax := p.X + math.Cos(heading)*wallMargin
	ay := p.Y + math.Sin(heading)*wallMargin
	if ax < 0 || ax > snap.ArenaWidth || ay < 0 || ay > snap.ArenaHeight {
		a.strafeDir = -a.strafeDir
		heading = utils.AngleTo(p.X, p.Y, snap.ArenaWidth/2, snap.ArenaHeight/2)
	}

	for _, o := range snap.Obstacles {
		probe := utils.Circle{
			X:    p.X + math.Cos(heading)*obstacleLook,
			Y:    p.Y + math.Sin(heading)*obstacleLook,
			Size: p.Size,
		}
		if probe.Overlaps(utils.Circle{X: o.X, Y: o.Y, Size: o.Size}) {
			return heading + a.strafeDir*math.Pi/3
		}
	}
	return heading
}

func nearestEnemy(snap *game.Snapshot) (game.TankState, bool) {
	best := -1
	bestDist := math.Inf(1)
	for i, e := range snap.Enemies {
		if e.Health <= 0 {
			continue
		}
		d := math.Hypot(e.X-snap.Player.X, e.Y-snap.Player.Y)
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return game.TankState{}, false
	}
	return snap.Enemies[best], true
}

func nearestPowerUp(snap *game.Snapshot) (game.PowerUpState, bool) {
	best := -1
	bestDist := math.Inf(1)
	for i, pu := range snap.PowerUps {
		d := math.Hypot(pu.X-snap.Player.X, pu.Y-snap.Player.Y)
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return game.PowerUpState{}, false
	}
	return snap.PowerUps[best], true
}
