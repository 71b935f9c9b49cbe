package game

import (
	"math"

	"github.com/gonewx/tankarena/pkg/utils"
)

// ControlMode 玩家操控方式
type ControlMode string

const (
	// ControlDirect 键盘直控：油门 + 转向
	ControlDirect ControlMode = "direct"
	// ControlVector 摇杆矢量：目标朝向 + 推力
	ControlVector ControlMode = "vector"
)

// Valid 是否为已知的操控方式
func (m ControlMode) Valid() bool {
	return m == ControlDirect || m == ControlVector
}

// Input 单帧的抽象操控信号
//
// 宿主每帧构造一个 Input 值传入 Simulation.Update，模拟内部只读取不修改。
type Input struct {
	Mode ControlMode

	// 直控模式
	Throttle float64 // 油门 [-1, 1]，负值为倒车
	Turn     float64 // 转向 [-1, 1]，正值为顺时针

	// 矢量模式
	Heading   float64 // 期望朝向（弧度）
	Magnitude float64 // 推力 [0, 1]

	AimAngle float64 // 炮塔朝向（弧度），非有限值时保持原朝向
	Fire     bool
}

// Sanitize 返回清洗后的输入副本
// NaN/Inf 数值归零（角度类字段标记为无效），油门与转向钳制到 [-1, 1]，推力钳制到 [0, 1]。
func (in Input) Sanitize() Input {
	out := in
	if !out.Mode.Valid() {
		out.Mode = ControlDirect
	}
	out.Throttle = utils.Clamp(finiteOrZero(in.Throttle), -1, 1)
	out.Turn = utils.Clamp(finiteOrZero(in.Turn), -1, 1)
	out.Magnitude = utils.Clamp(finiteOrZero(in.Magnitude), 0, 1)
	if !utils.IsFinite(in.Heading) {
		out.Heading = math.NaN()
		out.Magnitude = 0
	}
	if !utils.IsFinite(in.AimAngle) {
		out.AimAngle = math.NaN()
	}
	return out
}

// HasAim 炮塔朝向是否有效
func (in Input) HasAim() bool {
	return utils.IsFinite(in.AimAngle)
}

func finiteOrZero(v float64) float64 {
	if !utils.IsFinite(v) {
		return 0
	}
	return v
}
