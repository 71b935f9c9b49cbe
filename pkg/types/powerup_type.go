// Package types 定义共享的基础类型
package types

import "fmt"

// PowerUpType 定义道具的类型
// 使用字符串值，便于在 YAML 配置与快照编码中直接阅读
type PowerUpType string

const (
	// PowerUpNone 无道具（用于表示没有生效中的增益）
	PowerUpNone PowerUpType = ""

	// 瞬时道具
	PowerUpHealth PowerUpType = "health" // 回复生命
	PowerUpShield PowerUpType = "shield" // 护盾充能

	// 限时增益（互斥，同一时间只能有一个生效）
	PowerUpRapidFire PowerUpType = "rapidFire" // 急速射击
	PowerUpMultiShot PowerUpType = "multiShot" // 散射
)

// AllPowerUpTypes 所有可掉落的道具类型，顺序固定（随机选择依赖该顺序）
var AllPowerUpTypes = []PowerUpType{
	PowerUpHealth,
	PowerUpShield,
	PowerUpRapidFire,
	PowerUpMultiShot,
}

// IsTimed 是否为限时增益类道具
func (t PowerUpType) IsTimed() bool {
	return t == PowerUpRapidFire || t == PowerUpMultiShot
}

// Valid 是否为已知的道具类型
func (t PowerUpType) Valid() bool {
	for _, known := range AllPowerUpTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ParsePowerUpType 从字符串解析道具类型
func ParsePowerUpType(s string) (PowerUpType, error) {
	t := PowerUpType(s)
	if !t.Valid() {
		return PowerUpNone, fmt.Errorf("unknown power-up type %q", s)
	}
	return t, nil
}

// ObstacleType 障碍物类型（仅用于渲染区分）
type ObstacleType string

// ObstacleRock 岩石
const ObstacleRock ObstacleType = "rock"
