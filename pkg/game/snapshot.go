package game

import (
	"image/color"

	"github.com/gonewx/tankarena/pkg/ecs"
	"github.com/gonewx/tankarena/pkg/types"
)

// HitFlashDuration 受击闪白持续时间（秒）
const HitFlashDuration = 0.1

// WavePhase 波次状态机阶段
type WavePhase string

const (
	WaveIdle       WavePhase = "idle"       // 对局尚未开始第一波
	WaveAnnouncing WavePhase = "announcing" // 波次公告倒计时中
	WaveActive     WavePhase = "active"     // 敌人已出场
)

// TankState 坦克快照
type TankState struct {
	ID             ecs.EntityID `msgpack:"id"`
	X              float64      `msgpack:"x"`
	Y              float64      `msgpack:"y"`
	Size           float64      `msgpack:"size"`
	Rotation       float64      `msgpack:"rot"`
	TurretRotation float64      `msgpack:"turret"`
	Health         int          `msgpack:"hp"`
	MaxHealth      int          `msgpack:"maxHp"`
	Shield         int          `msgpack:"shield,omitempty"`
	IsPlayer       bool         `msgpack:"player,omitempty"`
	IsBoss         bool         `msgpack:"boss,omitempty"`
	LastHitTime    float64      `msgpack:"hitAt"`
}

// Flashing 在 now 时刻是否处于受击闪白中
func (t TankState) Flashing(now float64) bool {
	d := now - t.LastHitTime
	return d >= 0 && d < HitFlashDuration
}

// ProjectileState 炮弹快照
type ProjectileState struct {
	ID       ecs.EntityID `msgpack:"id"`
	X        float64      `msgpack:"x"`
	Y        float64      `msgpack:"y"`
	Size     float64      `msgpack:"size"`
	Rotation float64      `msgpack:"rot"`
	OwnerID  ecs.EntityID `msgpack:"owner"`
}

// ObstacleState 障碍物快照
type ObstacleState struct {
	ID       ecs.EntityID       `msgpack:"id"`
	X        float64            `msgpack:"x"`
	Y        float64            `msgpack:"y"`
	Size     float64            `msgpack:"size"`
	Rotation float64            `msgpack:"rot"`
	Type     types.ObstacleType `msgpack:"type"`
}

// PowerUpState 道具快照
type PowerUpState struct {
	ID   ecs.EntityID      `msgpack:"id"`
	X    float64           `msgpack:"x"`
	Y    float64           `msgpack:"y"`
	Size float64           `msgpack:"size"`
	Type types.PowerUpType `msgpack:"type"`
}

// ParticleState 粒子快照
type ParticleState struct {
	X     float64    `msgpack:"x"`
	Y     float64    `msgpack:"y"`
	Size  float64    `msgpack:"size"`
	Alpha float64    `msgpack:"a"` // 剩余寿命比例 (0, 1]
	Color color.RGBA `msgpack:"c"`
}

// Snapshot 某一帧结束时的完整只读视图
// 所有字段均为值拷贝，持有者可以跨帧保存或交给其他 goroutine 编码。
type Snapshot struct {
	MatchID     string            `msgpack:"match"`
	Time        float64           `msgpack:"t"`
	ArenaWidth  float64           `msgpack:"w"`
	ArenaHeight float64           `msgpack:"h"`
	Player      TankState         `msgpack:"p"`
	Enemies     []TankState       `msgpack:"e"`
	Projectiles []ProjectileState `msgpack:"pr"`
	Obstacles   []ObstacleState   `msgpack:"o"`
	PowerUps    []PowerUpState    `msgpack:"pu"`
	Particles   []ParticleState   `msgpack:"pa"`

	Wave          int               `msgpack:"wave"`
	WavePhase     WavePhase         `msgpack:"phase"`
	WaveMessage   string            `msgpack:"msg,omitempty"`
	Score         int               `msgpack:"score"`
	BestScore     int               `msgpack:"best"`
	ActiveBuff    types.PowerUpType `msgpack:"buff,omitempty"`
	BuffRemaining float64           `msgpack:"buffLeft,omitempty"`
	GameOver      bool              `msgpack:"over,omitempty"`
}
