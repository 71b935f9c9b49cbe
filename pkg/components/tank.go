package components

import (
	"math"

	"github.com/gonewx/tankarena/pkg/types"
)

// NeverFired 表示坦克从未开火的时间戳
// 使用 -Inf 让新创建的坦克立即脱离冷却
var NeverFired = math.Inf(-1)

// TankComponent 坦克的运行时状态（玩家、敌人、Boss 共用）
type TankComponent struct {
	Rotation       float64 // 车身朝向（弧度）
	TurretRotation float64 // 炮塔朝向（弧度）

	IsPlayer bool
	IsBoss   bool

	LastShotTime float64 // 上次开火时间（对局内秒数）
	LastHitTime  float64 // 上次被击中时间（用于受击闪白），从未被击中为 NeverFired
	Shield       int     // 护盾值，>0 时优先吸收伤害
}

// HealthComponent 存储实体的生命值信息
// CurrentHealth 在扣血时立即钳制到 0，永远不会为负
type HealthComponent struct {
	CurrentHealth int
	MaxHealth     int
}

// IsDead 生命值是否已耗尽
func (h *HealthComponent) IsDead() bool {
	return h.CurrentHealth <= 0
}

// MobilityComponent 坦克的机动参数
type MobilityComponent struct {
	Speed     float64 // 每帧前进距离（像素）
	TurnSpeed float64 // 每帧最大转向角（弧度）
}

// WeaponComponent 坦克武器参数
type WeaponComponent struct {
	FireRate      float64 // 两次开火的最小间隔（秒）
	SpreadCount   int     // 每次开火的弹丸数，<=1 为单发
	SpreadAngle   float64 // 扇形总张角（弧度）
	AimInaccuracy float64 // 单发瞄准的随机误差总宽度（弧度）
	Damage        int     // 每发弹丸伤害
}

// PlayerComponent 玩家标记组件
type PlayerComponent struct{}

// EnemyComponent 敌方坦克 AI 参数
type EnemyComponent struct {
	KillScore           int     // 击杀得分
	StuckTurnMultiplier float64 // 前方受阻时的转向倍率（脱困用）
}

// BuffComponent 玩家当前的限时增益
//
// 同一时间只有一个限时增益：拾取新的增益会直接覆盖 Type 与 ExpiresAt，
// 旧的截止时间随之失效，不会在之后触发。
type BuffComponent struct {
	Type      types.PowerUpType // 当前增益类型，PowerUpNone 表示无
	ExpiresAt float64           // 截止时间（对局内秒数）
}

// ActiveAt 返回在 now 时刻生效的增益类型
func (b *BuffComponent) ActiveAt(now float64) types.PowerUpType {
	if b.Type == types.PowerUpNone || now >= b.ExpiresAt {
		return types.PowerUpNone
	}
	return b.Type
}

// Remaining 返回增益剩余时间（秒），无增益时为 0
func (b *BuffComponent) Remaining(now float64) float64 {
	if b.ActiveAt(now) == types.PowerUpNone {
		return 0
	}
	return b.ExpiresAt - now
}
