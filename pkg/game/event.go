package game

import (
	"github.com/gonewx/tankarena/pkg/ecs"
	"github.com/gonewx/tankarena/pkg/types"
)

// EventType 离散游戏事件类型
type EventType string

const (
	EventTankDestroyed    EventType = "tankDestroyed"    // 敌方坦克被击毁，Value 为得分
	EventPlayerDamaged    EventType = "playerDamaged"    // 玩家受到伤害，Value 为伤害值
	EventPowerUpCollected EventType = "powerUpCollected" // 玩家拾取道具
	EventGameOver         EventType = "gameOver"         // 对局结束，每局恰好一次
	EventWaveStarted      EventType = "waveStarted"      // 波次敌人已生成，Value 为生成数量
	EventWaveAnnounced    EventType = "waveAnnounced"    // 新波次公告开始
	EventExplosion        EventType = "explosion"        // 爆炸特效，Value 为粒子数
	EventProjectileFired  EventType = "projectileFired"  // 坦克开火，Value 为弹丸数
	EventBuffExpired      EventType = "buffExpired"      // 限时增益到期
)

// Event 一条游戏事件
// 宿主据此播放音效、震屏等，模拟本身不依赖事件的消费结果。
type Event struct {
	Type     EventType         `msgpack:"type"`
	EntityID ecs.EntityID      `msgpack:"entity,omitempty"`
	X        float64           `msgpack:"x,omitempty"`
	Y        float64           `msgpack:"y,omitempty"`
	Value    int               `msgpack:"value,omitempty"`
	Large    bool              `msgpack:"large,omitempty"`
	PowerUp  types.PowerUpType `msgpack:"powerUp,omitempty"`
	Wave     int               `msgpack:"wave,omitempty"`
}

// EventHandler 事件回调
// 在 Update 返回前按事件产生顺序同步调用
type EventHandler func(Event)
