package game

import (
	"math/rand"

	"github.com/gonewx/tankarena/pkg/ecs"
	uuid "github.com/satori/go.uuid"
)

// GameState 单局比赛的全局状态
//
// 由 Simulation 持有并在每帧传给各系统，不使用全局单例：
// 同一进程内可以同时运行多局互不干扰的比赛（例如观战服务器）。
type GameState struct {
	MatchID string
	Rand    *rand.Rand

	// Now 对局内累计时间（秒），所有冷却、增益、倒计时都以它为准
	Now float64

	PlayerID ecs.EntityID

	// 波次状态机
	Wave         int
	WavePhase    WavePhase
	WaveDeadline float64 // Announcing 阶段的结束时间
	WaveMessage  string

	Score     int
	BestScore int
	GameOver  bool

	// Boss 波次道具刷新计时器，BossTimerArmed 为 false 时 BossTimerStart 无意义
	BossTimerArmed bool
	BossTimerStart float64 // 计时起点：首次发现 Boss 或上次成功刷新道具的时间

	events []Event
}

// NewGameState 创建新对局状态
// seed 决定本局全部随机行为（障碍物布局、刷怪位置、掉落等）
func NewGameState(seed int64, bestScore int) *GameState {
	return &GameState{
		MatchID:   uuid.NewV4().String(),
		Rand:      rand.New(rand.NewSource(seed)),
		WavePhase: WaveIdle,
		BestScore: bestScore,
		events:    make([]Event, 0, 16),
	}
}

// Emit 记录一条事件，在本帧结束时统一派发
func (gs *GameState) Emit(e Event) {
	gs.events = append(gs.events, e)
}

// AddScore 增加得分，返回新得分
func (gs *GameState) AddScore(points int) int {
	gs.Score += points
	return gs.Score
}

// Events 返回本帧尚未派发的事件（只读）
func (gs *GameState) Events() []Event {
	return gs.events
}

// DrainEvents 取出并清空本帧事件
func (gs *GameState) DrainEvents() []Event {
	if len(gs.events) == 0 {
		return nil
	}
	out := make([]Event, len(gs.events))
	copy(out, gs.events)
	gs.events = gs.events[:0]
	return out
}
