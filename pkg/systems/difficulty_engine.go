package systems

import (
	"fmt"

	"github.com/gonewx/tankarena/pkg/config"
)

// DifficultyEngine 难度引擎
// 负责计算每个波次的敌人数量与 Boss 出场
type DifficultyEngine struct {
	tuning *config.Tuning
}

// NewDifficultyEngine 创建新的难度引擎实例
func NewDifficultyEngine(tuning *config.Tuning) *DifficultyEngine {
	return &DifficultyEngine{tuning: tuning}
}

// EnemyCount 计算普通波次的敌人数量
// 公式: wave + BaseEnemyCount - 1，MaxEnemiesPerWave > 0 时封顶
func (d *DifficultyEngine) EnemyCount(wave int) int {
	n := wave + d.tuning.Waves.BaseEnemyCount - 1
	if n < 0 {
		n = 0
	}
	if limit := d.tuning.Waves.MaxEnemiesPerWave; limit > 0 && n > limit {
		return limit
	}
	return n
}

// Boss 返回指定波次的 Boss 配置，不是 Boss 波次时返回 nil, false
func (d *DifficultyEngine) Boss(wave int) (*config.BossProfile, bool) {
	return d.tuning.BossForWave(wave)
}

// WaveMessage 波次公告文本
func (d *DifficultyEngine) WaveMessage(wave int) string {
	if d.tuning.IsBossWave(wave) {
		return fmt.Sprintf("Boss Wave %d", wave)
	}
	return fmt.Sprintf("Wave %d", wave)
}
