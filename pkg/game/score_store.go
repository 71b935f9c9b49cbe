package game

import (
	"fmt"
	"log"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// ScoreStore 最高分持久化接口
// 模拟在创建时读取一次，在得分超过最高分的帧末写回。
type ScoreStore interface {
	LoadBestScore() int
	SaveBestScore(score int) error
}

// MemoryScoreStore 仅内存的最高分存储，用于测试和无持久化的宿主
type MemoryScoreStore struct {
	Best  int
	Saves int // SaveBestScore 被调用的次数
}

// LoadBestScore 实现 ScoreStore
func (m *MemoryScoreStore) LoadBestScore() int { return m.Best }

// SaveBestScore 实现 ScoreStore
func (m *MemoryScoreStore) SaveBestScore(score int) error {
	m.Best = score
	m.Saves++
	return nil
}

// BestScoreRecord 持久化的最高分记录
type BestScoreRecord struct {
	Score      int       `yaml:"score"`
	AchievedAt time.Time `yaml:"achievedAt"`
}

// 存储路径常量
const (
	scoreObject   = "scores"
	scoreProperty = "best"
)

// BestScoreManager 基于 gdata 的最高分存储
// gdataManager 为 nil 时进入降级模式：仅保存在内存中
type BestScoreManager struct {
	gdataManager *gdata.Manager
	record       BestScoreRecord
}

// NewBestScoreManager 创建最高分管理器并尝试加载已有记录
// 加载失败不是致命错误，记录从 0 开始
func NewBestScoreManager(gdataManager *gdata.Manager) *BestScoreManager {
	m := &BestScoreManager{gdataManager: gdataManager}
	if err := m.load(); err != nil {
		log.Printf("[BestScoreManager] Warning: Failed to load best score: %v (starting from 0)", err)
	}
	return m
}

func (m *BestScoreManager) load() error {
	if m.gdataManager == nil {
		return nil
	}
	if !m.gdataManager.ObjectPropExists(scoreObject, scoreProperty) {
		return nil
	}

	data, err := m.gdataManager.LoadObjectProp(scoreObject, scoreProperty)
	if err != nil {
		return fmt.Errorf("failed to load best score: %w", err)
	}

	var record BestScoreRecord
	if err := yaml.Unmarshal(data, &record); err != nil {
		return fmt.Errorf("failed to unmarshal best score: %w", err)
	}
	if record.Score < 0 {
		return fmt.Errorf("invalid best score %d", record.Score)
	}

	m.record = record
	return nil
}

// LoadBestScore 实现 ScoreStore
func (m *BestScoreManager) LoadBestScore() int {
	return m.record.Score
}

// Record 返回当前最高分记录
func (m *BestScoreManager) Record() BestScoreRecord {
	return m.record
}

// SaveBestScore 实现 ScoreStore
// 不高于当前记录的分数被忽略
func (m *BestScoreManager) SaveBestScore(score int) error {
	if score <= m.record.Score {
		return nil
	}
	m.record = BestScoreRecord{Score: score, AchievedAt: time.Now().UTC()}

	if m.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(&m.record)
	if err != nil {
		return fmt.Errorf("failed to marshal best score: %w", err)
	}
	if err := m.gdataManager.SaveObjectProp(scoreObject, scoreProperty, data); err != nil {
		return fmt.Errorf("failed to save best score: %w", err)
	}
	return nil
}
