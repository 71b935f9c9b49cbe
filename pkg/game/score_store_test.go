package game

import (
	"testing"
)

func TestMemoryScoreStore(t *testing.T) {
	s := &MemoryScoreStore{Best: 300}
	if s.LoadBestScore() != 300 {
		t.Errorf("LoadBestScore() = %d, want 300", s.LoadBestScore())
	}
	if err := s.SaveBestScore(500); err != nil {
		t.Fatal(err)
	}
	if s.Best != 500 || s.Saves != 1 {
		t.Errorf("after save: %+v", s)
	}
}

func TestBestScoreManagerNilGdata(t *testing.T) {
	m := NewBestScoreManager(nil)
	if m.LoadBestScore() != 0 {
		t.Errorf("initial best = %d, want 0", m.LoadBestScore())
	}
	if err := m.SaveBestScore(1200); err != nil {
		t.Fatalf("SaveBestScore in degraded mode: %v", err)
	}
	if m.LoadBestScore() != 1200 {
		t.Errorf("best = %d, want 1200", m.LoadBestScore())
	}
}

func TestBestScoreManagerPersists(t *testing.T) {
	gdataManager := openTestGdata(t, "test_tank_scores")

	m1 := NewBestScoreManager(gdataManager)
	if err := m1.SaveBestScore(800); err != nil {
		t.Fatalf("SaveBestScore error: %v", err)
	}
	// 更低的分数不会覆盖记录
	if err := m1.SaveBestScore(100); err != nil {
		t.Fatalf("SaveBestScore error: %v", err)
	}

	m2 := NewBestScoreManager(gdataManager)
	if got := m2.LoadBestScore(); got != 800 {
		t.Errorf("reloaded best = %d, want 800", got)
	}
	if m2.Record().AchievedAt.IsZero() {
		t.Error("AchievedAt should be persisted")
	}
}

func TestBestScoreManagerCorrupted(t *testing.T) {
	gdataManager := openTestGdata(t, "test_tank_scores_corrupt")
	if err := gdataManager.SaveObjectProp(scoreObject, scoreProperty, []byte("score: -5\n")); err != nil {
		t.Fatal(err)
	}

	m := NewBestScoreManager(gdataManager)
	if m.LoadBestScore() != 0 {
		t.Errorf("invalid record should be ignored, got %d", m.LoadBestScore())
	}
}
