package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// mockScene 记录调用情况的测试场景
type mockScene struct {
	updateCalled bool
	drawCalled   bool
	closed       int
	deltaTime    float64
}

func (m *mockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
}

func (m *mockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

func (m *mockScene) Close() {
	m.closed++
}

func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager()
	if sm == nil {
		t.Fatal("NewSceneManager() returned nil")
	}
	if sm.GetCurrentScene() != nil {
		t.Error("Expected no scene initially")
	}
}

func TestSceneManagerUpdate(t *testing.T) {
	sm := NewSceneManager()
	scene := &mockScene{}
	sm.SwitchTo(scene)

	deltaTime := 1.0 / 60
	sm.Update(deltaTime)

	if !scene.updateCalled {
		t.Error("Scene's Update method was not called")
	}
	if scene.deltaTime != deltaTime {
		t.Errorf("Expected deltaTime %.4f, got %.4f", deltaTime, scene.deltaTime)
	}
}

func TestSceneManagerDraw(t *testing.T) {
	sm := NewSceneManager()
	scene := &mockScene{}
	sm.SwitchTo(scene)

	screen := ebiten.NewImage(16, 16)
	sm.Draw(screen)

	if !scene.drawCalled {
		t.Error("Scene's Draw method was not called")
	}
}

func TestSceneManagerNoScene(t *testing.T) {
	sm := NewSceneManager()
	// 没有场景时不应 panic
	sm.Update(0.016)
	sm.Close()
}

func TestSceneManagerClosesPreviousScene(t *testing.T) {
	sm := NewSceneManager()
	first := &mockScene{}
	second := &mockScene{}

	sm.SwitchTo(first)
	sm.SwitchTo(first)
	if first.closed != 0 {
		t.Errorf("Switching to the same scene closed it %d times", first.closed)
	}

	sm.SwitchTo(second)
	if first.closed != 1 {
		t.Errorf("Expected previous scene closed once, got %d", first.closed)
	}
	if sm.GetCurrentScene() != second {
		t.Error("SwitchTo did not set the current scene correctly")
	}

	sm.Close()
	if second.closed != 1 {
		t.Errorf("Expected current scene closed on shutdown, got %d", second.closed)
	}
	if sm.GetCurrentScene() != nil {
		t.Error("Expected no scene after Close")
	}
}
