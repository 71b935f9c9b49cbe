package systems

import (
	"testing"

	"github.com/gonewx/tankarena/pkg/components"
	"github.com/gonewx/tankarena/pkg/config"
	"github.com/gonewx/tankarena/pkg/ecs"
	"github.com/gonewx/tankarena/pkg/entities"
	"github.com/gonewx/tankarena/pkg/game"
	"github.com/stretchr/testify/require"
)

const testDT = 1.0 / 60

// testWorld 无障碍物的最小对局：玩家位于 (640, 360)
type testWorld struct {
	t        *testing.T
	tuning   *config.Tuning
	em       *ecs.EntityManager
	state    *game.GameState
	playerID ecs.EntityID
	emitter  *ParticleEmitter
}

func newTestWorld(t *testing.T) *testWorld {
	t.Helper()
	tuning := config.DefaultTuning()
	em := ecs.NewEntityManager()
	state := game.NewGameState(42, 0)
	state.PlayerID = entities.NewPlayerTank(em, tuning, 640, 360)
	return &testWorld{
		t:        t,
		tuning:   tuning,
		em:       em,
		state:    state,
		playerID: state.PlayerID,
		emitter:  NewParticleEmitter(tuning),
	}
}

// ctx 以当前实体状态为帧开始快照构造上下文
func (w *testWorld) ctx(in game.Input) *TickContext {
	return &TickContext{
		EM:        w.em,
		State:     w.state,
		Before:    CaptureWorldView(w.em, w.playerID),
		Input:     in.Sanitize(),
		DeltaTime: testDT,
	}
}

func (w *testWorld) position(id ecs.EntityID) *components.PositionComponent {
	w.t.Helper()
	pos, ok := ecs.GetComponent[*components.PositionComponent](w.em, id)
	require.True(w.t, ok, "entity %d has no position", id)
	return pos
}

func (w *testWorld) tank(id ecs.EntityID) *components.TankComponent {
	w.t.Helper()
	tank, ok := ecs.GetComponent[*components.TankComponent](w.em, id)
	require.True(w.t, ok, "entity %d is not a tank", id)
	return tank
}

func (w *testWorld) health(id ecs.EntityID) *components.HealthComponent {
	w.t.Helper()
	h, ok := ecs.GetComponent[*components.HealthComponent](w.em, id)
	require.True(w.t, ok, "entity %d has no health", id)
	return h
}

func (w *testWorld) projectile(id ecs.EntityID) *components.ProjectileComponent {
	w.t.Helper()
	p, ok := ecs.GetComponent[*components.ProjectileComponent](w.em, id)
	require.True(w.t, ok, "entity %d is not a projectile", id)
	return p
}

func (w *testWorld) buff() *components.BuffComponent {
	w.t.Helper()
	b, ok := ecs.GetComponent[*components.BuffComponent](w.em, w.playerID)
	require.True(w.t, ok)
	return b
}

func (w *testWorld) count(query func(*ecs.EntityManager) []ecs.EntityID) int {
	n := 0
	for _, id := range query(w.em) {
		if !w.em.IsMarkedForDestroy(id) {
			n++
		}
	}
	return n
}

func (w *testWorld) projectiles() []ecs.EntityID {
	var out []ecs.EntityID
	for _, id := range ecs.GetEntitiesWith1[*components.ProjectileComponent](w.em) {
		if !w.em.IsMarkedForDestroy(id) {
			out = append(out, id)
		}
	}
	return out
}

func (w *testWorld) particleCount() int {
	return w.count(ecs.GetEntitiesWith1[*components.ParticleComponent])
}

func (w *testWorld) powerUpCount() int {
	return w.count(ecs.GetEntitiesWith1[*components.PowerUpComponent])
}

func (w *testWorld) events(typ game.EventType) []game.Event {
	var out []game.Event
	for _, e := range w.state.Events() {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}
