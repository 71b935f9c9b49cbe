package systems

import (
	"testing"

	"github.com/gonewx/tankarena/pkg/entities"
	"github.com/gonewx/tankarena/pkg/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnemyAdvancesAndFires(t *testing.T) {
	w := newTestWorld(t)
	sys := NewEnemyAISystem(w.tuning)
	enemy := entities.NewEnemyTank(w.em, w.tuning, 200, 360, 0)

	sys.Update(w.ctx(game.Input{}))

	pos := w.position(enemy)
	assert.InDelta(t, 201.2, pos.X, 1e-9)
	assert.InDelta(t, 360, pos.Y, 1e-9)
	assert.InDelta(t, 0, w.tank(enemy).TurretRotation, 1e-9)

	ids := w.projectiles()
	require.Len(t, ids, 1)
	p := w.projectile(ids[0])
	assert.Equal(t, enemy, p.OwnerID)
	assert.LessOrEqual(t, p.Rotation, 0.05)
	assert.GreaterOrEqual(t, p.Rotation, -0.05)

	// 冷却期间不再开火
	w.state.Now = 1
	sys.Update(w.ctx(game.Input{}))
	assert.Len(t, w.projectiles(), 1)
}

func TestEnemyStuckTurnsInPlace(t *testing.T) {
	w := newTestWorld(t)
	sys := NewEnemyAISystem(w.tuning)
	enemy := entities.NewEnemyTank(w.em, w.tuning, 200, 360, 0)
	entities.NewObstacle(w.em, 245, 360, 50, 0)

	sys.Update(w.ctx(game.Input{}))

	assert.Equal(t, 200.0, w.position(enemy).X)
	assert.InDelta(t, 0.03*5, w.tank(enemy).Rotation, 1e-9)
}

func TestEnemyBlockedByPlayer(t *testing.T) {
	w := newTestWorld(t)
	sys := NewEnemyAISystem(w.tuning)
	enemy := entities.NewEnemyTank(w.em, w.tuning, 640-41, 360, 0)

	sys.Update(w.ctx(game.Input{}))

	assert.Equal(t, 599.0, w.position(enemy).X)
	assert.InDelta(t, 0.15, w.tank(enemy).Rotation, 1e-9)
}

func TestEnemyBlockedByArenaEdge(t *testing.T) {
	w := newTestWorld(t)
	sys := NewEnemyAISystem(w.tuning)
	enemy := entities.NewEnemyTank(w.em, w.tuning, 20.5, 100, 3.14159)

	sys.Update(w.ctx(game.Input{}))
	assert.Equal(t, 20.5, w.position(enemy).X)
}

func TestDeadEnemyDoesNotBlock(t *testing.T) {
	w := newTestWorld(t)
	sys := NewEnemyAISystem(w.tuning)
	mover := entities.NewEnemyTank(w.em, w.tuning, 200, 360, 0)
	wreck := entities.NewEnemyTank(w.em, w.tuning, 241, 360, 0)
	w.health(wreck).CurrentHealth = 0

	sys.Update(w.ctx(game.Input{}))

	assert.InDelta(t, 201.2, w.position(mover).X, 1e-9)
	assert.Equal(t, 241.0, w.position(wreck).X, "dead enemy must not act")
}

func TestEnemyHoldsFireWithoutLineOfSight(t *testing.T) {
	w := newTestWorld(t)
	sys := NewEnemyAISystem(w.tuning)
	entities.NewEnemyTank(w.em, w.tuning, 200, 360, 0)
	rock := entities.NewObstacle(w.em, 420, 360, 60, 0)

	sys.Update(w.ctx(game.Input{}))
	assert.Empty(t, w.projectiles(), "obstacle between enemy and player")

	w.em.DestroyEntity(rock)
	w.em.RemoveMarkedEntities()
	sys.Update(w.ctx(game.Input{}))
	assert.Len(t, w.projectiles(), 1)
}

func TestObstacleBehindPlayerDoesNotOcclude(t *testing.T) {
	w := newTestWorld(t)
	sys := NewEnemyAISystem(w.tuning)
	entities.NewEnemyTank(w.em, w.tuning, 200, 360, 0)
	entities.NewObstacle(w.em, 800, 360, 60, 0)

	sys.Update(w.ctx(game.Input{}))
	assert.Len(t, w.projectiles(), 1)
}

func TestBossFiresSpreadVolley(t *testing.T) {
	w := newTestWorld(t)
	sys := NewEnemyAISystem(w.tuning)
	boss := w.tuning.Bosses[0]
	id := entities.NewBossTank(w.em, w.tuning, &boss, 640, 100)

	sys.Update(w.ctx(game.Input{}))

	assert.Len(t, w.projectiles(), boss.SpreadCount)
	fired := w.events(game.EventProjectileFired)
	require.Len(t, fired, 1)
	assert.Equal(t, id, fired[0].EntityID)
	assert.Equal(t, boss.SpreadCount, fired[0].Value)
	assert.InDelta(t, 100.8, w.position(id).Y, 1e-9)
}

func TestEnemiesIdleWithoutPlayer(t *testing.T) {
	w := newTestWorld(t)
	sys := NewEnemyAISystem(w.tuning)
	enemy := entities.NewEnemyTank(w.em, w.tuning, 200, 360, 0)
	w.em.DestroyEntity(w.playerID)
	w.em.RemoveMarkedEntities()

	sys.Update(w.ctx(game.Input{}))

	assert.Equal(t, 200.0, w.position(enemy).X)
	assert.Empty(t, w.projectiles())
}
