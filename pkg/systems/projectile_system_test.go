package systems

import (
	"math"
	"testing"

	"github.com/gonewx/tankarena/pkg/components"
	"github.com/gonewx/tankarena/pkg/ecs"
	"github.com/gonewx/tankarena/pkg/entities"
	"github.com/gonewx/tankarena/pkg/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// strayOwner 不存在的发射者，炮弹可以命中任何坦克
const strayOwner ecs.EntityID = 9999

func (w *testWorld) shoot(owner ecs.EntityID, x, y, angle float64) ecs.EntityID {
	return entities.NewProjectile(w.em, w.tuning.Projectile, owner, x, y, angle, w.tuning.Projectile.Damage)
}

func TestApplyDamage(t *testing.T) {
	tests := []struct {
		name       string
		shield     int
		health     int
		damage     int
		wantShield int
		wantHealth int
	}{
		{"无护盾扣血", 0, 30, 10, 0, 20},
		{"护盾优先", 30, 100, 10, 20, 100},
		{"护盾不溢出到生命值", 5, 100, 10, 0, 100},
		{"生命值不低于零", 0, 5, 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tank := &components.TankComponent{Shield: tt.shield, LastHitTime: components.NeverFired}
			health := &components.HealthComponent{CurrentHealth: tt.health, MaxHealth: 100}

			ApplyDamage(tank, health, tt.damage, 7)

			assert.Equal(t, tt.wantShield, tank.Shield)
			assert.Equal(t, tt.wantHealth, health.CurrentHealth)
			assert.Equal(t, 7.0, tank.LastHitTime)
		})
	}
}

func TestProjectileHitsPlayer(t *testing.T) {
	w := newTestWorld(t)
	sys := NewProjectileSystem(w.tuning, w.emitter)
	shell := w.shoot(strayOwner, 615, 360, 0)

	sys.Update(w.ctx(game.Input{}))

	assert.True(t, w.em.IsMarkedForDestroy(shell))
	assert.Equal(t, 90, w.health(w.playerID).CurrentHealth)
	assert.Equal(t, 15, w.particleCount())
	damaged := w.events(game.EventPlayerDamaged)
	require.Len(t, damaged, 1)
	assert.Equal(t, 10, damaged[0].Value)
}

func TestShieldAbsorbsHit(t *testing.T) {
	w := newTestWorld(t)
	sys := NewProjectileSystem(w.tuning, w.emitter)
	w.tank(w.playerID).Shield = 5
	w.shoot(strayOwner, 615, 360, 0)

	sys.Update(w.ctx(game.Input{}))

	assert.Equal(t, 0, w.tank(w.playerID).Shield)
	assert.Equal(t, 100, w.health(w.playerID).CurrentHealth)
}

func TestGameOverFiresOnce(t *testing.T) {
	w := newTestWorld(t)
	sys := NewProjectileSystem(w.tuning, w.emitter)
	w.health(w.playerID).CurrentHealth = 10
	first := w.shoot(strayOwner, 615, 360, 0)
	second := w.shoot(strayOwner, 665, 360, math.Pi)

	sys.Update(w.ctx(game.Input{}))

	assert.True(t, w.state.GameOver)
	assert.Equal(t, 0, w.health(w.playerID).CurrentHealth)
	assert.Len(t, w.events(game.EventGameOver), 1)
	assert.True(t, w.em.IsMarkedForDestroy(first))
	assert.False(t, w.em.IsMarkedForDestroy(second), "dead player no longer collides")

	sys.Update(w.ctx(game.Input{}))
	assert.Len(t, w.events(game.EventGameOver), 1)
}

func TestProjectileIgnoresOwner(t *testing.T) {
	w := newTestWorld(t)
	sys := NewProjectileSystem(w.tuning, w.emitter)
	shell := w.shoot(w.playerID, 615, 360, 0)

	sys.Update(w.ctx(game.Input{}))

	assert.False(t, w.em.IsMarkedForDestroy(shell))
	assert.Equal(t, 100, w.health(w.playerID).CurrentHealth)
}

func TestProjectileHitsObstacle(t *testing.T) {
	w := newTestWorld(t)
	sys := NewProjectileSystem(w.tuning, w.emitter)
	entities.NewObstacle(w.em, 100, 100, 50, 0)
	shell := w.shoot(w.playerID, 70, 100, 0)

	sys.Update(w.ctx(game.Input{}))

	assert.True(t, w.em.IsMarkedForDestroy(shell))
	assert.Equal(t, 10, w.particleCount())
	explosions := w.events(game.EventExplosion)
	require.Len(t, explosions, 1)
	assert.False(t, explosions[0].Large)
}

func TestProjectileLeavesArena(t *testing.T) {
	w := newTestWorld(t)
	sys := NewProjectileSystem(w.tuning, w.emitter)
	shell := w.shoot(w.playerID, 1279, 100, 0)

	sys.Update(w.ctx(game.Input{}))

	assert.True(t, w.em.IsMarkedForDestroy(shell))
	assert.Zero(t, w.particleCount())
}

func TestEnemyKillAwardsScore(t *testing.T) {
	w := newTestWorld(t)
	w.tuning.PowerUps.DropChance = 1
	sys := NewProjectileSystem(w.tuning, w.emitter)
	enemy := entities.NewEnemyTank(w.em, w.tuning, 300, 300, 0)
	w.health(enemy).CurrentHealth = 10
	w.shoot(w.playerID, 275, 300, 0)

	sys.Update(w.ctx(game.Input{}))

	assert.Equal(t, 0, w.health(enemy).CurrentHealth)
	assert.Equal(t, 100, w.state.Score)
	destroyed := w.events(game.EventTankDestroyed)
	require.Len(t, destroyed, 1)
	assert.Equal(t, enemy, destroyed[0].EntityID)
	assert.Equal(t, 15+50, w.particleCount())
	assert.Equal(t, 1, w.powerUpCount())
}

func TestDeadEnemyAbsorbsNoSecondShell(t *testing.T) {
	w := newTestWorld(t)
	w.tuning.PowerUps.DropChance = 0
	sys := NewProjectileSystem(w.tuning, w.emitter)
	enemy := entities.NewEnemyTank(w.em, w.tuning, 300, 300, 0)
	w.health(enemy).CurrentHealth = 10
	w.shoot(w.playerID, 275, 300, 0)
	second := w.shoot(w.playerID, 325, 300, math.Pi)

	sys.Update(w.ctx(game.Input{}))

	assert.Equal(t, 100, w.state.Score, "kill is scored once")
	assert.False(t, w.em.IsMarkedForDestroy(second))
	assert.Zero(t, w.powerUpCount())
}

func TestEnemyFriendlyFire(t *testing.T) {
	w := newTestWorld(t)
	sys := NewProjectileSystem(w.tuning, w.emitter)
	shooter := entities.NewEnemyTank(w.em, w.tuning, 200, 300, 0)
	victim := entities.NewEnemyTank(w.em, w.tuning, 300, 300, 0)
	w.shoot(shooter, 275, 300, 0)

	sys.Update(w.ctx(game.Input{}))

	assert.Equal(t, 20, w.health(victim).CurrentHealth)
	assert.Equal(t, 30, w.health(shooter).CurrentHealth)
}

func TestBossDeathSkipsDrop(t *testing.T) {
	w := newTestWorld(t)
	w.tuning.PowerUps.DropChance = 1
	sys := NewProjectileSystem(w.tuning, w.emitter)
	boss := w.tuning.Bosses[0]
	id := entities.NewBossTank(w.em, w.tuning, &boss, 300, 300)
	w.health(id).CurrentHealth = 5
	w.shoot(w.playerID, 255, 300, 0)

	sys.Update(w.ctx(game.Input{}))

	assert.Equal(t, 1000, w.state.Score)
	assert.Zero(t, w.powerUpCount())
	assert.Equal(t, 15+200, w.particleCount())
}
