package bot

import (
	"math"
	"testing"

	"github.com/gonewx/tankarena/pkg/ecs"
	"github.com/gonewx/tankarena/pkg/game"
	"github.com/gonewx/tankarena/pkg/simulation"
	"github.com/gonewx/tankarena/pkg/types"
	"github.com/gonewx/tankarena/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func arena() *game.Snapshot {
	return &game.Snapshot{
		ArenaWidth:  1280,
		ArenaHeight: 720,
		Player:      game.TankState{ID: 1, X: 640, Y: 360, Size: 40, Health: 100, MaxHealth: 100, IsPlayer: true},
	}
}

func enemyAt(id int, x, y float64) game.TankState {
	return game.TankState{ID: ecs.EntityID(id), X: x, Y: y, Size: 40, Health: 30, MaxHealth: 30}
}

func TestAimsAtNearestEnemy(t *testing.T) {
	snap := arena()
	snap.Enemies = []game.TankState{enemyAt(2, 640, 100), enemyAt(3, 850, 360)}

	in := NewAutopilot(1).Input(snap)

	assert.Equal(t, game.ControlVector, in.Mode)
	assert.True(t, in.Fire)
	assert.InDelta(t, 0, in.AimAngle, 1e-9, "enemy to the right is nearer")
}

func TestIgnoresDeadEnemies(t *testing.T) {
	snap := arena()
	dead := enemyAt(2, 700, 360)
	dead.Health = 0
	snap.Enemies = []game.TankState{dead, enemyAt(3, 640, 100)}

	in := NewAutopilot(1).Input(snap)
	assert.InDelta(t, -math.Pi/2, in.AimAngle, 1e-9)
}

func TestStrafesAtPreferredRange(t *testing.T) {
	snap := arena()
	snap.Enemies = []game.TankState{enemyAt(2, 640+preferredRange, 360)}

	in := NewAutopilot(1).Input(snap)
	assert.InDelta(t, math.Pi/2, in.Heading, 1e-9)
	assert.InDelta(t, 0.8, in.Magnitude, 1e-9)
}

func TestBacksOffWhenTooClose(t *testing.T) {
	snap := arena()
	snap.Enemies = []game.TankState{enemyAt(2, 740, 360)}

	in := NewAutopilot(1).Input(snap)
	assert.InDelta(t, math.Pi, utils.NormalizeAngle(in.Heading), 1e-9)
	assert.Equal(t, 1.0, in.Magnitude)
}

func TestHeadsForPowerUpWhenIdle(t *testing.T) {
	snap := arena()
	snap.PowerUps = []game.PowerUpState{{ID: 5, X: 640, Y: 600, Size: 25, Type: types.PowerUpShield}}

	in := NewAutopilot(1).Input(snap)
	assert.False(t, in.Fire)
	assert.False(t, in.HasAim())
	assert.InDelta(t, math.Pi/2, in.Heading, 1e-9)
	assert.Equal(t, 1.0, in.Magnitude)
}

func TestSteersAroundObstacle(t *testing.T) {
	snap := arena()
	snap.PowerUps = []game.PowerUpState{{ID: 5, X: 640, Y: 600, Size: 25, Type: types.PowerUpHealth}}
	snap.Obstacles = []game.ObstacleState{{ID: 6, X: 640, Y: 430, Size: 60}}

	in := NewAutopilot(1).Input(snap)
	assert.InDelta(t, math.Pi/2+math.Pi/3, in.Heading, 1e-9)
}

func TestIdleWhenDead(t *testing.T) {
	snap := arena()
	snap.Player.Health = 0
	snap.Enemies = []game.TankState{enemyAt(2, 900, 360)}

	in := NewAutopilot(1).Input(snap)
	assert.False(t, in.Fire)
	assert.Zero(t, in.Magnitude)
}

func TestDrivesSimulation(t *testing.T) {
	sim, err := simulation.New(simulation.Options{Seed: 5})
	require.NoError(t, err)
	pilot := NewAutopilot(5)

	for i := 0; i < 1200 && !sim.GameOver(); i++ {
		snap := sim.Snapshot()
		in := pilot.Input(&snap)
		require.True(t, utils.IsFinite(in.Heading))
		require.GreaterOrEqual(t, in.Magnitude, 0.0)
		require.LessOrEqual(t, in.Magnitude, 1.0)
		sim.Update(1.0/60, in)
	}
	assert.GreaterOrEqual(t, sim.Wave(), 1)
}
