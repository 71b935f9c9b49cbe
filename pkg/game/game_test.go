package game

import (
	"math"
	"testing"
)

func TestInputSanitize(t *testing.T) {
	tests := []struct {
		name  string
		in    Input
		check func(t *testing.T, out Input)
	}{
		{
			name: "零值输入默认为直控",
			in:   Input{},
			check: func(t *testing.T, out Input) {
				if out.Mode != ControlDirect {
					t.Errorf("Mode = %q, want direct", out.Mode)
				}
			},
		},
		{
			name: "油门与转向钳制",
			in:   Input{Mode: ControlDirect, Throttle: 3, Turn: -7},
			check: func(t *testing.T, out Input) {
				if out.Throttle != 1 || out.Turn != -1 {
					t.Errorf("Throttle/Turn = %v/%v, want 1/-1", out.Throttle, out.Turn)
				}
			},
		},
		{
			name: "NaN 归零",
			in:   Input{Mode: ControlDirect, Throttle: math.NaN(), Turn: math.Inf(1)},
			check: func(t *testing.T, out Input) {
				if out.Throttle != 0 || out.Turn != 0 {
					t.Errorf("Throttle/Turn = %v/%v, want 0/0", out.Throttle, out.Turn)
				}
			},
		},
		{
			name: "推力钳制到 [0, 1]",
			in:   Input{Mode: ControlVector, Heading: 1, Magnitude: -0.5},
			check: func(t *testing.T, out Input) {
				if out.Magnitude != 0 {
					t.Errorf("Magnitude = %v, want 0", out.Magnitude)
				}
			},
		},
		{
			name: "无效朝向不产生推力",
			in:   Input{Mode: ControlVector, Heading: math.NaN(), Magnitude: 1},
			check: func(t *testing.T, out Input) {
				if out.Magnitude != 0 {
					t.Errorf("Magnitude = %v, want 0", out.Magnitude)
				}
			},
		},
		{
			name: "无效瞄准角",
			in:   Input{AimAngle: math.Inf(-1)},
			check: func(t *testing.T, out Input) {
				if out.HasAim() {
					t.Error("HasAim() should be false for non-finite aim")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, tt.in.Sanitize())
		})
	}
}

func TestGameStateEvents(t *testing.T) {
	gs := NewGameState(1, 0)
	if gs.MatchID == "" {
		t.Error("MatchID should be generated")
	}
	if gs.WavePhase != WaveIdle {
		t.Errorf("WavePhase = %q, want idle", gs.WavePhase)
	}

	gs.Emit(Event{Type: EventWaveAnnounced, Wave: 1})
	gs.Emit(Event{Type: EventWaveStarted, Wave: 1})

	events := gs.DrainEvents()
	if len(events) != 2 || events[0].Type != EventWaveAnnounced || events[1].Type != EventWaveStarted {
		t.Errorf("DrainEvents() = %+v", events)
	}
	if len(gs.Events()) != 0 {
		t.Error("events should be cleared after drain")
	}
	if gs.DrainEvents() != nil {
		t.Error("empty drain should return nil")
	}
}

func TestGameStateMatchIDsDiffer(t *testing.T) {
	a := NewGameState(1, 0)
	b := NewGameState(1, 0)
	if a.MatchID == b.MatchID {
		t.Error("each match should get a distinct id")
	}
}

func TestTankStateFlashing(t *testing.T) {
	tank := TankState{LastHitTime: 10}
	if !tank.Flashing(10.05) {
		t.Error("should flash 50ms after hit")
	}
	if tank.Flashing(10.2) {
		t.Error("should not flash 200ms after hit")
	}
	never := TankState{LastHitTime: math.Inf(-1)}
	if never.Flashing(0) {
		t.Error("never-hit tank should not flash")
	}
}
