package scenes

import (
	"image/color"
	"math"
	"testing"

	"github.com/gonewx/tankarena/pkg/config"
	"github.com/gonewx/tankarena/pkg/game"
)

func TestStickVector(t *testing.T) {
	tests := []struct {
		name         string
		x, y         float64
		wantAngle    float64
		wantMagnitue float64
	}{
		{"原点无推力", 100, 100, 0, 0},
		{"向右半推", 135, 100, 0, 0.5},
		{"向下推满", 100, 170, math.Pi / 2, 1},
		{"超出半径饱和", 100, 400, math.Pi / 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			angle, mag := stickVector(100, 100, tt.x, tt.y, stickRadius)
			if math.Abs(angle-tt.wantAngle) > 1e-9 {
				t.Errorf("angle = %v, want %v", angle, tt.wantAngle)
			}
			if math.Abs(mag-tt.wantMagnitue) > 1e-9 {
				t.Errorf("magnitude = %v, want %v", mag, tt.wantMagnitue)
			}
		})
	}
}

func TestDirectInput(t *testing.T) {
	in := directInput(KeyState{Up: true, Left: true, Fire: true, CursorX: 100, CursorY: 0}, 0, 0)

	if in.Mode != game.ControlDirect {
		t.Errorf("Mode = %q, want direct", in.Mode)
	}
	if in.Throttle != 1 || in.Turn != -1 {
		t.Errorf("Throttle/Turn = %v/%v, want 1/-1", in.Throttle, in.Turn)
	}
	if in.AimAngle != 0 {
		t.Errorf("AimAngle = %v, want 0", in.AimAngle)
	}
	if !in.Fire {
		t.Error("Fire should be set")
	}

	// 相反方向键互相抵消
	in = directInput(KeyState{Up: true, Down: true, Left: true, Right: true}, 0, 0)
	if in.Throttle != 0 || in.Turn != 0 {
		t.Errorf("opposite keys should cancel, got %v/%v", in.Throttle, in.Turn)
	}
}

func TestVectorInputFireThreshold(t *testing.T) {
	tests := []struct {
		name     string
		aimMag   float64
		wantFire bool
		wantAim  bool
	}{
		{"未按瞄准摇杆", 0, false, false},
		{"轻推只转炮塔", 0.5, false, true},
		{"阈值处不开火", 0.6, false, true},
		{"推过阈值开火", 0.61, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := vectorInput(1, 0.8, 2, tt.aimMag)
			if in.Mode != game.ControlVector {
				t.Errorf("Mode = %q, want vector", in.Mode)
			}
			if in.Heading != 1 || in.Magnitude != 0.8 {
				t.Errorf("Heading/Magnitude = %v/%v", in.Heading, in.Magnitude)
			}
			if in.Fire != tt.wantFire {
				t.Errorf("Fire = %v, want %v", in.Fire, tt.wantFire)
			}
			if in.HasAim() != tt.wantAim {
				t.Errorf("HasAim = %v, want %v", in.HasAim(), tt.wantAim)
			}
		})
	}
}

func TestKeyboardHeading(t *testing.T) {
	angle, mag := keyboardHeading(false, false, false, false)
	if mag != 0 {
		t.Errorf("no keys should give zero magnitude, got %v", mag)
	}

	angle, mag = keyboardHeading(true, false, false, true)
	if mag != 1 || math.Abs(angle+math.Pi/4) > 1e-9 {
		t.Errorf("up+right = (%v, %v), want (-π/4, 1)", angle, mag)
	}
}

func TestFade(t *testing.T) {
	c := color.RGBA{R: 200, G: 100, B: 50, A: 255}

	if got := fade(c, 1); got != c {
		t.Errorf("fade(1) = %v, want %v", got, c)
	}
	if got := fade(c, 0); got != (color.RGBA{}) {
		t.Errorf("fade(0) = %v, want transparent", got)
	}
	got := fade(c, 0.5)
	if got.R != 100 || got.G != 50 || got.B != 25 || got.A != 127 {
		t.Errorf("fade(0.5) = %v", got)
	}
}

func TestServicesNextSeed(t *testing.T) {
	s := &Services{Seed: 42}
	if s.NextSeed() != 42 || s.NextSeed() != 42 {
		t.Error("fixed seed should be reused for every match")
	}
	if (&Services{}).NextSeed() == 0 {
		t.Error("time-based seed should not be zero")
	}
	if mode := (&Services{}).ControlMode(); mode != game.ControlDirect {
		t.Errorf("ControlMode without settings = %q, want direct", mode)
	}
}

func TestNewGameScene(t *testing.T) {
	services := &Services{
		Manager: game.NewSceneManager(),
		Tuning:  config.DefaultTuning(),
		Seed:    1,
	}

	scene, err := NewGameScene(services)
	if err != nil {
		t.Fatalf("NewGameScene() error = %v", err)
	}
	if scene.snapshot.Player.Health != 100 {
		t.Errorf("player health = %d, want 100", scene.snapshot.Player.Health)
	}

	bad := config.DefaultTuning()
	bad.Player.MaxHealth = 0
	services.Tuning = bad
	if _, err := NewGameScene(services); err == nil {
		t.Error("expected error for invalid tuning")
	}
}
