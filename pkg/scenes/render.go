package scenes

import (
	"fmt"
	"image/color"
	"math"

	"github.com/gonewx/tankarena/pkg/game"
	"github.com/gonewx/tankarena/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 调色板
var (
	colorBackground = color.RGBA{R: 34, G: 40, B: 34, A: 255}
	colorGrid       = color.RGBA{R: 44, G: 52, B: 44, A: 255}
	colorObstacle   = color.RGBA{R: 110, G: 104, B: 96, A: 255}
	colorObstacleHi = color.RGBA{R: 140, G: 134, B: 124, A: 255}
	colorPlayer     = color.RGBA{R: 70, G: 160, B: 80, A: 255}
	colorEnemy      = color.RGBA{R: 180, G: 60, B: 50, A: 255}
	colorBoss       = color.RGBA{R: 130, G: 60, B: 170, A: 255}
	colorTread      = color.RGBA{R: 30, G: 30, B: 30, A: 255}
	colorTurret     = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	colorFlash      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorShield     = color.RGBA{R: 90, G: 200, B: 255, A: 200}
	colorShell      = color.RGBA{R: 255, G: 220, B: 90, A: 255}
	colorHealthBack = color.RGBA{R: 60, G: 20, B: 20, A: 255}
	colorHealth     = color.RGBA{R: 90, G: 220, B: 90, A: 255}
	colorStick      = color.RGBA{R: 255, G: 255, B: 255, A: 60}
)

var powerUpColors = map[types.PowerUpType]color.RGBA{
	types.PowerUpHealth:    {R: 230, G: 70, B: 70, A: 255},
	types.PowerUpShield:    {R: 80, G: 170, B: 255, A: 255},
	types.PowerUpRapidFire: {R: 255, G: 200, B: 40, A: 255},
	types.PowerUpMultiShot: {R: 200, G: 90, B: 255, A: 255},
}

var powerUpLabels = map[types.PowerUpType]string{
	types.PowerUpHealth:    "H",
	types.PowerUpShield:    "S",
	types.PowerUpRapidFire: "R",
	types.PowerUpMultiShot: "M",
}

const gridSpacing = 64

// fade 按 alpha 缩放预乘颜色
func fade(c color.RGBA, alpha float64) color.RGBA {
	if alpha <= 0 {
		return color.RGBA{}
	}
	if alpha >= 1 {
		return c
	}
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}

// drawWorld 按从下到上的层次绘制整个竞技场
func drawWorld(screen *ebiten.Image, snap *game.Snapshot) {
	screen.Fill(colorBackground)
	w, h := float32(snap.ArenaWidth), float32(snap.ArenaHeight)
	for x := float32(gridSpacing); x < w; x += gridSpacing {
		vector.StrokeLine(screen, x, 0, x, h, 1, colorGrid, false)
	}
	for y := float32(gridSpacing); y < h; y += gridSpacing {
		vector.StrokeLine(screen, 0, y, w, y, 1, colorGrid, false)
	}

	for _, o := range snap.Obstacles {
		drawObstacle(screen, o)
	}
	for _, p := range snap.PowerUps {
		drawPowerUp(screen, p, snap.Time)
	}
	for _, e := range snap.Enemies {
		drawTank(screen, e, snap.Time)
	}
	if snap.Player.Health > 0 {
		drawTank(screen, snap.Player, snap.Time)
	}
	for _, p := range snap.Projectiles {
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(p.Size/2), colorShell, true)
	}
	for _, p := range snap.Particles {
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(p.Size/2), fade(p.Color, p.Alpha), true)
	}
}

func drawObstacle(screen *ebiten.Image, o game.ObstacleState) {
	r := float32(o.Size / 2)
	vector.DrawFilledCircle(screen, float32(o.X), float32(o.Y), r, colorObstacle, true)
	// 高光偏向旋转方向，让岩石看起来不完全相同
	hx := float32(o.X + math.Cos(o.Rotation)*o.Size*0.15)
	hy := float32(o.Y + math.Sin(o.Rotation)*o.Size*0.15)
	vector.DrawFilledCircle(screen, hx, hy, r*0.55, colorObstacleHi, true)
}

func drawPowerUp(screen *ebiten.Image, p game.PowerUpState, now float64) {
	clr, ok := powerUpColors[p.Type]
	if !ok {
		clr = colorFlash
	}
	pulse := 1 + 0.1*math.Sin(now*6)
	r := float32(p.Size / 2 * pulse)
	vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), r, clr, true)
	vector.StrokeCircle(screen, float32(p.X), float32(p.Y), r, 2, colorFlash, true)
	ebitenutil.DebugPrintAt(screen, powerUpLabels[p.Type], int(p.X)-3, int(p.Y)-8)
}

func drawTank(screen *ebiten.Image, t game.TankState, now float64) {
	body := colorEnemy
	switch {
	case t.IsPlayer:
		body = colorPlayer
	case t.IsBoss:
		body = colorBoss
	}
	if t.Flashing(now) {
		body = colorFlash
	}

	x, y := float32(t.X), float32(t.Y)
	half := t.Size / 2

	// 履带：沿车头方向的两条粗线
	fx, fy := math.Cos(t.Rotation), math.Sin(t.Rotation)
	sx, sy := -fy, fx
	treadW := float32(t.Size * 0.18)
	for _, side := range []float64{-1, 1} {
		ox, oy := sx*half*0.8*side, sy*half*0.8*side
		vector.StrokeLine(screen,
			float32(t.X+ox-fx*half*0.9), float32(t.Y+oy-fy*half*0.9),
			float32(t.X+ox+fx*half*0.9), float32(t.Y+oy+fy*half*0.9),
			treadW, colorTread, true)
	}

	vector.DrawFilledCircle(screen, x, y, float32(half*0.8), body, true)

	barrel := t.Size * 0.7
	vector.StrokeLine(screen, x, y,
		float32(t.X+math.Cos(t.TurretRotation)*barrel), float32(t.Y+math.Sin(t.TurretRotation)*barrel),
		float32(t.Size*0.16), colorTurret, true)
	vector.DrawFilledCircle(screen, x, y, float32(half*0.4), colorTurret, true)

	if t.Shield > 0 {
		vector.StrokeCircle(screen, x, y, float32(half+6), 3, colorShield, true)
	}
	if !t.IsPlayer && t.MaxHealth > 0 {
		drawHealthBar(screen, t.X-half, t.Y-half-10, t.Size, 4, t.Health, t.MaxHealth)
	}
}

func drawHealthBar(screen *ebiten.Image, x, y, w, h float64, health, maxHealth int) {
	ratio := float64(health) / float64(maxHealth)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), colorHealthBack, false)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w*ratio), float32(h), colorHealth, false)
}

// drawHUD 得分、波次、生命值、增益与波次公告
func drawHUD(screen *ebiten.Image, snap *game.Snapshot, showFPS bool) {
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("SCORE %d   BEST %d   WAVE %d   ENEMIES %d",
		snap.Score, snap.BestScore, snap.Wave, len(snap.Enemies)), 12, 10)

	p := snap.Player
	drawHealthBar(screen, 12, snap.ArenaHeight-24, 200, 12, p.Health, p.MaxHealth)
	status := fmt.Sprintf("HP %d/%d", p.Health, p.MaxHealth)
	if p.Shield > 0 {
		status += fmt.Sprintf("  SHIELD %d", p.Shield)
	}
	if snap.ActiveBuff != types.PowerUpNone {
		status += fmt.Sprintf("  %s %.1fs", snap.ActiveBuff, snap.BuffRemaining)
	}
	ebitenutil.DebugPrintAt(screen, status, 220, int(snap.ArenaHeight)-28)

	if snap.WaveMessage != "" {
		printCentered(screen, snap.WaveMessage, snap.ArenaWidth/2, snap.ArenaHeight/3)
	}
	if showFPS {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS %.0f", ebiten.ActualFPS()), int(snap.ArenaWidth)-80, 10)
	}
}

// drawSticks 触屏摇杆的底座与拇指位置
func drawSticks(screen *ebiten.Image, sticks ...*Stick) {
	for _, s := range sticks {
		if !s.Active() {
			continue
		}
		vector.StrokeCircle(screen, float32(s.OriginX), float32(s.OriginY), stickRadius, 3, colorStick, true)
		angle, mag := s.Vector()
		tx := s.OriginX + math.Cos(angle)*mag*stickRadius
		ty := s.OriginY + math.Sin(angle)*mag*stickRadius
		vector.DrawFilledCircle(screen, float32(tx), float32(ty), 24, colorStick, true)
	}
}

// printCentered 以 (cx, cy) 为中心打印调试字体文本（字宽 6 像素）
func printCentered(screen *ebiten.Image, msg string, cx, cy float64) {
	ebitenutil.DebugPrintAt(screen, msg, int(cx)-len(msg)*3, int(cy)-8)
}
