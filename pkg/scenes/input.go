package scenes

import (
	"math"

	"github.com/gonewx/tankarena/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 虚拟摇杆参数
const (
	stickRadius      = 70.0 // 摇杆满推力对应的拖动距离
	aimFireThreshold = 0.6  // 瞄准摇杆推力超过该值时开火
)

// Stick 虚拟摇杆
// 以手指按下点为圆心，拖动方向与距离决定角度和推力
type Stick struct {
	touchID ebiten.TouchID
	active  bool

	OriginX, OriginY float64
	X, Y             float64
}

// Active 摇杆是否被按住
func (s *Stick) Active() bool {
	return s.active
}

// Vector 返回摇杆角度与推力 [0, 1]
func (s *Stick) Vector() (angle, magnitude float64) {
	if !s.active {
		return 0, 0
	}
	return stickVector(s.OriginX, s.OriginY, s.X, s.Y, stickRadius)
}

func (s *Stick) press(id ebiten.TouchID, x, y int) {
	s.touchID = id
	s.active = true
	s.OriginX, s.OriginY = float64(x), float64(y)
	s.X, s.Y = s.OriginX, s.OriginY
}

// track 跟随手指移动，手指抬起时释放
func (s *Stick) track(ids []ebiten.TouchID) {
	if !s.active {
		return
	}
	for _, id := range ids {
		if id == s.touchID {
			x, y := ebiten.TouchPosition(id)
			s.X, s.Y = float64(x), float64(y)
			return
		}
	}
	s.active = false
}

// stickVector 由圆心与当前点计算角度和推力，推力在 radius 处饱和
func stickVector(originX, originY, x, y, radius float64) (float64, float64) {
	dx, dy := x-originX, y-originY
	dist := math.Hypot(dx, dy)
	if dist == 0 || radius <= 0 {
		return 0, 0
	}
	return math.Atan2(dy, dx), math.Min(dist/radius, 1)
}

// KeyState 直控模式下本帧的按键与鼠标状态
type KeyState struct {
	Up, Down, Left, Right bool
	Fire                  bool
	CursorX, CursorY      float64
}

// directInput 键盘油门/转向 + 鼠标瞄准
func directInput(keys KeyState, tankX, tankY float64) game.Input {
	in := game.Input{
		Mode:     game.ControlDirect,
		AimAngle: math.Atan2(keys.CursorY-tankY, keys.CursorX-tankX),
		Fire:     keys.Fire,
	}
	if keys.Up {
		in.Throttle++
	}
	if keys.Down {
		in.Throttle--
	}
	if keys.Right {
		in.Turn++
	}
	if keys.Left {
		in.Turn--
	}
	return in
}

// vectorInput 双摇杆：左摇杆给出期望朝向与推力，右摇杆瞄准并在推到底时开火
// 右摇杆未按下时炮塔保持原朝向
func vectorInput(moveAngle, moveMagnitude, aimAngle, aimMagnitude float64) game.Input {
	in := game.Input{
		Mode:      game.ControlVector,
		Heading:   moveAngle,
		Magnitude: moveMagnitude,
		AimAngle:  math.NaN(),
	}
	if aimMagnitude > 0 {
		in.AimAngle = aimAngle
		in.Fire = aimMagnitude > aimFireThreshold
	}
	return in
}

// keyboardHeading 矢量模式下无触屏时，方向键组合成期望朝向
func keyboardHeading(up, down, left, right bool) (angle, magnitude float64) {
	dx, dy := 0.0, 0.0
	if up {
		dy--
	}
	if down {
		dy++
	}
	if left {
		dx--
	}
	if right {
		dx++
	}
	if dx == 0 && dy == 0 {
		return 0, 0
	}
	return math.Atan2(dy, dx), 1
}

// InputController 将 ebiten 的键盘、鼠标与触屏状态转换为 game.Input
type InputController struct {
	screenWidth float64
	move        Stick
	aim         Stick
	touchBuf    []ebiten.TouchID
}

// NewInputController 创建输入控制器，触屏左半屏为移动摇杆、右半屏为瞄准摇杆
func NewInputController(screenWidth float64) *InputController {
	return &InputController{screenWidth: screenWidth}
}

// Read 读取本帧输入，tankX/tankY 为玩家坦克位置（用于鼠标瞄准）
func (c *InputController) Read(mode game.ControlMode, tankX, tankY float64) game.Input {
	c.updateSticks()

	keys := KeyState{
		Up:    ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Down:  ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Left:  ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right: ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Fire:  ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) || ebiten.IsKeyPressed(ebiten.KeySpace),
	}
	cx, cy := ebiten.CursorPosition()
	keys.CursorX, keys.CursorY = float64(cx), float64(cy)

	if mode != game.ControlVector {
		return directInput(keys, tankX, tankY)
	}

	moveAngle, moveMag := c.move.Vector()
	if !c.move.Active() {
		moveAngle, moveMag = keyboardHeading(keys.Up, keys.Down, keys.Left, keys.Right)
	}

	if c.aim.Active() {
		aimAngle, aimMag := c.aim.Vector()
		return vectorInput(moveAngle, moveMag, aimAngle, aimMag)
	}

	// 没有瞄准摇杆时退回鼠标瞄准
	in := vectorInput(moveAngle, moveMag, 0, 0)
	in.AimAngle = math.Atan2(keys.CursorY-tankY, keys.CursorX-tankX)
	in.Fire = keys.Fire
	return in
}

// Sticks 返回两个摇杆，用于绘制
func (c *InputController) Sticks() (move, aim *Stick) {
	return &c.move, &c.aim
}

func (c *InputController) updateSticks() {
	c.touchBuf = ebiten.AppendTouchIDs(c.touchBuf[:0])
	c.move.track(c.touchBuf)
	c.aim.track(c.touchBuf)

	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		stick := &c.move
		if float64(x) >= c.screenWidth/2 {
			stick = &c.aim
		}
		if !stick.active {
			stick.press(id, x, y)
		}
	}
}
