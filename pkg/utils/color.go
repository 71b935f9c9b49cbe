package utils

import (
	"image/color"
	"math"
)

// HSLToRGBA 将 HSL 颜色转换为 RGBA
//
// 参数:
//   - h: 色相，单位度，任意值会被折算到 [0, 360)
//   - s: 饱和度 [0, 1]
//   - l: 亮度 [0, 1]
func HSLToRGBA(h, s, l float64) color.RGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	s = Clamp(s, 0, 1)
	l = Clamp(l, 0, 1)

	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return color.RGBA{
		R: uint8(math.Round((r + m) * 255)),
		G: uint8(math.Round((g + m) * 255)),
		B: uint8(math.Round((b + m) * 255)),
		A: 255,
	}
}
