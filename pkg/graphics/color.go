package graphics

import (
	"fmt"
	"math"
)

// Color is a packed 0xAARRGGBB value. The zero Color is transparent black.
type Color uint32

// Colors used by the built-in widgets and the frame loop.
const (
	ColorTransparent = Color(0x00000000)
	ColorBlack       = Color(0xFF000000)
	ColorWhite       = Color(0xFFFFFFFF)
	ColorBackground  = Color(0xFFFAFAFA)
	ColorShadow      = Color(0x33000000)
)

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return pack(0xFF, r, g, b)
}

// RGBA returns a color with alpha in [0, 1]; out of range alphas clamp.
func RGBA(r, g, b uint8, a float64) Color {
	return pack(unit(a), r, g, b)
}

func pack(a, r, g, b uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

func (c Color) channels() (a, r, g, b uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// RGBAF returns the channels scaled to [0, 1], as raster backends expect.
func (c Color) RGBAF() (r, g, b, a float64) {
	ca, cr, cg, cb := c.channels()
	return float64(cr) / 255, float64(cg) / 255, float64(cb) / 255, float64(ca) / 255
}

// Alpha returns the opacity in [0, 1].
func (c Color) Alpha() float64 {
	return float64(uint8(c>>24)) / 255
}

// WithAlpha replaces the opacity, keeping the color channels.
func (c Color) WithAlpha(a float64) Color {
	return Color(uint32(unit(a))<<24 | uint32(c)&0x00FFFFFF)
}

// Mix blends c toward other by t in [0, 1], channel by channel including
// alpha. Mix(ColorWhite, 0.2) lightens, Mix(ColorBlack, 0.2) darkens.
func (c Color) Mix(other Color, t float64) Color {
	t = math.Max(0, math.Min(1, t))
	a1, r1, g1, b1 := c.channels()
	a2, r2, g2, b2 := other.channels()
	lerp := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return pack(lerp(a1, a2), lerp(r1, r2), lerp(g1, g2), lerp(b1, b2))
}

// String formats the color as #AARRGGBB.
func (c Color) String() string {
	return fmt.Sprintf("#%08X", uint32(c))
}

// unit maps [0, 1] to a byte, clamping.
func unit(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
