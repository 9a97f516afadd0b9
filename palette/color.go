// Package palette contains the color model used by the pixel ring: plain 8-bit
// RGB colors and ordered palettes that can be addressed as a continuous ring.
package palette

import (
	"image/color"

	"github.com/aykevl/tinygl/pixel"
	"github.com/lucasb-eyer/go-colorful"
)

// Color is a single RGB color with 8 bits per channel. Colors are plain values
// and are compared with ==.
type Color struct {
	R, G, B uint8
}

// Commonly used colors.
var (
	Black   = Hex(0x000000)
	White   = Hex(0xFFFFFF)
	Red     = Hex(0xFF0000)
	Green   = Hex(0x00FF00)
	Blue    = Hex(0x0000FF)
	Yellow  = Hex(0xFFFF00)
	Cyan    = Hex(0x00FFFF)
	Magenta = Hex(0xFF00FF)

	// A few shades of white, which look quite different on RGB LEDs.
	Ivory = Hex(0xFFFFF0)
	Linen = Hex(0xFAF0E6)
	Beige = Hex(0xF5F5DC)
	Khaki = Hex(0xF0E68C)
)

// RGB returns a new color with the given channels.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Hex converts a 0xRRGGBB value to a color. The upper 8 bits are ignored.
func Hex(rgb uint32) Color {
	return Color{
		R: uint8(rgb >> 16),
		G: uint8(rgb >> 8),
		B: uint8(rgb >> 0),
	}
}

// HSV returns the color for the given hue (in degrees, 0..360), saturation and
// value (both 0..1).
func HSV(h, s, v float64) Color {
	r, g, b := colorful.Hsv(h, s, v).Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

// Hex returns the color as a 0xRRGGBB value.
func (c Color) Hex() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Interpolate returns the color that lies the given fraction (0..1) of the way
// from c to other. A fraction of 0 returns c unchanged.
func (c Color) Interpolate(other Color, fraction float32) Color {
	return Color{
		R: lerp(c.R, other.R, fraction),
		G: lerp(c.G, other.G, fraction),
		B: lerp(c.B, other.B, fraction),
	}
}

// Scale multiplies every channel by the given factor. Channels saturate at 0
// and 255.
func (c Color) Scale(factor float32) Color {
	return Color{
		R: clamp(float32(c.R) * factor),
		G: clamp(float32(c.G) * factor),
		B: clamp(float32(c.B) * factor),
	}
}

// RGB888 converts the color to the pixel format used by tinygl.
func (c Color) RGB888() pixel.RGB888 {
	return pixel.NewRGB888(c.R, c.G, c.B)
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}.RGBA()
}

func lerp(from, to uint8, fraction float32) uint8 {
	return clamp(fraction*(float32(to)-float32(from)) + float32(from))
}

func clamp(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
