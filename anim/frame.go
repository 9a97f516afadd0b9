package anim

import (
	"time"

	"github.com/ringbutton/board/palette"
)

// Frame is the context handed to a generator for every computed frame. The
// generator writes the new colors into Pixels.
type Frame struct {
	// Pixels is the live pixel buffer of the ring.
	Pixels []palette.Color

	// Palette used by the animation.
	Palette *palette.Palette

	// Cycle is the period of the animation. It is always positive.
	Cycle time.Duration

	// Start and Stop of the animation. Stop is zero for animations that run
	// until they are replaced.
	Start, Stop time.Duration

	// Updated is the time of the frame being computed.
	Updated time.Duration

	// Scratch is free for use by the active generator, for example to detect
	// step changes between frames. It is reset to 0 when an animation starts.
	Scratch int
}

// elapsed returns the time since the start of the current cycle.
func (f *Frame) elapsed() time.Duration {
	return (f.Updated - f.Start) % f.Cycle
}

// Step maps the position in the current cycle onto one of n discrete steps,
// returning a value in [0, n).
func (f *Frame) Step(n int) int {
	return int(int64(f.elapsed()) * int64(n) / int64(f.Cycle))
}

// StepF maps the position in the current cycle onto the continuous range
// [0, n).
func (f *Frame) StepF(n float32) float32 {
	return float32(float64(f.elapsed()) * float64(n) / float64(f.Cycle))
}

// PixelStep returns the current step when every pixel is one step.
func (f *Frame) PixelStep() int {
	return f.Step(len(f.Pixels))
}

// PaletteStep returns the current step when every palette color is one step.
func (f *Frame) PaletteStep() int {
	return f.Step(f.Palette.Len())
}

// PalettePartialStep returns the current fractional palette index.
func (f *Frame) PalettePartialStep() float32 {
	return f.StepF(float32(f.Palette.Len()))
}

// PaletteStepColor returns the palette color of the current step.
func (f *Frame) PaletteStepColor() palette.Color {
	return f.Palette.Color(f.PaletteStep())
}

// PalettePartialStepColor returns the blended palette color of the current
// position in the cycle.
func (f *Frame) PalettePartialStepColor() palette.Color {
	return f.Palette.ColorAt(f.PalettePartialStep())
}

// PaletteColor returns the palette color at an integer index (wrapping).
func (f *Frame) PaletteColor(index int) palette.Color {
	return f.Palette.Color(index)
}

// PaletteColorAt returns the palette color at a fractional index.
func (f *Frame) PaletteColorAt(index float32) palette.Color {
	return f.Palette.ColorAt(index)
}

// RandomColor returns a random palette color.
func (f *Frame) RandomColor() palette.Color {
	return f.Palette.RandomColor()
}

// PixelColor returns the current color of a pixel, wrapping the index.
func (f *Frame) PixelColor(index int) palette.Color {
	n := len(f.Pixels)
	return f.Pixels[((index%n)+n)%n]
}

// Fill sets all pixels to the same color.
func (f *Frame) Fill(c palette.Color) {
	for i := range f.Pixels {
		f.Pixels[i] = c
	}
}

// Map linearly maps value from the range [fromLow, fromHigh] onto the range
// [toLow, toHigh]. Values outside the input range are extrapolated.
func Map(value, fromLow, fromHigh, toLow, toHigh float32) float32 {
	return (value-fromLow)*(toHigh-toLow)/(fromHigh-fromLow) + toLow
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
