package anim

import (
	"math"
	"math/rand"

	"github.com/ringbutton/board/palette"
)

// The animations below only use the first palette color.

// Blink shows the first palette color for the first half of the cycle and
// turns all pixels off for the second half.
var Blink = GeneratorFunc(func(f *Frame) {
	f.Fill(f.PaletteColor(0).Scale(float32((f.Step(2) + 1) % 2)))
})

// Alternating lights every other pixel, swapping halfway through the cycle.
var Alternating = GeneratorFunc(func(f *Frame) {
	step := f.Step(2)
	c := f.PaletteColor(0)
	for i := range f.Pixels {
		f.Pixels[i] = c.Scale(float32((step + i) % 2))
	}
})

// FadeIn ramps up from black to the first palette color every cycle.
var FadeIn = GeneratorFunc(func(f *Frame) {
	f.Fill(f.PaletteColor(0).Scale(f.StepF(1)))
})

// FadeOut ramps down from the first palette color to black every cycle.
var FadeOut = GeneratorFunc(func(f *Frame) {
	f.Fill(f.PaletteColor(0).Scale(1 - f.StepF(1)))
})

// Glow smoothly pulses the first palette color.
var Glow = GeneratorFunc(func(f *Frame) {
	scale := (1 - float32(math.Cos(float64(f.StepF(2*math.Pi))))) / 2
	f.Fill(f.PaletteColor(0).Scale(scale))
})

// The animations below use all palette colors.

// Strobe flashes a random palette color for the first tenth of the cycle.
var Strobe = GeneratorFunc(func(f *Frame) {
	step := f.Step(10)
	if step == f.Scratch {
		return
	}
	f.Scratch = step
	if step == 0 {
		f.Fill(f.RandomColor())
	} else {
		f.Fill(palette.Black)
	}
})

// Sparkle randomly lights pixels in palette colors and lets them fade out.
// Longer cycles make sparkles rarer.
var Sparkle = GeneratorFunc(func(f *Frame) {
	chance := int(f.Cycle.Milliseconds() / 10)
	if chance < 1 {
		chance = 1
	}
	for i := range f.Pixels {
		if rand.Intn(chance) == 0 {
			f.Pixels[i] = f.RandomColor()
		} else {
			f.Pixels[i] = f.Pixels[i].Scale(0.75)
		}
	}
})

// Fader smoothly blends through all palette colors.
var Fader = GeneratorFunc(func(f *Frame) {
	f.Fill(f.PalettePartialStepColor())
})

// Cycle steps through all palette colors.
var Cycle = GeneratorFunc(func(f *Frame) {
	f.Fill(f.PaletteStepColor())
})

// Random shows a new random palette color at every palette step.
var Random = GeneratorFunc(func(f *Frame) {
	step := f.PaletteStep()
	if step != f.Scratch {
		f.Fill(f.RandomColor())
	} else {
		f.Fill(f.PixelColor(0))
	}
	f.Scratch = step
})

// Increment moves a single lit pixel forward around the ring.
var Increment = GeneratorFunc(func(f *Frame) {
	single(f, f.PixelStep())
})

// Decrement moves a single lit pixel backward around the ring.
var Decrement = GeneratorFunc(func(f *Frame) {
	single(f, len(f.Pixels)-1-f.PixelStep())
})

// Bounce moves a single lit pixel from the first to the last pixel and back.
var Bounce = GeneratorFunc(func(f *Frame) {
	last := len(f.Pixels) - 1
	step := f.Step(2 * last)
	single(f, last-abs(step-last))
})

// Scanner moves a soft-edged bar back and forth, entering and leaving the
// ring at both ends.
var Scanner = GeneratorFunc(func(f *Frame) {
	n := len(f.Pixels)
	tail := float32(n / 4)
	step := f.StepF(float32(2*n) + tail*4 - 1)
	c := f.PalettePartialStepColor()
	head := abs(int(step - float32(n) - 2*tail))
	for i := range f.Pixels {
		scale := -float32(abs(int(float32(head-i)-tail))) + tail
		f.Pixels[i] = c.Scale(clamp01(scale))
	}
})

// Comet runs a bright head through the ring, followed by a fading tail that
// walks through the palette colors.
var Comet = GeneratorFunc(func(f *Frame) {
	n := len(f.Pixels)
	tail := float32(n / 2)
	head := f.StepF(float32(2*n) - tail)
	last := float32(f.Palette.Len() - 1)
	for i := range f.Pixels {
		behind := head - float32(i)
		c := f.PaletteColorAt(Map(max(behind, 0), 0, float32(n)/1.75, 0, last))
		scale := float32(0)
		if behind > 0 {
			scale = clamp01(-behind/tail + 1.25)
		}
		f.Pixels[i] = c.Scale(scale)
	}
})

// Bars spreads the palette over the ring in solid bands and rotates them.
var Bars = GeneratorFunc(func(f *Frame) {
	n := len(f.Pixels)
	step := f.PixelStep()
	for i := range f.Pixels {
		f.Pixels[i] = f.PaletteColor((step + i) * f.Palette.Len() / n)
	}
})

// Gradient spreads the palette over the ring as a smooth gradient and rotates
// it.
var Gradient = GeneratorFunc(func(f *Frame) {
	n := float32(len(f.Pixels))
	step := float32(f.PixelStep())
	for i := range f.Pixels {
		f.Pixels[i] = f.PaletteColorAt((step + float32(i)) * float32(f.Palette.Len()) / n)
	}
})

// Named is a generator with a name, for listing generators in applications.
type Named struct {
	Name string
	Generator
}

// Generators lists all shipped generators.
var Generators = []Named{
	{"blink", Blink},
	{"fade-in", FadeIn},
	{"fade-out", FadeOut},
	{"glow", Glow},
	{"alternating", Alternating},
	{"strobe", Strobe},
	{"sparkle", Sparkle},
	{"cycle", Cycle},
	{"fader", Fader},
	{"random", Random},
	{"increment", Increment},
	{"decrement", Decrement},
	{"bounce", Bounce},
	{"scanner", Scanner},
	{"comet", Comet},
	{"bars", Bars},
	{"gradient", Gradient},
}

// Lookup returns the shipped generator with the given name, or nil.
func Lookup(name string) Generator {
	for _, g := range Generators {
		if g.Name == name {
			return g.Generator
		}
	}
	return nil
}

// single lights only the pixel at index, in the current blended palette color.
func single(f *Frame, index int) {
	c := f.PalettePartialStepColor()
	for i := range f.Pixels {
		if i == index {
			f.Pixels[i] = c
		} else {
			f.Pixels[i] = palette.Black
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
