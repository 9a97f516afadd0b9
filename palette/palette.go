package palette

import (
	"math"
	"math/rand"
)

// Palette is an ordered list of colors. Animations treat a palette as a ring:
// indices wrap around and fractional indices blend between neighbours.
//
// Palettes are shared read-only data; never modify the Colors slice of a
// palette that may be in use by an animation.
type Palette struct {
	Name   string
	Colors []Color
}

// New returns a palette with the given colors. It panics when no colors are
// given, as an empty palette can't produce any color.
func New(name string, colors ...Color) *Palette {
	if len(colors) == 0 {
		panic("palette: empty palette")
	}
	return &Palette{Name: name, Colors: colors}
}

// Len returns the number of colors in the palette.
func (p *Palette) Len() int {
	return len(p.Colors)
}

// Color returns the color at the given integer index, wrapping around in both
// directions.
func (p *Palette) Color(index int) Color {
	return p.Colors[wrap(index, len(p.Colors))]
}

// ColorAt returns the color at a fractional index. The integer part selects a
// palette entry (modulo the palette length) and the fractional part blends
// towards the next entry, which wraps to the first entry at the end.
func (p *Palette) ColorAt(index float32) Color {
	whole := math.Floor(float64(index))
	fraction := index - float32(whole)
	first := wrap(int(whole), len(p.Colors))
	second := wrap(first+1, len(p.Colors))
	return p.Colors[first].Interpolate(p.Colors[second], fraction)
}

// RandomColor returns one of the palette colors, chosen uniformly.
func (p *Palette) RandomColor() Color {
	return p.Colors[rand.Intn(len(p.Colors))]
}

// Equal reports whether both palettes contain the same colors in the same
// order. Names are not compared.
func (p *Palette) Equal(other *Palette) bool {
	if len(p.Colors) != len(other.Colors) {
		return false
	}
	for i, c := range p.Colors {
		if other.Colors[i] != c {
			return false
		}
	}
	return true
}

// Hues returns a palette of n fully saturated colors evenly spread around the
// color wheel, starting at red.
func Hues(name string, n int) *Palette {
	colors := make([]Color, n)
	for i := range colors {
		colors[i] = HSV(360*float64(i)/float64(n), 1, 1)
	}
	return New(name, colors...)
}

func wrap(index, n int) int {
	index %= n
	if index < 0 {
		index += n
	}
	return index
}
