package ring

import (
	"time"

	"github.com/ringbutton/board/palette"
)

// Decoder is a Line that plays the part of the pixels: it decodes the bit
// stream back into colors. It is used by the simulator and in tests.
type Decoder struct {
	// Timing is used to account for the time spent on the wire.
	Timing Timing

	// OnFrame, if set, is called with the decoded colors of every complete
	// frame. The slice is reused for the next frame.
	OnFrame func(colors []palette.Color)

	bits     uint32
	nbits    int
	colors   []palette.Color
	frame    []palette.Color
	frames   int
	wireTime time.Duration
}

// WriteBit implements Line.
func (d *Decoder) WriteBit(one bool) {
	d.bits <<= 1
	if one {
		d.bits |= 1
	}
	d.nbits++
	d.wireTime += d.Timing.High(one) + d.Timing.Low(one)
	if d.nbits == 24 {
		d.colors = append(d.colors, palette.Color{
			G: uint8(d.bits >> 16),
			R: uint8(d.bits >> 8),
			B: uint8(d.bits >> 0),
		})
		d.bits = 0
		d.nbits = 0
	}
}

// Latch implements Latcher. The colors received since the previous latch
// become the current frame.
func (d *Decoder) Latch() {
	d.frame = append(d.frame[:0], d.colors...)
	d.colors = d.colors[:0]
	d.bits = 0
	d.nbits = 0
	d.frames++
	if d.OnFrame != nil {
		d.OnFrame(d.frame)
	}
}

// Frame returns the colors of the last complete frame.
func (d *Decoder) Frame() []palette.Color {
	return d.frame
}

// Frames returns the number of frames received so far.
func (d *Decoder) Frames() int {
	return d.frames
}

// WireTime returns the total time spent sending bits so far.
func (d *Decoder) WireTime() time.Duration {
	return d.wireTime
}
