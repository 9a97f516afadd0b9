// Package ring drives a daisy-chained ring of WS2812-style RGB pixels.
//
// The driver owns the color buffer and serializes it onto a single data line.
// Each pixel takes 24 bits (green, red, blue, most significant bit first) and
// shifts everything after its own 24 bits on to the next pixel, so a single
// mistimed bit corrupts the rest of the chain. For that reason interrupts are
// disabled for the whole transmission.
package ring

import (
	"time"

	"github.com/ringbutton/board/palette"
)

// DefaultLatchGap is the minimum time the data line must stay low after a
// frame before the pixels latch the new colors.
const DefaultLatchGap = 50 * time.Microsecond

// Driver owns the pixel buffer and transmits it to the ring.
type Driver struct {
	line     Line
	timing   Timing
	pixels   []palette.Color
	dirty    bool
	latchGap time.Duration
	lastEnd  time.Time
	now      func() time.Time
}

// New returns a driver for count pixels attached to the given line. The
// buffer starts out black and dirty, so the first Transmit clears the ring.
func New(line Line, count int, timing Timing) *Driver {
	return &Driver{
		line:     line,
		timing:   timing,
		pixels:   make([]palette.Color, count),
		dirty:    true,
		latchGap: DefaultLatchGap,
		now:      time.Now,
	}
}

// SetLatchGap changes the minimum idle time between two frames.
func (d *Driver) SetLatchGap(gap time.Duration) {
	d.latchGap = gap
}

// SetClock replaces the clock used to enforce the latch gap.
func (d *Driver) SetClock(now func() time.Time) {
	d.now = now
}

// Len returns the number of pixels in the ring.
func (d *Driver) Len() int {
	return len(d.pixels)
}

// Pixels returns the pixel buffer itself. Callers that modify it must call
// MarkDirty afterwards.
func (d *Driver) Pixels() []palette.Color {
	return d.pixels
}

// Pixel returns the color of the given pixel, or black if it is out of range.
func (d *Driver) Pixel(index int) palette.Color {
	if index < 0 || index >= len(d.pixels) {
		return palette.Black
	}
	return d.pixels[index]
}

// SetPixelColor changes the color of a single pixel. Out of range indices are
// ignored.
func (d *Driver) SetPixelColor(index int, c palette.Color) {
	if index < 0 || index >= len(d.pixels) {
		return
	}
	d.pixels[index] = c
	d.dirty = true
}

// MarkDirty makes sure the buffer is sent on the next Transmit.
func (d *Driver) MarkDirty() {
	d.dirty = true
}

// Dirty reports whether the buffer changed since the last transmission.
func (d *Driver) Dirty() bool {
	return d.dirty
}

// FrameDuration returns how long the line is busy sending one frame.
func (d *Driver) FrameDuration() time.Duration {
	return time.Duration(len(d.pixels)*24) * d.timing.Period()
}

// Transmit sends the buffer to the ring if it changed, or unconditionally when
// force is set. When the previous frame ended less than the latch gap ago it
// waits for the remainder of the gap first.
func (d *Driver) Transmit(force bool) {
	if !d.dirty && !force {
		return
	}

	// Wait for the pixels to latch the previous frame. Instead of sleeping at
	// the end of every frame, only wait when frames follow each other closely.
	for !d.lastEnd.IsZero() && d.now().Sub(d.lastEnd) < d.latchGap {
	}

	state := disableInterrupts()
	for _, c := range d.pixels {
		d.writeByte(c.G)
		d.writeByte(c.R)
		d.writeByte(c.B)
	}
	restoreInterrupts(state)

	if l, ok := d.line.(Latcher); ok {
		l.Latch()
	}
	d.lastEnd = d.now()
	d.dirty = false
}

func (d *Driver) writeByte(b uint8) {
	for mask := uint8(0x80); mask != 0; mask >>= 1 {
		d.line.WriteBit(b&mask != 0)
	}
}
