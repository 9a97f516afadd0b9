package ring

import "time"

// Line is the platform primitive that puts a single bit on the data wire of the
// pixel ring. Every bit is a high pulse followed by a low pulse; the length of
// the high pulse encodes the bit value and the whole bit always takes the same
// time (see Timing).
//
// WriteBit is called with interrupts disabled, for every bit of every pixel in
// order, so implementations must not block or allocate.
type Line interface {
	WriteBit(one bool)
}

// Latcher is implemented by lines that want to know when a complete frame has
// been written (for example lines that buffer whole words or frames).
type Latcher interface {
	Latch()
}

// Timing is the timing profile of a single bit on the wire.
type Timing struct {
	ZeroHigh, ZeroLow time.Duration // 0-bit: short high, long low
	OneHigh, OneLow   time.Duration // 1-bit: long high, short low

	// Maximum difference between the length of a 0-bit and a 1-bit.
	Tolerance time.Duration
}

// WS2812B is the timing profile of WS2812B pixels: a bit takes 1.25µs
// regardless of its value.
var WS2812B = Timing{
	ZeroHigh:  400 * time.Nanosecond,
	ZeroLow:   850 * time.Nanosecond,
	OneHigh:   800 * time.Nanosecond,
	OneLow:    450 * time.Nanosecond,
	Tolerance: 50 * time.Nanosecond,
}

// Period returns the duration of a single bit. This is the length of a 1-bit;
// a valid profile has 0-bits of (nearly) the same length.
func (t Timing) Period() time.Duration {
	return t.OneHigh + t.OneLow
}

// High returns how long the line is held high for the given bit value.
func (t Timing) High(one bool) time.Duration {
	if one {
		return t.OneHigh
	}
	return t.ZeroHigh
}

// Low returns how long the line is held low for the given bit value.
func (t Timing) Low(one bool) time.Duration {
	if one {
		return t.OneLow
	}
	return t.ZeroLow
}

// Valid reports whether 0-bits and 1-bits take the same time (within the
// tolerance) and whether a 1-bit has a longer high pulse than a 0-bit.
func (t Timing) Valid() bool {
	diff := (t.ZeroHigh + t.ZeroLow) - (t.OneHigh + t.OneLow)
	if diff < 0 {
		diff = -diff
	}
	return diff <= t.Tolerance && t.OneHigh > t.ZeroHigh && t.ZeroHigh > 0 && t.OneLow > 0
}
