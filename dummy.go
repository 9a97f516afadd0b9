package board

// This file contains dummy devices, for boards which don't have a particular
// kind of peripheral.

// Dummy pixel line that drops all data.
// Used for boards without a pixel ring.
type noLine struct{}

func (l noLine) WriteBit(one bool) {
}

// Dummy button that is never pressed.
type noButton struct {
	activeHigh bool
}

func (b noButton) Get() bool {
	// Report the released level for the configured polarity.
	return !b.activeHigh
}

// Dummy SPI bus without any devices on it. Reads return all zeroes.
type noSPI struct{}

func (s noSPI) Tx(w, r []byte) error {
	for i := range r {
		r[i] = 0
	}
	return nil
}

func (s noSPI) Transfer(b byte) (byte, error) {
	return 0, nil
}

// Dummy chip select pin.
type noPin struct{}

func (p noPin) Set(high bool) {
}

// Dummy speaker that stays silent.
type noSpeaker struct{}

func (s noSpeaker) Tone(frequency uint32) {
}

func (s noSpeaker) Stop() {
}
