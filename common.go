package board

import (
	"tinygo.org/x/drivers"

	"github.com/ringbutton/board/accel"
	"github.com/ringbutton/board/button"
	"github.com/ringbutton/board/notes"
	"github.com/ringbutton/board/ring"
)

// Settings for the simulator. These can be modified at any time, but it is
// recommended to modify them before calling Setup.
var Simulator = struct {
	WindowTitle string

	// Width and height of the window in virtual pixels. The LED ring is drawn
	// centered in the window.
	WindowWidth  int
	WindowHeight int

	// Raw accelerometer value (1g) used when the ring is tilted all the way by
	// dragging the mouse from the center to the edge of the window.
	TiltRange int16
}{
	WindowTitle:  "Simulator",
	WindowWidth:  320,
	WindowHeight: 360,
	TiltRange:    1000,
}

// ButtonCount is the number of push buttons on the device.
const ButtonCount = 4

// Hardware describes the peripherals of a board. Every board file provides a
// default set; any field that is left nil is replaced by a dummy device that
// does nothing.
type Hardware struct {
	// Data line of the pixel ring and its bit timing. A zero Timing means
	// ring.WS2812B.
	PixelLine   ring.Line
	PixelTiming ring.Timing

	// Button inputs, active low unless ButtonsActiveHigh is set.
	Buttons           []button.Input
	ButtonsActiveHigh bool

	// SPI bus and chip select of the accelerometer. ConfigureAccelBus is
	// called when the accelerometer is started.
	AccelBus          drivers.SPI
	AccelCS           accel.Pin
	ConfigureAccelBus func() error

	Speaker notes.Speaker

	// Configure is called from Setup to configure pins and peripherals.
	Configure func() error
}

// withDummies returns a copy of the hardware where every missing device is
// replaced by a dummy.
func (hw Hardware) withDummies() Hardware {
	if hw.PixelLine == nil {
		hw.PixelLine = noLine{}
	}
	if hw.PixelTiming == (ring.Timing{}) {
		hw.PixelTiming = ring.WS2812B
	}
	for len(hw.Buttons) < ButtonCount {
		hw.Buttons = append(hw.Buttons, noButton{activeHigh: hw.ButtonsActiveHigh})
	}
	if hw.AccelBus == nil {
		hw.AccelBus = noSPI{}
	}
	if hw.AccelCS == nil {
		hw.AccelCS = noPin{}
	}
	if hw.Speaker == nil {
		hw.Speaker = noSpeaker{}
	}
	return hw
}
