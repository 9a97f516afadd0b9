//go:build pico

package board

import (
	"machine"

	pio "github.com/tinygo-org/pio/rp2-pio"
	"github.com/tinygo-org/pio/rp2-pio/piolib"
	"tinygo.org/x/drivers/tone"
	"tinygo.org/x/drivers/ws2812"

	"github.com/ringbutton/board/button"
	"github.com/ringbutton/board/ring"
)

const (
	// The board name, as passed to TinyGo in the "-target" flag.
	Name = "pico"
)

// Wiring of the peripherals to the Pico.
const (
	pixelPin   = machine.GPIO22
	buzzerPin  = machine.GPIO15 // PWM7 channel B
	accelCSPin = machine.GPIO17
)

var buttonPins = [ButtonCount]machine.Pin{machine.GPIO2, machine.GPIO3, machine.GPIO4, machine.GPIO5}

func defaultHardware() Hardware {
	buttons := make([]button.Input, ButtonCount)
	for i, pin := range buttonPins {
		buttons[i] = pin
	}
	line := &pixelLine{}
	speaker := &buzzer{}
	return Hardware{
		PixelLine:   line,
		PixelTiming: ring.WS2812B,
		Buttons:     buttons,
		AccelBus:    machine.SPI0,
		AccelCS:     accelCSPin,
		ConfigureAccelBus: func() error {
			accelCSPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
			accelCSPin.High()
			return machine.SPI0.Configure(machine.SPIConfig{
				Frequency: 4_000_000,
				SCK:       machine.SPI0_SCK_PIN,
				SDO:       machine.SPI0_SDO_PIN,
				SDI:       machine.SPI0_SDI_PIN,
				Mode:      0,
			})
		},
		Speaker: speaker,
		Configure: func() error {
			for _, pin := range buttonPins {
				pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
			}
			line.configure()
			return speaker.configure()
		},
	}
}

// pixelLine sends pixel data through a PIO state machine when one is
// available, and falls back to bit-banging the data pin from the CPU.
type pixelLine struct {
	pio *piolib.WS2812B
	cpu ws2812.Device

	word  uint32
	nbits uint8
}

func (l *pixelLine) configure() {
	sm, err := pio.PIO0.ClaimStateMachine()
	if err == nil {
		l.pio, err = piolib.NewWS2812B(sm, pixelPin)
	}
	if err != nil || l.pio == nil {
		pixelPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
		l.cpu = ws2812.New(pixelPin)
	}
}

// WriteBit collects the bits of a pixel (PIO) or of a single byte (CPU) and
// sends them out once complete.
func (l *pixelLine) WriteBit(one bool) {
	l.word <<= 1
	if one {
		l.word |= 1
	}
	l.nbits++
	if l.pio != nil {
		if l.nbits == 24 {
			for l.pio.IsQueueFull() {
			}
			l.pio.PutRaw(l.word << 8)
			l.word, l.nbits = 0, 0
		}
		return
	}
	if l.nbits == 8 {
		l.cpu.WriteByte(byte(l.word))
		l.word, l.nbits = 0, 0
	}
}

// Latch implements ring.Latcher.
func (l *pixelLine) Latch() {
	l.word, l.nbits = 0, 0
}

// buzzer plays tones through a PWM output.
type buzzer struct {
	speaker tone.Speaker
	ok      bool
}

func (b *buzzer) configure() error {
	speaker, err := tone.New(machine.PWM7, buzzerPin)
	if err != nil {
		return err
	}
	b.speaker = speaker
	b.ok = true
	return nil
}

func (b *buzzer) Tone(frequency uint32) {
	if b.ok && frequency != 0 {
		b.speaker.SetPeriod(uint64(1e9 / frequency))
	}
}

func (b *buzzer) Stop() {
	if b.ok {
		b.speaker.Stop()
	}
}
