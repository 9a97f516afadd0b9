//go:build !baremetal

package board

import (
	"bytes"
	"testing"

	"github.com/aykevl/tinygl/pixel"

	"github.com/ringbutton/board/palette"
	"github.com/ringbutton/board/ring"
)

func TestSimulatedLEDs(t *testing.T) {
	var leds simulatedLEDs
	line := &ring.Decoder{Timing: ring.WS2812B, OnFrame: leds.set}
	pixels := ring.New(line, 3, ring.WS2812B)
	pixels.SetLatchGap(0)
	pixels.SetPixelColor(0, palette.Hex(0x102030))
	pixels.SetPixelColor(2, palette.Hex(0xff8001))
	pixels.Transmit(false)

	expected := []pixel.RGB888{{R: 0x10, G: 0x20, B: 0x30}, {}, {R: 0xff, G: 0x80, B: 0x01}}
	if len(leds.Data) != len(expected) {
		t.Fatalf("expected %d LEDs, got %d", len(expected), len(leds.Data))
	}
	for i, c := range expected {
		if leds.Data[i] != c {
			t.Errorf("LED %d: expected %v, got %v", i, c, leds.Data[i])
		}
	}

	data := leds.Data
	pixels.SetPixelColor(1, palette.White)
	pixels.Transmit(false)
	if &leds.Data[0] != &data[0] {
		t.Error("expected the LED buffer to be reused")
	}

	wire := pixelsToBytes(leds.Data)
	if !bytes.Equal(wire, []byte{0x10, 0x20, 0x30, 0xff, 0xff, 0xff, 0xff, 0x80, 0x01}) {
		t.Errorf("unexpected wire format: % x", wire)
	}
}

func TestTiltToAcceleration(t *testing.T) {
	for _, tc := range []struct {
		dx, dy, radius int
		x, y, z        int16
	}{
		{0, 0, 100, 0, 0, 1000},
		{-100, 0, 100, 1000, 0, 0},
		{0, 300, 100, 0, 1000, 0},
		{0, 0, 0, 0, 0, 1000},
	} {
		x, y, z := tiltToAcceleration(tc.dx, tc.dy, tc.radius, 1000)
		if x != tc.x || y != tc.y || z != tc.z {
			t.Errorf("tilt (%d, %d)/%d: expected (%d, %d, %d), got (%d, %d, %d)",
				tc.dx, tc.dy, tc.radius, tc.x, tc.y, tc.z, x, y, z)
		}
	}
}
