//go:build !baremetal

package board

// The generic board exists for testing locally without running on real
// hardware. This avoids potentially long edit-flash-test cycles.

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/aykevl/tinygl/pixel"
	"github.com/pkg/errors"

	"github.com/ringbutton/board/accel"
	"github.com/ringbutton/board/button"
	"github.com/ringbutton/board/palette"
	"github.com/ringbutton/board/ring"
)

const (
	// The board name, as passed to TinyGo in the "-target" flag.
	// This is the special name "simulator" for the simulator.
	Name = "simulator"
)

var (
	simButtons [ButtonCount]simulatedButton
	simAccel   = &accel.Model{}
)

func defaultHardware() Hardware {
	buttons := make([]button.Input, ButtonCount)
	for i := range simButtons {
		buttons[i] = &simButtons[i]
	}
	simAccel.SetAcceleration(0, 0, Simulator.TiltRange)
	return Hardware{
		PixelLine: &ring.Decoder{
			Timing:  ring.WS2812B,
			OnFrame: sendLEDs,
		},
		PixelTiming: ring.WS2812B,
		Buttons:     buttons,
		AccelBus:    simAccel,
		AccelCS:     simAccel,
		Speaker:     simulatedSpeaker{},
		Configure:   startWindow,
	}
}

// The simulated buttons are updated from window key events. Like the real
// buttons they read low while pressed.
type simulatedButton struct {
	pressed atomic.Bool
}

func (b *simulatedButton) Get() bool {
	return !b.pressed.Load()
}

// simulatedLEDs mirrors the pixel ring in the window. Every complete frame
// decoded from the data line is stored in Data and sent to the window.
type simulatedLEDs struct {
	Data []pixel.RGB888
}

var simLEDs simulatedLEDs

func sendLEDs(colors []palette.Color) {
	simLEDs.set(colors)
	simLEDs.Update()
}

func (l *simulatedLEDs) set(colors []palette.Color) {
	if len(l.Data) != len(colors) {
		l.Data = make([]pixel.RGB888, len(colors))
	}
	for i, c := range colors {
		l.Data[i] = c.RGB888()
	}
}

// Update the window with the color data in the Data field.
func (l *simulatedLEDs) Update() {
	cmd := fmt.Sprintf("addressable-leds %d", len(l.Data))
	windowSendCommand(cmd, pixelsToBytes(l.Data))
}

// pixelsToBytes encodes pixels in the wire format of the "addressable-leds"
// window command: three bytes per pixel in R, G, B order.
func pixelsToBytes(data []pixel.RGB888) []byte {
	buf := make([]byte, 0, len(data)*3)
	for _, c := range data {
		buf = append(buf, c.R, c.G, c.B)
	}
	return buf
}

type simulatedSpeaker struct{}

func (s simulatedSpeaker) Tone(frequency uint32) {
	windowSendCommand(fmt.Sprintf("tone %d", frequency), nil)
}

func (s simulatedSpeaker) Stop() {
	windowSendCommand("tone 0", nil)
}

var (
	fyneStart    sync.Once
	windowErr    error
	windowLock   sync.Mutex
	windowStdin  io.WriteCloser
	windowStdout io.ReadCloser
)

// Ensure the window is running in a separate process, starting it if necessary.
func startWindow() error {
	fyneStart.Do(func() {
		cmd := exec.Command(os.Args[0], runWindowCommand)
		cmd.Stderr = os.Stderr
		windowStdin, windowErr = cmd.StdinPipe()
		if windowErr != nil {
			return
		}
		windowStdout, windowErr = cmd.StdoutPipe()
		if windowErr != nil {
			return
		}
		if err := cmd.Start(); err != nil {
			windowErr = errors.Wrap(err, "could not start window process")
			return
		}

		go func() {
			err := cmd.Wait()
			if err != nil {
				if exitErr, ok := err.(*exec.ExitError); ok {
					os.Exit(exitErr.ExitCode())
				}
				os.Exit(1)
			}
			// The window was closed, so exit.
			os.Exit(0)
		}()

		// Listen for events (keyboard/mouse).
		go windowListenEvents()

		// Do some initialization.
		windowSendCommand("title "+Simulator.WindowTitle, nil)
	})
	return windowErr
}

// Send a command to the separate process that manages the window.
// The command is a single line (without newline). The data part is optional
// binary data that can be sent with the command. The size of this binary data
// must be part of the textual command.
func windowSendCommand(command string, data []byte) {
	windowLock.Lock()
	defer windowLock.Unlock()

	if windowStdin == nil {
		// The window isn't running (yet).
		return
	}
	windowStdin.Write([]byte(command + "\n"))
	windowStdin.Write(data)
}

// Goroutine that listens for window events like key presses and mouse drags.
func windowListenEvents() {
	r := bufio.NewReader(windowStdout)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				fmt.Fprintln(os.Stderr, "failed to read I/O events from child process:", err)
			}
			return
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		cmd := fields[0]
		switch cmd {
		case "keypress", "keyrelease":
			var index int
			fmt.Sscanf(line, "%s %d", &cmd, &index)
			if index >= 0 && index < len(simButtons) {
				simButtons[index].pressed.Store(cmd == "keypress")
			}
		case "tilt":
			var dx, dy, radius int
			fmt.Sscanf(line, "%s %d %d %d", &cmd, &dx, &dy, &radius)
			x, y, z := tiltToAcceleration(dx, dy, radius, Simulator.TiltRange)
			simAccel.SetAcceleration(x, y, z)
		default:
			fmt.Fprintln(os.Stderr, "unknown command:", cmd)
		}
	}
}

// tiltToAcceleration converts a mouse drag (in window pixels) into the
// acceleration measured by a sensor tilted in that direction. A drag of radius
// pixels or more tilts the ring by 90 degrees. Dragging up tilts the top of the
// ring down, so that it points towards azimuth 0.
func tiltToAcceleration(dx, dy, radius int, g int16) (x, y, z int16) {
	if radius <= 0 {
		radius = 1
	}
	fx := -float64(dx) / float64(radius)
	fy := float64(dy) / float64(radius)
	if l := math.Hypot(fx, fy); l > 1 {
		fx /= l
		fy /= l
	}
	fz := math.Sqrt(math.Max(0, 1-fx*fx-fy*fy))
	return int16(fx * float64(g)), int16(fy * float64(g)), int16(fz * float64(g))
}
