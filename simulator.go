//go:build !baremetal

package board

// The simulator shows the pixel ring in a window and lets the buttons and the
// accelerometer be controlled with the keyboard and mouse:
//   * the arrow keys (left, up, right, down) are the four buttons
//   * dragging the mouse tilts the ring in the direction of the drag
//   * the tone currently played on the buzzer is shown below the ring.
//
// The board API doesn't use a mainloop of any kind, which would not be
// necessary anyway on embedded systems. But it is necessary on OSes, so to work
// around this the simulator is actually run in a separate process by starting
// the current process again and communicating over pipes (stdin/stdout in the
// simulator process).

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"golang.org/x/image/draw"
)

const runWindowCommand = "run-simulator-window"

func init() {
	if len(os.Args) >= 2 && os.Args[1] == runWindowCommand {
		// This is the simulator process.
		// Run the entire window in an init function, because that's the only
		// way to do this with the API that is exposed by the board package.
		windowMain()
		os.Exit(0)
	}
}

var (
	ledsLock sync.Mutex
	leds     []color.RGBA
	tilt     image.Point // current drag offset from the center of the ring
)

// The main function for the window process.
func windowMain() {
	ring := &ringWidget{}
	ring.Generator = drawRing
	ring.SetMinSize(fyne.NewSize(float32(Simulator.WindowWidth), float32(Simulator.WindowWidth)))
	status := widget.NewLabel("silent")
	status.Alignment = fyne.TextAlignCenter

	// Create a window.
	a := app.New()
	w := a.NewWindow(Simulator.WindowTitle)
	w.SetPadded(false)
	w.SetFixedSize(true)
	w.SetContent(fyne.NewContainerWithLayout(layout.NewVBoxLayout(), ring, status))

	// Listen for keyboard events, and translate them to button indices.
	if deskCanvas, ok := w.Canvas().(desktop.Canvas); ok {
		deskCanvas.SetOnKeyDown(func(event *fyne.KeyEvent) {
			if index := decodeFyneKey(event.Name); index >= 0 {
				fmt.Printf("keypress %d\n", index)
			}
		})
		deskCanvas.SetOnKeyUp(func(event *fyne.KeyEvent) {
			if index := decodeFyneKey(event.Name); index >= 0 {
				fmt.Printf("keyrelease %d\n", index)
			}
		})
	}

	// Listen for events from the parent process (pixel data and tones).
	go windowReceiveEvents(w, ring, status)

	// Show the window.
	w.ShowAndRun()
}

// drawRing draws all LEDs as discs on a circle, with the first LED at the top
// and the others following clockwise. The whole ring is shifted a bit in the
// direction it is tilted.
func drawRing(w, h int) image.Image {
	ledsLock.Lock()
	defer ledsLock.Unlock()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 32, G: 32, B: 32, A: 255}), image.Point{}, draw.Src)
	if len(leds) == 0 {
		return img
	}

	size := min(w, h)
	ledRadius := size / 14
	ringRadius := float64(size/2 - ledRadius - 4)
	center := image.Pt(w/2+tilt.X/8, h/2+tilt.Y/8)
	for i, c := range leds {
		angle := 2 * math.Pi * float64(i) / float64(len(leds))
		pos := center.Add(image.Pt(
			int(math.Round(ringRadius*math.Sin(angle))),
			int(math.Round(-ringRadius*math.Cos(angle)))))
		area := image.Rect(pos.X-ledRadius, pos.Y-ledRadius, pos.X+ledRadius, pos.Y+ledRadius)
		draw.DrawMask(img, area, image.NewUniform(c), image.Point{}, &disc{ledRadius}, image.Point{}, draw.Over)
	}
	return img
}

// disc is an image mask in the shape of a filled circle centered in its
// bounds.
type disc struct {
	r int
}

func (d *disc) ColorModel() color.Model {
	return color.AlphaModel
}

func (d *disc) Bounds() image.Rectangle {
	return image.Rect(0, 0, 2*d.r, 2*d.r)
}

func (d *disc) At(x, y int) color.Color {
	dx := float64(x-d.r) + 0.5
	dy := float64(y-d.r) + 0.5
	if dx*dx+dy*dy < float64(d.r*d.r) {
		return color.Alpha{255}
	}
	return color.Alpha{0}
}

// Goroutine that listens for commands from the parent process.
func windowReceiveEvents(w fyne.Window, ring *ringWidget, status *widget.Label) {
	r := bufio.NewReader(os.Stdin)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			// The parent process exited.
			os.Exit(0)
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		cmd := fields[0]
		switch cmd {
		case "title":
			w.SetTitle(strings.TrimSpace(line[len("title"):]))
		case "addressable-leds":
			// Read the LED data.
			var numLEDs int
			fmt.Sscanf(line, "%s %d\n", &cmd, &numLEDs)
			buf := make([]byte, numLEDs*3)
			io.ReadFull(r, buf)

			// Update the leds slice.
			ledsLock.Lock()
			if len(leds) != numLEDs {
				leds = make([]color.RGBA, numLEDs)
			}
			for i := range leds {
				leds[i] = color.RGBA{
					R: gammaEncodeTable[buf[i*3+0]],
					G: gammaEncodeTable[buf[i*3+1]],
					B: gammaEncodeTable[buf[i*3+2]],
					A: 255,
				}
			}
			ledsLock.Unlock()
			ring.Refresh()
		case "tone":
			var frequency uint32
			fmt.Sscanf(line, "%s %d\n", &cmd, &frequency)
			if frequency == 0 {
				status.SetText("silent")
			} else {
				status.SetText(fmt.Sprintf("♪ %d Hz", frequency))
			}
		default:
			fmt.Fprintln(os.Stderr, "unknown command:", cmd)
		}
	}
}

// decodeFyneKey returns the button index for a key, or -1.
func decodeFyneKey(key fyne.KeyName) int {
	switch key {
	case fyne.KeyLeft:
		return 0
	case fyne.KeyUp:
		return 1
	case fyne.KeyRight:
		return 2
	case fyne.KeyDown:
		return 3
	default:
		return -1
	}
}

var _ desktop.Mouseable = (*ringWidget)(nil)
var _ fyne.Draggable = (*ringWidget)(nil)

// Wrapper for canvas.Raster that sends the mouse drag offset to the parent
// process as a tilt.
type ringWidget struct {
	canvas.Raster
	start fyne.Position
}

func (r *ringWidget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(&r.Raster)
}

func (r *ringWidget) MouseDown(event *desktop.MouseEvent) {
	if event.Button == desktop.MouseButtonPrimary {
		r.start = event.Position
	}
}

func (r *ringWidget) MouseUp(event *desktop.MouseEvent) {
	if event.Button == desktop.MouseButtonPrimary {
		r.setTilt(0, 0)
	}
}

func (r *ringWidget) Dragged(event *fyne.DragEvent) {
	pos := event.PointEvent.Position
	r.setTilt(int(pos.X-r.start.X), int(pos.Y-r.start.Y))
}

func (r *ringWidget) DragEnd() {
	// handled in MouseUp
}

// setTilt reports a drag offset (in window pixels) to the parent process.
func (r *ringWidget) setTilt(dx, dy int) {
	ledsLock.Lock()
	tilt = image.Pt(dx, dy)
	ledsLock.Unlock()
	r.Refresh()
	fmt.Printf("tilt %d %d %d\n", dx, dy, Simulator.WindowWidth/2)
}

// Gamma brightness lookup table:
// https://victornpb.github.io/gamma-table-generator
// gamma = 0.45 steps = 256 range = 0-255
var gammaEncodeTable = [256]uint8{
	0, 21, 28, 34, 39, 43, 46, 50, 53, 56, 59, 61, 64, 66, 68, 70,
	72, 74, 76, 78, 80, 82, 84, 85, 87, 89, 90, 92, 93, 95, 96, 98,
	99, 101, 102, 103, 105, 106, 107, 109, 110, 111, 112, 114, 115, 116, 117, 118,
	119, 120, 122, 123, 124, 125, 126, 127, 128, 129, 130, 131, 132, 133, 134, 135,
	136, 137, 138, 139, 140, 141, 142, 143, 144, 144, 145, 146, 147, 148, 149, 150,
	151, 151, 152, 153, 154, 155, 156, 156, 157, 158, 159, 160, 160, 161, 162, 163,
	164, 164, 165, 166, 167, 167, 168, 169, 170, 170, 171, 172, 173, 173, 174, 175,
	175, 176, 177, 178, 178, 179, 180, 180, 181, 182, 182, 183, 184, 184, 185, 186,
	186, 187, 188, 188, 189, 190, 190, 191, 192, 192, 193, 194, 194, 195, 195, 196,
	197, 197, 198, 199, 199, 200, 200, 201, 202, 202, 203, 203, 204, 205, 205, 206,
	206, 207, 207, 208, 209, 209, 210, 210, 211, 212, 212, 213, 213, 214, 214, 215,
	215, 216, 217, 217, 218, 218, 219, 219, 220, 220, 221, 221, 222, 223, 223, 224,
	224, 225, 225, 226, 226, 227, 227, 228, 228, 229, 229, 230, 230, 231, 231, 232,
	232, 233, 233, 234, 234, 235, 235, 236, 236, 237, 237, 238, 238, 239, 239, 240,
	240, 241, 241, 242, 242, 243, 243, 244, 244, 245, 245, 246, 246, 247, 247, 248,
	248, 249, 249, 249, 250, 250, 251, 251, 252, 252, 253, 253, 254, 254, 255, 255,
}
