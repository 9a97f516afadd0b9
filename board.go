// Package board drives a small device with a ring of RGB pixels, four push
// buttons, an accelerometer and a buzzer.
//
// All work happens inside Controller.Tick, which must be called in a loop. It
// services the note sequencer, the animation, the pixel ring, the
// accelerometer and the buttons, in that order. Button and motion handlers run
// last and may freely call back into the controller: their changes are sent to
// the pixel ring on the next tick.
package board

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ringbutton/board/accel"
	"github.com/ringbutton/board/anim"
	"github.com/ringbutton/board/button"
	"github.com/ringbutton/board/notes"
	"github.com/ringbutton/board/palette"
	"github.com/ringbutton/board/ring"
)

// Controller owns all peripherals of the device.
type Controller struct {
	config    Config
	hardware  Hardware
	logger    *slog.Logger
	pixels    *ring.Driver
	animation *anim.Engine
	buttons   *button.Controller
	accel     *accel.Device
	notes     *notes.Sequencer
	now       time.Duration
}

// New returns a controller for the given hardware. It does not touch the
// hardware until Setup is called.
func New(config Config, hardware Hardware) (*Controller, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("board: %w", err)
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	hw := hardware.withDummies()
	if !hw.PixelTiming.Valid() {
		return nil, fmt.Errorf("board: invalid pixel timing")
	}

	pixels := ring.New(hw.PixelLine, config.PixelCount, hw.PixelTiming)
	pixels.SetLatchGap(config.LatchGap)

	buttons := button.New(hw.Buttons...)
	buttons.SetDebounce(config.Debounce)
	buttons.SetActiveLow(!hw.ButtonsActiveHigh)

	return &Controller{
		config:    config,
		hardware:  hw,
		logger:    logger,
		pixels:    pixels,
		animation: anim.NewEngine(pixels),
		buttons:   buttons,
		accel: accel.New(hw.AccelBus, hw.AccelCS, accel.Options{
			CalibrationSamples: config.CalibrationSamples,
			Tolerance:          config.CalibrationTolerance,
			ConfigureBus:       hw.ConfigureAccelBus,
			Logger:             logger,
		}),
		notes: notes.NewSequencer(hw.Speaker, config.noteSettings(), logger),
	}, nil
}

// NewDefault returns a controller for the hardware of the board the program
// was compiled for.
func NewDefault(config Config) (*Controller, error) {
	return New(config, defaultHardware())
}

// Setup configures the hardware and turns all pixels off.
func (c *Controller) Setup() error {
	if c.hardware.Configure != nil {
		if err := c.hardware.Configure(); err != nil {
			return fmt.Errorf("board: configure %s: %w", Name, err)
		}
	}
	c.pixels.Transmit(true)
	c.logger.Info("board ready", "board", Name, "pixels", c.pixels.Len(), "buttons", c.buttons.Len())
	return nil
}

// Tick runs all periodic work. It must be called often (at least once per
// frame interval) with a monotonically increasing time.
func (c *Controller) Tick(now time.Duration) {
	c.now = now
	c.notes.Tick(now)
	if c.animation.Tick(now) {
		c.logger.Debug("animation finished")
	}
	c.pixels.Transmit(false)
	c.accel.Tick(now)
	c.buttons.Tick(now)
}

// Now returns the time passed to the last call to Tick.
func (c *Controller) Now() time.Duration {
	return c.now
}

// Pixels

// PixelCount returns the number of pixels on the ring.
func (c *Controller) PixelCount() int {
	return c.pixels.Len()
}

// Pixel returns the current color of a pixel, or black for an invalid index.
func (c *Controller) Pixel(index int) palette.Color {
	return c.pixels.Pixel(index)
}

// SetPixel changes a single pixel and stops the animation. Invalid indices
// are ignored.
func (c *Controller) SetPixel(index int, color palette.Color) {
	c.StopAnimation()
	c.pixels.SetPixelColor(index, color)
}

// SetAllPixels sets all pixels to the same color and stops the animation.
func (c *Controller) SetAllPixels(color palette.Color) {
	c.StopAnimation()
	c.fill(color)
}

// SetPixelColors sets the pixels to the given colors and stops the animation.
// Pixels beyond the end of colors are turned off.
func (c *Controller) SetPixelColors(colors []palette.Color) {
	c.StopAnimation()
	c.copyColors(colors)
}

// UpdatePixel changes a single pixel and sends it to the ring immediately. A
// running animation keeps running.
func (c *Controller) UpdatePixel(index int, color palette.Color) {
	c.pixels.SetPixelColor(index, color)
	c.pixels.Transmit(true)
}

// UpdatePixels sets all pixels to the same color and sends them to the ring
// immediately.
func (c *Controller) UpdatePixels(color palette.Color) {
	c.fill(color)
	c.pixels.Transmit(true)
}

// UpdatePixelColors sets the pixels to the given colors and sends them to the
// ring immediately. Pixels beyond the end of colors are turned off.
func (c *Controller) UpdatePixelColors(colors []palette.Color) {
	c.copyColors(colors)
	c.pixels.Transmit(true)
}

func (c *Controller) fill(color palette.Color) {
	for i := 0; i < c.pixels.Len(); i++ {
		c.pixels.SetPixelColor(i, color)
	}
}

func (c *Controller) copyColors(colors []palette.Color) {
	for i := 0; i < c.pixels.Len(); i++ {
		color := palette.Black
		if i < len(colors) {
			color = colors[i]
		}
		c.pixels.SetPixelColor(i, color)
	}
}

// Animations

// StartAnimation replaces the running animation. Zero options select the
// defaults: the rainbow palette, a one second cycle, no time limit and the
// configured frame interval. The animation starts at the time of the last
// tick and the first frame is drawn on the next tick.
func (c *Controller) StartAnimation(g anim.Generator, opts anim.Options) *anim.Frame {
	if opts.Interval <= 0 {
		opts.Interval = c.config.FrameInterval
	}
	frame := c.animation.Start(g, opts, c.now)
	c.logger.Debug("animation started",
		"palette", frame.Palette.Name,
		"cycle", frame.Cycle,
		"duration", opts.Duration)
	return frame
}

// Rainbow shows a rotating rainbow for the given duration (zero or negative
// for no limit).
func (c *Controller) Rainbow(cycle, duration time.Duration) *anim.Frame {
	return c.StartAnimation(anim.Gradient, anim.Options{
		Palette:  palette.Rainbow,
		Cycle:    cycle,
		Duration: duration,
	})
}

// StopAnimation stops the running animation, leaving the pixels as they are.
func (c *Controller) StopAnimation() {
	c.animation.Stop()
}

// AnimationActive returns whether an animation is running.
func (c *Controller) AnimationActive() bool {
	return c.animation.Active()
}

// Buttons

// IsButtonPressed returns the debounced state of a button. Invalid indices
// are never pressed.
func (c *Controller) IsButtonPressed(index int) bool {
	return c.buttons.IsPressed(index)
}

// AllButtonsPressed returns whether all buttons are pressed at the same time.
func (c *Controller) AllButtonsPressed() bool {
	return c.buttons.AllPressed()
}

// SetPressHandler sets the handler called when a button is pressed. A nil
// handler removes it.
func (c *Controller) SetPressHandler(index int, handler button.Handler) {
	c.buttons.SetPressHandler(index, handler)
}

// SetAllPressHandlers sets the same press handler on all buttons.
func (c *Controller) SetAllPressHandlers(handler button.Handler) {
	c.buttons.SetAllPressHandlers(handler)
}

// SetReleaseHandler sets the handler called when a button is released.
func (c *Controller) SetReleaseHandler(index int, handler button.Handler) {
	c.buttons.SetReleaseHandler(index, handler)
}

// SetAllReleaseHandlers sets the same release handler on all buttons.
func (c *Controller) SetAllReleaseHandlers(handler button.Handler) {
	c.buttons.SetAllReleaseHandlers(handler)
}

// Accelerometer

// StartAccelerometer starts the accelerometer bring-up. Samples are taken at
// the given interval, or the configured default when it is zero. The returned
// device can be used to read the orientation and to set a motion handler.
func (c *Controller) StartAccelerometer(refresh time.Duration) *accel.Device {
	if refresh <= 0 {
		refresh = c.config.AccelRefresh
	}
	c.logger.Info("starting accelerometer", "refresh", refresh)
	c.accel.Start(refresh)
	return c.accel
}

// Accelerometer returns the accelerometer, which is idle until
// StartAccelerometer is called.
func (c *Controller) Accelerometer() *accel.Device {
	return c.accel
}

// Notes

// PlayNotes starts playing a tune in the notation of package notes. A zero
// tempo or octave selects the configured default.
func (c *Controller) PlayNotes(text string, tempo, octave int) {
	s := c.config.noteSettings()
	if tempo > 0 {
		s.Tempo = tempo
	}
	if octave > 0 {
		s.Octave = octave
	}
	c.notes.Play(text, s, c.now)
}

// PlayNote plays a single note without waiting for it and returns its
// duration. A tune that is playing is stopped.
func (c *Controller) PlayNote(note string) time.Duration {
	return c.notes.PlayNote(note, c.now)
}

// StopNotes stops the tune and silences the buzzer immediately.
func (c *Controller) StopNotes() {
	c.notes.Stop()
}

// NotesPlaying returns whether a tune is being played.
func (c *Controller) NotesPlaying() bool {
	return c.notes.Playing()
}
