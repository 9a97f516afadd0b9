package main

import (
	"time"

	"github.com/ringbutton/board"
	"github.com/ringbutton/board/accel"
	"github.com/ringbutton/board/anim"
	"github.com/ringbutton/board/button"
	"github.com/ringbutton/board/palette"
)

func main() {
	// Verify board name constant.
	var _ string = board.Name

	c, err := board.NewDefault(board.DefaultConfig())
	if err != nil {
		panic(err)
	}

	// Assert that the controller has the usual interface.
	var _ interface {
		Setup() error
		Tick(now time.Duration)
		Now() time.Duration

		PixelCount() int
		Pixel(index int) palette.Color
		SetPixel(index int, color palette.Color)
		SetAllPixels(color palette.Color)
		SetPixelColors(colors []palette.Color)
		UpdatePixel(index int, color palette.Color)
		UpdatePixels(color palette.Color)
		UpdatePixelColors(colors []palette.Color)

		StartAnimation(g anim.Generator, opts anim.Options) *anim.Frame
		Rainbow(cycle, duration time.Duration) *anim.Frame
		StopAnimation()
		AnimationActive() bool

		IsButtonPressed(index int) bool
		AllButtonsPressed() bool
		SetPressHandler(index int, handler button.Handler)
		SetAllPressHandlers(handler button.Handler)
		SetReleaseHandler(index int, handler button.Handler)
		SetAllReleaseHandlers(handler button.Handler)

		StartAccelerometer(refresh time.Duration) *accel.Device
		Accelerometer() *accel.Device

		PlayNotes(text string, tempo, octave int)
		PlayNote(note string) time.Duration
		StopNotes()
		NotesPlaying() bool
	} = c

	if err := c.Setup(); err != nil {
		panic(err)
	}
	c.Rainbow(time.Second, 0)
	c.StartAccelerometer(0)
	start := time.Now()
	for {
		c.Tick(time.Since(start))
	}
}
