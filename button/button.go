// Package button debounces a fixed set of push buttons and dispatches press
// and release callbacks.
package button

import (
	"time"
)

// DefaultDebounce is the time a raw reading must be stable before it is
// accepted as the new button state.
const DefaultDebounce = 50 * time.Millisecond

// Input is a single digital input. machine.Pin implements it.
type Input interface {
	Get() bool
}

// Handler is called when a button changes state. It runs synchronously inside
// Controller.Tick.
type Handler func(button int, pressed bool)

type state struct {
	input      Input
	pressed    bool // debounced state
	raw        bool // last raw reading
	lastChange time.Duration
	onPress    Handler
	onRelease  Handler
}

// Controller tracks the debounced state of a number of buttons.
type Controller struct {
	buttons   []state
	debounce  time.Duration
	activeLow bool
}

// New returns a controller for the given inputs. Buttons are active low (a low
// input means the button is pressed), which matches buttons wired to ground
// with a pull-up.
func New(inputs ...Input) *Controller {
	c := &Controller{
		buttons:   make([]state, len(inputs)),
		debounce:  DefaultDebounce,
		activeLow: true,
	}
	for i, input := range inputs {
		c.buttons[i].input = input
	}
	return c
}

// SetDebounce changes the debounce window.
func (c *Controller) SetDebounce(window time.Duration) {
	c.debounce = window
}

// SetActiveLow sets the input polarity. With activeLow false, a high input
// means the button is pressed.
func (c *Controller) SetActiveLow(activeLow bool) {
	c.activeLow = activeLow
}

// Len returns the number of buttons.
func (c *Controller) Len() int {
	return len(c.buttons)
}

// SetPressHandler sets the press handler of one button. Invalid indices are
// ignored, and a nil handler removes the existing one.
func (c *Controller) SetPressHandler(button int, handler Handler) {
	if button >= 0 && button < len(c.buttons) {
		c.buttons[button].onPress = handler
	}
}

// SetReleaseHandler sets the release handler of one button.
func (c *Controller) SetReleaseHandler(button int, handler Handler) {
	if button >= 0 && button < len(c.buttons) {
		c.buttons[button].onRelease = handler
	}
}

// SetAllPressHandlers sets the same press handler on all buttons.
func (c *Controller) SetAllPressHandlers(handler Handler) {
	for i := range c.buttons {
		c.buttons[i].onPress = handler
	}
}

// SetAllReleaseHandlers sets the same release handler on all buttons.
func (c *Controller) SetAllReleaseHandlers(handler Handler) {
	for i := range c.buttons {
		c.buttons[i].onRelease = handler
	}
}

// IsPressed returns the debounced state of a button. Invalid indices are
// never pressed.
func (c *Controller) IsPressed(button int) bool {
	if button < 0 || button >= len(c.buttons) {
		return false
	}
	return c.buttons[button].pressed
}

// AllPressed returns whether all buttons are pressed at the same time.
func (c *Controller) AllPressed() bool {
	for i := range c.buttons {
		if !c.buttons[i].pressed {
			return false
		}
	}
	return len(c.buttons) != 0
}

// Tick reads all inputs and fires the handlers of every button whose state
// changed. A new state is only accepted after the raw input has been stable
// for longer than the debounce window.
func (c *Controller) Tick(now time.Duration) {
	for i := range c.buttons {
		b := &c.buttons[i]
		raw := b.input.Get() != c.activeLow
		if raw != b.raw {
			b.raw = raw
			b.lastChange = now
		}
		if now-b.lastChange > c.debounce && raw != b.pressed {
			b.pressed = raw
			handler := b.onRelease
			if raw {
				handler = b.onPress
			}
			if handler != nil {
				handler(i, raw)
			}
		}
	}
}
