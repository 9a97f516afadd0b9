package button

import (
	"testing"
	"time"
)

// fakeInput is an active-low input: high (true) when released.
type fakeInput struct {
	level bool
}

func (in *fakeInput) Get() bool { return in.level }

func (in *fakeInput) press()   { in.level = false }
func (in *fakeInput) release() { in.level = true }

type event struct {
	button  int
	pressed bool
}

func newTestController(n int) (*Controller, []*fakeInput, *[]event) {
	inputs := make([]*fakeInput, n)
	args := make([]Input, n)
	for i := range inputs {
		inputs[i] = &fakeInput{level: true}
		args[i] = inputs[i]
	}
	c := New(args...)
	var events []event
	record := func(button int, pressed bool) {
		events = append(events, event{button, pressed})
	}
	c.SetAllPressHandlers(record)
	c.SetAllReleaseHandlers(record)
	return c, inputs, &events
}

func TestDebounceBouncing(t *testing.T) {
	c, inputs, events := newTestController(1)
	// Toggle every 20ms: never stable for a full window.
	for now := time.Duration(0); now < time.Second; now += 5 * time.Millisecond {
		if now%(20*time.Millisecond) == 0 {
			if inputs[0].level {
				inputs[0].press()
			} else {
				inputs[0].release()
			}
		}
		c.Tick(now)
	}
	if len(*events) != 0 {
		t.Errorf("bouncing input produced events: %v", *events)
	}
	if c.IsPressed(0) {
		t.Error("bouncing input was confirmed as pressed")
	}
}

func TestDebounceSteady(t *testing.T) {
	c, inputs, events := newTestController(2)
	c.Tick(0)
	inputs[1].press()
	for now := 10 * time.Millisecond; now <= 200*time.Millisecond; now += 10 * time.Millisecond {
		c.Tick(now)
		// Accepted on the first tick more than 50ms after the change.
		if pressed := c.IsPressed(1); pressed != (now > 60*time.Millisecond) {
			t.Errorf("at %s: expected pressed=%v", now, !pressed)
		}
	}
	if len(*events) != 1 || (*events)[0] != (event{1, true}) {
		t.Fatalf("expected a single press of button 1, got %v", *events)
	}

	inputs[1].release()
	for now := 300 * time.Millisecond; now <= 400*time.Millisecond; now += 10 * time.Millisecond {
		c.Tick(now)
	}
	if len(*events) != 2 || (*events)[1] != (event{1, false}) {
		t.Errorf("expected a release of button 1, got %v", *events)
	}
}

func TestAllPressed(t *testing.T) {
	c, inputs, _ := newTestController(4)
	for i, in := range inputs {
		if c.AllPressed() {
			t.Fatalf("all pressed with only %d buttons down", i)
		}
		in.press()
		c.Tick(time.Duration(i) * time.Second)
		c.Tick(time.Duration(i)*time.Second + 100*time.Millisecond)
	}
	if !c.AllPressed() {
		t.Error("expected all buttons to be pressed")
	}
	if c.IsPressed(4) || c.IsPressed(-1) {
		t.Error("invalid buttons must not be pressed")
	}
}

func TestHandlers(t *testing.T) {
	inputs := []*fakeInput{{level: true}, {level: true}}
	c := New(inputs[0], inputs[1])
	var pressed []int
	c.SetPressHandler(0, func(button int, p bool) { pressed = append(pressed, button) })
	c.SetPressHandler(5, func(button int, p bool) { t.Error("handler set on invalid button") })

	inputs[0].press()
	inputs[1].press()
	c.Tick(0)
	c.Tick(time.Second) // button 1 has no handler
	if len(pressed) != 1 || pressed[0] != 0 {
		t.Errorf("unexpected press handler calls: %v", pressed)
	}
	if !c.IsPressed(1) {
		t.Error("state must change even without a handler")
	}
}

func TestActiveHigh(t *testing.T) {
	in := &fakeInput{level: false}
	c := New(in)
	c.SetActiveLow(false)
	c.SetDebounce(10 * time.Millisecond)
	c.Tick(0)
	c.Tick(20 * time.Millisecond)
	if c.IsPressed(0) {
		t.Fatal("low input pressed on an active high button")
	}
	in.level = true
	c.Tick(30 * time.Millisecond)
	c.Tick(41 * time.Millisecond)
	if !c.IsPressed(0) {
		t.Error("high input not pressed on an active high button")
	}
}
