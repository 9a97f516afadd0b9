// Package anim computes animation frames for the pixel ring.
//
// An animation is a Generator that is called at a fixed frame interval with a
// Frame describing the animation (palette, cycle, start time) and the pixel
// buffer to draw into. Generators are stateless apart from Frame.Scratch; all
// motion is derived from the position of the current frame within the cycle.
package anim

import (
	"time"

	"github.com/ringbutton/board/palette"
)

// Default animation settings.
const (
	DefaultCycle         = time.Second
	DefaultFrameInterval = time.Second / 60
)

// Generator computes a single frame of an animation.
type Generator interface {
	Frame(f *Frame)
}

// GeneratorFunc is an ordinary function used as a Generator.
type GeneratorFunc func(f *Frame)

// Frame implements Generator.
func (fn GeneratorFunc) Frame(f *Frame) {
	fn(f)
}

// Options configure a single animation. Zero values select the defaults.
type Options struct {
	Palette *palette.Palette // defaults to the rainbow palette

	Cycle time.Duration // defaults to DefaultCycle

	// Duration after which the animation stops and the ring goes dark. Zero
	// or negative durations run until the animation is replaced.
	Duration time.Duration

	Interval time.Duration // time between frames, defaults to DefaultFrameInterval
}

// Canvas is the pixel buffer the engine draws into.
type Canvas interface {
	Pixels() []palette.Color
	MarkDirty()
}

// Engine runs at most one animation at a time.
type Engine struct {
	canvas    Canvas
	generator Generator
	frame     Frame
	interval  time.Duration
	rendered  bool
}

// NewEngine returns an engine that draws into the given canvas.
func NewEngine(canvas Canvas) *Engine {
	return &Engine{canvas: canvas}
}

// Start replaces the current animation (if any) with a new one, starting at
// the given time. The returned frame stays valid while the animation runs.
func (e *Engine) Start(g Generator, opts Options, now time.Duration) *Frame {
	if opts.Palette == nil {
		opts.Palette = palette.Rainbow
	}
	if opts.Cycle <= 0 {
		opts.Cycle = DefaultCycle
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultFrameInterval
	}
	e.generator = g
	e.interval = opts.Interval
	e.rendered = false
	e.frame = Frame{
		Pixels:  e.canvas.Pixels(),
		Palette: opts.Palette,
		Cycle:   opts.Cycle,
		Start:   now,
		Updated: now,
	}
	if opts.Duration > 0 {
		e.frame.Stop = now + opts.Duration
	}
	return &e.frame
}

// Stop deactivates the current animation. The pixels keep their colors.
func (e *Engine) Stop() {
	e.generator = nil
}

// Active reports whether an animation is running.
func (e *Engine) Active() bool {
	return e.generator != nil
}

// Frame returns the context of the running animation, or nil.
func (e *Engine) Frame() *Frame {
	if e.generator == nil {
		return nil
	}
	return &e.frame
}

// Tick advances the animation. A bounded animation that is past its stop time
// blanks the ring and deactivates itself, in which case Tick returns true.
// Otherwise a new frame is computed once the frame interval has elapsed since
// the previous one.
func (e *Engine) Tick(now time.Duration) (expired bool) {
	if e.generator == nil {
		return false
	}
	if e.frame.Stop != 0 && now > e.frame.Stop {
		e.frame.Fill(palette.Black)
		e.canvas.MarkDirty()
		e.generator = nil
		return true
	}
	if e.rendered && now-e.frame.Updated < e.interval {
		return false
	}
	e.frame.Updated = now
	e.rendered = true
	e.generator.Frame(&e.frame)
	e.canvas.MarkDirty()
	return false
}
