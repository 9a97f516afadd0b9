// Package accel drives an ADXL362 accelerometer from a cooperative tick loop.
//
// The device walks through a fixed bring-up sequence (bus setup, soft reset,
// power on, calibration) and then samples the sensor at the configured refresh
// interval. Calibration records the resting band of every axis; any sample
// outside that band counts as motion.
package accel

import (
	"log/slog"
	"time"

	"tinygo.org/x/drivers"
)

// State is the state of the bring-up sequence.
type State uint8

const (
	Waiting State = iota
	Startup
	Reset
	PowerOn
	Calibrating
	Running
)

func (s State) String() string {
	switch s {
	case Waiting:
		return "waiting"
	case Startup:
		return "startup"
	case Reset:
		return "reset"
	case PowerOn:
		return "power-on"
	case Calibrating:
		return "calibrating"
	case Running:
		return "running"
	default:
		return "unknown"
	}
}

// Defaults, matching the values the sensor was tuned with.
const (
	DefaultRefresh            = 100 * time.Millisecond
	DefaultCalibrationSamples = 10
	DefaultTolerance          = 10
)

// MotionHandler is called on every transition between motion and rest, with
// the time spent in the previous condition.
type MotionHandler func(inMotion bool, prior time.Duration)

// Options configure a Device. Zero values select the defaults.
type Options struct {
	// Number of samples taken while calibrating.
	CalibrationSamples int

	// Margin added on both ends of the observed resting band.
	Tolerance int

	// ConfigureBus is called once in the startup state, for example to
	// configure the SPI peripheral and the chip select pin.
	ConfigureBus func() error

	Logger *slog.Logger
}

// Device is a single ADXL362 on an SPI bus.
type Device struct {
	bus     bus
	opts    Options
	state   State
	next    time.Duration
	dwell   [Running + 1]time.Duration
	handler MotionHandler

	remaining int // calibration samples left

	x, y, z, t int16
	fx, fy, fz float64

	min, max, zero [3]int

	moving             bool
	motion, stationary time.Duration
}

// New returns a device that is waiting for Start.
func New(spi drivers.SPI, cs Pin, opts Options) *Device {
	if opts.CalibrationSamples <= 0 {
		opts.CalibrationSamples = DefaultCalibrationSamples
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultTolerance
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Device{
		bus:  bus{spi: spi, cs: cs},
		opts: opts,
		dwell: [...]time.Duration{
			Waiting:     100 * time.Millisecond,
			Startup:     100 * time.Millisecond,
			Reset:       10 * time.Millisecond,
			PowerOn:     10 * time.Millisecond,
			Calibrating: 10 * time.Millisecond,
			Running:     DefaultRefresh,
		},
	}
}

// Start begins the bring-up sequence. Once running, the sensor is sampled
// every refresh interval.
func (d *Device) Start(refresh time.Duration) {
	if refresh <= 0 {
		refresh = DefaultRefresh
	}
	d.dwell[Running] = refresh
	d.setState(Startup)
}

// SetMotionHandler sets the handler for motion transitions. It may be nil.
func (d *Device) SetMotionHandler(handler MotionHandler) {
	d.handler = handler
}

// State returns the current state of the bring-up sequence.
func (d *Device) State() State {
	return d.state
}

func (d *Device) setState(s State) {
	d.opts.Logger.Debug("accelerometer state", "from", d.state, "to", s)
	d.state = s
}

// Tick advances the state machine. Every state has a minimum dwell time, so
// most calls return without touching the bus.
func (d *Device) Tick(now time.Duration) {
	if now < d.next {
		return
	}
	d.next = now + d.dwell[d.state]

	switch d.state {
	case Waiting:
	case Startup:
		if d.opts.ConfigureBus != nil {
			if err := d.opts.ConfigureBus(); err != nil {
				d.opts.Logger.Warn("could not configure accelerometer bus", "err", err)
				return
			}
		}
		d.setState(Reset)
	case Reset:
		d.bus.write8(regSoftReset, softResetCode)
		d.setState(PowerOn)
	case PowerOn:
		ctl := d.bus.read8(regPowerCtl)
		d.bus.write8(regPowerCtl, ctl&^powerModeMask|powerMeasuring)
		d.remaining = d.opts.CalibrationSamples
		d.setState(Calibrating)
	case Calibrating:
		d.calibrate()
	case Running:
		d.sample()
	}
}

func (d *Device) read() {
	x, y, z, t, ok := d.bus.readXYZT()
	if !ok {
		return
	}
	d.x, d.y, d.z, d.t = x, y, z, t
}

func (d *Device) calibrate() {
	d.read()
	axes := [3]int{int(d.x), int(d.y), int(d.z)}
	first := d.remaining == d.opts.CalibrationSamples
	for i, v := range axes {
		if first || v < d.min[i] {
			d.min[i] = v
		}
		if first || v > d.max[i] {
			d.max[i] = v
		}
	}
	d.remaining--
	if d.remaining > 0 {
		return
	}
	for i := range axes {
		d.min[i] -= d.opts.Tolerance
		d.max[i] += d.opts.Tolerance
		d.zero[i] = (d.min[i] + d.max[i]) / 2
	}
	d.opts.Logger.Debug("accelerometer calibrated", "min", d.min, "max", d.max)
	d.setState(Running)
}

func (d *Device) sample() {
	d.read()
	d.fx = 0.5*float64(d.x) + 0.5*d.fx
	d.fy = 0.5*float64(d.y) + 0.5*d.fy
	d.fz = 0.5*float64(d.z) + 0.5*d.fz

	moving := false
	for i, v := range [3]int{int(d.x), int(d.y), int(d.z)} {
		if v < d.min[i] || v > d.max[i] {
			moving = true
		}
	}
	refresh := d.dwell[Running]
	if moving != d.moving {
		prior := d.stationary
		if d.moving {
			prior = d.motion
		}
		d.moving = moving
		d.motion, d.stationary = 0, 0
		if d.handler != nil {
			d.handler(moving, prior)
		}
	}
	if moving {
		d.motion += refresh
	} else {
		d.stationary += refresh
	}
}

// InMotion returns how long the device has been moving, or zero if it is at
// rest.
func (d *Device) InMotion() time.Duration {
	return d.motion
}

// StationaryDuration returns how long the device has been at rest, or zero if
// it is moving.
func (d *Device) StationaryDuration() time.Duration {
	return d.stationary
}

// Raw returns the last raw reading of the three axes and the temperature
// sensor.
func (d *Device) Raw() (x, y, z, t int16) {
	return d.x, d.y, d.z, d.t
}

// Filtered returns the low-pass filtered axes.
func (d *Device) Filtered() (x, y, z float64) {
	return d.fx, d.fy, d.fz
}

// Bounds returns the calibrated resting band and its midpoint for an axis
// (0, 1 or 2).
func (d *Device) Bounds(axis int) (low, high, zero int) {
	return d.min[axis], d.max[axis], d.zero[axis]
}
