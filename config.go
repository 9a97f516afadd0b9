package board

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ringbutton/board/accel"
	"github.com/ringbutton/board/anim"
	"github.com/ringbutton/board/button"
	"github.com/ringbutton/board/notes"
	"github.com/ringbutton/board/ring"
)

// Config contains the tunable settings of the controller. The defaults match
// the hardware the firmware was tuned on.
type Config struct {
	// Number of pixels on the ring.
	PixelCount int

	// Minimum idle time of the pixel data line between two frames.
	LatchGap time.Duration

	// Time a button must be stable before a press or release is accepted.
	Debounce time.Duration

	// Accelerometer calibration: the number of resting samples and the
	// margin added to the observed range.
	CalibrationSamples   int
	CalibrationTolerance int

	// Default accelerometer sample interval for StartAccelerometer.
	AccelRefresh time.Duration

	// Default time between two animation frames.
	FrameInterval time.Duration

	// Defaults for PlayNotes.
	Tempo       int
	Octave      int
	NoteDivisor int

	// Logger for state changes. Nil means slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		PixelCount:           11,
		LatchGap:             ring.DefaultLatchGap,
		Debounce:             button.DefaultDebounce,
		CalibrationSamples:   accel.DefaultCalibrationSamples,
		CalibrationTolerance: accel.DefaultTolerance,
		AccelRefresh:         accel.DefaultRefresh,
		FrameInterval:        anim.DefaultFrameInterval,
		Tempo:                notes.DefaultTempo,
		Octave:               notes.DefaultOctave,
		NoteDivisor:          notes.DefaultDivisor,
	}
}

// Validate checks the configuration for values the controller can't work
// with.
func (c *Config) Validate() error {
	switch {
	case c.PixelCount <= 0:
		return fmt.Errorf("invalid pixel count %d", c.PixelCount)
	case c.LatchGap < 0:
		return fmt.Errorf("invalid latch gap %s", c.LatchGap)
	case c.Debounce < 0:
		return fmt.Errorf("invalid debounce window %s", c.Debounce)
	case c.CalibrationSamples <= 0:
		return fmt.Errorf("invalid number of calibration samples %d", c.CalibrationSamples)
	case c.CalibrationTolerance < 0:
		return fmt.Errorf("invalid calibration tolerance %d", c.CalibrationTolerance)
	case c.AccelRefresh <= 0:
		return fmt.Errorf("invalid accelerometer refresh interval %s", c.AccelRefresh)
	case c.FrameInterval <= 0:
		return fmt.Errorf("invalid frame interval %s", c.FrameInterval)
	case c.Tempo <= 0:
		return fmt.Errorf("invalid tempo %d", c.Tempo)
	case c.Octave < 0 || c.Octave > 8:
		return fmt.Errorf("invalid octave %d", c.Octave)
	case c.NoteDivisor <= 0:
		return fmt.Errorf("invalid note divisor %d", c.NoteDivisor)
	}
	return nil
}

func (c *Config) noteSettings() notes.Settings {
	return notes.Settings{Tempo: c.Tempo, Octave: c.Octave, Divisor: c.NoteDivisor}
}
