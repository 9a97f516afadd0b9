//go:build !baremetal

package board

import (
	"io"
	"time"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

// ParseConfig reads a configuration in TOML format. Missing keys keep their
// default values, durations are written like "50ms". For example:
//
//	pixel_count = 11
//	debounce = "50ms"
//	tempo = 140
func ParseConfig(r io.Reader) (Config, error) {
	config := DefaultConfig()
	tree, err := toml.LoadReader(r)
	if err != nil {
		return config, errors.Wrap(err, "failed to parse config")
	}

	ints := map[string]*int{
		"pixel_count":           &config.PixelCount,
		"calibration_samples":   &config.CalibrationSamples,
		"calibration_tolerance": &config.CalibrationTolerance,
		"tempo":                 &config.Tempo,
		"octave":                &config.Octave,
		"note_divisor":          &config.NoteDivisor,
	}
	durations := map[string]*time.Duration{
		"latch_gap":      &config.LatchGap,
		"debounce":       &config.Debounce,
		"accel_refresh":  &config.AccelRefresh,
		"frame_interval": &config.FrameInterval,
	}

	for _, key := range tree.Keys() {
		value := tree.Get(key)
		switch {
		case ints[key] != nil:
			n, ok := value.(int64)
			if !ok {
				return config, errors.Errorf("config key %s: expected an integer, got %v", key, value)
			}
			*ints[key] = int(n)
		case durations[key] != nil:
			s, ok := value.(string)
			if !ok {
				return config, errors.Errorf("config key %s: expected a duration string, got %v", key, value)
			}
			d, err := time.ParseDuration(s)
			if err != nil {
				return config, errors.Wrapf(err, "config key %s", key)
			}
			*durations[key] = d
		default:
			return config, errors.Errorf("unknown config key %s", key)
		}
	}

	if err := config.Validate(); err != nil {
		return config, errors.Wrap(err, "invalid config")
	}
	return config, nil
}
