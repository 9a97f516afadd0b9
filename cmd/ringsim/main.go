//go:build !baremetal

// Command ringsim runs the ring controller in the simulator window with a demo
// program. The left and right arrow keys cycle through the animations, the up
// key selects the next palette and the down key toggles compass mode, in which
// the pixel at the lowest point of the tilted ring lights up. Shaking the
// device plays a note.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/ringbutton/board"
	"github.com/ringbutton/board/accel"
	"github.com/ringbutton/board/anim"
	"github.com/ringbutton/board/palette"
)

var (
	configPath  = ""
	verbose     = false
	animation   = "gradient"
	paletteName = "rainbow"
	tune        = ""
	statusEvery = 10 * time.Second
)

func init() {
	pflag.StringVarP(&configPath, "config", "c", configPath, "configuration file (TOML)")
	pflag.BoolVarP(&verbose, "verbose", "v", verbose, "verbose output")
	pflag.StringVarP(&animation, "animation", "a", animation, "animation to start with")
	pflag.StringVarP(&paletteName, "palette", "p", paletteName, "palette to start with")
	pflag.StringVarP(&tune, "tune", "t", tune, "tune to play at startup")
	pflag.DurationVar(&statusEvery, "status", statusEvery, "interval between status lines")
}

func main() {
	pflag.Parse()

	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      logLevel,
		TimeFormat: time.TimeOnly,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	})))

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	config, err := readConfig()
	if err != nil {
		return err
	}
	config.Logger = slog.Default()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	c, err := board.NewDefault(config)
	if err != nil {
		return errors.Wrap(err, "failed to create controller")
	}
	if err := c.Setup(); err != nil {
		return errors.Wrap(err, "failed to set up board")
	}

	d, err := newDemo(c)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return d.run(ctx) })
	g.Go(func() error { return d.logStatus(ctx) })
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func readConfig() (board.Config, error) {
	if configPath == "" {
		return board.DefaultConfig(), nil
	}
	f, err := os.Open(configPath)
	if err != nil {
		return board.Config{}, errors.Wrap(err, "failed to open config file")
	}
	defer f.Close()
	config, err := board.ParseConfig(f)
	if err != nil {
		return config, errors.Wrapf(err, "config file %s", configPath)
	}
	return config, nil
}

// Buttons, in the order of the arrow keys in the simulator.
const (
	buttonPrev = iota
	buttonPalette
	buttonNext
	buttonCompass
)

type demo struct {
	c      *board.Controller
	accel  *accel.Device
	logger *slog.Logger

	animation int
	palette   int
	compass   bool
	lit       int // pixel lit in compass mode, or -1

	statusLock sync.Mutex
	status     []any
}

func newDemo(c *board.Controller) (*demo, error) {
	d := &demo{c: c, logger: slog.Default(), lit: -1}
	d.animation = indexOf(len(anim.Generators), func(i int) bool { return anim.Generators[i].Name == animation })
	if d.animation < 0 {
		return nil, errors.Errorf("unknown animation %q", animation)
	}
	d.palette = indexOf(len(palette.All), func(i int) bool { return palette.All[i].Name == paletteName })
	if d.palette < 0 {
		return nil, errors.Errorf("unknown palette %q", paletteName)
	}

	c.SetPressHandler(buttonPrev, func(int, bool) { d.step(-1, 0) })
	c.SetPressHandler(buttonNext, func(int, bool) { d.step(1, 0) })
	c.SetPressHandler(buttonPalette, func(int, bool) { d.step(0, 1) })
	c.SetPressHandler(buttonCompass, func(int, bool) { d.toggleCompass() })
	c.SetAllReleaseHandlers(func(index int, _ bool) {
		d.logger.Debug("button released", "button", index)
	})

	d.accel = c.StartAccelerometer(0)
	d.accel.SetMotionHandler(func(inMotion bool, prior time.Duration) {
		if inMotion {
			d.logger.Info("moving", "resting", prior)
			c.PlayNote("16e6")
		} else {
			d.logger.Info("at rest", "moved", prior)
		}
	})

	d.start()
	if tune != "" {
		c.PlayNotes(tune, 0, 0)
	}
	return d, nil
}

func indexOf(n int, match func(i int) bool) int {
	for i := 0; i < n; i++ {
		if match(i) {
			return i
		}
	}
	return -1
}

func (d *demo) start() {
	g := anim.Generators[d.animation]
	p := palette.All[d.palette]
	d.c.StartAnimation(g.Generator, anim.Options{Palette: p, Cycle: 2 * time.Second})
	d.logger.Info("animation", "name", g.Name, "palette", p.Name)
}

func (d *demo) step(animations, palettes int) {
	if d.c.AllButtonsPressed() {
		d.c.StopAnimation()
		d.c.SetAllPixels(palette.Black)
		return
	}
	d.compass = false
	d.animation = (d.animation + animations + len(anim.Generators)) % len(anim.Generators)
	d.palette = (d.palette + palettes) % len(palette.All)
	d.start()
}

func (d *demo) toggleCompass() {
	d.compass = !d.compass
	d.lit = -1
	if !d.compass {
		d.start()
		return
	}
	d.c.SetAllPixels(palette.Black)
	d.logger.Info("compass mode")
}

// updateCompass lights the pixel at the lowest point of the tilted ring.
func (d *demo) updateCompass() {
	if !d.compass || d.accel.State() != accel.Running {
		return
	}
	lit := accel.PixelAt(d.accel.Azimuth(), d.c.PixelCount())
	if lit == d.lit {
		return
	}
	d.lit = lit
	colors := make([]palette.Color, d.c.PixelCount())
	colors[lit] = palette.All[d.palette].Color(0)
	d.c.SetPixelColors(colors)
}

// run calls Tick in a loop until the context is canceled.
func (d *demo) run(ctx context.Context) error {
	start := time.Now()
	ticker := time.NewTicker(time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			d.c.StopNotes()
			d.c.UpdatePixels(palette.Black)
			return ctx.Err()
		case <-ticker.C:
		}
		d.c.Tick(time.Since(start))
		d.updateCompass()

		x, y, z, _ := d.accel.Raw()
		d.statusLock.Lock()
		d.status = []any{
			"animation", d.c.AnimationActive(),
			"notes", d.c.NotesPlaying(),
			"accel", d.accel.State(),
			"xyz", [3]int16{x, y, z},
			"resting", d.accel.StationaryDuration(),
		}
		d.statusLock.Unlock()
	}
}

// logStatus periodically logs a summary of the device state.
func (d *demo) logStatus(ctx context.Context) error {
	ticker := time.NewTicker(statusEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		d.statusLock.Lock()
		status := d.status
		d.statusLock.Unlock()
		d.logger.Info("status", status...)
	}
}
