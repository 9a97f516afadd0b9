package anim

import (
	"testing"
	"time"

	"github.com/ringbutton/board/palette"
)

type testCanvas struct {
	pixels []palette.Color
	dirty  int
}

func newCanvas(n int) *testCanvas {
	return &testCanvas{pixels: make([]palette.Color, n)}
}

func (c *testCanvas) Pixels() []palette.Color { return c.pixels }
func (c *testCanvas) MarkDirty()              { c.dirty++ }

func TestStep(t *testing.T) {
	f := &Frame{Cycle: time.Second, Start: 10 * time.Second}
	for _, tc := range []struct {
		updated time.Duration
		n       int
		step    int
		stepF   float32
	}{
		{10 * time.Second, 4, 0, 0},
		{10*time.Second + 250*time.Millisecond, 4, 1, 1},
		{10*time.Second + 999*time.Millisecond, 4, 3, 3.996},
		{11*time.Second + 500*time.Millisecond, 2, 1, 1},
		{25*time.Second + 100*time.Millisecond, 10, 1, 1},
	} {
		f.Updated = tc.updated
		if got := f.Step(tc.n); got != tc.step {
			t.Errorf("Step(%d) at %s: expected %d, got %d", tc.n, tc.updated, tc.step, got)
		}
		got := f.StepF(float32(tc.n))
		if got < tc.stepF-0.001 || got > tc.stepF+0.001 {
			t.Errorf("StepF(%d) at %s: expected %.3f, got %.3f", tc.n, tc.updated, tc.stepF, got)
		}
		if got < 0 || got >= float32(tc.n) {
			t.Errorf("StepF(%d) out of range: %f", tc.n, got)
		}
	}
}

func TestEngineBounded(t *testing.T) {
	canvas := newCanvas(11)
	e := NewEngine(canvas)
	e.Start(Cycle, Options{Palette: palette.RGBPalette, Duration: 500 * time.Millisecond}, 0)

	for now := time.Duration(0); now <= 500*time.Millisecond; now += 10 * time.Millisecond {
		if e.Tick(now) {
			t.Errorf("animation reported expired at %s", now)
		}
		if !e.Active() {
			t.Fatalf("animation stopped early at %s", now)
		}
	}
	if canvas.pixels[0] == palette.Black {
		t.Error("expected the animation to have drawn something")
	}
	if !e.Tick(510 * time.Millisecond) {
		t.Error("expected the animation to report that it expired")
	}
	if e.Active() {
		t.Fatal("animation still active after its duration")
	}
	if e.Tick(520 * time.Millisecond) {
		t.Error("an inactive engine can't expire")
	}
	for i, c := range canvas.pixels {
		if c != palette.Black {
			t.Errorf("pixel %d not blanked: %06x", i, c.Hex())
		}
	}
	if e.Frame() != nil {
		t.Error("expected no frame for an inactive engine")
	}
}

func TestEngineUnbounded(t *testing.T) {
	canvas := newCanvas(11)
	e := NewEngine(canvas)
	e.Start(Cycle, Options{Palette: palette.RGBPalette, Duration: -1}, 0)
	for now := time.Duration(0); now < time.Minute; now += 250 * time.Millisecond {
		e.Tick(now)
		if !e.Active() {
			t.Fatalf("unbounded animation stopped at %s", now)
		}
		if canvas.pixels[0] == palette.Black {
			t.Fatalf("unbounded animation blanked the ring at %s", now)
		}
	}
}

func TestEngineFrameInterval(t *testing.T) {
	canvas := newCanvas(3)
	e := NewEngine(canvas)
	frames := 0
	e.Start(GeneratorFunc(func(f *Frame) { frames++ }), Options{Interval: 20 * time.Millisecond}, time.Second)

	e.Tick(time.Second) // first frame is immediate
	e.Tick(time.Second + 10*time.Millisecond)
	e.Tick(time.Second + 19*time.Millisecond)
	if frames != 1 {
		t.Errorf("expected 1 frame, got %d", frames)
	}
	e.Tick(time.Second + 20*time.Millisecond)
	if frames != 2 {
		t.Errorf("expected 2 frames, got %d", frames)
	}
	if canvas.dirty != 2 {
		t.Errorf("expected canvas to be marked dirty twice, got %d", canvas.dirty)
	}
	if f := e.Frame(); f.Updated != time.Second+20*time.Millisecond {
		t.Errorf("frame has stale update time %s", f.Updated)
	}
}

func TestEngineDefaults(t *testing.T) {
	e := NewEngine(newCanvas(1))
	f := e.Start(Blink, Options{}, 0)
	if f.Palette != palette.Rainbow || f.Cycle != DefaultCycle || f.Stop != 0 || f.Scratch != 0 {
		t.Errorf("unexpected defaults: %+v", f)
	}
	e.Stop()
	if e.Active() {
		t.Error("engine still active after Stop")
	}
	e.Tick(time.Second) // must not panic
}

// render runs a generator for a single frame at the given offset in the cycle.
func render(g Generator, n int, p *palette.Palette, at time.Duration) []palette.Color {
	f := &Frame{
		Pixels:  make([]palette.Color, n),
		Palette: p,
		Cycle:   time.Second,
		Updated: at,
	}
	g.Frame(f)
	return f.Pixels
}

func lit(pixels []palette.Color) []int {
	var indices []int
	for i, c := range pixels {
		if c != palette.Black {
			indices = append(indices, i)
		}
	}
	return indices
}

func TestBlink(t *testing.T) {
	on := render(Blink, 4, palette.BW, 100*time.Millisecond)
	off := render(Blink, 4, palette.BW, 600*time.Millisecond)
	for i := range on {
		if on[i] != palette.White || off[i] != palette.Black {
			t.Errorf("pixel %d: expected white then black, got %06x and %06x", i, on[i].Hex(), off[i].Hex())
		}
	}
}

func TestAlternating(t *testing.T) {
	first := lit(render(Alternating, 4, palette.BW, 0))
	second := lit(render(Alternating, 4, palette.BW, 600*time.Millisecond))
	if len(first) != 2 || first[0] != 1 || first[1] != 3 {
		t.Errorf("unexpected lit pixels in the first half: %v", first)
	}
	if len(second) != 2 || second[0] != 0 || second[1] != 2 {
		t.Errorf("unexpected lit pixels in the second half: %v", second)
	}
}

func TestFades(t *testing.T) {
	if c := render(FadeIn, 1, palette.BW, 0)[0]; c != palette.Black {
		t.Errorf("fade in should start black, got %06x", c.Hex())
	}
	if c := render(FadeOut, 1, palette.BW, 0)[0]; c != palette.White {
		t.Errorf("fade out should start white, got %06x", c.Hex())
	}
	if c := render(Glow, 1, palette.BW, 500*time.Millisecond)[0]; c.R < 250 || c.G < 250 || c.B < 250 {
		t.Errorf("glow should peak halfway, got %06x", c.Hex())
	}
	if c := render(Glow, 1, palette.BW, 0)[0]; c != palette.Black {
		t.Errorf("glow should start dark, got %06x", c.Hex())
	}
}

var white = palette.New("white", palette.White)

func TestIncrementDecrement(t *testing.T) {
	const n = 10
	for i := 0; i < n; i++ {
		at := time.Duration(i) * time.Second / n
		if got := lit(render(Increment, n, white, at)); len(got) != 1 || got[0] != i {
			t.Errorf("increment at %s: expected pixel %d, got %v", at, i, got)
		}
		if got := lit(render(Decrement, n, white, at)); len(got) != 1 || got[0] != n-1-i {
			t.Errorf("decrement at %s: expected pixel %d, got %v", at, n-1-i, got)
		}
	}
}

func TestBounce(t *testing.T) {
	const n = 6
	// The lit pixel walks 0..5 and back 4..1 in 2n-2 steps.
	expected := []int{0, 1, 2, 3, 4, 5, 4, 3, 2, 1}
	for step, index := range expected {
		at := time.Duration(step)*time.Second/time.Duration(len(expected)) + time.Millisecond
		got := lit(render(Bounce, n, white, at))
		if len(got) != 1 || got[0] != index {
			t.Errorf("step %d: expected pixel %d, got %v", step, index, got)
		}
	}
}

func TestCycleAndBars(t *testing.T) {
	for i, c := range palette.RGBPalette.Colors {
		at := time.Duration(i)*time.Second/3 + time.Millisecond
		if got := render(Cycle, 2, palette.RGBPalette, at)[0]; got != c {
			t.Errorf("cycle step %d: expected %06x, got %06x", i, c.Hex(), got.Hex())
		}
	}
	bars := render(Bars, 4, palette.RYGB, 0)
	for i, c := range palette.RYGB.Colors {
		if bars[i] != c {
			t.Errorf("bar %d: expected %06x, got %06x", i, c.Hex(), bars[i].Hex())
		}
	}
	gradient := render(Gradient, 8, palette.Rainbow, 0)
	for i, c := range palette.Rainbow.Colors {
		if gradient[i] != c {
			t.Errorf("gradient %d: expected %06x, got %06x", i, c.Hex(), gradient[i].Hex())
		}
	}
}

func TestStrobeUsesScratch(t *testing.T) {
	f := &Frame{
		Pixels:  make([]palette.Color, 3),
		Palette: palette.RGBPalette,
		Cycle:   time.Second,
		Updated: 150 * time.Millisecond,
	}
	Strobe.Frame(f)
	if f.Scratch != 1 || len(lit(f.Pixels)) != 0 {
		t.Errorf("expected dark step 1, got scratch %d pixels %v", f.Scratch, f.Pixels)
	}
	f.Updated = time.Second + 10*time.Millisecond
	Strobe.Frame(f)
	if f.Scratch != 0 || len(lit(f.Pixels)) != 3 {
		t.Errorf("expected flash at step 0, got scratch %d pixels %v", f.Scratch, f.Pixels)
	}
}

func TestComet(t *testing.T) {
	const n = 12
	pixels := render(Comet, n, palette.RYGB, 400*time.Millisecond)
	// The head is at 0.4*(2n-n/2) = 7.2: everything ahead of it is dark and
	// the tail fades out behind it.
	for i := 8; i < n; i++ {
		if pixels[i] != palette.Black {
			t.Errorf("pixel %d ahead of the head is lit: %06x", i, pixels[i].Hex())
		}
	}
	if pixels[7] == palette.Black {
		t.Error("pixel right behind the head should be lit")
	}
	brightness := func(c palette.Color) int { return int(c.R) + int(c.G) + int(c.B) }
	if brightness(pixels[0]) >= brightness(pixels[6]) {
		t.Errorf("tail should fade out: pixel 0 is %06x, pixel 6 is %06x", pixels[0].Hex(), pixels[6].Hex())
	}
}

func TestAllGeneratorsRun(t *testing.T) {
	for _, g := range Generators {
		for _, n := range []int{1, 2, 11, 24} {
			for at := time.Duration(0); at < 2*time.Second; at += 37 * time.Millisecond {
				render(g, n, palette.Party, at)
			}
		}
		if Lookup(g.Name) == nil {
			t.Errorf("generator %s not found by name", g.Name)
		}
	}
	if len(Generators) != 17 {
		t.Errorf("expected 17 generators, got %d", len(Generators))
	}
}
