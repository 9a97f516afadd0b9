package palette

import "testing"

func TestScale(t *testing.T) {
	colors := []Color{White, Red, Hex(0x123456), Hex(0x01FE7F), Black}
	for _, c := range colors {
		if got := c.Scale(0); got != Black {
			t.Errorf("%06x.Scale(0) = %06x, expected black", c.Hex(), got.Hex())
		}
		if got := c.Scale(1); got != c {
			t.Errorf("%06x.Scale(1) = %06x, expected unchanged", c.Hex(), got.Hex())
		}
		prev := Black
		for i := 0; i <= 100; i++ {
			s := c.Scale(float32(i) / 100)
			if s.R > c.R || s.G > c.G || s.B > c.B {
				t.Errorf("%06x.Scale(%.2f) = %06x exceeds original", c.Hex(), float32(i)/100, s.Hex())
			}
			if s.R < prev.R || s.G < prev.G || s.B < prev.B {
				t.Errorf("%06x.Scale(%.2f) = %06x is darker than %06x", c.Hex(), float32(i)/100, s.Hex(), prev.Hex())
			}
			prev = s
		}
	}
}

func TestScaleSaturates(t *testing.T) {
	for _, tc := range []struct {
		in     Color
		factor float32
		out    Color
	}{
		{Hex(0x808080), 2, Hex(0xFFFFFF)},
		{Hex(0x804020), 3, Hex(0xFFC060)},
		{Hex(0x804020), -1, Black},
		{Hex(0x102030), 0.5, Hex(0x081018)},
	} {
		if got := tc.in.Scale(tc.factor); got != tc.out {
			t.Errorf("%06x.Scale(%v): expected %06x, got %06x", tc.in.Hex(), tc.factor, tc.out.Hex(), got.Hex())
		}
	}
}

func TestInterpolate(t *testing.T) {
	for _, tc := range []struct {
		from, to Color
		fraction float32
		out      Color
	}{
		{Black, White, 0, Black},
		{Black, White, 1, White},
		{Black, White, 0.5, Hex(0x7F7F7F)},
		{Red, Blue, 0.5, Hex(0x7F007F)},
		{White, Black, 0.25, Hex(0xBFBFBF)},
	} {
		if got := tc.from.Interpolate(tc.to, tc.fraction); got != tc.out {
			t.Errorf("%06x→%06x at %v: expected %06x, got %06x", tc.from.Hex(), tc.to.Hex(), tc.fraction, tc.out.Hex(), got.Hex())
		}
	}
}

func TestHex(t *testing.T) {
	c := Hex(0xAB5500)
	if c != RGB(0xAB, 0x55, 0x00) {
		t.Errorf("unexpected color: %+v", c)
	}
	if c.Hex() != 0xAB5500 {
		t.Errorf("round trip failed: %06x", c.Hex())
	}
}

func TestColorAtWraps(t *testing.T) {
	for _, p := range All {
		n := p.Len()
		for k := -2 * n; k < 3*n; k++ {
			expected := p.Colors[wrap(k, n)]
			if got := p.ColorAt(float32(k)); got != expected {
				t.Errorf("%s.ColorAt(%d) = %06x, expected %06x", p.Name, k, got.Hex(), expected.Hex())
			}
			if got := p.Color(k); got != expected {
				t.Errorf("%s.Color(%d) = %06x, expected %06x", p.Name, k, got.Hex(), expected.Hex())
			}
		}
	}
}

func TestColorAtBlends(t *testing.T) {
	p := New("test", Black, White)
	if got := p.ColorAt(0.5); got != Hex(0x7F7F7F) {
		t.Errorf("expected half way between black and white, got %06x", got.Hex())
	}
	// The last entry blends back to the first.
	if got := p.ColorAt(1.5); got != Hex(0x7F7F7F) {
		t.Errorf("expected wrap-around blend, got %06x", got.Hex())
	}
}

func TestRandomColor(t *testing.T) {
	for i := 0; i < 100; i++ {
		c := Rainbow.RandomColor()
		found := false
		for _, pc := range Rainbow.Colors {
			if pc == c {
				found = true
			}
		}
		if !found {
			t.Fatalf("random color %06x is not part of the palette", c.Hex())
		}
	}
}

func TestHues(t *testing.T) {
	p := Hues("hues", 3)
	expected := []Color{Red, Green, Blue}
	for i, c := range expected {
		if p.Colors[i] != c {
			t.Errorf("hue %d: expected %06x, got %06x", i, c.Hex(), p.Colors[i].Hex())
		}
	}
}

func TestHueWheel(t *testing.T) {
	p := Lookup("hues")
	if p != HueWheel || p.Len() != 12 {
		t.Fatal("hue wheel palette not found")
	}
	for i, expected := range map[int]Color{0: Red, 4: Green, 8: Blue} {
		if p.Colors[i] != expected {
			t.Errorf("hue %d: expected %06x, got %06x", i, expected.Hex(), p.Colors[i].Hex())
		}
	}
}

func TestLookup(t *testing.T) {
	if Lookup("rainbow") != Rainbow {
		t.Error("rainbow palette not found")
	}
	if Lookup("nope") != nil {
		t.Error("unexpected palette for unknown name")
	}
	if !Rainbow.Equal(New("copy", Rainbow.Colors...)) {
		t.Error("palette copy should be equal")
	}
}
