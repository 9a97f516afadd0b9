package palette

// Predefined palettes. White comes first in BW so that the single-color
// animations (blink, fade, glow) use white.
var (
	BW = New("bw", White, Black)

	RGBPalette = New("rgb", Red, Green, Blue)

	RYGB = New("rygb", Red, Yellow, Green, Blue)

	RYGBStripe = New("rygb-stripe", Red, Black, Yellow, Black, Green, Black, Blue, Black)

	Rainbow = New("rainbow",
		Hex(0xFF0000), Hex(0xAB5500), Hex(0xABAB00), Hex(0x00FF00),
		Hex(0x00AB55), Hex(0x0000FF), Hex(0x5500AB), Hex(0xAB0055))

	RainbowStripe = New("rainbow-stripe",
		Hex(0xFF0000), Black, Hex(0xAB5500), Black, Hex(0xABAB00), Black, Hex(0x00FF00), Black,
		Hex(0x00AB55), Black, Hex(0x0000FF), Black, Hex(0x5500AB), Black, Hex(0xAB0055), Black)

	Party = New("party",
		Hex(0x5500AB), Hex(0x84007C), Hex(0xB5004B), Hex(0xE5001B),
		Hex(0xE81700), Hex(0xB84700), Hex(0xAB7700), Hex(0xABAB00),
		Hex(0xAB5500), Hex(0xDD2200), Hex(0xF2000E), Hex(0xC2003E),
		Hex(0x8F0071), Hex(0x5F00A1), Hex(0x2F00D0), Hex(0x0007F9))

	WRY = New("wry", Black, Red, Yellow)

	HueWheel = Hues("hues", 12)
)

// All lists the predefined palettes, in a stable order.
var All = []*Palette{BW, RGBPalette, RYGB, RYGBStripe, Rainbow, RainbowStripe, Party, WRY, HueWheel}

// Lookup returns the predefined palette with the given name, or nil.
func Lookup(name string) *Palette {
	for _, p := range All {
		if p.Name == name {
			return p
		}
	}
	return nil
}
