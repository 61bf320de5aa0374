package vtcore

import "testing"

func TestPaletteNamedSlotsPopulated(t *testing.T) {
	black := Palette[ColorBlack]
	if black.R != 0 || black.G != 0 || black.B != 0 {
		t.Errorf("Palette[Black] = %+v, want (0,0,0)", black)
	}
	white := Palette[ColorBrightWhite]
	if white.R == 0 && white.G == 0 && white.B == 0 {
		t.Errorf("Palette[BrightWhite] = %+v, want a light color", white)
	}
}

func TestPaletteColorCubeFormula(t *testing.T) {
	// Entry 16 is cube index (0,0,0): value 0.
	if got := Palette[16]; got.R != 0 || got.G != 0 || got.B != 0 {
		t.Errorf("Palette[16] = %+v, want (0,0,0)", got)
	}
	// Entry 16 + 36 + 6 + 1 = 59 is cube index (1,1,1): value 40*1+55=95.
	if got := Palette[16+36+6+1]; got.R != 95 || got.G != 95 || got.B != 95 {
		t.Errorf("Palette[59] = %+v, want (95,95,95)", got)
	}
	// Max cube index (5,5,5) at 16+215=231: value 40*5+55=255.
	if got := Palette[231]; got.R != 255 || got.G != 255 || got.B != 255 {
		t.Errorf("Palette[231] = %+v, want (255,255,255)", got)
	}
}

func TestPaletteGrayscaleRamp(t *testing.T) {
	// Entry 232 is the first grayscale step: 10*0 + 8 = 8.
	if got := Palette[232]; got.R != 8 || got.G != 8 || got.B != 8 {
		t.Errorf("Palette[232] = %+v, want (8,8,8)", got)
	}
	// Entry 255 is the last: 10*23 + 8 = 238.
	if got := Palette[255]; got.R != 238 || got.G != 238 || got.B != 238 {
		t.Errorf("Palette[255] = %+v, want (238,238,238)", got)
	}
}

func TestNamedResolvesThroughPalette(t *testing.T) {
	n := Named{Name: ColorRed}
	r, g, b, _ := n.RGBA()
	want := Palette[ColorRed]
	if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B {
		t.Errorf("Named{Red}.RGBA() = (%d,%d,%d), want %+v", r>>8, g>>8, b>>8, want)
	}
}

func TestIndexedResolvesThroughPalette(t *testing.T) {
	idx := Indexed{Index: 200}
	r, g, b, _ := idx.RGBA()
	want := Palette[200]
	if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B {
		t.Errorf("Indexed{200}.RGBA() = (%d,%d,%d), want %+v", r>>8, g>>8, b>>8, want)
	}
}

func TestResolveHandlesNil(t *testing.T) {
	got := Resolve(nil)
	want := DefaultForeground.resolved()
	if got != want {
		t.Errorf("Resolve(nil) = %+v, want %+v", got, want)
	}
}

func TestResolveSpec(t *testing.T) {
	s := Spec{}
	s.R, s.G, s.B, s.A = 1, 2, 3, 255
	got := Resolve(s)
	if got.R != 1 || got.G != 2 || got.B != 3 {
		t.Errorf("Resolve(Spec{1,2,3}) = %+v, want (1,2,3)", got)
	}
}
