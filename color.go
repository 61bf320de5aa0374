package vtcore

import "image/color"

// NamedColor indexes one of the 16 standard ANSI colors, which occupy the
// first 16 slots of the 256-entry palette.
type NamedColor uint8

const (
	ColorBlack NamedColor = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightBlack
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
)

// Named is a color expressed as one of the 16 standard ANSI colors.
type Named struct {
	Name NamedColor
}

func (c Named) RGBA() (r, g, b, a uint32) { return Palette[c.Name].RGBA() }

// Spec is a directly specified 24-bit RGB color (ANSI "true color", SGR
// 38;2;r;g;b / 48;2;r;g;b).
type Spec struct {
	color.RGBA
}

// Indexed is a color referenced by its slot (0-255) in the 256-entry
// palette: 0-15 are the named colors, 16-231 the 6x6x6 color cube, 232-255
// the grayscale ramp.
type Indexed struct {
	Index uint8
}

func (c Indexed) RGBA() (r, g, b, a uint32) { return Palette[c.Index].RGBA() }

// DefaultForeground and DefaultBackground are the colors a reset ("ESC[0m"
// or a fresh Cell) falls back to.
var (
	DefaultForeground = Named{Name: ColorBrightWhite}
	DefaultBackground = Named{Name: ColorBlack}
)

// Palette is the 256-entry xterm-like color table. It is computed once,
// deterministically, at package initialization and is never mutated
// afterwards — callers must treat it as immutable process-wide state.
var Palette [256]color.RGBA

func init() {
	named := [16]color.RGBA{
		{R: 0, G: 0, B: 0, A: 255},
		{R: 194, G: 54, B: 33, A: 255},
		{R: 37, G: 188, B: 36, A: 255},
		{R: 173, G: 173, B: 39, A: 255},
		{R: 73, G: 46, B: 225, A: 255},
		{R: 211, G: 56, B: 211, A: 255},
		{R: 51, G: 187, B: 200, A: 255},
		{R: 203, G: 204, B: 205, A: 255},
		{R: 129, G: 131, B: 131, A: 255},
		{R: 252, G: 57, B: 31, A: 255},
		{R: 49, G: 231, B: 34, A: 255},
		{R: 234, G: 236, B: 35, A: 255},
		{R: 88, G: 51, B: 255, A: 255},
		{R: 249, G: 53, B: 248, A: 255},
		{R: 20, G: 240, B: 240, A: 255},
		{R: 233, G: 235, B: 235, A: 255},
	}
	for i, c := range named {
		Palette[i] = c
	}

	cubeComponent := func(c int) uint8 {
		if c == 0 {
			return 0
		}
		return uint8(c*40 + 55)
	}
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				idx := 16 + 36*r + 6*g + b
				Palette[idx] = color.RGBA{
					R: cubeComponent(r),
					G: cubeComponent(g),
					B: cubeComponent(b),
					A: 255,
				}
			}
		}
	}

	for i := 0; i < 24; i++ {
		v := uint8(i*10 + 8)
		Palette[16+216+i] = color.RGBA{R: v, G: v, B: v, A: 255}
	}
}

// Resolve converts any Color value to a concrete RGBA using Palette.
func Resolve(c color.Color) color.RGBA {
	if c == nil {
		return DefaultForeground.resolved()
	}
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

func (c Named) resolved() color.RGBA { return Palette[c.Name] }
