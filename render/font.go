package render

import (
	"io"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// Font is the fixed-cell-size monospaced font table required by spec §4.4:
// a regular and a bold face sharing one cell size (W_c x H_c). Grounded on
// the teacher's ScreenshotConfig (screenshot.go), which derives CellWidth /
// CellHeight from font.Face.Metrics unless overridden.
type Font struct {
	Regular, Bold         font.Face
	CellWidth, CellHeight int
}

// DefaultFont returns the zero-configuration font: golang.org/x/image's
// basicfont.Face7x13 used for both regular and bold (the teacher falls back
// to the same face when no custom font is supplied), matching the font's
// own 7x13 cell.
func DefaultFont() *Font {
	return &Font{
		Regular:    basicfont.Face7x13,
		Bold:       basicfont.Face7x13,
		CellWidth:  7,
		CellHeight: 13,
	}
}

// LoadFont loads a TrueType/OpenType font from a file path and returns a
// single face at the given size; a Font with distinct regular and bold
// faces is built from two loaded faces with NewFont. Grounded on the
// teacher's LoadFont/LoadFontFromReader/LoadFontFromBytes (screenshot.go).
func LoadFont(path string, size float64) (font.Face, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadFontFromReader(f, size)
}

// LoadFontFromReader loads a TrueType/OpenType font from an io.Reader.
func LoadFontFromReader(r io.Reader, size float64) (font.Face, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return LoadFontFromBytes(data, size)
}

// LoadFontFromBytes loads a TrueType/OpenType font from raw bytes.
func LoadFontFromBytes(data []byte, size float64) (font.Face, error) {
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// NewFont builds a Font from loaded regular/bold faces, deriving the cell
// size from the regular face's metrics and 'M' advance unless both
// dimensions are supplied explicitly.
func NewFont(regular, bold font.Face, cellWidth, cellHeight int) *Font {
	if cellWidth == 0 {
		adv, _ := regular.GlyphAdvance('M')
		cellWidth = adv.Ceil()
		if cellWidth == 0 {
			cellWidth = 7
		}
	}
	if cellHeight == 0 {
		cellHeight = regular.Metrics().Height.Ceil()
	}
	return &Font{Regular: regular, Bold: bold, CellWidth: cellWidth, CellHeight: cellHeight}
}

// face selects the regular or bold variant.
func (f *Font) face(bold bool) font.Face {
	if bold && f.Bold != nil {
		return f.Bold
	}
	return f.Regular
}
