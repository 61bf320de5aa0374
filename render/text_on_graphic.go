package render

import (
	"image"
	"image/color"

	"golang.org/x/image/math/fixed"

	"github.com/inkterm/vtcore"
)

// TextOnGraphic is the glyph renderer from spec §4.4: it converts one
// logical Cell write into pixel operations against a DrawTarget. It is
// stateless beyond the target handle, the font table and the derived grid
// dimensions, and satisfies vtcore.Renderer so a Console can be constructed
// with vtcore.WithRenderer(textOnGraphic).
//
// Glyphs are rasterized via font.Face.Glyph into an alpha mask and blitted
// pixel-by-pixel through DrawTarget.SetPixel rather than through
// golang.org/x/image/font.Drawer's draw.Image path, so the renderer works
// against any pixel sink — including a raw embedded frame buffer that is
// not itself an image.Image — not only an in-memory *image.RGBA.
//
// Read is deliberately not implemented — per spec, all reads are served by
// the TextBufferCache sitting in front of this renderer; calling Read here
// directly is a programming error.
type TextOnGraphic struct {
	target DrawTarget
	font   *Font

	widthCells, heightCells int
}

// NewTextOnGraphic derives the logical grid size from the target's pixel
// size and the font's cell size (floor division, per spec §6's display
// contract) and constructs the renderer.
func NewTextOnGraphic(target DrawTarget, f *Font) *TextOnGraphic {
	if f == nil {
		f = DefaultFont()
	}
	wpx, hpx := target.Size()
	return &TextOnGraphic{
		target:      target,
		font:        f,
		widthCells:  wpx / f.CellWidth,
		heightCells: hpx / f.CellHeight,
	}
}

// Width implements vtcore.Renderer.
func (g *TextOnGraphic) Width() int { return g.widthCells }

// Height implements vtcore.Renderer.
func (g *TextOnGraphic) Height() int { return g.heightCells }

// Read panics: this renderer does not serve reads directly (spec §4.4, §7).
func (g *TextOnGraphic) Read(row, col int) vtcore.Cell {
	panic("render: TextOnGraphic.Read is not supported; reads are served by the cache")
}

// Write implements vtcore.Renderer: draws cell at logical (row, col).
// Out-of-bounds coordinates are silently ignored, matching "if r >= height()
// or c >= width() return" in spec §4.4.
func (g *TextOnGraphic) Write(row, col int, cell vtcore.Cell) {
	if row < 0 || row >= g.heightCells || col < 0 || col >= g.widthCells {
		return
	}

	cw, ch := g.font.CellWidth, g.font.CellHeight
	x := col * cw
	y := row * ch

	fg := vtcore.Resolve(cell.Fg)
	bg := vtcore.Resolve(cell.Bg)
	if cell.Flags.Has(vtcore.FlagInverse) {
		fg, bg = bg, fg
	}

	g.fillRect(x, y, cw, ch, bg)

	if cell.Ch != 0 && cell.Ch != ' ' && !cell.Flags.Has(vtcore.FlagHidden) {
		face := g.font.face(cell.Flags.Has(vtcore.FlagBold))
		baseline := y + face.Metrics().Ascent.Ceil()
		dr, mask, maskp, _, ok := face.Glyph(fixed.P(x, baseline), cell.Ch)
		if ok {
			g.blitMask(dr, mask, maskp, fg, bg)
		}
	}

	if cell.Flags.Has(vtcore.FlagUnderline) || cell.Flags.Has(vtcore.FlagDoubleUnderline) {
		g.hline(x, y+ch-2, cw, fg)
	}
	if cell.Flags.Has(vtcore.FlagStrikeout) {
		g.hline(x, y+ch/2, cw, fg)
	}
}

func (g *TextOnGraphic) fillRect(x, y, w, h int, c color.Color) {
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			g.target.SetPixel(px, py, c)
		}
	}
}

func (g *TextOnGraphic) hline(x, y, w int, c color.Color) {
	for px := x; px < x+w; px++ {
		g.target.SetPixel(px, y, c)
	}
}

// blitMask walks the glyph's alpha mask (as returned by font.Face.Glyph)
// and paints fg through DrawTarget.SetPixel wherever the mask is non-zero,
// alpha-blending against bg, the cell background Write has just filled.
func (g *TextOnGraphic) blitMask(dr image.Rectangle, mask image.Image, maskp image.Point, fg, bg color.Color) {
	fr, fgr, fb, fa := fg.RGBA()
	br, bgg, bb, _ := bg.RGBA()
	for py := dr.Min.Y; py < dr.Max.Y; py++ {
		for px := dr.Min.X; px < dr.Max.X; px++ {
			_, _, _, ma := mask.At(maskp.X+(px-dr.Min.X), maskp.Y+(py-dr.Min.Y)).RGBA()
			if ma == 0 {
				continue
			}
			if ma == 0xffff {
				g.target.SetPixel(px, py, color.RGBA64{R: uint16(fr), G: uint16(fgr), B: uint16(fb), A: uint16(fa)})
				continue
			}
			inv := 0xffff - ma
			g.target.SetPixel(px, py, color.RGBA64{
				R: uint16((fr*ma + br*inv) / 0xffff),
				G: uint16((fgr*ma + bgg*inv) / 0xffff),
				B: uint16((fb*ma + bb*inv) / 0xffff),
				A: 0xffff,
			})
		}
	}
}

var _ vtcore.Renderer = (*TextOnGraphic)(nil)
