package vtcore

import (
	"image/color"

	"github.com/inkterm/vtcore/vte"
)

// applySGR iterates a CSI "m" parameter list and reduces it into the active
// style template, grounded on the teacher's SetTerminalCharAttribute switch
// (handler.go) but driven directly off vte.Params sub-parameter slices
// instead of a pre-decoded attribute struct, since this core owns its own
// CSI parameter parsing (see vte/params.go). A bare "CSI m" (no parameters
// at all) is treated the same as an explicit "0": reset to default.
func (c *Console) applySGR(params *vte.Params) {
	if params.IsEmpty() {
		c.template = DefaultCell()
		return
	}
	all := params.All()
	for i := 0; i < len(all); i++ {
		p := all[i]
		if len(p) == 0 {
			continue
		}
		switch p[0] {
		case 0:
			c.template = DefaultCell()
		case 1:
			c.template.Flags = c.template.Flags.Set(FlagBold)
		case 2:
			c.template.Flags = c.template.Flags.Set(FlagDim)
		case 3:
			c.template.Flags = c.template.Flags.Set(FlagItalic)
		case 4:
			c.applyUnderline(p)
		case 5, 6:
			// Blink slow/fast: recognized, not a rendered Flags bit per §3.
		case 7:
			c.template.Flags = c.template.Flags.Set(FlagInverse)
		case 8:
			c.template.Flags = c.template.Flags.Set(FlagHidden)
		case 9:
			c.template.Flags = c.template.Flags.Set(FlagStrikeout)
		case 21:
			c.template.Flags = c.template.Flags.Clear(FlagBold)
		case 22:
			c.template.Flags = c.template.Flags.Clear(FlagBold | FlagDim)
		case 23:
			c.template.Flags = c.template.Flags.Clear(FlagItalic)
		case 24:
			c.template.Flags = c.template.Flags.Clear(FlagUnderline | FlagDoubleUnderline)
		case 25:
			// Cancel blink: no rendered bit to clear.
		case 27:
			c.template.Flags = c.template.Flags.Clear(FlagInverse)
		case 28:
			c.template.Flags = c.template.Flags.Clear(FlagHidden)
		case 29:
			c.template.Flags = c.template.Flags.Clear(FlagStrikeout)
		case 39:
			c.template.Fg = DefaultForeground
		case 49:
			c.template.Bg = DefaultBackground
		case 38:
			if n := c.consumeExtendedColor(all, p, &i); n != nil {
				c.template.Fg = n
			}
		case 48:
			if n := c.consumeExtendedColor(all, p, &i); n != nil {
				c.template.Bg = n
			}
		default:
			switch {
			case p[0] >= 30 && p[0] <= 37:
				c.template.Fg = Named{Name: NamedColor(p[0] - 30)}
			case p[0] >= 40 && p[0] <= 47:
				c.template.Bg = Named{Name: NamedColor(p[0] - 40)}
			case p[0] >= 90 && p[0] <= 97:
				c.template.Fg = Named{Name: NamedColor(p[0]-90) + ColorBrightBlack}
			case p[0] >= 100 && p[0] <= 107:
				c.template.Bg = Named{Name: NamedColor(p[0]-100) + ColorBrightBlack}
			default:
				c.logger.Debugf("vtcore: unhandled SGR parameter %d", p[0])
			}
		}
	}
}

func (c *Console) applyUnderline(p []int64) {
	if len(p) >= 2 {
		switch p[1] {
		case 0:
			c.template.Flags = c.template.Flags.Clear(FlagUnderline | FlagDoubleUnderline)
			return
		case 2:
			c.template.Flags = c.template.Flags.Set(FlagDoubleUnderline).Clear(FlagUnderline)
			return
		}
	}
	c.template.Flags = c.template.Flags.Set(FlagUnderline).Clear(FlagDoubleUnderline)
}

// consumeExtendedColor handles both the semicolon form (38;5;n and
// 38;2;r;g;b, spread across consecutive top-level parameters, *idx advanced
// past the ones consumed) and the colon sub-parameter form (38:5:n and
// 38:2::r:g:b, all packed into one top-level parameter's sub-values).
func (c *Console) consumeExtendedColor(all [][]int64, p []int64, idx *int) color.Color {
	if len(p) >= 2 {
		switch p[1] {
		case 5:
			if len(p) >= 3 {
				return Indexed{Index: uint8(p[2])}
			}
		case 2:
			// 38:2:r:g:b (4 sub-values) and 38:2::r:g:b (5, with a leading
			// colorspace id that's ignored here) both end in r,g,b.
			if len(p) >= 4 {
				return rgbSpec(p[len(p)-3], p[len(p)-2], p[len(p)-1])
			}
		}
		return nil
	}

	i := *idx
	if i+1 >= len(all) || len(all[i+1]) == 0 {
		return nil
	}
	switch all[i+1][0] {
	case 5:
		if i+2 < len(all) && len(all[i+2]) > 0 {
			*idx = i + 2
			return Indexed{Index: uint8(all[i+2][0])}
		}
	case 2:
		if i+4 < len(all) {
			*idx = i + 4
			return rgbSpec(firstOr(all[i+2], 0), firstOr(all[i+3], 0), firstOr(all[i+4], 0))
		}
	}
	return nil
}

func firstOr(p []int64, def int64) int64 {
	if len(p) == 0 {
		return def
	}
	return p[0]
}

func rgbSpec(r, g, b int64) Spec {
	return Spec{RGBA: color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}}
}
