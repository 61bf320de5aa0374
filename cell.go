package vtcore

import "image/color"

// Flags is a 16-bit bitset of per-cell rendering attributes. Bit layout
// mirrors the reference implementation exactly so the combination constants
// below (BoldItalic, DimBold) line up the same way.
type Flags uint16

const (
	FlagInverse Flags = 1 << iota
	FlagBold
	FlagItalic
	FlagUnderline
	FlagWrapline
	FlagWideChar
	FlagWideCharSpacer
	FlagDim
	FlagHidden
	FlagStrikeout
	FlagLeadingWideCharSpacer
	FlagDoubleUnderline

	FlagBoldItalic = FlagBold | FlagItalic
	FlagDimBold    = FlagDim | FlagBold
)

// Has reports whether all bits in mask are set.
func (f Flags) Has(mask Flags) bool { return f&mask == mask }

// Set returns f with mask's bits set.
func (f Flags) Set(mask Flags) Flags { return f | mask }

// Clear returns f with mask's bits cleared.
func (f Flags) Clear(mask Flags) Flags { return f &^ mask }

// Cell is one glyph's worth of terminal state: a code point plus its
// foreground color, background color, and attribute flags.
type Cell struct {
	Ch    rune
	Fg    color.Color
	Bg    color.Color
	Flags Flags
}

// DefaultCell is the cell every buffer position starts as, and the cell
// 'ESC[0m' resets the active style template to.
func DefaultCell() Cell {
	return Cell{Ch: ' ', Fg: DefaultForeground, Bg: DefaultBackground, Flags: 0}
}

// EraseCell returns the default cell with its background replaced by bg —
// the value every erase/clear/scroll operation in the core writes, per the
// "erase cell" invariant: an erase never discards the active background.
func EraseCell(bg color.Color) Cell {
	c := DefaultCell()
	c.Bg = bg
	return c
}
