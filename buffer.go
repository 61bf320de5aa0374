package vtcore

// Renderer is the capability set the cache forwards writes to: a pixel-level
// glyph renderer (render.TextOnGraphic satisfies it) or any other sink that
// can place a styled Cell at a logical grid position. Read is deliberately
// absent — the cache is the sole source of truth for reads; see render.TextOnGraphic.
type Renderer interface {
	Width() int
	Height() int
	Write(row, col int, cell Cell)
}

// TextBufferCache is an in-RAM shadow of the logical grid sitting in front
// of a Renderer. It serves reads directly from memory and turns a
// scroll-by-one (new_line) into O(width) work by rotating a row offset
// instead of copying rows, forwarding every write to the renderer using
// logical coordinates.
type TextBufferCache struct {
	store     [][]Cell
	rowOffset int
	inner     Renderer
}

// NewTextBufferCache allocates a cache of inner's dimensions, initialized to
// default cells.
func NewTextBufferCache(inner Renderer) *TextBufferCache {
	h := inner.Height()
	w := inner.Width()
	store := make([][]Cell, h)
	for i := range store {
		row := make([]Cell, w)
		for j := range row {
			row[j] = DefaultCell()
		}
		store[i] = row
	}
	return &TextBufferCache{store: store, inner: inner}
}

// Width and Height report the logical grid dimensions (identical to the
// inner renderer's).
func (c *TextBufferCache) Width() int  { return c.inner.Width() }
func (c *TextBufferCache) Height() int { return c.inner.Height() }

func (c *TextBufferCache) realRow(row int) int {
	h := c.Height()
	if h == 0 {
		return 0
	}
	r := (c.rowOffset + row) % h
	if r < 0 {
		r += h
	}
	return r
}

// Read returns the logical cell at (row, col).
func (c *TextBufferCache) Read(row, col int) Cell {
	return c.store[c.realRow(row)][col]
}

// Write places cell at logical (row, col), mirroring it into both the
// in-RAM store and the renderer.
func (c *TextBufferCache) Write(row, col int, cell Cell) {
	rr := c.realRow(row)
	c.store[rr][col] = cell
	c.inner.Write(row, col, cell)
}

// NewLine discards the logical top row and blanks the logical bottom row
// with erase, advancing row_offset by one (mod height). Only the newly
// blanked row is touched — this is the O(width) scroll the cache exists to
// provide, not a physical copy of every row.
func (c *TextBufferCache) NewLine(erase Cell) {
	h := c.Height()
	if h == 0 {
		return
	}
	c.rowOffset = (c.rowOffset + 1) % h
	bottom := c.realRow(h - 1)
	w := c.Width()
	for col := 0; col < w; col++ {
		c.store[bottom][col] = erase
		c.inner.Write(h-1, col, erase)
	}
}

// Clear resets row_offset to 0 and fills every logical position with erase.
func (c *TextBufferCache) Clear(erase Cell) {
	c.rowOffset = 0
	h, w := c.Height(), c.Width()
	for r := 0; r < h; r++ {
		for col := 0; col < w; col++ {
			c.store[r][col] = erase
			c.inner.Write(r, col, erase)
		}
	}
}

// nullRenderer is a Renderer that discards writes. It lets a Console be
// constructed headless (no pixel target) for testing or pure text-grid use,
// matching the reference's allowance that the draw target contract need
// only be "infallible" — a sink that does nothing satisfies that trivially.
type nullRenderer struct {
	width, height int
}

func newNullRenderer(rows, cols int) *nullRenderer {
	return &nullRenderer{width: cols, height: rows}
}

func (n *nullRenderer) Width() int                 { return n.width }
func (n *nullRenderer) Height() int                { return n.height }
func (n *nullRenderer) Write(row, col int, c Cell) {}

var _ Renderer = (*nullRenderer)(nil)
