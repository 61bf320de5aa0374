// Package vtcore implements a freestanding terminal emulator core: a byte
// parser, a terminal state machine, and a two-layer text buffer (an in-RAM
// ring-buffered cache over a pixel-level glyph renderer). It is designed to
// run without a hosted terminal — an embedder supplies only a draw target
// (see the render package) and feeds it a byte stream.
//
// # Quick start
//
//	term, _ := vtcore.New(vtcore.WithSize(24, 80))
//	term.WriteString("\x1b[31mHello \x1b[32mWorld\x1b[0m!")
//	cell, _ := term.Cell(0, 0)
//	fmt.Printf("%c\n", cell.Ch) // "H"
//
// # Thread safety
//
// All Console methods are safe for concurrent use: a single sync.RWMutex
// guards the whole terminal, matching the single mutex per instance the
// core's single-threaded algorithms were designed around.
package vtcore

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/inkterm/vtcore/vte"
	"github.com/unilibs/uniwidth"
)

const (
	btBEL byte = 0x07
	btBS  byte = 0x08
	btHT  byte = 0x09
	btLF  byte = 0x0A
	btVT  byte = 0x0B
	btFF  byte = 0x0C
	btCR  byte = 0x0D
)

const maxReportQueue = 64

// Console is the terminal facade: it pairs the byte parser with the
// terminal state machine and exposes the public operations an embedder
// drives (Write, Cell, PopReport, Rows, Columns).
type Console struct {
	mu sync.RWMutex

	rows, cols int

	cursor      Cursor
	savedCursor Cursor
	template    Cell

	modes                   Mode
	scrollTop, scrollBottom int

	buffer    *TextBufferCache
	altBuffer *TextBufferCache
	usingAlt  bool
	altSaved  Cursor

	reportQueue []byte

	logger Logger
	bell   BellProvider
	title  TitleProvider

	parser *vte.Parser
}

type config struct {
	rows, cols int
	renderer   Renderer
	logger     Logger
	bell       BellProvider
	title      TitleProvider
}

// Option configures a Console at construction time.
type Option func(*config)

// WithSize sets the grid dimensions used when no explicit Renderer is
// supplied via WithRenderer (a headless null renderer is allocated at this
// size). Defaults to 24x80.
func WithSize(rows, cols int) Option {
	return func(c *config) { c.rows, c.cols = rows, cols }
}

// WithRenderer attaches a pixel-level glyph renderer (see render.TextOnGraphic).
// The grid dimensions are then derived from the renderer's own Width/Height.
func WithRenderer(r Renderer) Option {
	return func(c *config) { c.renderer = r }
}

// WithLogger attaches a Logger for unhandled-sequence diagnostics. Defaults
// to NopLogger.
func WithLogger(l Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithBellProvider attaches a BellProvider invoked on BEL (0x07).
func WithBellProvider(b BellProvider) Option {
	return func(c *config) { c.bell = b }
}

// WithTitleProvider attaches a TitleProvider invoked on OSC 0/1/2.
func WithTitleProvider(t TitleProvider) Option {
	return func(c *config) { c.title = t }
}

// New constructs a Console. With no options it is a headless 24x80 grid
// with no rendering side effects — suitable for tests and pure text-grid
// embedders.
func New(opts ...Option) (*Console, error) {
	cfg := config{
		rows:   24,
		cols:   80,
		logger: NopLogger{},
		bell:   NopBellProvider{},
		title:  NopTitleProvider{},
	}
	for _, o := range opts {
		o(&cfg)
	}

	renderer := cfg.renderer
	if renderer == nil {
		renderer = newNullRenderer(cfg.rows, cfg.cols)
	}

	term := &Console{
		rows:     renderer.Height(),
		cols:     renderer.Width(),
		buffer:   NewTextBufferCache(renderer),
		template: DefaultCell(),
		modes:    ModeLineWrap | ModeShowCursor,
		logger:   cfg.logger,
		bell:     cfg.bell,
		title:    cfg.title,
	}
	term.scrollBottom = term.rows - 1
	term.parser = vte.NewParser(term)
	return term, nil
}

// Rows reports the grid's row count.
func (c *Console) Rows() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rows
}

// Columns reports the grid's column count.
func (c *Console) Columns() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cols
}

// Cell returns the cell at (row, col), or false if out of bounds.
func (c *Console) Cell(row, col int) (Cell, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if row < 0 || row >= c.rows || col < 0 || col >= c.cols {
		return Cell{}, false
	}
	return c.activeBuffer().Read(row, col), true
}

// CursorPosition returns the current 0-based cursor position.
func (c *Console) CursorPosition() (row, col int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cursor.Row, c.cursor.Col
}

// HasMode reports whether every bit in mask is currently set.
func (c *Console) HasMode(mask Mode) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.modes.Has(mask)
}

// IsAlternateScreen reports whether the alternate screen buffer is active.
func (c *Console) IsAlternateScreen() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.usingAlt
}

// Write implements io.Writer: bytes are fed one at a time into the byte
// parser, which drives the terminal state machine via callbacks.
func (c *Console) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, b := range p {
		c.parser.Advance(b)
	}
	return len(p), nil
}

// WriteString is a convenience wrapper over Write.
func (c *Console) WriteString(s string) (int, error) {
	return c.Write([]byte(s))
}

// PopReport drains one byte from the outbound report queue (DSR/CPR
// responses), FIFO order.
func (c *Console) PopReport() (byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.reportQueue) == 0 {
		return 0, false
	}
	b := c.reportQueue[0]
	c.reportQueue = c.reportQueue[1:]
	return b, true
}

func (c *Console) activeBuffer() *TextBufferCache {
	if c.usingAlt {
		return c.altBuffer
	}
	return c.buffer
}

func (c *Console) eraseCell() Cell {
	return EraseCell(c.template.Bg)
}

func (c *Console) enqueueReport(b []byte) {
	if len(c.reportQueue)+len(b) > maxReportQueue {
		c.logger.Warnf("vtcore: report queue overflow, dropping %d byte report", len(b))
		return
	}
	c.reportQueue = append(c.reportQueue, b...)
}

// --- vte.Handler implementation -------------------------------------------
//
// Every method below runs with c.mu already held for writing (by Write's
// loop over parser.Advance), so none of them take the lock themselves.

var _ vte.Handler = (*Console)(nil)

// Print implements vte.Handler.
func (c *Console) Print(r rune) {
	c.input(r)
}

func (c *Console) input(r rune) {
	if c.cursor.Col >= c.cols {
		if !c.modes.Has(ModeLineWrap) {
			return
		}
		c.linefeed()
		c.cursor.Col = 0
	}

	width := uniwidth.RuneWidth(r)
	if width == 2 {
		c.inputWide(r)
		return
	}

	cell := c.template
	cell.Ch = r
	c.activeBuffer().Write(c.cursor.Row, c.cursor.Col, cell)
	c.cursor.Col++
}

func (c *Console) inputWide(r rune) {
	if c.cursor.Col == c.cols-1 {
		spacer := c.eraseCell()
		spacer.Flags = spacer.Flags.Set(FlagLeadingWideCharSpacer)
		c.activeBuffer().Write(c.cursor.Row, c.cursor.Col, spacer)
		if !c.modes.Has(ModeLineWrap) {
			return
		}
		c.linefeed()
		c.cursor.Col = 0
	}

	lead := c.template
	lead.Ch = r
	lead.Flags = lead.Flags.Set(FlagWideChar)
	c.activeBuffer().Write(c.cursor.Row, c.cursor.Col, lead)

	spacer := c.template
	spacer.Ch = ' '
	spacer.Flags = spacer.Flags.Set(FlagWideCharSpacer)
	c.activeBuffer().Write(c.cursor.Row, c.cursor.Col+1, spacer)

	c.cursor.Col += 2
}

// Execute implements vte.Handler for C0 controls.
func (c *Console) Execute(b byte) {
	switch b {
	case btHT:
		c.tab(1)
	case btBS:
		if c.cursor.Col > 0 {
			c.cursor.Col--
		}
	case btCR:
		c.cursor.Col = 0
	case btLF, btVT, btFF:
		c.linefeed()
		c.cursor.Col = 0
	case btBEL:
		c.bell.Bell()
	default:
		c.logger.Debugf("vtcore: unhandled C0 control 0x%02x", b)
	}
}

func (c *Console) tab(n int) {
	buf := c.activeBuffer()
	erase := c.eraseCell()
	for i := 0; i < n && c.cursor.Col < c.cols; i++ {
		next := ((c.cursor.Col / 8) + 1) * 8
		if next > c.cols {
			next = c.cols
		}
		for col := c.cursor.Col; col < next; col++ {
			buf.Write(c.cursor.Row, col, erase)
		}
		c.cursor.Col = next
	}
}

// linefeed advances the cursor one row, scrolling the active scrolling
// region if already at its bottom.
func (c *Console) linefeed() {
	if c.cursor.Row < c.scrollBottom {
		c.cursor.Row++
		return
	}
	c.scrollUpRegion(1)
}

// scrollUpRegion moves content in [scrollTop, scrollBottom] up by n rows,
// filling the vacated bottom rows with the erase cell. When the region
// spans the whole grid this degrades to the cache's O(width) ring rotation;
// a genuine sub-region requires an explicit cell copy since the ring trick
// only models whole-grid rotation.
func (c *Console) scrollUpRegion(n int) {
	buf := c.activeBuffer()
	erase := c.eraseCell()
	if c.scrollTop == 0 && c.scrollBottom == c.rows-1 {
		for i := 0; i < n; i++ {
			buf.NewLine(erase)
		}
		return
	}
	if n > c.scrollBottom-c.scrollTop+1 {
		n = c.scrollBottom - c.scrollTop + 1
	}
	for i := 0; i < n; i++ {
		for row := c.scrollTop; row < c.scrollBottom; row++ {
			for col := 0; col < c.cols; col++ {
				buf.Write(row, col, buf.Read(row+1, col))
			}
		}
		for col := 0; col < c.cols; col++ {
			buf.Write(c.scrollBottom, col, erase)
		}
	}
}

// scrollDownRegion is the inverse of scrollUpRegion.
func (c *Console) scrollDownRegion(n int) {
	buf := c.activeBuffer()
	erase := c.eraseCell()
	if n > c.scrollBottom-c.scrollTop+1 {
		n = c.scrollBottom - c.scrollTop + 1
	}
	for i := 0; i < n; i++ {
		for row := c.scrollBottom; row > c.scrollTop; row-- {
			for col := 0; col < c.cols; col++ {
				buf.Write(row, col, buf.Read(row-1, col))
			}
		}
		for col := 0; col < c.cols; col++ {
			buf.Write(c.scrollTop, col, erase)
		}
	}
}

// CsiDispatch implements vte.Handler.
func (c *Console) CsiDispatch(params *vte.Params, intermediates []byte, ignore bool, final byte) {
	if ignore {
		c.logger.Debugf("vtcore: csi ignored (too many parameters or intermediates), final=%q", final)
		return
	}
	private := false
	switch len(intermediates) {
	case 0:
	case 1:
		if intermediates[0] != '?' {
			c.logger.Debugf("vtcore: csi discarded, unsupported intermediate %q final=%q", intermediates[0], final)
			return
		}
		private = true
	default:
		c.logger.Debugf("vtcore: csi discarded, too many intermediates final=%q", final)
		return
	}

	switch final {
	case 'A':
		n := int(params.GetNonZero(0, 1))
		c.cursor.Row -= n
		if c.cursor.Row < 0 {
			c.cursor.Row = 0
		}
	case 'B', 'e':
		n := int(params.GetNonZero(0, 1))
		c.cursor.Row += n
		if c.cursor.Row > c.rows-1 {
			c.cursor.Row = c.rows - 1
		}
	case 'C', 'a':
		n := int(params.GetNonZero(0, 1))
		c.cursor.Col += n
		if c.cursor.Col > c.cols-1 {
			c.cursor.Col = c.cols - 1
		}
	case 'D':
		n := int(params.GetNonZero(0, 1))
		c.cursor.Col -= n
		if c.cursor.Col < 0 {
			c.cursor.Col = 0
		}
	case 'E':
		n := int(params.GetNonZero(0, 1))
		c.cursor.Row += n
		if c.cursor.Row > c.rows-1 {
			c.cursor.Row = c.rows - 1
		}
		c.cursor.Col = 0
	case 'F':
		n := int(params.GetNonZero(0, 1))
		c.cursor.Row -= n
		if c.cursor.Row < 0 {
			c.cursor.Row = 0
		}
		c.cursor.Col = 0
	case 'G', '`':
		n := int(params.GetNonZero(0, 1))
		c.cursor.Col = clampInt(n-1, 0, c.cols-1)
	case 'H', 'f':
		row := int(params.GetNonZero(0, 1)) - 1
		col := int(params.GetNonZero(1, 1)) - 1
		c.cursor.Row = clampInt(row, 0, c.rows-1)
		c.cursor.Col = clampInt(col, 0, c.cols-1)
	case 'J':
		c.eraseDisplay(int(params.Get(0, 0)))
	case 'K':
		c.eraseLine(int(params.Get(0, 0)))
	case 'L':
		c.insertLines(int(params.GetNonZero(0, 1)))
	case 'M':
		c.deleteLines(int(params.GetNonZero(0, 1)))
	case 'P':
		c.deleteChars(int(params.GetNonZero(0, 1)))
	case '@':
		c.insertChars(int(params.GetNonZero(0, 1)))
	case 'S':
		c.scrollUpRegion(int(params.GetNonZero(0, 1)))
	case 'T':
		c.scrollDownRegion(int(params.GetNonZero(0, 1)))
	case 'X':
		c.eraseChars(int(params.GetNonZero(0, 1)))
	case 'd':
		n := int(params.GetNonZero(0, 1))
		c.cursor.Row = clampInt(n-1, 0, c.rows-1)
	case 'h':
		if private {
			c.setPrivateModes(params, true)
		}
	case 'l':
		if private {
			c.setPrivateModes(params, false)
		}
	case 'm':
		c.applySGR(params)
	case 'n':
		switch params.Get(0, 0) {
		case 5:
			c.enqueueReport([]byte("\x1b[0n"))
		case 6:
			c.enqueueReport([]byte(fmt.Sprintf("\x1b[%d;%dR", c.cursor.Row+1, c.cursor.Col+1)))
		}
	case 'r':
		c.setScrollingRegion(params)
	case 't':
		// Window manipulation: recognized, no effect.
	default:
		c.logger.Debugf("vtcore: unhandled CSI final %q", final)
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (c *Console) eraseDisplay(mode int) {
	buf := c.activeBuffer()
	erase := c.eraseCell()
	switch mode {
	case 0:
		c.eraseLine(0)
		for row := c.cursor.Row + 1; row < c.rows; row++ {
			for col := 0; col < c.cols; col++ {
				buf.Write(row, col, erase)
			}
		}
	case 1:
		for row := 0; row < c.cursor.Row; row++ {
			for col := 0; col < c.cols; col++ {
				buf.Write(row, col, erase)
			}
		}
		c.eraseLine(1)
	case 2:
		buf.Clear(erase)
		c.cursor = Cursor{}
	case 3:
		// Saved/scrollback lines: out of scope, no-op.
	default:
		c.logger.Debugf("vtcore: unknown ED mode %d", mode)
	}
}

func (c *Console) eraseLine(mode int) {
	buf := c.activeBuffer()
	erase := c.eraseCell()
	row := c.cursor.Row
	switch mode {
	case 0:
		for col := c.cursor.Col; col < c.cols; col++ {
			buf.Write(row, col, erase)
		}
	case 1:
		for col := 0; col <= c.cursor.Col && col < c.cols; col++ {
			buf.Write(row, col, erase)
		}
	case 2:
		for col := 0; col < c.cols; col++ {
			buf.Write(row, col, erase)
		}
	default:
		c.logger.Debugf("vtcore: unknown EL mode %d", mode)
	}
}

func (c *Console) insertLines(n int) {
	if c.cursor.Row < c.scrollTop || c.cursor.Row > c.scrollBottom {
		return
	}
	buf := c.activeBuffer()
	erase := c.eraseCell()
	if n > c.scrollBottom-c.cursor.Row+1 {
		n = c.scrollBottom - c.cursor.Row + 1
	}
	for row := c.scrollBottom; row >= c.cursor.Row+n; row-- {
		for col := 0; col < c.cols; col++ {
			buf.Write(row, col, buf.Read(row-n, col))
		}
	}
	for row := c.cursor.Row; row < c.cursor.Row+n; row++ {
		for col := 0; col < c.cols; col++ {
			buf.Write(row, col, erase)
		}
	}
}

func (c *Console) deleteLines(n int) {
	if c.cursor.Row < c.scrollTop || c.cursor.Row > c.scrollBottom {
		return
	}
	buf := c.activeBuffer()
	erase := c.eraseCell()
	if n > c.scrollBottom-c.cursor.Row+1 {
		n = c.scrollBottom - c.cursor.Row + 1
	}
	for row := c.cursor.Row; row <= c.scrollBottom-n; row++ {
		for col := 0; col < c.cols; col++ {
			buf.Write(row, col, buf.Read(row+n, col))
		}
	}
	for row := c.scrollBottom - n + 1; row <= c.scrollBottom; row++ {
		for col := 0; col < c.cols; col++ {
			buf.Write(row, col, erase)
		}
	}
}

func (c *Console) deleteChars(n int) {
	buf := c.activeBuffer()
	erase := c.eraseCell()
	row, start := c.cursor.Row, c.cursor.Col
	if n > c.cols-start {
		n = c.cols - start
	}
	for col := start; col < c.cols-n; col++ {
		buf.Write(row, col, buf.Read(row, col+n))
	}
	for col := c.cols - n; col < c.cols; col++ {
		buf.Write(row, col, erase)
	}
}

func (c *Console) insertChars(n int) {
	buf := c.activeBuffer()
	erase := c.eraseCell()
	row, start := c.cursor.Row, c.cursor.Col
	if n > c.cols-start {
		n = c.cols - start
	}
	for col := c.cols - 1; col >= start+n; col-- {
		buf.Write(row, col, buf.Read(row, col-n))
	}
	for col := start; col < start+n; col++ {
		buf.Write(row, col, erase)
	}
}

func (c *Console) eraseChars(n int) {
	buf := c.activeBuffer()
	erase := c.eraseCell()
	row := c.cursor.Row
	end := c.cursor.Col + n
	if end > c.cols {
		end = c.cols
	}
	for col := c.cursor.Col; col < end; col++ {
		buf.Write(row, col, erase)
	}
}

func (c *Console) setPrivateModes(params *vte.Params, set bool) {
	for _, p := range params.All() {
		if len(p) == 0 {
			continue
		}
		switch p[0] {
		case 7:
			if set {
				c.modes = c.modes.Set(ModeLineWrap)
			} else {
				c.modes = c.modes.Clear(ModeLineWrap)
			}
		case 25:
			if set {
				c.modes = c.modes.Set(ModeShowCursor)
			} else {
				c.modes = c.modes.Clear(ModeShowCursor)
			}
		case 1049:
			if set {
				c.enterAltScreen()
			} else {
				c.exitAltScreen()
			}
		default:
			c.logger.Debugf("vtcore: recognized but unimplemented private mode %d", p[0])
		}
	}
}

func (c *Console) enterAltScreen() {
	if c.usingAlt {
		return
	}
	if c.altBuffer == nil {
		c.altBuffer = NewTextBufferCache(newNullRenderer(c.rows, c.cols))
	}
	c.altSaved = c.cursor
	c.usingAlt = true
	c.modes = c.modes.Set(ModeAltScreen)
	c.cursor = Cursor{}
}

func (c *Console) exitAltScreen() {
	if !c.usingAlt {
		return
	}
	c.usingAlt = false
	c.modes = c.modes.Clear(ModeAltScreen)
	c.cursor = c.altSaved
}

func (c *Console) setScrollingRegion(params *vte.Params) {
	if params.IsEmpty() {
		c.scrollTop, c.scrollBottom = 0, c.rows-1
		return
	}
	top := int(params.GetNonZero(0, 1)) - 1
	bottom := int(params.GetNonZero(1, int64(c.rows))) - 1
	top = clampInt(top, 0, c.rows-1)
	bottom = clampInt(bottom, 0, c.rows-1)
	if top >= bottom {
		top, bottom = 0, c.rows-1
	}
	c.scrollTop, c.scrollBottom = top, bottom
	c.cursor = Cursor{Row: top, Col: 0}
}

// EscDispatch implements vte.Handler.
func (c *Console) EscDispatch(intermediates []byte, ignore bool, final byte) {
	if len(intermediates) > 0 {
		c.logger.Debugf("vtcore: esc discarded, intermediates=%v final=%q", intermediates, final)
		return
	}
	switch final {
	case '7':
		c.savedCursor = c.cursor
	case '8':
		c.cursor = c.savedCursor
	default:
		c.logger.Debugf("vtcore: unhandled ESC final %q", final)
	}
}

// OscDispatch implements vte.Handler. Only OSC 0/1/2 (window title) is
// wired to an observer; all others are logged and ignored.
func (c *Console) OscDispatch(params [][]byte, bellTerminated bool) {
	if len(params) == 0 {
		return
	}
	switch string(params[0]) {
	case "0", "1", "2":
		if len(params) > 1 {
			c.title.SetTitle(string(params[1]))
		}
	default:
		c.logger.Debugf("vtcore: unhandled OSC %s", string(params[0]))
	}
}

// Hook, Put and Unhook implement vte.Handler for DCS strings, which this
// core does not act on.
func (c *Console) Hook(*vte.Params, []byte, bool, byte) {}
func (c *Console) Put(byte)                             {}
func (c *Console) Unhook()                              {}

var _ color.Color = Named{}
