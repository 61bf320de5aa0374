package vtcore

import "testing"

func newTestConsole(t *testing.T, rows, cols int) *Console {
	t.Helper()
	c, err := New(WithSize(rows, cols))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func rowString(t *testing.T, c *Console, row int) string {
	t.Helper()
	s := make([]rune, c.Columns())
	for col := range s {
		cell, ok := c.Cell(row, col)
		if !ok {
			t.Fatalf("Cell(%d, %d) out of bounds", row, col)
		}
		s[col] = cell.Ch
	}
	return string(s)
}

func TestNewDefaults(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if c.Rows() != 24 || c.Columns() != 80 {
		t.Errorf("default size = %dx%d, want 24x80", c.Rows(), c.Columns())
	}
}

func TestPrintAndLinefeed(t *testing.T) {
	c := newTestConsole(t, 2, 8)
	c.WriteString("ab\ncd")

	if got := rowString(t, c, 0); got != "ab      " {
		t.Errorf("row0 = %q, want %q", got, "ab      ")
	}
	if got := rowString(t, c, 1); got != "cd      " {
		t.Errorf("row1 = %q, want %q", got, "cd      ")
	}
	row, col := c.CursorPosition()
	if row != 1 || col != 2 {
		t.Errorf("cursor = (%d,%d), want (1,2)", row, col)
	}
}

func TestCursorHomeCUP(t *testing.T) {
	c := newTestConsole(t, 2, 8)
	c.WriteString("AB\x1b[H")

	row, col := c.CursorPosition()
	if row != 0 || col != 0 {
		t.Errorf("cursor = (%d,%d), want (0,0)", row, col)
	}
	if got := rowString(t, c, 0); got != "AB      " {
		t.Errorf("row0 = %q, want %q", got, "AB      ")
	}
}

func TestEraseDisplayAll(t *testing.T) {
	c := newTestConsole(t, 2, 8)
	c.WriteString("AB\x1b[2J")

	row, col := c.CursorPosition()
	if row != 0 || col != 0 {
		t.Errorf("cursor = (%d,%d), want (0,0)", row, col)
	}
	for r := 0; r < 2; r++ {
		if got := rowString(t, c, r); got != "        " {
			t.Errorf("row%d = %q, want blank", r, got)
		}
	}
}

func TestCursorBackAndOverwrite(t *testing.T) {
	c := newTestConsole(t, 1, 8)
	c.WriteString("ABC\x1b[2D*")

	if got := rowString(t, c, 0); got != "A*C     " {
		t.Errorf("row0 = %q, want %q", got, "A*C     ")
	}
	_, col := c.CursorPosition()
	if col != 2 {
		t.Errorf("col = %d, want 2", col)
	}
}

func TestDSRCursorPositionReport(t *testing.T) {
	c := newTestConsole(t, 24, 80)
	c.WriteString("\x1b[6n")

	want := []byte("\x1b[1;1R")
	for i, wb := range want {
		b, ok := c.PopReport()
		if !ok {
			t.Fatalf("PopReport() ran out at index %d, want %q", i, wb)
		}
		if b != wb {
			t.Errorf("report[%d] = %#x, want %#x", i, b, wb)
		}
	}
	if _, ok := c.PopReport(); ok {
		t.Error("expected report queue to be drained")
	}
}

func TestSGRForegroundColorAndReset(t *testing.T) {
	c := newTestConsole(t, 1, 8)
	c.WriteString("\x1b[31mX\x1b[0mY")

	cell0, _ := c.Cell(0, 0)
	if cell0.Ch != 'X' {
		t.Errorf("cell0.Ch = %q, want 'X'", cell0.Ch)
	}
	if cell0.Fg != (Named{Name: ColorRed}) {
		t.Errorf("cell0.Fg = %v, want Named{ColorRed}", cell0.Fg)
	}

	cell1, _ := c.Cell(0, 1)
	if cell1.Ch != 'Y' {
		t.Errorf("cell1.Ch = %q, want 'Y'", cell1.Ch)
	}
	if cell1.Fg != DefaultForeground {
		t.Errorf("cell1.Fg = %v, want DefaultForeground", cell1.Fg)
	}
}

func TestAutoWrapOn(t *testing.T) {
	c := newTestConsole(t, 2, 8)
	c.WriteString("0123456789ABCDEF")

	if got := rowString(t, c, 0); got != "01234567" {
		t.Errorf("row0 = %q, want %q", got, "01234567")
	}
	if got := rowString(t, c, 1); got != "89ABCDEF" {
		t.Errorf("row1 = %q, want %q", got, "89ABCDEF")
	}
	row, col := c.CursorPosition()
	if row != 1 || col != 8 {
		t.Errorf("cursor = (%d,%d), want (1,8)", row, col)
	}
}

func TestAutoWrapOffDiscardsOverflow(t *testing.T) {
	c := newTestConsole(t, 2, 8)
	c.WriteString("\x1b[?7l0123456789ABCDEF")

	if got := rowString(t, c, 0); got != "01234567" {
		t.Errorf("row0 = %q, want %q", got, "01234567")
	}
	if got := rowString(t, c, 1); got != "        " {
		t.Errorf("row1 = %q, want blank", got)
	}
	row, col := c.CursorPosition()
	if row != 0 || col != 8 {
		t.Errorf("cursor = (%d,%d), want (0,8)", row, col)
	}
}

func TestScrollAtBottomDiscardsTopRow(t *testing.T) {
	c := newTestConsole(t, 2, 4)
	c.WriteString("aaaa\nbbbb\ncccc")

	if got := rowString(t, c, 0); got != "bbbb" {
		t.Errorf("row0 = %q, want %q", got, "bbbb")
	}
	if got := rowString(t, c, 1); got != "cccc" {
		t.Errorf("row1 = %q, want %q", got, "cccc")
	}
}

func TestSaveRestoreCursor(t *testing.T) {
	c := newTestConsole(t, 5, 10)
	c.WriteString("\x1b7")
	c.WriteString("\x1b[3;4H")
	c.WriteString("\x1b8")

	row, col := c.CursorPosition()
	if row != 0 || col != 0 {
		t.Errorf("cursor after restore = (%d,%d), want (0,0)", row, col)
	}
}

func TestSGRResetIsIdempotent(t *testing.T) {
	c := newTestConsole(t, 1, 8)
	c.WriteString("\x1b[31;1m\x1b[0m\x1b[0mZ")
	cell, _ := c.Cell(0, 0)
	if cell.Fg != DefaultForeground || cell.Flags != 0 {
		t.Errorf("cell after double reset = %+v, want default style", cell)
	}
}

func TestTabStopsAtMultipleOf8(t *testing.T) {
	c := newTestConsole(t, 1, 20)
	c.WriteString("A\tB")

	if got := rowString(t, c, 0); got[0] != 'A' || got[8] != 'B' {
		t.Errorf("row0 = %q, want 'A' at 0 and 'B' at 8", got)
	}
	_, col := c.CursorPosition()
	if col != 9 {
		t.Errorf("col = %d, want 9", col)
	}
}

func TestBoundsInvariantAfterEveryWrite(t *testing.T) {
	c := newTestConsole(t, 3, 5)
	seq := "hello\nworld\x1b[10A\x1b[99B\x1b[99C\x1b[99D"
	for i := 0; i < len(seq); i++ {
		c.WriteString(seq[i : i+1])
		row, col := c.CursorPosition()
		if row < 0 || row >= c.Rows() {
			t.Fatalf("row %d out of [0,%d) after byte %d", row, c.Rows(), i)
		}
		if col < 0 || col > c.Columns() {
			t.Fatalf("col %d out of [0,%d] after byte %d", col, c.Columns(), i)
		}
	}
}

func TestAlternateScreenSwap(t *testing.T) {
	c := newTestConsole(t, 2, 4)
	c.WriteString("main")
	c.WriteString("\x1b[?1049h")
	if !c.IsAlternateScreen() {
		t.Fatal("expected alternate screen active")
	}
	c.WriteString("alt!")
	if got := rowString(t, c, 0); got != "alt!" {
		t.Errorf("alt row0 = %q, want %q", got, "alt!")
	}
	c.WriteString("\x1b[?1049l")
	if c.IsAlternateScreen() {
		t.Fatal("expected main screen restored")
	}
	if got := rowString(t, c, 0); got != "main" {
		t.Errorf("main row0 = %q, want %q", got, "main")
	}
}

func TestScrollingRegionConfinesLinefeedScroll(t *testing.T) {
	c := newTestConsole(t, 5, 4)
	c.WriteString("\x1b[2;4r")    // region rows 2..4 (1-based) => scrollTop=1, scrollBottom=3
	c.WriteString("\x1b[5;1Htop") // write below the region, should be unaffected by region scroll

	// Fill and overflow the scrolling region.
	c.WriteString("\x1b[2;1Ha\nb\nc\nd")

	if got := rowString(t, c, 4); got != "top " {
		t.Errorf("row4 = %q, want %q (outside scrolling region)", got, "top ")
	}
}

func TestBELInvokesBellProvider(t *testing.T) {
	rang := false
	c, err := New(WithSize(1, 8), WithBellProvider(bellFunc(func() { rang = true })))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	c.WriteString("\x07")
	if !rang {
		t.Error("expected BellProvider.Bell to be invoked")
	}
}

type bellFunc func()

func (f bellFunc) Bell() { f() }

func TestOSCSetsWindowTitle(t *testing.T) {
	var got string
	c, err := New(WithSize(1, 8), WithTitleProvider(titleFunc(func(s string) { got = s })))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	c.WriteString("\x1b]0;hello\x07")
	if got != "hello" {
		t.Errorf("title = %q, want %q", got, "hello")
	}
}

type titleFunc func(string)

func (f titleFunc) SetTitle(s string) { f(s) }
