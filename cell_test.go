package vtcore

import "testing"

func TestDefaultCell(t *testing.T) {
	c := DefaultCell()
	if c.Ch != ' ' {
		t.Errorf("Ch = %q, want ' '", c.Ch)
	}
	if c.Fg != DefaultForeground {
		t.Errorf("Fg = %v, want DefaultForeground", c.Fg)
	}
	if c.Bg != DefaultBackground {
		t.Errorf("Bg = %v, want DefaultBackground", c.Bg)
	}
	if c.Flags != 0 {
		t.Errorf("Flags = %v, want 0", c.Flags)
	}
}

func TestEraseCellKeepsActiveBackground(t *testing.T) {
	bg := Named{Name: ColorGreen}
	c := EraseCell(bg)
	if c.Bg != bg {
		t.Errorf("Bg = %v, want %v", c.Bg, bg)
	}
	if c.Ch != ' ' || c.Fg != DefaultForeground || c.Flags != 0 {
		t.Errorf("EraseCell = %+v, want default cell with bg overridden", c)
	}
}

func TestFlagsSetHasClear(t *testing.T) {
	var f Flags
	f = f.Set(FlagBold)
	if !f.Has(FlagBold) {
		t.Error("expected FlagBold set")
	}
	f = f.Set(FlagItalic)
	if !f.Has(FlagBold) || !f.Has(FlagItalic) {
		t.Error("expected both flags set")
	}
	f = f.Clear(FlagBold)
	if f.Has(FlagBold) {
		t.Error("expected FlagBold cleared")
	}
	if !f.Has(FlagItalic) {
		t.Error("expected FlagItalic to remain set")
	}
}

func TestFlagsHasRequiresAllBitsInMask(t *testing.T) {
	f := FlagBold
	if f.Has(FlagBold | FlagItalic) {
		t.Error("Has with a combined mask should require every bit present")
	}
}
