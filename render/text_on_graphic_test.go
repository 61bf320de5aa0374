package render

import (
	"image/color"
	"testing"

	"github.com/inkterm/vtcore"
)

func TestNewTextOnGraphicDerivesGridFromPixelsAndFont(t *testing.T) {
	target := NewImageTarget(70, 39) // 10x3 cells at 7x13
	g := NewTextOnGraphic(target, DefaultFont())

	if g.Width() != 10 {
		t.Errorf("Width() = %d, want 10", g.Width())
	}
	if g.Height() != 3 {
		t.Errorf("Height() = %d, want 3", g.Height())
	}
}

func TestTextOnGraphicWriteFillsBackground(t *testing.T) {
	target := NewImageTarget(7, 13)
	g := NewTextOnGraphic(target, DefaultFont())

	cell := vtcore.Cell{Ch: 'A', Fg: vtcore.DefaultForeground, Bg: vtcore.Named{Name: vtcore.ColorRed}}
	g.Write(0, 0, cell)

	want := vtcore.Resolve(vtcore.Named{Name: vtcore.ColorRed})
	got := target.Img.RGBAAt(0, 0)
	if got != (color.RGBA{R: want.R, G: want.G, B: want.B, A: want.A}) {
		t.Errorf("background at (0,0) = %v, want %v", got, want)
	}
}

func TestTextOnGraphicWriteOutOfBoundsIsIgnored(t *testing.T) {
	target := NewImageTarget(7, 13)
	g := NewTextOnGraphic(target, DefaultFont())

	// Should not panic despite being outside the 1x1 cell grid.
	g.Write(5, 5, vtcore.Cell{Ch: 'x'})
}

func TestTextOnGraphicReadPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Read to panic")
		}
	}()
	target := NewImageTarget(7, 13)
	g := NewTextOnGraphic(target, DefaultFont())
	g.Read(0, 0)
}

func TestTextOnGraphicSatisfiesRenderer(t *testing.T) {
	var _ vtcore.Renderer = NewTextOnGraphic(NewImageTarget(7, 13), nil)
}
