// Package render implements the glyph renderer (TextOnGraphic) described in
// the core spec: it converts a logical (row, col, Cell) write into pixel
// operations against an external DrawTarget. It is grounded on the
// teacher's ScreenshotWithConfig (screenshot.go), reshaped from a
// whole-buffer snapshot into a per-cell incremental renderer driven by the
// text buffer cache rather than walked once at screenshot time.
package render

import "image/color"

// DrawTarget is the capability-based pixel sink the renderer requires from
// its embedder: width/height in pixels, and a way to place a pixel. It is
// the out-of-core collaborator named in spec §4.4 — deliberately minimal so
// a raw frame buffer, an *image.RGBA, or an SDL/embedded-GPU surface can all
// satisfy it without adapting more than this.
//
// A DrawTarget is expected to be infallible, or to swallow its own errors;
// the renderer never checks a return value.
type DrawTarget interface {
	// Size reports the target's pixel dimensions.
	Size() (width, height int)
	// SetPixel places c at (x, y). Out-of-bounds coordinates are ignored.
	SetPixel(x, y int, c color.Color)
}
