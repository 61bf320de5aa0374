package render

import (
	"image"
	"image/color"
)

// ImageTarget adapts a standard library *image.RGBA to DrawTarget, for
// embedders with no real frame buffer to hand — the same role *image.RGBA
// plays in the teacher's Screenshot/ScreenshotWithConfig. Used by cmd/vtdemo
// to snapshot the grid to PNG.
type ImageTarget struct {
	Img *image.RGBA
}

// NewImageTarget allocates a backing *image.RGBA of the given pixel size.
func NewImageTarget(widthPx, heightPx int) *ImageTarget {
	return &ImageTarget{Img: image.NewRGBA(image.Rect(0, 0, widthPx, heightPx))}
}

func (t *ImageTarget) Size() (width, height int) {
	b := t.Img.Bounds()
	return b.Dx(), b.Dy()
}

func (t *ImageTarget) SetPixel(x, y int, c color.Color) {
	if x < 0 || y < 0 || x >= t.Img.Bounds().Dx() || y >= t.Img.Bounds().Dy() {
		return
	}
	t.Img.Set(x, y, c)
}

var _ DrawTarget = (*ImageTarget)(nil)
