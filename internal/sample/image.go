package sample

import (
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/darkawower/palettegen/internal/colors"
)

// ScaledSize returns the canvas size an image of w x h is drawn onto:
// images wider than maxWidth are scaled down preserving aspect ratio.
// Both dimensions are at least 1.
func ScaledSize(w, h, maxWidth int) (int, int) {
	ratio := 1.0
	if w > maxWidth {
		ratio = float64(maxWidth) / float64(w)
	}
	sw := int(math.Round(float64(w) * ratio))
	sh := int(math.Round(float64(h) * ratio))
	return max(1, sw), max(1, sh)
}

// Prepare draws img onto a fresh non-premultiplied canvas no wider than maxWidth.
func Prepare(img image.Image, maxWidth int) *image.NRGBA {
	bounds := img.Bounds()
	w, h := ScaledSize(bounds.Dx(), bounds.Dy(), maxWidth)
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))

	if w == bounds.Dx() && h == bounds.Dy() {
		draw.Copy(dst, image.Point{}, img, bounds, draw.Src, nil)
		return dst
	}

	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}

// FromImage prepares img and samples it.
func FromImage(img image.Image, opts Options) ([]colors.RGB, *image.NRGBA, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	if img.Bounds().Empty() {
		return nil, nil, colors.ErrEmptySample
	}

	canvas := Prepare(img, opts.MaxWidth)
	points, err := Points(canvas.Pix, canvas.Rect.Dx(), canvas.Rect.Dy(), opts)
	if err != nil {
		return nil, canvas, err
	}
	return points, canvas, nil
}
