package sample

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	syntheticWidth  = 640
	syntheticHeight = 420
)

// SyntheticBlocks are the four solid colours across the top half of the
// synthetic image, left to right.
var SyntheticBlocks = []color.NRGBA{
	{R: 240, G: 68, B: 68, A: 255},
	{R: 16, G: 185, B: 129, A: 255},
	{R: 59, G: 130, B: 246, A: 255},
	{R: 234, G: 179, B: 8, A: 255},
}

var (
	gradientFrom = color.NRGBA{R: 0x11, G: 0x18, B: 0x27, A: 255}
	gradientTo   = color.NRGBA{R: 0x93, G: 0xC5, B: 0xFD, A: 255}
	captionInk   = color.NRGBA{R: 0x0B, G: 0x10, B: 0x20, A: 255}
)

// Synthetic renders the built-in demo image: four colour blocks over a
// diagonal dark-to-light-blue gradient with a caption.
func Synthetic() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, syntheticWidth, syntheticHeight))
	half := syntheticHeight / 2
	blockWidth := syntheticWidth / len(SyntheticBlocks)

	for y := 0; y < half; y++ {
		for x := 0; x < syntheticWidth; x++ {
			img.SetNRGBA(x, y, SyntheticBlocks[x/blockWidth])
		}
	}

	// Gradient axis runs from (0, half) to (width, height).
	dx, dy := float64(syntheticWidth), float64(syntheticHeight-half)
	length := dx*dx + dy*dy
	for y := half; y < syntheticHeight; y++ {
		for x := 0; x < syntheticWidth; x++ {
			t := (float64(x)*dx + float64(y-half)*dy) / length
			img.SetNRGBA(x, y, lerp(gradientFrom, gradientTo, t))
		}
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(captionInk),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(18, 400),
	}
	d.DrawString("Palette Generator Sample")

	return img
}

func lerp(a, b color.NRGBA, t float64) color.NRGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}
