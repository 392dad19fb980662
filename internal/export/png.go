package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"time"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/darkawower/palettegen/internal/colors"
)

// Swatch sheet layout.
const (
	SheetWidth   = 1100
	SheetColumns = 6
	sheetPadding = 24
	sheetTop     = 90
	swatchGap    = 16
	swatchHeight = 80
	labelHeight  = 32
	rowHeight    = swatchHeight + 54
)

// SwatchWidth is the width of one swatch cell.
const SwatchWidth = (SheetWidth - 2*sheetPadding - (SheetColumns-1)*swatchGap) / SheetColumns

var (
	sheetBackground = color.NRGBA{R: 0x0B, G: 0x10, B: 0x20, A: 255}
	sheetTitle      = color.NRGBA{R: 0xE7, G: 0xEC, B: 0xFF, A: 255}
	sheetSubtitle   = color.NRGBA{R: 0xAA, G: 0xB3, B: 0xD4, A: 255}
	swatchStroke    = color.NRGBA{R: 255, G: 255, B: 255, A: 38}
)

// SheetSize returns the dimensions of a sheet holding n swatches.
func SheetSize(n int) (int, int) {
	rows := (n + SheetColumns - 1) / SheetColumns
	return SheetWidth, 160 + rows*130
}

// SwatchOrigin returns the top-left corner of swatch i.
func SwatchOrigin(i int) image.Point {
	col, row := i%SheetColumns, i/SheetColumns
	return image.Pt(sheetPadding+col*(SwatchWidth+swatchGap), sheetTop+row*rowHeight)
}

// PNG renders the palette as a labelled swatch sheet.
type PNG struct {
	// Now stamps the subtitle; tests replace it.
	Now func() time.Time
}

// NewPNG returns a PNG exporter using the wall clock.
func NewPNG() PNG {
	return PNG{Now: time.Now}
}

func (PNG) Name() string        { return "png" }
func (PNG) Description() string { return "PNG swatch sheet" }
func (PNG) Filename() string    { return "palette.png" }

func (p PNG) Export(in Input) ([]byte, error) {
	if err := in.requirePalette(); err != nil {
		return nil, err
	}

	now := time.Now
	if p.Now != nil {
		now = p.Now
	}

	img := p.Sheet(in.Palette, now())
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Sheet draws the swatch sheet.
func (PNG) Sheet(swatches []colors.RGB, at time.Time) *image.RGBA {
	w, h := SheetSize(len(swatches))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(sheetBackground), image.Point{}, draw.Src)

	drawText(img, "Palette Generator Export", sheetTitle, 24, 36)
	drawText(img, "HEX - generated "+at.Format(time.RFC1123), sheetSubtitle, 24, 58)

	for i, c := range swatches {
		origin := SwatchOrigin(i)
		cell := image.Rect(origin.X, origin.Y, origin.X+SwatchWidth, origin.Y+swatchHeight)

		fill := color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
		draw.Draw(img, cell, image.NewUniform(fill), image.Point{}, draw.Src)
		strokeRect(img, cell, swatchStroke)

		label := image.Rect(cell.Min.X, cell.Max.Y, cell.Max.X, cell.Max.Y+labelHeight)
		draw.Draw(img, label, image.NewUniform(sheetTitle), image.Point{}, draw.Src)
		drawText(img, c.Hex(), sheetBackground, cell.Min.X+8, cell.Max.Y+21)
	}
	return img
}

func strokeRect(img draw.Image, r image.Rectangle, c color.Color) {
	src := image.NewUniform(c)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1),
		image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y+1, r.Min.X+1, r.Max.Y-1),
		image.Rect(r.Max.X-1, r.Min.Y+1, r.Max.X, r.Max.Y-1),
	}
	for _, e := range edges {
		draw.Draw(img, e, src, image.Point{}, draw.Over)
	}
}

func drawText(img draw.Image, s string, c color.Color, x, y int) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
