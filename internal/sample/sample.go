// Package sample turns decoded images into the flat list of colour points
// the quantizers operate on.
package sample

import (
	"fmt"

	"github.com/darkawower/palettegen/internal/colors"
)

const (
	// DefaultMaxWidth is the width images are scaled down to before sampling.
	DefaultMaxWidth = 350
	// DefaultStride samples every sixth pixel of the flattened buffer.
	DefaultStride = 6
	// DefaultAlphaCutoff skips pixels whose alpha is below this value.
	DefaultAlphaCutoff = 200
)

// Options controls how an image is reduced to sample points.
type Options struct {
	MaxWidth    int
	Stride      int
	AlphaCutoff int
}

// DefaultOptions returns the standard sampling parameters.
func DefaultOptions() Options {
	return Options{
		MaxWidth:    DefaultMaxWidth,
		Stride:      DefaultStride,
		AlphaCutoff: DefaultAlphaCutoff,
	}
}

// Validate checks the options for sane values.
func (o Options) Validate() error {
	if o.MaxWidth < 1 {
		return fmt.Errorf("%w: max width must be at least 1, got %d", colors.ErrConfiguration, o.MaxWidth)
	}
	if o.Stride < 1 {
		return fmt.Errorf("%w: stride must be at least 1, got %d", colors.ErrConfiguration, o.Stride)
	}
	if o.AlphaCutoff < 0 || o.AlphaCutoff > 255 {
		return fmt.Errorf("%w: alpha cutoff must be within 0-255, got %d", colors.ErrConfiguration, o.AlphaCutoff)
	}
	return nil
}

// Points walks a non-premultiplied RGBA buffer of width*height pixels,
// visiting every Stride-th pixel in row-major order and keeping those whose
// alpha is at least AlphaCutoff.
func Points(pix []byte, width, height int, opts Options) ([]colors.RGB, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: image dimensions %dx%d", colors.ErrInvalidInput, width, height)
	}

	size := width * height * 4
	if len(pix) < size {
		return nil, fmt.Errorf("%w: buffer holds %d bytes, need %d", colors.ErrInvalidInput, len(pix), size)
	}

	step := 4 * opts.Stride
	points := make([]colors.RGB, 0, size/step+1)
	for i := 0; i < size; i += step {
		if int(pix[i+3]) < opts.AlphaCutoff {
			continue
		}
		points = append(points, colors.RGB{R: pix[i], G: pix[i+1], B: pix[i+2]})
	}

	if len(points) == 0 {
		return nil, colors.ErrEmptySample
	}
	return points, nil
}
