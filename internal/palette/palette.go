// Package palette holds the ordered colour list produced by extraction and
// the operations used to rank and edit it.
package palette

import (
	"cmp"
	"fmt"
	"math/rand"
	"slices"
	"strings"

	"github.com/darkawower/palettegen/internal/colors"
)

// MinEditableSize is the smallest palette Remove will leave behind.
const MinEditableSize = 3

// Palette is an ordered list of colours; index 0 is the most prominent.
// All operations return a new Palette and leave the receiver untouched.
type Palette []colors.RGB

// FromHex parses a list of hex strings.
func FromHex(values ...string) (Palette, error) {
	p := make(Palette, 0, len(values))
	for _, v := range values {
		c, err := colors.ParseHex(v)
		if err != nil {
			return nil, err
		}
		p = append(p, c)
	}
	return p, nil
}

// Clone returns a copy of the palette.
func (p Palette) Clone() Palette {
	return slices.Clone(p)
}

// Hex returns the hex code of every colour in order.
func (p Palette) Hex() []string {
	out := make([]string, len(p))
	for i, c := range p {
		out[i] = c.Hex()
	}
	return out
}

// HexList returns the palette as newline-separated hex codes.
func (p Palette) HexList() string {
	return strings.Join(p.Hex(), "\n")
}

// At returns the colour at index i.
func (p Palette) At(i int) (colors.RGB, bool) {
	if i < 0 || i >= len(p) {
		return colors.RGB{}, false
	}
	return p[i], true
}

// Replace returns a palette with the colour at i swapped for c.
func (p Palette) Replace(i int, c colors.RGB) (Palette, error) {
	if err := p.checkIndex(i); err != nil {
		return nil, err
	}
	out := p.Clone()
	out[i] = c
	return out, nil
}

// ReplaceHex is Replace with a hex colour.
func (p Palette) ReplaceHex(i int, hex string) (Palette, error) {
	c, err := colors.ParseHex(hex)
	if err != nil {
		return nil, err
	}
	return p.Replace(i, c)
}

// Remove returns a palette without the colour at i. Palettes of
// MinEditableSize or fewer colours cannot shrink further.
func (p Palette) Remove(i int) (Palette, error) {
	if len(p) <= MinEditableSize {
		return nil, fmt.Errorf("%w: palette must have at least %d colors", colors.ErrInvalidInput, MinEditableSize)
	}
	if err := p.checkIndex(i); err != nil {
		return nil, err
	}
	return slices.Delete(p.Clone(), i, i+1), nil
}

// Append returns a palette with c added at the end.
func (p Palette) Append(c colors.RGB) Palette {
	return append(p.Clone(), c)
}

// AppendRandom returns a palette with a uniformly random colour added.
func (p Palette) AppendRandom(rng *rand.Rand) Palette {
	return p.Append(colors.RGB{
		R: uint8(rng.Intn(256)),
		G: uint8(rng.Intn(256)),
		B: uint8(rng.Intn(256)),
	})
}

// SortByHue orders colours by ascending hue.
func (p Palette) SortByHue() Palette {
	return p.sortBy(func(h colors.HSL) float64 { return h.H })
}

// SortBySaturation orders colours by ascending saturation.
func (p Palette) SortBySaturation() Palette {
	return p.sortBy(func(h colors.HSL) float64 { return h.S })
}

// SortByLightness orders colours by ascending lightness.
func (p Palette) SortByLightness() Palette {
	return p.sortBy(func(h colors.HSL) float64 { return h.L })
}

func (p Palette) sortBy(key func(colors.HSL) float64) Palette {
	out := p.Clone()
	slices.SortStableFunc(out, func(a, b colors.RGB) int {
		return cmp.Compare(key(colors.ToHSL(a)), key(colors.ToHSL(b)))
	})
	return out
}

// Shuffle returns a Fisher-Yates permutation of the palette.
func (p Palette) Shuffle(rng *rand.Rand) Palette {
	out := p.Clone()
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func (p Palette) checkIndex(i int) error {
	if i < 0 || i >= len(p) {
		return fmt.Errorf("%w: color index %d out of range (palette has %d colors)", colors.ErrInvalidInput, i, len(p))
	}
	return nil
}
