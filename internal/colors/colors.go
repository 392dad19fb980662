// Package colors provides the colour primitives shared by the extractor:
// RGB and HSL values, hex conversion and lightness adjustment.
package colors

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB represents an 8-bit per channel colour.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Hex returns the upper-case #RRGGBB representation of the colour.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// HexBare returns the hex representation without the leading '#'.
func (c RGB) HexBare() string {
	return c.Hex()[1:]
}

// String implements fmt.Stringer.
func (c RGB) String() string {
	return c.Hex()
}

// Colorful converts the colour to a go-colorful value.
func (c RGB) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// WeightedColor is a representative colour together with the number of
// sample points it stands for.
type WeightedColor struct {
	Color RGB `json:"color"`
	Count int `json:"count"`
}

// ParseHex parses a "#RRGGBB" or "RRGGBB" string.
func ParseHex(s string) (RGB, error) {
	hex := s
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 || !isHexDigits(hex) {
		return RGB{}, fmt.Errorf("%w: invalid hex color %q (expected #RRGGBB)", ErrInvalidInput, s)
	}

	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: invalid hex color %q: %v", ErrInvalidInput, s, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// MustParseHex is like ParseHex but panics on malformed input.
// Intended for literals.
func MustParseHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// FromInts builds a colour from integer channels, rejecting values outside 0..255.
func FromInts(r, g, b int) (RGB, error) {
	for _, v := range []int{r, g, b} {
		if v < 0 || v > 255 {
			return RGB{}, fmt.Errorf("%w: channel value %d out of range 0-255", ErrInvalidInput, v)
		}
	}
	return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}, nil
}

// DistanceSquared returns the squared Euclidean distance in RGB space.
func DistanceSquared(a, b RGB) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}

// Distance returns the Euclidean distance in RGB space.
func Distance(a, b RGB) float64 {
	return math.Sqrt(float64(DistanceSquared(a, b)))
}

// PerceivedLuma returns the Rec. 709 weighted luma in 0..255.
func PerceivedLuma(c RGB) float64 {
	return 0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)
}

func isHexDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch >= '0' && ch <= '9':
		case ch >= 'a' && ch <= 'f':
		case ch >= 'A' && ch <= 'F':
		default:
			return false
		}
	}
	return true
}

// clampByte rounds and clamps a channel value into 0..255.
func clampByte(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
