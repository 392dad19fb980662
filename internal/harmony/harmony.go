// Package harmony derives colour-wheel schemes from a single base colour.
package harmony

import (
	"fmt"
	"slices"
	"strings"

	"github.com/darkawower/palettegen/internal/colors"
	"github.com/darkawower/palettegen/internal/palette"
)

// Kind names a harmony scheme.
type Kind string

const (
	KindNone          Kind = "none"
	KindComplementary Kind = "complementary"
	KindAnalogous     Kind = "analogous"
	KindTriadic       Kind = "triadic"
	KindTetradic      Kind = "tetradic"
	KindMonochrome    Kind = "monochrome"
)

// Kinds returns every valid kind.
func Kinds() []Kind {
	return []Kind{KindNone, KindComplementary, KindAnalogous, KindTriadic, KindTetradic, KindMonochrome}
}

// ParseKind converts a name into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Kinds(), k) {
		return k, nil
	}
	return "", fmt.Errorf("%w: unknown harmony %q (valid harmonies: %v)", colors.ErrConfiguration, s, Kinds())
}

// Saturation and lightness of the base are clamped into these ranges
// before generating a scheme.
const (
	minSaturation = 35
	maxSaturation = 96
	minLightness  = 30
	maxLightness  = 70
)

// Make generates the scheme of the given kind around base.
// KindNone yields an empty palette.
func Make(base colors.RGB, kind Kind) palette.Palette {
	hsl := colors.ToHSL(base)
	h := hsl.H
	sat := colors.Clamp(hsl.S, minSaturation, maxSaturation)
	light := colors.Clamp(hsl.L, minLightness, maxLightness)

	at := func(hue, l float64) colors.RGB {
		return colors.ToRGB(colors.HSL{H: colors.NormalizeHue(hue), S: sat, L: l})
	}

	switch kind {
	case KindComplementary:
		return palette.Palette{at(h, light), at(h+180, light)}
	case KindAnalogous:
		return palette.Palette{at(h-30, light), at(h, light), at(h+30, light)}
	case KindTriadic:
		return palette.Palette{at(h, light), at(h+120, light), at(h+240, light)}
	case KindTetradic:
		return palette.Palette{at(h, light), at(h+90, light), at(h+180, light), at(h+270, light)}
	case KindMonochrome:
		return palette.Palette{
			at(h, colors.Clamp(light*0.7, 10, 90)),
			at(h, light),
			at(h, colors.Clamp(light*1.3, 10, 90)),
		}
	default:
		return palette.Palette{}
	}
}

// FromPalette generates the scheme around the colour at index base.
// A missing base colour yields an empty palette.
func FromPalette(p palette.Palette, base int, kind Kind) palette.Palette {
	c, ok := p.At(base)
	if !ok {
		return palette.Palette{}
	}
	return Make(c, kind)
}
