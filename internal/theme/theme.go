// Package theme derives UI colour roles (background, foreground, accents
// and link colours) from a palette.
package theme

import (
	"fmt"
	"slices"
	"strings"

	"github.com/darkawower/palettegen/internal/colors"
	"github.com/darkawower/palettegen/internal/palette"
)

// Mode is the overall brightness of a theme.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
	// Auto picks Light or Dark from the palette, see Detect.
	Auto Mode = "auto"
)

// Modes returns every mode accepted by ParseMode.
func Modes() []Mode {
	return []Mode{Light, Dark, Auto}
}

// ParseMode converts a name into a Mode.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Modes(), m) {
		return m, nil
	}
	return "", fmt.Errorf("%w: invalid theme mode %q (must be auto, light, or dark)", colors.ErrConfiguration, s)
}

// String returns the string representation of the mode.
func (m Mode) String() string {
	return string(m)
}

// Detect resolves Auto against a palette: a dark leading colour gives a
// Dark theme, anything else Light. Light and Dark pass through unchanged.
func Detect(m Mode, p palette.Palette) Mode {
	switch m {
	case Light, Dark:
		return m
	}
	if len(p) > 0 && colors.PerceivedLuma(p[0]) <= 128 {
		return Dark
	}
	return Light
}

// Strength controls how far the background is pushed from mid-grey.
type Strength string

const (
	Soft   Strength = "soft"
	Normal Strength = "normal"
	Bold   Strength = "bold"
)

// Strengths returns every valid strength.
func Strengths() []Strength {
	return []Strength{Soft, Normal, Bold}
}

// ParseStrength converts a name into a Strength.
func ParseStrength(s string) (Strength, error) {
	st := Strength(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Strengths(), st) {
		return st, nil
	}
	return "", fmt.Errorf("%w: invalid background strength %q (must be soft, normal, or bold)", colors.ErrConfiguration, s)
}

// MaxAccents caps the number of accents a theme carries.
const MaxAccents = 8

var backgrounds = map[Mode]map[Strength]colors.RGB{
	Dark: {
		Soft:   {R: 16, G: 21, B: 46},
		Normal: {R: 14, G: 18, B: 40},
		Bold:   {R: 6, G: 9, B: 20},
	},
	Light: {
		Soft:   {R: 245, G: 247, B: 252},
		Normal: {R: 250, G: 252, B: 255},
		Bold:   {R: 255, G: 255, B: 255},
	},
}

var (
	darkText  = colors.RGB{R: 18, G: 23, B: 40}
	lightText = colors.RGB{R: 231, G: 236, B: 255}
)

// Theme is a complete set of colour roles.
type Theme struct {
	Mode       Mode         `json:"mode"`
	Strength   Strength     `json:"strength"`
	Background colors.RGB   `json:"background"`
	Foreground colors.RGB   `json:"foreground"`
	Accents    []colors.RGB `json:"accents"`
	Hyperlink  colors.RGB   `json:"hyperlink"`
	Followed   colors.RGB   `json:"followed"`
}

// Background returns the fixed background for a mode and strength.
// Unknown values fall back to Light and Normal.
func Background(mode Mode, strength Strength) colors.RGB {
	byStrength, ok := backgrounds[mode]
	if !ok {
		byStrength = backgrounds[Light]
	}
	bg, ok := byStrength[strength]
	if !ok {
		bg = byStrength[Normal]
	}
	return bg
}

// Derive builds a theme from source. Accents are the most saturated
// colours first, ties in source order. It returns nil for an empty source.
func Derive(source palette.Palette, mode Mode, strength Strength) *Theme {
	if len(source) == 0 {
		return nil
	}
	if mode != Dark {
		mode = Light
	}
	if !slices.Contains(Strengths(), strength) {
		strength = Normal
	}

	byChroma := source.Clone()
	slices.SortStableFunc(byChroma, func(a, b colors.RGB) int {
		sa, sb := colors.ToHSL(a).S, colors.ToHSL(b).S
		switch {
		case sa > sb:
			return -1
		case sa < sb:
			return 1
		default:
			return 0
		}
	})
	accents := byChroma[:min(MaxAccents, len(byChroma))]

	bg := Background(mode, strength)
	fg := lightText
	if colors.PerceivedLuma(bg) > 128 {
		fg = darkText
	}

	factor := 1.2
	if mode == Dark {
		factor = 0.8
	}

	return &Theme{
		Mode:       mode,
		Strength:   strength,
		Background: bg,
		Foreground: fg,
		Accents:    slices.Clip(accents),
		Hyperlink:  accents[0],
		Followed:   colors.AdjustLuma(accents[0], factor),
	}
}

// Accent returns accent i or fallback when the theme has fewer accents.
func (t *Theme) Accent(i int, fallback colors.RGB) colors.RGB {
	if i >= 0 && i < len(t.Accents) {
		return t.Accents[i]
	}
	return fallback
}

// Surface is the card colour drawn on top of the background.
func (t *Theme) Surface() colors.RGB {
	if t.Mode == Dark {
		return colors.AdjustLuma(t.Background, 0.85)
	}
	return colors.AdjustLuma(t.Background, 1.15)
}

var (
	inkDark  = colors.RGB{R: 0x10, G: 0x16, B: 0x23}
	inkLight = colors.RGB{R: 0xF8, G: 0xFA, B: 0xFF}
)

// TextOn returns a readable text colour for content drawn on c.
func TextOn(c colors.RGB) colors.RGB {
	if colors.PerceivedLuma(c) > 160 {
		return inkDark
	}
	return inkLight
}
