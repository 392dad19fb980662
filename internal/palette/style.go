package palette

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/darkawower/palettegen/internal/colors"
)

// Style biases the ordering of quantizer output.
type Style string

const (
	StyleAuto     Style = "auto"
	StyleVibrant  Style = "vibrant"
	StyleMuted    Style = "muted"
	StyleBalanced Style = "balanced"
)

// Styles returns every valid style.
func Styles() []Style {
	return []Style{StyleAuto, StyleVibrant, StyleMuted, StyleBalanced}
}

// ParseStyle converts a name into a Style.
func ParseStyle(s string) (Style, error) {
	st := Style(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Styles(), st) {
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown style %q (valid styles: %v)", colors.ErrConfiguration, s, Styles())
}

// Bias returns the style bonus for a colour.
func (s Style) Bias(c colors.RGB) float64 {
	hsl := colors.ToHSL(c)
	offset := math.Abs(hsl.L - 50)
	switch s {
	case StyleVibrant:
		return hsl.S*0.6 + (100-offset)*0.2
	case StyleMuted:
		return (100-hsl.S)*0.6 + offset*0.2
	case StyleBalanced:
		return 50 - offset
	default:
		return 0
	}
}

// Score is the ranking key: cluster weight plus the style bias.
func (s Style) Score(wc colors.WeightedColor) float64 {
	return float64(wc.Count) + s.Bias(wc.Color)
}

// ApplyStyle ranks weighted colours by descending score and drops the
// weights. Equal scores keep their input order.
func ApplyStyle(weighted []colors.WeightedColor, style Style) Palette {
	type scored struct {
		color colors.RGB
		score float64
	}

	items := make([]scored, len(weighted))
	for i, wc := range weighted {
		items[i] = scored{color: wc.Color, score: style.Score(wc)}
	}

	slices.SortStableFunc(items, func(a, b scored) int {
		switch {
		case a.score > b.score:
			return -1
		case a.score < b.score:
			return 1
		default:
			return 0
		}
	})

	out := make(Palette, len(items))
	for i, it := range items {
		out[i] = it.color
	}
	return out
}
