package colors

import "math"

// HSL holds hue in degrees and saturation/lightness in percent.
// Values produced by ToHSL are whole numbers; HSL values fed into ToRGB
// may be fractional.
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// ToHSL converts an RGB colour to rounded HSL with H in [0,360) and S, L in [0,100].
func ToHSL(c RGB) HSL {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	maxV := math.Max(r, math.Max(g, b))
	minV := math.Min(r, math.Min(g, b))
	l := (maxV + minV) / 2

	if maxV == minV {
		return HSL{H: 0, S: 0, L: math.Round(l * 100)}
	}

	d := maxV - minV
	var s float64
	if l > 0.5 {
		s = d / (2 - maxV - minV)
	} else {
		s = d / (maxV + minV)
	}

	var h float64
	switch maxV {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	h /= 6

	hue := math.Mod(math.Round(math.Mod(h, 1)*360), 360)
	return HSL{H: hue, S: math.Round(s * 100), L: math.Round(l * 100)}
}

// ToRGB converts HSL to RGB. Each channel is rounded to the nearest integer.
func ToRGB(c HSL) RGB {
	h := NormalizeHue(c.H) / 360
	s := c.S / 100
	l := c.L / 100

	if s == 0 {
		v := clampByte(l * 255)
		return RGB{R: v, G: v, B: v}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return RGB{
		R: clampByte(hueToChannel(p, q, h+1.0/3) * 255),
		G: clampByte(hueToChannel(p, q, h) * 255),
		B: clampByte(hueToChannel(p, q, h-1.0/3) * 255),
	}
}

func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

// NormalizeHue wraps any hue into [0,360).
func NormalizeHue(h float64) float64 {
	v := math.Mod(h, 360)
	if v < 0 {
		v += 360
	}
	return v
}

// Clamp limits v to [lo,hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// AdjustLuma scales the HSL lightness of c by factor, keeping the result
// within [3,97] percent, and preserves hue and saturation.
func AdjustLuma(c RGB, factor float64) RGB {
	hsl := ToHSL(c)
	hsl.L = Clamp(math.Round(hsl.L*factor), 3, 97)
	return ToRGB(hsl)
}
