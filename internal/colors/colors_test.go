package colors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRGB_Hex(t *testing.T) {
	tests := []struct {
		name     string
		color    RGB
		expected string
	}{
		{name: "black", color: RGB{R: 0, G: 0, B: 0}, expected: "#000000"},
		{name: "white", color: RGB{R: 255, G: 255, B: 255}, expected: "#FFFFFF"},
		{name: "red", color: RGB{R: 255, G: 0, B: 0}, expected: "#FF0000"},
		{name: "custom", color: RGB{R: 171, G: 205, B: 239}, expected: "#ABCDEF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.color.Hex())
			assert.Equal(t, tt.expected[1:], tt.color.HexBare())
		})
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    RGB
		wantErr bool
	}{
		{name: "upper case", input: "#3FA7D6", want: RGB{R: 63, G: 167, B: 214}},
		{name: "lower case", input: "#3fa7d6", want: RGB{R: 63, G: 167, B: 214}},
		{name: "without hash", input: "3FA7D6", want: RGB{R: 63, G: 167, B: 214}},
		{name: "white", input: "#ffffff", want: RGB{R: 255, G: 255, B: 255}},
		{name: "short form", input: "#fff", wantErr: true},
		{name: "non hex", input: "#zzzzzz", wantErr: true},
		{name: "too long", input: "#3FA7D6FF", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "embedded space", input: "#3F A7D", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHex(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMustParseHex_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParseHex("nope") })
	assert.Equal(t, RGB{R: 1, G: 2, B: 3}, MustParseHex("#010203"))
}

func TestFromInts(t *testing.T) {
	c, err := FromInts(10, 20, 255)
	require.NoError(t, err)
	assert.Equal(t, RGB{R: 10, G: 20, B: 255}, c)

	_, err = FromInts(256, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = FromInts(0, -1, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestToHSL(t *testing.T) {
	tests := []struct {
		name  string
		color RGB
		want  HSL
	}{
		{name: "red", color: RGB{R: 255}, want: HSL{H: 0, S: 100, L: 50}},
		{name: "green", color: RGB{G: 255}, want: HSL{H: 120, S: 100, L: 50}},
		{name: "blue", color: RGB{B: 255}, want: HSL{H: 240, S: 100, L: 50}},
		{name: "gray", color: RGB{R: 128, G: 128, B: 128}, want: HSL{H: 0, S: 0, L: 50}},
		{name: "black", color: RGB{}, want: HSL{H: 0, S: 0, L: 0}},
		{name: "white", color: RGB{R: 255, G: 255, B: 255}, want: HSL{H: 0, S: 0, L: 100}},
		{name: "sky", color: RGB{R: 63, G: 167, B: 214}, want: HSL{H: 199, S: 65, L: 54}},
		{name: "almost red wraps to zero", color: RGB{R: 255, G: 0, B: 1}, want: HSL{H: 0, S: 100, L: 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToHSL(tt.color))
		})
	}
}

func TestToRGB(t *testing.T) {
	tests := []struct {
		name string
		hsl  HSL
		want RGB
	}{
		{name: "achromatic", hsl: HSL{H: 200, S: 0, L: 50}, want: RGB{R: 128, G: 128, B: 128}},
		{name: "red", hsl: HSL{H: 0, S: 100, L: 50}, want: RGB{R: 255}},
		{name: "hue 360 equals 0", hsl: HSL{H: 360, S: 100, L: 50}, want: RGB{R: 255}},
		{name: "negative hue", hsl: HSL{H: -120, S: 100, L: 50}, want: RGB{B: 255}},
		{name: "sky", hsl: HSL{H: 199, S: 65, L: 54}, want: RGB{R: 61, G: 166, B: 214}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToRGB(tt.hsl))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	anchors := []RGB{
		{R: 63, G: 167, B: 214},
		{R: 240, G: 68, B: 68},
		{R: 16, G: 185, B: 129},
		{R: 59, G: 130, B: 246},
		{R: 0, G: 0, B: 0},
		{R: 255, G: 255, B: 255},
	}
	for _, c := range anchors {
		assertWithin(t, c, ToRGB(ToHSL(c)), 2)
	}

	// Whole-degree hue and whole-percent S/L can move a channel by up to 3.
	for r := 0; r < 256; r += 15 {
		for g := 0; g < 256; g += 15 {
			for b := 0; b < 256; b += 15 {
				c := RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
				assertWithin(t, c, ToRGB(ToHSL(c)), 3)
			}
		}
	}
}

func assertWithin(t *testing.T, want, got RGB, tolerance int) {
	t.Helper()
	assert.InDelta(t, int(want.R), int(got.R), float64(tolerance), "R of %s", want)
	assert.InDelta(t, int(want.G), int(got.G), float64(tolerance), "G of %s", want)
	assert.InDelta(t, int(want.B), int(got.B), float64(tolerance), "B of %s", want)
}

func TestNormalizeHue(t *testing.T) {
	assert.Equal(t, 0.0, NormalizeHue(360))
	assert.Equal(t, 330.0, NormalizeHue(-30))
	assert.Equal(t, 60.0, NormalizeHue(420))
	assert.Equal(t, 359.0, NormalizeHue(-1))
}

func TestAdjustLuma(t *testing.T) {
	tests := []struct {
		name   string
		color  RGB
		factor float64
		want   RGB
	}{
		{name: "darken", color: RGB{R: 63, G: 167, B: 214}, factor: 0.8, want: RGB{R: 38, G: 136, B: 181}},
		{name: "lighten", color: RGB{R: 63, G: 167, B: 214}, factor: 1.2, want: RGB{R: 108, G: 187, B: 224}},
		{name: "clamped high", color: RGB{R: 255, G: 255, B: 255}, factor: 2, want: RGB{R: 247, G: 247, B: 247}},
		{name: "clamped low", color: RGB{}, factor: 0.5, want: RGB{R: 8, G: 8, B: 8}},
		{name: "dark background", color: RGB{R: 16, G: 21, B: 46}, factor: 1.4, want: RGB{R: 23, G: 29, B: 64}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AdjustLuma(tt.color, tt.factor))
		})
	}
}

func TestPerceivedLuma(t *testing.T) {
	assert.InDelta(t, 0.0, PerceivedLuma(RGB{}), 1e-9)
	assert.InDelta(t, 255.0, PerceivedLuma(RGB{R: 255, G: 255, B: 255}), 1e-9)
	assert.InDelta(t, 0.7152*255, PerceivedLuma(RGB{G: 255}), 1e-9)
}

func TestDistance(t *testing.T) {
	a := RGB{R: 10, G: 20, B: 30}
	b := RGB{R: 13, G: 24, B: 30}
	assert.Equal(t, 25, DistanceSquared(a, b))
	assert.InDelta(t, 5.0, Distance(a, b), 1e-9)
	assert.Equal(t, 0, DistanceSquared(a, a))
}

func TestColorful(t *testing.T) {
	c := RGB{R: 63, G: 167, B: 214}
	r, g, b := c.Colorful().RGB255()
	assert.Equal(t, c, RGB{R: r, G: g, B: b})
	assert.Equal(t, "#3fa7d6", c.Colorful().Hex())
}
