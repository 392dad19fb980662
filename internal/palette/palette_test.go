package palette

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkawower/palettegen/internal/colors"
)

var (
	red   = colors.RGB{R: 255}
	green = colors.RGB{G: 255}
	blue  = colors.RGB{B: 255}
	gray  = colors.RGB{R: 128, G: 128, B: 128}
	black = colors.RGB{}
	white = colors.RGB{R: 255, G: 255, B: 255}
)

func TestFromHex(t *testing.T) {
	p, err := FromHex("#FF0000", "00ff00")
	require.NoError(t, err)
	assert.Equal(t, Palette{red, green}, p)

	_, err = FromHex("#FF0000", "nope")
	assert.ErrorIs(t, err, colors.ErrInvalidInput)
}

func TestPalette_HexList(t *testing.T) {
	p := Palette{red, colors.RGB{R: 63, G: 167, B: 214}}
	assert.Equal(t, []string{"#FF0000", "#3FA7D6"}, p.Hex())
	assert.Equal(t, "#FF0000\n#3FA7D6", p.HexList())
	assert.Equal(t, "", Palette{}.HexList())
}

func TestPalette_At(t *testing.T) {
	p := Palette{red, green}
	c, ok := p.At(1)
	assert.True(t, ok)
	assert.Equal(t, green, c)

	_, ok = p.At(2)
	assert.False(t, ok)
	_, ok = p.At(-1)
	assert.False(t, ok)
}

func TestPalette_Replace(t *testing.T) {
	p := Palette{red, green, blue}

	out, err := p.Replace(1, gray)
	require.NoError(t, err)
	assert.Equal(t, Palette{red, gray, blue}, out)
	assert.Equal(t, Palette{red, green, blue}, p, "receiver must not change")

	out, err = p.ReplaceHex(0, "#3FA7D6")
	require.NoError(t, err)
	assert.Equal(t, colors.RGB{R: 63, G: 167, B: 214}, out[0])

	_, err = p.ReplaceHex(0, "#12345")
	assert.ErrorIs(t, err, colors.ErrInvalidInput)

	_, err = p.Replace(3, gray)
	assert.ErrorIs(t, err, colors.ErrInvalidInput)
}

func TestPalette_Remove(t *testing.T) {
	tests := []struct {
		name    string
		palette Palette
		index   int
		want    Palette
		wantErr bool
	}{
		{name: "removes from four", palette: Palette{red, green, blue, gray}, index: 1, want: Palette{red, blue, gray}},
		{name: "removes last", palette: Palette{red, green, blue, gray}, index: 3, want: Palette{red, green, blue}},
		{name: "refuses at minimum", palette: Palette{red, green, blue}, index: 0, wantErr: true},
		{name: "refuses out of range", palette: Palette{red, green, blue, gray}, index: 4, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.palette.Clone()
			got, err := tt.palette.Remove(tt.index)
			if tt.wantErr {
				assert.ErrorIs(t, err, colors.ErrInvalidInput)
				assert.Equal(t, before, tt.palette)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, before, tt.palette)
		})
	}
}

func TestPalette_Append(t *testing.T) {
	p := Palette{red}
	out := p.Append(blue)
	assert.Equal(t, Palette{red, blue}, out)
	assert.Len(t, p, 1)

	a := p.AppendRandom(rand.New(rand.NewSource(9)))
	b := p.AppendRandom(rand.New(rand.NewSource(9)))
	assert.Len(t, a, 2)
	assert.Equal(t, a, b)
}

func TestPalette_Sort(t *testing.T) {
	p := Palette{blue, white, red, gray, green, black}

	assert.Equal(t, Palette{white, red, gray, black, green, blue}, p.SortByHue())
	assert.Equal(t, Palette{white, gray, black, blue, red, green}, p.SortBySaturation())
	assert.Equal(t, Palette{black, blue, red, gray, green, white}, p.SortByLightness())
	assert.Equal(t, Palette{blue, white, red, gray, green, black}, p, "receiver must not change")
}

func TestPalette_Shuffle(t *testing.T) {
	p := Palette{red, green, blue, gray, black, white}

	a := p.Shuffle(rand.New(rand.NewSource(3)))
	b := p.Shuffle(rand.New(rand.NewSource(3)))
	assert.Equal(t, a, b)
	assert.ElementsMatch(t, p, a)
	assert.Equal(t, Palette{red, green, blue, gray, black, white}, p)
}

func TestParseStyle(t *testing.T) {
	for _, s := range Styles() {
		got, err := ParseStyle(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := ParseStyle("neon")
	assert.ErrorIs(t, err, colors.ErrConfiguration)
}

func TestStyle_Bias(t *testing.T) {
	tests := []struct {
		name  string
		style Style
		color colors.RGB
		want  float64
	}{
		{name: "vibrant red", style: StyleVibrant, color: red, want: 80},
		{name: "vibrant gray", style: StyleVibrant, color: gray, want: 20},
		{name: "muted red", style: StyleMuted, color: red, want: 0},
		{name: "muted gray", style: StyleMuted, color: gray, want: 60},
		{name: "muted black", style: StyleMuted, color: black, want: 70},
		{name: "balanced gray", style: StyleBalanced, color: gray, want: 50},
		{name: "balanced white", style: StyleBalanced, color: white, want: 0},
		{name: "auto", style: StyleAuto, color: red, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.style.Bias(tt.color), 1e-9)
		})
	}
}

func TestApplyStyle(t *testing.T) {
	weighted := []colors.WeightedColor{
		{Color: gray, Count: 10},
		{Color: red, Count: 10},
		{Color: blue, Count: 50},
	}

	tests := []struct {
		name  string
		style Style
		want  Palette
	}{
		{name: "auto sorts by count, ties stable", style: StyleAuto, want: Palette{blue, gray, red}},
		{name: "vibrant lifts saturated", style: StyleVibrant, want: Palette{blue, red, gray}},
		{name: "muted lifts gray", style: StyleMuted, want: Palette{gray, blue, red}},
		{name: "balanced ties stay in order", style: StyleBalanced, want: Palette{blue, gray, red}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyStyle(weighted, tt.style))
		})
	}
}

func TestApplyStyle_Empty(t *testing.T) {
	assert.Empty(t, ApplyStyle(nil, StyleVibrant))
}
