package export

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkawower/palettegen/internal/colors"
	"github.com/darkawower/palettegen/internal/palette"
	"github.com/darkawower/palettegen/internal/theme"
)

var (
	red = colors.RGB{R: 255}
	sky = colors.RGB{R: 63, G: 167, B: 214}
)

func testTheme() *theme.Theme {
	return &theme.Theme{
		Mode:       theme.Dark,
		Strength:   theme.Normal,
		Background: colors.RGB{R: 16, G: 21, B: 46},
		Foreground: colors.RGB{R: 231, G: 236, B: 255},
		Accents:    []colors.RGB{red, sky},
		Hyperlink:  red,
		Followed:   colors.RGB{R: 204},
	}
}

func testInput() Input {
	return Input{Theme: testTheme(), Palette: palette.Palette{red, sky}}
}

func TestCSS(t *testing.T) {
	out, err := CSS{}.Export(testInput())
	require.NoError(t, err)

	expected := ":root{\n" +
		"  --background: #10152E;\n" +
		"  --foreground: #E7ECFF;\n" +
		"  --accent1: #FF0000;\n" +
		"  --accent2: #3FA7D6;\n" +
		"  --hyperlink: #FF0000;\n" +
		"  --followed: #CC0000;\n" +
		"}\n"
	assert.Equal(t, expected, string(out))
}

func TestExportersRequireTheme(t *testing.T) {
	in := Input{Palette: palette.Palette{red}}
	for _, name := range []string{"css", "json", "powerbi", "office", "tailwind", "figma", "sketch"} {
		t.Run(name, func(t *testing.T) {
			e, ok := Lookup(name)
			require.True(t, ok)
			_, err := e.Export(in)
			assert.ErrorIs(t, err, colors.ErrInvalidInput)
		})
	}
}

func TestRoleJSONKeepsOrder(t *testing.T) {
	out, err := RoleJSON{}.Export(testInput())
	require.NoError(t, err)

	var roles map[string]string
	require.NoError(t, json.Unmarshal(out, &roles))
	assert.Equal(t, "#3FA7D6", roles["accent2"])
	assert.Equal(t, "#CC0000", roles["followed"])

	assertOrdered(t, string(out), `"background"`, `"foreground"`, `"accent1"`, `"accent2"`, `"hyperlink"`, `"followed"`)
}

func TestPowerBI(t *testing.T) {
	tests := []struct {
		name        string
		accents     []colors.RGB
		tableAccent string
	}{
		{name: "third accent", accents: []colors.RGB{red, sky, {G: 255}}, tableAccent: "#00FF00"},
		{name: "falls back to first", accents: []colors.RGB{red, sky}, tableAccent: "#FF0000"},
		{name: "falls back to default", accents: nil, tableAccent: "#007ACC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := testTheme()
			th.Accents = tt.accents

			out, err := PowerBI{}.Export(Input{Theme: th})
			require.NoError(t, err)

			var got powerBITheme
			require.NoError(t, json.Unmarshal(out, &got))
			assert.Equal(t, ThemeName, got.Name)
			assert.Equal(t, "#E7ECFF", got.Foreground)
			assert.Equal(t, "#10152E", got.Background)
			assert.Equal(t, tt.tableAccent, got.TableAccent)
			assert.Len(t, got.DataColors, len(tt.accents))
		})
	}
}

func TestOffice(t *testing.T) {
	out, err := Office{}.Export(testInput())
	require.NoError(t, err)
	doc := string(out)

	assert.True(t, strings.HasPrefix(doc, `<?xml version="1.0"`))
	assert.Contains(t, doc, `<a:dk2><a:srgbClr val="10152E"/></a:dk2>`)
	assert.Contains(t, doc, `<a:lt2><a:srgbClr val="171D40"/></a:lt2>`)
	assert.Contains(t, doc, `<a:accent1><a:srgbClr val="FF0000"/></a:accent1>`)
	assert.Contains(t, doc, `<a:accent2><a:srgbClr val="3FA7D6"/></a:accent2>`)
	assert.Contains(t, doc, `<a:accent3><a:srgbClr val="FFC000"/></a:accent3>`)
	assert.Contains(t, doc, `<a:accent6><a:srgbClr val="00B0F0"/></a:accent6>`)
	assert.Contains(t, doc, `<a:folHlink><a:srgbClr val="CC0000"/></a:folHlink>`)
	assert.Contains(t, doc, `<a:latin typeface="Calibri"/>`)
	assert.NotContains(t, doc, "accent7")

	dec := xml.NewDecoder(bytes.NewReader(out))
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
	}
}

func TestColorScheme(t *testing.T) {
	frag, err := ColorScheme(testTheme())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(frag, "<a:clrScheme"))
	assert.True(t, strings.HasSuffix(frag, "</a:clrScheme>"))
	assert.NotContains(t, frag, "fontScheme")

	_, err = ColorScheme(nil)
	assert.ErrorIs(t, err, colors.ErrInvalidInput)
}

func TestTailwind(t *testing.T) {
	out, err := Tailwind{}.Export(testInput())
	require.NoError(t, err)
	js := string(out)

	assert.True(t, strings.HasPrefix(js, "module.exports = {\n  theme: {\n    extend: {\n      colors: {"))
	assert.Contains(t, js, `"accent1": "#FF0000"`)
	assertOrdered(t, js, `"background"`, `"accent1"`, `"followed"`)
}

func TestFigma(t *testing.T) {
	out, err := Figma{}.Export(testInput())
	require.NoError(t, err)

	var tokens map[string]map[string]figmaToken
	require.NoError(t, json.Unmarshal(out, &tokens))
	group, ok := tokens["Palette Generator"]
	require.True(t, ok)
	assert.Len(t, group, 6)
	assert.Equal(t, figmaToken{Value: "#10152E", Type: "color"}, group["background"])
	assertOrdered(t, string(out), `"background"`, `"accent2"`, `"hyperlink"`)
}

func TestSketch(t *testing.T) {
	out, err := Sketch{}.Export(testInput())
	require.NoError(t, err)

	var list []sketchColor
	require.NoError(t, json.Unmarshal(out, &list))
	require.Len(t, list, 6)
	assert.Equal(t, sketchColor{Name: "Background", Color: "#10152E"}, list[0])
	assert.Equal(t, sketchColor{Name: "Accent 2", Color: "#3FA7D6"}, list[3])
	assert.Equal(t, sketchColor{Name: "Followed Link", Color: "#CC0000"}, list[5])
}

func TestHexList(t *testing.T) {
	out, err := HexList{}.Export(Input{Palette: palette.Palette{red, sky}})
	require.NoError(t, err)
	assert.Equal(t, "#FF0000\n#3FA7D6\n", string(out))

	_, err = HexList{}.Export(Input{})
	assert.ErrorIs(t, err, colors.ErrInvalidInput)
}

func TestPNG(t *testing.T) {
	exp := PNG{Now: func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }}
	out, err := exp.Export(testInput())
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 1100, 290), img.Bounds())

	at := func(x, y int) color.NRGBA {
		return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	}
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, at(105, 130))
	assert.Equal(t, color.NRGBA{R: 63, G: 167, B: 214, A: 255}, at(283, 130))
	assert.Equal(t, sheetBackground, at(2, 2))
	assert.NotEqual(t, color.NRGBA{R: 255, A: 255}, at(24, 90), "swatch edge is stroked")

	_, err = exp.Export(Input{Theme: testTheme()})
	assert.ErrorIs(t, err, colors.ErrInvalidInput)
}

func TestSheetLayout(t *testing.T) {
	assert.Equal(t, 162, SwatchWidth)

	tests := []struct {
		n      int
		height int
	}{
		{n: 1, height: 290},
		{n: 6, height: 290},
		{n: 7, height: 420},
		{n: 13, height: 550},
	}
	for _, tt := range tests {
		w, h := SheetSize(tt.n)
		assert.Equal(t, 1100, w)
		assert.Equal(t, tt.height, h, "n=%d", tt.n)
	}

	assert.Equal(t, image.Pt(24, 90), SwatchOrigin(0))
	assert.Equal(t, image.Pt(202, 90), SwatchOrigin(1))
	assert.Equal(t, image.Pt(24, 224), SwatchOrigin(6))
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"css", "json", "powerbi", "office", "tailwind", "figma", "sketch", "hex", "png", "CSS"} {
		_, ok := Lookup(name)
		assert.True(t, ok, name)
	}
	_, ok := Lookup("gpl")
	assert.False(t, ok)

	assert.Equal(t, []string{"css", "figma", "hex", "json", "office", "png", "powerbi", "sketch", "tailwind"}, Names())
}

func TestRender(t *testing.T) {
	files, err := Default().Render(testInput(), []string{"css", "powerbi", "office"})
	require.NoError(t, err)
	assert.Len(t, files, 3)
	assert.Contains(t, files, "palette.css")
	assert.Contains(t, files, "palette-powerbi.json")
	assert.Contains(t, files, "office-theme.xml")

	_, err = Default().Render(testInput(), []string{"css", "gpl"})
	assert.ErrorIs(t, err, colors.ErrConfiguration)

	_, err = Default().Render(Input{}, []string{"css"})
	assert.ErrorIs(t, err, colors.ErrInvalidInput)
}

func TestRenderVariant(t *testing.T) {
	files, err := Default().RenderVariant(testInput(), []string{"powerbi", "office"}, theme.Light)
	require.NoError(t, err)
	assert.Contains(t, files, "palette-light-powerbi.json")
	assert.Contains(t, files, "palette-light-office-theme.xml")
}

func TestVariantFilename(t *testing.T) {
	tests := []struct {
		name     string
		mode     theme.Mode
		expected string
	}{
		{name: "palette.css", mode: theme.Light, expected: "palette-light.css"},
		{name: "palette-powerbi.json", mode: theme.Light, expected: "palette-light-powerbi.json"},
		{name: "office-theme.xml", mode: theme.Dark, expected: "palette-dark-office-theme.xml"},
		{name: "theme.json", mode: theme.Dark, expected: "palette-dark-theme.json"},
		{name: "palettes.txt", mode: theme.Dark, expected: "palette-dark-palettes.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, VariantFilename(tt.name, tt.mode))
		})
	}
}

func TestWrite(t *testing.T) {
	fs := afero.NewMemMapFs()
	files := map[string][]byte{
		"palette.txt": []byte("#FF0000\n"),
		"palette.css": []byte(":root{}\n"),
	}

	paths, err := Write(fs, "/out/themes", files)
	require.NoError(t, err)
	assert.Equal(t, []string{"/out/themes/palette.css", "/out/themes/palette.txt"}, paths)

	data, err := afero.ReadFile(fs, "/out/themes/palette.txt")
	require.NoError(t, err)
	assert.Equal(t, "#FF0000\n", string(data))
}

func TestWriteReadOnly(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	_, err := Write(fs, "/out", map[string][]byte{"a.txt": nil})
	assert.Error(t, err)
}

func assertOrdered(t *testing.T, s string, parts ...string) {
	t.Helper()
	last := -1
	for _, p := range parts {
		idx := strings.Index(s, p)
		require.NotEqual(t, -1, idx, "missing %s", p)
		assert.Greater(t, idx, last, "%s out of order", p)
		last = idx
	}
}
