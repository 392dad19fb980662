package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/darkawower/palettegen/internal/colors"
	"github.com/darkawower/palettegen/internal/theme"
)

// ThemeName is the display name written into exported themes.
const ThemeName = "Palette Generator Theme"

type roleSource interface {
	Variables() []theme.Role
}

// CSS renders custom properties on :root.
type CSS struct{}

func (CSS) Name() string        { return "css" }
func (CSS) Description() string { return "CSS custom properties" }
func (CSS) Filename() string    { return "palette.css" }

func (CSS) Export(in Input) ([]byte, error) {
	if err := in.requireTheme(); err != nil {
		return nil, err
	}
	var b strings.Builder
	b.WriteString(":root{\n")
	for _, v := range in.Theme.Variables() {
		fmt.Fprintf(&b, "  --%s: %s;\n", v.Key, v.Color.Hex())
	}
	b.WriteString("}\n")
	return []byte(b.String()), nil
}

// RoleJSON renders a flat role to hex map.
type RoleJSON struct{}

func (RoleJSON) Name() string        { return "json" }
func (RoleJSON) Description() string { return "Flat JSON map of color roles" }
func (RoleJSON) Filename() string    { return "theme.json" }

func (RoleJSON) Export(in Input) ([]byte, error) {
	if err := in.requireTheme(); err != nil {
		return nil, err
	}
	raw, err := compactObject(hexFields(in.Theme))
	if err != nil {
		return nil, fmt.Errorf("failed to encode roles: %w", err)
	}
	out, err := indentJSON(raw, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

var defaultTableAccent = colors.RGB{R: 0, G: 122, B: 204}

type powerBITheme struct {
	Name        string   `json:"name"`
	Foreground  string   `json:"foreground"`
	Background  string   `json:"background"`
	TableAccent string   `json:"tableAccent"`
	DataColors  []string `json:"dataColors"`
}

// PowerBI renders a Power BI report theme.
type PowerBI struct{}

func (PowerBI) Name() string        { return "powerbi" }
func (PowerBI) Description() string { return "Power BI report theme JSON" }
func (PowerBI) Filename() string    { return "palette-powerbi.json" }

func (PowerBI) Export(in Input) ([]byte, error) {
	if err := in.requireTheme(); err != nil {
		return nil, err
	}
	t := in.Theme

	tableAccent := t.Accent(2, t.Accent(0, defaultTableAccent))
	data := make([]string, len(t.Accents))
	for i, a := range t.Accents {
		data[i] = a.Hex()
	}

	out, err := json.MarshalIndent(powerBITheme{
		Name:        ThemeName,
		Foreground:  t.Foreground.Hex(),
		Background:  t.Background.Hex(),
		TableAccent: tableAccent.Hex(),
		DataColors:  data,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode power bi theme: %w", err)
	}
	return append(out, '\n'), nil
}

// Tailwind renders a tailwind.config.js colour extension.
type Tailwind struct{}

func (Tailwind) Name() string        { return "tailwind" }
func (Tailwind) Description() string { return "Tailwind CSS config colors" }
func (Tailwind) Filename() string    { return "tailwind-colors.js" }

func (Tailwind) Export(in Input) ([]byte, error) {
	if err := in.requireTheme(); err != nil {
		return nil, err
	}
	raw, err := compactObject(hexFields(in.Theme))
	if err != nil {
		return nil, fmt.Errorf("failed to encode colors: %w", err)
	}
	obj, err := indentJSON(raw, "      ", "  ")
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("module.exports = {\n  theme: {\n    extend: {\n      colors: ")
	b.Write(obj)
	b.WriteString("\n    }\n  }\n}\n")
	return []byte(b.String()), nil
}

type figmaToken struct {
	Value string `json:"value"`
	Type  string `json:"type"`
}

// Figma renders design tokens grouped under the theme name.
type Figma struct{}

func (Figma) Name() string        { return "figma" }
func (Figma) Description() string { return "Figma design tokens" }
func (Figma) Filename() string    { return "figma-tokens.json" }

func (Figma) Export(in Input) ([]byte, error) {
	if err := in.requireTheme(); err != nil {
		return nil, err
	}
	vars := in.Theme.Variables()
	tokens := make([]field, len(vars))
	for i, v := range vars {
		tokens[i] = field{key: v.Key, value: figmaToken{Value: v.Color.Hex(), Type: "color"}}
	}

	group, err := compactObject(tokens)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tokens: %w", err)
	}
	raw, err := compactObject([]field{{key: "Palette Generator", value: group}})
	if err != nil {
		return nil, fmt.Errorf("failed to encode tokens: %w", err)
	}
	out, err := indentJSON(raw, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

type sketchColor struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Sketch renders a named colour list.
type Sketch struct{}

func (Sketch) Name() string        { return "sketch" }
func (Sketch) Description() string { return "Sketch color list" }
func (Sketch) Filename() string    { return "sketch-colors.json" }

func (Sketch) Export(in Input) ([]byte, error) {
	if err := in.requireTheme(); err != nil {
		return nil, err
	}
	vars := in.Theme.Variables()
	list := make([]sketchColor, len(vars))
	for i, v := range vars {
		list[i] = sketchColor{Name: v.Label, Color: v.Color.Hex()}
	}
	out, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode sketch colors: %w", err)
	}
	return append(out, '\n'), nil
}

// HexList renders the palette one hex code per line.
type HexList struct{}

func (HexList) Name() string        { return "hex" }
func (HexList) Description() string { return "Plain list of palette hex codes" }
func (HexList) Filename() string    { return "palette.txt" }

func (HexList) Export(in Input) ([]byte, error) {
	if err := in.requirePalette(); err != nil {
		return nil, err
	}
	return []byte(in.Palette.HexList() + "\n"), nil
}
