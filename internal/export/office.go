package export

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/darkawower/palettegen/internal/colors"
	"github.com/darkawower/palettegen/internal/theme"
)

//go:embed templates/office.xml.tmpl
var officeFS embed.FS

var officeTemplate = template.Must(template.New("office.xml.tmpl").
	Funcs(template.FuncMap{"inc": func(i int) int { return i + 1 }}).
	ParseFS(officeFS, "templates/office.xml.tmpl"))

// OfficeAccentFallbacks are the stock Office accents used when the theme has
// fewer than six.
var OfficeAccentFallbacks = [6]colors.RGB{
	{R: 0, G: 112, B: 192},
	{R: 112, G: 48, B: 160},
	{R: 255, G: 192, B: 0},
	{R: 255, G: 0, B: 0},
	{R: 112, G: 173, B: 71},
	{R: 0, G: 176, B: 240},
}

type officeData struct {
	Name      string
	Dark2     string
	Light2    string
	Accents   []string
	Hyperlink string
	Followed  string
}

func newOfficeData(t *theme.Theme) officeData {
	accents := make([]string, len(OfficeAccentFallbacks))
	for i, fallback := range OfficeAccentFallbacks {
		accents[i] = t.Accent(i, fallback).HexBare()
	}
	return officeData{
		Name:      ThemeName,
		Dark2:     t.Background.HexBare(),
		Light2:    colors.AdjustLuma(t.Background, 1.4).HexBare(),
		Accents:   accents,
		Hyperlink: t.Hyperlink.HexBare(),
		Followed:  t.Followed.HexBare(),
	}
}

// Office renders an Office theme part (DrawingML theme XML).
type Office struct{}

func (Office) Name() string        { return "office" }
func (Office) Description() string { return "Office theme XML (DrawingML)" }
func (Office) Filename() string    { return "office-theme.xml" }

func (Office) Export(in Input) ([]byte, error) {
	if err := in.requireTheme(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := officeTemplate.Execute(&buf, newOfficeData(in.Theme)); err != nil {
		return nil, fmt.Errorf("failed to render office theme: %w", err)
	}
	return buf.Bytes(), nil
}

// ColorScheme renders only the <a:clrScheme> element, for pasting into an
// existing theme.
func ColorScheme(t *theme.Theme) (string, error) {
	if t == nil {
		return "", fmt.Errorf("%w: no theme to export", colors.ErrInvalidInput)
	}
	var buf bytes.Buffer
	if err := officeTemplate.ExecuteTemplate(&buf, "clrScheme", newOfficeData(t)); err != nil {
		return "", fmt.Errorf("failed to render color scheme: %w", err)
	}
	return buf.String(), nil
}
