// Package export renders a theme and palette into files understood by other
// tools: CSS, design-token JSON, Power BI, Office, Tailwind, Figma, Sketch
// and a PNG swatch sheet.
package export

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"

	"github.com/darkawower/palettegen/internal/colors"
	"github.com/darkawower/palettegen/internal/palette"
	"github.com/darkawower/palettegen/internal/theme"
)

// Input is everything an exporter may draw from.
type Input struct {
	Theme   *theme.Theme
	Palette palette.Palette
}

func (in Input) requireTheme() error {
	if in.Theme == nil {
		return fmt.Errorf("%w: no theme to export (palette is empty)", colors.ErrInvalidInput)
	}
	return nil
}

func (in Input) requirePalette() error {
	if len(in.Palette) == 0 {
		return fmt.Errorf("%w: no palette to export", colors.ErrInvalidInput)
	}
	return nil
}

// Exporter renders one file format.
type Exporter interface {
	// Name is the registry key, e.g. "css".
	Name() string
	// Description is a one-line human summary.
	Description() string
	// Filename is the default output file name.
	Filename() string
	// Export renders the file contents.
	Export(in Input) ([]byte, error)
}

// Registry holds exporters by name.
type Registry struct {
	exporters map[string]Exporter
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{exporters: make(map[string]Exporter)}
}

// Register adds an exporter, replacing any with the same name.
func (r *Registry) Register(e Exporter) {
	r.exporters[e.Name()] = e
}

// Get retrieves an exporter by name.
func (r *Registry) Get(name string) (Exporter, bool) {
	e, ok := r.exporters[strings.ToLower(name)]
	return e, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.exporters))
	for name := range r.exporters {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Render runs the named exporters and returns file name to contents.
func (r *Registry) Render(in Input, names []string) (map[string][]byte, error) {
	return r.render(in, names, func(e Exporter) string { return e.Filename() })
}

// RenderVariant is Render with file names tagged by the theme mode, so the
// light and dark renderings can sit side by side.
func (r *Registry) RenderVariant(in Input, names []string, mode theme.Mode) (map[string][]byte, error) {
	return r.render(in, names, func(e Exporter) string { return VariantFilename(e.Filename(), mode) })
}

func (r *Registry) render(in Input, names []string, filename func(Exporter) string) (map[string][]byte, error) {
	files := make(map[string][]byte, len(names))
	for _, name := range names {
		e, ok := r.Get(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown export format: %s (valid formats: %s)",
				colors.ErrConfiguration, name, strings.Join(r.Names(), ", "))
		}
		data, err := e.Export(in)
		if err != nil {
			return nil, fmt.Errorf("failed to export %s: %w", name, err)
		}
		files[filename(e)] = data
	}
	return files, nil
}

// VariantFilename tags a file name with a mode: "palette.css" becomes
// "palette-dark.css" and "theme.json" becomes "palette-dark-theme.json".
func VariantFilename(name string, mode theme.Mode) string {
	rest, ok := strings.CutPrefix(name, "palette")
	if ok && (strings.HasPrefix(rest, "-") || strings.HasPrefix(rest, ".")) {
		return "palette-" + string(mode) + rest
	}
	return "palette-" + string(mode) + "-" + name
}

var defaultRegistry = func() *Registry {
	r := NewRegistry()
	r.Register(CSS{})
	r.Register(RoleJSON{})
	r.Register(PowerBI{})
	r.Register(Office{})
	r.Register(Tailwind{})
	r.Register(Figma{})
	r.Register(Sketch{})
	r.Register(HexList{})
	r.Register(NewPNG())
	return r
}()

// Default returns the registry with every built-in exporter.
func Default() *Registry {
	return defaultRegistry
}

// Lookup finds a built-in exporter.
func Lookup(name string) (Exporter, bool) {
	return defaultRegistry.Get(name)
}

// Names lists the built-in exporters.
func Names() []string {
	return defaultRegistry.Names()
}

// Write stores files under dir and returns the written paths in sorted order.
func Write(fs afero.Fs, dir string, files map[string][]byte) ([]string, error) {
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	slices.Sort(names)

	written := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := afero.WriteFile(fs, path, files[name], 0644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
