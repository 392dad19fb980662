package main

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/darkawower/palettegen/internal/colors"
	"github.com/darkawower/palettegen/internal/core"
	"github.com/darkawower/palettegen/internal/harmony"
	"github.com/darkawower/palettegen/internal/palette"
	"github.com/darkawower/palettegen/internal/quantize"
	"github.com/darkawower/palettegen/internal/seed"
	"github.com/darkawower/palettegen/internal/session"
	"github.com/darkawower/palettegen/internal/theme"
)

// enumValue is a pflag.Value that only accepts names its parser knows.
type enumValue[T ~string] struct {
	target   *T
	parse    func(string) (T, error)
	typeName string
}

func newEnum[T ~string](target *T, def T, parse func(string) (T, error), typeName string) pflag.Value {
	*target = def
	return &enumValue[T]{target: target, parse: parse, typeName: typeName}
}

func (v *enumValue[T]) String() string { return string(*v.target) }
func (v *enumValue[T]) Type() string   { return v.typeName }

func (v *enumValue[T]) Set(s string) error {
	parsed, err := v.parse(s)
	if err != nil {
		return err
	}
	*v.target = parsed
	return nil
}

// Output formats of the extract command.
type outputFormat string

const (
	formatText outputFormat = "text"
	formatHex  outputFormat = "hex"
	formatJSON outputFormat = "json"
)

func parseOutputFormat(s string) (outputFormat, error) {
	f := outputFormat(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains([]outputFormat{formatText, formatHex, formatJSON}, f) {
		return f, nil
	}
	return "", fmt.Errorf("%w: unknown output format %q (must be text, hex, or json)", colors.ErrConfiguration, s)
}

// extractFlags override the [extract] config section.
type extractFlags struct {
	colors    int
	algorithm quantize.Algorithm
	style     palette.Style
	seed      int64
	seedMode  seed.Mode
}

func (f *extractFlags) register(fs *pflag.FlagSet) {
	fs.IntVarP(&f.colors, "colors", "k", 8, "number of colors to extract")
	fs.VarP(newEnum(&f.algorithm, quantize.AlgorithmKMeans, quantize.ParseAlgorithm, "algorithm"),
		"algorithm", "a", "quantizer (kmeans|kmeansplus|median)")
	fs.VarP(newEnum(&f.style, palette.StyleAuto, palette.ParseStyle, "style"),
		"style", "s", "ranking style (auto|vibrant|muted|balanced)")
	fs.Int64Var(&f.seed, "seed", 0, "fixed clustering seed")
	fs.Var(newEnum(&f.seedMode, seed.ModeContent, seed.ParseMode, "mode"),
		"seed-mode", "seed mode (content|location|manual|random)")
}

// options returns engine options for the flags set on the command line.
func (f *extractFlags) options(fs *pflag.FlagSet) []core.Option {
	var opts []core.Option
	if fs.Changed("colors") {
		opts = append(opts, core.WithColors(f.colors))
	}
	if fs.Changed("algorithm") {
		opts = append(opts, core.WithAlgorithm(f.algorithm))
	}
	if fs.Changed("style") {
		opts = append(opts, core.WithStyle(f.style))
	}
	if fs.Changed("seed-mode") {
		opts = append(opts, core.WithSeedMode(f.seedMode))
	}
	if fs.Changed("seed") {
		opts = append(opts, core.WithSeed(f.seed))
	}
	return opts
}

// themeFlags override the [theme] config section and describe palette edits.
type themeFlags struct {
	mode       theme.Mode
	strength   theme.Strength
	harmony    harmony.Kind
	base       int
	useHarmony bool

	sort    session.SortKey
	shuffle bool
	add     []string
	remove  []int
	replace []string
}

func (f *themeFlags) register(fs *pflag.FlagSet) {
	fs.Var(newEnum(&f.mode, theme.Dark, theme.ParseMode, "mode"), "mode", "theme mode (light|dark|auto)")
	fs.Var(newEnum(&f.strength, theme.Normal, theme.ParseStrength, "strength"), "strength", "background strength (soft|normal|bold)")
	fs.Var(newEnum(&f.harmony, harmony.KindNone, harmony.ParseKind, "kind"),
		"harmony", "harmony (none|complementary|analogous|triadic|tetradic|monochrome)")
	fs.IntVar(&f.base, "base", 0, "palette index of the harmony base color")
	fs.BoolVar(&f.useHarmony, "use-harmony", false, "derive the theme from the harmony instead of the palette")

	fs.Var(newEnum(&f.sort, "", session.ParseSortKey, "key"), "sort", "sort palette (hue|saturation|lightness)")
	fs.BoolVar(&f.shuffle, "shuffle", false, "shuffle the palette")
	fs.StringSliceVar(&f.add, "add", nil, "append a color (#RRGGBB or 'random'), repeatable")
	fs.IntSliceVar(&f.remove, "remove", nil, "remove the color at an index, repeatable")
	fs.StringSliceVar(&f.replace, "replace", nil, "replace a color, INDEX=#RRGGBB, repeatable")
}

// settings overlays the flags set on the command line onto base.
func (f *themeFlags) settings(fs *pflag.FlagSet, base session.Settings) session.Settings {
	if fs.Changed("mode") {
		base.Mode = f.mode
	}
	if fs.Changed("strength") {
		base.Strength = f.strength
	}
	if fs.Changed("harmony") {
		base.Harmony = f.harmony
	}
	if fs.Changed("base") {
		base.BaseIndex = f.base
	}
	if fs.Changed("use-harmony") {
		base.UseHarmony = f.useHarmony
	}
	return base
}

// edit applies the palette edits in order: replace, remove, add, sort,
// shuffle. Removals run from the highest index down so indexes refer to the
// extracted palette.
func (f *themeFlags) edit(s *session.Session) error {
	for _, r := range f.replace {
		i, hex, err := parseReplace(r)
		if err != nil {
			return err
		}
		if err := s.ReplaceHex(i, hex); err != nil {
			return err
		}
	}

	remove := slices.Clone(f.remove)
	slices.Sort(remove)
	slices.Reverse(remove)
	for _, i := range slices.Compact(remove) {
		if err := s.Remove(i); err != nil {
			return err
		}
	}

	for _, a := range f.add {
		if strings.EqualFold(a, "random") {
			s.AddRandom()
			continue
		}
		c, err := colors.ParseHex(a)
		if err != nil {
			return err
		}
		s.Add(c)
	}

	if f.sort != "" {
		if err := s.Sort(f.sort); err != nil {
			return err
		}
	}
	if f.shuffle {
		s.Shuffle()
	}
	return nil
}

// parseReplace splits "INDEX=#RRGGBB".
func parseReplace(v string) (int, string, error) {
	idx, hex, ok := strings.Cut(v, "=")
	if !ok {
		return 0, "", fmt.Errorf("%w: replace expects INDEX=#RRGGBB, got %q", colors.ErrInvalidInput, v)
	}
	i, err := strconv.Atoi(strings.TrimSpace(idx))
	if err != nil {
		return 0, "", fmt.Errorf("%w: invalid index %q", colors.ErrInvalidInput, idx)
	}
	return i, strings.TrimSpace(hex), nil
}
