package core

import (
	"context"
	"fmt"
	"image"
	"maps"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"

	"github.com/darkawower/palettegen/internal/colors"
	"github.com/darkawower/palettegen/internal/config"
	"github.com/darkawower/palettegen/internal/export"
	"github.com/darkawower/palettegen/internal/logging"
	"github.com/darkawower/palettegen/internal/palette"
	"github.com/darkawower/palettegen/internal/quantize"
	"github.com/darkawower/palettegen/internal/sample"
	"github.com/darkawower/palettegen/internal/seed"
	"github.com/darkawower/palettegen/internal/session"
	"github.com/darkawower/palettegen/internal/source"
	"github.com/darkawower/palettegen/internal/theme"
)

// Engine runs the extraction pipeline: load, sample, cluster, rank.
type Engine struct {
	config   *config.Config
	log      hclog.Logger
	fs       afero.Fs
	loader   *source.Loader
	registry *export.Registry

	colors    int
	algorithm quantize.Algorithm
	style     palette.Style
	seed      seed.Config
}

// Option is a function that configures the Engine.
type Option func(*Engine)

// WithLogger sets the diagnostic logger.
func WithLogger(log hclog.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// WithFs sets the filesystem images are read from and exports written to.
func WithFs(fs afero.Fs) Option {
	return func(e *Engine) {
		e.fs = fs
	}
}

// WithLoader replaces the image loader.
func WithLoader(l *source.Loader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithColors overrides the number of clusters.
func WithColors(n int) Option {
	return func(e *Engine) {
		e.colors = n
	}
}

// WithAlgorithm overrides the quantizer.
func WithAlgorithm(alg quantize.Algorithm) Option {
	return func(e *Engine) {
		e.algorithm = alg
	}
}

// WithStyle overrides the ranking style.
func WithStyle(style palette.Style) Option {
	return func(e *Engine) {
		e.style = style
	}
}

// WithSeed fixes the clustering seed.
func WithSeed(v int64) Option {
	return func(e *Engine) {
		e.seed = seed.Config{Mode: seed.ModeManual, Value: v}
	}
}

// WithSeedMode overrides how the seed is chosen.
func WithSeedMode(m seed.Mode) Option {
	return func(e *Engine) {
		e.seed.Mode = m
	}
}

// New creates an Engine. A nil config means defaults.
func New(cfg *config.Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	e := &Engine{
		config:    cfg,
		log:       logging.Discard(),
		fs:        afero.NewOsFs(),
		registry:  export.Default(),
		colors:    cfg.Extract.Colors,
		algorithm: cfg.Extract.Algorithm,
		style:     cfg.Extract.Style,
		seed:      seed.Config{Mode: cfg.Extract.SeedMode, Value: cfg.Extract.Seed},
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.loader == nil {
		e.loader = source.NewLoader(
			source.WithFs(e.fs),
			source.WithTimeout(cfg.Fetch.TimeoutDuration()),
			source.WithUserAgent(cfg.Fetch.UserAgent),
		)
	}

	if e.colors < config.MinColors || e.colors > config.MaxColors {
		return nil, fmt.Errorf("%w: colors must be between %d and %d, got %d",
			colors.ErrConfiguration, config.MinColors, config.MaxColors, e.colors)
	}
	if _, err := quantize.ParseAlgorithm(string(e.algorithm)); err != nil {
		return nil, err
	}
	if _, err := palette.ParseStyle(string(e.style)); err != nil {
		return nil, err
	}
	if _, err := seed.ParseMode(string(e.seed.Mode)); err != nil {
		return nil, err
	}

	return e, nil
}

// Extract loads the image at location and extracts its palette.
func (e *Engine) Extract(ctx context.Context, location string) (*ExtractResult, error) {
	img, err := e.loader.Load(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}
	e.log.Debug("loaded image", "location", location, "format", img.Format,
		"width", img.Image.Bounds().Dx(), "height", img.Image.Bounds().Dy())
	return e.ExtractImage(ctx, img.Image, location)
}

// ExtractImage extracts the palette of an already decoded image.
func (e *Engine) ExtractImage(ctx context.Context, img image.Image, location string) (*ExtractResult, error) {
	start := time.Now()

	seedValue, err := seed.Resolve(e.seed, img, location)
	if err != nil {
		return nil, err
	}

	points, canvas, err := sample.FromImage(img, e.config.Extract.SampleOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to sample image: %w", err)
	}
	e.log.Debug("sampled image", "width", canvas.Rect.Dx(), "height", canvas.Rect.Dy(), "points", len(points))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if e.algorithm == quantize.AlgorithmKMeansPlus {
		e.log.Debug("kmeansplus runs the kmeans routine")
	}
	q, err := quantize.New(e.algorithm, seed.NewRand(seedValue))
	if err != nil {
		return nil, err
	}
	weighted, err := q.Quantize(points, e.colors)
	if err != nil {
		return nil, fmt.Errorf("failed to quantize: %w", err)
	}

	result := &ExtractResult{
		Location:  location,
		Palette:   palette.ApplyStyle(weighted, e.style),
		Weighted:  weighted,
		Points:    len(points),
		Algorithm: e.algorithm,
		Style:     e.style,
		Seed:      seedValue,
		Width:     canvas.Rect.Dx(),
		Height:    canvas.Rect.Dy(),
		Duration:  time.Since(start),
	}
	e.log.Debug("extracted palette", "algorithm", e.algorithm, "style", e.style,
		"seed", seedValue, "clusters", len(weighted), "elapsed", result.Duration)
	return result, nil
}

// ExtractDir extracts the palette of every supported image directly inside
// dir. progress, when set, is called after each image.
func (e *Engine) ExtractDir(ctx context.Context, dir string, progress func(done, total int)) ([]*ExtractResult, error) {
	paths, err := e.loader.List(dir)
	if err != nil {
		return nil, err
	}

	results := make([]*ExtractResult, 0, len(paths))
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		r, err := e.Extract(ctx, path)
		if err != nil {
			return results, fmt.Errorf("%s: %w", path, err)
		}
		results = append(results, r)
		if progress != nil {
			progress(i+1, len(paths))
		}
	}
	return results, nil
}

// Settings returns the session settings from the theme section of the config.
func (e *Engine) Settings() session.Settings {
	th := e.config.Theme
	return session.Settings{
		Harmony:    th.Harmony,
		BaseIndex:  th.BaseIndex,
		UseHarmony: th.UseHarmony,
		Mode:       th.Mode,
		Strength:   th.Strength,
	}
}

// NewSession starts an editing session around the extracted palette.
func (e *Engine) NewSession(r *ExtractResult, settings session.Settings) *session.Session {
	return session.New(r.Palette, settings, seed.NewRand(r.Seed))
}

// Export renders formats for the session theme and writes them to dir. With
// bothModes set, light and dark renderings are written side by side.
func (e *Engine) Export(s *session.Session, formats []string, dir string, bothModes bool) (*ExportResult, error) {
	if len(formats) == 0 {
		return nil, fmt.Errorf("%w: no export formats selected", colors.ErrConfiguration)
	}

	var files map[string][]byte
	var err error
	if bothModes {
		files, err = e.renderBoth(s, formats)
	} else {
		files, err = e.registry.Render(export.Input{Theme: s.Theme(), Palette: s.Palette()}, formats)
	}
	if err != nil {
		return nil, err
	}

	paths, err := export.Write(e.fs, dir, files)
	if err != nil {
		return nil, err
	}
	e.log.Debug("exported theme", "dir", dir, "files", len(paths))
	return &ExportResult{Dir: dir, Paths: paths}, nil
}

func (e *Engine) renderBoth(s *session.Session, formats []string) (map[string][]byte, error) {
	accents := s.AccentSource()
	strength := s.Settings().Strength
	pal := s.Palette()

	files := make(map[string][]byte)
	for _, mode := range []theme.Mode{theme.Light, theme.Dark} {
		in := export.Input{Theme: theme.Derive(accents, mode, strength), Palette: pal}
		rendered, err := e.registry.RenderVariant(in, formats, mode)
		if err != nil {
			return nil, err
		}
		maps.Copy(files, rendered)
	}
	return files, nil
}

// Config returns the current config.
func (e *Engine) Config() *config.Config {
	return e.config
}
