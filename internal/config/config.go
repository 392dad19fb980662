package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/darkawower/palettegen/internal/colors"
	"github.com/darkawower/palettegen/internal/export"
	"github.com/darkawower/palettegen/internal/harmony"
	"github.com/darkawower/palettegen/internal/palette"
	"github.com/darkawower/palettegen/internal/quantize"
	"github.com/darkawower/palettegen/internal/sample"
	"github.com/darkawower/palettegen/internal/seed"
	"github.com/darkawower/palettegen/internal/theme"
)

const (
	MinColors = 1
	MaxColors = 64
)

type ExtractConfig struct {
	Colors      int                `toml:"colors"`
	Algorithm   quantize.Algorithm `toml:"algorithm"`
	Style       palette.Style      `toml:"style"`
	MaxWidth    int                `toml:"max-width"`
	Stride      int                `toml:"stride"`
	AlphaCutoff int                `toml:"alpha-cutoff"`
	SeedMode    seed.Mode          `toml:"seed-mode"`
	Seed        int64              `toml:"seed"`
}

// SampleOptions returns the sampler settings of this section.
func (e ExtractConfig) SampleOptions() sample.Options {
	return sample.Options{
		MaxWidth:    e.MaxWidth,
		Stride:      e.Stride,
		AlphaCutoff: e.AlphaCutoff,
	}
}

type ThemeConfig struct {
	Mode       theme.Mode     `toml:"mode"`
	Strength   theme.Strength `toml:"strength"`
	Harmony    harmony.Kind   `toml:"harmony"`
	BaseIndex  int            `toml:"base-index"`
	UseHarmony bool           `toml:"use-harmony"`
}

type ExportConfig struct {
	Dir       string   `toml:"dir"`
	Formats   []string `toml:"formats"`
	BothModes bool     `toml:"both-modes"`
}

type FetchConfig struct {
	Timeout   string `toml:"timeout"`
	UserAgent string `toml:"user-agent"`
}

// TimeoutDuration returns the parsed timeout; Validate guarantees it parses.
func (f FetchConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(f.Timeout)
	if err != nil {
		return DefaultFetchTimeout
	}
	return d
}

const DefaultFetchTimeout = 30 * time.Second

type Config struct {
	Extract ExtractConfig `toml:"extract"`
	Theme   ThemeConfig   `toml:"theme"`
	Export  ExportConfig  `toml:"export"`
	Fetch   FetchConfig   `toml:"fetch"`

	configPath string
}

func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "palettegen")
}

func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.toml")
}

func DefaultConfig() *Config {
	return &Config{
		Extract: ExtractConfig{
			Colors:      8,
			Algorithm:   quantize.AlgorithmKMeans,
			Style:       palette.StyleAuto,
			MaxWidth:    sample.DefaultMaxWidth,
			Stride:      sample.DefaultStride,
			AlphaCutoff: sample.DefaultAlphaCutoff,
			SeedMode:    seed.ModeContent,
		},
		Theme: ThemeConfig{
			Mode:     theme.Dark,
			Strength: theme.Normal,
			Harmony:  harmony.KindNone,
		},
		Export: ExportConfig{
			Dir:     ".",
			Formats: []string{"css", "json"},
		},
		Fetch: FetchConfig{
			Timeout:   DefaultFetchTimeout.String(),
			UserAgent: "palettegen",
		},
	}
}

func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	path = expandPath(path)

	cfg := DefaultConfig()
	cfg.configPath = path

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.postProcess()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) postProcess() {
	c.Export.Dir = expandPath(expandEnv(c.Export.Dir))
	for i, f := range c.Export.Formats {
		c.Export.Formats[i] = strings.ToLower(strings.TrimSpace(f))
	}
	if c.Export.Dir == "" {
		c.Export.Dir = "."
	}
}

func (c *Config) Validate() error {
	if err := c.validate(); err != nil {
		return fmt.Errorf("%w: %w", colors.ErrConfiguration, err)
	}
	return nil
}

func (c *Config) validate() error {
	e := c.Extract
	if e.Colors < MinColors || e.Colors > MaxColors {
		return fmt.Errorf("colors must be between %d and %d, got %d", MinColors, MaxColors, e.Colors)
	}
	if _, err := quantize.ParseAlgorithm(string(e.Algorithm)); err != nil {
		return fmt.Errorf("invalid algorithm: %s (must be kmeans, kmeansplus, or median)", e.Algorithm)
	}
	if _, err := palette.ParseStyle(string(e.Style)); err != nil {
		return fmt.Errorf("invalid style: %s (must be auto, vibrant, muted, or balanced)", e.Style)
	}
	if _, err := seed.ParseMode(string(e.SeedMode)); err != nil {
		return fmt.Errorf("invalid seed mode: %s (must be content, location, manual, or random)", e.SeedMode)
	}
	if err := e.SampleOptions().Validate(); err != nil {
		return err
	}

	th := c.Theme
	if _, err := theme.ParseMode(string(th.Mode)); err != nil {
		return fmt.Errorf("invalid theme mode: %s (must be auto, light, or dark)", th.Mode)
	}
	if _, err := theme.ParseStrength(string(th.Strength)); err != nil {
		return fmt.Errorf("invalid strength: %s (must be soft, normal, or bold)", th.Strength)
	}
	if _, err := harmony.ParseKind(string(th.Harmony)); err != nil {
		return fmt.Errorf("invalid harmony: %s", th.Harmony)
	}
	if th.BaseIndex < 0 {
		return fmt.Errorf("base-index must not be negative, got %d", th.BaseIndex)
	}

	for _, f := range c.Export.Formats {
		if _, ok := export.Lookup(f); !ok {
			return fmt.Errorf("unknown export format: %s (valid formats: %s)", f, strings.Join(export.Names(), ", "))
		}
	}

	if _, err := time.ParseDuration(c.Fetch.Timeout); err != nil {
		return fmt.Errorf("invalid fetch timeout: %s", c.Fetch.Timeout)
	}

	return nil
}

func (c *Config) ConfigPath() string {
	return c.configPath
}

func (c *Config) Save(path string) error {
	if path == "" {
		path = c.configPath
	}
	if path == "" {
		path = DefaultConfigPath()
	}

	path = expandPath(path)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

func (c *Config) EnsureDirectories() error {
	dirs := []string{
		filepath.Dir(c.configPath),
		c.Export.Dir,
	}

	for _, dir := range dirs {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

func expandPath(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

func expandEnv(s string) string {
	if s == "" {
		return ""
	}

	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		inner := s[2 : len(s)-1]

		if idx := strings.Index(inner, ":-"); idx != -1 {
			varName := inner[:idx]
			defaultVal := inner[idx+2:]
			if val := os.Getenv(varName); val != "" {
				return val
			}
			return defaultVal
		}

		return os.Getenv(inner)
	}

	if strings.HasPrefix(s, "$") && !strings.Contains(s, " ") {
		return os.Getenv(s[1:])
	}

	return s
}
