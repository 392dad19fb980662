// Package main is the entry point for the palettegen CLI.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/darkawower/palettegen/internal/colors"
	"github.com/darkawower/palettegen/internal/config"
	"github.com/darkawower/palettegen/internal/core"
	"github.com/darkawower/palettegen/internal/export"
	"github.com/darkawower/palettegen/internal/harmony"
	"github.com/darkawower/palettegen/internal/logging"
	"github.com/darkawower/palettegen/internal/sample"
	"github.com/darkawower/palettegen/internal/session"
	"github.com/darkawower/palettegen/internal/source"
	"github.com/darkawower/palettegen/internal/ui"
)

const version = "0.1.0"

var (
	// Global flags
	cfgFile string
	verbose bool
	quiet   bool
	noColor bool

	// Global output
	out *ui.Output
)

func main() {
	rootCmd := newRootCmd()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "palettegen",
		Short: "Extract color palettes from images and derive themes",
		Long: `Palettegen samples an image, clusters its pixels into a palette,
and derives light or dark themes from it. Themes can be exported as CSS,
design tokens, Power BI, Office, Tailwind, Figma, Sketch and PNG sheets.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/palettegen/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(
		newInitCmd(),
		newExtractCmd(),
		newHarmonyCmd(),
		newThemeCmd(),
		newExportCmd(),
		newSampleCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// initOutput initializes the output.
func initOutput() {
	out = ui.DefaultOutput()
	out.SetVerbose(verbose)
	out.SetQuiet(quiet)
	if noColor {
		out.SetNoColor(true)
	}
}

// newEngine loads the config and creates an engine with the given overrides.
func newEngine(opts ...core.Option) (*core.Engine, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	opts = append([]core.Option{core.WithLogger(logging.New("palettegen", os.Stderr, verbose))}, opts...)
	return core.New(cfg, opts...)
}

// extract runs the engine, showing a spinner while a remote image downloads.
func extract(ctx context.Context, engine *core.Engine, location string) (*core.ExtractResult, error) {
	if !source.IsRemote(location) {
		return engine.Extract(ctx, location)
	}
	spinner := ui.NewSpinner(out, "Downloading image...")
	spinner.Start()
	result, err := engine.Extract(ctx, location)
	spinner.Stop()
	return result, err
}

// newInitCmd creates the init command.
func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize palettegen configuration",
		Long:  "Creates the default configuration file and export directory.",
		RunE: func(cmd *cobra.Command, args []string) error {
			initOutput()

			configPath := cfgFile
			if configPath == "" {
				configPath = config.DefaultConfigPath()
			}

			if _, err := os.Stat(configPath); err == nil && !force {
				out.Warning("Configuration already exists at %s", configPath)
				out.Info("Use --force to overwrite")
				return nil
			}

			cfg := config.DefaultConfig()
			if err := cfg.Save(configPath); err != nil {
				out.Error("Failed to write config: %v", err)
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				out.Error("Failed to create directories: %v", err)
				return err
			}

			out.Success("Palettegen initialized")
			out.Field("Config", shortenPath(configPath))
			out.Field("Export dir", cfg.Export.Dir)
			out.Field("Formats", strings.Join(cfg.Export.Formats, ", "))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration")

	return cmd
}

// newExtractCmd creates the extract command.
func newExtractCmd() *cobra.Command {
	var (
		ef     extractFlags
		format outputFormat
	)

	cmd := &cobra.Command{
		Use:   "extract <image|url|dir>",
		Short: "Extract a color palette from an image",
		Long: `Samples the image, clusters its pixels and prints the palette ranked
by the selected style. A directory extracts every supported image in it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			initOutput()

			engine, err := newEngine(ef.options(cmd.Flags())...)
			if err != nil {
				out.ErrorWithHint(err.Error(), "Check the config file or run 'palettegen init'")
				return err
			}

			location := args[0]
			var results []*core.ExtractResult
			if info, statErr := os.Stat(location); statErr == nil && info.IsDir() {
				var progress *ui.Progress
				results, err = engine.ExtractDir(cmd.Context(), location, func(done, total int) {
					if progress == nil {
						progress = ui.NewProgress(out, "Extracting palettes", total)
					}
					progress.Update(done)
				})
				if progress != nil {
					progress.Done()
				}
			} else {
				var r *core.ExtractResult
				r, err = extract(cmd.Context(), engine, location)
				if r != nil {
					results = append(results, r)
				}
			}
			if err != nil {
				out.Error("Failed to extract palette: %v", err)
				return err
			}

			return printResults(cmd, format, results)
		},
	}

	ef.register(cmd.Flags())
	cmd.Flags().Var(newEnum(&format, formatText, parseOutputFormat, "format"), "format", "output format (text|hex|json)")

	return cmd
}

func printResults(cmd *cobra.Command, format outputFormat, results []*core.ExtractResult) error {
	w := cmd.OutOrStdout()
	switch format {
	case formatJSON:
		var payload any = results
		if len(results) == 1 {
			payload = results[0]
		}
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		fmt.Fprintln(w, string(data))
	case formatHex:
		for _, r := range results {
			fmt.Fprintln(w, r.Palette.HexList())
		}
	default:
		for _, r := range results {
			out.Success("Extracted %d colors", len(r.Palette))
			out.Field("Image", shortenPath(r.Location))
			out.Field("Algorithm", string(r.Algorithm))
			out.Field("Style", string(r.Style))
			out.Field("Seed", fmt.Sprint(r.Seed))
			out.Field("Sampled", fmt.Sprintf("%d points from %dx%d", r.Points, r.Width, r.Height))
			out.Print("")
			out.Swatches(r.Palette)
			out.Print("")
		}
	}
	return nil
}

// newHarmonyCmd creates the harmony command.
func newHarmonyCmd() *cobra.Command {
	var kind harmony.Kind

	cmd := &cobra.Command{
		Use:   "harmony <hex>",
		Short: "Generate a color harmony from a base color",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			initOutput()

			base, err := colors.ParseHex(args[0])
			if err != nil {
				out.Error("%v", err)
				return err
			}

			scheme := harmony.Make(base, kind)
			if len(scheme) == 0 {
				out.Warning("Harmony %q produces no colors", kind)
				return nil
			}
			out.Info("%s harmony of %s", kind, base.Hex())
			out.Swatches(scheme)
			return nil
		},
	}

	cmd.Flags().Var(newEnum(&kind, harmony.KindComplementary, harmony.ParseKind, "kind"),
		"kind", "harmony (complementary|analogous|triadic|tetradic|monochrome)")

	return cmd
}

// buildSession extracts the palette at location and applies theme flags and edits.
func buildSession(cmd *cobra.Command, ef *extractFlags, tf *themeFlags, location string) (*core.Engine, *session.Session, error) {
	engine, err := newEngine(ef.options(cmd.Flags())...)
	if err != nil {
		out.ErrorWithHint(err.Error(), "Check the config file or run 'palettegen init'")
		return nil, nil, err
	}

	r, err := extract(cmd.Context(), engine, location)
	if err != nil {
		out.Error("Failed to extract palette: %v", err)
		return nil, nil, err
	}

	s := engine.NewSession(r, tf.settings(cmd.Flags(), engine.Settings()))
	if err := tf.edit(s); err != nil {
		out.Error("Failed to edit palette: %v", err)
		return nil, nil, err
	}
	return engine, s, nil
}

// newThemeCmd creates the theme command.
func newThemeCmd() *cobra.Command {
	var (
		ef     extractFlags
		tf     themeFlags
		scheme bool
	)

	cmd := &cobra.Command{
		Use:   "theme <image|url>",
		Short: "Derive a theme from an image palette",
		Long: `Extracts the palette, applies any edits, and derives a theme with a
background, foreground, accents and link colors.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			initOutput()

			_, s, err := buildSession(cmd, &ef, &tf, args[0])
			if err != nil {
				return err
			}

			th := s.Theme()
			if scheme {
				frag, err := export.ColorScheme(th)
				if err != nil {
					out.Error("%v", err)
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), frag)
				return nil
			}

			return printTheme(s)
		},
	}

	ef.register(cmd.Flags())
	tf.register(cmd.Flags())
	cmd.Flags().BoolVar(&scheme, "office-scheme", false, "print only the Office <a:clrScheme> fragment")

	return cmd
}

func printTheme(s *session.Session) error {
	th := s.Theme()
	if th == nil {
		err := fmt.Errorf("%w: palette is empty", colors.ErrEmptySample)
		out.Error("%v", err)
		return err
	}

	settings := s.Settings()
	out.Success("%s theme (%s)", th.Mode, th.Strength)
	out.Print("")
	out.Print("Palette")
	out.Swatches(s.Palette())
	if h := s.Harmony(); len(h) > 0 {
		out.Print("")
		out.Print("Harmony (%s, base %d)", settings.Harmony, settings.BaseIndex)
		out.Swatches(h)
	}
	out.Print("")
	out.Roles(th)
	out.Field("Surface", th.Surface().Hex())
	return nil
}

// newExportCmd creates the export command.
func newExportCmd() *cobra.Command {
	var (
		ef        extractFlags
		tf        themeFlags
		formats   []string
		dir       string
		bothModes bool
	)

	cmd := &cobra.Command{
		Use:   "export <image|url>",
		Short: "Export a derived theme to files",
		Long: fmt.Sprintf(`Derives a theme from the image and writes it in the selected formats.

Formats: %s`, strings.Join(export.Names(), ", ")),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			initOutput()

			engine, s, err := buildSession(cmd, &ef, &tf, args[0])
			if err != nil {
				return err
			}

			exportCfg := engine.Config().Export
			if cmd.Flags().Changed("format") {
				exportCfg.Formats = formats
			}
			if cmd.Flags().Changed("dir") {
				exportCfg.Dir = dir
			}
			if cmd.Flags().Changed("both") {
				exportCfg.BothModes = bothModes
			}

			result, err := engine.Export(s, exportCfg.Formats, exportCfg.Dir, exportCfg.BothModes)
			if err != nil {
				out.Error("Failed to export: %v", err)
				return err
			}

			out.Success("Exported %d files", len(result.Paths))
			for _, p := range result.Paths {
				out.Print("  %s %s", ui.SymbolArrow, shortenPath(p))
			}
			return nil
		},
	}

	ef.register(cmd.Flags())
	tf.register(cmd.Flags())
	cmd.Flags().StringSliceVarP(&formats, "format", "f", nil, "export formats, repeatable")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "output directory")
	cmd.Flags().BoolVar(&bothModes, "both", false, "write light and dark variants")

	return cmd
}

// newSampleCmd creates the sample command.
func newSampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sample <out.png>",
		Short: "Write the built-in sample image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			initOutput()

			if err := writeSample(afero.NewOsFs(), args[0]); err != nil {
				out.Error("Failed to write sample: %v", err)
				return err
			}
			out.Success("Sample image written")
			out.Field("File", shortenPath(args[0]))
			return nil
		},
	}
}

func writeSample(fs afero.Fs, path string) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, sample.Synthetic()); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return afero.WriteFile(fs, path, buf.Bytes(), 0644)
}

// newVersionCmd creates the version command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			initOutput()
			out.Print("palettegen version %s", version)
		},
	}
}

// shortenPath shortens a path for display.
func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if len(path) > len(home) && path[:len(home)] == home {
		return "~" + path[len(home):]
	}
	return path
}
