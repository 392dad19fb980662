// Package ui provides terminal output for palettegen.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/darkawower/palettegen/internal/colors"
	"github.com/darkawower/palettegen/internal/theme"
)

// Terminal palette for message kinds.
var (
	Green  = lipgloss.Color("2")
	Red    = lipgloss.Color("1")
	Yellow = lipgloss.Color("3")
	Blue   = lipgloss.Color("4")
	Cyan   = lipgloss.Color("6")
	Gray   = lipgloss.Color("8")
)

// Symbols for different message types
const (
	SymbolSuccess = "✔"
	SymbolError   = "✖"
	SymbolWarning = "⚠"
	SymbolInfo    = "ℹ"
	SymbolArrow   = "→"
	SymbolBullet  = "•"
)

// Output wraps an io.Writer with UI utilities.
type Output struct {
	w        io.Writer
	renderer *lipgloss.Renderer
	noColor  bool
	quiet    bool
	verbose  bool
}

// NewOutput creates a new Output.
func NewOutput(w io.Writer) *Output {
	return &Output{w: w, renderer: lipgloss.NewRenderer(w)}
}

// DefaultOutput creates an Output for stdout. Colour is off when stdout is
// not a terminal or NO_COLOR is set.
func DefaultOutput() *Output {
	o := NewOutput(os.Stdout)
	o.SetNoColor(!IsTerminal(os.Stdout) || os.Getenv("NO_COLOR") != "")
	return o
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// SetNoColor disables colors.
func (o *Output) SetNoColor(noColor bool) {
	o.noColor = noColor
}

// SetQuiet enables quiet mode (only errors).
func (o *Output) SetQuiet(quiet bool) {
	o.quiet = quiet
}

// SetVerbose enables verbose mode.
func (o *Output) SetVerbose(verbose bool) {
	o.verbose = verbose
}

// Quiet reports whether quiet mode is on.
func (o *Output) Quiet() bool {
	return o.quiet
}

// Writer returns the underlying writer.
func (o *Output) Writer() io.Writer {
	return o.w
}

func (o *Output) style() lipgloss.Style {
	return o.renderer.NewStyle()
}

// color applies a foreground colour if enabled.
func (o *Output) color(c lipgloss.TerminalColor, text string) string {
	if o.noColor {
		return text
	}
	return o.style().Foreground(c).Render(text)
}

func (o *Output) bold(text string) string {
	if o.noColor {
		return text
	}
	return o.style().Bold(true).Render(text)
}

// Success prints a success message.
func (o *Output) Success(format string, args ...any) {
	if o.quiet {
		return
	}
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(o.w, "%s %s\n", o.color(Green, SymbolSuccess), msg)
}

// Error prints an error message.
func (o *Output) Error(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(o.w, "%s %s\n", o.color(Red, SymbolError), msg)
}

// ErrorWithHint prints an error message with a hint.
func (o *Output) ErrorWithHint(err, hint string) {
	fmt.Fprintf(o.w, "%s %s\n", o.color(Red, SymbolError), err)
	fmt.Fprintf(o.w, "  %s %s\n", o.color(Gray, "Hint:"), hint)
}

// Warning prints a warning message.
func (o *Output) Warning(format string, args ...any) {
	if o.quiet {
		return
	}
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(o.w, "%s %s\n", o.color(Yellow, SymbolWarning), msg)
}

// Info prints an info message.
func (o *Output) Info(format string, args ...any) {
	if o.quiet {
		return
	}
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(o.w, "%s %s\n", o.color(Blue, SymbolInfo), msg)
}

// Print prints a plain message.
func (o *Output) Print(format string, args ...any) {
	if o.quiet {
		return
	}
	fmt.Fprintf(o.w, format+"\n", args...)
}

// Debug prints a debug message (only in verbose mode).
func (o *Output) Debug(format string, args ...any) {
	if !o.verbose {
		return
	}
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(o.w, "%s %s\n", o.color(Gray, "[DEBUG]"), msg)
}

// Field prints a labeled field.
func (o *Output) Field(label, value string) {
	if o.quiet {
		return
	}
	fmt.Fprintf(o.w, "  %s %s\n", o.color(Gray, label+":"), value)
}

// Table prints a simple table.
func (o *Output) Table(headers []string, rows [][]string) {
	if o.quiet {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	line := func(cells []string) string {
		var b strings.Builder
		for i, cell := range cells {
			if i >= len(widths) {
				break
			}
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)+2))
		}
		return strings.TrimRight(b.String(), " ")
	}

	fmt.Fprintln(o.w, o.bold(line(headers)))
	seps := make([]string, len(widths))
	for i, w := range widths {
		seps[i] = strings.Repeat("-", w)
	}
	fmt.Fprintln(o.w, o.color(Gray, line(seps)))
	for _, row := range rows {
		fmt.Fprintln(o.w, line(row))
	}
}

// Block renders a two-cell swatch filled with c, or nothing without colour.
func (o *Output) Block(c colors.RGB) string {
	if o.noColor {
		return ""
	}
	return o.style().Background(lipgloss.Color(c.Hex())).Render("  ")
}

// Chip renders text on a background of c using a readable ink.
func (o *Output) Chip(c colors.RGB, text string) string {
	if o.noColor {
		return text
	}
	return o.style().
		Background(lipgloss.Color(c.Hex())).
		Foreground(lipgloss.Color(theme.TextOn(c).Hex())).
		Padding(0, 1).
		Render(text)
}

// ColorSwatch prints a color swatch.
func (o *Output) ColorSwatch(c colors.RGB) {
	if o.quiet {
		return
	}
	if block := o.Block(c); block != "" {
		fmt.Fprintf(o.w, "%s %s\n", block, c.Hex())
		return
	}
	fmt.Fprintln(o.w, c.Hex())
}

// Swatches prints an indexed palette.
func (o *Output) Swatches(p []colors.RGB) {
	if o.quiet {
		return
	}
	for i, c := range p {
		hsl := colors.ToHSL(c)
		line := fmt.Sprintf("%2d  %s  %s", i, c.Hex(),
			o.color(Gray, fmt.Sprintf("hsl(%.0f, %.0f%%, %.0f%%)", hsl.H, hsl.S, hsl.L)))
		if block := o.Block(c); block != "" {
			line = block + " " + line
		}
		fmt.Fprintln(o.w, line)
	}
}

// Roles prints the theme role grid.
func (o *Output) Roles(t *theme.Theme) {
	if o.quiet || t == nil {
		return
	}
	roles := t.Roles()
	rows := make([][]string, len(roles))
	for i, r := range roles {
		rows[i] = []string{r.Label, r.Color.Hex(), o.Chip(r.Color, "Aa")}
	}
	o.Table([]string{"ROLE", "HEX", "SAMPLE"}, rows)
}

// Spinner represents a CLI spinner.
type Spinner struct {
	out      *Output
	message  string
	frames   []string
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

// NewSpinner creates a new spinner.
func NewSpinner(out *Output, message string) *Spinner {
	return &Spinner{
		out:      out,
		message:  message,
		frames:   []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		interval: 80 * time.Millisecond,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start starts the spinner.
func (s *Spinner) Start() {
	if s.out.quiet {
		return
	}

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for i := 0; ; i++ {
			frame := s.frames[i%len(s.frames)]
			fmt.Fprintf(s.out.w, "\r%s %s", s.out.color(Cyan, frame), s.message)
			select {
			case <-s.stop:
				fmt.Fprintf(s.out.w, "\r%s\r", strings.Repeat(" ", lipgloss.Width(s.message)+4))
				return
			case <-ticker.C:
			}
		}
	}()
}

// Stop stops the spinner.
func (s *Spinner) Stop() {
	if s.out.quiet {
		return
	}
	close(s.stop)
	<-s.done
}

// Progress represents a progress bar.
type Progress struct {
	out     *Output
	message string
	current int
	total   int
}

// NewProgress creates a new progress indicator.
func NewProgress(out *Output, message string, total int) *Progress {
	return &Progress{
		out:     out,
		message: message,
		total:   total,
	}
}

// Update updates the progress.
func (p *Progress) Update(current int) {
	if p.out.quiet {
		return
	}
	p.current = current
	fmt.Fprintf(p.out.w, "\r%s (%d/%d)", p.message, current, p.total)
}

// Done completes the progress.
func (p *Progress) Done() {
	if p.out.quiet {
		return
	}
	fmt.Fprintf(p.out.w, "\r%s\r", strings.Repeat(" ", len(p.message)+20))
}
