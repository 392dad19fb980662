// Package logging builds the hclog loggers used across palettegen.
package logging

import (
	"io"

	"github.com/hashicorp/go-hclog"
)

// New returns a logger writing to w. Debug output is only emitted when
// verbose is set; otherwise the logger is silent.
func New(name string, w io.Writer, verbose bool) hclog.Logger {
	if !verbose {
		return Discard()
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   name,
		Output: w,
		Level:  hclog.Debug,
	})
}

// Discard returns a logger that drops everything.
func Discard() hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Output: io.Discard,
		Level:  hclog.Off,
	})
}
