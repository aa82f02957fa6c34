package ui

import (
	"io"

	"github.com/pterm/pterm"
)

// NewLogger returns the structured logger shared by the run. debug wins over quiet.
func NewLogger(w io.Writer, debug, quiet bool) *pterm.Logger {
	level := pterm.LogLevelInfo
	switch {
	case debug:
		level = pterm.LogLevelDebug
	case quiet:
		level = pterm.LogLevelError
	}
	return pterm.DefaultLogger.WithLevel(level).WithWriter(w)
}
