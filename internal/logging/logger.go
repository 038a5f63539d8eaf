package logging

import (
	"io"
	"os"
	"strings"

	"github.com/hance08/dealflow/internal/config"
	"github.com/pterm/pterm"
)

// New builds a pterm logger according to the log section of the config.
// Output goes to stderr so it never interleaves with rendered tables.
func New(cfg config.LogConfig) *pterm.Logger {
	return NewWithWriter(cfg, os.Stderr)
}

func NewWithWriter(cfg config.LogConfig, w io.Writer) *pterm.Logger {
	logger := pterm.DefaultLogger.
		WithLevel(ParseLevel(cfg.Level)).
		WithWriter(w)

	if strings.EqualFold(cfg.Format, "json") {
		logger = logger.WithFormatter(pterm.LogFormatterJSON)
	}
	return logger
}

// Discard returns a logger that drops everything.
func Discard() *pterm.Logger {
	return pterm.DefaultLogger.WithLevel(pterm.LogLevelDisabled).WithWriter(io.Discard)
}

func ParseLevel(level string) pterm.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return pterm.LogLevelTrace
	case "debug":
		return pterm.LogLevelDebug
	case "info":
		return pterm.LogLevelInfo
	case "error":
		return pterm.LogLevelError
	case "off", "disabled", "none":
		return pterm.LogLevelDisabled
	default:
		return pterm.LogLevelWarn
	}
}
