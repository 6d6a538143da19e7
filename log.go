package batchui

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// logger is shared by every package-level component. Defaults to warnings on
// stderr so a silent library stays silent.
var logger = NewLogger(os.Stderr, log.WarnLevel)

// NewLogger creates a prefixed logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func NewLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          "batchui",
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// SetLogger replaces the package logger. A nil logger is ignored.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// Logger returns the package logger.
func Logger() *log.Logger {
	return logger
}
