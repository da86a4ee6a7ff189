// Package hplog is the debug logger: a thin github.com/rs/zerolog wrapper
// that is silent by default and writes a human-readable console trace to
// stderr when enabled, for tracing exactly which pipeline stage produced a
// decision without that output ever reaching the host's stdout channel.
package hplog

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds a logger. When enabled is false, it returns zerolog.Nop(), a
// logger that discards everything at effectively zero cost.
func New(enabled bool) zerolog.Logger {
	if !enabled {
		return zerolog.Nop()
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return zerolog.New(writer).With().Timestamp().Logger()
}
