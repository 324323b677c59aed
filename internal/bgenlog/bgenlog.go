// Package bgenlog holds the single process-wide logger used across the
// codec, stream, and CLI layers.
package bgenlog

import (
	"os"

	"github.com/rs/zerolog"
)

// L is the shared logger. The CLI adjusts its level via SetVerbose;
// library code never reconfigures it, only writes to it.
var L = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: false}).With().Timestamp().Logger().Level(zerolog.InfoLevel)

// SetVerbose raises the logger to debug level when v is true, and restores
// the default info level otherwise.
func SetVerbose(v bool) {
	if v {
		L = L.Level(zerolog.DebugLevel)
		return
	}
	L = L.Level(zerolog.InfoLevel)
}
