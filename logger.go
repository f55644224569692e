// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package nebula

import (
	"log/slog"

	"github.com/gogpu/nebula/internal/logging"
)

// SetLogger configures the logger for nebula and all its sub-packages.
// By default nebula produces no log output.
//
// SetLogger is safe for concurrent use. Pass nil to restore silence.
//
// Log levels used by nebula:
//   - [slog.LevelDebug]: viewport resizes, fly-to commands, camera changes
//   - [slog.LevelInfo]: pipeline lifecycle
//   - [slog.LevelWarn]: skipped frames, dropped commands
//
// Example:
//
//	nebula.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger. It never returns nil.
func Logger() *slog.Logger {
	return logging.Logger()
}
