// Package logging wires the service's slog pipeline: JSON on stdout
// from process start, joined by a database handler that persists
// ERROR records to the system_logs table once a connection exists
// (see cmd/server).
package logging

import (
	"log/slog"
	"os"
)

// Setup installs the bootstrap JSON logger. It runs before the
// database is connected, so startup records only reach stdout; main
// swaps in the multi-handler after Connect.
func Setup() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}
