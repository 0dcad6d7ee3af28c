package logging

import (
	"log/slog"
	"os"

	"github.com/wardiya/storefront/internal/debuglog"
)

// Setup initializes the global slog logger with JSON output to stdout.
func Setup() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}

// SetupWithSink additionally mirrors log records into the development debug
// sink so they show up next to fetched payloads in the debug panel.
func SetupWithSink(sink *debuglog.Sink) {
	stdout := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(newTeeHandler(stdout, NewSinkHandler(sink))))
}
