package logging

import (
	"context"
	"log/slog"

	"github.com/wardiya/storefront/internal/debuglog"
)

// SinkHandler forwards warning-and-above records into the debug log sink.
// The sink itself is inert outside development, so this handler can be
// wired unconditionally.
type SinkHandler struct {
	sink  *debuglog.Sink
	attrs []slog.Attr
}

func NewSinkHandler(sink *debuglog.Sink) *SinkHandler {
	return &SinkHandler{sink: sink}
}

func (h *SinkHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.sink.Enabled() && level >= slog.LevelWarn
}

func (h *SinkHandler) Handle(ctx context.Context, record slog.Record) error {
	payload := map[string]any{
		"level":   record.Level.String(),
		"message": record.Message,
	}
	for _, attr := range h.attrs {
		payload[attr.Key] = attr.Value.String()
	}
	record.Attrs(func(attr slog.Attr) bool {
		payload[attr.Key] = attr.Value.String()
		return true
	})
	h.sink.Add("log", payload, debuglog.KindClient)
	return nil
}

func (h *SinkHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &SinkHandler{sink: h.sink, attrs: merged}
}

func (h *SinkHandler) WithGroup(name string) slog.Handler {
	return h
}
