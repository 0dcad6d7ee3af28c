package logging

import (
	"context"
	"log/slog"
)

// teeHandler sends every record to a primary handler and mirrors it into
// best-effort secondaries. The stdout JSON stream is the primary; the debug
// sink is a mirror, so a mirror failure can never fail or suppress a log
// call. Records are cloned per mirror because handlers may retain them.
type teeHandler struct {
	primary slog.Handler
	mirrors []slog.Handler
}

func newTeeHandler(primary slog.Handler, mirrors ...slog.Handler) *teeHandler {
	return &teeHandler{primary: primary, mirrors: mirrors}
}

func (h *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if h.primary.Enabled(ctx, level) {
		return true
	}
	for _, m := range h.mirrors {
		if m.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *teeHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, m := range h.mirrors {
		if m.Enabled(ctx, record.Level) {
			_ = m.Handle(ctx, record.Clone())
		}
	}
	if !h.primary.Enabled(ctx, record.Level) {
		return nil
	}
	return h.primary.Handle(ctx, record)
}

func (h *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	mirrors := make([]slog.Handler, len(h.mirrors))
	for i, m := range h.mirrors {
		mirrors[i] = m.WithAttrs(attrs)
	}
	return &teeHandler{primary: h.primary.WithAttrs(attrs), mirrors: mirrors}
}

func (h *teeHandler) WithGroup(name string) slog.Handler {
	mirrors := make([]slog.Handler, len(h.mirrors))
	for i, m := range h.mirrors {
		mirrors[i] = m.WithGroup(name)
	}
	return &teeHandler{primary: h.primary.WithGroup(name), mirrors: mirrors}
}
