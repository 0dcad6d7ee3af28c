package logging

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardiya/storefront/internal/debuglog"
)

// failingHandler accepts every record and fails handling it.
type failingHandler struct{}

func (failingHandler) Enabled(context.Context, slog.Level) bool { return true }
func (failingHandler) Handle(context.Context, slog.Record) error {
	return errors.New("mirror broken")
}
func (h failingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h failingHandler) WithGroup(string) slog.Handler      { return h }

func TestMirrorFailureDoesNotSuppressPrimary(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newTeeHandler(slog.NewJSONHandler(&buf, nil), failingHandler{}))

	logger.Warn("upstream slow", "ms", 1200)

	assert.Contains(t, buf.String(), "upstream slow", "primary stream must survive a broken mirror")
}

func TestWarningsReachDebugSink(t *testing.T) {
	sink := debuglog.New(true)
	logger := slog.New(newTeeHandler(slog.NewJSONHandler(io.Discard, nil), NewSinkHandler(sink)))

	logger.Info("routine request") // below the sink's warn threshold
	logger.Warn("upstream slow", "ms", 1200)

	require.Equal(t, 1, sink.Len())
	entry := sink.Entries()[0]
	assert.Equal(t, "log", entry.Source)
	assert.Equal(t, debuglog.KindClient, entry.Kind)
}

func TestSinkMirrorInertOutsideDevelopment(t *testing.T) {
	sink := debuglog.New(false)
	var buf bytes.Buffer
	logger := slog.New(newTeeHandler(slog.NewJSONHandler(&buf, nil), NewSinkHandler(sink)))

	logger.Warn("upstream slow")

	assert.Equal(t, 0, sink.Len())
	assert.Contains(t, buf.String(), "upstream slow")
}
