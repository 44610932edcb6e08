package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	require.NotEmpty(t, line, "expected log output")

	payload := make(map[string]interface{})
	require.NoError(t, json.Unmarshal([]byte(line), &payload))
	return payload
}

func TestLoggerIncludesCorrelationIDAndLayer(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := New(Options{
		Writer:    &buf,
		Level:     "debug",
		Layer:     "infrastructure",
		Component: "catalog_loader",
	})
	require.NoError(t, err)

	ctx := WithCorrelationID(context.Background(), "abc123")
	logger.Info(ctx, "loaded products", "path", "/tmp/products.yaml")

	payload := decodeLine(t, &buf)
	require.Equal(t, "infrastructure", payload["layer"])
	require.Equal(t, "catalog_loader", payload["component"])
	require.Equal(t, "abc123", payload["correlation_id"])
	require.Equal(t, "/tmp/products.yaml", payload["path"])
	require.Equal(t, "loaded products", payload["message"])
	require.Equal(t, "info", payload["level"])
}

func TestLoggerWithAddsFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := New(Options{Writer: &buf})
	require.NoError(t, err)

	child := logger.With("component", "aggregator").(*Logger)
	child.Warn(context.Background(), "channel not owned", "channel", "blush", "error", errors.New("boom"))

	payload := decodeLine(t, &buf)
	require.Equal(t, "aggregator", payload["component"])
	require.Equal(t, "blush", payload["channel"])
	require.Equal(t, "boom", payload["error"])
	require.Equal(t, "warn", payload["level"])
}

func TestLoggerRespectsLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := New(Options{Writer: &buf, Level: "warn"})
	require.NoError(t, err)

	logger.Debug(context.Background(), "hidden")
	logger.Info(context.Background(), "hidden")
	require.Empty(t, buf.String())

	logger.Error(context.Background(), "shown")
	require.Contains(t, buf.String(), "shown")
}

func TestLoggerRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Level: "chatty"})
	require.Error(t, err)
}

func TestBufferedLoggerFlushesInOrder(t *testing.T) {
	t.Parallel()

	buffer := NewEventBuffer(2)
	logger := NewBufferedLogger(buffer).With("component", "console")
	logger.Info(context.Background(), "first")
	logger.Warn(context.Background(), "second")
	logger.Error(context.Background(), "third")

	require.Equal(t, 2, buffer.Len(), "oldest entry should be dropped")

	latest, ok := buffer.Latest(LevelWarn)
	require.True(t, ok)
	require.Equal(t, "third", latest.Msg)

	var buf bytes.Buffer
	delegate, err := New(Options{Writer: &buf})
	require.NoError(t, err)
	buffer.Flush(delegate)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "second")
	require.Contains(t, lines[1], "third")
	require.Contains(t, lines[1], "console")
	require.Zero(t, buffer.Len())
}

func TestEnsureCorrelationIDKeepsExisting(t *testing.T) {
	t.Parallel()

	ctx := WithCorrelationID(context.Background(), "keep-me")
	require.Equal(t, "keep-me", GetCorrelationID(EnsureCorrelationID(ctx)))
	require.NotEmpty(t, GetCorrelationID(EnsureCorrelationID(context.Background())))
}
