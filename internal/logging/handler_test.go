// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Credkit Contributors

package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/credkit/credkit/internal/logging"
)

func logLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew_ServiceAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Options{
		Service: "credkit",
		Version: "1.2.3",
		Writer:  &buf,
	})

	logger.Info("hello", "key", "value")

	entry := logLine(t, &buf)
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "credkit", entry["service"])
	assert.Equal(t, "1.2.3", entry["version"])
	assert.Equal(t, "value", entry["key"])
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Options{
		Service: "credkit",
		Format:  "text",
		Writer:  &buf,
	})

	logger.Info("hello")

	out := buf.String()
	assert.Contains(t, out, "msg=hello")
	assert.Contains(t, out, "service=credkit")
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Options{
		Writer: &buf,
		Level:  slog.LevelWarn,
	})

	logger.Info("suppressed")
	assert.Zero(t, buf.Len())

	logger.Warn("emitted")
	assert.Positive(t, buf.Len())
}

func TestNew_DefaultLevelIsInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Options{Writer: &buf})

	logger.Debug("suppressed")
	assert.Zero(t, buf.Len())
}

func TestNew_TraceContext(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Options{Writer: &buf})

	traceID, err := trace.TraceIDFromHex("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("0123456789abcdef")
	require.NoError(t, err)

	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	}))

	logger.InfoContext(ctx, "traced")

	entry := logLine(t, &buf)
	assert.Equal(t, traceID.String(), entry["trace_id"])
	assert.Equal(t, spanID.String(), entry["span_id"])
}

func TestNew_NoTraceContext(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Options{Writer: &buf})

	logger.InfoContext(context.Background(), "untraced")

	entry := logLine(t, &buf)
	assert.NotContains(t, entry, "trace_id")
	assert.NotContains(t, entry, "span_id")
}

func TestNew_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Options{Service: "credkit", Writer: &buf})

	logger.With("component", "auth").Info("scoped")

	entry := logLine(t, &buf)
	assert.Equal(t, "auth", entry["component"])
	assert.Equal(t, "credkit", entry["service"])
}

func TestNew_WithGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Options{Writer: &buf})

	logger.WithGroup("req").Info("scoped", "id", "42")

	entry := logLine(t, &buf)
	req, ok := entry["req"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "42", req["id"])
}
