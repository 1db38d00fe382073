package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil))), &buf
}

func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	return m
}

func TestSlogLogger_Levels(t *testing.T) {
	ctx := context.Background()

	l, buf := newBufferedLogger(t)
	l.Info(ctx, "hello", "k", "v")
	m := lastRecord(t, buf)
	assert.Equal(t, "INFO", m["level"])
	assert.Equal(t, "hello", m["msg"])
	assert.Equal(t, "v", m["k"])

	l, buf = newBufferedLogger(t)
	l.Warn(ctx, "careful")
	assert.Equal(t, "WARN", lastRecord(t, buf)["level"])

	l, buf = newBufferedLogger(t)
	l.Error(ctx, "broken")
	assert.Equal(t, "ERROR", lastRecord(t, buf)["level"])
}

func TestSlogLogger_WithAddsFields(t *testing.T) {
	ctx := context.Background()
	l, buf := newBufferedLogger(t)

	child := l.With("device", "d-42")
	child.Info(ctx, "ping")

	m := lastRecord(t, buf)
	assert.Equal(t, "d-42", m["device"])
}
