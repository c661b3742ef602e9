package main

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogManager_Success_FanOut(t *testing.T) {
	t.Parallel()

	var debugBuf, warnBuf bytes.Buffer

	m := NewSlogManager()
	m.AddHandler("debug", slog.NewTextHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	m.AddHandler("warn", slog.NewTextHandler(&warnBuf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	logger := slog.New(m)
	logger.Debug("debug message")
	logger.Warn("warn message")

	assert.Contains(t, debugBuf.String(), "debug message")
	assert.Contains(t, debugBuf.String(), "warn message")
	assert.NotContains(t, warnBuf.String(), "debug message")
	assert.Contains(t, warnBuf.String(), "warn message")
}

func TestSlogManager_Success_Enabled(t *testing.T) {
	t.Parallel()

	m := NewSlogManager()
	assert.False(t, m.Enabled(context.Background(), slog.LevelError))

	m.AddHandler("warn", slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn}))
	assert.False(t, m.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, m.Enabled(context.Background(), slog.LevelError))
}

func TestSlogManager_Success_AttrsAppliedToLateHandlers(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	m := NewSlogManager()
	derived, ok := m.WithAttrs([]slog.Attr{slog.String("cmd", "stat")}).(*SlogManager)
	require.True(t, ok)

	derived.AddHandler("late", slog.NewTextHandler(&buf, nil))
	slog.New(derived).Info("hello")

	assert.Contains(t, buf.String(), "cmd=stat")
	assert.Zero(t, m.Handlers())
}

func TestSlogManager_Success_WithGroup(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	m := NewSlogManager()
	m.AddHandler("text", slog.NewTextHandler(&buf, nil))

	slog.New(m.WithGroup("fs")).Info("hello", "path", "/tmp")

	assert.Contains(t, buf.String(), "fs.path=/tmp")
}

func TestSlogManager_Success_RemoveHandler(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	m := NewSlogManager()
	m.AddHandler("text", slog.NewTextHandler(&buf, nil))
	m.RemoveHandler("text")

	slog.New(m).Info("hello")

	assert.Empty(t, buf.String())
	assert.Zero(t, m.Handlers())
}
