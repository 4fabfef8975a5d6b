package slog

import (
	"bytes"
	stdslog "log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/unkn0wn-root/jsonvalue"
)

func TestLoggerWritesSortedAttrs(t *testing.T) {
	var buf bytes.Buffer
	l := Logger{L: stdslog.New(stdslog.NewTextHandler(&buf, &stdslog.HandlerOptions{Level: stdslog.LevelDebug}))}

	l.Debug("decode failed", jsonvalue.Fields{"type": "main.User", "path": "$.name"})

	out := buf.String()
	assert.Contains(t, out, "msg=\"decode failed\"")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("path=")), bytes.Index(buf.Bytes(), []byte("type=")))
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := Logger{L: stdslog.New(stdslog.NewTextHandler(&buf, &stdslog.HandlerOptions{Level: stdslog.LevelWarn}))}

	l.Info("hidden", nil)
	l.Warn("shown", nil)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
