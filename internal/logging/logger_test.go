package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemakit/schemakit/internal/config"
)

func newBufferLogger(t *testing.T, level, format string) (*Logger, *bytes.Buffer) {
	t.Helper()

	logger, err := NewLogger(config.LoggingConfig{
		Level:  level,
		Format: format,
		Output: "stderr",
	})
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	logger.output = buf

	return logger, buf
}

func TestLogLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", DebugLevel.String())
	assert.Equal(t, "INFO", InfoLevel.String())
	assert.Equal(t, "WARN", WarnLevel.String())
	assert.Equal(t, "ERROR", ErrorLevel.String())
}

func TestLoggerLevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(t, "warn", "text")

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	assert.NotContains(t, output, "debug message")
	assert.NotContains(t, output, "info message")
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")
}

func TestLoggerTextFormat(t *testing.T) {
	logger, buf := newBufferLogger(t, "info", "text")

	logger.WithField("table", "events").Info("schema registered")

	output := buf.String()
	assert.Contains(t, output, "INFO")
	assert.Contains(t, output, "schema registered")
	assert.Contains(t, output, "table=events")
}

func TestLoggerJSONFormat(t *testing.T) {
	logger, buf := newBufferLogger(t, "info", "json")

	logger.ErrorWithErr("describe failed", errors.New("stale handle"))

	var entry LogEntry
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))

	assert.Equal(t, "ERROR", entry.Level)
	assert.Equal(t, "describe failed", entry.Message)
	assert.Equal(t, "stale handle", entry.Error)
}

func TestLoggerInvalidOutput(t *testing.T) {
	_, err := NewLogger(config.LoggingConfig{Level: "info", Format: "text", Output: "syslog"})
	require.Error(t, err)
}

func TestWithErrorNil(t *testing.T) {
	logger, _ := newBufferLogger(t, "info", "text")
	assert.Same(t, logger, logger.WithError(nil))
}
