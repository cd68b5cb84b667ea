package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/illarion/credvault/internal/config"
)

func TestNewWithSinkLevels(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithSink(config.LogConfig{Level: "warn", Format: "json"}, zapcore.AddSync(&buf))

	log.Info("hidden")
	log.Warn("shown", zap.Int("count", 2))
	require.NoError(t, log.Sync())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, float64(2), entry["count"])
}

func TestNewWithSinkInvalidLevelFallsBackToWarn(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithSink(config.LogConfig{Level: "loud", Format: "console"}, zapcore.AddSync(&buf))

	log.Info("hidden")
	log.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
