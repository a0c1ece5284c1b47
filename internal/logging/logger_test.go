package logging

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestConfig_Validate(t *testing.T) {
	cfg := NewDefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Format = "xml"
	assert.Error(t, cfg.Validate())

	cfg = NewDefaultConfig()
	cfg.Fields[""] = "x"
	assert.Error(t, cfg.Validate())
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, level)

	_, err = ParseLevel("chatty")
	assert.Error(t, err)
}

func TestNewLogger_WritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "board.log")
	cfg := NewDefaultConfig()
	cfg.Path = path

	logger, err := NewLogger(cfg)
	require.NoError(t, err)

	ctx := WithOperation(context.Background(), "add_task")
	logger.Info(ctx, "task added", zap.String("assigned", "SREE"))
	logger.Debug(ctx, "not written at info level")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "task added", entry["msg"])
	assert.Equal(t, "add_task", entry["op"])
	assert.Equal(t, "SREE", entry["assigned"])
	assert.Equal(t, "choreboard", entry["service"])
	assert.Contains(t, entry, "ts")
}

func TestContextFields(t *testing.T) {
	assert.Empty(t, ContextFields(context.Background()))

	fields := ContextFields(WithOperation(context.Background(), "reset"))
	require.Len(t, fields, 1)
	assert.Equal(t, "op", fields[0].Key)
	assert.Equal(t, "reset", fields[0].String)
}

func TestTestLogger(t *testing.T) {
	logger := NewTestLogger()
	logger.Warn(context.Background(), "state file corrupt", zap.String("path", "x.json"))

	logger.AssertLogged(t, zapcore.WarnLevel, "corrupt")
	assert.Equal(t, 1, logger.FilterMessage("state file").Len())
	logger.AssertNoField(t, "password")
}
