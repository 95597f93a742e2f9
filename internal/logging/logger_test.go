package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
		wantErr  bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"trace", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, l)
		})
	}
}

func TestNew_TerminalLevel(t *testing.T) {
	t.Setenv(DebugEnv, "")
	var buf bytes.Buffer

	logger, closer, err := New(Options{Level: "warn", Writer: &buf})
	require.NoError(t, err)
	defer closer.Close()

	logger.Info("quiet")
	logger.Warn("loud", "user", "alice")

	out := buf.String()
	assert.NotContains(t, out, "quiet")
	assert.Contains(t, out, "loud")
	assert.Contains(t, out, "user=alice")
}

func TestNew_VerboseAndDebugEnv(t *testing.T) {
	t.Setenv(DebugEnv, "")
	var buf bytes.Buffer

	logger, _, err := New(Options{Level: "error", Verbose: true, Writer: &buf})
	require.NoError(t, err)
	logger.Debug("verbose debug")
	assert.Contains(t, buf.String(), "verbose debug")

	buf.Reset()
	t.Setenv(DebugEnv, "1")
	logger, _, err = New(Options{Level: "error", Writer: &buf})
	require.NoError(t, err)
	logger.Debug("env debug")
	assert.Contains(t, buf.String(), "env debug")
}

func TestNew_FileFanout(t *testing.T) {
	t.Setenv(DebugEnv, "")
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "todo.log")

	logger, closer, err := New(Options{Level: "error", File: path, Writer: &buf})
	require.NoError(t, err)

	logger.Info("task added", "task_id", 7)
	require.NoError(t, closer.Close())

	assert.Empty(t, buf.String(), "terminal handler filters below error")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	assert.Equal(t, "task added", record["msg"])
	assert.Equal(t, float64(7), record["task_id"])
}

func TestNew_BadLevel(t *testing.T) {
	_, _, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestSetup(t *testing.T) {
	previous := slog.Default()
	defer slog.SetDefault(previous)

	var buf bytes.Buffer
	closer, err := Setup(Options{Level: "info", Writer: &buf})
	require.NoError(t, err)
	defer closer.Close()

	slog.Info("through default")
	assert.Contains(t, buf.String(), "through default")
}
