package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var timeZero time.Time

func TestLogFilePath(t *testing.T) {
	sessionStart := time.Date(2026, 2, 12, 21, 38, 36, 0, time.UTC)

	tests := []struct {
		name    string
		logsDir string
		want    string
	}{
		{
			name:    "basic path",
			logsDir: "skirmishlogs",
			want:    filepath.Join("skirmishlogs", "skirmish.20260212_213836.log"),
		},
		{
			name:    "relative path with dot",
			logsDir: "./skirmishlogs",
			want:    filepath.Join(".", "skirmishlogs", "skirmish.20260212_213836.log"),
		},
		{
			name:    "absolute path",
			logsDir: filepath.Join("/var", "log", "skirmish"),
			want:    filepath.Join("/var", "log", "skirmish", "skirmish.20260212_213836.log"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LogFilePath(tt.logsDir, "skirmish", sessionStart))
		})
	}
}

func TestOpenLogFile_RotatesExisting(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	start := time.Date(2026, 2, 12, 21, 38, 36, 0, time.UTC)

	f, err := OpenLogFile(dir, "skirmish", start)
	require.NoError(t, err)
	_, err = f.WriteString("first session\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	f, err = OpenLogFile(dir, "skirmish", start)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	old, err := os.ReadFile(LogFilePath(dir, "skirmish", start) + ".old")
	require.NoError(t, err)
	assert.Equal(t, "first session\n", string(old))
}

func TestZerologAdapter(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewZerologAdapter(NewZerolog(&buf, "debug"))

	adapter.Debug("handling event", "command", ":FIRED:", "args", 3, 42)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "handling event", entry["message"])
	assert.Equal(t, ":FIRED:", entry["command"])
	assert.Equal(t, float64(3), entry["args"])
	assert.Contains(t, entry, "time")
}

func TestZerologAdapter_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewZerologAdapter(NewZerolog(&buf, "not-a-level"))

	adapter.Debug("hidden")
	assert.Empty(t, buf.String())

	adapter.Warn("shown", "k", "v")
	assert.Contains(t, buf.String(), `"level":"warn"`)
}
