package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/idilsaglam/tada-cloud/internal/config"
)

func TestNewWritesJSONToFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "logs", "tada.log")
	l, err := New(config.LogConfig{Level: "info", Format: "json"}, p)
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("refreshed", zap.Int("count", 3))
	require.NoError(t, l.Sync())

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "refreshed", entry["msg"])
	assert.Equal(t, float64(3), entry["count"])
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(config.LogConfig{Level: "loud", Format: "console"}, "")
	assert.Error(t, err)
}
