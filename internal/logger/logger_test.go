package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anacreon.log")
	l, err := New(Config{Level: "debug", File: path, JSON: true})
	require.NoError(t, err)

	l.Debug("sampled", zap.Int("orders", 3))
	require.NoError(t, l.Sync())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"message":"sampled"`)
	assert.Contains(t, string(b), `"orders":3`)
	assert.Contains(t, string(b), `"service":"anacreon"`)
}

func TestNewDiscard(t *testing.T) {
	l, err := New(Config{File: "-"})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.ErrorLevel))
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("WARNING")
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}
