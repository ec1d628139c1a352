package notify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.json"))
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigMergesPartialDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notify.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"sound_enabled": true, "auto_clear_days": 7}`), 0o644))

	cfg := LoadConfig(path)

	assert.True(t, cfg.SoundEnabled)
	assert.Equal(t, 7, cfg.AutoClearDays)
	// Keys absent from the file keep their defaults.
	assert.True(t, cfg.StockAlerts)
	assert.Equal(t, AnchorTopRight, cfg.Position)
}

func TestLoadConfigInvalidPositionFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notify.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"position": "center"}`), 0o644))

	cfg := LoadConfig(path)
	assert.Equal(t, AnchorTopRight, cfg.Position)
}

func TestLoadConfigCorruptFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notify.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))

	cfg := LoadConfig(path)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notify.json")

	cfg := DefaultConfig()
	cfg.SalesAlerts = false
	cfg.Position = AnchorBottomRight
	cfg.AutoClearDays = 14
	require.NoError(t, cfg.Save(path))

	assert.Equal(t, cfg, LoadConfig(path))
}
