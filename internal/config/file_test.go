package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile_RoundTripsThroughViper(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Capture.Cooldown = 1500 * time.Millisecond
	cfg.Database.Path = filepath.Join(t.TempDir(), "ledger.db")
	require.NoError(t, cfg.WriteFile(path, false))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	loaded, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestWriteFile_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := Default()

	require.NoError(t, cfg.WriteFile(path, false))
	assert.Error(t, cfg.WriteFile(path, false))
	assert.NoError(t, cfg.WriteFile(path, true))
}

func TestYAML_DurationsAsStrings(t *testing.T) {
	data, err := Default().YAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "cooldown: 3s")
	assert.Contains(t, string(data), "timeout: 10s")
}
