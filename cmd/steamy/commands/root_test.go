package commands

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()

	configPath = filepath.Join(dir, "steamy.json5")
	fileConfig, err := readConfig()
	require.NoError(t, err)
	require.Equal(t, 730, fileConfig.ToConfig().AppID)

	err = os.WriteFile(filepath.Join(dir, "steamy.yaml"), []byte("app_id: 440\nretries: 1\n"), 0600)
	require.NoError(t, err)
	err = os.WriteFile(filepath.Join(dir, "steamy.local.yaml"), []byte("api_key: secret\n"), 0600)
	require.NoError(t, err)

	configPath = filepath.Join(dir, "steamy.yaml")
	fileConfig, err = readConfig()
	require.NoError(t, err)
	cfg := fileConfig.ToConfig()
	require.Equal(t, 440, cfg.AppID)
	require.Equal(t, "secret", cfg.APIKey)
	require.Equal(t, 1, cfg.Retry.MaxAttempts)
	require.Equal(t, 3*time.Second, cfg.Retry.Delay)
}

func TestExampleConfig(t *testing.T) {
	configPath = filepath.Join("..", "steamy.example.json5")
	fileConfig, err := readConfig()
	require.NoError(t, err)
	require.Equal(t, 730, fileConfig.AppID)
	require.Equal(t, 3, fileConfig.MaxCollectionDepth)
}
