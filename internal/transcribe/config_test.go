package transcribe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("TRANSCRIBE_CACHE_DIR", "")

	cfg, err := loadConfig(viper.New(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(xdg.CacheHome, "whisper"), cfg.CacheDir)
	assert.Equal(t, DefaultModelName, cfg.ModelName)
	assert.Equal(t, DefaultModelURL, cfg.ModelURL)
	assert.Equal(t, "ffmpeg", cfg.FFmpeg)
	assert.Equal(t, "whisper-cli", cfg.Whisper)
	assert.Equal(t, filepath.Join(cfg.CacheDir, DefaultModelName), cfg.ModelPath())
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	data := []byte("cache_dir: /from/file\nmodel_name: ggml-base.bin\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), data, 0644))

	t.Setenv("TRANSCRIBE_CACHE_DIR", "/from/env")

	cfg, err := loadConfig(viper.New(), dir)
	require.NoError(t, err)

	assert.Equal(t, "/from/env", cfg.CacheDir)
	assert.Equal(t, "ggml-base.bin", cfg.ModelName)
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("cache_dir: [unclosed"), 0644))

	_, err := loadConfig(viper.New(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}
