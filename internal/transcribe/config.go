// Package transcribe drives the external tools behind transcribe-audio:
// ffmpeg for transcoding, whisper-cli for speech to text, and the model
// file cache.
package transcribe

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

const (
	// DefaultModelName is the whisper.cpp model used when none is configured.
	DefaultModelName = "ggml-large-v3-turbo-q5_0.bin"

	// DefaultModelURL is where DefaultModelName is downloaded from.
	DefaultModelURL = "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/" + DefaultModelName

	envPrefix = "TRANSCRIBE"
	appName   = "transcribe-audio"
)

// Config holds the settings of the transcription pipeline.
type Config struct {
	// CacheDir is where models are stored. TRANSCRIBE_CACHE_DIR overrides it.
	CacheDir string `mapstructure:"cache_dir"`

	// ModelName is the file name of the model inside CacheDir.
	ModelName string `mapstructure:"model_name"`

	// ModelURL is fetched when the model is not cached yet.
	ModelURL string `mapstructure:"model_url"`

	// FFmpeg and Whisper are the executables invoked for each file.
	FFmpeg  string `mapstructure:"ffmpeg"`
	Whisper string `mapstructure:"whisper"`
}

// ModelPath returns the location of the cached model file.
func (c *Config) ModelPath() string {
	return filepath.Join(c.CacheDir, c.ModelName)
}

// LoadConfig reads the configuration.
// Priority: ENV (TRANSCRIBE_*) > $XDG_CONFIG_HOME/transcribe-audio/config.yaml > defaults
func LoadConfig() (*Config, error) {
	return loadConfig(viper.New(), filepath.Join(xdg.ConfigHome, appName))
}

func loadConfig(v *viper.Viper, configDir string) (*Config, error) {
	v.SetDefault("cache_dir", filepath.Join(xdg.CacheHome, "whisper"))
	v.SetDefault("model_name", DefaultModelName)
	v.SetDefault("model_url", DefaultModelURL)
	v.SetDefault("ffmpeg", "ffmpeg")
	v.SetDefault("whisper", "whisper-cli")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configDir != "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir)

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if cfg.CacheDir == "" || cfg.ModelName == "" {
		return nil, errors.New("cache_dir and model_name must not be empty")
	}

	return &cfg, nil
}
