// Package voicememos reads the Apple Voice Memos library: the recordings
// database and the audio files next to it.
package voicememos

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

const (
	// DefaultDatabase is the Core Data store inside the recordings directory.
	DefaultDatabase = "CloudRecordings.db"

	envPrefix = "VOICE_MEMOS"
	appName   = "voice-memos"
)

// DefaultDir is where macOS keeps Voice Memos recordings.
var DefaultDir = filepath.Join(xdg.Home, "Library", "Group Containers", "group.com.apple.VoiceMemos.shared", "Recordings")

// Config locates the Voice Memos library.
type Config struct {
	// Dir holds the recordings. VOICE_MEMOS_DIR overrides it.
	Dir string `mapstructure:"dir"`

	// Database is the file name of the store inside Dir.
	Database string `mapstructure:"database"`
}

// DatabasePath returns the location of the recordings database.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Dir, c.Database)
}

// LoadConfig reads the configuration.
// Priority: ENV (VOICE_MEMOS_*) > $XDG_CONFIG_HOME/voice-memos/config.yaml > defaults
func LoadConfig() (*Config, error) {
	return loadConfig(viper.New(), filepath.Join(xdg.ConfigHome, appName))
}

func loadConfig(v *viper.Viper, configDir string) (*Config, error) {
	v.SetDefault("dir", DefaultDir)
	v.SetDefault("database", DefaultDatabase)

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

	if cfg.Dir == "" || cfg.Database == "" {
		return nil, errors.New("dir and database must not be empty")
	}

	return &cfg, nil
}
