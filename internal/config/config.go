// Package config loads settings from defaults, an optional YAML file,
// QUIZZ_* environment variables and command-line flags, in increasing
// order of priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/quizz/internal/export"
	"github.com/abhisek/quizz/internal/logging"
)

// EnvPrefix is prepended to every environment variable.
const EnvPrefix = "QUIZZ"

type Config struct {
	// DB is the SQLite file. Empty means the XDG data location.
	DB string `mapstructure:"db"`

	// Bank is a YAML or JSON question bank. Empty means the embedded bank.
	Bank string `mapstructure:"bank"`

	// Ephemeral keeps session state in memory only.
	Ephemeral bool `mapstructure:"ephemeral"`

	Log    LogConfig    `mapstructure:"log"`
	Export ExportConfig `mapstructure:"export"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

type ExportConfig struct {
	LineEnding string `mapstructure:"line_ending"`
	Dir        string `mapstructure:"dir"`
}

// flagKeys maps persistent flag names to config keys.
var flagKeys = map[string]string{
	"db":        "db",
	"bank":      "bank",
	"ephemeral": "ephemeral",
	"log-file":  "log.file",
	"log-level": "log.level",
}

// Load reads configuration. path names an explicit config file, which must
// exist; when empty the default location is tried and may be absent. flags
// may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("db", "")
	v.SetDefault("bank", "")
	v.SetDefault("ephemeral", false)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("export.line_ending", "lf")
	v.SetDefault("export.dir", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range []string{"db", "bank", "ephemeral", "log.file", "log.level", "export.line_ending", "export.dir"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if dir, err := DefaultDir(); err == nil {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that have a fixed vocabulary.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if _, err := export.ParseLineEnding(c.Export.LineEnding); err != nil {
		return fmt.Errorf("export.line_ending: %w", err)
	}
	return nil
}

// LineEnding returns the configured CSV row separator.
func (c *Config) LineEnding() export.LineEnding {
	le, err := export.ParseLineEnding(c.Export.LineEnding)
	if err != nil {
		return export.LF
	}
	return le
}

// DefaultDir resolves the config directory in priority order:
// 1. $XDG_CONFIG_HOME/quizz
// 2. ~/.config/quizz
func DefaultDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "quizz"), nil
}
