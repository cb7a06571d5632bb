package platform

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Settings is the project configuration read from .keyloom.yaml, the
// KEYLOOM_* environment and command-line flags.
type Settings struct {
	// Files lists the documents to load, as paths or doublestar globs
	// relative to the project root.
	Files      []string    `mapstructure:"files"`
	Indent     int         `mapstructure:"indent"`
	Strict     bool        `mapstructure:"strict"`
	Versioning bool        `mapstructure:"versioning"`
	ReadOnly   bool        `mapstructure:"read_only"`
	NoColor    bool        `mapstructure:"no_color"`
	Log        LogSettings `mapstructure:"log"`

	// Root is the directory the configuration was resolved against.
	Root string `mapstructure:"-"`
}

// LogSettings configures the optional rotating log file.
type LogSettings struct {
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// NewViper returns a viper instance with keyloom defaults and environment binding.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("files", []string{})
	v.SetDefault("indent", 4)
	v.SetDefault("strict", true)
	v.SetDefault("versioning", false)
	v.SetDefault("read_only", false)
	v.SetDefault("no_color", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)

	v.SetEnvPrefix("KEYLOOM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// ReadConfig reads configFile if given, otherwise .keyloom.yaml in root.
// A missing default file is not an error.
func ReadConfig(v *viper.Viper, root, configFile string) error {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(root)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// LoadSettings decodes the settings held by v.
func LoadSettings(v *viper.Viper, root string) (Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("invalid config: %w", err)
	}
	if s.Indent <= 0 {
		return Settings{}, fmt.Errorf("invalid config: indent must be positive, got %d", s.Indent)
	}
	s.Root = root
	return s, nil
}

// Patterns returns Files with relative entries anchored at Root.
func (s Settings) Patterns() []string {
	out := make([]string, 0, len(s.Files))
	for _, f := range s.Files {
		if filepath.IsAbs(f) || s.Root == "" {
			out = append(out, f)
			continue
		}
		out = append(out, filepath.Join(s.Root, f))
	}
	return out
}

// Options converts the settings into engine options.
func (s Settings) Options(logger *slog.Logger) []Option {
	return []Option{
		WithRoot(s.Root),
		WithIndent(s.Indent),
		WithStrict(s.Strict),
		WithVersioning(s.Versioning),
		WithReadOnly(s.ReadOnly),
		WithLogger(logger),
	}
}

// LogLevel parses Log.Level, defaulting to info.
func (s Settings) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}
