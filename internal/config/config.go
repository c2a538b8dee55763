// Package config provides configuration management for the to-do screen.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"github.com/xvierd/todo-cli/internal/domain"
)

// EnvPrefix is the prefix of environment overrides, e.g. TODO_STORAGE_BACKEND.
const EnvPrefix = "TODO"

// Config holds all configuration for the to-do screen.
type Config struct {
	Storage    StorageConfig    `mapstructure:"storage"`
	Editor     EditorConfig     `mapstructure:"editor"`
	Completion CompletionConfig `mapstructure:"completion"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Theme      ThemeConfig      `mapstructure:"theme"`
}

// StorageConfig selects the in-process store. Both backends are discarded
// when the screen closes.
type StorageConfig struct {
	Backend string `mapstructure:"backend"`
}

// EditorConfig holds add/edit dialog settings.
type EditorConfig struct {
	TimeStep       int    `mapstructure:"time_step"`
	DateTimeLayout string `mapstructure:"datetime_layout"`
}

// CompletionConfig holds row completion settings.
type CompletionConfig struct {
	FadeDuration Duration `mapstructure:"fade_duration"`
}

// LoggingConfig holds log settings. The screen owns the terminal, so logs go
// to a file; "off" disables them.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// ThemeConfig holds colour customisation.
type ThemeConfig struct {
	ColorTitle      string `mapstructure:"color_title"`
	ColorAccent     string `mapstructure:"color_accent"`
	ColorText       string `mapstructure:"color_text"`
	ColorMuted      string `mapstructure:"color_muted"`
	ColorDanger     string `mapstructure:"color_danger"`
	ColorDone       string `mapstructure:"color_done"`
	ColorBorder     string `mapstructure:"color_border"`
	ColorBackground string `mapstructure:"color_background"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorTitle:      "#E5E7EB",
		ColorAccent:     "#0066CC",
		ColorText:       "#D1D5DB",
		ColorMuted:      "#6B7280",
		ColorDanger:     "#CC0000",
		ColorDone:       "#28A745",
		ColorBorder:     "#4B5563",
		ColorBackground: "#111827",
	}
}

// Duration is a wrapper around time.Duration for TOML parsing.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// String returns the string representation of the duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: "memory",
		},
		Editor: EditorConfig{
			TimeStep:       domain.DefaultTimeStep,
			DateTimeLayout: domain.DefaultDateTimeLayout,
		},
		Completion: CompletionConfig{
			FadeDuration: Duration(400 * time.Millisecond),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			File:   filepath.Join(os.TempDir(), "todo-cli.log"),
		},
		Theme: DefaultThemeConfig(),
	}
}

// Load reads the configuration. An empty path means ~/.todo/config.toml;
// a missing file is not an error and yields the defaults. Environment
// variables prefixed with TODO_ override file values.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = GetConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	hook := mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
	if err := v.Unmarshal(&cfg, viper.DecodeHook(hook)); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that would otherwise fail later at runtime.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("invalid storage backend %q: must be memory or sqlite", c.Storage.Backend)
	}
	if _, err := domain.GenerateTimeSlots(c.Editor.TimeStep); err != nil {
		return fmt.Errorf("invalid editor.time_step: %w", err)
	}
	if c.Completion.FadeDuration < 0 {
		return fmt.Errorf("invalid completion.fade_duration %s: must not be negative", c.Completion.FadeDuration)
	}
	return nil
}

// GetConfigPath returns the default path of the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".todo", "config.toml"), nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

// setDefaults sets default values for viper.
func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()

	v.SetDefault("storage.backend", defaults.Storage.Backend)
	v.SetDefault("editor.time_step", defaults.Editor.TimeStep)
	v.SetDefault("editor.datetime_layout", defaults.Editor.DateTimeLayout)
	v.SetDefault("completion.fade_duration", defaults.Completion.FadeDuration.String())
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("logging.file", defaults.Logging.File)

	v.SetDefault("theme.color_title", defaults.Theme.ColorTitle)
	v.SetDefault("theme.color_accent", defaults.Theme.ColorAccent)
	v.SetDefault("theme.color_text", defaults.Theme.ColorText)
	v.SetDefault("theme.color_muted", defaults.Theme.ColorMuted)
	v.SetDefault("theme.color_danger", defaults.Theme.ColorDanger)
	v.SetDefault("theme.color_done", defaults.Theme.ColorDone)
	v.SetDefault("theme.color_border", defaults.Theme.ColorBorder)
	v.SetDefault("theme.color_background", defaults.Theme.ColorBackground)
}
