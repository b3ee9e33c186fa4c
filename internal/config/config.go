package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Dicklesworthstone/winstatz/internal/model"
)

// Config carries runtime options for winstatz.
type Config struct {
	Interval    time.Duration `yaml:"interval"`
	Settle      time.Duration `yaml:"settle"`
	Window      time.Duration `yaml:"window"`
	HistorySize int           `yaml:"history_size"`
	Appearance  string        `yaml:"appearance"`
	ColorTheme  string        `yaml:"color_theme"`
	EnableBatt  bool          `yaml:"battery"`
	LogLevel    string        `yaml:"log_level"`
	LogFile     string        `yaml:"log_file"`
	Listen      string        `yaml:"listen"`
	JSONStream  bool          `yaml:"-"`
	File        string        `yaml:"-"`
}

func Default() Config {
	return Config{
		Interval:    time.Second,
		Settle:      100 * time.Millisecond,
		Window:      time.Second,
		HistorySize: model.DefaultHistorySize,
		Appearance:  "dark",
		ColorTheme:  "blue",
		EnableBatt:  true,
		LogLevel:    "info",
		Listen:      ":9310",
	}
}

// DefaultPath is $XDG_CONFIG_HOME/winstatz/config.yaml (or the OS equivalent).
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "winstatz.yaml"
	}
	return filepath.Join(dir, "winstatz", "config.yaml")
}

// LoadFile overlays the YAML file at path onto cfg. A missing file is not an
// error.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv applies WINSTATZ_* overrides.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv("WINSTATZ_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Interval = parsed
		} else if parsed, err2 := time.ParseDuration(v + "s"); err2 == nil {
			cfg.Interval = parsed
		}
	}
	if v := os.Getenv("WINSTATZ_BATT"); v == "0" {
		cfg.EnableBatt = false
	}
	if v := os.Getenv("WINSTATZ_APPEARANCE"); v != "" {
		cfg.Appearance = strings.ToLower(v)
	}
	if v := os.Getenv("WINSTATZ_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

// AddFlags registers persistent flags on the root command.
func AddFlags(cmd *cobra.Command) {
	d := Default()
	f := cmd.PersistentFlags()
	f.String("config", DefaultPath(), "path to YAML config file")
	f.Duration("interval", d.Interval, "refresh interval")
	f.Int("history", d.HistorySize, "points kept per chart")
	f.String("appearance", d.Appearance, "appearance mode: dark|light")
	f.String("color-theme", d.ColorTheme, "accent color: blue|green")
	f.Bool("battery", d.EnableBatt, "enable battery sampling")
	f.String("log-level", d.LogLevel, "log level (debug, info, warn, error)")
	f.String("log-file", "", "write logs to this file")
}

// Load builds the effective config: defaults, then the YAML file, then the
// environment, then flags the user actually set.
func Load(cmd *cobra.Command) (Config, error) {
	cfg := Default()
	flags := cmd.Flags()

	cfg.File, _ = flags.GetString("config")
	if cfg.File != "" {
		if err := LoadFile(&cfg, cfg.File); err != nil {
			return cfg, err
		}
	}
	ApplyEnv(&cfg)

	if flags.Changed("interval") {
		cfg.Interval, _ = flags.GetDuration("interval")
	}
	if flags.Changed("history") {
		cfg.HistorySize, _ = flags.GetInt("history")
	}
	if flags.Changed("appearance") {
		cfg.Appearance, _ = flags.GetString("appearance")
	}
	if flags.Changed("color-theme") {
		cfg.ColorTheme, _ = flags.GetString("color-theme")
	}
	if flags.Changed("battery") {
		cfg.EnableBatt, _ = flags.GetBool("battery")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-file") {
		cfg.LogFile, _ = flags.GetString("log-file")
	}
	if flags.Lookup("listen") != nil && flags.Changed("listen") {
		cfg.Listen, _ = flags.GetString("listen")
	}
	if flags.Lookup("json-stream") != nil {
		cfg.JSONStream, _ = flags.GetBool("json-stream")
	}

	cfg.Appearance = strings.ToLower(cfg.Appearance)
	cfg.ColorTheme = strings.ToLower(cfg.ColorTheme)
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive")
	}
	if c.Settle <= 0 || c.Window <= 0 {
		return fmt.Errorf("settle and window must be positive")
	}
	if c.HistorySize <= 0 {
		return fmt.Errorf("history size must be positive")
	}
	switch c.Appearance {
	case "dark", "light":
	default:
		return fmt.Errorf("invalid appearance mode: %s", c.Appearance)
	}
	switch c.ColorTheme {
	case "blue", "green":
	default:
		return fmt.Errorf("invalid color theme: %s", c.ColorTheme)
	}
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}
	return nil
}
