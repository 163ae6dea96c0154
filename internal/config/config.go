// Package config provides configuration types and defaults for sitehl.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/SQU1DMAN6/sitehl/internal/highlight"
	"github.com/SQU1DMAN6/sitehl/internal/log"
)

// Config holds all configuration options for sitehl.
type Config struct {
	Language  string      `mapstructure:"language"`   // forced language, empty = detect from file name
	TabWidth  int         `mapstructure:"tab_width"`  // columns per tab when rendering
	TablesDir string      `mapstructure:"tables_dir"` // extra *.yaml lexical tables merged over the embedded ones
	Cache     CacheConfig `mapstructure:"cache"`
	Theme     ThemeConfig `mapstructure:"theme"`
	Log       LogConfig   `mapstructure:"log"`
}

// CacheConfig controls memoisation of highlighted blocks.
type CacheConfig struct {
	// TTL is how long a highlighted block stays cached. Zero disables expiry.
	TTL time.Duration `mapstructure:"ttl"`
}

// ThemeConfig holds per-category style overrides, keyed by category name
// (keyword, type, string, comment, number, builtin, other, plain).
type ThemeConfig struct {
	Colors map[string]StyleConfig `mapstructure:"colors"`
}

// StyleConfig overrides the style of one category. Empty colours keep the
// built-in value.
type StyleConfig struct {
	Foreground string `mapstructure:"foreground"` // hex color e.g. "#F92672"
	Background string `mapstructure:"background"`
	Bold       bool   `mapstructure:"bold"`
	Italic     bool   `mapstructure:"italic"`
	Underline  bool   `mapstructure:"underline"`
}

// LogConfig holds debug log settings.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Debug bool   `mapstructure:"debug"`
}

const (
	MinTabWidth = 1
	MaxTabWidth = 16
)

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		TabWidth: 4,
		Cache: CacheConfig{
			TTL: 10 * time.Minute,
		},
		Theme: ThemeConfig{
			Colors: map[string]StyleConfig{},
		},
		Log: LogConfig{
			File: "debug.log",
		},
	}
}

// DefaultConfigPath returns ~/.config/sitehl/config.yaml, or an empty string
// if the home directory is unavailable.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "sitehl", "config.yaml")
}

// Validate checks the whole configuration.
func Validate(cfg Config) error {
	if err := ValidateLanguage(cfg.Language); err != nil {
		return err
	}
	if cfg.TabWidth < MinTabWidth || cfg.TabWidth > MaxTabWidth {
		return fmt.Errorf("tab_width must be between %d and %d, got %d", MinTabWidth, MaxTabWidth, cfg.TabWidth)
	}
	if cfg.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative, got %s", cfg.Cache.TTL)
	}
	return ValidateTheme(cfg.Theme)
}

// ValidateLanguage accepts an empty name (auto-detect) or any known
// language name or alias.
func ValidateLanguage(name string) error {
	if strings.TrimSpace(name) == "" {
		return nil
	}
	if _, err := highlight.ParseLanguage(name); err != nil {
		return fmt.Errorf("language: %w", err)
	}
	return nil
}

// ValidateTheme checks category names and colour values.
func ValidateTheme(theme ThemeConfig) error {
	for name, style := range theme.Colors {
		if _, ok := highlight.ParseCategory(strings.ToLower(name)); !ok {
			return fmt.Errorf("theme.colors.%s: unknown category", name)
		}
		if err := validateHex(style.Foreground); err != nil {
			return fmt.Errorf("theme.colors.%s.foreground: %w", name, err)
		}
		if err := validateHex(style.Background); err != nil {
			return fmt.Errorf("theme.colors.%s.background: %w", name, err)
		}
	}
	return nil
}

func validateHex(s string) error {
	if s == "" {
		return nil
	}
	if _, err := colorful.Hex(s); err != nil {
		return fmt.Errorf("invalid color %q (want #rgb or #rrggbb)", s)
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# sitehl configuration

# Force a language for every file (default: detect from the file extension).
# Run "sitehl langs" for the list of names.
# language: go

# Columns per tab when rendering
tab_width: 4

# Directory with extra lexical tables (*.yaml) merged over the built-in ones
# tables_dir: ~/.config/sitehl/tables

cache:
  ttl: 10m   # how long highlighted lines stay memoised (0 = forever)

# Per-category style overrides
# Categories: plain, keyword, type, string, comment, number, builtin, other
theme:
  colors:
    # keyword:
    #   foreground: "#F92672"
    #   bold: true
    # comment:
    #   foreground: "#75715E"
    #   italic: true

log:
  file: debug.log   # written only with --debug or SITEHL_DEBUG=1
  debug: false
`
}

// WriteDefaultConfig creates a config file with default settings.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
