// Package config provides centralized configuration management using Viper.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration values for campaignr. It is loaded once
// and injected into the wizard and the service clients.
type Config struct {
	APIURL           string        `mapstructure:"api_url" yaml:"api_url"`
	APIKey           string        `mapstructure:"api_key" yaml:"api_key,omitempty"`
	DataDir          string        `mapstructure:"data_dir" yaml:"data_dir"`
	LogLevel         string        `mapstructure:"log_level" yaml:"log_level"`
	LogFile          string        `mapstructure:"log_file" yaml:"log_file"`
	EstimateDebounce time.Duration `mapstructure:"estimate_debounce" yaml:"estimate_debounce"`
	EstimateRate     float64       `mapstructure:"estimate_rate" yaml:"estimate_rate"`
	RequestTimeout   time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
	CatalogFile      string        `mapstructure:"catalog_file" yaml:"catalog_file"`
	Language         string        `mapstructure:"language" yaml:"language"`
}

// keys lists every config key; each is bound to CAMPAIGNR_<KEY>.
var keys = []string{
	"api_url",
	"api_key",
	"data_dir",
	"log_level",
	"log_file",
	"estimate_debounce",
	"estimate_rate",
	"request_timeout",
	"catalog_file",
	"language",
}

// Defaults returns the configuration used when nothing is set.
func Defaults() *Config {
	return &Config{
		APIURL:           "http://localhost:8080",
		DataDir:          ".campaignr",
		LogLevel:         "info",
		EstimateDebounce: 800 * time.Millisecond,
		EstimateRate:     2,
		RequestTimeout:   15 * time.Second,
		Language:         "en",
	}
}

// Load loads configuration with full precedence:
// CLI flags > ENV vars > project config > XDG global config > defaults
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetConfigType("yaml")
	v.SetConfigName("campaignr")

	d := Defaults()
	v.SetDefault("api_url", d.APIURL)
	v.SetDefault("api_key", "")
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_file", "")
	v.SetDefault("estimate_debounce", d.EstimateDebounce)
	v.SetDefault("estimate_rate", d.EstimateRate)
	v.SetDefault("request_timeout", d.RequestTimeout)
	v.SetDefault("catalog_file", "")
	v.SetDefault("language", d.Language)

	v.SetEnvPrefix("CAMPAIGNR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range keys {
		if err := v.BindEnv(key, "CAMPAIGNR_"+strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	projectPath := ProjectPath()
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects values the wizard cannot work with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api_url %q: must be an http(s) URL", c.APIURL)
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir cannot be empty")
	}
	if c.EstimateDebounce < 0 {
		return fmt.Errorf("estimate_debounce must be >= 0, got %s", c.EstimateDebounce)
	}
	if c.EstimateRate <= 0 {
		return fmt.Errorf("estimate_rate must be > 0, got %g", c.EstimateRate)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be > 0, got %s", c.RequestTimeout)
	}
	switch strings.ToLower(c.Language) {
	case "en", "fr":
	default:
		return fmt.Errorf("invalid language %q (must be en or fr)", c.Language)
	}
	return nil
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/campaignr/campaignr.yml or $XDG_CONFIG_HOME/campaignr/campaignr.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "campaignr", "campaignr.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "campaignr", "campaignr.yml")
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return "campaignr.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	return write(GlobalPath(), cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return write(ProjectPath(), cfg)
}

func write(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	// 0600: the file may hold api_key
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
