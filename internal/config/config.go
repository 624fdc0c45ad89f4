// Package config loads anacreon settings from .env, .anacreon.yaml and
// ANACREON_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	API       APIConfig       `mapstructure:"api"`
	Server    ServerConfig    `mapstructure:"server"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Theme     ThemeConfig     `mapstructure:"theme"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type ServerConfig struct {
	Addr       string  `mapstructure:"addr"`
	MemoSize   int     `mapstructure:"memo_size"`
	RenderRate float64 `mapstructure:"render_rate"`
	ReleaseUI  bool    `mapstructure:"release"`
}

type DashboardConfig struct {
	Refresh           time.Duration `mapstructure:"refresh"`
	LowStockThreshold int           `mapstructure:"low_stock_threshold"`
	Demo              bool          `mapstructure:"demo"`
	Range             string        `mapstructure:"range"`
}

type ThemeConfig struct {
	File string `mapstructure:"file"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
	JSON  bool   `mapstructure:"json"`
}

// Load reads configuration. A missing config file or .env is not an error.
func Load(cfgFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}

	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".anacreon")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/anacreon")
	}

	v.SetEnvPrefix("ANACREON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:8000/api/v1")
	v.SetDefault("api.timeout", 10*time.Second)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.memo_size", 256)
	v.SetDefault("server.render_rate", 20.0)
	v.SetDefault("server.release", false)

	v.SetDefault("dashboard.refresh", 30*time.Second)
	v.SetDefault("dashboard.low_stock_threshold", 5)
	v.SetDefault("dashboard.demo", false)
	v.SetDefault("dashboard.range", "7d")

	v.SetDefault("theme.file", defaultThemeFile())

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.json", false)
}

func defaultThemeFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".anacreon-theme.yaml"
	}
	return filepath.Join(dir, "anacreon", "theme.yaml")
}

func (c *Config) Validate() error {
	var errs []error
	if c.API.BaseURL == "" {
		errs = append(errs, errors.New("api.base_url is required"))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, errors.New("api.timeout must be positive"))
	}
	if c.Dashboard.Refresh < time.Second {
		errs = append(errs, errors.New("dashboard.refresh must be at least 1s"))
	}
	if c.Dashboard.LowStockThreshold < 0 {
		errs = append(errs, errors.New("dashboard.low_stock_threshold must not be negative"))
	}
	switch c.Dashboard.Range {
	case "7d", "30d", "90d":
	default:
		errs = append(errs, fmt.Errorf("dashboard.range %q must be 7d, 30d or 90d", c.Dashboard.Range))
	}
	if c.Server.RenderRate < 0 {
		errs = append(errs, errors.New("server.render_rate must not be negative"))
	}
	if c.Server.MemoSize <= 0 {
		errs = append(errs, errors.New("server.memo_size must be positive"))
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level %q is not a level", c.Logging.Level))
	}
	return errors.Join(errs...)
}
